package platform

import (
	"sync"

	"github.com/go-drift/caret/pkg/errors"
)

// NativeBridge defines the interface for calling native platform code.
type NativeBridge interface {
	// InvokeMethod calls a method on the native side.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
}

// MessengerAttacher is implemented by bridges that call back into Go. The
// messenger passes itself to the bridge when the bridge is attached.
type MessengerAttacher interface {
	AttachMessenger(m *Messenger)
}

// MethodHandler handles incoming method calls on a channel.
type MethodHandler func(method string, args any) (any, error)

// Messenger owns the method channels of one scene and the bridge they talk
// through. Native code delivers calls with HandleMethodCall.
type Messenger struct {
	mu       sync.RWMutex
	bridge   NativeBridge
	codec    MessageCodec
	channels map[string]*MethodChannel
}

// NewMessenger creates a messenger. A nil bridge leaves native calls
// failing with ErrPlatformUnavailable until SetBridge is called.
func NewMessenger(bridge NativeBridge) *Messenger {
	m := &Messenger{
		codec:    DefaultCodec,
		channels: make(map[string]*MethodChannel),
	}
	m.SetBridge(bridge)
	return m
}

// SetBridge attaches the native bridge.
func (m *Messenger) SetBridge(bridge NativeBridge) {
	m.mu.Lock()
	m.bridge = bridge
	m.mu.Unlock()
	if a, ok := bridge.(MessengerAttacher); ok {
		a.AttachMessenger(m)
	}
}

// MethodChannel returns the channel with the given name, creating it on
// first use.
func (m *Messenger) MethodChannel(name string) *MethodChannel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.channels[name]; ok {
		return ch
	}
	ch := &MethodChannel{name: name, messenger: m}
	m.channels[name] = ch
	return ch
}

// HandleMethodCall is called from the bridge when native invokes a Go method.
func (m *Messenger) HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	m.mu.RLock()
	ch := m.channels[channel]
	m.mu.RUnlock()
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	args, err := m.codec.Decode(argsData)
	if err != nil {
		errors.Report(&errors.Error{
			Op:      "platform.Messenger.HandleMethodCall",
			Kind:    errors.KindParsing,
			Channel: channel,
			Err:     err,
		})
		return nil, err
	}

	result, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}
	return m.codec.Encode(result)
}

func (m *Messenger) invoke(channel, method string, args any) (any, error) {
	m.mu.RLock()
	bridge := m.bridge
	m.mu.RUnlock()
	if bridge == nil {
		return nil, ErrPlatformUnavailable
	}

	argsData, err := m.codec.Encode(args)
	if err != nil {
		return nil, err
	}
	resultData, err := bridge.InvokeMethod(channel, method, argsData)
	if err != nil {
		return nil, &ChannelError{Channel: channel, Method: method, Err: err}
	}
	return m.codec.Decode(resultData)
}

// MethodChannel provides bidirectional method-call communication with native code.
type MethodChannel struct {
	name      string
	messenger *Messenger
	mu        sync.RWMutex
	handler   MethodHandler
}

// Name returns the channel name.
func (c *MethodChannel) Name() string {
	return c.name
}

// SetHandler sets the handler for incoming method calls from native code.
func (c *MethodChannel) SetHandler(handler MethodHandler) {
	c.mu.Lock()
	c.handler = handler
	c.mu.Unlock()
}

// Invoke calls a method on the native side and returns the result.
func (c *MethodChannel) Invoke(method string, args any) (any, error) {
	errors.Logger().Debug("platform invoke", "channel", c.name, "method", method)
	return c.messenger.invoke(c.name, method, args)
}

func (c *MethodChannel) handleCall(method string, args any) (any, error) {
	c.mu.RLock()
	handler := c.handler
	c.mu.RUnlock()
	if handler == nil {
		return nil, ErrMethodNotFound
	}
	return handler(method, args)
}
