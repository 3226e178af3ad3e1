package testing

import (
	"sync"

	"github.com/go-drift/caret/pkg/platform"
)

// BridgeCall is one method invocation recorded by a RecordingBridge.
type BridgeCall struct {
	Channel string
	Method  string
	Args    map[string]any
}

// ViewMethod returns the platform view method name for invokeViewMethod
// calls and the channel method otherwise.
func (c BridgeCall) ViewMethod() string {
	if c.Method == "invokeViewMethod" {
		if m, ok := c.Args["method"].(string); ok {
			return m
		}
	}
	return c.Method
}

// RecordingBridge is a platform.NativeBridge that records every call and
// can behave like a browser's hidden input field: when EchoSetText is set,
// a setText call on a text input view is delivered straight back to Go as
// onTextChanged before InvokeMethod returns.
type RecordingBridge struct {
	mu           sync.Mutex
	messenger    *platform.Messenger
	calls        []BridgeCall
	capabilities platform.Capabilities

	// EchoSetText makes setText on a view echo back as onTextChanged.
	EchoSetText bool

	// OnInvoke, when set, sees every call before it is answered.
	OnInvoke func(call BridgeCall)
}

// NewRecordingBridge creates a bridge reporting the given capabilities.
// Pass it to platform.NewMessenger or scene.Options.
func NewRecordingBridge(caps platform.Capabilities) *RecordingBridge {
	return &RecordingBridge{capabilities: caps}
}

// AttachMessenger implements platform.MessengerAttacher.
func (b *RecordingBridge) AttachMessenger(m *platform.Messenger) {
	b.mu.Lock()
	b.messenger = m
	b.mu.Unlock()
}

// InvokeMethod implements platform.NativeBridge.
func (b *RecordingBridge) InvokeMethod(channel, method string, argsData []byte) ([]byte, error) {
	decoded, err := platform.DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}
	args, _ := decoded.(map[string]any)
	call := BridgeCall{Channel: channel, Method: method, Args: args}

	b.mu.Lock()
	b.calls = append(b.calls, call)
	echo := b.EchoSetText
	caps := b.capabilities
	hook := b.OnInvoke
	b.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	switch {
	case channel == platform.DeviceChannel && method == "getCapabilities":
		return platform.DefaultCodec.Encode(map[string]any{
			"touch":          caps.Touch,
			"maxTouchPoints": caps.MaxTouchPoints,
			"platform":       caps.Platform,
		})
	case echo && call.ViewMethod() == "setText":
		if err := b.SendText(viewID(args), textArg(args)); err != nil {
			return nil, err
		}
	}
	return platform.DefaultCodec.Encode(nil)
}

// SendText delivers onTextChanged for a view, as the native field does when
// the user types on a soft keyboard.
func (b *RecordingBridge) SendText(viewID int64, text string) error {
	return b.send("onTextChanged", map[string]any{"viewId": viewID, "text": text})
}

// SendFocus delivers onFocusChanged for a view.
func (b *RecordingBridge) SendFocus(viewID int64, focused bool) error {
	return b.send("onFocusChanged", map[string]any{"viewId": viewID, "focused": focused})
}

// SendAction delivers onAction for a view.
func (b *RecordingBridge) SendAction(viewID int64, action platform.TextInputAction) error {
	return b.send("onAction", map[string]any{"viewId": viewID, "action": int(action)})
}

func (b *RecordingBridge) send(method string, args map[string]any) error {
	data, err := platform.DefaultCodec.Encode(args)
	if err != nil {
		return err
	}
	b.mu.Lock()
	m := b.messenger
	b.mu.Unlock()
	if m == nil {
		return platform.ErrPlatformUnavailable
	}
	_, err = m.HandleMethodCall(platform.ViewsChannel, method, data)
	return err
}

// Calls returns a copy of every recorded call.
func (b *RecordingBridge) Calls() []BridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]BridgeCall, len(b.calls))
	copy(out, b.calls)
	return out
}

// ViewCalls returns the recorded calls whose view method is method.
func (b *RecordingBridge) ViewCalls(method string) []BridgeCall {
	var out []BridgeCall
	for _, c := range b.Calls() {
		if c.ViewMethod() == method {
			out = append(out, c)
		}
	}
	return out
}

// ViewIDs returns the ids of the platform views created through the bridge,
// in creation order.
func (b *RecordingBridge) ViewIDs() []int64 {
	var ids []int64
	for _, c := range b.Calls() {
		if c.Channel == platform.ViewsChannel && c.Method == "create" {
			ids = append(ids, viewID(c.Args))
		}
	}
	return ids
}

// Reset forgets recorded calls.
func (b *RecordingBridge) Reset() {
	b.mu.Lock()
	b.calls = nil
	b.mu.Unlock()
}

func viewID(args map[string]any) int64 {
	if v, ok := args["viewId"].(float64); ok {
		return int64(v)
	}
	return 0
}

func textArg(args map[string]any) string {
	s, _ := args["text"].(string)
	return s
}
