// Package platform connects widgets to native code: a method-call bridge,
// platform views hosted by the native side, the hidden text field that
// summons soft keyboards, and device capability queries.
package platform

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageCodec turns method arguments and results into bridge payloads.
type MessageCodec interface {
	Encode(value any) ([]byte, error)
	// Decode returns nil for an empty payload.
	Decode(data []byte) (any, error)
}

// JSONCodec is the wire format shared with the native text field host.
// Numbers decode as float64; see toInt64 and friends.
type JSONCodec struct{}

// Encode implements MessageCodec.
func (JSONCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode implements MessageCodec.
func (JSONCodec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	err := json.Unmarshal(data, &v)
	return v, err
}

// DefaultCodec encodes every message a Messenger sends or receives.
var DefaultCodec MessageCodec = JSONCodec{}

var (
	// ErrPlatformUnavailable is returned by native calls on a scene with no
	// bridge. Text input boxes then take input from key events only.
	ErrPlatformUnavailable = errors.New("no native bridge attached")

	// ErrChannelNotFound is returned when native code calls a channel no
	// widget has opened.
	ErrChannelNotFound = errors.New("unknown platform channel")

	// ErrMethodNotFound is returned for native events a view does not handle.
	ErrMethodNotFound = errors.New("unhandled platform method")

	// ErrInvalidArguments wraps malformed native event payloads.
	ErrInvalidArguments = errors.New("malformed platform arguments")

	// ErrViewTypeNotFound is returned by Create for unregistered view types.
	ErrViewTypeNotFound = errors.New("unknown platform view type")
)

// ChannelError is a failed native call, naming the channel and method.
type ChannelError struct {
	Channel string
	Method  string
	Err     error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Channel, e.Method, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
