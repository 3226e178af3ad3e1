package platform

import (
	"github.com/go-drift/caret/pkg/errors"
)

// DeviceChannel is the method channel device capabilities are queried over.
const DeviceChannel = "caret/device"

// DeviceInfo answers questions about the device the scene runs on.
type DeviceInfo interface {
	// IsTouchDevice reports whether the device has a touch screen.
	IsTouchDevice() bool
}

// Capabilities describes the input hardware of a device.
type Capabilities struct {
	Touch          bool
	MaxTouchPoints int
	Platform       string
}

// IsTouchDevice reports whether the device has a touch screen.
func (c Capabilities) IsTouchDevice() bool {
	return c.Touch || c.MaxTouchPoints > 0
}

// QueryCapabilities asks native code for the device capabilities. When the
// query fails the error is reported and a non-touch device is assumed.
func QueryCapabilities(m *Messenger) Capabilities {
	result, err := m.MethodChannel(DeviceChannel).Invoke("getCapabilities", nil)
	if err != nil {
		errors.Report(&errors.Error{
			Op:      "platform.QueryCapabilities",
			Kind:    errors.KindPlatform,
			Channel: DeviceChannel,
			Err:     err,
		})
		return Capabilities{}
	}
	return parseCapabilities(result)
}

func parseCapabilities(result any) Capabilities {
	caps := Capabilities{}
	m, ok := result.(map[string]any)
	if !ok {
		if result != nil {
			errors.Report(&errors.Error{
				Op:      "platform.QueryCapabilities",
				Kind:    errors.KindParsing,
				Channel: DeviceChannel,
				Err:     &errors.ParseError{Channel: DeviceChannel, DataType: "map", Got: result},
			})
		}
		return caps
	}
	if v, ok := m["touch"].(bool); ok {
		caps.Touch = v
	}
	if v, ok := toInt(m["maxTouchPoints"]); ok {
		caps.MaxTouchPoints = v
	}
	if v, ok := m["platform"].(string); ok {
		caps.Platform = v
	}
	return caps
}
