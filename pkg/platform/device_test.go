package platform

import (
	stderrors "errors"
	"testing"
)

func TestQueryCapabilities(t *testing.T) {
	tests := []struct {
		name   string
		result any
		err    error
		want   Capabilities
		touch  bool
	}{
		{
			name:   "touch screen",
			result: map[string]any{"touch": true, "maxTouchPoints": 5, "platform": "android"},
			want:   Capabilities{Touch: true, MaxTouchPoints: 5, Platform: "android"},
			touch:  true,
		},
		{
			name:   "touch points only",
			result: map[string]any{"maxTouchPoints": 1},
			want:   Capabilities{MaxTouchPoints: 1},
			touch:  true,
		},
		{
			name:   "desktop",
			result: map[string]any{"touch": false, "platform": "linux"},
			want:   Capabilities{Platform: "linux"},
		},
		{
			name:   "malformed result",
			result: "touch",
		},
		{
			name: "bridge failure",
			err:  stderrors.New("boom"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, bridge := setupTestBridge(t)
			bridge.results[DeviceChannel+"/getCapabilities"] = tt.result
			bridge.err = tt.err

			got := QueryCapabilities(m)
			if got != tt.want {
				t.Errorf("QueryCapabilities() = %+v, want %+v", got, tt.want)
			}
			if got.IsTouchDevice() != tt.touch {
				t.Errorf("IsTouchDevice() = %v, want %v", got.IsTouchDevice(), tt.touch)
			}
		})
	}
}

func TestQueryCapabilitiesWithoutBridge(t *testing.T) {
	if got := QueryCapabilities(NewMessenger(nil)); got.IsTouchDevice() {
		t.Errorf("QueryCapabilities() = %+v, want non-touch", got)
	}
}
