package testing

import (
	"testing"

	"github.com/go-drift/caret/pkg/platform"
)

type echoClient struct {
	texts []string
}

func (c *echoClient) OnTextChanged(text string)         { c.texts = append(c.texts, text) }
func (c *echoClient) OnFocusChanged(bool)               {}
func (c *echoClient) OnAction(platform.TextInputAction) {}

func TestRecordingBridge_Capabilities(t *testing.T) {
	m := platform.NewMessenger(NewRecordingBridge(platform.Capabilities{Touch: true, MaxTouchPoints: 5, Platform: "ios"}))

	caps := platform.QueryCapabilities(m)
	if !caps.IsTouchDevice() || caps.MaxTouchPoints != 5 || caps.Platform != "ios" {
		t.Errorf("QueryCapabilities() = %+v", caps)
	}
}

func TestRecordingBridge_EchoSetText(t *testing.T) {
	tests := []struct {
		name string
		echo bool
		want int
	}{
		{"echo on", true, 1},
		{"echo off", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := NewRecordingBridge(platform.Capabilities{})
			m := platform.NewMessenger(bridge)
			bridge.EchoSetText = tt.echo
			r := platform.NewPlatformViewRegistry(m)
			view, err := platform.CreateTextInputView(r, platform.TextInputViewConfig{})
			if err != nil {
				t.Fatal(err)
			}
			client := &echoClient{}
			view.SetClient(client)

			view.SetText("abc")

			if len(client.texts) != tt.want {
				t.Fatalf("client got %v, want %d echoes", client.texts, tt.want)
			}
			if got := bridge.ViewCalls("setText"); len(got) != 1 || got[0].Args["text"] != "abc" {
				t.Errorf("ViewCalls(setText) = %+v", got)
			}
		})
	}
}

func TestRecordingBridge_SendText(t *testing.T) {
	bridge := NewRecordingBridge(platform.Capabilities{})
	m := platform.NewMessenger(bridge)
	r := platform.NewPlatformViewRegistry(m)
	view, err := platform.CreateTextInputView(r, platform.TextInputViewConfig{})
	if err != nil {
		t.Fatal(err)
	}
	client := &echoClient{}
	view.SetClient(client)

	if err := bridge.SendText(view.ViewID(), "typed"); err != nil {
		t.Fatal(err)
	}
	if len(client.texts) != 1 || client.texts[0] != "typed" {
		t.Errorf("client got %v", client.texts)
	}

	bridge.Reset()
	if len(bridge.Calls()) != 0 {
		t.Error("Reset did not clear calls")
	}
}
