package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-drift/caret/pkg/errors"
	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/scene"
)

// Script actions.
const (
	ActionPress        = "press"
	ActionDown         = "down"
	ActionUp           = "up"
	ActionMove         = "move"
	ActionKey          = "key"
	ActionType         = "type"
	ActionWait         = "wait"
	ActionNativeText   = "nativeText"
	ActionNativeFocus  = "nativeFocus"
	ActionNativeAction = "nativeAction"
)

// Step is one scripted event.
type Step struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`

	// Key is a character or a key name such as "Backspace".
	Key       string `yaml:"key,omitempty"`
	Ctrl      bool   `yaml:"ctrl,omitempty"`
	Meta      bool   `yaml:"meta,omitempty"`
	Shift     bool   `yaml:"shift,omitempty"`
	Composing bool   `yaml:"composing,omitempty"`

	// Text is typed by "type" and sent as the native value by "nativeText".
	Text string `yaml:"text,omitempty"`

	Duration Duration `yaml:"duration,omitempty"`

	// Target names the text input whose native field sends the event.
	Target  string `yaml:"target,omitempty"`
	Focused bool   `yaml:"focused,omitempty"`
	// InputAction is the soft keyboard action: done, go, search, send,
	// next or none.
	InputAction string `yaml:"inputAction,omitempty"`
}

func (s Step) validate(f *File) error {
	switch s.Action {
	case ActionPress, ActionDown, ActionUp, ActionMove, ActionType:
	case ActionKey:
		if s.Key == "" {
			return fmt.Errorf("key action needs a key")
		}
	case ActionWait:
		if s.Duration <= 0 {
			return fmt.Errorf("wait action needs a positive duration")
		}
	case ActionNativeText, ActionNativeFocus, ActionNativeAction:
		if f.TextInputIndex(s.Target) < 0 {
			return fmt.Errorf("%s: unknown text input %q", s.Action, s.Target)
		}
		if s.Action == ActionNativeAction {
			if _, err := parseInputAction(s.InputAction); err != nil {
				return err
			}
		}
	case "":
		return fmt.Errorf("action is required")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

func (s Step) keyEvent(key string) input.KeyEvent {
	return input.KeyEvent{
		Key:         key,
		Ctrl:        s.Ctrl,
		Meta:        s.Meta,
		Shift:       s.Shift,
		IsComposing: s.Composing,
	}
}

func parseInputAction(s string) (platform.TextInputAction, error) {
	switch strings.ToLower(s) {
	case "", "done":
		return platform.TextInputActionDone, nil
	case "go":
		return platform.TextInputActionGo, nil
	case "search":
		return platform.TextInputActionSearch, nil
	case "send":
		return platform.TextInputActionSend, nil
	case "next":
		return platform.TextInputActionNext, nil
	case "none":
		return platform.TextInputActionNone, nil
	default:
		return 0, fmt.Errorf("unknown input action %q", s)
	}
}

// Clock is advanced by wait steps.
type Clock interface {
	Advance(d time.Duration)
}

// NativeEvents delivers events as the native text fields would.
type NativeEvents interface {
	SendText(viewID int64, text string) error
	SendFocus(viewID int64, focused bool) error
	SendAction(viewID int64, action platform.TextInputAction) error
}

// Player replays a script against a scene.
type Player struct {
	Scene  *scene.Scene
	Clock  Clock
	Native NativeEvents

	// ViewIDs maps text input names to their native view ids.
	ViewIDs map[string]int64
}

// Play runs every step in order, stepping the scene after each one.
func (p *Player) Play(steps []Step) error {
	for i, step := range steps {
		errors.Logger().Debug("replay step", "index", i, "action", step.Action)
		if err := p.play(step); err != nil {
			return fmt.Errorf("script[%d] %s: %w", i, step.Action, err)
		}
		p.Scene.Step()
	}
	return nil
}

func (p *Player) play(s Step) error {
	switch s.Action {
	case ActionPress:
		p.pointer(input.PointerDown, s)
		p.pointer(input.PointerUp, s)
	case ActionDown:
		p.pointer(input.PointerDown, s)
	case ActionUp:
		p.pointer(input.PointerUp, s)
	case ActionMove:
		p.pointer(input.PointerMove, s)
	case ActionKey:
		p.Scene.DispatchKey(s.keyEvent(s.Key))
	case ActionType:
		for _, r := range s.Text {
			p.Scene.DispatchKey(s.keyEvent(string(r)))
		}
	case ActionWait:
		if p.Clock == nil {
			return fmt.Errorf("no clock to advance")
		}
		p.Clock.Advance(time.Duration(s.Duration))
	case ActionNativeText, ActionNativeFocus, ActionNativeAction:
		return p.native(s)
	default:
		return fmt.Errorf("unknown action")
	}
	return nil
}

func (p *Player) pointer(phase input.PointerPhase, s Step) {
	p.Scene.DispatchPointer(input.PointerEvent{Phase: phase, X: s.X, Y: s.Y})
}

func (p *Player) native(s Step) error {
	if p.Native == nil {
		return platform.ErrPlatformUnavailable
	}
	id, ok := p.ViewIDs[s.Target]
	if !ok {
		return fmt.Errorf("text input %q has no native field", s.Target)
	}
	switch s.Action {
	case ActionNativeText:
		return p.Native.SendText(id, s.Text)
	case ActionNativeFocus:
		return p.Native.SendFocus(id, s.Focused)
	default:
		action, err := parseInputAction(s.InputAction)
		if err != nil {
			return err
		}
		return p.Native.SendAction(id, action)
	}
}
