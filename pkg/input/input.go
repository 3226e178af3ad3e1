// Package input defines the pointer and key events a host scene delivers to
// widgets.
package input

import "unicode/utf8"

// PointerPhase describes what a pointer did.
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerKind distinguishes the device that produced a pointer event.
type PointerKind int

const (
	PointerKindMouse PointerKind = iota
	PointerKindTouch
	PointerKindStylus
)

// PointerEvent is a single pointer sample in scene coordinates.
type PointerEvent struct {
	PointerID int64
	Kind      PointerKind
	Phase     PointerPhase
	X, Y      float64
}

// Key names delivered in KeyEvent.Key for non-printing keys.
const (
	KeyBackspace  = "Backspace"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEnter      = "Enter"
	KeyTab        = "Tab"
	KeyEscape     = "Escape"

	// KeyUnidentified is reported by soft keyboards that cannot resolve the
	// key before the text field receives the composed value.
	KeyUnidentified = "Unidentified"
	// KeyProcess is reported while an input method is handling the key.
	KeyProcess = "Process"
)

// KeyCodeComposition is the legacy key code soft keyboards send for keys
// whose character is not yet known.
const KeyCodeComposition = 229

// KeyEvent is a key press from a physical or emulated keyboard.
type KeyEvent struct {
	// Key is the resolved key value: a single character for printing keys,
	// or one of the Key* names.
	Key string
	// Code is the physical key identifier, when known.
	Code string
	// KeyCode is the legacy numeric key code, when known.
	KeyCode int

	Shift, Ctrl, Alt, Meta bool

	// IsComposing is set while an input method composition is in progress.
	IsComposing bool
}

// Unresolved reports whether the event is a placeholder emitted on behalf of
// an input method rather than a resolved keystroke.
func (e KeyEvent) Unresolved() bool {
	return e.IsComposing ||
		e.Key == KeyUnidentified ||
		e.Key == KeyProcess ||
		e.KeyCode == KeyCodeComposition
}

// Char returns the single character the key produces. Keys with Ctrl or Meta
// held never produce characters.
func (e KeyEvent) Char() (rune, bool) {
	if e.Ctrl || e.Meta || e.Key == "" {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(e.Key)
	if r == utf8.RuneError || size != len(e.Key) {
		return 0, false
	}
	return r, true
}

// KeyOf returns a KeyEvent for a key value with no modifiers.
func KeyOf(key string) KeyEvent {
	return KeyEvent{Key: key}
}
