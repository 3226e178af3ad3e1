package input

import "testing"

func TestKeyEventUnresolved(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want bool
	}{
		{"plain char", KeyOf("a"), false},
		{"backspace", KeyOf(KeyBackspace), false},
		{"composing flag", KeyEvent{Key: "a", IsComposing: true}, true},
		{"unidentified", KeyOf(KeyUnidentified), true},
		{"process", KeyOf(KeyProcess), true},
		{"keycode 229", KeyEvent{Key: "a", KeyCode: KeyCodeComposition}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Unresolved(); got != tt.want {
				t.Errorf("Unresolved() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyEventChar(t *testing.T) {
	tests := []struct {
		name   string
		ev     KeyEvent
		want   rune
		wantOK bool
	}{
		{"letter", KeyOf("a"), 'a', true},
		{"shifted", KeyEvent{Key: "A", Shift: true}, 'A', true},
		{"space", KeyOf(" "), ' ', true},
		{"non-ascii", KeyOf("é"), 'é', true},
		{"named key", KeyOf(KeyArrowLeft), 0, false},
		{"ctrl", KeyEvent{Key: "c", Ctrl: true}, 0, false},
		{"meta", KeyEvent{Key: "v", Meta: true}, 0, false},
		{"empty", KeyEvent{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ev.Char()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Char() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPointerPhaseString(t *testing.T) {
	if PointerDown.String() != "down" || PointerUp.String() != "up" || PointerPhase(42).String() != "unknown" {
		t.Error("unexpected PointerPhase names")
	}
}
