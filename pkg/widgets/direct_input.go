package widgets

import (
	"github.com/go-drift/caret/pkg/focus"
	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/textedit"
)

// directInput applies key presses from a keyboard to the model while the
// field is focused.
type directInput struct {
	model  *textedit.Model
	focus  *focus.Controller
	onEdit func()
}

// handleKey reports whether the key changed the model.
//
// Placeholder keys sent while an input method resolves a keystroke are
// skipped; the resolved text arrives through the hidden field instead.
func (d *directInput) handleKey(ev input.KeyEvent) bool {
	if !d.focus.IsFocused() || ev.Unresolved() {
		return false
	}

	var changed bool
	switch ev.Key {
	case input.KeyBackspace:
		changed = d.model.Backspace()
	case input.KeyArrowLeft:
		changed = d.model.MoveLeft()
	case input.KeyArrowRight:
		changed = d.model.MoveRight()
	default:
		r, ok := ev.Char()
		if !ok {
			return false
		}
		changed = d.model.Insert(r)
	}

	if changed && d.onEdit != nil {
		d.onEdit()
	}
	return changed
}
