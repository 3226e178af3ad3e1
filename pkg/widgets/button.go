package widgets

import (
	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/rendering"
)

// highlightAlpha is the background opacity of a hovered button.
const highlightAlpha = 0.5

// ButtonConfig configures a Button.
type ButtonConfig struct {
	// Name identifies the button in its scene.
	Name string
	// X and Y are the center of the button.
	X, Y float64
	// Width and Height are the unscaled background size.
	Width, Height float64
	// Scale multiplies the background size.
	Scale float64
	// Color is the background fill.
	Color rendering.Color
	// Text is the centered label.
	Text       string
	FontSize   float64
	FontFamily string
	TextColor  rendering.Color
	// OnClick runs when the button is pressed.
	OnClick func()
}

// DefaultButtonConfig returns a 160x48 button with a 16px black label.
func DefaultButtonConfig() ButtonConfig {
	return ButtonConfig{
		Width:      160,
		Height:     48,
		Scale:      1,
		Color:      rendering.Hex(0xd7ccc8),
		FontSize:   16,
		FontFamily: rendering.DefaultFontFamily,
		TextColor:  rendering.ColorBlack,
	}
}

// Button is a clickable background with a centered label. Hovering dims the
// background and switches the scene cursor to a pointer.
type Button struct {
	objectBase
	host       Host
	bounds     rendering.Rect
	background rendering.RectNode
	label      rendering.TextNode
	onClick    func()
	hovered    bool
}

// NewButton creates a button and adds it to host.
func NewButton(host Host, config ButtonConfig) *Button {
	if config.Scale <= 0 {
		config.Scale = 1
	}
	if config.FontSize <= 0 {
		config.FontSize = 16
	}
	b := &Button{
		host:    host,
		bounds:  rendering.RectFromCenter(config.X, config.Y, config.Width*config.Scale, config.Height*config.Scale),
		onClick: config.OnClick,
	}
	b.name = config.Name

	style := rendering.TextStyle{
		Color:      config.TextColor,
		FontFamily: config.FontFamily,
		FontSize:   config.FontSize,
	}
	layout := layoutText(host.Measurer(), config.Text, style, 0)

	surface := host.Surface()
	b.background = surface.AddRect(b.bounds, config.Color)
	b.label = surface.AddText(rendering.Offset{
		X: config.X - layout.Size.Width/2,
		Y: config.Y - layout.Size.Height/2,
	}, config.Text, style)
	b.own(b.background, b.label)

	b.track(host.OnPointer(b.handlePointer))
	return b
}

// SetClickCallback replaces the click handler.
func (b *Button) SetClickCallback(fn func()) {
	b.onClick = fn
}

// Click runs the click handler as if the button had been pressed.
func (b *Button) Click() {
	if b.onClick != nil {
		b.onClick()
	}
}

// SetHighlight dims the background when on.
func (b *Button) SetHighlight(on bool) {
	if on {
		b.background.SetAlpha(highlightAlpha)
		return
	}
	b.background.SetAlpha(1)
}

// Hovered reports whether the pointer is over the button.
func (b *Button) Hovered() bool {
	return b.hovered
}

// Text returns the label.
func (b *Button) Text() string {
	return b.label.Text()
}

// Bounds returns the scaled background rectangle.
func (b *Button) Bounds() rendering.Rect {
	return b.bounds
}

// Destroy removes the button from its scene.
func (b *Button) Destroy() {
	if b.hovered {
		b.host.SetCursor(CursorDefault)
	}
	b.release(b.host.Surface())
}

func (b *Button) handlePointer(ev input.PointerEvent) {
	inside := b.bounds.Contains(ev.X, ev.Y)
	switch ev.Phase {
	case input.PointerMove, input.PointerDown:
		b.setHovered(inside)
		if ev.Phase == input.PointerDown && inside {
			b.Click()
		}
	case input.PointerCancel:
		b.setHovered(false)
	}
}

func (b *Button) setHovered(hovered bool) {
	if b.hovered == hovered {
		return
	}
	b.hovered = hovered
	b.SetHighlight(hovered)
	if hovered {
		b.host.SetCursor(CursorPointer)
	} else {
		b.host.SetCursor(CursorDefault)
	}
}
