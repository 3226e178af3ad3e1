package widgets

import (
	"github.com/go-drift/caret/pkg/focus"
	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/rendering"
	"github.com/go-drift/caret/pkg/textedit"
)

// Defaults applied by NewTextInputBox to zero config fields.
const (
	DefaultTextInputWidth  = 300.0
	DefaultTextInputHeight = 40.0
	DefaultFontSize        = 18.0
	DefaultPlaceholder     = "Enter text..."
)

// textPadding is the inset of the text from the box's top-left corner.
const textPadding = 10.0

// shadowOffset is how far the drop shadow sits below and right of the box.
const shadowOffset = 2.0

var (
	textInputFill             = rendering.Hex(0xf0f0f0)
	textInputStroke           = rendering.Hex(0x4e342e)
	textInputFocusFill        = rendering.Hex(0xffffff)
	textInputFocusStroke      = rendering.Hex(0x7b5e57)
	textInputShadow           = rendering.ColorBlack.WithAlpha(51)
	textInputTextColor        = rendering.Hex(0x333333)
	textInputPlaceholderColor = rendering.Hex(0x999999)
)

const textInputStrokeWidth = 2.0

// TextInputConfig configures a TextInputBox. It is read once at creation.
type TextInputConfig struct {
	// Name identifies the box in its scene.
	Name string

	// X and Y are the center of the box in scene coordinates.
	X, Y float64

	// Width and Height default to 300x40.
	Width, Height float64

	// MaxLength is the maximum number of characters. Defaults to 50.
	MaxLength int

	// FontSize in pixels. Defaults to 18.
	FontSize float64

	// FontFamily names a registered font. Unknown families fall back to
	// the default font.
	FontFamily string

	// Placeholder is shown while the box is empty and unfocused.
	// Defaults to "Enter text...".
	Placeholder string

	// Accept decides which typed characters are inserted.
	// Defaults to textedit.DefaultAccept.
	Accept textedit.AcceptFunc

	// OnSubmit is called with the value when the soft keyboard's action
	// button is pressed.
	OnSubmit func(value string)
}

func (c TextInputConfig) withDefaults() TextInputConfig {
	if c.Width <= 0 {
		c.Width = DefaultTextInputWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultTextInputHeight
	}
	if c.MaxLength <= 0 {
		c.MaxLength = textedit.DefaultMaxLength
	}
	if c.FontSize <= 0 {
		c.FontSize = DefaultFontSize
	}
	if c.FontFamily == "" {
		c.FontFamily = rendering.DefaultFontFamily
	}
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	return c
}

// TextInputBox is a single-line text field drawn in a scene.
//
// It is edited by key events while focused and, on touch devices, through a
// hidden native field that raises the soft keyboard. Pressing inside the
// box focuses it; pressing anywhere else blurs it.
type TextInputBox struct {
	objectBase
	host   Host
	config TextInputConfig
	bounds rendering.Rect

	model  *textedit.Model
	focus  *focus.Controller
	caret  *caretRenderer
	direct *directInput
	proxy  *proxyInput

	shadow      rendering.RectNode
	background  rendering.RectNode
	placeholder rendering.TextNode
	text        rendering.TextNode
}

// NewTextInputBox creates a text input box and adds it to host.
func NewTextInputBox(host Host, config TextInputConfig) *TextInputBox {
	config = config.withDefaults()
	b := &TextInputBox{
		host:   host,
		config: config,
		bounds: rendering.RectFromCenter(config.X, config.Y, config.Width, config.Height),
		model:  textedit.NewModel(config.MaxLength, config.Accept),
	}
	b.name = config.Name

	surface := host.Surface()
	b.shadow = surface.AddRect(b.bounds.Translate(shadowOffset, shadowOffset), textInputShadow)
	b.background = surface.AddRect(b.bounds, textInputFill)
	b.background.SetStroke(textInputStroke, textInputStrokeWidth)

	origin := rendering.Offset{X: b.bounds.Left + textPadding, Y: b.bounds.Top + textPadding}
	textStyle := rendering.TextStyle{
		Color:      textInputTextColor,
		FontFamily: config.FontFamily,
		FontSize:   config.FontSize,
	}
	placeholderStyle := textStyle
	placeholderStyle.Color = textInputPlaceholderColor
	placeholderStyle.FontStyle = rendering.FontStyleItalic

	b.placeholder = surface.AddText(origin, config.Placeholder, placeholderStyle)
	b.text = surface.AddText(origin, "", textStyle)
	b.caret = newCaretRenderer(host, origin, textStyle)
	b.own(b.shadow, b.background, b.placeholder, b.text, b.caret.node)

	b.focus = focus.NewController(b.Bounds)
	b.focus.DebugLabel = "TextInputBox"
	b.focus.OnFocus(b.didFocus)
	b.focus.OnBlur(b.didBlur)
	if scope := host.FocusScope(); scope != nil {
		scope.Add(b.focus)
	}

	b.direct = &directInput{model: b.model, focus: b.focus, onEdit: b.didEdit}
	b.proxy = &proxyInput{
		model:    b.model,
		focus:    b.focus,
		onEdit:   b.didEdit,
		onSubmit: config.OnSubmit,
	}
	b.proxy.attach(host, platform.TextInputViewConfig{
		FontFamily:  config.FontFamily,
		FontSize:    config.FontSize,
		MaxLength:   config.MaxLength,
		Placeholder: config.Placeholder,
		InputAction: platform.TextInputActionDone,
	}, b.bounds)

	b.track(host.OnPointer(b.handlePointer))
	b.track(host.OnKey(b.handleKey))

	b.refresh()
	return b
}

// Value returns the current text.
func (b *TextInputBox) Value() string {
	return b.model.Value()
}

// SetValue replaces the text, truncated to the maximum length, and moves
// the caret to the end.
func (b *TextInputBox) SetValue(value string) {
	b.model.SetValue(value)
	b.didEdit()
}

// EditState returns the text and caret index.
func (b *TextInputBox) EditState() textedit.EditState {
	return b.model.State()
}

// Bounds returns the box's rectangle in scene coordinates.
func (b *TextInputBox) Bounds() rendering.Rect {
	return b.bounds
}

// IsFocused reports whether the box receives key input.
func (b *TextInputBox) IsFocused() bool {
	return b.focus.IsFocused()
}

// Focus focuses the box as if it had been pressed.
func (b *TextInputBox) Focus() {
	b.focus.Focus()
}

// Blur removes focus from the box.
func (b *TextInputBox) Blur() {
	b.focus.Blur()
}

// Destroy stops the caret, releases the native field and removes the box
// from its scene. The box must not be used afterwards.
func (b *TextInputBox) Destroy() {
	if b.destroyed {
		return
	}
	b.caret.stop()
	b.proxy.dispose()
	b.focus.Detach()
	b.release(b.host.Surface())
}

func (b *TextInputBox) handlePointer(ev input.PointerEvent) {
	if ev.Phase != input.PointerDown {
		return
	}
	b.focus.HandlePointerDown(ev.X, ev.Y)
}

func (b *TextInputBox) handleKey(ev input.KeyEvent) {
	b.direct.handleKey(ev)
}

func (b *TextInputBox) didFocus() {
	b.model.MoveToEnd()
	b.background.SetFill(textInputFocusFill)
	b.background.SetStroke(textInputFocusStroke, textInputStrokeWidth)
	b.caret.start()
	b.refresh()
	b.proxy.focusField()
}

func (b *TextInputBox) didBlur() {
	b.caret.stop()
	b.background.SetFill(textInputFill)
	b.background.SetStroke(textInputStroke, textInputStrokeWidth)
	b.refresh()
	b.proxy.blurField()
}

// didEdit redraws after the model changed and mirrors it to the native field.
func (b *TextInputBox) didEdit() {
	b.refresh()
	b.proxy.push()
}

func (b *TextInputBox) refresh() {
	b.text.SetText(b.model.Value())
	b.caret.place(b.model.BeforeCaret())
	b.placeholder.SetVisible(b.model.Len() == 0 && !b.focus.IsFocused())
}
