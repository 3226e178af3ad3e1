package widgets

import (
	"fmt"
	"strings"

	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/rendering"
)

// LabelAlign positions text inside a label.
type LabelAlign int

const (
	AlignCenter LabelAlign = iota
	AlignLeft
	AlignRight
)

func (a LabelAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// ParseLabelAlign parses "left", "center" or "right".
func ParseLabelAlign(s string) (LabelAlign, error) {
	switch strings.ToLower(s) {
	case "", "center":
		return AlignCenter, nil
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignCenter, fmt.Errorf("unknown alignment %q", s)
	}
}

// labelHoverColor fills an interactive label under the pointer.
var labelHoverColor = rendering.Hex(0x666666)

// LabelConfig configures a Label. Start from DefaultLabelConfig.
type LabelConfig struct {
	Name string
	// X and Y are the center of the label.
	X, Y float64

	// Width is the label width when FixedWidth is set.
	Width      float64
	FixedWidth bool

	FontSize   float64
	FontFamily string
	TextColor  rendering.Color

	BackgroundColor rendering.Color
	BackgroundAlpha float64
	CornerRadius    float64
	Padding         float64
	Align           LabelAlign

	// AutoFontResize shrinks the font of a fixed-width label, from
	// MaxFontSize down to MinFontSize, until the text fits on one line.
	AutoFontResize bool
	MaxFontSize    float64
	MinFontSize    float64
}

// DefaultLabelConfig returns a centered white-on-black label.
func DefaultLabelConfig() LabelConfig {
	return LabelConfig{
		Width:           200,
		FontSize:        20,
		FontFamily:      rendering.DefaultFontFamily,
		TextColor:       rendering.ColorWhite,
		BackgroundColor: rendering.ColorBlack,
		BackgroundAlpha: 0.8,
		CornerRadius:    10,
		Padding:         10,
		Align:           AlignCenter,
		AutoFontResize:  true,
		MaxFontSize:     24,
		MinFontSize:     10,
	}
}

// Label is text on a rounded background, sized to its content unless it has
// a fixed width, in which case long text wraps.
type Label struct {
	objectBase
	host       Host
	config     LabelConfig
	text       string
	fontSize   float64
	bounds     rendering.Rect
	background rendering.RectNode
	lines      []rendering.TextNode

	onClick     func()
	hovered     bool
	interactive bool
}

// NewLabel creates a label and adds it to host.
func NewLabel(host Host, text string, config LabelConfig) *Label {
	l := &Label{
		host:     host,
		config:   config,
		text:     text,
		fontSize: config.FontSize,
	}
	l.name = config.Name
	l.background = host.Surface().AddRect(rendering.Rect{}, config.BackgroundColor)
	l.own(l.background)
	l.redraw()
	return l
}

// Text returns the label text.
func (l *Label) Text() string {
	return l.text
}

// SetText replaces the text and resizes the label.
func (l *Label) SetText(text string) {
	l.text = text
	l.redraw()
}

// SetBackgroundColor changes the background fill and opacity.
func (l *Label) SetBackgroundColor(color rendering.Color, alpha float64) {
	l.config.BackgroundColor = color
	l.config.BackgroundAlpha = alpha
	l.redraw()
}

// SetTextColor changes the text color.
func (l *Label) SetTextColor(color rendering.Color) {
	l.config.TextColor = color
	for _, line := range l.lines {
		style := line.Style()
		style.Color = color
		line.SetStyle(style)
	}
}

// SetFontSize changes the font size and resizes the label.
func (l *Label) SetFontSize(size float64) {
	l.config.FontSize = size
	l.fontSize = size
	l.redraw()
}

// FontSize returns the font size in use, after any automatic resize.
func (l *Label) FontSize() float64 {
	return l.fontSize
}

// SetInteractive makes the label clickable. The background turns grey
// while the pointer is over it.
func (l *Label) SetInteractive(onClick func()) {
	l.onClick = onClick
	if !l.interactive {
		l.interactive = true
		l.track(l.host.OnPointer(l.handlePointer))
	}
}

// Bounds returns the background rectangle.
func (l *Label) Bounds() rendering.Rect {
	return l.bounds
}

// Destroy removes the label from its scene.
func (l *Label) Destroy() {
	if l.destroyed {
		return
	}
	for _, line := range l.lines {
		l.host.Surface().Remove(line)
	}
	l.lines = nil
	l.release(l.host.Surface())
}

func (l *Label) style() rendering.TextStyle {
	return rendering.TextStyle{
		Color:      l.config.TextColor,
		FontFamily: l.config.FontFamily,
		FontSize:   l.fontSize,
	}
}

func (l *Label) redraw() {
	measurer := l.host.Measurer()
	pad := l.config.Padding

	var layout *rendering.TextLayout
	if l.config.FixedWidth {
		target := l.config.Width - pad*2
		if l.config.AutoFontResize {
			l.fontSize = fitFontSize(measurer, l.text, l.style(), target, l.config.MaxFontSize, l.config.MinFontSize)
		}
		layout = layoutText(measurer, l.text, l.style(), target)
	} else {
		layout = layoutText(measurer, l.text, l.style(), 0)
	}

	width := layout.Size.Width + pad*2
	if l.config.FixedWidth {
		width = l.config.Width
	}
	height := layout.Size.Height + pad*2
	l.bounds = rendering.RectFromCenter(l.config.X, l.config.Y, width, height)

	fill := l.config.BackgroundColor
	alpha := l.config.BackgroundAlpha
	if l.hovered {
		fill, alpha = labelHoverColor, 1
	}
	l.background.SetPosition(l.bounds.TopLeft())
	l.background.SetSize(l.bounds.Size())
	l.background.SetFill(fill)
	l.background.SetAlpha(alpha)
	l.background.SetCornerRadius(l.config.CornerRadius)

	surface := l.host.Surface()
	for _, line := range l.lines {
		surface.Remove(line)
	}
	l.lines = l.lines[:0]
	top := l.config.Y - layout.Size.Height/2
	for i, line := range layout.Lines {
		var x float64
		switch l.config.Align {
		case AlignLeft:
			x = l.bounds.Left + pad
		case AlignRight:
			x = l.bounds.Right - pad - line.Width
		default:
			x = l.config.X - line.Width/2
		}
		pos := rendering.Offset{X: x, Y: top + float64(i)*layout.LineHeight}
		l.lines = append(l.lines, surface.AddText(pos, line.Text, l.style()))
	}
}

func (l *Label) handlePointer(ev input.PointerEvent) {
	inside := l.bounds.Contains(ev.X, ev.Y)
	if ev.Phase == input.PointerCancel {
		inside = false
	}
	if inside != l.hovered {
		l.hovered = inside
		l.redraw()
	}
	if ev.Phase == input.PointerDown && inside && l.onClick != nil {
		l.onClick()
	}
}

// fitFontSize returns the largest size between maxSize and minSize,
// stepping by one pixel, at which text fits in width on one line.
func fitFontSize(m rendering.TextMeasurer, text string, style rendering.TextStyle, width, maxSize, minSize float64) float64 {
	if maxSize <= 0 {
		maxSize = style.FontSize
	}
	if minSize <= 0 || minSize > maxSize {
		minSize = maxSize
	}
	size := maxSize
	for ; size > minSize; size-- {
		style.FontSize = size
		if m.MeasureWidth(text, style) <= width {
			return size
		}
	}
	return minSize
}

// layoutText lays text out with the measurer, wrapping when it can.
func layoutText(m rendering.TextMeasurer, text string, style rendering.TextStyle, maxWidth float64) *rendering.TextLayout {
	if layouter, ok := m.(rendering.TextLayouter); ok {
		return layouter.LayoutText(text, style, maxWidth)
	}
	width := m.MeasureWidth(text, style)
	lineHeight := style.FontSize * 1.2
	return &rendering.TextLayout{
		Text:       text,
		Style:      style,
		Size:       rendering.Size{Width: width, Height: lineHeight},
		Ascent:     style.FontSize * 0.8,
		LineHeight: lineHeight,
		Lines:      []rendering.TextLine{{Text: text, Width: width}},
	}
}
