package widgets

import (
	"time"

	"github.com/go-drift/caret/pkg/animation"
	"github.com/go-drift/caret/pkg/rendering"
)

// BlinkPeriod is how long the caret stays shown or hidden while focused.
const BlinkPeriod = 500 * time.Millisecond

// caretGlyph is drawn as the caret.
const caretGlyph = "|"

// caretGap separates the caret from the character before it.
const caretGap = 1.0

// caretRenderer places the caret after the text before it and blinks it
// while the field is focused.
type caretRenderer struct {
	measurer  rendering.TextMeasurer
	scheduler *animation.Scheduler
	origin    rendering.Offset
	style     rendering.TextStyle
	node      rendering.TextNode
	blink     *animation.Interval
}

func newCaretRenderer(host Host, origin rendering.Offset, style rendering.TextStyle) *caretRenderer {
	node := host.Surface().AddText(origin, caretGlyph, style)
	node.SetVisible(false)
	return &caretRenderer{
		measurer:  host.Measurer(),
		scheduler: host.Scheduler(),
		origin:    origin,
		style:     style,
		node:      node,
	}
}

// offset returns the caret x offset from the text origin for the given
// text before the caret.
func (c *caretRenderer) offset(beforeCaret string) float64 {
	if beforeCaret == "" {
		return 0
	}
	return c.measurer.MeasureWidth(beforeCaret, c.style) + caretGap
}

// place moves the caret to follow beforeCaret.
func (c *caretRenderer) place(beforeCaret string) {
	c.node.SetPosition(rendering.Offset{
		X: c.origin.X + c.offset(beforeCaret),
		Y: c.origin.Y,
	})
}

// start shows the caret and restarts the blink cycle.
func (c *caretRenderer) start() {
	c.blink.Stop()
	c.node.SetVisible(true)
	c.blink = c.scheduler.Every(BlinkPeriod, func() {
		c.node.SetVisible(!c.node.Visible())
	})
}

// stop cancels the blink cycle and hides the caret.
func (c *caretRenderer) stop() {
	c.blink.Stop()
	c.blink = nil
	c.node.SetVisible(false)
}

func (c *caretRenderer) blinking() bool {
	return c.blink.IsActive()
}

func (c *caretRenderer) visible() bool {
	return c.node.Visible()
}

func (c *caretRenderer) x() float64 {
	return c.node.Position().X
}
