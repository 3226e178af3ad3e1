package widgets

import (
	"unicode/utf8"

	"github.com/go-drift/caret/pkg/animation"
	"github.com/go-drift/caret/pkg/focus"
	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/rendering"
	drifttest "github.com/go-drift/caret/pkg/testing"
)

// monoMeasurer gives every rune an advance of half the font size.
type monoMeasurer struct{}

func (monoMeasurer) MeasureWidth(text string, style rendering.TextStyle) float64 {
	return float64(utf8.RuneCountInString(text)) * style.FontSize / 2
}

// fakeHost is a Host without fonts or a frame loop.
type fakeHost struct {
	layer     *rendering.Layer
	clock     *drifttest.FakeClock
	scheduler *animation.Scheduler
	bridge    *drifttest.RecordingBridge
	views     *platform.PlatformViewRegistry
	device    platform.Capabilities
	scope     *focus.Scope
	pointer   []func(input.PointerEvent)
	keys      []func(input.KeyEvent)
	cursors   []string
}

func newFakeHost(touch bool) *fakeHost {
	caps := platform.Capabilities{Touch: touch}
	clock := drifttest.NewFakeClock()
	bridge := drifttest.NewRecordingBridge(caps)
	return &fakeHost{
		layer:     rendering.NewLayer(),
		clock:     clock,
		scheduler: animation.NewScheduler(clock),
		bridge:    bridge,
		views:     platform.NewPlatformViewRegistry(platform.NewMessenger(bridge)),
		device:    caps,
		scope:     focus.NewScope(),
	}
}

func (h *fakeHost) Surface() rendering.Surface            { return h.layer }
func (h *fakeHost) Measurer() rendering.TextMeasurer      { return monoMeasurer{} }
func (h *fakeHost) Scheduler() *animation.Scheduler       { return h.scheduler }
func (h *fakeHost) Device() platform.DeviceInfo           { return h.device }
func (h *fakeHost) Views() *platform.PlatformViewRegistry { return h.views }
func (h *fakeHost) FocusScope() *focus.Scope              { return h.scope }
func (h *fakeHost) SetCursor(name string)                 { h.cursors = append(h.cursors, name) }

func (h *fakeHost) OnPointer(fn func(input.PointerEvent)) func() {
	h.pointer = append(h.pointer, fn)
	idx := len(h.pointer) - 1
	return func() { h.pointer[idx] = nil }
}

func (h *fakeHost) OnKey(fn func(input.KeyEvent)) func() {
	h.keys = append(h.keys, fn)
	idx := len(h.keys) - 1
	return func() { h.keys[idx] = nil }
}

func (h *fakeHost) pointerAt(phase input.PointerPhase, x, y float64) {
	for _, fn := range h.pointer {
		if fn != nil {
			fn(input.PointerEvent{Phase: phase, X: x, Y: y})
		}
	}
}

func (h *fakeHost) key(key string) {
	for _, fn := range h.keys {
		if fn != nil {
			fn(input.KeyOf(key))
		}
	}
}

func (h *fakeHost) cursor() string {
	if len(h.cursors) == 0 {
		return CursorDefault
	}
	return h.cursors[len(h.cursors)-1]
}
