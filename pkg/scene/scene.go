// Package scene hosts widgets: it owns the drawing surface, the frame
// scheduler, the native bridge and focus scope of one scene, and routes
// pointer and key events to subscribed widgets.
//
// A scene is driven from a single event loop. Events are delivered with
// DispatchPointer and DispatchKey, and Step runs posted callbacks and due
// timers once per frame.
package scene

import (
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/go-drift/caret/pkg/animation"
	"github.com/go-drift/caret/pkg/errors"
	"github.com/go-drift/caret/pkg/focus"
	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/rendering"
)

// Defaults for Options.
const (
	DefaultWidth  = 300.0
	DefaultHeight = 600.0
)

// DefaultBackground is the scene clear color.
var DefaultBackground = rendering.ColorWhite

// Options configures a Scene. The zero value is usable.
type Options struct {
	// Width and Height of the scene in pixels.
	Width, Height float64

	// Background clears the scene before rendering.
	Background rendering.Color

	// Clock drives timers. Defaults to the system clock.
	Clock animation.Clock

	// Bridge connects to native code. Without one, native views cannot be
	// created and widgets take input from key events only.
	Bridge platform.NativeBridge

	// Fonts measures and draws text. Defaults to the shared font manager.
	Fonts *rendering.FontManager

	// Device answers the touch capability query. When nil the device is
	// asked over the bridge.
	Device platform.DeviceInfo

	// QueueNativeEvents posts native callbacks onto the scene loop instead
	// of running them when the bridge delivers them. Set it when the bridge
	// calls in from another goroutine.
	QueueNativeEvents bool
}

// Object is anything placed in a scene by name.
type Object interface {
	Name() string
	Destroy()
}

type listener[E any] struct {
	fn      func(E)
	removed bool
}

// Scene is a rendered scene hosting widgets. It implements widgets.Host.
type Scene struct {
	size       rendering.Size
	background rendering.Color
	layer      *rendering.Layer
	fonts      *rendering.FontManager
	scheduler  *animation.Scheduler
	messenger  *platform.Messenger
	views      *platform.PlatformViewRegistry
	device     platform.DeviceInfo
	scope      *focus.Scope
	cursor     string
	objects    []Object

	pointerListeners []*listener[input.PointerEvent]
	keyListeners     []*listener[input.KeyEvent]

	queueMu sync.Mutex
	queue   []func()

	destroyed bool
}

// New creates a scene.
func New(opts Options) *Scene {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Background == 0 {
		opts.Background = DefaultBackground
	}
	if opts.Fonts == nil {
		opts.Fonts = rendering.DefaultFontManager()
	}

	s := &Scene{
		size:       rendering.Size{Width: opts.Width, Height: opts.Height},
		background: opts.Background,
		layer:      rendering.NewLayer(),
		fonts:      opts.Fonts,
		scheduler:  animation.NewScheduler(opts.Clock),
		messenger:  platform.NewMessenger(opts.Bridge),
		scope:      focus.NewScope(),
		cursor:     "default",
	}
	s.views = platform.NewPlatformViewRegistry(s.messenger)
	if opts.QueueNativeEvents {
		s.views.SetDispatcher(s.Post)
	}

	s.device = opts.Device
	if s.device == nil {
		s.device = platform.QueryCapabilities(s.messenger)
	}
	errors.Logger().Debug("scene created",
		"width", opts.Width,
		"height", opts.Height,
		"touch", s.device.IsTouchDevice(),
	)
	return s
}

// Size returns the scene size.
func (s *Scene) Size() rendering.Size {
	return s.size
}

// Layer returns the retained layer widgets draw on.
func (s *Scene) Layer() *rendering.Layer {
	return s.layer
}

// Surface implements widgets.Host.
func (s *Scene) Surface() rendering.Surface {
	return s.layer
}

// Measurer implements widgets.Host.
func (s *Scene) Measurer() rendering.TextMeasurer {
	return s.fonts
}

// Fonts returns the scene's font manager.
func (s *Scene) Fonts() *rendering.FontManager {
	return s.fonts
}

// Scheduler implements widgets.Host.
func (s *Scene) Scheduler() *animation.Scheduler {
	return s.scheduler
}

// Device implements widgets.Host.
func (s *Scene) Device() platform.DeviceInfo {
	return s.device
}

// Views implements widgets.Host.
func (s *Scene) Views() *platform.PlatformViewRegistry {
	return s.views
}

// Messenger returns the scene's platform messenger.
func (s *Scene) Messenger() *platform.Messenger {
	return s.messenger
}

// FocusScope implements widgets.Host.
func (s *Scene) FocusScope() *focus.Scope {
	return s.scope
}

// SetCursor implements widgets.Host.
func (s *Scene) SetCursor(name string) {
	if s.cursor == name {
		return
	}
	s.cursor = name
	errors.Logger().Debug("cursor changed", "cursor", name)
}

// Cursor returns the current cursor name.
func (s *Scene) Cursor() string {
	return s.cursor
}

// OnPointer implements widgets.Host.
func (s *Scene) OnPointer(fn func(input.PointerEvent)) func() {
	l := &listener[input.PointerEvent]{fn: fn}
	s.pointerListeners = append(s.pointerListeners, l)
	return func() {
		l.removed = true
		s.pointerListeners = removeListener(s.pointerListeners, l)
	}
}

// OnKey implements widgets.Host.
func (s *Scene) OnKey(fn func(input.KeyEvent)) func() {
	l := &listener[input.KeyEvent]{fn: fn}
	s.keyListeners = append(s.keyListeners, l)
	return func() {
		l.removed = true
		s.keyListeners = removeListener(s.keyListeners, l)
	}
}

// ListenerCount returns the number of pointer and key subscriptions.
func (s *Scene) ListenerCount() (pointer, key int) {
	return len(s.pointerListeners), len(s.keyListeners)
}

// DispatchPointer delivers a pointer event to every subscriber, in
// subscription order. A panicking subscriber is reported and skipped.
func (s *Scene) DispatchPointer(ev input.PointerEvent) {
	dispatch(s.pointerListeners, ev, "scene.DispatchPointer")
}

// DispatchKey delivers a key event to every subscriber. Tab moves focus
// between focusable widgets.
func (s *Scene) DispatchKey(ev input.KeyEvent) {
	if ev.Key == input.KeyTab && !ev.Unresolved() {
		delta := 1
		if ev.Shift {
			delta = -1
		}
		s.scope.MoveFocus(delta)
		return
	}
	dispatch(s.keyListeners, ev, "scene.DispatchKey")
}

func dispatch[E any](listeners []*listener[E], ev E, op string) {
	snapshot := make([]*listener[E], len(listeners))
	copy(snapshot, listeners)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		call(op, func() { l.fn(ev) })
	}
}

func call(op string, fn func()) {
	defer errors.Recover(op)
	fn()
}

func removeListener[E any](listeners []*listener[E], target *listener[E]) []*listener[E] {
	for i, l := range listeners {
		if l == target {
			return append(listeners[:i], listeners[i+1:]...)
		}
	}
	return listeners
}

// Post queues fn to run on the next Step. It is safe to call from any
// goroutine.
func (s *Scene) Post(fn func()) {
	if fn == nil {
		return
	}
	s.queueMu.Lock()
	s.queue = append(s.queue, fn)
	s.queueMu.Unlock()
}

// Step runs posted callbacks, then fires due timers.
func (s *Scene) Step() {
	s.queueMu.Lock()
	callbacks := s.queue
	s.queue = nil
	s.queueMu.Unlock()

	for _, fn := range callbacks {
		call("scene.Step", fn)
	}
	call("scene.Step", s.scheduler.Step)
}

// Add registers obj with the scene so it can be found by name and is
// destroyed with the scene.
func (s *Scene) Add(obj Object) {
	s.objects = append(s.objects, obj)
}

// Object returns the first object with the given name, or nil.
func (s *Scene) Object(name string) Object {
	for _, obj := range s.objects {
		if obj.Name() == name {
			return obj
		}
	}
	return nil
}

// Objects returns the registered objects in insertion order.
func (s *Scene) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Remove destroys obj and forgets it.
func (s *Scene) Remove(obj Object) {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	obj.Destroy()
}

// Render draws the scene into a new RGBA image.
func (s *Scene) Render() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, int(s.size.Width), int(s.size.Height)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(s.background.NRGBA(1)), image.Point{}, draw.Src)
	s.layer.Render(dst, s.fonts)
	return dst
}

// Destroy destroys every object, stops all timers and drops listeners.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for i := len(s.objects) - 1; i >= 0; i-- {
		call("scene.Destroy", s.objects[i].Destroy)
	}
	s.objects = nil
	s.scheduler.StopAll()
	s.pointerListeners = nil
	s.keyListeners = nil
}
