package widgets

import (
	"github.com/go-drift/caret/pkg/animation"
	"github.com/go-drift/caret/pkg/focus"
	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/rendering"
)

// Cursor names accepted by Host.SetCursor.
const (
	CursorDefault = "default"
	CursorPointer = "pointer"
	CursorText    = "text"
)

// Host is the scene a widget lives in. It supplies drawing, timing, native
// views and the event streams; scene.Scene implements it.
type Host interface {
	Surface() rendering.Surface
	Measurer() rendering.TextMeasurer
	Scheduler() *animation.Scheduler
	Device() platform.DeviceInfo
	Views() *platform.PlatformViewRegistry
	FocusScope() *focus.Scope

	// OnPointer subscribes to pointer events. The returned func unsubscribes.
	OnPointer(fn func(input.PointerEvent)) (remove func())
	// OnKey subscribes to key events. The returned func unsubscribes.
	OnKey(fn func(input.KeyEvent)) (remove func())

	SetCursor(name string)
}

// Object is a widget placed in a scene.
type Object interface {
	Name() string
	SetName(name string)
	Bounds() rendering.Rect
	Destroy()
}

// objectBase holds the name and the event subscriptions every widget keeps.
type objectBase struct {
	name         string
	unsubscribes []func()
	nodes        []rendering.Node
	destroyed    bool
}

// Name returns the object's name.
func (o *objectBase) Name() string {
	return o.name
}

// SetName sets the object's name.
func (o *objectBase) SetName(name string) {
	o.name = name
}

func (o *objectBase) track(unsubscribe func()) {
	o.unsubscribes = append(o.unsubscribes, unsubscribe)
}

func (o *objectBase) own(nodes ...rendering.Node) {
	o.nodes = append(o.nodes, nodes...)
}

// release unsubscribes every listener and removes every owned node. It
// reports false when the object was already released.
func (o *objectBase) release(surface rendering.Surface) bool {
	if o.destroyed {
		return false
	}
	o.destroyed = true
	for _, unsubscribe := range o.unsubscribes {
		unsubscribe()
	}
	o.unsubscribes = nil
	for _, n := range o.nodes {
		surface.Remove(n)
	}
	o.nodes = nil
	return true
}
