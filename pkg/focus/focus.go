// Package focus provides the focus state machine owned by each focusable
// widget, and an optional scope that moves focus between widgets.
package focus

import (
	"github.com/go-drift/caret/pkg/errors"
	"github.com/go-drift/caret/pkg/rendering"
)

// State is the focus state of one widget.
type State int

const (
	// Unfocused is the initial state.
	Unfocused State = iota

	// Focused means the widget receives key input.
	Focused
)

func (s State) String() string {
	if s == Focused {
		return "focused"
	}
	return "unfocused"
}

// BoundsFunc returns a widget's current hit-test bounds.
type BoundsFunc func() rendering.Rect

// Controller owns a widget's focus state and its transition rules.
//
// Transitions happen on pointer-down events, on explicit Focus/Blur calls,
// and when the platform reports the native field lost focus. Requests for
// the current state are ignored: change hooks only run on real transitions.
type Controller struct {
	// DebugLabel names the controller in log records.
	DebugLabel string

	bounds  BoundsFunc
	state   State
	onFocus []func()
	onBlur  []func()
	scope   *Scope
}

// NewController creates an unfocused controller hit-testing against bounds.
func NewController(bounds BoundsFunc) *Controller {
	return &Controller{bounds: bounds}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// IsFocused reports whether the state is Focused.
func (c *Controller) IsFocused() bool {
	return c.state == Focused
}

// OnFocus registers a hook run on every transition to Focused. Hooks run in
// registration order.
func (c *Controller) OnFocus(fn func()) {
	c.onFocus = append(c.onFocus, fn)
}

// OnBlur registers a hook run on every transition to Unfocused.
func (c *Controller) OnBlur(fn func()) {
	c.onBlur = append(c.onBlur, fn)
}

// HandlePointerDown applies the pointer rules: a press inside the bounds
// focuses, a press outside while focused blurs. It reports whether the
// state changed.
func (c *Controller) HandlePointerDown(x, y float64) bool {
	inside := c.bounds != nil && c.bounds().Contains(x, y)
	if inside {
		return c.Focus()
	}
	return c.Blur()
}

// Focus transitions to Focused. It reports whether the state changed.
func (c *Controller) Focus() bool {
	if c.state == Focused {
		return false
	}
	if c.scope != nil {
		c.scope.setPrimaryFocus(c)
	}
	c.transition(Focused)
	return true
}

// Blur transitions to Unfocused. It reports whether the state changed.
func (c *Controller) Blur() bool {
	if c.state == Unfocused {
		return false
	}
	if c.scope != nil && c.scope.primary == c {
		c.scope.primary = nil
	}
	c.transition(Unfocused)
	return true
}

// Detach drops all hooks and leaves any scope. The state is left as is.
func (c *Controller) Detach() {
	c.onFocus = nil
	c.onBlur = nil
	if c.scope != nil {
		c.scope.Remove(c)
	}
}

func (c *Controller) transition(to State) {
	c.state = to
	errors.Logger().Debug("focus changed", "label", c.DebugLabel, "state", to.String())
	hooks := c.onBlur
	if to == Focused {
		hooks = c.onFocus
	}
	for _, fn := range hooks {
		fn()
	}
}

// Scope groups controllers so at most one of them is focused, and moves
// focus between them in registration order.
type Scope struct {
	children []*Controller
	primary  *Controller
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Add places c in the scope. A controller belongs to at most one scope.
func (s *Scope) Add(c *Controller) {
	if c.scope != nil {
		c.scope.Remove(c)
	}
	c.scope = s
	s.children = append(s.children, c)
	if c.IsFocused() {
		s.setPrimaryFocus(c)
	}
}

// Remove takes c out of the scope.
func (s *Scope) Remove(c *Controller) {
	for i, child := range s.children {
		if child == c {
			s.children = append(s.children[:i], s.children[i+1:]...)
			break
		}
	}
	if s.primary == c {
		s.primary = nil
	}
	if c.scope == s {
		c.scope = nil
	}
}

// Len returns the number of controllers in the scope.
func (s *Scope) Len() int {
	return len(s.children)
}

// PrimaryFocus returns the focused controller, or nil.
func (s *Scope) PrimaryFocus() *Controller {
	return s.primary
}

// MoveFocus moves focus by delta positions, wrapping around. With nothing
// focused, +1 focuses the first controller and -1 the last. It reports
// whether focus moved.
func (s *Scope) MoveFocus(delta int) bool {
	count := len(s.children)
	if count == 0 || delta == 0 {
		return false
	}
	current := s.indexOf(s.primary)
	next := 0
	if current < 0 {
		if delta < 0 {
			next = count - 1
		}
	} else {
		next = wrapIndex(current+delta, count)
	}
	target := s.children[next]
	if target == s.primary {
		return false
	}
	return target.Focus()
}

func (s *Scope) indexOf(c *Controller) int {
	if c == nil {
		return -1
	}
	for i, child := range s.children {
		if child == c {
			return i
		}
	}
	return -1
}

// setPrimaryFocus blurs the previous primary before c takes focus.
func (s *Scope) setPrimaryFocus(c *Controller) {
	if s.primary == c {
		return
	}
	previous := s.primary
	s.primary = c
	if previous != nil && previous.IsFocused() {
		previous.transition(Unfocused)
	}
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}
