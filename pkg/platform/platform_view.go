package platform

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-drift/caret/pkg/errors"
	"github.com/go-drift/caret/pkg/rendering"
)

// ViewsChannel is the method channel platform views are managed over.
const ViewsChannel = "caret/platform_views"

// PlatformView represents a native view hosted alongside the rendered scene.
type PlatformView interface {
	// ViewID returns the unique identifier for this view.
	ViewID() int64

	// ViewType returns the type identifier for this view (e.g., "textinput").
	ViewType() string

	// Dispose releases Go-side state. The registry notifies native code.
	Dispose()
}

// PlatformViewFactory creates platform views of a specific type.
type PlatformViewFactory interface {
	// Create creates a new platform view instance.
	Create(registry *PlatformViewRegistry, viewID int64, params map[string]any) (PlatformView, error)

	// ViewType returns the view type this factory creates.
	ViewType() string
}

// nativeEventReceiver is implemented by views that accept callbacks from
// native code.
type nativeEventReceiver interface {
	handleNativeEvent(method string, args map[string]any) error
}

// PlatformViewRegistry manages platform view types and instances for one
// scene.
type PlatformViewRegistry struct {
	factories map[string]PlatformViewFactory
	views     map[int64]PlatformView
	nextID    atomic.Int64
	mu        sync.RWMutex
	channel   *MethodChannel

	// dispatch defers native callbacks; nil runs them inline.
	dispatch func(func())
}

// NewPlatformViewRegistry creates a registry speaking over m, with the text
// input view factory registered.
func NewPlatformViewRegistry(m *Messenger) *PlatformViewRegistry {
	r := &PlatformViewRegistry{
		factories: make(map[string]PlatformViewFactory),
		views:     make(map[int64]PlatformView),
		channel:   m.MethodChannel(ViewsChannel),
	}
	r.channel.SetHandler(r.handleMethodCall)
	r.RegisterFactory(textInputViewFactory{})
	return r
}

// SetDispatcher sets how native callbacks reach views. The scene installs a
// dispatcher that posts onto its event loop; the default runs callbacks
// immediately and returns their errors to the bridge. A deferred callback's
// error is only reported, since the bridge call has already returned.
func (r *PlatformViewRegistry) SetDispatcher(fn func(callback func())) {
	r.mu.Lock()
	r.dispatch = fn
	r.mu.Unlock()
}

// DefersEvents reports whether native callbacks are delivered later by a
// dispatcher rather than while the bridge call is in progress.
func (r *PlatformViewRegistry) DefersEvents() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dispatch != nil
}

// RegisterFactory registers a factory for a platform view type.
func (r *PlatformViewRegistry) RegisterFactory(factory PlatformViewFactory) {
	r.mu.Lock()
	r.factories[factory.ViewType()] = factory
	r.mu.Unlock()
}

// Create creates a new platform view of the given type and asks native code
// to build it.
func (r *PlatformViewRegistry) Create(viewType string, params map[string]any) (PlatformView, error) {
	r.mu.RLock()
	factory, ok := r.factories[viewType]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrViewTypeNotFound
	}

	viewID := r.nextID.Add(1)
	view, err := factory.Create(r, viewID, params)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.views[viewID] = view
	r.mu.Unlock()

	_, err = r.channel.Invoke("create", map[string]any{
		"viewId":   viewID,
		"viewType": viewType,
		"params":   params,
	})
	if err != nil {
		r.mu.Lock()
		delete(r.views, viewID)
		r.mu.Unlock()
		return nil, err
	}
	errors.Logger().Debug("platform view created", "viewId", viewID, "viewType", viewType)
	return view, nil
}

// Dispose destroys a platform view. Disposing an unknown id is a no-op.
func (r *PlatformViewRegistry) Dispose(viewID int64) {
	r.mu.Lock()
	view, ok := r.views[viewID]
	if ok {
		delete(r.views, viewID)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	view.Dispose()
	if _, err := r.channel.Invoke("dispose", map[string]any{"viewId": viewID}); err != nil {
		errors.Report(&errors.Error{
			Op:      "platform.PlatformViewRegistry.Dispose",
			Kind:    errors.KindPlatform,
			Channel: ViewsChannel,
			Err:     err,
		})
	}
	errors.Logger().Debug("platform view disposed", "viewId", viewID)
}

// View returns a platform view by ID.
func (r *PlatformViewRegistry) View(viewID int64) PlatformView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.views[viewID]
}

// Len returns the number of live views.
func (r *PlatformViewRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// SetViewGeometry tells native code where a view sits in scene coordinates.
func (r *PlatformViewRegistry) SetViewGeometry(viewID int64, bounds rendering.Rect) error {
	_, err := r.channel.Invoke("setGeometry", map[string]any{
		"viewId": viewID,
		"x":      bounds.Left,
		"y":      bounds.Top,
		"width":  bounds.Width(),
		"height": bounds.Height(),
	})
	return err
}

// InvokeViewMethod invokes a method on a specific platform view.
func (r *PlatformViewRegistry) InvokeViewMethod(viewID int64, method string, args map[string]any) (any, error) {
	invokeArgs := make(map[string]any, len(args)+2)
	for k, v := range args {
		invokeArgs[k] = v
	}
	invokeArgs["viewId"] = viewID
	invokeArgs["method"] = method
	return r.channel.Invoke("invokeViewMethod", invokeArgs)
}

// handleMethodCall routes calls from native code to the addressed view.
func (r *PlatformViewRegistry) handleMethodCall(method string, args any) (any, error) {
	switch method {
	case "onViewCreated", "onViewDisposed":
		return nil, nil
	}

	argsMap, ok := args.(map[string]any)
	if !ok {
		return nil, r.parseError(method, "map", args)
	}
	viewID, ok := toInt64(argsMap["viewId"])
	if !ok {
		return nil, r.parseError(method, "viewId", argsMap["viewId"])
	}

	receiver, ok := r.View(viewID).(nativeEventReceiver)
	if !ok {
		// The view may have been disposed while the event was in flight.
		return nil, nil
	}

	r.mu.RLock()
	dispatch := r.dispatch
	r.mu.RUnlock()

	deliver := func() error {
		err := receiver.handleNativeEvent(method, argsMap)
		if err != nil {
			errors.Report(&errors.Error{
				Op:      "platform.PlatformViewRegistry.handleMethodCall",
				Kind:    errors.KindParsing,
				Channel: ViewsChannel,
				Err:     err,
			})
		}
		return err
	}
	if dispatch == nil {
		return nil, deliver()
	}
	dispatch(func() { _ = deliver() })
	return nil, nil
}

func (r *PlatformViewRegistry) parseError(method, dataType string, got any) error {
	err := &errors.ParseError{Channel: ViewsChannel, DataType: dataType, Got: got}
	errors.Report(&errors.Error{
		Op:      "platform.PlatformViewRegistry." + method,
		Kind:    errors.KindParsing,
		Channel: ViewsChannel,
		Err:     err,
	})
	return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
}

// basePlatformView provides common implementation for platform views.
type basePlatformView struct {
	registry *PlatformViewRegistry
	viewID   int64
	viewType string
}

func (v *basePlatformView) ViewID() int64 {
	return v.viewID
}

func (v *basePlatformView) ViewType() string {
	return v.viewType
}

// invoke calls a view method and reports failures instead of returning them.
func (v *basePlatformView) invoke(method string, args map[string]any) bool {
	if _, err := v.registry.InvokeViewMethod(v.viewID, method, args); err != nil {
		v.report(method, err)
		return false
	}
	return true
}

func (v *basePlatformView) report(method string, err error) {
	errors.Report(&errors.Error{
		Op:      "platform." + v.viewType + "." + method,
		Kind:    errors.KindPlatform,
		Channel: ViewsChannel,
		Err:     err,
	})
}
