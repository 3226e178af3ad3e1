package scene

import (
	"image/color"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/caret/pkg/focus"
	"github.com/go-drift/caret/pkg/input"
	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/rendering"
	drifttest "github.com/go-drift/caret/pkg/testing"
)

type fakeObject struct {
	name      string
	destroyed *[]string
}

func (o *fakeObject) Name() string { return o.name }
func (o *fakeObject) Destroy()     { *o.destroyed = append(*o.destroyed, o.name) }

func TestScene_Defaults(t *testing.T) {
	s := New(Options{})
	if s.Size() != (rendering.Size{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Errorf("Size() = %v", s.Size())
	}
	if s.Device().IsTouchDevice() {
		t.Error("scene without bridge should not report touch")
	}
	if s.Cursor() != "default" {
		t.Errorf("Cursor() = %q, want default", s.Cursor())
	}
}

func TestScene_DeviceQuery(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		wantTS bool
	}{
		{"bridge reports touch", Options{Bridge: drifttest.NewRecordingBridge(platform.Capabilities{Touch: true})}, true},
		{"bridge reports mouse", Options{Bridge: drifttest.NewRecordingBridge(platform.Capabilities{})}, false},
		{"explicit device wins", Options{
			Bridge: drifttest.NewRecordingBridge(platform.Capabilities{}),
			Device: platform.Capabilities{MaxTouchPoints: 2},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.opts).Device().IsTouchDevice(); got != tt.wantTS {
				t.Errorf("IsTouchDevice() = %v, want %v", got, tt.wantTS)
			}
		})
	}
}

func TestScene_PointerListeners(t *testing.T) {
	s := New(Options{})
	var got []string
	removeA := s.OnPointer(func(ev input.PointerEvent) { got = append(got, "a:"+ev.Phase.String()) })
	s.OnPointer(func(ev input.PointerEvent) { got = append(got, "b:"+ev.Phase.String()) })

	s.DispatchPointer(input.PointerEvent{Phase: input.PointerDown})
	removeA()
	removeA()
	s.DispatchPointer(input.PointerEvent{Phase: input.PointerUp})

	want := []string{"a:down", "b:down", "b:up"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dispatch mismatch (-want +got):\n%s", diff)
	}
	if p, k := s.ListenerCount(); p != 1 || k != 0 {
		t.Errorf("ListenerCount() = (%d, %d), want (1, 0)", p, k)
	}
}

func TestScene_RemoveDuringDispatch(t *testing.T) {
	s := New(Options{})
	var got []string
	var removeB func()
	s.OnKey(func(input.KeyEvent) {
		got = append(got, "a")
		removeB()
	})
	removeB = s.OnKey(func(input.KeyEvent) { got = append(got, "b") })

	s.DispatchKey(input.KeyOf("x"))

	if diff := cmp.Diff([]string{"a"}, got); diff != "" {
		t.Errorf("dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestScene_PanickingListenerIsReported(t *testing.T) {
	handler := drifttest.InstallRecordingHandler(t.Cleanup)
	s := New(Options{})
	reached := false
	s.OnKey(func(input.KeyEvent) { panic("boom") })
	s.OnKey(func(input.KeyEvent) { reached = true })

	s.DispatchKey(input.KeyOf("x"))

	if !reached {
		t.Error("listener after the panicking one did not run")
	}
	panics := handler.Panics()
	if len(panics) != 1 || panics[0].Op != "scene.DispatchKey" || panics[0].Value != "boom" {
		t.Errorf("Panics() = %+v", panics)
	}
}

func TestScene_TabMovesFocus(t *testing.T) {
	s := New(Options{})
	a := focus.NewController(nil)
	b := focus.NewController(nil)
	s.FocusScope().Add(a)
	s.FocusScope().Add(b)
	keys := 0
	s.OnKey(func(input.KeyEvent) { keys++ })

	s.DispatchKey(input.KeyOf(input.KeyTab))
	s.DispatchKey(input.KeyOf(input.KeyTab))
	if !b.IsFocused() || a.IsFocused() {
		t.Errorf("after two tabs: a=%v b=%v, want b focused", a.State(), b.State())
	}
	s.DispatchKey(input.KeyEvent{Key: input.KeyTab, Shift: true})
	if !a.IsFocused() {
		t.Error("shift+tab should move focus back to a")
	}
	if keys != 0 {
		t.Errorf("tab reached %d key listeners, want 0", keys)
	}
}

func TestScene_PostAndStep(t *testing.T) {
	clock := drifttest.NewFakeClock()
	s := New(Options{Clock: clock})
	var got []string
	s.Scheduler().Every(100*time.Millisecond, func() { got = append(got, "tick") })
	s.Post(func() { got = append(got, "posted") })
	s.Post(nil)

	s.Step()
	clock.Advance(100 * time.Millisecond)
	s.Step()

	if diff := cmp.Diff([]string{"posted", "tick"}, got); diff != "" {
		t.Errorf("step mismatch (-want +got):\n%s", diff)
	}
}

func TestScene_Objects(t *testing.T) {
	s := New(Options{})
	var destroyed []string
	a := &fakeObject{name: "a", destroyed: &destroyed}
	b := &fakeObject{name: "b", destroyed: &destroyed}
	c := &fakeObject{name: "c", destroyed: &destroyed}
	s.Add(a)
	s.Add(b)
	s.Add(c)

	if s.Object("b") != b {
		t.Error("Object(b) did not return b")
	}
	if s.Object("missing") != nil {
		t.Error("Object(missing) should be nil")
	}

	s.Remove(b)
	s.Destroy()
	s.Destroy()

	if diff := cmp.Diff([]string{"b", "c", "a"}, destroyed); diff != "" {
		t.Errorf("destroy order mismatch (-want +got):\n%s", diff)
	}
	if len(s.Objects()) != 0 {
		t.Errorf("Objects() = %d after Destroy, want 0", len(s.Objects()))
	}
}

func TestScene_QueueNativeEvents(t *testing.T) {
	bridge := drifttest.NewRecordingBridge(platform.Capabilities{Touch: true})
	s := New(Options{Bridge: bridge, QueueNativeEvents: true})
	view, err := platform.CreateTextInputView(s.Views(), platform.TextInputViewConfig{})
	if err != nil {
		t.Fatal(err)
	}

	if err := bridge.SendText(view.ViewID(), "queued"); err != nil {
		t.Fatal(err)
	}
	if view.Text() != "" {
		t.Fatalf("Text() = %q before Step, want empty", view.Text())
	}
	s.Step()
	if view.Text() != "queued" {
		t.Errorf("Text() = %q after Step, want queued", view.Text())
	}
}

func TestScene_Render(t *testing.T) {
	s := New(Options{Width: 40, Height: 20, Background: rendering.Hex(0x102030)})
	s.Layer().AddRect(rendering.RectFromLTWH(10, 5, 10, 10), rendering.Hex(0xff0000))

	img := s.Render()
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("background pixel = %v", got)
	}
	if got := img.RGBAAt(15, 10); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("rect pixel = %v", got)
	}
}
