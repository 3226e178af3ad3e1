package errors

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "platform.TextInputView.Focus",
		Kind: KindPlatform,
		Err:  stderrors.New("bridge down"),
	}
	want := "platform.TextInputView.Focus [platform]: bridge down"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorWithChannel(t *testing.T) {
	err := &Error{
		Op:      "platform.ViewRegistry.handleMethodCall",
		Kind:    KindParsing,
		Channel: "caret/platform_views",
		Err:     &ParseError{Channel: "caret/platform_views", DataType: "viewId", Got: "x"},
	}
	got := err.Error()
	if !strings.Contains(got, "channel=caret/platform_views") {
		t.Errorf("error string %q should contain channel", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := stderrors.New("base")
	err := &Error{Op: "op", Err: base}
	if !stderrors.Is(err, base) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlatform, "platform"},
		{KindParsing, "parsing"},
		{KindConfig, "config"},
		{KindRender, "render"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "scene.DispatchKey"
	if got, want := err.Error(), "panic in scene.DispatchKey: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *Error
	SetHandler(&testHandler{onError: func(err *Error) { captured = err }})
	defer SetHandler(nil)

	Report(&Error{Op: "test.op", Kind: KindRender, Err: stderrors.New("x")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	SetHandler(&testHandler{onError: func(*Error) { called = true }})
	defer SetHandler(nil)

	Report(nil)
	if called {
		t.Error("Report(nil) should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if _, ok := getHandler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install LogHandler, got %T", getHandler())
	}
}

func TestLogHandlerWritesThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	h := &LogHandler{}
	h.HandleError(&Error{Op: "rendering.FontManager.Face", Kind: KindRender, Err: stderrors.New("bad font")})
	h.HandlePanic(&PanicError{Op: "scene.DispatchPointer", Value: "boom"})

	out := buf.String()
	for _, want := range []string{"op=rendering.FontManager.Face", "kind=render", "bad font", "op=scene.DispatchPointer", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

type testHandler struct {
	onError func(*Error)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *Error) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
