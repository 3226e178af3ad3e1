package testing

import (
	"sync"

	"github.com/go-drift/caret/pkg/errors"
)

// RecordingHandler is an errors.ErrorHandler that keeps every report.
type RecordingHandler struct {
	mu     sync.Mutex
	errs   []*errors.Error
	panics []*errors.PanicError
}

// InstallRecordingHandler replaces the global error handler until the test
// finishes. Pass t.Cleanup as cleanup.
func InstallRecordingHandler(cleanup func(func())) *RecordingHandler {
	h := &RecordingHandler{}
	errors.SetHandler(h)
	cleanup(func() { errors.SetHandler(nil) })
	return h
}

// HandleError records err.
func (h *RecordingHandler) HandleError(err *errors.Error) {
	h.mu.Lock()
	h.errs = append(h.errs, err)
	h.mu.Unlock()
}

// HandlePanic records err.
func (h *RecordingHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	h.panics = append(h.panics, err)
	h.mu.Unlock()
}

// Errors returns the recorded errors.
func (h *RecordingHandler) Errors() []*errors.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.Error(nil), h.errs...)
}

// Panics returns the recorded panics.
func (h *RecordingHandler) Panics() []*errors.PanicError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.PanicError(nil), h.panics...)
}
