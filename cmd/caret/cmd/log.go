package cmd

import (
	"log/slog"
	"os"

	"github.com/go-drift/caret/pkg/errors"
)

// setupLogging routes library logs and error reports to stderr. Reports
// are always shown; debug records only when verbose.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	errors.SetLogger(slog.New(handler))
	errors.SetHandler(&errors.LogHandler{Verbose: verbose})
}
