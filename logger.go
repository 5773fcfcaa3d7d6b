package pdraw

import (
	"log/slog"

	"github.com/gogpu/pdraw/internal/logging"
)

// SetLogger configures the logger for pdraw and all its sub-packages.
// By default, pdraw produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by pdraw:
//   - [slog.LevelDebug]: frame timing, skipped images, cache hits
//   - [slog.LevelInfo]: animation start/stop, sequence transitions
//   - [slog.LevelWarn]: failed image loads, sequence loop-safety cap
//
// Example:
//
//	pdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by pdraw.
// Sub-packages (imagecache, canvas/raster) share the same configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Get()
}
