// Package telemetry wraps structured logging and an optional metrics
// observer around engine operations, following the wrapper-over-slog
// pattern used elsewhere in the corpus rather than inventing a bespoke
// logging interface.
package telemetry

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger with npypatch-specific helper methods so call
// sites log with consistent field names instead of ad hoc key strings.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler in a Logger. A nil handler falls back to a text
// handler on stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// WithRequestID attaches a request id field to the logger.
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{Logger: l.Logger.With("request_id", id)}
}

// LogGetPatch logs the outcome of a get_patch call.
func (l *Logger) LogGetPatch(ctx context.Context, patchIndex int, bytesRead int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "get_patch failed",
			"patch_index", patchIndex,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "get_patch completed",
		"patch_index", patchIndex,
		"bytes_read", bytesRead,
		"elapsed", elapsed,
	)
}

// LogHeaderRead logs the outcome of parsing a .npy header.
func (l *Logger) LogHeaderRead(ctx context.Context, filepath string, shape []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "header read failed", "filepath", filepath, "error", err)
		return
	}
	l.DebugContext(ctx, "header read completed", "filepath", filepath, "shape", shape)
}

// NewRequestID generates a request id using the same UUID scheme as the
// rest of the corpus's observability wiring.
func NewRequestID() string {
	return uuid.NewString()
}

// MetricsObserver is implemented by callers that want to record engine
// activity in an external metrics system. A nil observer is a no-op.
type MetricsObserver interface {
	ObserveGetPatchLatency(seconds float64, status string)
	ObserveBytesRead(n int)
	IncPatchRequests(status string)
}

// noopObserver implements MetricsObserver by discarding everything.
type noopObserver struct{}

func (noopObserver) ObserveGetPatchLatency(float64, string) {}
func (noopObserver) ObserveBytesRead(int)                   {}
func (noopObserver) IncPatchRequests(string)                {}

// NoopMetrics returns a MetricsObserver that discards all observations.
func NoopMetrics() MetricsObserver { return noopObserver{} }
