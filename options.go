package npypatch

import "github.com/robert-malhotra/npypatch/internal/telemetry"

// Option configures an Engine at construction time.
type Option func(*options)

type options struct {
	logger        *telemetry.Logger
	metrics       telemetry.MetricsObserver
	requestIDFunc func() string
	maxRank       int
}

func defaultOptions() *options {
	return &options{
		logger:        telemetry.NoopLogger(),
		metrics:       telemetry.NoopMetrics(),
		requestIDFunc: telemetry.NewRequestID,
		maxRank:       8,
	}
}

// WithLogger sets the structured logger used for get_patch and header-read
// diagnostics. The default discards all output.
func WithLogger(l *telemetry.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics observer notified of latency, bytes read,
// and request outcomes. The default discards all observations.
func WithMetrics(m telemetry.MetricsObserver) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithRequestIDFunc overrides how request ids are generated for log
// correlation. The default generates a random UUID per call.
func WithRequestIDFunc(f func() string) Option {
	return func(o *options) {
		if f != nil {
			o.requestIDFunc = f
		}
	}
}

// WithMaxRank caps the accepted array rank (including the q-axis) as a
// guard rail against pathological headers; the default is 8.
func WithMaxRank(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRank = n
		}
	}
}
