package telemetry

import "github.com/prometheus/client_golang/prometheus"

// PrometheusObserver implements MetricsObserver against a set of Prometheus
// collectors, mirroring the metric names used by the corpus's own
// observability example (latency histogram, byte counter, request counter).
type PrometheusObserver struct {
	latency  *prometheus.HistogramVec
	bytes    prometheus.Counter
	requests *prometheus.CounterVec
}

// NewPrometheusObserver builds and registers the collectors against reg. If
// reg is nil, the default global registry is used.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "npypatch_get_patch_latency_seconds",
			Help:    "Latency of get_patch calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "npypatch_bytes_read_total",
			Help: "Total bytes read from .npy files",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "npypatch_patch_requests_total",
			Help: "Total get_patch requests by outcome",
		}, []string{"status"}),
	}
	reg.MustRegister(o.latency, o.bytes, o.requests)
	return o
}

func (o *PrometheusObserver) ObserveGetPatchLatency(seconds float64, status string) {
	o.latency.WithLabelValues(status).Observe(seconds)
}

func (o *PrometheusObserver) ObserveBytesRead(n int) {
	o.bytes.Add(float64(n))
}

func (o *PrometheusObserver) IncPatchRequests(status string) {
	o.requests.WithLabelValues(status).Inc()
}
