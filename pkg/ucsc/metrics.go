package ucsc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// RegisterMetrics creates the handle's prometheus collectors and registers
// them with reg.  Until this is called the handle records nothing.  The
// "code" label is the numeric UCS error code, "ok", or one of "transport"
// and "decode" for failures before an error code was available.
func (h *Handle) RegisterMetrics(reg prometheus.Registerer) error {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ucsc",
			Name:      "api_requests_total",
			Help:      "XML API requests issued by this handle.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ucsc",
			Name:      "api_request_duration_seconds",
			Help:      "XML API request latency.",
		}, []string{"method"}),
	}
	if err := reg.Register(m.requests); err != nil {
		return err
	}
	if err := reg.Register(m.duration); err != nil {
		return err
	}
	h.mu.Lock()
	h.metrics = m
	h.mu.Unlock()
	return nil
}

func (h *Handle) observe(method, code string, elapsed time.Duration) {
	h.mu.Lock()
	m := h.metrics
	h.mu.Unlock()
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
