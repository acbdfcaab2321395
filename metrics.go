package hxtree

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Cycle outcomes recorded in hxtree_cycles_total.
const (
	outcomeOK              = "ok"
	outcomeHandlerNotFound = "handler_not_found"
	outcomeBadRequest      = "bad_request"
	outcomeNoSession       = "no_session"
	outcomeError           = "error"
)

type metrics struct {
	cycles   *prometheus.CounterVec
	duration prometheus.Histogram
	patches  prometheus.Counter
	pages    prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hxtree",
			Name:      "cycles_total",
			Help:      "Event cycles handled, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hxtree",
			Name:      "cycle_duration_seconds",
			Help:      "Time spent loading, dispatching and saving one event cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		patches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hxtree",
			Name:      "patches_total",
			Help:      "HTML patches sent to browsers.",
		}),
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hxtree",
			Name:      "pages_total",
			Help:      "Initial page loads that built a fresh tree.",
		}),
	}
	reg.MustRegister(m.cycles, m.duration, m.patches, m.pages)
	return m
}

// observeCycle records a finished cycle. Safe on a nil receiver.
func (m *metrics) observeCycle(start time.Time, err error, resp *Response) {
	if m == nil {
		return
	}
	m.duration.Observe(time.Since(start).Seconds())
	m.cycles.WithLabelValues(outcome(err)).Inc()
	if resp != nil {
		m.patches.Add(float64(len(resp.HTML)))
	}
}

func (m *metrics) observePage() {
	if m == nil {
		return
	}
	m.pages.Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case IsHandlerNotFound(err):
		return outcomeHandlerNotFound
	case IsBadRequest(err), IsDecryptionError(err), errors.Is(err, ErrInvalidFormat):
		return outcomeBadRequest
	case IsSessionNotFound(err):
		return outcomeNoSession
	default:
		return outcomeError
	}
}
