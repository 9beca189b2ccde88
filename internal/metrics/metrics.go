package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// Checkout counts checkout attempts and how they ended.
type Checkout struct {
	Attempts     *prometheus.CounterVec
	Outcomes     *prometheus.CounterVec
	Dispositions *prometheus.CounterVec
	Duration     prometheus.Histogram
}

func NewCheckout(reg prometheus.Registerer) *Checkout {
	m := &Checkout{
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "attempts_total",
			Help:      "Checkout submissions by payment method.",
		}, []string{"method"}),
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "outcomes_total",
			Help:      "Checkout attempts by final state.",
		}, []string{"state"}),
		Dispositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "gateway_dispositions_total",
			Help:      "Payment widget results by disposition.",
		}, []string{"disposition"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "attempt_duration_seconds",
			Help:      "Wall time of a checkout attempt.",
			Buckets:   []float64{0.5, 1, 5, 15, 60, 300},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Attempts, m.Outcomes, m.Dispositions, m.Duration)
	}
	return m
}

// API counts backend calls by path and status class.
type API struct {
	Requests *prometheus.CounterVec
}

func NewAPI(reg prometheus.Registerer) *API {
	m := &API{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Backend requests by path and outcome.",
		}, []string{"path", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests)
	}
	return m
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
