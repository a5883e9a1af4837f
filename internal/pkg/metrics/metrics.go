// Package metrics owns the Prometheus collectors of the service. Every
// method is safe on a nil receiver so components can run without metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "activation"

// Provider outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics groups the collectors registered by New.
type Metrics struct {
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	ordersByStage    *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		providerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Total requests sent to the SMS provider.",
			},
			[]string{"operation", "outcome"},
		),
		providerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_request_duration_seconds",
				Help:      "Duration of requests to the SMS provider.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ordersByStage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "orders",
				Help:      "Stored orders by lifecycle stage, refreshed by the stats job.",
			},
			[]string{"stage"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests served.",
			},
			[]string{"method", "route", "status_code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.providerRequests,
		m.providerDuration,
		m.ordersByStage,
		m.httpRequests,
		m.httpDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveProviderRequest records one provider call.
func (m *Metrics) ObserveProviderRequest(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(operation, outcome).Inc()
	m.providerDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetOrdersByStage replaces the gauge value of one stage.
func (m *Metrics) SetOrdersByStage(stage string, count int64) {
	if m == nil {
		return
	}
	m.ordersByStage.WithLabelValues(stage).Set(float64(count))
}

// ObserveHTTPRequest records one served request; route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
