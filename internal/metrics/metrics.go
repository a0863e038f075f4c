package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	OrdersCreated   prometheus.Counter
	PublishFailures prometheus.Counter
}

// New registers the service collectors on reg.
func New(reg prometheus.Registerer, service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "order_intake",
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests.",
		ConstLabels: labels,
	}, []string{"handler", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   "order_intake",
		Name:        "http_request_duration_ms",
		Help:        "HTTP request latency in milliseconds.",
		ConstLabels: labels,
		Buckets:     []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "order_intake",
		Name:        "orders_created_total",
		Help:        "Orders committed to the store.",
		ConstLabels: labels,
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "order_intake",
		Name:        "order_event_publish_failures_total",
		Help:        "Committed orders whose order_created event could not be published.",
		ConstLabels: labels,
	})

	reg.MustRegister(requests, latency, created, failures)
	return &Metrics{
		Requests:        requests,
		LatencyMS:       latency,
		OrdersCreated:   created,
		PublishFailures: failures,
	}
}

// nil のままでも呼べるようにしておく
func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.OrdersCreated.Inc()
}

func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
