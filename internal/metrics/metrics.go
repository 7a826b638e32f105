package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for skyledger
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business Metrics
	TicketsSoldTotal     prometheus.CounterVec
	TicketsCanceledTotal prometheus.CounterVec
	RefundsPaidTotal     prometheus.Counter
	RevenueTotal         prometheus.Counter
	SeatsAvailable       prometheus.GaugeVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyledger_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skyledger_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skyledger_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Business Metrics
		TicketsSoldTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyledger_tickets_sold_total",
				Help: "Total tickets sold by seat class",
			},
			[]string{"seat_class"},
		),
		TicketsCanceledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyledger_tickets_canceled_total",
				Help: "Total tickets canceled by refund tier",
			},
			[]string{"refund_tier"},
		),
		RefundsPaidTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "skyledger_refunds_paid_units_total",
				Help: "Total refund amount paid out, in token units",
			},
		),
		RevenueTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "skyledger_revenue_units_total",
				Help: "Total ticket revenue collected, in token units",
			},
		),
		SeatsAvailable: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skyledger_seats_available",
				Help: "Currently available seats by flight and seat class",
			},
			[]string{"flight_id", "seat_class"},
		),
	}
}
