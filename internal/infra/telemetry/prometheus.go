package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"operadoras/internal/domain"
)

type PrometheusMetrics struct {
	operationDuration *prometheus.HistogramVec
	inFlight          *prometheus.GaugeVec
	requestDuration   *prometheus.HistogramVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "operadoras_operation_duration_seconds",
				Help:    "Duration of store operations in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation", "outcome"},
		),
		inFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "operadoras_operations_in_flight",
				Help: "Current number of store operations awaiting a response",
			},
			[]string{"operation"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "operadoras_http_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "status"},
		),
	}
}

func (p *PrometheusMetrics) ObserveOperation(op domain.Operation, duration time.Duration, outcome domain.Outcome) {
	p.operationDuration.WithLabelValues(string(op), string(outcome)).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) AddInFlight(op domain.Operation, delta int) {
	p.inFlight.WithLabelValues(string(op)).Add(float64(delta))
}

// ObserveHTTPRequest records a request; status 0 means no response arrived.
func (p *PrometheusMetrics) ObserveHTTPRequest(endpoint string, status int, duration time.Duration) {
	label := "none"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	p.requestDuration.WithLabelValues(endpoint, label).Observe(duration.Seconds())
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
