package telemetry

import (
	"time"

	"operadoras/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveOperation(_ domain.Operation, _ time.Duration, _ domain.Outcome) {}

func (n *NoopMetrics) AddInFlight(_ domain.Operation, _ int) {}

func (n *NoopMetrics) ObserveHTTPRequest(_ string, _ int, _ time.Duration) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
