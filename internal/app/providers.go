package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"operadoras/internal/domain"
	"operadoras/internal/infra/apiclient"
	"operadoras/internal/infra/telemetry"
	"operadoras/internal/store"
)

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewAPIClient(cfg domain.Config, logger *zap.Logger, metrics domain.Metrics) (*apiclient.Client, error) {
	return apiclient.New(apiclient.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout(),
		UserAgent: cfg.API.UserAgent,
		Headers:   cfg.API.Headers,
		Logger:    logger,
		Metrics:   metrics,
	})
}

func NewOperatorStore(cfg domain.Config, client domain.APIClient, logger *zap.Logger, metrics domain.Metrics) *store.OperatorStore {
	return store.NewOperatorStore(store.Options{
		Client:   client,
		Logger:   logger,
		Metrics:  metrics,
		PageSize: cfg.List.PageSize,
	})
}
