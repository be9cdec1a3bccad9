package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"operadoras/internal/domain"
	"operadoras/internal/infra/telemetry"
	"operadoras/internal/store"
)

// Session owns the store and its collaborators for one user session.
type Session struct {
	config   domain.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	store    *store.OperatorStore
}

// SessionOptions captures dependencies for Session.
type SessionOptions struct {
	Config   domain.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Store    *store.OperatorStore
}

func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		config:   opts.Config,
		logger:   logger,
		registry: opts.Registry,
		store:    opts.Store,
	}
}

func (s *Session) Store() *store.OperatorStore {
	return s.store
}

func (s *Session) Logger() *zap.Logger {
	return s.logger
}

func (s *Session) Config() domain.Config {
	return s.config
}

// ObservabilityEnabled reports whether a metrics listener is configured.
func (s *Session) ObservabilityEnabled() bool {
	return s.config.Observability.ListenAddress != ""
}

// ServeObservability serves /metrics and /healthz until ctx is done. It
// returns immediately when no listen address is configured.
func (s *Session) ServeObservability(ctx context.Context, onListen func(addr string)) error {
	if !s.ObservabilityEnabled() {
		return nil
	}
	return telemetry.StartHTTPServer(ctx, telemetry.HTTPServerOptions{
		Addr:          s.config.Observability.ListenAddress,
		EnableMetrics: true,
		EnableHealthz: true,
		Registry:      s.registry,
		OnListen:      onListen,
	}, s.logger)
}

// Close flushes the logger.
func (s *Session) Close() {
	_ = s.logger.Sync()
}
