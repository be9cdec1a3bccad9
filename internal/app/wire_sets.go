//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"operadoras/internal/domain"
	"operadoras/internal/infra/apiclient"
)

var CoreInfraSet = wire.NewSet(
	NewLogger,
	NewMetricsRegistry,
	NewMetrics,
	NewAPIClient,
	wire.Bind(new(domain.APIClient), new(*apiclient.Client)),
)

var SessionSet = wire.NewSet(
	CoreInfraSet,
	NewOperatorStore,
	wire.Struct(new(SessionOptions), "Config", "Logger", "Registry", "Store"),
	NewSession,
)
