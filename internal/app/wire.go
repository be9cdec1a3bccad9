//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"operadoras/internal/domain"
)

func InitializeSession(cfg domain.Config, logging LoggingConfig) (*Session, error) {
	wire.Build(SessionSet)
	return nil, nil
}
