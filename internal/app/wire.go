//go:build wireinject
// +build wireinject

package app

import (
	"github.com/audc-labs/audc-deploy/internal/adapters"
	"github.com/audc-labs/audc-deploy/internal/config"
	"github.com/audc-labs/audc-deploy/internal/logging"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContracts,
		usecase.NewListDeployments,

		// App
		NewApp,
	)
	return nil, nil
}
