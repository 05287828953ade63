package app

import (
	"log/slog"

	"github.com/audc-labs/audc-deploy/internal/adapters/blockchain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployContracts *usecase.DeployContracts
	ListDeployments *usecase.ListDeployments

	// Connections released by Close
	deployer *blockchain.Deployer
	checker  *blockchain.Checker
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployContracts *usecase.DeployContracts,
	listDeployments *usecase.ListDeployments,
	deployer *blockchain.Deployer,
	checker *blockchain.Checker,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		DeployContracts: deployContracts,
		ListDeployments: listDeployments,
		deployer:        deployer,
		checker:         checker,
	}, nil
}

// Close releases any RPC connections opened while running
func (a *App) Close() {
	if a.deployer != nil {
		a.deployer.Close()
	}
	if a.checker != nil {
		a.checker.Close()
	}
}
