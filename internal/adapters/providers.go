package adapters

import (
	"github.com/audc-labs/audc-deploy/internal/adapters/blockchain"
	"github.com/audc-labs/audc-deploy/internal/adapters/compiler"
	"github.com/audc-labs/audc-deploy/internal/adapters/progress"
	"github.com/audc-labs/audc-deploy/internal/adapters/repository/contracts"
	"github.com/audc-labs/audc-deploy/internal/adapters/repository/deployments"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/afero"
)

// ProvideFs provides the OS filesystem
func ProvideFs() afero.Fs {
	return afero.NewOsFs()
}

// RepositorySet provides filesystem-backed repositories
var RepositorySet = wire.NewSet(
	ProvideFs,

	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),

	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),
)

// BlockchainSet provides go-ethereum backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Deployer)),

	blockchain.NewChecker,
	wire.Bind(new(usecase.DeploymentChecker), new(*blockchain.Checker)),
)

// CompilerSet provides the forge/hardhat compiler
var CompilerSet = wire.NewSet(
	compiler.NewCompiler,
	wire.Bind(new(usecase.Compiler), new(*compiler.Compiler)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	BlockchainSet,
	CompilerSet,
	progress.NewProgressSink,
)
