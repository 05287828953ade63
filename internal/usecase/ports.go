package usecase

import (
	"context"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
)

// ContractRepository resolves contract names to compiled artifacts
type ContractRepository interface {
	GetContract(ctx context.Context, key string) (*models.Contract, error)
}

// DeployRequest is a single contract creation to submit
type DeployRequest struct {
	Name             string
	Bytecode         []byte
	ConstructorInput []byte
}

// ContractDeployer submits deployment transactions and blocks until they are mined
type ContractDeployer interface {
	Deploy(ctx context.Context, req DeployRequest) (*models.ContractCreation, error)
	Network(ctx context.Context) (*config.Network, error)
}

// Compiler builds the project's contracts
type Compiler interface {
	Compile(ctx context.Context) error
}

// DeploymentRepository persists deployment records
type DeploymentRepository interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
}

// DeploymentChecker verifies recorded deployments on the configured network
type DeploymentChecker interface {
	ChainID(ctx context.Context) (uint64, error)
	CheckDeployment(ctx context.Context, deployment *models.Deployment) (models.DeploymentStatus, error)
}

// DeploymentReporter is notified as soon as a step's deployment is confirmed
type DeploymentReporter interface {
	ReportDeployment(step domain.Step, deployment *models.Deployment) error
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
}
