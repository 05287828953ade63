package usecase_test

import (
	"context"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/stretchr/testify/mock"
)

// MockDeploymentStore is a mock implementation of DeploymentRepository
type MockDeploymentStore struct {
	mock.Mock
}

func (m *MockDeploymentStore) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentStore) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

// MockContractRepository is a mock implementation of ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

// MockDeployer is a mock implementation of ContractDeployer
type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*models.ContractCreation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractCreation), args.Error(1)
}

func (m *MockDeployer) Network(ctx context.Context) (*config.Network, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockCompiler is a mock implementation of Compiler
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Compile(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockChecker is a mock implementation of DeploymentChecker
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) ChainID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChecker) CheckDeployment(ctx context.Context, deployment *models.Deployment) (models.DeploymentStatus, error) {
	args := m.Called(ctx, deployment)
	return args.Get(0).(models.DeploymentStatus), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) { m.infos = append(m.infos, message) }

func (m *MockProgressSink) stages() []string {
	stages := make([]string, len(m.events))
	for i, e := range m.events {
		stages[i] = e.Stage
	}
	return stages
}

// recordingReporter keeps every reported deployment in order
type recordingReporter struct {
	steps       []domain.Step
	deployments []*models.Deployment
}

func (r *recordingReporter) ReportDeployment(step domain.Step, d *models.Deployment) error {
	r.steps = append(r.steps, step)
	r.deployments = append(r.deployments, d)
	return nil
}

func (r *recordingReporter) labels() []string {
	labels := make([]string, len(r.steps))
	for i, s := range r.steps {
		labels[i] = s.Label
	}
	return labels
}
