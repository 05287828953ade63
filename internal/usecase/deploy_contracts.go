package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
)

// ExecutionStage represents a stage of a deployment run
type ExecutionStage string

const (
	StageCompiling  ExecutionStage = "compiling"
	StageConnecting ExecutionStage = "connecting"
	StageResolving  ExecutionStage = "resolving"
	StageDeploying  ExecutionStage = "deploying"
	StageConfirmed  ExecutionStage = "confirmed"
	StageCompleted  ExecutionStage = "completed"
)

// DeployContractsParams contains parameters for a deployment run
type DeployContractsParams struct {
	Plan     *domain.Plan
	Reporter DeploymentReporter // optional
}

// DeployContractsResult contains everything deployed before the run ended
type DeployContractsResult struct {
	RunID       string
	Network     *config.Network
	Deployments []*models.Deployment
}

// DeployContracts runs a deployment plan step by step against a single network
type DeployContracts struct {
	cfg       *config.RuntimeConfig
	contracts ContractRepository
	deployer  ContractDeployer
	compiler  Compiler
	store     DeploymentRepository
	sink      ProgressSink
	log       *slog.Logger

	newRunID func() string
	now      func() time.Time
}

// NewDeployContracts creates a new DeployContracts use case
func NewDeployContracts(
	cfg *config.RuntimeConfig,
	contracts ContractRepository,
	deployer ContractDeployer,
	compiler Compiler,
	store DeploymentRepository,
	sink ProgressSink,
	log *slog.Logger,
) *DeployContracts {
	return &DeployContracts{
		cfg:       cfg,
		contracts: contracts,
		deployer:  deployer,
		compiler:  compiler,
		store:     store,
		sink:      sink,
		log:       log,
		newRunID:  uuid.NewString,
		now:       time.Now,
	}
}

// Run executes the plan. Steps are deployed strictly in order and the first failure
// aborts the run; the result still holds the deployments confirmed before it.
func (uc *DeployContracts) Run(ctx context.Context, params DeployContractsParams) (*DeployContractsResult, error) {
	plan := params.Plan
	if plan == nil {
		plan = domain.DefaultPlan()
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	result := &DeployContractsResult{RunID: uc.newRunID()}

	if uc.cfg.Compile {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   string(StageCompiling),
			Message: "Compiling contracts",
			Spinner: true,
		})
		if err := uc.compiler.Compile(ctx); err != nil {
			uc.stopProgress(ctx)
			return result, fmt.Errorf("compile: %w", err)
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageConnecting),
		Message: "Connecting to network",
		Spinner: true,
	})
	network, err := uc.deployer.Network(ctx)
	if err != nil {
		uc.stopProgress(ctx)
		first := plan.Steps[0]
		return result, fmt.Errorf("deploy %s (%s): %w", first.Label, first.Contract, err)
	}
	result.Network = network
	uc.log.Debug("connected", "network", network.DisplayName(), "chainId", network.ChainID)

	deployed := make(map[string]*models.Deployment, len(plan.Steps))
	for i, step := range plan.Steps {
		dep, err := uc.deployStep(ctx, step, i, len(plan.Steps), network, result.RunID, deployed)
		if err != nil {
			uc.stopProgress(ctx)
			return result, fmt.Errorf("deploy %s (%s): %w", step.Label, step.Contract, err)
		}

		deployed[step.Label] = dep
		result.Deployments = append(result.Deployments, dep)
		uc.stopProgress(ctx)

		if params.Reporter != nil {
			if err := params.Reporter.ReportDeployment(step, dep); err != nil {
				return result, fmt.Errorf("report %s: %w", step.Label, err)
			}
		}

		if uc.cfg.Record {
			if err := uc.store.SaveDeployment(ctx, dep); err != nil {
				return result, fmt.Errorf("record %s: %w", step.Label, err)
			}
		}
	}

	if uc.cfg.Record {
		uc.sink.Info(fmt.Sprintf("Recorded %d deployments (run %s)", len(result.Deployments), result.RunID))
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompleted),
		Current: len(plan.Steps),
		Total:   len(plan.Steps),
		Message: "Deployment completed",
	})

	return result, nil
}

func (uc *DeployContracts) deployStep(
	ctx context.Context,
	step domain.Step,
	index, total int,
	network *config.Network,
	runID string,
	deployed map[string]*models.Deployment,
) (*models.Deployment, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageResolving),
		Current: index + 1,
		Total:   total,
		Message: fmt.Sprintf("Resolving %s", step.Contract),
		Spinner: true,
	})

	contract, err := uc.contracts.GetContract(ctx, step.Contract)
	if err != nil {
		return nil, err
	}
	artifact := contract.Artifact
	if artifact == nil || !artifact.HasBytecode() {
		return nil, fmt.Errorf("%w: %s has no creation bytecode", domain.ErrNotDeployable, contract.Key())
	}
	if artifact.NeedsLinking() {
		return nil, fmt.Errorf("%w: %s requires library linking", domain.ErrNotDeployable, contract.Key())
	}

	args, err := step.ResolveArgs(deployed)
	if err != nil {
		return nil, err
	}
	input, err := artifact.PackConstructor(args...)
	if err != nil {
		return nil, err
	}
	code, err := artifact.CreationCode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotDeployable, err)
	}

	uc.log.Debug("deploying contract", "label", step.Label, "contract", contract.Key(), "args", args)
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageDeploying),
		Current: index + 1,
		Total:   total,
		Message: fmt.Sprintf("Deploying %s and waiting for confirmation", contract.Name),
		Spinner: true,
	})

	creation, err := uc.deployer.Deploy(ctx, DeployRequest{
		Name:             contract.Name,
		Bytecode:         code,
		ConstructorInput: input,
	})
	if err != nil {
		return nil, err
	}

	address := creation.Address.Hex()
	uc.log.Debug("contract confirmed", "label", step.Label, "address", address,
		"tx", creation.TxHash.Hex(), "block", creation.BlockNumber, "gasUsed", creation.GasUsed)

	return &models.Deployment{
		ID:              models.DeploymentID(network.ChainID, contract.Name, address),
		RunID:           runID,
		ChainID:         network.ChainID,
		Network:         network.Name,
		ContractName:    contract.Name,
		Label:           step.Label,
		Address:         address,
		TransactionHash: creation.TxHash.Hex(),
		BlockNumber:     creation.BlockNumber,
		GasUsed:         creation.GasUsed,
		Deployer:        creation.From.Hex(),
		ConstructorArgs: hexutil.Encode(input),
		Artifact: models.ArtifactInfo{
			Path:            contract.Key(),
			CompilerVersion: artifact.CompilerVersion(),
			BytecodeHash:    artifact.BytecodeHash(),
		},
		CreatedAt: uc.now().UTC(),
	}, nil
}

// stopProgress ends any running spinner
func (uc *DeployContracts) stopProgress(ctx context.Context) {
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: string(StageConfirmed)})
}
