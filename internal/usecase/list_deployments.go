package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	ChainID      uint64
	ContractName string
	Check        bool // verify each deployment on the configured network
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Statuses    map[string]models.DeploymentStatus // by deployment ID, only set when checking
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total      int
	Runs       int
	ByChain    map[uint64]int
	ByContract map[string]int
}

// ListDeployments is the use case for listing recorded deployments
type ListDeployments struct {
	repo    DeploymentRepository
	checker DeploymentChecker
	sink    ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(repo DeploymentRepository, checker DeploymentChecker, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		repo:    repo,
		checker: checker,
		sink:    sink,
	}
}

// Run returns recorded deployments, newest first
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments",
		Spinner: true,
	})

	deployments, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
		ChainID:      params.ChainID,
		ContractName: params.ContractName,
	})
	if err != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, err
	}

	// The repository's slice is not ours to reorder
	deployments = slices.Clone(deployments)
	sort.SliceStable(deployments, func(i, j int) bool {
		if !deployments[i].CreatedAt.Equal(deployments[j].CreatedAt) {
			return deployments[i].CreatedAt.After(deployments[j].CreatedAt)
		}
		return deployments[i].ID < deployments[j].ID
	})

	summary := DeploymentSummary{
		Total:      len(deployments),
		ByChain:    make(map[uint64]int),
		ByContract: make(map[string]int),
	}
	runs := make(map[string]struct{})
	for _, dep := range deployments {
		summary.ByChain[dep.ChainID]++
		summary.ByContract[dep.ContractName]++
		runs[dep.RunID] = struct{}{}
	}
	summary.Runs = len(runs)

	result := &DeploymentListResult{
		Deployments: deployments,
		Summary:     summary,
	}

	if params.Check && len(deployments) > 0 {
		statuses, err := uc.check(ctx, deployments)
		if err != nil {
			uc.sink.OnProgress(ctx, ProgressEvent{Stage: "failed"})
			return nil, err
		}
		result.Statuses = statuses
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "Deployments loaded",
	})

	return result, nil
}

// check resolves the on-chain status of every deployment
func (uc *ListDeployments) check(ctx context.Context, deployments []*models.Deployment) (map[string]models.DeploymentStatus, error) {
	chainID, err := uc.checker.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("check deployments: %w", err)
	}

	statuses := make(map[string]models.DeploymentStatus, len(deployments))
	for i, dep := range deployments {
		if dep.ChainID != chainID {
			statuses[dep.ID] = models.StatusUnknown
			continue
		}

		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "checking",
			Current: i + 1,
			Total:   len(deployments),
			Message: fmt.Sprintf("Checking %s", dep.GetDisplayName()),
			Spinner: true,
		})

		status, err := uc.checker.CheckDeployment(ctx, dep)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", dep.ID, err)
		}
		statuses[dep.ID] = status
	}
	return statuses, nil
}
