package render

import (
	"fmt"
	"io"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeployRenderer prints each deployment as soon as it is confirmed. The two lines per
// contract go to out; everything else goes to the status writer.
type DeployRenderer struct {
	out    io.Writer
	status io.Writer
	title  cases.Caser
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out, status io.Writer) *DeployRenderer {
	return &DeployRenderer{
		out:    out,
		status: status,
		title:  cases.Title(language.English),
	}
}

// ReportDeployment implements usecase.DeploymentReporter
func (r *DeployRenderer) ReportDeployment(step domain.Step, deployment *models.Deployment) error {
	if _, err := fmt.Fprintf(r.out, "%s deployed to:  %s\n", r.title.String(step.Label), deployment.Address); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.out, "The transaction that was sent to the network to deploy the %s contract: %s\n", step.Label, deployment.TransactionHash)
	return err
}

// Render prints the run summary to the status writer, with explorer links when the
// chain has a known explorer
func (r *DeployRenderer) Render(result *usecase.DeployContractsResult) error {
	if result == nil || result.Network == nil {
		return nil
	}
	msg := fmt.Sprintf("Deployed %d contracts to %s (chain %d)", len(result.Deployments), result.Network.DisplayName(), result.Network.ChainID)
	if _, err := fmt.Fprintln(r.status, FormatSuccess(msg)); err != nil {
		return err
	}

	explorer := result.Network.Explorer()
	if explorer == "" {
		return nil
	}
	for _, dep := range result.Deployments {
		if _, err := fmt.Fprintf(r.status, "  %s: %s/address/%s\n", dep.Label, explorer, dep.Address); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(r.status, "  %s tx: %s/tx/%s\n", dep.Label, explorer, dep.TransactionHash); err != nil {
			return err
		}
	}
	return nil
}

var _ usecase.DeploymentReporter = (*DeployRenderer)(nil)
var _ Renderer[*usecase.DeployContractsResult] = (*DeployRenderer)(nil)
