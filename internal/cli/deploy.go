package cli

import (
	"context"
	"io"

	"github.com/audc-labs/audc-deploy/internal/app"
	"github.com/audc-labs/audc-deploy/internal/cli/render"
	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the token and vault contracts",
		Long: `Deploy Coin("AUDC Token", "AUDC"), wait for it to be confirmed, then deploy
VaultC(<token address>, 3000) and wait again.

Each contract's address and deployment transaction hash are printed as soon as it is
confirmed. Any failure stops the run and exits with status 1; contracts deployed before
the failure are left in place. Every run deploys new contracts.`,
		Example: `  # Deploy to a local node
  audc-deploy deploy --rpc-url http://127.0.0.1:8545

  # Deploy to sepolia from foundry.toml and keep a record in .audc/deployments.json
  audc-deploy deploy --network sepolia --record`,
		Args: cobra.NoArgs,
		RunE: runDeployCmd,
	}

	addDeployFlags(cmd)

	return cmd
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("record", false, "Record confirmed deployments in .audc/deployments.json")
	cmd.Flags().Bool("compile", false, "Compile contracts (forge build / npx hardhat compile) before deploying")
}

func runDeployCmd(cmd *cobra.Command, args []string) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	return runDeploy(cmd.Context(), a, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runDeploy deploys the default plan, printing each deployment to out as it lands
func runDeploy(ctx context.Context, a *app.App, out, status io.Writer) error {
	renderer := render.NewDeployRenderer(out, status)

	result, err := a.DeployContracts.Run(ctx, usecase.DeployContractsParams{
		Plan:     domain.DefaultPlan(),
		Reporter: renderer,
	})
	if err != nil {
		return err
	}

	if a.Config.NonInteractive {
		return nil
	}
	return renderer.Render(result)
}
