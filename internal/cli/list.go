package cli

import (
	"github.com/audc-labs/audc-deploy/internal/cli/render"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		chainID      uint64
		contractName string
		check        bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the deployments recorded with deploy --record, newest first.

With --check every deployment on the connected network is looked up on chain and shown
as live or missing.`,
		Example: `  # List all recorded deployments
  audc-deploy list

  # List VaultC deployments on sepolia and check they still exist
  audc-deploy list --contract VaultC --network sepolia --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				ChainID:      chainID,
				ContractName: contractName,
				Check:        check,
			})
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain", 0, "Filter by chain ID")
	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().BoolVar(&check, "check", false, "Check each deployment on the configured network")

	return cmd
}
