package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/audc-labs/audc-deploy/internal/app"
	"github.com/audc-labs/audc-deploy/internal/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command. Running it without a subcommand deploys the
// token and vault contracts.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "audc-deploy",
		Short: "Deploy the AUDC token and vault contracts",
		Long: `audc-deploy deploys the Coin token contract ("AUDC Token", "AUDC") and then the
VaultC contract bound to the new token, waiting for each deployment to be confirmed.

The network and signer come from the environment: --network resolves an rpc_endpoints
entry in foundry.toml or a <NAME>_RPC_URL variable, and the signer key is read from
AUDC_PRIVATE_KEY, PRIVATE_KEY or DEPLOYER_PRIVATE_KEY (.env files are loaded).`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// App supplied by the caller
			if _, err := getApp(cmd); err == nil {
				return nil
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			projectRoot := cwd
			if root, err := config.FindProjectRoot(cwd); err == nil {
				projectRoot = root
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := WithApp(cmd.Context(), appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
		RunE: runDeployCmd,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable spinners and other terminal output")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (foundry rpc_endpoints name or RPC URL)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint, overrides --network")
	rootCmd.PersistentFlags().Uint64("chain-id", 0, "Expected chain ID, checked against the RPC endpoint")
	rootCmd.PersistentFlags().String("artifacts-dir", "", "Compiled artifacts directory (default: out for Foundry, artifacts for Hardhat)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall timeout (default 5m)")
	addDeployFlags(rootCmd)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the command tree and returns the process exit code
func Execute(rootCmd *cobra.Command) int {
	cmd, err := rootCmd.ExecuteC()
	if cmd != nil && cmd.Context() != nil {
		if a, getErr := getApp(cmd); getErr == nil {
			a.Close()
		}
	}
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// WithApp returns a context carrying the app instance
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
