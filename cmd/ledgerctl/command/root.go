package command

// root.go defines the root command for ledgerctl, the operator tool for the
// finledger database. Subcommands read the same environment as the api-server.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "ledgerctl - finledger operator commands",
		Long: `ledgerctl runs maintenance tasks against the finledger database using the
same configuration (.env and environment variables) as the api-server:
- apply the schema
- prune expired refresh tokens
- validate the configuration

migrate and prune-tokens only need DATABASE_DRIVER and DATABASE_URL; check-config
validates everything the api-server needs, including JWT_SECRET and JWT_REFRESH_SECRET.

Use "ledgerctl command -h" to see the flags of a command.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newPruneTokensCmd())
	rootCmd.AddCommand(newCheckConfigCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}
