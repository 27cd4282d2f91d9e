package command

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"finledger/database"
	"finledger/internal/api/repository"
	"finledger/internal/api/service"
	"finledger/internal/config"
	"finledger/internal/logger"
)

var (
	success = color.New(color.FgGreen).SprintfFunc()
	warning = color.New(color.FgYellow).SprintfFunc()
)

// loadConfig reads the configuration and runs validate on it.
func loadConfig(validate func(*config.Config) error) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withDatabase opens (and migrates) the configured database for the duration of fn.
// Only the database and logging settings are validated; JWT secrets are not needed here.
func withDatabase(cmd *cobra.Command, fn func(cfg *config.Config, db *gorm.DB) error) error {
	cfg, err := loadConfig((*config.Config).ValidateStorage)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(cfg, db)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(cfg *config.Config, db *gorm.DB) error {
				fmt.Fprintln(cmd.OutOrStdout(), success("✓ schema is up to date (%s)", cfg.DatabaseDriver))
				return nil
			})
		},
	}
}

func newPruneTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune-tokens",
		Short: "Delete expired refresh tokens",
		Long:  `Delete refresh token ledger rows whose expiry has passed. Consumed tokens that have not expired yet are kept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(cfg *config.Config, db *gorm.DB) error {
				store := repository.NewStore(db)
				pruner := service.NewTokenPruner(store.RefreshTokens(), cfg.RefreshTokenCleanupInterval, logger.Discard())

				deleted, err := pruner.PruneOnce(cmd.Context())
				if err != nil {
					return fmt.Errorf("prune refresh tokens: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), success("✓ %d expired refresh tokens deleted", deleted))
				return nil
			})
		},
	}
}

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and print it with secrets hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig((*config.Config).Validate)
			if err != nil {
				return err
			}
			printConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, success("✓ configuration is valid"))
	fmt.Fprintf(w, "  Environment:        %s\n", cfg.GoEnv)
	fmt.Fprintf(w, "  HTTP port:          %d\n", cfg.HTTPPort)
	fmt.Fprintf(w, "  Database driver:    %s\n", cfg.DatabaseDriver)
	fmt.Fprintf(w, "  Access token TTL:   %s\n", cfg.AccessTokenTTL)
	fmt.Fprintf(w, "  Refresh token TTL:  %s\n", cfg.RefreshTokenTTL)
	fmt.Fprintf(w, "  Token cleanup:      %s\n", cfg.RefreshTokenCleanupInterval)
	fmt.Fprintf(w, "  Bcrypt cost:        %d\n", cfg.BcryptCost)
	if cfg.RedisURL == "" {
		fmt.Fprintln(w, warning("  Login throttling:   disabled (REDIS_URL not set)"))
	} else {
		fmt.Fprintf(w, "  Login throttling:   %d attempts / %s\n", cfg.LoginMaxAttempts, cfg.LoginAttemptWindow)
	}
}
