// Package cli implements the ledgerctl administration commands.
package cli

import (
	"fmt"

	"github.com/amirasaad/ledgerbook/infra/initializer"
	"github.com/amirasaad/ledgerbook/pkg/app"
	"github.com/amirasaad/ledgerbook/pkg/config"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	envFile string
	cfg     *config.App
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:     "ledgerctl",
		Short:   "Administer a ledgerbook database",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "environment file to load")

	rootCmd.AddCommand(
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newSummaryCommand(opts),
		newAccountsCommand(opts),
		newTailCommand(opts),
	)
	return rootCmd
}

// openApp wires the services the same way the server does. Callers must
// Close the returned app.
func openApp(cmd *cobra.Command, cfg *config.App) (*app.App, error) {
	deps, err := initializer.InitializeDependencies(cfg, initializer.WithLogOutput(cmd.ErrOrStderr()))
	if err != nil {
		return nil, fmt.Errorf("initializing dependencies: %w", err)
	}
	return app.New(deps, cfg), nil
}
