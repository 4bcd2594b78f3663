package cli

import (
	"fmt"

	"commerce/internal/config"
	"commerce/utils"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the configuration loaded for every command.
type RootOptions struct {
	ConfigDir string
	LogLevel  string

	Config *config.Config
}

// NewRootCommand creates the root command for the commerce CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "commerce",
		Short: "commerce - online auction listings",
		Long:  "Runs the auction listing API and its maintenance tasks (migrations, demo data).",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.ConfigDir)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if opts.LogLevel != "" {
				cfg.LogLevel = opts.LogLevel
			}
			utils.SetLevel(cfg.LogLevel)
			opts.Config = cfg
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "directory containing config.yml")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
