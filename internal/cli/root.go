package cli

import (
	"github.com/diegoclair/advice-rotation-bot/internal/config"
	"github.com/spf13/cobra"
)

// RootOptions holds the configuration shared by every command.
type RootOptions struct {
	Config   *config.Config
	LogLevel string
}

// NewRootCommand creates the root command for the advice bot CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "advice-bot",
		Short: "Daily advice rotation bot for Slack",
		Long: `Daily advice rotation bot for Slack.

Picks one piece of advice per day without repeats until the whole catalog
has been shown, and keeps a short queue of upcoming reminders in a Slack channel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.LogLevel != "" {
				cfg.LogLevel = opts.LogLevel
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewReconcileCommand(opts))
	cmd.AddCommand(NewTodayCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}
