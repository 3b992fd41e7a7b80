package cli

import (
	"fmt"

	"github.com/diegoclair/advice-rotation-bot/internal/logger"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config
			db, err := openDatabase(cfg, logger.New(cfg.LogLevel, cfg.Environment))
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
