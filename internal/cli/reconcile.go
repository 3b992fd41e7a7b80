package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ReconcileOptions holds flags for the reconcile command.
type ReconcileOptions struct {
	*RootOptions
	CancelAll bool
}

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReconcileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconcile pass over the notification queue",
		Long: `Run one reconcile pass over the notification queue.

This is what every slash command does before answering. Use --cancel-all
to drop every pending notification instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.Config)
			if err != nil {
				return err
			}
			defer a.Close()

			if opts.CancelAll {
				cancelled, err := a.services.Queue.CancelAll(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "cancelled=%d\n", cancelled)
				return err
			}

			result, err := a.services.Queue.Reconcile(cmd.Context())
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "run=%s state=%s action=%s scheduled=%d cancelled=%d failed=%d\n",
					result.RunID, result.State, result.Action, result.Scheduled, result.Cancelled, result.Failed)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.CancelAll, "cancel-all", false, "cancel every pending notification")

	return cmd
}
