package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTodayCommand creates the today command.
func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print today's advice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts.Config)
			if err != nil {
				return err
			}
			defer a.Close()

			item, err := a.services.Rotation.GetToday(cmd.Context())
			if err != nil {
				return err
			}
			if item == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No advice available: every item is disabled.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n[%s]", item.Text, item.ID)
			if item.Query != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " %s", item.Query)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
