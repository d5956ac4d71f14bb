package commands

import "github.com/spf13/cobra"

func (c *CLI) newHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Print the burrow home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Home(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
