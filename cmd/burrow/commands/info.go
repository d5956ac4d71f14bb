package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/burrow/internal/app"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show the installed record of a global package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.Info(cmd.Context(), cmd.OutOrStdout(), args[0], app.InfoOptions{JSON: asJSON})
		},
	}
	cmd.Flags().Bool("json", false, "Print the record as JSON")
	return cmd
}
