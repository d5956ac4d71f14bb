package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/burrow/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [regex]",
		Short: "List globally installed packages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var regex string
			if len(args) == 1 {
				regex = args[0]
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			pretty, _ := cmd.Flags().GetBool("json-pretty")
			sortBy, _ := cmd.Flags().GetString("sort-by")

			return c.app.List(cmd.Context(), cmd.OutOrStdout(), app.ListOptions{
				Regex:      regex,
				SortBy:     sortBy,
				JSON:       asJSON,
				JSONPretty: pretty,
			})
		},
	}
	cmd.Flags().Bool("json", false, "Print the list as JSON")
	cmd.Flags().Bool("json-pretty", false, "Print the list as indented JSON")
	cmd.Flags().String("sort-by", app.SortByName, "Sort by name, size or version")
	return cmd
}
