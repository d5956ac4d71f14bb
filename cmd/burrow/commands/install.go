package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/burrow/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <spec>...",
		Short: "Install packages into their own global environments",
		Long: `Install resolves every spec against the configured channels, installs the
solution into <home>/envs/<name> and exposes the package's executables in <home>/bin.

Specs use conda match spec syntax, for example "ripgrep", "python >=3.11" or
"conda-forge::bat".`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			channels, _ := cmd.Flags().GetStringArray("channel")
			platform, _ := cmd.Flags().GetString("platform")
			verbose, _ := cmd.Flags().GetBool("verbose")

			_, err := c.app.Install(cmd.Context(), args, app.InstallOptions{
				Channels: channels,
				Platform: platform,
				Verbose:  verbose,
			})
			return err
		},
	}
	cmd.Flags().StringArrayP("channel", "c", nil, "Channel to install from (repeatable, defaults to the configured channels)")
	cmd.Flags().StringP("platform", "p", "", "Platform to fetch metadata for (defaults to the current platform)")
	cmd.Flags().BoolP("verbose", "v", false, "Report the duration of each step")
	return cmd
}
