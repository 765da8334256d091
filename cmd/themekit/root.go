package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "themekit",
		Short:         "themekit discovers, configures and renders plugin themes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a themekit.yaml or themekit.toml file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newDiscoverCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newSettingsCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
