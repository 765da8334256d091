package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

type discoverOptions struct {
	name string
	all  bool
}

func newDiscoverCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &discoverOptions{}

	cmd := &cobra.Command{
		Use:   "discover <path>",
		Short: "Find and register the theme declared in a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Only accept the theme with this name")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Register the first theme of every file instead of stopping at the first match")

	return cmd
}

func runDiscover(cmd *cobra.Command, rootFlags *rootFlags, opts *discoverOptions, path string) error {
	app, err := newApp(cmd, rootFlags, appOptions{skipConfiguredThemes: true})
	if err != nil {
		return err
	}
	defer app.Close()

	var found []*theme.Theme
	if opts.all {
		found, err = app.registry.RegisterAllInPath(cmd.Context(), path)
	} else {
		var t *theme.Theme
		t, err = app.registry.RegisterInPath(cmd.Context(), path, opts.name)
		if t != nil {
			found = append(found, t)
		}
	}
	if err != nil {
		return newCommandError("discover themes", path, err, "Check that the path exists and is readable.")
	}

	out := cmd.OutOrStdout()
	if len(found) == 0 {
		fmt.Fprintf(out, "No theme found in %s\n", path)
		return nil
	}
	for _, t := range found {
		fmt.Fprintf(out, "Registered %s (%s) as %s from %s\n", t.Name(), t.Type(), t.UniqueID(), t.BasePath())
	}
	return nil
}
