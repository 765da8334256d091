package main

import (
	"fmt"
	"maps"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/assets"
)

type renderOptions struct {
	set      []string
	admin    bool
	toolbar  bool
	settings bool
	noAssets bool
}

func newRenderCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <name|id> <template>",
		Short: "Render a theme template with the theme's options",
		Long: "Render a template of a registered theme. Relative template paths are resolved\n" +
			"against the theme's base path. The asset tags enqueued by the render are printed first.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rootFlags, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Template data as key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.admin, "admin", false, "Render as an administrative view")
	cmd.Flags().BoolVar(&opts.toolbar, "toolbar", false, "The administrative toolbar is shown")
	cmd.Flags().BoolVar(&opts.settings, "settings", false, "Render the template as the settings form")
	cmd.Flags().BoolVar(&opts.noAssets, "no-assets", false, "Do not print asset tags")

	return cmd
}

func runRender(cmd *cobra.Command, rootFlags *rootFlags, opts *renderOptions, ref, template string) error {
	data, err := parseAssignments(opts.set)
	if err != nil {
		return newCommandError("render", "parsing --set values", err, "Use --set key=value.")
	}

	var view *assets.ViewContext
	if cmd.Flags().Changed("admin") || cmd.Flags().Changed("toolbar") {
		view = &assets.ViewContext{Admin: opts.admin, Toolbar: opts.toolbar}
	}

	app, err := newApp(cmd, rootFlags, appOptions{view: view})
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.lookup(ref)
	if err != nil {
		return newCommandError("render", ref, err, "Run 'themekit list' to see registered themes.")
	}

	path := template
	if !filepath.IsAbs(path) {
		path = filepath.Join(t.BasePath(), path)
	}

	var rendered string
	if opts.settings {
		rendered, err = t.RenderSettings(path, false)
	} else {
		scope := map[string]any(t.Options())
		maps.Copy(scope, data)
		rendered, err = t.Render(path, scope, false)
	}
	if err != nil {
		return newCommandError("render", path, err, "Check the template path and its syntax.")
	}

	out := cmd.OutOrStdout()
	if !opts.noAssets {
		tags, err := app.pipeline.Tags()
		if err != nil {
			return newCommandError("render", "resolving asset order", err, "Register the handles your theme depends on.")
		}
		fmt.Fprint(out, tags)
	}
	fmt.Fprintln(out, rendered)
	return nil
}
