package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

func newShowCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show the details of a registered theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootFlags, args[0])
		},
	}
	return cmd
}

var labelStyle = lipgloss.NewStyle().Bold(true).Width(14)

func runShow(cmd *cobra.Command, rootFlags *rootFlags, ref string) error {
	app, err := newApp(cmd, rootFlags, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.lookup(ref)
	if err != nil {
		return newCommandError("show theme", ref, err, "Run 'themekit list' to see registered themes.")
	}

	options, err := json.MarshalIndent(t.Options(), "", "  ")
	if err != nil {
		return newCommandError("show theme", ref, err, "Theme options must be JSON encodable.")
	}

	out := cmd.OutOrStdout()
	field := func(label, value string) {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(label), value)
	}
	field("Name:", t.Name())
	field("ID:", t.UniqueID())
	field("Type:", t.Type())
	field("Description:", valueOrFallback(t.Description(), "(none)"))
	field("Base path:", t.BasePath())
	field("Storage key:", valueOrFallback(t.OptionsStorageKey(), "(not persisted)"))
	field("Stylesheets:", formatAssets(t.CSSAssets(), t.PreregisteredCSS()))
	field("Scripts:", formatAssets(t.JSAssets(), t.PreregisteredJS()))
	fmt.Fprintf(out, "%s\n%s\n", labelStyle.Render("Options:"), options)
	return nil
}

func formatAssets(declared []theme.Asset, preregistered []string) string {
	parts := make([]string, 0, len(declared)+len(preregistered))
	for _, handle := range preregistered {
		parts = append(parts, handle+" (preregistered)")
	}
	for _, asset := range declared {
		entry := fmt.Sprintf("%s=%s", asset.Handle, asset.Path)
		if len(asset.Deps) > 0 {
			entry += " after " + strings.Join(asset.Deps, ",")
		}
		parts = append(parts, entry)
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, "; ")
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
