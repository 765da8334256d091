package main

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

func newSettingsCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change theme settings",
	}
	cmd.AddCommand(newSettingsSaveCmd(rootFlags))
	return cmd
}

type settingsSaveOptions struct {
	set []string
}

func newSettingsSaveCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &settingsSaveOptions{}

	cmd := &cobra.Command{
		Use:   "save <name|id>",
		Short: "Validate settings and store them when the theme persists its options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSave(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Setting as key=value (repeatable)")

	return cmd
}

func runSettingsSave(cmd *cobra.Command, rootFlags *rootFlags, opts *settingsSaveOptions, ref string) error {
	candidate, err := parseAssignments(opts.set)
	if err != nil {
		return newCommandError("save settings", "parsing --set values", err, "Use --set key=value.")
	}

	app, err := newApp(cmd, rootFlags, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.lookup(ref)
	if err != nil {
		return newCommandError("save settings", ref, err, "Run 'themekit list' to see registered themes.")
	}

	// Start from the current options so a partial --set list keeps the rest.
	merged := t.Options()
	maps.Copy(merged, candidate)

	result, err := t.SaveSettings(cmd.Context(), merged)
	if err != nil {
		return newCommandError("save settings", t.Name(), err, "Adjust the rejected values and try again.")
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Mode == theme.SaveValidated:
		encoded, err := json.MarshalIndent(result.Settings, "", "  ")
		if err != nil {
			return newCommandError("save settings", t.Name(), err, "Settings must be JSON encodable.")
		}
		fmt.Fprintf(out, "%s does not persist settings; validated settings:\n%s\n", t.Name(), encoded)
	case result.Persisted:
		fmt.Fprintf(out, "Saved settings for %s under %s\n", t.Name(), t.OptionsStorageKey())
	default:
		fmt.Fprintf(out, "Settings for %s unchanged\n", t.Name())
	}
	return nil
}
