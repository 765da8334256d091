package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

type listOptions struct {
	themeType  string
	jsonOutput bool
}

func newListCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the themes registered from the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.themeType, "type", "", "Only list themes of this type")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, rootFlags *rootFlags, opts *listOptions) error {
	app, err := newApp(cmd, rootFlags, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	themes := app.registry.Registered(opts.themeType)
	if opts.jsonOutput {
		return renderListJSON(cmd, themes)
	}
	if len(themes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No themes registered.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nAdd theme paths to your configuration or run 'themekit discover <path>'.")
		return nil
	}
	return renderListTable(cmd, themes)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderListTable(cmd *cobra.Command, themes []*theme.Theme) error {
	rows := make([][]string, 0, len(themes))
	for _, t := range themes {
		rows = append(rows, []string{t.Name(), t.Type(), t.UniqueID(), t.BasePath()})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "TYPE", "ID", "PATH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
	return err
}

type listJSONTheme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	BasePath    string `json:"base_path"`
	StorageKey  string `json:"storage_key,omitempty"`
}

type listJSONPayload struct {
	Version string          `json:"version"`
	Count   int             `json:"count"`
	Themes  []listJSONTheme `json:"themes"`
}

func renderListJSON(cmd *cobra.Command, themes []*theme.Theme) error {
	payload := listJSONPayload{
		Version: "1.0",
		Count:   len(themes),
		Themes:  make([]listJSONTheme, len(themes)),
	}
	for i, t := range themes {
		payload.Themes[i] = listJSONTheme{
			ID:          t.UniqueID(),
			Name:        t.Name(),
			Type:        t.Type(),
			Description: t.Description(),
			BasePath:    t.BasePath(),
			StorageKey:  t.OptionsStorageKey(),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
