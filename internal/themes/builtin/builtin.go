// Package builtin holds the theme variants shipped with themekit.
package builtin

import (
	"github.com/alexisbeaulieu97/themekit/internal/registry"
	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

// Class names the variants are declared under in theme source files.
const (
	ClassicClass     = "ClassicTheme"
	SidebarClass     = "SidebarTheme"
	AssetHelperClass = "AssetHelper"
)

// Register adds the built-in classes to catalog.
func Register(catalog *registry.Catalog) error {
	entries := []struct {
		class   string
		factory registry.Factory
	}{
		{ClassicClass, func() any { return &Classic{} }},
		{SidebarClass, func() any { return &Sidebar{} }},
		{AssetHelperClass, func() any { return &AssetHelper{} }},
	}
	for _, e := range entries {
		if err := catalog.Register(e.class, e.factory); err != nil {
			return err
		}
	}
	return nil
}

// Classic is a general page theme with persisted settings.
type Classic struct{}

var classicRules = theme.Rules{
	"layout":    "required,oneof=left right none",
	"columns":   "required,min=1,max=4",
	"show_meta": "omitempty,boolean",
}

// Definition implements theme.Variant.
func (*Classic) Definition() theme.Definition {
	return theme.Definition{
		Name:              "Classic",
		Description:       "Two column page layout with an optional sidebar",
		Type:              theme.DefaultType,
		OptionsStorageKey: "themekit_classic_options",
		DefaultOptions: theme.Settings{
			"layout":    "right",
			"columns":   2,
			"show_meta": true,
		},
		CSS: []theme.Asset{
			{Handle: "reset", Path: "css/reset.css"},
			{Handle: "classic", Path: "css/classic.css", Deps: []string{"reset"}},
		},
		JS: []theme.Asset{
			{Handle: "classic", Path: "js/classic.js", Deps: []string{"jquery"}},
		},
		PreregisteredJS: []string{"jquery"},
	}
}

// ValidateSettings implements theme.Variant.
func (*Classic) ValidateSettings(candidate theme.Settings) (theme.Settings, error) {
	return theme.CheckSettings(candidate, classicRules)
}

// Sidebar is a widget theme. Its settings are validated but never stored.
type Sidebar struct{}

var sidebarRules = theme.Rules{
	"title": "required,max=64",
	"count": "required,min=1,max=20",
}

// Definition implements theme.Variant.
func (*Sidebar) Definition() theme.Definition {
	return theme.Definition{
		Name:        "Sidebar",
		Description: "Link list for sidebars and footers",
		Type:        "widget",
		DefaultOptions: theme.Settings{
			"title": "Links",
			"count": 5,
		},
		CSS:              []theme.Asset{{Handle: "sidebar", Path: "css/sidebar.css"}},
		PreregisteredCSS: []string{"dashicons"},
	}
}

// ValidateSettings implements theme.Variant.
func (*Sidebar) ValidateSettings(candidate theme.Settings) (theme.Settings, error) {
	return theme.CheckSettings(candidate, sidebarRules)
}

// AssetHelper is declared next to the themes in their source files but is
// not a theme; discovery instantiates it and moves on.
type AssetHelper struct{}
