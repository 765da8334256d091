package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	kiterrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// FormatFor picks the syntax from the file extension. Anything that is not
// .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads, decodes, defaults and validates the configuration at path.
// Relative theme, store and asset paths are resolved against the file's
// directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kiterrors.NewParseError(path, "", 0, err)
	}

	cfg, err := Parse(path, data, FormatFor(path))
	if err != nil {
		return nil, err
	}
	resolvePaths(cfg, filepath.Dir(path))
	return cfg, nil
}

// Parse decodes data in the given format. path only labels errors.
func Parse(path string, data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, kiterrors.NewParseError(path, string(format), tomlLine(err), err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, kiterrors.NewParseError(path, string(FormatYAML), extractLine(err), err)
		}
	}

	ApplyDefaults(&cfg)
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolvePaths(cfg *Config, dir string) {
	abs := func(p string) string {
		if p == "" || p == ":memory:" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range cfg.Themes {
		cfg.Themes[i].Path = abs(cfg.Themes[i].Path)
	}
	cfg.Store.Path = abs(cfg.Store.Path)
	cfg.Assets.Root = abs(cfg.Assets.Root)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}

func tomlLine(err error) int {
	var parseErr toml.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Position.Line
	}
	return 0
}
