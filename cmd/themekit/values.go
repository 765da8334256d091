package main

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

// parseAssignments turns key=value flags into settings. Values are decoded as
// YAML scalars so "3" becomes an int and "true" a bool; anything that does
// not decode stays a string.
func parseAssignments(assignments []string) (theme.Settings, error) {
	out := make(theme.Settings, len(assignments))
	for _, raw := range assignments {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", raw)
		}
		out[key] = decodeScalar(value)
	}
	return out, nil
}

func decodeScalar(value string) any {
	if strings.TrimSpace(value) == "" {
		return value
	}
	var decoded any
	if err := yaml.Unmarshal([]byte(value), &decoded); err != nil {
		return value
	}
	switch decoded.(type) {
	case bool, int, float64, string:
		return decoded
	}
	// Nulls, sequences and mappings are kept verbatim.
	return value
}
