package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// TemplateNotFoundError is returned by Render and RenderSettings when the
// requested markup file does not exist.
type TemplateNotFoundError struct {
	Path string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %s not found", e.Path)
}

// Unwrap lets callers match the error with errors.Is(err, fs.ErrNotExist).
func (e *TemplateNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// ValidationError wraps the failure a variant's ValidateSettings reported.
type ValidationError struct {
	Theme string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid settings for theme %q", e.Theme)
	}
	return fmt.Sprintf("invalid settings for theme %q: %v", e.Theme, e.Err)
}

// Unwrap returns the variant's error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches any other ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// SettingsError lists the settings keys that failed rule checks, with the
// failing rule tag per key.
type SettingsError struct {
	Fields map[string]string
}

func (e *SettingsError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s failed '%s'", k, e.Fields[k]))
	}
	return "settings rejected: " + strings.Join(parts, ", ")
}

// IsTemplateNotFound reports whether err carries a TemplateNotFoundError.
func IsTemplateNotFound(err error) bool {
	var notFound *TemplateNotFoundError
	return errors.As(err, &notFound)
}
