// Package errors defines the error types themekit reports for configuration
// files.
package errors

import (
	"fmt"
	"strings"
)

// ParseError reports a configuration file that could not be read or decoded.
// Format names the syntax the decoder expected ("yaml", "toml"); it is empty
// when the file could not be read at all. Line is 0 when the decoder did not
// report a position.
type ParseError struct {
	Path   string
	Format string
	Line   int
	Err    error
}

// NewParseError constructs a ParseError for path.
func NewParseError(path, format string, line int, err error) error {
	return &ParseError{Path: path, Format: strings.ToLower(format), Line: line, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	if e.Format != "" {
		b.WriteString(e.Format)
		b.WriteByte(' ')
	}
	b.WriteString("config ")
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the decoder or filesystem error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a decoded configuration value that breaks a rule.
// Field is the dotted path of the offending value, e.g. "themes[0].path".
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, reason string, err error) error {
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return "invalid config: " + e.Reason
	}
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
