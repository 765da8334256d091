// Package view renders markup files with html/template.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"maps"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

// Renderer parses a markup file on every call and executes it with the data
// scope. Files are small and renders are request-scoped, so nothing is cached.
type Renderer struct {
	funcs template.FuncMap
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) Option {
	return func(r *Renderer) { maps.Copy(r.funcs, funcs) }
}

// NewRenderer returns a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{funcs: template.FuncMap{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ViewRenderer = (*Renderer)(nil)

// Render implements ports.ViewRenderer. A missing file is reported with an
// error wrapping fs.ErrNotExist.
func (r *Renderer) Render(filePath string, data map[string]any) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read template %q: %w", filePath, err)
	}

	tmpl, err := template.New(filepath.Base(filePath)).Funcs(r.funcs).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", filePath, err)
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("render template %q: %w", filePath, err)
	}
	return rendered.String(), nil
}
