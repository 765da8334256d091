package assets

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// FileURLs resolves assets to file:// URLs. It is the fallback when no public
// base URL is configured.
type FileURLs struct{}

// AssetURL implements ports.URLResolver.
func (FileURLs) AssetURL(basePath, relPath string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("asset path is empty")
	}
	full := relPath
	if !filepath.IsAbs(relPath) {
		full = filepath.Join(basePath, relPath)
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", full, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// URLMapper serves theme directories below Root from BaseURL, the way a host
// CMS maps its content directory to a public URL.
type URLMapper struct {
	Root    string
	BaseURL *url.URL
}

// NewURLMapper parses baseURL and returns a mapper for root.
func NewURLMapper(root, baseURL string) (*URLMapper, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse asset base url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("asset base url %q must be absolute", baseURL)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve asset root: %w", err)
	}
	return &URLMapper{Root: absRoot, BaseURL: parsed}, nil
}

// AssetURL implements ports.URLResolver. Assets outside Root are rejected.
func (m *URLMapper) AssetURL(basePath, relPath string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("asset path is empty")
	}
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("resolve base path: %w", err)
	}
	full := filepath.Join(absBase, relPath)

	rel, err := filepath.Rel(m.Root, full)
	if err != nil {
		return "", fmt.Errorf("asset %s: %w", full, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("asset %s is outside %s", full, m.Root)
	}

	resolved := *m.BaseURL
	resolved.Path = path.Join("/", m.BaseURL.Path, rel)
	return resolved.String(), nil
}
