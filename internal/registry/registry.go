// Package registry keeps the constructed themes of a process and discovers
// new ones in theme source files.
package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/discovery"
	"github.com/alexisbeaulieu97/themekit/internal/filescan"
	"github.com/alexisbeaulieu97/themekit/internal/logger"
	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

// Registry maps unique ids to themes. Lookups that return several themes
// return them in registration order.
type Registry struct {
	catalog   *Catalog
	themeOpts []theme.Option
	log       *logger.Logger

	mu     sync.RWMutex
	themes map[string]*theme.Theme
	order  []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithThemeOptions sets the options every discovered theme is constructed with.
func WithThemeOptions(opts ...theme.Option) Option {
	return func(r *Registry) { r.themeOpts = append(r.themeOpts, opts...) }
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// New returns an empty registry discovering classes from catalog. A nil
// catalog disables discovery.
func New(catalog *Catalog, opts ...Option) *Registry {
	if catalog == nil {
		catalog = NewCatalog()
	}
	r := &Registry{
		catalog: catalog,
		themes:  make(map[string]*theme.Theme),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog discovery instantiates classes from.
func (r *Registry) Catalog() *Catalog { return r.catalog }

// Register stores t under its unique id, replacing any theme already there.
func (r *Registry) Register(t *theme.Theme) error {
	if t == nil {
		return fmt.Errorf("theme is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := t.UniqueID()
	if _, exists := r.themes[id]; !exists {
		r.order = append(r.order, id)
	}
	r.themes[id] = t
	return nil
}

// RegisterInPath finds a theme at path, registers it and returns it.
//
// A non-empty name that is already registered is returned without touching
// the filesystem. A file yields its first declared class that the catalog
// knows and that builds a theme.Variant. A directory is searched file by file
// in listing order, without descending into subdirectories, and the first
// theme whose name matches (any theme when name is empty) wins. Nothing found
// is reported as (nil, nil).
func (r *Registry) RegisterInPath(ctx context.Context, path, name string) (*theme.Theme, error) {
	if name != "" {
		if found := r.ThemeByName(name); found != nil {
			return found, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if filescan.IsFile(path) {
		return r.registerFile(ctx, path)
	}

	for _, entry := range filescan.ListFiles(path) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := filepath.Join(path, entry)
		found, err := r.RegisterInPath(ctx, file, name)
		if err != nil {
			r.log.Warn("skipping theme file", "path", file, "error", err.Error())
			continue
		}
		if found != nil && (name == "" || found.Name() == name) {
			if err := r.Register(found); err != nil {
				return nil, err
			}
			return found, nil
		}
	}

	r.log.Debug("no theme found", "path", path, "name", name)
	return nil, nil
}

// RegisterAllInPath registers the first qualifying theme of every file at
// path. Unreadable files are skipped.
func (r *Registry) RegisterAllInPath(ctx context.Context, path string) ([]*theme.Theme, error) {
	files := []string{path}
	if !filescan.IsFile(path) {
		files = files[:0]
		for _, entry := range filescan.ListFiles(path) {
			files = append(files, filepath.Join(path, entry))
		}
	}

	registered := make([]*theme.Theme, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return registered, err
		}

		found, err := r.registerFile(ctx, file)
		if err != nil {
			r.log.Warn("skipping theme file", "path", file, "error", err.Error())
			continue
		}
		if found != nil {
			registered = append(registered, found)
		}
	}
	return registered, nil
}

func (r *Registry) registerFile(ctx context.Context, path string) (*theme.Theme, error) {
	classes, err := discovery.ClassesInFile(path)
	if err != nil {
		return nil, err
	}

	for _, class := range classes {
		factory, ok := r.catalog.Lookup(class)
		if !ok {
			r.log.Debug("class not in catalog", "path", path, "class", class)
			continue
		}

		variant, ok := factory().(theme.Variant)
		if !ok || isNil(variant) {
			r.log.Debug("class is not a theme", "path", path, "class", class)
			continue
		}

		opts := append(append([]theme.Option{}, r.themeOpts...), theme.WithBasePath(filepath.Dir(path)))
		t, err := theme.New(ctx, variant, opts...)
		if err != nil {
			return nil, fmt.Errorf("construct theme %s from %s: %w", class, path, err)
		}
		if err := r.Register(t); err != nil {
			return nil, err
		}
		r.log.Info("theme registered", "theme", t.Name(), "theme_id", t.UniqueID(), "type", t.Type(), "class", class, "path", path)
		return t, nil
	}

	r.log.Debug("no qualifying class", "path", path, "classes", classes)
	return nil, nil
}

// isNil also catches typed nil pointers a factory may hand back.
func isNil(v theme.Variant) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// AllOfType returns every registered theme of type themeType.
func (r *Registry) AllOfType(themeType string) []*theme.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*theme.Theme, 0)
	for _, id := range r.order {
		if t := r.themes[id]; t.Type() == themeType {
			out = append(out, t)
		}
	}
	return out
}

// ThemeByName returns the first registered theme named name, or nil.
func (r *Registry) ThemeByName(name string) *theme.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if t := r.themes[id]; t.Name() == name {
			return t
		}
	}
	return nil
}

// ThemeByUniqueID returns the theme registered under id, or nil.
func (r *Registry) ThemeByUniqueID(id string) *theme.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.themes[id]
}

// Names maps unique ids to theme names, restricted to themeType unless it is empty.
func (r *Registry) Names(themeType string) map[string]string {
	themes := r.Registered(themeType)
	out := make(map[string]string, len(themes))
	for _, t := range themes {
		out[t.UniqueID()] = t.Name()
	}
	return out
}

// Registered returns the registered themes, restricted to themeType unless it is empty.
func (r *Registry) Registered(themeType string) []*theme.Theme {
	if themeType != "" {
		return r.AllOfType(themeType)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*theme.Theme, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.themes[id])
	}
	return out
}

// RegisteredNames is Names under the name hosts use next to Registered.
func (r *Registry) RegisteredNames(themeType string) map[string]string {
	return r.Names(themeType)
}

// Len returns the number of registered themes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
