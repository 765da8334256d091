package registry

import "sync"

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating an empty one with an
// empty catalog on first use.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry == nil {
		defaultRegistry = New(NewCatalog())
	}
	return defaultRegistry
}

// ResetDefault replaces the process-wide registry with a new one built from
// catalog and opts, and returns it.
func ResetDefault(catalog *Catalog, opts ...Option) *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultRegistry = New(catalog, opts...)
	return defaultRegistry
}
