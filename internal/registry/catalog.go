package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrDuplicateClass is returned when a class name is added to a Catalog twice.
var ErrDuplicateClass = errors.New("class already in catalog")

// Factory builds a fresh instance of a catalogued class. Instances that do
// not implement theme.Variant are ignored by discovery.
type Factory func() any

// Catalog maps class names, as they are declared in theme source files, to
// the factories that build them. Lookups ignore case, like PHP class names.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]catalogEntry
}

type catalogEntry struct {
	name    string
	factory Factory
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]catalogEntry)}
}

// Register adds className to the catalog.
func (c *Catalog) Register(className string, factory Factory) error {
	if strings.TrimSpace(className) == "" {
		return fmt.Errorf("class name is empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for class %q is nil", className)
	}

	key := strings.ToLower(className)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.factories[key]; ok {
		return fmt.Errorf("%w: %s (registered as %s)", ErrDuplicateClass, className, existing.name)
	}
	c.factories[key] = catalogEntry{name: className, factory: factory}
	return nil
}

// MustRegister is Register for static setup code; it panics on error.
func (c *Catalog) MustRegister(className string, factory Factory) {
	if err := c.Register(className, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered for className.
func (c *Catalog) Lookup(className string) (Factory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.factories[strings.ToLower(className)]
	return entry.factory, ok
}

// Names lists the catalogued class names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.factories))
	for _, entry := range c.factories {
		names = append(names, entry.name)
	}
	sort.Strings(names)
	return names
}
