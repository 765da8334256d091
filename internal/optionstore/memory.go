package optionstore

import (
	"context"
	"maps"
	"reflect"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

// Memory keeps options in process memory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]map[string]any
}

var _ ports.OptionStore = (*Memory)(nil)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]map[string]any)}
}

// Get implements ports.OptionStore.
func (m *Memory) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return maps.Clone(value), true, nil
}

// Set implements ports.OptionStore.
func (m *Memory) Set(ctx context.Context, key string, value map[string]any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.values[key]; ok && reflect.DeepEqual(current, value) {
		return false, nil
	}
	m.values[key] = maps.Clone(value)
	return true, nil
}
