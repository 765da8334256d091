// Package optionstore provides the option stores themes persist their
// settings in.
package optionstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexisbeaulieu97/themekit/internal/config"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

// Store drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open returns the store selected by cfg together with a closer releasing
// its resources. The closer is never nil.
func Open(cfg config.StoreConfig) (ports.OptionStore, io.Closer, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), nopCloser{}, nil
	case DriverFile:
		store, err := NewFile(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, nopCloser{}, nil
	case DriverSQLite:
		store, err := NewSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown option store driver %q", cfg.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// encode produces the canonical JSON form of a value. encoding/json sorts map
// keys, so equal mappings encode to equal bytes.
func encode(value map[string]any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode option value: %w", err)
	}
	return data, nil
}

func decode(data []byte) (map[string]any, error) {
	var value map[string]any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode option value: %w", err)
	}
	return value, nil
}

func sameEncoding(a, b []byte) bool {
	return bytes.Equal(a, b)
}
