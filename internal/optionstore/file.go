package optionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

const fileFormatVersion = "1.0"

type optionsFile struct {
	Version string                     `json:"version"`
	Options map[string]json.RawMessage `json:"options"`
}

// File keeps options in a JSON document. Every write replaces the document
// through a temporary file and a rename.
type File struct {
	path string

	mu      sync.RWMutex
	options map[string]json.RawMessage
}

var _ ports.OptionStore = (*File)(nil)

// NewFile opens the document at path, creating its directory when needed. A
// missing document is treated as empty.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("option file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create option store directory: %w", err)
	}

	f := &File{path: path, options: map[string]json.RawMessage{}}
	if err := f.load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return f, nil
}

// Path returns the document location.
func (f *File) Path() string { return f.path }

func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	var doc optionsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse option file %s: %w", f.path, err)
	}
	for key, raw := range doc.Options {
		value, err := decode(raw)
		if err != nil {
			return fmt.Errorf("option %q in %s: %w", key, f.path, err)
		}
		// Re-encode so later comparisons see the canonical form.
		if f.options[key], err = encode(value); err != nil {
			return err
		}
	}
	return nil
}

// Get implements ports.OptionStore.
func (f *File) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	f.mu.RLock()
	raw, ok := f.options[key]
	f.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	value, err := decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("option %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements ports.OptionStore.
func (f *File) Set(ctx context.Context, key string, value map[string]any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	encoded, err := encode(value)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.options[key]
	if existed && sameEncoding(previous, encoded) {
		return false, nil
	}

	f.options[key] = encoded
	if err := f.save(); err != nil {
		if existed {
			f.options[key] = previous
		} else {
			delete(f.options, key)
		}
		return false, err
	}
	return true, nil
}

// save must be called with the write lock held.
func (f *File) save() error {
	data, err := json.MarshalIndent(optionsFile{Version: fileFormatVersion, Options: f.options}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal option file: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temporary option file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace option file: %w", err)
	}
	return nil
}
