package theme

import (
	"context"
	"fmt"
	"maps"
)

// SaveMode tells which contract SaveSettings followed.
type SaveMode int

const (
	// SaveValidated means no storage key is declared: the validated settings
	// are handed back and nothing was written.
	SaveValidated SaveMode = iota
	// SavePersisted means the validated settings were passed to the option
	// store and Persisted carries its answer.
	SavePersisted
)

func (m SaveMode) String() string {
	switch m {
	case SavePersisted:
		return "persisted"
	default:
		return "validated"
	}
}

// SaveResult is the outcome of SaveSettings.
type SaveResult struct {
	Mode      SaveMode
	Persisted bool
	Settings  Settings
}

// SaveSettings validates candidate with the variant's rule. With a storage
// key the validated settings are written to the option store and the theme
// options are replaced by what the store now holds; without one they are
// only returned.
func (t *Theme) SaveSettings(ctx context.Context, candidate Settings) (SaveResult, error) {
	validated, err := t.variant.ValidateSettings(maps.Clone(candidate))
	if err != nil {
		t.log.Debug("settings rejected", "error", err.Error())
		return SaveResult{Mode: SaveValidated}, &ValidationError{Theme: t.def.Name, Err: err}
	}

	key := t.def.OptionsStorageKey
	if key == "" || validated == nil {
		return SaveResult{Mode: SaveValidated, Settings: validated}, nil
	}
	if t.store == nil {
		return SaveResult{Mode: SavePersisted, Settings: validated}, fmt.Errorf("theme %q declares storage key %q but has no option store", t.def.Name, key)
	}

	written, err := t.store.Set(ctx, key, validated)
	if err != nil {
		return SaveResult{Mode: SavePersisted, Settings: validated}, fmt.Errorf("store options %q: %w", key, err)
	}
	if written {
		if err := t.reloadOptions(ctx, key); err != nil {
			t.log.Warn("reload after save failed", "key", key, "error", err.Error())
		}
	}
	t.log.Debug("settings saved", "key", key, "written", written)
	return SaveResult{Mode: SavePersisted, Persisted: written, Settings: validated}, nil
}

// LoadOptions merges settings into the effective options; keys in settings win.
func (t *Theme) LoadOptions(settings Settings) {
	maps.Copy(t.options, settings)
}

// LoadOptionsFromStore fetches the value stored under key and merges it into
// the effective options. Nothing changes when the key is empty, absent or
// holds an empty mapping.
func (t *Theme) LoadOptionsFromStore(ctx context.Context, key string) error {
	if key == "" || t.store == nil {
		return nil
	}
	stored, found, err := t.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load options %q: %w", key, err)
	}
	if found && len(stored) > 0 {
		maps.Copy(t.options, stored)
	}
	return nil
}

// reloadOptions replaces the effective options with the value stored under
// key, the same way New loads them.
func (t *Theme) reloadOptions(ctx context.Context, key string) error {
	stored, found, err := t.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load options %q: %w", key, err)
	}
	if found && len(stored) > 0 {
		t.options = Settings(maps.Clone(stored))
	}
	return nil
}
