package optionstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themekit/internal/config"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

type storeFactory func(t *testing.T) ports.OptionStore

func storeFactories() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) ports.OptionStore { return NewMemory() },
		"file": func(t *testing.T) ports.OptionStore {
			store, err := NewFile(filepath.Join(t.TempDir(), "options.json"))
			require.NoError(t, err)
			return store
		},
		"sqlite": func(t *testing.T) ports.OptionStore {
			store, err := NewSQLite(filepath.Join(t.TempDir(), "options.db"))
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			return store
		},
	}
}

func TestStoreContract(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			store := factory(t)

			_, found, err := store.Get(ctx, "classic_options")
			require.NoError(t, err)
			require.False(t, found)

			written, err := store.Set(ctx, "classic_options", map[string]any{"layout": "left", "sidebar": true})
			require.NoError(t, err)
			require.True(t, written)

			value, found, err := store.Get(ctx, "classic_options")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, map[string]any{"layout": "left", "sidebar": true}, value)

			written, err = store.Set(ctx, "classic_options", map[string]any{"sidebar": true, "layout": "left"})
			require.NoError(t, err)
			require.False(t, written, "equal value must not count as a write")

			written, err = store.Set(ctx, "classic_options", map[string]any{"layout": "right"})
			require.NoError(t, err)
			require.True(t, written)

			value, _, err = store.Get(ctx, "classic_options")
			require.NoError(t, err)
			require.Equal(t, map[string]any{"layout": "right"}, value)
		})
	}
}

func TestStoresRespectCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := factory(t).Set(ctx, "k", map[string]any{"a": "b"})
			require.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory()
	input := map[string]any{"a": "1"}
	_, err := store.Set(ctx, "k", input)
	require.NoError(t, err)
	input["a"] = "changed"

	value, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "1", value["a"])

	value["a"] = "mutated"
	again, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "1", again["a"])
}

func TestFilePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "options.json")

	first, err := NewFile(path)
	require.NoError(t, err)
	_, err = first.Set(ctx, "sidebar_options", map[string]any{"title": "Links", "count": 5})
	require.NoError(t, err)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temporary file must be renamed away")

	second, err := NewFile(path)
	require.NoError(t, err)
	value, found, err := second.Get(ctx, "sidebar_options")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, map[string]any{"title": "Links", "count": float64(5)}, value)

	written, err := second.Set(ctx, "sidebar_options", map[string]any{"count": 5, "title": "Links"})
	require.NoError(t, err)
	require.False(t, written)
}

func TestFileRejectsCorruptDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "options.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFile(path)
	require.Error(t, err)
}

func TestSQLitePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "options.db")

	first, err := NewSQLite(path)
	require.NoError(t, err)
	_, err = first.Set(ctx, "k", map[string]any{"colors": []any{"red", "blue"}})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	value, found, err := second.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, map[string]any{"colors": []any{"red", "blue"}}, value)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cases := []struct {
		name    string
		cfg     config.StoreConfig
		want    any
		wantErr bool
	}{
		{name: "default", cfg: config.StoreConfig{}, want: &Memory{}},
		{name: "memory", cfg: config.StoreConfig{Driver: DriverMemory}, want: &Memory{}},
		{name: "file", cfg: config.StoreConfig{Driver: DriverFile, Path: filepath.Join(dir, "o.json")}, want: &File{}},
		{name: "sqlite", cfg: config.StoreConfig{Driver: DriverSQLite, Path: filepath.Join(dir, "o.db")}, want: &SQLite{}},
		{name: "file without path", cfg: config.StoreConfig{Driver: DriverFile}, wantErr: true},
		{name: "unknown", cfg: config.StoreConfig{Driver: "redis"}, wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store, closer, err := Open(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, closer)
			require.IsType(t, tc.want, store)
			require.NoError(t, closer.Close())
		})
	}
}

func TestSQLiteInMemory(t *testing.T) {
	t.Parallel()

	store, err := NewSQLite(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	written, err := store.Set(ctx, "k", map[string]any{"a": "b"})
	require.NoError(t, err)
	require.True(t, written)

	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, map[string]any{"a": "b"}, value)
}
