package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

type testVariant struct {
	name      string
	themeType string
}

func (v *testVariant) Definition() theme.Definition {
	return theme.Definition{Name: v.name, Type: v.themeType}
}

func (v *testVariant) ValidateSettings(candidate theme.Settings) (theme.Settings, error) {
	return candidate, nil
}

type notATheme struct{}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	require.NoError(t, c.Register("Classic", func() any { return &testVariant{name: "Classic"} }))
	require.NoError(t, c.Register("Sidebar", func() any { return &testVariant{name: "Sidebar", themeType: "widget"} }))
	require.NoError(t, c.Register("Helper", func() any { return &notATheme{} }))
	return c
}

func writePHP(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("<?php\n"+body+"\n"), 0o644))
	return path
}

func construct(t *testing.T, name, themeType string) *theme.Theme {
	t.Helper()
	th, err := theme.New(context.Background(), &testVariant{name: name, themeType: themeType})
	require.NoError(t, err)
	return th
}

func TestRegisterRejectsNil(t *testing.T) {
	t.Parallel()

	require.Error(t, New(nil).Register(nil))
}

func TestRegisterInPathSkipsNilFactoryResults(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t)
	require.NoError(t, catalog.Register("Broken", func() any { return (*testVariant)(nil) }))

	path := writePHP(t, t.TempDir(), "themes.php", `class Broken extends Theme {}
class Classic extends Theme {}`)

	r := New(catalog)
	var found *theme.Theme
	require.NotPanics(t, func() {
		var err error
		found, err = r.RegisterInPath(context.Background(), path, "")
		require.NoError(t, err)
	})
	require.NotNil(t, found)
	require.Equal(t, "Classic", found.Name())
	require.Equal(t, 1, r.Len())
}

func TestRegisterOverwritesSameID(t *testing.T) {
	t.Parallel()

	r := New(nil)
	th := construct(t, "Classic", "")
	require.NoError(t, r.Register(th))
	require.NoError(t, r.Register(th))

	require.Equal(t, 1, r.Len())
	require.Same(t, th, r.ThemeByUniqueID(th.UniqueID()))
}

func TestRegisterInPathSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writePHP(t, dir, "themes.php", `class Helper {}
class Sidebar extends Theme {}
class Classic extends Theme {}`)

	r := New(testCatalog(t))
	found, err := r.RegisterInPath(context.Background(), path, "")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Sidebar", found.Name())
	require.Equal(t, dir, found.BasePath())
	require.Equal(t, 1, r.Len())
}

func TestRegisterInPathDirectoryFindsQualifyingClass(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePHP(t, dir, "a_helper.php", "class Helper {}")
	writePHP(t, dir, "b_theme.php", "class Classic extends Theme {}")

	r := New(testCatalog(t))
	found, err := r.RegisterInPath(context.Background(), dir, "")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Classic", found.Name())
	require.Same(t, found, r.ThemeByUniqueID(found.UniqueID()))
	require.Equal(t, 1, r.Len())
}

func TestRegisterInPathByName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePHP(t, dir, "classic.php", "class Classic extends Theme {}")
	writePHP(t, dir, "sidebar.php", "class Sidebar extends Theme {}")

	r := New(testCatalog(t))
	found, err := r.RegisterInPath(context.Background(), dir, "Sidebar")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Sidebar", found.Name())

	again, err := r.RegisterInPath(context.Background(), filepath.Join(dir, "missing"), "Sidebar")
	require.NoError(t, err)
	require.Same(t, found, again)
}

func TestRegisterInPathMisses(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePHP(t, dir, "commented.php", `// class Classic extends Theme {}
/* class Sidebar {} */
$x = "class Classic {}";
class Unknown {}
class Helper {}`)

	r := New(testCatalog(t))

	cases := map[string]struct {
		path string
		name string
	}{
		"comments and strings": {path: filepath.Join(dir, "commented.php")},
		"directory":            {path: dir},
		"name not present":     {path: dir, name: "Classic"},
		"missing path":         {path: filepath.Join(dir, "nope")},
	}
	for label, tc := range cases {
		found, err := r.RegisterInPath(context.Background(), tc.path, tc.name)
		require.NoError(t, err, label)
		require.Nil(t, found, label)
	}
	require.Zero(t, r.Len())
}

func TestRegisterInPathIgnoresDanglingLinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePHP(t, dir, "b_theme.php", "class Classic extends Theme {}")
	// Dangling links are not regular files and are never listed.
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.php"), filepath.Join(dir, "a_broken.php")))

	r := New(testCatalog(t))
	found, err := r.RegisterInPath(context.Background(), dir, "")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Classic", found.Name())
}

func TestRegisterInPathHonoursCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePHP(t, dir, "classic.php", "class Classic extends Theme {}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	found, err := New(testCatalog(t)).RegisterInPath(ctx, dir, "")
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, found)
}

func TestRegisterInPathAppliesThemeOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writePHP(t, dir, "classic.php", "class Classic extends Theme {}")

	r := New(testCatalog(t), WithThemeOptions(theme.WithBasePath("/ignored")))
	found, err := r.RegisterInPath(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, dir, found.BasePath(), "the discovered file location wins")
}

func TestRegisterAllInPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePHP(t, dir, "a.php", "class Classic extends Theme {}\nclass Sidebar extends Theme {}")
	writePHP(t, dir, "b.php", "class Sidebar extends Theme {}")
	writePHP(t, dir, "c.php", "class Helper {}")

	r := New(testCatalog(t))
	registered, err := r.RegisterAllInPath(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, registered, 2)
	require.Equal(t, "Classic", registered[0].Name())
	require.Equal(t, "Sidebar", registered[1].Name())
	require.Equal(t, 2, r.Len())

	single, err := New(testCatalog(t)).RegisterAllInPath(context.Background(), filepath.Join(dir, "b.php"))
	require.NoError(t, err)
	require.Len(t, single, 1)
}

func TestAllOfTypeReturnsEveryMatch(t *testing.T) {
	t.Parallel()

	r := New(nil)
	general := construct(t, "Classic", "general")
	first := construct(t, "Sidebar", "widget")
	second := construct(t, "Footer", "widget")
	for _, th := range []*theme.Theme{general, first, second} {
		require.NoError(t, r.Register(th))
	}

	widgets := r.AllOfType("widget")
	require.Equal(t, []*theme.Theme{first, second}, widgets)
	require.Empty(t, r.AllOfType("banner"))
	require.NotNil(t, r.AllOfType("banner"))
}

func TestLookups(t *testing.T) {
	t.Parallel()

	r := New(nil)
	classic := construct(t, "Classic", "")
	sidebar := construct(t, "Sidebar", "widget")
	duplicate := construct(t, "Classic", "")
	for _, th := range []*theme.Theme{classic, sidebar, duplicate} {
		require.NoError(t, r.Register(th))
	}

	require.Same(t, classic, r.ThemeByName("Classic"))
	require.Nil(t, r.ThemeByName("Missing"))
	require.Same(t, sidebar, r.ThemeByUniqueID(sidebar.UniqueID()))
	require.Nil(t, r.ThemeByUniqueID("missing"))

	require.Equal(t, map[string]string{
		classic.UniqueID():   "Classic",
		sidebar.UniqueID():   "Sidebar",
		duplicate.UniqueID(): "Classic",
	}, r.Names(""))
	require.Equal(t, map[string]string{sidebar.UniqueID(): "Sidebar"}, r.Names("widget"))
	require.Equal(t, r.Names("widget"), r.RegisteredNames("widget"))

	require.Equal(t, []*theme.Theme{classic, sidebar, duplicate}, r.Registered(""))
	require.Equal(t, []*theme.Theme{classic, duplicate}, r.Registered(theme.DefaultType))
}

func TestDefaultRegistry(t *testing.T) {
	first := Default()
	require.Same(t, first, Default())

	catalog := NewCatalog()
	reset := ResetDefault(catalog)
	require.NotSame(t, first, reset)
	require.Same(t, reset, Default())
	require.Same(t, catalog, reset.Catalog())
}
