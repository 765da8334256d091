package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func exampleThemesDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	dir, err := filepath.Abs(filepath.Join(filepath.Dir(file), "..", "..", "examples", "themes"))
	require.NoError(t, err)
	return dir
}

// writeTestConfig writes a configuration registering the example themes with
// a file option store inside a temporary directory.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	themes := exampleThemesDir(t)
	dir := t.TempDir()
	contents := fmt.Sprintf(`themes:
  - path: %[1]s/classic
  - path: %[1]s/sidebar
store:
  driver: file
  path: options.json
assets:
  root: %[1]s
  base_url: https://example.test/themes
  styles:
    - handle: dashicons
      url: https://example.test/dashicons.css
  scripts:
    - handle: jquery
      url: https://example.test/jquery.js
log:
  level: warn
  human: false
`, filepath.ToSlash(themes))

	path := filepath.Join(dir, "themekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func executeCommand(args ...string) (stdout, stderr string, err error) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}
