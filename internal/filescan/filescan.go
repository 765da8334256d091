// Package filescan lists and reads the files that theme discovery walks.
//
// Listing helpers never fail: an empty or unreadable path yields an empty
// slice so callers can treat "nothing there" and "cannot look" alike.
package filescan

import (
	"fmt"
	"os"
	"path/filepath"
)

// Tree is the recursive listing of a directory. Subdirectories are keyed by
// name; plain entries keep listing order.
type Tree struct {
	Dirs  map[string]Tree
	Files []string
}

// ListFiles returns the names of the regular files directly inside path.
// Symbolic links are followed.
func ListFiles(path string) []string {
	return list(path, func(info os.FileInfo) bool { return info.Mode().IsRegular() })
}

// ListDirectories returns the names of the directories directly inside path.
func ListDirectories(path string) []string {
	return list(path, func(info os.FileInfo) bool { return info.IsDir() })
}

// ListTreeRecursive walks path and returns every directory as a nested Tree.
// Entries that are neither directories nor readable are listed as files.
func ListTreeRecursive(path string) (Tree, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return Tree{}, fmt.Errorf("read directory %s: %w", path, err)
	}

	tree := Tree{Dirs: make(map[string]Tree), Files: []string{}}
	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		if isDir(full) {
			sub, err := ListTreeRecursive(full)
			if err != nil {
				return Tree{}, err
			}
			tree.Dirs[entry.Name()] = sub
			continue
		}
		tree.Files = append(tree.Files, entry.Name())
	}
	return tree, nil
}

// ReadText returns the raw contents of the file at path.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// IsFile reports whether path names an existing regular file.
func IsFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func list(path string, keep func(os.FileInfo) bool) []string {
	if path == "" {
		return []string{}
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		// os.ReadDir never yields "." or "..", Stat resolves symlinks.
		info, err := os.Stat(filepath.Join(path, entry.Name()))
		if err != nil {
			continue
		}
		if keep(info) {
			names = append(names, entry.Name())
		}
	}
	return names
}
