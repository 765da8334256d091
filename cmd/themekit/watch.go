package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/filescan"
	"github.com/alexisbeaulieu97/themekit/internal/logger"
	"github.com/alexisbeaulieu97/themekit/internal/registry"
	"github.com/alexisbeaulieu97/themekit/internal/theme"
)

func newWatchCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Register themes from a directory as their files appear",
		Long: "Register the themes already in <dir>, then keep registering themes from files created or written there until interrupted. " +
			"A file that has already produced a theme is not read again; restart the watch to pick up changes to it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, rootFlags, args[0])
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command, rootFlags *rootFlags, dir string) error {
	app, err := newApp(cmd, rootFlags, appOptions{skipConfiguredThemes: true})
	if err != nil {
		return err
	}
	defer app.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s for themes (Ctrl-C to stop)\n", dir)

	err = watchThemes(cmd.Context(), app.registry, app.log, dir, nil, func(t *theme.Theme) {
		fmt.Fprintf(out, "Registered %s (%s) as %s\n", t.Name(), t.Type(), t.UniqueID())
	})
	if err != nil {
		return newCommandError("watch themes", dir, err, "Check that the directory exists and is readable.")
	}
	return nil
}

// watchThemes registers the themes of the files in dir and of every file
// created or written there afterwards, until ctx is done. A file contributes
// at most one theme; later writes to it are ignored since registrations are
// never removed. ready, when set, is called once the initial scan is done
// and the watch is active.
func watchThemes(ctx context.Context, reg *registry.Registry, log *logger.Logger, dir string, ready func(), onTheme func(*theme.Theme)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	registered := make(map[string]struct{})
	try := func(path string) {
		if _, done := registered[path]; done {
			log.Debug("theme file already registered", "path", path)
			return
		}
		if !filescan.IsFile(path) {
			return
		}
		found, err := reg.RegisterInPath(ctx, path, "")
		if err != nil {
			log.Debug("theme file not ready", "path", path, "error", err.Error())
			return
		}
		if found == nil {
			return
		}
		registered[path] = struct{}{}
		if onTheme != nil {
			onTheme(found)
		}
	}

	for _, entry := range filescan.ListFiles(dir) {
		try(filepath.Join(dir, entry))
	}
	if ready != nil {
		ready()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				try(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "dir", dir, "error", err.Error())
		}
	}
}
