package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/themekit/internal/assets"
	"github.com/alexisbeaulieu97/themekit/internal/config"
	"github.com/alexisbeaulieu97/themekit/internal/logger"
	"github.com/alexisbeaulieu97/themekit/internal/optionstore"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/registry"
	"github.com/alexisbeaulieu97/themekit/internal/theme"
	"github.com/alexisbeaulieu97/themekit/internal/themes/builtin"
)

// appContext bundles the services a command works with.
type appContext struct {
	cfg      *config.Config
	log      *logger.Logger
	store    ports.OptionStore
	pipeline *assets.Pipeline
	registry *registry.Registry

	closer io.Closer
}

type appOptions struct {
	// view overrides the configured view when set.
	view *assets.ViewContext
	// skipConfiguredThemes leaves the registry empty instead of registering
	// the theme paths listed in the configuration.
	skipConfiguredThemes bool
}

func newApp(cmd *cobra.Command, flags *rootFlags, opts appOptions) (*appContext, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, newCommandError("load configuration", flags.configPath, err, "Fix the reported field and try again.")
		}
		cfg = loaded
	}

	log, err := newLogger(cfg.Log, flags.verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, newCommandError("configure logging", cfg.Log.Level, err, "Use one of trace, debug, info, warn or error.")
	}

	store, closer, err := optionstore.Open(cfg.Store)
	if err != nil {
		return nil, newCommandError("open option store", cfg.Store.Driver, err, "Check store.driver and store.path in your configuration.")
	}

	urls, err := newURLResolver(cfg.Assets)
	if err != nil {
		closer.Close()
		return nil, newCommandError("configure assets", cfg.Assets.BaseURL, err, "Set assets.base_url to an absolute URL.")
	}

	view := assets.ViewContext{Admin: cfg.View.Admin, Toolbar: cfg.View.Toolbar}
	if opts.view != nil {
		view = *opts.view
	}
	pipeline := assets.NewPipeline(view)
	for _, style := range cfg.Assets.Styles {
		pipeline.RegisterStyle(style.Handle, style.URL, style.Deps)
	}
	for _, script := range cfg.Assets.Scripts {
		pipeline.RegisterScript(script.Handle, script.URL, script.Deps)
	}

	catalog := registry.NewCatalog()
	if err := builtin.Register(catalog); err != nil {
		closer.Close()
		return nil, newCommandError("prepare theme catalog", "registering built-in themes", err, "This is a bug; please report it.")
	}

	reg := registry.New(catalog,
		registry.WithLogger(log),
		registry.WithThemeOptions(
			theme.WithOptionStore(store),
			theme.WithAssetPipeline(pipeline),
			theme.WithURLResolver(urls),
			theme.WithOutput(cmd.OutOrStdout()),
			theme.WithLogger(log),
		),
	)

	app := &appContext{cfg: cfg, log: log, store: store, pipeline: pipeline, registry: reg, closer: closer}
	if !opts.skipConfiguredThemes {
		if err := app.registerConfiguredThemes(cmd.Context()); err != nil {
			app.Close()
			return nil, err
		}
	}
	return app, nil
}

func (a *appContext) registerConfiguredThemes(ctx context.Context) error {
	for _, entry := range a.cfg.Themes {
		found, err := a.registry.RegisterInPath(ctx, entry.Path, entry.Name)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			a.log.Warn("theme path failed", "path", entry.Path, "error", err.Error())
			continue
		}
		if found == nil {
			a.log.Warn("no theme found", "path", entry.Path, "name", entry.Name)
		}
	}
	return nil
}

// lookup finds a registered theme by unique id, then by name.
func (a *appContext) lookup(ref string) (*theme.Theme, error) {
	if t := a.registry.ThemeByUniqueID(ref); t != nil {
		return t, nil
	}
	if t := a.registry.ThemeByName(ref); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("theme %q is not registered", ref)
}

func (a *appContext) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func newLogger(cfg config.LogConfig, verbose bool, out io.Writer) (*logger.Logger, error) {
	level := cfg.Level
	if verbose {
		level = "debug"
	}
	human := isTerminal(out)
	if cfg.Human != nil {
		human = *cfg.Human
	}
	return logger.New(logger.Options{Level: level, HumanReadable: human, Writer: out, Component: "themekit"})
}

func newURLResolver(cfg config.AssetsConfig) (ports.URLResolver, error) {
	if cfg.BaseURL == "" {
		return assets.FileURLs{}, nil
	}
	return assets.NewURLMapper(cfg.Root, cfg.BaseURL)
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
