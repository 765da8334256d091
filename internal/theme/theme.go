// Package theme implements the shared lifecycle of a renderable view bundle:
// settings loading and persistence, asset enqueueing and template rendering.
//
// Concrete themes are supplied as Variant implementations. A Variant only
// declares what it is (Definition) and how candidate settings are validated
// (ValidateSettings); everything else is implemented once by Theme.
package theme

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"slices"

	"github.com/alexisbeaulieu97/themekit/internal/assets"
	"github.com/alexisbeaulieu97/themekit/internal/logger"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/view"
)

// DefaultType is the category assigned to variants that do not declare one.
const DefaultType = "general"

// Settings is a theme's option mapping.
type Settings map[string]any

// Asset declares one CSS or JS resource. Path is relative to the theme's
// base path; Deps name other handles that must load first.
type Asset struct {
	Handle string
	Path   string
	Deps   []string
}

// Definition is the static declaration of a variant.
type Definition struct {
	Name        string
	Description string
	Type        string

	// OptionsStorageKey enables persistence through the option store when
	// non-empty. Without it settings are only validated and handed back.
	OptionsStorageKey string
	DefaultOptions    Settings

	CSS []Asset
	JS  []Asset

	// Handles already known to the asset pipeline.
	PreregisteredCSS []string
	PreregisteredJS  []string
}

// Variant is the capability set every concrete theme implements.
type Variant interface {
	Definition() Definition
	// ValidateSettings turns candidate settings into the settings to keep.
	// It must not have side effects.
	ValidateSettings(candidate Settings) (Settings, error)
}

// Locator lets a variant report its own base directory instead of having it
// derived from the location of its source file.
type Locator interface {
	BasePath() string
}

// Theme is a constructed variant bound to its collaborators.
type Theme struct {
	variant  Variant
	def      Definition
	uniqueID string
	basePath string

	options            Settings
	additionalViewData map[string]any

	store  ports.OptionStore
	assets ports.AssetPipeline
	urls   ports.URLResolver
	views  ports.ViewRenderer
	out    io.Writer
	log    *logger.Logger
}

// Option configures a Theme at construction time.
type Option func(*Theme)

// WithOptionStore sets the store used for persisted settings.
func WithOptionStore(store ports.OptionStore) Option {
	return func(t *Theme) { t.store = store }
}

// WithAssetPipeline sets the pipeline assets are enqueued into.
func WithAssetPipeline(pipeline ports.AssetPipeline) Option {
	return func(t *Theme) { t.assets = pipeline }
}

// WithURLResolver sets how asset paths become URLs.
func WithURLResolver(resolver ports.URLResolver) Option {
	return func(t *Theme) { t.urls = resolver }
}

// WithViewRenderer sets the template mechanism.
func WithViewRenderer(views ports.ViewRenderer) Option {
	return func(t *Theme) { t.views = views }
}

// WithOutput sets where echoed renders are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(t *Theme) { t.out = w }
}

// WithBasePath pins the base path instead of resolving it from the variant.
func WithBasePath(path string) Option {
	return func(t *Theme) { t.basePath = path }
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(t *Theme) { t.log = log }
}

// New constructs a Theme from variant. It assigns the unique id, loads the
// options (stored value when a storage key is declared and something is
// stored, defaults otherwise) and resolves the base path.
func New(ctx context.Context, variant Variant, opts ...Option) (*Theme, error) {
	if variant == nil {
		return nil, fmt.Errorf("theme variant is nil")
	}
	if rv := reflect.ValueOf(variant); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("theme variant %T is a nil pointer", variant)
	}

	def := variant.Definition()
	if def.Type == "" {
		def.Type = DefaultType
	}
	if def.DefaultOptions == nil {
		def.DefaultOptions = Settings{}
	}

	t := &Theme{
		variant:            variant,
		def:                def,
		uniqueID:           newUniqueID(def.Name),
		additionalViewData: map[string]any{},
		out:                os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if t.urls == nil {
		t.urls = assets.FileURLs{}
	}
	if t.views == nil {
		t.views = view.NewRenderer()
	}
	if t.basePath == "" {
		t.basePath = resolveBasePath(variant)
	}
	t.log = t.log.With("theme", def.Name, "theme_id", t.uniqueID)

	options, err := t.initialOptions(ctx)
	if err != nil {
		return nil, err
	}
	t.options = options
	return t, nil
}

func (t *Theme) initialOptions(ctx context.Context) (Settings, error) {
	if t.def.OptionsStorageKey != "" && t.store != nil {
		stored, found, err := t.store.Get(ctx, t.def.OptionsStorageKey)
		if err != nil {
			return nil, fmt.Errorf("load options %q for theme %q: %w", t.def.OptionsStorageKey, t.def.Name, err)
		}
		if found && len(stored) > 0 {
			return Settings(maps.Clone(stored)), nil
		}
	}
	return maps.Clone(t.def.DefaultOptions), nil
}

// Variant returns the variant the theme was constructed from.
func (t *Theme) Variant() Variant { return t.variant }

// Name returns the theme name.
func (t *Theme) Name() string { return t.def.Name }

// Description returns the display description.
func (t *Theme) Description() string { return t.def.Description }

// Type returns the category tag used for filtered lookups.
func (t *Theme) Type() string { return t.def.Type }

// UniqueID returns the per-instance id assigned at construction.
func (t *Theme) UniqueID() string { return t.uniqueID }

// BasePath returns the directory asset paths are resolved against.
func (t *Theme) BasePath() string { return t.basePath }

// OptionsStorageKey returns the option store key, empty when settings are not persisted.
func (t *Theme) OptionsStorageKey() string { return t.def.OptionsStorageKey }

// Options returns a copy of the effective settings.
func (t *Theme) Options() Settings { return maps.Clone(t.options) }

// DefaultOptions returns a copy of the declared defaults.
func (t *Theme) DefaultOptions() Settings { return maps.Clone(t.def.DefaultOptions) }

// AdditionalViewData returns a copy of the data merged into every render.
func (t *Theme) AdditionalViewData() map[string]any { return maps.Clone(t.additionalViewData) }

// CSSAssets returns the declared stylesheets.
func (t *Theme) CSSAssets() []Asset { return cloneAssets(t.def.CSS) }

// JSAssets returns the declared scripts.
func (t *Theme) JSAssets() []Asset { return cloneAssets(t.def.JS) }

// PreregisteredCSS returns stylesheet handles enqueued without a source.
func (t *Theme) PreregisteredCSS() []string { return slices.Clone(t.def.PreregisteredCSS) }

// PreregisteredJS returns script handles enqueued without a source.
func (t *Theme) PreregisteredJS() []string { return slices.Clone(t.def.PreregisteredJS) }

// SetAdditionalViewData merges data into the values passed to every render.
// Keys in data replace existing ones.
func (t *Theme) SetAdditionalViewData(data map[string]any) *Theme {
	maps.Copy(t.additionalViewData, data)
	return t
}

func cloneAssets(in []Asset) []Asset {
	if in == nil {
		return nil
	}
	out := make([]Asset, len(in))
	for i, a := range in {
		out[i] = Asset{Handle: a.Handle, Path: a.Path, Deps: slices.Clone(a.Deps)}
	}
	return out
}
