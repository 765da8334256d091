package config

// Config is the themekit configuration document.
type Config struct {
	Themes []ThemePath  `yaml:"themes" toml:"themes" validate:"omitempty,dive"`
	Store  StoreConfig  `yaml:"store" toml:"store"`
	Assets AssetsConfig `yaml:"assets" toml:"assets"`
	View   ViewConfig   `yaml:"view" toml:"view"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// ThemePath is a file or directory scanned for themes at startup. With Name
// set only the theme carrying that name is registered from the path.
type ThemePath struct {
	Path string `yaml:"path" toml:"path" validate:"required"`
	Name string `yaml:"name,omitempty" toml:"name"`
}

// StoreConfig selects the option store.
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver" validate:"oneof=memory file sqlite"`
	Path   string `yaml:"path,omitempty" toml:"path"`
}

// AssetsConfig controls how asset paths become URLs and which handles the
// host registers up front. Without a base URL assets resolve to file:// URLs.
type AssetsConfig struct {
	Root    string      `yaml:"root,omitempty" toml:"root" validate:"required_with=BaseURL"`
	BaseURL string      `yaml:"base_url,omitempty" toml:"base_url" validate:"omitempty,url"`
	Styles  []HostAsset `yaml:"styles,omitempty" toml:"styles" validate:"omitempty,dive"`
	Scripts []HostAsset `yaml:"scripts,omitempty" toml:"scripts" validate:"omitempty,dive"`
}

// HostAsset is a stylesheet or script the host registers so themes can
// enqueue it by handle.
type HostAsset struct {
	Handle string   `yaml:"handle" toml:"handle" validate:"required"`
	URL    string   `yaml:"url" toml:"url" validate:"required"`
	Deps   []string `yaml:"deps,omitempty" toml:"deps"`
}

// ViewConfig describes the view renders run in.
type ViewConfig struct {
	Admin   bool `yaml:"admin,omitempty" toml:"admin"`
	Toolbar bool `yaml:"toolbar,omitempty" toml:"toolbar"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level,omitempty" toml:"level" validate:"oneof=trace debug info warn error"`
	// Human forces console output. When unset the CLI picks it from the terminal.
	Human *bool `yaml:"human,omitempty" toml:"human"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memory"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
