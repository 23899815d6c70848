// Package config loads the stagelayout TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/phanxgames/stagelayout"
	"github.com/phanxgames/stagelayout/store"
)

// Config is the full configuration file.
type Config struct {
	Window  Window  `toml:"window"`
	Stage   Stage   `toml:"stage"`
	Storage Storage `toml:"storage"`
	Export  Export  `toml:"export"`
	Log     Log     `toml:"log"`
}

// Window sizes the editor window. Zero width or height uses the editor's
// logical screen size.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Stage configures the editing surface.
type Stage struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	TokenSize float64 `toml:"token_size"`
	Snap      bool    `toml:"snap"`
	Hall      string  `toml:"hall"`
}

// Storage selects the layout store and slot.
type Storage struct {
	Backend    string `toml:"backend"`
	Slot       string `toml:"slot"`
	Dir        string `toml:"dir"`
	DSN        string `toml:"dsn"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	Prefix     string `toml:"prefix"`
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Export configures image export.
type Export struct {
	Dir string `toml:"dir"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{Title: "Stage Layout"},
		Stage: Stage{
			Width:     stagelayout.DefaultStageWidth,
			Height:    stagelayout.DefaultStageHeight,
			TokenSize: stagelayout.DefaultTokenSize,
			Hall:      stagelayout.HallNone,
		},
		Storage: Storage{
			Backend: store.BackendFile,
			Slot:    stagelayout.DefaultSlot,
		},
		Export: Export{Dir: stagelayout.DefaultExportDir},
		Log:    Log{Level: "info"},
	}
}

// DefaultPath returns ~/.config/stagelayout/config.toml, honoring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "stagelayout", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "stagelayout", "config.toml"), nil
}

// Load reads path over the defaults. A missing file is not an error. Keys
// the file does not set keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Stage.Width <= 0 || c.Stage.Height <= 0 {
		return fmt.Errorf("stage size must be positive, got %dx%d", c.Stage.Width, c.Stage.Height)
	}
	if c.Stage.TokenSize <= 0 {
		return fmt.Errorf("stage.token_size must be positive, got %v", c.Stage.TokenSize)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must not be negative")
	}
	switch c.Storage.Backend {
	case store.BackendMemory, store.BackendFile, store.BackendSQLite, store.BackendMySQL,
		store.BackendPostgres, store.BackendRedis, store.BackendMongo:
	default:
		return fmt.Errorf("%w: %q", store.ErrUnsupportedBackend, c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Slot) == "" {
		return errors.New("storage.slot must not be empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// StoreConfig converts the storage section for store.Open.
func (c Config) StoreConfig() store.Config {
	s := c.Storage
	return store.Config{
		Backend:    s.Backend,
		Dir:        s.Dir,
		DSN:        s.DSN,
		Addr:       s.Addr,
		Password:   s.Password,
		DB:         s.DB,
		URI:        s.URI,
		Database:   s.Database,
		Collection: s.Collection,
		Prefix:     s.Prefix,
	}
}

// LogLevel returns the configured level, or info if it does not parse.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
