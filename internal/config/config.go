// Package config loads ghrepos settings from a TOML file and the environment.
//
// Values are resolved in order: built-in defaults, the config file, then
// GHREPOS_<SECTION>_<KEY> environment variables (for example
// GHREPOS_SETTINGS_REDIS_ADDR or GHREPOS_GITHUB_APIURL). A missing config
// file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/ghrepos/pkg/display"
	apperrors "github.com/matzehuels/ghrepos/pkg/errors"
	"github.com/matzehuels/ghrepos/pkg/integrations/github"
	"github.com/matzehuels/ghrepos/pkg/settings"
)

// EnvPath names the environment variable that overrides the config file path.
const EnvPath = "GHREPOS_CONFIG"

// envPrefix is the prefix for per-value environment overrides.
const envPrefix = "GHREPOS"

// DefaultAddr is the listen address for `ghrepos serve`.
const DefaultAddr = "localhost:8080"

// Config is the full ghrepos configuration.
type Config struct {
	GitHub   GitHub   `toml:"github" envconfig:"GITHUB"`
	Display  Display  `toml:"display" envconfig:"DISPLAY"`
	Settings Settings `toml:"settings" envconfig:"SETTINGS"`
	Server   Server   `toml:"server" envconfig:"SERVER"`
}

// GitHub configures the REST client.
type GitHub struct {
	APIURL    string `toml:"api_url" split_words:"true"`
	UserAgent string `toml:"user_agent" split_words:"true"`
}

// Display configures how dates are shown.
type Display struct {
	DateFormat string `toml:"date_format" split_words:"true"`
	Timezone   string `toml:"timezone" split_words:"true"`
}

// Settings selects the widget settings backend.
type Settings struct {
	Backend       string `toml:"backend" split_words:"true"`
	Dir           string `toml:"dir" split_words:"true"`
	RedisAddr     string `toml:"redis_addr" split_words:"true"`
	RedisPassword string `toml:"redis_password" split_words:"true"`
	RedisDB       int    `toml:"redis_db" split_words:"true"`
	MongoURI      string `toml:"mongo_uri" split_words:"true"`
	MongoDatabase string `toml:"mongo_database" split_words:"true"`
}

// Server configures `ghrepos serve`.
type Server struct {
	Addr string `toml:"addr" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GitHub: GitHub{
			APIURL:    github.DefaultBaseURL,
			UserAgent: github.DefaultUserAgent,
		},
		Display: Display{
			DateFormat: display.DefaultDateFormat,
			Timezone:   "UTC",
		},
		Settings: Settings{
			Backend:       settings.BackendFile,
			MongoDatabase: settings.DefaultMongoDatabase,
		},
		Server: Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns the config file location: $GHREPOS_CONFIG if set,
// else ghrepos/config.toml under the user config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(base, "ghrepos", "config.toml"), nil
}

// Load reads the config at path, or at DefaultPath when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read %s", path)
	default:
		if err := Parse(data, &cfg); err != nil {
			return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "environment")
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML data over cfg. Keys absent from data keep their
// current values; unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if err := apperrors.ValidateURL(c.GitHub.APIURL); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "github.api_url")
	}
	if c.Display.DateFormat == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "display.date_format cannot be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	valid := false
	for _, b := range settings.Backends {
		if c.Settings.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "settings.backend %q: want one of %v", c.Settings.Backend, settings.Backends)
	}
	return nil
}

// Location resolves the display timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "display.timezone")
	}
	return loc, nil
}

// StoreOptions converts the settings section for settings.Open.
func (c Config) StoreOptions() settings.Options {
	return settings.Options{
		Backend: c.Settings.Backend,
		Dir:     c.Settings.Dir,
		Redis: settings.RedisConfig{
			Addr:     c.Settings.RedisAddr,
			Password: c.Settings.RedisPassword,
			DB:       c.Settings.RedisDB,
		},
		Mongo: settings.MongoConfig{
			URI:      c.Settings.MongoURI,
			Database: c.Settings.MongoDatabase,
		},
	}
}
