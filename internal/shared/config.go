package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvAPIURL overrides [APIConfig.BaseURL] when set.
const EnvAPIURL = "SPORTSHUB_API_URL"

// Sports lists the sport slugs accepted by the Sports Hub API.
var Sports = []string{"basketball", "baseball", "nfl", "soccer"}

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig contains settings for the remote Sports Hub API.
type APIConfig struct {
	BaseURL           string        `toml:"base_url"`
	Timeout           time.Duration `toml:"timeout"`
	RequestsPerSecond float64       `toml:"requests_per_second"`
}

// StorageConfig contains local database settings for the persisted session.
type StorageConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// UIConfig contains view defaults shared by the CLI and TUI.
type UIConfig struct {
	DefaultSport string        `toml:"default_sport"`
	LiveRefresh  time.Duration `toml:"live_refresh"`
	LiveLimit    int           `toml:"live_limit"`
	SearchLimit  int           `toml:"search_limit"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv applies environment overrides to the config.
func (c *Config) ApplyEnv() {
	if url := strings.TrimSpace(os.Getenv(EnvAPIURL)); url != "" {
		c.API.BaseURL = url
	}
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalidConfig)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: api.requests_per_second must not be negative", ErrInvalidConfig)
	}
	if c.UI.DefaultSport != "" && !IsSport(c.UI.DefaultSport) {
		return fmt.Errorf("%w: unknown ui.default_sport %q", ErrInvalidConfig, c.UI.DefaultSport)
	}
	return nil
}

// IsSport reports whether s is one of [Sports].
func IsSport(s string) bool {
	for _, sport := range Sports {
		if sport == s {
			return true
		}
	}
	return false
}
