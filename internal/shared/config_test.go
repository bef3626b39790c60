package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://127.0.0.1:5000" {
			t.Errorf("expected base URL http://127.0.0.1:5000, got %s", config.API.BaseURL)
		}
		if config.API.Timeout != 0 {
			t.Errorf("expected no timeout by default, got %v", config.API.Timeout)
		}
		if config.Storage.Path != "./sportshub.db" {
			t.Errorf("expected storage path ./sportshub.db, got %s", config.Storage.Path)
		}
		if config.UI.DefaultSport != "basketball" {
			t.Errorf("expected default sport basketball, got %s", config.UI.DefaultSport)
		}
		if config.UI.LiveRefresh != 30*time.Second {
			t.Errorf("expected live refresh 30s, got %v", config.UI.LiveRefresh)
		}
		if config.UI.LiveLimit != 10 || config.UI.SearchLimit != 20 {
			t.Errorf("expected limits 10/20, got %d/%d", config.UI.LiveLimit, config.UI.SearchLimit)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Storage.Path != DefaultConfig().Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[api]
base_url = "http://api.example.com"
timeout = "5s"
requests_per_second = 2.5

[ui]
default_sport = "soccer"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://api.example.com" {
			t.Errorf("expected base URL http://api.example.com, got %s", config.API.BaseURL)
		}
		if config.API.Timeout != 5*time.Second {
			t.Errorf("expected timeout 5s, got %v", config.API.Timeout)
		}
		if config.API.RequestsPerSecond != 2.5 {
			t.Errorf("expected 2.5 rps, got %v", config.API.RequestsPerSecond)
		}
		if config.UI.DefaultSport != "soccer" {
			t.Errorf("expected soccer, got %s", config.UI.DefaultSport)
		}
		if config.UI.SearchLimit != 20 {
			t.Errorf("expected omitted keys to keep defaults, got search limit %d", config.UI.SearchLimit)
		}
	})

	t.Run("LoadConfig rejects unknown sport", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[ui]\ndefault_sport = \"curling\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "http://override:9000")
		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.BaseURL != "http://override:9000" {
			t.Errorf("expected env override, got %s", config.API.BaseURL)
		}
	})
}
