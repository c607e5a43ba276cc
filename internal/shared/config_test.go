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

		if config.Database.Path != "" {
			t.Errorf("expected empty database path, got %s", config.Database.Path)
		}

		if config.Database.OpTimeout != 10*time.Second {
			t.Errorf("expected op timeout 10s, got %v", config.Database.OpTimeout)
		}

		if config.Auth.BcryptCost != 10 {
			t.Errorf("expected bcrypt cost 10, got %d", config.Auth.BcryptCost)
		}

		if !config.Seed.Enabled || config.Seed.Email != "test@test.com" || config.Seed.Role != "user" {
			t.Errorf("unexpected seed config: %+v", config.Seed)
		}
	})

	t.Run("DatabasePath", func(t *testing.T) {
		config := DefaultConfig()
		if config.DatabasePath() != DefaultDatabasePath() {
			t.Errorf("expected platform default path, got %s", config.DatabasePath())
		}

		config.Database.Path = "/tmp/custom.db"
		if config.DatabasePath() != "/tmp/custom.db" {
			t.Errorf("expected configured path, got %s", config.DatabasePath())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Seed.Email != defaultConfig.Seed.Email {
			t.Errorf("created config seed email doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
op_timeout = "2s"

[auth]
bcrypt_cost = 12

[seed]
enabled = false
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Database.OpTimeout != 2*time.Second {
			t.Errorf("expected op timeout 2s, got %v", config.Database.OpTimeout)
		}

		if config.Auth.BcryptCost != 12 {
			t.Errorf("expected bcrypt cost 12, got %d", config.Auth.BcryptCost)
		}

		if config.Seed.Enabled {
			t.Error("expected seeding to be disabled")
		}

		if config.Auth.LoginBurst != 10 {
			t.Errorf("expected unset keys to keep defaults, got login_burst %d", config.Auth.LoginBurst)
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("CAMPUS_DB_PATH", "/env/events.db")
		t.Setenv("CAMPUS_SEED_PASSWORD", "from-env")
		t.Setenv("CAMPUS_LOG_LEVEL", "debug")

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/env/events.db" {
			t.Errorf("expected env database path, got %s", config.Database.Path)
		}
		if config.Seed.Password != "from-env" {
			t.Errorf("expected env seed password, got %s", config.Seed.Password)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected env log level, got %s", config.Log.Level)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
		}{
			{name: "bcrypt cost too low", mutate: func(c *Config) { c.Auth.BcryptCost = 1 }},
			{name: "bcrypt cost too high", mutate: func(c *Config) { c.Auth.BcryptCost = 99 }},
			{name: "negative login rate", mutate: func(c *Config) { c.Auth.LoginRate = -1 }},
			{name: "negative timeout", mutate: func(c *Config) { c.Database.OpTimeout = -time.Second }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}

		if err := DefaultConfig().Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
