package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Values read from the file may be overridden by CAMPUS_* environment variables.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Seed     SeedConfig     `toml:"seed"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path      string        `toml:"path" env:"CAMPUS_DB_PATH"`
	OpTimeout time.Duration `toml:"op_timeout" env:"CAMPUS_DB_OP_TIMEOUT"`
}

// AuthConfig contains password hashing and login throttling settings.
type AuthConfig struct {
	BcryptCost int     `toml:"bcrypt_cost" env:"CAMPUS_BCRYPT_COST"`
	LoginRate  float64 `toml:"login_rate" env:"CAMPUS_LOGIN_RATE"`
	LoginBurst int     `toml:"login_burst" env:"CAMPUS_LOGIN_BURST"`
}

// SeedConfig describes the account inserted when the users table is empty.
type SeedConfig struct {
	Enabled  bool   `toml:"enabled" env:"CAMPUS_SEED_ENABLED"`
	Name     string `toml:"name" env:"CAMPUS_SEED_NAME"`
	Email    string `toml:"email" env:"CAMPUS_SEED_EMAIL"`
	Password string `toml:"password" env:"CAMPUS_SEED_PASSWORD"`
	Role     string `toml:"role" env:"CAMPUS_SEED_ROLE"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" env:"CAMPUS_LOG_LEVEL"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path,
// then applies environment overrides.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
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

// ApplyEnv overrides config values with any CAMPUS_* environment variables that are set.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks ranges that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Auth.BcryptCost != 0 && (c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost) {
		return fmt.Errorf("%w: bcrypt_cost must be between %d and %d, got %d",
			ErrInvalidConfig, bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	if c.Auth.LoginRate < 0 || c.Auth.LoginBurst < 0 {
		return fmt.Errorf("%w: login_rate and login_burst must not be negative", ErrInvalidConfig)
	}
	if c.Database.OpTimeout < 0 {
		return fmt.Errorf("%w: op_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DatabasePath returns the configured path, falling back to the platform default.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return DefaultDatabasePath()
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
