package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security" validate:"required"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type DatabaseConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	// Source is a file path for sqlite or a DSN for postgres.
	Source string `mapstructure:"source"`
}

type SecurityConfig struct {
	SessionSecret string        `mapstructure:"session_secret" validate:"required,min=32"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
	BCryptCost    int           `mapstructure:"bcrypt_cost"`
	// TokenFile is where the current session token is stored, one active
	// session per machine.
	TokenFile string `mapstructure:"token_file"`
}

type ObservabilityConfig struct {
	Environment string `mapstructure:"environment"`
}

// LoadConfigFromEnv builds the config from environment variables, used for
// deployments where no config.yml is shipped.
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("DATABASE_DRIVER", "sqlite"),
			Source: getEnvOrDefault("DATABASE_SOURCE", "crm.db"),
		},
		Security: SecurityConfig{
			SessionSecret: os.Getenv("SESSION_SECRET"),
			TokenDuration: getEnvDuration("TOKEN_DURATION", time.Hour),
			BCryptCost:    getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
			TokenFile:     getEnvOrDefault("TOKEN_FILE", ".token"),
		},
		Observability: ObservabilityConfig{
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}
	return cfg
}

// Validate checks required fields and fills in defaults for the optional
// ones so downstream code never has to re-check.
func (c *Config) Validate() error {
	if c.Security.SessionSecret == "" {
		return errors.New("security.session_secret is required")
	}
	if len(c.Security.SessionSecret) < 32 {
		return fmt.Errorf("security.session_secret must be at least 32 characters, got %d", len(c.Security.SessionSecret))
	}
	if c.Security.TokenDuration <= 0 {
		c.Security.TokenDuration = time.Hour
	}
	if c.Security.BCryptCost < bcrypt.MinCost || c.Security.BCryptCost > bcrypt.MaxCost {
		c.Security.BCryptCost = bcrypt.DefaultCost
	}
	if c.Security.TokenFile == "" {
		c.Security.TokenFile = ".token"
	}
	switch c.Database.Driver {
	case "":
		c.Database.Driver = "sqlite"
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Source == "" {
		if c.Database.Driver == "sqlite" {
			c.Database.Source = "crm.db"
		} else {
			return errors.New("database.source is required for postgres")
		}
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
