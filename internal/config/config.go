package config

import (
	"os"
	"strconv"

	"simlm/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sim      SimConfig
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional run-ledger database settings.
// An empty URL disables the ledger; simulation itself never touches it.
type DatabaseConfig struct {
	URL string
}

// SimConfig holds simulation defaults
type SimConfig struct {
	ScenarioPath      string
	DefaultReplicates int
	Concurrency       int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Sim: SimConfig{
			ScenarioPath:      getEnv("SCENARIO_PATH", "scenario.json"),
			DefaultReplicates: getEnvInt("STUDY_REPLICATES", 200),
			Concurrency:       getEnvInt("STUDY_CONCURRENCY", 4),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if c.Sim.DefaultReplicates <= 0 {
		return errors.ConfigInvalid("STUDY_REPLICATES must be > 0")
	}
	if c.Sim.Concurrency <= 0 {
		return errors.ConfigInvalid("STUDY_CONCURRENCY must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
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
