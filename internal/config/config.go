// Package config loads the service configuration from a YAML file with
// environment-variable overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`
	Database struct {
		// Driver is "sqlite3" (embedded file-backed) or "postgres" (hosted).
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Workflow struct {
		// StrictTransitions additionally enforces forward adjacency on
		// item and order transitions. Off by default: the server accepts
		// any in-enum status and leaves adjacency to the station screens.
		StrictTransitions bool `yaml:"strict_transitions"`
	} `yaml:"workflow"`
	Cleanup struct {
		Enabled          bool   `yaml:"enabled"`
		Schedule         string `yaml:"schedule"`
		RetentionMinutes int    `yaml:"retention_minutes"`
		Secret           string `yaml:"secret"`
	} `yaml:"cleanup"`
	Realtime struct {
		PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	} `yaml:"realtime"`
}

// Load reads the YAML file at path, fills defaults and applies
// environment overrides. A missing file is not an error; defaults and
// the environment then fully describe the configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "data/comanda.db"
	cfg.Cleanup.Enabled = true
	cfg.Cleanup.Schedule = "@every 10m"
	cfg.Cleanup.RetentionMinutes = 60
	cfg.Realtime.PollIntervalSeconds = 5

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Database.Driver = getEnv("COMANDA_DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("COMANDA_DB_DSN", cfg.Database.DSN)
	cfg.Cleanup.Secret = getEnv("CRON_SECRET", cfg.Cleanup.Secret)
	cfg.Server.Port = getEnvInt("COMANDA_PORT", cfg.Server.Port)
	cfg.Server.MetricsPort = getEnvInt("COMANDA_METRICS_PORT", cfg.Server.MetricsPort)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
