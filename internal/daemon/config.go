// Package daemon manages the Touchwood daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Challenges    ChallengesConfig    `toml:"challenges"`
	Notifications NotificationsConfig `toml:"notifications"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
	Logging       LoggingConfig       `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// ChallengesConfig controls the daily challenge cycle.
type ChallengesConfig struct {
	RefreshCron string `toml:"refresh_cron"` // cron spec for the daily refresh
}

// NotificationsConfig controls the celebration policy.
type NotificationsConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := touchwoodHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7311,
			CORSOrigins: []string{"*"},
		},
		Challenges: ChallengesConfig{
			RefreshCron: "1 0 * * *", // just past midnight
		},
		Notifications: NotificationsConfig{
			MaxPerDay:  6,
			QuietStart: "22:00",
			QuietEnd:   "08:00",
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "touchwood.log"),
		},
	}
}

// LoadConfig reads config from ~/.touchwood/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(touchwoodHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.touchwood/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(touchwoodHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// touchwoodHome returns the Touchwood data directory.
func touchwoodHome() string {
	if env := os.Getenv("TOUCHWOOD_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".touchwood")
}
