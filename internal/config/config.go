package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/history"
	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/timeseries"
)

// Config holds the application configuration
type Config struct {
	Defaults DefaultsConfig `json:"defaults" mapstructure:"defaults"`
	History  HistoryConfig  `json:"history" mapstructure:"history"`
}

// DefaultsConfig holds per-run defaults that flags can override
type DefaultsConfig struct {
	Interval     string  `json:"interval" mapstructure:"interval"`
	HorizonHours float64 `json:"horizon_hours" mapstructure:"horizon_hours"`
	OutDir       string  `json:"out_dir" mapstructure:"out_dir"`
	OutForecast  string  `json:"out_forecast" mapstructure:"out_forecast"`
}

// HistoryConfig holds run-history archive configuration
type HistoryConfig struct {
	Path             string `json:"path" mapstructure:"path"`
	CompressionLevel int    `json:"compression_level" mapstructure:"compression_level"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Interval:     getEnv("PCPTREND_INTERVAL", "5min"),
			HorizonHours: getEnvFloat("PCPTREND_HORIZON_HOURS", 24),
			OutDir:       getEnv("PCPTREND_OUT_DIR", "./plots"),
			OutForecast:  getEnv("PCPTREND_OUT_FORECAST", "/tmp/forecast.csv"),
		},
		History: HistoryConfig{
			Path:             getEnv("PCPTREND_HISTORY_DIR", defaultHistoryDir()),
			CompressionLevel: getEnvInt("PCPTREND_HISTORY_COMPRESSION", 3),
		},
	}
}

func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./history"
	}
	return filepath.Join(home, ".pcptrend", "history")
}

// ToHistoryConfig converts to history.Config
func (c *Config) ToHistoryConfig() *history.Config {
	return &history.Config{
		Path:             c.History.Path,
		CompressionLevel: c.History.CompressionLevel,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := timeseries.ParseInterval(c.Defaults.Interval); err != nil {
		return fmt.Errorf("default interval: %w", err)
	}

	if c.Defaults.HorizonHours <= 0 {
		return fmt.Errorf("horizon hours must be positive")
	}

	if c.History.Path == "" {
		return fmt.Errorf("history path is required")
	}

	if c.History.CompressionLevel < 1 || c.History.CompressionLevel > 4 {
		return fmt.Errorf("history compression level must be between 1 and 4")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%g", &f); err == nil {
			return f
		}
	}
	return defaultValue
}
