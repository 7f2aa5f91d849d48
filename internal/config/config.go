package config

import (
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Curve  CurveConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// CurveConfig holds defaults for power-curve sweeps
type CurveConfig struct {
	MaxPoints int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Curve: CurveConfig{
			MaxPoints: getEnvIntOrDefault("CURVE_MAX_POINTS", 2000),
		},
	}, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
