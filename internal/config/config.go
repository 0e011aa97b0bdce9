// Package config loads ledger-engine settings from the environment.
// CLI flags (see internal/cli) take precedence over these defaults.
package config

import "os"

type Config struct {
	Logging LoggingConfig
	Metrics MetricsConfig
	Serve   ServeConfig
}

type LoggingConfig struct {
	Level  string
	Format string
}

// MetricsConfig controls the optional Prometheus endpoint. Empty Addr
// means the endpoint is not started.
type MetricsConfig struct {
	Addr string
}

// ServeConfig controls the optional read-only inspection HTTP API.
// Empty Addr means the CLI exits after writing CSV output.
type ServeConfig struct {
	Addr string
}

func Load() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		Serve: ServeConfig{
			Addr: getEnv("SERVE_ADDR", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
