// Package config loads process configuration from defaults, an optional
// YAML file and ECOCART_-prefixed environment variables.
package config

// Config contains process configuration.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Driver selects the storage backend: sqlite or postgres.
	Driver string `koanf:"driver"`

	// DSN is the sqlite file path or the postgres connection string.
	DSN string `koanf:"dsn"`

	// LikertMin and LikertMax bound the Likert answers accepted into
	// the averages. The participant-facing instrument labels the scale
	// 1..7; historical sample data used 0..6, so the bounds are
	// configuration rather than constants.
	LikertMin int `koanf:"likert_min"`
	LikertMax int `koanf:"likert_max"`
}

// New returns the defaults prior to file/env layering.
func New() *Config {
	return &Config{
		Addr:      ":8080",
		LogLevel:  "info",
		Driver:    "sqlite",
		DSN:       "./ecocart.db",
		LikertMin: 1,
		LikertMax: 7,
	}
}
