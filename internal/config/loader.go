package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ECOCART_CONFIG is set
//  3. env (prefix ECOCART_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ECOCART_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: ECOCART_ADDR, ECOCART_LIKERT_MIN, ...
	// Keys keep their underscores to match the koanf tags.
	envProvider := env.Provider("ECOCART_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "ecocart_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.Driver != "sqlite" && cfg.Driver != "postgres" {
		return nil, errors.New("driver must be sqlite or postgres")
	}
	if cfg.LikertMin > cfg.LikertMax {
		return nil, errors.New("likert_min must not exceed likert_max")
	}
	return &cfg, nil
}
