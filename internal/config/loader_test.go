package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/francescabuggio/ecocart/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Driver != "sqlite" || cfg.DSN != "./ecocart.db" {
		t.Errorf("storage = %q %q", cfg.Driver, cfg.DSN)
	}
	if cfg.LikertMin != 1 || cfg.LikertMax != 7 {
		t.Errorf("likert bounds = %d..%d, want 1..7", cfg.LikertMin, cfg.LikertMax)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ECOCART_ADDR", ":9090")
	t.Setenv("ECOCART_DRIVER", "postgres")
	t.Setenv("ECOCART_DSN", "postgres://localhost/ecocart")
	t.Setenv("ECOCART_LIKERT_MIN", "0")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Addr)
	}
	if cfg.Driver != "postgres" || cfg.DSN != "postgres://localhost/ecocart" {
		t.Errorf("storage = %q %q", cfg.Driver, cfg.DSN)
	}
	if cfg.LikertMin != 0 {
		t.Errorf("likert_min = %d, want 0", cfg.LikertMin)
	}
	if cfg.LikertMax != 7 {
		t.Errorf("likert_max = %d, want default 7", cfg.LikertMax)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "addr: \":7070\"\nlog_level: debug\nlikert_max: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ECOCART_CONFIG", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":7070" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LikertMax != 5 {
		t.Errorf("likert_max = %d, want 5", cfg.LikertMax)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ECOCART_CONFIG", path)
	t.Setenv("ECOCART_ADDR", ":6060")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":6060" {
		t.Errorf("addr = %q, want :6060", cfg.Addr)
	}
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv("ECOCART_DRIVER", "mysql")
	if _, err := config.Load(); err == nil {
		t.Error("expected error for unknown driver")
	}

	t.Setenv("ECOCART_DRIVER", "sqlite")
	t.Setenv("ECOCART_LIKERT_MIN", "8")
	if _, err := config.Load(); err == nil {
		t.Error("expected error for inverted likert bounds")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("ECOCART_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := config.Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}
