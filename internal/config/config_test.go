package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBMaxConns != 8 {
		t.Fatalf("DBMaxConns = %d", cfg.DBMaxConns)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "3")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "2")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := FromEnv()
	if cfg.DBMaxConns != 3 {
		t.Fatalf("DBMaxConns = %d", cfg.DBMaxConns)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	if cfg := FromEnv(); cfg.DBMaxConns != 8 {
		t.Fatalf("DBMaxConns = %d", cfg.DBMaxConns)
	}
}
