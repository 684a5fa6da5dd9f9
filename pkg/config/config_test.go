package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd to be true")
	}

	if cfg.Store.DataDir != "/var/lib/sneakhead" {
		t.Fatalf("unexpected data dir: %q", cfg.Store.DataDir)
	}

	if got := cfg.Session.RememberMeTTL; got != 240*time.Hour {
		t.Fatalf("expected remember-me TTL 240h, got %v", got)
	}

	if cfg.Time.Zone != "Asia/Jerusalem" {
		t.Fatalf("unexpected time zone %q", cfg.Time.Zone)
	}
	if _, err := cfg.Time.Location(); err != nil {
		t.Fatalf("expected default zone to resolve: %v", err)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv("SNEAKHEAD_SESSION_SECRET"); err != nil {
		t.Fatalf("failed to unset session secret: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_InvalidTimeZone(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("SNEAKHEAD_TIME_ZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid time zone to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv("SNEAKHEAD_APP_ENV", "prod")
	t.Setenv("SNEAKHEAD_APP_PORT", "8081")
	t.Setenv("SNEAKHEAD_STORE_DATA_DIR", "/var/lib/sneakhead")
	t.Setenv("SNEAKHEAD_SESSION_SECRET", "secret")
}
