package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("testdata/nonexistent.env")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "http://localhost:8005/api" {
		t.Fatalf("base url = %s", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Fatalf("timeout = %v, want 15s", cfg.Upstream.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("origins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
	if cfg.ArchiveEnabled() {
		t.Fatal("archive must be disabled without MONGODB_URI")
	}
	if cfg.SheetsEnabled() {
		t.Fatal("sheets export must be disabled without credentials")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load("testdata/nonexistent.env"); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	} else if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("error = %v, want JWT_SECRET mentioned", err)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DOC4ALL_API_TIMEOUT", "banana")

	if _, err := Load("testdata/nonexistent.env"); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
}

func TestLoad_SheetsHalvesMustBeSetTogether(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")

	if _, err := Load("testdata/nonexistent.env"); err == nil {
		t.Fatal("expected error for half-configured sheets export")
	}
}

func TestLoad_SplitsOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.doc4all.lk, https://staging.doc4all.lk")

	cfg, err := Load("testdata/nonexistent.env")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []string{"https://app.doc4all.lk", "https://staging.doc4all.lk"}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != want[0] || cfg.CORS.AllowedOrigins[1] != want[1] {
		t.Fatalf("origins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
}
