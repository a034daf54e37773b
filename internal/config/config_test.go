package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.ReservationsPath != "/api/reservations" {
		t.Fatalf("unexpected reservations path %q", cfg.ReservationsPath)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("expected no request timeout by default, got %v", cfg.RequestTimeout)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("unexpected storage type %q", cfg.StorageType)
	}
	if cfg.JournalTTL != 7*24*time.Hour {
		t.Fatalf("unexpected journal ttl %v", cfg.JournalTTL)
	}
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://env.example:9000")
	t.Setenv("RESERVATIONS_PATH", "v2/bookings/")
	t.Setenv("LOG_LEVEL", "debug")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--base-url", "http://flag.example", "--timeout", "3"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://flag.example" {
		t.Fatalf("flag should override env, got %q", cfg.APIBaseURL)
	}
	if cfg.ReservationsPath != "/v2/bookings" {
		t.Fatalf("unexpected reservations path %q", cfg.ReservationsPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout)
	}
}

func TestLoadRejectsRelativeBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "/api")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for relative base url")
	}
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "-1")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}
