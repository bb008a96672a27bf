package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.FunctionsPrefix != "/.netlify/functions" {
		t.Errorf("unexpected prefix %q", cfg.FunctionsPrefix)
	}
	if cfg.DB.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %q", cfg.DB.Driver)
	}
	if cfg.KeepAlive.Schedule != "@daily" {
		t.Errorf("expected @daily schedule, got %q", cfg.KeepAlive.Schedule)
	}
	if cfg.KeepAlive.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.KeepAlive.Timeout)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected redis disabled by default, got %q", cfg.Redis.Addr)
	}
}

func TestLoadWith_NormalisesPrefix(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"FUNCTIONS_PREFIX": "api/fn/",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FunctionsPrefix != "/api/fn" {
		t.Errorf("expected /api/fn, got %q", cfg.FunctionsPrefix)
	}
}

func TestValidateServer_ReportsAllMissing(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"DB_DRIVER": "mysql",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	err = cfg.ValidateServer()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"JWT_SECRET", "DATABASE_URL", "DB_DRIVER", "IDENTITY_URL", "IDENTITY_ADMIN_TOKEN"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %s in %q", want, err.Error())
		}
	}
}

func TestValidateServer_OK(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "secret",
		"DB_DRIVER":            "sqlite",
		"DATABASE_URL":         ":memory:",
		"IDENTITY_URL":         "https://example.com/.netlify/identity",
		"IDENTITY_ADMIN_TOKEN": "admin",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionPath_Override(t *testing.T) {
	cfg := &Config{Client: ClientConfig{SessionFile: "/tmp/s.yaml"}}
	p, err := cfg.SessionPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != "/tmp/s.yaml" {
		t.Errorf("expected override, got %q", p)
	}
}
