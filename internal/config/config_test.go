package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formplay/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Defaults(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formplay.yaml")
	data := []byte(`server:
  addr: ":9090"
  session_ttl: 5m
log:
  format: console
form:
  defaults:
    name: Omar
    age: "41"
    color: Green
theme:
  variant: dark
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FORMPLAY_SERVER_ADDR", ":7070")
	t.Setenv("FORMPLAY_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Fatalf("expected env to override file addr, got %q", cfg.Server.Addr)
	}
	if cfg.Server.SessionTTL != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %s", cfg.Server.SessionTTL)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if diff := cmp.Diff(map[string]string{"name": "Omar", "age": "41", "color": "Green"}, cfg.Form.Defaults); diff != "" {
		t.Fatalf("form defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Theme.Variant != "dark" {
		t.Fatalf("expected dark variant, got %q", cfg.Theme.Variant)
	}
}

func TestLoad_EnvOverridesSingleDefault(t *testing.T) {
	t.Setenv("FORMPLAY_FORM_DEFAULTS_AGE", "2900")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]string{"name": "Reem", "age": "2900", "color": "Blue"}
	if diff := cmp.Diff(want, cfg.Form.Defaults); diff != "" {
		t.Fatalf("form defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileDefaultsMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formplay.yaml")
	data := []byte(`form:
  defaults:
    age: "2900"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]string{"name": "Reem", "age": "2900", "color": "Blue"}
	if diff := cmp.Diff(want, cfg.Form.Defaults); diff != "" {
		t.Fatalf("form defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MaxSessions(t *testing.T) {
	t.Setenv("FORMPLAY_SERVER_MAX_SESSIONS", "25")
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.MaxSessions != 25 {
		t.Fatalf("expected 25 max sessions, got %d", cfg.Server.MaxSessions)
	}

	t.Setenv("FORMPLAY_SERVER_MAX_SESSIONS", "-1")
	if _, err := config.Load(""); err == nil {
		t.Fatalf("expected validation error for negative max sessions")
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("FORMPLAY_SERVER_MODE", "chaos")
	if _, err := config.Load(""); err == nil {
		t.Fatalf("expected validation error for unknown server mode")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate_WatchNeedsDocument(t *testing.T) {
	cfg := config.Defaults()
	cfg.Form.Watch = true
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when watching without a document")
	}
}
