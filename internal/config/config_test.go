package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(nil), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Contact.Endpoint != defaultContactEndpoint {
		t.Errorf("unexpected contact endpoint %s", cfg.Contact.Endpoint)
	}
	if cfg.Contact.Timeout != 8*time.Second {
		t.Errorf("unexpected contact timeout %s", cfg.Contact.Timeout)
	}
	if cfg.Site.NegotiateLanguage {
		t.Errorf("language negotiation must default to off")
	}
	if !cfg.Site.LanguageCookie {
		t.Errorf("language cookie must default to on")
	}
	if cfg.Dev() || cfg.Prod() {
		t.Errorf("expected local env, got %s", cfg.Env)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("PORT=9000\nSITE_CONTACT_TIMEOUT=3s\nSITE_ENV=dev\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(
		WithEnvFile(envFile),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"SITE_ENV": "test"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected .env port, got %s", cfg.Server.Addr)
	}
	if cfg.Contact.Timeout != 3*time.Second {
		t.Errorf("expected .env timeout, got %s", cfg.Contact.Timeout)
	}
	if cfg.Env != "test" {
		t.Errorf("expected map to win over .env, got %s", cfg.Env)
	}
}

func TestEmptyEndpointSelectsLoggingSender(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{"SITE_CONTACT_ENDPOINT": ""}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Contact.Endpoint != "" {
		t.Errorf("expected empty endpoint, got %q", cfg.Contact.Endpoint)
	}
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{
		"SITE_ENV":              "prod",
		"SITE_CONTACT_ENDPOINT": "formspree",
	}))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Problems) != 2 {
		t.Errorf("expected 2 problems, got %v", verr.Problems)
	}
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	if _, err := Load(WithoutSystemEnv(), WithEnvFile(filepath.Join(t.TempDir(), "missing.env"))); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}
