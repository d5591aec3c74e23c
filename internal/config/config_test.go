package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/alex-user-go/hotel-widget/internal/config"
	"github.com/alex-user-go/hotel-widget/internal/providers"
)

var envKeys = []string{
	"PORT", "PROVIDER_MODE", "AGODA_AFFILIATE_CID", "PRICELINE_REFID", "EXPEDIA_PARTNER_ATTR",
	"SEARCH_TIMEOUT", "READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.Address() != ":3000" {
		t.Errorf("address = %q, want :3000", cfg.Server.Address())
	}
	if cfg.Provider.Mode != providers.ModeDemo {
		t.Errorf("mode = %q, want demo", cfg.Provider.Mode)
	}
	if cfg.Provider.Affiliates != (providers.Affiliates{}) {
		t.Errorf("affiliates = %+v, want empty", cfg.Provider.Affiliates)
	}
	if cfg.Search.Timeout != 2*time.Second {
		t.Errorf("search timeout = %s, want 2s", cfg.Search.Timeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %s, want 10s", cfg.Server.ShutdownTimeout)
	}
	if !slices.Equal(cfg.Server.AllowedOrigins, []string{"*"}) {
		t.Errorf("origins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v, want info/json", cfg.Logging)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("PROVIDER_MODE", " LIVE ")
	t.Setenv("AGODA_AFFILIATE_CID", "1844104")
	t.Setenv("PRICELINE_REFID", "ref-9")
	t.Setenv("EXPEDIA_PARTNER_ATTR", "attr-3")
	t.Setenv("SEARCH_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := config.LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Provider.Mode != providers.ModeLive {
		t.Errorf("mode = %q, want live", cfg.Provider.Mode)
	}
	want := providers.Affiliates{AgodaCID: "1844104", PricelineRefID: "ref-9", ExpediaPartnerAttr: "attr-3"}
	if cfg.Provider.Affiliates != want {
		t.Errorf("affiliates = %+v, want %+v", cfg.Provider.Affiliates, want)
	}
	if cfg.Search.Timeout != 750*time.Millisecond {
		t.Errorf("search timeout = %s, want 750ms", cfg.Search.Timeout)
	}
	if !slices.Equal(cfg.Server.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Logging.Format)
	}
}

func TestLoad_DotEnvAndYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PRICELINE_REFID=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("port: 9090\nsearch_timeout: 500ms\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider.Affiliates.PricelineRefID != "from-dotenv" {
		t.Errorf("refid = %q, want from-dotenv", cfg.Provider.Affiliates.PricelineRefID)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Search.Timeout != 500*time.Millisecond {
		t.Errorf("search timeout = %s, want 500ms", cfg.Search.Timeout)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("port: 9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "7070")

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown mode", key: "PROVIDER_MODE", val: "sandbox"},
		{name: "port out of range", key: "PORT", val: "70000"},
		{name: "zero search timeout", key: "SEARCH_TIMEOUT", val: "0s"},
		{name: "negative shutdown timeout", key: "SHUTDOWN_TIMEOUT", val: "-1s"},
		{name: "bad log format", key: "LOG_FORMAT", val: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := config.LoadFrom(t.TempDir()); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_UnknownModeWrapsSentinel(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER_MODE", "sandbox")

	_, err := config.LoadFrom(t.TempDir())
	if !errors.Is(err, providers.ErrUnknownMode) {
		t.Errorf("error = %v, want ErrUnknownMode", err)
	}
}
