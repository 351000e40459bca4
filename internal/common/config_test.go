package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("API.BaseURL default = %q, want %q", cfg.API.BaseURL, "http://localhost:8000")
	}
	if cfg.API.RateLimit != 10 {
		t.Errorf("API.RateLimit default = %d, want 10", cfg.API.RateLimit)
	}
	if !cfg.Chart.Enabled {
		t.Error("Chart.Enabled should default to true")
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled should default to false")
	}
}

func TestConfig_GetTimeout(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"5s", 5 * time.Second},
		{"1m", time.Minute},
		{"", 30 * time.Second},
		{"soon", 30 * time.Second},
		{"-1s", 30 * time.Second},
	}
	for _, tc := range cases {
		c := APIConfig{Timeout: tc.raw}
		if got := c.GetTimeout(); got != tc.want {
			t.Errorf("GetTimeout(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stocksage.toml")
	content := `
environment = "staging"

[api]
base_url = "http://api.internal:9000/"
timeout = "10s"

[chart]
enabled = false
dir = "/tmp/charts"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q, want staging", cfg.Environment)
	}
	if cfg.API.BaseURL != "http://api.internal:9000" {
		t.Errorf("API.BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.API.GetTimeout() != 10*time.Second {
		t.Errorf("API timeout = %v, want 10s", cfg.API.GetTimeout())
	}
	if cfg.Chart.Enabled {
		t.Error("Chart.Enabled should be false from file")
	}
	// Untouched keys keep their defaults
	if cfg.API.RateLimit != 10 {
		t.Errorf("API.RateLimit = %d, want default 10", cfg.API.RateLimit)
	}
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[api\nbase_url = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error for malformed TOML")
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STOCKSAGE_ENV", "production")
	t.Setenv("STOCKSAGE_API_URL", "http://from-env:8000")
	t.Setenv("STOCKSAGE_API_TIMEOUT", "2s")
	t.Setenv("STOCKSAGE_API_RATE_LIMIT", "3")
	t.Setenv("STOCKSAGE_LOG_LEVEL", "debug")
	t.Setenv("STOCKSAGE_CHART_DIR", "/var/charts")
	t.Setenv("STOCKSAGE_TRACING_ENABLED", "true")

	cfg := NewDefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides failed: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.API.BaseURL != "http://from-env:8000" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.GetTimeout() != 2*time.Second {
		t.Errorf("API timeout = %v, want 2s", cfg.API.GetTimeout())
	}
	if cfg.API.RateLimit != 3 {
		t.Errorf("API.RateLimit = %d, want 3", cfg.API.RateLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Chart.Dir != "/var/charts" {
		t.Errorf("Chart.Dir = %q", cfg.Chart.Dir)
	}
	if !cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled should be true from env")
	}
}

func TestConfig_EnvOverrides_InvalidBool(t *testing.T) {
	t.Setenv("STOCKSAGE_TRACING_ENABLED", "maybe")

	cfg := NewDefaultConfig()
	if err := applyEnvOverrides(cfg); err == nil {
		t.Fatal("expected error for invalid STOCKSAGE_TRACING_ENABLED")
	}
}
