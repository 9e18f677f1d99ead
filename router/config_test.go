package router

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonwraymond/toolrouter/confidence"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no profiles", func(c *Config) { c.Profiles = nil }, ErrNoProfiles},
		{"unknown active profile", func(c *Config) { c.ActiveProfile = "nope" }, ErrUnknownProfile},
		{"invalid profile", func(c *Config) {
			c.Profiles["balanced"] = confidence.Profile{HighThreshold: 0.5, MediumThreshold: 0.75}
		}, confidence.ErrInvalidProfile},
		{"zero limit", func(c *Config) { c.DefaultLimit = 0 }, ErrInvalidLimit},
		{"threshold above one", func(c *Config) { c.DefaultThreshold = 1.5 }, ErrInvalidThreshold},
		{"negative weight", func(c *Config) { c.SemanticWeight = -0.1 }, ErrInvalidWeight},
		{"keyword weight above one", func(c *Config) { c.KeywordWeight = 1.1 }, ErrInvalidWeight},
		{"step above one", func(c *Config) { c.AdaptiveThresholdStep = 2 }, ErrInvalidStep},
		{"zero attempts", func(c *Config) { c.AdaptiveMaxAttempts = 0 }, ErrInvalidAttempts},
		{"zero cache size", func(c *Config) { c.CacheMaxSize = 0 }, ErrInvalidCacheSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigValidate_AutoProfileSelectAccepted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoProfileSelect = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("auto_profile_select should validate as a no-op: %v", err)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	contents := `{
		"active_profile": "precision",
		"default_limit": 7,
		"semantic_weight": 0.6,
		"keyword_weight": 0.4
	}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ActiveProfile != "precision" {
		t.Errorf("expected precision, got %s", cfg.ActiveProfile)
	}
	if cfg.DefaultLimit != 7 {
		t.Errorf("expected limit 7, got %d", cfg.DefaultLimit)
	}
	// Untouched fields keep their defaults.
	if cfg.AdaptiveMaxAttempts != DefaultConfig().AdaptiveMaxAttempts {
		t.Errorf("expected default attempts, got %d", cfg.AdaptiveMaxAttempts)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TOOLROUTER_ACTIVE_PROFILE", "recall")
	t.Setenv("TOOLROUTER_DEFAULT_LIMIT", "9")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ActiveProfile != "recall" {
		t.Errorf("expected recall from env, got %s", cfg.ActiveProfile)
	}
	if cfg.DefaultLimit != 9 {
		t.Errorf("expected limit 9 from env, got %d", cfg.DefaultLimit)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"active_profile": "nope"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestSchema(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal(Schema(), &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema missing properties")
	}
	for _, field := range []string{
		"active_profile", "auto_profile_select", "profiles", "default_limit",
		"default_threshold", "rerank", "semantic_weight", "keyword_weight",
		"adaptive_threshold_step", "adaptive_max_attempts",
	} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing field %s", field)
		}
	}
}
