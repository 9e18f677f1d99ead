package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/jonwraymond/toolrouter/confidence"
)

// Error values for configuration loading and validation.
var (
	ErrNoProfiles       = errors.New("at least one confidence profile is required")
	ErrUnknownProfile   = errors.New("active profile not present in profile map")
	ErrInvalidLimit     = errors.New("default limit must be at least 1")
	ErrInvalidThreshold = errors.New("threshold must be in [0,1]")
	ErrInvalidWeight    = errors.New("weights must be in [0,1]")
	ErrInvalidStep      = errors.New("adaptive threshold step must be in [0,1]")
	ErrInvalidAttempts  = errors.New("adaptive max attempts must be at least 1")
	ErrInvalidCacheSize = errors.New("cache max size must be at least 1")
)

// Config holds every tunable of the router. Values are layered:
// defaults, then an optional JSON file, then TOOLROUTER_* environment
// variables. Validate rejects invalid combinations before any index is
// built.
type Config struct {
	// ActiveProfile selects the confidence profile used for
	// calibration. Must be a key of Profiles.
	ActiveProfile string `json:"active_profile" env:"TOOLROUTER_ACTIVE_PROFILE"`

	// AutoProfileSelect is accepted for forward compatibility; no
	// selection heuristic is implemented and ActiveProfile always wins.
	AutoProfileSelect bool `json:"auto_profile_select" env:"TOOLROUTER_AUTO_PROFILE_SELECT"`

	// Profiles maps profile names to calibration parameters.
	Profiles map[string]confidence.Profile `json:"profiles"`

	// DefaultLimit is the candidate count requested per retrieval.
	DefaultLimit int `json:"default_limit" env:"TOOLROUTER_DEFAULT_LIMIT"`

	// DefaultThreshold is the starting minimum combined score.
	DefaultThreshold float64 `json:"default_threshold" env:"TOOLROUTER_DEFAULT_THRESHOLD"`

	// Rerank toggles score-order re-sorting of fused candidates.
	Rerank bool `json:"rerank" env:"TOOLROUTER_RERANK"`

	// SemanticWeight and KeywordWeight control score fusion.
	SemanticWeight float64 `json:"semantic_weight" env:"TOOLROUTER_SEMANTIC_WEIGHT"`
	KeywordWeight  float64 `json:"keyword_weight" env:"TOOLROUTER_KEYWORD_WEIGHT"`

	// AdaptiveThresholdStep is subtracted from the threshold on each
	// retry; AdaptiveMaxAttempts bounds the retries.
	AdaptiveThresholdStep float64 `json:"adaptive_threshold_step" env:"TOOLROUTER_ADAPTIVE_THRESHOLD_STEP"`
	AdaptiveMaxAttempts   int     `json:"adaptive_max_attempts" env:"TOOLROUTER_ADAPTIVE_MAX_ATTEMPTS"`

	// CacheMaxSize and CacheTTLSeconds size the result cache.
	CacheMaxSize    int `json:"cache_max_size" env:"TOOLROUTER_CACHE_MAX_SIZE"`
	CacheTTLSeconds int `json:"cache_ttl_seconds" env:"TOOLROUTER_CACHE_TTL_SECONDS"`

	// UseLLMClassifier enables the model-assisted intent override when
	// a provider is configured.
	UseLLMClassifier bool `json:"use_llm_classifier" env:"TOOLROUTER_USE_LLM_CLASSIFIER"`
}

// DefaultConfig returns a balanced configuration with the preset
// confidence profiles.
func DefaultConfig() Config {
	return Config{
		ActiveProfile:         "balanced",
		Profiles:              confidence.Presets(),
		DefaultLimit:          5,
		DefaultThreshold:      0.30,
		Rerank:                true,
		SemanticWeight:        0.7,
		KeywordWeight:         0.3,
		AdaptiveThresholdStep: 0.10,
		AdaptiveMaxAttempts:   3,
		CacheMaxSize:          256,
		CacheTTLSeconds:       300,
	}
}

// LoadConfig builds a Config from defaults, an optional JSON file, and
// TOOLROUTER_* environment variables, then validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every invariant the router relies on. It fails fast
// so misconfiguration is caught before any query is served.
func (c Config) Validate() error {
	if len(c.Profiles) == 0 {
		return ErrNoProfiles
	}
	if _, ok := c.Profiles[c.ActiveProfile]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, c.ActiveProfile)
	}
	for name, profile := range c.Profiles {
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	if c.DefaultLimit < 1 {
		return ErrInvalidLimit
	}
	if c.DefaultThreshold < 0 || c.DefaultThreshold > 1 {
		return ErrInvalidThreshold
	}
	if c.SemanticWeight < 0 || c.SemanticWeight > 1 || c.KeywordWeight < 0 || c.KeywordWeight > 1 {
		return ErrInvalidWeight
	}
	if c.AdaptiveThresholdStep < 0 || c.AdaptiveThresholdStep > 1 {
		return ErrInvalidStep
	}
	if c.AdaptiveMaxAttempts < 1 {
		return ErrInvalidAttempts
	}
	if c.CacheMaxSize < 1 {
		return ErrInvalidCacheSize
	}
	if c.CacheTTLSeconds < 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// activeProfile returns the calibration profile selected by
// ActiveProfile. Call only after Validate.
func (c Config) activeProfile() confidence.Profile {
	return c.Profiles[c.ActiveProfile]
}

// Schema returns a JSON Schema document describing the configuration
// file format, for editor tooling and deploy-time validation.
func Schema() json.RawMessage {
	return json.RawMessage(configSchema)
}

const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "toolrouter configuration",
  "type": "object",
  "properties": {
    "active_profile": {"type": "string"},
    "auto_profile_select": {"type": "boolean"},
    "profiles": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "properties": {
          "high_threshold": {"type": "number", "minimum": 0, "maximum": 1},
          "medium_threshold": {"type": "number", "minimum": 0, "maximum": 1},
          "high_base": {"type": "number", "minimum": 0, "maximum": 1},
          "high_scale": {"type": "number", "minimum": 0, "maximum": 1},
          "high_cap": {"type": "number", "minimum": 0, "maximum": 1},
          "medium_base": {"type": "number", "minimum": 0, "maximum": 1},
          "medium_scale": {"type": "number", "minimum": 0, "maximum": 1},
          "medium_cap": {"type": "number", "minimum": 0, "maximum": 1},
          "low_floor": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "default_limit": {"type": "integer", "minimum": 1},
    "default_threshold": {"type": "number", "minimum": 0, "maximum": 1},
    "rerank": {"type": "boolean"},
    "semantic_weight": {"type": "number", "minimum": 0, "maximum": 1},
    "keyword_weight": {"type": "number", "minimum": 0, "maximum": 1},
    "adaptive_threshold_step": {"type": "number", "minimum": 0, "maximum": 1},
    "adaptive_max_attempts": {"type": "integer", "minimum": 1},
    "cache_max_size": {"type": "integer", "minimum": 1},
    "cache_ttl_seconds": {"type": "integer", "minimum": 0},
    "use_llm_classifier": {"type": "boolean"}
  },
  "required": ["active_profile", "profiles"]
}`
