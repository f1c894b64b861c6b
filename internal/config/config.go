// Package config loads runtime configuration into explicit structs that are
// injected into collaborators; no other package reads process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultRateLimitRPS bounds the request rate against the lookup service to
// roughly one call per second, matching the API's courtesy limit.
const defaultRateLimitRPS = 1.0

// Config is the full runtime configuration for the search pipeline.
type Config struct {
	DigiKey DigiKey `yaml:"digikey"`
	Gemini  Gemini  `yaml:"gemini"`

	// RateLimitRPS is the request pacing rate; <= 0 disables pacing.
	RateLimitRPS float64 `yaml:"rate_limit_rps"`

	// DebugDir, when non-empty, enables per-query debug artifacts.
	DebugDir string `yaml:"debug_dir"`
}

// DigiKey holds the part lookup service credentials.
type DigiKey struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	BaseURL      string `yaml:"base_url"`
}

// Gemini configures the optional automated close-match selector.
// It is enabled when APIKey is non-empty.
type Gemini struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Load builds the configuration from an optional YAML file (path from
// PARTSCOUT_CONFIG) with environment variables taking precedence.
func Load() (Config, error) {
	cfg := Config{RateLimitRPS: defaultRateLimitRPS}

	if path := strings.TrimSpace(os.Getenv("PARTSCOUT_CONFIG")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read PARTSCOUT_CONFIG file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse PARTSCOUT_CONFIG YAML: %w", err)
		}
	}

	applyEnvString(&cfg.DigiKey.ClientID, "DIGIKEY_CLIENT_ID")
	applyEnvString(&cfg.DigiKey.ClientSecret, "DIGIKEY_CLIENT_SECRET")
	applyEnvString(&cfg.DigiKey.BaseURL, "DIGIKEY_BASE_URL")
	applyEnvString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	applyEnvString(&cfg.Gemini.Model, "GEMINI_MODEL")
	applyEnvString(&cfg.Gemini.BaseURL, "GEMINI_BASE_URL")
	applyEnvString(&cfg.DebugDir, "PARTSCOUT_DEBUG_DIR")
	if err := applyEnvFloat(&cfg.RateLimitRPS, "RATE_LIMIT_RPS"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ValidateSearch checks the fields the search pipeline cannot run without.
func (c Config) ValidateSearch() error {
	if strings.TrimSpace(c.DigiKey.ClientID) == "" || strings.TrimSpace(c.DigiKey.ClientSecret) == "" {
		return fmt.Errorf("DIGIKEY_CLIENT_ID and DIGIKEY_CLIENT_SECRET are required")
	}
	if strings.TrimSpace(c.Gemini.APIKey) != "" && strings.TrimSpace(c.Gemini.Model) == "" {
		return fmt.Errorf("GEMINI_MODEL is required when GEMINI_API_KEY is set")
	}
	return nil
}

func applyEnvString(dst *string, varName string) {
	if v := strings.TrimSpace(os.Getenv(varName)); v != "" {
		*dst = v
	}
}

func applyEnvFloat(dst *float64, varName string) error {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return nil
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	*dst = out
	return nil
}
