// Package config loads teampulse configuration by layering defaults, an
// optional YAML file and TEAMPULSE_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Afrawles/teampulse/internal/activity"
)

type Config struct {
	// Organization and Project identify the Azure DevOps project to pull
	// activity from.
	Organization string `koanf:"organization"`
	Project      string `koanf:"project"`

	// Token is a personal access token with read scope on code, work
	// items and builds.
	Token string `koanf:"token"`

	// Team scopes the user directory; empty means the project default team.
	Team string `koanf:"team"`

	// Repositories restricts commit/PR collection to the named
	// repositories; empty means all repositories in the project.
	Repositories []string `koanf:"repositories"`

	// WindowDays sets the reporting window when no explicit dates are given.
	WindowDays int `koanf:"window_days"`

	// Limit caps the leaderboard length.
	Limit int `koanf:"limit"`

	// IncludeZero keeps contributors with a zero score in the output.
	IncludeZero bool `koanf:"include_zero"`

	OutputDir string   `koanf:"output_dir"`
	Formats   []string `koanf:"formats"` // markdown, html, csv, excel, json

	// WebhookURL, when set, receives the top of the leaderboard as a
	// chat notification after each run.
	WebhookURL string `koanf:"webhook_url"`

	Weights activity.Weights `koanf:"weights"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		WindowDays: 7,
		Limit:      15,
		OutputDir:  "reports",
		Formats:    []string{"markdown", "html"},
		Weights:    activity.DefaultWeights(),
	}
}

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TEAMPULSE_CONFIG is set
//  3. env (prefix TEAMPULSE_, e.g. TEAMPULSE_TOKEN, TEAMPULSE_WINDOW_DAYS)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("TEAMPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// TEAMPULSE_WEIGHTS_PR_MERGED -> weights.pr_merged; single-level keys
	// stay flat (TEAMPULSE_TOKEN -> token).
	envProvider := env.Provider("TEAMPULSE_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "TEAMPULSE_"))
		if rest, ok := strings.CutPrefix(s, "weights_"); ok {
			return "weights." + rest
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants that should fail a run up front. Weight
// validation lives here so a negative weight is rejected at load time
// rather than surfacing as a negative score.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.WindowDays < 0 {
		return fmt.Errorf("window_days must be non-negative, got %d", c.WindowDays)
	}
	return nil
}

// ValidateCollection checks the fields required to talk to the hosting
// platform. Separate from Validate so offline paths (rendering fixtures,
// tests) can use a Config without credentials.
func (c *Config) ValidateCollection() error {
	if c.Organization == "" {
		return fmt.Errorf("organization is required (set TEAMPULSE_ORGANIZATION or --org)")
	}
	if c.Project == "" {
		return fmt.Errorf("project is required (set TEAMPULSE_PROJECT or --project)")
	}
	if c.Token == "" {
		return fmt.Errorf("token is required (set TEAMPULSE_TOKEN or --token)")
	}
	return nil
}
