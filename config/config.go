// Package config loads pipeline configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/randalmurphal/seoflow"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to key names for environment overrides,
// e.g. SEOFLOW_OUTPUT_ROOT.
const EnvPrefix = "SEOFLOW_"

// Duration wraps time.Duration for YAML unmarshaling of values like
// "2s" or "1m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the full pipeline configuration.
type Config struct {
	// OutputRoot holds snapshots, staging dirs and committed output.
	OutputRoot string `yaml:"output_root"`

	Research ResearchConfig `yaml:"research"`
	Models   ModelConfig    `yaml:"models"`
	Progress ProgressConfig `yaml:"progress"`
	Upload   UploadConfig   `yaml:"upload"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`

	// Warnings collects non-fatal issues found during loading.
	Warnings []string `yaml:"-"`
}

// ResearchConfig holds the research-phase retry policy.
type ResearchConfig struct {
	MaxAttempts       int      `yaml:"max_attempts"`
	BackoffBase       Duration `yaml:"backoff_base"`
	BackoffMultiplier float64  `yaml:"backoff_multiplier"`
	MaxBackoff        Duration `yaml:"max_backoff"`
}

// Policy converts the research retry settings into a retry policy.
func (r ResearchConfig) Policy() seoflow.Policy {
	return seoflow.Policy{
		MaxAttempts:       r.MaxAttempts,
		BackoffBase:       r.BackoffBase.Duration(),
		BackoffMultiplier: r.BackoffMultiplier,
		MaxBackoff:        r.MaxBackoff.Duration(),
	}
}

// ModelConfig names the models used by the generate package.
type ModelConfig struct {
	Research string `yaml:"research"`
	Writing  string `yaml:"writing"`
	Workdir  string `yaml:"workdir"`
}

// ProgressConfig configures progress reporting sinks.
type ProgressConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// UploadConfig configures the optional cloud-document sink.
type UploadConfig struct {
	Provider string `yaml:"provider"` // "github", "gitlab" or "" (disabled)
	Token    string `yaml:"token"`
	BaseURL  string `yaml:"base_url"` // GitLab only; empty for gitlab.com
	Owner    string `yaml:"owner"`    // GitHub only
	Repo     string `yaml:"repo"`     // GitHub repo / GitLab project path
	Branch   string `yaml:"branch"`
}

// CleanupConfig configures the orphan sweep.
type CleanupConfig struct {
	OlderThanHours int `yaml:"older_than_hours"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputRoot: "output",
		Research: ResearchConfig{
			MaxAttempts:       3,
			BackoffBase:       Duration(2 * time.Second),
			BackoffMultiplier: 2.0,
			MaxBackoff:        Duration(30 * time.Second),
		},
		Cleanup: CleanupConfig{OlderThanHours: 24},
	}
}

// Load reads configuration from path, layered over defaults and under
// environment overrides. A missing file is not an error; a malformed
// one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			cfg.warn(fmt.Sprintf("config file %s not found, using defaults", path))
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides config values from SEOFLOW_* environment
// variables. Unparseable values produce a warning, not an error.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPrefix + "OUTPUT_ROOT"); v != "" {
		c.OutputRoot = v
	}
	if v := os.Getenv(EnvPrefix + "RESEARCH_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Research.MaxAttempts = n
		} else {
			c.warn(fmt.Sprintf("invalid %sRESEARCH_MAX_ATTEMPTS: %q", EnvPrefix, v))
		}
	}
	if v := os.Getenv(EnvPrefix + "WEBHOOK_URL"); v != "" {
		c.Progress.WebhookURL = v
	}
	if v := os.Getenv(EnvPrefix + "UPLOAD_TOKEN"); v != "" {
		c.Upload.Token = v
	}
	if v := os.Getenv(EnvPrefix + "CLEANUP_OLDER_THAN_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cleanup.OlderThanHours = n
		} else {
			c.warn(fmt.Sprintf("invalid %sCLEANUP_OLDER_THAN_HOURS: %q", EnvPrefix, v))
		}
	}
}

func (c *Config) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}
