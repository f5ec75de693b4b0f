package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OutputRoot != "output" {
		t.Errorf("OutputRoot = %q, want %q", cfg.OutputRoot, "output")
	}
	if cfg.Research.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Research.MaxAttempts)
	}
	if cfg.Research.BackoffBase.Duration() != 2*time.Second {
		t.Errorf("BackoffBase = %v, want 2s", cfg.Research.BackoffBase)
	}
	if cfg.Cleanup.OlderThanHours != 24 {
		t.Errorf("OlderThanHours = %d, want 24", cfg.Cleanup.OlderThanHours)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seoflow.yaml")
	body := `
output_root: /var/lib/seoflow
research:
  max_attempts: 5
  backoff_base: 1s
models:
  research: claude-haiku
  writing: claude-sonnet
progress:
  webhook_url: https://hooks.example.com/seo
upload:
  provider: github
  owner: acme
  repo: articles
  branch: main
cleanup:
  older_than_hours: 48
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputRoot != "/var/lib/seoflow" {
		t.Errorf("OutputRoot = %q", cfg.OutputRoot)
	}
	if cfg.Research.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Research.MaxAttempts)
	}
	if cfg.Research.BackoffBase.Duration() != time.Second {
		t.Errorf("BackoffBase = %v, want 1s", cfg.Research.BackoffBase)
	}
	// Unset fields keep their defaults.
	if cfg.Research.MaxBackoff.Duration() != 30*time.Second {
		t.Errorf("MaxBackoff = %v, want the default 30s", cfg.Research.MaxBackoff)
	}
	if cfg.Upload.Provider != "github" || cfg.Upload.Owner != "acme" {
		t.Errorf("upload = %+v", cfg.Upload)
	}
	if cfg.Progress.WebhookURL != "https://hooks.example.com/seo" {
		t.Errorf("webhook = %q", cfg.Progress.WebhookURL)
	}
	if cfg.Cleanup.OlderThanHours != 48 {
		t.Errorf("OlderThanHours = %d, want 48", cfg.Cleanup.OlderThanHours)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", cfg.Warnings)
	}
}

func TestResearchConfig_Policy(t *testing.T) {
	p := Default().Research.Policy()
	if p.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", p.MaxAttempts)
	}
	if p.BackoffBase != 2*time.Second {
		t.Errorf("BackoffBase = %v, want 2s", p.BackoffBase)
	}
	if p.BackoffMultiplier != 2.0 {
		t.Errorf("BackoffMultiplier = %v, want 2.0", p.BackoffMultiplier)
	}
	if p.MaxBackoff != 30*time.Second {
		t.Errorf("MaxBackoff = %v, want 30s", p.MaxBackoff)
	}
}

func TestDuration_UnmarshalInvalid(t *testing.T) {
	var d Duration
	if err := yaml.Unmarshal([]byte("not-a-duration"), &d); err == nil {
		t.Error("invalid duration should error")
	}
	if err := yaml.Unmarshal([]byte(`"1m30s"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Duration() != 90*time.Second {
		t.Errorf("d = %v, want 1m30s", d.Duration())
	}
}

func TestLoad_MissingFileWarnsAndDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputRoot != "output" {
		t.Errorf("OutputRoot = %q, want default", cfg.OutputRoot)
	}
	if len(cfg.Warnings) != 1 || !strings.Contains(cfg.Warnings[0], "not found") {
		t.Errorf("warnings = %v", cfg.Warnings)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output_root: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config should error")
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputRoot != "output" {
		t.Errorf("OutputRoot = %q, want default", cfg.OutputRoot)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("warnings = %v, want none for an empty path", cfg.Warnings)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"OUTPUT_ROOT", "/env/root")
	t.Setenv(EnvPrefix+"RESEARCH_MAX_ATTEMPTS", "7")
	t.Setenv(EnvPrefix+"WEBHOOK_URL", "https://env.example.com")
	t.Setenv(EnvPrefix+"UPLOAD_TOKEN", "tok-123")
	t.Setenv(EnvPrefix+"CLEANUP_OLDER_THAN_HOURS", "12")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputRoot != "/env/root" {
		t.Errorf("OutputRoot = %q", cfg.OutputRoot)
	}
	if cfg.Research.MaxAttempts != 7 {
		t.Errorf("MaxAttempts = %d, want 7", cfg.Research.MaxAttempts)
	}
	if cfg.Progress.WebhookURL != "https://env.example.com" {
		t.Errorf("webhook = %q", cfg.Progress.WebhookURL)
	}
	if cfg.Upload.Token != "tok-123" {
		t.Errorf("token = %q", cfg.Upload.Token)
	}
	if cfg.Cleanup.OlderThanHours != 12 {
		t.Errorf("OlderThanHours = %d, want 12", cfg.Cleanup.OlderThanHours)
	}
}

func TestLoad_BadEnvValueWarns(t *testing.T) {
	t.Setenv(EnvPrefix+"RESEARCH_MAX_ATTEMPTS", "lots")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Research.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want the default 3", cfg.Research.MaxAttempts)
	}
	if len(cfg.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1", cfg.Warnings)
	}
}
