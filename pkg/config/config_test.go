package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.App.Platform != "instagram" {
		t.Errorf("default platform = %q", cfg.App.Platform)
	}
	if cfg.Posting.MaxSteps != 25 {
		t.Errorf("default maxSteps = %d", cfg.Posting.MaxSteps)
	}
	if cfg.Posting.ShareWait.Std() != 8*time.Second {
		t.Errorf("default shareWait = %s", cfg.Posting.ShareWait.Std())
	}
	if !cfg.Limits.OneSessionPerDay {
		t.Error("oneSessionPerDay should default on")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
account: myaccount
app:
  platform: tiktok
posting:
  maxSteps: 30
  stepSleep: 2.5s
  shareWait: 12
limits:
  maxActionsPerDay: 20
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Account != "myaccount" || cfg.App.Platform != "tiktok" {
		t.Errorf("overrides not applied: %q %q", cfg.Account, cfg.App.Platform)
	}
	if cfg.Posting.MaxSteps != 30 {
		t.Errorf("maxSteps = %d, want 30", cfg.Posting.MaxSteps)
	}
	if cfg.Posting.StepSleep.Std() != 2500*time.Millisecond {
		t.Errorf("stepSleep = %s, want 2.5s", cfg.Posting.StepSleep.Std())
	}
	// Bare numbers read as seconds.
	if cfg.Posting.ShareWait.Std() != 12*time.Second {
		t.Errorf("shareWait = %s, want 12s", cfg.Posting.ShareWait.Std())
	}
	// Untouched keys keep their defaults.
	if cfg.Posting.UnknownBudget != 4 {
		t.Errorf("unknownBudget = %d, want default 4", cfg.Posting.UnknownBudget)
	}
	if cfg.Limits.MaxActionsPerDay != 20 {
		t.Errorf("maxActionsPerDay = %d, want 20", cfg.Limits.MaxActionsPerDay)
	}
	if cfg.Device.AppiumURL != "http://127.0.0.1:4723" {
		t.Errorf("appiumUrl lost its default: %q", cfg.Device.AppiumURL)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()

	// No config file: defaults.
	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir() error: %v", err)
	}
	if cfg.Account != "default" {
		t.Errorf("account = %q, want default", cfg.Account)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("account: fromyml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Account != "fromyml" {
		t.Errorf("account = %q, want fromyml", cfg.Account)
	}

	// config.yaml wins over config.yml.
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("account: fromyaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Account != "fromyaml" {
		t.Errorf("account = %q, want fromyaml", cfg.Account)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("account: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted invalid YAML")
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/tmp/ws/data"
	if got := cfg.DBPath(); got != "/tmp/ws/data/automation.db" {
		t.Errorf("DBPath() = %q", got)
	}
	if got := cfg.ArtifactsDir(); got != "/tmp/ws/data/artifacts" {
		t.Errorf("ArtifactsDir() = %q", got)
	}
}
