// Package config handles workspace configuration loading.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the workspace configuration (config.yaml).
type Config struct {
	Account string `yaml:"account"` // default account id

	Device  DeviceConfig  `yaml:"device"`
	App     AppConfig     `yaml:"app"`
	Limits  LimitsConfig  `yaml:"limits"`
	Warmup  WarmupConfig  `yaml:"warmup"`
	Posting PostingConfig `yaml:"posting"`

	DataDir string `yaml:"dataDir"` // sqlite db, diagnostics
	LogFile string `yaml:"logFile"`
}

// DeviceConfig selects the device and automation server.
type DeviceConfig struct {
	AdbSerial string `yaml:"adbSerial"` // empty = auto-detect
	AppiumURL string `yaml:"appiumUrl"`
}

// AppConfig selects the target app.
type AppConfig struct {
	Platform string `yaml:"platform"` // instagram, tiktok
	Package  string `yaml:"package"`  // override the profile default
}

// LimitsConfig bounds warm-up activity per day.
type LimitsConfig struct {
	OneSessionPerDay      bool    `yaml:"oneSessionPerDay"`
	MaxActionsPerDay      int     `yaml:"maxActionsPerDay"`
	MaxLikesFirstTwoWeeks int     `yaml:"maxLikesPerDayFirstTwoWeeks"`
	MaxSessionMinutes     int     `yaml:"maxSessionMinutes"`
	CooldownDaysMin       int     `yaml:"cooldownDaysMin"`
	CooldownDaysMax       int     `yaml:"cooldownDaysMax"`
	DoNothingProbability  float64 `yaml:"doNothingProbability"`
	ExitEarlyProbability  float64 `yaml:"exitEarlyProbability"`
}

// WarmupConfig tunes the generated daily plan.
type WarmupConfig struct {
	FeedScrollCount   int `yaml:"feedScrollCount"`
	LikeCount         int `yaml:"likeCount"`
	VisitProfileCount int `yaml:"visitProfileCount"`
}

// Duration wraps time.Duration so YAML values like "1.5s" parse.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string or a bare number of seconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if v, err := time.ParseDuration(node.Value); err == nil {
		*d = Duration(v)
		return nil
	}
	var secs float64
	if err := node.Decode(&secs); err != nil {
		return err
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// PostingConfig tunes the posting state machine.
type PostingConfig struct {
	MaxSteps         int      `yaml:"maxSteps"`
	UnknownBudget    int      `yaml:"unknownBudget"`
	MaxSelectRetries int      `yaml:"maxSelectRetries"`
	StepSleep        Duration `yaml:"stepSleep"`
	ShareWait        Duration `yaml:"shareWait"`
	AttemptTimeout   Duration `yaml:"attemptTimeout"`
	MediaDir         string   `yaml:"mediaDir"`
	CheckInterval    Duration `yaml:"checkInterval"` // scheduler poll interval
}

// Default returns the configuration defaults applied before YAML overlay.
func Default() *Config {
	return &Config{
		Account: "default",
		Device: DeviceConfig{
			AppiumURL: "http://127.0.0.1:4723",
		},
		App: AppConfig{
			Platform: "instagram",
		},
		Limits: LimitsConfig{
			OneSessionPerDay:      true,
			MaxActionsPerDay:      10,
			MaxLikesFirstTwoWeeks: 5,
			MaxSessionMinutes:     15,
			CooldownDaysMin:       3,
			CooldownDaysMax:       7,
			DoNothingProbability:  0.1,
			ExitEarlyProbability:  0.05,
		},
		Warmup: WarmupConfig{
			FeedScrollCount:   3,
			LikeCount:         4,
			VisitProfileCount: 2,
		},
		Posting: PostingConfig{
			MaxSteps:         25,
			UnknownBudget:    4,
			MaxSelectRetries: 2,
			StepSleep:        Duration(1500 * time.Millisecond),
			ShareWait:        Duration(8 * time.Second),
			AttemptTimeout:   Duration(6 * time.Minute),
			MediaDir:         "media",
			CheckInterval:    Duration(time.Minute),
		},
		DataDir: "data",
		LogFile: "automation.log",
	}
}

// Load loads configuration from a file, overlaying the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, run on defaults
	return Default(), nil
}

// DBPath returns the sqlite database location under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "automation.db")
}

// ArtifactsDir returns where diagnostic dumps and screenshots are written.
func (c *Config) ArtifactsDir() string {
	return filepath.Join(c.DataDir, "artifacts")
}
