package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
	"github.com/UniversalLevi/InstagramAutomation/pkg/queue"
	"github.com/UniversalLevi/InstagramAutomation/pkg/store"
)

// workspace bundles the loaded config with the opened queue and state stores.
// Every command goes through openWorkspace so config overrides, logging, and
// directory layout behave the same everywhere.
type workspace struct {
	dir string
	cfg *config.Config
	q   *queue.Queue
	st  *store.Store
}

func openWorkspace(c *cli.Context) (*workspace, error) {
	dir := c.String("config")
	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// CLI flags override the config file.
	if v := c.String("account"); v != "" {
		cfg.Account = v
	}
	if v := c.String("platform"); v != "" {
		cfg.App.Platform = v
	}
	if v := c.String("device"); v != "" {
		cfg.Device.AdbSerial = v
	}
	if v := c.String("appium-url"); v != "" {
		cfg.Device.AppiumURL = v
	}

	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(dir, cfg.DataDir)
	}
	if err := os.MkdirAll(cfg.ArtifactsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logPath := cfg.LogFile
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(cfg.DataDir, logPath)
	}
	if err := logger.Init(logPath); err != nil {
		fmt.Printf("Warning: Failed to initialize logger: %v\n", err)
	}
	logger.SetVerbose(c.Bool("verbose"))

	mediaRoot := cfg.Posting.MediaDir
	if !filepath.IsAbs(mediaRoot) {
		mediaRoot = filepath.Join(dir, mediaRoot)
	}

	q, err := queue.Open(filepath.Join(cfg.DataDir, "queue.db"), mediaRoot)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to open queue: %w", err)
	}
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		q.Close()
		logger.Close()
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	return &workspace{dir: dir, cfg: cfg, q: q, st: st}, nil
}

func (w *workspace) Close() {
	w.st.Close()
	w.q.Close()
	logger.Close()
}
