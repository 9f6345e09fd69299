package posting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
)

const (
	dumpSourceLimit  = 8000
	dumpElementLimit = 80
)

// dumpDiagnostics writes a human-readable screen summary and a screenshot
// for the current observation. Called on stuck and hard-failure paths only;
// every error in here is logged and swallowed, diagnostics must never fail
// an attempt that was otherwise going to be retried.
func (p *Poster) dumpDiagnostics(snap *Snapshot, reason string) {
	if p.artifactsDir == "" {
		return
	}
	if err := os.MkdirAll(p.artifactsDir, 0o755); err != nil {
		logger.Debug("diagnostics dir: %v", err)
		return
	}

	base := filepath.Join(p.artifactsDir, fmt.Sprintf("post_%s_%s", reason, p.attemptID))

	txtPath := base + ".txt"
	if err := os.WriteFile(txtPath, []byte(screenSummary(snap)), 0o644); err != nil {
		logger.Debug("screen dump write: %v", err)
	} else {
		logger.Info("screen dump saved: %s", txtPath)
	}

	pngPath := base + ".png"
	if err := p.dev.Screenshot(pngPath); err != nil {
		logger.Debug("screenshot: %v", err)
	} else {
		logger.Info("screenshot saved: %s", pngPath)
	}
}

// screenSummary renders a bounded page-source excerpt plus the visible
// element attributes, one line per element.
func screenSummary(snap *Snapshot) string {
	var b strings.Builder

	b.WriteString("=== Page source (first ")
	fmt.Fprintf(&b, "%d chars) ===\n", dumpSourceLimit)
	src := snap.Text
	if len(src) > dumpSourceLimit {
		src = src[:dumpSourceLimit]
	}
	b.WriteString(src)
	b.WriteString("\n\n=== Visible elements ===\n")

	count := 0
	for _, e := range snap.Elements {
		if count >= dumpElementLimit {
			break
		}
		if !e.Displayed {
			continue
		}
		if e.Text == "" && e.ContentDesc == "" && e.ResourceID == "" {
			continue
		}
		fmt.Fprintf(&b, "  %d: %s\n", count, e.Describe())
		count++
	}
	return b.String()
}
