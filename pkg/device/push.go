package device

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
)

// Pusher stages local media files on the device before a posting attempt.
type Pusher interface {
	// Push transfers the file, verifies it exists remotely, and triggers a
	// media index rescan. Returns the canonical device path.
	Push(localPath string) (string, error)
}

// MediaPusher implements Pusher over an AndroidDevice.
// It fails closed: the posting state machine must never start against an
// unverified gallery, since picking stale media is a silent failure.
type MediaPusher struct {
	device    *AndroidDevice
	deviceDir string
}

// NewMediaPusher creates a MediaPusher that stages files under deviceDir.
// An empty deviceDir uses the default DCIM staging directory.
func NewMediaPusher(d *AndroidDevice, deviceDir string) *MediaPusher {
	if deviceDir == "" {
		deviceDir = "/sdcard/DCIM/AutoPost/"
	}
	return &MediaPusher{device: d, deviceDir: deviceDir}
}

// Push implements Pusher.
func (p *MediaPusher) Push(localPath string) (string, error) {
	devicePath := p.deviceDir + filepath.Base(localPath)

	if _, err := p.device.Shell("mkdir -p " + p.deviceDir); err != nil {
		return "", core.ErrPushFailed.WithCause(err)
	}

	if err := p.device.Push(localPath, devicePath); err != nil {
		return "", core.ErrPushFailed.WithCause(err)
	}

	if !p.device.FileExists(devicePath) {
		return "", core.ErrPushFailed.WithCause(
			fmt.Errorf("file not found on device at %s after push", devicePath))
	}

	// Media scanner broadcast so the gallery picker sees the new file.
	// Best effort: some OEM builds ignore it, the picker usually refreshes anyway.
	if _, err := p.device.Shell(
		"am broadcast -a android.intent.action.MEDIA_SCANNER_SCAN_FILE -d file://" + devicePath,
	); err != nil {
		logger.Warn("media scan broadcast failed: %v", err)
	}
	time.Sleep(time.Second)

	logger.Info("Pushed file to device: %s", devicePath)
	return devicePath, nil
}
