// Package device provides Android device management via ADB.
package device

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes an adb invocation and returns combined stdout.
// Extracted so tests can run without a device attached.
type Runner interface {
	Run(args []string, timeout time.Duration) (string, error)
}

type execRunner struct {
	adbPath string
}

func (r execRunner) Run(args []string, timeout time.Duration) (string, error) {
	done := make(chan struct{})
	cmd := exec.Command(r.adbPath, args...)
	var out []byte
	var err error
	go func() {
		out, err = cmd.CombinedOutput()
		close(done)
	}()
	select {
	case <-done:
		return strings.TrimSpace(string(out)), err
	case <-time.After(timeout):
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		<-done
		return "", fmt.Errorf("adb %s timed out after %s", args[0], timeout)
	}
}

// AndroidDevice manages an Android device connection via ADB.
type AndroidDevice struct {
	serial string
	runner Runner
}

// New creates an AndroidDevice for the given serial.
// If serial is empty, it auto-detects the connected device.
func New(serial string) (*AndroidDevice, error) {
	adbPath, err := exec.LookPath("adb")
	if err != nil {
		return nil, fmt.Errorf("adb not found in PATH: %w", err)
	}
	runner := execRunner{adbPath: adbPath}

	if serial == "" {
		serial, err = detectDeviceSerial(runner)
		if err != nil {
			return nil, fmt.Errorf("no device specified and auto-detect failed: %w", err)
		}
	}

	return &AndroidDevice{serial: serial, runner: runner}, nil
}

// NewWithRunner creates an AndroidDevice with a custom command runner.
func NewWithRunner(serial string, runner Runner) *AndroidDevice {
	return &AndroidDevice{serial: serial, runner: runner}
}

// detectDeviceSerial finds the first connected device serial.
func detectDeviceSerial(runner Runner) (string, error) {
	out, err := runner.Run([]string{"devices"}, 10*time.Second)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 && parts[1] == "device" {
			return parts[0], nil
		}
	}
	return "", fmt.Errorf("no connected devices found")
}

// Serial returns the device serial number.
func (d *AndroidDevice) Serial() string {
	return d.serial
}

func (d *AndroidDevice) adb(timeout time.Duration, args ...string) (string, error) {
	full := args
	if d.serial != "" {
		full = append([]string{"-s", d.serial}, args...)
	}
	return d.runner.Run(full, timeout)
}

// Shell executes a shell command on the device.
func (d *AndroidDevice) Shell(cmd string) (string, error) {
	return d.adb(30*time.Second, "shell", cmd)
}

// Push copies a local file to the device.
func (d *AndroidDevice) Push(localPath, devicePath string) error {
	out, err := d.adb(60*time.Second, "push", localPath, devicePath)
	if err != nil {
		return fmt.Errorf("adb push failed: %s: %w", out, err)
	}
	return nil
}

// FileExists checks for a file on the device by remote stat.
func (d *AndroidDevice) FileExists(devicePath string) bool {
	out, err := d.Shell(fmt.Sprintf("test -f '%s' && echo exists", devicePath))
	if err != nil {
		return false
	}
	return strings.Contains(out, "exists")
}

// InputText types text through the ADB input shim. Used as the keyboard
// fallback when the automation server cannot reach the focused field.
func (d *AndroidDevice) InputText(text string) error {
	escaped := strings.ReplaceAll(text, "\n", " ")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")
	escaped = strings.ReplaceAll(escaped, " ", "%s")
	if len(escaped) > 500 {
		escaped = escaped[:500]
	}
	_, err := d.adb(10*time.Second, "shell", "input", "text", escaped)
	return err
}

// LaunchApp starts an app's launcher activity via monkey.
func (d *AndroidDevice) LaunchApp(pkg string) error {
	_, err := d.Shell(fmt.Sprintf("monkey -p %s -c android.intent.category.LAUNCHER 1", pkg))
	return err
}

// IsInstalled checks if a package is installed.
func (d *AndroidDevice) IsInstalled(pkg string) bool {
	out, err := d.Shell("pm list packages " + pkg)
	if err != nil {
		return false
	}
	return strings.Contains(out, "package:"+pkg)
}
