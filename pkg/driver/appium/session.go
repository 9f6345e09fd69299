package appium

import (
	"os"

	"github.com/UniversalLevi/InstagramAutomation/pkg/device"
)

// Session is one exclusive device connection for one posting or warm-up
// attempt. It satisfies the posting and warmup device capability interfaces.
type Session struct {
	client *Client
	adb    *device.AndroidDevice // keyboard fallback, nil when unavailable
	appID  string
}

// Options configure a new session.
type Options struct {
	ServerURL  string
	AppPackage string
	AdbSerial  string
	Adb        *device.AndroidDevice
}

// NewSession connects to the Appium server and prepares the target app.
func NewSession(opts Options) (*Session, error) {
	caps := map[string]interface{}{
		"platformName":             "Android",
		"appium:automationName":    "UiAutomator2",
		"appium:appPackage":        opts.AppPackage,
		"appium:noReset":           true,
		"appium:fullReset":         false,
		"appium:newCommandTimeout": 300,
	}
	if opts.AdbSerial != "" {
		caps["appium:udid"] = opts.AdbSerial
	}

	client := NewClient(opts.ServerURL)
	if err := client.Connect(caps); err != nil {
		return nil, err
	}

	s := &Session{client: client, adb: opts.Adb, appID: opts.AppPackage}

	// No appActivity in the capabilities: activate after connecting, which
	// works with noReset and avoids guessing the launcher activity.
	if err := client.ActivateApp(opts.AppPackage); err != nil && opts.Adb != nil {
		if lerr := opts.Adb.LaunchApp(opts.AppPackage); lerr != nil {
			client.Disconnect()
			return nil, err
		}
	}

	return s, nil
}

// Close tears down the Appium session. Best effort.
func (s *Session) Close() error {
	return s.client.Disconnect()
}

// PageSource returns the raw UI hierarchy XML.
func (s *Session) PageSource() (string, error) {
	return s.client.Source()
}

// WindowSize returns the screen dimensions.
func (s *Session) WindowSize() (int, int) {
	return s.client.ScreenSize()
}

// TapAt taps at absolute screen coordinates.
func (s *Session) TapAt(x, y int) error {
	return s.client.Tap(x, y)
}

// TypeText types into the currently focused element, falling back to the
// ADB input shim when the server-side keyboard fails.
func (s *Session) TypeText(text string) error {
	err := s.client.SendKeys(text)
	if err != nil && s.adb != nil {
		return s.adb.InputText(text)
	}
	return err
}

// ClearText clears the currently focused element.
func (s *Session) ClearText() error {
	return s.client.ClearActive()
}

// Swipe performs a swipe gesture.
func (s *Session) Swipe(x1, y1, x2, y2, durMs int) error {
	return s.client.Swipe(x1, y1, x2, y2, durMs)
}

// Back presses the hardware back button.
func (s *Session) Back() error {
	return s.client.Back()
}

// ActivateApp brings an app to the foreground.
func (s *Session) ActivateApp(pkg string) error {
	return s.client.ActivateApp(pkg)
}

// Screenshot captures the screen as PNG to the given path.
func (s *Session) Screenshot(path string) error {
	data, err := s.client.Screenshot()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
