// Package mock provides a scripted device for testing without a real device.
package mock

import "fmt"

// TapRecord is one recorded tap with its screen position.
type TapRecord struct {
	X, Y int
}

// Device is a scripted implementation of the posting device capability.
// Each PageSource call returns the next entry from Screens; once the script
// is exhausted the last screen repeats. Every interaction is recorded in
// Actions for assertions.
type Device struct {
	// Screens are raw page-source dumps served in order.
	Screens []string
	// FailTaps makes every TapAt return an error.
	FailTaps bool
	// Width and Height default to 1080x2400.
	Width, Height int

	Actions []string
	Taps    []TapRecord
	Typed   []string

	screenIdx int
	observed  int
}

// New creates a scripted device serving the given page sources in order.
func New(screens ...string) *Device {
	return &Device{Screens: screens, Width: 1080, Height: 2400}
}

// Observations returns how many times the UI was read.
func (d *Device) Observations() int {
	return d.observed
}

// PageSource returns the current scripted screen and advances the script.
func (d *Device) PageSource() (string, error) {
	d.observed++
	if len(d.Screens) == 0 {
		return "", fmt.Errorf("mock: no screens scripted")
	}
	src := d.Screens[d.screenIdx]
	if d.screenIdx < len(d.Screens)-1 {
		d.screenIdx++
	}
	return src, nil
}

// WindowSize returns the configured screen dimensions.
func (d *Device) WindowSize() (int, int) {
	return d.Width, d.Height
}

// TapAt records the tap.
func (d *Device) TapAt(x, y int) error {
	if d.FailTaps {
		return fmt.Errorf("mock: tap failure at (%d,%d)", x, y)
	}
	d.Actions = append(d.Actions, fmt.Sprintf("tap(%d,%d)", x, y))
	d.Taps = append(d.Taps, TapRecord{X: x, Y: y})
	return nil
}

// TypeText records the typed text.
func (d *Device) TypeText(text string) error {
	d.Actions = append(d.Actions, "type:"+text)
	d.Typed = append(d.Typed, text)
	return nil
}

// ClearText records the clear.
func (d *Device) ClearText() error {
	d.Actions = append(d.Actions, "clear")
	return nil
}

// Swipe records the gesture.
func (d *Device) Swipe(x1, y1, x2, y2, durMs int) error {
	d.Actions = append(d.Actions, fmt.Sprintf("swipe(%d,%d->%d,%d)", x1, y1, x2, y2))
	return nil
}

// Back records the back press.
func (d *Device) Back() error {
	d.Actions = append(d.Actions, "back")
	return nil
}

// ActivateApp records the app activation.
func (d *Device) ActivateApp(pkg string) error {
	d.Actions = append(d.Actions, "activate:"+pkg)
	return nil
}

// Screenshot records the request without writing a file.
func (d *Device) Screenshot(path string) error {
	d.Actions = append(d.Actions, "screenshot:"+path)
	return nil
}

// Pusher is a scripted media pusher.
type Pusher struct {
	// Fail makes every push return an error.
	Fail   bool
	Pushed []string
}

// Push records the file and returns a fake device path.
func (p *Pusher) Push(localPath string) (string, error) {
	if p.Fail {
		return "", fmt.Errorf("mock: push failure for %s", localPath)
	}
	p.Pushed = append(p.Pushed, localPath)
	return "/sdcard/DCIM/AutoPost/" + localPath, nil
}
