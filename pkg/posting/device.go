package posting

// Device is the automation capability the posting engine needs. Implemented
// by the Appium session for real devices and by scripted fakes in tests.
//
// All taps are coordinate-based: the engine resolves an element against the
// current snapshot and taps its bounds center. Element handles never cross
// this boundary, so a UI mutation between observe and act costs one wasted
// tap instead of a stale-reference fault.
type Device interface {
	// PageSource returns the raw XML UI hierarchy dump.
	PageSource() (string, error)

	// WindowSize returns the screen dimensions in pixels.
	WindowSize() (width, height int)

	TapAt(x, y int) error
	TypeText(text string) error
	ClearText() error
	Swipe(x1, y1, x2, y2, durMs int) error
	Back() error

	ActivateApp(pkg string) error

	// Screenshot writes a PNG to the given path.
	Screenshot(path string) error
}
