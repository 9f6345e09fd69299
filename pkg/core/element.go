// Package core provides the shared device and element model types.
package core

// Bounds represents element position and size in screen pixels.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the bounds.
func (b Bounds) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Area returns the bounds area in square pixels.
func (b Bounds) Area() int {
	return b.Width * b.Height
}

// Element is one node from a parsed UI hierarchy snapshot.
// Elements are plain values; they never hold a live driver reference.
type Element struct {
	Text        string `json:"text,omitempty"`
	ResourceID  string `json:"resourceId,omitempty"`
	ContentDesc string `json:"contentDesc,omitempty"`
	HintText    string `json:"hint,omitempty"`
	ClassName   string `json:"class,omitempty"`
	Bounds      Bounds `json:"bounds"`
	Clickable   bool   `json:"clickable"`
	Enabled     bool   `json:"enabled"`
	Displayed   bool   `json:"displayed"`
	Focused     bool   `json:"focused,omitempty"`
	Depth       int    `json:"-"`
}

// Describe returns a short human-readable identity for logging.
func (e Element) Describe() string {
	switch {
	case e.Text != "":
		return "text=" + e.Text
	case e.ContentDesc != "":
		return "desc=" + e.ContentDesc
	case e.ResourceID != "":
		return "id=" + e.ResourceID
	default:
		return e.ClassName
	}
}
