package posting

import (
	"strings"

	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
)

// Selector is element selection criteria matched in memory against a parsed
// snapshot. Pure data; all string fields are case-insensitive substring
// matches and empty fields are ignored.
//
// Third-party app layouts change without notice, so selectors are kept
// deliberately loose (substrings, not exact ids) and are always tried in
// priority-ordered lists.
type Selector struct {
	Desc      string // content-desc contains
	ID        string // resource-id contains
	Text      string // text contains
	Hint      string // hint text contains
	Class     string // class name contains
	Clickable bool   // require clickable="true"
	MinArea   int    // skip elements smaller than this (tab-bar icons)
}

// Matches reports whether the element satisfies every set criterion.
func (s Selector) Matches(e core.Element) bool {
	if s.Desc == "" && s.ID == "" && s.Text == "" && s.Hint == "" && s.Class == "" {
		return false
	}
	if s.Desc != "" && !containsFold(e.ContentDesc, s.Desc) {
		return false
	}
	if s.ID != "" && !containsFold(e.ResourceID, s.ID) {
		return false
	}
	if s.Text != "" && !containsFold(e.Text, s.Text) {
		return false
	}
	if s.Hint != "" && !containsFold(e.HintText, s.Hint) {
		return false
	}
	if s.Class != "" && !containsFold(e.ClassName, s.Class) {
		return false
	}
	if s.Clickable && !e.Clickable {
		return false
	}
	if s.MinArea > 0 && e.Bounds.Area() < s.MinArea {
		return false
	}
	return true
}

// Describe returns a human-readable description for logging.
func (s Selector) Describe() string {
	switch {
	case s.Desc != "":
		return "desc~" + s.Desc
	case s.ID != "":
		return "id~" + s.ID
	case s.Text != "":
		return "text~" + s.Text
	case s.Hint != "":
		return "hint~" + s.Hint
	default:
		return "class~" + s.Class
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// anyDesc builds one selector per content-desc fragment.
func anyDesc(fragments ...string) []Selector {
	out := make([]Selector, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, Selector{Desc: f})
	}
	return out
}

// anyText builds one selector per visible-text fragment.
func anyText(fragments ...string) []Selector {
	out := make([]Selector, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, Selector{Text: f})
	}
	return out
}

// anyID builds one selector per resource-id fragment.
func anyID(fragments ...string) []Selector {
	out := make([]Selector, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, Selector{ID: f})
	}
	return out
}

func concat(lists ...[]Selector) []Selector {
	var out []Selector
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
