package posting

import (
	"strings"
	"unicode"

	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
)

// sourceTextLimit bounds how much raw page source is kept for phrase
// matching. Success toasts render near the top of the dump; the tail is
// mostly styling noise.
const sourceTextLimit = 12000

// Snapshot is one observation of the device UI: the bounded lowercase source
// text, the parsed element list, and the derived hint-token set.
//
// A snapshot is captured once per machine step and discarded after that
// step's classification and intent resolution. The UI is assumed to mutate
// on every action, so snapshots are never cached or reused.
type Snapshot struct {
	Text     string // lowercase raw source, bounded to sourceTextLimit
	Elements []core.Element
	hints    map[string]struct{}
}

// NewSnapshot parses a raw UI hierarchy dump into a snapshot.
// Parse failures degrade to a text-only snapshot rather than erroring:
// phrase matching still works on malformed dumps.
func NewSnapshot(xmlSource string) *Snapshot {
	text := strings.ToLower(xmlSource)
	if len(text) > sourceTextLimit {
		text = text[:sourceTextLimit]
	}

	snap := &Snapshot{Text: text, hints: make(map[string]struct{})}

	elements, err := ParsePageSource(xmlSource)
	if err == nil {
		snap.Elements = elements
	}

	for _, e := range snap.Elements {
		if !e.Displayed {
			continue
		}
		addTokens(snap.hints, e.Text)
		addTokens(snap.hints, e.ContentDesc)
		addTokens(snap.hints, idLeaf(e.ResourceID))
	}

	return snap
}

// addTokens splits s into lowercase word tokens and records them.
func addTokens(set map[string]struct{}, s string) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, f := range fields {
		if len(f) >= 2 {
			set[f] = struct{}{}
		}
	}
}

// idLeaf returns the fragment of a resource-id after the last separator,
// e.g. "com.app:id/share_button" -> "share_button".
func idLeaf(id string) string {
	if i := strings.LastIndexAny(id, "/:"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Contains reports whether the bounded source text contains the phrase.
func (s *Snapshot) Contains(phrase string) bool {
	return strings.Contains(s.Text, strings.ToLower(phrase))
}

// HasHint reports whether the token appears in any visible text/desc/id.
func (s *Snapshot) HasHint(token string) bool {
	_, ok := s.hints[strings.ToLower(token)]
	return ok
}

// HasAnyHint reports whether any of the tokens appears.
func (s *Snapshot) HasAnyHint(tokens ...string) bool {
	for _, t := range tokens {
		if s.HasHint(t) {
			return true
		}
	}
	return false
}

// Find returns the first visible element matching the selector list, trying
// selectors in priority order.
func (s *Snapshot) Find(selectors []Selector) (core.Element, bool) {
	for _, sel := range selectors {
		for _, e := range s.Elements {
			if e.Displayed && sel.Matches(e) {
				return e, true
			}
		}
	}
	return core.Element{}, false
}

// FindAll returns every visible element matching the selector.
func (s *Snapshot) FindAll(sel Selector) []core.Element {
	var out []core.Element
	for _, e := range s.Elements {
		if e.Displayed && sel.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether any selector in the list matches a visible element.
func (s *Snapshot) Has(selectors []Selector) bool {
	_, ok := s.Find(selectors)
	return ok
}

// CountImages returns the number of visible image-like elements, used by the
// gallery-grid heuristic.
func (s *Snapshot) CountImages() int {
	n := 0
	for _, e := range s.Elements {
		if e.Displayed && strings.Contains(e.ClassName, "ImageView") {
			n++
		}
	}
	return n
}
