package posting

import (
	"strings"

	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
)

// tabBarFraction is the vertical threshold separating composer buttons from
// the bottom navigation bar. "Post"/"Share" text also appears on nav tabs;
// vertical position is the disambiguator.
const tabBarFraction = 0.85

// minTapTargetArea filters out tab-bar icons when picking menu options.
const minTapTargetArea = 400

// Resolve finds the best candidate element for the intent against the
// snapshot, trying selector strategies in priority order. Pure lookup: the
// caller performs the tap. Returns false when every strategy misses; the
// caller is expected to fall back to a coordinate tap.
func (p *Profile) Resolve(snap *Snapshot, intent Intent, screenH int) (core.Element, bool) {
	switch intent {
	case IntentShare:
		return p.resolveShare(snap, screenH)
	case IntentUpload:
		return p.resolveUpload(snap)
	case IntentFirstMedia:
		return resolveFirstMedia(snap)
	default:
		return snap.Find(p.Intents[intent])
	}
}

// resolveShare prefers a candidate above the tab bar. A match below the
// threshold is returned only when nothing sits above it.
func (p *Profile) resolveShare(snap *Snapshot, screenH int) (core.Element, bool) {
	selectors := p.Intents[IntentShare]
	if screenH <= 0 {
		return snap.Find(selectors)
	}

	tabBarY := int(float64(screenH) * tabBarFraction)
	var below core.Element
	haveBelow := false

	for _, sel := range selectors {
		for _, e := range snap.FindAll(sel) {
			_, cy := e.Bounds.Center()
			if cy < tabBarY {
				return e, true
			}
			if !haveBelow {
				below, haveBelow = e, true
			}
		}
	}
	return below, haveBelow
}

// resolveUpload prefers clickable, reasonably sized options over tab icons.
func (p *Profile) resolveUpload(snap *Snapshot) (core.Element, bool) {
	selectors := p.Intents[IntentUpload]

	for _, sel := range selectors {
		sized := sel
		sized.Clickable = true
		sized.MinArea = minTapTargetArea
		if e, ok := snap.Find([]Selector{sized}); ok {
			return e, true
		}
	}
	return snap.Find(selectors)
}

// resolveFirstMedia finds the first selectable media tile in the picker by
// structure rather than labels: thumbnails rarely carry stable ids.
func resolveFirstMedia(snap *Snapshot) (core.Element, bool) {
	strategies := []Selector{
		{Class: "ImageView", Clickable: true},
		{ID: "thumbnail"},
		{ID: "video", Class: "ImageView"},
		{Class: "ImageView", MinArea: 2000},
	}
	for _, sel := range strategies {
		for _, e := range snap.FindAll(sel) {
			// Skip header/toolbar icons hugging the very top of the screen.
			if e.Bounds.Y < 80 && e.Bounds.Area() < 10000 {
				continue
			}
			return e, true
		}
	}
	return core.Element{}, false
}

// captionText combines caption and hashtags the way the composer expects.
func captionText(caption string, hashtags []string) string {
	tags := strings.TrimSpace(strings.Join(hashtags, " "))
	switch {
	case caption == "":
		return tags
	case tags == "":
		return caption
	default:
		return caption + "\n\n" + tags
	}
}
