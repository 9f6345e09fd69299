package posting

// RelPoint is a screen position in width/height fractions, used for
// last-resort coordinate taps when every selector strategy failed.
type RelPoint struct {
	X, Y  float64
	DurMs int
}

// HintRule maps visible-hint tokens to a suggested action. Used when the
// classifier cannot decide: the screen may be unrecognizable as a whole
// while still showing an unmistakable "Next" or "Upload" affordance.
type HintRule struct {
	Any    []string
	Action Action
}

// Profile parameterizes the generic posting engine for one target app:
// selector tables, classification token sets, fallback tap positions.
// The engine itself carries no app-specific knowledge.
type Profile struct {
	Name           string
	Package        string
	DeviceMediaDir string // staging directory for pushed media

	// Classification inputs.
	SuccessPhrases []string
	// CreateMenuTokens are hint tokens of create-menu tabs whose labels
	// textually collide with the Share/Post button ("Post" as a record tab).
	// Their presence vetoes a SHARE_READY classification.
	CreateMenuTokens []string
	// FlowRootMarkers are hint tokens proving we are inside the create or
	// record flow. They suppress a PROFILE classification: some apps reuse
	// profile resource-id fragments on create screens.
	FlowRootMarkers []string
	// FirstMenuTokens identify the first create menu (Post | Story | Reel)
	// for apps with a two-step create flow.
	FirstMenuTokens []string

	// Selector tables.
	Intents        map[Intent][]Selector
	MenuOptions    []Selector // composer-menu tabs (Photo/Reel/Upload)
	GalleryMarkers []Selector
	ProfileMarkers []Selector // create-on-profile button, profile tab

	// Behavior switches.
	TwoStepCreateMenu bool // Post|Story|Reel menu before Gallery|Photo menu
	SupportsCarousel  bool
	VideoOnly         bool
	HintRules         []HintRule

	FallbackTaps map[ScreenState][]RelPoint
}

// SuggestAction infers an action from visible hints alone. First rule wins.
func (p *Profile) SuggestAction(snap *Snapshot) (Action, bool) {
	for _, r := range p.HintRules {
		if snap.HasAnyHint(r.Any...) {
			return r.Action, true
		}
	}
	return "", false
}

// InCreateFlow reports whether a flow-root marker is visible.
func (p *Profile) InCreateFlow(snap *Snapshot) bool {
	return snap.HasAnyHint(p.FlowRootMarkers...)
}
