package posting

// Classify maps a snapshot to exactly one screen state. Pure function of the
// snapshot and profile; given the same snapshot it always returns the same
// state.
//
// The checks are priority-ordered and the order is load-bearing: these apps
// reuse text and resource-id fragments across unrelated screens, so most
// rules carry exclusion clauses that resolve observed ambiguities. Reordering
// or dropping an exclusion reintroduces a known misclassification.
func (p *Profile) Classify(snap *Snapshot) ScreenState {
	// 1) Success phrases preempt everything: a stale "Next" button under a
	// success toast must not mask a finished post.
	for _, phrase := range p.SuccessPhrases {
		if snap.Contains(phrase) {
			return StateSuccess
		}
	}

	hasShare := snap.Has(p.Intents[IntentShare])
	hasCaption := snap.Has(p.Intents[IntentCaptionInput])
	hasNext := snap.Has(p.Intents[IntentNextOrSkip])

	// 2) Share screen. All three conditions are required: a bottom tab can
	// also read "Post" (share without caption input = navigation, not
	// composer), and a co-occurring "Next" means an earlier edit step.
	// Create-menu tab labels that collide with "Post" veto the match too.
	if hasShare && hasCaption && !hasNext && !snap.HasAnyHint(p.CreateMenuTokens...) {
		return StateShareReady
	}

	// 3) Caption input without a share button: earlier composer step.
	if hasCaption {
		return StateCaptionScreen
	}

	// 4) A Next/Continue/Done affordance with nothing above matching.
	if hasNext {
		return StateTrimEdit
	}

	hasMenuOption := snap.Has(p.MenuOptions)
	hasGallery := snap.Has(p.GalleryMarkers)

	// 5) Gallery picker. Composer-menu tabs veto: both screens show an
	// image grid, only the picker lacks the Photo/Reel/Upload tabs.
	if !hasMenuOption {
		if hasGallery {
			return StateGallery
		}
		if (snap.Contains("gallery") || snap.Contains("recent")) && snap.CountImages() >= 4 {
			return StateGallery
		}
	}

	// 6) First create menu (Post | Story | Reel), two-step apps only.
	if p.TwoStepCreateMenu && snap.HasAnyHint(p.FirstMenuTokens...) && !hasGallery {
		return StateCreateFirstMenu
	}

	// 7) Create menus: Upload/Gallery/Photo/Reel options visible.
	if hasMenuOption || hasGallery || snap.Has(p.Intents[IntentUpload]) {
		if p.TwoStepCreateMenu {
			return StateCreatePostMenu
		}
		return StateCreateMenu
	}

	// 8) Profile, deliberately last and suppressed inside the create flow:
	// profile-like elements also match on record screens.
	if !p.InCreateFlow(snap) && snap.Has(p.ProfileMarkers) {
		return StateProfile
	}

	return StateUnknown
}
