package posting

import (
	"time"

	"github.com/google/uuid"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
	"github.com/UniversalLevi/InstagramAutomation/pkg/device"
	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
)

const (
	sharePollAttempts = 10
	sharePollInterval = 2 * time.Second
	overlayBackCount  = 3
)

// Poster drives one posting attempt through the target app's composer UI.
// One Poster per attempt; it carries the attempt's counters and flags and is
// not safe for concurrent use.
type Poster struct {
	dev          Device
	pusher       device.Pusher
	profile      *Profile
	cfg          config.PostingConfig
	artifactsDir string
	attemptID    string

	// sleep is swapped out in tests.
	sleep func(time.Duration)

	hadShareReady      bool
	lastActionWasShare bool
	carouselDone       bool
}

// NewPoster creates a Poster for one attempt.
func NewPoster(dev Device, pusher device.Pusher, profile *Profile, cfg config.PostingConfig, artifactsDir string) *Poster {
	return &Poster{
		dev:          dev,
		pusher:       pusher,
		profile:      profile,
		cfg:          cfg,
		artifactsDir: artifactsDir,
		attemptID:    uuid.NewString()[:8],
		sleep:        time.Sleep,
	}
}

// Post pushes the media files and drives the composer until the post is
// confirmed shared or a budget runs out. Returns true only on confirmed
// success. The error is non-nil for hard failures (push precondition, budget
// exhaustion); a transient UI miss is never an error, it degrades to a
// fallback tap inside the loop.
func (p *Poster) Post(files []string, caption string, hashtags []string) (bool, error) {
	if len(files) == 0 {
		return false, core.NewExecutionError(core.ErrCategoryPrecondition, "no_media", "no media files given")
	}
	if len(files) > 1 && !p.profile.SupportsCarousel {
		logger.Warn("%s does not support multi-item posts, using first of %d files", p.profile.Name, len(files))
		files = files[:1]
	}

	// Fail closed before touching the UI: a post against an unverified
	// gallery can silently pick the wrong media.
	for _, f := range files {
		if _, err := p.pusher.Push(f); err != nil {
			return false, err
		}
	}

	p.dismissOverlays(overlayBackCount)
	if err := p.dev.ActivateApp(p.profile.Package); err != nil {
		return false, core.ErrDeviceDisconnected.WithCause(err)
	}
	p.sleep(2 * time.Second)

	return p.run(files, caption, hashtags)
}

// run is the observe -> classify -> act loop.
func (p *Poster) run(files []string, caption string, hashtags []string) (bool, error) {
	unknownCount := 0
	sameStateCount := 0
	var lastState ScreenState

	for step := 0; step < p.cfg.MaxSteps; step++ {
		snap := p.observe()
		state := p.profile.Classify(snap)
		logger.Info("step %d: state=%s", step+1, state)

		if state == StateShareReady {
			p.hadShareReady = true
		}
		if state == StateSuccess {
			logger.Info("post confirmed: success screen")
			return true, nil
		}
		// The app navigates home after publishing without always showing a
		// success toast. Only trust that once we actually reached the share
		// screen and our last action was the share tap.
		if state == StateProfile && p.lastActionWasShare && p.hadShareReady {
			logger.Info("post confirmed: returned to profile after share")
			return true, nil
		}

		if state == StateUnknown {
			// A hint rule can still name an unmistakable affordance on an
			// otherwise unrecognizable screen. Acting on it neither counts
			// against nor resets the unknown budget.
			if action, ok := p.profile.SuggestAction(snap); ok {
				logger.Info("unknown screen, hint suggests %s", action)
				p.performHint(snap, action)
				p.sleep(p.cfg.StepSleep.Std())
				continue
			}
			unknownCount++
			if unknownCount >= p.cfg.UnknownBudget {
				logger.Error("stuck on unknown screen for %d steps", unknownCount)
				p.dumpDiagnostics(snap, "failed_unknown")
				return false, core.NewExecutionError(core.ErrCategoryApp, "unknown_screen",
					"screen could not be classified")
			}
			p.sleep(time.Second)
			continue
		}
		unknownCount = 0

		skipAction := false
		if state == lastState {
			sameStateCount++
			if sameStateCount >= 2 {
				logger.Warn("stuck in %s for %d steps, trying fallback tap", state, sameStateCount)
				p.dumpDiagnostics(snap, "stuck_"+string(state))
				if p.fallbackTap(state) {
					p.sleep(2500 * time.Millisecond)
					after := p.profile.Classify(p.observe())
					if after == StateSuccess {
						return true, nil
					}
					lastState = after
					skipAction = true
				}
				sameStateCount = 0
			}
		} else {
			sameStateCount = 0
			lastState = state
		}
		if skipAction {
			p.sleep(p.cfg.StepSleep.Std())
			continue
		}

		// Multi-item picks run a dedicated sub-protocol the first time the
		// picker appears, then hand back to the generic loop.
		if state == StateGallery && len(files) > 1 && !p.carouselDone {
			if !p.selectCarousel(len(files)) {
				snap = p.observe()
				p.dumpDiagnostics(snap, "failed_carousel")
				return false, core.NewExecutionError(core.ErrCategoryApp, "carousel_select",
					"could not select all media items")
			}
			p.carouselDone = true
			p.sleep(p.cfg.StepSleep.Std())
			continue
		}

		action := ActionForState(state)
		acted := p.perform(snap, state, action, caption, hashtags)
		if !acted {
			acted = p.fallbackTap(state)
		}
		p.lastActionWasShare = acted && action == ActionFillAndShare && state == StateShareReady

		if p.lastActionWasShare {
			if p.waitForShared() {
				return true, nil
			}
		} else {
			p.sleep(p.cfg.StepSleep.Std())
		}
	}

	logger.Error("step budget (%d) exhausted without success", p.cfg.MaxSteps)
	p.dumpDiagnostics(p.observe(), "failed_max_steps")
	return false, core.NewExecutionError(core.ErrCategoryTimeout, "max_steps",
		"step budget exhausted without a confirmed post")
}

// observe captures a fresh snapshot. A page-source failure degrades to an
// empty snapshot, which classifies as unknown and is handled by the budget.
func (p *Poster) observe() *Snapshot {
	src, err := p.dev.PageSource()
	if err != nil {
		logger.Debug("page source: %v", err)
		return NewSnapshot("")
	}
	return NewSnapshot(src)
}

// perform executes the action for the state. Returns whether anything was
// actually done; a miss is not an error, the caller falls back.
func (p *Poster) perform(snap *Snapshot, state ScreenState, action Action, caption string, hashtags []string) bool {
	switch action {
	case ActionDone:
		return true
	case ActionFillAndShare:
		return p.fillCaptionAndShare(snap, state, caption, hashtags)
	case ActionRetry:
		return false
	default:
		intent, ok := intentForAction(action)
		if !ok {
			return false
		}
		return p.tapIntent(snap, intent)
	}
}

// performHint executes a hint-suggested action against an unknown screen.
func (p *Poster) performHint(snap *Snapshot, action Action) bool {
	if intent, ok := intentForAction(action); ok {
		return p.tapIntent(snap, intent)
	}
	return false
}

// tapIntent resolves the intent in the snapshot and taps the element center.
func (p *Poster) tapIntent(snap *Snapshot, intent Intent) bool {
	_, h := p.dev.WindowSize()
	el, ok := p.profile.Resolve(snap, intent, h)
	if !ok {
		logger.Debug("intent %s: no element found", intent)
		return false
	}
	x, y := el.Bounds.Center()
	if err := p.dev.TapAt(x, y); err != nil {
		logger.Debug("tap %s at (%d,%d): %v", intent, x, y, err)
		return false
	}
	logger.Info("tapped %s: %s", intent, el.Describe())
	return true
}

// fillCaptionAndShare types the caption (when on the composer) and taps the
// share button. On the caption screen proper, only the caption is filled;
// advancing is left to the next observation.
func (p *Poster) fillCaptionAndShare(snap *Snapshot, state ScreenState, caption string, hashtags []string) bool {
	text := captionText(caption, hashtags)
	if text != "" {
		if p.tapIntent(snap, IntentCaptionInput) {
			p.sleep(500 * time.Millisecond)
			if err := p.dev.ClearText(); err != nil {
				logger.Debug("clear caption: %v", err)
			}
			if err := p.dev.TypeText(text); err != nil {
				logger.Warn("type caption: %v", err)
			}
			p.sleep(time.Second)
		}
	}
	if state != StateShareReady {
		// Caption screen without the share affordance: do not hunt for it,
		// the next classification decides how to advance.
		return true
	}

	// Fresh snapshot: typing reflows the composer.
	snap = p.observe()
	if p.tapIntent(snap, IntentShare) {
		return true
	}
	return p.fallbackTap(StateShareReady)
}

// waitForShared blocks after the share tap, then polls for a terminal state.
// Publishing uploads media, so this is the one place a long wait is correct.
func (p *Poster) waitForShared() bool {
	p.sleep(p.cfg.ShareWait.Std())
	for i := 0; i < sharePollAttempts; i++ {
		state := p.profile.Classify(p.observe())
		if state == StateSuccess {
			logger.Info("post confirmed: success screen after share")
			return true
		}
		if state == StateProfile && p.hadShareReady {
			logger.Info("post confirmed: profile after share")
			return true
		}
		if state == StateShareReady {
			// Still on the composer: the tap did not land, hand back to the
			// main loop instead of burning the poll budget.
			return false
		}
		p.sleep(sharePollInterval)
	}
	return false
}

// selectCarousel is phase one of a multi-item post: select every item in the
// picker before composing. Completion is confirmed by a Next/Done affordance
// becoming visible. Each item gets a bounded retry with back-navigation
// recovery in between.
func (p *Poster) selectCarousel(count int) bool {
	logger.Info("carousel: selecting %d items", count)

	if !p.selectWithRetries(IntentFirstMedia) {
		return false
	}

	for i := 1; i < count; i++ {
		snap := p.observe()
		if p.tapIntent(snap, IntentAddMore) {
			p.sleep(2 * time.Second)
		}
		if !p.selectWithRetries(IntentFirstMedia) {
			logger.Error("carousel: item %d/%d could not be selected", i+1, count)
			return false
		}
		p.sleep(800 * time.Millisecond)
	}

	p.sleep(time.Second)
	snap := p.observe()
	if _, ok := p.profile.Resolve(snap, IntentNextOrSkip, 0); ok {
		logger.Info("carousel: all %d items selected", count)
		return true
	}
	logger.Warn("carousel: no next/done affordance after selection")
	return false
}

// selectWithRetries taps the intent with MaxSelectRetries attempts,
// backing out of whatever opened between attempts.
func (p *Poster) selectWithRetries(intent Intent) bool {
	for attempt := 0; attempt < p.cfg.MaxSelectRetries; attempt++ {
		if attempt > 0 {
			if err := p.dev.Back(); err != nil {
				logger.Debug("back during retry: %v", err)
			}
			p.sleep(1500 * time.Millisecond)
		}
		snap := p.observe()
		if p.tapIntent(snap, intent) {
			p.sleep(1500 * time.Millisecond)
			return true
		}
	}
	return false
}

// fallbackTap taps the first working hardcoded position for the state.
// Positions are relative so they survive resolution differences.
func (p *Poster) fallbackTap(state ScreenState) bool {
	points := p.profile.FallbackTaps[state]
	if len(points) == 0 {
		return false
	}
	w, h := p.dev.WindowSize()
	for _, pt := range points {
		x, y := int(float64(w)*pt.X), int(float64(h)*pt.Y)
		if err := p.dev.TapAt(x, y); err != nil {
			logger.Debug("fallback tap (%d,%d): %v", x, y, err)
			continue
		}
		logger.Warn("fallback tap for %s at (%d,%d)", state, x, y)
		return true
	}
	return false
}

// dismissOverlays presses back a few times to close dialogs and sheets left
// over from a previous session.
func (p *Poster) dismissOverlays(presses int) {
	for i := 0; i < presses; i++ {
		if err := p.dev.Back(); err != nil {
			return
		}
		p.sleep(800 * time.Millisecond)
	}
	p.sleep(500 * time.Millisecond)
}
