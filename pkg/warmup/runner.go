package warmup

import (
	"time"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
	"github.com/UniversalLevi/InstagramAutomation/pkg/posting"
	"github.com/UniversalLevi/InstagramAutomation/pkg/store"
)

// Device is the automation capability a warm-up session needs. The Appium
// session satisfies it.
type Device interface {
	PageSource() (string, error)
	WindowSize() (width, height int)
	TapAt(x, y int) error
	Swipe(x1, y1, x2, y2, durMs int) error
	Back() error
}

// Runner executes one warm-up plan against a live device.
type Runner struct {
	dev    Device
	st     *store.Store
	rnd    *Rand
	limits config.LimitsConfig

	sleep func(time.Duration)
}

// NewRunner creates a Runner.
func NewRunner(dev Device, st *store.Store, rnd *Rand, limits config.LimitsConfig) *Runner {
	return &Runner{dev: dev, st: st, rnd: rnd, limits: limits, sleep: time.Sleep}
}

// RunSession executes the plan, recording every performed action. The
// session ends early on the wall-clock cap or the random exit-early roll;
// both are normal outcomes, not errors.
func (r *Runner) RunSession(accountID string, plan *Plan) error {
	today := time.Now().UTC()
	if err := r.st.StartSession(accountID, today); err != nil {
		return err
	}
	start := time.Now()
	deadline := start.Add(time.Duration(plan.MaxSessionMinutes) * time.Minute)

	r.rnd.ShufflePlan(plan)
	logger.Info("warm-up session: %d planned actions for %s", len(plan.Items), accountID)

	performed := 0
	for _, item := range plan.Items {
		if time.Now().After(deadline) {
			logger.Info("session time cap reached after %d actions", performed)
			break
		}
		if performed >= plan.MaxTotalActions {
			logger.Info("session action cap reached")
			break
		}
		if r.rnd.Chance(r.limits.ExitEarlyProbability) {
			logger.Info("exiting session early after %d actions", performed)
			break
		}
		if optional(item.Action) && r.rnd.Chance(r.limits.DoNothingProbability) {
			logger.Debug("skipping optional %s", item.Action)
			continue
		}

		if err := r.execute(item); err != nil {
			logger.Warn("action %s failed: %v", item.Action, err)
			continue
		}
		performed++
		if err := r.st.RecordAction(accountID, today, string(item.Action), 1, item.Action == ActionLikePost); err != nil {
			logger.Warn("record action: %v", err)
		}
		if item.Action == ActionBioEdit {
			if err := r.st.MarkBioEditDone(accountID); err != nil {
				logger.Warn("mark bio edit: %v", err)
			}
		}

		r.sleep(r.rnd.Delay(3*time.Second, 40*time.Second))
	}

	if err := r.st.SetLastRun(accountID, today); err != nil {
		logger.Warn("set last run: %v", err)
	}
	if err := r.st.EndSession(accountID, today); err != nil {
		logger.Warn("end session: %v", err)
	}
	logger.Info("warm-up session done: %d actions in %s", performed, time.Since(start).Round(time.Second))
	return nil
}

func optional(a ActionType) bool {
	switch a {
	case ActionLikePost, ActionVisitProfile, ActionSearchHashtag, ActionIdle:
		return true
	}
	return false
}

func (r *Runner) execute(item PlanItem) error {
	logger.Info("warm-up action: %s", item.Action)
	switch item.Action {
	case ActionScrollFeed:
		return r.scrollFeed(item.ScrollSec)
	case ActionLikePost:
		return r.likePost()
	case ActionVisitProfile:
		return r.visitProfile()
	case ActionReturnHome:
		return r.dev.Back()
	case ActionGoOwnProfile:
		return r.tapMarker([]posting.Selector{{Desc: "Profile"}, {Desc: "Me"}})
	case ActionSearchHashtag:
		return r.tapMarker([]posting.Selector{{Desc: "Search"}})
	case ActionBioEdit:
		return r.bioEdit()
	case ActionIdle:
		r.sleep(r.rnd.Delay(2*time.Second, 8*time.Second))
		return nil
	}
	return nil
}

// scrollFeed swipes upward for roughly the given duration, with jittered
// swipe lengths so the scrolling does not look mechanical.
func (r *Runner) scrollFeed(seconds int) error {
	if seconds <= 0 {
		seconds = 30
	}
	w, h := r.dev.WindowSize()
	end := time.Now().Add(time.Duration(seconds) * time.Second)
	for time.Now().Before(end) {
		x := w/2 + r.rnd.IntBetween(-w/10, w/10)
		y1 := h * 3 / 4
		y2 := h/4 + r.rnd.IntBetween(0, h/10)
		if err := r.dev.Swipe(x, y1, x, y2, r.rnd.IntBetween(300, 700)); err != nil {
			return err
		}
		r.sleep(r.rnd.Delay(2*time.Second, 5*time.Second))
	}
	return nil
}

// likePost taps the first visible like button; a double tap on the media is
// the fallback when the button is not found.
func (r *Runner) likePost() error {
	if err := r.tapMarker([]posting.Selector{{Desc: "Like"}, {ID: "like"}}); err == nil {
		return nil
	}
	w, h := r.dev.WindowSize()
	x, y := w/2, h/3
	if err := r.dev.TapAt(x, y); err != nil {
		return err
	}
	r.sleep(150 * time.Millisecond)
	return r.dev.TapAt(x, y)
}

func (r *Runner) visitProfile() error {
	return r.tapMarker([]posting.Selector{
		{ID: "profile_name", Clickable: true},
		{ID: "row_feed_photo_profile_name"},
		{Desc: "Profile picture"},
	})
}

// bioEdit opens the edit-profile screen and backs out. The actual text edit
// is left to the operator; the visit itself is the warm-up signal.
func (r *Runner) bioEdit() error {
	if err := r.tapMarker([]posting.Selector{{Desc: "Profile"}, {Desc: "Me"}}); err != nil {
		return err
	}
	r.sleep(2 * time.Second)
	if err := r.tapMarker([]posting.Selector{{Text: "Edit profile"}, {Desc: "Edit profile"}}); err != nil {
		return err
	}
	r.sleep(r.rnd.Delay(3*time.Second, 8*time.Second))
	return r.dev.Back()
}

// tapMarker observes the screen and taps the first element matching the
// selector list.
func (r *Runner) tapMarker(selectors []posting.Selector) error {
	src, err := r.dev.PageSource()
	if err != nil {
		return err
	}
	snap := posting.NewSnapshot(src)
	el, ok := snap.Find(selectors)
	if !ok {
		return errNotFound(selectors)
	}
	x, y := el.Bounds.Center()
	return r.dev.TapAt(x, y)
}

type notFoundError struct{ desc string }

func (e notFoundError) Error() string { return "no element matching " + e.desc }

func errNotFound(selectors []posting.Selector) error {
	desc := ""
	if len(selectors) > 0 {
		desc = selectors[0].Describe()
	}
	return notFoundError{desc: desc}
}
