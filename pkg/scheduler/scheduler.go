// Package scheduler polls the post queue and drives posting attempts,
// enforcing one attempt at a time across the whole process.
package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
	"github.com/UniversalLevi/InstagramAutomation/pkg/device"
	"github.com/UniversalLevi/InstagramAutomation/pkg/driver/appium"
	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
	"github.com/UniversalLevi/InstagramAutomation/pkg/posting"
	"github.com/UniversalLevi/InstagramAutomation/pkg/queue"
	"github.com/UniversalLevi/InstagramAutomation/pkg/store"
)

// Service owns the posting gate and the background poll loop.
type Service struct {
	cfg     *config.Config
	q       *queue.Queue
	st      *store.Store
	profile *posting.Profile

	// gate serializes posting attempts. TryLock, never Lock: a caller that
	// finds the gate held gets an immediate busy error instead of queueing
	// up behind a multi-minute UI run.
	gate sync.Mutex

	// attempt runs one posting attempt; swapped out in tests.
	attempt func(item *queue.PostItem) (bool, error)

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates the service. The profile is resolved from the configured
// platform, with the app package overridable in config.
func New(cfg *config.Config, q *queue.Queue, st *store.Store) (*Service, error) {
	profile, ok := posting.ProfileFor(cfg.App.Platform)
	if !ok {
		return nil, core.ErrInvalidConfig.WithMessage(
			fmt.Sprintf("unknown platform %q", cfg.App.Platform))
	}
	if cfg.App.Package != "" {
		profile.Package = cfg.App.Package
	}

	s := &Service{cfg: cfg, q: q, st: st, profile: profile, stop: make(chan struct{})}
	s.attempt = s.runAttempt
	return s, nil
}

// Start launches the background poll loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.cfg.Posting.CheckInterval.Std())
		defer ticker.Stop()
		logger.Info("scheduler started, checking every %s", s.cfg.Posting.CheckInterval.Std())
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.checkOnce()
			}
		}
	}()
}

// Stop shuts down the poll loop. A posting attempt already in flight runs to
// completion; only the polling stops.
func (s *Service) Stop() {
	close(s.stop)
	s.wg.Wait()
	logger.Info("scheduler stopped")
}

// checkOnce publishes the next due post, if any.
func (s *Service) checkOnce() {
	item, err := s.q.Next(s.cfg.Account)
	if err != nil {
		logger.Error("queue poll: %v", err)
		return
	}
	if item == nil {
		return
	}
	if err := s.PostNow(item.ID); err != nil {
		if errors.Is(err, core.ErrPostingBusy) {
			logger.Debug("post %d deferred, gate busy", item.ID)
			return
		}
		logger.Error("post %d failed: %v", item.ID, err)
	}
}

// PostNow runs the posting attempt for a queued post immediately. Exactly
// one attempt runs at a time; a second caller gets ErrPostingBusy without
// blocking. The post always ends in posted or failed status, never a stuck
// posting status.
func (s *Service) PostNow(id int64) error {
	if !s.gate.TryLock() {
		return core.ErrPostingBusy
	}
	defer s.gate.Unlock()

	item, err := s.q.Get(id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("post %d not found", id)
	}
	if item.Status == queue.StatusPosted {
		return fmt.Errorf("post %d already posted", id)
	}

	if in, err := s.st.InCooldown(item.AccountID); err != nil {
		return err
	} else if in {
		return core.ErrAccountCooldown
	}

	if err := s.q.UpdateStatus(id, queue.StatusPosting, ""); err != nil {
		return err
	}

	ok, postErr := s.attempt(item)
	if ok {
		if err := s.q.MarkPosted(id, true, ""); err != nil {
			logger.Error("mark posted: %v", err)
		}
		logger.Info("post %d published", id)
		return nil
	}

	msg := friendlyError(postErr)
	if err := s.q.MarkPosted(id, false, msg); err != nil {
		logger.Error("mark failed: %v", err)
	}
	if postErr == nil {
		postErr = fmt.Errorf("%s", msg)
	}
	return postErr
}

// runAttempt builds a fresh device session for one attempt and tears it down
// after. Sessions are never reused across attempts: a wedged previous
// attempt must not poison the next one.
func (s *Service) runAttempt(item *queue.PostItem) (bool, error) {
	adb, err := device.New(s.cfg.Device.AdbSerial)
	if err != nil {
		return false, core.ErrDeviceDisconnected.WithCause(err)
	}

	session, err := appium.NewSession(appium.Options{
		ServerURL:  s.cfg.Device.AppiumURL,
		AppPackage: s.profile.Package,
		AdbSerial:  adb.Serial(),
		Adb:        adb,
	})
	if err != nil {
		return false, err
	}
	defer session.Close()

	pusher := device.NewMediaPusher(adb, s.profile.DeviceMediaDir)
	poster := posting.NewPoster(session, pusher, s.profile, s.cfg.Posting, s.cfg.ArtifactsDir())

	// The posting loop has no cancellation of its own; the watchdog bounds
	// it by force-closing the session, which fails the in-flight driver
	// call and lets the loop run out its budgets on a dead device.
	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := poster.Post(item.FilePaths, item.Caption, item.Hashtags)
		done <- result{ok, err}
	}()

	timeout := s.cfg.Posting.AttemptTimeout.Std()
	select {
	case r := <-done:
		return r.ok, r.err
	case <-time.After(timeout):
		logger.Error("attempt exceeded %s, tearing down session", timeout)
		session.Close()
		<-done
		return false, core.ErrAttemptTimeout
	}
}

// friendlyError maps an attempt error to the operator-facing message stored
// on the failed post.
func friendlyError(err error) string {
	if err == nil {
		return "posting failed"
	}
	var execErr *core.ExecutionError
	if !errors.As(err, &execErr) {
		return err.Error()
	}
	switch execErr.Category {
	case core.ErrCategoryConnection:
		return "device or automation server unreachable, check ADB and Appium"
	case core.ErrCategoryTimeout:
		return "attempt timed out, the app may have changed its screens"
	case core.ErrCategoryPrecondition:
		return "media could not be staged on the device"
	case core.ErrCategoryBusy:
		return "another posting attempt was already running"
	case core.ErrCategoryApp:
		return "the app did not reach the share screen: " + execErr.Message
	default:
		return execErr.Message
	}
}
