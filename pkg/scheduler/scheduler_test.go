package scheduler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
	"github.com/UniversalLevi/InstagramAutomation/pkg/queue"
	"github.com/UniversalLevi/InstagramAutomation/pkg/store"
)

func newTestService(t *testing.T) (*Service, *queue.Queue, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()

	q, err := queue.Open(filepath.Join(dir, "q.db"), filepath.Join(dir, "media"))
	if err != nil {
		t.Fatal(err)
	}
	st, err := store.Open(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { q.Close(); st.Close() })

	if _, err := st.EnsureAccount("acct1", ""); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Account = "acct1"
	cfg.DataDir = dir

	s, err := New(cfg, q, st)
	if err != nil {
		t.Fatal(err)
	}
	return s, q, st, dir
}

var mediaSeq int

func queuePost(t *testing.T, q *queue.Queue, dir string) *queue.PostItem {
	t.Helper()
	mediaSeq++
	fp := filepath.Join(dir, "media", "queue", fmt.Sprintf("m%d.jpg", mediaSeq))
	if err := os.WriteFile(fp, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	item, err := q.Add(&queue.PostItem{
		AccountID: "acct1",
		MediaType: queue.MediaPhoto,
		FilePaths: []string{fp},
	})
	if err != nil {
		t.Fatal(err)
	}
	return item
}

func TestPostNowSuccess(t *testing.T) {
	s, q, _, dir := newTestService(t)
	item := queuePost(t, q, dir)

	s.attempt = func(*queue.PostItem) (bool, error) { return true, nil }
	if err := s.PostNow(item.ID); err != nil {
		t.Fatalf("PostNow() error: %v", err)
	}

	got, _ := q.Get(item.ID)
	if got.Status != queue.StatusPosted {
		t.Errorf("status = %s, want posted", got.Status)
	}
}

func TestPostNowFailureNeverLeavesPostingStatus(t *testing.T) {
	s, q, _, dir := newTestService(t)
	item := queuePost(t, q, dir)

	s.attempt = func(*queue.PostItem) (bool, error) {
		return false, core.ErrAttemptTimeout
	}
	if err := s.PostNow(item.ID); err == nil {
		t.Fatal("PostNow() succeeded on a failed attempt")
	}

	got, _ := q.Get(item.ID)
	if got.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	if got.ErrorMsg == "" {
		t.Error("failed post has no error message")
	}
}

// Only one attempt may run at a time; a concurrent caller fails fast with
// busy instead of queueing behind a multi-minute UI run.
func TestPostNowMutualExclusion(t *testing.T) {
	s, q, _, dir := newTestService(t)
	first := queuePost(t, q, dir)
	second := queuePost(t, q, dir)

	started := make(chan struct{})
	release := make(chan struct{})
	s.attempt = func(*queue.PostItem) (bool, error) {
		close(started)
		<-release
		return true, nil
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.PostNow(first.ID) }()
	<-started

	if err := s.PostNow(second.ID); !errors.Is(err, core.ErrPostingBusy) {
		t.Errorf("concurrent PostNow() = %v, want ErrPostingBusy", err)
	}

	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("first PostNow() error: %v", err)
	}

	// Gate is free again.
	s.attempt = func(*queue.PostItem) (bool, error) { return true, nil }
	if err := s.PostNow(second.ID); err != nil {
		t.Errorf("PostNow() after release: %v", err)
	}
}

func TestPostNowCooldownBlocks(t *testing.T) {
	s, q, st, dir := newTestService(t)
	item := queuePost(t, q, dir)

	if _, err := st.SetCooldown("acct1", 3, 7, "soft_block"); err != nil {
		t.Fatal(err)
	}
	s.attempt = func(*queue.PostItem) (bool, error) {
		t.Fatal("attempt ran for an account in cooldown")
		return false, nil
	}

	if err := s.PostNow(item.ID); !errors.Is(err, core.ErrAccountCooldown) {
		t.Fatalf("PostNow() = %v, want ErrAccountCooldown", err)
	}
	got, _ := q.Get(item.ID)
	if got.Status != queue.StatusPending {
		t.Errorf("status = %s, want pending (attempt never started)", got.Status)
	}
}

func TestPostNowUnknownPost(t *testing.T) {
	s, _, _, _ := newTestService(t)
	if err := s.PostNow(12345); err == nil {
		t.Fatal("PostNow() succeeded for a missing post")
	}
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{core.ErrDeviceDisconnected, "device or automation server unreachable, check ADB and Appium"},
		{core.ErrAttemptTimeout, "attempt timed out, the app may have changed its screens"},
		{core.ErrPushFailed, "media could not be staged on the device"},
		{nil, "posting failed"},
	}
	for _, tt := range tests {
		if got := friendlyError(tt.err); got != tt.want {
			t.Errorf("friendlyError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
