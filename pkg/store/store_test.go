package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnsureAccountIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.EnsureAccount("acct1", "serial123")
	if err != nil {
		t.Fatalf("EnsureAccount() error: %v", err)
	}
	if first.ID != "acct1" || first.DeviceSerial != "serial123" {
		t.Fatalf("account = %+v", first)
	}
	if first.FirstRunDate.IsZero() {
		t.Fatal("first run date not set")
	}

	again, err := s.EnsureAccount("acct1", "other-serial")
	if err != nil {
		t.Fatal(err)
	}
	if !again.FirstRunDate.Equal(first.FirstRunDate) || again.DeviceSerial != "serial123" {
		t.Errorf("second EnsureAccount rewrote the row: %+v", again)
	}
}

func TestRecordActionCounters(t *testing.T) {
	s := newTestStore(t)
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	if _, err := s.EnsureAccount("acct1", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAction("acct1", day, "scroll_feed", 3, false); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAction("acct1", day, "like_post", 2, true); err != nil {
		t.Fatal(err)
	}

	actions, likes, err := s.DailyTotals("acct1", day)
	if err != nil {
		t.Fatal(err)
	}
	if actions != 5 || likes != 2 {
		t.Errorf("totals = %d actions, %d likes, want 5 and 2", actions, likes)
	}

	// A different day starts clean.
	actions, likes, err = s.DailyTotals("acct1", day.AddDate(0, 0, 1))
	if err != nil || actions != 0 || likes != 0 {
		t.Errorf("next day totals = %d, %d, %v, want zeros", actions, likes, err)
	}
}

func TestCooldownLifecycle(t *testing.T) {
	s := newTestStore(t)
	s.randInt = func(min, max int) int {
		if min != 3 || max != 7 {
			t.Errorf("cooldown range %d-%d, want 3-7", min, max)
		}
		return 5
	}

	until, err := s.SetCooldown("acct1", 3, 7, "soft_block")
	if err != nil {
		t.Fatalf("SetCooldown() error: %v", err)
	}
	wantDay := time.Now().UTC().AddDate(0, 0, 5).Format(dateLayout)
	if until.Format(dateLayout) != wantDay {
		t.Errorf("cooldown until %s, want %s", until.Format(dateLayout), wantDay)
	}

	in, err := s.InCooldown("acct1")
	if err != nil || !in {
		t.Fatalf("InCooldown() = %v, %v, want true", in, err)
	}

	if err := s.ClearCooldown("acct1"); err != nil {
		t.Fatal(err)
	}
	if in, _ := s.InCooldown("acct1"); in {
		t.Error("still in cooldown after clear")
	}
}

func TestCooldownExpired(t *testing.T) {
	s := newTestStore(t)
	s.randInt = func(min, max int) int { return -10 } // ends in the past

	if _, err := s.SetCooldown("acct1", -10, -10, ""); err != nil {
		t.Fatal(err)
	}
	if in, _ := s.InCooldown("acct1"); in {
		t.Error("expired cooldown still reported active")
	}
}

func TestCooldownUnknownAccount(t *testing.T) {
	s := newTestStore(t)
	if in, err := s.InCooldown("nobody"); err != nil || in {
		t.Errorf("InCooldown(nobody) = %v, %v, want false", in, err)
	}
}

func TestAccountAgeAndLastRun(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.EnsureAccount("acct1", ""); err != nil {
		t.Fatal(err)
	}

	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	if err := s.SetLastRun("acct1", day); err != nil {
		t.Fatal(err)
	}
	acct, err := s.GetAccount("acct1")
	if err != nil {
		t.Fatal(err)
	}
	if acct.LastRunDate == nil || acct.LastRunDate.Format(dateLayout) != "2026-08-27" {
		t.Errorf("last run = %v", acct.LastRunDate)
	}

	if err := s.MarkBioEditDone("acct1"); err != nil {
		t.Fatal(err)
	}
	acct, _ = s.GetAccount("acct1")
	if !acct.BioEditDone {
		t.Error("bio edit flag not persisted")
	}
}
