// Package store persists per-account automation state: run history, daily
// action counters, and health cooldowns.
package store

import (
	"database/sql"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
)

const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS account (
    account_id     TEXT PRIMARY KEY,
    display_name   TEXT,
    device_serial  TEXT,
    first_run_date TEXT NOT NULL,
    last_run_date  TEXT,
    bio_edit_done  INTEGER NOT NULL DEFAULT 0,
    created_at     TEXT NOT NULL,
    updated_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS action_history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id TEXT NOT NULL,
    run_date   TEXT NOT NULL,
    action_type TEXT NOT NULL,
    count      INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_action_history_account_date
    ON action_history(account_id, run_date);

CREATE TABLE IF NOT EXISTS daily_totals (
    account_id         TEXT NOT NULL,
    run_date           TEXT NOT NULL,
    total_actions      INTEGER NOT NULL DEFAULT 0,
    likes_count        INTEGER NOT NULL DEFAULT 0,
    session_started_at TEXT,
    session_ended_at   TEXT,
    PRIMARY KEY (account_id, run_date)
);

CREATE TABLE IF NOT EXISTS health (
    account_id          TEXT PRIMARY KEY,
    cooldown_until_date TEXT,
    last_incident_at    TEXT,
    incident_type       TEXT,
    created_at          TEXT NOT NULL,
    updated_at          TEXT NOT NULL
);
`

// Account is one managed account's persistent row.
type Account struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"displayName,omitempty"`
	DeviceSerial string     `json:"deviceSerial,omitempty"`
	FirstRunDate time.Time  `json:"firstRunDate"`
	LastRunDate  *time.Time `json:"lastRunDate,omitempty"`
	BioEditDone  bool       `json:"bioEditDone"`
}

// AgeDays returns whole days since the account's first run.
func (a *Account) AgeDays(today time.Time) int {
	return int(today.Sub(a.FirstRunDate).Hours() / 24)
}

// Store is the SQLite-backed state store.
type Store struct {
	db *sql.DB
	// randInt is swapped out in tests for deterministic cooldowns.
	randInt func(min, max int) int
}

// Open opens (creating if needed) the state database.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{
		db: db,
		randInt: func(min, max int) int {
			if max <= min {
				return min
			}
			return min + rand.Intn(max-min+1)
		},
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureAccount returns the account row, creating it with today as the first
// run date when absent.
func (s *Store) EnsureAccount(id, deviceSerial string) (*Account, error) {
	acct, err := s.GetAccount(id)
	if err != nil {
		return nil, err
	}
	if acct != nil {
		return acct, nil
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(`
        INSERT INTO account (account_id, device_serial, first_run_date, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`,
		id, deviceSerial, now.Format(dateLayout),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	logger.Info("registered account %s (first run %s)", id, now.Format(dateLayout))
	return s.GetAccount(id)
}

// GetAccount returns the account row, or nil when absent.
func (s *Store) GetAccount(id string) (*Account, error) {
	row := s.db.QueryRow(`
        SELECT account_id, display_name, device_serial, first_run_date, last_run_date, bio_edit_done
        FROM account WHERE account_id = ?`, id)

	var (
		a               Account
		display, serial sql.NullString
		firstRun        string
		lastRun         sql.NullString
		bioDone         int
	)
	err := row.Scan(&a.ID, &display, &serial, &firstRun, &lastRun, &bioDone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.DisplayName = display.String
	a.DeviceSerial = serial.String
	a.BioEditDone = bioDone != 0
	if t, err := time.Parse(dateLayout, firstRun); err == nil {
		a.FirstRunDate = t
	}
	if lastRun.Valid {
		if t, err := time.Parse(dateLayout, lastRun.String); err == nil {
			a.LastRunDate = &t
		}
	}
	return &a, nil
}

// SetLastRun stamps the account's last run date.
func (s *Store) SetLastRun(id string, day time.Time) error {
	_, err := s.db.Exec(
		"UPDATE account SET last_run_date = ?, updated_at = ? WHERE account_id = ?",
		day.Format(dateLayout), time.Now().UTC().Format(time.RFC3339), id)
	return err
}

// MarkBioEditDone records the one-time bio edit.
func (s *Store) MarkBioEditDone(id string) error {
	_, err := s.db.Exec(
		"UPDATE account SET bio_edit_done = 1, updated_at = ? WHERE account_id = ?",
		time.Now().UTC().Format(time.RFC3339), id)
	return err
}

// RecordAction appends to the action history and bumps the day's counters.
// Like actions additionally count toward the likes cap.
func (s *Store) RecordAction(accountID string, day time.Time, actionType string, count int, isLike bool) error {
	date := day.Format(dateLayout)
	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := s.db.Exec(`
        INSERT INTO action_history (account_id, run_date, action_type, count, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		accountID, date, actionType, count, now); err != nil {
		return err
	}

	likes := 0
	if isLike {
		likes = count
	}
	_, err := s.db.Exec(`
        INSERT INTO daily_totals (account_id, run_date, total_actions, likes_count)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(account_id, run_date) DO UPDATE SET
            total_actions = total_actions + excluded.total_actions,
            likes_count = likes_count + excluded.likes_count`,
		accountID, date, count, likes)
	return err
}

// DailyTotals returns the day's action and like counts.
func (s *Store) DailyTotals(accountID string, day time.Time) (actions, likes int, err error) {
	row := s.db.QueryRow(
		"SELECT total_actions, likes_count FROM daily_totals WHERE account_id = ? AND run_date = ?",
		accountID, day.Format(dateLayout))
	err = row.Scan(&actions, &likes)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	return actions, likes, err
}

// StartSession stamps the session start for the day.
func (s *Store) StartSession(accountID string, day time.Time) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
        INSERT INTO daily_totals (account_id, run_date, session_started_at)
        VALUES (?, ?, ?)
        ON CONFLICT(account_id, run_date) DO UPDATE SET
            session_started_at = COALESCE(daily_totals.session_started_at, excluded.session_started_at)`,
		accountID, day.Format(dateLayout), now)
	return err
}

// EndSession stamps the session end for the day.
func (s *Store) EndSession(accountID string, day time.Time) error {
	_, err := s.db.Exec(
		"UPDATE daily_totals SET session_ended_at = ? WHERE account_id = ? AND run_date = ?",
		time.Now().UTC().Format(time.RFC3339), accountID, day.Format(dateLayout))
	return err
}

// SetCooldown benches the account for a random number of days in
// [minDays, maxDays] and records the incident. Returns the end date.
func (s *Store) SetCooldown(accountID string, minDays, maxDays int, incident string) (time.Time, error) {
	if incident == "" {
		incident = "block"
	}
	days := s.randInt(minDays, maxDays)
	until := time.Now().UTC().AddDate(0, 0, days)
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.Exec(`
        INSERT INTO health (account_id, cooldown_until_date, last_incident_at, incident_type, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(account_id) DO UPDATE SET
            cooldown_until_date = excluded.cooldown_until_date,
            last_incident_at = excluded.last_incident_at,
            incident_type = excluded.incident_type,
            updated_at = excluded.updated_at`,
		accountID, until.Format(dateLayout), now, incident, now, now)
	if err != nil {
		return time.Time{}, err
	}
	logger.Warn("account %s in cooldown until %s (%s)", accountID, until.Format(dateLayout), incident)
	return until, nil
}

// CooldownUntil returns the active cooldown end date, or nil when none.
// An expired row reads as no cooldown; it is not eagerly cleared.
func (s *Store) CooldownUntil(accountID string) (*time.Time, error) {
	row := s.db.QueryRow(
		"SELECT cooldown_until_date FROM health WHERE account_id = ?", accountID)
	var until sql.NullString
	err := row.Scan(&until)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !until.Valid || until.String == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, until.String)
	if err != nil {
		return nil, nil
	}
	today, _ := time.Parse(dateLayout, time.Now().UTC().Format(dateLayout))
	if t.Before(today) {
		return nil, nil
	}
	return &t, nil
}

// InCooldown reports whether the account is currently benched.
func (s *Store) InCooldown(accountID string) (bool, error) {
	until, err := s.CooldownUntil(accountID)
	return until != nil, err
}

// ClearCooldown lifts the cooldown.
func (s *Store) ClearCooldown(accountID string) error {
	_, err := s.db.Exec(
		"UPDATE health SET cooldown_until_date = NULL, updated_at = ? WHERE account_id = ?",
		time.Now().UTC().Format(time.RFC3339), accountID)
	return err
}
