package queue

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS post_queue (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id     TEXT NOT NULL,
    media_type     TEXT NOT NULL,
    file_paths     TEXT NOT NULL,
    caption        TEXT NOT NULL DEFAULT '',
    hashtags       TEXT NOT NULL DEFAULT '[]',
    scheduled_time TEXT,
    status         TEXT NOT NULL DEFAULT 'pending',
    created_at     TEXT NOT NULL,
    posted_at      TEXT,
    error_message  TEXT
);
CREATE INDEX IF NOT EXISTS idx_post_queue_account_status
    ON post_queue(account_id, status);
`

// Queue is the SQLite-backed post queue. Safe for concurrent use; SQLite
// serializes writers underneath database/sql.
type Queue struct {
	db        *sql.DB
	mediaRoot string
}

// Open opens (creating if needed) the queue database and media directories.
// mediaRoot holds queue/, posted/ and failed/ subdirectories; queued files
// are moved between them as their post resolves.
func Open(dbPath, mediaRoot string) (*Queue, error) {
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

	for _, d := range []string{"queue", "posted", "failed"} {
		if err := os.MkdirAll(filepath.Join(mediaRoot, d), 0o755); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Queue{db: db, mediaRoot: mediaRoot}, nil
}

// Close closes the database.
func (q *Queue) Close() error {
	return q.db.Close()
}

// Add inserts a new post. Every media file must exist locally; a queued post
// pointing at a missing file would fail only at publish time, hours later.
func (q *Queue) Add(item *PostItem) (*PostItem, error) {
	if !item.MediaType.Valid() {
		return nil, fmt.Errorf("invalid media type %q", item.MediaType)
	}
	if len(item.FilePaths) == 0 {
		return nil, fmt.Errorf("post has no media files")
	}
	for _, fp := range item.FilePaths {
		if _, err := os.Stat(fp); err != nil {
			return nil, fmt.Errorf("media file not found: %s", fp)
		}
	}

	status := StatusPending
	if item.ScheduledAt != nil {
		status = StatusScheduled
	}
	now := time.Now().UTC()

	files, _ := json.Marshal(item.FilePaths)
	tags, _ := json.Marshal(item.Hashtags)

	res, err := q.db.Exec(`
        INSERT INTO post_queue
        (account_id, media_type, file_paths, caption, hashtags, scheduled_time, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.AccountID, string(item.MediaType), string(files), item.Caption,
		string(tags), formatTimePtr(item.ScheduledAt), string(status), formatTime(now))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	out := *item
	out.ID = id
	out.Status = status
	out.CreatedAt = now
	logger.Info("queued post %d: %s, %d file(s)", id, item.MediaType, len(item.FilePaths))
	return &out, nil
}

// Get returns the post with the given id, or nil when absent.
func (q *Queue) Get(id int64) (*PostItem, error) {
	row := q.db.QueryRow(selectCols+" WHERE id = ?", id)
	item, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return item, err
}

// Next returns the oldest due post for the account (any account when empty),
// or nil when nothing is ready.
func (q *Queue) Next(accountID string) (*PostItem, error) {
	now := formatTime(time.Now().UTC())
	query := selectCols + `
        WHERE status IN ('pending', 'scheduled')
        AND (scheduled_time IS NULL OR scheduled_time <= ?)`
	args := []interface{}{now}
	if accountID != "" {
		query += " AND account_id = ?"
		args = append(args, accountID)
	}
	query += " ORDER BY scheduled_time IS NULL, scheduled_time ASC, created_at ASC LIMIT 1"

	item, err := scanPost(q.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return item, err
}

// ListFilter narrows List results; zero values mean no constraint.
type ListFilter struct {
	AccountID string
	Status    PostStatus
	MediaType MediaType
}

// List returns posts newest first.
func (q *Queue) List(f ListFilter) ([]*PostItem, error) {
	query := selectCols + " WHERE 1=1"
	var args []interface{}
	if f.AccountID != "" {
		query += " AND account_id = ?"
		args = append(args, f.AccountID)
	}
	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, string(f.Status))
	}
	if f.MediaType != "" {
		query += " AND media_type = ?"
		args = append(args, string(f.MediaType))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := q.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*PostItem
	for rows.Next() {
		item, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a post. A posted transition stamps posted_at and
// clears any old error; a failed one records the error message.
func (q *Queue) UpdateStatus(id int64, status PostStatus, errMsg string) error {
	var err error
	switch status {
	case StatusPosted:
		_, err = q.db.Exec(
			"UPDATE post_queue SET status = ?, posted_at = ?, error_message = NULL WHERE id = ?",
			string(status), formatTime(time.Now().UTC()), id)
	case StatusFailed:
		_, err = q.db.Exec(
			"UPDATE post_queue SET status = ?, error_message = ? WHERE id = ?",
			string(status), errMsg, id)
	default:
		_, err = q.db.Exec(
			"UPDATE post_queue SET status = ?, error_message = NULL WHERE id = ?",
			string(status), id)
	}
	if err == nil {
		logger.Info("post %d -> %s", id, status)
	}
	return err
}

// MarkPosted finalizes an attempt: status update plus moving the media files
// into posted/ or failed/ so the queue directory only holds live media.
func (q *Queue) MarkPosted(id int64, success bool, errMsg string) error {
	item, err := q.Get(id)
	if err != nil || item == nil {
		return err
	}

	status, dir := StatusPosted, "posted"
	if !success {
		status, dir = StatusFailed, "failed"
	}
	if err := q.UpdateStatus(id, status, errMsg); err != nil {
		return err
	}

	target := filepath.Join(q.mediaRoot, dir)
	for _, fp := range item.FilePaths {
		if _, err := os.Stat(fp); err != nil {
			continue
		}
		if err := os.Rename(fp, filepath.Join(target, filepath.Base(fp))); err != nil {
			logger.Warn("could not move %s to %s: %v", fp, dir, err)
		}
	}
	return nil
}

// Delete removes a post and its queued media files.
func (q *Queue) Delete(id int64) (bool, error) {
	item, err := q.Get(id)
	if err != nil {
		return false, err
	}

	res, err := q.db.Exec("DELETE FROM post_queue WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}

	if item != nil {
		for _, fp := range item.FilePaths {
			if err := os.Remove(fp); err != nil && !os.IsNotExist(err) {
				logger.Warn("could not delete %s: %v", fp, err)
			}
		}
	}
	return true, nil
}

const selectCols = `SELECT id, account_id, media_type, file_paths, caption,
    hashtags, scheduled_time, status, created_at, posted_at, error_message
    FROM post_queue`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(s scanner) (*PostItem, error) {
	var (
		item                           PostItem
		files, tags                    string
		scheduled, createdAt, postedAt sql.NullString
		errMsg                         sql.NullString
		mediaType, status              string
	)
	err := s.Scan(&item.ID, &item.AccountID, &mediaType, &files, &item.Caption,
		&tags, &scheduled, &status, &createdAt, &postedAt, &errMsg)
	if err != nil {
		return nil, err
	}

	item.MediaType = MediaType(mediaType)
	item.Status = PostStatus(status)
	item.ErrorMsg = errMsg.String
	if err := json.Unmarshal([]byte(files), &item.FilePaths); err != nil {
		return nil, fmt.Errorf("post %d: corrupt file_paths: %w", item.ID, err)
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &item.Hashtags); err != nil {
			return nil, fmt.Errorf("post %d: corrupt hashtags: %w", item.ID, err)
		}
	}
	item.ScheduledAt = parseTimePtr(scheduled)
	if t := parseTimePtr(createdAt); t != nil {
		item.CreatedAt = *t
	}
	item.PostedAt = parseTimePtr(postedAt)
	return &item, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTimePtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
