// Package queue manages the persistent post queue backed by SQLite.
package queue

import "time"

// MediaType is the kind of post.
type MediaType string

const (
	MediaPhoto    MediaType = "photo"
	MediaVideo    MediaType = "video"
	MediaCarousel MediaType = "carousel"
)

// Valid reports whether the media type is one of the known kinds.
func (m MediaType) Valid() bool {
	switch m {
	case MediaPhoto, MediaVideo, MediaCarousel:
		return true
	}
	return false
}

// PostStatus is the queue lifecycle state of a post.
type PostStatus string

const (
	StatusPending   PostStatus = "pending"
	StatusScheduled PostStatus = "scheduled"
	StatusPosting   PostStatus = "posting"
	StatusPosted    PostStatus = "posted"
	StatusFailed    PostStatus = "failed"
)

// PostItem is one queued post.
type PostItem struct {
	ID          int64      `json:"id"`
	AccountID   string     `json:"accountId"`
	MediaType   MediaType  `json:"mediaType"`
	FilePaths   []string   `json:"filePaths"`
	Caption     string     `json:"caption"`
	Hashtags    []string   `json:"hashtags"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Status      PostStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	ErrorMsg    string     `json:"errorMessage,omitempty"`
}

// Due reports whether the post is ready to publish at the given time.
func (p *PostItem) Due(now time.Time) bool {
	if p.Status != StatusPending && p.Status != StatusScheduled {
		return false
	}
	return p.ScheduledAt == nil || !p.ScheduledAt.After(now)
}
