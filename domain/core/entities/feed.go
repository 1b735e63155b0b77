package entities

import "time"

// FeedEntry is an immutable denormalized copy of a post placed in one
// follower's feed partition by fan-out. Entries are written once and never
// updated; the counters are a snapshot from creation time.
type FeedEntry struct {
	FollowerID    string
	PostID        string
	AuthorID      string
	Username      string
	DisplayName   string
	Avatar        string
	Content       string
	ImageURL      string
	LikesCount    int
	CommentsCount int
	CreatedAt     time.Time
	CreatedAtMs   int64
}
