package entities

import "time"

// Post is the canonical post record. Author identity fields are a snapshot
// taken at creation time; they are not kept in sync with later profile edits.
type Post struct {
	PostID        string
	UserID        string
	Username      string
	DisplayName   string
	Avatar        string
	Content       string
	ImageURL      string
	LikesCount    int
	CommentsCount int
	CreatedAt     time.Time
	// CreatedAtMs is the same instant as CreatedAt in epoch milliseconds,
	// used as the sort-key component for chronological listings.
	CreatedAtMs int64
}
