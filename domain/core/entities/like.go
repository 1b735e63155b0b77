package entities

import "time"

// Like is a like edge on a post, mirrored under the liking user's partition
// so both "who liked this post" and "what did this user like" are scannable.
type Like struct {
	UserID    string
	PostID    string
	CreatedAt time.Time
}
