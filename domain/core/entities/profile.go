package entities

import "time"

// Profile is a user's profile record, including the denormalized counters
// maintained by the follow, post and like write protocols.
type Profile struct {
	UserID         string
	Username       string
	DisplayName    string
	Bio            string
	Avatar         string
	FollowersCount int
	FollowingCount int
	PostsCount     int
	IsVerified     bool
	IsPrivate      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

// ProfileUpdate carries the mutable subset of profile fields. Nil fields are
// left untouched; everything outside this allow-list cannot be changed
// through an update.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	Avatar      *string
	IsPrivate   *bool
}

// IsEmpty reports whether the update would change nothing
func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Bio == nil && u.Avatar == nil && u.IsPrivate == nil
}

// CounterDeltas describes an atomic adjustment of a profile's counters.
// Zero-valued fields are not touched.
type CounterDeltas struct {
	Followers int
	Following int
	Posts     int
}

// IsZero reports whether no counter would be adjusted
func (d CounterDeltas) IsZero() bool {
	return d.Followers == 0 && d.Following == 0 && d.Posts == 0
}
