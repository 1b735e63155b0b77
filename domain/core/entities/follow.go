package entities

import "time"

// FollowEdge is a directional follow relationship. Each edge is stored
// twice: once under the follower's partition for "who do I follow" and
// mirrored under the followed user's partition for "who follows me".
type FollowEdge struct {
	FollowerID string
	FollowedID string
	CreatedAt  time.Time
}
