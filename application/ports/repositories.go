// Package ports defines the interfaces between the application services and
// the infrastructure adapters. Repositories own their write protocols: every
// method that touches more than one record commits them in a single atomic
// transaction, never as independent writes.
package ports

import (
	"context"

	"pulse-backend/domain/core/entities"
	"pulse-backend/domain/events"
)

// ProfileRepository persists user profiles and their denormalized counters
type ProfileRepository interface {
	// Create writes the profile and its username reservation in one
	// transaction, both conditioned on non-existence. Fails with an
	// already-exists conflict if either the user id or the username is taken.
	Create(ctx context.Context, profile *entities.Profile) error

	// GetByID returns the profile, or nil (no error) when absent
	GetByID(ctx context.Context, userID string) (*entities.Profile, error)

	// GetByUsername resolves the username reservation and returns the owning
	// profile, or nil (no error) when absent
	GetByUsername(ctx context.Context, username string) (*entities.Profile, error)

	// Update applies the allow-listed fields, bumps updatedAt and increments
	// version, conditioned on the profile existing. Returns the updated
	// profile.
	Update(ctx context.Context, userID string, update entities.ProfileUpdate) (*entities.Profile, error)

	// UpdateCounters atomically adds the deltas to the profile's counters
	// using the store's native add primitive; never read-modify-write.
	UpdateCounters(ctx context.Context, userID string, deltas entities.CounterDeltas) error
}

// SocialGraphRepository persists directional follow edges and keeps the
// follower/following counters consistent with them
type SocialGraphRepository interface {
	// CreateFollow inserts the outgoing edge (conditioned on non-existence),
	// its mirror, and both counter increments as one transaction. Fails with
	// an already-following conflict when the edge exists; nothing partial is
	// ever committed.
	CreateFollow(ctx context.Context, edge *entities.FollowEdge) error

	// DeleteFollow removes both edges and decrements both counters as one
	// transaction, conditioned on the outgoing edge existing
	DeleteFollow(ctx context.Context, followerID, followedID string) error

	// HasFollow reports whether the outgoing edge exists; absence is not an
	// error
	HasFollow(ctx context.Context, followerID, followedID string) (bool, error)

	// ListFollowers returns the complete follower set of a user via a
	// consistent read, paginating internally to exhaustion
	ListFollowers(ctx context.Context, userID string) ([]string, error)
}

// PostRepository persists canonical posts and the author-timeline copies
type PostRepository interface {
	// Create writes the canonical post, the author-timeline copy and the
	// author's postsCount increment as one transaction. The counter update is
	// conditioned on the author profile existing.
	Create(ctx context.Context, post *entities.Post) error

	// GetByID returns the canonical post, or nil (no error) when absent
	GetByID(ctx context.Context, postID string) (*entities.Post, error)

	// ListByUser returns the author's posts newest-first
	ListByUser(ctx context.Context, userID string, limit int32) ([]*entities.Post, error)

	// UpdateLikeCount atomically adds delta to the post's likesCount
	UpdateLikeCount(ctx context.Context, postID string, delta int) error
}

// LikeRepository persists like edges and their reciprocal index
type LikeRepository interface {
	// Create inserts the like edge (conditioned on non-existence), the
	// reciprocal index entry and the likesCount increment as one transaction.
	// Fails with an already-liked conflict when the edge exists.
	Create(ctx context.Context, like *entities.Like) error

	// Delete removes both records and decrements likesCount as one
	// transaction, conditioned on the like edge existing
	Delete(ctx context.Context, userID, postID string) error

	// Exists reports whether the user has liked the post
	Exists(ctx context.Context, userID, postID string) (bool, error)
}

// FeedRepository persists fan-out feed entries and serves feed reads
type FeedRepository interface {
	// WriteEntries writes one batch of feed entries (at most the store's
	// per-request ceiling) as a single batch request and returns the number
	// written. Writes are unconditioned: redelivery overwrites identical
	// entries harmlessly.
	WriteEntries(ctx context.Context, entries []*entities.FeedEntry) (int, error)

	// ListByUser returns the user's feed entries newest-first
	ListByUser(ctx context.Context, userID string, limit int32) ([]*entities.FeedEntry, error)
}

// ConnectionRepository tracks live WebSocket connections per user
type ConnectionRepository interface {
	Save(ctx context.Context, conn *entities.Connection) error
	Delete(ctx context.Context, connectionID string) error
	ListByUser(ctx context.Context, userID string) ([]*entities.Connection, error)
}

// EventBus publishes domain events to the notification bus. Delivery to
// consumers is at-least-once; consumers must be idempotent.
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, batch []events.DomainEvent) error
}

// LivePusher delivers best-effort realtime notifications to open
// connections. Failures must never affect the calling flow.
type LivePusher interface {
	Push(ctx context.Context, conn *entities.Connection, payload []byte) error
}
