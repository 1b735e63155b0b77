// Package fixtures provides test data builders with sensible defaults.
package fixtures

import (
	"time"

	"pulse-backend/domain/core/entities"
	"pulse-backend/domain/events"

	"github.com/google/uuid"
)

// ProfileBuilder helps create test profiles with default values
type ProfileBuilder struct {
	profile entities.Profile
}

func NewProfileBuilder() *ProfileBuilder {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &ProfileBuilder{
		profile: entities.Profile{
			UserID:      uuid.New().String(),
			Username:    "testuser",
			DisplayName: "Test User",
			Bio:         "test bio",
			CreatedAt:   now,
			UpdatedAt:   now,
			Version:     1,
		},
	}
}

func (b *ProfileBuilder) WithUserID(userID string) *ProfileBuilder {
	b.profile.UserID = userID
	return b
}

func (b *ProfileBuilder) WithUsername(username string) *ProfileBuilder {
	b.profile.Username = username
	return b
}

func (b *ProfileBuilder) WithDisplayName(displayName string) *ProfileBuilder {
	b.profile.DisplayName = displayName
	return b
}

func (b *ProfileBuilder) WithCounters(followers, following, posts int) *ProfileBuilder {
	b.profile.FollowersCount = followers
	b.profile.FollowingCount = following
	b.profile.PostsCount = posts
	return b
}

func (b *ProfileBuilder) Build() *entities.Profile {
	profile := b.profile
	return &profile
}

// PostBuilder helps create test posts with default values
type PostBuilder struct {
	post entities.Post
}

func NewPostBuilder() *PostBuilder {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &PostBuilder{
		post: entities.Post{
			PostID:      uuid.New().String(),
			UserID:      "author-1",
			Username:    "author",
			DisplayName: "Author",
			Content:     "hello world",
			CreatedAt:   createdAt,
			CreatedAtMs: createdAt.UnixMilli(),
		},
	}
}

func (b *PostBuilder) WithPostID(postID string) *PostBuilder {
	b.post.PostID = postID
	return b
}

func (b *PostBuilder) WithAuthor(userID, username string) *PostBuilder {
	b.post.UserID = userID
	b.post.Username = username
	return b
}

func (b *PostBuilder) WithContent(content string) *PostBuilder {
	b.post.Content = content
	return b
}

func (b *PostBuilder) WithCreatedAt(createdAt time.Time) *PostBuilder {
	b.post.CreatedAt = createdAt
	b.post.CreatedAtMs = createdAt.UnixMilli()
	return b
}

func (b *PostBuilder) Build() *entities.Post {
	post := b.post
	return &post
}

// NewPostCreatedEvent builds a post.created event matching a built post
func NewPostCreatedEvent(post *entities.Post) events.PostCreated {
	return events.NewPostCreated(
		post.PostID, post.UserID, post.Username, post.DisplayName, post.Avatar,
		post.Content, post.ImageURL, post.CreatedAt, post.CreatedAtMs,
	)
}
