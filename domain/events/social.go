package events

import "time"

// Event type names as they appear on the bus. Consumers match on these as
// the EventBridge detail-type.
const (
	TypeProfileCreated = "profile.created"
	TypeProfileUpdated = "profile.updated"
	TypePostCreated    = "post.created"
	TypeUserFollowed   = "user.followed"
	TypeUserUnfollowed = "user.unfollowed"
	TypePostLiked      = "post.liked"
)

// ProfileCreated is raised when a new profile is created
type ProfileCreated struct {
	BaseEvent
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// NewProfileCreated creates a ProfileCreated event
func NewProfileCreated(userID, username, displayName string, timestamp time.Time) ProfileCreated {
	return ProfileCreated{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   TypeProfileCreated,
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID:      userID,
		Username:    username,
		DisplayName: displayName,
	}
}

// ProfileUpdated is raised when a profile's mutable fields change. Before and
// After carry only the allow-listed fields that were part of the update.
type ProfileUpdated struct {
	BaseEvent
	UserID string                 `json:"user_id"`
	Before map[string]interface{} `json:"before"`
	After  map[string]interface{} `json:"after"`
}

// NewProfileUpdated creates a ProfileUpdated event
func NewProfileUpdated(userID string, before, after map[string]interface{}, timestamp time.Time) ProfileUpdated {
	return ProfileUpdated{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   TypeProfileUpdated,
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID: userID,
		Before: before,
		After:  after,
	}
}

// PostCreated is raised after a post commits. It carries the complete
// denormalized payload so the fan-out consumer never has to re-read the
// post or the author's profile.
type PostCreated struct {
	BaseEvent
	PostID      string `json:"post_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url,omitempty"`
	CreatedAt   string `json:"created_at"`
	CreatedAtMs int64  `json:"created_at_ms"`
}

// NewPostCreated creates a PostCreated event
func NewPostCreated(postID, userID, username, displayName, avatar, content, imageURL string, createdAt time.Time, createdAtMs int64) PostCreated {
	return PostCreated{
		BaseEvent: BaseEvent{
			AggregateID: postID,
			EventType:   TypePostCreated,
			Timestamp:   createdAt,
			Version:     1,
		},
		PostID:      postID,
		UserID:      userID,
		Username:    username,
		DisplayName: displayName,
		Avatar:      avatar,
		Content:     content,
		ImageURL:    imageURL,
		CreatedAt:   createdAt.Format(time.RFC3339),
		CreatedAtMs: createdAtMs,
	}
}

// UserFollowed is raised when a follow edge is created
type UserFollowed struct {
	BaseEvent
	FollowerID string `json:"follower_id"`
	FollowedID string `json:"followed_id"`
}

// NewUserFollowed creates a UserFollowed event
func NewUserFollowed(followerID, followedID string, timestamp time.Time) UserFollowed {
	return UserFollowed{
		BaseEvent: BaseEvent{
			AggregateID: followerID,
			EventType:   TypeUserFollowed,
			Timestamp:   timestamp,
			Version:     1,
		},
		FollowerID: followerID,
		FollowedID: followedID,
	}
}

// UserUnfollowed is raised when a follow edge is removed
type UserUnfollowed struct {
	BaseEvent
	FollowerID string `json:"follower_id"`
	FollowedID string `json:"followed_id"`
}

// NewUserUnfollowed creates a UserUnfollowed event
func NewUserUnfollowed(followerID, followedID string, timestamp time.Time) UserUnfollowed {
	return UserUnfollowed{
		BaseEvent: BaseEvent{
			AggregateID: followerID,
			EventType:   TypeUserUnfollowed,
			Timestamp:   timestamp,
			Version:     1,
		},
		FollowerID: followerID,
		FollowedID: followedID,
	}
}

// PostLiked is raised when a like commits. The post author's identity is
// included so notification consumers do not need a second lookup.
type PostLiked struct {
	BaseEvent
	UserID         string `json:"user_id"`
	PostID         string `json:"post_id"`
	PostAuthorID   string `json:"post_author_id"`
	PostAuthorName string `json:"post_author_name"`
}

// NewPostLiked creates a PostLiked event
func NewPostLiked(userID, postID, postAuthorID, postAuthorName string, timestamp time.Time) PostLiked {
	return PostLiked{
		BaseEvent: BaseEvent{
			AggregateID: postID,
			EventType:   TypePostLiked,
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID:         userID,
		PostID:         postID,
		PostAuthorID:   postAuthorID,
		PostAuthorName: postAuthorName,
	}
}
