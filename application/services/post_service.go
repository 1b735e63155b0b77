package services

import (
	"context"
	"time"

	"pulse-backend/application/ports"
	"pulse-backend/domain/core/entities"
	"pulse-backend/domain/events"
	appErrors "pulse-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultTimelinePageSize bounds ListUserPosts when the caller passes no limit
const defaultTimelinePageSize = 20

// PostService manages post creation and reads
type PostService struct {
	posts    ports.PostRepository
	profiles ports.ProfileRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(posts ports.PostRepository, profiles ports.ProfileRepository, eventBus ports.EventBus, logger *zap.Logger) *PostService {
	return &PostService{
		posts:    posts,
		profiles: profiles,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreatePost creates a post under the author's identity snapshot. Creation
// time is taken once and used for both the RFC3339 field and the millisecond
// sort component, so the two can never disagree. The published event carries
// the full denormalized payload the fan-out consumer needs.
func (s *PostService) CreatePost(ctx context.Context, userID, content, imageURL string) (*entities.Post, error) {
	author, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, appErrors.NewNotFoundError("profile")
	}

	now := time.Now().UTC()
	post := &entities.Post{
		PostID:      uuid.New().String(),
		UserID:      author.UserID,
		Username:    author.Username,
		DisplayName: author.DisplayName,
		Avatar:      author.Avatar,
		Content:     content,
		ImageURL:    imageURL,
		CreatedAt:   now,
		CreatedAtMs: now.UnixMilli(),
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewPostCreated(
		post.PostID, post.UserID, post.Username, post.DisplayName, post.Avatar,
		post.Content, post.ImageURL, post.CreatedAt, post.CreatedAtMs,
	))
	return post, nil
}

// GetPost returns a post by id
func (s *PostService) GetPost(ctx context.Context, postID string) (*entities.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, appErrors.NewNotFoundError("post")
	}
	return post, nil
}

// ListUserPosts returns the author's posts newest-first
func (s *PostService) ListUserPosts(ctx context.Context, userID string, limit int32) ([]*entities.Post, error) {
	if limit <= 0 {
		limit = defaultTimelinePageSize
	}
	return s.posts.ListByUser(ctx, userID, limit)
}

func (s *PostService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.Error(err),
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
		)
	}
}
