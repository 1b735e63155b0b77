package services

import (
	"context"
	"time"

	"pulse-backend/application/ports"
	"pulse-backend/domain/core/entities"
	"pulse-backend/domain/events"
	appErrors "pulse-backend/pkg/errors"

	"go.uber.org/zap"
)

// LikeService manages likes on posts
type LikeService struct {
	likes    ports.LikeRepository
	posts    ports.PostRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewLikeService creates a new LikeService
func NewLikeService(likes ports.LikeRepository, posts ports.PostRepository, eventBus ports.EventBus, logger *zap.Logger) *LikeService {
	return &LikeService{
		likes:    likes,
		posts:    posts,
		eventBus: eventBus,
		logger:   logger,
	}
}

// LikePost records a like. The post lookup here supplies the author identity
// for the event; correctness does not depend on it, since the repository's
// conditional transaction rejects duplicates and missing posts on its own.
func (s *LikeService) LikePost(ctx context.Context, userID, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return appErrors.NewNotFoundError("post")
	}

	now := time.Now().UTC()
	like := &entities.Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: now,
	}
	if err := s.likes.Create(ctx, like); err != nil {
		return err
	}

	s.publish(ctx, events.NewPostLiked(userID, postID, post.UserID, post.Username, now))
	return nil
}

// UnlikePost removes a like
func (s *LikeService) UnlikePost(ctx context.Context, userID, postID string) error {
	return s.likes.Delete(ctx, userID, postID)
}

// HasLiked reports whether the user has liked the post
func (s *LikeService) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	return s.likes.Exists(ctx, userID, postID)
}

func (s *LikeService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.Error(err),
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
		)
	}
}
