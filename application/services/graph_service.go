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

// SocialGraphService manages follow relationships
type SocialGraphService struct {
	graph    ports.SocialGraphRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewSocialGraphService creates a new SocialGraphService
func NewSocialGraphService(graph ports.SocialGraphRepository, eventBus ports.EventBus, logger *zap.Logger) *SocialGraphService {
	return &SocialGraphService{
		graph:    graph,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Follow creates a follow edge from follower to followed. Self-follows are
// rejected before any write. Edge uniqueness and counter consistency are
// enforced inside the repository's transaction.
func (s *SocialGraphService) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return appErrors.NewSelfReferenceError("follow")
	}

	now := time.Now().UTC()
	edge := &entities.FollowEdge{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  now,
	}
	if err := s.graph.CreateFollow(ctx, edge); err != nil {
		return err
	}

	s.publish(ctx, events.NewUserFollowed(followerID, followedID, now))
	return nil
}

// Unfollow removes the follow edge from follower to followed
func (s *SocialGraphService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return appErrors.NewSelfReferenceError("unfollow")
	}

	if err := s.graph.DeleteFollow(ctx, followerID, followedID); err != nil {
		return err
	}

	s.publish(ctx, events.NewUserUnfollowed(followerID, followedID, time.Now().UTC()))
	return nil
}

// IsFollowing reports whether follower follows followed
func (s *SocialGraphService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	return s.graph.HasFollow(ctx, followerID, followedID)
}

// ListFollowers returns the complete follower set of a user
func (s *SocialGraphService) ListFollowers(ctx context.Context, userID string) ([]string, error) {
	return s.graph.ListFollowers(ctx, userID)
}

func (s *SocialGraphService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.Error(err),
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
		)
	}
}
