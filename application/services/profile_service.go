// Package services contains the application services. Each service
// orchestrates one slice of the domain over the repository ports, publishing
// domain events after the underlying writes commit. The repositories own
// atomicity; services own sequencing and event emission.
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

// ProfileService manages user profiles
type ProfileService struct {
	profiles ports.ProfileRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles ports.ProfileRepository, eventBus ports.EventBus, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateProfile allocates a user id and creates the profile with zeroed
// counters. Username uniqueness is enforced by the repository's reservation
// write, not by a lookup here.
func (s *ProfileService) CreateProfile(ctx context.Context, username, displayName, bio, avatar string) (*entities.Profile, error) {
	now := time.Now().UTC()
	profile := &entities.Profile{
		UserID:      uuid.New().String(),
		Username:    username,
		DisplayName: displayName,
		Bio:         bio,
		Avatar:      avatar,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewProfileCreated(profile.UserID, profile.Username, profile.DisplayName, now))
	return profile, nil
}

// GetProfile returns a profile by user id
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*entities.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, appErrors.NewNotFoundError("profile")
	}
	return profile, nil
}

// GetProfileByUsername returns a profile by username
func (s *ProfileService) GetProfileByUsername(ctx context.Context, username string) (*entities.Profile, error) {
	profile, err := s.profiles.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, appErrors.NewNotFoundError("profile")
	}
	return profile, nil
}

// UpdateProfile applies the allow-listed fields and publishes a change event
// carrying the before and after values of the fields that were touched
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update entities.ProfileUpdate) (*entities.Profile, error) {
	if update.IsEmpty() {
		return nil, appErrors.NewValidationError("update contains no fields")
	}

	current, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, appErrors.NewNotFoundError("profile")
	}

	updated, err := s.profiles.Update(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	before := make(map[string]interface{})
	after := make(map[string]interface{})
	if update.DisplayName != nil {
		before["displayName"], after["displayName"] = current.DisplayName, updated.DisplayName
	}
	if update.Bio != nil {
		before["bio"], after["bio"] = current.Bio, updated.Bio
	}
	if update.Avatar != nil {
		before["avatar"], after["avatar"] = current.Avatar, updated.Avatar
	}
	if update.IsPrivate != nil {
		before["isPrivate"], after["isPrivate"] = current.IsPrivate, updated.IsPrivate
	}

	s.publish(ctx, events.NewProfileUpdated(userID, before, after, updated.UpdatedAt))
	return updated, nil
}

// publish sends an event after the write has committed. A publish failure is
// logged, not returned: the state change is already durable.
func (s *ProfileService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.Error(err),
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
		)
	}
}
