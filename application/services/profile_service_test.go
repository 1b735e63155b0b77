package services

import (
	"context"
	"testing"

	"pulse-backend/domain/core/entities"
	"pulse-backend/domain/events"
	appErrors "pulse-backend/pkg/errors"
	"pulse-backend/tests/fixtures"
	"pulse-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func TestProfileService_CreateProfile_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	var created *entities.Profile
	mockProfiles.On("Create", ctx, mock.AnythingOfType("*entities.Profile")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.Profile)
		}).
		Return(nil)
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.ProfileCreated")).Return(nil)

	service := NewProfileService(mockProfiles, mockEventBus, zap.NewNop())

	// Act
	profile, err := service.CreateProfile(ctx, "alice", "Alice", "hi", "")

	// Assert: fresh profile starts with zeroed counters and version 1
	assert.NoError(t, err)
	assert.NotEmpty(t, profile.UserID)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 0, profile.FollowersCount)
	assert.Equal(t, 0, profile.FollowingCount)
	assert.Equal(t, 0, profile.PostsCount)
	assert.Equal(t, 1, profile.Version)
	assert.Equal(t, profile, created)
	mockProfiles.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestProfileService_CreateProfile_UsernameTaken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockProfiles.On("Create", ctx, mock.Anything).
		Return(appErrors.NewAlreadyExistsError("username"))

	service := NewProfileService(mockProfiles, mockEventBus, zap.NewNop())

	// Act
	profile, err := service.CreateProfile(ctx, "alice", "Alice", "", "")

	// Assert
	assert.Nil(t, profile)
	assert.True(t, appErrors.IsAlreadyExists(err))
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	current := fixtures.NewProfileBuilder().
		WithUserID("user-1").
		WithDisplayName("Old Name").
		Build()
	updated := fixtures.NewProfileBuilder().
		WithUserID("user-1").
		WithDisplayName("New Name").
		Build()
	updated.Version = 2

	update := entities.ProfileUpdate{DisplayName: strPtr("New Name")}

	mockProfiles.On("GetByID", ctx, "user-1").Return(current, nil)
	mockProfiles.On("Update", ctx, "user-1", update).Return(updated, nil)

	var published events.ProfileUpdated
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.ProfileUpdated")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(events.ProfileUpdated)
		}).
		Return(nil)

	service := NewProfileService(mockProfiles, mockEventBus, zap.NewNop())

	// Act
	result, err := service.UpdateProfile(ctx, "user-1", update)

	// Assert: the event captures only the touched fields, before and after
	assert.NoError(t, err)
	assert.Equal(t, updated, result)
	assert.Equal(t, map[string]interface{}{"displayName": "Old Name"}, published.Before)
	assert.Equal(t, map[string]interface{}{"displayName": "New Name"}, published.After)
	mockProfiles.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestProfileService_UpdateProfile_Empty(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	service := NewProfileService(mockProfiles, mockEventBus, zap.NewNop())

	// Act
	result, err := service.UpdateProfile(ctx, "user-1", entities.ProfileUpdate{})

	// Assert
	assert.Nil(t, result)
	assert.True(t, appErrors.IsValidation(err))
	mockProfiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_GetProfileByUsername_RoundTrip(t *testing.T) {
	// Arrange: the id lookup and the username lookup resolve to the same
	// logical record
	ctx := context.Background()
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	profile := fixtures.NewProfileBuilder().
		WithUserID("user-1").
		WithUsername("alice").
		Build()

	mockProfiles.On("GetByID", ctx, "user-1").Return(profile, nil)
	mockProfiles.On("GetByUsername", ctx, "alice").Return(profile, nil)

	service := NewProfileService(mockProfiles, mockEventBus, zap.NewNop())

	// Act
	byID, errByID := service.GetProfile(ctx, "user-1")
	byUsername, errByUsername := service.GetProfileByUsername(ctx, "alice")

	// Assert
	assert.NoError(t, errByID)
	assert.NoError(t, errByUsername)
	assert.Equal(t, byID, byUsername)
	mockProfiles.AssertExpectations(t)
}

func TestProfileService_GetProfileByUsername_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockProfiles.On("GetByUsername", ctx, "ghost").Return(nil, nil)

	service := NewProfileService(mockProfiles, mockEventBus, zap.NewNop())

	// Act
	profile, err := service.GetProfileByUsername(ctx, "ghost")

	// Assert
	assert.Nil(t, profile)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockProfiles.On("GetByID", ctx, "ghost").Return(nil, nil)

	service := NewProfileService(mockProfiles, mockEventBus, zap.NewNop())

	// Act
	profile, err := service.GetProfile(ctx, "ghost")

	// Assert
	assert.Nil(t, profile)
	assert.True(t, appErrors.IsNotFound(err))
}
