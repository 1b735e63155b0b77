package services

import (
	"context"
	"testing"

	appErrors "pulse-backend/pkg/errors"
	"pulse-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSocialGraphService_Follow_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockGraph.On("CreateFollow", ctx, mock.MatchedBy(func(edge interface{}) bool {
		return true
	})).Return(nil)
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.UserFollowed")).Return(nil)

	service := NewSocialGraphService(mockGraph, mockEventBus, zap.NewNop())

	// Act
	err := service.Follow(ctx, "alice", "bob")

	// Assert
	assert.NoError(t, err)
	mockGraph.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestSocialGraphService_Follow_Self(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockEventBus := new(mocks.MockEventBus)

	service := NewSocialGraphService(mockGraph, mockEventBus, zap.NewNop())

	// Act
	err := service.Follow(ctx, "alice", "alice")

	// Assert: rejected before any write or event
	assert.True(t, appErrors.IsSelfReference(err))
	mockGraph.AssertNotCalled(t, "CreateFollow", mock.Anything, mock.Anything)
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSocialGraphService_Follow_Duplicate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockGraph.On("CreateFollow", ctx, mock.Anything).
		Return(appErrors.NewAlreadyFollowingError("alice", "bob"))

	service := NewSocialGraphService(mockGraph, mockEventBus, zap.NewNop())

	// Act
	err := service.Follow(ctx, "alice", "bob")

	// Assert: conflict propagates, no event published
	assert.True(t, appErrors.IsAlreadyFollowing(err))
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	mockGraph.AssertExpectations(t)
}

func TestSocialGraphService_Unfollow_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockGraph.On("DeleteFollow", ctx, "alice", "bob").Return(nil)
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.UserUnfollowed")).Return(nil)

	service := NewSocialGraphService(mockGraph, mockEventBus, zap.NewNop())

	// Act
	err := service.Unfollow(ctx, "alice", "bob")

	// Assert
	assert.NoError(t, err)
	mockGraph.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestSocialGraphService_Unfollow_NotFollowing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockGraph.On("DeleteFollow", ctx, "alice", "bob").
		Return(appErrors.NewNotFollowingError("alice", "bob"))

	service := NewSocialGraphService(mockGraph, mockEventBus, zap.NewNop())

	// Act
	err := service.Unfollow(ctx, "alice", "bob")

	// Assert
	assert.True(t, appErrors.IsNotFollowing(err))
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	mockGraph.AssertExpectations(t)
}

func TestSocialGraphService_Follow_PublishFailureDoesNotFail(t *testing.T) {
	// Arrange: the edge is committed, so a bus outage must not surface
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockGraph.On("CreateFollow", ctx, mock.Anything).Return(nil)
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.UserFollowed")).
		Return(appErrors.NewUnavailableError("eventbridge"))

	service := NewSocialGraphService(mockGraph, mockEventBus, zap.NewNop())

	// Act
	err := service.Follow(ctx, "alice", "bob")

	// Assert
	assert.NoError(t, err)
	mockGraph.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}
