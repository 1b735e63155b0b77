package services

import (
	"context"
	"testing"

	"pulse-backend/domain/events"
	appErrors "pulse-backend/pkg/errors"
	"pulse-backend/tests/fixtures"
	"pulse-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestLikeService_LikePost_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockLikes := new(mocks.MockLikeRepository)
	mockPosts := new(mocks.MockPostRepository)
	mockEventBus := new(mocks.MockEventBus)

	post := fixtures.NewPostBuilder().
		WithPostID("post-1").
		WithAuthor("author-1", "author").
		Build()

	mockPosts.On("GetByID", ctx, "post-1").Return(post, nil)
	mockLikes.On("Create", ctx, mock.AnythingOfType("*entities.Like")).Return(nil)

	var published events.PostLiked
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.PostLiked")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(events.PostLiked)
		}).
		Return(nil)

	service := NewLikeService(mockLikes, mockPosts, mockEventBus, zap.NewNop())

	// Act
	err := service.LikePost(ctx, "fan-1", "post-1")

	// Assert: event carries the post author's identity
	assert.NoError(t, err)
	assert.Equal(t, "fan-1", published.UserID)
	assert.Equal(t, "post-1", published.PostID)
	assert.Equal(t, "author-1", published.PostAuthorID)
	assert.Equal(t, "author", published.PostAuthorName)
	mockLikes.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestLikeService_LikePost_PostNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockLikes := new(mocks.MockLikeRepository)
	mockPosts := new(mocks.MockPostRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockPosts.On("GetByID", ctx, "missing").Return(nil, nil)

	service := NewLikeService(mockLikes, mockPosts, mockEventBus, zap.NewNop())

	// Act
	err := service.LikePost(ctx, "fan-1", "missing")

	// Assert
	assert.True(t, appErrors.IsNotFound(err))
	mockLikes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLikeService_LikePost_Duplicate(t *testing.T) {
	// Arrange: the conditional transaction is the real guard against the
	// concurrent double-like; its conflict must reach the caller untouched
	ctx := context.Background()
	mockLikes := new(mocks.MockLikeRepository)
	mockPosts := new(mocks.MockPostRepository)
	mockEventBus := new(mocks.MockEventBus)

	post := fixtures.NewPostBuilder().WithPostID("post-1").Build()
	mockPosts.On("GetByID", ctx, "post-1").Return(post, nil)
	mockLikes.On("Create", ctx, mock.Anything).
		Return(appErrors.NewAlreadyLikedError("fan-1", "post-1"))

	service := NewLikeService(mockLikes, mockPosts, mockEventBus, zap.NewNop())

	// Act
	err := service.LikePost(ctx, "fan-1", "post-1")

	// Assert
	assert.True(t, appErrors.IsAlreadyLiked(err))
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestLikeService_UnlikePost(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockLikes := new(mocks.MockLikeRepository)
	mockPosts := new(mocks.MockPostRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockLikes.On("Delete", ctx, "fan-1", "post-1").Return(nil)

	service := NewLikeService(mockLikes, mockPosts, mockEventBus, zap.NewNop())

	// Act
	err := service.UnlikePost(ctx, "fan-1", "post-1")

	// Assert
	assert.NoError(t, err)
	mockLikes.AssertExpectations(t)
}
