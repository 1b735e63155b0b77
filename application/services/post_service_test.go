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

func TestPostService_CreatePost_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockPosts := new(mocks.MockPostRepository)
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	author := fixtures.NewProfileBuilder().
		WithUserID("author-1").
		WithUsername("author").
		WithDisplayName("The Author").
		Build()

	mockProfiles.On("GetByID", ctx, "author-1").Return(author, nil)

	var created *entities.Post
	mockPosts.On("Create", ctx, mock.AnythingOfType("*entities.Post")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.Post)
		}).
		Return(nil)

	var published events.PostCreated
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.PostCreated")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(events.PostCreated)
		}).
		Return(nil)

	service := NewPostService(mockPosts, mockProfiles, mockEventBus, zap.NewNop())

	// Act
	post, err := service.CreatePost(ctx, "author-1", "hello world", "")

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, post.PostID)
	assert.Equal(t, "author", post.Username)
	assert.Equal(t, "The Author", post.DisplayName)
	assert.Equal(t, post.CreatedAt.UnixMilli(), post.CreatedAtMs)
	assert.Equal(t, post, created)

	// The event carries the full denormalized payload
	assert.Equal(t, post.PostID, published.PostID)
	assert.Equal(t, "author-1", published.UserID)
	assert.Equal(t, "author", published.Username)
	assert.Equal(t, "hello world", published.Content)
	assert.Equal(t, post.CreatedAtMs, published.CreatedAtMs)

	mockPosts.AssertExpectations(t)
	mockProfiles.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestPostService_CreatePost_AuthorNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockPosts := new(mocks.MockPostRepository)
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockProfiles.On("GetByID", ctx, "ghost").Return(nil, nil)

	service := NewPostService(mockPosts, mockProfiles, mockEventBus, zap.NewNop())

	// Act
	post, err := service.CreatePost(ctx, "ghost", "hello", "")

	// Assert
	assert.Nil(t, post)
	assert.True(t, appErrors.IsNotFound(err))
	mockPosts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockPosts := new(mocks.MockPostRepository)
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	mockPosts.On("GetByID", ctx, "missing").Return(nil, nil)

	service := NewPostService(mockPosts, mockProfiles, mockEventBus, zap.NewNop())

	// Act
	post, err := service.GetPost(ctx, "missing")

	// Assert
	assert.Nil(t, post)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestPostService_ListUserPosts_DefaultLimit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockPosts := new(mocks.MockPostRepository)
	mockProfiles := new(mocks.MockProfileRepository)
	mockEventBus := new(mocks.MockEventBus)

	expected := []*entities.Post{fixtures.NewPostBuilder().Build()}
	mockPosts.On("ListByUser", ctx, "author-1", int32(20)).Return(expected, nil)

	service := NewPostService(mockPosts, mockProfiles, mockEventBus, zap.NewNop())

	// Act
	posts, err := service.ListUserPosts(ctx, "author-1", 0)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, expected, posts)
	mockPosts.AssertExpectations(t)
}
