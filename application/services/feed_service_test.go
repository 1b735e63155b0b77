package services

import (
	"context"
	"fmt"
	"testing"

	"pulse-backend/domain/core/entities"
	appErrors "pulse-backend/pkg/errors"
	"pulse-backend/pkg/observability"
	"pulse-backend/tests/fixtures"
	"pulse-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestFeedService(graph *mocks.MockSocialGraphRepository, feed *mocks.MockFeedRepository) *FeedService {
	return NewFeedService(graph, feed, new(mocks.MockConnectionRepository), nil,
		observability.NewMetrics("Test", nil), nil, zap.NewNop(), 25, 20)
}

func followerIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("follower-%03d", i)
	}
	return ids
}

func TestFeedService_HandlePostCreated_SingleBatch(t *testing.T) {
	// Arrange: exactly the batch ceiling fits in one batch
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockFeed := new(mocks.MockFeedRepository)

	post := fixtures.NewPostBuilder().WithAuthor("author-1", "author").Build()
	event := fixtures.NewPostCreatedEvent(post)

	mockGraph.On("ListFollowers", ctx, "author-1").Return(followerIDs(25), nil)
	mockFeed.On("WriteEntries", ctx, mock.MatchedBy(func(entries []*entities.FeedEntry) bool {
		return len(entries) == 25
	})).Return(25, nil).Once()

	service := newTestFeedService(mockGraph, mockFeed)

	// Act
	result, err := service.HandlePostCreated(ctx, event)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 25, result.FollowerCount())
	assert.Equal(t, 1, result.BatchesTotal)
	assert.Equal(t, 0, result.BatchesFailed)
	assert.Equal(t, 25, result.EntriesWritten)
	mockFeed.AssertExpectations(t)
}

func TestFeedService_HandlePostCreated_SplitsBatches(t *testing.T) {
	// Arrange: one follower over the ceiling forces a second batch
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockFeed := new(mocks.MockFeedRepository)

	post := fixtures.NewPostBuilder().WithAuthor("author-1", "author").Build()
	event := fixtures.NewPostCreatedEvent(post)

	mockGraph.On("ListFollowers", ctx, "author-1").Return(followerIDs(26), nil)
	mockFeed.On("WriteEntries", ctx, mock.MatchedBy(func(entries []*entities.FeedEntry) bool {
		return len(entries) == 25
	})).Return(25, nil).Once()
	mockFeed.On("WriteEntries", ctx, mock.MatchedBy(func(entries []*entities.FeedEntry) bool {
		return len(entries) == 1
	})).Return(1, nil).Once()

	service := newTestFeedService(mockGraph, mockFeed)

	// Act
	result, err := service.HandlePostCreated(ctx, event)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 2, result.BatchesTotal)
	assert.Equal(t, 26, result.EntriesWritten)
	mockFeed.AssertExpectations(t)
}

func TestFeedService_HandlePostCreated_NoFollowers(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockFeed := new(mocks.MockFeedRepository)

	post := fixtures.NewPostBuilder().WithAuthor("loner", "loner").Build()
	event := fixtures.NewPostCreatedEvent(post)

	mockGraph.On("ListFollowers", ctx, "loner").Return([]string{}, nil)

	service := newTestFeedService(mockGraph, mockFeed)

	// Act
	result, err := service.HandlePostCreated(ctx, event)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 0, result.BatchesTotal)
	assert.Equal(t, 0, result.EntriesWritten)
	mockFeed.AssertNotCalled(t, "WriteEntries", mock.Anything, mock.Anything)
}

func TestFeedService_HandlePostCreated_PartialFailure(t *testing.T) {
	// Arrange: batches are independent; one failing must not stop the rest,
	// and the run must surface an error so the event gets redelivered
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockFeed := new(mocks.MockFeedRepository)

	post := fixtures.NewPostBuilder().WithAuthor("author-1", "author").Build()
	event := fixtures.NewPostCreatedEvent(post)

	mockGraph.On("ListFollowers", ctx, "author-1").Return(followerIDs(26), nil)
	mockFeed.On("WriteEntries", ctx, mock.MatchedBy(func(entries []*entities.FeedEntry) bool {
		return len(entries) == 25
	})).Return(10, appErrors.NewUnavailableError("dynamodb")).Once()
	mockFeed.On("WriteEntries", ctx, mock.MatchedBy(func(entries []*entities.FeedEntry) bool {
		return len(entries) == 1
	})).Return(1, nil).Once()

	service := newTestFeedService(mockGraph, mockFeed)

	// Act
	result, err := service.HandlePostCreated(ctx, event)

	// Assert
	assert.Error(t, err)
	assert.True(t, result.PartialFailure())
	assert.Equal(t, 2, result.BatchesTotal)
	assert.Equal(t, 1, result.BatchesFailed)
	assert.Equal(t, 11, result.EntriesWritten)
	mockFeed.AssertExpectations(t)
}

func TestFeedService_HandlePostCreated_EntryShape(t *testing.T) {
	// Arrange: feed entries are built entirely from the event payload
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockFeed := new(mocks.MockFeedRepository)

	post := fixtures.NewPostBuilder().
		WithPostID("post-1").
		WithAuthor("author-1", "author").
		WithContent("fresh content").
		Build()
	event := fixtures.NewPostCreatedEvent(post)

	mockGraph.On("ListFollowers", ctx, "author-1").Return([]string{"fan-1"}, nil)

	var captured []*entities.FeedEntry
	mockFeed.On("WriteEntries", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]*entities.FeedEntry)
		}).
		Return(1, nil)

	service := newTestFeedService(mockGraph, mockFeed)

	// Act
	_, err := service.HandlePostCreated(ctx, event)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, captured, 1)
	entry := captured[0]
	assert.Equal(t, "fan-1", entry.FollowerID)
	assert.Equal(t, "post-1", entry.PostID)
	assert.Equal(t, "author-1", entry.AuthorID)
	assert.Equal(t, "fresh content", entry.Content)
	assert.Equal(t, post.CreatedAtMs, entry.CreatedAtMs)
	assert.True(t, entry.CreatedAt.Equal(post.CreatedAt))
}

func TestFeedService_GetUserFeed_DefaultLimit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockFeed := new(mocks.MockFeedRepository)

	mockFeed.On("ListByUser", ctx, "fan-1", int32(20)).Return([]*entities.FeedEntry{}, nil)

	service := newTestFeedService(mockGraph, mockFeed)

	// Act
	entries, err := service.GetUserFeed(ctx, "fan-1", 0)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, entries)
	mockFeed.AssertExpectations(t)
}

func TestFeedService_GetUserFeed_ConfiguredPageSize(t *testing.T) {
	// Arrange: the configured page size, not a built-in constant, bounds the
	// default read window
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockFeed := new(mocks.MockFeedRepository)

	mockFeed.On("ListByUser", ctx, "fan-1", int32(5)).Return([]*entities.FeedEntry{}, nil)

	service := NewFeedService(mockGraph, mockFeed, new(mocks.MockConnectionRepository), nil,
		observability.NewMetrics("Test", nil), nil, zap.NewNop(), 25, 5)

	// Act
	_, err := service.GetUserFeed(ctx, "fan-1", 0)

	// Assert
	assert.NoError(t, err)
	mockFeed.AssertExpectations(t)
}

func TestFeedService_NotifyFollowers(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockGraph := new(mocks.MockSocialGraphRepository)
	mockFeed := new(mocks.MockFeedRepository)
	mockConnections := new(mocks.MockConnectionRepository)
	mockPusher := new(mocks.MockLivePusher)

	conn := &entities.Connection{ConnectionID: "conn-1", UserID: "fan-1"}
	mockConnections.On("ListByUser", ctx, "fan-1").Return([]*entities.Connection{conn}, nil)
	mockConnections.On("ListByUser", ctx, "fan-2").Return([]*entities.Connection{}, nil)
	mockPusher.On("Push", ctx, conn, mock.Anything).Return(nil)

	service := NewFeedService(mockGraph, mockFeed, mockConnections, mockPusher,
		observability.NewMetrics("Test", nil), nil, zap.NewNop(), 25, 20)

	post := fixtures.NewPostBuilder().Build()
	event := fixtures.NewPostCreatedEvent(post)

	// Act
	service.NotifyFollowers(ctx, []string{"fan-1", "fan-2"}, event)

	// Assert: only the online follower gets a push
	mockConnections.AssertExpectations(t)
	mockPusher.AssertExpectations(t)
	mockPusher.AssertNumberOfCalls(t, "Push", 1)
}
