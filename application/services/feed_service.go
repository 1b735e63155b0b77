package services

import (
	"context"
	"encoding/json"
	"fmt"

	"pulse-backend/application/ports"
	"pulse-backend/domain/core/entities"
	"pulse-backend/domain/events"
	"pulse-backend/pkg/observability"
	"pulse-backend/pkg/utils"

	"go.uber.org/zap"
)

// defaultFeedPageSize bounds GetUserFeed when the caller passes no limit
const defaultFeedPageSize = 20

// FanoutResult summarizes one fan-out run. Batches fail independently, so a
// run can be partially successful; BatchesFailed tells the consumer whether
// to request redelivery.
type FanoutResult struct {
	// Followers is the snapshot the run fanned out to, kept for follow-up
	// work like live push
	Followers      []string
	BatchesTotal   int
	BatchesFailed  int
	EntriesWritten int
}

// FollowerCount returns the size of the follower snapshot
func (r FanoutResult) FollowerCount() int {
	return len(r.Followers)
}

// PartialFailure reports whether any batch failed
func (r FanoutResult) PartialFailure() bool {
	return r.BatchesFailed > 0
}

// FeedService replicates new posts into follower feeds and serves feed reads
type FeedService struct {
	graph       ports.SocialGraphRepository
	feed        ports.FeedRepository
	connections ports.ConnectionRepository
	pusher      ports.LivePusher
	metrics     *observability.Metrics
	tracer      *observability.Tracer
	logger      *zap.Logger
	batchSize   int
	pageSize    int32
}

// NewFeedService creates a new FeedService. batchSize caps how many entries
// go into one batch write and must not exceed the store's per-request
// ceiling; pageSize is the feed read window when the caller passes no limit.
func NewFeedService(
	graph ports.SocialGraphRepository,
	feed ports.FeedRepository,
	connections ports.ConnectionRepository,
	pusher ports.LivePusher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
	batchSize int,
	pageSize int,
) *FeedService {
	if pageSize <= 0 {
		pageSize = defaultFeedPageSize
	}
	return &FeedService{
		graph:       graph,
		feed:        feed,
		connections: connections,
		pusher:      pusher,
		metrics:     metrics,
		tracer:      tracer,
		logger:      logger,
		batchSize:   batchSize,
		pageSize:    int32(pageSize),
	}
}

// HandlePostCreated replicates the post into every follower's feed. The
// follower set is snapshotted once with a consistent read; entries are then
// written in independent batches. A failed batch does not stop later ones.
// Entry keys are derived from the post, so a redelivered event rewrites the
// same entries and the operation stays idempotent.
func (s *FeedService) HandlePostCreated(ctx context.Context, event events.PostCreated) (*FanoutResult, error) {
	s.tracer.AddAnnotation(ctx, "postId", event.PostID)

	var followers []string
	err := s.tracer.TraceFunction(ctx, "ListFollowers", func(ctx context.Context) error {
		var listErr error
		followers, listErr = s.graph.ListFollowers(ctx, event.UserID)
		return listErr
	})
	if err != nil {
		return nil, err
	}

	result := &FanoutResult{Followers: followers}
	if len(followers) == 0 {
		s.logger.Info("No followers to fan out to",
			zap.String("postID", event.PostID),
			zap.String("userID", event.UserID),
		)
		return result, nil
	}

	createdAt, err := utils.ParseRFC3339(event.CreatedAt)
	if err != nil {
		createdAt = event.GetTimestamp()
	}

	entries := make([]*entities.FeedEntry, 0, len(followers))
	for _, followerID := range followers {
		entries = append(entries, &entities.FeedEntry{
			FollowerID:  followerID,
			PostID:      event.PostID,
			AuthorID:    event.UserID,
			Username:    event.Username,
			DisplayName: event.DisplayName,
			Avatar:      event.Avatar,
			Content:     event.Content,
			ImageURL:    event.ImageURL,
			CreatedAt:   createdAt,
			CreatedAtMs: event.CreatedAtMs,
		})
	}

	for start := 0; start < len(entries); start += s.batchSize {
		end := start + s.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		result.BatchesTotal++

		var written int
		err := s.tracer.TraceFunction(ctx, "WriteFeedBatch", func(ctx context.Context) error {
			var writeErr error
			written, writeErr = s.feed.WriteEntries(ctx, entries[start:end])
			return writeErr
		})
		result.EntriesWritten += written
		if err != nil {
			result.BatchesFailed++
			s.logger.Error("Feed batch failed",
				zap.Error(err),
				zap.String("postID", event.PostID),
				zap.Int("batchStart", start),
				zap.Int("batchSize", end-start),
			)
		}
	}

	if err := s.metrics.RecordFanout(ctx, result.BatchesTotal, result.BatchesFailed, result.EntriesWritten); err != nil {
		s.logger.Warn("Failed to record fan-out metrics", zap.Error(err))
	}

	s.logger.Info("Fan-out complete",
		zap.String("postID", event.PostID),
		zap.Int("followers", result.FollowerCount()),
		zap.Int("batches", result.BatchesTotal),
		zap.Int("batchesFailed", result.BatchesFailed),
		zap.Int("entriesWritten", result.EntriesWritten),
	)

	if result.PartialFailure() {
		return result, fmt.Errorf("fan-out for post %s: %d of %d batches failed",
			event.PostID, result.BatchesFailed, result.BatchesTotal)
	}
	return result, nil
}

// NotifyFollowers pushes the new post to every follower with an open
// connection. Push is best effort and never fails the fan-out: the feed
// entries are already durable.
func (s *FeedService) NotifyFollowers(ctx context.Context, followerIDs []string, event events.PostCreated) {
	if s.pusher == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type": "feed.new_post",
		"post": event,
	})
	if err != nil {
		s.logger.Warn("Failed to marshal push payload", zap.Error(err))
		return
	}

	var delivered int
	for _, followerID := range followerIDs {
		conns, err := s.connections.ListByUser(ctx, followerID)
		if err != nil {
			s.logger.Warn("Failed to list connections",
				zap.Error(err),
				zap.String("userID", followerID),
			)
			continue
		}
		for _, conn := range conns {
			if err := s.pusher.Push(ctx, conn, payload); err != nil {
				s.logger.Warn("Failed to push to connection",
					zap.Error(err),
					zap.String("connectionID", conn.ConnectionID),
				)
				continue
			}
			delivered++
		}
	}

	if err := s.metrics.RecordCount(ctx, "LivePushesDelivered", float64(delivered)); err != nil {
		s.logger.Warn("Failed to record push metrics", zap.Error(err))
	}
}

// GetUserFeed returns the user's feed newest-first
func (s *FeedService) GetUserFeed(ctx context.Context, userID string, limit int32) ([]*entities.FeedEntry, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	return s.feed.ListByUser(ctx, userID, limit)
}
