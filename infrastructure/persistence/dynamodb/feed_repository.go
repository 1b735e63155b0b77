package dynamodb

import (
	"context"
	"time"

	"pulse-backend/application/ports"
	"pulse-backend/domain/core/entities"
	appErrors "pulse-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// MaxFeedBatchSize is the per-request ceiling of the underlying batch write.
// Callers chunk larger fan-outs before handing batches to WriteEntries.
const MaxFeedBatchSize = 25

const unprocessedRetries = 3

// FeedRepository implements ports.FeedRepository on DynamoDB
type FeedRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewFeedRepository creates a new FeedRepository
func NewFeedRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.FeedRepository {
	return &FeedRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// feedItem is the DynamoDB shape of a fan-out feed entry
type feedItem struct {
	PK            string `dynamodbav:"PK"`
	SK            string `dynamodbav:"SK"`
	EntityType    string `dynamodbav:"EntityType"`
	FollowerID    string `dynamodbav:"FollowerID"`
	PostID        string `dynamodbav:"PostID"`
	AuthorID      string `dynamodbav:"AuthorID"`
	Username      string `dynamodbav:"Username"`
	DisplayName   string `dynamodbav:"DisplayName"`
	Avatar        string `dynamodbav:"Avatar"`
	Content       string `dynamodbav:"Content"`
	ImageURL      string `dynamodbav:"ImageURL,omitempty"`
	LikesCount    int    `dynamodbav:"LikesCount"`
	CommentsCount int    `dynamodbav:"CommentsCount"`
	CreatedAt     string `dynamodbav:"CreatedAt"`
	CreatedAtMs   int64  `dynamodbav:"CreatedAtMs"`
}

// WriteEntries writes one batch of feed entries in a single batch request
// and returns the number written. Unprocessed items are retried with a short
// backoff. The puts are unconditioned on purpose: the keys are derived from
// the post, so a redelivered event overwrites each entry with an identical
// copy.
func (r *FeedRepository) WriteEntries(ctx context.Context, entries []*entities.FeedEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	if len(entries) > MaxFeedBatchSize {
		return 0, appErrors.NewValidationError("feed batch exceeds the per-request ceiling")
	}

	requests := make([]types.WriteRequest, 0, len(entries))
	for _, entry := range entries {
		av, err := attributevalue.MarshalMap(feedItem{
			PK:            FeedPK(entry.FollowerID),
			SK:            TimelineSK(entry.CreatedAtMs, entry.PostID),
			EntityType:    "FEED_ENTRY",
			FollowerID:    entry.FollowerID,
			PostID:        entry.PostID,
			AuthorID:      entry.AuthorID,
			Username:      entry.Username,
			DisplayName:   entry.DisplayName,
			Avatar:        entry.Avatar,
			Content:       entry.Content,
			ImageURL:      entry.ImageURL,
			LikesCount:    entry.LikesCount,
			CommentsCount: entry.CommentsCount,
			CreatedAt:     entry.CreatedAt.Format(time.RFC3339),
			CreatedAtMs:   entry.CreatedAtMs,
		})
		if err != nil {
			return 0, appErrors.Wrap(err, "failed to marshal feed entry")
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: av},
		})
	}

	pending := map[string][]types.WriteRequest{r.tableName: requests}
	for attempt := 0; len(pending[r.tableName]) > 0; attempt++ {
		result, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return 0, appErrors.Wrap(err, "failed to batch write feed entries")
		}

		unprocessed := result.UnprocessedItems[r.tableName]
		if len(unprocessed) == 0 {
			break
		}
		if attempt >= unprocessedRetries {
			r.logger.Warn("Giving up on unprocessed feed entries",
				zap.Int("remaining", len(unprocessed)),
				zap.Int("attempts", attempt+1),
			)
			return len(entries) - len(unprocessed), appErrors.NewUnavailableError("dynamodb")
		}

		select {
		case <-ctx.Done():
			return len(entries) - len(unprocessed), ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 100 * time.Millisecond):
		}
		pending = map[string][]types.WriteRequest{r.tableName: unprocessed}
	}

	return len(entries), nil
}

// ListByUser returns the user's feed entries newest-first
func (r *FeedRepository) ListByUser(ctx context.Context, userID string, limit int32) ([]*entities.FeedEntry, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(FeedPK(userID))).
		And(expression.Key("SK").BeginsWith(TimelinePrefix()))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build feed query")
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(limit),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to query feed")
	}

	entries := make([]*entities.FeedEntry, 0, len(result.Items))
	for _, raw := range result.Items {
		var item feedItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, appErrors.Wrap(err, "failed to unmarshal feed entry")
		}
		createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
		if err != nil {
			return nil, appErrors.Wrap(err, "invalid CreatedAt on feed entry")
		}
		entries = append(entries, &entities.FeedEntry{
			FollowerID:    item.FollowerID,
			PostID:        item.PostID,
			AuthorID:      item.AuthorID,
			Username:      item.Username,
			DisplayName:   item.DisplayName,
			Avatar:        item.Avatar,
			Content:       item.Content,
			ImageURL:      item.ImageURL,
			LikesCount:    item.LikesCount,
			CommentsCount: item.CommentsCount,
			CreatedAt:     createdAt,
			CreatedAtMs:   item.CreatedAtMs,
		})
	}
	return entries, nil
}
