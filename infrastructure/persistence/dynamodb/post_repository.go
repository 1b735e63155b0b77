package dynamodb

import (
	"context"
	"strconv"
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

// PostRepository implements ports.PostRepository on DynamoDB. A post is
// written twice at creation: the canonical record under its own partition
// and a timeline copy under the author's partition, sorted by creation
// timestamp.
type PostRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.PostRepository {
	return &PostRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// postItem is the DynamoDB shape of a post record. The same attribute set is
// used for the canonical record and the author-timeline copy; only the keys
// and EntityType differ.
type postItem struct {
	PK            string `dynamodbav:"PK"`
	SK            string `dynamodbav:"SK"`
	EntityType    string `dynamodbav:"EntityType"`
	PostID        string `dynamodbav:"PostID"`
	UserID        string `dynamodbav:"UserID"`
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

// Create commits the canonical post, the author-timeline copy and the
// author's PostsCount increment as one transaction. The canonical put is
// conditioned on the post id being new; the counter update is conditioned on
// the author profile existing.
func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	canonical := toPostItem(post)
	canonical.PK = PostPK(post.PostID)
	canonical.SK = PostMetadataSK()
	canonical.EntityType = "POST"

	timeline := toPostItem(post)
	timeline.PK = UserPK(post.UserID)
	timeline.SK = TimelineSK(post.CreatedAtMs, post.PostID)
	timeline.EntityType = "TIMELINE_POST"

	canonicalAV, err := attributevalue.MarshalMap(canonical)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal post")
	}
	timelineAV, err := attributevalue.MarshalMap(timeline)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal timeline copy")
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                canonicalAV,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item:      timelineAV,
				},
			},
			profileCounterAdd(r.tableName, post.UserID, "PostsCount", 1),
		},
	})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return appErrors.NewAlreadyExistsError("post").WithDetails(map[string]interface{}{
				"postId": post.PostID,
			})
		}
		if conditionFailedAt(err, 2) {
			return appErrors.NewNotFoundError("author profile")
		}
		r.logger.Error("Failed to create post",
			zap.Error(err),
			zap.String("postID", post.PostID),
			zap.String("userID", post.UserID),
		)
		return appErrors.Wrap(err, "failed to create post")
	}

	r.logger.Info("Post created",
		zap.String("postID", post.PostID),
		zap.String("userID", post.UserID),
	)
	return nil
}

// GetByID returns the canonical post, or nil when it does not exist
func (r *PostRepository) GetByID(ctx context.Context, postID string) (*entities.Post, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: PostPK(postID)},
			"SK": &types.AttributeValueMemberS{Value: PostMetadataSK()},
		},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to get post")
	}
	if result.Item == nil {
		return nil, nil
	}

	var item postItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal post")
	}
	return item.toEntity()
}

// ListByUser returns the author's timeline newest-first. The timestamp-led
// sort keys make a descending key order the creation order.
func (r *PostRepository) ListByUser(ctx context.Context, userID string, limit int32) ([]*entities.Post, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(UserPK(userID))).
		And(expression.Key("SK").BeginsWith(TimelinePrefix()))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build timeline query")
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
		return nil, appErrors.Wrap(err, "failed to query timeline")
	}

	posts := make([]*entities.Post, 0, len(result.Items))
	for _, raw := range result.Items {
		var item postItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, appErrors.Wrap(err, "failed to unmarshal timeline item")
		}
		post, err := item.toEntity()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// UpdateLikeCount adds delta to the canonical post's LikesCount
func (r *PostRepository) UpdateLikeCount(ctx context.Context, postID string, delta int) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: PostPK(postID)},
			"SK": &types.AttributeValueMemberS{Value: PostMetadataSK()},
		},
		UpdateExpression:    aws.String("ADD LikesCount :delta"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewNotFoundError("post")
		}
		return appErrors.Wrap(err, "failed to update like count")
	}
	return nil
}

func toPostItem(p *entities.Post) postItem {
	return postItem{
		PostID:        p.PostID,
		UserID:        p.UserID,
		Username:      p.Username,
		DisplayName:   p.DisplayName,
		Avatar:        p.Avatar,
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		CreatedAtMs:   p.CreatedAtMs,
	}
}

func (item postItem) toEntity() (*entities.Post, error) {
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, "invalid CreatedAt on post item")
	}
	return &entities.Post{
		PostID:        item.PostID,
		UserID:        item.UserID,
		Username:      item.Username,
		DisplayName:   item.DisplayName,
		Avatar:        item.Avatar,
		Content:       item.Content,
		ImageURL:      item.ImageURL,
		LikesCount:    item.LikesCount,
		CommentsCount: item.CommentsCount,
		CreatedAt:     createdAt,
		CreatedAtMs:   item.CreatedAtMs,
	}, nil
}
