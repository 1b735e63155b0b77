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
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// LikeRepository implements ports.LikeRepository on DynamoDB. The like edge
// under the post's partition is authoritative; the reciprocal entry under
// the user's partition serves "what did this user like" scans. Both records
// and the post's LikesCount move in a single transaction, which closes the
// race between two concurrent likes of the same post by the same user.
type LikeRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.LikeRepository {
	return &LikeRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// likeItem is the DynamoDB shape of one copy of a like edge
type likeItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
	PostID     string `dynamodbav:"PostID"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// likeCountAdd builds the transaction item adjusting a post's LikesCount
func likeCountAdd(tableName, postID string, delta int) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: PostPK(postID)},
				"SK": &types.AttributeValueMemberS{Value: PostMetadataSK()},
			},
			UpdateExpression:    aws.String("ADD LikesCount :delta"),
			ConditionExpression: aws.String("attribute_exists(PK)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
			},
		},
	}
}

// Create commits the like edge, its reciprocal index entry and the post's
// LikesCount increment as one transaction. The edge put is conditioned on
// non-existence, so the counter can only ever move once per (user, post).
func (r *LikeRepository) Create(ctx context.Context, like *entities.Like) error {
	createdAt := like.CreatedAt.Format(time.RFC3339)

	edge, err := attributevalue.MarshalMap(likeItem{
		PK:         PostPK(like.PostID),
		SK:         LikeSK(like.UserID),
		EntityType: "LIKE",
		UserID:     like.UserID,
		PostID:     like.PostID,
		CreatedAt:  createdAt,
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal like edge")
	}

	reciprocal, err := attributevalue.MarshalMap(likeItem{
		PK:         UserPK(like.UserID),
		SK:         LikedSK(like.PostID),
		EntityType: "LIKED",
		UserID:     like.UserID,
		PostID:     like.PostID,
		CreatedAt:  createdAt,
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal like index entry")
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                edge,
					ConditionExpression: aws.String("attribute_not_exists(SK)"),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item:      reciprocal,
				},
			},
			likeCountAdd(r.tableName, like.PostID, 1),
		},
	})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return appErrors.NewAlreadyLikedError(like.UserID, like.PostID)
		}
		if conditionFailedAt(err, 2) {
			return appErrors.NewNotFoundError("post")
		}
		r.logger.Error("Failed to create like",
			zap.Error(err),
			zap.String("userID", like.UserID),
			zap.String("postID", like.PostID),
		)
		return appErrors.Wrap(err, "failed to create like")
	}

	r.logger.Info("Like created",
		zap.String("userID", like.UserID),
		zap.String("postID", like.PostID),
	)
	return nil
}

// Delete removes both like records and decrements the post's LikesCount as
// one transaction, conditioned on the like edge existing
func (r *LikeRepository) Delete(ctx context.Context, userID, postID string) error {
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"PK": &types.AttributeValueMemberS{Value: PostPK(postID)},
						"SK": &types.AttributeValueMemberS{Value: LikeSK(userID)},
					},
					ConditionExpression: aws.String("attribute_exists(SK)"),
				},
			},
			{
				Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"PK": &types.AttributeValueMemberS{Value: UserPK(userID)},
						"SK": &types.AttributeValueMemberS{Value: LikedSK(postID)},
					},
				},
			},
			likeCountAdd(r.tableName, postID, -1),
		},
	})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return appErrors.NewNotFoundError("like")
		}
		r.logger.Error("Failed to delete like",
			zap.Error(err),
			zap.String("userID", userID),
			zap.String("postID", postID),
		)
		return appErrors.Wrap(err, "failed to delete like")
	}
	return nil
}

// Exists reports whether the user has liked the post
func (r *LikeRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: PostPK(postID)},
			"SK": &types.AttributeValueMemberS{Value: LikeSK(userID)},
		},
	})
	if err != nil {
		return false, appErrors.Wrap(err, "failed to get like edge")
	}
	return result.Item != nil, nil
}
