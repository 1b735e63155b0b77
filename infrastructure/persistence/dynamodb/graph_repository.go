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

// SocialGraphRepository implements ports.SocialGraphRepository on DynamoDB.
// Every follow edge lives twice in the table: under the follower's partition
// for "who do I follow" and mirrored under the followed user's partition for
// follower scans. Both copies and both profile counters move in a single
// transaction.
type SocialGraphRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewSocialGraphRepository creates a new SocialGraphRepository
func NewSocialGraphRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.SocialGraphRepository {
	return &SocialGraphRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// followItem is the DynamoDB shape of one copy of a follow edge
type followItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	FollowerID string `dynamodbav:"FollowerID"`
	FollowedID string `dynamodbav:"FollowedID"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// CreateFollow commits the outgoing edge, its mirror and both counter
// increments as one transaction. The outgoing put is conditioned on the edge
// not existing; the counter updates are conditioned on both profiles
// existing. Any failed condition cancels the whole transaction.
func (r *SocialGraphRepository) CreateFollow(ctx context.Context, edge *entities.FollowEdge) error {
	createdAt := edge.CreatedAt.Format(time.RFC3339)

	outgoing, err := attributevalue.MarshalMap(followItem{
		PK:         UserPK(edge.FollowerID),
		SK:         FollowsSK(edge.FollowedID),
		EntityType: "FOLLOW",
		FollowerID: edge.FollowerID,
		FollowedID: edge.FollowedID,
		CreatedAt:  createdAt,
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal follow edge")
	}

	mirror, err := attributevalue.MarshalMap(followItem{
		PK:         UserPK(edge.FollowedID),
		SK:         FollowerSK(edge.FollowerID),
		EntityType: "FOLLOWER",
		FollowerID: edge.FollowerID,
		FollowedID: edge.FollowedID,
		CreatedAt:  createdAt,
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal follower mirror")
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                outgoing,
					ConditionExpression: aws.String("attribute_not_exists(SK)"),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item:      mirror,
				},
			},
			profileCounterAdd(r.tableName, edge.FollowerID, "FollowingCount", 1),
			profileCounterAdd(r.tableName, edge.FollowedID, "FollowersCount", 1),
		},
	})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return appErrors.NewAlreadyFollowingError(edge.FollowerID, edge.FollowedID)
		}
		if conditionFailedAt(err, 2) {
			return appErrors.NewNotFoundError("follower profile")
		}
		if conditionFailedAt(err, 3) {
			return appErrors.NewNotFoundError("followed profile")
		}
		r.logger.Error("Failed to create follow edge",
			zap.Error(err),
			zap.String("followerID", edge.FollowerID),
			zap.String("followedID", edge.FollowedID),
		)
		return appErrors.Wrap(err, "failed to create follow edge")
	}

	r.logger.Info("Follow edge created",
		zap.String("followerID", edge.FollowerID),
		zap.String("followedID", edge.FollowedID),
	)
	return nil
}

// DeleteFollow removes both copies of the edge and decrements both counters
// as one transaction, conditioned on the outgoing edge existing
func (r *SocialGraphRepository) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"PK": &types.AttributeValueMemberS{Value: UserPK(followerID)},
						"SK": &types.AttributeValueMemberS{Value: FollowsSK(followedID)},
					},
					ConditionExpression: aws.String("attribute_exists(SK)"),
				},
			},
			{
				Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"PK": &types.AttributeValueMemberS{Value: UserPK(followedID)},
						"SK": &types.AttributeValueMemberS{Value: FollowerSK(followerID)},
					},
				},
			},
			profileCounterAdd(r.tableName, followerID, "FollowingCount", -1),
			profileCounterAdd(r.tableName, followedID, "FollowersCount", -1),
		},
	})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return appErrors.NewNotFollowingError(followerID, followedID)
		}
		r.logger.Error("Failed to delete follow edge",
			zap.Error(err),
			zap.String("followerID", followerID),
			zap.String("followedID", followedID),
		)
		return appErrors.Wrap(err, "failed to delete follow edge")
	}

	r.logger.Info("Follow edge deleted",
		zap.String("followerID", followerID),
		zap.String("followedID", followedID),
	)
	return nil
}

// HasFollow reports whether the outgoing edge exists
func (r *SocialGraphRepository) HasFollow(ctx context.Context, followerID, followedID string) (bool, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(followerID)},
			"SK": &types.AttributeValueMemberS{Value: FollowsSK(followedID)},
		},
	})
	if err != nil {
		return false, appErrors.Wrap(err, "failed to get follow edge")
	}
	return result.Item != nil, nil
}

// ListFollowers returns the complete follower set of a user. The query is a
// consistent read over the FOLLOWER# mirror entries, paginated to exhaustion
// so fan-out sees every follower committed before the read.
func (r *SocialGraphRepository) ListFollowers(ctx context.Context, userID string) ([]string, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(UserPK(userID))).
		And(expression.Key("SK").BeginsWith(FollowerPrefix()))

	// The follower id is derived from the sort key itself, so the scan only
	// needs the keys
	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithProjection(expression.NamesList(expression.Name("SK"))).
		Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build follower query")
	}

	followers := make([]string, 0)
	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ConsistentRead:            aws.Bool(true),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, appErrors.Wrap(err, "failed to query followers")
		}

		for _, raw := range result.Items {
			var item followItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, appErrors.Wrap(err, "failed to unmarshal follower item")
			}
			followers = append(followers, FollowerFromSK(item.SK))
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	r.logger.Debug("Listed followers",
		zap.String("userID", userID),
		zap.Int("count", len(followers)),
	)
	return followers, nil
}
