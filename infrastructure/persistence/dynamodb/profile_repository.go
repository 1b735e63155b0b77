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

// ProfileRepository implements ports.ProfileRepository on DynamoDB
type ProfileRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProfileRepository {
	return &ProfileRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// profileItem is the DynamoDB shape of a profile record
type profileItem struct {
	PK             string `dynamodbav:"PK"`
	SK             string `dynamodbav:"SK"`
	EntityType     string `dynamodbav:"EntityType"`
	UserID         string `dynamodbav:"UserID"`
	Username       string `dynamodbav:"Username"`
	DisplayName    string `dynamodbav:"DisplayName"`
	Bio            string `dynamodbav:"Bio"`
	Avatar         string `dynamodbav:"Avatar"`
	FollowersCount int    `dynamodbav:"FollowersCount"`
	FollowingCount int    `dynamodbav:"FollowingCount"`
	PostsCount     int    `dynamodbav:"PostsCount"`
	IsVerified     bool   `dynamodbav:"IsVerified"`
	IsPrivate      bool   `dynamodbav:"IsPrivate"`
	CreatedAt      string `dynamodbav:"CreatedAt"`
	UpdatedAt      string `dynamodbav:"UpdatedAt"`
	Version        int    `dynamodbav:"Version"`
}

// usernameItem reserves a username. Its bare existence is the uniqueness
// guarantee; UserID points back at the owning profile.
type usernameItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
	Username   string `dynamodbav:"Username"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// Create writes the profile and its username reservation in one transaction.
// Both puts are conditioned on non-existence, so a duplicate user id and a
// taken username are both rejected atomically with nothing committed.
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	profileAV, err := attributevalue.MarshalMap(toProfileItem(profile))
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal profile")
	}

	reservationAV, err := attributevalue.MarshalMap(usernameItem{
		PK:         UsernamePK(profile.Username),
		SK:         ReservationSK(),
		EntityType: "USERNAME",
		UserID:     profile.UserID,
		Username:   profile.Username,
		CreatedAt:  profile.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal username reservation")
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                profileAV,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                reservationAV,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
		},
	})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return appErrors.NewAlreadyExistsError("profile").WithDetails(map[string]interface{}{
				"userId": profile.UserID,
			})
		}
		if conditionFailedAt(err, 1) {
			return appErrors.NewAlreadyExistsError("username").WithDetails(map[string]interface{}{
				"username": profile.Username,
			})
		}
		r.logger.Error("Failed to create profile",
			zap.Error(err),
			zap.String("userID", profile.UserID),
		)
		return appErrors.Wrap(err, "failed to create profile")
	}

	r.logger.Info("Profile created",
		zap.String("userID", profile.UserID),
		zap.String("username", profile.Username),
	)
	return nil
}

// GetByID returns the profile, or nil when it does not exist
func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (*entities.Profile, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: ProfileSK()},
		},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to get profile")
	}
	if result.Item == nil {
		return nil, nil
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal profile")
	}
	return item.toEntity()
}

// GetByUsername resolves the username reservation to the owning profile
func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*entities.Profile, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UsernamePK(username)},
			"SK": &types.AttributeValueMemberS{Value: ReservationSK()},
		},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to get username reservation")
	}
	if result.Item == nil {
		return nil, nil
	}

	var reservation usernameItem
	if err := attributevalue.UnmarshalMap(result.Item, &reservation); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal username reservation")
	}
	return r.GetByID(ctx, reservation.UserID)
}

// Update applies the allow-listed mutable fields, stamps UpdatedAt and bumps
// Version. The update is conditioned on the profile existing and returns the
// item as stored after the write.
func (r *ProfileRepository) Update(ctx context.Context, userID string, update entities.ProfileUpdate) (*entities.Profile, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, userID)
	}

	now := time.Now().UTC()
	builder := expression.
		Set(expression.Name("UpdatedAt"), expression.Value(now.Format(time.RFC3339))).
		Add(expression.Name("Version"), expression.Value(1))

	if update.DisplayName != nil {
		builder = builder.Set(expression.Name("DisplayName"), expression.Value(*update.DisplayName))
	}
	if update.Bio != nil {
		builder = builder.Set(expression.Name("Bio"), expression.Value(*update.Bio))
	}
	if update.Avatar != nil {
		builder = builder.Set(expression.Name("Avatar"), expression.Value(*update.Avatar))
	}
	if update.IsPrivate != nil {
		builder = builder.Set(expression.Name("IsPrivate"), expression.Value(*update.IsPrivate))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(builder).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build update expression")
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: ProfileSK()},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, appErrors.NewNotFoundError("profile")
		}
		r.logger.Error("Failed to update profile",
			zap.Error(err),
			zap.String("userID", userID),
		)
		return nil, appErrors.Wrap(err, "failed to update profile")
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(result.Attributes, &item); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal updated profile")
	}
	return item.toEntity()
}

// UpdateCounters adds the deltas to the profile's counters with the store's
// ADD primitive. No read-modify-write: concurrent adjustments interleave
// safely.
func (r *ProfileRepository) UpdateCounters(ctx context.Context, userID string, deltas entities.CounterDeltas) error {
	if deltas.IsZero() {
		return nil
	}

	var builder expression.UpdateBuilder
	if deltas.Followers != 0 {
		builder = builder.Add(expression.Name("FollowersCount"), expression.Value(deltas.Followers))
	}
	if deltas.Following != 0 {
		builder = builder.Add(expression.Name("FollowingCount"), expression.Value(deltas.Following))
	}
	if deltas.Posts != 0 {
		builder = builder.Add(expression.Name("PostsCount"), expression.Value(deltas.Posts))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(builder).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build counter expression")
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: ProfileSK()},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewNotFoundError("profile")
		}
		return appErrors.Wrap(err, "failed to update profile counters")
	}
	return nil
}

func toProfileItem(p *entities.Profile) profileItem {
	return profileItem{
		PK:             UserPK(p.UserID),
		SK:             ProfileSK(),
		EntityType:     "PROFILE",
		UserID:         p.UserID,
		Username:       p.Username,
		DisplayName:    p.DisplayName,
		Bio:            p.Bio,
		Avatar:         p.Avatar,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		PostsCount:     p.PostsCount,
		IsVerified:     p.IsVerified,
		IsPrivate:      p.IsPrivate,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
		Version:        p.Version,
	}
}

func (item profileItem) toEntity() (*entities.Profile, error) {
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, "invalid CreatedAt on profile item")
	}
	updatedAt, err := time.Parse(time.RFC3339, item.UpdatedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, "invalid UpdatedAt on profile item")
	}
	return &entities.Profile{
		UserID:         item.UserID,
		Username:       item.Username,
		DisplayName:    item.DisplayName,
		Bio:            item.Bio,
		Avatar:         item.Avatar,
		FollowersCount: item.FollowersCount,
		FollowingCount: item.FollowingCount,
		PostsCount:     item.PostsCount,
		IsVerified:     item.IsVerified,
		IsPrivate:      item.IsPrivate,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		Version:        item.Version,
	}, nil
}
