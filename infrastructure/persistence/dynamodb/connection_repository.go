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

const connectionsByUserIndex = "GSI1"

// ConnectionRepository implements ports.ConnectionRepository on DynamoDB.
// Connections are keyed by their id and indexed by user through GSI1 so the
// fan-out consumer can find a follower's open connections. Records carry a
// TTL; stale connections age out without explicit cleanup.
type ConnectionRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ConnectionRepository {
	return &ConnectionRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// connectionItem is the DynamoDB shape of a websocket connection record
type connectionItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	GSI1PK       string `dynamodbav:"GSI1PK"`
	GSI1SK       string `dynamodbav:"GSI1SK"`
	EntityType   string `dynamodbav:"EntityType"`
	ConnectionID string `dynamodbav:"ConnectionID"`
	UserID       string `dynamodbav:"UserID"`
	Endpoint     string `dynamodbav:"Endpoint"`
	ConnectedAt  string `dynamodbav:"ConnectedAt"`
	TTL          int64  `dynamodbav:"TTL"`
}

// Save stores a connection record
func (r *ConnectionRepository) Save(ctx context.Context, conn *entities.Connection) error {
	av, err := attributevalue.MarshalMap(connectionItem{
		PK:           ConnectionPK(conn.ConnectionID),
		SK:           ConnectionSK(),
		GSI1PK:       UserPK(conn.UserID),
		GSI1SK:       ConnectionGSI1SK(conn.ConnectionID),
		EntityType:   "CONNECTION",
		ConnectionID: conn.ConnectionID,
		UserID:       conn.UserID,
		Endpoint:     conn.Endpoint,
		ConnectedAt:  conn.ConnectedAt.Format(time.RFC3339),
		TTL:          conn.TTL,
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal connection")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to save connection")
	}

	r.logger.Debug("Connection saved",
		zap.String("connectionID", conn.ConnectionID),
		zap.String("userID", conn.UserID),
	)
	return nil
}

// Delete removes a connection record. Deleting an absent record is not an
// error; disconnects and TTL expiry can race.
func (r *ConnectionRepository) Delete(ctx context.Context, connectionID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: ConnectionPK(connectionID)},
			"SK": &types.AttributeValueMemberS{Value: ConnectionSK()},
		},
	})
	if err != nil {
		return appErrors.Wrap(err, "failed to delete connection")
	}
	return nil
}

// ListByUser returns the user's open connections via GSI1
func (r *ConnectionRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Connection, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(UserPK(userID))).
		And(expression.Key("GSI1SK").BeginsWith("CONNECTION#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build connection query")
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(connectionsByUserIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to query connections")
	}

	connections := make([]*entities.Connection, 0, len(result.Items))
	for _, raw := range result.Items {
		var item connectionItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, appErrors.Wrap(err, "failed to unmarshal connection")
		}
		connectedAt, err := time.Parse(time.RFC3339, item.ConnectedAt)
		if err != nil {
			return nil, appErrors.Wrap(err, "invalid ConnectedAt on connection")
		}
		connections = append(connections, &entities.Connection{
			ConnectionID: item.ConnectionID,
			UserID:       item.UserID,
			Endpoint:     item.Endpoint,
			ConnectedAt:  connectedAt,
			TTL:          item.TTL,
		})
	}
	return connections, nil
}
