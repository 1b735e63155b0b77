// Package websocket pushes payloads to API Gateway WebSocket connections.
// Delivery is best effort: the social write that triggered a push has
// already committed, so push failures are logged and swallowed.
package websocket

import (
	"context"
	"errors"

	"pulse-backend/application/ports"
	"pulse-backend/domain/core/entities"
	appErrors "pulse-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"go.uber.org/zap"
)

// Notifier implements ports.LivePusher on the API Gateway management API
type Notifier struct {
	client      *apigatewaymanagementapi.Client
	connections ports.ConnectionRepository
	logger      *zap.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(client *apigatewaymanagementapi.Client, connections ports.ConnectionRepository, logger *zap.Logger) ports.LivePusher {
	return &Notifier{
		client:      client,
		connections: connections,
		logger:      logger,
	}
}

// Push posts the payload to one connection. A gone connection is cleaned up
// and reported as success; the client has simply disconnected.
func (n *Notifier) Push(ctx context.Context, conn *entities.Connection, payload []byte) error {
	_, err := n.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(conn.ConnectionID),
		Data:         payload,
	})
	if err != nil {
		var gone *types.GoneException
		if errors.As(err, &gone) {
			n.logger.Debug("Connection gone, removing record",
				zap.String("connectionID", conn.ConnectionID),
			)
			if delErr := n.connections.Delete(ctx, conn.ConnectionID); delErr != nil {
				n.logger.Warn("Failed to remove stale connection",
					zap.Error(delErr),
					zap.String("connectionID", conn.ConnectionID),
				)
			}
			return nil
		}
		return appErrors.Wrap(err, "failed to post to connection")
	}
	return nil
}
