// Package main implements the WebSocket lifecycle Lambda handler. It stores
// a connection record on $connect and removes it on $disconnect; the fanout
// consumer uses these records to push new posts to online followers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"pulse-backend/domain/core/entities"
	"pulse-backend/infrastructure/config"
	"pulse-backend/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

// connectionTTL ages out records whose disconnect was never delivered
const connectionTTL = 24 * time.Hour

var container *di.Container

func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
}

func handler(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return handleConnect(ctx, request)
	case "$disconnect":
		return handleDisconnect(ctx, request)
	default:
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
	}
}

func handleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	userID := request.QueryStringParameters["userId"]
	if userID == "" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Body:       `{"error": "userId is required"}`,
		}, nil
	}

	now := time.Now().UTC()
	conn := &entities.Connection{
		ConnectionID: request.RequestContext.ConnectionID,
		UserID:       userID,
		Endpoint:     fmt.Sprintf("%s/%s", request.RequestContext.DomainName, request.RequestContext.Stage),
		ConnectedAt:  now,
		TTL:          now.Add(connectionTTL).Unix(),
	}

	if err := container.ConnectionRepo.Save(ctx, conn); err != nil {
		container.Logger.Error("Failed to store connection",
			zap.Error(err),
			zap.String("connectionID", conn.ConnectionID),
		)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"error": "internal server error"}`,
		}, nil
	}

	container.Logger.Info("WebSocket connected",
		zap.String("connectionID", conn.ConnectionID),
		zap.String("userID", userID),
	)

	body, _ := json.Marshal(map[string]interface{}{
		"type":         "connection_established",
		"connectionId": conn.ConnectionID,
		"userId":       userID,
		"timestamp":    now.Unix(),
	})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
	}, nil
}

func handleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID

	if err := container.ConnectionRepo.Delete(ctx, connectionID); err != nil {
		container.Logger.Warn("Failed to remove connection",
			zap.Error(err),
			zap.String("connectionID", connectionID),
		)
	} else {
		container.Logger.Info("WebSocket disconnected",
			zap.String("connectionID", connectionID),
		)
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

func main() {
	lambda.Start(handler)
}
