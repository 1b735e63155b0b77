// The fanout Lambda consumes post.created events from EventBridge and
// replicates each post into follower feeds. Returning an error makes
// EventBridge redeliver the event; the feed writes are idempotent, so a
// retry after partial failure only rewrites what already landed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"pulse-backend/domain/events"
	"pulse-backend/infrastructure/config"
	"pulse-backend/infrastructure/di"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

var container *di.Container

// init runs during cold start
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

// Handler processes one post.created event
func Handler(ctx context.Context, event awsevents.EventBridgeEvent) error {
	logger := container.Logger

	if event.DetailType != events.TypePostCreated {
		logger.Warn("Ignoring unexpected event",
			zap.String("detailType", event.DetailType),
			zap.String("source", event.Source),
		)
		return nil
	}

	var postCreated events.PostCreated
	if err := json.Unmarshal(event.Detail, &postCreated); err != nil {
		// Unparseable events never become parseable; don't ask for redelivery
		logger.Error("Failed to unmarshal event detail", zap.Error(err))
		return nil
	}

	logger.Info("Processing fan-out",
		zap.String("postID", postCreated.PostID),
		zap.String("userID", postCreated.UserID),
	)

	result, err := container.FeedService.HandlePostCreated(ctx, postCreated)
	if err != nil {
		if result != nil && result.PartialFailure() {
			// Surface the partial failure for redelivery
			return fmt.Errorf("fan-out incomplete for post %s: %w", postCreated.PostID, err)
		}
		return err
	}

	// Feed entries are durable; live push is best effort on top
	container.FeedService.NotifyFollowers(ctx, result.Followers, postCreated)

	return nil
}

func main() {
	lambda.Start(Handler)
}
