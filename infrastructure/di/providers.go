package di

import (
	"context"
	"fmt"

	"pulse-backend/application/ports"
	"pulse-backend/application/services"
	"pulse-backend/infrastructure/config"
	"pulse-backend/infrastructure/messaging/eventbridge"
	"pulse-backend/infrastructure/messaging/websocket"
	"pulse-backend/infrastructure/persistence/dynamodb"
	"pulse-backend/interfaces/http/rest"
	"pulse-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsapigw "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideManagementAPIClient creates an API Gateway management client for
// pushing to WebSocket connections. Without a configured endpoint there is
// nothing to push to and the client is nil.
func ProvideManagementAPIClient(awsCfg aws.Config, cfg *config.Config) *awsapigw.Client {
	if cfg.WebSocketEndpoint == "" {
		return nil
	}
	return awsapigw.NewFromConfig(awsCfg, func(o *awsapigw.Options) {
		o.BaseEndpoint = aws.String(cfg.WebSocketEndpoint)
	})
}

// ProvideProfileRepository creates a profile repository
func ProvideProfileRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProfileRepository {
	return dynamodb.NewProfileRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideSocialGraphRepository creates a social graph repository
func ProvideSocialGraphRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.SocialGraphRepository {
	return dynamodb.NewSocialGraphRepository(client, cfg.DynamoDBTable, logger)
}

// ProvidePostRepository creates a post repository
func ProvidePostRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PostRepository {
	return dynamodb.NewPostRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideLikeRepository creates a like repository
func ProvideLikeRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.LikeRepository {
	return dynamodb.NewLikeRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideFeedRepository creates a feed repository
func ProvideFeedRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.FeedRepository {
	return dynamodb.NewFeedRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideConnectionRepository creates a connection repository
func ProvideConnectionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ConnectionRepository {
	return dynamodb.NewConnectionRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventBus creates an event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideLivePusher creates the WebSocket push adapter
func ProvideLivePusher(client *awsapigw.Client, connections ports.ConnectionRepository, logger *zap.Logger) ports.LivePusher {
	if client == nil {
		return nil
	}
	return websocket.NewNotifier(client, connections, logger)
}

// ProvideMetrics creates a metrics publisher. Metrics are skipped entirely
// when disabled; the nil client makes every publish a no-op.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	if !cfg.EnableMetrics {
		return observability.NewMetrics(namespace, nil)
	}
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the xray tracer; nil when tracing is disabled
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("pulse-backend")
}

// ProvideProfileService creates the profile service
func ProvideProfileService(profiles ports.ProfileRepository, eventBus ports.EventBus, logger *zap.Logger) *services.ProfileService {
	return services.NewProfileService(profiles, eventBus, logger)
}

// ProvideSocialGraphService creates the social graph service
func ProvideSocialGraphService(graph ports.SocialGraphRepository, eventBus ports.EventBus, logger *zap.Logger) *services.SocialGraphService {
	return services.NewSocialGraphService(graph, eventBus, logger)
}

// ProvidePostService creates the post service
func ProvidePostService(posts ports.PostRepository, profiles ports.ProfileRepository, eventBus ports.EventBus, logger *zap.Logger) *services.PostService {
	return services.NewPostService(posts, profiles, eventBus, logger)
}

// ProvideLikeService creates the like service
func ProvideLikeService(likes ports.LikeRepository, posts ports.PostRepository, eventBus ports.EventBus, logger *zap.Logger) *services.LikeService {
	return services.NewLikeService(likes, posts, eventBus, logger)
}

// ProvideFeedService creates the feed service
func ProvideFeedService(
	graph ports.SocialGraphRepository,
	feed ports.FeedRepository,
	connections ports.ConnectionRepository,
	pusher ports.LivePusher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *services.FeedService {
	return services.NewFeedService(graph, feed, connections, pusher, metrics, tracer, logger, cfg.FanoutBatchSize, cfg.FeedPageSize)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	profiles *services.ProfileService,
	graph *services.SocialGraphService,
	posts *services.PostService,
	likes *services.LikeService,
	feed *services.FeedService,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(profiles, graph, posts, likes, feed, logger)
}
