//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"pulse-backend/application/ports"
	"pulse-backend/application/services"
	"pulse-backend/infrastructure/config"
	"pulse-backend/interfaces/http/rest"
	"pulse-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	ProfileRepo    ports.ProfileRepository
	GraphRepo      ports.SocialGraphRepository
	PostRepo       ports.PostRepository
	LikeRepo       ports.LikeRepository
	FeedRepo       ports.FeedRepository
	ConnectionRepo ports.ConnectionRepository
	EventBus       ports.EventBus
	LivePusher     ports.LivePusher
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	ProfileService *services.ProfileService
	GraphService   *services.SocialGraphService
	PostService    *services.PostService
	LikeService    *services.LikeService
	FeedService    *services.FeedService
	Router         *rest.Router
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideManagementAPIClient,
	ProvideProfileRepository,
	ProvideSocialGraphRepository,
	ProvidePostRepository,
	ProvideLikeRepository,
	ProvideFeedRepository,
	ProvideConnectionRepository,
	ProvideEventBus,
	ProvideLivePusher,
	ProvideMetrics,
	ProvideTracer,
	ProvideProfileService,
	ProvideSocialGraphService,
	ProvidePostService,
	ProvideLikeService,
	ProvideFeedService,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
