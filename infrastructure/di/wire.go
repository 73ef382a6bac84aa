//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"portfolio-backend/application/ports"
	"portfolio-backend/application/services"
	"portfolio-backend/infrastructure/config"
	"portfolio-backend/infrastructure/instagram"
	"portfolio-backend/infrastructure/spotify"
	"portfolio-backend/infrastructure/youtube"
)

// ObservabilitySet provides logging, metrics and tracing
var ObservabilitySet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideErrorHandler,
	ProvideCollector,
	ProvideCloudWatchRecorder,
	ProvideUpstreamRecorder,
	ProvideTracing,
)

// AWSSet provides the AWS SDK clients
var AWSSet = wire.NewSet(
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
)

// AdapterSet provides the outbound adapters behind the application ports
var AdapterSet = wire.NewSet(
	ProvideHTTPClientFactory,
	ProvideSheetsClient,
	ProvideRowParser,
	ProvideMindscapeRepository,
	ProvideProfileRepository,
	ProvideContactRepository,
	ProvideNotifier,
	ProvideEventPublisher,
	ProvideFeedSource,
	ProvideBlogCache,
	ProvideSpotifyClient,
	wire.Bind(new(ports.MusicSource), new(*spotify.Client)),
	wire.Bind(new(ports.MusicAuthorizer), new(*spotify.Client)),
	ProvideYouTubeClient,
	wire.Bind(new(ports.VideoSource), new(*youtube.Client)),
	ProvideInstagramClient,
	wire.Bind(new(ports.ReelSource), new(*instagram.Client)),
)

// ServiceSet provides the application services
var ServiceSet = wire.NewSet(
	ProvideContactMetrics,
	services.NewContactService,
	services.NewMindscapeService,
	services.NewBlogService,
	services.NewMediaService,
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ObservabilitySet,
	AWSSet,
	AdapterSet,
	ServiceSet,
	ProvideRateLimiter,
	ProvideAdminValidator,
	ProvideIntegrations,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
