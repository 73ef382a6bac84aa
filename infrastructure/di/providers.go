package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"portfolio-backend/application/ports"
	"portfolio-backend/application/services"
	"portfolio-backend/domain/core/valueobjects"
	"portfolio-backend/infrastructure/config"
	"portfolio-backend/infrastructure/httpclient"
	"portfolio-backend/infrastructure/instagram"
	"portfolio-backend/infrastructure/mail"
	"portfolio-backend/infrastructure/messaging/eventbridge"
	"portfolio-backend/infrastructure/sheets"
	"portfolio-backend/infrastructure/spotify"
	"portfolio-backend/infrastructure/substack"
	"portfolio-backend/infrastructure/youtube"
	"portfolio-backend/interfaces/http/rest"
	"portfolio-backend/interfaces/http/rest/handlers"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/cache"
	pkgerrors "portfolio-backend/pkg/errors"
	"portfolio-backend/pkg/observability"
)

// ProvideLogLevel parses LOG_LEVEL into a level the config watcher can change later
func ProvideLogLevel(cfg *config.Config) zap.AtomicLevel {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	return zap.NewAtomicLevelAt(level)
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", cfg.Observability.ServiceName)), nil
}

// ProvideErrorHandler exposes raw error details outside production only
func ProvideErrorHandler(logger *zap.Logger, cfg *config.Config) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWS.Region),
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

// ProvideCollector returns the Prometheus collector, or nil when metrics are off
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.Observability.EnableMetrics {
		return nil
	}
	return observability.NewCollector("portfolio")
}

// ProvideCloudWatchRecorder is only built inside Lambda, where nothing scrapes /metrics
func ProvideCloudWatchRecorder(client *awscloudwatch.Client, cfg *config.Config) *observability.CloudWatchRecorder {
	if !cfg.IsLambda {
		return nil
	}
	return observability.NewCloudWatchRecorder(client, fmt.Sprintf("Portfolio/%s", cfg.Environment))
}

// ProvideUpstreamRecorder fans upstream calls out to whichever metric sinks exist
func ProvideUpstreamRecorder(collector *observability.Collector, cw *observability.CloudWatchRecorder) observability.UpstreamRecorder {
	var recorders observability.MultiRecorder
	if collector != nil {
		recorders = append(recorders, collector)
	}
	if cw != nil {
		recorders = append(recorders, cw)
	}
	if len(recorders) == 0 {
		return nil
	}
	return recorders
}

// ProvideTracing installs the OTLP tracer when enabled. Exporter setup failures are
// logged and leave tracing off.
func ProvideTracing(ctx context.Context, cfg *config.Config, logger *zap.Logger) *observability.TracerProvider {
	if !cfg.Observability.EnableTracing {
		return nil
	}
	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: cfg.Observability.ServiceName,
		Version:     handlers.APIVersion,
		Environment: string(cfg.Environment),
		Endpoint:    cfg.Observability.OTLPEndpoint,
	})
	if err != nil {
		logger.Warn("Tracing disabled", zap.Error(err))
		return nil
	}
	return tp
}

// ProvideHTTPClientFactory builds the breaker-guarded outbound clients
func ProvideHTTPClientFactory(
	cfg *config.Config,
	recorder observability.UpstreamRecorder,
	collector *observability.Collector,
	logger *zap.Logger,
) *httpclient.Factory {
	opts := httpclient.Options{
		Timeout:          cfg.Upstream.Timeout,
		FailureThreshold: cfg.Upstream.BreakerFailures,
		OpenTimeout:      cfg.Upstream.BreakerOpenAfter,
		Recorder:         recorder,
		Logger:           logger,
	}
	if collector != nil {
		opts.Breakers = collector
	}
	return httpclient.NewFactory(opts)
}

// ProvideSheetsClient creates the spreadsheet client; bad credentials give an
// unconfigured client rather than an error
func ProvideSheetsClient(ctx context.Context, cfg *config.Config, factory *httpclient.Factory, logger *zap.Logger) (*sheets.Client, error) {
	return sheets.NewClient(ctx, sheets.Credentials{
		Email:         cfg.Google.ServiceAccountEmail,
		PrivateKey:    cfg.Google.PrivateKey,
		SpreadsheetID: cfg.Google.SpreadsheetID,
	}, factory.Client("google-sheets"), logger)
}

// ProvideRowParser creates the sheet row parser
func ProvideRowParser() *sheets.RowParser {
	return sheets.NewRowParser(time.Now)
}

// ProvideMindscapeRepository creates the mindscape repository
func ProvideMindscapeRepository(client *sheets.Client, parser *sheets.RowParser, logger *zap.Logger) ports.MindscapeRepository {
	return sheets.NewMindscapeRepository(client, parser, logger)
}

// ProvideProfileRepository creates the projects/status repository
func ProvideProfileRepository(client *sheets.Client, parser *sheets.RowParser) ports.ProfileRepository {
	return sheets.NewProfileRepository(client, parser)
}

// ProvideContactRepository creates the contact repository
func ProvideContactRepository(client *sheets.Client, cfg *config.Config) ports.ContactRepository {
	return sheets.NewContactRepository(client, cfg.Google.ContactRange)
}

// ProvideNotifier creates the SMTP notifier
func ProvideNotifier(cfg *config.Config, logger *zap.Logger) (ports.Notifier, error) {
	return mail.NewNotifier(mail.Config{
		User:          cfg.Email.User,
		AppPassword:   cfg.Email.AppPassword,
		Host:          cfg.Email.SMTPHost,
		Port:          cfg.Email.SMTPPort,
		SpreadsheetID: cfg.Google.SpreadsheetID,
	}, logger)
}

// ProvideEventPublisher returns nil when no event bus is configured
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.AWS.EventBusName == "" {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.AWS.EventBusName, logger)
}

// ProvideContactMetrics avoids handing a typed nil collector to the contact service
func ProvideContactMetrics(collector *observability.Collector) services.ContactMetrics {
	if collector == nil {
		return nil
	}
	return collector
}

// ProvideFeedSource creates the Substack feed reader
func ProvideFeedSource(cfg *config.Config, factory *httpclient.Factory, logger *zap.Logger) ports.FeedSource {
	return substack.NewFeedSource(cfg.Blog.FeedURL, factory.Client("substack"), logger)
}

// ProvideBlogCache creates the posts cache
func ProvideBlogCache(cfg *config.Config, collector *observability.Collector) *cache.TTL[[]valueobjects.BlogPost] {
	var opts []cache.Option
	if collector != nil {
		opts = append(opts, cache.WithObserver(collector))
	}
	return cache.NewTTL[[]valueobjects.BlogPost]("blog_posts", cfg.Blog.CacheTTL, opts...)
}

// ProvideSpotifyClient creates the Spotify client. Spotify answers idle players and
// expired sessions with error statuses, so those do not trip its breaker.
func ProvideSpotifyClient(cfg *config.Config, factory *httpclient.Factory, logger *zap.Logger) *spotify.Client {
	return spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
		Scopes:       services.SpotifyScopes,
	}, factory.Client("spotify", httpclient.TolerateServerErrors()), logger)
}

// ProvideYouTubeClient creates the YouTube client
func ProvideYouTubeClient(ctx context.Context, cfg *config.Config, factory *httpclient.Factory, logger *zap.Logger) (*youtube.Client, error) {
	return youtube.NewClient(ctx, cfg.YouTube.APIKey, cfg.YouTube.ChannelID, factory.Client("youtube"), logger)
}

// ProvideInstagramClient creates the Instagram client
func ProvideInstagramClient(cfg *config.Config, factory *httpclient.Factory, logger *zap.Logger) *instagram.Client {
	return instagram.NewClient("", cfg.Instagram.UserID, cfg.Instagram.AccessToken, factory.Client("instagram"), logger)
}

// ProvideRateLimiter picks the DynamoDB limiter inside Lambda, where instances do not
// share memory, and the in-process token bucket otherwise. A limit of 0 disables it.
func ProvideRateLimiter(cfg *config.Config, client *awsdynamodb.Client) auth.RateLimiter {
	limit := cfg.Security.RateLimitPerMinute
	if limit <= 0 {
		return nil
	}
	if cfg.IsLambda && cfg.Security.RateLimitTable != "" {
		return auth.NewDistributedRateLimiter(client, cfg.Security.RateLimitTable, limit, time.Minute, "API")
	}
	return auth.NewPerMinuteLimiter(limit)
}

// ProvideAdminValidator returns nil without a secret, which leaves the admin route open.
// Validate refuses that combination in production.
func ProvideAdminValidator(cfg *config.Config, logger *zap.Logger) (*auth.JWTValidator, error) {
	if cfg.Security.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET not set, admin endpoints are unauthenticated")
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.Security.AdminJWTSecret,
		Issuer:        cfg.Security.AdminJWTIssuer,
	})
}

// Integrations names the adapters reported by /ready
type Integrations map[string]ports.Configurable

// ProvideIntegrations collects the adapters whose credentials may be missing
func ProvideIntegrations(
	sheetsClient *sheets.Client,
	notifier ports.Notifier,
	spotifyClient *spotify.Client,
	youtubeClient *youtube.Client,
	instagramClient *instagram.Client,
) Integrations {
	return Integrations{
		"googleSheets": sheetsClient,
		"email":        notifier,
		"spotify":      spotifyClient,
		"youtube":      youtubeClient,
		"instagram":    instagramClient,
	}
}

// ProvideRouter builds the HTTP handler
func ProvideRouter(
	cfg *config.Config,
	contact *services.ContactService,
	mindscape *services.MindscapeService,
	blog *services.BlogService,
	media *services.MediaService,
	limiter auth.RateLimiter,
	validator *auth.JWTValidator,
	collector *observability.Collector,
	integrations Integrations,
	errs *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(rest.Dependencies{
		Config:         cfg,
		Contact:        contact,
		Mindscape:      mindscape,
		Blog:           blog,
		Media:          media,
		Limiter:        limiter,
		AdminValidator: validator,
		Metrics:        collector,
		Integrations:   integrations,
		Errors:         errs,
		Logger:         logger,
	}).Setup()
}
