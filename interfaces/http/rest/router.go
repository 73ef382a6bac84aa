package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"portfolio-backend/application/ports"
	"portfolio-backend/application/services"
	"portfolio-backend/infrastructure/config"
	"portfolio-backend/interfaces/http/rest/handlers"
	"portfolio-backend/interfaces/http/rest/middleware"
	"portfolio-backend/pkg/auth"
	pkgerrors "portfolio-backend/pkg/errors"
	"portfolio-backend/pkg/observability"
)

// Dependencies are what the router wires into handlers. Limiter, AdminValidator and
// Metrics may be nil to switch the feature off.
type Dependencies struct {
	Config         *config.Config
	Contact        *services.ContactService
	Mindscape      *services.MindscapeService
	Blog           *services.BlogService
	Media          *services.MediaService
	Limiter        auth.RateLimiter
	AdminValidator *auth.JWTValidator
	Metrics        *observability.Collector
	Integrations   map[string]ports.Configurable
	Errors         *pkgerrors.ErrorHandler
	Logger         *zap.Logger
}

// Router creates and configures the HTTP router
type Router struct {
	deps Dependencies
}

// NewRouter creates a new router instance
func NewRouter(deps Dependencies) *Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	if deps.Errors == nil {
		deps.Errors = pkgerrors.NewErrorHandler(deps.Logger, deps.Config.IsDevelopment())
	}
	return &Router{deps: deps}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	cfg := rt.deps.Config
	logger := rt.deps.Logger

	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.SecurityHeaders)
	if cfg.Observability.EnableTracing {
		router.Use(observability.TracingMiddleware(cfg.Observability.ServiceName))
	}
	if rt.deps.Metrics != nil {
		router.Use(observability.MetricsMiddleware(rt.deps.Metrics))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.Server.MaxRequestBytes))

	system := handlers.NewSystemHandler(string(cfg.Environment), rt.deps.Integrations, logger)
	router.NotFound(system.NotFound)
	router.MethodNotAllowed(system.MethodNotAllowed)

	router.Get("/", system.Index)
	router.Get("/health", system.Health)
	router.Get("/ready", system.Ready)
	router.Get("/swagger.json", system.Swagger)
	if rt.deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.deps.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		if rt.deps.Limiter != nil {
			r.Use(middleware.RateLimit(rt.deps.Limiter, cfg.Security.RateLimitPerMinute, rateObserver(rt.deps.Metrics), logger))
		}

		// Contact endpoints
		contact := handlers.NewContactHandler(rt.deps.Contact, cfg.Server.MaxRequestBytes, logger)
		r.Post("/contact", contact.Submit)
		r.Get("/contact/test", contact.TestConnection)

		// Mindscape endpoints
		r.Route("/mindscape", func(r chi.Router) {
			mindscape := handlers.NewMindscapeHandler(rt.deps.Mindscape, rt.deps.Errors, logger)
			r.MethodNotAllowed(mindscape.MethodNotAllowed)
			r.Get("/public", mindscape.Public)
			r.Get("/projects", mindscape.Projects)
			r.Get("/status", mindscape.Status)
			r.With(middleware.RequireAdmin(rt.deps.AdminValidator, logger)).Get("/admin/all", mindscape.AdminAll)
		})

		// Blog endpoints; /post/{slug} is the path the site used first
		blog := handlers.NewBlogHandler(rt.deps.Blog, logger)
		r.Get("/blog/posts", blog.Posts)
		r.Get("/blog/posts/{slug}", blog.Post)
		r.Get("/blog/post/{slug}", blog.Post)

		// Spotify endpoints
		r.Route("/spotify", func(r chi.Router) {
			spotify := handlers.NewSpotifyHandler(rt.deps.Media, cfg.Spotify.RedirectURI, logger)
			r.Get("/now-playing", spotify.NowPlaying)
			r.Get("/recently-played", spotify.RecentlyPlayed)
			r.Get("/auth", spotify.Auth)
			r.Get("/callback", spotify.Callback)
		})

		media := handlers.NewMediaHandler(rt.deps.Media, logger)
		r.Get("/youtube/videos", media.Videos)
		r.Get("/instagram/reels", media.Reels)
	})

	return router
}

// rateObserver avoids handing a typed nil collector to the middleware
func rateObserver(c *observability.Collector) middleware.RateLimitObserver {
	if c == nil {
		return nil
	}
	return c
}
