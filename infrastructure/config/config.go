// Package config loads runtime configuration. Sources, lowest priority first:
// built-in defaults, the optional YAML file named by CONFIG_FILE, and environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment is the deployment stage
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config holds all application configuration
type Config struct {
	Environment Environment `yaml:"environment"`
	IsLambda    bool        `yaml:"is_lambda"`

	Server        Server        `yaml:"server"`
	Logging       Logging       `yaml:"logging"`
	Google        Google        `yaml:"google"`
	Email         Email         `yaml:"email"`
	Spotify       Spotify       `yaml:"spotify"`
	YouTube       YouTube       `yaml:"youtube"`
	Instagram     Instagram     `yaml:"instagram"`
	Blog          Blog          `yaml:"blog"`
	Security      Security      `yaml:"security"`
	AWS           AWS           `yaml:"aws"`
	Observability Observability `yaml:"observability"`
	Upstream      Upstream      `yaml:"upstream"`

	// LoadedFrom lists the sources applied, in order
	LoadedFrom []string `yaml:"-"`
}

type Server struct {
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes int64         `yaml:"max_request_bytes"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// Google holds the service-account credentials for the spreadsheet
type Google struct {
	ServiceAccountEmail string `yaml:"service_account_email"`
	PrivateKey          string `yaml:"private_key"`
	SpreadsheetID       string `yaml:"spreadsheet_id"`
	ContactRange        string `yaml:"contact_range"`
}

type Email struct {
	User        string `yaml:"user"`
	AppPassword string `yaml:"app_password"`
	SMTPHost    string `yaml:"smtp_host"`
	SMTPPort    int    `yaml:"smtp_port"`
}

type Spotify struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	RedirectURI  string `yaml:"redirect_uri"`
}

type YouTube struct {
	APIKey    string `yaml:"api_key"`
	ChannelID string `yaml:"channel_id"`
}

type Instagram struct {
	AccessToken string `yaml:"access_token"`
	UserID      string `yaml:"user_id"`
}

type Blog struct {
	FeedURL  string        `yaml:"feed_url"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type Security struct {
	AdminJWTSecret     string `yaml:"admin_jwt_secret"`
	AdminJWTIssuer     string `yaml:"admin_jwt_issuer"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	RateLimitTable     string `yaml:"rate_limit_table"`
}

type AWS struct {
	Region       string `yaml:"region"`
	EventBusName string `yaml:"event_bus_name"`
}

type Observability struct {
	ServiceName   string `yaml:"service_name"`
	EnableMetrics bool   `yaml:"enable_metrics"`
	EnableTracing bool   `yaml:"enable_tracing"`
	OTLPEndpoint  string `yaml:"otlp_endpoint"`
}

// Upstream tunes the shared outbound HTTP client
type Upstream struct {
	Timeout          time.Duration `yaml:"timeout"`
	BreakerFailures  uint32        `yaml:"breaker_failures"`
	BreakerOpenAfter time.Duration `yaml:"breaker_open_timeout"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Environment: Development,
		Server: Server{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxRequestBytes: 10 << 20,
			AllowedOrigins:  []string{"http://localhost:3000"},
		},
		Logging: Logging{Level: "info"},
		Google:  Google{ContactRange: "Responses!A:E"},
		Email: Email{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 587,
		},
		Blog: Blog{
			FeedURL:  "https://shirokokun.substack.com/feed",
			CacheTTL: 30 * time.Minute,
		},
		Security: Security{
			AdminJWTIssuer:     "portfolio-backend",
			RateLimitPerMinute: 60,
		},
		AWS: AWS{Region: "us-east-1"},
		Observability: Observability{
			ServiceName: "portfolio-backend",
		},
		Upstream: Upstream{
			Timeout:          10 * time.Second,
			BreakerFailures:  5,
			BreakerOpenAfter: 30 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, the CONFIG_FILE and the environment
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.LoadedFrom = append(cfg.LoadedFrom, "defaults")

	if path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		} else {
			cfg.LoadedFrom = append(cfg.LoadedFrom, path)
		}
	}

	cfg.applyEnv()
	cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	// NODE_ENV is what the hosting dashboards already set; ENVIRONMENT wins when both are present
	if env := getEnv("ENVIRONMENT", os.Getenv("NODE_ENV")); env != "" {
		c.Environment = Environment(strings.ToLower(env))
	}
	c.IsLambda = getEnvBool("IS_LAMBDA", c.IsLambda || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "")

	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	c.Server.Host = getEnv("HOST", c.Server.Host)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	c.Google.ServiceAccountEmail = getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", c.Google.ServiceAccountEmail)
	c.Google.PrivateKey = getEnv("GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY", c.Google.PrivateKey)
	c.Google.SpreadsheetID = getEnv("GOOGLE_SHEETS_ID", c.Google.SpreadsheetID)
	c.Google.ContactRange = getEnv("GOOGLE_SHEETS_RANGE", c.Google.ContactRange)

	c.Email.User = getEnv("EMAIL_USER", c.Email.User)
	c.Email.AppPassword = getEnv("EMAIL_APP_PASSWORD", c.Email.AppPassword)
	c.Email.SMTPHost = getEnv("SMTP_HOST", c.Email.SMTPHost)
	c.Email.SMTPPort = getEnvInt("SMTP_PORT", c.Email.SMTPPort)

	c.Spotify.ClientID = getEnv("SPOTIFY_CLIENT_ID", c.Spotify.ClientID)
	c.Spotify.ClientSecret = getEnv("SPOTIFY_CLIENT_SECRET", c.Spotify.ClientSecret)
	c.Spotify.RefreshToken = getEnv("SPOTIFY_REFRESH_TOKEN", c.Spotify.RefreshToken)
	c.Spotify.RedirectURI = getEnv("SPOTIFY_REDIRECT_URI", c.Spotify.RedirectURI)

	c.YouTube.APIKey = getEnv("YOUTUBE_API_KEY", c.YouTube.APIKey)
	c.YouTube.ChannelID = getEnv("YOUTUBE_CHANNEL_ID", c.YouTube.ChannelID)

	c.Instagram.AccessToken = getEnv("INSTAGRAM_ACCESS_TOKEN", c.Instagram.AccessToken)
	c.Instagram.UserID = getEnv("INSTAGRAM_USER_ID", c.Instagram.UserID)

	c.Blog.FeedURL = getEnv("SUBSTACK_FEED_URL", c.Blog.FeedURL)
	c.Blog.CacheTTL = getEnvDuration("BLOG_CACHE_TTL", c.Blog.CacheTTL)

	c.Security.AdminJWTSecret = getEnv("ADMIN_JWT_SECRET", c.Security.AdminJWTSecret)
	c.Security.AdminJWTIssuer = getEnv("ADMIN_JWT_ISSUER", c.Security.AdminJWTIssuer)
	c.Security.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.Security.RateLimitPerMinute)
	c.Security.RateLimitTable = getEnv("RATE_LIMIT_TABLE", c.Security.RateLimitTable)

	c.AWS.Region = getEnv("AWS_REGION", c.AWS.Region)
	c.AWS.EventBusName = getEnv("EVENT_BUS_NAME", c.AWS.EventBusName)

	c.Observability.EnableMetrics = getEnvBool("ENABLE_METRICS", c.Observability.EnableMetrics)
	c.Observability.EnableTracing = getEnvBool("ENABLE_TRACING", c.Observability.EnableTracing)
	c.Observability.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Observability.OTLPEndpoint)
	c.Observability.ServiceName = getEnv("OTEL_SERVICE_NAME", c.Observability.ServiceName)

	c.Upstream.Timeout = getEnvDuration("UPSTREAM_TIMEOUT", c.Upstream.Timeout)
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Staging, Production, "test":
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.MaxRequestBytes <= 0 {
		return errors.New("max_request_bytes must be positive")
	}
	if c.Security.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Blog.CacheTTL <= 0 {
		return errors.New("blog cache ttl must be positive")
	}
	if c.IsProduction() && c.Security.AdminJWTSecret == "" {
		return errors.New("ADMIN_JWT_SECRET is required in production")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// SheetsConfigured reports whether the raw Google values are all present
func (g Google) SheetsConfigured() bool {
	return g.ServiceAccountEmail != "" && g.PrivateKey != "" && g.SpreadsheetID != ""
}

// Configured reports whether SMTP credentials are present
func (e Email) Configured() bool {
	return e.User != "" && e.AppPassword != ""
}

// Configured reports whether the refresh-token flow can run
func (s Spotify) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != "" && s.RefreshToken != ""
}

func (y YouTube) Configured() bool {
	return y.APIKey != "" && y.ChannelID != ""
}

func (i Instagram) Configured() bool {
	return i.AccessToken != "" && i.UserID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return value == "yes"
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("10s") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
