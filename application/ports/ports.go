// Package ports declares what the application needs from the outside world.
// Infrastructure packages implement these; services depend only on them.
package ports

import (
	"context"

	"portfolio-backend/domain/core/entities"
	"portfolio-backend/domain/core/valueobjects"
	"portfolio-backend/domain/events"
)

// Configurable is implemented by adapters whose credentials may be missing
type Configurable interface {
	Configured() bool
}

// MindscapeRepository reads the Mindscape sheets
type MindscapeRepository interface {
	Configurable

	// LoadGraph returns every node and connection, public or not
	LoadGraph(ctx context.Context) ([]entities.Node, []entities.Connection, error)

	// ListNodes returns every node
	ListNodes(ctx context.Context) ([]entities.Node, error)
}

// ProfileRepository reads the projects and current_status sheets
type ProfileRepository interface {
	Configurable
	ListProjects(ctx context.Context) ([]entities.Project, error)
	ListStatuses(ctx context.Context) ([]entities.CurrentStatus, error)
}

// ContactRepository stores contact submissions
type ContactRepository interface {
	Configurable

	// Append writes exactly one row for msg
	Append(ctx context.Context, msg entities.ContactMessage) error

	// Ping checks the backing spreadsheet is reachable
	Ping(ctx context.Context) error
}

// Notifier tells the site owner about a new submission
type Notifier interface {
	Configurable
	NotifyContact(ctx context.Context, msg entities.ContactMessage) error
	Verify(ctx context.Context) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// FeedSource fetches blog posts
type FeedSource interface {
	FetchPosts(ctx context.Context) ([]valueobjects.BlogPost, error)
}

// MusicSource reads Spotify playback state. A nil result with a nil error means
// there is nothing to show.
type MusicSource interface {
	Configurable
	NowPlaying(ctx context.Context) (*valueobjects.NowPlaying, error)
	RecentlyPlayed(ctx context.Context) (*valueobjects.RecentTrack, error)
}

// TokenGrant is the result of the Spotify authorization-code exchange
type TokenGrant struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// MusicAuthorizer drives the one-time Spotify consent flow that yields a refresh token
type MusicAuthorizer interface {
	ClientConfigured() bool
	AuthURL(redirectURI string) string
	Exchange(ctx context.Context, code, redirectURI string) (TokenGrant, error)
}

// VideoSource lists recent YouTube uploads
type VideoSource interface {
	Configurable
	LatestVideos(ctx context.Context, max int64) ([]valueobjects.Video, error)
}

// ReelSource lists recent Instagram video posts
type ReelSource interface {
	Configurable
	LatestReels(ctx context.Context, limit int) ([]valueobjects.Reel, error)
}
