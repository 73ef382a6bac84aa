package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio-backend/application/ports"
	"portfolio-backend/domain/core/valueobjects"
	pkgerrors "portfolio-backend/pkg/errors"
)

// CodeNotConfigured marks errors caused by missing credentials
const CodeNotConfigured = "NOT_CONFIGURED"

// Upstream page sizes shown on the site
const (
	VideoLimit = 6
	ReelLimit  = 6
)

// SpotifyScopes are requested during the consent flow
var SpotifyScopes = []string{
	"user-read-currently-playing",
	"user-read-recently-played",
	"user-read-playback-state",
}

// SpotifyAuthInfo is what the auth helper endpoint returns
type SpotifyAuthInfo struct {
	AuthURL      string   `json:"authUrl"`
	RedirectURI  string   `json:"redirectUri"`
	Instructions []string `json:"instructions"`
}

// MediaService proxies the Spotify, YouTube and Instagram integrations
type MediaService struct {
	music      ports.MusicSource
	authorizer ports.MusicAuthorizer
	videos     ports.VideoSource
	reels      ports.ReelSource
	logger     *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(
	music ports.MusicSource,
	authorizer ports.MusicAuthorizer,
	videos ports.VideoSource,
	reels ports.ReelSource,
	logger *zap.Logger,
) *MediaService {
	return &MediaService{
		music:      music,
		authorizer: authorizer,
		videos:     videos,
		reels:      reels,
		logger:     logger,
	}
}

func notConfigured(message string) *pkgerrors.AppError {
	return pkgerrors.NewInternalError(message).WithCode(CodeNotConfigured)
}

// IsNotConfigured reports whether err came from missing credentials
func IsNotConfigured(err error) bool {
	appErr := pkgerrors.GetAppError(err)
	return appErr != nil && appErr.Code == CodeNotConfigured
}

// NowPlaying returns nil when nothing is playing
func (s *MediaService) NowPlaying(ctx context.Context) (*valueobjects.NowPlaying, error) {
	if s.music == nil || !s.music.Configured() {
		return nil, notConfigured("Spotify credentials not configured")
	}
	np, err := s.music.NowPlaying(ctx)
	if err != nil {
		return nil, pkgerrors.NewExternalError("spotify", "Failed to fetch now playing", err)
	}
	return np, nil
}

// RecentlyPlayed returns nil when Spotify has no history to report
func (s *MediaService) RecentlyPlayed(ctx context.Context) (*valueobjects.RecentTrack, error) {
	if s.music == nil || !s.music.Configured() {
		return nil, notConfigured("Spotify credentials not configured")
	}
	track, err := s.music.RecentlyPlayed(ctx)
	if err != nil {
		return nil, pkgerrors.NewExternalError("spotify", "Failed to fetch recently played", err)
	}
	if track != nil {
		s.logger.Debug("Last played track",
			zap.String("title", track.Title),
			zap.String("artist", track.Artist),
			zap.String("played_at", track.PlayedAt),
		)
	}
	return track, nil
}

// SpotifyAuth builds the consent URL for redirectURI
func (s *MediaService) SpotifyAuth(redirectURI string) (SpotifyAuthInfo, error) {
	if s.authorizer == nil || !s.authorizer.ClientConfigured() {
		return SpotifyAuthInfo{}, notConfigured("Spotify Client ID not configured")
	}
	return SpotifyAuthInfo{
		AuthURL:     s.authorizer.AuthURL(redirectURI),
		RedirectURI: redirectURI,
		Instructions: []string{
			"1. Visit the authUrl below",
			"2. Log in and authorize the app",
			"3. You will be redirected to /api/spotify/callback",
			"4. Copy the refresh_token from the response",
			"5. Add it to your environment variables as SPOTIFY_REFRESH_TOKEN",
			fmt.Sprintf("6. Make sure this redirect URI is added to your Spotify Dashboard: %s", redirectURI),
		},
	}, nil
}

// SpotifyExchange trades an authorization code for tokens
func (s *MediaService) SpotifyExchange(ctx context.Context, code, redirectURI string) (ports.TokenGrant, error) {
	if s.authorizer == nil || !s.authorizer.ClientConfigured() {
		return ports.TokenGrant{}, notConfigured("Spotify Client ID not configured")
	}
	if code == "" {
		return ports.TokenGrant{}, pkgerrors.NewValidationError("No Authorization Code")
	}
	grant, err := s.authorizer.Exchange(ctx, code, redirectURI)
	if err != nil {
		return ports.TokenGrant{}, pkgerrors.NewExternalError("spotify", "Failed to exchange code for tokens", err)
	}
	return grant, nil
}

// Videos returns the latest uploads with statistics
func (s *MediaService) Videos(ctx context.Context) ([]valueobjects.Video, error) {
	if s.videos == nil || !s.videos.Configured() {
		return nil, notConfigured("YouTube credentials not configured")
	}
	videos, err := s.videos.LatestVideos(ctx, VideoLimit)
	if err != nil {
		return nil, pkgerrors.NewExternalError("youtube", "Failed to fetch YouTube videos", err)
	}
	if videos == nil {
		videos = []valueobjects.Video{}
	}
	return videos, nil
}

// Reels returns the latest Instagram video posts
func (s *MediaService) Reels(ctx context.Context) ([]valueobjects.Reel, error) {
	if s.reels == nil || !s.reels.Configured() {
		return nil, notConfigured("Instagram credentials not configured")
	}
	reels, err := s.reels.LatestReels(ctx, ReelLimit)
	if err != nil {
		return nil, pkgerrors.NewExternalError("instagram", "Failed to fetch Instagram reels", err)
	}
	if reels == nil {
		reels = []valueobjects.Reel{}
	}
	return reels, nil
}
