// Package spotify reads the owner's playback state from the Spotify Web API and
// drives the one-time consent flow that produces a refresh token.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"portfolio-backend/application/ports"
	"portfolio-backend/domain/core/valueobjects"
)

const (
	DefaultAuthURL  = "https://accounts.spotify.com/authorize"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
	DefaultAPIBase  = "https://api.spotify.com/v1"
)

// Config holds the app credentials and, for playback reads, the owner's refresh token
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Scopes       []string

	// Endpoint overrides, empty means the public Spotify hosts
	AuthURL  string
	TokenURL string
	APIBase  string
}

// Client implements ports.MusicSource and ports.MusicAuthorizer
type Client struct {
	cfg    Config
	oauth  *oauth2.Config
	base   *http.Client
	api    *http.Client
	now    func() time.Time
	logger *zap.Logger
}

// NewClient builds the client. base carries the upstream timeout and breaker; the
// token transport is layered on top of it and reuses the access token until expiry.
func NewClient(cfg Config, base *http.Client, logger *zap.Logger) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if base == nil {
		base = http.DefaultClient
	}

	c := &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		base:   base,
		now:    time.Now,
		logger: logger,
	}

	if cfg.RefreshToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		ts := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
		c.api = oauth2.NewClient(ctx, ts)
		c.api.Timeout = base.Timeout
	}
	return c
}

// Configured reports whether playback can be read
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != "" && c.cfg.RefreshToken != ""
}

// ClientConfigured reports whether the consent flow can run
func (c *Client) ClientConfigured() bool {
	return c.cfg.ClientID != ""
}

// AuthURL is where the owner grants the app access
func (c *Client) AuthURL(redirectURI string) string {
	conf := *c.oauth
	conf.RedirectURL = redirectURI
	return conf.AuthCodeURL("")
}

// Exchange trades an authorization code for tokens
func (c *Client) Exchange(ctx context.Context, code, redirectURI string) (ports.TokenGrant, error) {
	conf := *c.oauth
	conf.RedirectURL = redirectURI
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return ports.TokenGrant{}, fmt.Errorf("failed to exchange code for tokens: %w", err)
	}

	expiresIn := int(tok.ExpiresIn)
	if expiresIn == 0 && !tok.Expiry.IsZero() {
		expiresIn = int(tok.Expiry.Sub(c.now()).Seconds())
	}
	return ports.TokenGrant{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

type artist struct {
	Name string `json:"name"`
}

type track struct {
	Name    string   `json:"name"`
	Artists []artist `json:"artists"`
	Album   struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	DurationMS int `json:"duration_ms"`
}

func (t track) artistNames() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func (t track) albumImage() string {
	if len(t.Album.Images) == 0 {
		return ""
	}
	return t.Album.Images[0].URL
}

type currentlyPlaying struct {
	IsPlaying  bool   `json:"is_playing"`
	ProgressMS int    `json:"progress_ms"`
	Item       *track `json:"item"`
}

type recentlyPlayed struct {
	Items []struct {
		Track    track  `json:"track"`
		PlayedAt string `json:"played_at"`
	} `json:"items"`
}

// NowPlaying returns nil when nothing is playing
func (c *Client) NowPlaying(ctx context.Context) (*valueobjects.NowPlaying, error) {
	var body currentlyPlaying
	ok, err := c.get(ctx, "/me/player/currently-playing", &body)
	if err != nil || !ok {
		return nil, err
	}
	if body.Item == nil {
		c.logger.Debug("No song currently playing")
		return nil, nil
	}

	return &valueobjects.NowPlaying{
		IsPlaying:     body.IsPlaying,
		Title:         body.Item.Name,
		Artist:        body.Item.artistNames(),
		Album:         body.Item.Album.Name,
		AlbumImageURL: body.Item.albumImage(),
		SongURL:       body.Item.ExternalURLs.Spotify,
		Duration:      body.Item.DurationMS,
		Progress:      body.ProgressMS,
	}, nil
}

// RecentlyPlayed returns nil when there is no history
func (c *Client) RecentlyPlayed(ctx context.Context) (*valueobjects.RecentTrack, error) {
	var body recentlyPlayed
	ok, err := c.get(ctx, "/me/player/recently-played?limit=1", &body)
	if err != nil || !ok {
		return nil, err
	}
	if len(body.Items) == 0 {
		return nil, nil
	}

	item := body.Items[0]
	return &valueobjects.RecentTrack{
		Title:         item.Track.Name,
		Artist:        item.Track.artistNames(),
		Album:         item.Track.Album.Name,
		AlbumImageURL: item.Track.albumImage(),
		SongURL:       item.Track.ExternalURLs.Spotify,
		Duration:      item.Track.DurationMS,
		PlayedAt:      item.PlayedAt,
		Timestamp:     c.now().UnixMilli(),
	}, nil
}

// get decodes a JSON response into v. ok is false when Spotify has nothing to
// report: 204, or any status above 400.
func (c *Client) get(ctx context.Context, path string, v interface{}) (bool, error) {
	if c.api == nil {
		return false, fmt.Errorf("spotify refresh token not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBase+path, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.api.Do(req)
	if err != nil {
		return false, fmt.Errorf("spotify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode > http.StatusBadRequest {
		c.logger.Debug("Spotify API returned no content or error", zap.Int("status", resp.StatusCode))
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("spotify returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, fmt.Errorf("failed to decode spotify response: %w", err)
	}
	return true, nil
}
