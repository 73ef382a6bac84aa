// Package youtube lists a channel's recent uploads through the YouTube Data API.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"portfolio-backend/domain/core/valueobjects"
)

const watchURL = "https://www.youtube.com/watch?v="

var errNoUploads = errors.New("could not find uploads playlist")

// Client implements ports.VideoSource
type Client struct {
	svc       *ytapi.Service
	channelID string
	logger    *zap.Logger
}

// NewClient builds the API service with an API key. An empty key or channel yields
// an unconfigured client. opts are appended last so tests can point at a local server.
func NewClient(ctx context.Context, apiKey, channelID string, base *http.Client, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	c := &Client{channelID: channelID, logger: logger}
	if apiKey == "" || channelID == "" {
		return c, nil
	}
	if base == nil {
		base = http.DefaultClient
	}

	// WithHTTPClient skips the key transport, so the key travels as a query parameter
	all := append([]option.ClientOption{option.WithHTTPClient(&http.Client{
		Transport: &keyTransport{key: apiKey, next: transportOf(base)},
		Timeout:   base.Timeout,
	})}, opts...)

	svc, err := ytapi.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	c.svc = svc
	return c, nil
}

// Configured reports whether an API key and channel are set
func (c *Client) Configured() bool {
	return c.svc != nil
}

// LatestVideos returns up to max uploads, newest first, with view and like counts
func (c *Client) LatestVideos(ctx context.Context, max int64) ([]valueobjects.Video, error) {
	if c.svc == nil {
		return nil, fmt.Errorf("youtube client not configured")
	}

	playlistID, err := c.uploadsPlaylist(ctx)
	if err != nil {
		return nil, err
	}

	items, err := c.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
	}

	ids := make([]string, 0, len(items.Items))
	for _, item := range items.Items {
		if item.Snippet != nil && item.Snippet.ResourceId != nil {
			ids = append(ids, item.Snippet.ResourceId.VideoId)
		}
	}
	if len(ids) == 0 {
		return []valueobjects.Video{}, nil
	}

	stats, err := c.statistics(ctx, ids)
	if err != nil {
		return nil, err
	}

	videos := make([]valueobjects.Video, 0, len(ids))
	for _, item := range items.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		id := item.Snippet.ResourceId.VideoId
		video := valueobjects.Video{
			ID:          id,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   thumbnail(item.Snippet.Thumbnails),
			PublishedAt: item.Snippet.PublishedAt,
			ViewCount:   "0",
			LikeCount:   "0",
			VideoURL:    watchURL + id,
		}
		if s, ok := stats[id]; ok {
			video.ViewCount = strconv.FormatUint(s.ViewCount, 10)
			video.LikeCount = strconv.FormatUint(s.LikeCount, 10)
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func (c *Client) uploadsPlaylist(ctx context.Context) (string, error) {
	resp, err := c.svc.Channels.List([]string{"contentDetails"}).Id(c.channelID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch channel info: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", errNoUploads
	}
	details := resp.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return "", errNoUploads
	}
	return details.RelatedPlaylists.Uploads, nil
}

// statistics is keyed by video id; the API does not promise to keep request order
func (c *Client) statistics(ctx context.Context, ids []string) (map[string]*ytapi.VideoStatistics, error) {
	resp, err := c.svc.Videos.List([]string{"statistics"}).Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video statistics: %w", err)
	}

	stats := make(map[string]*ytapi.VideoStatistics, len(resp.Items))
	for _, v := range resp.Items {
		if v.Statistics != nil {
			stats[v.Id] = v.Statistics
		}
	}
	if len(stats) < len(ids) {
		c.logger.Debug("Statistics missing for some videos", zap.Int("requested", len(ids)), zap.Int("returned", len(stats)))
	}
	return stats, nil
}

func thumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.High != nil && t.High.Url != "" {
		return t.High.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}

type keyTransport struct {
	key  string
	next http.RoundTripper
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("key", t.key)
	r.URL.RawQuery = q.Encode()
	return t.next.RoundTrip(r)
}

func transportOf(c *http.Client) http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}
	return http.DefaultTransport
}
