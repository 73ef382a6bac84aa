// Package instagram reads the owner's media through the Instagram Graph API.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"portfolio-backend/domain/core/valueobjects"
)

// DefaultGraphURL is the public Graph API host
const DefaultGraphURL = "https://graph.instagram.com"

const mediaFields = "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp"

// Client implements ports.ReelSource
type Client struct {
	graphURL    string
	userID      string
	accessToken string
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a client; graphURL may be empty
func NewClient(graphURL, userID, accessToken string, client *http.Client, logger *zap.Logger) *Client {
	if graphURL == "" {
		graphURL = DefaultGraphURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		graphURL:    graphURL,
		userID:      userID,
		accessToken: accessToken,
		client:      client,
		logger:      logger,
	}
}

// Configured reports whether the user id and access token are set
func (c *Client) Configured() bool {
	return c.userID != "" && c.accessToken != ""
}

type mediaItem struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
}

type mediaPage struct {
	Data []mediaItem `json:"data"`
}

// LatestReels returns up to limit VIDEO posts from the first page of media.
// Videos without a thumbnail use the media URL instead. A limit below 1 asks for nothing.
func (c *Client) LatestReels(ctx context.Context, limit int) ([]valueobjects.Reel, error) {
	if limit <= 0 {
		return []valueobjects.Reel{}, nil
	}

	q := url.Values{}
	q.Set("fields", mediaFields)
	q.Set("access_token", c.accessToken)
	endpoint := fmt.Sprintf("%s/%s/media?%s", c.graphURL, url.PathEscape(c.userID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		// the URL carries the access token
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("failed to fetch Instagram media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch Instagram media: status %d", resp.StatusCode)
	}

	var page mediaPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode Instagram media: %w", err)
	}

	reels := make([]valueobjects.Reel, 0, limit)
	for _, item := range page.Data {
		if len(reels) == limit {
			break
		}
		if item.MediaType != "VIDEO" {
			continue
		}
		thumb := item.ThumbnailURL
		if thumb == "" {
			thumb = item.MediaURL
		}
		reels = append(reels, valueobjects.Reel{
			ID:           item.ID,
			Caption:      item.Caption,
			MediaURL:     item.MediaURL,
			ThumbnailURL: thumb,
			Permalink:    item.Permalink,
			Timestamp:    item.Timestamp,
		})
	}
	c.logger.Debug("Fetched Instagram reels", zap.Int("media", len(page.Data)), zap.Int("reels", len(reels)))
	return reels, nil
}
