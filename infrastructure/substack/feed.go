// Package substack reads posts from a Substack RSS feed.
package substack

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"portfolio-backend/domain/core/valueobjects"
)

// DefaultFeedURL is the site owner's publication
const DefaultFeedURL = "https://shirokokun.substack.com/feed"

// FeedSource fetches and maps the feed. It implements ports.FeedSource.
type FeedSource struct {
	url    string
	client *http.Client
	now    func() time.Time
	logger *zap.Logger
}

// NewFeedSource creates a feed source. client carries the upstream timeout and breaker.
func NewFeedSource(url string, client *http.Client, logger *zap.Logger) *FeedSource {
	if url == "" {
		url = DefaultFeedURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedSource{url: url, client: client, now: time.Now, logger: logger}
}

// FetchPosts downloads the feed and maps every item
func (s *FeedSource) FetchPosts(ctx context.Context) ([]valueobjects.BlogPost, error) {
	parser := gofeed.NewParser()
	parser.Client = s.client
	parser.UserAgent = "portfolio-backend/1.0"

	s.logger.Debug("Fetching posts from Substack RSS", zap.String("url", s.url))
	feed, err := parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", s.url, err)
	}

	posts := make([]valueobjects.BlogPost, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		posts = append(posts, s.mapItem(item))
	}
	return posts, nil
}

func (s *FeedSource) mapItem(item *gofeed.Item) valueobjects.BlogPost {
	snippet := plainText(item.Description)
	if snippet == "" {
		snippet = plainText(item.Content)
	}

	content := item.Content
	if content == "" {
		content = item.Description
	}

	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}

	tags := item.Categories
	if tags == nil {
		tags = []string{}
	}

	var enclosure *valueobjects.Enclosure
	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		enclosure = &valueobjects.Enclosure{URL: item.Enclosures[0].URL, Type: item.Enclosures[0].Type}
	}

	return valueobjects.BlogPost{
		Title:          item.Title,
		Slug:           valueobjects.SlugFromLink(item.Link),
		Excerpt:        valueobjects.Excerpt(snippet),
		Content:        content,
		PublishedAt:    s.publishedAt(item),
		Link:           item.Link,
		Thumbnail:      optional(thumbnail(item)),
		Tags:           tags,
		Author:         author(item),
		GUID:           guid,
		ContentSnippet: snippet,
		Enclosure:      enclosure,
	}
}

func (s *FeedSource) publishedAt(item *gofeed.Item) string {
	switch {
	case item.Published != "":
		return item.Published
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	case item.Updated != "":
		return item.Updated
	default:
		return s.now().UTC().Format(time.RFC3339)
	}
}

// thumbnail prefers an image enclosure, then media:content, then media:thumbnail
func thumbnail(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && (enc.Type == "" || strings.HasPrefix(enc.Type, "image/")) {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, e := range media[name] {
				if u := e.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}

// optional maps "" to nil so a missing image encodes as null
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func author(item *gofeed.Item) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}

// plainText strips markup and collapses whitespace
func plainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
