package services

import (
	"context"

	"go.uber.org/zap"

	"portfolio-backend/application/ports"
	"portfolio-backend/domain/core/valueobjects"
	"portfolio-backend/pkg/cache"
	pkgerrors "portfolio-backend/pkg/errors"
)

const MsgBlogFetchFailed = "Failed to fetch blog posts"

// BlogService serves Substack posts through a TTL cache
type BlogService struct {
	source ports.FeedSource
	cache  *cache.TTL[[]valueobjects.BlogPost]
	logger *zap.Logger
}

// NewBlogService creates a new blog service around an explicit cache
func NewBlogService(source ports.FeedSource, c *cache.TTL[[]valueobjects.BlogPost], logger *zap.Logger) *BlogService {
	return &BlogService{source: source, cache: c, logger: logger}
}

// Posts returns the cached posts, refreshing them when the TTL has passed. A failed
// refresh serves the previous posts if there are any.
func (s *BlogService) Posts(ctx context.Context) ([]valueobjects.BlogPost, error) {
	res, err := s.cache.GetOrRefresh(ctx, s.source.FetchPosts)
	if err != nil {
		return nil, pkgerrors.NewExternalError("substack", MsgBlogFetchFailed, err)
	}

	switch {
	case res.Stale:
		s.logger.Warn("Returning stale cached posts due to error",
			zap.Error(res.Err),
			zap.Time("fetched_at", res.FetchedAt),
		)
	case res.Hit:
		s.logger.Debug("Returning cached posts", zap.Int("count", len(res.Value)))
	default:
		s.logger.Info("Fetched posts from Substack", zap.Int("count", len(res.Value)))
	}

	if res.Value == nil {
		return []valueobjects.BlogPost{}, nil
	}
	return res.Value, nil
}

// Post finds a single post by slug
func (s *BlogService) Post(ctx context.Context, slug string) (valueobjects.BlogPost, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return valueobjects.BlogPost{}, err
	}
	post, ok := valueobjects.FindPost(posts, slug)
	if !ok {
		return valueobjects.BlogPost{}, pkgerrors.NewNotFoundError("Post")
	}
	return post, nil
}
