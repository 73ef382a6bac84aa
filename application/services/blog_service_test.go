package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio-backend/domain/core/valueobjects"
	"portfolio-backend/pkg/cache"
	pkgerrors "portfolio-backend/pkg/errors"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBlogService(feed *mockFeed, clock *fakeClock) *BlogService {
	c := cache.NewTTL[[]valueobjects.BlogPost]("blog", 30*time.Minute, cache.WithClock(clock.Now))
	return NewBlogService(feed, c, zap.NewNop())
}

func TestBlogService_CachesForThirtyMinutes(t *testing.T) {
	// Arrange
	clock := &fakeClock{t: fixedNow}
	first := []valueobjects.BlogPost{{Title: "One", Slug: "one"}}
	second := []valueobjects.BlogPost{{Title: "Two", Slug: "two"}}
	feed := new(mockFeed)
	feed.On("FetchPosts", mock.Anything).Return(first, nil).Once()
	feed.On("FetchPosts", mock.Anything).Return(second, nil).Once()
	svc := newTestBlogService(feed, clock)

	// Act
	a, err := svc.Posts(context.Background())
	require.NoError(t, err)
	clock.Advance(29 * time.Minute)
	b, err := svc.Posts(context.Background())
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)
	c, err := svc.Posts(context.Background())
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first, a)
	assert.Equal(t, first, b)
	assert.Equal(t, second, c)
	feed.AssertNumberOfCalls(t, "FetchPosts", 2)
}

func TestBlogService_ServesStaleOnRefreshFailure(t *testing.T) {
	clock := &fakeClock{t: fixedNow}
	posts := []valueobjects.BlogPost{{Title: "One", Slug: "one"}}
	feed := new(mockFeed)
	feed.On("FetchPosts", mock.Anything).Return(posts, nil).Once()
	feed.On("FetchPosts", mock.Anything).Return(nil, errors.New("feed down")).Once()
	svc := newTestBlogService(feed, clock)

	_, err := svc.Posts(context.Background())
	require.NoError(t, err)
	clock.Advance(time.Hour)

	got, err := svc.Posts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, posts, got)
}

func TestBlogService_FailsWithoutCache(t *testing.T) {
	feed := new(mockFeed)
	feed.On("FetchPosts", mock.Anything).Return(nil, errors.New("feed down"))
	svc := newTestBlogService(feed, &fakeClock{t: fixedNow})

	_, err := svc.Posts(context.Background())

	require.Error(t, err)
	assert.Equal(t, MsgBlogFetchFailed, pkgerrors.GetAppError(err).Message)
}

func TestBlogService_Post(t *testing.T) {
	feed := new(mockFeed)
	feed.On("FetchPosts", mock.Anything).Return([]valueobjects.BlogPost{
		{Title: "One", Slug: "one"},
		{Title: "Two", Slug: "two"},
	}, nil)
	svc := newTestBlogService(feed, &fakeClock{t: fixedNow})

	post, err := svc.Post(context.Background(), "two")
	require.NoError(t, err)
	assert.Equal(t, "Two", post.Title)

	_, err = svc.Post(context.Background(), "missing")
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, "Post not found", pkgerrors.GetAppError(err).Message)

	feed.AssertNumberOfCalls(t, "FetchPosts", 1)
}

func TestBlogService_EmptyFeedIsEmptyArray(t *testing.T) {
	feed := new(mockFeed)
	feed.On("FetchPosts", mock.Anything).Return(nil, nil)
	svc := newTestBlogService(feed, &fakeClock{t: fixedNow})

	posts, err := svc.Posts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, posts)
}
