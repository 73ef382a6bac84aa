package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type countingObserver struct {
	hits, misses int32
}

func (o *countingObserver) CacheHit(string)  { atomic.AddInt32(&o.hits, 1) }
func (o *countingObserver) CacheMiss(string) { atomic.AddInt32(&o.misses, 1) }

func TestTTL_ServesCachedValueWithinTTL(t *testing.T) {
	// Arrange
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	obs := &countingObserver{}
	c := NewTTL[[]string]("blog_posts", 30*time.Minute, WithClock(clock.Now), WithObserver(obs))

	var calls int
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"post-" + string(rune('a'+calls-1))}, nil
	}

	// Act
	first, err := c.GetOrRefresh(context.Background(), fetch)
	require.NoError(t, err)
	clock.Advance(29 * time.Minute)
	second, err := c.GetOrRefresh(context.Background(), fetch)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Value, second.Value)
	assert.False(t, first.Hit)
	assert.True(t, second.Hit)
	assert.Equal(t, int32(1), obs.hits)
	assert.Equal(t, int32(1), obs.misses)
}

func TestTTL_RefetchesAfterExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTL[int]("n", 30*time.Minute, WithClock(clock.Now))

	var calls int
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	first, err := c.GetOrRefresh(context.Background(), fetch)
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	second, err := c.GetOrRefresh(context.Background(), fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, first.Value)
	assert.Equal(t, 2, second.Value)
	assert.Equal(t, clock.Now(), second.FetchedAt)
}

func TestTTL_StaleFallback(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTL[string]("n", time.Minute, WithClock(clock.Now))
	upstreamErr := errors.New("feed unavailable")

	_, err := c.GetOrRefresh(context.Background(), func(context.Context) (string, error) {
		return "cached", nil
	})
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	res, err := c.GetOrRefresh(context.Background(), func(context.Context) (string, error) {
		return "", upstreamErr
	})

	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Equal(t, "cached", res.Value)
	assert.ErrorIs(t, res.Err, upstreamErr)
}

func TestTTL_ErrorWithoutCachedValue(t *testing.T) {
	c := NewTTL[string]("n", time.Minute)
	upstreamErr := errors.New("feed unavailable")

	_, err := c.GetOrRefresh(context.Background(), func(context.Context) (string, error) {
		return "", upstreamErr
	})

	assert.ErrorIs(t, err, upstreamErr)

	// nothing was stored, so the next reader fetches again
	res, err := c.GetOrRefresh(context.Background(), func(context.Context) (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.False(t, res.Hit)
	assert.Equal(t, "recovered", res.Value)
}

func TestTTL_ConcurrentRefreshSharesOneFetch(t *testing.T) {
	c := NewTTL[string]("n", time.Hour)
	var calls int32
	release := make(chan struct{})

	fetch := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := c.GetOrRefresh(context.Background(), fetch)
			assert.NoError(t, err)
			results[i] = res.Value
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "value", r)
	}
}

func TestTTL_LeaderCancellationDoesNotFailWaiters(t *testing.T) {
	// Arrange
	c := NewTTL[string]("blog_posts", time.Hour)
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "posts", nil
	}

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.GetOrRefresh(leaderCtx, fetch)
		leaderErr <- err
	}()
	<-started

	type outcome struct {
		res Result[string]
		err error
	}
	follower := make(chan outcome, 1)
	go func() {
		res, err := c.GetOrRefresh(context.Background(), fetch)
		follower <- outcome{res, err}
	}()
	time.Sleep(20 * time.Millisecond)

	// Act: the first caller disconnects mid-fetch
	cancelLeader()
	err := <-leaderErr
	close(release)
	got := <-follower

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, got.err)
	assert.Equal(t, "posts", got.res.Value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	cached, err := c.GetOrRefresh(context.Background(), fetch)
	require.NoError(t, err)
	assert.True(t, cached.Hit)
}
