// Package cache holds small in-process caches shared by request handlers.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Observer is notified of cache lookups. The metrics collector implements it.
type Observer interface {
	CacheHit(name string)
	CacheMiss(name string)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string)  {}
func (nopObserver) CacheMiss(string) {}

// Option configures a TTL cache
type Option func(*options)

type options struct {
	now      func() time.Time
	observer Observer
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithObserver reports hits and misses
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// Result is what GetOrRefresh hands back
type Result[T any] struct {
	Value     T
	FetchedAt time.Time
	// Hit is true when the value was served without calling fetch
	Hit bool
	// Stale is true when fetch failed and an expired value was served instead.
	// Err then holds the fetch error.
	Stale bool
	Err   error
}

// TTL is a single-slot cache. A value is fresh for ttl after it was fetched;
// after that the next reader refreshes it. Concurrent refreshes share one fetch.
type TTL[T any] struct {
	name string
	ttl  time.Duration
	opts options

	mu        sync.RWMutex
	value     T
	fetchedAt time.Time
	populated bool

	group singleflight.Group
}

// NewTTL creates an empty cache
func NewTTL[T any](name string, ttl time.Duration, opts ...Option) *TTL[T] {
	o := options{now: time.Now, observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[T]{name: name, ttl: ttl, opts: o}
}

// GetOrRefresh returns the cached value while it is fresh, otherwise calls fetch.
// If fetch fails and a previous value exists, that value is returned with Stale set
// and a nil error.
//
// The shared fetch is detached from ctx cancellation: one caller leaving must not fail
// the others waiting on it, so fetch has to bound itself (the upstream client timeout
// does). A caller whose ctx ends stops waiting and gets the stale value or ctx.Err().
func (c *TTL[T]) GetOrRefresh(ctx context.Context, fetch func(context.Context) (T, error)) (Result[T], error) {
	if res, ok := c.fresh(); ok {
		c.opts.observer.CacheHit(c.name)
		return res, nil
	}
	c.opts.observer.CacheMiss(c.name)

	flight := c.group.DoChan(c.name, func() (interface{}, error) {
		// another caller may have refreshed while we waited for the flight
		if res, ok := c.fresh(); ok {
			return res, nil
		}

		value, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.value = value
		c.fetchedAt = c.opts.now()
		c.populated = true
		res := Result[T]{Value: c.value, FetchedAt: c.fetchedAt}
		c.mu.Unlock()
		return res, nil
	})

	var err error
	select {
	case r := <-flight:
		if r.Err == nil {
			return r.Val.(Result[T]), nil
		}
		err = r.Err
	case <-ctx.Done():
		err = ctx.Err()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.populated {
		return Result[T]{Value: c.value, FetchedAt: c.fetchedAt, Stale: true, Err: err}, nil
	}
	var zero Result[T]
	return zero, err
}

func (c *TTL[T]) fresh() (Result[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.populated && c.opts.now().Sub(c.fetchedAt) < c.ttl {
		return Result[T]{Value: c.value, FetchedAt: c.fetchedAt, Hit: true}, true
	}
	return Result[T]{}, false
}
