package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UpstreamRecorder receives the outcome of every outbound call
type UpstreamRecorder interface {
	RecordUpstream(service, outcome string, duration time.Duration)
}

// Collector holds all Prometheus metrics for the application. Each collector owns
// its registry, so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	UpstreamCalls    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	BreakerState     *prometheus.GaugeVec

	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	ContactSubmissions *prometheus.CounterVec
	RateLimited        prometheus.Counter
}

// NewCollector creates a collector whose metric names start with namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		UpstreamCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Outbound calls to third-party APIs by outcome",
			},
			[]string{"service", "outcome"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Outbound call duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"service"},
		),
		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state per upstream (0 closed, 1 half-open, 2 open)",
			},
			[]string{"service"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"cache"},
		),
		ContactSubmissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contact_submissions_total",
				Help:      "Contact form submissions by outcome",
			},
			[]string{"outcome"},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_requests_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.UpstreamCalls,
		c.UpstreamDuration,
		c.BreakerState,
		c.CacheHits,
		c.CacheMisses,
		c.ContactSubmissions,
		c.RateLimited,
	)

	return c
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry for tests
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordUpstream implements UpstreamRecorder
func (c *Collector) RecordUpstream(service, outcome string, duration time.Duration) {
	c.UpstreamCalls.WithLabelValues(service, outcome).Inc()
	c.UpstreamDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// SetBreakerState records a circuit breaker transition
func (c *Collector) SetBreakerState(service string, state float64) {
	c.BreakerState.WithLabelValues(service).Set(state)
}

// CacheHit implements cache.Observer
func (c *Collector) CacheHit(name string) {
	c.CacheHits.WithLabelValues(name).Inc()
}

// CacheMiss implements cache.Observer
func (c *Collector) CacheMiss(name string) {
	c.CacheMisses.WithLabelValues(name).Inc()
}

// ContactSubmitted counts a contact form outcome (stored, logged_only, failed)
func (c *Collector) ContactSubmitted(outcome string) {
	c.ContactSubmissions.WithLabelValues(outcome).Inc()
}

// RateLimitExceeded counts a 429
func (c *Collector) RateLimitExceeded() {
	c.RateLimited.Inc()
}

// MultiRecorder fans an upstream observation out to several recorders
type MultiRecorder []UpstreamRecorder

// RecordUpstream implements UpstreamRecorder
func (m MultiRecorder) RecordUpstream(service, outcome string, duration time.Duration) {
	for _, r := range m {
		if r != nil {
			r.RecordUpstream(service, outcome, duration)
		}
	}
}
