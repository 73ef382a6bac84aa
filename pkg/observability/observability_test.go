package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordsByLabel(t *testing.T) {
	c := NewCollector("test")

	c.RecordUpstream("spotify", "success", 120*time.Millisecond)
	c.RecordUpstream("spotify", "error", time.Second)
	c.CacheHit("blog")
	c.CacheHit("blog")
	c.CacheMiss("blog")
	c.ContactSubmitted("stored")
	c.RateLimitExceeded()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.UpstreamCalls.WithLabelValues("spotify", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.UpstreamCalls.WithLabelValues("spotify", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.CacheHits.WithLabelValues("blog")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheMisses.WithLabelValues("blog")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ContactSubmissions.WithLabelValues("stored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RateLimited))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector("test")
		NewCollector("test")
	})
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	// Arrange
	c := NewCollector("test")
	r := chi.NewRouter()
	r.Use(MetricsMiddleware(c))
	r.Get("/api/blog/posts/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// Act
	for _, slug := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/blog/posts/"+slug, nil))
	}

	// Assert
	assert.Equal(t, 3.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/blog/posts/{slug}", "404")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("portfolio")
	c.CacheHit("blog")

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portfolio_cache_hits_total{cache="blog"} 1`)
}

type recorderFunc func(service, outcome string, d time.Duration)

func (f recorderFunc) RecordUpstream(service, outcome string, d time.Duration) { f(service, outcome, d) }

func TestMultiRecorder(t *testing.T) {
	var calls []string
	m := MultiRecorder{
		recorderFunc(func(s, o string, _ time.Duration) { calls = append(calls, "a:"+s+":"+o) }),
		nil,
		recorderFunc(func(s, o string, _ time.Duration) { calls = append(calls, "b:"+s+":"+o) }),
	}

	m.RecordUpstream("youtube", "success", time.Millisecond)

	assert.Equal(t, []string{"a:youtube:success", "b:youtube:success"}, calls)
}

type mockCloudWatch struct {
	mock.Mock
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, in)
	return &cloudwatch.PutMetricDataOutput{}, args.Error(0)
}

func TestCloudWatchRecorder_Flush(t *testing.T) {
	t.Run("ships buffered datums and clears the buffer", func(t *testing.T) {
		cw := new(mockCloudWatch)
		rec := NewCloudWatchRecorder(cw, "Portfolio/test")
		cw.On("PutMetricData", mock.Anything, mock.MatchedBy(func(in *cloudwatch.PutMetricDataInput) bool {
			return *in.Namespace == "Portfolio/test" && len(in.MetricData) == 4
		})).Return(nil).Once()

		rec.RecordUpstream("sheets", "success", 80*time.Millisecond)
		rec.RecordUpstream("sheets", "error", 10*time.Second)
		require.Equal(t, 4, rec.Pending())

		require.NoError(t, rec.Flush(context.Background()))
		assert.Equal(t, 0, rec.Pending())
		cw.AssertExpectations(t)
	})

	t.Run("empty buffer makes no call", func(t *testing.T) {
		cw := new(mockCloudWatch)
		rec := NewCloudWatchRecorder(cw, "Portfolio/test")

		require.NoError(t, rec.Flush(context.Background()))
		cw.AssertNotCalled(t, "PutMetricData", mock.Anything, mock.Anything)
	})

	t.Run("surfaces client errors", func(t *testing.T) {
		cw := new(mockCloudWatch)
		rec := NewCloudWatchRecorder(cw, "Portfolio/test")
		cw.On("PutMetricData", mock.Anything, mock.Anything).Return(errors.New("denied"))

		rec.RecordUpstream("sheets", "success", time.Millisecond)
		assert.Error(t, rec.Flush(context.Background()))
	})

	t.Run("nil client is a no-op", func(t *testing.T) {
		rec := NewCloudWatchRecorder(nil, "x")
		rec.RecordUpstream("sheets", "success", time.Millisecond)
		assert.NoError(t, rec.Flush(context.Background()))
	})
}
