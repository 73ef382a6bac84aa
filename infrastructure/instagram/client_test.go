package instagram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/17841/media", r.URL.Path)
		assert.Equal(t, "token", r.URL.Query().Get("access_token"))
		assert.Equal(t, mediaFields, r.URL.Query().Get("fields"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_LatestReels(t *testing.T) {
	// Arrange
	items := []string{
		`{"id":"1","media_type":"IMAGE","media_url":"i1"}`,
		`{"id":"2","media_type":"VIDEO","caption":"clip","media_url":"m2","thumbnail_url":"t2","permalink":"p2","timestamp":"2025-03-01T00:00:00+0000"}`,
		`{"id":"3","media_type":"VIDEO","media_url":"m3"}`,
		`{"id":"4","media_type":"CAROUSEL_ALBUM"}`,
	}
	for i := 5; i <= 12; i++ {
		items = append(items, fmt.Sprintf(`{"id":"%d","media_type":"VIDEO","media_url":"m%d"}`, i, i))
	}
	server := serve(t, http.StatusOK, `{"data":[`+strings.Join(items, ",")+`]}`)
	client := NewClient(server.URL, "17841", "token", server.Client(), zap.NewNop())

	// Act
	reels, err := client.LatestReels(context.Background(), 6)

	// Assert
	require.NoError(t, err)
	require.Len(t, reels, 6)
	assert.Equal(t, "2", reels[0].ID)
	assert.Equal(t, "clip", reels[0].Caption)
	assert.Equal(t, "t2", reels[0].ThumbnailURL)
	assert.Equal(t, "p2", reels[0].Permalink)

	assert.Equal(t, "3", reels[1].ID)
	assert.Equal(t, "", reels[1].Caption)
	assert.Equal(t, "m3", reels[1].ThumbnailURL, "thumbnail falls back to media url")

	assert.Equal(t, "8", reels[5].ID)
}

func TestClient_LatestReels_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"upstream error", http.StatusBadRequest, `{"error":{"message":"Invalid OAuth access token"}}`},
		{"bad json", http.StatusOK, `{"data":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serve(t, tt.status, tt.body)
			client := NewClient(server.URL, "17841", "token", server.Client(), zap.NewNop())

			_, err := client.LatestReels(context.Background(), 6)

			assert.Error(t, err)
		})
	}
}

func TestClient_Configured(t *testing.T) {
	assert.True(t, NewClient("", "u", "t", nil, zap.NewNop()).Configured())
	assert.False(t, NewClient("", "", "t", nil, zap.NewNop()).Configured())
	assert.False(t, NewClient("", "u", "", nil, zap.NewNop()).Configured())
}

func TestClient_EmptyPage(t *testing.T) {
	server := serve(t, http.StatusOK, `{"data":[]}`)
	client := NewClient(server.URL, "17841", "token", server.Client(), zap.NewNop())

	reels, err := client.LatestReels(context.Background(), 6)

	require.NoError(t, err)
	assert.NotNil(t, reels)
	assert.Empty(t, reels)
}

func TestClient_LatestReels_NonPositiveLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()
	client := NewClient(server.URL, "17841", "token", server.Client(), zap.NewNop())

	for _, limit := range []int{0, -1} {
		reels, err := client.LatestReels(context.Background(), limit)

		require.NoError(t, err)
		assert.NotNil(t, reels)
		assert.Empty(t, reels)
	}
}
