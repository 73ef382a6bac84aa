package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio-backend/infrastructure/httpclient"
)

type fakeSpotify struct {
	tokenCalls   atomic.Int32
	nowStatus    int
	nowBody      string
	recentStatus int
	recentBody   string
}

func (f *fakeSpotify) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		require.NoError(t, r.ParseForm())

		w.Header().Set("Content-Type", "application/json")
		switch r.Form.Get("grant_type") {
		case "refresh_token":
			assert.Equal(t, "refresh-1", r.Form.Get("refresh_token"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "access-1", "token_type": "Bearer", "expires_in": 3600})
		case "authorization_code":
			if r.Form.Get("code") != "good-code" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			assert.Equal(t, "https://example.com/api/spotify/callback", r.Form.Get("redirect_uri"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "access-2", "refresh_token": "refresh-2", "token_type": "Bearer", "expires_in": 3600})
		}
	})
	mux.HandleFunc("/v1/me/player/currently-playing", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.WriteHeader(f.nowStatus)
		_, _ = w.Write([]byte(f.nowBody))
	})
	mux.HandleFunc("/v1/me/player/recently-played", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.WriteHeader(f.recentStatus)
		_, _ = w.Write([]byte(f.recentBody))
	})
	return mux
}

func newTestClient(t *testing.T, fake *fakeSpotify) *Client {
	t.Helper()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	return NewClient(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-1",
		Scopes:       []string{"user-read-currently-playing"},
		AuthURL:      server.URL + "/authorize",
		TokenURL:     server.URL + "/api/token",
		APIBase:      server.URL + "/v1",
	}, server.Client(), zap.NewNop())
}

const playingBody = `{
  "is_playing": true,
  "progress_ms": 42000,
  "item": {
    "name": "Song",
    "duration_ms": 200000,
    "artists": [{"name": "A"}, {"name": "B"}],
    "album": {"name": "Album", "images": [{"url": "https://i.scdn.co/big.jpg"}, {"url": "https://i.scdn.co/small.jpg"}]},
    "external_urls": {"spotify": "https://open.spotify.com/track/1"}
  }
}`

func TestClient_NowPlaying(t *testing.T) {
	// Arrange
	fake := &fakeSpotify{nowStatus: http.StatusOK, nowBody: playingBody}
	client := newTestClient(t, fake)

	// Act
	np, err := client.NowPlaying(context.Background())
	require.NoError(t, err)
	_, err = client.NowPlaying(context.Background())
	require.NoError(t, err)

	// Assert
	require.NotNil(t, np)
	assert.True(t, np.IsPlaying)
	assert.Equal(t, "Song", np.Title)
	assert.Equal(t, "A, B", np.Artist)
	assert.Equal(t, "https://i.scdn.co/big.jpg", np.AlbumImageURL)
	assert.Equal(t, "https://open.spotify.com/track/1", np.SongURL)
	assert.Equal(t, 200000, np.Duration)
	assert.Equal(t, 42000, np.Progress)
	assert.Equal(t, int32(1), fake.tokenCalls.Load(), "access token is reused until it expires")
}

func TestClient_NowPlaying_NothingToShow(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no content", http.StatusNoContent, ""},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"status":401}}`},
		{"rate limited", http.StatusTooManyRequests, ""},
		{"null item", http.StatusOK, `{"is_playing":false,"item":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, &fakeSpotify{nowStatus: tt.status, nowBody: tt.body})

			np, err := client.NowPlaying(context.Background())

			require.NoError(t, err)
			assert.Nil(t, np)
		})
	}
}

func TestClient_NowPlaying_BadJSON(t *testing.T) {
	client := newTestClient(t, &fakeSpotify{nowStatus: http.StatusOK, nowBody: "{"})

	_, err := client.NowPlaying(context.Background())

	assert.Error(t, err)
}

func TestClient_RecentlyPlayed(t *testing.T) {
	fake := &fakeSpotify{recentStatus: http.StatusOK, recentBody: `{"items":[{"played_at":"2025-03-01T09:00:00.000Z","track":{"name":"Old","artists":[{"name":"C"}],"album":{"name":"Al","images":[]},"external_urls":{"spotify":"u"},"duration_ms":1000}}]}`}
	client := newTestClient(t, fake)
	client.now = func() time.Time { return time.UnixMilli(1700000000000) }

	track, err := client.RecentlyPlayed(context.Background())

	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, "Old", track.Title)
	assert.Equal(t, "", track.AlbumImageURL)
	assert.Equal(t, "2025-03-01T09:00:00.000Z", track.PlayedAt)
	assert.Equal(t, int64(1700000000000), track.Timestamp)

	empty := newTestClient(t, &fakeSpotify{recentStatus: http.StatusOK, recentBody: `{"items":[]}`})
	track, err = empty.RecentlyPlayed(context.Background())
	require.NoError(t, err)
	assert.Nil(t, track)
}

func TestClient_AuthURL(t *testing.T) {
	client := NewClient(Config{ClientID: "client-id", Scopes: []string{"a", "b"}}, nil, zap.NewNop())

	raw := client.AuthURL("https://example.com/api/spotify/callback")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.spotify.com", u.Host)
	assert.Equal(t, "/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "a b", q.Get("scope"))
	assert.Equal(t, "https://example.com/api/spotify/callback", q.Get("redirect_uri"))
	assert.True(t, client.ClientConfigured())
	assert.False(t, client.Configured())
}

func TestClient_Exchange(t *testing.T) {
	client := newTestClient(t, &fakeSpotify{})

	grant, err := client.Exchange(context.Background(), "good-code", "https://example.com/api/spotify/callback")
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", grant.RefreshToken)
	assert.Equal(t, "access-2", grant.AccessToken)
	assert.Equal(t, 3600, grant.ExpiresIn)

	_, err = client.Exchange(context.Background(), "bad-code", "https://example.com/api/spotify/callback")
	assert.Error(t, err)
}

func TestClient_NowPlaying_ServerErrorsKeepBreakerClosed(t *testing.T) {
	// Arrange
	fake := &fakeSpotify{nowStatus: http.StatusServiceUnavailable, nowBody: `{"error":{"status":503}}`}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	base := httpclient.NewFactory(httpclient.Options{FailureThreshold: 2}).
		Client("spotify", httpclient.TolerateServerErrors())
	client := NewClient(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-1",
		TokenURL:     server.URL + "/api/token",
		APIBase:      server.URL + "/v1",
	}, base, zap.NewNop())

	// Act / Assert: well past the failure threshold, still "nothing playing"
	for i := 0; i < 6; i++ {
		np, err := client.NowPlaying(context.Background())
		require.NoError(t, err, "call %d", i+1)
		assert.Nil(t, np)
	}
}
