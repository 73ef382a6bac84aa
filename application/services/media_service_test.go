package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio-backend/application/ports"
	"portfolio-backend/domain/core/valueobjects"
	pkgerrors "portfolio-backend/pkg/errors"
)

func TestMediaService_NotConfigured(t *testing.T) {
	music := new(mockMusic)
	music.On("Configured").Return(false)
	auth := new(mockAuthorizer)
	auth.On("ClientConfigured").Return(false)
	videos := new(mockVideos)
	videos.On("Configured").Return(false)
	reels := new(mockReels)
	reels.On("Configured").Return(false)
	svc := NewMediaService(music, auth, videos, reels, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		wantMsg string
	}{
		{"now playing", func() error { _, err := svc.NowPlaying(ctx); return err }, "Spotify credentials not configured"},
		{"recently played", func() error { _, err := svc.RecentlyPlayed(ctx); return err }, "Spotify credentials not configured"},
		{"auth", func() error { _, err := svc.SpotifyAuth("http://localhost/cb"); return err }, "Spotify Client ID not configured"},
		{"videos", func() error { _, err := svc.Videos(ctx); return err }, "YouTube credentials not configured"},
		{"reels", func() error { _, err := svc.Reels(ctx); return err }, "Instagram credentials not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, IsNotConfigured(err))
			assert.Equal(t, tt.wantMsg, pkgerrors.GetAppError(err).Message)
			assert.Equal(t, 500, pkgerrors.GetAppError(err).HTTPStatus)
		})
	}
}

func TestMediaService_NowPlaying(t *testing.T) {
	music := new(mockMusic)
	music.On("Configured").Return(true)
	music.On("NowPlaying", mock.Anything).Return(&valueobjects.NowPlaying{IsPlaying: true, Title: "Song"}, nil).Once()
	music.On("NowPlaying", mock.Anything).Return(nil, nil).Once()
	music.On("NowPlaying", mock.Anything).Return(nil, errors.New("boom")).Once()
	svc := NewMediaService(music, nil, nil, nil, zap.NewNop())

	np, err := svc.NowPlaying(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Song", np.Title)

	np, err = svc.NowPlaying(context.Background())
	require.NoError(t, err)
	assert.Nil(t, np)

	_, err = svc.NowPlaying(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotConfigured(err))
	assert.Equal(t, "Failed to fetch now playing", pkgerrors.GetAppError(err).Message)
}

func TestMediaService_SpotifyAuth(t *testing.T) {
	auth := new(mockAuthorizer)
	auth.On("ClientConfigured").Return(true)
	auth.On("AuthURL", "https://example.com/api/spotify/callback").Return("https://accounts.spotify.com/authorize?x=1")
	svc := NewMediaService(nil, auth, nil, nil, zap.NewNop())

	info, err := svc.SpotifyAuth("https://example.com/api/spotify/callback")

	require.NoError(t, err)
	assert.Equal(t, "https://accounts.spotify.com/authorize?x=1", info.AuthURL)
	assert.Len(t, info.Instructions, 6)
	assert.Contains(t, info.Instructions[5], "https://example.com/api/spotify/callback")
}

func TestMediaService_SpotifyExchange(t *testing.T) {
	auth := new(mockAuthorizer)
	auth.On("ClientConfigured").Return(true)
	auth.On("Exchange", mock.Anything, "good", "cb").Return(ports.TokenGrant{AccessToken: "a", RefreshToken: "r", ExpiresIn: 3600}, nil)
	auth.On("Exchange", mock.Anything, "bad", "cb").Return(ports.TokenGrant{}, errors.New("invalid_grant"))
	svc := NewMediaService(nil, auth, nil, nil, zap.NewNop())

	_, err := svc.SpotifyExchange(context.Background(), "", "cb")
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))

	grant, err := svc.SpotifyExchange(context.Background(), "good", "cb")
	require.NoError(t, err)
	assert.Equal(t, "r", grant.RefreshToken)

	_, err = svc.SpotifyExchange(context.Background(), "bad", "cb")
	assert.Equal(t, "Failed to exchange code for tokens", pkgerrors.GetAppError(err).Message)
}

func TestMediaService_VideosAndReels(t *testing.T) {
	videos := new(mockVideos)
	videos.On("Configured").Return(true)
	videos.On("LatestVideos", mock.Anything, int64(VideoLimit)).Return(nil, nil)
	reels := new(mockReels)
	reels.On("Configured").Return(true)
	reels.On("LatestReels", mock.Anything, ReelLimit).Return(nil, errors.New("token expired"))
	svc := NewMediaService(nil, nil, videos, reels, zap.NewNop())

	got, err := svc.Videos(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = svc.Reels(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch Instagram reels", pkgerrors.GetAppError(err).Message)
}
