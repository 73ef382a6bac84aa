package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"portfolio-backend/application/services"
	"portfolio-backend/pkg/common"
)

// CallbackPath is where Spotify sends the owner back after consent
const CallbackPath = "/api/spotify/callback"

// SpotifyHandler serves playback state and the refresh-token helper pages
type SpotifyHandler struct {
	media       *services.MediaService
	redirectURI string
	logger      *zap.Logger
}

// NewSpotifyHandler creates a new Spotify handler. An empty redirectURI is derived
// from each request's host.
func NewSpotifyHandler(media *services.MediaService, redirectURI string, logger *zap.Logger) *SpotifyHandler {
	return &SpotifyHandler{media: media, redirectURI: redirectURI, logger: logger}
}

func (h *SpotifyHandler) redirectFor(r *http.Request) string {
	if h.redirectURI != "" {
		return h.redirectURI
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host + CallbackPath
}

// NowPlaying handles GET /api/spotify/now-playing
// @Summary Track playing on Spotify
// @Tags spotify
// @Produce json
// @Success 200 {object} docs.NowPlayingResponse "isPlaying is false when nothing plays"
// @Failure 500 {object} docs.NowPlayingResponse
// @Router /api/spotify/now-playing [get]
func (h *SpotifyHandler) NowPlaying(w http.ResponseWriter, r *http.Request) {
	np, err := h.media.NowPlaying(r.Context())
	if err != nil {
		message := "Failed to fetch now playing"
		if services.IsNotConfigured(err) {
			_, message = statusOf(err, http.StatusInternalServerError, message)
		}
		logFailure(h.logger, r, "Error fetching now playing", err)
		common.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{"isPlaying": false, "error": message})
		return
	}
	if np == nil {
		common.WriteJSON(w, http.StatusOK, map[string]bool{"isPlaying": false})
		return
	}

	noStore(w)
	common.WriteJSON(w, http.StatusOK, np)
}

// RecentlyPlayed handles GET /api/spotify/recently-played
// @Summary Last track played on Spotify
// @Tags spotify
// @Produce json
// @Success 200 {object} docs.RecentTrackResponse
// @Failure 500 {object} docs.ErrorResponse
// @Router /api/spotify/recently-played [get]
func (h *SpotifyHandler) RecentlyPlayed(w http.ResponseWriter, r *http.Request) {
	track, err := h.media.RecentlyPlayed(r.Context())
	if err != nil {
		message := "Failed to fetch recently played"
		if services.IsNotConfigured(err) {
			_, message = statusOf(err, http.StatusInternalServerError, message)
		}
		logFailure(h.logger, r, "Error fetching recently played", err)
		common.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": message})
		return
	}
	if track == nil {
		common.WriteJSON(w, http.StatusOK, map[string]string{"error": "No recently played tracks"})
		return
	}

	noStore(w)
	w.Header().Set("CDN-Cache-Control", "no-store")
	common.WriteJSON(w, http.StatusOK, track)
}

// Auth handles GET /api/spotify/auth
// @Summary Spotify consent URL
// @Description Start here to obtain SPOTIFY_REFRESH_TOKEN
// @Tags spotify
// @Produce json
// @Success 200 {object} docs.SpotifyAuthResponse
// @Failure 500 {object} docs.ErrorResponse "Spotify Client ID not configured"
// @Router /api/spotify/auth [get]
func (h *SpotifyHandler) Auth(w http.ResponseWriter, r *http.Request) {
	info, err := h.media.SpotifyAuth(h.redirectFor(r))
	if err != nil {
		_, message := statusOf(err, http.StatusInternalServerError, "Spotify Client ID not configured")
		common.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": message})
		return
	}
	common.WriteJSON(w, http.StatusOK, info)
}

// Callback handles GET /api/spotify/callback and renders the tokens as HTML
// @Summary Spotify consent callback
// @Tags spotify
// @Produce html
// @Param code query string true "Authorization code"
// @Success 200 {string} string "Page showing the refresh token"
// @Failure 400 {string} string "No authorization code"
// @Failure 500 {string} string "Token exchange failed"
// @Router /api/spotify/callback [get]
func (h *SpotifyHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		renderPage(w, http.StatusBadRequest, missingCodePage, nil)
		return
	}

	grant, err := h.media.SpotifyExchange(r.Context(), code, h.redirectFor(r))
	if err != nil {
		logFailure(h.logger, r, "Spotify callback error", err)
		_, message := statusOf(err, http.StatusInternalServerError, "Failed to exchange code for tokens")
		renderPage(w, http.StatusInternalServerError, exchangeFailedPage, map[string]string{"Error": message})
		return
	}

	preview := grant.RefreshToken
	if len(preview) > 50 {
		preview = preview[:50]
	}
	noStore(w)
	renderPage(w, http.StatusOK, tokenPage, map[string]interface{}{
		"RefreshToken":   grant.RefreshToken,
		"AccessToken":    grant.AccessToken,
		"ExpiresMinutes": grant.ExpiresIn / 60,
		"Preview":        preview,
	})
}

func renderPage(w http.ResponseWriter, status int, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = tmpl.Execute(w, data)
}

const pageStyle = `
body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 50px auto; padding: 20px; background: #000; color: #fff; line-height: 1.6; }
.box { background: #1a1a1a; padding: 30px; border-radius: 12px; }
.ok { border: 2px solid #1DB954; }
.err { border: 2px solid #ff4444; }
h1.ok-title { color: #1DB954; margin-top: 0; }
h1.err-title { color: #ff4444; margin-top: 0; }
.token { background: #000; padding: 16px; border-radius: 8px; color: #1DB954; word-break: break-all; font-family: 'Courier New', monospace; border: 1px solid #1DB954; margin: 12px 0; }
.warning { background: #2a1a00; border: 1px solid #ff9800; padding: 16px; border-radius: 8px; color: #ffb84d; }
pre { background: #000; padding: 16px; border-radius: 8px; overflow-x: auto; color: #ff6666; }
code { color: #1DB954; }
a { color: #1DB954; }
`

var missingCodePage = template.Must(template.New("missing").Parse(`<!DOCTYPE html>
<html>
<head><title>Spotify Authorization Error</title><style>` + pageStyle + `</style></head>
<body>
<div class="box err">
<h1 class="err-title">❌ No Authorization Code</h1>
<p>Please visit <a href="/api/spotify/auth">/api/spotify/auth</a> to get the authorization URL first.</p>
</div>
</body>
</html>`))

var exchangeFailedPage = template.Must(template.New("failed").Parse(`<!DOCTYPE html>
<html>
<head><title>Spotify Authorization Error</title><style>` + pageStyle + `</style></head>
<body>
<div class="box err">
<h1 class="err-title">❌ Token Exchange Failed</h1>
<p>There was an error getting your Spotify tokens.</p>
<pre>{{.Error}}</pre>
<p>Please try visiting <a href="/api/spotify/auth">/api/spotify/auth</a> again.</p>
</div>
</body>
</html>`))

var tokenPage = template.Must(template.New("tokens").Parse(`<!DOCTYPE html>
<html>
<head><title>Spotify Authorization Success</title><style>` + pageStyle + `</style></head>
<body>
<div class="box ok">
<h1 class="ok-title">✅ Spotify Authorization Successful!</h1>
<div class="warning"><strong>⚠️ Important:</strong> Keep these tokens secure! Never commit them to git or share them publicly.</div>
<h2>🔑 Refresh Token</h2>
<p>Add this to your environment as <code>SPOTIFY_REFRESH_TOKEN</code>. It does not expire.</p>
<div class="token" id="refresh-token">{{.RefreshToken}}</div>
<h2>⏱️ Access Token (Temporary)</h2>
<p>This token expires in {{.ExpiresMinutes}} minutes. The refresh token gets new access tokens automatically.</p>
<div class="token" id="access-token">{{.AccessToken}}</div>
<h2>📝 Next Steps</h2>
<ol>
<li>Copy the refresh token above</li>
<li>Set <code>SPOTIFY_REFRESH_TOKEN={{.Preview}}...</code> in your <code>.env</code> or hosting dashboard</li>
<li>Restart the server</li>
<li>Test it: <a href="/api/spotify/now-playing">/api/spotify/now-playing</a></li>
</ol>
<p style="color:#666">You can close this window after copying the refresh token.</p>
</div>
</body>
</html>`))
