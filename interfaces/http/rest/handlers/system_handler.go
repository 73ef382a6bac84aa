package handlers

import (
	"net/http"
	"time"

	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"portfolio-backend/application/ports"
	"portfolio-backend/pkg/common"
)

// APIVersion is reported by the index endpoint
const APIVersion = "1.0.0"

// SystemHandler serves health, readiness, the endpoint index and the API document
type SystemHandler struct {
	environment  string
	started      time.Time
	now          func() time.Time
	integrations map[string]ports.Configurable
	logger       *zap.Logger
}

// NewSystemHandler creates a new system handler. integrations are reported by /ready.
func NewSystemHandler(environment string, integrations map[string]ports.Configurable, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		environment:  environment,
		started:      time.Now(),
		now:          time.Now,
		integrations: integrations,
		logger:       logger,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

// Health handles GET /health
// @Summary Liveness
// @Tags system
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	common.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Timestamp:   now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Uptime:      now.Sub(h.started).Seconds(),
		Environment: h.environment,
	})
}

type integrationStatus struct {
	Configured bool `json:"configured"`
}

// Ready handles GET /ready. It always answers 200; missing credentials only switch
// features off.
// @Summary Readiness with per-integration configuration flags
// @Tags system
// @Produce json
// @Success 200 {object} docs.ReadyResponse
// @Router /ready [get]
func (h *SystemHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := make(map[string]integrationStatus, len(h.integrations))
	for name, integration := range h.integrations {
		status[name] = integrationStatus{Configured: integration != nil && integration.Configured()}
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"integrations": status,
	})
}

// Index handles GET /
func (h *SystemHandler) Index(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Portfolio Backend API",
		"version": APIVersion,
		"endpoints": map[string]string{
			"health":         "/health",
			"contact":        "/api/contact",
			"mindscape":      "/api/mindscape/public",
			"blog":           "/api/blog/posts",
			"nowPlaying":     "/api/spotify/now-playing",
			"recentlyPlayed": "/api/spotify/recently-played",
			"youtube":        "/api/youtube/videos",
			"instagram":      "/api/instagram/reels",
		},
	})
}

// NotFound answers unknown routes
func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusNotFound, map[string]string{
		"error": "Not Found",
		"path":  r.URL.Path,
	})
}

// MethodNotAllowed answers known paths hit with the wrong method
func (h *SystemHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "Method Not Allowed",
		"path":  r.URL.Path,
	})
}

// Swagger serves the registered OpenAPI document
func (h *SystemHandler) Swagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.logger.Error("Failed to read API document", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "API documentation unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
