package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"portfolio-backend/application/services"
	"portfolio-backend/domain/core/valueobjects"
	"portfolio-backend/pkg/common"
)

// MediaHandler serves the YouTube and Instagram feeds
type MediaHandler struct {
	media  *services.MediaService
	logger *zap.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media *services.MediaService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: logger}
}

// Videos handles GET /api/youtube/videos
// @Summary Latest YouTube uploads
// @Tags media
// @Produce json
// @Success 200 {object} docs.VideosResponse
// @Failure 500 {object} docs.VideosResponse
// @Router /api/youtube/videos [get]
func (h *MediaHandler) Videos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.media.Videos(r.Context())
	if err != nil {
		if services.IsNotConfigured(err) {
			_, message := statusOf(err, http.StatusInternalServerError, "")
			common.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": message})
			return
		}
		logFailure(h.logger, r, "Error fetching YouTube videos", err)
		common.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Failed to fetch YouTube videos",
			"videos":  []valueobjects.Video{},
		})
		return
	}

	w.Header().Set("Cache-Control", cacheShared)
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"videos":  videos,
		"count":   len(videos),
	})
}

// Reels handles GET /api/instagram/reels
// @Summary Latest Instagram reels
// @Tags media
// @Produce json
// @Success 200 {object} docs.ReelsResponse
// @Failure 500 {object} docs.ReelsResponse
// @Router /api/instagram/reels [get]
func (h *MediaHandler) Reels(w http.ResponseWriter, r *http.Request) {
	reels, err := h.media.Reels(r.Context())
	if err != nil {
		if services.IsNotConfigured(err) {
			_, message := statusOf(err, http.StatusInternalServerError, "")
			common.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": message})
			return
		}
		logFailure(h.logger, r, "Error fetching Instagram reels", err)
		common.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to fetch Instagram reels",
			"reels": []valueobjects.Reel{},
		})
		return
	}

	w.Header().Set("Cache-Control", cacheShared)
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"reels": reels})
}
