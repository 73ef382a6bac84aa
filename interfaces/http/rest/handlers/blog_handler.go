package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"portfolio-backend/application/services"
	"portfolio-backend/domain/core/valueobjects"
	"portfolio-backend/pkg/common"
	pkgerrors "portfolio-backend/pkg/errors"
)

// BlogHandler serves the cached Substack posts
type BlogHandler struct {
	service *services.BlogService
	logger  *zap.Logger
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(service *services.BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{service: service, logger: logger}
}

// Posts handles GET /api/blog/posts
// @Summary Blog posts
// @Description Posts from the Substack feed, cached for 30 minutes
// @Tags blog
// @Produce json
// @Success 200 {object} docs.PostsResponse
// @Failure 500 {object} docs.PostsResponse "Failed to fetch blog posts"
// @Router /api/blog/posts [get]
func (h *BlogHandler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.Posts(r.Context())
	if err != nil {
		logFailure(h.logger, r, "Error fetching blog posts", err)
		common.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": services.MsgBlogFetchFailed,
			"posts": []valueobjects.BlogPost{},
		})
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// Post handles GET /api/blog/posts/{slug}
// @Summary One blog post
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} docs.PostResponse
// @Failure 404 {object} docs.ErrorResponse "Post not found"
// @Failure 500 {object} docs.ErrorResponse
// @Router /api/blog/posts/{slug} [get]
func (h *BlogHandler) Post(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.Post(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			common.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Post not found"})
			return
		}
		logFailure(h.logger, r, "Error fetching blog post", err)
		common.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": services.MsgBlogFetchFailed})
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"post": post})
}
