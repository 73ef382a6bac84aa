package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"portfolio-backend/application/services"
	"portfolio-backend/pkg/common"
	pkgerrors "portfolio-backend/pkg/errors"
)

// MindscapeHandler serves the Mindscape graph and profile tabs
type MindscapeHandler struct {
	service *services.MindscapeService
	errors  *pkgerrors.ErrorHandler
	logger  *zap.Logger
}

// NewMindscapeHandler creates a new mindscape handler
func NewMindscapeHandler(service *services.MindscapeService, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *MindscapeHandler {
	if errs == nil {
		errs = pkgerrors.NewErrorHandler(logger, false)
	}
	return &MindscapeHandler{service: service, errors: errs, logger: logger}
}

// Public handles GET /api/mindscape/public
// @Summary Public Mindscape graph
// @Description Public nodes and the connections between them. q matches title or tags, type narrows by node type.
// @Tags mindscape
// @Produce json
// @Param q query string false "Search text"
// @Param type query string false "Node type, or all"
// @Success 200 {object} docs.GraphResponse
// @Failure 503 {object} docs.ErrorResponse "Mindscape service not configured"
// @Failure 500 {object} docs.ErrorResponse "Failed to fetch mindscape data"
// @Router /api/mindscape/public [get]
func (h *MindscapeHandler) Public(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	graph, err := h.service.PublicGraph(r.Context(), q.Get("q"), q.Get("type"))
	if err != nil {
		h.fail(w, r, err, services.MsgMindscapeFetchFailed)
		return
	}
	common.RespondJSON(w, http.StatusOK, graph)
}

// AdminAll handles GET /api/mindscape/admin/all
// @Summary Every Mindscape node
// @Tags mindscape
// @Produce json
// @Security BearerAuth
// @Success 200 {object} docs.NodesResponse
// @Failure 401 {object} docs.ErrorResponse
// @Failure 503 {object} docs.ErrorResponse
// @Failure 500 {object} docs.ErrorResponse "Failed to fetch nodes"
// @Router /api/mindscape/admin/all [get]
func (h *MindscapeHandler) AdminAll(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.service.AllNodes(r.Context())
	if err != nil {
		h.fail(w, r, err, services.MsgNodesFetchFailed)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"nodes": nodes})
}

// Projects handles GET /api/mindscape/projects
// @Summary Projects tab
// @Tags mindscape
// @Produce json
// @Success 200 {object} docs.ProjectsResponse
// @Failure 503 {object} docs.ErrorResponse
// @Router /api/mindscape/projects [get]
func (h *MindscapeHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.Projects(r.Context())
	if err != nil {
		h.fail(w, r, err, services.MsgProfileFetchFailed)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

// Status handles GET /api/mindscape/status
// @Summary Latest current_status row
// @Tags mindscape
// @Produce json
// @Success 200 {object} docs.StatusResponse
// @Failure 404 {object} docs.ErrorResponse "Status not found"
// @Router /api/mindscape/status [get]
func (h *MindscapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.CurrentStatus(r.Context())
	if err != nil {
		h.fail(w, r, err, services.MsgProfileFetchFailed)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"status": status})
}

// MethodNotAllowed answers mindscape paths hit with the wrong method, in the same
// envelope as the other mindscape errors
func (h *MindscapeHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.errors.HandleStatus(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

func (h *MindscapeHandler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if pkgerrors.IsAppError(err) {
		h.errors.Handle(w, r, err)
		return
	}
	logFailure(h.logger, r, "Mindscape request failed", err)
	h.errors.HandleStatus(w, r, http.StatusInternalServerError, fallback)
}
