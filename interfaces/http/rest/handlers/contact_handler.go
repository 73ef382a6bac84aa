package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"portfolio-backend/application/services"
	"portfolio-backend/pkg/common"
	pkgerrors "portfolio-backend/pkg/errors"
)

// Contact responses
const (
	MsgInvalidBody        = "Invalid request body"
	MsgSheetsConnected    = "Google Sheets connection successful"
	MsgSheetsConnectError = "Google Sheets connection failed"
)

// ContactHandler handles the contact form
type ContactHandler struct {
	service  *services.ContactService
	maxBytes int64
	logger   *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service *services.ContactService, maxBytes int64, logger *zap.Logger) *ContactHandler {
	if maxBytes <= 0 {
		maxBytes = common.MaxBodyBytes
	}
	return &ContactHandler{service: service, maxBytes: maxBytes, logger: logger}
}

// Submit handles POST /api/contact
// @Summary Submit the contact form
// @Description Stores one row in the Responses sheet and emails the site owner
// @Tags contact
// @Accept json
// @Produce json
// @Param request body docs.ContactRequest true "Contact form"
// @Success 200 {object} docs.MessageResponse
// @Failure 400 {object} docs.ErrorResponse "Missing or invalid fields"
// @Failure 429 {object} docs.ErrorResponse "Rate limited"
// @Failure 500 {object} docs.ErrorResponse "Failed to submit contact form"
// @Router /api/contact [post]
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var cmd services.SubmitContactCommand
	if err := common.ParseJSONBody(w, r, &cmd, h.maxBytes); err != nil {
		h.logger.Debug("Rejected contact body", zap.Error(err))
		common.RespondError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if _, err := h.service.Submit(r.Context(), cmd); err != nil {
		if pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation) {
			_, message := statusOf(err, http.StatusBadRequest, services.MsgMissingFields)
			common.RespondError(w, http.StatusBadRequest, message)
			return
		}
		logFailure(h.logger, r, "Error submitting contact form", err)
		common.RespondError(w, http.StatusInternalServerError, services.MsgContactFailed)
		return
	}

	common.RespondMessage(w, http.StatusOK, services.MsgContactAccepted)
}

// TestConnection handles GET /api/contact/test
// @Summary Check the contact spreadsheet
// @Tags contact
// @Produce json
// @Success 200 {object} docs.MessageResponse
// @Failure 500 {object} docs.ErrorResponse
// @Router /api/contact/test [get]
func (h *ContactHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.service.TestConnection(r.Context()); err != nil {
		logFailure(h.logger, r, "Google Sheets connection test failed", err)
		common.RespondError(w, http.StatusInternalServerError, MsgSheetsConnectError)
		return
	}
	common.RespondMessage(w, http.StatusOK, MsgSheetsConnected)
}
