package handlers

import (
	"net/http"

	"go.uber.org/zap"

	pkgerrors "portfolio-backend/pkg/errors"
)

// Cache-Control values used by the media endpoints
const (
	cacheNoStore = "no-cache, no-store, must-revalidate, max-age=0"
	cacheShared  = "public, s-maxage=300, stale-while-revalidate=60"
)

// statusOf maps err to an HTTP status and client message. Errors that are not
// AppErrors become fallbackStatus with fallbackMessage.
func statusOf(err error, fallbackStatus int, fallbackMessage string) (int, string) {
	appErr := pkgerrors.GetAppError(err)
	if appErr == nil {
		return fallbackStatus, fallbackMessage
	}
	status := appErr.HTTPStatus
	if status == 0 {
		status = fallbackStatus
	}
	return status, appErr.Message
}

func logFailure(logger *zap.Logger, r *http.Request, msg string, err error) {
	logger.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", cacheNoStore)
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
