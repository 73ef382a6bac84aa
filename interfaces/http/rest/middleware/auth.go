package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"portfolio-backend/pkg/auth"
)

// RequireAdmin only lets through bearer tokens carrying the admin role. A nil
// validator disables the check, which is how development runs without a secret.
func RequireAdmin(validator *auth.JWTValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Missing authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("Invalid admin token",
					zap.Error(err),
					zap.String("ip", clientIP(r)),
					zap.String("path", r.URL.Path),
				)
				switch {
				case errors.Is(err, auth.ErrExpiredToken):
					writeError(w, http.StatusUnauthorized, "Token has expired")
				case errors.Is(err, auth.ErrInvalidSignature):
					writeError(w, http.StatusUnauthorized, "Invalid token signature")
				default:
					writeError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}
			if !claims.HasRole(auth.RoleAdmin) {
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			logger.Debug("Admin request authenticated", zap.String("subject", claims.Subject))
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
