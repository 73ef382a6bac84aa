package middleware

import (
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/common"
)

// MsgRateLimited is returned with 429
const MsgRateLimited = "Too many requests, please try again later."

// RateLimitObserver is told about rejected requests
type RateLimitObserver interface {
	RateLimitExceeded()
}

// RateLimit rejects callers that exceed limiter, keyed by client IP. RealIP must run
// first. Limiter errors let the request through.
func RateLimit(limiter auth.RateLimiter, limit int, obs RateLimitObserver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("Rate limiter error", zap.Error(err), zap.String("ip", ip))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if obs != nil {
					obs.RateLimitExceeded()
				}
				logger.Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "60")
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
				writeError(w, http.StatusTooManyRequests, MsgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeError(w http.ResponseWriter, status int, message string) {
	common.RespondError(w, status, message)
}
