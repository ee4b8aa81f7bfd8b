package middleware

import (
	"crypto/subtle"
	"net/http"

	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// AdminKey guards catalog administration routes. Real user authentication
// lives in an external identity service; the backend only checks the
// operator key it was configured with.
func AdminKey(apiKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				logger.Error("Admin API key is not configured",
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access is not configured")
				return
			}

			provided := r.Header.Get("X-Admin-Key")
			if provided == "" {
				utils.ResponseUnauthorized(w, "Missing admin key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logger.Warn("Admin key mismatch",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
