package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"darkroom/internal/auth"
	"darkroom/internal/httputil"
)

// publicPath reports whether a path is reachable without a token:
// the health check and the token endpoints themselves.
func publicPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/api/auth/")
}

// Auth verifies the Bearer token on every non-public request and puts
// the token subject into the request context.
func Auth(tokens auth.TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "authorization header missing")
				return
			}
			if !strings.HasPrefix(header, "Bearer ") {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Debug("request rejected",
					"path", r.URL.Path,
					"error", err.Error(),
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithSubject(r, claims.Subject))
		})
	}
}
