package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/battleshipgame-go/internal/middleware"
)

// Logging creates request logging middleware for the API.
// Health probes are not logged.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	base := middleware.Logging(logger)
	return func(next http.Handler) http.Handler {
		logged := base(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/v1/health" {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}
