package middleware

import (
	"net/http"

	"github.com/asakaida/annostore/internal/infrastructure/config"
)

// CORS sets Access-Control-Allow-Origin on every response and answers
// OPTIONS preflight requests itself with 204.
func CORS(cfg config.CORSConfig) Middleware {
	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)

			if r.Method == http.MethodOptions {
				if cfg.AllowedMethods != "" {
					h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				}
				if cfg.AllowedHeaders != "" {
					h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
