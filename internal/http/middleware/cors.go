package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/davidbz/ollamagen/internal/config"
)

// Headers set by Trace that browser clients may read.
var exposedHeaders = []string{"X-Request-Id", "X-Trace-Id"}

// CORS lets browser clients call the API from the configured origins.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	policy := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return policy.Handler
}
