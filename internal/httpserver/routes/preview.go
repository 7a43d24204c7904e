package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkshelf/linkshelf/internal/httpserver/deps"
	"github.com/linkshelf/linkshelf/internal/httpserver/handlers"
	"github.com/linkshelf/linkshelf/internal/httpserver/mw"
)

func init() { Register(registerPreview) }

// Preview triggers outbound fetches, so it gets a per-IP rate limit.
func registerPreview(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             10,
		RefillPerIPPerMin: 30,
		TrustProxy:        d.TrustProxy,
	})
	r.With(limit).Get("/api/preview", handlers.Preview(d))
}
