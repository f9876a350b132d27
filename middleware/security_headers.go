package middleware

import (
	"github.com/NomadCrew/nomad-itinerary/config"
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets response headers for a JSON-only API.
// Trip payloads carry itineraries and booking notes, so responses are never
// cached by intermediaries.
func SecurityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store")

		if cfg.IsProduction() {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
