package middleware

import (
	"slices"
	"strings"
	"time"

	"github.com/NomadCrew/nomad-itinerary/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows browser reads from the configured origins. An empty
// list or "*" allows every origin. Entries like "https://*.example.com" match
// subdomains.
func CORSMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
		return cors.New(corsConfig)
	}

	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowWildcard = slices.ContainsFunc(cfg.AllowedOrigins, func(o string) bool {
		return strings.Contains(o, "*")
	})
	return cors.New(corsConfig)
}
