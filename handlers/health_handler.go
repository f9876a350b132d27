package handlers

import (
	"net/http"

	"github.com/NomadCrew/nomad-itinerary/internal/service"
	"github.com/gin-gonic/gin"
)

// HealthHandler serves the health check endpoints.
type HealthHandler struct {
	healthService *service.HealthService
}

func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// LivenessCheck answers 200 while the process is up.
// @Summary Liveness check
// @Tags health
// @Success 200 "OK"
// @Router /health/liveness [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// HealthCheck reports status and version. A degraded service still answers 200.
// @Summary Report service health
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthCheck "UP or DEGRADED"
// @Failure 503 {object} types.HealthCheck "Document database unreachable"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())

	status := http.StatusOK
	if !health.Serving() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}
