package router

import (
	"github.com/NomadCrew/nomad-itinerary/config"
	_ "github.com/NomadCrew/nomad-itinerary/docs"
	"github.com/NomadCrew/nomad-itinerary/handlers"
	"github.com/NomadCrew/nomad-itinerary/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config        *config.Config
	TripHandler   *handlers.TripHandler
	HealthHandler *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.ErrorHandler())

	r.GET("/health", deps.HealthHandler.HealthCheck)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	{
		tripRoutes := v1.Group("/trips")
		{
			tripRoutes.GET("/:id", deps.TripHandler.GetTripHandler)
			tripRoutes.GET("/:id/costs", deps.TripHandler.GetTripCostsHandler)
		}
		v1.GET("/owners/:ownerId/trips", deps.TripHandler.ListOwnerTripsHandler)
	}

	return r
}
