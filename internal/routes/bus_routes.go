package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/controllers"
	"fleet_tracker/internal/middleware"
)

func BusRoutes(r *gin.Engine) {
	bus := r.Group("/api/bus")
	{
		// Commuter map reads are public
		bus.GET("", controllers.ListBuses)
		bus.GET("/nearby", controllers.GetNearbyBuses)
		bus.GET("/:id", controllers.GetBus)
		bus.GET("/:id/location", controllers.GetBusLocation)

		// Telemetry ingest from driver devices needs any valid token
		bus.PUT("/:id", middleware.RequireAuth(), controllers.UpdateBusLocation)

		// Fleet mutation is admin-only
		bus.POST("", middleware.RequireAuthWithRole("admin"), controllers.CreateBus)
		bus.PATCH("/:id/status", middleware.RequireAuthWithRole("admin"), controllers.UpdateBusStatus)
		bus.DELETE("/:id", middleware.RequireAuthWithRole("admin"), controllers.DeleteBus)
	}
}
