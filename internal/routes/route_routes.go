package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/controllers"
	"fleet_tracker/internal/middleware"
)

func RouteRoutes(r *gin.Engine) {
	route := r.Group("/api/routes")
	{
		route.GET("", controllers.ListRoutes)
		route.GET("/:id", controllers.GetRoute)
		route.GET("/:id/buses", controllers.ListRouteBuses)

		route.POST("", middleware.RequireAuthWithRole("admin"), controllers.CreateRoute)
		route.PUT("/:id", middleware.RequireAuthWithRole("admin"), controllers.UpdateRoute)
		route.DELETE("/:id", middleware.RequireAuthWithRole("admin"), controllers.DeleteRoute)
	}
}
