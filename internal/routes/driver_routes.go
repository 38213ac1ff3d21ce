package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/controllers"
	"fleet_tracker/internal/middleware"
)

func DriverRoutes(r *gin.Engine) {
	driver := r.Group("/api/drivers")
	driver.Use(middleware.RequireAuthWithRole("admin"))
	{
		driver.POST("", controllers.CreateDriver)
		driver.GET("", controllers.ListDrivers)
		driver.PUT("/:id", controllers.UpdateDriver)
		driver.DELETE("/:id", controllers.DeleteDriver)
		driver.POST("/assign", controllers.AssignDriver)
	}
}
