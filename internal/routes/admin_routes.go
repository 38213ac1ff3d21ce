package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/controllers"
	"fleet_tracker/internal/middleware"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin/dashboard")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/summary", controllers.DashboardSummary)
		admin.GET("/alerts", controllers.DashboardAlerts)
		admin.GET("/route-stats", controllers.DashboardRouteStats)
	}
}
