package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"fleet_tracker/internal/metrics"
)

// SetupRouter builds the engine with recovery and request logging, then
// registers every API surface.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())

	BusRoutes(r)
	RouteRoutes(r)
	DriverRoutes(r)
	AdminRoutes(r)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
