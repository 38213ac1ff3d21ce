package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_tracker/internal/config"
	"fleet_tracker/internal/fleet"
	"fleet_tracker/internal/models"
)

// alertDisplayLimit caps how many alerts the dashboard shows at once.
const alertDisplayLimit = 6

// rankedRouteLimit caps the busiest/most-delayed rankings.
const rankedRouteLimit = 3

// DashboardSummary returns the fleet-wide counts the admin dashboard polls.
func DashboardSummary(c *gin.Context) {
	var totalBuses, activeBuses, delayedBuses, totalRoutes, driverCount int64

	db := config.DB
	counts := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"total buses", db.Model(&models.Bus{}), &totalBuses},
		{"active buses", db.Model(&models.Bus{}).Where("status IN ?", []string{models.StatusRunning, models.StatusOnTime}), &activeBuses},
		{"delayed buses", db.Model(&models.Bus{}).Where("status = ?", models.StatusDelayed), &delayedBuses},
		{"routes", db.Model(&models.Route{}), &totalRoutes},
		{"drivers", db.Model(&models.Driver{}), &driverCount},
	}
	for _, count := range counts {
		if err := count.query.Count(count.dest).Error; err != nil {
			logrus.WithError(err).Errorf("DashboardSummary: %s count failed", count.name)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to build summary"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalBuses":   totalBuses,
		"activeBuses":  activeBuses,
		"delayedBuses": delayedBuses,
		"totalRoutes":  totalRoutes,
		"driverCount":  driverCount,
	})
}

// DashboardAlerts derives the current alert list from bus timestamps and
// status fields. Nothing is persisted or scheduled; each poll recomputes.
func DashboardAlerts(c *gin.Context) {
	buses := []models.Bus{}
	if err := config.DB.Order("id ASC").Find(&buses).Error; err != nil {
		logrus.WithError(err).Error("DashboardAlerts: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to derive alerts"})
		return
	}

	alerts := fleet.DeriveAlerts(buses, time.Now())
	if len(alerts) > alertDisplayLimit {
		alerts = alerts[:alertDisplayLimit]
	}
	if alerts == nil {
		alerts = []fleet.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// DashboardRouteStats returns the busiest and most-delayed route rankings,
// recomputed from the current bus and route collections.
func DashboardRouteStats(c *gin.Context) {
	routes := []models.Route{}
	if err := config.DB.Order("route_name ASC").Find(&routes).Error; err != nil {
		logrus.WithError(err).Error("DashboardRouteStats: route query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to build route stats"})
		return
	}

	buses := []models.Bus{}
	if err := config.DB.Find(&buses).Error; err != nil {
		logrus.WithError(err).Error("DashboardRouteStats: bus query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to build route stats"})
		return
	}

	aggs := fleet.AggregateRoutes(routes, buses)
	c.JSON(http.StatusOK, gin.H{
		"routes":      aggs,
		"busiest":     fleet.Busiest(aggs, rankedRouteLimit),
		"mostDelayed": fleet.MostDelayed(aggs, rankedRouteLimit),
	})
}
