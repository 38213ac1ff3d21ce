package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_tracker/internal/config"
	"fleet_tracker/internal/fleet"
	"fleet_tracker/internal/models"
)

func stopsOrdered(db *gorm.DB) *gorm.DB {
	return db.Order("stops.sequence ASC")
}

// ListRoutes returns all routes with their stops in sequence order.
func ListRoutes(c *gin.Context) {
	routes := []models.Route{}
	if err := config.DB.Preload("Stops", stopsOrdered).Order("route_name ASC").Find(&routes).Error; err != nil {
		logrus.WithError(err).Error("ListRoutes: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to fetch routes"})
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GetRoute returns a single route by id.
func GetRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var route models.Route
	if err := config.DB.Preload("Stops", stopsOrdered).First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
			return
		}
		logrus.WithError(err).Error("GetRoute: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to fetch route"})
		return
	}
	c.JSON(http.StatusOK, route)
}

// CreateRoute creates a route with its normalized stop list. The stop list
// is all-or-nothing: one invalid stop rejects the whole request.
func CreateRoute(c *gin.Context) {
	var input struct {
		RouteName  string            `json:"routeName" binding:"required"`
		Directions string            `json:"directions" binding:"required"`
		Stops      []fleet.StopInput `json:"stops" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields: routeName, directions, stops"})
		return
	}

	stops, err := fleet.NormalizeStops(input.Stops)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	route := models.Route{
		RouteName:  input.RouteName,
		Directions: input.Directions,
		Stops:      stops,
	}

	if err := config.DB.Create(&route).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "routeName already exists"})
			return
		}
		logrus.WithError(err).Error("CreateRoute: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to create route"})
		return
	}

	config.DB.Preload("Stops", stopsOrdered).First(&route, route.ID)
	c.JSON(http.StatusCreated, route)
}

// UpdateRoute updates route metadata and, when a stop list is supplied,
// replaces the stops wholesale.
func UpdateRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var route models.Route
	if err := config.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
			return
		}
		logrus.WithError(err).Error("UpdateRoute: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update route"})
		return
	}

	var input struct {
		RouteName  *string           `json:"routeName"`
		Directions *string           `json:"directions"`
		Stops      []fleet.StopInput `json:"stops"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
		return
	}

	var stops []models.Stop
	if input.Stops != nil {
		normalized, err := fleet.NormalizeStops(input.Stops)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		stops = normalized
	}

	if input.RouteName != nil {
		route.RouteName = *input.RouteName
	}
	if input.Directions != nil {
		route.Directions = *input.Directions
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update route"})
		return
	}

	if stops != nil {
		if err := tx.Where("route_id = ?", route.ID).Delete(&models.Stop{}).Error; err != nil {
			tx.Rollback()
			logrus.WithError(err).Error("UpdateRoute: stop replacement failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update route"})
			return
		}
		for i := range stops {
			stops[i].RouteID = route.ID
		}
		if err := tx.Create(&stops).Error; err != nil {
			tx.Rollback()
			logrus.WithError(err).Error("UpdateRoute: stop replacement failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update route"})
			return
		}
	}

	if err := tx.Save(&route).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "routeName already exists"})
			return
		}
		logrus.WithError(err).Error("UpdateRoute: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update route"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update route"})
		return
	}

	config.DB.Preload("Stops", stopsOrdered).First(&route, route.ID)
	c.JSON(http.StatusOK, route)
}

// DeleteRoute removes a route and its stops. Deletion is refused while any
// bus still references the route, so readers never see a dangling id from
// this path.
func DeleteRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var route models.Route
	if err := config.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
			return
		}
		logrus.WithError(err).Error("DeleteRoute: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to delete route"})
		return
	}

	var busCount int64
	if err := config.DB.Model(&models.Bus{}).Where("route_id = ?", route.ID).Count(&busCount).Error; err != nil {
		logrus.WithError(err).Error("DeleteRoute: bus count failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to delete route"})
		return
	}
	if busCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Route still has buses assigned"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to delete route"})
		return
	}
	if err := tx.Where("route_id = ?", route.ID).Delete(&models.Stop{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to delete route"})
		return
	}
	if err := tx.Delete(&route).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to delete route"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to delete route"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}

// ListRouteBuses returns the buses currently on a route, derived through the
// membership check rather than stored.
func ListRouteBuses(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var route models.Route
	if err := config.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
			return
		}
		logrus.WithError(err).Error("ListRouteBuses: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to fetch route buses"})
		return
	}

	buses := []models.Bus{}
	if err := config.DB.Preload("Route").Preload("Driver").Order("bus_number ASC").Find(&buses).Error; err != nil {
		logrus.WithError(err).Error("ListRouteBuses: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to fetch route buses"})
		return
	}

	c.JSON(http.StatusOK, fleet.BusesOnRoute(buses, route.ID))
}
