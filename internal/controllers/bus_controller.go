package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_tracker/internal/config"
	"fleet_tracker/internal/geo"
	"fleet_tracker/internal/models"
)

// isUniqueViolation matches duplicate-key failures from the GORM error
// translation layer or the raw postgres error code.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// CreateBus registers a new bus with its initial location and route.
func CreateBus(c *gin.Context) {
	var input struct {
		BusNumber   string    `json:"busNumber" binding:"required"`
		Route       uint      `json:"route" binding:"required"`
		Coordinates []float64 `json:"coordinates" binding:"required"`
		Status      string    `json:"status"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Required: busNumber, route id, coordinates [lng, lat]. Optional: status"})
		return
	}

	point, err := geo.FromPair(input.Coordinates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	status := input.Status
	if status == "" {
		status = models.StatusOnTime
	}
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, input.Route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
			return
		}
		logrus.WithError(err).Error("CreateBus: route lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to create bus"})
		return
	}

	bus := models.Bus{
		BusNumber:       input.BusNumber,
		RouteID:         route.ID,
		CurrentLocation: point,
		Status:          status,
	}

	if err := config.DB.Create(&bus).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "busNumber already exists"})
			return
		}
		logrus.WithError(err).Error("CreateBus: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to create bus"})
		return
	}

	config.DB.Preload("Route").Preload("Driver").First(&bus, bus.ID)
	c.JSON(http.StatusCreated, bus)
}

// ListBuses returns all buses sorted by busNumber, route and driver
// populated.
func ListBuses(c *gin.Context) {
	buses := []models.Bus{}
	if err := config.DB.Preload("Route").Preload("Driver").Order("bus_number ASC").Find(&buses).Error; err != nil {
		logrus.WithError(err).Error("ListBuses: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to fetch buses"})
		return
	}
	c.JSON(http.StatusOK, buses)
}

// GetBus returns a single bus by id.
func GetBus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var bus models.Bus
	if err := config.DB.Preload("Route").Preload("Driver").First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bus not found"})
			return
		}
		logrus.WithError(err).Error("GetBus: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to fetch bus"})
		return
	}
	c.JSON(http.StatusOK, bus)
}

// UpdateBusStatus applies a status-only change from the fixed enumeration.
func UpdateBusStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	var bus models.Bus
	if err := config.DB.First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bus not found"})
			return
		}
		logrus.WithError(err).Error("UpdateBusStatus: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update status"})
		return
	}

	updates := map[string]interface{}{
		"status":       input.Status,
		"last_updated": time.Now(),
	}
	if err := config.DB.Model(&bus).Updates(updates).Error; err != nil {
		logrus.WithError(err).Error("UpdateBusStatus: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update status"})
		return
	}

	config.DB.Preload("Route").Preload("Driver").First(&bus, bus.ID)
	c.JSON(http.StatusOK, bus)
}

// DeleteBus removes a bus.
func DeleteBus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var bus models.Bus
	if err := config.DB.First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bus not found"})
			return
		}
		logrus.WithError(err).Error("DeleteBus: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to delete bus"})
		return
	}

	if err := config.DB.Delete(&bus).Error; err != nil {
		logrus.WithError(err).Error("DeleteBus: delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to delete bus"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}
