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

// CreateDriver registers a new driver.
func CreateDriver(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Shift    string `json:"shift"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and phone are required"})
		return
	}

	shift := input.Shift
	if shift == "" {
		shift = models.ShiftMorning
	}
	if !models.ValidShift(shift) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid shift"})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	driver := models.Driver{
		Name:     input.Name,
		Phone:    input.Phone,
		Shift:    shift,
		IsActive: isActive,
	}
	if err := config.DB.Create(&driver).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "Driver with this phone already exists"})
			return
		}
		logrus.WithError(err).Error("CreateDriver: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver creation failed"})
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// ListDrivers returns all drivers with their assigned bus populated.
func ListDrivers(c *gin.Context) {
	drivers := []models.Driver{}
	if err := config.DB.Preload("AssignedBus").Order("name ASC").Find(&drivers).Error; err != nil {
		logrus.WithError(err).Error("ListDrivers: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch drivers"})
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// UpdateDriver modifies driver details. Name and phone changes are carried
// onto the assigned bus's denormalized fields in the same transaction.
func UpdateDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(err).Error("UpdateDriver: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver update failed"})
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Shift    *string `json:"shift"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
		return
	}
	if input.Shift != nil && !models.ValidShift(*input.Shift) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid shift"})
		return
	}

	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.Phone != nil {
		driver.Phone = *input.Phone
	}
	if input.Shift != nil {
		driver.Shift = *input.Shift
	}
	if input.IsActive != nil {
		driver.IsActive = *input.IsActive
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver update failed"})
		return
	}

	if err := tx.Save(&driver).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "Driver with this phone already exists"})
			return
		}
		logrus.WithError(err).Error("UpdateDriver: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver update failed"})
		return
	}

	if driver.AssignedBusID != nil && (input.Name != nil || input.Phone != nil) {
		busUpdates := map[string]interface{}{
			"driver_name":  driver.Name,
			"driver_phone": driver.Phone,
		}
		if err := tx.Model(&models.Bus{}).Where("id = ?", *driver.AssignedBusID).Updates(busUpdates).Error; err != nil {
			tx.Rollback()
			logrus.WithError(err).Error("UpdateDriver: bus denormalization failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver update failed"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver update failed"})
		return
	}

	config.DB.Preload("AssignedBus").First(&driver, driver.ID)
	c.JSON(http.StatusOK, driver)
}

// AssignDriver sets the mutual driver/bus reference in one transaction:
// detach whoever holds either side, then write both sides of the new
// assignment. The clear-then-set ordering is a correctness requirement;
// reversing it could leave two drivers pointing at one bus.
func AssignDriver(c *gin.Context) {
	var input struct {
		DriverID uint `json:"driverId" binding:"required"`
		BusID    uint `json:"busId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "driverId and busId are required"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign driver"})
		return
	}

	var driver models.Driver
	if err := tx.First(&driver, input.DriverID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(err).Error("AssignDriver: driver lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign driver"})
		return
	}

	var bus models.Bus
	if err := tx.First(&bus, input.BusID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bus not found"})
			return
		}
		logrus.WithError(err).Error("AssignDriver: bus lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign driver"})
		return
	}

	plan := fleet.PlanAssignment(driver, bus)

	if plan.DetachDriverID != nil {
		if err := tx.Model(&models.Driver{}).Where("id = ?", *plan.DetachDriverID).Update("assigned_bus_id", nil).Error; err != nil {
			tx.Rollback()
			logrus.WithError(err).Error("AssignDriver: clearing previous driver failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign driver"})
			return
		}
	}
	if plan.DetachBusID != nil {
		if err := tx.Model(&models.Bus{}).Where("id = ?", *plan.DetachBusID).Updates(fleet.ClearedBusFields()).Error; err != nil {
			tx.Rollback()
			logrus.WithError(err).Error("AssignDriver: clearing previous bus failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign driver"})
			return
		}
	}

	if err := tx.Model(&bus).Updates(plan.BusUpdates).Error; err != nil {
		tx.Rollback()
		logrus.WithError(err).Error("AssignDriver: bus update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign driver"})
		return
	}

	if err := tx.Model(&driver).Update("assigned_bus_id", plan.AssignedBusID).Error; err != nil {
		tx.Rollback()
		logrus.WithError(err).Error("AssignDriver: driver update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign driver"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign driver"})
		return
	}

	config.DB.Preload("AssignedBus").First(&driver, driver.ID)
	config.DB.Preload("Route").Preload("Driver").First(&bus, bus.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Driver assigned successfully",
		"driver":  driver,
		"bus":     bus,
	})
}

// DeleteDriver removes a driver, clearing the assigned bus's reference and
// denormalized fields first.
func DeleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(err).Error("DeleteDriver: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver deletion failed"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver deletion failed"})
		return
	}

	if driver.AssignedBusID != nil {
		if err := tx.Model(&models.Bus{}).Where("id = ?", *driver.AssignedBusID).Updates(fleet.ClearedBusFields()).Error; err != nil {
			tx.Rollback()
			logrus.WithError(err).Error("DeleteDriver: clearing bus reference failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver deletion failed"})
			return
		}
	}

	if err := tx.Delete(&driver).Error; err != nil {
		tx.Rollback()
		logrus.WithError(err).Error("DeleteDriver: delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver deletion failed"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Driver deletion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}
