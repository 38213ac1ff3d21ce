package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet_tracker/internal/config"
	"fleet_tracker/internal/fleet"
	"fleet_tracker/internal/geo"
	"fleet_tracker/internal/metrics"
	"fleet_tracker/internal/models"
)

// defaultNearbyRadiusMeters applies when the caller does not choose a radius.
const defaultNearbyRadiusMeters = 3000.0

// UpdateBusLocation applies one telemetry update to one bus. It accepts
// either separate latitude/longitude fields or a coordinates [lng, lat]
// pair, overwrites the current location, advances lastUpdated, and merges in
// only the optional fields that were actually supplied. This is the only
// path a driver device has to keep a bus from being reported offline.
func UpdateBusLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		metrics.LocationUpdateFailures.Inc()
		return
	}

	var input struct {
		Latitude     *float64   `json:"latitude"`
		Longitude    *float64   `json:"longitude"`
		Coordinates  []float64  `json:"coordinates"`
		Speed        *float64   `json:"speed"`
		Emergency    *bool      `json:"emergency"`
		IssueNote    *string    `json:"issueNote"`
		LastStopName *string    `json:"lastStopName"`
		LastStopTime *time.Time `json:"lastStopTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		metrics.LocationUpdateFailures.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid telemetry payload: " + err.Error()})
		return
	}

	point, err := geo.FromRequest(input.Latitude, input.Longitude, input.Coordinates)
	if err != nil {
		metrics.LocationUpdateFailures.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var bus models.Bus
	if err := config.DB.First(&bus, id).Error; err != nil {
		metrics.LocationUpdateFailures.Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bus not found"})
			return
		}
		logrus.WithError(err).Error("UpdateBusLocation: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update bus location"})
		return
	}

	updates := fleet.TelemetryUpdates(point, time.Now(), fleet.TelemetryInput{
		Speed:        input.Speed,
		Emergency:    input.Emergency,
		IssueNote:    input.IssueNote,
		LastStopName: input.LastStopName,
		LastStopTime: input.LastStopTime,
	})

	if err := config.DB.Model(&bus).Updates(updates).Error; err != nil {
		metrics.LocationUpdateFailures.Inc()
		logrus.WithError(err).Error("UpdateBusLocation: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to update bus location"})
		return
	}
	metrics.LocationUpdates.Inc()

	config.DB.Preload("Route").Preload("Driver").First(&bus, bus.ID)
	c.JSON(http.StatusOK, bus)
}

// GetBusLocation returns the slim live-position view of one bus.
func GetBusLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var bus models.Bus
	if err := config.DB.Preload("Route").First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bus not found"})
			return
		}
		logrus.WithError(err).Error("GetBusLocation: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to fetch bus location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              bus.ID,
		"busNumber":       bus.BusNumber,
		"currentLocation": bus.CurrentLocation,
		"status":          bus.Status,
		"route":           bus.Route,
		"driverName":      bus.DriverName,
		"driverPhone":     bus.DriverPhone,
		"lastUpdated":     bus.LastUpdated,
	})
}

// GetNearbyBuses returns buses within maxDistanceMeters of the query point,
// nearest first. The ordering comes from the spatial index's KNN operator,
// not a separate sort.
func GetNearbyBuses(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Latitude and longitude must be numbers"})
		return
	}

	center := geo.Point{Lng: lng, Lat: lat}
	if !center.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": geo.ErrInvalidCoordinates.Error()})
		return
	}

	radius := defaultNearbyRadiusMeters
	if raw := c.Query("maxDistanceMeters"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "maxDistanceMeters must be a positive number"})
			return
		}
		radius = parsed
	}

	buses := []models.Bus{}
	err := config.DB.
		Preload("Route").
		Where("ST_DWithin(ST_SetSRID(ST_MakePoint(loc_lng, loc_lat), 4326)::geography, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)", lng, lat, radius).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "ST_SetSRID(ST_MakePoint(loc_lng, loc_lat), 4326)::geography <-> ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography",
			Vars: []interface{}{lng, lat},
		}}).
		Find(&buses).Error
	if err != nil {
		logrus.WithError(err).Error("GetNearbyBuses: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to fetch nearby buses"})
		return
	}
	metrics.NearbyQueries.Inc()

	type nearbyBus struct {
		models.Bus
		DistanceMeters float64 `json:"distanceMeters"`
	}
	out := make([]nearbyBus, 0, len(buses))
	for _, bus := range buses {
		out = append(out, nearbyBus{
			Bus:            bus,
			DistanceMeters: geo.DistanceMeters(center, bus.CurrentLocation),
		})
	}
	c.JSON(http.StatusOK, out)
}
