package models

import (
	"time"

	"gorm.io/gorm"

	"fleet_tracker/internal/geo"
)

// Bus statuses form a fixed enumeration; anything else is rejected at the
// API boundary.
const (
	StatusOnTime   = "On Time"
	StatusDelayed  = "Delayed"
	StatusArrived  = "Arrived"
	StatusInactive = "Inactive"
	StatusRunning  = "Running"
)

var busStatuses = []string{StatusOnTime, StatusDelayed, StatusArrived, StatusInactive, StatusRunning}

// ValidStatus reports whether s is one of the allowed bus statuses.
func ValidStatus(s string) bool {
	for _, v := range busStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Bus is a vehicle with a live position, status and route/driver
// association. DriverName and DriverPhone are denormalized from the
// assigned driver so list views need no join; the assignment operation
// keeps them in step.
type Bus struct {
	gorm.Model

	// BusNumber uniqueness is enforced by a partial index over live rows
	// (see config.InitDB), so a deleted number can be reused.
	BusNumber string `json:"busNumber"`

	RouteID uint   `json:"routeId"`
	Route   *Route `json:"route" gorm:"foreignKey:RouteID"` // nil when the route no longer exists

	DriverID    *uint   `json:"driverId,omitempty"`
	Driver      *Driver `json:"driver" gorm:"foreignKey:DriverID"`
	DriverName  string  `json:"driverName,omitempty"`
	DriverPhone string  `json:"driverPhone,omitempty"`

	CurrentLocation geo.Point `json:"currentLocation" gorm:"embedded;embeddedPrefix:loc_"`

	Status    string   `json:"status" gorm:"default:'On Time'"`
	Speed     *float64 `json:"speed,omitempty"` // km/h, last known
	Emergency bool     `json:"emergency" gorm:"default:false"`
	IssueNote string   `json:"issueNote,omitempty"`

	LastStopName string     `json:"lastStopName,omitempty"`
	LastStopTime *time.Time `json:"lastStopTime,omitempty"`

	// LastUpdated advances on every location or status mutation and is the
	// sole liveness signal; there is no separate heartbeat.
	LastUpdated time.Time `json:"lastUpdated"`
}
