package models

import (
	"gorm.io/gorm"

	"fleet_tracker/internal/geo"
)

// Stop is a named point along a route. Sequence orders stops for display
// and is not required to be contiguous.
type Stop struct {
	gorm.Model

	Name        string    `json:"name"`
	ArrivalTime *string   `json:"arrivalTime,omitempty"` // free-text scheduled time
	Location    geo.Point `json:"location" gorm:"embedded"`
	Sequence    int       `json:"sequence"`

	RouteID uint `json:"routeId" gorm:"index"`
}
