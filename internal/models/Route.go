package models

import (
	"gorm.io/gorm"
)

// Route is an ordered sequence of stops plus descriptive metadata.
// Stops are replaced wholesale on update; there is no partial stop edit.
type Route struct {
	gorm.Model

	// RouteName uniqueness is enforced by a partial index over live rows
	// (see config.InitDB).
	RouteName  string `json:"routeName"`
	Directions string `json:"directions"`

	Stops []Stop `json:"stops" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Buses []Bus  `json:"buses,omitempty" gorm:"foreignKey:RouteID"`
}
