package models

import (
	"gorm.io/gorm"
)

const (
	ShiftMorning = "Morning"
	ShiftEvening = "Evening"
	ShiftNight   = "Night"
)

// ValidShift reports whether s is one of the allowed driver shifts.
func ValidShift(s string) bool {
	return s == ShiftMorning || s == ShiftEvening || s == ShiftNight
}

// Driver is a person optionally assigned to at most one bus. AssignedBusID
// and Bus.DriverID are a mutual back-reference kept consistent by the
// assignment operation, not by storage.
type Driver struct {
	gorm.Model

	Name string `json:"name"`
	// Phone uniqueness is enforced by a partial index over live rows
	// (see config.InitDB).
	Phone string `json:"phone"`
	Shift string `json:"shift" gorm:"default:'Morning'"`

	AssignedBusID *uint `json:"assignedBusId"`
	AssignedBus   *Bus  `json:"assignedBus,omitempty" gorm:"foreignKey:AssignedBusID"`

	IsActive bool `json:"isActive" gorm:"default:true"`
}
