package fleet

import "fleet_tracker/internal/models"

// AssignmentPlan lists the row changes one driver-to-bus assignment needs,
// in the order they must be applied: detach whoever currently holds either
// side, then write the new references. Detaching first keeps at most one
// driver on any bus and at most one bus on any driver at every point in
// the transaction.
type AssignmentPlan struct {
	// DetachDriverID is the driver currently on the target bus, whose
	// assignedBusId must be cleared. Nil when the bus is free or already
	// held by the incoming driver.
	DetachDriverID *uint

	// DetachBusID is the incoming driver's previous bus, whose driver
	// reference and denormalized fields must be cleared. Nil when the
	// driver is unassigned or already on the target bus.
	DetachBusID *uint

	// BusUpdates are the column writes that put the driver on the bus,
	// including the denormalized name and phone.
	BusUpdates map[string]interface{}

	// AssignedBusID is the value written to the driver's assignedBusId.
	AssignedBusID uint
}

// PlanAssignment computes the updates for putting driver on bus. It only
// decides; the caller applies the plan inside a transaction.
func PlanAssignment(driver models.Driver, bus models.Bus) AssignmentPlan {
	plan := AssignmentPlan{
		BusUpdates: map[string]interface{}{
			"driver_id":    driver.ID,
			"driver_name":  driver.Name,
			"driver_phone": driver.Phone,
		},
		AssignedBusID: bus.ID,
	}
	if bus.DriverID != nil && *bus.DriverID != driver.ID {
		plan.DetachDriverID = bus.DriverID
	}
	if driver.AssignedBusID != nil && *driver.AssignedBusID != bus.ID {
		plan.DetachBusID = driver.AssignedBusID
	}
	return plan
}

// ClearedBusFields are the column writes that take a driver off a bus.
func ClearedBusFields() map[string]interface{} {
	return map[string]interface{}{
		"driver_id":    nil,
		"driver_name":  "",
		"driver_phone": "",
	}
}
