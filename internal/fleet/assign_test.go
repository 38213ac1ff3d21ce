package fleet

import (
	"testing"

	"gorm.io/gorm"

	"fleet_tracker/internal/models"
)

// applyAssignment mirrors how the controller executes a plan: detach rows
// first, then write both sides of the new reference.
func applyAssignment(drivers map[uint]*models.Driver, buses map[uint]*models.Bus, driverID, busID uint) {
	plan := PlanAssignment(*drivers[driverID], *buses[busID])

	if plan.DetachDriverID != nil {
		drivers[*plan.DetachDriverID].AssignedBusID = nil
	}
	if plan.DetachBusID != nil {
		prev := buses[*plan.DetachBusID]
		prev.DriverID = nil
		prev.DriverName = ""
		prev.DriverPhone = ""
	}

	bus := buses[busID]
	id := drivers[driverID].ID
	bus.DriverID = &id
	bus.DriverName = drivers[driverID].Name
	bus.DriverPhone = drivers[driverID].Phone
	drivers[driverID].AssignedBusID = &plan.AssignedBusID
}

func assignFixtures() (map[uint]*models.Driver, map[uint]*models.Bus) {
	drivers := map[uint]*models.Driver{
		1: {Model: gorm.Model{ID: 1}, Name: "Harpreet", Phone: "0301-1111111"},
		2: {Model: gorm.Model{ID: 2}, Name: "Sania", Phone: "0301-2222222"},
	}
	buses := map[uint]*models.Bus{
		10: {Model: gorm.Model{ID: 10}, BusNumber: "PB-01"},
		11: {Model: gorm.Model{ID: 11}, BusNumber: "PB-02"},
	}
	return drivers, buses
}

func TestPlanAssignment(t *testing.T) {
	t.Run("FreeBusNeedsNoDetach", func(t *testing.T) {
		drivers, buses := assignFixtures()
		plan := PlanAssignment(*drivers[1], *buses[10])
		if plan.DetachDriverID != nil || plan.DetachBusID != nil {
			t.Errorf("detach ids = %v, %v, want nil, nil", plan.DetachDriverID, plan.DetachBusID)
		}
		if plan.BusUpdates["driver_id"] != uint(1) || plan.BusUpdates["driver_name"] != "Harpreet" {
			t.Errorf("bus updates = %v", plan.BusUpdates)
		}
		if plan.AssignedBusID != 10 {
			t.Errorf("AssignedBusID = %d, want 10", plan.AssignedBusID)
		}
	})

	t.Run("ReassigningSameDriverNeedsNoDetach", func(t *testing.T) {
		drivers, buses := assignFixtures()
		applyAssignment(drivers, buses, 1, 10)
		plan := PlanAssignment(*drivers[1], *buses[10])
		if plan.DetachDriverID != nil || plan.DetachBusID != nil {
			t.Errorf("detach ids = %v, %v, want nil, nil", plan.DetachDriverID, plan.DetachBusID)
		}
	})

	t.Run("TakingOverABusDetachesItsDriver", func(t *testing.T) {
		drivers, buses := assignFixtures()
		applyAssignment(drivers, buses, 1, 10)
		applyAssignment(drivers, buses, 2, 10)

		if drivers[1].AssignedBusID != nil {
			t.Errorf("previous driver AssignedBusID = %v, want nil", *drivers[1].AssignedBusID)
		}
		if buses[10].DriverID == nil || *buses[10].DriverID != 2 {
			t.Errorf("bus DriverID = %v, want 2", buses[10].DriverID)
		}
		if buses[10].DriverName != "Sania" {
			t.Errorf("bus DriverName = %q, want Sania", buses[10].DriverName)
		}
	})

	t.Run("MovingADriverDetachesTheOldBus", func(t *testing.T) {
		drivers, buses := assignFixtures()
		applyAssignment(drivers, buses, 1, 10)
		applyAssignment(drivers, buses, 1, 11)

		if buses[10].DriverID != nil {
			t.Errorf("old bus DriverID = %v, want nil", *buses[10].DriverID)
		}
		if buses[10].DriverName != "" || buses[10].DriverPhone != "" {
			t.Errorf("old bus kept denormalized fields %q / %q", buses[10].DriverName, buses[10].DriverPhone)
		}
		if drivers[1].AssignedBusID == nil || *drivers[1].AssignedBusID != 11 {
			t.Errorf("driver AssignedBusID = %v, want 11", drivers[1].AssignedBusID)
		}
	})

	t.Run("SwappingDriversLeavesOneDriverPerBus", func(t *testing.T) {
		drivers, buses := assignFixtures()
		applyAssignment(drivers, buses, 1, 10)
		applyAssignment(drivers, buses, 2, 11)
		applyAssignment(drivers, buses, 1, 11)

		if buses[10].DriverID != nil {
			t.Errorf("bus 10 DriverID = %v, want nil", *buses[10].DriverID)
		}
		if buses[11].DriverID == nil || *buses[11].DriverID != 1 {
			t.Errorf("bus 11 DriverID = %v, want 1", buses[11].DriverID)
		}
		if drivers[2].AssignedBusID != nil {
			t.Errorf("displaced driver AssignedBusID = %v, want nil", *drivers[2].AssignedBusID)
		}
	})
}

func TestClearedBusFields(t *testing.T) {
	fields := ClearedBusFields()
	if fields["driver_id"] != nil {
		t.Errorf("driver_id = %v, want nil", fields["driver_id"])
	}
	if fields["driver_name"] != "" || fields["driver_phone"] != "" {
		t.Errorf("denormalized fields = %v, want empty strings", fields)
	}
}
