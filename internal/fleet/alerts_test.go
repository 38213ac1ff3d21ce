package fleet

import (
	"strings"
	"testing"
	"time"

	"fleet_tracker/internal/models"
)

func TestDeriveAlerts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("OfflineOverThreshold", func(t *testing.T) {
		buses := []models.Bus{{BusNumber: "PB-01", Status: models.StatusOnTime, LastUpdated: now.Add(-11 * time.Minute)}}
		alerts := DeriveAlerts(buses, now)
		if len(alerts) != 1 {
			t.Fatalf("got %d alerts, want 1", len(alerts))
		}
		a := alerts[0]
		if a.Type != AlertOffline || a.Severity != SeverityHigh {
			t.Errorf("alert = %+v, want offline/high", a)
		}
		if !strings.Contains(a.Message, "11 min") {
			t.Errorf("message should carry floored elapsed minutes, got %q", a.Message)
		}
	})

	t.Run("FreshBusUnderThreshold", func(t *testing.T) {
		buses := []models.Bus{{BusNumber: "PB-02", Status: models.StatusOnTime, LastUpdated: now.Add(-9 * time.Minute)}}
		if alerts := DeriveAlerts(buses, now); len(alerts) != 0 {
			t.Errorf("got %d alerts, want none", len(alerts))
		}
	})

	t.Run("DelayedStatus", func(t *testing.T) {
		buses := []models.Bus{{BusNumber: "PB-03", Status: models.StatusDelayed, LastUpdated: now}}
		alerts := DeriveAlerts(buses, now)
		if len(alerts) != 1 {
			t.Fatalf("got %d alerts, want 1", len(alerts))
		}
		if alerts[0].Type != AlertDelayed || alerts[0].Severity != SeverityMedium {
			t.Errorf("alert = %+v, want delayed/medium", alerts[0])
		}
	})

	t.Run("EmergencyWithNote", func(t *testing.T) {
		buses := []models.Bus{{BusNumber: "PB-04", Status: models.StatusOnTime, Emergency: true, IssueNote: "flat tyre", LastUpdated: now}}
		alerts := DeriveAlerts(buses, now)
		if len(alerts) != 1 {
			t.Fatalf("got %d alerts, want 1", len(alerts))
		}
		if alerts[0].Severity != SeverityHigh || !strings.Contains(alerts[0].Message, "flat tyre") {
			t.Errorf("alert = %+v", alerts[0])
		}
	})

	t.Run("EmergencyDefaultNote", func(t *testing.T) {
		buses := []models.Bus{{BusNumber: "PB-05", Status: models.StatusOnTime, Emergency: true, LastUpdated: now}}
		alerts := DeriveAlerts(buses, now)
		if len(alerts) != 1 || !strings.Contains(alerts[0].Message, "No details") {
			t.Errorf("expected the default note, got %+v", alerts)
		}
	})

	t.Run("NeverUpdatedAlwaysAlerts", func(t *testing.T) {
		buses := []models.Bus{{BusNumber: "PB-06", Status: models.StatusOnTime}}
		alerts := DeriveAlerts(buses, now)
		if len(alerts) != 1 || alerts[0].Type != AlertOffline {
			t.Fatalf("a bus with no telemetry must alert offline, got %+v", alerts)
		}
	})

	t.Run("SeveralConditionsOnOneBus", func(t *testing.T) {
		buses := []models.Bus{{
			BusNumber:   "PB-07",
			Status:      models.StatusDelayed,
			Emergency:   true,
			LastUpdated: now.Add(-30 * time.Minute),
		}}
		alerts := DeriveAlerts(buses, now)
		if len(alerts) != 3 {
			t.Fatalf("got %d alerts, want 3 (offline, delayed, emergency)", len(alerts))
		}
		if alerts[0].Type != AlertOffline || alerts[1].Type != AlertDelayed || alerts[2].Type != AlertEmergency {
			t.Errorf("alert order = [%s %s %s]", alerts[0].Type, alerts[1].Type, alerts[2].Type)
		}
	})

	t.Run("StorageOrderPreserved", func(t *testing.T) {
		buses := []models.Bus{
			{BusNumber: "B", Status: models.StatusDelayed, LastUpdated: now},
			{BusNumber: "A", Status: models.StatusDelayed, LastUpdated: now},
		}
		alerts := DeriveAlerts(buses, now)
		if len(alerts) != 2 || alerts[0].BusNumber != "B" || alerts[1].BusNumber != "A" {
			t.Errorf("alerts must follow the input scan order, got %+v", alerts)
		}
	})
}
