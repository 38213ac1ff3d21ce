package fleet

import (
	"fmt"
	"time"

	"fleet_tracker/internal/models"
)

// OfflineLimit is how long a bus may go without telemetry before it is
// reported offline.
const OfflineLimit = 10 * time.Minute

const (
	AlertOffline   = "offline"
	AlertDelayed   = "delayed"
	AlertEmergency = "emergency"

	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// Alert is an ephemeral, derived condition on a single bus. Alerts are
// computed on demand and never persisted.
type Alert struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	BusNumber string `json:"busNumber"`
	Message   string `json:"message"`
}

// DeriveAlerts scans buses in the given (storage) order and reports offline,
// delayed and emergency conditions; one bus can raise several at once. A bus
// that has never sent telemetry has a zero LastUpdated and so counts as
// offline since the epoch, which keeps freshly created buses visible.
func DeriveAlerts(buses []models.Bus, now time.Time) []Alert {
	var alerts []Alert

	for _, bus := range buses {
		elapsed := now.Sub(bus.LastUpdated)
		if elapsed > OfflineLimit {
			alerts = append(alerts, Alert{
				Type:      AlertOffline,
				Severity:  SeverityHigh,
				BusNumber: bus.BusNumber,
				Message:   fmt.Sprintf("Bus %s is offline for %d min", bus.BusNumber, int(elapsed.Minutes())),
			})
		}

		if bus.Status == models.StatusDelayed {
			alerts = append(alerts, Alert{
				Type:      AlertDelayed,
				Severity:  SeverityMedium,
				BusNumber: bus.BusNumber,
				Message:   fmt.Sprintf("Bus %s is delayed", bus.BusNumber),
			})
		}

		if bus.Emergency {
			note := bus.IssueNote
			if note == "" {
				note = "No details"
			}
			alerts = append(alerts, Alert{
				Type:      AlertEmergency,
				Severity:  SeverityHigh,
				BusNumber: bus.BusNumber,
				Message:   fmt.Sprintf("Emergency on Bus %s (%s)", bus.BusNumber, note),
			})
		}
	}

	return alerts
}
