package fleet

import (
	"time"

	"fleet_tracker/internal/geo"
)

// TelemetryInput carries the optional fields of one decoded location
// update. A nil field was absent from the payload and must leave the
// stored value untouched.
type TelemetryInput struct {
	Speed        *float64
	Emergency    *bool
	IssueNote    *string
	LastStopName *string
	LastStopTime *time.Time
}

// TelemetryUpdates builds the column map for one ingest write: the new
// position and timestamp always, plus only the optional fields that were
// supplied. The map is the whole write; a key that is not here is a column
// the update does not touch.
func TelemetryUpdates(point geo.Point, now time.Time, in TelemetryInput) map[string]interface{} {
	updates := map[string]interface{}{
		"loc_lng":      point.Lng,
		"loc_lat":      point.Lat,
		"last_updated": now,
	}
	if in.Speed != nil {
		updates["speed"] = *in.Speed
	}
	if in.Emergency != nil {
		updates["emergency"] = *in.Emergency
	}
	if in.IssueNote != nil {
		updates["issue_note"] = *in.IssueNote
	}
	if in.LastStopName != nil {
		updates["last_stop_name"] = *in.LastStopName
	}
	if in.LastStopTime != nil {
		updates["last_stop_time"] = *in.LastStopTime
	}
	return updates
}
