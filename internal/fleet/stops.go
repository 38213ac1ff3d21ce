package fleet

import (
	"errors"
	"fmt"

	"fleet_tracker/internal/geo"
	"fleet_tracker/internal/models"
)

// StopInput is a caller-supplied stop descriptor used on route creation and
// full-replacement update.
type StopInput struct {
	Name        string    `json:"name"`
	ArrivalTime *string   `json:"arrivalTime"`
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
	Sequence    *int      `json:"sequence"`
}

// ErrNoStops is returned for an empty stop list; a route must always carry
// at least one stop.
var ErrNoStops = errors.New("at least one stop is required")

// NormalizeStops validates and canonicalizes an ordered stop list. The whole
// list is rejected on the first invalid entry, so a failure applies nothing.
// An explicit sequence number is kept; otherwise the entry's position in the
// input becomes its sequence.
func NormalizeStops(inputs []StopInput) ([]models.Stop, error) {
	if len(inputs) == 0 {
		return nil, ErrNoStops
	}

	stops := make([]models.Stop, 0, len(inputs))
	for idx, in := range inputs {
		if in.Name == "" || len(in.Coordinates) != 2 {
			return nil, fmt.Errorf("invalid stop at index %d: requires name and coordinates [lng, lat]", idx)
		}

		point, err := geo.FromPair(in.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("stop %q has invalid coordinates [%v, %v]", in.Name, in.Coordinates[0], in.Coordinates[1])
		}

		seq := idx
		if in.Sequence != nil {
			seq = *in.Sequence
		}

		stops = append(stops, models.Stop{
			Name:        in.Name,
			ArrivalTime: in.ArrivalTime,
			Location:    point,
			Sequence:    seq,
		})
	}

	return stops, nil
}
