package geo

import (
	"errors"

	"github.com/twpayne/go-geom"
	geojson "github.com/twpayne/go-geom/encoding/geojson"
)

var (
	// ErrMissingCoordinates is returned when neither payload shape carries a
	// usable latitude/longitude pair.
	ErrMissingCoordinates = errors.New("latitude and longitude must be numbers")
	// ErrInvalidCoordinates is returned for out-of-range or malformed pairs.
	ErrInvalidCoordinates = errors.New("coordinates must be [lng, lat] in valid ranges")
)

// Point is the canonical geographic point used throughout the service.
// Storage keeps the two plain columns; the wire format is a GeoJSON Point
// with [lng, lat] ordering. All inversion-sensitive work happens here.
type Point struct {
	Lng float64 `json:"-" gorm:"column:lng"`
	Lat float64 `json:"-" gorm:"column:lat"`
}

// Valid reports whether the point lies inside the lon/lat bounds.
func (p Point) Valid() bool {
	return p.Lng >= -180 && p.Lng <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// MarshalJSON renders the point as a GeoJSON Point.
func (p Point) MarshalJSON() ([]byte, error) {
	return geojson.Marshal(geom.NewPointFlat(geom.XY, []float64{p.Lng, p.Lat}))
}

// UnmarshalJSON accepts a GeoJSON Point and validates its ranges.
func (p *Point) UnmarshalJSON(data []byte) error {
	var g geom.T
	if err := geojson.Unmarshal(data, &g); err != nil {
		return err
	}
	pt, ok := g.(*geom.Point)
	if !ok {
		return ErrInvalidCoordinates
	}
	flat := pt.FlatCoords()
	if len(flat) < 2 {
		return ErrInvalidCoordinates
	}
	parsed := Point{Lng: flat[0], Lat: flat[1]}
	if !parsed.Valid() {
		return ErrInvalidCoordinates
	}
	*p = parsed
	return nil
}

// FromRequest normalizes the two accepted telemetry payload shapes into one
// Point: separate latitude/longitude fields, or a GeoJSON-ordered [lng, lat]
// pair. The pair is consulted only when the separate fields are absent.
func FromRequest(lat, lng *float64, pair []float64) (Point, error) {
	if (lat == nil || lng == nil) && len(pair) == 2 {
		p := Point{Lng: pair[0], Lat: pair[1]}
		if !p.Valid() {
			return Point{}, ErrInvalidCoordinates
		}
		return p, nil
	}
	if lat == nil || lng == nil {
		return Point{}, ErrMissingCoordinates
	}
	p := Point{Lng: *lng, Lat: *lat}
	if !p.Valid() {
		return Point{}, ErrInvalidCoordinates
	}
	return p, nil
}

// FromPair validates a bare [lng, lat] coordinate pair.
func FromPair(pair []float64) (Point, error) {
	if len(pair) != 2 {
		return Point{}, ErrInvalidCoordinates
	}
	p := Point{Lng: pair[0], Lat: pair[1]}
	if !p.Valid() {
		return Point{}, ErrInvalidCoordinates
	}
	return p, nil
}
