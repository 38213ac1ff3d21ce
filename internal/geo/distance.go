package geo

import "github.com/golang/geo/s2"

// earthRadiusMeters is the Earth's volumetric mean radius, the usual value
// for spherical distance approximations.
const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}
