package geo

import (
	"SchoolPick/entity"
	"github.com/golang/geo/s2"
	"math"
)

const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// points given in decimal degrees. s2 computes the central angle with the
// haversine formula. Non-finite input yields NaN.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Meters is Distance between two locations converted to meters.
func Meters(from, to entity.Location) float64 {
	return Distance(from.Lat, from.Lng, to.Lat, to.Lng) * 1000
}

// Valid reports whether the location is finite and inside coordinate ranges.
func Valid(l entity.Location) bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) || math.IsInf(l.Lat, 0) || math.IsInf(l.Lng, 0) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}
