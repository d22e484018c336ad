package geo

import (
	"github.com/golang/geo/s2"
)

// GreatCircleDistance. distance in meter along the sphere between two lat/lon coordinates
func GreatCircleDistance(a, b Coordinate) float64 {
	llA := s2.LatLngFromDegrees(a.Lat, a.Lon)
	llB := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return llA.Distance(llB).Radians() * earthRadiusM
}

// PolylineLength. great-circle length in meter of a lat/lon polyline
func PolylineLength(coords []Coordinate) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += GreatCircleDistance(coords[i-1], coords[i])
	}
	return length
}
