package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = earthRadiusKM * 1000
)

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// LocalProjection. equirectangular projection to meters around an origin. good enough for a
// city-sized extract, where the error stays well below the 1 m clustering threshold near the origin.
type LocalProjection struct {
	originLat, originLon float64
	cosLat               float64
}

func NewLocalProjection(originLat, originLon float64) LocalProjection {
	return LocalProjection{
		originLat: originLat,
		originLon: originLon,
		cosLat:    math.Cos(degreeToRadians(originLat)),
	}
}

// Project. (lat, lon) in degree -> (x, y) in meter, x east, y north
func (lp LocalProjection) Project(lat, lon float64) orb.Point {
	x := degreeToRadians(lon-lp.originLon) * lp.cosLat * earthRadiusM
	y := degreeToRadians(lat-lp.originLat) * earthRadiusM
	return orb.Point{x, y}
}

// Distance. euclidean distance of two projected points
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// DistanceSquared. squared euclidean distance, used wherever only the ordering matters
func DistanceSquared(a, b orb.Point) float64 {
	return planar.DistanceSquared(a, b)
}

// IsValidPoint. both coordinates are finite numbers
func IsValidPoint(p orb.Point) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Centroid. area-weighted centroid of a polygonal geometry; points, lines and degenerate
// polygons fall back to planar.CentroidArea's lower-dimension centroid.
func Centroid(g orb.Geometry) (orb.Point, bool) {
	if g == nil {
		return orb.Point{}, false
	}
	if p, ok := g.(orb.Point); ok {
		return p, IsValidPoint(p)
	}
	c, _ := planar.CentroidArea(g)
	return c, IsValidPoint(c) && !g.Bound().IsEmpty()
}
