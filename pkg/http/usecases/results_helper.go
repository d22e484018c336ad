package usecases

import (
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

// projected meters at centimeter precision
var geometryCodec = polyline.Codec{Dim: 2, Scale: 1e2}

func distance(a, b orb.Point) float64 {
	return geo.Distance(a, b)
}

// EncodeGeometry. encoded polyline of the route geometry, coordinates in (x, y) order
func EncodeGeometry(ls orb.LineString) string {
	if len(ls) == 0 {
		return ""
	}
	coords := make([][]float64, len(ls))
	for i, p := range ls {
		coords[i] = []float64{p[0], p[1]}
	}
	return string(geometryCodec.EncodeCoords(nil, coords))
}

// DecodeGeometry. inverse of EncodeGeometry, exact up to the codec precision
func DecodeGeometry(s string) (orb.LineString, error) {
	coords, _, err := geometryCodec.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c[0], c[1]}
	}
	return ls, nil
}
