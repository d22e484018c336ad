package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestCentroid(t *testing.T) {
	testCases := []struct {
		name   string
		geom   orb.Geometry
		want   orb.Point
		wantOk bool
	}{
		{
			name:   "square building",
			geom:   orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}},
			want:   orb.Point{5, 5},
			wantOk: true,
		},
		{
			name:   "point",
			geom:   orb.Point{3, 4},
			want:   orb.Point{3, 4},
			wantOk: true,
		},
		{
			name:   "empty polygon",
			geom:   orb.Polygon{},
			wantOk: false,
		},
		{
			name:   "nil",
			geom:   nil,
			wantOk: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Centroid(tt.geom)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.InDelta(t, tt.want[0], got[0], 1e-9)
				assert.InDelta(t, tt.want[1], got[1], 1e-9)
			}
		})
	}
}

func TestIsValidPoint(t *testing.T) {
	assert.True(t, IsValidPoint(orb.Point{1, 2}))
	assert.False(t, IsValidPoint(orb.Point{math.NaN(), 2}))
	assert.False(t, IsValidPoint(orb.Point{1, math.Inf(1)}))
}

func TestLocalProjectionMatchesGreatCircle(t *testing.T) {
	// two points ~100 m apart in Shizuoka
	a := NewCoordinate(34.9756, 138.3828)
	b := NewCoordinate(34.9762, 138.3837)

	lp := NewLocalProjection(a.Lat, a.Lon)
	pa := lp.Project(a.Lat, a.Lon)
	pb := lp.Project(b.Lat, b.Lon)

	assert.InDelta(t, 0.0, pa[0], 1e-9)
	assert.InDelta(t, 0.0, pa[1], 1e-9)

	projected := Distance(pa, pb)
	sphere := GreatCircleDistance(a, b)
	haversine := CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000

	assert.InDelta(t, sphere, haversine, 0.01)
	assert.InDelta(t, sphere, projected, 0.1)
	assert.InDelta(t, projected*projected, DistanceSquared(pa, pb), 1e-6)
}

func TestPolylineLength(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(0, 0),
		NewCoordinate(0, 0.001),
		NewCoordinate(0.001, 0.001),
	}
	want := GreatCircleDistance(coords[0], coords[1]) + GreatCircleDistance(coords[1], coords[2])
	assert.InDelta(t, want, PolylineLength(coords), 1e-9)
	assert.Equal(t, 0.0, PolylineLength(coords[:1]))
}
