package osmparser

import (
	"testing"

	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func way(id int64, nodes []int64, tags ...string) *osm.Way {
	w := &osm.Way{ID: osm.WayID(id)}
	for _, n := range nodes {
		w.Nodes = append(w.Nodes, osm.WayNode{ID: osm.NodeID(n)})
	}
	for i := 0; i+1 < len(tags); i += 2 {
		w.Tags = append(w.Tags, osm.Tag{Key: tags[i], Value: tags[i+1]})
	}
	return w
}

func TestWayAttributes(t *testing.T) {
	testCases := []struct {
		name      string
		way       *osm.Way
		wantWidth float64
		wantCar   bool
		wantPed   bool
	}{
		{name: "residential default", way: way(1, []int64{1, 2}, "highway", "residential"),
			wantWidth: 4.0, wantCar: true, wantPed: true},
		{name: "width tag with unit", way: way(1, []int64{1, 2}, "highway", "tertiary", "width", "5.5 m"),
			wantWidth: 5.5, wantCar: true, wantPed: true},
		{name: "decimal comma", way: way(1, []int64{1, 2}, "highway", "service", "width", "2,5"),
			wantWidth: 2.5, wantCar: true, wantPed: true},
		{name: "est_width fallback", way: way(1, []int64{1, 2}, "highway", "track", "width", "narrow", "est_width", "2"),
			wantWidth: 2.0, wantCar: true, wantPed: true},
		{name: "footway", way: way(1, []int64{1, 2}, "highway", "footway"),
			wantWidth: 1.2, wantCar: false, wantPed: true},
		{name: "motor vehicles banned", way: way(1, []int64{1, 2}, "highway", "residential", "motor_vehicle", "no"),
			wantWidth: 4.0, wantCar: false, wantPed: true},
		{name: "private access", way: way(1, []int64{1, 2}, "highway", "service", "access", "private"),
			wantWidth: 3.0, wantCar: false, wantPed: false},
		{name: "private access with foot yes", way: way(1, []int64{1, 2}, "highway", "service", "access", "private", "foot", "yes"),
			wantWidth: 3.0, wantCar: false, wantPed: true},
		{name: "motorway", way: way(1, []int64{1, 2}, "highway", "motorway"),
			wantWidth: 10.0, wantCar: true, wantPed: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			attr := wayAttributes(tt.way)
			assert.Equal(t, tt.wantWidth, attr.RoadWidth)
			assert.Equal(t, tt.wantCar, attr.CarAccess)
			assert.Equal(t, tt.wantPed, attr.PedAccess)
			assert.Equal(t, 0.0, attr.WidthReduction)
			assert.Equal(t, "1", attr.RouteID)
		})
	}
}

func TestBuildSegments(t *testing.T) {
	p := NewOsmParser(zap.NewNop())
	assert.True(t, p.AddWay(way(10, []int64{1, 2, 3}, "highway", "residential")))
	assert.False(t, p.AddWay(way(11, []int64{3, 4}, "building", "yes")))
	assert.False(t, p.AddWay(way(12, []int64{5}, "highway", "residential")))
	assert.True(t, p.AddWay(way(13, []int64{3, 9}, "highway", "footway")))

	coords := map[int64]geo.Coordinate{
		1: geo.NewCoordinate(-7.7956, 110.3695),
		2: geo.NewCoordinate(-7.7960, 110.3700),
		3: geo.NewCoordinate(-7.7965, 110.3702),
		4: geo.NewCoordinate(-7.7970, 110.3710),
	}
	for id, c := range coords {
		p.AddNode(&osm.Node{ID: osm.NodeID(id), Lat: c.GetLat(), Lon: c.GetLon()})
	}
	// node 4 belongs to no accepted way, node 9 is missing from the extract

	segments := p.BuildSegments()
	require.Len(t, segments, 2)
	assert.InDelta(t, geo.GreatCircleDistance(coords[1], coords[2]), segments[0].Length, 1e-9)
	assert.InDelta(t, geo.GreatCircleDistance(coords[2], coords[3]), segments[1].Length, 1e-9)
	assert.Equal(t, segments[0].End, segments[1].Start)
	assert.Equal(t, "10", segments[0].RouteID)

	// projected distance agrees with the great-circle length at city scale
	assert.InDelta(t, segments[0].Length, geo.Distance(segments[0].Start, segments[0].End), 0.01*segments[0].Length)
}
