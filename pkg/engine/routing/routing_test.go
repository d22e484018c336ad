package routing

import (
	"math"
	"testing"

	"github.com/lintang-b-s/evacx/pkg/costfunction"
	da "github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/spatialindex"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

type testEdge struct {
	id       int64
	from, to int64
	length   float64
	class    costfunction.SpeedClass
}

func buildTestGraph(t *testing.T, nodes map[int64]orb.Point, order []int64, edges []testEdge) *da.Graph {
	t.Helper()
	g := da.NewGraph()
	for _, id := range order {
		_, err := g.AddNode(da.NewNode(id, nodes[id]))
		require.NoError(t, err)
	}
	for _, e := range edges {
		u, ok := g.GetNodeIndex(e.from)
		require.True(t, ok)
		v, ok := g.GetNodeIndex(e.to)
		require.True(t, ok)
		_, err := g.AddEdge(da.NewEdge(e.id, u, v, e.length, costfunction.TravelTimeMinutes(e.length, e.class),
			e.class, da.SegmentAttributes{}))
		require.NoError(t, err)
	}
	return g
}

func newTestEngine(g *da.Graph) *RoutingEngine {
	return NewRoutingEngine(g, spatialindex.NewLinearScan(g), costfunction.NewTimeCostFunction(), zap.NewNop())
}

func building(id int64, p orb.Point) da.Building {
	return da.Building{ID: id, Centroid: p, HasCentroid: true}
}

// A(1) --500m car30-- B(2) --375m walk-- C(3)
func scenarioGraph(t *testing.T) *da.Graph {
	return buildTestGraph(t,
		map[int64]orb.Point{1: {0, 0}, 2: {500, 0}, 3: {875, 0}},
		[]int64{1, 2, 3},
		[]testEdge{
			{id: 10, from: 1, to: 2, length: 500, class: costfunction.CAR_30KM},
			{id: 11, from: 2, to: 3, length: 375, class: costfunction.WALK_4_5KM},
		},
	)
}

func TestRouteBuildingWalkingLock(t *testing.T) {
	g := scenarioGraph(t)
	re := newTestEngine(g)
	shelters := re.SnapShelters([]da.Shelter{{ID: 100, Location: orb.Point{880, 2}}})

	r := re.RouteBuilding(1, building(7, orb.Point{-3, 4}), shelters)

	assert.Equal(t, ROUTED, r.Status)
	assert.True(t, r.Found)
	assert.True(t, r.HasPath)
	assert.Equal(t, int64(7), r.BuildingID)
	assert.Equal(t, int64(100), r.ShelterID)
	assert.Equal(t, int64(1), r.StartNode)
	assert.Equal(t, []int64{1, 2, 3}, r.PathNodes)
	assert.Equal(t, []int64{10, 11}, r.PathEdges)
	assert.Equal(t, []int64{10}, r.Edges30km)
	assert.Empty(t, r.Edges15km)
	assert.Equal(t, []int64{11}, r.Edges4_5km)
	assert.True(t, r.WalkLocked)
	assert.InDelta(t, 6.0, r.TotalTime, 1e-9)
	assert.InDelta(t, 875.0, r.TotalDistance, 1e-9)
	assert.Equal(t, orb.LineString{{-3, 4}, {0, 0}, {500, 0}, {875, 0}}, r.Geometry)
}

func TestWalkingLockIsMonotonic(t *testing.T) {
	g := buildTestGraph(t,
		map[int64]orb.Point{1: {0, 0}, 2: {100, 0}, 3: {200, 0}, 4: {300, 0}, 5: {400, 0}},
		[]int64{1, 2, 3, 4, 5},
		[]testEdge{
			{id: 1, from: 1, to: 2, length: 100, class: costfunction.CAR_30KM},
			{id: 2, from: 2, to: 3, length: 100, class: costfunction.CAR_15KM},
			{id: 3, from: 3, to: 4, length: 100, class: costfunction.WALK_4_5KM},
			{id: 4, from: 4, to: 5, length: 100, class: costfunction.CAR_30KM},
		},
	)
	re := newTestEngine(g)
	shelters := re.SnapShelters([]da.Shelter{{ID: 1, Location: orb.Point{400, 0}}})

	r := re.RouteBuilding(1, building(1, orb.Point{0, 1}), shelters)
	require.Equal(t, ROUTED, r.Status)
	assert.Equal(t, []int64{1}, r.Edges30km)
	assert.Equal(t, []int64{2}, r.Edges15km)
	assert.Equal(t, []int64{3, 4}, r.Edges4_5km)
	assert.True(t, r.WalkLocked)
	assert.Equal(t, len(r.PathNodes)-1,
		len(r.Edges30km)+len(r.Edges15km)+len(r.Edges4_5km))

	sum := 0.0
	for _, id := range r.PathEdges {
		sum += costfunction.TravelTimeMinutes(100, g.GetEdge(da.Index(id-1)).GetSpeedClass())
	}
	assert.InDelta(t, sum, r.TotalTime, 1e-9)
}

func TestCarOnlyRouteIsNotLocked(t *testing.T) {
	g := buildTestGraph(t,
		map[int64]orb.Point{1: {0, 0}, 2: {100, 0}, 3: {200, 0}},
		[]int64{1, 2, 3},
		[]testEdge{
			{id: 1, from: 1, to: 2, length: 100, class: costfunction.CAR_15KM},
			{id: 2, from: 2, to: 3, length: 0, class: costfunction.CAR_30KM},
		},
	)
	re := newTestEngine(g)
	shelters := re.SnapShelters([]da.Shelter{{ID: 1, Location: orb.Point{200, 0}}})
	r := re.RouteBuilding(1, building(1, orb.Point{0, 0}), shelters)

	require.Equal(t, ROUTED, r.Status)
	assert.False(t, r.WalkLocked)
	assert.Equal(t, []int64{1}, r.Edges15km)
	// zero-length edge keeps its stored tier
	assert.Equal(t, []int64{2}, r.Edges30km)
	assert.Empty(t, r.Edges4_5km)
}

func TestRouteBuildingStates(t *testing.T) {
	// 1 - 2 connected, 3 isolated
	g := buildTestGraph(t,
		map[int64]orb.Point{1: {0, 0}, 2: {100, 0}, 3: {1000, 1000}},
		[]int64{1, 2, 3},
		[]testEdge{{id: 1, from: 1, to: 2, length: 100, class: costfunction.CAR_30KM}},
	)
	re := newTestEngine(g)

	t.Run("vacant building is not searched", func(t *testing.T) {
		b := building(5, orb.Point{0, 0})
		b.Vacant = true
		r := re.RouteBuilding(3, b, re.SnapShelters([]da.Shelter{{ID: 1, Location: orb.Point{100, 0}}}))
		assert.Equal(t, VACANT, r.Status)
		assert.Equal(t, int64(3), r.RouteID)
		assert.True(t, r.Vacant)
		assert.False(t, r.Found)
		assert.False(t, r.HasPath)
		assert.False(t, r.HasStartNode)
		assert.Nil(t, r.PathNodes)
		assert.Nil(t, r.Geometry)
		assert.False(t, r.WalkLocked)
	})

	t.Run("no reachable shelter", func(t *testing.T) {
		r := re.RouteBuilding(1, building(5, orb.Point{999, 999}),
			re.SnapShelters([]da.Shelter{{ID: 1, Location: orb.Point{100, 0}}}))
		assert.Equal(t, UNREACHABLE, r.Status)
		assert.False(t, r.Found)
		assert.True(t, r.HasStartNode)
		assert.Equal(t, int64(3), r.StartNode)
		assert.Nil(t, r.PathNodes)
		assert.Equal(t, orb.LineString{{999, 999}, {1000, 1000}}, r.Geometry)
	})

	t.Run("no shelters at all", func(t *testing.T) {
		r := re.RouteBuilding(1, building(5, orb.Point{0, 0}), nil)
		assert.Equal(t, UNREACHABLE, r.Status)
		assert.Equal(t, int64(1), r.StartNode)
	})

	t.Run("best shelter on the start node is degenerate", func(t *testing.T) {
		shelters := re.SnapShelters([]da.Shelter{
			{ID: 1, Location: orb.Point{100, 0}},
			{ID: 2, Location: orb.Point{1, 0}},
		})
		r := re.RouteBuilding(1, building(5, orb.Point{0, 0}), shelters)
		assert.Equal(t, UNREACHABLE, r.Status)
		assert.False(t, r.Found)
	})

	t.Run("building without centroid", func(t *testing.T) {
		r := re.RouteBuilding(1, da.Building{ID: 9}, nil)
		assert.Equal(t, NO_NODE, r.Status)
		assert.False(t, r.HasStartNode)
		assert.Nil(t, r.Geometry)
	})

	t.Run("empty graph", func(t *testing.T) {
		empty := newTestEngine(da.NewGraph())
		shelters := empty.SnapShelters([]da.Shelter{{ID: 1, Location: orb.Point{0, 0}}})
		assert.Empty(t, shelters)
		r := empty.RouteBuilding(1, building(5, orb.Point{0, 0}), shelters)
		assert.Equal(t, NO_NODE, r.Status)
		assert.False(t, r.Found)
		assert.Nil(t, r.Geometry)
	})
}

func TestRouteStatusString(t *testing.T) {
	tests := []struct {
		status RouteStatus
		want   string
	}{
		{VACANT, "vacant"},
		{NO_NODE, "no_node"},
		{UNREACHABLE, "unreachable"},
		{ROUTED, "routed"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestEqualTravelTimeKeepsFirstShelter(t *testing.T) {
	// A(1) -- B(2) -- C(3), building at B, shelters at C then A, both 1 minute away
	g := buildTestGraph(t,
		map[int64]orb.Point{1: {0, 0}, 2: {500, 0}, 3: {1000, 0}},
		[]int64{1, 2, 3},
		[]testEdge{
			{id: 1, from: 1, to: 2, length: 500, class: costfunction.CAR_30KM},
			{id: 2, from: 2, to: 3, length: 500, class: costfunction.CAR_30KM},
		},
	)
	re := newTestEngine(g)

	shelters := re.SnapShelters([]da.Shelter{
		{ID: 1, Location: orb.Point{1000, 0}},
		{ID: 2, Location: orb.Point{0, 0}},
	})
	r := re.RouteBuilding(1, building(1, orb.Point{500, 1}), shelters)
	require.Equal(t, ROUTED, r.Status)
	assert.Equal(t, int64(1), r.ShelterID)
	assert.Equal(t, []int64{2, 3}, r.PathNodes)

	shelters = re.SnapShelters([]da.Shelter{
		{ID: 2, Location: orb.Point{0, 0}},
		{ID: 1, Location: orb.Point{1000, 0}},
	})
	r = re.RouteBuilding(1, building(1, orb.Point{500, 1}), shelters)
	assert.Equal(t, int64(2), r.ShelterID)
	assert.Equal(t, []int64{2, 1}, r.PathNodes)
}

func TestCloserShelterWins(t *testing.T) {
	g := scenarioGraph(t)
	re := newTestEngine(g)
	shelters := re.SnapShelters([]da.Shelter{
		{ID: 1, Location: orb.Point{875, 0}},
		{ID: 2, Location: orb.Point{500, 0}},
	})
	r := re.RouteBuilding(1, building(1, orb.Point{0, 0}), shelters)
	require.Equal(t, ROUTED, r.Status)
	assert.Equal(t, int64(2), r.ShelterID)
	assert.InDelta(t, 1.0, r.TotalTime, 1e-9)
	assert.False(t, r.WalkLocked)
}

func TestParallelEdgesFasterOneIsUsed(t *testing.T) {
	g := buildTestGraph(t,
		map[int64]orb.Point{1: {0, 0}, 2: {100, 0}},
		[]int64{1, 2},
		[]testEdge{
			{id: 1, from: 1, to: 2, length: 100, class: costfunction.WALK_4_5KM},
			{id: 2, from: 2, to: 1, length: 100, class: costfunction.CAR_30KM},
			{id: 3, from: 2, to: 2, length: 1, class: costfunction.CAR_30KM},
		},
	)
	re := newTestEngine(g)
	r := re.RouteBuilding(1, building(1, orb.Point{0, 0}),
		re.SnapShelters([]da.Shelter{{ID: 1, Location: orb.Point{100, 0}}}))
	require.Equal(t, ROUTED, r.Status)
	assert.Equal(t, []int64{2}, r.PathEdges)
	assert.Equal(t, []int64{2}, r.Edges30km)
	assert.InDelta(t, 0.2, r.TotalTime, 1e-9)
}

func TestOneToManyMatchesPointToPoint(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	n := 300
	g := da.NewGraph()
	for i := 0; i < n; i++ {
		_, err := g.AddNode(da.NewNode(int64(i+1), orb.Point{r.Float64() * 1000, r.Float64() * 1000}))
		require.NoError(t, err)
	}
	classes := []costfunction.SpeedClass{costfunction.CAR_30KM, costfunction.CAR_15KM, costfunction.WALK_4_5KM}
	for i := 0; i < 3*n; i++ {
		u, v := da.Index(r.Intn(n)), da.Index(r.Intn(n))
		length := 10 + r.Float64()*200
		class := classes[r.Intn(len(classes))]
		_, err := g.AddEdge(da.NewEdge(int64(i+1), u, v, length, costfunction.TravelTimeMinutes(length, class), class,
			da.SegmentAttributes{}))
		require.NoError(t, err)
	}

	cf := costfunction.NewTimeCostFunction()
	for q := 0; q < 20; q++ {
		s := da.Index(r.Intn(n))
		targets := make([]da.Index, 8)
		for i := range targets {
			targets[i] = da.Index(r.Intn(n))
		}
		paths := NewDijkstra(g, cf).ShortestPathsToTargets(s, targets)
		for i, target := range targets {
			single, ok := NewDijkstra(g, cf).ShortestPath(s, target)
			require.Equal(t, ok, paths[i] != nil)
			if !ok {
				continue
			}
			assert.InDelta(t, single.GetTravelTime(), paths[i].GetTravelTime(), 1e-9)

			// travel time is the sum of the path edge times, path is connected
			sum := 0.0
			nodes := paths[i].GetNodes()
			require.Equal(t, s, nodes[0])
			require.Equal(t, target, nodes[len(nodes)-1])
			for k, eIdx := range paths[i].GetEdges() {
				e := g.GetEdge(eIdx)
				sum += e.GetTravelTime()
				assert.Equal(t, nodes[k+1], e.GetOther(nodes[k]))
			}
			assert.InDelta(t, sum, paths[i].GetTravelTime(), 1e-9)
		}
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g := buildTestGraph(t,
		map[int64]orb.Point{1: {0, 0}, 2: {1, 0}},
		[]int64{1, 2}, nil)
	p, ok := NewDijkstra(g, costfunction.NewTimeCostFunction()).ShortestPath(0, 1)
	assert.False(t, ok)
	assert.Nil(t, p)

	p, ok = NewDijkstra(g, costfunction.NewTimeCostFunction()).ShortestPath(0, 0)
	require.True(t, ok)
	assert.Equal(t, 1, p.NumberOfNodes())
	assert.Equal(t, 0.0, p.GetTravelTime())
	assert.False(t, math.IsNaN(p.GetTravelTime()))
}
