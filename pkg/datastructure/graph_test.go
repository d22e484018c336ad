package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/evacx/pkg/costfunction"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	for i, p := range []orb.Point{{0, 0}, {500, 0}, {875, 0}, {2000, 2000}} {
		_, err := g.AddNode(NewNode(int64(i+1), p))
		require.NoError(t, err)
	}
	attr := SegmentAttributes{RouteID: "R 1", RoadWidth: 4, WidthReduction: 0.5, CarAccess: true, PedAccess: true}
	_, err := g.AddEdge(NewEdge(10, 0, 1, 500, 1.0, costfunction.CAR_30KM, attr))
	require.NoError(t, err)
	_, err = g.AddEdge(NewEdge(11, 1, 2, 375, 5.0, costfunction.WALK_4_5KM, attr))
	require.NoError(t, err)
	// parallel to 10, slower
	_, err = g.AddEdge(NewEdge(12, 1, 0, 500, 2.0, costfunction.CAR_15KM, attr))
	require.NoError(t, err)
	return g
}

func TestGraphAdjacency(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, 4, g.NumberOfNodes())
	assert.Equal(t, 3, g.NumberOfEdges())
	assert.Equal(t, 2, g.GetDegree(0))
	assert.Equal(t, 3, g.GetDegree(1))
	assert.Equal(t, 0, g.GetDegree(3))

	heads := []Index{}
	ids := []int64{}
	g.ForEdgesOf(1, func(_ Index, e *Edge, head Index) {
		heads = append(heads, head)
		ids = append(ids, e.GetID())
	})
	assert.Equal(t, []Index{0, 2, 0}, heads)
	assert.Equal(t, []int64{10, 11, 12}, ids)

	v, ok := g.GetNodeIndex(3)
	assert.True(t, ok)
	assert.Equal(t, Index(2), v)
	_, ok = g.GetNodeIndex(99)
	assert.False(t, ok)
}

func TestGraphRejectsInvalidInput(t *testing.T) {
	g := NewGraph()
	_, err := g.AddNode(NewNode(1, orb.Point{0, 0}))
	require.NoError(t, err)
	_, err = g.AddNode(NewNode(1, orb.Point{1, 1}))
	assert.Error(t, err)

	_, err = g.AddEdge(NewEdge(1, 0, 5, 10, 1, costfunction.WALK_4_5KM, SegmentAttributes{}))
	assert.Error(t, err)
}

func TestSelfLoopCountedOnce(t *testing.T) {
	g := NewGraph()
	_, _ = g.AddNode(NewNode(1, orb.Point{0, 0}))
	_, err := g.AddEdge(NewEdge(1, 0, 0, 0.4, 0.1, costfunction.WALK_4_5KM, SegmentAttributes{}))
	require.NoError(t, err)
	assert.Equal(t, 1, g.GetDegree(0))
}

func TestConnectedComponents(t *testing.T) {
	g := buildTestGraph(t)
	comp, k := g.ConnectedComponents()
	assert.Equal(t, 2, k)
	assert.Equal(t, []Index{0, 0, 0, 1}, comp)
}

func TestWriteReadGraph(t *testing.T) {
	g := buildTestGraph(t)
	filename := filepath.Join(t.TempDir(), "network.graph")

	require.NoError(t, g.WriteGraph(filename))
	got, err := ReadGraph(filename)
	require.NoError(t, err)

	assert.Equal(t, g.GetNodes(), got.GetNodes())
	assert.Equal(t, g.GetEdges(), got.GetEdges())
	assert.Equal(t, g.adjacency, got.adjacency)
	assert.Equal(t, "R 1", got.GetEdge(0).GetRouteID())
}

func TestReadGraphMissingFile(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "nope.graph"))
	assert.Error(t, err)
}
