package routing

import (
	"github.com/lintang-b-s/evacx/pkg"
	da "github.com/lintang-b-s/evacx/pkg/datastructure"
)

// vertexInfo. search label of one vertex, owned by a single query
type vertexInfo struct {
	travelTime float64
	parentEdge da.Index
	heapNode   *da.PriorityQueueNode[da.Index]
	settled    bool
}

func newVertexInfo() vertexInfo {
	return vertexInfo{
		travelTime: pkg.INF_WEIGHT,
		parentEdge: da.INVALID_INDEX,
	}
}

func (vi *vertexInfo) isLabelled() bool {
	return da.Lt(vi.travelTime, pkg.INF_WEIGHT)
}

// Path. shortest path from the search source, nodes and edges in travel order
type Path struct {
	travelTime float64
	nodes      []da.Index
	edges      []da.Index
}

func NewPath(travelTime float64, nodes, edges []da.Index) *Path {
	return &Path{travelTime: travelTime, nodes: nodes, edges: edges}
}

func (p *Path) GetTravelTime() float64 {
	return p.travelTime
}

func (p *Path) GetNodes() []da.Index {
	return p.nodes
}

func (p *Path) GetEdges() []da.Index {
	return p.edges
}

func (p *Path) NumberOfNodes() int {
	return len(p.nodes)
}
