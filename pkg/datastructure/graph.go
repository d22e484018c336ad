package datastructure

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/evacx/pkg/costfunction"
	"github.com/paulmach/orb"
)

type Index uint32

const (
	INVALID_INDEX = Index(math.MaxUint32)
)

// Node. merged cluster of segment endpoints. immutable once the graph is built.
type Node struct {
	id  int64
	pos orb.Point
}

func NewNode(id int64, pos orb.Point) Node {
	return Node{id: id, pos: pos}
}

func (n Node) GetID() int64 {
	return n.id
}

func (n Node) GetPosition() orb.Point {
	return n.pos
}

func (n Node) GetX() float64 {
	return n.pos[0]
}

func (n Node) GetY() float64 {
	return n.pos[1]
}

// SegmentAttributes. attributes carried through from the source road segment
type SegmentAttributes struct {
	RouteID        string
	RoadWidth      float64
	WidthReduction float64
	CarAccess      bool
	PedAccess      bool
}

func (sa SegmentAttributes) ResidualWidth() float64 {
	return costfunction.ResidualWidth(sa.RoadWidth, sa.WidthReduction)
}

// Edge. undirected connection between two nodes, traversable both ways with the same travel time
type Edge struct {
	id         int64
	from, to   Index
	length     float64
	travelTime float64 // minute
	speedClass costfunction.SpeedClass
	attr       SegmentAttributes
}

func NewEdge(id int64, from, to Index, length, travelTime float64, speedClass costfunction.SpeedClass,
	attr SegmentAttributes) Edge {
	return Edge{
		id:         id,
		from:       from,
		to:         to,
		length:     length,
		travelTime: travelTime,
		speedClass: speedClass,
		attr:       attr,
	}
}

func (e *Edge) GetID() int64 {
	return e.id
}

func (e *Edge) GetFrom() Index {
	return e.from
}

func (e *Edge) GetTo() Index {
	return e.to
}

// GetOther. endpoint of e opposite to v
func (e *Edge) GetOther(v Index) Index {
	if e.from == v {
		return e.to
	}
	return e.from
}

func (e *Edge) GetLength() float64 {
	return e.length
}

func (e *Edge) GetTravelTime() float64 {
	return e.travelTime
}

func (e *Edge) GetSpeedClass() costfunction.SpeedClass {
	return e.speedClass
}

func (e *Edge) GetAttributes() SegmentAttributes {
	return e.attr
}

func (e *Edge) GetRouteID() string {
	return e.attr.RouteID
}

type Graph struct {
	nodes     []Node
	edges     []Edge
	adjacency [][]Index // adjacency[v] = indices into edges incident to v, in insertion order
	nodeIdMap map[int64]Index
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make([]Node, 0),
		edges:     make([]Edge, 0),
		adjacency: make([][]Index, 0),
		nodeIdMap: make(map[int64]Index),
	}
}

func NewGraphWithSize(numNodes, numEdges int) *Graph {
	return &Graph{
		nodes:     make([]Node, 0, numNodes),
		edges:     make([]Edge, 0, numEdges),
		adjacency: make([][]Index, 0, numNodes),
		nodeIdMap: make(map[int64]Index, numNodes),
	}
}

func (g *Graph) AddNode(n Node) (Index, error) {
	if _, exists := g.nodeIdMap[n.id]; exists {
		return INVALID_INDEX, fmt.Errorf("duplicate node id %d", n.id)
	}
	v := Index(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.adjacency = append(g.adjacency, nil)
	g.nodeIdMap[n.id] = v
	return v, nil
}

// AddEdge. parallel edges between the same node pair are kept as separate edges.
func (g *Graph) AddEdge(e Edge) (Index, error) {
	n := Index(len(g.nodes))
	if e.from >= n || e.to >= n {
		return INVALID_INDEX, fmt.Errorf("edge %d references node index out of range (%d, %d), number of nodes %d",
			e.id, e.from, e.to, n)
	}
	eIdx := Index(len(g.edges))
	g.edges = append(g.edges, e)
	g.adjacency[e.from] = append(g.adjacency[e.from], eIdx)
	if e.to != e.from {
		g.adjacency[e.to] = append(g.adjacency[e.to], eIdx)
	}
	return eIdx, nil
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) GetNode(v Index) Node {
	return g.nodes[v]
}

func (g *Graph) GetNodes() []Node {
	return g.nodes
}

func (g *Graph) GetEdge(e Index) *Edge {
	return &g.edges[e]
}

func (g *Graph) GetEdges() []Edge {
	return g.edges
}

func (g *Graph) GetNodeIndex(id int64) (Index, bool) {
	v, ok := g.nodeIdMap[id]
	return v, ok
}

func (g *Graph) GetNodePosition(v Index) orb.Point {
	return g.nodes[v].pos
}

func (g *Graph) GetDegree(v Index) int {
	return len(g.adjacency[v])
}

// ForEdgesOf. iterate edges incident to v, head is the endpoint opposite to v
func (g *Graph) ForEdgesOf(v Index, handle func(eIdx Index, e *Edge, head Index)) {
	for _, eIdx := range g.adjacency[v] {
		e := &g.edges[eIdx]
		handle(eIdx, e, e.GetOther(v))
	}
}

func (g *Graph) ForNodes(handle func(v Index, n Node)) {
	for v := range g.nodes {
		handle(Index(v), g.nodes[v])
	}
}
