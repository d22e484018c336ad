package routing

import (
	"github.com/lintang-b-s/evacx/pkg"
	da "github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/util"
)

// Dijkstra. undirected dijkstra on travel time. all labels live in the Dijkstra value, create one per
// query (or per goroutine) and never share it.
type Dijkstra struct {
	graph        *da.Graph
	costFunction CostFunction

	info []vertexInfo
	pq   *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph, costFunction CostFunction) *Dijkstra {
	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(min(graph.NumberOfNodes(), 1<<16))
	return &Dijkstra{
		graph:        graph,
		costFunction: costFunction,
		info:         make([]vertexInfo, 0),
		pq:           pq,
	}
}

func (d *Dijkstra) reset() {
	n := d.graph.NumberOfNodes()
	if cap(d.info) < n {
		d.info = make([]vertexInfo, n)
	}
	d.info = d.info[:n]
	for v := range d.info {
		d.info[v] = newVertexInfo()
	}
	d.pq.Clear()
	d.numSettledNodes = 0
}

// ShortestPath. point to point query, false when t is not reachable from s.
func (d *Dijkstra) ShortestPath(s, t da.Index) (*Path, bool) {
	paths := d.ShortestPathsToTargets(s, []da.Index{t})
	return paths[0], paths[0] != nil
}

/*
ShortestPathsToTargets. one-to-many query from s. the search stops once every distinct target is
settled (or the reachable component is exhausted). paths[i] is the shortest path s -> targets[i], nil if
targets[i] is unreachable. a settled label is final, so every path equals the one a point to point query
with the same settling order produces.
*/
func (d *Dijkstra) ShortestPathsToTargets(s da.Index, targets []da.Index) []*Path {
	paths := make([]*Path, len(targets))
	n := da.Index(d.graph.NumberOfNodes())
	if s >= n {
		return paths
	}
	d.reset()

	remaining := make(map[da.Index]struct{}, len(targets))
	for _, t := range removeDuplicates(targets) {
		if t < n {
			remaining[t] = struct{}{}
		}
	}

	sNode := da.NewPriorityQueueNode(0, s)
	d.info[s].travelTime = 0
	d.info[s].heapNode = sNode
	d.pq.Insert(sNode)

	for !d.pq.IsEmpty() && len(remaining) > 0 {
		u := d.settle()
		delete(remaining, u)
	}

	for i, t := range targets {
		if t >= n || !d.info[t].settled {
			continue
		}
		paths[i] = d.retrievePath(s, t)
	}
	return paths
}

// settle. pop the closest labelled vertex and relax its incident edges, a self-loop never improves a label.
func (d *Dijkstra) settle() da.Index {
	minNode, _ := d.pq.ExtractMin()
	u := minNode.GetItem()
	d.info[u].settled = true
	d.numSettledNodes++
	uTime := d.info[u].travelTime

	d.graph.ForEdgesOf(u, func(eIdx da.Index, e *da.Edge, v da.Index) {
		if d.info[v].settled {
			return
		}
		newTravelTime := uTime + d.costFunction.GetWeight(e)
		if da.Ge(newTravelTime, pkg.INF_WEIGHT) {
			return
		}

		vInfo := &d.info[v]
		if vInfo.isLabelled() && !da.Lt(newTravelTime, vInfo.travelTime) {
			return
		}

		vInfo.travelTime = newTravelTime
		vInfo.parentEdge = eIdx
		if vInfo.heapNode == nil {
			vInfo.heapNode = da.NewPriorityQueueNode(newTravelTime, v)
			d.pq.Insert(vInfo.heapNode)
			return
		}
		err := d.pq.DecreaseKey(vInfo.heapNode, newTravelTime)
		util.AssertPanic(err == nil, "dijkstra: decrease key on a vertex outside the queue")
	})
	return u
}

func (d *Dijkstra) retrievePath(s, t da.Index) *Path {
	nodes := []da.Index{t}
	edges := make([]da.Index, 0)
	for v := t; v != s; {
		eIdx := d.info[v].parentEdge
		edges = append(edges, eIdx)
		v = d.graph.GetEdge(eIdx).GetOther(v)
		nodes = append(nodes, v)
	}
	return NewPath(d.info[t].travelTime, util.ReverseG(nodes), util.ReverseG(edges))
}

func (d *Dijkstra) GetNumSettledNodes() int {
	return d.numSettledNodes
}
