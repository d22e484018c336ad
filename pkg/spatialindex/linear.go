package spatialindex

import (
	"math"

	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/paulmach/orb"
)

// LinearScan. O(n) scan over every node, the reference for Rtree.
type LinearScan struct {
	graph *datastructure.Graph
}

func NewLinearScan(graph *datastructure.Graph) *LinearScan {
	return &LinearScan{graph: graph}
}

func (ls *LinearScan) Nearest(p orb.Point) (datastructure.Index, bool) {
	best := datastructure.INVALID_INDEX
	bestDistSq := math.Inf(1)
	var bestID int64

	ls.graph.ForNodes(func(v datastructure.Index, n datastructure.Node) {
		d := geo.DistanceSquared(p, n.GetPosition())
		if best == datastructure.INVALID_INDEX || closer(d, n.GetID(), bestDistSq, bestID) {
			best, bestDistSq, bestID = v, d, n.GetID()
		}
	})
	return best, best != datastructure.INVALID_INDEX
}
