package spatialindex

import (
	"math"

	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr    *rtree.RTreeG[nodeEntry]
	graph *datastructure.Graph
}

// every graph node is a zero-size box in the tree
type nodeEntry struct {
	index datastructure.Index
	id    int64
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[nodeEntry]
	return &Rtree{
		tr: &tr,
	}
}

func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("numberOfNodes", graph.NumberOfNodes()))
	rt.graph = graph
	n := graph.NumberOfNodes()
	graph.ForNodes(func(v datastructure.Index, node datastructure.Node) {
		if n >= 10 && int(v)%(n/10) == 0 {
			log.Info("Building R-tree spatial index...", zap.Float64("progress", 100*float64(v)/float64(n)))
		}
		p := node.GetPosition()
		rt.tr.Insert([2]float64{p[0], p[1]}, [2]float64{p[0], p[1]}, nodeEntry{index: v, id: node.GetID()})
	})
	log.Info("R-tree spatial index built.")
}

// boxDistSq. squared distance from p to the box, zero inside. for leaf boxes (points) this is
// the exact squared distance, for inner boxes a lower bound of their children.
func boxDistSq(p orb.Point, min, max [2]float64) float64 {
	dx := math.Max(0, math.Max(min[0]-p[0], p[0]-max[0]))
	dy := math.Max(0, math.Max(min[1]-p[1], p[1]-max[1]))
	return dx*dx + dy*dy
}

// Nearest. nodes come out of the kNN iterator in ascending distance, so once an entry is farther
// than the first hit all equally distant candidates have been seen.
func (rt *Rtree) Nearest(p orb.Point) (datastructure.Index, bool) {
	best := datastructure.INVALID_INDEX
	bestDistSq := math.Inf(1)
	var bestID int64

	rt.tr.Nearby(
		func(min, max [2]float64, data nodeEntry, item bool) float64 {
			if item {
				return geo.DistanceSquared(p, orb.Point{min[0], min[1]})
			}
			return boxDistSq(p, min, max)
		},
		func(min, max [2]float64, data nodeEntry, dist float64) bool {
			if best == datastructure.INVALID_INDEX {
				best, bestDistSq, bestID = data.index, dist, data.id
				return true
			}
			if dist > bestDistSq {
				return false
			}
			if closer(dist, data.id, bestDistSq, bestID) {
				best, bestID = data.index, data.id
			}
			return true
		},
	)
	return best, best != datastructure.INVALID_INDEX
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}
