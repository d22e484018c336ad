package spatialindex

import (
	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/util"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// NearestNodeIndex. Nearest returns the graph node closest (euclidean) to p. equally distant
// nodes resolve to the lowest node id. false only when the graph has no node.
// implementations are read-only after construction and safe for concurrent use.
type NearestNodeIndex interface {
	Nearest(p orb.Point) (datastructure.Index, bool)
}

const (
	KindRtree  = "rtree"
	KindLinear = "linear"
)

// New. build the index named by kind ("rtree" or "linear") over the nodes of graph
func New(kind string, graph *datastructure.Graph, log *zap.Logger) (NearestNodeIndex, error) {
	switch kind {
	case KindRtree, "":
		rt := NewRtree()
		rt.Build(graph, log)
		return rt, nil
	case KindLinear:
		return NewLinearScan(graph), nil
	default:
		return nil, util.NewErrorf(util.ErrBadParamInput, "unknown spatial index %q", kind)
	}
}

// closer. strict order used by both indexes: smaller squared distance, then smaller node id
func closer(distSq float64, id int64, bestDistSq float64, bestID int64) bool {
	if distSq != bestDistSq {
		return distSq < bestDistSq
	}
	return id < bestID
}
