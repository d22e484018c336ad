package preprocessor

import (
	"github.com/lintang-b-s/evacx/pkg/costfunction"
	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/util"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

type GraphBuilder struct {
	log *zap.Logger
}

func NewGraphBuilder(log *zap.Logger) *GraphBuilder {
	return &GraphBuilder{log: log}
}

// BuildStats. what happened to the edge rows while building the graph
type BuildStats struct {
	NumEdgeRows   int
	NumImpassable int // residual width below 0.5 m, no edge created
	NumSelfLoops  int
	NumParallel   int
	NumComponents int // connected components of the passable network
}

type nodePair struct {
	u, v datastructure.Index
}

/*
BuildGraph. undirected multigraph from the nodes and edges tables.

every edge row is evaluated with the speed policy on residual width = road_width - width reduction.
rows classified as impassable are skipped, so a collapse that closes a road also removes the
connection between its endpoints. parallel rows between the same node pair stay separate edges.
an edge row referencing a node id missing from the nodes table is a malformed network.
*/
func (gb *GraphBuilder) BuildGraph(nodes []datastructure.NodeRecord, edges []datastructure.EdgeRecord) (
	*datastructure.Graph, BuildStats, error) {
	stats := BuildStats{NumEdgeRows: len(edges)}
	graph := datastructure.NewGraphWithSize(len(nodes), len(edges))

	for _, n := range nodes {
		if _, err := graph.AddNode(datastructure.NewNode(n.ID, orb.Point{n.X, n.Y})); err != nil {
			return nil, stats, util.WrapErrorf(err, util.ErrMalformedInput, "nodes table")
		}
	}

	seenPairs := make(map[nodePair]struct{}, len(edges))
	for _, e := range edges {
		from, ok := graph.GetNodeIndex(e.StartNode)
		if !ok {
			return nil, stats, util.NewErrorf(util.ErrMalformedInput,
				"edge %d references unknown start node %d", e.ID, e.StartNode)
		}
		to, ok := graph.GetNodeIndex(e.EndNode)
		if !ok {
			return nil, stats, util.NewErrorf(util.ErrMalformedInput,
				"edge %d references unknown end node %d", e.ID, e.EndNode)
		}

		class := costfunction.Classify(e.ResidualWidth(), e.CarAccess)
		if !class.Passable() {
			stats.NumImpassable++
			continue
		}

		if from == to {
			stats.NumSelfLoops++
		}
		pair := nodePair{u: min(from, to), v: max(from, to)}
		if _, exists := seenPairs[pair]; exists {
			stats.NumParallel++
		}
		seenPairs[pair] = struct{}{}

		travelTime := costfunction.TravelTimeMinutes(e.Length, class)
		if _, err := graph.AddEdge(datastructure.NewEdge(e.ID, from, to, e.Length, travelTime, class,
			e.SegmentAttributes)); err != nil {
			return nil, stats, util.WrapErrorf(err, util.ErrInternalServerError, "adding edge %d", e.ID)
		}
	}

	_, stats.NumComponents = graph.ConnectedComponents()

	gb.log.Info("graph built",
		zap.Int("numberOfNodes", graph.NumberOfNodes()),
		zap.Int("numberOfEdges", graph.NumberOfEdges()),
		zap.Int("edgeRows", stats.NumEdgeRows),
		zap.Int("impassable", stats.NumImpassable),
		zap.Int("selfLoops", stats.NumSelfLoops),
		zap.Int("parallel", stats.NumParallel),
		zap.Int("components", stats.NumComponents))
	return graph, stats, nil
}
