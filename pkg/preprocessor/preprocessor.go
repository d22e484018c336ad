// Package preprocessor turns raw road segments into the evacuation network.
package preprocessor

import (
	"fmt"

	"github.com/lintang-b-s/evacx/pkg/clustering"
	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

type Preprocessor struct {
	clusterer *clustering.Clusterer
	builder   *GraphBuilder
	log       *zap.Logger
}

func NewPreprocessor(clusterer *clustering.Clusterer, log *zap.Logger) *Preprocessor {
	return &Preprocessor{
		clusterer: clusterer,
		builder:   NewGraphBuilder(log),
		log:       log,
	}
}

// Network. tables plus the graph built from them
type Network struct {
	Nodes []datastructure.NodeRecord
	Edges []datastructure.EdgeRecord
	Graph *datastructure.Graph
	Stats BuildStats
}

/*
BuildTables. cluster segment endpoints into nodes and emit one edge row per segment.

a segment with an endpoint without a valid coordinate is dropped whole before clustering.
edge ids are 1..m over the kept segments in input order, node ids 1..k in order of the first
endpoint of every cluster. the edges table keeps every segment, narrow or not; the speed policy
is applied when the graph is built.
*/
func (p *Preprocessor) BuildTables(segments []datastructure.RawSegment) ([]datastructure.NodeRecord,
	[]datastructure.EdgeRecord) {
	p.log.Info("building node and edge tables...", zap.Int("numberOfSegments", len(segments)))

	kept := make([]int, 0, len(segments))
	endpoints := make([]orb.Point, 0, 2*len(segments))
	for i, s := range segments {
		if !geo.IsValidPoint(s.Start) || !geo.IsValidPoint(s.End) {
			p.log.Warn("skipping segment with an invalid endpoint",
				zap.Int("segment", i), zap.String("routeID", s.RouteID),
				zap.String("start", fmt.Sprintf("%v", s.Start)), zap.String("end", fmt.Sprintf("%v", s.End)))
			continue
		}
		kept = append(kept, i)
		endpoints = append(endpoints, s.Start, s.End)
	}

	res := p.clusterer.Cluster(endpoints)

	nodes := make([]datastructure.NodeRecord, res.NumberOfClusters())
	for k, c := range res.GetCentroids() {
		nodes[k] = datastructure.NodeRecord{ID: nodeIDOfCluster(k), X: c[0], Y: c[1]}
	}

	edges := make([]datastructure.EdgeRecord, len(kept))
	for j, si := range kept {
		s := segments[si]
		edges[j] = datastructure.EdgeRecord{
			ID:                int64(j + 1),
			StartNode:         nodeIDOfCluster(res.GetAssignment(2 * j)),
			EndNode:           nodeIDOfCluster(res.GetAssignment(2*j + 1)),
			Length:            s.Length,
			SegmentAttributes: s.SegmentAttributes,
		}
	}

	p.log.Info("node and edge tables built",
		zap.Int("numberOfNodes", len(nodes)), zap.Int("numberOfEdges", len(edges)),
		zap.Int("droppedSegments", len(segments)-len(kept)))
	return nodes, edges
}

func nodeIDOfCluster(k int) int64 {
	return int64(k + 1)
}

// Preprocess. segments -> tables -> graph
func (p *Preprocessor) Preprocess(segments []datastructure.RawSegment) (*Network, error) {
	nodes, edges := p.BuildTables(segments)
	graph, stats, err := p.builder.BuildGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	return &Network{Nodes: nodes, Edges: edges, Graph: graph, Stats: stats}, nil
}

// BuildGraph. graph from existing nodes and edges tables, skipping endpoint clustering
func (p *Preprocessor) BuildGraph(nodes []datastructure.NodeRecord, edges []datastructure.EdgeRecord) (*Network, error) {
	graph, stats, err := p.builder.BuildGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	return &Network{Nodes: nodes, Edges: edges, Graph: graph, Stats: stats}, nil
}
