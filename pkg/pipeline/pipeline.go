// Package pipeline chains the evacuation stages: LoadInputs -> BuildNetwork -> RouteBuildings -> WriteOutputs.
// every stage takes the artifacts of the previous one and never mutates them.
package pipeline

import (
	"context"

	"github.com/lintang-b-s/evacx/pkg/clustering"
	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/engine"
	"github.com/lintang-b-s/evacx/pkg/engine/routing"
	"github.com/lintang-b-s/evacx/pkg/metrics"
	"github.com/lintang-b-s/evacx/pkg/osmparser"
	"github.com/lintang-b-s/evacx/pkg/preprocessor"
	"github.com/lintang-b-s/evacx/pkg/tables"
	"github.com/lintang-b-s/evacx/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Inputs. exactly one of Segments, the tables (Nodes, Edges) or Snapshot is set, depending on the source
type Inputs struct {
	Segments  []datastructure.RawSegment
	Nodes     []datastructure.NodeRecord
	Edges     []datastructure.EdgeRecord
	Snapshot  *datastructure.Graph
	Buildings []datastructure.Building
	Shelters  []datastructure.Shelter
}

type Result struct {
	Routes  []routing.Route
	Summary *metrics.Summary
	Engine  *engine.Engine
}

func loadNetworkInputs(ctx context.Context, cfg Config, in *Inputs, log *zap.Logger) error {
	var err error
	switch cfg.Source {
	case SourceSegments:
		in.Segments, err = tables.ReadSegments(cfg.SegmentsPath, log)
	case SourceOSM:
		in.Segments, err = osmparser.NewOsmParser(log).Parse(ctx, cfg.OsmPath)
	case SourceTables, "":
		eg := errgroup.Group{}
		eg.Go(func() (err error) {
			in.Nodes, err = tables.ReadNodes(cfg.NodesPath)
			return err
		})
		eg.Go(func() (err error) {
			in.Edges, err = tables.ReadEdges(cfg.EdgesPath)
			return err
		})
		err = eg.Wait()
	case SourceNetwork:
		if cfg.NetworkPath == "" {
			return util.NewErrorf(util.ErrMissingInput, "network snapshot: no path configured")
		}
		in.Snapshot, err = datastructure.ReadGraph(cfg.NetworkPath)
		if err != nil {
			err = util.WrapErrorf(err, util.ErrMalformedInput, "network snapshot %s", cfg.NetworkPath)
		}
	default:
		return util.NewErrorf(util.ErrBadParamInput, "unknown network source %q", cfg.Source)
	}
	return err
}

// LoadInputs. read the network source, buildings and shelters concurrently
func LoadInputs(ctx context.Context, cfg Config, withRoutingInputs bool, log *zap.Logger) (*Inputs, error) {
	in := &Inputs{}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return loadNetworkInputs(ctx, cfg, in, log)
	})
	if withRoutingInputs {
		eg.Go(func() (err error) {
			in.Buildings, err = tables.ReadBuildings(cfg.BuildingsPath, log)
			return err
		})
		eg.Go(func() (err error) {
			in.Shelters, err = tables.ReadShelters(cfg.SheltersPath, log)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// BuildNetwork. cluster segments into tables and build the graph, or build it from the loaded tables
func BuildNetwork(cfg Config, in *Inputs, log *zap.Logger) (*preprocessor.Network, error) {
	if in.Snapshot != nil {
		log.Info("using network snapshot", zap.Int("numberOfNodes", in.Snapshot.NumberOfNodes()),
			zap.Int("numberOfEdges", in.Snapshot.NumberOfEdges()))
		return &preprocessor.Network{Graph: in.Snapshot}, nil
	}

	threshold := cfg.ClusterThreshold
	if threshold == 0 {
		threshold = clustering.DefaultThreshold
	}
	clusterer, err := clustering.NewClusterer(threshold, log)
	if err != nil {
		return nil, err
	}
	p := preprocessor.NewPreprocessor(clusterer, log)
	if in.Segments != nil {
		return p.Preprocess(in.Segments)
	}
	return p.BuildGraph(in.Nodes, in.Edges)
}

func RouteBuildings(ctx context.Context, cfg Config, network *preprocessor.Network, in *Inputs,
	log *zap.Logger) (*Result, error) {
	e, err := engine.NewEngine(network.Graph, cfg.SpatialIndex, cfg.NumWorkers, log)
	if err != nil {
		return nil, err
	}
	routes, err := e.RouteBuildings(ctx, in.Buildings, in.Shelters)
	if err != nil {
		return nil, err
	}
	summary := metrics.Summarize(routes)
	log.Info("batch summary",
		zap.Int("buildings", summary.NumBuildings), zap.Int("routed", summary.NumRouted),
		zap.Int("unreachable", summary.NumUnreachable), zap.Int("vacant", summary.NumVacant),
		zap.Float64("walkLockedShare", summary.WalkLockedShare()))
	return &Result{Routes: routes, Summary: summary, Engine: e}, nil
}

// WriteNetwork. tables and snapshot, each skipped when its output path is empty
func WriteNetwork(cfg Config, network *preprocessor.Network, log *zap.Logger) error {
	eg := errgroup.Group{}
	if cfg.NodesOutPath != "" && network.Nodes != nil {
		eg.Go(func() error { return tables.WriteNodes(cfg.NodesOutPath, network.Nodes) })
	}
	if cfg.EdgesOutPath != "" && network.Edges != nil {
		eg.Go(func() error { return tables.WriteEdges(cfg.EdgesOutPath, network.Edges) })
	}
	if cfg.NetworkOutPath != "" {
		eg.Go(func() error { return network.Graph.WriteGraph(cfg.NetworkOutPath) })
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	log.Info("network written", zap.String("nodes", cfg.NodesOutPath), zap.String("edges", cfg.EdgesOutPath),
		zap.String("network", cfg.NetworkOutPath))
	return nil
}

// WriteOutputs. route records and batch summary, each skipped when its output path is empty
func WriteOutputs(cfg Config, res *Result, log *zap.Logger) error {
	if cfg.RoutesOutPath != "" {
		if err := tables.WriteRoutes(cfg.RoutesOutPath, res.Routes); err != nil {
			return err
		}
	}
	if cfg.SummaryOutPath != "" {
		if err := res.Summary.WriteToFile(cfg.SummaryOutPath); err != nil {
			return err
		}
	}
	log.Info("outputs written", zap.String("routes", cfg.RoutesOutPath), zap.String("summary", cfg.SummaryOutPath))
	return nil
}

// Preprocess. LoadInputs -> BuildNetwork -> WriteNetwork
func Preprocess(ctx context.Context, cfg Config, log *zap.Logger) (*preprocessor.Network, error) {
	in, err := LoadInputs(ctx, cfg, false, log)
	if err != nil {
		return nil, err
	}
	network, err := BuildNetwork(cfg, in, log)
	if err != nil {
		return nil, err
	}
	if err := WriteNetwork(cfg, network, log); err != nil {
		return nil, err
	}
	return network, nil
}

// Run. LoadInputs -> BuildNetwork -> RouteBuildings -> WriteOutputs
func Run(ctx context.Context, cfg Config, log *zap.Logger) (*Result, error) {
	in, err := LoadInputs(ctx, cfg, true, log)
	if err != nil {
		return nil, err
	}
	network, err := BuildNetwork(cfg, in, log)
	if err != nil {
		return nil, err
	}
	res, err := RouteBuildings(ctx, cfg, network, in, log)
	if err != nil {
		return nil, err
	}
	if err := WriteOutputs(cfg, res, log); err != nil {
		return nil, err
	}
	return res, nil
}
