package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/evacx/pkg/logger"
	"github.com/lintang-b-s/evacx/pkg/pipeline"
	"github.com/lintang-b-s/evacx/pkg/util"
	"go.uber.org/zap"
)

var (
	configDir = flag.String("config", ".", "directory holding config.yaml")
	source    = flag.String("source", pipeline.SourceSegments, "network source: segments or osm")
	segments  = flag.String("segments", "", "road segments geojson (overrides input.segments)")
	osmFile   = flag.String("osm", "", "openstreetmap pbf extract (overrides input.osm)")
	threshold = flag.Float64("threshold", 0, "endpoint merge threshold in meter (overrides cluster.threshold)")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(*configDir); err != nil {
		logger.Fatal("reading config", zap.Error(err))
	}
	cfg := pipeline.ConfigFromViper()
	cfg.Source = *source
	if *segments != "" {
		cfg.SegmentsPath = *segments
	}
	if *osmFile != "" {
		cfg.OsmPath = *osmFile
	}
	if *threshold > 0 {
		cfg.ClusterThreshold = *threshold
	}

	network, err := pipeline.Preprocess(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("preprocessing failed", zap.Error(err))
	}

	logger.Info("Preprocessing completed successfully.",
		zap.Int("nodes", len(network.Nodes)), zap.Int("edges", len(network.Edges)),
		zap.Int("graphEdges", network.Graph.NumberOfEdges()),
		zap.Int("impassable", network.Stats.NumImpassable))
}
