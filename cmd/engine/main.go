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
	configDir    = flag.String("config", ".", "directory holding config.yaml")
	source       = flag.String("source", "", "network source: tables, network, segments or osm (overrides input.source)")
	workers      = flag.Int("workers", 0, "routing workers, 0 keeps routing.workers")
	spatialIndex = flag.String("index", "", "nearest node index: rtree or linear (overrides routing.spatial_index)")
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
	if *source != "" {
		cfg.Source = *source
	}
	if *workers > 0 {
		cfg.NumWorkers = *workers
	}
	if *spatialIndex != "" {
		cfg.SpatialIndex = *spatialIndex
	}

	ctx, cancel := NewContext()
	defer cancel()
	res, err := pipeline.Run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("evacuation routing failed", zap.Error(err))
	}
	logger.Info("Evacuation routing completed successfully.",
		zap.Int("buildings", res.Summary.NumBuildings), zap.Int("routed", res.Summary.NumRouted),
		zap.String("routes", cfg.RoutesOutPath))
}

func NewContext() (context.Context, func()) {
	return context.WithCancel(context.Background())
}
