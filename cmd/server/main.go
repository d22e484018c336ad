package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/evacx/pkg/http"
	"github.com/lintang-b-s/evacx/pkg/http/usecases"
	"github.com/lintang-b-s/evacx/pkg/logger"
	"github.com/lintang-b-s/evacx/pkg/pipeline"
	"github.com/lintang-b-s/evacx/pkg/util"
	"go.uber.org/zap"
)

var (
	configDir    = flag.String("config", ".", "directory holding config.yaml")
	source       = flag.String("source", "", "network source: tables, network, segments or osm (overrides input.source)")
	useRateLimit = flag.Bool("ratelimit", true, "rate limit the results API")
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

	ctx, cancel := http.GracefulShutdown(context.Background())
	defer cancel()

	res, err := pipeline.Run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("evacuation routing failed", zap.Error(err))
	}

	routingEngine := res.Engine.GetRoutingEngine()
	resultsService := usecases.NewResultsService(logger, routingEngine, res.Engine.GetIndex(), res.Routes, res.Summary)

	api := http.NewServer(logger)
	if err := api.Use(ctx, *useRateLimit, resultsService); err != nil {
		logger.Error("results API stopped", zap.Error(err))
	}
	logger.Info("Evacuation results server stopped")
}
