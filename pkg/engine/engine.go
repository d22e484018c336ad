package engine

import (
	"context"
	"sort"
	"time"

	"github.com/lintang-b-s/evacx/pkg/concurrent"
	"github.com/lintang-b-s/evacx/pkg/costfunction"
	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/engine/routing"
	"github.com/lintang-b-s/evacx/pkg/spatialindex"
	"go.uber.org/zap"
)

type Engine struct {
	routingEngine *routing.RoutingEngine
	index         spatialindex.NearestNodeIndex
	numWorkers    int
	logger        *zap.Logger
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func (e *Engine) GetIndex() spatialindex.NearestNodeIndex {
	return e.index
}

// NewEngine. routing engine over graph with the nearest node index named by indexKind.
// numWorkers <= 0 uses one worker per cpu.
func NewEngine(graph *datastructure.Graph, indexKind string, numWorkers int, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting evacuation routing engine...", zap.String("spatialIndex", indexKind))
	index, err := spatialindex.New(indexKind, graph, logger)
	if err != nil {
		return nil, err
	}
	costFunction := costfunction.NewTimeCostFunction()
	return &Engine{
		routingEngine: routing.NewRoutingEngine(graph, index, costFunction, logger),
		index:         index,
		numWorkers:    numWorkers,
		logger:        logger,
	}, nil
}

type buildingJob struct {
	rID      int64
	building datastructure.Building
}

/*
RouteBuildings. one route record per building, r_id = 1..n in input order, records sorted by r_id.

buildings are independent read-only queries over the graph and the index, so they are fanned out
over the worker pool. shelters are snapped once for the whole batch. a cancelled ctx stops the batch
between buildings and returns ctx.Err().
*/
func (e *Engine) RouteBuildings(ctx context.Context, buildings []datastructure.Building,
	shelters []datastructure.Shelter) ([]routing.Route, error) {
	start := time.Now()
	shelterNodes := e.routingEngine.SnapShelters(shelters)
	e.logger.Info("routing buildings to shelters...",
		zap.Int("buildings", len(buildings)), zap.Int("shelters", len(shelters)),
		zap.Int("snappedShelters", len(shelterNodes)))

	wp := concurrent.NewWorkerPool[buildingJob, routing.Route](e.numWorkers, len(buildings))
	wp.Start(ctx, func(job buildingJob) routing.Route {
		return e.routingEngine.RouteBuilding(job.rID, job.building, shelterNodes)
	})
	for i, b := range buildings {
		wp.AddJob(buildingJob{rID: int64(i + 1), building: b})
	}
	wp.Close()
	wp.Wait()

	routes := make([]routing.Route, 0, len(buildings))
	for r := range wp.CollectResults() {
		routes = append(routes, r)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].RouteID < routes[j].RouteID
	})

	e.logger.Info("routing done", zap.Int("routes", len(routes)),
		zap.Int("workers", wp.NumWorkers()), zap.Duration("elapsed", time.Since(start)))
	return routes, nil
}
