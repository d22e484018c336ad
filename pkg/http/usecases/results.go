package usecases

import (
	"github.com/lintang-b-s/evacx/pkg/engine/routing"
	"github.com/lintang-b-s/evacx/pkg/metrics"
	"github.com/lintang-b-s/evacx/pkg/util"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// RouteFilter. nil Found / WalkLocked match any record
type RouteFilter struct {
	Found      *bool
	WalkLocked *bool
	Offset     int
	Limit      int
}

func (f RouteFilter) match(r *routing.Route) bool {
	if f.Found != nil && r.Found != *f.Found {
		return false
	}
	if f.WalkLocked != nil && r.WalkLocked != *f.WalkLocked {
		return false
	}
	return true
}

type NearestNode struct {
	NodeID   int64
	Position orb.Point
	Distance float64
	Degree   int
}

// ResultsService. read-only view over one computed batch of route records
type ResultsService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	routes       []routing.Route
	byBuilding   map[int64]int
	summary      *metrics.Summary
}

func NewResultsService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	routes []routing.Route, summary *metrics.Summary) *ResultsService {
	byBuilding := make(map[int64]int, len(routes))
	for i, r := range routes {
		if _, ok := byBuilding[r.BuildingID]; ok {
			log.Warn("duplicate building id, keeping the first record", zap.Int64("buildingID", r.BuildingID),
				zap.Int64("routeID", r.RouteID))
			continue
		}
		byBuilding[r.BuildingID] = i
	}
	if summary == nil {
		summary = metrics.Summarize(routes)
	}
	return &ResultsService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		routes:       routes,
		byBuilding:   byBuilding,
		summary:      summary,
	}
}

func (rs *ResultsService) RouteOfBuilding(buildingID int64) (routing.Route, error) {
	i, ok := rs.byBuilding[buildingID]
	if !ok {
		return routing.Route{}, util.NewErrorf(util.ErrNotFound, "no route record for building %d", buildingID)
	}
	return rs.routes[i], nil
}

// ListRoutes. records matching the filter in r_id order, paged by offset/limit, plus the number of matches
func (rs *ResultsService) ListRoutes(filter RouteFilter) ([]routing.Route, int, error) {
	if filter.Offset < 0 || filter.Limit <= 0 {
		return nil, 0, util.NewErrorf(util.ErrBadParamInput, "invalid page offset=%d limit=%d", filter.Offset, filter.Limit)
	}
	page := make([]routing.Route, 0, filter.Limit)
	total := 0
	for i := range rs.routes {
		if !filter.match(&rs.routes[i]) {
			continue
		}
		if total >= filter.Offset && len(page) < filter.Limit {
			page = append(page, rs.routes[i])
		}
		total++
	}
	return page, total, nil
}

func (rs *ResultsService) Summary() *metrics.Summary {
	return rs.summary
}

func (rs *ResultsService) NearestNode(x, y float64) (NearestNode, error) {
	p := orb.Point{x, y}
	v, ok := rs.spatialIndex.Nearest(p)
	if !ok {
		return NearestNode{}, util.NewErrorf(util.ErrNotFound, "network has no node near %f,%f", x, y)
	}
	graph := rs.engine.GetGraph()
	pos := graph.GetNodePosition(v)
	return NearestNode{
		NodeID:   graph.GetNode(v).GetID(),
		Position: pos,
		Distance: distance(p, pos),
		Degree:   graph.GetDegree(v),
	}, nil
}
