package routing

import (
	"fmt"

	da "github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/lintang-b-s/evacx/pkg/util"
	"go.uber.org/zap"
)

type RoutingEngine struct {
	graph        *da.Graph
	index        NearestNodeIndex
	costFunction CostFunction
	assembler    *RouteAssembler
	logger       *zap.Logger
}

func NewRoutingEngine(graph *da.Graph, index NearestNodeIndex, costFunction CostFunction,
	logger *zap.Logger) *RoutingEngine {
	return &RoutingEngine{
		graph:        graph,
		index:        index,
		costFunction: costFunction,
		assembler:    NewRouteAssembler(graph),
		logger:       logger,
	}
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

// ShelterNode. shelter snapped to its nearest graph node
type ShelterNode struct {
	shelter da.Shelter
	node    da.Index
}

func (sn ShelterNode) GetShelter() da.Shelter {
	return sn.shelter
}

func (sn ShelterNode) GetNode() da.Index {
	return sn.node
}

// SnapShelters. nearest node of every shelter, in input order. computed once per batch because it only
// depends on the shelter and the graph. shelters without a valid location are logged and left out.
func (re *RoutingEngine) SnapShelters(shelters []da.Shelter) []ShelterNode {
	snapped := make([]ShelterNode, 0, len(shelters))
	for _, s := range shelters {
		if !geo.IsValidPoint(s.Location) {
			re.logger.Warn("skipping shelter without a valid location",
				zap.Int64("shelterID", s.ID), zap.String("location", fmt.Sprintf("%v", s.Location)))
			continue
		}
		v, ok := re.index.Nearest(s.Location)
		if !ok {
			continue
		}
		snapped = append(snapped, ShelterNode{shelter: s, node: v})
	}
	return snapped
}

// ShortestPath. minimum travel time path between two nodes
func (re *RoutingEngine) ShortestPath(s, t da.Index) (*Path, bool) {
	return NewDijkstra(re.graph, re.costFunction).ShortestPath(s, t)
}

/*
RouteBuilding. route record of one building.

vacant buildings are not searched. otherwise the building is snapped to its nearest node and the
shelter with the strictly smallest travel time wins, the earliest shelter on ties. a building with no
reachable shelter, or whose best path is a single node, is unreachable. a building that cannot be
snapped at all still yields a record. never returns an error: per building failures end up in the
record status.
*/
func (re *RoutingEngine) RouteBuilding(rID int64, b da.Building, shelters []ShelterNode) Route {
	if b.Vacant {
		return re.assembler.AssembleVacant(rID, b)
	}

	if !b.HasCentroid || !geo.IsValidPoint(b.Centroid) {
		re.logger.Warn("building has no valid centroid",
			zap.Int64("buildingID", b.ID), zap.Error(util.ErrInvalidCoordinate))
		return re.assembler.AssembleNoNode(rID, b)
	}
	start, ok := re.index.Nearest(b.Centroid)
	if !ok {
		return re.assembler.AssembleNoNode(rID, b)
	}

	path, shelterID, err := re.bestShelterPath(start, shelters)
	if err != nil {
		re.logger.Debug("building not routed", zap.Int64("buildingID", b.ID), zap.Error(err))
		return re.assembler.AssembleUnreachable(rID, b, start)
	}
	return re.assembler.Assemble(rID, b, shelterID, path)
}

func (re *RoutingEngine) bestShelterPath(start da.Index, shelters []ShelterNode) (*Path, int64, error) {
	targets := make([]da.Index, len(shelters))
	for i, sn := range shelters {
		targets[i] = sn.node
	}
	paths := NewDijkstra(re.graph, re.costFunction).ShortestPathsToTargets(start, targets)

	var (
		best      *Path
		shelterID int64
	)
	for i, p := range paths {
		if p == nil {
			continue
		}
		if best == nil || p.GetTravelTime() < best.GetTravelTime() {
			best = p
			shelterID = shelters[i].shelter.ID
		}
	}

	if best == nil {
		return nil, 0, util.NewErrorf(util.ErrNoPath, "no shelter reachable from node %d",
			re.graph.GetNode(start).GetID())
	}
	if best.NumberOfNodes() < 2 {
		return nil, 0, util.NewErrorf(util.ErrDegenerateRoute, "best shelter %d is snapped to the start node %d",
			shelterID, re.graph.GetNode(start).GetID())
	}
	return best, shelterID, nil
}
