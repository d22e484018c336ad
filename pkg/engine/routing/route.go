package routing

import (
	"github.com/paulmach/orb"
)

type RouteStatus uint8

const (
	VACANT      RouteStatus = iota // no search for an empty building
	NO_NODE                        // building could not be snapped, the graph has no node or no centroid
	UNREACHABLE                    // no shelter reachable, or the best path is a single node
	ROUTED
)

func (rs RouteStatus) String() string {
	switch rs {
	case VACANT:
		return "vacant"
	case NO_NODE:
		return "no_node"
	case UNREACHABLE:
		return "unreachable"
	default:
		return "routed"
	}
}

/*
Route. one output record per building.

only ROUTED records carry path fields (HasPath). UNREACHABLE records keep the start node and a
centroid -> start node geometry, NO_NODE and VACANT records carry neither.
Edges30km, Edges15km and Edges4_5km are a partition of PathEdges.
*/
type Route struct {
	RouteID    int64
	BuildingID int64
	Vacant     bool
	Found      bool
	Status     RouteStatus

	StartNode    int64
	HasStartNode bool

	ShelterID  int64
	PathNodes  []int64
	PathEdges  []int64
	Edges30km  []int64
	Edges15km  []int64
	Edges4_5km []int64
	WalkLocked bool

	TotalTime     float64 // minute
	TotalDistance float64 // meter
	HasPath       bool

	Geometry orb.LineString
}
