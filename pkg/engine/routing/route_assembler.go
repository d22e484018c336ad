package routing

import (
	"math"

	"github.com/lintang-b-s/evacx/pkg/costfunction"
	da "github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/paulmach/orb"
)

type RouteAssembler struct {
	graph *da.Graph
}

func NewRouteAssembler(graph *da.Graph) *RouteAssembler {
	return &RouteAssembler{graph: graph}
}

func newRoute(rID int64, b da.Building, status RouteStatus) Route {
	return Route{
		RouteID:    rID,
		BuildingID: b.ID,
		Vacant:     b.Vacant,
		Status:     status,
	}
}

func (ra *RouteAssembler) AssembleVacant(rID int64, b da.Building) Route {
	return newRoute(rID, b, VACANT)
}

func (ra *RouteAssembler) AssembleNoNode(rID int64, b da.Building) Route {
	return newRoute(rID, b, NO_NODE)
}

// AssembleUnreachable. start node recorded, geometry centroid -> start node
func (ra *RouteAssembler) AssembleUnreachable(rID int64, b da.Building, start da.Index) Route {
	r := newRoute(rID, b, UNREACHABLE)
	r.StartNode = ra.graph.GetNode(start).GetID()
	r.HasStartNode = true
	r.Geometry = orb.LineString{b.Centroid, ra.graph.GetNodePosition(start)}
	return r
}

/*
Assemble. record of a routed building.

edges are walked from the building towards the shelter. the speed of every edge is recomputed from
length and travel time and mapped back to its tier. once an edge runs at walking speed the
rest of the route is walked too, whatever the tier of the following edges. zero-length edges have
no recomputable speed and use their stored tier.

geometry: centroid, start node, then the remaining path nodes.
*/
func (ra *RouteAssembler) Assemble(rID int64, b da.Building, shelterID int64, path *Path) Route {
	r := newRoute(rID, b, ROUTED)
	r.Found = true
	r.HasPath = true
	r.ShelterID = shelterID

	nodes := path.GetNodes()
	r.StartNode = ra.graph.GetNode(nodes[0]).GetID()
	r.HasStartNode = true
	r.PathNodes = make([]int64, len(nodes))
	r.Geometry = make(orb.LineString, 0, len(nodes)+1)
	r.Geometry = append(r.Geometry, b.Centroid)
	for i, v := range nodes {
		r.PathNodes[i] = ra.graph.GetNode(v).GetID()
		r.Geometry = append(r.Geometry, ra.graph.GetNodePosition(v))
	}

	r.PathEdges = make([]int64, 0, len(path.GetEdges()))
	r.Edges30km = make([]int64, 0)
	r.Edges15km = make([]int64, 0)
	r.Edges4_5km = make([]int64, 0)
	for _, eIdx := range path.GetEdges() {
		e := ra.graph.GetEdge(eIdx)
		r.PathEdges = append(r.PathEdges, e.GetID())
		r.TotalDistance += e.GetLength()

		class := traversalClass(e)
		if r.WalkLocked || class == costfunction.WALK_4_5KM {
			r.WalkLocked = true
			r.Edges4_5km = append(r.Edges4_5km, e.GetID())
			continue
		}
		switch class {
		case costfunction.CAR_30KM:
			r.Edges30km = append(r.Edges30km, e.GetID())
		case costfunction.CAR_15KM:
			r.Edges15km = append(r.Edges15km, e.GetID())
		}
	}
	r.TotalTime = path.GetTravelTime()
	return r
}

func traversalClass(e *da.Edge) costfunction.SpeedClass {
	speed := costfunction.SpeedFromLengthTime(e.GetLength(), e.GetTravelTime())
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return e.GetSpeedClass()
	}
	if class := costfunction.ClassOfSpeed(speed); class.Passable() {
		return class
	}
	return e.GetSpeedClass()
}
