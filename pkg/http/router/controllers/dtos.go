package controllers

import (
	"github.com/lintang-b-s/evacx/pkg/engine/routing"
	"github.com/lintang-b-s/evacx/pkg/http/usecases"
)

type routeOfBuildingRequest struct {
	BuildingID int64 `json:"building_id" validate:"gte=0"`
}

type listRoutesRequest struct {
	Found  string `json:"found" validate:"omitempty,oneof=true false"`
	Walk   string `json:"walk" validate:"omitempty,oneof=true false"`
	Offset int    `json:"offset" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=1,lte=1000"`
}

type nearestNodeRequest struct {
	X float64 `json:"x" validate:"gte=-1e9,lte=1e9"`
	Y float64 `json:"y" validate:"gte=-1e9,lte=1e9"`
}

// routeResponse. same fields as a routes GeoJSON feature, null where the record leaves them unset
type routeResponse struct {
	RouteID       int64        `json:"r_id"`
	BuildingID    int64        `json:"b_id"`
	Vacant        bool         `json:"akiya"`
	Found         bool         `json:"r_found"`
	Status        string       `json:"status"`
	StartNode     *int64       `json:"n_node"`
	ShelterID     *int64       `json:"shelter_id"`
	PathNodes     []int64      `json:"p_nodes"`
	Edges30km     []int64      `json:"e_30km"`
	Edges15km     []int64      `json:"e_15km"`
	Edges4_5km    []int64      `json:"e_4_5km"`
	WalkLocked    bool         `json:"walk_f"`
	TotalTime     *float64     `json:"t_time"`
	TotalDistance *float64     `json:"t_dist"`
	Coordinates   [][2]float64 `json:"coordinates"`
	Polyline      string       `json:"polyline"`
}

func NewRouteResponse(r routing.Route) routeResponse {
	resp := routeResponse{
		RouteID:    r.RouteID,
		BuildingID: r.BuildingID,
		Vacant:     r.Vacant,
		Status:     r.Status.String(),
		Found:      r.Found,
		WalkLocked: r.WalkLocked,
		Polyline:   usecases.EncodeGeometry(r.Geometry),
	}
	if r.HasStartNode {
		n := r.StartNode
		resp.StartNode = &n
	}
	if r.HasPath {
		shelter := r.ShelterID
		tt, dist := r.TotalTime, r.TotalDistance
		resp.ShelterID = &shelter
		resp.TotalTime = &tt
		resp.TotalDistance = &dist
		resp.PathNodes = r.PathNodes
		resp.Edges30km = nonNil(r.Edges30km)
		resp.Edges15km = nonNil(r.Edges15km)
		resp.Edges4_5km = nonNil(r.Edges4_5km)
	}
	if len(r.Geometry) > 0 {
		resp.Coordinates = make([][2]float64, len(r.Geometry))
		for i, p := range r.Geometry {
			resp.Coordinates[i] = [2]float64{p[0], p[1]}
		}
	}
	return resp
}

func NewRoutesResponse(routes []routing.Route) []routeResponse {
	resp := make([]routeResponse, len(routes))
	for i, r := range routes {
		resp[i] = NewRouteResponse(r)
	}
	return resp
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

type listRoutesResponse struct {
	Routes []routeResponse `json:"routes"`
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

type nearestNodeResponse struct {
	NodeID   int64   `json:"node_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Distance float64 `json:"distance"`
	Degree   int     `json:"degree"`
}

func NewNearestNodeResponse(n usecases.NearestNode) nearestNodeResponse {
	return nearestNodeResponse{
		NodeID:   n.NodeID,
		X:        n.Position[0],
		Y:        n.Position[1],
		Distance: n.Distance,
		Degree:   n.Degree,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
