package controllers

import (
	"github.com/lintang-b-s/evacx/pkg/engine/routing"
	"github.com/lintang-b-s/evacx/pkg/http/usecases"
	"github.com/lintang-b-s/evacx/pkg/metrics"
)

type ResultsService interface {
	RouteOfBuilding(buildingID int64) (routing.Route, error)
	ListRoutes(filter usecases.RouteFilter) ([]routing.Route, int, error)
	Summary() *metrics.Summary
	NearestNode(x, y float64) (usecases.NearestNode, error)
}
