package usecases

import (
	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/paulmach/orb"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
}

type SpatialIndex interface {
	Nearest(p orb.Point) (datastructure.Index, bool)
}
