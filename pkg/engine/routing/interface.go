package routing

import (
	"github.com/lintang-b-s/evacx/pkg/costfunction"
	da "github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/paulmach/orb"
)

type CostFunction interface {
	GetWeight(e costfunction.EdgeAttributes) float64
}

type NearestNodeIndex interface {
	Nearest(p orb.Point) (da.Index, bool)
}
