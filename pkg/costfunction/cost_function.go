package costfunction

type EdgeAttributes interface {
	GetLength() float64
	GetTravelTime() float64
	GetSpeedClass() SpeedClass
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
}
