package costfunction

type TimeFunction struct {
}

func NewTimeCostFunction() *TimeFunction {
	return &TimeFunction{}
}

// GetWeight. travel time in minutes
func (tf *TimeFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetTravelTime()
}
