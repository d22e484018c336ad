package costfunction

import (
	"math"

	"github.com/lintang-b-s/evacx/pkg"
)

// SpeedClass. traversal regime of a road segment after collapse
type SpeedClass uint8

const (
	NONE SpeedClass = iota // impassable, no edge
	WALK_4_5KM
	CAR_15KM
	CAR_30KM
)

func (s SpeedClass) Speed() float64 {
	switch s {
	case CAR_30KM:
		return pkg.CAR_SPEED_30KM
	case CAR_15KM:
		return pkg.CAR_SPEED_15KM
	case WALK_4_5KM:
		return pkg.WALK_SPEED_4_5KM
	default:
		return 0
	}
}

func (s SpeedClass) String() string {
	switch s {
	case CAR_30KM:
		return "30km"
	case CAR_15KM:
		return "15km"
	case WALK_4_5KM:
		return "4_5km"
	default:
		return "none"
	}
}

func (s SpeedClass) Passable() bool {
	return s != NONE
}

// ResidualWidth. width left for traffic after debris of collapsed buildings
func ResidualWidth(roadWidth, widthReduction float64) float64 {
	return roadWidth - widthReduction
}

/*
Classify. piecewise speed policy on residual width w (meter) and car access:

	w >= 2.5        -> 30 km/h by car, 4.5 km/h on foot if cars are not allowed
	1.5 <= w < 2.5  -> 15 km/h by car, 4.5 km/h on foot if cars are not allowed
	0.5 <= w < 1.5  -> 4.5 km/h on foot
	w < 0.5         -> impassable

boundaries are inclusive on the lower side and compared exactly. NaN widths are impassable.
*/
func Classify(residualWidth float64, carAccess bool) SpeedClass {
	switch {
	case residualWidth >= pkg.MIN_WIDTH_CAR_30KM:
		if carAccess {
			return CAR_30KM
		}
		return WALK_4_5KM
	case residualWidth >= pkg.MIN_WIDTH_CAR_15KM:
		if carAccess {
			return CAR_15KM
		}
		return WALK_4_5KM
	case residualWidth >= pkg.MIN_WIDTH_PASSABLE:
		return WALK_4_5KM
	default:
		return NONE
	}
}

// TravelTimeMinutes. (length/1000) / speed * 60, length in meter, speed in km/h
func TravelTimeMinutes(length float64, class SpeedClass) float64 {
	speed := class.Speed()
	if speed == 0 {
		return math.Inf(1)
	}
	return (length / 1000) / speed * 60
}

// SpeedFromLengthTime. km/h implied by a length (meter) and a travel time (minute).
// NaN when the time is zero.
func SpeedFromLengthTime(length, minutes float64) float64 {
	if minutes == 0 {
		return math.NaN()
	}
	return (length / 1000) / (minutes / 60)
}

const speedEps = 1e-9

func speedEq(a, b float64) bool {
	return math.Abs(a-b) <= speedEps*math.Max(1, math.Abs(b))
}

// ClassOfSpeed. inverse of SpeedClass.Speed with a relative tolerance, because the speed
// recomputed from length/time carries rounding error. NONE if it matches no tier.
func ClassOfSpeed(speed float64) SpeedClass {
	switch {
	case speedEq(speed, pkg.WALK_SPEED_4_5KM):
		return WALK_4_5KM
	case speedEq(speed, pkg.CAR_SPEED_30KM):
		return CAR_30KM
	case speedEq(speed, pkg.CAR_SPEED_15KM):
		return CAR_15KM
	default:
		return NONE
	}
}
