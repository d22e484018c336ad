package costfunction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name           string
		roadWidth      float64
		widthReduction float64
		carAccess      bool
		want           SpeedClass
	}{
		{name: "wide road, cars allowed", roadWidth: 3.0, widthReduction: 0.0, carAccess: true, want: CAR_30KM},
		{name: "wide road, cars forbidden", roadWidth: 3.0, widthReduction: 0.0, carAccess: false, want: WALK_4_5KM},
		{name: "exactly 2.5 selects 30km", roadWidth: 2.5, widthReduction: 0.0, carAccess: true, want: CAR_30KM},
		{name: "just below 2.5", roadWidth: 2.4, widthReduction: 0.0, carAccess: true, want: CAR_15KM},
		{name: "exactly 1.5 selects 15km", roadWidth: 2.0, widthReduction: 0.5, carAccess: true, want: CAR_15KM},
		{name: "15km tier without car access", roadWidth: 2.0, widthReduction: 0.0, carAccess: false, want: WALK_4_5KM},
		{name: "residual 1.4 walks regardless of access", roadWidth: 2.0, widthReduction: 0.6, carAccess: true, want: WALK_4_5KM},
		{name: "exactly 0.5 keeps the edge", roadWidth: 1.0, widthReduction: 0.5, carAccess: true, want: WALK_4_5KM},
		{name: "residual 0.4 is impassable", roadWidth: 1.0, widthReduction: 0.6, carAccess: true, want: NONE},
		{name: "fully blocked", roadWidth: 4.0, widthReduction: 4.0, carAccess: true, want: NONE},
		{name: "nan width", roadWidth: math.NaN(), widthReduction: 0, carAccess: true, want: NONE},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(ResidualWidth(tt.roadWidth, tt.widthReduction), tt.carAccess)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != NONE, got.Passable())
		})
	}
}

func TestTravelTimeMinutes(t *testing.T) {
	assert.InDelta(t, 1.0, TravelTimeMinutes(500, CAR_30KM), 1e-12)
	assert.InDelta(t, 2.0, TravelTimeMinutes(500, CAR_15KM), 1e-12)
	assert.InDelta(t, 5.0, TravelTimeMinutes(375, WALK_4_5KM), 1e-12)
	assert.True(t, math.IsInf(TravelTimeMinutes(100, NONE), 1))

	for _, class := range []SpeedClass{CAR_30KM, CAR_15KM, WALK_4_5KM} {
		length := 123.456
		got := TravelTimeMinutes(length, class)
		assert.InDelta(t, (length/1000)/class.Speed()*60, got, 1e-12)
	}
}

func TestClassOfSpeed(t *testing.T) {
	lengths := []float64{0.3, 1, 17.77, 333.333, 1234.5678, 9999.9}
	for _, class := range []SpeedClass{CAR_30KM, CAR_15KM, WALK_4_5KM} {
		for _, l := range lengths {
			speed := SpeedFromLengthTime(l, TravelTimeMinutes(l, class))
			assert.Equal(t, class, ClassOfSpeed(speed), "class %s length %v speed %v", class, l, speed)
		}
	}

	assert.Equal(t, NONE, ClassOfSpeed(20.0))
	assert.True(t, math.IsNaN(SpeedFromLengthTime(10, 0)))
	assert.Equal(t, NONE, ClassOfSpeed(math.NaN()))
}

func TestTimeFunction(t *testing.T) {
	cf := NewTimeCostFunction()
	assert.Equal(t, 2.5, cf.GetWeight(testEdge{length: 100, time: 2.5}))
}

type testEdge struct {
	length, time float64
}

func (e testEdge) GetLength() float64        { return e.length }
func (e testEdge) GetTravelTime() float64    { return e.time }
func (e testEdge) GetSpeedClass() SpeedClass { return NONE }
