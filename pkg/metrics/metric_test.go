package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/evacx/pkg/engine/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutes() []routing.Route {
	return []routing.Route{
		{RouteID: 1, Status: routing.ROUTED, Found: true, HasPath: true, TotalTime: 6, TotalDistance: 875,
			Edges30km: []int64{1}, Edges4_5km: []int64{2}, WalkLocked: true},
		{RouteID: 2, Status: routing.ROUTED, Found: true, HasPath: true, TotalTime: 2, TotalDistance: 125,
			Edges30km: []int64{1, 3}, Edges15km: []int64{4}},
		{RouteID: 3, Status: routing.VACANT, Vacant: true},
		{RouteID: 4, Status: routing.UNREACHABLE},
		{RouteID: 5, Status: routing.NO_NODE},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testRoutes())
	assert.Equal(t, 5, s.NumBuildings)
	assert.Equal(t, 2, s.NumRouted)
	assert.Equal(t, 1, s.NumVacant)
	assert.Equal(t, 1, s.NumUnreachable)
	assert.Equal(t, 1, s.NumNoNode)
	assert.Equal(t, 1, s.NumWalkLocked)
	assert.InDelta(t, 4.0, s.MeanTravelTime, 1e-12)
	assert.Equal(t, 6.0, s.MaxTravelTime)
	assert.InDelta(t, 500.0, s.MeanDistance, 1e-12)
	assert.Equal(t, 875.0, s.MaxDistance)
	assert.Equal(t, 3, s.NumEdges30km)
	assert.Equal(t, 1, s.NumEdges15km)
	assert.Equal(t, 1, s.NumEdges4_5km)
	assert.Equal(t, 0.5, s.WalkLockedShare())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.NumBuildings)
	assert.Equal(t, 0.0, s.MeanTravelTime)
	assert.Equal(t, 0.0, s.WalkLockedShare())
}

func TestSummaryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	want := Summarize(testRoutes())
	require.NoError(t, want.WriteToFile(path))

	got, err := ReadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "walk_locked_share 0.5\n")
}

func TestReadFromFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	require.NoError(t, os.WriteFile(path, []byte("routed two\n"), 0o644))
	_, err := ReadFromFile(path)
	assert.Error(t, err)
}
