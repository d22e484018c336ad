package concurrent

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		numJobs    int
	}{
		{name: "single worker", numWorkers: 1, numJobs: 10},
		{name: "many workers", numWorkers: 8, numJobs: 1000},
		{name: "default workers", numWorkers: 0, numJobs: 50},
		{name: "no jobs", numWorkers: 4, numJobs: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool[int, int](tt.numWorkers, tt.numJobs)
			assert.Greater(t, wp.NumWorkers(), 0)
			wp.Start(context.Background(), func(job int) int { return job * job })
			for i := 0; i < tt.numJobs; i++ {
				wp.AddJob(i)
			}
			wp.Close()
			wp.Wait()

			got := make([]int, 0, tt.numJobs)
			for res := range wp.CollectResults() {
				got = append(got, res)
			}
			sort.Ints(got)
			assert.Len(t, got, tt.numJobs)
			for i, v := range got {
				assert.Equal(t, i*i, v)
			}
		})
	}
}

func TestWorkerPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := NewWorkerPool[int, int](2, 100)
	wp.Start(ctx, func(job int) int { return job })
	for i := 0; i < 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	n := 0
	for range wp.CollectResults() {
		n++
	}
	assert.Equal(t, 0, n)
}
