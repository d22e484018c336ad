package clustering

import (
	"math"

	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/paulmach/orb"
)

/*
completeLinkage. agglomerative clustering of one single-linkage component.

members are point indices in ascending order. every step merges the two active clusters whose
complete-linkage distance (largest pairwise member distance) is the smallest, as long as it stays
below the threshold. equal distances resolve to the lexicographically smallest (i, j) pair, and the
merged cluster keeps the lower slot, so a slot always carries the smallest member of its cluster.
distances are squared throughout, max of squares = square of max.

nn[i] caches the closest active slot j > i (lowest j on ties). complete-linkage distances only grow
on a merge, so after merging j into i only row i and the rows whose cached neighbour was i or j
need a rescan.

returns, for every member slot, the slot of the cluster it ended up in.
*/
func completeLinkage(points []orb.Point, members []int, thresholdSq float64) []int {
	m := len(members)
	owner := make([]int, m)
	for i := range owner {
		owner[i] = i
	}
	if m < 2 {
		return owner
	}

	dist := make([]float64, m*m)
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			d := geo.DistanceSquared(points[members[i]], points[members[j]])
			dist[i*m+j] = d
			dist[j*m+i] = d
		}
	}

	active := make([]bool, m)
	for i := range active {
		active[i] = true
	}

	nn := make([]int, m)
	nnDist := make([]float64, m)
	rescan := func(i int) {
		nn[i], nnDist[i] = -1, math.Inf(1)
		row := dist[i*m:]
		for j := i + 1; j < m; j++ {
			if active[j] && row[j] < nnDist[i] {
				nn[i], nnDist[i] = j, row[j]
			}
		}
	}
	for i := 0; i < m; i++ {
		rescan(i)
	}

	for {
		bestI := -1
		best := thresholdSq
		for i := 0; i < m; i++ {
			if active[i] && nn[i] >= 0 && nnDist[i] < best {
				best = nnDist[i]
				bestI = i
			}
		}
		if bestI < 0 {
			break
		}
		bestJ := nn[bestI]

		// merge bestJ into bestI, lance-williams update for complete linkage
		active[bestJ] = false
		for k := 0; k < m; k++ {
			if !active[k] || k == bestI {
				continue
			}
			if d := dist[bestJ*m+k]; d > dist[bestI*m+k] {
				dist[bestI*m+k] = d
				dist[k*m+bestI] = d
			}
		}
		for s := 0; s < m; s++ {
			if owner[s] == bestJ {
				owner[s] = bestI
			}
		}

		rescan(bestI)
		for i := 0; i < bestJ; i++ {
			if active[i] && i != bestI && (nn[i] == bestI || nn[i] == bestJ) {
				rescan(i)
			}
		}
	}
	return owner
}
