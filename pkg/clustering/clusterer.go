// Package clustering merges noisy road segment endpoints into graph nodes.
package clustering

import (
	"fmt"

	"github.com/lintang-b-s/evacx/pkg"
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/lintang-b-s/evacx/pkg/util"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

const Unassigned = -1

const DefaultThreshold = pkg.DEFAULT_MERGE_RADIUS

type Clusterer struct {
	threshold float64
	log       *zap.Logger
}

func NewClusterer(threshold float64, log *zap.Logger) (*Clusterer, error) {
	if !(threshold > 0) || !util.IsFinite(threshold) {
		return nil, util.NewErrorf(util.ErrBadParamInput, "merge threshold must be a positive number, got %v", threshold)
	}
	return &Clusterer{threshold: threshold, log: log}, nil
}

func (c *Clusterer) GetThreshold() float64 {
	return c.threshold
}

// Result. clusters are numbered 0..k-1 in order of their first member in the input.
type Result struct {
	centroids  []orb.Point
	sizes      []int
	assignment []int
}

func (r *Result) NumberOfClusters() int {
	return len(r.centroids)
}

func (r *Result) GetCentroid(cluster int) orb.Point {
	return r.centroids[cluster]
}

func (r *Result) GetCentroids() []orb.Point {
	return r.centroids
}

func (r *Result) GetSize(cluster int) int {
	return r.sizes[cluster]
}

// GetAssignment. cluster of the i-th input point, Unassigned for points without a valid coordinate
func (r *Result) GetAssignment(i int) int {
	return r.assignment[i]
}

/*
Cluster. complete-linkage agglomerative clustering of points with a fixed distance threshold.

the grid pass first splits the input into single-linkage components (pairs closer than the
threshold, chained). two clusters can only merge when every cross pair is closer than the
threshold, so no complete-linkage cluster spans two components and each component is clustered
on its own. the partition is a pure function of the input order and the threshold.
*/
func (c *Clusterer) Cluster(points []orb.Point) *Result {
	n := len(points)
	valid := make([]bool, n)
	numInvalid := 0
	for i, p := range points {
		valid[i] = geo.IsValidPoint(p)
		if !valid[i] {
			numInvalid++
			c.log.Warn("skipping endpoint without a valid coordinate",
				zap.Int("endpoint", i), zap.String("coordinate", fmt.Sprintf("%v", p)))
		}
	}

	thresholdSq := c.threshold * c.threshold
	sh := newSpatialHash(c.threshold, points, valid)
	ds := sh.singleLinkageComponents(points, valid, thresholdSq)

	// members of every component in ascending point order, components keyed by root
	componentOf := make(map[int]int, n)
	components := make([][]int, 0)
	for i := 0; i < n; i++ {
		if !valid[i] {
			continue
		}
		root := ds.find(i)
		ci, ok := componentOf[root]
		if !ok {
			ci = len(components)
			componentOf[root] = ci
			components = append(components, nil)
		}
		components[ci] = append(components[ci], i)
	}

	// leader[i] = smallest point index of the cluster containing i
	leader := make([]int, n)
	for i := range leader {
		leader[i] = Unassigned
	}
	largest := 0
	for _, members := range components {
		if len(members) > largest {
			largest = len(members)
		}
		owner := completeLinkage(points, members, thresholdSq)
		for slot, o := range owner {
			leader[members[slot]] = members[o]
		}
	}

	res := &Result{
		centroids:  make([]orb.Point, 0),
		sizes:      make([]int, 0),
		assignment: make([]int, n),
	}
	clusterOfLeader := make(map[int]int, n)
	sums := make([]orb.Point, 0)
	for i := 0; i < n; i++ {
		if leader[i] == Unassigned {
			res.assignment[i] = Unassigned
			continue
		}
		k, ok := clusterOfLeader[leader[i]]
		if !ok {
			k = len(sums)
			clusterOfLeader[leader[i]] = k
			sums = append(sums, orb.Point{0, 0})
			res.sizes = append(res.sizes, 0)
		}
		res.assignment[i] = k
		sums[k][0] += points[i][0]
		sums[k][1] += points[i][1]
		res.sizes[k]++
	}

	res.centroids = make([]orb.Point, len(sums))
	for k, s := range sums {
		size := float64(res.sizes[k])
		res.centroids[k] = orb.Point{s[0] / size, s[1] / size}
	}

	c.log.Info("endpoint clustering done",
		zap.Int("endpoints", n), zap.Int("invalid", numInvalid),
		zap.Int("components", len(components)), zap.Int("largestComponent", largest),
		zap.Int("clusters", len(res.centroids)), zap.Float64("threshold", c.threshold))
	return res
}
