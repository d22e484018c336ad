package clustering

import (
	"math"

	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/paulmach/orb"
)

type cellKey struct {
	cx, cy int64
}

// spatialHash. uniform grid with cell size equal to the merge threshold, so every pair of points
// closer than the threshold lies in the same or in adjacent cells.
type spatialHash struct {
	cellSize float64
	cells    map[cellKey][]int
}

func newSpatialHash(cellSize float64, points []orb.Point, valid []bool) *spatialHash {
	sh := &spatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int, len(points)),
	}
	for i, p := range points {
		if !valid[i] {
			continue
		}
		k := sh.key(p)
		sh.cells[k] = append(sh.cells[k], i)
	}
	return sh
}

func (sh *spatialHash) key(p orb.Point) cellKey {
	return cellKey{
		cx: int64(math.Floor(p[0] / sh.cellSize)),
		cy: int64(math.Floor(p[1] / sh.cellSize)),
	}
}

// singleLinkageComponents. union every pair of points with squared distance below maxDistSq.
// complete-linkage clusters never cross the resulting components.
func (sh *spatialHash) singleLinkageComponents(points []orb.Point, valid []bool, maxDistSq float64) *disjointSet {
	ds := newDisjointSet(len(points))
	for i, p := range points {
		if !valid[i] {
			continue
		}
		k := sh.key(p)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for _, j := range sh.cells[cellKey{k.cx + dx, k.cy + dy}] {
					if j <= i {
						continue
					}
					if geo.DistanceSquared(p, points[j]) < maxDistSq {
						ds.union(i, j)
					}
				}
			}
		}
	}
	return ds
}
