package datastructure

import (
	"github.com/paulmach/orb"
)

// RawSegment. road centerline piece produced by the segment splitting stage. only its two
// endpoints take part in the network topology.
type RawSegment struct {
	Start  orb.Point
	End    orb.Point
	Length float64
	SegmentAttributes
}

// NodeRecord. row of the nodes table: node_id, x, y
type NodeRecord struct {
	ID int64
	X  float64
	Y  float64
}

// EdgeRecord. row of the edges table. every segment gets a row, including the ones too narrow
// to become a graph edge.
type EdgeRecord struct {
	ID        int64
	StartNode int64
	EndNode   int64
	Length    float64
	SegmentAttributes
}

type Building struct {
	ID          int64
	Centroid    orb.Point
	HasCentroid bool
	Vacant      bool // akiya
}

type Shelter struct {
	ID       int64
	Location orb.Point
}
