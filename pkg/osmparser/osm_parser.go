// Package osmparser imports an OpenStreetMap extract as road segments for the evacuation network.
package osmparser

import (
	"context"
	"io"
	"math"
	"os"

	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/lintang-b-s/evacx/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type osmWay struct {
	nodes []int64
	attr  datastructure.SegmentAttributes
}

type OsmParser struct {
	wayNodes       map[int64]struct{}
	acceptedCoords map[int64]geo.Coordinate
	ways           []osmWay
	logger         *zap.Logger
}

func NewOsmParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodes:       make(map[int64]struct{}),
		acceptedCoords: make(map[int64]geo.Coordinate),
		ways:           make([]osmWay, 0),
		logger:         logger,
	}
}

/*
Parse. road segments of a pbf extract.

first pass collects the accepted highway ways and the nodes they reference, second pass reads the
coordinates of those nodes. every consecutive node pair of a way becomes one segment.
*/
func (p *OsmParser) Parse(ctx context.Context, mapFile string) ([]datastructure.RawSegment, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.WrapErrorf(err, util.ErrMissingInput, "osm extract %s", mapFile)
		}
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 0)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if p.AddWay(way) {
			countWays++
			if countWays%50000 == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, util.WrapErrorf(err, util.ErrMalformedInput, "osm extract %s", mapFile)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	scanner = osmpbf.New(ctx, f, 0)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true
	countNodes := 0
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		p.AddNode(node)
		countNodes++
		if countNodes%500000 == 0 {
			p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrMalformedInput, "osm extract %s", mapFile)
	}

	return p.BuildSegments(), nil
}

// AddWay. keep the way if it is a routable highway, false otherwise
func (p *OsmParser) AddWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}
	nodes := make([]int64, 0, len(way.Nodes))
	for _, n := range way.Nodes {
		nodes = append(nodes, int64(n.ID))
		p.wayNodes[int64(n.ID)] = struct{}{}
	}
	p.ways = append(p.ways, osmWay{nodes: nodes, attr: wayAttributes(way)})
	return true
}

// AddNode. record the coordinate of a node referenced by an accepted way
func (p *OsmParser) AddNode(node *osm.Node) {
	if _, ok := p.wayNodes[int64(node.ID)]; ok {
		p.acceptedCoords[int64(node.ID)] = geo.NewCoordinate(node.Lat, node.Lon)
	}
}

// origin. center of the bounding box of all accepted coordinates
func (p *OsmParser) origin() (float64, float64) {
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, c := range p.acceptedCoords {
		minLat, maxLat = math.Min(minLat, c.GetLat()), math.Max(maxLat, c.GetLat())
		minLon, maxLon = math.Min(minLon, c.GetLon()), math.Max(maxLon, c.GetLon())
	}
	if len(p.acceptedCoords) == 0 {
		return 0, 0
	}
	return (minLat + maxLat) / 2, (minLon + maxLon) / 2
}

/*
BuildSegments. segments in way order, projected to meters around the center of the extract. length
is the great-circle distance of the two nodes. pairs with a node missing from the extract
are skipped.
*/
func (p *OsmParser) BuildSegments() []datastructure.RawSegment {
	lat0, lon0 := p.origin()
	projection := geo.NewLocalProjection(lat0, lon0)

	segments := make([]datastructure.RawSegment, 0)
	numMissing := 0
	for _, way := range p.ways {
		for i := 0; i+1 < len(way.nodes); i++ {
			a, okA := p.acceptedCoords[way.nodes[i]]
			b, okB := p.acceptedCoords[way.nodes[i+1]]
			if !okA || !okB {
				numMissing++
				continue
			}
			segments = append(segments, datastructure.RawSegment{
				Start:             projection.Project(a.GetLat(), a.GetLon()),
				End:               projection.Project(b.GetLat(), b.GetLon()),
				Length:            geo.GreatCircleDistance(a, b),
				SegmentAttributes: way.attr,
			})
		}
	}

	p.logger.Info("openstreetmap segments built",
		zap.Int("ways", len(p.ways)), zap.Int("nodes", len(p.acceptedCoords)),
		zap.Int("segments", len(segments)), zap.Int("missingNodePairs", numMissing))
	return segments
}
