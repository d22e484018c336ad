package tables

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/engine/routing"
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/lintang-b-s/evacx/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
)

func readFeatureCollection(path, layer string) (*geojson.FeatureCollection, error) {
	data, err := readInput(path, layer)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrMalformedInput, "%s %s", layer, path)
	}
	return fc, nil
}

// property accessors tolerant to the types gis exporters use: numbers, numeric strings, 0/1 flags.

func propFloat(props geojson.Properties, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := util.StringToFloat64(v)
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func propInt(props geojson.Properties, key string) (int64, bool) {
	f, ok := propFloat(props, key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func propBool(props geojson.Properties, key string) bool {
	switch v := props[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		b, err := util.ParseBool(v)
		return err == nil && b
	default:
		return false
	}
}

func propString(props geojson.Properties, key string) string {
	switch v := props[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// featureID. id property, else the numeric feature id, else the 1-based feature position
func featureID(f *geojson.Feature, pos int) int64 {
	if id, ok := propInt(f.Properties, "id"); ok {
		return id
	}
	switch v := f.ID.(type) {
	case float64:
		if v == math.Trunc(v) {
			return int64(v)
		}
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return int64(pos + 1)
}

/*
ReadSegments. road segments layer after splitting and collapse overlay.

every LineString (or part of a MultiLineString) is one segment, its endpoints are the first and the
last vertex and its length the planar length of the line. missing road_width reads as NaN and
is classified impassable, a missing max_width (width reduction) reads as 0.
*/
func ReadSegments(path string, log *zap.Logger) ([]datastructure.RawSegment, error) {
	fc, err := readFeatureCollection(path, "road segments")
	if err != nil {
		return nil, err
	}

	segments := make([]datastructure.RawSegment, 0, len(fc.Features))
	for i, f := range fc.Features {
		var lines []orb.LineString
		switch g := f.Geometry.(type) {
		case orb.LineString:
			lines = []orb.LineString{g}
		case orb.MultiLineString:
			lines = g
		default:
			log.Warn("skipping road segment feature that is not a line", zap.Int("feature", i),
				zap.String("geometry", geometryType(f.Geometry)))
			continue
		}

		attr := segmentAttributes(f.Properties)
		if math.IsNaN(attr.RoadWidth) {
			log.Warn("road segment has no road_width", zap.Int("feature", i), zap.String("routeID", attr.RouteID))
		}
		for _, line := range lines {
			if len(line) == 0 {
				continue
			}
			segments = append(segments, datastructure.RawSegment{
				Start:             line[0],
				End:               line[len(line)-1],
				Length:            planar.Length(line),
				SegmentAttributes: attr,
			})
		}
	}
	log.Info("road segments read", zap.String("path", path), zap.Int("features", len(fc.Features)),
		zap.Int("segments", len(segments)))
	return segments, nil
}

func segmentAttributes(props geojson.Properties) datastructure.SegmentAttributes {
	attr := datastructure.SegmentAttributes{
		RouteID:   propString(props, "route_id"),
		RoadWidth: math.NaN(),
		CarAccess: propBool(props, "car_access"),
		PedAccess: propBool(props, "ped_access"),
	}
	if w, ok := propFloat(props, "road_width"); ok {
		attr.RoadWidth = w
	}
	if r, ok := propFloat(props, "max_width"); ok {
		attr.WidthReduction = r
	}
	return attr
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}

// ReadBuildings. building polygons with id and akiya (vacant) properties, centroid by planar area.
func ReadBuildings(path string, log *zap.Logger) ([]datastructure.Building, error) {
	fc, err := readFeatureCollection(path, "buildings")
	if err != nil {
		return nil, err
	}

	buildings := make([]datastructure.Building, 0, len(fc.Features))
	numNoCentroid := 0
	for i, f := range fc.Features {
		b := datastructure.Building{
			ID:     featureID(f, i),
			Vacant: propBool(f.Properties, "akiya"),
		}
		b.Centroid, b.HasCentroid = geo.Centroid(f.Geometry)
		if !b.HasCentroid {
			numNoCentroid++
		}
		buildings = append(buildings, b)
	}
	log.Info("buildings read", zap.String("path", path), zap.Int("buildings", len(buildings)),
		zap.Int("withoutCentroid", numNoCentroid))
	return buildings, nil
}

// ReadShelters. shelter points, non-point geometries are reduced to their centroid.
func ReadShelters(path string, log *zap.Logger) ([]datastructure.Shelter, error) {
	fc, err := readFeatureCollection(path, "shelters")
	if err != nil {
		return nil, err
	}

	shelters := make([]datastructure.Shelter, 0, len(fc.Features))
	for i, f := range fc.Features {
		var (
			loc orb.Point
			ok  bool
		)
		if p, isPoint := f.Geometry.(orb.Point); isPoint {
			loc, ok = p, true
		} else {
			loc, ok = geo.Centroid(f.Geometry)
		}
		if !ok {
			log.Warn("skipping shelter without geometry", zap.Int("feature", i))
			continue
		}
		shelters = append(shelters, datastructure.Shelter{ID: featureID(f, i), Location: loc})
	}
	log.Info("shelters read", zap.String("path", path), zap.Int("shelters", len(shelters)))
	return shelters, nil
}

// routeFeature. geojson feature whose geometry may be null
type routeFeature struct {
	Type       string             `json:"type"`
	Geometry   *geojson.Geometry  `json:"geometry"`
	Properties geojson.Properties `json:"properties"`
}

type routeFeatureCollection struct {
	Type     string         `json:"type"`
	Features []routeFeature `json:"features"`
}

/*
RouteProperties. attribute row of a route record. path, time and distance fields are null unless a
route was found, n_node is null when the building could not be snapped.
*/
func RouteProperties(r routing.Route) geojson.Properties {
	props := geojson.Properties{
		"r_id":    r.RouteID,
		"b_id":    r.BuildingID,
		"akiya":   r.Vacant,
		"r_found": r.Found,
		"n_node":  nil,
		"p_nodes": nil,
		"e_30km":  nil,
		"e_15km":  nil,
		"e_4_5km": nil,
		"walk_f":  r.WalkLocked,
		"t_time":  nil,
		"t_dist":  nil,
	}
	if r.HasStartNode {
		props["n_node"] = r.StartNode
	}
	if r.HasPath {
		props["p_nodes"] = util.JoinIDs(r.PathNodes, ";")
		props["e_30km"] = util.JoinIDs(r.Edges30km, ";")
		props["e_15km"] = util.JoinIDs(r.Edges15km, ";")
		props["e_4_5km"] = util.JoinIDs(r.Edges4_5km, ";")
		props["t_time"] = r.TotalTime
		props["t_dist"] = r.TotalDistance
	}
	return props
}

func WriteRoutes(path string, routes []routing.Route) (err error) {
	fc := routeFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]routeFeature, 0, len(routes)),
	}
	for _, r := range routes {
		feature := routeFeature{Type: "Feature", Properties: RouteProperties(r)}
		if len(r.Geometry) > 0 {
			feature.Geometry = geojson.NewGeometry(r.Geometry)
		}
		fc.Features = append(fc.Features, feature)
	}

	f, err := os.Create(path)
	if err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "creating %s", path)
	}
	defer util.CloseFile(f, &err)
	enc := json.NewEncoder(f)
	return enc.Encode(fc)
}
