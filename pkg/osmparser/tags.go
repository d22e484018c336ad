package osmparser

import (
	"strconv"
	"strings"

	"github.com/lintang-b-s/evacx/pkg"
	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/paulmach/osm"
)

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	return pkg.GetHighwayType(highway) != pkg.UNKNOWN
}

func isRestricted(value string) bool {
	if value == "no" || value == "private" || value == "restricted" {
		return true
	}
	return false
}

func isAllowed(value string) bool {
	switch value {
	case "yes", "designated", "permissive", "destination":
		return true
	}
	return false
}

// parseWidth. osm width values like "4", "3.5 m", "2,5"; feet and inches are not supported
func parseWidth(value string) (float64, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.TrimSuffix(value, "m")
	value = strings.TrimSpace(strings.Replace(value, ",", ".", 1))
	if value == "" {
		return 0, false
	}
	w, err := strconv.ParseFloat(value, 64)
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

/*
wayAttributes. segment attributes of an accepted way.

road width comes from the width tag, then est_width, then the default of the highway class. car
access is denied on pedestrian highway classes and by access, vehicle, motor_vehicle or motorcar
restrictions. pedestrians may use everything except motorways and trunks unless the foot tag says
otherwise. collapse width reduction is not part of osm data and is left 0.
*/
func wayAttributes(way *osm.Way) datastructure.SegmentAttributes {
	hw := pkg.GetHighwayType(way.Tags.Find("highway"))

	width, ok := parseWidth(way.Tags.Find("width"))
	if !ok {
		width, ok = parseWidth(way.Tags.Find("est_width"))
	}
	if !ok {
		width = pkg.DefaultRoadWidth(hw)
	}

	carAccess := pkg.IsCarRoad(hw)
	for _, key := range []string{"access", "vehicle", "motor_vehicle", "motorcar"} {
		v := way.Tags.Find(key)
		if isRestricted(v) {
			carAccess = false
		} else if isAllowed(v) && key != "access" && pkg.IsCarRoad(hw) {
			carAccess = true
		}
	}

	pedAccess := hw != pkg.MOTORWAY && hw != pkg.TRUNK && hw != pkg.MOTORWAY_LINK && hw != pkg.TRUNK_LINK
	if foot := way.Tags.Find("foot"); isRestricted(foot) {
		pedAccess = false
	} else if isAllowed(foot) {
		pedAccess = true
	} else if isRestricted(way.Tags.Find("access")) {
		pedAccess = false
	}

	return datastructure.SegmentAttributes{
		RouteID:   strconv.FormatInt(int64(way.ID), 10),
		RoadWidth: width,
		CarAccess: carAccess,
		PedAccess: pedAccess,
	}
}
