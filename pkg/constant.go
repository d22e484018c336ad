package pkg

const (
	INF_WEIGHT float64 = 1e15

	// speed tiers in km/h
	CAR_SPEED_30KM   = 30.0
	CAR_SPEED_15KM   = 15.0
	WALK_SPEED_4_5KM = 4.5

	// residual width (meter) lower bounds of each speed tier
	MIN_WIDTH_CAR_30KM = 2.5
	MIN_WIDTH_CAR_15KM = 1.5
	MIN_WIDTH_PASSABLE = 0.5

	DEFAULT_MERGE_RADIUS = 1.0 // meter, complete-linkage threshold for endpoint clustering
)

const (
	DEBUG = false
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	FOOTWAY        OsmHighwayType = 16
	PEDESTRIAN     OsmHighwayType = 17
	PATH           OsmHighwayType = 18
	STEPS          OsmHighwayType = 19
	UNKNOWN        OsmHighwayType = 20
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "unclassified":
		return UNCLASSIFIED
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "footway":
		return FOOTWAY
	case "pedestrian":
		return PEDESTRIAN
	case "path":
		return PATH
	case "steps":
		return STEPS
	default:
		return UNKNOWN
	}
}

// DefaultRoadWidth. carriageway width (meter) assumed when a way has no width tag
func DefaultRoadWidth(hw OsmHighwayType) float64 {
	switch hw {
	case MOTORWAY, TRUNK:
		return 10.0
	case PRIMARY, MOTORWAY_LINK, TRUNK_LINK:
		return 8.0
	case SECONDARY, PRIMARY_LINK:
		return 7.0
	case TERTIARY, SECONDARY_LINK, TERTIARY_LINK:
		return 6.0
	case RESIDENTIAL, UNCLASSIFIED, ROAD:
		return 4.0
	case SERVICE, LIVING_STREET, TRACK:
		return 3.0
	case PEDESTRIAN:
		return 2.0
	case FOOTWAY, PATH, STEPS:
		return 1.2
	default:
		return 3.0
	}
}

// IsCarRoad. false for highway classes that never carry cars regardless of access tags
func IsCarRoad(hw OsmHighwayType) bool {
	switch hw {
	case FOOTWAY, PEDESTRIAN, PATH, STEPS:
		return false
	default:
		return true
	}
}
