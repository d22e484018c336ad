package pipeline

import (
	"github.com/spf13/viper"
)

const (
	SourceSegments = "segments" // road segments geojson, endpoints are clustered
	SourceOSM      = "osm"      // openstreetmap pbf extract, endpoints are clustered
	SourceTables   = "tables"   // nodes.csv + edges.csv
	SourceNetwork  = "network"  // bzip2 network snapshot
)

type Config struct {
	Source string

	SegmentsPath  string
	OsmPath       string
	NodesPath     string
	EdgesPath     string
	NetworkPath   string
	BuildingsPath string
	SheltersPath  string

	ClusterThreshold float64
	NumWorkers       int
	SpatialIndex     string

	NodesOutPath   string
	EdgesOutPath   string
	NetworkOutPath string
	RoutesOutPath  string
	SummaryOutPath string
}

// ConfigFromViper. config from the keys registered by util.SetDefaults
func ConfigFromViper() Config {
	return Config{
		Source:           viper.GetString("input.source"),
		SegmentsPath:     viper.GetString("input.segments"),
		OsmPath:          viper.GetString("input.osm"),
		NodesPath:        viper.GetString("input.nodes"),
		EdgesPath:        viper.GetString("input.edges"),
		NetworkPath:      viper.GetString("input.network"),
		BuildingsPath:    viper.GetString("input.buildings"),
		SheltersPath:     viper.GetString("input.shelters"),
		ClusterThreshold: viper.GetFloat64("cluster.threshold"),
		NumWorkers:       viper.GetInt("routing.workers"),
		SpatialIndex:     viper.GetString("routing.spatial_index"),
		NodesOutPath:     viper.GetString("output.nodes"),
		EdgesOutPath:     viper.GetString("output.edges"),
		NetworkOutPath:   viper.GetString("output.network"),
		RoutesOutPath:    viper.GetString("output.routes"),
		SummaryOutPath:   viper.GetString("output.summary"),
	}
}
