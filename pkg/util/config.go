package util

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

func ReadConfig(dir string) error {
	SetDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath(dir)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults + env are enough to run
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetDefaults() {
	viper.SetDefault("cluster.threshold", 1.0)
	viper.SetDefault("routing.workers", runtime.NumCPU())
	viper.SetDefault("routing.spatial_index", "rtree")

	viper.SetDefault("input.source", "tables")
	viper.SetDefault("input.segments", "./data/road_segments.geojson")
	viper.SetDefault("input.osm", "")
	viper.SetDefault("input.nodes", "./data/nodes.csv")
	viper.SetDefault("input.edges", "./data/edges.csv")
	viper.SetDefault("input.network", "")
	viper.SetDefault("input.buildings", "./data/buildings.geojson")
	viper.SetDefault("input.shelters", "./data/shelters.geojson")

	viper.SetDefault("output.nodes", "./data/nodes.csv")
	viper.SetDefault("output.edges", "./data/edges.csv")
	viper.SetDefault("output.network", "./data/network.graph")
	viper.SetDefault("output.routes", "./data/routes.geojson")
	viper.SetDefault("output.summary", "./data/summary.txt")

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("API_RATE_LIMIT", 50.0)
	viper.SetDefault("API_RATE_BURST", 100)
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "120s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
}
