// Package tables reads and writes the tabular inputs and outputs of the evacuation pipeline:
// nodes/edges CSV tables and the segments, buildings, shelters and routes GeoJSON layers.
package tables

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/lintang-b-s/evacx/pkg/util"
)

// openInput. a missing file is ErrMissingInput naming the layer, any other failure is wrapped as is.
func openInput(path, layer string) (*os.File, error) {
	if path == "" {
		return nil, util.NewErrorf(util.ErrMissingInput, "%s: no path configured", layer)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, util.WrapErrorf(err, util.ErrMissingInput, "%s %s", layer, path)
		}
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "opening %s %s", layer, path)
	}
	return f, nil
}

func readInput(path, layer string) ([]byte, error) {
	f, err := openInput(path, layer)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "reading %s %s", layer, path)
	}
	return data, nil
}
