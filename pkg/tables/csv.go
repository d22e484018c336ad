package tables

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/evacx/pkg/datastructure"
	"github.com/lintang-b-s/evacx/pkg/geo"
	"github.com/lintang-b-s/evacx/pkg/util"
	"github.com/paulmach/orb"
)

const (
	colNodeID = "node_id"
	colX      = "x"
	colY      = "y"

	colEdgeID         = "edge_id"
	colStartNode      = "start_node"
	colEndNode        = "end_node"
	colLength         = "length"
	colRoadWidth      = "road_width"
	colWidthReduction = "max_width_reduction"
	colMaxWidth       = "max_width" // older tables name the reduction column like the segment property
	colCarAccess      = "car_access"
	colRouteID        = "route_id"
	colPedAccess      = "ped_access"
)

var (
	nodeHeader = []string{colNodeID, colX, colY}
	edgeHeader = []string{colEdgeID, colStartNode, colEndNode, colLength, colRoadWidth, colWidthReduction,
		colCarAccess, colRouteID, colPedAccess}
)

// csvTable. rows of a csv file with a header, columns looked up by name.
type csvTable struct {
	layer   string
	columns map[string]int
	reader  *csv.Reader
	line    int
}

func newCSVTable(r io.Reader, layer string) (*csvTable, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrMalformedInput, "%s: reading header", layer)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	return &csvTable{layer: layer, columns: columns, reader: reader, line: 1}, nil
}

func (t *csvTable) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			return util.NewErrorf(util.ErrMalformedInput, "%s: missing column %q", t.layer, name)
		}
	}
	return nil
}

func (t *csvTable) has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// next. nil record at the end of the table
func (t *csvTable) next() ([]string, error) {
	record, err := t.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	t.line++
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrMalformedInput, "%s: line %d", t.layer, t.line)
	}
	return record, nil
}

func (t *csvTable) field(record []string, name string) string {
	i, ok := t.columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (t *csvTable) malformed(err error, name string) error {
	return util.WrapErrorf(err, util.ErrMalformedInput, "%s: line %d, column %q", t.layer, t.line, name)
}

func (t *csvTable) int64Field(record []string, name string) (int64, error) {
	v, err := strconv.ParseInt(t.field(record, name), 10, 64)
	if err != nil {
		// ids exported by gis tools come as 12.0
		f, ferr := util.StringToFloat64(t.field(record, name))
		if ferr != nil || f != float64(int64(f)) {
			return 0, t.malformed(err, name)
		}
		return int64(f), nil
	}
	return v, nil
}

func (t *csvTable) floatField(record []string, name string) (float64, error) {
	v, err := util.StringToFloat64(t.field(record, name))
	if err != nil {
		return 0, t.malformed(err, name)
	}
	return v, nil
}

// optionalFloatField. empty cells read as def
func (t *csvTable) optionalFloatField(record []string, name string, def float64) (float64, error) {
	if t.field(record, name) == "" {
		return def, nil
	}
	return t.floatField(record, name)
}

func (t *csvTable) boolField(record []string, name string) (bool, error) {
	v, err := util.ParseBool(t.field(record, name))
	if err != nil {
		return false, t.malformed(err, name)
	}
	return v, nil
}

func ReadNodes(path string) ([]datastructure.NodeRecord, error) {
	f, err := openInput(path, "nodes table")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readNodes(f)
}

func readNodes(r io.Reader) ([]datastructure.NodeRecord, error) {
	t, err := newCSVTable(r, "nodes table")
	if err != nil {
		return nil, err
	}
	if err := t.require(nodeHeader...); err != nil {
		return nil, err
	}

	nodes := make([]datastructure.NodeRecord, 0)
	for {
		record, err := t.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		var n datastructure.NodeRecord
		if n.ID, err = t.int64Field(record, colNodeID); err != nil {
			return nil, err
		}
		if n.X, err = t.floatField(record, colX); err != nil {
			return nil, err
		}
		if n.Y, err = t.floatField(record, colY); err != nil {
			return nil, err
		}
		if !geo.IsValidPoint(orb.Point{n.X, n.Y}) {
			return nil, util.NewErrorf(util.ErrMalformedInput, "%s: line %d, invalid coordinate (%v, %v)",
				t.layer, t.line, n.X, n.Y)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func ReadEdges(path string) ([]datastructure.EdgeRecord, error) {
	f, err := openInput(path, "edges table")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readEdges(f)
}

func readEdges(r io.Reader) ([]datastructure.EdgeRecord, error) {
	t, err := newCSVTable(r, "edges table")
	if err != nil {
		return nil, err
	}
	if err := t.require(colEdgeID, colStartNode, colEndNode, colLength, colRoadWidth, colCarAccess); err != nil {
		return nil, err
	}
	reductionCol := colWidthReduction
	if !t.has(colWidthReduction) {
		if !t.has(colMaxWidth) {
			return nil, util.NewErrorf(util.ErrMalformedInput, "edges table: missing column %q", colWidthReduction)
		}
		reductionCol = colMaxWidth
	}

	edges := make([]datastructure.EdgeRecord, 0)
	for {
		record, err := t.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		var e datastructure.EdgeRecord
		if e.ID, err = t.int64Field(record, colEdgeID); err != nil {
			return nil, err
		}
		if e.StartNode, err = t.int64Field(record, colStartNode); err != nil {
			return nil, err
		}
		if e.EndNode, err = t.int64Field(record, colEndNode); err != nil {
			return nil, err
		}
		if e.Length, err = t.floatField(record, colLength); err != nil {
			return nil, err
		}
		if e.RoadWidth, err = t.floatField(record, colRoadWidth); err != nil {
			return nil, err
		}
		if e.WidthReduction, err = t.optionalFloatField(record, reductionCol, 0); err != nil {
			return nil, err
		}
		if e.CarAccess, err = t.boolField(record, colCarAccess); err != nil {
			return nil, err
		}
		if t.has(colPedAccess) {
			if e.PedAccess, err = t.boolField(record, colPedAccess); err != nil {
				return nil, err
			}
		}
		e.RouteID = t.field(record, colRouteID)
		edges = append(edges, e)
	}
	return edges, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(path string, header []string, rows func(w *csv.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "creating %s", path)
	}
	defer util.CloseFile(f, &err)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := rows(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func WriteNodes(path string, nodes []datastructure.NodeRecord) error {
	return writeCSV(path, nodeHeader, func(w *csv.Writer) error {
		for _, n := range nodes {
			if err := w.Write([]string{strconv.FormatInt(n.ID, 10), formatFloat(n.X), formatFloat(n.Y)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func WriteEdges(path string, edges []datastructure.EdgeRecord) error {
	return writeCSV(path, edgeHeader, func(w *csv.Writer) error {
		for _, e := range edges {
			if err := w.Write([]string{
				strconv.FormatInt(e.ID, 10),
				strconv.FormatInt(e.StartNode, 10),
				strconv.FormatInt(e.EndNode, 10),
				formatFloat(e.Length),
				formatFloat(e.RoadWidth),
				formatFloat(e.WidthReduction),
				strconv.FormatBool(e.CarAccess),
				e.RouteID,
				strconv.FormatBool(e.PedAccess),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
