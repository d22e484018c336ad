package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/evacx/pkg/costfunction"
	"github.com/lintang-b-s/evacx/pkg/util"
	"github.com/paulmach/orb"
)

/*
WriteGraph. bzip2 compressed text snapshot of the network:

	<numNodes> <numEdges>
	<nodeId> <x> <y>                                                  (numNodes lines)
	<edgeId> <from> <to> <length> <time> <class> <width> <reduction> <car> <ped> <quoted routeId>   (numEdges lines)

from/to are node indices, edges keep their insertion order so adjacency order survives a round trip.
*/
func (g *Graph) WriteGraph(filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer util.CloseFile(f, &err)

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", len(g.nodes), len(g.edges))

	for _, n := range g.nodes {
		xF := strconv.FormatFloat(n.pos[0], 'f', -1, 64)
		yF := strconv.FormatFloat(n.pos[1], 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", n.id, xF, yF)
	}

	for _, e := range g.edges {
		lengthF := strconv.FormatFloat(e.length, 'f', -1, 64)
		timeF := strconv.FormatFloat(e.travelTime, 'f', -1, 64)
		widthF := strconv.FormatFloat(e.attr.RoadWidth, 'f', -1, 64)
		reductionF := strconv.FormatFloat(e.attr.WidthReduction, 'f', -1, 64)

		fmt.Fprintf(w, "%d %d %d %s %s %d %s %s %t %t %s\n",
			e.id, e.from, e.to, lengthF, timeF, e.speedClass, widthF, reductionF,
			e.attr.CarAccess, e.attr.PedAccess, strconv.Quote(e.attr.RouteID))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return bz.Close()
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("invalid graph header %q", line)
	}

	numNodes, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, err
	}

	g := NewGraphWithSize(numNodes, numEdges)
	for i := 0; i < numNodes; i++ {
		nodeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		n, err := parseNode(nodeLine)
		if err != nil {
			return nil, fmt.Errorf("node line %d: %w", i+1, err)
		}
		if _, err := g.AddNode(n); err != nil {
			return nil, err
		}
	}

	for i := 0; i < numEdges; i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		e, err := parseEdge(edgeLine)
		if err != nil {
			return nil, fmt.Errorf("edge line %d: %w", i+1, err)
		}
		if _, err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func parseNode(line string) (Node, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return Node{}, fmt.Errorf("invalid node %q", line)
	}
	id, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return Node{}, err
	}
	x, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return Node{}, err
	}
	y, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Node{}, err
	}
	return NewNode(id, orb.Point{x, y}), nil
}

func parseEdge(line string) (Edge, error) {
	// route id is quoted and may contain spaces, so it is everything after the 10th separator
	tokens := strings.SplitN(line, " ", 11)
	if len(tokens) != 11 {
		return Edge{}, fmt.Errorf("invalid edge %q", line)
	}

	var (
		e   Edge
		err error
	)
	e.id, err = strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return Edge{}, err
	}
	from, err := strconv.ParseUint(tokens[1], 10, 32)
	if err != nil {
		return Edge{}, err
	}
	to, err := strconv.ParseUint(tokens[2], 10, 32)
	if err != nil {
		return Edge{}, err
	}
	e.from, e.to = Index(from), Index(to)

	floats := make([]float64, 0, 4)
	for _, tok := range []string{tokens[3], tokens[4], tokens[6], tokens[7]} {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Edge{}, err
		}
		floats = append(floats, v)
	}
	e.length, e.travelTime = floats[0], floats[1]
	e.attr.RoadWidth, e.attr.WidthReduction = floats[2], floats[3]

	class, err := strconv.ParseUint(tokens[5], 10, 8)
	if err != nil {
		return Edge{}, err
	}
	e.speedClass = costfunction.SpeedClass(class)

	e.attr.CarAccess, err = strconv.ParseBool(tokens[8])
	if err != nil {
		return Edge{}, err
	}
	e.attr.PedAccess, err = strconv.ParseBool(tokens[9])
	if err != nil {
		return Edge{}, err
	}
	e.attr.RouteID, err = strconv.Unquote(tokens[10])
	if err != nil {
		return Edge{}, err
	}
	return e, nil
}
