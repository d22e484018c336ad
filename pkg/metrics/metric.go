// Package metrics aggregates a batch of route records into summary statistics.
package metrics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/evacx/pkg/engine/routing"
	"github.com/lintang-b-s/evacx/pkg/util"
)

type Summary struct {
	NumBuildings   int `json:"buildings"`
	NumVacant      int `json:"vacant"`
	NumRouted      int `json:"routed"`
	NumUnreachable int `json:"unreachable"`
	NumNoNode      int `json:"noNode"`
	NumWalkLocked  int `json:"walkLocked"`

	// over routed buildings only
	MeanTravelTime float64 `json:"meanTravelTime"`
	MaxTravelTime  float64 `json:"maxTravelTime"`
	MeanDistance   float64 `json:"meanDistance"`
	MaxDistance    float64 `json:"maxDistance"`

	NumEdges30km  int `json:"edges30km"`
	NumEdges15km  int `json:"edges15km"`
	NumEdges4_5km int `json:"edges4_5km"`
}

func Summarize(routes []routing.Route) *Summary {
	s := &Summary{NumBuildings: len(routes)}
	var sumTime, sumDist float64
	for _, r := range routes {
		switch r.Status {
		case routing.VACANT:
			s.NumVacant++
		case routing.NO_NODE:
			s.NumNoNode++
		case routing.UNREACHABLE:
			s.NumUnreachable++
		case routing.ROUTED:
			s.NumRouted++
			if r.WalkLocked {
				s.NumWalkLocked++
			}
			sumTime += r.TotalTime
			sumDist += r.TotalDistance
			s.MaxTravelTime = math.Max(s.MaxTravelTime, r.TotalTime)
			s.MaxDistance = math.Max(s.MaxDistance, r.TotalDistance)
			s.NumEdges30km += len(r.Edges30km)
			s.NumEdges15km += len(r.Edges15km)
			s.NumEdges4_5km += len(r.Edges4_5km)
		}
	}
	if s.NumRouted > 0 {
		s.MeanTravelTime = sumTime / float64(s.NumRouted)
		s.MeanDistance = sumDist / float64(s.NumRouted)
	}
	return s
}

// WalkLockedShare. share of routed buildings whose route ends on foot
func (s *Summary) WalkLockedShare() float64 {
	if s.NumRouted == 0 {
		return 0
	}
	return float64(s.NumWalkLocked) / float64(s.NumRouted)
}

// fields in file order
func (s *Summary) entries() []summaryEntry {
	return []summaryEntry{
		{"buildings", intField(&s.NumBuildings)},
		{"vacant", intField(&s.NumVacant)},
		{"routed", intField(&s.NumRouted)},
		{"unreachable", intField(&s.NumUnreachable)},
		{"no_node", intField(&s.NumNoNode)},
		{"walk_locked", intField(&s.NumWalkLocked)},
		{"mean_travel_time", floatField(&s.MeanTravelTime)},
		{"max_travel_time", floatField(&s.MaxTravelTime)},
		{"mean_distance", floatField(&s.MeanDistance)},
		{"max_distance", floatField(&s.MaxDistance)},
		{"edges_30km", intField(&s.NumEdges30km)},
		{"edges_15km", intField(&s.NumEdges15km)},
		{"edges_4_5km", intField(&s.NumEdges4_5km)},
	}
}

type summaryEntry struct {
	key   string
	field summaryField
}

type summaryField struct {
	format func() string
	parse  func(string) error
}

func intField(v *int) summaryField {
	return summaryField{
		format: func() string { return strconv.Itoa(*v) },
		parse: func(s string) (err error) {
			*v, err = strconv.Atoi(s)
			return err
		},
	}
}

func floatField(v *float64) summaryField {
	return summaryField{
		format: func() string { return strconv.FormatFloat(*v, 'f', -1, 64) },
		parse: func(s string) (err error) {
			*v, err = strconv.ParseFloat(s, 64)
			return err
		},
	}
}

// WriteToFile. one "key value" line per statistic
func (s *Summary) WriteToFile(filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer util.CloseFile(f, &err)

	w := bufio.NewWriter(f)
	for _, e := range s.entries() {
		if _, err := fmt.Fprintf(w, "%s %s\n", e.key, e.field.format()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "walk_locked_share %s\n",
		strconv.FormatFloat(util.RoundFloat(s.WalkLockedShare(), 4), 'f', -1, 64)); err != nil {
		return err
	}
	return w.Flush()
}

// ReadFromFile. inverse of WriteToFile, unknown keys are ignored
func ReadFromFile(filename string) (*Summary, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := &Summary{}
	fields := make(map[string]summaryField)
	for _, e := range s.entries() {
		fields[e.key] = e.field
	}

	r := bufio.NewReader(f)
	for {
		line, err := util.ReadLine(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if len(parts) != 2 {
			return nil, util.NewErrorf(util.ErrMalformedInput, "summary: invalid line %q", line)
		}
		field, ok := fields[parts[0]]
		if !ok {
			continue
		}
		if err := field.parse(parts[1]); err != nil {
			return nil, util.WrapErrorf(err, util.ErrMalformedInput, "summary: %s", parts[0])
		}
	}
	return s, nil
}
