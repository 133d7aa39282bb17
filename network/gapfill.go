package network

import (
	"fmt"
	"math"
	"sort"
)

// Direction selects which neighbors may donate a value during gap filling.
type Direction int

const (
	Upstream   Direction = iota // strictly positive signed distance
	Downstream                  // strictly negative signed distance
	Nearest                     // either, smallest |distance| first
)

func (d Direction) String() string {
	switch d {
	case Upstream:
		return "upstream"
	case Downstream:
		return "downstream"
	case Nearest:
		return "nearest"
	}
	return "unknown"
}

// ParseDirection validates a configuration string eagerly, before any
// computation.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "upstream":
		return Upstream, nil
	case "downstream":
		return Downstream, nil
	case "nearest":
		return Nearest, nil
	}
	return 0, fmt.Errorf("ParseDirection: %q not in {upstream, downstream, nearest}", s)
}

// Candidates filters and orders a segment's neighbors for a traversal
// direction. Rows are pre-sorted ascending |distance| (ties on ID), so the
// sign filter alone yields nearest-first in every mode.
func (dm *DistanceMatrix) Candidates(id string, dir Direction) []Neighbor {
	row := dm.Row(id)
	out := make([]Neighbor, 0, len(row))
	for _, n := range row {
		switch dir {
		case Upstream:
			if n.DistM > 0 {
				out = append(out, n)
			}
		case Downstream:
			if n.DistM < 0 {
				out = append(out, n)
			}
		default:
			out = append(out, n)
		}
	}
	return out
}

// FillResult is the outcome of one gap-fill pass. Values is a full copy of
// the input column with the originally missing entries imputed; Flags holds
// a provenance note per imputed segment only.
type FillResult struct {
	Values                     map[string]float64
	Flags                      map[string]string
	NFromNeighbor, NFromMedian int
}

// FillMissing imputes the missing entries of a segment attribute column from
// the nearest valid neighbor in the requested direction, falling back to the
// global median of the original (pre-fill) column. Originally present values
// are never touched; donors are always read from the original column, so a
// filled value can never chain into another fill. attr names the column in
// the provenance flags.
func FillMissing(attr string, vals map[string]float64, dm *DistanceMatrix, dir Direction) FillResult {
	med := median(vals)

	out := FillResult{
		Values: make(map[string]float64, len(vals)),
		Flags:  make(map[string]string),
	}
	for id, v := range vals {
		out.Values[id] = v
	}

	// deterministic fill order
	ids := make([]string, 0, len(vals))
	for id := range vals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if !math.IsNaN(vals[id]) {
			continue
		}
		if n, ok := nearestValid(dm.Candidates(id, dir), vals); ok {
			out.Values[id] = vals[n.ID]
			out.Flags[id] = fmt.Sprintf("%s was filled from neighbors: %s (%.1f km away).", attr, n.ID, math.Abs(n.DistM)/1000.)
			out.NFromNeighbor++
			continue
		}
		out.Values[id] = med
		out.Flags[id] = fmt.Sprintf("%s was filled using median value from non-NA segments.", attr)
		out.NFromMedian++
	}
	return out
}

// nearestValid walks the direction-ordered candidates and returns the first
// whose own value is present.
func nearestValid(cands []Neighbor, vals map[string]float64) (Neighbor, bool) {
	for _, n := range cands {
		if v, ok := vals[n.ID]; ok && !math.IsNaN(v) {
			return n, true
		}
	}
	return Neighbor{}, false
}

// median of the non-missing entries; the conventional mid-point median (the
// mean of the two central order statistics for even counts). NaN when the
// column holds no values at all.
func median(vals map[string]float64) float64 {
	x := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			x = append(x, v)
		}
	}
	if len(x) == 0 {
		return math.NaN()
	}
	sort.Float64s(x)
	m := len(x) / 2
	if len(x)%2 == 1 {
		return x[m]
	}
	return (x[m-1] + x[m]) / 2.
}
