// Package network holds the directed segment-to-segment distance structure
// of the river network and the neighbor-search gap filler that imputes
// missing segment attributes from it.
package network

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
)

// Neighbor is one connected segment as seen from a row segment. DistM is
// signed metres: positive lies upstream of the row segment, negative
// downstream. dist(a,b) = -dist(b,a) is a precondition of the source matrix,
// not re-verified here.
type Neighbor struct {
	ID    string
	DistM float64
}

// DistanceMatrix is the sparse form of the dense signed-distance table:
// per segment, its connected neighbors sorted ascending on |DistM|, ties on
// ID. Built once and shared read-only.
type DistanceMatrix struct {
	Nbrs map[string][]Neighbor
}

// New builds a DistanceMatrix from per-segment neighbor lists, dropping
// non-finite (unconnected) entries and sorting each row.
func New(nbrs map[string][]Neighbor) *DistanceMatrix {
	m := make(map[string][]Neighbor, len(nbrs))
	for id, ns := range nbrs {
		row := make([]Neighbor, 0, len(ns))
		for _, n := range ns {
			if math.IsInf(n.DistM, 0) || math.IsNaN(n.DistM) {
				continue
			}
			row = append(row, n)
		}
		sortRow(row)
		m[id] = row
	}
	return &DistanceMatrix{Nbrs: m}
}

func sortRow(row []Neighbor) {
	sort.Slice(row, func(i, j int) bool {
		ai, aj := math.Abs(row[i].DistM), math.Abs(row[j].DistM)
		if ai != aj {
			return ai < aj
		}
		return row[i].ID < row[j].ID
	})
}

// Row returns the sorted neighbor list for a segment (nil if the segment is
// not in the matrix). The returned slice is shared; callers must not modify.
func (dm *DistanceMatrix) Row(id string) []Neighbor { return dm.Nbrs[id] }

// ReadCSV loads the dense matrix: header row "from,<id>,<id>,..", one data
// row per segment, cells signed metres with any non-numeric or non-finite
// cell taken as unconnected. (Read with encoding/csv directly: the header
// carries the target IDs, which mmio's reader drops.)
func ReadCSV(fp string) (*DistanceMatrix, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("network.ReadCSV: %v", err)
	}
	defer f.Close()

	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("network.ReadCSV %s: %v", fp, err)
	}
	if len(recs) < 2 {
		return nil, fmt.Errorf("network.ReadCSV %s: no data rows", fp)
	}

	hdr := recs[0]
	nbrs := make(map[string][]Neighbor, len(recs)-1)
	for _, rec := range recs[1:] {
		if len(rec) != len(hdr) {
			return nil, fmt.Errorf("network.ReadCSV %s: ragged row %q", fp, rec[0])
		}
		from := rec[0]
		row := make([]Neighbor, 0, len(rec)-1)
		for j := 1; j < len(rec); j++ {
			if hdr[j] == from {
				continue
			}
			d, err := strconv.ParseFloat(rec[j], 64)
			if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
				continue // unconnected
			}
			row = append(row, Neighbor{ID: hdr[j], DistM: d})
		}
		sortRow(row)
		nbrs[from] = row
	}
	return &DistanceMatrix{Nbrs: nbrs}, nil
}

func (dm *DistanceMatrix) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" DistanceMatrix.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(dm); err != nil {
		return fmt.Errorf(" DistanceMatrix.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGobDistanceMatrix(fp string) (*DistanceMatrix, error) {
	var dm DistanceMatrix
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&dm); err != nil {
		return nil, err
	}
	f.Close()
	return &dm, nil
}
