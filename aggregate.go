package confinement

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ReachRecord is one aggregation input row: a COMID, its channel length and
// the attribute value being aggregated (NaN = missing).
type ReachRecord struct {
	COMID    string
	LengthKm float64
	Value    float64
}

// SegmentSummary is one aggregation output row. Confinement is the
// length-weighted mean over member reaches carrying a value, NaN when none
// do. Flag is non-empty when Coverage < 0.70 (the boundary itself is clean).
type SegmentSummary struct {
	SegID           string
	TotalLengthKm   float64
	MissingLengthKm float64
	Coverage        float64
	Confinement     float64
	Flag            string
}

// Aggregate rolls per-COMID records up to NHM segments under the crosswalk
// scheme named by key (KeyPRMS or KeySegidNat). COMIDs absent from the
// crosswalk drop out silently. The weighted mean excludes missing members
// from numerator and denominator both; a segment where every member is
// missing gets Coverage 0 and a missing Confinement, not zero. Inputs are
// never mutated. Output is sorted on SegID.
func Aggregate(recs []ReachRecord, xw *Crosswalk, key string) ([]SegmentSummary, error) {
	if key != KeyPRMS && key != KeySegidNat {
		return nil, fmt.Errorf("Aggregate: unknown grouping key %q", key)
	}

	grps := make(map[string][]ReachRecord)
	for _, r := range recs {
		sid, ok := xw.SegID(r.COMID, key)
		if !ok {
			continue
		}
		grps[sid] = append(grps[sid], r)
	}

	out := make([]SegmentSummary, 0, len(grps))
	for sid, g := range grps {
		var tot, miss float64
		var vals, wgts []float64
		for _, r := range g {
			tot += r.LengthKm
			if isna(r.Value) {
				miss += r.LengthKm
			} else {
				vals = append(vals, r.Value)
				wgts = append(wgts, r.LengthKm)
			}
		}

		s := SegmentSummary{SegID: sid, TotalLengthKm: tot, MissingLengthKm: miss, Coverage: NA(), Confinement: NA()}
		if tot > 0 {
			s.Coverage = 1. - miss/tot
		}
		if s.Coverage > 0 && len(vals) > 0 {
			s.Confinement = stat.Mean(vals, wgts)
		}
		if s.Coverage < covThresh { // NaN coverage stays unflagged
			s.Flag = fmt.Sprintf("confinement based on %.0f%% of segment length", s.Coverage*100.)
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SegID < out[j].SegID })
	return out, nil
}

// ToRecords pairs reach width estimates with their channel lengths for
// aggregation. Lengths are looked up by COMID; a reach with no length entry
// is skipped.
func ToRecords(ws []ReachWidth, lengthKm map[string]float64) []ReachRecord {
	out := make([]ReachRecord, 0, len(ws))
	for _, w := range ws {
		l, ok := lengthKm[w.COMID]
		if !ok {
			continue
		}
		out = append(out, ReachRecord{COMID: w.COMID, LengthKm: l, Value: w.Confinement})
	}
	return out
}
