package confinement

import "sort"

// FACETReach is one FACET flowline feature intersecting an NHDPlusv2
// catchment, with its widths read directly from the FACET output (no
// back-calculation). Order is the flow-magnitude metric used to pick the
// dominant feature per catchment.
type FACETReach struct {
	FeatureID                string
	Order                    float64 // flow magnitude (stream order)
	UpstreamAreaKm2          float64
	WidthM, FloodplainWidthM float64
}

// SelectDominant picks the catchment's representative feature: largest
// Order, then largest UpstreamAreaKm2, then smallest FeatureID. The last
// tie-break keeps the selection deterministic where FACET leaves it to
// table order. Returns false on an empty candidate set.
func SelectDominant(cands []FACETReach) (FACETReach, bool) {
	if len(cands) == 0 {
		return FACETReach{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Order > best.Order {
			best = c
		} else if c.Order == best.Order {
			if c.UpstreamAreaKm2 > best.UpstreamAreaKm2 ||
				(c.UpstreamAreaKm2 == best.UpstreamAreaKm2 && c.FeatureID < best.FeatureID) {
				best = c
			}
		}
	}
	return best, true
}

// FACETConfinement reduces per-catchment candidate sets (keyed on COMID) to
// one ReachWidth per catchment, confinement taken as the dominant feature's
// floodplain width over its channel width. Catchments with no candidates
// are omitted. Output is sorted on COMID.
func FACETConfinement(byCatch map[string][]FACETReach) []ReachWidth {
	out := make([]ReachWidth, 0, len(byCatch))
	for comid, cands := range byCatch {
		f, ok := SelectDominant(cands)
		if !ok {
			continue
		}
		out = append(out, ReachWidth{
			COMID:            comid,
			WidthM:           f.WidthM,
			FloodplainWidthM: f.FloodplainWidthM,
			WidthCalcM:       NA(),
			Confinement:      Ratio(f.FloodplainWidthM, f.WidthM),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].COMID < out[j].COMID })
	return out
}
