package confinement

// EstimateWidths back-calculates channel and floodplain widths for a set of
// reaches and computes the confinement ratio. minWidth raises any
// back-calculated channel width below it (no-op when 0); it is never applied
// to preferred widths. preferred, when non-nil, overrides the back-calculated
// channel width per COMID for the ratio; the back-calculated value is kept
// in WidthCalcM either way.
func EstimateWidths(rs []RawReach, minWidth float64, preferred map[string]float64) []ReachWidth {
	out := make([]ReachWidth, len(rs))
	for i, r := range rs {
		wcalc := backCalc(r.ChannelAreaM2, r.LengthKm, minWidth)
		wfp := backCalc(r.FloodplainAreaM2, r.FloodplainLengthKm, 0)

		w := wcalc
		if preferred != nil {
			if p, ok := preferred[r.COMID]; ok && !isna(p) {
				w = p
			}
		}

		out[i] = ReachWidth{
			COMID:            r.COMID,
			WidthM:           w,
			FloodplainWidthM: wfp,
			WidthCalcM:       wcalc,
			Confinement:      Ratio(wfp, w),
		}
	}
	return out
}

// backCalc returns area/(lengthKm*1000), floored at minWidth. A zero or
// missing length leaves the width undefined rather than manufacturing one
// from a degenerate denominator.
func backCalc(areaM2, lengthKm, minWidth float64) float64 {
	if isna(areaM2) || isna(lengthKm) || lengthKm == 0 {
		return NA()
	}
	w := areaM2 / (lengthKm * 1000.)
	if w < minWidth {
		w = minWidth
	}
	return w
}

// Ratio is the confinement ratio wfp/w, missing whenever either operand is
// zero or missing. Division by a true zero must never reach the caller as Inf.
func Ratio(wfp, w float64) float64 {
	if isna(wfp) || isna(w) || wfp == 0 || w == 0 {
		return NA()
	}
	return wfp / w
}
