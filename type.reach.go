package confinement

// RawReach carries the per-COMID source variables needed to back-calculate
// channel and floodplain widths. Areas in m², lengths in km; NaN = missing.
type RawReach struct {
	COMID              string
	LengthKm           float64 // reach (channel) length
	ChannelAreaM2      float64 // river surface area
	FloodplainAreaM2   float64 // valley-bottom area
	FloodplainLengthKm float64 // valley-bottom centreline length
}

// ReachWidth is the per-COMID estimate: widths in m, Confinement unitless
// (floodplain width / channel width), NaN where undefined. WidthCalc keeps
// the back-calculated channel width even when a preferred width was supplied.
type ReachWidth struct {
	COMID                    string
	WidthM, FloodplainWidthM float64
	WidthCalcM               float64
	Confinement              float64
}

// Crosswalk maps COMIDs to the two NHM segment ID schemes. It is the single
// source of truth for reach→segment membership; COMIDs absent from it are
// excluded from segment aggregation.
type Crosswalk struct {
	PRMS, Segidnat map[string]string // COMID to segment ID
}

// SegID resolves a COMID under the named scheme (KeyPRMS or KeySegidNat).
func (x *Crosswalk) SegID(comid, key string) (string, bool) {
	switch key {
	case KeyPRMS:
		s, ok := x.PRMS[comid]
		return s, ok
	case KeySegidNat:
		s, ok := x.Segidnat[comid]
		return s, ok
	}
	return "", false
}
