// Package confinement estimates channel confinement (floodplain width over
// channel width) for reaches of the NHDPlusv2 network and aggregates the
// reach-level (COMID) estimates up to NHM segments by length weighting,
// flagging segments with poor source coverage. Missing values are carried as
// NaN throughout; a ratio with a zero or undefined operand is missing, never
// zero and never Inf.
package confinement

import "math"

// segments whose member reaches cover less than this fraction of total
// length (by source value) get a warning flag
const covThresh = 0.7

// the two segment ID schemes carried by the crosswalk
const (
	KeyPRMS     = "PRMS_segid"
	KeySegidNat = "segidnat"
)

func isna(v float64) bool { return math.IsNaN(v) }

// NA is the missing-value marker used across all tables.
func NA() float64 { return math.NaN() }
