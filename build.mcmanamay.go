package confinement

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maseology/mmio"
)

// loadMcManamay reads the published regional confinement source table:
// csv "comid,lengthkm,rivarea_m2,vbarea_m2,vblength_km". Any cell that does
// not parse as a number is taken as missing.
func loadMcManamay(fp string) ([]RawReach, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("loadMcManamay: %v", err)
	}
	defer f.Close()

	var out []RawReach
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		out = append(out, RawReach{
			COMID:              rec[0],
			LengthKm:           atof(rec[1]),
			ChannelAreaM2:      atof(rec[2]),
			FloodplainAreaM2:   atof(rec[3]),
			FloodplainLengthKm: atof(rec[4]),
		})
	}
	return out, nil
}

// BuildMcManamay estimates per-COMID confinement from the published source,
// back-calculating widths with an optional channel-width floor and an
// optional preferred-width override.
func BuildMcManamay(fp string, minWidth float64, preferred map[string]float64) ([]ReachWidth, error) {
	rs, err := loadMcManamay(fp)
	if err != nil {
		return nil, err
	}
	fmt.Printf(" %s reaches in published confinement source\n", mmio.Thousands(int64(len(rs))))
	return EstimateWidths(rs, minWidth, preferred), nil
}

// atof parses a numeric cell, mapping blanks and non-numerics ("NA") to
// missing.
func atof(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NA()
	}
	return v
}
