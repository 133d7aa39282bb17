package confinement

import (
	"fmt"
	"io"
	"os"

	"github.com/maseology/mmio"
)

// BuildFACET reads the per-catchment FACET candidate table
// (csv "comid,featureid,order,uparea_km2,width_m,floodplain_width_m",
// one row per flowline feature intersecting the catchment; see
// prep.SelectFACETCandidates) and reduces it to one confinement estimate
// per catchment COMID.
func BuildFACET(fp string) ([]ReachWidth, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("BuildFACET: %v", err)
	}
	defer f.Close()

	byCatch := make(map[string][]FACETReach)
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		byCatch[rec[0]] = append(byCatch[rec[0]], FACETReach{
			FeatureID:        rec[1],
			Order:            atof(rec[2]),
			UpstreamAreaKm2:  atof(rec[3]),
			WidthM:           atof(rec[4]),
			FloodplainWidthM: atof(rec[5]),
		})
	}
	fmt.Printf(" %s catchments in FACET confinement source\n", mmio.Thousands(int64(len(byCatch))))
	return FACETConfinement(byCatch), nil
}
