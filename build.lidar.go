package confinement

import (
	"fmt"
	"io"
	"os"

	"github.com/maseology/mmio"
)

// BuildLidar reads LiDAR-derived channel and floodplain widths
// (csv "comid,width_m,floodplain_width_m") and computes per-COMID
// confinement directly; no back-calculation and no width floor apply.
func BuildLidar(fp string) ([]ReachWidth, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("BuildLidar: %v", err)
	}
	defer f.Close()

	var out []ReachWidth
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		w, wfp := atof(rec[1]), atof(rec[2])
		out = append(out, ReachWidth{
			COMID:            rec[0],
			WidthM:           w,
			FloodplainWidthM: wfp,
			WidthCalcM:       NA(),
			Confinement:      Ratio(wfp, w),
		})
	}
	fmt.Printf(" %s reaches in lidar confinement source\n", mmio.Thousands(int64(len(out))))
	return out, nil
}

// loadReachLengths reads the NHDPlusv2 channel lengths used as aggregation
// weights: csv "comid,lengthkm".
func loadReachLengths(fp string) (map[string]float64, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("loadReachLengths: %v", err)
	}
	defer f.Close()

	out := make(map[string]float64)
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		out[rec[0]] = atof(rec[1])
	}
	return out, nil
}
