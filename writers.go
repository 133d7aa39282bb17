package confinement

import (
	"log"

	"github.com/maseology/mmio"
)

// na renders missing cells as "NA" for downstream R/pandas consumers.
func na(v float64) interface{} {
	if isna(v) {
		return "NA"
	}
	return v
}

func writeReachCSV(fp string, ws []ReachWidth) {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead("comid,width_m,floodplain_width_m,confinement"); err != nil {
		log.Fatalf("writeReachCSV %s: %v", fp, err)
	}
	for _, w := range ws {
		csvw.WriteLine(w.COMID, na(w.WidthM), na(w.FloodplainWidthM), na(w.Confinement))
	}
}

func writeSegmentCSV(fp, key string, ss []SegmentSummary) {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead(key + ",total_length_km,missing_length_km,coverage,confinement,flag"); err != nil {
		log.Fatalf("writeSegmentCSV %s: %v", fp, err)
	}
	for _, s := range ss {
		csvw.WriteLine(s.SegID, na(s.TotalLengthKm), na(s.MissingLengthKm), na(s.Coverage), na(s.Confinement), s.Flag)
	}
}

// writeFilledCSV writes a gap-filled attribute column with its provenance
// flags; the flag cell is empty for rows that were never missing.
func writeFilledCSV(fp, key, attr string, ids []string, vals map[string]float64, flags map[string]string) {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead(key + "," + attr + "," + attr + "_filled"); err != nil {
		log.Fatalf("writeFilledCSV %s: %v", fp, err)
	}
	for _, id := range ids {
		csvw.WriteLine(id, na(vals[id]), flags[id])
	}
}
