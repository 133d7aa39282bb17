package prep

import (
	"fmt"
	"log"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/index/rtree"
	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"
)

// SampleFloodplainWidth reduces a lidar-derived floodplain-width grid (bil,
// nodata < 0) to a per-catchment mean: every active cell whose centre falls
// inside a catchment polygon contributes equally. Output csv
// "comid,floodplain_width_m" feeds the lidar confinement source. Catchments
// intersecting no valid cell are omitted (missing by join semantics).
func SampleFloodplainWidth(gdefFP, bilFP, catchShpFP, outFP string) error {
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		return fmt.Errorf("SampleFloodplainWidth: %v", err)
	}
	var g grid.Real
	g.NewGD32(bilFP, gd)

	ct := func() *rtree.Rtree {
		d, err := shp.NewDecoder(catchShpFP)
		if err != nil {
			log.Fatalf("SampleFloodplainWidth: %v", err)
		}
		defer d.Close()
		t := rtree.NewTree(25, 50)
		for {
			gg, fields, more := d.DecodeRowFields("FEATUREID")
			if !more {
				break
			}
			t.Insert(&catchPoly{Polygonal: gg.(geom.Polygonal), comid: fields["FEATUREID"]})
		}
		if err := d.Error(); err != nil {
			log.Fatalf("SampleFloodplainWidth %s: %v", catchShpFP, err)
		}
		return t
	}()

	sum, cnt := make(map[string]float64), make(map[string]int)
	for _, cid := range gd.Sactives {
		v, ok := g.A[cid]
		if !ok || v < 0. { // nodata
			continue
		}
		xy := gd.Coord[cid]
		pt := geom.Point{X: xy.X, Y: xy.Y}
		for _, ci := range ct.SearchIntersect(pt.Bounds()) {
			c := ci.(*catchPoly)
			if pt.Within(c.Polygonal) == geom.Outside {
				continue
			}
			sum[c.comid] += v
			cnt[c.comid]++
		}
	}

	csvw := mmio.NewCSVwriter(outFP)
	defer csvw.Close()
	if err := csvw.WriteHead("comid,floodplain_width_m"); err != nil {
		return fmt.Errorf("SampleFloodplainWidth: %v", err)
	}
	for comid, s := range sum {
		csvw.WriteLine(comid, s/float64(cnt[comid]))
	}
	fmt.Printf(" %s catchments sampled from %s\n", mmio.Thousands(int64(len(sum))), bilFP)
	return nil
}
