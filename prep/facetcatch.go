// Package prep assembles the tabular inputs consumed by the confinement
// builders from their geospatial sources: shapefile intersection for the
// FACET candidate table, raster sampling for valley-bottom widths, and the
// NetCDF driver-data combine. Everything here is an input producer; the
// aggregation and gap-filling logic lives in the root and network packages.
package prep

import (
	"fmt"
	"log"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/index/rtree"
	"github.com/maseology/mmio"
)

type catchPoly struct {
	geom.Polygonal
	comid string
}

// SelectFACETCandidates intersects NHDPlusv2 catchment polygons (field
// FEATUREID) with FACET flowline features (fields UniqueID, strmOrder,
// USContArea, chnwid_px, fpwid_px) and writes the per-catchment candidate
// table read by confinement.BuildFACET. Features that fail the polygon
// intersection test are skipped with a warning count, not an error; the
// dominant-feature pick itself happens downstream in confinement.
func SelectFACETCandidates(catchShpFP, facetShpFP, outFP string) error {

	// index catchments
	ct, ncatch := func() (*rtree.Rtree, int) {
		d, err := shp.NewDecoder(catchShpFP)
		if err != nil {
			log.Fatalf("SelectFACETCandidates: %v", err)
		}
		defer d.Close()
		t, n := rtree.NewTree(25, 50), 0
		for {
			g, fields, more := d.DecodeRowFields("FEATUREID")
			if !more {
				break
			}
			t.Insert(&catchPoly{Polygonal: g.(geom.Polygonal), comid: fields["FEATUREID"]})
			n++
		}
		if err := d.Error(); err != nil {
			log.Fatalf("SelectFACETCandidates %s: %v", catchShpFP, err)
		}
		return t, n
	}()
	fmt.Printf(" %s catchments indexed\n", mmio.Thousands(int64(ncatch)))

	csvw := mmio.NewCSVwriter(outFP)
	defer csvw.Close()
	if err := csvw.WriteHead("comid,featureid,order,uparea_km2,width_m,floodplain_width_m"); err != nil {
		return fmt.Errorf("SelectFACETCandidates: %v", err)
	}

	d, err := shp.NewDecoder(facetShpFP)
	if err != nil {
		return fmt.Errorf("SelectFACETCandidates: %v", err)
	}
	defer d.Close()
	nfeat, nskip := 0, 0
	for {
		g, fields, more := d.DecodeRowFields("UniqueID", "strmOrder", "USContArea", "chnwid_px", "fpwid_px")
		if !more {
			break
		}
		nfeat++
		ln, ok := g.(geom.LineString)
		if !ok {
			nskip++
			continue
		}
		for _, ci := range ct.SearchIntersect(g.Bounds()) {
			c := ci.(*catchPoly)
			if !intersects(ln, c.Polygonal) {
				continue
			}
			csvw.WriteLine(c.comid, fields["UniqueID"], fields["strmOrder"], fields["USContArea"], fields["chnwid_px"], fields["fpwid_px"])
		}
	}
	if err := d.Error(); err != nil {
		return fmt.Errorf("SelectFACETCandidates %s: %v", facetShpFP, err)
	}
	if nskip > 0 {
		fmt.Printf(" WARNING %d of %d FACET features skipped (non-linear geometry)\n", nskip, nfeat)
	}
	return nil
}

// intersects reports whether any vertex of the flowline falls inside the
// polygon; a cheap stand-in for a full overlay that matches how FACET
// flowlines are conflated to catchments (centre-line membership).
func intersects(ln geom.LineString, p geom.Polygonal) bool {
	for _, pt := range ln {
		if pt.Within(p) != geom.Outside {
			return true
		}
	}
	return false
}
