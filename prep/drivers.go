package prep

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/fhs/go-netcdf/netcdf"
	"github.com/maseology/mmio"
)

// CombineDrivers joins the period-mean of a per-segment NHM driver series
// (NetCDF, variable varName dimensioned [time, nsegment] alongside a
// "segidnat" coordinate variable) with static segment attributes
// (csv keyed on segidnat, header preserved) and writes the combined driver
// table. Pure column plumbing; segments missing from either side simply
// carry NA cells.
func CombineDrivers(ncFP, varName, staticFP, outFP string) error {
	ds, err := netcdf.OpenFile(ncFP, netcdf.NOWRITE)
	if err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	defer ds.Close()

	sv, err := ds.Var("segidnat")
	if err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	sdims, err := sv.Dims()
	if err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	ns64, err := sdims[0].Len()
	if err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	ns := int(ns64)
	segs := make([]float64, ns)
	if err := sv.ReadFloat64s(segs); err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}

	v, err := ds.Var(varName)
	if err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	vdims, err := v.Dims()
	if err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	nt64, err := vdims[0].Len()
	if err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	nt := int(nt64)
	data := make([]float64, nt*ns)
	if err := v.ReadFloat64s(data); err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}

	// period mean per segment, missing timesteps excluded
	mean := make(map[string]float64, ns)
	for j := 0; j < ns; j++ {
		s, n := 0., 0
		for t := 0; t < nt; t++ {
			if x := data[t*ns+j]; !math.IsNaN(x) {
				s += x
				n++
			}
		}
		sid := strconv.FormatFloat(segs[j], 'f', -1, 64)
		if n > 0 {
			mean[sid] = s / float64(n)
		} else {
			mean[sid] = math.NaN()
		}
	}

	// static attributes, header kept (the column names are the contract)
	f, err := os.Open(staticFP)
	if err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("CombineDrivers %s: %v", staticFP, err)
	}
	if len(recs) < 1 || recs[0][0] != "segidnat" {
		return fmt.Errorf("CombineDrivers %s: static table must be keyed on segidnat", staticFP)
	}

	csvw := mmio.NewCSVwriter(outFP)
	defer csvw.Close()
	hdr := "segidnat," + varName + "_mean"
	for _, cn := range recs[0][1:] {
		hdr += "," + cn
	}
	if err := csvw.WriteHead(hdr); err != nil {
		return fmt.Errorf("CombineDrivers: %v", err)
	}
	for _, rec := range recs[1:] {
		cells := make([]interface{}, 0, len(rec)+1)
		cells = append(cells, rec[0])
		if m, ok := mean[rec[0]]; ok && !math.IsNaN(m) {
			cells = append(cells, m)
		} else {
			cells = append(cells, "NA")
		}
		for _, c := range rec[1:] {
			cells = append(cells, c)
		}
		csvw.WriteLine(cells...)
	}
	fmt.Printf(" %s driver rows combined (%s over %d timesteps)\n", mmio.Thousands(int64(len(recs)-1)), varName, nt)
	return nil
}
