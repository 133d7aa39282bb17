package confinement

import (
	"fmt"
	"log"
	"strconv"

	"github.com/USGS-R/drb-gw-hw-model-prep/network"
	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
)

// Build runs the confinement pipeline from a control file: per-source reach
// estimates, optional aggregation to NHM segments, optional network
// gap-filling of the segment confinement column. Output CSVs are written
// next to the model prefix.
func Build(controlFP string) {

	///////////////////////////////////////////////////////
	println("load .cnf file")
	var prfx, xwalkFP, lengthsFP, distFP string
	var mcmFP, lidarFP, facetFP string
	resolution, key, fill := "segment", KeyPRMS, ""
	minWidth := 0.
	func(cnfFP string) { // getFilePaths
		ins := mmio.NewInstruct(cnfFP)
		prfx = ins.Param["prfx"][0]
		xwalkFP = ins.Param["xwalkfp"][0]
		lengthsFP = ins.Param["lengthsfp"][0]

		if v, ok := ins.Param["mcmfp"]; ok {
			mcmFP = v[0] // published (McManamay) confinement source
		}
		if v, ok := ins.Param["lidarfp"]; ok {
			lidarFP = v[0] // lidar-derived widths
		}
		if v, ok := ins.Param["facetfp"]; ok {
			facetFP = v[0] // FACET candidate table
		}
		if v, ok := ins.Param["distfp"]; ok {
			distFP = v[0] // segment distance matrix
		}
		if v, ok := ins.Param["resolution"]; ok {
			resolution = v[0]
		}
		if v, ok := ins.Param["key"]; ok {
			key = v[0]
		}
		if v, ok := ins.Param["fill"]; ok {
			fill = v[0]
		}
		if v, ok := ins.Param["minwidth"]; ok {
			w, err := strconv.ParseFloat(v[0], 64)
			if err != nil {
				log.Fatalf("Build: bad minwidth %q", v[0])
			}
			minWidth = w
		}
	}(controlFP)

	// validate options before any computation
	if resolution != "reach" && resolution != "segment" {
		log.Fatalf("Build: resolution %q not in {reach, segment}", resolution)
	}
	if key != KeyPRMS && key != KeySegidNat {
		log.Fatalf("Build: key %q not in {%s, %s}", key, KeyPRMS, KeySegidNat)
	}
	var dir network.Direction
	if fill != "" {
		var err error
		if dir, err = network.ParseDirection(fill); err != nil {
			log.Fatalf("Build: %v", err)
		}
		if distFP == "" {
			log.Fatalf("Build: fill=%s requires distfp", fill)
		}
	}

	///////////////////////////////////////////////////////
	println("building..")
	tt := mmio.NewTimer()
	xw, err := ReadCrosswalk(xwalkFP)
	if err != nil {
		log.Fatalf("Build: %v", err)
	}
	lengths, err := loadReachLengths(lengthsFP)
	if err != nil {
		log.Fatalf("Build: %v", err)
	}
	tt.Lap("crosswalk and reach lengths loaded")

	var dm *network.DistanceMatrix
	if fill != "" {
		dm = func(fp string) *network.DistanceMatrix { // gob-cached sparse form
			if _, ok := mmio.FileExists(fp); ok {
				dm, err := network.LoadGobDistanceMatrix(fp)
				if err != nil {
					log.Fatalf("Build: %v", err)
				}
				return dm
			}
			println("  parsing distance matrix..")
			dm, err := network.ReadCSV(distFP)
			if err != nil {
				log.Fatalf("Build: %v", err)
			}
			if err := dm.SaveGob(fp); err != nil {
				log.Fatalf("Build: %v", err)
			}
			return dm
		}(prfx + "distance.gob")
		tt.Lap("distance matrix ready")
	}

	type source struct {
		nam  string
		load func() ([]ReachWidth, error)
	}
	srcs := []source{}
	if mcmFP != "" {
		srcs = append(srcs, source{"mcmanamay", func() ([]ReachWidth, error) { return BuildMcManamay(mcmFP, minWidth, nil) }})
	}
	if lidarFP != "" {
		srcs = append(srcs, source{"lidar", func() ([]ReachWidth, error) { return BuildLidar(lidarFP) }})
	}
	if facetFP != "" {
		srcs = append(srcs, source{"facet", func() ([]ReachWidth, error) { return BuildFACET(facetFP) }})
	}
	if len(srcs) == 0 {
		log.Fatalf("Build: no confinement sources given")
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(srcs)).AppendCompleted().PrependElapsed()
	for _, src := range srcs {
		ws, err := src.load()
		if err != nil {
			log.Fatalf("Build %s: %v", src.nam, err)
		}
		writeReachCSV(prfx+src.nam+".reach.csv", ws)

		if resolution == "segment" {
			ss, err := Aggregate(ToRecords(ws, lengths), xw, key)
			if err != nil {
				log.Fatalf("Build %s: %v", src.nam, err)
			}
			writeSegmentCSV(prfx+src.nam+".seg.csv", key, ss)
			checkandprint(src.nam, ss)

			if fill != "" {
				vals := make(map[string]float64, len(ss))
				ids := make([]string, len(ss))
				for i, s := range ss {
					vals[s.SegID] = s.Confinement
					ids[i] = s.SegID
				}
				fr := network.FillMissing("confinement", vals, dm, dir)
				writeFilledCSV(prfx+src.nam+".seg.filled.csv", key, "confinement", ids, fr.Values, fr.Flags)
				fmt.Printf("   %s: %d filled from neighbors (%s), %d from median\n", src.nam, fr.NFromNeighbor, dir, fr.NFromMedian)
			}
		}
		bar.Incr()
	}
	uiprogress.Stop()

	tt.Lap("\nconfinement build complete")
}

func checkandprint(nam string, ss []SegmentSummary) {
	nmiss, nflg := 0, 0
	for _, s := range ss {
		if isna(s.Confinement) {
			nmiss++
		}
		if s.Flag != "" {
			nflg++
		}
	}
	fmt.Printf("   %s: %s segments; %d missing confinement, %d flagged below %.0f%% coverage\n",
		nam, mmio.Thousands(int64(len(ss))), nmiss, nflg, covThresh*100.)
}
