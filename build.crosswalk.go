package confinement

import (
	"fmt"
	"io"
	"os"

	"github.com/maseology/mmio"
)

// ReadCrosswalk loads the COMID→segment lookup: csv "comid,PRMS_segid,segidnat".
func ReadCrosswalk(fp string) (*Crosswalk, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("ReadCrosswalk: %v", err)
	}
	defer f.Close()

	xw := Crosswalk{PRMS: make(map[string]string), Segidnat: make(map[string]string)}
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		xw.PRMS[rec[0]] = rec[1]
		xw.Segidnat[rec[0]] = rec[2]
	}
	return &xw, nil
}
