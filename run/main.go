package main

import (
	"fmt"
	"log"
	"os"

	confinement "github.com/USGS-R/drb-gw-hw-model-prep"
	"github.com/maseology/mmio"
)

func main() {

	cnfFP := "M:/DRB/confinement/drb.cnf"
	if len(os.Args) > 1 {
		cnfFP = os.Args[1]
	}
	if _, ok := mmio.FileExists(cnfFP); !ok {
		log.Fatalf("control file not found: %s", cnfFP)
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete.")

	confinement.Build(cnfFP)
}
