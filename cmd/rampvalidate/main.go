package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"disc-ramp-sim/internal/ramp"
	"disc-ramp-sim/internal/spells"
)

func main() {
	var rampPath string
	flag.StringVar(&rampPath, "ramp", "configs/ramps/boon.yaml", "Path to ramp YAML")
	flag.Parse()

	rampPath = filepath.Clean(rampPath)
	baseDir := filepath.Dir(rampPath)
	rel := filepath.Base(rampPath)

	reg, err := spells.Default()
	if err != nil {
		log.Fatalf("failed to load spell data: %v", err)
	}

	file, err := ramp.LoadRamp(baseDir, rel)
	if err != nil {
		log.Fatalf("failed to load ramp: %v", err)
	}

	seq, err := ramp.Compile(file, reg)
	if err != nil {
		log.Fatalf("ramp invalid: %v", err)
	}

	fmt.Printf("Ramp '%s' validated successfully: %d casts (source: %s)\n", file.Name, len(seq), rampPath)
}
