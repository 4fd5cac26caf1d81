package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"disc-ramp-sim/internal/config"
	"disc-ramp-sim/internal/engine"
	"disc-ramp-sim/internal/loadout"
	"disc-ramp-sim/internal/output"
	"disc-ramp-sim/internal/ramp"
	"disc-ramp-sim/internal/spells"
)

func main() {
	configDir := flag.String("config-dir", "./configs", "Path to config directory")
	loadoutPath := flag.String("loadout", "", "Loadout YAML to use instead of the player.yaml loadout")
	logEnabled := flag.Bool("log", false, "Print the combat log")
	xlsxDir := flag.String("xlsx", "", "Directory to write an XLSX breakdown to (empty = skip)")
	flag.Parse()

	fmt.Println("Discipline Priest Ramp Simulator")
	fmt.Println("================================")
	fmt.Println()

	// Load configuration
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	reg, err := spells.Default()
	if err != nil {
		log.Fatalf("Failed to load spell data: %v", err)
	}

	l := cfg.Player.Loadout
	if *loadoutPath != "" {
		l, err = config.LoadLoadout(*loadoutPath)
		if err != nil {
			log.Fatalf("Failed to load loadout: %v", err)
		}
	}
	kit, err := loadout.Derive(reg, l)
	if err != nil {
		log.Fatalf("Failed to apply loadout: %v", err)
	}

	r := cfg.Player.Ramps
	set, err := ramp.LoadSet(cfg.RampDir(), r.Boon, r.Fiend, r.Filler, kit.Spells)
	if err != nil {
		log.Fatalf("Failed to load ramps: %v", err)
	}

	stats := cfg.Player.Stats
	fmt.Println("Character Stats:")
	fmt.Printf("  Intellect:   %.0f\n", stats.Intellect)
	fmt.Printf("  Haste:       %.0f\n", stats.Haste)
	fmt.Printf("  Crit:        %.0f\n", stats.Crit)
	fmt.Printf("  Mastery:     %.0f\n", stats.Mastery)
	fmt.Printf("  Versatility: %.0f\n", stats.Versatility)
	fmt.Println()
	fmt.Printf("Loadout: %s\n", describeLoadout(l))
	fmt.Printf("Ramps: boon=%d fiend=%d filler=%d casts\n", len(set.Boon), len(set.Fiend), len(set.Filler))
	fmt.Println()

	simCfg := simulationConfigFromPlayer(cfg)
	sim := engine.NewSimulator(kit, simCfg, *logEnabled || cfg.Player.Simulation.Log, os.Stdout)
	result, err := sim.Evaluate(engine.RampSet(set), stats)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	result.PrintResults(os.Stdout)

	if *xlsxDir != "" {
		path, err := output.ExportXLSX(*xlsxDir, "ramp_breakdown", result.Sheets())
		if err != nil {
			log.Fatalf("Failed to export XLSX: %v", err)
		}
		fmt.Printf("\nBreakdown written to %s\n", path)
	}
}

func simulationConfigFromPlayer(cfg *config.Config) engine.SimulationConfig {
	return engine.SimulationConfig{
		Horizon: cfg.Player.Simulation.Horizon(),
		Step:    cfg.Player.Simulation.Step(),
	}
}

func describeLoadout(l loadout.Loadout) string {
	var parts []string
	if l.DefaultLoadout {
		parts = append(parts, loadout.FlagDefaultLoadout)
	}
	parts = append(parts, l.Legendaries...)
	parts = append(parts, l.Soulbinds...)
	for _, name := range slices.Sorted(maps.Keys(l.Trinkets)) {
		parts = append(parts, fmt.Sprintf("%s (%.0f)", name, l.Trinkets[name]))
	}
	for _, name := range slices.Sorted(maps.Keys(l.Conduits)) {
		parts = append(parts, fmt.Sprintf("%s @%.0f", name, l.Conduits[name]))
	}
	if l.ChaosBrand {
		parts = append(parts, loadout.FlagChaosBrand)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
