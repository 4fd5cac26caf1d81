package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"disc-ramp-sim/internal/config"
	"disc-ramp-sim/internal/engine"
	"disc-ramp-sim/internal/loadout"
	"disc-ramp-sim/internal/output"
	"disc-ramp-sim/internal/ramp"
	"disc-ramp-sim/internal/spells"

	"golang.org/x/sync/errgroup"
)

type candidate struct {
	name    string
	loadout loadout.Loadout
	result  *engine.RampResult
}

func main() {
	configDir := flag.String("config-dir", "./configs", "Path to config directory")
	loadoutGlob := flag.String("loadouts", "loadouts/*.yaml", "Glob of loadout files, relative to the config directory")
	xlsxDir := flag.String("xlsx", "", "Directory to write the ranking as XLSX (empty = skip)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	reg, err := spells.Default()
	if err != nil {
		log.Fatalf("Failed to load spell data: %v", err)
	}

	candidates := []*candidate{{name: "player.yaml", loadout: cfg.Player.Loadout}}
	paths, err := filepath.Glob(filepath.Join(*configDir, *loadoutGlob))
	if err != nil {
		log.Fatalf("Bad loadout glob: %v", err)
	}
	paths = append(paths, flag.Args()...)
	for _, path := range paths {
		l, err := config.LoadLoadout(path)
		if err != nil {
			log.Fatalf("Failed to load loadout: %v", err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		candidates = append(candidates, &candidate{name: name, loadout: l})
	}

	simCfg := engine.SimulationConfig{
		Horizon: cfg.Player.Simulation.Horizon(),
		Step:    cfg.Player.Simulation.Step(),
	}

	var g errgroup.Group
	for _, c := range candidates {
		g.Go(func() error {
			res, err := evaluate(reg, cfg, c.loadout, simCfg)
			if err != nil {
				return fmt.Errorf("%s: %w", c.name, err)
			}
			c.result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Comparison failed: %v", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].result.Total > candidates[j].result.Total
	})

	best := candidates[0].result.Total
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Rank\tLoadout\tBoon\tFiend\tFiller\tTotal\tvs Best\n")
	for i, c := range candidates {
		fmt.Fprintf(w, "%d\t%s\t%.0f\t%.0f\t%.0f\t%.0f\t%s\n", i+1, c.name,
			c.result.Boon.TotalHealing(), c.result.Fiend.TotalHealing(), c.result.Filler.TotalHealing(),
			c.result.Total, relative(c.result.Total, best))
	}
	w.Flush()

	if *xlsxDir != "" {
		sheet := output.Sheet{
			Name:    "Loadouts",
			Headers: []string{"Rank", "Loadout", "Boon", "Fiend", "Filler", "Total"},
			Widths:  []float64{6, 28, 14, 14, 14, 14},
		}
		for i, c := range candidates {
			sheet.Rows = append(sheet.Rows, []any{i + 1, c.name,
				c.result.Boon.TotalHealing(), c.result.Fiend.TotalHealing(), c.result.Filler.TotalHealing(), c.result.Total})
		}
		path, err := output.ExportXLSX(*xlsxDir, "loadout_compare", []output.Sheet{sheet})
		if err != nil {
			log.Fatalf("Failed to export XLSX: %v", err)
		}
		fmt.Printf("\nRanking written to %s\n", path)
	}
}

// evaluate compiles the ramps against the loadout's own spellbook so loadouts
// that add abilities (trinkets) can reference them.
func evaluate(reg *spells.Registry, cfg *config.Config, l loadout.Loadout, simCfg engine.SimulationConfig) (*engine.RampResult, error) {
	kit, err := loadout.Derive(reg, l)
	if err != nil {
		return nil, err
	}
	r := cfg.Player.Ramps
	set, err := ramp.LoadSet(cfg.RampDir(), r.Boon, r.Fiend, r.Filler, kit.Spells)
	if err != nil {
		return nil, err
	}
	return engine.NewSimulator(kit, simCfg, false, nil).Evaluate(engine.RampSet(set), cfg.Player.Stats)
}

func relative(total, best float64) string {
	if best == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", (total/best-1)*100)
}
