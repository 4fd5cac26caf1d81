package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"text/tabwriter"

	"disc-ramp-sim/internal/character"
	"disc-ramp-sim/internal/config"
	"disc-ramp-sim/internal/engine"
	"disc-ramp-sim/internal/loadout"
	"disc-ramp-sim/internal/output"
	"disc-ramp-sim/internal/ramp"
	"disc-ramp-sim/internal/spells"

	"golang.org/x/sync/errgroup"
)

type statDelta struct {
	stat  character.StatName
	label string
	delta float64
}

type weightResult struct {
	delta     statDelta
	weight    float64
	healPlus  float64
	healMinus float64
}

type sweepConfig struct {
	stat         character.StatName
	start        float64
	stop         float64
	step         float64
	concurrency  int
	includeDelta bool
	outputDir    string
}

type sweepPoint struct {
	value   float64
	healing float64
}

func main() {
	configDir := flag.String("config-dir", "./configs", "Path to config directory")
	verbose := flag.Bool("verbose", false, "Show plus/minus healing columns")
	sweepStat := flag.String("stat", "", "Stat to sweep (intellect|crit|haste|mastery|vers). If set, runs sweep mode instead of central-diff weights.")
	sweepStart := flag.Float64("start", math.NaN(), "Sweep start rating. Defaults to the current value.")
	sweepStop := flag.Float64("stop", math.NaN(), "Sweep stop rating. Defaults to start + 1000.")
	sweepStep := flag.Float64("step", 25, "Sweep step in rating.")
	sweepConcurrency := flag.Int("concurrency", 0, "Concurrent sims (0 = num CPU).")
	includeDelta := flag.Bool("deltas", true, "Include healing-per-point delta column in sweep CSV.")
	outputDir := flag.String("output-dir", "output/stat_curves", "Directory for sweep CSV output.")
	xlsxDir := flag.String("xlsx", "", "Directory to write the weights as XLSX (empty = skip)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	reg, err := spells.Default()
	if err != nil {
		log.Fatalf("Failed to load spell data: %v", err)
	}
	kit, err := loadout.Derive(reg, cfg.Player.Loadout)
	if err != nil {
		log.Fatalf("Failed to apply loadout: %v", err)
	}
	r := cfg.Player.Ramps
	set, err := ramp.LoadSet(cfg.RampDir(), r.Boon, r.Fiend, r.Filler, kit.Spells)
	if err != nil {
		log.Fatalf("Failed to load ramps: %v", err)
	}

	sim := engine.NewSimulator(kit, simulationConfigFromPlayer(cfg), false, nil)
	ramps := engine.RampSet(set)
	baseStats := cfg.Player.Stats

	if *sweepStat != "" {
		sweepCfg, err := buildSweepConfig(*sweepStat, *sweepStart, *sweepStop, *sweepStep, *sweepConcurrency, *includeDelta, *outputDir, baseStats)
		if err != nil {
			log.Fatalf("Sweep config error: %v", err)
		}
		if err := runSweep(sim, ramps, baseStats, sweepCfg); err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		return
	}

	baseline, err := runHealing(sim, ramps, baseStats)
	if err != nil {
		log.Fatalf("Baseline failed: %v", err)
	}

	fmt.Println("Stat Weights (central diff)")
	fmt.Printf("Ramps: %s, %s, %s (filler x%.0f)\n", r.Boon, r.Fiend, r.Filler, engine.FillerWeight)
	fmt.Printf("Baseline Healing: %.0f\n\n", baseline)

	deltas := []statDelta{
		{stat: character.StatIntellect, label: "Intellect", delta: 10},
		{stat: character.StatCrit, label: "Crit", delta: 25},
		{stat: character.StatHaste, label: "Haste", delta: 25},
		{stat: character.StatMastery, label: "Mastery", delta: 25},
		{stat: character.StatVersatility, label: "Versatility", delta: 25},
	}

	results := make([]weightResult, len(deltas))
	var g errgroup.Group
	for i, sd := range deltas {
		g.Go(func() error {
			plus := baseStats
			minus := baseStats
			plus.Add(sd.stat, sd.delta)
			minus.Add(sd.stat, -sd.delta)

			healPlus, err := runHealing(sim, ramps, plus)
			if err != nil {
				return err
			}
			healMinus, err := runHealing(sim, ramps, minus)
			if err != nil {
				return err
			}
			results[i] = weightResult{
				delta:     sd,
				weight:    (healPlus - healMinus) / (2 * sd.delta),
				healPlus:  healPlus,
				healMinus: healMinus,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Stat weights failed: %v", err)
	}

	w := tabWriter()
	if *verbose {
		fmt.Fprintf(w, "Stat\tDelta\tHealing/Point\tPlus\tMinus\n")
	} else {
		fmt.Fprintf(w, "Stat\tDelta\tHealing/Point\n")
	}
	for _, res := range results {
		if *verbose {
			fmt.Fprintf(w, "%s\t%+.0f\t%.2f\t%.0f\t%.0f\n",
				res.delta.label, res.delta.delta, res.weight, res.healPlus, res.healMinus)
		} else {
			fmt.Fprintf(w, "%s\t%+.0f\t%.2f\n", res.delta.label, res.delta.delta, res.weight)
		}
	}
	w.Flush()

	intWeight := results[0].weight
	if intWeight != 0 {
		nw := tabWriter()
		fmt.Fprintf(nw, "\nNormalized (Intellect = 1.0)\n")
		fmt.Fprintf(nw, "Stat\tWeight vs Int\n")
		for _, res := range results {
			fmt.Fprintf(nw, "%s\t%.3f\n", res.delta.label, res.weight/intWeight)
		}
		nw.Flush()

		fmt.Printf("\nPawn: v1: \"StatWeights (Sim)\": Intellect=1, CritRating=%.2f, HasteRating=%.2f, MasteryRating=%.2f, Versatility=%.2f\n",
			results[1].weight/intWeight, results[2].weight/intWeight, results[3].weight/intWeight, results[4].weight/intWeight)
	}

	if *xlsxDir != "" {
		sheet := output.Sheet{
			Name:    "Stat Weights",
			Headers: []string{"Stat", "Delta", "Healing/Point", "Plus", "Minus", "Normalized"},
			Widths:  []float64{14, 8, 14, 14, 14, 12},
		}
		for _, res := range results {
			norm := 0.0
			if intWeight != 0 {
				norm = res.weight / intWeight
			}
			sheet.Rows = append(sheet.Rows, []any{res.delta.label, res.delta.delta, res.weight, res.healPlus, res.healMinus, norm})
		}
		path, err := output.ExportXLSX(*xlsxDir, "stat_weights", []output.Sheet{sheet})
		if err != nil {
			log.Fatalf("Failed to export XLSX: %v", err)
		}
		fmt.Printf("\nWeights written to %s\n", path)
	}
}

func runHealing(sim *engine.Simulator, ramps engine.RampSet, stats character.Stats) (float64, error) {
	res, err := sim.Evaluate(ramps, stats)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

func simulationConfigFromPlayer(cfg *config.Config) engine.SimulationConfig {
	return engine.SimulationConfig{
		Horizon: cfg.Player.Simulation.Horizon(),
		Step:    cfg.Player.Simulation.Step(),
	}
}

// tabWriter creates a tab-aligned writer for consistent table output.
func tabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func buildSweepConfig(stat string, start, stop, step float64, concurrency int, includeDelta bool, outputDir string, baseStats character.Stats) (sweepConfig, error) {
	name, err := character.ParseStat(stat)
	if err != nil {
		return sweepConfig{}, fmt.Errorf("unsupported stat %q (use intellect|crit|haste|mastery|vers)", stat)
	}
	cfg := sweepConfig{
		stat:         name,
		start:        start,
		stop:         stop,
		step:         step,
		concurrency:  concurrency,
		includeDelta: includeDelta,
		outputDir:    outputDir,
	}
	if math.IsNaN(cfg.start) {
		cfg.start = baseStats.Get(name)
	}
	if math.IsNaN(cfg.stop) {
		cfg.stop = cfg.start + 1000
	}
	if cfg.step <= 0 {
		return sweepConfig{}, fmt.Errorf("step must be > 0 (got %.2f)", cfg.step)
	}
	if cfg.stop <= cfg.start {
		return sweepConfig{}, fmt.Errorf("stop must be > start (start=%.2f, stop=%.2f)", cfg.start, cfg.stop)
	}
	if cfg.start < 0 {
		return sweepConfig{}, fmt.Errorf("start must be >= 0 (got %.2f)", cfg.start)
	}
	if cfg.concurrency <= 0 {
		cfg.concurrency = runtime.NumCPU()
	}
	return cfg, nil
}

func runSweep(sim *engine.Simulator, ramps engine.RampSet, baseStats character.Stats, sweepCfg sweepConfig) error {
	var values []float64
	for v := sweepCfg.start; v <= sweepCfg.stop+1e-9; v += sweepCfg.step {
		values = append(values, v)
	}
	if len(values) == 0 {
		return fmt.Errorf("no sweep points generated")
	}

	results := make([]sweepPoint, len(values))
	var g errgroup.Group
	g.SetLimit(sweepCfg.concurrency)
	for i, v := range values {
		g.Go(func() error {
			healing, err := runHealing(sim, ramps, applyStat(baseStats, sweepCfg.stat, v))
			if err != nil {
				return fmt.Errorf("%s=%.2f: %w", sweepCfg.stat, v, err)
			}
			results[i] = sweepPoint{value: v, healing: healing}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := os.MkdirAll(sweepCfg.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	outPath := filepath.Join(sweepCfg.outputDir, fmt.Sprintf("%s.csv", sweepCfg.stat))
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", outPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"stat_value", "healing"}
	if sweepCfg.includeDelta {
		header = append(header, "healing_per_point")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, res := range results {
		record := []string{
			fmt.Sprintf("%.2f", res.value),
			fmt.Sprintf("%.4f", res.healing),
		}
		if sweepCfg.includeDelta {
			if i == 0 {
				record = append(record, "")
			} else {
				prev := results[i-1]
				record = append(record, fmt.Sprintf("%.6f", (res.healing-prev.healing)/(res.value-prev.value)))
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	fmt.Printf("Sweep complete (%s): %d points, output=%s\n", sweepCfg.stat, len(results), outPath)
	return nil
}

func applyStat(base character.Stats, stat character.StatName, value float64) character.Stats {
	s := base
	s.Add(stat, value-s.Get(stat))
	return s
}
