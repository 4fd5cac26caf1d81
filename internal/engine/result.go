package engine

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"disc-ramp-sim/internal/output"
	"disc-ramp-sim/internal/spells"
)

// RunResult is the output of one cast sequence.
type RunResult struct {
	HealingBySource map[string]float64
	DamageBySource  map[string]float64
	TotalDamage     float64
	Casts           map[spells.AbilityName]int
	Ticks           int
	// Dropped counts queued casts still waiting when the horizon was reached.
	Dropped  int
	Duration time.Duration
}

func newRunResult(duration time.Duration) *RunResult {
	return &RunResult{
		HealingBySource: make(map[string]float64),
		DamageBySource:  make(map[string]float64),
		Casts:           make(map[spells.AbilityName]int),
		Duration:        duration,
	}
}

func (r *RunResult) addHealing(source string, amount float64) {
	r.HealingBySource[source] += amount
}

func (r *RunResult) addDamage(source spells.AbilityName, amount float64) {
	r.DamageBySource[string(source)] += amount
	r.TotalDamage += amount
}

// TotalHealing sums every healing bucket. Buckets are summed in name order so
// repeated runs produce bit-identical totals.
func (r *RunResult) TotalHealing() float64 {
	total := 0.0
	for _, source := range slices.Sorted(maps.Keys(r.HealingBySource)) {
		total += r.HealingBySource[source]
	}
	return total
}

// TotalCasts returns the number of casts dispatched.
func (r *RunResult) TotalCasts() int {
	n := 0
	for _, c := range r.Casts {
		n += c
	}
	return n
}

// merge adds other into r, scaling output by weight.
func (r *RunResult) merge(other *RunResult, weight float64) {
	if other == nil {
		return
	}
	for source, v := range other.HealingBySource {
		r.HealingBySource[source] += v * weight
	}
	for source, v := range other.DamageBySource {
		r.DamageBySource[source] += v * weight
	}
	r.TotalDamage += other.TotalDamage * weight
	for name, c := range other.Casts {
		r.Casts[name] += c
	}
	r.Ticks += other.Ticks
	r.Dropped += other.Dropped
	if other.Duration > r.Duration {
		r.Duration = other.Duration
	}
}

type breakdownRow struct {
	source  string
	healing float64
	damage  float64
}

// rows returns the per-source breakdown sorted by healing, then damage, then name.
func (r *RunResult) rows() []breakdownRow {
	sources := map[string]struct{}{}
	for source := range r.HealingBySource {
		sources[source] = struct{}{}
	}
	for source := range r.DamageBySource {
		sources[source] = struct{}{}
	}
	rows := make([]breakdownRow, 0, len(sources))
	for source := range sources {
		rows = append(rows, breakdownRow{
			source:  source,
			healing: r.HealingBySource[source],
			damage:  r.DamageBySource[source],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].healing != rows[j].healing {
			return rows[i].healing > rows[j].healing
		}
		if rows[i].damage != rows[j].damage {
			return rows[i].damage > rows[j].damage
		}
		return rows[i].source < rows[j].source
	})
	return rows
}

// PrintResults writes a breakdown table for one run.
func (r *RunResult) PrintResults(w io.Writer, title string) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Horizon: %.0fs\n", r.Duration.Seconds())
	fmt.Fprintf(w, "Total Healing: %.0f\n", r.TotalHealing())
	fmt.Fprintf(w, "Total Damage: %.0f\n", r.TotalDamage)
	fmt.Fprintln(w)

	totalHealing := r.TotalHealing()
	fmt.Fprintln(w, "Source Breakdown:")
	fmt.Fprintln(w, "------------------------------------------------------------------")
	fmt.Fprintf(w, "%-24s | %5s | %12s | %6s | %12s\n", "Source", "Casts", "Healing", "Share", "Damage")
	fmt.Fprintln(w, "------------------------------------------------------------------")
	for _, row := range r.rows() {
		share := 0.0
		if totalHealing > 0 {
			share = row.healing / totalHealing * 100.0
		}
		casts := "-"
		if c, ok := r.Casts[spells.AbilityName(row.source)]; ok {
			casts = fmt.Sprintf("%d", c)
		}
		fmt.Fprintf(w, "%-24s | %5s | %12.0f | %5.1f%% | %12.0f\n", row.source, casts, row.healing, share, row.damage)
	}
	fmt.Fprintln(w, "------------------------------------------------------------------")
	fmt.Fprintf(w, "Casts: %d  Ticks: %d\n", r.TotalCasts(), r.Ticks)
	if r.Dropped > 0 {
		fmt.Fprintf(w, "Dropped at horizon: %d\n", r.Dropped)
	}
}

// Sheet returns the per-source breakdown as a worksheet.
func (r *RunResult) Sheet(name string) output.Sheet {
	sheet := output.Sheet{
		Name:    name,
		Headers: []string{"Source", "Casts", "Healing", "Damage"},
		Widths:  []float64{26, 8, 14, 14},
	}
	for _, row := range r.rows() {
		sheet.Rows = append(sheet.Rows, []any{row.source, r.Casts[spells.AbilityName(row.source)], row.healing, row.damage})
	}
	return sheet
}

// RampResult is the combined output of the ramps in one planning window.
type RampResult struct {
	Total  float64
	Boon   *RunResult
	Fiend  *RunResult
	Filler *RunResult
	// Combined holds the weighted per-source breakdown behind Total.
	Combined *RunResult
}

// PrintResults writes each ramp and the weighted total.
func (r *RampResult) PrintResults(w io.Writer) {
	for _, part := range []struct {
		title string
		run   *RunResult
	}{
		{"Boon Ramp", r.Boon},
		{"Fiend Ramp", r.Fiend},
		{"Filler Ramp (x2)", r.Filler},
	} {
		if part.run == nil {
			continue
		}
		part.run.PrintResults(w, part.title)
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "Combined Healing: %.0f\n", r.Total)
	fmt.Fprintln(w, strings.Repeat("=", 40))
}

// Sheets returns one worksheet per ramp plus the weighted combination.
func (r *RampResult) Sheets() []output.Sheet {
	var sheets []output.Sheet
	for _, part := range []struct {
		name string
		run  *RunResult
	}{
		{"Combined", r.Combined},
		{"Boon", r.Boon},
		{"Fiend", r.Fiend},
		{"Filler", r.Filler},
	} {
		if part.run == nil {
			continue
		}
		sheets = append(sheets, part.run.Sheet(part.name))
	}
	return sheets
}
