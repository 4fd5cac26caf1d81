package engine

import (
	"fmt"

	"disc-ramp-sim/internal/character"
	"disc-ramp-sim/internal/loadout"
	"disc-ramp-sim/internal/spells"
)

// FillerWeight is how many filler ramps fit between two major cooldown ramps.
const FillerWeight = 2.0

// RampSet is the three sequences of one planning window.
type RampSet struct {
	Boon   []spells.AbilityName
	Fiend  []spells.AbilityName
	Filler []spells.AbilityName
}

// Evaluate derives the loadout once and scores a ramp set with it:
// boon + fiend + 2 x filler.
func Evaluate(reg *spells.Registry, ramps RampSet, base character.Stats, l loadout.Loadout, simCfg SimulationConfig) (*RampResult, error) {
	kit, err := loadout.Derive(reg, l)
	if err != nil {
		return nil, err
	}
	return NewSimulator(kit, simCfg, false, nil).Evaluate(ramps, base)
}

// Evaluate runs each ramp from a clean state and combines them.
func (s *Simulator) Evaluate(ramps RampSet, base character.Stats) (*RampResult, error) {
	out := &RampResult{Combined: newRunResult(s.SimConfig.Horizon)}
	runs := []struct {
		label    string
		sequence []spells.AbilityName
		weight   float64
		dst      **RunResult
	}{
		{"boon", ramps.Boon, 1, &out.Boon},
		{"fiend", ramps.Fiend, 1, &out.Fiend},
		{"filler", ramps.Filler, FillerWeight, &out.Filler},
	}
	for _, r := range runs {
		s.logStaticf("--- %s ramp ---", r.label)
		res, err := s.Run(r.sequence, base)
		if err != nil {
			return nil, fmt.Errorf("%s ramp: %w", r.label, err)
		}
		*r.dst = res
		out.Total += res.TotalHealing() * r.weight
		out.Combined.merge(res, r.weight)
	}
	return out, nil
}
