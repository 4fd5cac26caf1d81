package engine

import (
	"math"

	"disc-ramp-sim/internal/spells"
)

const schismMultiplier = 1.25

// sinsOfTheMany is keyed by the number of open atonement windows.
var sinsOfTheMany = []float64{1.12, 1.12, 1.1, 1.08, 1.07, 1.06, 1.05, 1.05, 1.04, 1.04, 1.03}

func sinsMultiplier(atonements int) float64 {
	if atonements < 0 {
		atonements = 0
	}
	if atonements >= len(sinsOfTheMany) {
		return sinsOfTheMany[len(sinsOfTheMany)-1]
	}
	return sinsOfTheMany[atonements]
}

// damageMultiplier combines the run-wide damage factors at the current instant.
func (s *Simulator) damageMultiplier(st *runState) float64 {
	mult := sinsMultiplier(st.atonements.Count()) * s.Kit.DamageFactor()
	if st.buffs.Active(string(spells.Schism)) {
		mult *= schismMultiplier
	}
	return mult
}

// boonMultiplier scales effects tagged boon_scaling by the accumulated stacks.
func (s *Simulator) boonMultiplier(st *runState, e *spells.Effect) float64 {
	if !e.HasTag(spells.TagBoonScaling) {
		return 1
	}
	return 1 + st.boon*s.Kit.BoonStackBonus
}

// healingMultiplier returns the conditional multiplier of a heal effect.
func (s *Simulator) healingMultiplier(st *runState, e *spells.Effect) float64 {
	mult := 1.0
	if e.EmpoweredBy != "" && e.EmpoweredMultiplier > 0 && st.buffs.Active(string(e.EmpoweredBy)) {
		mult = e.EmpoweredMultiplier
	}
	return mult * s.boonMultiplier(st, e)
}

func targetMultiplier(e *spells.Effect) float64 {
	if e.HasTag(spells.TagSqrt) {
		return math.Sqrt(float64(e.Targets))
	}
	return float64(e.Targets)
}

// atonementFactor is the share of transferred healing that lands. Spirit Shell
// replaces overhealing with its own multiplier while it is up.
func atonementFactor(st *runState, atoneOverheal float64) float64 {
	if mult, ok := st.buffs.AtonementMultiplier(); ok {
		return mult
	}
	return 1 - atoneOverheal
}
