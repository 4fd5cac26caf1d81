package engine

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"disc-ramp-sim/internal/character"
	"disc-ramp-sim/internal/effects"
	"disc-ramp-sim/internal/loadout"
	"disc-ramp-sim/internal/spells"
)

// SimulationConfig holds simulation parameters
type SimulationConfig struct {
	Horizon time.Duration // Simulated length of one ramp
	Step    time.Duration // Fixed time increment
}

// DefaultSimulationConfig covers a full ramp with room to spare.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Horizon: 45 * time.Second,
		Step:    10 * time.Millisecond,
	}
}

// Simulator runs cast sequences against one derived kit. It holds no per-run
// state, so one Simulator may run many sequences, including concurrently.
type Simulator struct {
	Kit        *loadout.Kit
	SimConfig  SimulationConfig
	LogEnabled bool
	LogWriter  io.Writer
}

func NewSimulator(kit *loadout.Kit, simCfg SimulationConfig, logEnabled bool, logWriter io.Writer) *Simulator {
	if simCfg.Step <= 0 {
		simCfg.Step = DefaultSimulationConfig().Step
	}
	if simCfg.Horizon <= 0 {
		simCfg.Horizon = DefaultSimulationConfig().Horizon
	}
	return &Simulator{
		Kit:        kit,
		SimConfig:  simCfg,
		LogEnabled: logEnabled,
		LogWriter:  logWriter,
	}
}

// runState is everything one Run mutates. It is discarded when the run ends.
type runState struct {
	now        time.Duration
	base       character.Stats
	queue      castQueue
	onExpiry   []spells.AbilityName
	buffs      effects.BuffSet
	atonements effects.Atonements
	ticks      tickQueues
	nextCast   effects.Timer
	boon       float64
	result     *RunResult
}

func (s *Simulator) newRunState(sequence []spells.AbilityName, base character.Stats) *runState {
	st := &runState{
		base:   base,
		queue:  newCastQueue(sequence),
		result: newRunResult(s.SimConfig.Horizon),
	}
	for _, b := range s.Kit.Permanent {
		st.buffs.Add(b)
	}
	return st
}

func (st *runState) currentStats() character.Stats {
	return character.EffectiveStats(st.base, st.buffs.StatBonuses())
}

// Run simulates one cast sequence from an empty state up to the horizon. Every
// name is checked before time starts; an unknown one fails the run.
func (s *Simulator) Run(sequence []spells.AbilityName, base character.Stats) (*RunResult, error) {
	for i, name := range sequence {
		if !s.Kit.Spells.Has(name) {
			return nil, fmt.Errorf("%w: '%s' at position %d", spells.ErrUnknownAbility, name, i)
		}
	}

	st := s.newRunState(sequence, base)
	steps := int(s.SimConfig.Horizon / s.SimConfig.Step)
	for i := 0; i < steps; i++ {
		st.now = time.Duration(i) * s.SimConfig.Step
		s.expire(st)
		s.serviceTicks(st)
		if err := s.dispatch(st); err != nil {
			return nil, err
		}
	}

	if st.queue.len() > 0 || len(st.onExpiry) > 0 {
		st.result.Dropped = st.queue.len() + len(st.onExpiry)
		slog.Warn("ramp did not finish before horizon",
			"horizon", s.SimConfig.Horizon,
			"dropped", st.result.Dropped,
			"next", st.queue.remaining())
	}
	if pending := st.ticks.pending(); pending > 0 {
		s.logStaticf("%d periodic ticks past horizon discarded", pending)
	}
	return st.result, nil
}

// expire queues on-expiry follow-ons, then prunes buffs and atonement windows.
func (s *Simulator) expire(st *runState) {
	for _, b := range st.buffs.Prune(st.now) {
		s.logAt(st.now, "EXPIRE %s", b.Name)
		if b.OnExpire != "" {
			st.onExpiry = append(st.onExpiry, spells.AbilityName(b.OnExpire))
		}
	}
	st.atonements.Prune(st.now)
}

func (s *Simulator) serviceTicks(st *runState) {
	for _, tick := range st.ticks.popReady(st.now) {
		stats := st.currentStats()
		count := st.atonements.Count()
		damage := tick.coeff * stats.Intellect * character.StatMultiplier(stats, tick.secondaries) *
			s.damageMultiplier(st) * tick.weight
		st.result.addDamage(tick.source, damage)
		st.result.Ticks++

		healing := 0.0
		if count > 0 {
			healing = float64(count) * damage * character.AtonementTransfer(stats) * atonementFactor(st, 0)
			st.result.addHealing(spells.AtonementBucket, healing)
		}
		s.logAt(st.now, "TICK %s dmg=%.0f weight=%.2f atone=%.0f (%d)", tick.source, damage, tick.weight, healing, count)
	}
}

// dispatch casts at most one ability. A pending on-expiry follow-on goes first
// and does not wait for the cast timer.
func (s *Simulator) dispatch(st *runState) error {
	if len(st.onExpiry) > 0 {
		name := st.onExpiry[0]
		st.onExpiry = st.onExpiry[1:]
		return s.cast(st, name)
	}
	if !st.nextCast.Ready(st.now) {
		return nil
	}
	name, ok := st.queue.pop()
	if !ok {
		return nil
	}
	return s.cast(st, name)
}

func (s *Simulator) cast(st *runState, name spells.AbilityName) error {
	list, err := s.Kit.Spells.Lookup(name)
	if err != nil {
		return err
	}
	stats := st.currentStats()
	haste := character.HasteMultiplier(stats)
	st.result.Casts[name]++
	s.logAt(st.now, "CAST %s (atonements=%d boon=%.1f)", name, st.atonements.Count(), st.boon)

	consumesBoon := false
	for i := range list {
		e := &list[i]
		s.applyEffect(st, name, e, stats, haste)
		if e.HasTag(spells.TagBoonScaling) {
			consumesBoon = true
		}
	}
	if consumesBoon {
		st.boon = 0
	}
	return nil
}

// castDuration is an effect's cast time after haste.
func castDuration(e *spells.Effect, haste float64) time.Duration {
	if e.CastTime <= 0 || haste <= 0 {
		return 0
	}
	return spells.Seconds(e.CastTime / haste)
}

func (s *Simulator) applyEffect(st *runState, name spells.AbilityName, e *spells.Effect, stats character.Stats, haste float64) {
	hasted := castDuration(e, haste)

	if e.Atonement > 0 {
		s.applyAtonement(st, e, hasted)
	}

	switch e.Kind {
	case spells.KindDamage:
		s.applyDamage(st, name, e, stats)
	case spells.KindHeal:
		s.applyHeal(st, name, e, stats)
	case spells.KindAtonementExtension:
		st.atonements.Extend(st.now, spells.Seconds(e.Extension))
	case spells.KindBuff:
		s.applyBuff(st, name, e, hasted)
	case spells.KindSpecial:
		if e.Bolts > 0 {
			st.queue.pushFront(e.BoltAbility, e.Bolts)
		}
	}

	if e.DebuffDuration > 0 {
		st.buffs.Add(effects.Buff{
			Name:       string(name),
			Expiration: st.now + hasted + spells.Seconds(e.DebuffDuration),
		})
	}
	if e.Dot != nil {
		st.ticks.schedule(planTicks(name, e.Dot, e.Secondaries, st.now, haste))
	}
	st.boon += e.BoonStacks
	st.nextCast.Advance(hasted)
}

func (s *Simulator) applyAtonement(st *runState, e *spells.Effect, hasted time.Duration) {
	duration := e.Atonement
	if e.EmpoweredBy != "" && e.EmpoweredAtonement > 0 && st.buffs.Active(string(e.EmpoweredBy)) {
		duration += e.EmpoweredAtonement
	}
	start := st.now
	if e.AtonementPos == spells.AtonementEnd {
		start += hasted
	}
	for i := 0; i < e.Targets; i++ {
		st.atonements.Apply(start + spells.Seconds(duration))
	}
}

func (s *Simulator) applyDamage(st *runState, name spells.AbilityName, e *spells.Effect, stats character.Stats) {
	count := st.atonements.Count()
	damage := e.Coeff * stats.Intellect * character.StatMultiplier(stats, e.Secondaries) *
		s.damageMultiplier(st) * s.boonMultiplier(st, e)
	st.result.addDamage(name, damage)

	healing := 0.0
	if count > 0 {
		healing = float64(count) * damage * character.AtonementTransfer(stats) * atonementFactor(st, e.AtoneOverheal)
		st.result.addHealing(spells.AtonementBucket, healing)
	}
	s.logAt(st.now, "  %s dmg=%.0f atone=%.0f (%d)", name, damage, healing, count)
}

func (s *Simulator) applyHeal(st *runState, name spells.AbilityName, e *spells.Effect, stats character.Stats) {
	healing := e.Coeff * stats.Intellect * character.StatMultiplier(stats, e.Secondaries) *
		(1 - e.Overheal) * s.healingMultiplier(st, e) * targetMultiplier(e)
	st.result.addHealing(string(name), healing)
	s.logAt(st.now, "  %s heal=%.0f", name, healing)
}

func (s *Simulator) applyBuff(st *runState, name spells.AbilityName, e *spells.Effect, hasted time.Duration) {
	b := effects.Buff{
		Name:       string(name),
		Kind:       e.BuffKind,
		Multiplier: e.Multiplier,
		OnExpire:   string(e.OnExpire),
	}
	if e.BuffKind == effects.BuffStats {
		// Stat buffs apply as the cast begins.
		b.Stat = e.Stat
		b.Value = e.Value
		b.Expiration = st.now + spells.Seconds(e.BuffDuration)
	} else {
		b.Expiration = st.now + hasted + spells.Seconds(e.BuffDuration)
	}
	st.buffs.Add(b)
	s.logAt(st.now, "  BUFF %s until %.2fs", b.Name, b.Expiration.Seconds())
}
