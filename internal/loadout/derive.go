package loadout

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"time"

	"disc-ramp-sim/internal/character"
	"disc-ramp-sim/internal/effects"
	"disc-ramp-sim/internal/spells"
)

// permanent outlives any horizon.
const permanent = time.Duration(math.MaxInt64)

// Kit is everything a run needs from a loadout: the derived spell data and the
// run-wide modifiers that do not live on any one ability.
type Kit struct {
	Spells     *spells.Spellbook
	ChaosBrand bool
	// BoonStackBonus is the eruption bonus per boon stack.
	BoonStackBonus float64
	// Permanent buffs are active for the whole run.
	Permanent []effects.Buff
}

// DamageFactor returns the run-wide damage multiplier from loadout flags.
func (k *Kit) DamageFactor() float64 {
	if k.ChaosBrand {
		return ChaosBrandMultiplier
	}
	return 1
}

// Derive applies a loadout to base. The base registry is never written; every
// change lands in the returned Kit's Spellbook. Transformations run in a fixed
// order: legendaries, soulbinds, trinkets, conduits.
func Derive(base *spells.Registry, in Loadout) (*Kit, error) {
	l := in.Clone()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if l.DefaultLoadout {
		applyDefaults(&l)
	}

	kit := &Kit{
		Spells:         spells.NewSpellbook(base),
		ChaosBrand:     l.ChaosBrand,
		BoonStackBonus: BoonStackBonus,
	}
	steps := []struct {
		name  string
		apply func(*Kit, *Loadout) error
	}{
		{"legendaries", applyLegendaries},
		{"soulbinds", applySoulbinds},
		{"trinkets", applyTrinkets},
		{"conduits", applyConduits},
	}
	for _, step := range steps {
		if err := step.apply(kit, &l); err != nil {
			return nil, fmt.Errorf("derive %s: %w", step.name, err)
		}
	}
	return kit, nil
}

func applyDefaults(l *Loadout) {
	if !slices.Contains(l.Legendaries, ClarityOfMind) {
		l.Legendaries = append(l.Legendaries, ClarityOfMind)
	}
	if !slices.Contains(l.Soulbinds, Pelagos) {
		l.Soulbinds = append(l.Soulbinds, Pelagos)
	}
	if l.Conduits == nil {
		l.Conduits = map[string]float64{}
	}
	for _, name := range []string{spells.ShiningRadiance, spells.RabidShadows, spells.CourageousAscension} {
		l.Conduits[name] = DefaultConduitItemLevel
	}
}

// effectOf returns the first effect of the given kind.
func effectOf(list []spells.Effect, kind spells.EffectKind) (*spells.Effect, error) {
	for i := range list {
		if list[i].Kind == kind {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no %s effect", spells.ErrMalformedEffect, kind)
}

func editEffect(kit *Kit, name spells.AbilityName, kind spells.EffectKind) (*spells.Effect, error) {
	list, err := kit.Spells.Edit(name)
	if err != nil {
		return nil, err
	}
	e, err := effectOf(list, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return e, nil
}

func applyLegendaries(kit *Kit, l *Loadout) error {
	if l.Has(ClarityOfMind) {
		rapture, err := editEffect(kit, spells.Rapture, spells.KindHeal)
		if err != nil {
			return err
		}
		rapture.Atonement = ClarityRaptureAtonement

		shell, err := editEffect(kit, spells.SpiritShell, spells.KindAtonementExtension)
		if err != nil {
			return err
		}
		shell.Extension = ClaritySpiritShellExtension

		shield, err := editEffect(kit, spells.PowerWordShield, spells.KindHeal)
		if err != nil {
			return err
		}
		shield.EmpoweredBy = spells.Rapture
		shield.EmpoweredAtonement = ClarityShieldAtonement
	}

	if l.Has(PenitentOne) {
		ticks, err := kit.Spells.Lookup(spells.PenanceTick)
		if err != nil {
			return err
		}
		tick, err := effectOf(ticks, spells.KindDamage)
		if err != nil {
			return err
		}
		// Extra bolts are folded into one expected-value hit.
		err = kit.Spells.Append(spells.Penance, spells.Effect{
			Kind:          spells.KindDamage,
			Coeff:         tick.Coeff * PenitentOneExpectedBolts,
			AtoneOverheal: tick.AtoneOverheal,
			Secondaries:   slices.Clone(tick.Secondaries),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func applySoulbinds(kit *Kit, l *Loadout) error {
	if l.Has(Pelagos) {
		err := kit.Spells.Append(spells.BoonOfTheAscended, spells.Effect{
			Kind:         spells.KindBuff,
			BuffKind:     effects.BuffStats,
			Stat:         character.StatMastery,
			Value:        PelagosMastery,
			BuffDuration: PelagosDurationSec,
		})
		if err != nil {
			return err
		}
	}
	if l.Has(Kleia) {
		kit.Permanent = append(kit.Permanent, effects.Buff{
			Name:       Kleia,
			Expiration: permanent,
			Kind:       effects.BuffStats,
			Stat:       character.StatCrit,
			Value:      KleiaCrit,
		})
	}
	return nil
}

func applyTrinkets(kit *Kit, l *Loadout) error {
	for _, name := range slices.Sorted(maps.Keys(l.Trinkets)) {
		buff, err := editEffect(kit, spells.AbilityName(name), spells.KindBuff)
		if err != nil {
			return err
		}
		buff.Value = l.Trinkets[name]
	}
	return nil
}

// conduitOrder fixes the order conduits touching the same fields apply in.
var conduitOrder = []string{
	spells.CourageousAscension,
	spells.ShiningRadiance,
	spells.RabidShadows,
	spells.Exaltation,
}

func applyConduits(kit *Kit, l *Loadout) error {
	magnitudes := map[string]float64{}
	for _, name := range slices.Sorted(maps.Keys(l.Conduits)) {
		ilvl := l.Conduits[name]
		rank := spells.ConduitRank(ilvl)
		m, err := spells.ConduitMagnitude(name, rank)
		if err != nil {
			slog.Warn("skipping conduit", "conduit", name, "item_level", ilvl, "err", err)
			continue
		}
		magnitudes[name] = m
	}

	for _, name := range conduitOrder {
		m, ok := magnitudes[name]
		if !ok {
			continue
		}
		var err error
		switch name {
		case spells.CourageousAscension:
			err = applyCourageousAscension(kit, m)
		case spells.ShiningRadiance:
			err = scaleCoeff(kit, spells.PowerWordRadiance, spells.KindHeal, 1+m)
		case spells.RabidShadows:
			err = applyRabidShadows(kit, m)
		case spells.Exaltation:
			err = applyExaltation(kit, m)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func scaleCoeff(kit *Kit, name spells.AbilityName, kind spells.EffectKind, factor float64) error {
	e, err := editEffect(kit, name, kind)
	if err != nil {
		return err
	}
	e.Coeff *= factor
	return nil
}

func applyCourageousAscension(kit *Kit, m float64) error {
	if err := scaleCoeff(kit, spells.AscendedBlast, spells.KindDamage, 1+m); err != nil {
		return err
	}
	kit.BoonStackBonus = CourageousAscensionStackBonus
	return nil
}

func applyRabidShadows(kit *Kit, m float64) error {
	list, err := kit.Spells.Edit(spells.Shadowfiend)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].Dot != nil {
			list[i].Dot.TickRate /= 1 + m
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no dot", spells.ErrMalformedEffect, spells.Shadowfiend)
}

func applyExaltation(kit *Kit, m float64) error {
	empowered := 1 + 2*(1+m)

	raptureBuff, err := editEffect(kit, spells.Rapture, spells.KindBuff)
	if err != nil {
		return err
	}
	raptureBuff.BuffDuration = ExaltationRaptureDurationSec
	if err := scaleCoeff(kit, spells.Rapture, spells.KindHeal, empowered/3); err != nil {
		return err
	}

	shield, err := editEffect(kit, spells.PowerWordShield, spells.KindHeal)
	if err != nil {
		return err
	}
	shield.EmpoweredBy = spells.Rapture
	shield.EmpoweredMultiplier = empowered

	shell, err := editEffect(kit, spells.SpiritShell, spells.KindBuff)
	if err != nil {
		return err
	}
	shell.BuffDuration = ExaltationSpiritShellDurationSec
	shell.Multiplier *= ExaltationSpiritShellMultiplier
	return nil
}
