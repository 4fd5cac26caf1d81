package loadout

import (
	"testing"

	"disc-ramp-sim/internal/effects"
	"disc-ramp-sim/internal/spells"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFlags(t *testing.T) {
	l := FromFlags(map[string]any{
		"DefaultLoadout":           true,
		"Clarity of Mind":          true,
		"Penitent One":             false,
		"kleia":                    true,
		"Flame of Battle":          668,
		"Instructor's Divine Bell": 0,
		"Chaos Brand":              1,
		"Some Future Flag":         true,
	}, map[string]float64{"Exaltation": 226})

	assert.True(t, l.DefaultLoadout)
	assert.True(t, l.ChaosBrand)
	assert.Equal(t, []string{ClarityOfMind}, l.Legendaries)
	assert.Equal(t, []string{Kleia}, l.Soulbinds)
	assert.Equal(t, map[string]float64{"Flame of Battle": 668}, l.Trinkets)
	assert.Equal(t, map[string]float64{spells.Exaltation: 226}, l.Conduits)
}

func TestValidate(t *testing.T) {
	l := Loadout{Legendaries: []string{"clarity of mind"}, Soulbinds: []string{"Pelagos"}}
	require.NoError(t, l.Validate())
	assert.Equal(t, []string{ClarityOfMind}, l.Legendaries)

	tests := []struct {
		name string
		l    Loadout
	}{
		{"unknown legendary", Loadout{Legendaries: []string{"Shadow Word: Manipulation"}}},
		{"soulbind under legendaries", Loadout{Legendaries: []string{Pelagos}}},
		{"duplicate", Loadout{Soulbinds: []string{Kleia, "kleia"}}},
		{"unknown trinket", Loadout{Trinkets: map[string]float64{"Sunblood Amethyst": 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.l.Validate(), ErrInvalidLoadout)
		})
	}
}

func coeffOf(t *testing.T, book *spells.Spellbook, name spells.AbilityName, kind spells.EffectKind) float64 {
	t.Helper()
	list, err := book.Lookup(name)
	require.NoError(t, err)
	e, err := effectOf(list, kind)
	require.NoError(t, err)
	return e.Coeff
}

func TestDeriveEmptyLoadoutTouchesNothing(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	kit, err := Derive(reg, Loadout{})
	require.NoError(t, err)
	assert.Empty(t, kit.Spells.Overridden())
	assert.InDelta(t, BoonStackBonus, kit.BoonStackBonus, 1e-12)
	assert.InDelta(t, 1.0, kit.DamageFactor(), 1e-12)
	assert.Empty(t, kit.Permanent)
}

func TestDeriveDoesNotAlias(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)
	baseRadiance := coeffOf(t, spells.NewSpellbook(reg), spells.PowerWordRadiance, spells.KindHeal)

	a, err := Derive(reg, Loadout{Conduits: map[string]float64{spells.ShiningRadiance: 239}})
	require.NoError(t, err)
	b, err := Derive(reg, Loadout{Conduits: map[string]float64{spells.ShiningRadiance: 145}})
	require.NoError(t, err)

	assert.InDelta(t, baseRadiance*1.68, coeffOf(t, a.Spells, spells.PowerWordRadiance, spells.KindHeal), 1e-9)
	assert.InDelta(t, baseRadiance*1.40, coeffOf(t, b.Spells, spells.PowerWordRadiance, spells.KindHeal), 1e-9)

	base, err := reg.Lookup(spells.PowerWordRadiance)
	require.NoError(t, err)
	assert.InDelta(t, baseRadiance, base[0].Coeff, 1e-12)
}

func TestDeriveLeavesCallerLoadoutAlone(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	in := Loadout{DefaultLoadout: true}
	_, err = Derive(reg, in)
	require.NoError(t, err)
	assert.Nil(t, in.Conduits)
	assert.Nil(t, in.Legendaries)
}

func TestDeriveDefaultLoadout(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	kit, err := Derive(reg, Loadout{DefaultLoadout: true})
	require.NoError(t, err)

	rapture, err := kit.Spells.Lookup(spells.Rapture)
	require.NoError(t, err)
	assert.InDelta(t, ClarityRaptureAtonement, rapture[0].Atonement, 1e-12)

	boon, err := kit.Spells.Lookup(spells.BoonOfTheAscended)
	require.NoError(t, err)
	require.Len(t, boon, 2)
	assert.Equal(t, effects.BuffStats, boon[1].BuffKind)
	assert.InDelta(t, PelagosMastery, boon[1].Value, 1e-12)

	fiend, err := kit.Spells.Lookup(spells.Shadowfiend)
	require.NoError(t, err)
	assert.InDelta(t, 1.5/1.323, fiend[0].Dot.TickRate, 1e-9)
	assert.InDelta(t, CourageousAscensionStackBonus, kit.BoonStackBonus, 1e-12)
}

func TestDeriveExaltation(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	kit, err := Derive(reg, Loadout{Conduits: map[string]float64{spells.Exaltation: 145}})
	require.NoError(t, err)

	m := 0.075
	empowered := 1 + 2*(1+m)
	assert.InDelta(t, 1.65*empowered, coeffOf(t, kit.Spells, spells.Rapture, spells.KindHeal), 1e-9)

	shield, err := kit.Spells.Lookup(spells.PowerWordShield)
	require.NoError(t, err)
	assert.InDelta(t, empowered, shield[0].EmpoweredMultiplier, 1e-12)

	shell, err := kit.Spells.Lookup(spells.SpiritShell)
	require.NoError(t, err)
	assert.InDelta(t, 11, shell[1].BuffDuration, 1e-12)
	assert.InDelta(t, 0.8*1.09, shell[1].Multiplier, 1e-12)
}

func TestDerivePenitentOneAndKleia(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	kit, err := Derive(reg, Loadout{Legendaries: []string{PenitentOne}, Soulbinds: []string{Kleia}})
	require.NoError(t, err)

	penance, err := kit.Spells.Lookup(spells.Penance)
	require.NoError(t, err)
	require.Len(t, penance, 2)
	assert.Equal(t, spells.KindDamage, penance[1].Kind)
	assert.InDelta(t, 0.376*0.84*2, penance[1].Coeff, 1e-9)

	require.Len(t, kit.Permanent, 1)
	assert.Equal(t, Kleia, kit.Permanent[0].Name)
}

func TestDeriveTrinketValue(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	kit, err := Derive(reg, Loadout{Trinkets: map[string]float64{"Soulletting Ruby": 1200}})
	require.NoError(t, err)

	ruby, err := kit.Spells.Lookup(spells.SoullettingRuby)
	require.NoError(t, err)
	assert.InDelta(t, 1200, ruby[0].Value, 1e-12)
	assert.Equal(t, []spells.AbilityName{spells.SoullettingRuby}, kit.Spells.Overridden())
}

func TestDeriveSkipsUnknownConduit(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	kit, err := Derive(reg, Loadout{Conduits: map[string]float64{"Swift Penitence": 239}})
	require.NoError(t, err)
	assert.Empty(t, kit.Spells.Overridden())
}
