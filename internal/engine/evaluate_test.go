package engine

import (
	"bytes"
	"testing"

	"disc-ramp-sim/internal/character"
	"disc-ramp-sim/internal/loadout"
	"disc-ramp-sim/internal/spells"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRamps = RampSet{
	Boon: []spells.AbilityName{
		spells.PurgeTheWicked, spells.PowerWordShield, spells.PowerWordRadiance, spells.PowerWordRadiance,
		spells.Evangelism, spells.BoonOfTheAscended, spells.AscendedBlast, spells.AscendedNova,
		spells.AscendedBlast, spells.AscendedNova, spells.AscendedNova,
	},
	Fiend: []spells.AbilityName{
		spells.PurgeTheWicked, spells.PowerWordShield, spells.PowerWordRadiance, spells.PowerWordRadiance,
		spells.Evangelism, spells.Shadowfiend, spells.Schism, spells.MindBlast, spells.Penance, spells.Smite,
	},
	Filler: []spells.AbilityName{
		spells.PowerWordShield, spells.PowerWordRadiance, spells.Schism, spells.MindBlast, spells.Penance,
	},
}

var testStats = character.Stats{Intellect: 2000, Haste: 700, Crit: 500, Mastery: 600, Versatility: 300}

func TestEvaluateWeighsFillerTwice(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	res, err := Evaluate(reg, testRamps, testStats, loadout.Loadout{DefaultLoadout: true}, DefaultSimulationConfig())
	require.NoError(t, err)

	want := res.Boon.TotalHealing() + res.Fiend.TotalHealing() + 2*res.Filler.TotalHealing()
	assert.InDelta(t, want, res.Total, 1e-6)
	assert.InDelta(t, res.Total, res.Combined.TotalHealing(), 1e-6)
	assert.Greater(t, res.Boon.HealingBySource[spells.AtonementBucket], 0.0)
	assert.Equal(t, 1, res.Boon.Casts[spells.AscendedEruption])
}

func TestEvaluateIsDeterministic(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	l := loadout.Loadout{DefaultLoadout: true, Soulbinds: []string{loadout.Kleia}}
	first, err := Evaluate(reg, testRamps, testStats, l, DefaultSimulationConfig())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Evaluate(reg, testRamps, testStats, l, DefaultSimulationConfig())
		require.NoError(t, err)
		assert.Equal(t, first.Total, again.Total)
		assert.Equal(t, first.Boon.HealingBySource, again.Boon.HealingBySource)
	}
}

func TestEvaluateEmptyRamps(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	res, err := Evaluate(reg, RampSet{}, testStats, loadout.Loadout{}, DefaultSimulationConfig())
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	for _, run := range []*RunResult{res.Boon, res.Fiend, res.Filler} {
		assert.Empty(t, run.HealingBySource)
		assert.Zero(t, run.TotalDamage)
	}
}

func TestEvaluateRunsDoNotShareState(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	filler := []spells.AbilityName{spells.Smite}
	alone, err := Evaluate(reg, RampSet{Filler: filler}, testStats, loadout.Loadout{}, DefaultSimulationConfig())
	require.NoError(t, err)
	after, err := Evaluate(reg, RampSet{Boon: testRamps.Boon, Filler: filler}, testStats, loadout.Loadout{}, DefaultSimulationConfig())
	require.NoError(t, err)
	assert.Equal(t, alone.Filler.DamageBySource, after.Filler.DamageBySource)
}

func TestConfigIsolation(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	seq := RampSet{Boon: []spells.AbilityName{spells.PowerWordShield, spells.Smite, spells.MindBlast}}
	plain, err := Evaluate(reg, seq, testStats, loadout.Loadout{}, DefaultSimulationConfig())
	require.NoError(t, err)

	for _, l := range []loadout.Loadout{
		{Conduits: map[string]float64{spells.ShiningRadiance: 252}},
		{Conduits: map[string]float64{spells.RabidShadows: 252}},
		{Legendaries: []string{loadout.PenitentOne}},
		{Trinkets: map[string]float64{string(spells.FlameOfBattle): 900}},
	} {
		got, err := Evaluate(reg, seq, testStats, l, DefaultSimulationConfig())
		require.NoError(t, err)
		assert.Equal(t, plain.Boon.HealingBySource, got.Boon.HealingBySource)
		assert.Equal(t, plain.Boon.DamageBySource, got.Boon.DamageBySource)
	}
}

func TestEvaluateUnknownAbility(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	_, err = Evaluate(reg, RampSet{Fiend: []spells.AbilityName{"Void Bolt"}}, testStats, loadout.Loadout{}, DefaultSimulationConfig())
	assert.ErrorIs(t, err, spells.ErrUnknownAbility)
	assert.Contains(t, err.Error(), "fiend ramp")
}

func TestPrintResults(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	res, err := Evaluate(reg, testRamps, testStats, loadout.Loadout{}, DefaultSimulationConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	res.PrintResults(&buf)
	out := buf.String()
	assert.Contains(t, out, "Boon Ramp")
	assert.Contains(t, out, "Filler Ramp (x2)")
	assert.Contains(t, out, spells.AtonementBucket)
	assert.Contains(t, out, "Combined Healing:")
}

func TestRampResultSheets(t *testing.T) {
	reg, err := spells.Default()
	require.NoError(t, err)

	res, err := Evaluate(reg, testRamps, testStats, loadout.Loadout{DefaultLoadout: true}, DefaultSimulationConfig())
	require.NoError(t, err)

	sheets := res.Sheets()
	require.Len(t, sheets, 4)
	assert.Equal(t, "Combined", sheets[0].Name)
	assert.Equal(t, []string{"Source", "Casts", "Healing", "Damage"}, sheets[0].Headers)
	require.NotEmpty(t, sheets[1].Rows)

	// Rows are sorted by healing, descending.
	prev := sheets[1].Rows[0][2].(float64)
	for _, row := range sheets[1].Rows[1:] {
		h := row[2].(float64)
		assert.LessOrEqual(t, h, prev)
		prev = h
	}
}
