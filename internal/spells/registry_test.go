package spells

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryLoads(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	for _, name := range []AbilityName{
		MindBlast, PowerWordSolace, Smite, Schism, Penance, PenanceTick,
		AscendedBlast, AscendedNova, AscendedEruption, PowerWordShield,
		ShadowMend, Rapture, PowerWordRadiance, PurgeTheWicked, Shadowfiend,
		Evangelism, SpiritShell, BoonOfTheAscended, DivineBell, FlameOfBattle,
		ShadowedOrb, SoullettingRuby, MoonlitPrism,
	} {
		assert.True(t, reg.Has(name), "missing %s", name)
	}

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, reg, again)
}

func TestRegistryShapes(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	shield, err := reg.Lookup(PowerWordShield)
	require.NoError(t, err)
	require.Len(t, shield, 1)
	assert.Equal(t, KindHeal, shield[0].Kind)
	assert.Equal(t, AtonementStart, shield[0].AtonementPos)
	assert.InDelta(t, 15, shield[0].Atonement, 1e-9)

	ptw, err := reg.Lookup(PurgeTheWicked)
	require.NoError(t, err)
	require.NotNil(t, ptw[0].Dot)
	assert.True(t, ptw[0].Dot.Partial)

	fiend, err := reg.Lookup(Shadowfiend)
	require.NoError(t, err)
	assert.Equal(t, KindNone, fiend[0].Kind)
	assert.False(t, fiend[0].Dot.Partial)

	eruption, err := reg.Lookup(AscendedEruption)
	require.NoError(t, err)
	assert.True(t, eruption[1].HasTag(TagSqrt))
	assert.True(t, eruption[1].HasTag(TagBoonScaling))
}

func TestLookupUnknown(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	_, err = reg.Lookup("Holy Nova")
	assert.ErrorIs(t, err, ErrUnknownAbility)
}

func TestParseSequence(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	seq, err := reg.ParseSequence([]string{"Smite", " Penance ", "Evangelism"})
	require.NoError(t, err)
	assert.Equal(t, []AbilityName{Smite, Penance, Evangelism}, seq)

	_, err = reg.ParseSequence([]string{"Smite", "Smiet"})
	assert.ErrorIs(t, err, ErrUnknownAbility)
	assert.Contains(t, err.Error(), "position 1")

	seq, err = reg.ParseSequence(nil)
	require.NoError(t, err)
	assert.Empty(t, seq)
}

func TestLoadRejectsMalformedEffects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "damage without secondaries",
			doc: `
abilities:
  Smite:
    - type: damage
      cast_time: 1.5
      coeff: 0.5
`,
		},
		{
			name: "buff without duration",
			doc: `
abilities:
  Rapture:
    - type: buff
      buff_type: special
`,
		},
		{
			name: "incomplete dot",
			doc: `
abilities:
  Purge the Wicked:
    - type: damage
      coeff: 0.2
      secondaries: [crit]
      dot:
        tick_rate: 2
        duration: 26
`,
		},
		{
			name: "unknown type",
			doc: `
abilities:
  Smite:
    - type: teleport
`,
		},
		{
			name: "atonement without position",
			doc: `
abilities:
  "Power Word: Shield":
    - type: heal
      coeff: 1.65
      targets: 1
      atonement: 15
      secondaries: [crit]
`,
		},
		{
			name: "dangling on_expire",
			doc: `
abilities:
  Boon of the Ascended:
    - type: buff
      buff_duration: 10
      on_expire: Ascended Eruption
`,
		},
		{
			name: "stat buff without stat",
			doc: `
abilities:
  Flame of Battle:
    - type: buff
      buff_type: stats
      value: 668
      buff_duration: 12
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrMalformedEffect)
		})
	}
}

func TestLoadAcceptsMinimalRegistry(t *testing.T) {
	reg, err := Load([]byte(`
abilities:
  Smite:
    - type: damage
      cast_time: 1.5
      coeff: 0.5
      secondaries: []
`))
	require.NoError(t, err)
	assert.Equal(t, []AbilityName{Smite}, reg.Names())
}
