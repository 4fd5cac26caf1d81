package effects

import (
	"testing"
	"time"

	"disc-ramp-sim/internal/character"

	"github.com/stretchr/testify/assert"
)

func TestAtonementsApplyKeepsOrder(t *testing.T) {
	var a Atonements
	a.Apply(15 * time.Second)
	a.Apply(9 * time.Second)
	a.Apply(21 * time.Second)
	a.Apply(9 * time.Second)
	assert.Equal(t, []time.Duration{9 * time.Second, 9 * time.Second, 15 * time.Second, 21 * time.Second}, a.Expirations())
}

func TestAtonementsExtendAndPrune(t *testing.T) {
	var a Atonements
	a.Apply(15 * time.Second)
	a.Apply(5 * time.Second)

	a.Extend(5*time.Second, 6*time.Second)
	assert.Equal(t, []time.Duration{11 * time.Second, 21 * time.Second}, a.Expirations())

	a.Prune(11 * time.Second)
	assert.Equal(t, 1, a.Count())
	assert.Equal(t, []time.Duration{21 * time.Second}, a.Expirations())

	a.Extend(22*time.Second, time.Second)
	assert.Equal(t, []time.Duration{21 * time.Second}, a.Expirations())
}

func TestBuffSetPrune(t *testing.T) {
	var s BuffSet
	s.Add(Buff{Name: "Schism", Expiration: 10 * time.Second})
	s.Add(Buff{Name: "Boon of the Ascended", Expiration: 12 * time.Second, OnExpire: "Ascended Eruption"})
	s.Add(Buff{Name: "Flame of Battle", Kind: BuffStats, Stat: character.StatVersatility, Value: 668, Expiration: 12 * time.Second})

	assert.Empty(t, s.Prune(9*time.Second))
	expired := s.Prune(10 * time.Second)
	assert.Len(t, expired, 1)
	assert.False(t, s.Active("Schism"))

	expired = s.Prune(12 * time.Second)
	assert.Len(t, expired, 2)
	assert.Equal(t, "Ascended Eruption", expired[0].OnExpire)
	assert.Zero(t, s.Len())
}

func TestBuffSetStatBonusesAndMultiplier(t *testing.T) {
	var s BuffSet
	s.Add(Buff{Name: "Kleia", Kind: BuffStats, Stat: character.StatCrit, Value: 330})
	s.Add(Buff{Name: "Rapture"})

	_, ok := s.AtonementMultiplier()
	assert.False(t, ok)

	s.Add(Buff{Name: "Spirit Shell", Multiplier: 0.8})
	mult, ok := s.AtonementMultiplier()
	assert.True(t, ok)
	assert.InDelta(t, 0.8, mult, 1e-12)

	assert.Equal(t, []character.Bonus{{Stat: character.StatCrit, Value: 330}}, s.StatBonuses())
}

func TestTimer(t *testing.T) {
	var tm Timer
	assert.True(t, tm.Ready(0))

	tm.Advance(1500 * time.Millisecond)
	assert.False(t, tm.Ready(time.Second))
	assert.Equal(t, 500*time.Millisecond, tm.Remaining(time.Second))

	tm.Advance(0)
	assert.Equal(t, 1500*time.Millisecond, tm.ReadyAt())
	assert.True(t, tm.Ready(1500*time.Millisecond))
}
