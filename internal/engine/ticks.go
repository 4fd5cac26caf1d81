package engine

import (
	"math"
	"time"

	"disc-ramp-sim/internal/character"
	"disc-ramp-sim/internal/spells"
)

// tickEpsilon absorbs float noise when splitting a periodic effect into
// whole and partial ticks.
const tickEpsilon = 1e-9

type pendingTick struct {
	executeAt   time.Duration
	source      spells.AbilityName
	coeff       float64
	weight      float64
	secondaries []character.StatName
}

type tickQueue []*pendingTick

func (tq *tickQueue) add(tick *pendingTick) {
	if tick == nil {
		return
	}
	inserted := false
	for i, existing := range *tq {
		if tick.executeAt < existing.executeAt {
			*tq = append(*tq, nil)
			copy((*tq)[i+1:], (*tq)[i:])
			(*tq)[i] = tick
			inserted = true
			break
		}
	}
	if !inserted {
		*tq = append(*tq, tick)
	}
}

func (tq *tickQueue) popReady(now time.Duration) *pendingTick {
	if len(*tq) == 0 {
		return nil
	}
	tick := (*tq)[0]
	if tick.executeAt > now {
		return nil
	}
	*tq = (*tq)[1:]
	return tick
}

// tickQueues keeps one queue per periodic source, serviced in the order the
// sources were first seen.
type tickQueues struct {
	order    []spells.AbilityName
	bySource map[spells.AbilityName]*tickQueue
}

func (t *tickQueues) schedule(ticks []*pendingTick) {
	if t.bySource == nil {
		t.bySource = make(map[spells.AbilityName]*tickQueue)
	}
	for _, tick := range ticks {
		q, ok := t.bySource[tick.source]
		if !ok {
			q = &tickQueue{}
			t.bySource[tick.source] = q
			t.order = append(t.order, tick.source)
		}
		q.add(tick)
	}
}

// popReady drains every due tick across all sources.
func (t *tickQueues) popReady(now time.Duration) []*pendingTick {
	var due []*pendingTick
	for _, source := range t.order {
		q := t.bySource[source]
		for {
			tick := q.popReady(now)
			if tick == nil {
				break
			}
			due = append(due, tick)
		}
	}
	return due
}

func (t *tickQueues) pending() int {
	n := 0
	for _, q := range t.bySource {
		n += len(*q)
	}
	return n
}

// planTicks lays out a periodic effect cast at now. Haste shortens the
// interval, so the effect holds D/(R/haste) tick-equivalents: whole ticks at
// k*interval and, when the descriptor allows it, one partial tick at now+D
// carrying the fractional remainder.
func planTicks(source spells.AbilityName, dot *spells.TickDescriptor, secondaries []character.StatName, now time.Duration, haste float64) []*pendingTick {
	if dot == nil || dot.TickRate <= 0 || haste <= 0 {
		return nil
	}
	interval := dot.TickRate / haste
	equivalents := dot.Duration / interval
	whole := int(math.Floor(equivalents + tickEpsilon))

	ticks := make([]*pendingTick, 0, whole+1)
	for k := 1; k <= whole; k++ {
		ticks = append(ticks, &pendingTick{
			executeAt:   now + spells.Seconds(float64(k)*interval),
			source:      source,
			coeff:       dot.Coeff,
			weight:      1,
			secondaries: secondaries,
		})
	}
	if remainder := equivalents - float64(whole); dot.Partial && remainder > tickEpsilon {
		ticks = append(ticks, &pendingTick{
			executeAt:   now + spells.Seconds(dot.Duration),
			source:      source,
			coeff:       dot.Coeff,
			weight:      remainder,
			secondaries: secondaries,
		})
	}
	return ticks
}
