package engine

import "disc-ramp-sim/internal/spells"

// castQueue is the FIFO of abilities still to be cast in a run.
type castQueue struct {
	items []spells.AbilityName
}

func newCastQueue(sequence []spells.AbilityName) castQueue {
	items := make([]spells.AbilityName, len(sequence))
	copy(items, sequence)
	return castQueue{items: items}
}

func (q *castQueue) pop() (spells.AbilityName, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	name := q.items[0]
	q.items = q.items[1:]
	return name, true
}

// pushFront queues n copies of name ahead of everything else.
func (q *castQueue) pushFront(name spells.AbilityName, n int) {
	if n <= 0 {
		return
	}
	front := make([]spells.AbilityName, n, n+len(q.items))
	for i := range front {
		front[i] = name
	}
	q.items = append(front, q.items...)
}

func (q *castQueue) len() int {
	return len(q.items)
}

func (q *castQueue) remaining() []spells.AbilityName {
	out := make([]spells.AbilityName, len(q.items))
	copy(out, q.items)
	return out
}
