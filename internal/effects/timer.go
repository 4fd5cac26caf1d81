package effects

import "time"

// Timer tracks the timestamp at which the next queued cast may begin.
type Timer struct {
	readyAt time.Duration
}

// Ready returns true if the timer is ready at the provided time.
func (t *Timer) Ready(now time.Duration) bool {
	return now >= t.readyAt
}

// Remaining returns the remaining duration until the timer is ready.
func (t *Timer) Remaining(now time.Duration) time.Duration {
	if now >= t.readyAt {
		return 0
	}
	return t.readyAt - now
}

// Advance pushes the ready timestamp back by d. Casts chain from the previous
// ready point, not from the moment they were dispatched.
func (t *Timer) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	t.readyAt += d
}

// ReadyAt returns the current ready timestamp.
func (t *Timer) ReadyAt() time.Duration {
	return t.readyAt
}
