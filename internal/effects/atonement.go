package effects

import "time"

// Atonements tracks open atonement windows as expiration timestamps, sorted
// ascending. A window's timestamp only moves through Extend.
type Atonements struct {
	windows []time.Duration
}

// Apply opens a window that closes at expiration.
func (a *Atonements) Apply(expiration time.Duration) {
	for i, existing := range a.windows {
		if expiration < existing {
			a.windows = append(a.windows, 0)
			copy(a.windows[i+1:], a.windows[i:])
			a.windows[i] = expiration
			return
		}
	}
	a.windows = append(a.windows, expiration)
}

// Extend pushes back every window still open at now (expiration >= now).
func (a *Atonements) Extend(now, by time.Duration) {
	for i, exp := range a.windows {
		if exp >= now {
			a.windows[i] = exp + by
		}
	}
}

// Prune closes windows whose expiration is <= now.
func (a *Atonements) Prune(now time.Duration) {
	kept := a.windows[:0]
	for _, exp := range a.windows {
		if exp > now {
			kept = append(kept, exp)
		}
	}
	a.windows = kept
}

// Count returns the number of windows held.
func (a *Atonements) Count() int {
	return len(a.windows)
}

// Expirations returns a copy of the window timestamps.
func (a *Atonements) Expirations() []time.Duration {
	out := make([]time.Duration, len(a.windows))
	copy(out, a.windows)
	return out
}
