package effects

import (
	"fmt"
	"strings"
	"time"

	"disc-ramp-sim/internal/character"

	"gopkg.in/yaml.v3"
)

// BuffKind separates additive stat buffs from class mechanics.
type BuffKind int

const (
	// BuffSpecial covers class mechanics such as Schism, Rapture or Boon of the Ascended.
	BuffSpecial BuffKind = iota
	// BuffStats adds a flat amount to one stat while active.
	BuffStats
)

func (k BuffKind) String() string {
	if k == BuffStats {
		return "stats"
	}
	return "special"
}

// UnmarshalYAML accepts "stats" or "special".
func (k *BuffKind) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "stats":
		*k = BuffStats
	case "special", "":
		*k = BuffSpecial
	default:
		return fmt.Errorf("line %d: unknown buff type '%s'", value.Line, raw)
	}
	return nil
}

// Buff is one active, time-bounded modifier.
type Buff struct {
	Name       string
	Expiration time.Duration
	Kind       BuffKind
	Stat       character.StatName
	Value      float64
	// Multiplier scales atonement healing while the buff is up (Spirit Shell).
	Multiplier float64
	// OnExpire names an ability cast automatically when the buff runs out.
	OnExpire string
}

// BuffSet holds the buffs active on the player. Expired buffs stay in the set
// until Prune is called.
type BuffSet struct {
	buffs []Buff
}

// Add appends a buff. Buffs with the same name coexist.
func (s *BuffSet) Add(b Buff) {
	s.buffs = append(s.buffs, b)
}

// Active reports whether any buff with the given name is present.
func (s *BuffSet) Active(name string) bool {
	_, ok := s.Find(name)
	return ok
}

// Find returns the first buff with the given name.
func (s *BuffSet) Find(name string) (Buff, bool) {
	for _, b := range s.buffs {
		if b.Name == name {
			return b, true
		}
	}
	return Buff{}, false
}

// Prune removes every buff with expiration <= now and returns the removed
// buffs in insertion order so on-expiry effects can be queued first.
func (s *BuffSet) Prune(now time.Duration) []Buff {
	var expired []Buff
	kept := s.buffs[:0]
	for _, b := range s.buffs {
		if b.Expiration <= now {
			expired = append(expired, b)
			continue
		}
		kept = append(kept, b)
	}
	s.buffs = kept
	return expired
}

// StatBonuses returns the additive contribution of every stat buff.
func (s *BuffSet) StatBonuses() []character.Bonus {
	var out []character.Bonus
	for _, b := range s.buffs {
		if b.Kind != BuffStats {
			continue
		}
		out = append(out, character.Bonus{Stat: b.Stat, Value: b.Value})
	}
	return out
}

// AtonementMultiplier is the product of the multipliers of active special buffs.
func (s *BuffSet) AtonementMultiplier() (float64, bool) {
	mult := 1.0
	found := false
	for _, b := range s.buffs {
		if b.Kind == BuffSpecial && b.Multiplier > 0 {
			mult *= b.Multiplier
			found = true
		}
	}
	return mult, found
}

// Len returns the number of buffs currently held.
func (s *BuffSet) Len() int {
	return len(s.buffs)
}

// Snapshot returns a copy of the held buffs.
func (s *BuffSet) Snapshot() []Buff {
	out := make([]Buff, len(s.buffs))
	copy(out, s.buffs)
	return out
}
