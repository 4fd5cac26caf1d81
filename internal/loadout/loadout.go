package loadout

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// ErrInvalidLoadout is returned for loadouts naming unknown or misplaced modifiers.
var ErrInvalidLoadout = errors.New("invalid loadout")

// Loadout is the set of gear and talent choices a ramp is evaluated with.
type Loadout struct {
	DefaultLoadout bool     `yaml:"default_loadout"`
	ChaosBrand     bool     `yaml:"chaos_brand"`
	Legendaries    []string `yaml:"legendaries"`
	Soulbinds      []string `yaml:"soulbinds"`
	// Trinkets maps a trinket to the stat amount it grants at the chosen item level.
	Trinkets map[string]float64 `yaml:"trinkets"`
	// Conduits maps a conduit to its item level.
	Conduits map[string]float64 `yaml:"conduits"`
}

// Has reports whether a legendary or soulbind is enabled.
func (l *Loadout) Has(name string) bool {
	return slices.Contains(l.Legendaries, name) || slices.Contains(l.Soulbinds, name)
}

// Clone returns a copy that shares no slices or maps with l.
func (l Loadout) Clone() Loadout {
	out := l
	out.Legendaries = slices.Clone(l.Legendaries)
	out.Soulbinds = slices.Clone(l.Soulbinds)
	out.Trinkets = maps.Clone(l.Trinkets)
	out.Conduits = maps.Clone(l.Conduits)
	return out
}

// Validate canonicalizes names and checks each one is listed under the right
// category. Conduit names are checked later, at derive time, so unknown
// conduits stay non-fatal.
func (l *Loadout) Validate() error {
	seen := map[string]struct{}{}
	check := func(names []string, expected Category) error {
		for i, raw := range names {
			name := Normalize(raw)
			names[i] = name
			cat, ok := CategoryOf(name)
			if !ok {
				return fmt.Errorf("%w: unknown %s '%s'", ErrInvalidLoadout, expected, raw)
			}
			if cat != expected {
				return fmt.Errorf("%w: '%s' is a %s but listed under %s", ErrInvalidLoadout, name, cat, expected)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("%w: '%s' selected more than once", ErrInvalidLoadout, name)
			}
			seen[name] = struct{}{}
		}
		return nil
	}
	if err := check(l.Legendaries, CategoryLegendary); err != nil {
		return err
	}
	if err := check(l.Soulbinds, CategorySoulbind); err != nil {
		return err
	}
	trinkets := make(map[string]float64, len(l.Trinkets))
	for raw, value := range l.Trinkets {
		name := Normalize(raw)
		if cat, ok := CategoryOf(name); !ok || cat != CategoryTrinket {
			return fmt.Errorf("%w: unknown trinket '%s'", ErrInvalidLoadout, raw)
		}
		if value < 0 {
			return fmt.Errorf("%w: trinket '%s' has negative value %v", ErrInvalidLoadout, name, value)
		}
		trinkets[name] = value
	}
	if l.Trinkets != nil {
		l.Trinkets = trinkets
	}
	if l.Conduits != nil {
		conduits := make(map[string]float64, len(l.Conduits))
		for raw, ilvl := range l.Conduits {
			conduits[Normalize(raw)] = ilvl
		}
		l.Conduits = conduits
	}
	return nil
}

// FromFlags builds a Loadout from the flat settings form: one key per
// modifier, booleans for toggles and numbers for trinket values. conduits maps
// conduit name to item level. Unrecognized keys are ignored.
func FromFlags(settings map[string]any, conduits map[string]float64) Loadout {
	var l Loadout
	keys := slices.Sorted(maps.Keys(settings))
	for _, raw := range keys {
		value := settings[raw]
		name := Normalize(raw)
		cat, ok := CategoryOf(name)
		if !ok {
			slog.Debug("ignoring unrecognized loadout flag", "flag", raw)
			continue
		}
		switch cat {
		case CategoryGlobal:
			if !truthy(value) {
				continue
			}
			switch name {
			case FlagDefaultLoadout:
				l.DefaultLoadout = true
			case FlagChaosBrand:
				l.ChaosBrand = true
			}
		case CategoryLegendary:
			if truthy(value) {
				l.Legendaries = append(l.Legendaries, name)
			}
		case CategorySoulbind:
			if truthy(value) {
				l.Soulbinds = append(l.Soulbinds, name)
			}
		case CategoryTrinket:
			if n, ok := number(value); ok && n > 0 {
				if l.Trinkets == nil {
					l.Trinkets = map[string]float64{}
				}
				l.Trinkets[name] = n
			}
		case CategoryConduit:
			if n, ok := number(value); ok && n > 0 {
				if l.Conduits == nil {
					l.Conduits = map[string]float64{}
				}
				l.Conduits[name] = n
			}
		}
	}
	for raw, ilvl := range conduits {
		if l.Conduits == nil {
			l.Conduits = map[string]float64{}
		}
		l.Conduits[Normalize(raw)] = ilvl
	}
	return l
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case nil:
		return false
	default:
		n, ok := number(v)
		return ok && n != 0
	}
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}
