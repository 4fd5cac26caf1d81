package character

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StatName identifies a character stat.
type StatName string

const (
	StatIntellect   StatName = "intellect"
	StatHaste       StatName = "haste"
	StatCrit        StatName = "crit"
	StatMastery     StatName = "mastery"
	StatVersatility StatName = "versatility"
)

// ParseStat normalizes a stat name. "vers" is accepted for versatility.
func ParseStat(raw string) (StatName, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "intellect", "int":
		return StatIntellect, nil
	case "haste":
		return StatHaste, nil
	case "crit", "critical_strike":
		return StatCrit, nil
	case "mastery":
		return StatMastery, nil
	case "versatility", "vers":
		return StatVersatility, nil
	default:
		return "", fmt.Errorf("unknown stat '%s'", raw)
	}
}

// UnmarshalYAML accepts any spelling ParseStat understands.
func (s *StatName) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	stat, err := ParseStat(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = stat
	return nil
}

// Stats represents character statistics. Secondaries are ratings, not percentages.
type Stats struct {
	Intellect   float64 `yaml:"intellect"`
	Haste       float64 `yaml:"haste"`
	Crit        float64 `yaml:"crit"`
	Mastery     float64 `yaml:"mastery"`
	Versatility float64 `yaml:"versatility"`
}

// StatsFromMap builds Stats from a name → value map.
func StatsFromMap(m map[string]float64) (Stats, error) {
	var s Stats
	for raw, v := range m {
		stat, err := ParseStat(raw)
		if err != nil {
			return Stats{}, err
		}
		s.Add(stat, v)
	}
	return s, nil
}

// Get returns the value of a single stat.
func (s Stats) Get(stat StatName) float64 {
	switch stat {
	case StatIntellect:
		return s.Intellect
	case StatHaste:
		return s.Haste
	case StatCrit:
		return s.Crit
	case StatMastery:
		return s.Mastery
	case StatVersatility:
		return s.Versatility
	default:
		return 0
	}
}

// Add increases a single stat.
func (s *Stats) Add(stat StatName, value float64) {
	switch stat {
	case StatIntellect:
		s.Intellect += value
	case StatHaste:
		s.Haste += value
	case StatCrit:
		s.Crit += value
	case StatMastery:
		s.Mastery += value
	case StatVersatility:
		s.Versatility += value
	}
}

// Bonus is an additive stat modifier contributed by an active buff.
type Bonus struct {
	Stat  StatName
	Value float64
}

// EffectiveStats folds additive buffs into base and applies diminishing returns
// to the secondaries. Intellect is never diminished.
func EffectiveStats(base Stats, bonuses []Bonus) Stats {
	s := base
	for _, b := range bonuses {
		s.Add(b.Stat, b.Value)
	}
	s.Haste = diminish(s.Haste, hasteRatingPerPercent)
	s.Crit = diminish(s.Crit, critRatingPerPercent)
	s.Mastery = diminish(s.Mastery, masteryRatingPerPercent)
	s.Versatility = diminish(s.Versatility, versRatingPerPercent)
	return s
}
