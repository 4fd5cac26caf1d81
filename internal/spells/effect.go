package spells

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"disc-ramp-sim/internal/character"
	"disc-ramp-sim/internal/effects"

	"gopkg.in/yaml.v3"
)

// EffectKind tags what an effect does when its ability is cast.
type EffectKind int

const (
	// KindNone carries cast time and periodic data only (Shadowfiend).
	KindNone EffectKind = iota
	KindDamage
	KindHeal
	KindBuff
	KindAtonementExtension
	// KindSpecial is resolved by ability-specific bookkeeping (Penance bolts).
	KindSpecial
)

var kindNames = map[EffectKind]string{
	KindNone:               "none",
	KindDamage:             "damage",
	KindHeal:               "heal",
	KindBuff:               "buff",
	KindAtonementExtension: "atonement_extension",
	KindSpecial:            "special",
}

func (k EffectKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EffectKind(%d)", int(k))
}

// UnmarshalYAML rejects unknown effect tags.
func (k *EffectKind) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		*k = KindNone
	case "damage":
		*k = KindDamage
	case "heal", "healing":
		*k = KindHeal
	case "buff":
		*k = KindBuff
	case "atonement_extension", "atonementextension":
		*k = KindAtonementExtension
	case "special":
		*k = KindSpecial
	default:
		return fmt.Errorf("%w: line %d: unknown effect type '%s'", ErrMalformedEffect, value.Line, raw)
	}
	return nil
}

// AtonementPos says whether a granted atonement window starts at cast begin or cast end.
type AtonementPos string

const (
	AtonementStart AtonementPos = "start"
	AtonementEnd   AtonementPos = "end"
)

// UnmarshalYAML accepts "start" or "end".
func (p *AtonementPos) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch AtonementPos(strings.ToLower(strings.TrimSpace(raw))) {
	case AtonementStart:
		*p = AtonementStart
	case AtonementEnd:
		*p = AtonementEnd
	default:
		return fmt.Errorf("%w: line %d: atonement_pos must be start or end, got '%s'", ErrMalformedEffect, value.Line, raw)
	}
	return nil
}

// Effect tags.
const (
	// TagSqrt scales a multi-target heal by sqrt(targets) instead of targets.
	TagSqrt = "sqrt"
	// TagBoonScaling grows the effect with the boon accumulator at cast time.
	TagBoonScaling = "boon_scaling"
)

// TickDescriptor describes the periodic part of a damage-over-time or pet ability.
type TickDescriptor struct {
	TickRate float64 `yaml:"tick_rate"`
	Coeff    float64 `yaml:"coeff"`
	Duration float64 `yaml:"duration"`
	// Partial adds a final fractional tick for the haste remainder.
	Partial bool `yaml:"partial"`
}

// Effect is one entry in an ability's effect list. Times are in seconds.
type Effect struct {
	Kind        EffectKind           `yaml:"type"`
	CastTime    float64              `yaml:"cast_time"`
	Cost        float64              `yaml:"cost"`
	Coeff       float64              `yaml:"coeff"`
	Cooldown    float64              `yaml:"cooldown"`
	Secondaries []character.StatName `yaml:"secondaries"`
	Targets     int                  `yaml:"targets"`
	Tags        []string             `yaml:"tags"`
	Overheal    float64              `yaml:"overheal"`

	// Atonement transfer from damage effects loses this fraction to overhealing.
	AtoneOverheal float64      `yaml:"atone_overheal"`
	Atonement     float64      `yaml:"atonement"`
	AtonementPos  AtonementPos `yaml:"atonement_pos"`
	Extension     float64      `yaml:"extension"`

	BuffDuration float64            `yaml:"buff_duration"`
	BuffKind     effects.BuffKind   `yaml:"buff_type"`
	Stat         character.StatName `yaml:"stat"`
	Value        float64            `yaml:"value"`
	Multiplier   float64            `yaml:"multiplier"`
	OnExpire     AbilityName        `yaml:"on_expire"`

	// DebuffDuration makes a damage effect also apply a special buff named
	// after its ability (Schism).
	DebuffDuration float64 `yaml:"debuff_duration"`

	Bolts       int         `yaml:"bolts"`
	BoltAbility AbilityName `yaml:"bolt_ability"`
	BoonStacks  float64     `yaml:"boon_stacks"`

	EmpoweredBy         AbilityName `yaml:"empowered_by"`
	EmpoweredMultiplier float64     `yaml:"empowered_multiplier"`
	EmpoweredAtonement  float64     `yaml:"empowered_atonement"`

	Dot *TickDescriptor `yaml:"dot"`
}

// HasTag reports whether the effect carries tag.
func (e *Effect) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// CastDuration returns the unhasted cast time.
func (e *Effect) CastDuration() time.Duration {
	return Seconds(e.CastTime)
}

// Seconds converts a seconds value from the spell data into a duration.
func Seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func validateEffect(name AbilityName, idx int, e *Effect, known func(AbilityName) bool) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s effect %d (%s): %s", ErrMalformedEffect, name, idx, e.Kind, fmt.Sprintf(format, args...))
	}
	if e.CastTime < 0 {
		return fail("negative cast_time")
	}
	switch e.Kind {
	case KindDamage, KindHeal:
		if e.Secondaries == nil {
			return fail("missing secondaries")
		}
		if e.Coeff <= 0 {
			return fail("coeff must be > 0")
		}
		if e.Overheal < 0 || e.Overheal > 1 || e.AtoneOverheal < 0 || e.AtoneOverheal > 1 {
			return fail("overheal fractions must be within [0,1]")
		}
	case KindBuff:
		if e.BuffDuration <= 0 {
			return fail("missing buff_duration")
		}
		if e.BuffKind == effects.BuffStats && e.Stat == "" {
			return fail("stat buff without stat")
		}
	case KindAtonementExtension:
		if e.Extension < 0 {
			return fail("negative extension")
		}
	case KindSpecial:
		if e.Bolts > 0 && !known(e.BoltAbility) {
			return fail("bolt_ability '%s' is not in the registry", e.BoltAbility)
		}
	}
	if e.Kind == KindHeal && e.Targets < 1 {
		return fail("heal needs targets >= 1")
	}
	if e.Atonement > 0 {
		if e.AtonementPos == "" {
			return fail("atonement without atonement_pos")
		}
		if e.Targets < 1 {
			return fail("atonement needs targets >= 1")
		}
	}
	if e.OnExpire != "" && !known(e.OnExpire) {
		return fail("on_expire '%s' is not in the registry", e.OnExpire)
	}
	if e.EmpoweredBy != "" && e.EmpoweredMultiplier <= 0 && e.EmpoweredAtonement <= 0 {
		return fail("empowered_by without a multiplier or atonement bonus")
	}
	if d := e.Dot; d != nil {
		if d.TickRate <= 0 || d.Coeff <= 0 || d.Duration <= 0 {
			return fail("incomplete dot (tick_rate, coeff, duration required)")
		}
		if e.Secondaries == nil {
			return fail("dot without secondaries")
		}
	}
	return nil
}
