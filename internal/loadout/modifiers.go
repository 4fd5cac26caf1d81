package loadout

import (
	"strings"

	"disc-ramp-sim/internal/spells"
)

// Category groups loadout modifiers by where they come from.
type Category string

const (
	CategoryGlobal    Category = "global"
	CategoryLegendary Category = "legendary"
	CategorySoulbind  Category = "soulbind"
	CategoryTrinket   Category = "trinket"
	CategoryConduit   Category = "conduit"
)

const (
	FlagDefaultLoadout = "Default Loadout"
	FlagChaosBrand     = "Chaos Brand"

	ClarityOfMind = "Clarity of Mind"
	PenitentOne   = "Penitent One"

	Pelagos = "Pelagos"
	Kleia   = "Kleia"
)

var modifierCategory = map[string]Category{
	FlagDefaultLoadout: CategoryGlobal,
	FlagChaosBrand:     CategoryGlobal,

	ClarityOfMind: CategoryLegendary,
	PenitentOne:   CategoryLegendary,

	Pelagos: CategorySoulbind,
	Kleia:   CategorySoulbind,

	string(spells.DivineBell):      CategoryTrinket,
	string(spells.FlameOfBattle):   CategoryTrinket,
	string(spells.ShadowedOrb):     CategoryTrinket,
	string(spells.SoullettingRuby): CategoryTrinket,
	string(spells.MoonlitPrism):    CategoryTrinket,

	spells.Exaltation:          CategoryConduit,
	spells.ShiningRadiance:     CategoryConduit,
	spells.PainTransformation:  CategoryConduit,
	spells.RabidShadows:        CategoryConduit,
	spells.CourageousAscension: CategoryConduit,
	spells.ShatteredPerception: CategoryConduit,
}

// aliases maps lower-cased spellings found in older settings files.
var aliases = map[string]string{
	"defaultloadout": FlagDefaultLoadout,
	"chaosbrand":     FlagChaosBrand,
}

const (
	// ClarityRaptureAtonement replaces Rapture's atonement duration.
	ClarityRaptureAtonement = 21.0
	// ClaritySpiritShellExtension is the atonement extension Spirit Shell gains.
	ClaritySpiritShellExtension = 3.0
	// ClarityShieldAtonement is added to Power Word: Shield's window during Rapture.
	ClarityShieldAtonement = 6.0

	// PenitentOneExpectedBolts is the proc chance times the extra bolts per proc.
	PenitentOneExpectedBolts = 0.84 * 2

	PelagosMastery     = 315.0
	PelagosDurationSec = 30.0

	KleiaCrit = 330.0

	ChaosBrandMultiplier = 1.05

	BoonStackBonus                = 0.03
	CourageousAscensionStackBonus = 0.04

	ExaltationRaptureDurationSec     = 9.0
	ExaltationSpiritShellDurationSec = 11.0
	ExaltationSpiritShellMultiplier  = 1.09

	// DefaultConduitItemLevel is used for the conduits Default Loadout enables.
	DefaultConduitItemLevel = 239.0
)

// Normalize returns the canonical modifier name, or the trimmed input when the
// name is unknown.
func Normalize(name string) string {
	trimmed := strings.TrimSpace(name)
	if _, ok := modifierCategory[trimmed]; ok {
		return trimmed
	}
	folded := strings.ToLower(trimmed)
	if canon, ok := aliases[strings.ReplaceAll(folded, " ", "")]; ok {
		return canon
	}
	for canon := range modifierCategory {
		if strings.ToLower(canon) == folded {
			return canon
		}
	}
	return trimmed
}

// CategoryOf returns the category and whether the modifier is known.
func CategoryOf(name string) (Category, bool) {
	c, ok := modifierCategory[name]
	return c, ok
}

// IsKnown returns true if the modifier name is recognized.
func IsKnown(name string) bool {
	_, ok := modifierCategory[name]
	return ok
}

// KnownModifiers returns all modifier names keyed by name.
func KnownModifiers() map[string]Category {
	out := make(map[string]Category, len(modifierCategory))
	for k, v := range modifierCategory {
		out[k] = v
	}
	return out
}
