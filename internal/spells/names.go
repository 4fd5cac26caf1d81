package spells

import "strings"

// AbilityName identifies a castable action in the registry and in cast sequences.
type AbilityName string

// NOTE: keep these in sync with data/disc_spells.yaml.
const (
	MindBlast          AbilityName = "Mind Blast"
	PowerWordSolace    AbilityName = "Power Word: Solace"
	Smite              AbilityName = "Smite"
	Schism             AbilityName = "Schism"
	Penance            AbilityName = "Penance"
	PenanceTick        AbilityName = "PenanceTick"
	AscendedBlast      AbilityName = "Ascended Blast"
	AscendedNova       AbilityName = "Ascended Nova"
	AscendedEruption   AbilityName = "Ascended Eruption"
	PowerWordShield    AbilityName = "Power Word: Shield"
	ShadowMend         AbilityName = "Shadow Mend"
	Rapture            AbilityName = "Rapture"
	PowerWordRadiance  AbilityName = "Power Word: Radiance"
	PurgeTheWicked     AbilityName = "Purge the Wicked"
	Shadowfiend        AbilityName = "Shadowfiend"
	Evangelism         AbilityName = "Evangelism"
	SpiritShell        AbilityName = "Spirit Shell"
	BoonOfTheAscended  AbilityName = "Boon of the Ascended"
	DivineBell         AbilityName = "Instructor's Divine Bell"
	FlameOfBattle      AbilityName = "Flame of Battle"
	ShadowedOrb        AbilityName = "Shadowed Orb"
	SoullettingRuby    AbilityName = "Soulletting Ruby"
	MoonlitPrism       AbilityName = "Moonlit Prism"
)

// AtonementBucket is the healing bucket that collects atonement transfers.
const AtonementBucket = "atonement"

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
