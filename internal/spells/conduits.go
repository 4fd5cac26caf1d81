package spells

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnrecognizedConduit is reported for conduit names outside the table.
var ErrUnrecognizedConduit = errors.New("unrecognized conduit")

// Conduit names.
const (
	Exaltation          = "Exaltation"
	ShiningRadiance     = "Shining Radiance"
	PainTransformation  = "Pain Transformation"
	RabidShadows        = "Rabid Shadows"
	CourageousAscension = "Courageous Ascension"
	ShatteredPerception = "Shattered Perception"
)

type conduitScale struct {
	base    float64
	perRank float64
}

// magnitude = base + perRank*rank
var conduitScales = map[string]conduitScale{
	Exaltation:          {base: 0.0675, perRank: 0.0075},
	ShiningRadiance:     {base: 0.36, perRank: 0.04},
	PainTransformation:  {base: 0.135, perRank: 0.015},
	RabidShadows:        {base: 0.171, perRank: 0.019},
	CourageousAscension: {base: 0.225, perRank: 0.025},
	ShatteredPerception: {base: 0.117, perRank: 0.013},
}

// conduitItemLevels[i] is the lowest item level at rank i+1.
var conduitItemLevels = []float64{145, 158, 171, 184, 200, 213, 226, 239, 252, 265, 278}

// ConduitMagnitude returns the fractional bonus of a conduit at rank. Unknown
// names yield 0 together with ErrUnrecognizedConduit; callers may carry on.
func ConduitMagnitude(name string, rank int) (float64, error) {
	scale, ok := conduitScales[name]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrUnrecognizedConduit, name)
	}
	return scale.base + scale.perRank*float64(rank), nil
}

// ConduitRank maps an item level to a conduit rank. Anything below the first
// entry is rank 1.
func ConduitRank(itemLevel float64) int {
	rank := 1
	for i, ilvl := range conduitItemLevels {
		if itemLevel >= ilvl {
			rank = i + 1
		}
	}
	return rank
}

// Conduits lists the recognized conduit names, sorted.
func Conduits() []string {
	names := make([]string, 0, len(conduitScales))
	for name := range conduitScales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
