package character

const (
	critBase       = 1.05
	critDivisor    = 35.0
	versBase       = 1.0
	versDivisor    = 40.0
	masteryBase    = 1.108
	masteryDivisor = 25.9259
	hasteBase      = 1.0
	hasteDivisor   = 32.0

	atonementBaseTransfer = 0.5
)

// StatMultiplier multiplies one factor per listed secondary. An empty list is 1.
// Intellect is not a secondary and is ignored here.
func StatMultiplier(s Stats, secondaries []StatName) float64 {
	mult := 1.0
	for _, stat := range secondaries {
		switch stat {
		case StatCrit:
			mult *= critBase + s.Crit/critDivisor/100
		case StatVersatility:
			mult *= versBase + s.Versatility/versDivisor/100
		case StatMastery:
			mult *= masteryFactor(s)
		case StatHaste:
			mult *= HasteMultiplier(s)
		}
	}
	return mult
}

// HasteMultiplier compresses cast times and tick intervals. It never scales output.
func HasteMultiplier(s Stats) float64 {
	return hasteBase + s.Haste/hasteDivisor/100
}

// AtonementTransfer is the fraction of damage returned as healing per open window.
func AtonementTransfer(s Stats) float64 {
	return atonementBaseTransfer * masteryFactor(s)
}

func masteryFactor(s Stats) float64 {
	return masteryBase + s.Mastery/masteryDivisor/100
}
