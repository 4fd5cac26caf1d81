package character

// Rating required for 1% of a secondary stat before diminishing returns.
const (
	hasteRatingPerPercent   = 33.0
	critRatingPerPercent    = 35.0
	masteryRatingPerPercent = 35.0
	versRatingPerPercent    = 40.0
)

type drBracket struct {
	upToPercent float64
	penalty     float64
}

// Brackets are cumulative: the slice of a stat's percentage that falls inside
// a bracket is reduced by that bracket's penalty. Nothing past the last
// bracket counts.
var drBrackets = []drBracket{
	{upToPercent: 30, penalty: 0},
	{upToPercent: 39, penalty: 0.1},
	{upToPercent: 47, penalty: 0.2},
	{upToPercent: 54, penalty: 0.3},
	{upToPercent: 66, penalty: 0.4},
	{upToPercent: 126, penalty: 0.5},
}

// diminish returns the rating that survives diminishing returns.
func diminish(rating, ratingPerPercent float64) float64 {
	if rating <= 0 {
		return rating
	}
	pct := rating / ratingPerPercent
	effective := 0.0
	lower := 0.0
	for _, b := range drBrackets {
		if pct <= lower {
			break
		}
		upper := b.upToPercent
		if pct < upper {
			upper = pct
		}
		effective += (upper - lower) * (1 - b.penalty)
		lower = b.upToPercent
	}
	return effective * ratingPerPercent
}
