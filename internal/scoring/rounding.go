package scoring

import "math"

const (
	MinBand = 4.0
	MaxBand = 9.0
)

// RoundIELTS quantises a score to the nearest half band using IELTS
// conventions: .25 and above rounds up to the half, .75 and above to the
// next whole band.
func RoundIELTS(score float64) float64 {
	whole := math.Floor(score)
	frac := score - whole

	switch {
	case frac < 0.25:
		return whole
	case frac < 0.75:
		return whole + 0.5
	default:
		return whole + 1
	}
}

// Clamp limits a band to [MinBand, MaxBand].
func Clamp(score float64) float64 {
	return math.Max(MinBand, math.Min(MaxBand, score))
}
