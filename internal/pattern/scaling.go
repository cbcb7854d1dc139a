package pattern

import "math"

// minReduction keeps a saturated playfield from scaling batches to nothing.
const minReduction = 0.1

// ReductionFactor returns the batch size multiplier for the given population.
// Up to threshold of cap it is 1; above, it falls by slope per unit of ratio.
func ReductionFactor(live, cap int, threshold, slope float64) float64 {
	if cap <= 0 {
		return minReduction
	}
	ratio := float64(live) / float64(cap)
	if ratio <= threshold {
		return 1
	}
	return math.Max(minReduction, 1-(ratio-threshold)*slope)
}

// ScaleCount applies factor to n, never returning less than floor (and never
// less than one).
func ScaleCount(n int, factor float64, floor int) int {
	if floor < 1 {
		floor = 1
	}
	c := int(math.Floor(float64(n) * factor))
	if c < floor {
		return floor
	}
	return c
}

// GrowCount returns base + floor(ln(d+1)*growth).
func GrowCount(base int, growth, difficulty float64) int {
	if difficulty < 0 {
		difficulty = 0
	}
	return base + int(math.Floor(math.Log(difficulty+1)*growth))
}
