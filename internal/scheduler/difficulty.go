// Package scheduler advances the difficulty scalar and decides when, and
// which, patterns spawn.
package scheduler

import (
	"math"

	"github.com/vovakirdan/danmaku/internal/config"
)

// Increment records one difficulty step.
type Increment struct {
	From, To float64
}

// NextDifficulty returns the difficulty after one increment from d, clamped
// to the ceiling.
func NextDifficulty(cfg config.DifficultyConfig, d float64) float64 {
	var inc float64
	switch cfg.Growth {
	case config.GrowthStepped:
		inc = steppedIncrement(cfg.Steps, d)
	default:
		factor := math.Max(0.2, 1/math.Log(d+math.E))
		inc = math.Max(cfg.MinIncrement, factor*cfg.Scale)
	}
	return math.Min(cfg.Ceiling, d+inc)
}

func steppedIncrement(steps []config.StepConfig, d float64) float64 {
	if len(steps) == 0 {
		return 0
	}
	for _, s := range steps {
		if d < s.Below {
			return s.Factor
		}
	}
	return steps[len(steps)-1].Factor
}

// Growth maps difficulty to the [0, 1] cadence progress used for spawn
// intervals. It is linear up to 10 and nearly flat up to saturation.
func Growth(d, saturation float64) float64 {
	if d < 10 {
		return math.Max(0, d/10)
	}
	return 0.9 + (math.Min(d, saturation)-10)/50
}

// Cadence returns the spawn interval range in seconds for difficulty d.
func Cadence(cfg config.CadenceConfig, d float64) (lo, hi float64) {
	g := Growth(d, cfg.Saturation)
	lo = math.Max(cfg.MinFloor, cfg.MinStart-cfg.MinSpan*g)
	hi = math.Max(cfg.MaxFloor, cfg.MaxStart-cfg.MaxSpan*g)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Backoff returns the interval multiplier for a population at ratio of the
// cap: 1 up to the threshold, then growing linearly.
func Backoff(cfg config.ThresholdConfig, ratio float64) float64 {
	if ratio <= cfg.Threshold {
		return 1
	}
	return 1 + (ratio-cfg.Threshold)*cfg.Slope
}
