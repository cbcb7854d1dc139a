// Package governor watches the frame rate and throttles cosmetic effects.
// It never touches gameplay entities.
package governor

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
)

// Action is the change a Decision asks the world to apply.
type Action int

const (
	// Keep leaves effects as they are.
	Keep Action = iota
	// Purge drops every particle and disables new ones.
	Purge
	// Trim enters low-performance mode and trims particles to the reduced budget.
	Trim
	// Restore leaves low-performance mode with the full budget.
	Restore
)

func (a Action) String() string {
	switch a {
	case Purge:
		return "purge"
	case Trim:
		return "trim"
	case Restore:
		return "restore"
	default:
		return "keep"
	}
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Action         Action
	Budget         int
	LowPerformance bool
	AverageFPS     float64
}

// Governor keeps a ring of recent frame rates and evaluates them every
// CheckInterval seconds of observed time.
type Governor struct {
	cfg     config.GovernorConfig
	initial int
	logger  *log.Logger

	samples []float64
	next    int
	filled  int
	elapsed float64

	budget  int
	lowPerf bool
}

// New creates a governor with the given full particle budget.
func New(cfg config.GovernorConfig, budget int, logger *log.Logger) *Governor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	size := cfg.HistorySize
	if size <= 0 {
		size = 1
	}
	return &Governor{
		cfg:     cfg,
		initial: budget,
		logger:  logger,
		samples: make([]float64, size),
		budget:  budget,
	}
}

// Reset clears history and restores the full budget.
func (g *Governor) Reset() {
	for i := range g.samples {
		g.samples[i] = 0
	}
	g.next, g.filled, g.elapsed = 0, 0, 0
	g.budget = g.initial
	g.lowPerf = false
}

// Budget returns the current particle budget.
func (g *Governor) Budget() int {
	return g.budget
}

// LowPerformance reports whether reduced effects are active.
func (g *Governor) LowPerformance() bool {
	return g.lowPerf
}

// Average returns the mean of the recorded frame rates.
func (g *Governor) Average() float64 {
	if g.filled == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < g.filled; i++ {
		sum += g.samples[i]
	}
	return sum / float64(g.filled)
}

// Observe records one frame that took frame seconds. Zero, negative and
// non-finite frames are ignored.
func (g *Governor) Observe(frame float64) Decision {
	keep := Decision{Action: Keep, Budget: g.budget, LowPerformance: g.lowPerf}
	if !g.cfg.Enabled || frame <= 0 || math.IsNaN(frame) || math.IsInf(frame, 0) {
		return keep
	}

	g.samples[g.next] = 1 / frame
	g.next = (g.next + 1) % len(g.samples)
	if g.filled < len(g.samples) {
		g.filled++
	}

	g.elapsed += frame
	if !core.Reached(g.elapsed, g.cfg.CheckInterval) {
		return keep
	}
	g.elapsed = 0
	return g.evaluate()
}

func (g *Governor) evaluate() Decision {
	avg := g.Average()
	d := Decision{Action: Keep, AverageFPS: avg}

	switch {
	case avg < g.cfg.CriticalFPS:
		if g.budget != 0 {
			d.Action = Purge
			g.logger.Info("frame rate critical, particles disabled", "fps", avg)
		}
		g.budget = 0
	case avg < g.cfg.LowFPS:
		reduced := int(math.Floor(float64(g.initial) * g.cfg.LowBudgetRatio))
		if !g.lowPerf || g.budget != reduced {
			d.Action = Trim
			g.logger.Info("frame rate low, reducing effects", "fps", avg, "budget", reduced)
		}
		g.lowPerf = true
		g.budget = reduced
	case avg > g.cfg.RecoverFPS && (g.lowPerf || g.budget != g.initial):
		d.Action = Restore
		g.logger.Info("frame rate recovered, full effects", "fps", avg)
		g.lowPerf = false
		g.budget = g.initial
	}

	d.Budget = g.budget
	d.LowPerformance = g.lowPerf
	return d
}
