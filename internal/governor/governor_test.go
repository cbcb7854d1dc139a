package governor

import (
	"testing"

	"github.com/vovakirdan/danmaku/internal/config"
)

func run(g *Governor, fps float64, seconds float64) Decision {
	var last Decision
	frame := 1 / fps
	for t := 0.0; t < seconds; t += frame {
		if d := g.Observe(frame); d.Action != Keep {
			last = d
		}
	}
	return last
}

func TestGovernorTransitions(t *testing.T) {
	cfg := config.DefaultConfig().Governor
	g := New(cfg, 300, nil)

	if d := run(g, 60, 5); d.Action != Keep || g.Budget() != 300 || g.LowPerformance() {
		t.Fatalf("at 60 fps: decision %v budget %d low %v, expected untouched", d.Action, g.Budget(), g.LowPerformance())
	}

	d := run(g, 40, 5)
	if d.Action != Trim {
		t.Errorf("at 40 fps: action = %v, expected trim", d.Action)
	}
	if g.Budget() != 90 || !g.LowPerformance() {
		t.Errorf("at 40 fps: budget %d low %v, expected 90 and low", g.Budget(), g.LowPerformance())
	}

	d = run(g, 20, 10)
	if d.Action != Purge || g.Budget() != 0 {
		t.Errorf("at 20 fps: action %v budget %d, expected purge and 0", d.Action, g.Budget())
	}

	d = run(g, 62, 10)
	if d.Action != Restore || g.Budget() != 300 || g.LowPerformance() {
		t.Errorf("at 62 fps: action %v budget %d low %v, expected restore", d.Action, g.Budget(), g.LowPerformance())
	}
}

func TestGovernorEvaluatesOnSummedFrames(t *testing.T) {
	cfg := config.DefaultConfig().Governor
	g := New(cfg, 300, nil)

	frames := int(cfg.CheckInterval * 40)
	for i := 0; i < frames; i++ {
		d := g.Observe(1.0 / 40)
		if i < frames-1 && d.Action != Keep {
			t.Fatalf("decision %v at frame %d, expected the first check at frame %d", d.Action, i, frames-1)
		}
		if i == frames-1 && d.Action != Trim {
			t.Errorf("decision at frame %d = %v, expected trim", i, d.Action)
		}
	}
}

func TestGovernorStaysLowUntilRecovered(t *testing.T) {
	cfg := config.DefaultConfig().Governor
	g := New(cfg, 300, nil)
	run(g, 40, 5)

	// 55 fps is between the low and recover thresholds.
	run(g, 55, 10)
	if !g.LowPerformance() || g.Budget() != 90 {
		t.Errorf("at 55 fps: budget %d low %v, expected to stay reduced", g.Budget(), g.LowPerformance())
	}
}

func TestGovernorIgnoresBadFrames(t *testing.T) {
	g := New(config.DefaultConfig().Governor, 300, nil)
	for _, f := range []float64{0, -1} {
		if d := g.Observe(f); d.Action != Keep {
			t.Errorf("Observe(%v) = %v, expected keep", f, d.Action)
		}
	}
	if g.Average() != 0 {
		t.Errorf("Average() = %v, expected 0 after bad frames", g.Average())
	}
}

func TestGovernorDisabled(t *testing.T) {
	cfg := config.DefaultConfig().Governor
	cfg.Enabled = false
	g := New(cfg, 300, nil)
	run(g, 10, 10)
	if g.Budget() != 300 {
		t.Errorf("Budget() = %d, expected 300 when disabled", g.Budget())
	}
}

func TestGovernorReset(t *testing.T) {
	g := New(config.DefaultConfig().Governor, 300, nil)
	run(g, 20, 5)
	g.Reset()
	if g.Budget() != 300 || g.LowPerformance() || g.Average() != 0 {
		t.Errorf("after Reset: budget %d low %v avg %v", g.Budget(), g.LowPerformance(), g.Average())
	}
}
