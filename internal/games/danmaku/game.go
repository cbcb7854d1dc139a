// Package danmaku adapts the simulation world to the platform's Game
// interface. Two variants are registered: a flat playfield and one with a
// depth axis.
package danmaku

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/registry"
	"github.com/vovakirdan/danmaku/internal/storage"
	"github.com/vovakirdan/danmaku/internal/world"
)

const (
	IDFlat  = "danmaku"
	IDDepth = "danmaku3d"
)

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset string
	recordStore      *storage.Store
	logger           *log.Logger
)

// SetConfigPath sets a custom YAML overlay path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard", "fixed").
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetRecordStore makes sessions persist their runs. nil keeps records in memory.
func SetRecordStore(s *storage.Store) {
	recordStore = s
}

// SetLogger sets the logger handed to new worlds.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game wraps one world.
type Game struct {
	variant config.Variant
	cfg     config.Config
	world   *world.World
	snap    world.Snapshot
	godMode bool
}

// New creates the flat variant.
func New() *Game {
	return &Game{variant: config.VariantFlat}
}

// NewDepth creates the variant with a depth axis.
func NewDepth() *Game {
	return &Game{variant: config.VariantDepth}
}

func init() {
	registry.Register(IDFlat, func() registry.Game {
		return New()
	})
	registry.Register(IDDepth, func() registry.Game {
		return NewDepth()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == config.VariantDepth {
		return IDDepth
	}
	return IDFlat
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == config.VariantDepth {
		return "Danmaku 3D"
	}
	return "Danmaku"
}

// Variant returns the engine flavour.
func (g *Game) Variant() config.Variant {
	return g.variant
}

// Reset loads the configuration and builds a new world in the menu state.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	cfg, err := config.Resolve(configPath, g.variant, config.ParsePreset(difficultyPreset))
	if err != nil {
		return fmt.Errorf("danmaku: %w", err)
	}

	var records world.Records
	var best *storage.BestTimes
	if recordStore != nil {
		best = storage.NewBestTimes(recordStore, g.ID())
		records = best
	}

	w, err := world.New(cfg, rc.Seed, records, logger)
	if err != nil {
		return fmt.Errorf("danmaku: %w", err)
	}
	if best != nil {
		best.Difficulty = w.Difficulty
	}

	g.cfg = cfg
	g.world = w
	g.godMode = false
	g.snap = w.Snapshot()
	return nil
}

// Step applies the input edges, steers the ship and advances the world.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.world == nil {
		return core.StepResult{}
	}
	w := g.world

	if in.Has(core.ActionConfirm) && w.State() == core.StateMenu {
		w.StartGame()
		g.godMode = false
	}
	if in.Has(core.ActionRestart) && w.State() == core.StateGameOver {
		w.Restart()
		g.godMode = false
	}
	if in.Has(core.ActionPause) {
		if w.Paused() {
			w.Resume()
		} else {
			w.Pause()
		}
	}
	if in.Has(core.ActionDebug) {
		w.SetDebugMode(!w.DebugMode())
		if !w.DebugMode() {
			g.godMode = false
		}
	}
	if in.Has(core.ActionInvincible) {
		if g.godMode {
			w.SetInvincible(false)
			g.godMode = false
		} else {
			g.godMode = w.DebugMode() && w.SetInvincible(true)
		}
	}

	w.SetPlayerVelocity(in.Direction())
	g.snap = w.Update(dt.Seconds())

	return core.StepResult{State: g.State()}
}

// State returns the session summary.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		State:        g.snap.State,
		SurvivalTime: g.snap.SurvivalTime,
		Difficulty:   g.snap.Difficulty,
		BestTime:     g.snap.BestTime,
		NewRecord:    g.snap.NewRecord,
		Paused:       g.snap.Paused,
	}
}

// Snapshot returns the last captured frame.
func (g *Game) Snapshot() world.Snapshot {
	return g.snap
}
