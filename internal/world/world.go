// Package world owns every entity of a session and advances them in a fixed
// order each tick: player, projectiles, particles, collision, scheduler,
// survival time, governor. It is not safe for concurrent use.
package world

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/entity"
	"github.com/vovakirdan/danmaku/internal/governor"
	"github.com/vovakirdan/danmaku/internal/pattern"
	"github.com/vovakirdan/danmaku/internal/scheduler"
)

// World is one simulation instance.
type World struct {
	cfg     config.Config
	logger  *log.Logger
	records Records

	area       core.Bounds
	playerArea core.Bounds
	policy     core.CollisionPolicy
	rules      entity.Rules

	rng     *rand.Rand // Cosmetic draws only
	library *pattern.Library
	sched   *scheduler.Scheduler
	gov     *governor.Governor

	state       core.State
	player      *entity.Player
	projectiles []entity.Projectile
	particles   []entity.Particle

	survival  float64
	best      float64
	newRecord bool
	paused    bool
	debug     bool
	lowPerf   bool
}

// New creates a world in the Menu state. The seed fixes every random draw,
// so identical inputs replay identically. A nil records keeps the best time
// in memory; a nil logger discards output.
func New(cfg config.Config, seed int64, records Records, logger *log.Logger) (*World, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if records == nil {
		records = NewMemoryRecords(0)
	}
	mode, err := core.ParseCollisionMode(cfg.Collision.Mode)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	lib, err := pattern.NewLibrary(cfg, rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	area := core.NewBounds(cfg.World.Width, cfg.World.Height, cfg.World.Depth)
	w := &World{
		cfg:        cfg,
		logger:     logger,
		records:    records,
		area:       area,
		playerArea: area.Inset(cfg.Player.EdgeInset),
		policy: core.CollisionPolicy{
			Mode:        mode,
			XYThreshold: cfg.Collision.XYThreshold,
			ZThreshold:  cfg.Collision.ZThreshold,
		},
		rules: entity.Rules{
			AimTurnRate:     cfg.Tracking.AimTurnRate,
			AimStopDistance: cfg.Tracking.AimStopDistance,
			HomingTurnRate:  cfg.Tracking.HomingTurnRate,
			BoundsMargin:    cfg.Projectile.BoundsMargin,
		},
		rng:     rand.New(rand.NewSource(seed + 2)),
		library: lib,
		sched:   scheduler.New(cfg.Spawn, cfg.Difficulty, lib.Patterns(), rand.New(rand.NewSource(seed+1))),
		gov:     governor.New(cfg.Governor, cfg.Particles.MaxParticles, logger),
		state:   core.StateMenu,
	}

	best, err := records.LoadBestTime()
	if err != nil {
		logger.Warn("cannot load best time", "error", err)
	}
	w.best = best
	w.resetSession()
	return w, nil
}

func (w *World) resetSession() {
	spawn := core.Vec3{
		X: w.area.Min.X + w.area.Size().X*w.cfg.Player.SpawnX,
		Y: w.area.Min.Y + w.area.Size().Y*w.cfg.Player.SpawnY,
		Z: w.area.Center().Z,
	}
	w.player = entity.NewPlayer(w.playerArea.Clamp(spawn), w.cfg.Player.Speed, w.cfg.Player.Radius)
	w.player.GrantInvincibility(w.cfg.Player.SpawnGrace)
	w.projectiles = w.projectiles[:0]
	w.particles = w.particles[:0]
	w.survival = 0
	w.newRecord = false
	w.paused = false
	w.lowPerf = false
	w.sched.SetLowPerformance(false)
	w.sched.Reset()
	w.gov.Reset()
}

// StartGame enters Playing from Menu or GameOver. It does nothing while
// already playing.
func (w *World) StartGame() {
	if w.state == core.StatePlaying {
		return
	}
	w.Restart()
}

// Restart resets all session state and enters Playing directly.
func (w *World) Restart() {
	w.resetSession()
	w.state = core.StatePlaying
}

// Reset resets all session state and returns to the menu.
func (w *World) Reset() {
	w.resetSession()
	w.state = core.StateMenu
}

// Pause stops simulation of a playing session. Repeated calls are harmless.
func (w *World) Pause() {
	if w.state == core.StatePlaying {
		w.paused = true
	}
}

// Resume continues a paused session. Repeated calls are harmless.
func (w *World) Resume() {
	w.paused = false
}

// Paused reports whether the session is paused.
func (w *World) Paused() bool {
	return w.paused
}

// State returns the session state.
func (w *World) State() core.State {
	return w.state
}

// SurvivalTime returns simulated seconds survived in this session.
func (w *World) SurvivalTime() float64 {
	return w.survival
}

// Difficulty returns the current difficulty scalar.
func (w *World) Difficulty() float64 {
	return w.sched.Difficulty()
}

// BestTime returns the best recorded survival time.
func (w *World) BestTime() float64 {
	return w.best
}

// Bounds returns the playfield.
func (w *World) Bounds() core.Bounds {
	return w.area
}

// SetPlayerVelocity sets the ship's movement direction. The direction is
// normalized when more than one axis is set.
func (w *World) SetPlayerVelocity(dir core.Vec3) {
	if !w.player.Alive {
		dir = core.Vec3{}
	}
	w.player.SetVelocity(dir)
}

// SetDebugMode enables the debug-only controls. Leaving debug mode drops an
// active debug invincibility.
func (w *World) SetDebugMode(on bool) {
	w.debug = on
	if !on {
		w.SetInvincible(false)
	}
}

// DebugMode reports whether debug controls are enabled.
func (w *World) DebugMode() bool {
	return w.debug
}

// SetInvincible toggles untimed invincibility. Turning it on is only honored
// in debug mode and disqualifies the session from records. It reports
// whether the player is invincible afterwards.
func (w *World) SetInvincible(on bool) bool {
	switch {
	case on && !w.debug:
		w.logger.Debug("invincibility requires debug mode")
	case on:
		w.player.SetDebugInvincible(true)
	case w.player.Invincible && w.player.InvincibleLeft == 0:
		w.player.SetDebugInvincible(false)
	}
	return w.player.Invincible
}

// ProjectileCap returns the live projectile ceiling at the current difficulty.
func (w *World) ProjectileCap() int {
	c := w.cfg.Projectile.Cap
	return int(math.Min(c.Max, c.Base+c.PerDifficulty*w.sched.Difficulty()))
}

// clampDelta maps dt to [0, MaxDelta]. Large steps are cut so fast objects
// cannot tunnel through the player.
func (w *World) clampDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	return math.Min(dt, w.cfg.World.MaxDelta)
}

// Update advances the world by dt seconds and returns the resulting frame.
func (w *World) Update(dt float64) Snapshot {
	frame := dt
	dt = w.clampDelta(dt)
	if w.paused {
		return w.Snapshot()
	}

	switch w.state {
	case core.StatePlaying:
		w.updatePlayer(dt)
		w.updateProjectiles(dt)
		if w.gov.Budget() > 0 {
			w.updateParticles(dt)
		}
		w.resolveCollision()
		if w.state == core.StatePlaying {
			w.advanceScheduler(dt)
			w.survival += dt
		}
		w.observeFrame(frame)
	case core.StateGameOver:
		// Let the explosion play out.
		if w.gov.Budget() > 0 {
			w.updateParticles(dt)
		}
	}
	return w.Snapshot()
}

func (w *World) updatePlayer(dt float64) {
	w.player.Update(dt, w.playerArea)
	if w.player.TickTrail(dt, w.cfg.Player.TrailInterval) {
		w.exhaust()
	}
}

func (w *World) updateProjectiles(dt float64) {
	target := entity.Target{Pos: w.player.Pos, Alive: w.player.Alive}
	interval := w.cfg.Projectile.TrailInterval
	if w.lowPerf {
		interval *= 2
	}

	n := 0
	for i := range w.projectiles {
		p := &w.projectiles[i]
		p.Update(dt, target, w.rules, w.area)
		if !p.Active {
			continue
		}
		if p.TickTrail(dt, interval) {
			w.trail(p)
		}
		w.projectiles[n] = *p
		n++
	}
	w.projectiles = w.projectiles[:n]
}

func (w *World) updateParticles(dt float64) {
	n := 0
	for i := range w.particles {
		p := &w.particles[i]
		p.Update(dt)
		if p.Active {
			w.particles[n] = *p
			n++
		}
	}
	w.particles = w.particles[:n]
	w.trimParticles()
}

// resolveCollision ends the session on the first overlap. Invincibility
// skips the scan entirely.
func (w *World) resolveCollision() {
	if !w.player.Alive || w.player.Invincible {
		return
	}
	ship := w.player.Circle()
	for i := range w.projectiles {
		p := &w.projectiles[i]
		if !p.Active {
			continue
		}
		if w.policy.Overlaps(ship, p.Circle(w.cfg.Collision.HitboxScale)) {
			w.projectiles = slices.Delete(w.projectiles, i, i+1)
			w.gameOver()
			return
		}
	}
}

func (w *World) gameOver() {
	w.player.Alive = false
	w.player.SetVelocity(core.Vec3{})
	w.explosion(w.player.Pos)
	w.state = core.StateGameOver

	w.logger.Info("game over",
		"survival", w.survival,
		"difficulty", w.sched.Difficulty(),
		"invincibility", w.player.UsedInvincibility,
	)
	if w.player.UsedInvincibility {
		return
	}
	record, err := w.records.SaveBestTime(w.survival)
	if err != nil {
		w.logger.Warn("cannot save best time", "error", err)
		return
	}
	if record {
		w.newRecord = true
		w.best = w.survival
	}
}

func (w *World) advanceScheduler(dt float64) {
	load := scheduler.Load{Live: len(w.projectiles), Cap: w.ProjectileCap()}
	res := w.sched.Update(dt, load, w.allowPattern)
	for _, inc := range res.Increments {
		w.logger.Debug("difficulty up", "from", inc.From, "to", inc.To)
		w.levelUp()
	}
	for _, name := range res.Spawns {
		w.spawn(name)
	}
	w.trimProjectiles()
}

func (w *World) allowPattern(name string) bool {
	if name != pattern.Homing {
		return true
	}
	return w.liveHoming() < w.cfg.Tracking.MaxHoming
}

func (w *World) liveHoming() int {
	n := 0
	for i := range w.projectiles {
		if w.projectiles[i].Homing() {
			n++
		}
	}
	return n
}

// spawn appends one batch of the named pattern, or nothing at all when the
// batch would not fit under the cap.
func (w *World) spawn(name string) int {
	limit := w.ProjectileCap()
	batch := w.library.Emit(name, pattern.Context{
		Difficulty: w.sched.Difficulty(),
		Live:       len(w.projectiles),
		Cap:        limit,
		LiveHoming: w.liveHoming(),
		Player:     w.player.Pos,
		Area:       w.area,
	})
	if len(w.projectiles)+len(batch) > limit {
		w.logger.Debug("spawn skipped at cap", "pattern", name, "batch", len(batch), "live", len(w.projectiles))
		return 0
	}
	w.projectiles = append(w.projectiles, batch...)
	return len(batch)
}

// trimProjectiles drops the oldest projectiles over the cap.
func (w *World) trimProjectiles() {
	if over := len(w.projectiles) - w.ProjectileCap(); over > 0 {
		w.projectiles = append(w.projectiles[:0], w.projectiles[over:]...)
	}
}

func (w *World) observeFrame(frame float64) {
	d := w.gov.Observe(frame)
	if d.Action == governor.Keep {
		return
	}
	w.lowPerf = d.LowPerformance
	w.sched.SetLowPerformance(d.LowPerformance)
	if d.Action == governor.Purge {
		w.particles = w.particles[:0]
		return
	}
	w.trimParticles()
}
