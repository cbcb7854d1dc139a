package world

import (
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/entity"
)

// PlayerView is the render data of the ship.
type PlayerView struct {
	Pos        core.Vec3
	Radius     float64
	Alive      bool
	Invincible bool
	Moving     bool
}

// ProjectileView is the render data of one active projectile. Vel is only
// meaningful when Moving is true.
type ProjectileView struct {
	Pos      core.Vec3
	Radius   float64
	Color    core.Color
	Vel      core.Vec3
	Moving   bool
	Tracking entity.Tracking
}

// ParticleView is the render data of one active particle.
type ParticleView struct {
	Pos   core.Vec3
	Size  float64
	Color core.Color
	Alpha float64
}

// Snapshot is everything a renderer needs for one frame. It shares no memory
// with the world.
type Snapshot struct {
	Player      PlayerView
	Projectiles []ProjectileView
	Particles   []ParticleView

	State          core.State
	SurvivalTime   float64
	Difficulty     float64
	BestTime       float64
	NewRecord      bool
	LowPerformance bool
	Paused         bool
	DebugMode      bool
	ProjectileCap  int
	Bounds         core.Bounds
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Player: PlayerView{
			Pos:        w.player.Pos,
			Radius:     w.player.Radius,
			Alive:      w.player.Alive,
			Invincible: w.player.Invincible,
			Moving:     w.player.Moving(),
		},
		Projectiles:    make([]ProjectileView, 0, len(w.projectiles)),
		Particles:      make([]ParticleView, 0, len(w.particles)),
		State:          w.state,
		SurvivalTime:   w.survival,
		Difficulty:     w.sched.Difficulty(),
		BestTime:       w.best,
		NewRecord:      w.newRecord,
		LowPerformance: w.lowPerf,
		Paused:         w.paused,
		DebugMode:      w.debug,
		ProjectileCap:  w.ProjectileCap(),
		Bounds:         w.area,
	}
	for _, p := range w.projectiles {
		if !p.Active {
			continue
		}
		s.Projectiles = append(s.Projectiles, ProjectileView{
			Pos:      p.Pos,
			Radius:   p.Radius,
			Color:    p.Color,
			Vel:      p.Vel,
			Moving:   !p.Vel.IsZero(),
			Tracking: p.Tracking,
		})
	}
	for _, p := range w.particles {
		if !p.Active {
			continue
		}
		s.Particles = append(s.Particles, ParticleView{
			Pos:   p.Pos,
			Size:  p.Size,
			Color: p.Color,
			Alpha: p.Alpha(),
		})
	}
	return s
}
