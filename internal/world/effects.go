package world

import (
	"math"

	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/entity"
)

func (w *World) between(lo, hi float64) float64 {
	return lo + w.rng.Float64()*(hi-lo)
}

func (w *World) ember() core.Color {
	return core.EmberPalette[w.rng.Intn(len(core.EmberPalette))]
}

// addParticle appends p when effects are enabled; the oldest particles make
// room once the budget is reached.
func (w *World) addParticle(p entity.Particle) {
	if w.gov.Budget() <= 0 {
		return
	}
	w.particles = append(w.particles, p)
	w.trimParticles()
}

// trimParticles drops the oldest particles over the current budget.
func (w *World) trimParticles() {
	budget := w.gov.Budget()
	if over := len(w.particles) - budget; over > 0 {
		w.particles = append(w.particles[:0], w.particles[over:]...)
	}
}

// explosion bursts embers outward from pos. Low-performance mode halves it.
func (w *World) explosion(pos core.Vec3) {
	cfg := w.cfg.Particles.Explosion
	count := cfg.Count
	if w.lowPerf {
		count /= 2
	}
	for i := 0; i < count; i++ {
		vel := core.Polar(w.rng.Float64()*2*math.Pi, w.between(cfg.MinSpeed, cfg.MaxSpeed))
		w.addParticle(entity.NewParticle(
			pos, vel,
			w.between(cfg.MinSize, cfg.MaxSize),
			w.between(cfg.MinLifetime, cfg.MaxLifetime),
			w.ember(),
		))
	}
}

// levelUp rings the playfield center after a difficulty increment.
func (w *World) levelUp() {
	n := w.cfg.Particles.LevelUpBurst
	center := w.area.Center()
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		vel := core.Polar(angle, w.between(80, 160))
		w.addParticle(entity.NewParticle(center, vel, w.between(2, 4), w.between(0.6, 1.2), core.ColorBrightCyan))
	}
}

// exhaust puffs an ember behind the moving ship.
func (w *World) exhaust() {
	back := w.player.Vel.Normalize().Scale(-1)
	pos := w.player.Pos.Add(back.Scale(w.player.Radius))
	vel := back.Scale(w.between(40, 80)).Add(core.V2(w.between(-15, 15), w.between(-15, 15)))
	w.addParticle(entity.NewParticle(pos, vel, w.between(1, 2.5), w.between(0.2, 0.4), w.ember()))
}

// trail leaves a fading copy of the projectile behind it.
func (w *World) trail(p *entity.Projectile) {
	w.addParticle(entity.NewParticle(p.Pos, core.Vec3{}, p.Radius*0.6, 0.25, p.Color))
}
