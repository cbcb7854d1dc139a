package entity

import "github.com/vovakirdan/danmaku/internal/core"

// Particle is purely cosmetic feedback: explosions, trails and exhaust.
type Particle struct {
	Pos         core.Vec3
	Vel         core.Vec3
	Size        float64
	InitialSize float64
	Color       core.Color
	Age         float64
	Lifetime    float64
	Active      bool
}

// NewParticle creates an active particle.
func NewParticle(pos, vel core.Vec3, size, lifetime float64, color core.Color) Particle {
	core.Assert(lifetime > 0, "particle lifetime %v", lifetime)
	if lifetime <= 0 {
		lifetime = ReferenceTick
	}
	return Particle{
		Pos:         pos,
		Vel:         vel,
		Size:        size,
		InitialSize: size,
		Color:       color,
		Lifetime:    lifetime,
		Active:      true,
	}
}

// Update moves the particle and shrinks it linearly over its lifetime.
func (p *Particle) Update(dt float64) {
	if !p.Active {
		return
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Age += dt
	if p.Age >= p.Lifetime {
		p.Active = false
		p.Size = 0
		return
	}
	p.Size = p.InitialSize * (1 - p.Age/p.Lifetime)
}

// Alpha is the remaining fraction of the lifetime.
func (p Particle) Alpha() float64 {
	if p.Lifetime <= 0 {
		return 0
	}
	return core.ClampF(1-p.Age/p.Lifetime, 0, 1)
}
