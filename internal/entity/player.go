// Package entity contains the per-tick state and update rules of the three
// entity kinds: the player ship, projectiles and cosmetic particles.
// Entities never reference the world; everything they need per tick is
// passed in explicitly.
package entity

import "github.com/vovakirdan/danmaku/internal/core"

// Player is the ship steered by the input layer.
type Player struct {
	Pos    core.Vec3
	Vel    core.Vec3
	Speed  float64 // Fixed movement speed in units per second
	Radius float64
	Alive  bool

	Invincible     bool
	InvincibleLeft float64 // Seconds until Invincible clears; 0 when untimed

	// UsedInvincibility disqualifies the session from record keeping.
	UsedInvincibility bool

	trailTimer float64
}

// NewPlayer creates a live player at pos.
func NewPlayer(pos core.Vec3, speed, radius float64) *Player {
	core.Assert(radius > 0, "player radius %v", radius)
	if radius <= 0 {
		radius = 1
	}
	return &Player{
		Pos:    pos,
		Speed:  speed,
		Radius: radius,
		Alive:  true,
	}
}

// SetVelocity sets the velocity from a direction vector. Input along more than
// one axis is renormalized to unit length so diagonal movement is not faster
// than axis-aligned movement. Non-finite components count as zero.
func (p *Player) SetVelocity(dir core.Vec3) {
	if !dir.Finite() {
		dir = core.Vec3{}
	}
	if dir.AxisCount() > 1 {
		dir = dir.Normalize()
	}
	p.Vel = dir.Scale(p.Speed)
}

// Update integrates the position, clamps it to area and runs down a timed
// invincibility.
func (p *Player) Update(dt float64, area core.Bounds) {
	p.Pos = area.Clamp(p.Pos.Add(p.Vel.Scale(dt)))

	if p.Invincible && p.InvincibleLeft > 0 {
		p.InvincibleLeft -= dt
		if p.InvincibleLeft <= 0 {
			p.InvincibleLeft = 0
			p.Invincible = false
		}
	}
}

// GrantInvincibility starts a timed invincibility, such as the grace period
// after spawning. It does not count as using invincibility.
func (p *Player) GrantInvincibility(seconds float64) {
	if seconds <= 0 {
		return
	}
	p.Invincible = true
	p.InvincibleLeft = seconds
}

// SetDebugInvincible toggles untimed invincibility. Turning it on marks the
// session as having used invincibility.
func (p *Player) SetDebugInvincible(on bool) {
	p.Invincible = on
	p.InvincibleLeft = 0
	if on {
		p.UsedInvincibility = true
	}
}

// Moving reports whether the ship has a nonzero velocity.
func (p *Player) Moving() bool {
	return !p.Vel.IsZero()
}

// Circle returns the hitbox.
func (p *Player) Circle() core.Circle {
	return core.Circle{Center: p.Pos, Radius: p.Radius}
}

// TickTrail advances the exhaust timer and reports whether an exhaust
// particle is due. A stationary ship emits nothing.
func (p *Player) TickTrail(dt, interval float64) bool {
	if !p.Moving() || interval <= 0 {
		p.trailTimer = 0
		return false
	}
	p.trailTimer += dt
	if p.trailTimer >= interval {
		p.trailTimer = 0
		return true
	}
	return false
}
