package entity

import (
	"math"

	"github.com/vovakirdan/danmaku/internal/core"
)

// ReferenceTick is the step length turn rates are expressed against.
const ReferenceTick = 1.0 / 60.0

// Tracking is a projectile's steering behaviour relative to the player.
type Tracking int

const (
	TrackNone         Tracking = iota // Straight (or spinning) trajectory
	TrackInitialAim                   // Converges on a point captured at spawn
	TrackActiveHoming                 // Re-aims at the live player for a limited time
)

// String returns a human-readable name for the tracking mode.
func (t Tracking) String() string {
	switch t {
	case TrackNone:
		return "none"
	case TrackInitialAim:
		return "initial"
	case TrackActiveHoming:
		return "active"
	default:
		return "unknown"
	}
}

// Target is the world's handle on the player slot. Alive is false once the
// player has been destroyed; homing projectiles must not steer toward it then.
type Target struct {
	Pos   core.Vec3
	Alive bool
}

// Rules are the world-wide projectile tunables.
type Rules struct {
	AimTurnRate     float64 // Fraction of angular error removed per reference tick
	AimStopDistance float64
	HomingTurnRate  float64
	BoundsMargin    float64 // Multiple of radius allowed outside the playfield
}

// Projectile is a single bullet.
type Projectile struct {
	Pos    core.Vec3
	Vel    core.Vec3
	Radius float64
	Color  core.Color
	Active bool

	Tracking  Tracking
	AimPoint  core.Vec3 // Captured target of TrackInitialAim
	TrackLeft float64   // Remaining seconds of TrackActiveHoming
	Spin      float64   // Constant velocity rotation in rad/s

	Trail      bool
	trailTimer float64
}

// NewProjectile creates an active, untracked projectile.
func NewProjectile(pos, vel core.Vec3, radius float64, color core.Color) Projectile {
	core.Assert(radius > 0, "projectile radius %v", radius)
	if radius <= 0 {
		radius = 1
	}
	return Projectile{
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Color:  color,
		Active: true,
	}
}

// AimAt switches the projectile to InitialAim toward point.
func (p *Projectile) AimAt(point core.Vec3) {
	p.Tracking = TrackInitialAim
	p.AimPoint = point
	p.Trail = true
}

// Home switches the projectile to ActiveHoming for the given duration.
func (p *Projectile) Home(duration float64) {
	p.Tracking = TrackActiveHoming
	p.TrackLeft = duration
	p.Trail = true
}

// Homing reports whether the projectile is still actively tracking.
func (p *Projectile) Homing() bool {
	return p.Active && p.Tracking == TrackActiveHoming
}

// Update steers, integrates and retires the projectile once it leaves area
// extended by BoundsMargin radii.
func (p *Projectile) Update(dt float64, target Target, rules Rules, area core.Bounds) {
	if !p.Active {
		return
	}

	switch p.Tracking {
	case TrackInitialAim:
		to := p.AimPoint.Sub(p.Pos)
		if to.LenXY() <= rules.AimStopDistance {
			p.Tracking = TrackNone
		} else {
			p.steer(to.Heading(), rules.AimTurnRate*dt/ReferenceTick)
		}
	case TrackActiveHoming:
		if !target.Alive || p.TrackLeft <= 0 {
			p.Tracking = TrackNone
			break
		}
		if to := target.Pos.Sub(p.Pos); to.LenXY() > 0 {
			p.steer(to.Heading(), rules.HomingTurnRate*dt/ReferenceTick)
		}
		p.TrackLeft -= dt
	}

	if p.Spin != 0 {
		p.Vel = p.Vel.RotateXY(p.Spin * dt)
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	if !area.Expand(p.Radius * rules.BoundsMargin).Contains(p.Pos) {
		p.Active = false
	}
}

// steer rotates the XY velocity toward heading by a fraction of the shortest
// angular error, keeping the speed.
func (p *Projectile) steer(heading, fraction float64) {
	speed := p.Vel.LenXY()
	if speed == 0 {
		return
	}
	fraction = math.Min(1, math.Max(0, fraction))
	cur := p.Vel.Heading()
	next := cur + core.AngleDiff(cur, heading)*fraction
	v := core.Polar(next, speed)
	v.Z = p.Vel.Z
	p.Vel = v
}

// Circle returns the hitbox scaled by scale.
func (p *Projectile) Circle(scale float64) core.Circle {
	return core.Circle{Center: p.Pos, Radius: p.Radius * scale}
}

// TickTrail advances the trail timer and reports whether a trail particle is due.
func (p *Projectile) TickTrail(dt, interval float64) bool {
	if !p.Trail || interval <= 0 {
		return false
	}
	p.trailTimer += dt
	if p.trailTimer >= interval {
		p.trailTimer = 0
		return true
	}
	return false
}
