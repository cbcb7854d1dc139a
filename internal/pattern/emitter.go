// Package pattern generates batches of projectiles. Shapes are produced by
// an Emitter; the Library maps pattern names to difficulty-scaled shapes and
// applies the safe-zone and population rules. Nothing here retains the
// projectiles it creates.
package pattern

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/entity"
)

// Emitter produces projectile shapes. Its only state is the palette and the
// seeded RNG used for colors and random angles.
type Emitter struct {
	rng         *rand.Rand
	palette     []core.Color
	minRadius   float64
	trailChance float64
}

// NewEmitter creates an emitter drawing from rng.
func NewEmitter(rng *rand.Rand, palette []core.Color, minRadius, trailChance float64) *Emitter {
	if len(palette) == 0 {
		palette = []core.Color{core.ColorBrightRed}
	}
	return &Emitter{
		rng:         rng,
		palette:     palette,
		minRadius:   minRadius,
		trailChance: trailChance,
	}
}

func (e *Emitter) shot(pos, vel core.Vec3, radius float64, c core.Color) entity.Projectile {
	core.Assert(radius > 0, "pattern radius %v", radius)
	if radius < e.minRadius {
		radius = e.minRadius
	}
	p := entity.NewProjectile(pos, vel, radius, c)
	p.Trail = e.rng.Float64() < e.trailChance
	return p
}

func (e *Emitter) color() core.Color {
	return e.palette[e.rng.Intn(len(e.palette))]
}

// Radial emits n projectiles evenly spaced by 2π/n around origin.
func (e *Emitter) Radial(origin core.Vec3, n int, speed, radius float64) []entity.Projectile {
	c := e.color()
	out := make([]entity.Projectile, 0, n)
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		out = append(out, e.shot(origin, core.Polar(float64(i)*step, speed), radius, c))
	}
	return out
}

// Arc emits n projectiles evenly spaced across [start, end].
func (e *Emitter) Arc(origin core.Vec3, n int, start, end, speed, radius float64) []entity.Projectile {
	c := e.color()
	out := make([]entity.Projectile, 0, n)
	step := (end - start) / float64(max(1, n-1))
	for i := 0; i < n; i++ {
		out = append(out, e.shot(origin, core.Polar(start+float64(i)*step, speed), radius, c))
	}
	return out
}

// Scatter emits n projectiles at uniformly random angles with speeds drawn
// from [minSpeed, maxSpeed].
func (e *Emitter) Scatter(origin core.Vec3, n int, minSpeed, maxSpeed, radius float64) []entity.Projectile {
	out := make([]entity.Projectile, 0, n)
	for i := 0; i < n; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := minSpeed + e.rng.Float64()*(maxSpeed-minSpeed)
		out = append(out, e.shot(origin, core.Polar(angle, speed), radius, e.color()))
	}
	return out
}

// Spiral emits n projectiles at angle i*2π*rotations/n, each displaced
// outward by i*step so the batch traces a spiral arm at spawn.
func (e *Emitter) Spiral(origin core.Vec3, n int, rotations, step, speed, radius float64) []entity.Projectile {
	c := e.color()
	out := make([]entity.Projectile, 0, n)
	angleStep := 2 * math.Pi * rotations / float64(n)
	for i := 0; i < n; i++ {
		angle := float64(i) * angleStep
		pos := origin.Add(core.Polar(angle, float64(i)*step))
		out = append(out, e.shot(pos, core.Polar(angle, speed), radius, c))
	}
	return out
}

// MultiSpiral emits arms spiral arms of perArm projectiles. Arm k starts at
// angle 2πk/arms; projectile i of an arm is twisted by i*twist and sits
// spacing*(i+1) away from origin.
func (e *Emitter) MultiSpiral(origin core.Vec3, arms, perArm int, twist, spacing, speed, radius float64) []entity.Projectile {
	out := make([]entity.Projectile, 0, arms*perArm)
	for k := 0; k < arms; k++ {
		c := e.color()
		base := 2 * math.Pi * float64(k) / float64(arms)
		for i := 0; i < perArm; i++ {
			angle := base + float64(i)*twist
			pos := origin.Add(core.Polar(angle, spacing*float64(i+1)))
			out = append(out, e.shot(pos, core.Polar(angle, speed), radius, c))
		}
	}
	return out
}

// heartPoint samples the heart curve with Y flipped so the heart is upright
// on a Y-down playfield.
func heartPoint(theta float64) core.Vec3 {
	s := math.Sin(theta)
	x := 16 * s * s * s
	y := 13*math.Cos(theta) - 5*math.Cos(2*theta) - 2*math.Cos(3*theta) - math.Cos(4*theta)
	return core.V2(x, -y)
}

// Heart emits n projectiles on the heart curve scaled by scale. Each one
// launches outward from the pattern center through its curve point.
func (e *Emitter) Heart(origin core.Vec3, n int, scale, speed, radius float64) []entity.Projectile {
	c := e.color()
	out := make([]entity.Projectile, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pt := heartPoint(theta)
		dir := pt.Normalize()
		if dir.IsZero() {
			dir = core.Polar(theta, 1)
		}
		out = append(out, e.shot(origin.Add(pt.Scale(scale)), dir.Scale(speed), radius, c))
	}
	return out
}

// Star emits n projectiles on a star with the given number of points.
// Angle sectors alternate between the outer size and an inner radius of
// 0.4*size; inner projectiles are proportionally slower so the outline holds.
func (e *Emitter) Star(origin core.Vec3, n, points int, size, speed, radius float64) []entity.Projectile {
	c := e.color()
	out := make([]entity.Projectile, 0, n)
	sector := float64(n) / float64(max(1, points))
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		r := size
		if math.Mod(float64(i), sector) < sector/2 {
			r = 0.4 * size
		}
		pos := origin.Add(core.Polar(theta, r))
		out = append(out, e.shot(pos, core.Polar(theta, speed*r/size), radius, c))
	}
	return out
}

// EdgeBurst emits a fan of perEdge projectiles from the middle of each edge,
// aimed inward within ±spread.
func (e *Emitter) EdgeBurst(area core.Bounds, edges []Edge, perEdge int, spread, inset, speed, radius float64) []entity.Projectile {
	out := make([]entity.Projectile, 0, len(edges)*perEdge)
	for _, edge := range edges {
		c := e.color()
		origin, heading := edge.emitter(area, inset)
		start, step := heading, 0.0
		if perEdge > 1 {
			start = heading - spread
			step = 2 * spread / float64(perEdge-1)
		}
		for i := 0; i < perEdge; i++ {
			out = append(out, e.shot(origin, core.Polar(start+float64(i)*step, speed), radius, c))
		}
	}
	return out
}

// Homing emits one actively tracking projectile per origin, initially aimed
// at target.
func (e *Emitter) Homing(origins []core.Vec3, target core.Vec3, speed, radius, duration float64) []entity.Projectile {
	out := make([]entity.Projectile, 0, len(origins))
	for _, o := range origins {
		dir := target.Sub(o)
		dir.Z = 0
		dir = dir.Normalize()
		if dir.IsZero() {
			dir = core.V2(0, 1)
		}
		p := e.shot(o, dir.Scale(speed), radius, core.ColorRed)
		p.Home(duration)
		out = append(out, p)
	}
	return out
}
