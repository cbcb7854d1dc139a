// Package core provides the shared primitives of the danmaku engine: vectors,
// circle collision, playfield bounds and the host contracts (screen, input,
// runtime config). It has no dependencies on Bubble Tea so the simulation
// stays pure and testable.
package core

import "fmt"

// Rect is an integer rectangle in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Bounds is an axis-aligned box in world units.
// A flat playfield has Min.Z == Max.Z == 0.
type Bounds struct {
	Min, Max Vec3
}

// NewBounds creates bounds anchored at the origin with the given extents.
func NewBounds(width, height, depth float64) Bounds {
	return Bounds{Max: Vec3{X: width, Y: height, Z: depth}}
}

// Size returns the extent along each axis.
func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Clamp returns p moved to the nearest point inside the box.
func (b Bounds) Clamp(p Vec3) Vec3 {
	return Vec3{
		X: ClampF(p.X, b.Min.X, b.Max.X),
		Y: ClampF(p.Y, b.Min.Y, b.Max.Y),
		Z: ClampF(p.Z, b.Min.Z, b.Max.Z),
	}
}

// Expand grows the box by margin on every side of the XY plane.
// Depth is expanded only when the box has depth.
func (b Bounds) Expand(margin float64) Bounds {
	out := Bounds{
		Min: Vec3{X: b.Min.X - margin, Y: b.Min.Y - margin, Z: b.Min.Z},
		Max: Vec3{X: b.Max.X + margin, Y: b.Max.Y + margin, Z: b.Max.Z},
	}
	if b.Max.Z > b.Min.Z {
		out.Min.Z -= margin
		out.Max.Z += margin
	}
	return out
}

// Inset shrinks the box by margin in the XY plane. An inset larger than half
// the extent collapses that axis to its midpoint.
func (b Bounds) Inset(margin float64) Bounds {
	out := b
	if 2*margin >= b.Max.X-b.Min.X {
		mid := (b.Min.X + b.Max.X) / 2
		out.Min.X, out.Max.X = mid, mid
	} else {
		out.Min.X += margin
		out.Max.X -= margin
	}
	if 2*margin >= b.Max.Y-b.Min.Y {
		mid := (b.Min.Y + b.Max.Y) / 2
		out.Min.Y, out.Max.Y = mid, mid
	} else {
		out.Min.Y += margin
		out.Max.Y -= margin
	}
	return out
}

// Circle is a circular (spherical in depth mode) bounding volume.
type Circle struct {
	Center Vec3
	Radius float64
}

// CirclesOverlap reports whether two circles overlap: the distance between
// centers is strictly less than the sum of the radii.
func CirclesOverlap(c1 Vec3, r1 float64, c2 Vec3, r2 float64) bool {
	d := c1.Sub(c2)
	sum := r1 + r2
	return d.X*d.X+d.Y*d.Y+d.Z*d.Z < sum*sum
}

// CollisionMode selects how two volumes are compared.
type CollisionMode string

const (
	// CollisionSphere uses plain Euclidean distance.
	CollisionSphere CollisionMode = "sphere"
	// CollisionPlanar compares the XY distance only.
	CollisionPlanar CollisionMode = "planar"
	// CollisionGated compares the XY distance and requires the Z distance to be
	// within its own threshold.
	CollisionGated CollisionMode = "gated"
)

// CollisionPolicy is the tunable overlap test used by the world.
type CollisionPolicy struct {
	Mode        CollisionMode
	XYThreshold float64 // XY distance must be below (r1+r2)*XYThreshold
	ZThreshold  float64 // Z distance must be below (r1+r2)*ZThreshold (gated mode)
}

// ParseCollisionMode validates a configured mode name.
func ParseCollisionMode(s string) (CollisionMode, error) {
	switch m := CollisionMode(s); m {
	case CollisionSphere, CollisionPlanar, CollisionGated:
		return m, nil
	}
	return "", fmt.Errorf("core: unknown collision mode %q", s)
}

// Overlaps applies the policy to two circles.
func (p CollisionPolicy) Overlaps(a, b Circle) bool {
	sum := a.Radius + b.Radius
	switch p.Mode {
	case CollisionPlanar:
		return a.Center.Sub(b.Center).LenXY() < sum*p.XYThreshold
	case CollisionGated:
		d := a.Center.Sub(b.Center)
		if d.LenXY() >= sum*p.XYThreshold {
			return false
		}
		dz := d.Z
		if dz < 0 {
			dz = -dz
		}
		return dz < sum*p.ZThreshold
	default:
		return CirclesOverlap(a.Center, a.Radius, b.Center, b.Radius)
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// TimeEpsilon absorbs the drift of summed frame deltas, such as 300 steps
// of 1/60 s falling just short of 5 s.
const TimeEpsilon = 1e-9

// Reached reports whether an accumulated timer has reached period.
func Reached(timer, period float64) bool {
	return timer >= period-TimeEpsilon
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
