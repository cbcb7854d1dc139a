package core

import "math"

// Vec3 is the single vector type used for positions and velocities.
// The flat variant keeps Z at zero so 2D and 3D share every formula.
type Vec3 struct {
	X, Y, Z float64
}

// V2 returns a vector in the XY plane.
func V2(x, y float64) Vec3 {
	return Vec3{X: x, Y: y}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LenXY returns the length of the XY projection.
func (v Vec3) LenXY() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Finite reports whether every component is a finite number.
func (v Vec3) Finite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// AxisCount returns how many components are nonzero.
func (v Vec3) AxisCount() int {
	n := 0
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if c != 0 {
			n++
		}
	}
	return n
}

// Heading returns the angle of the XY projection in radians.
func (v Vec3) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// RotateXY rotates the XY components by angle radians, keeping Z.
func (v Vec3) RotateXY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

// Polar returns a vector in the XY plane with the given angle and length.
func Polar(angle, length float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{X: cos * length, Y: sin * length}
}

// WrapAngle maps an angle to (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from a to b.
func AngleDiff(a, b float64) float64 {
	return WrapAngle(b - a)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
