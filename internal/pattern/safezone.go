package pattern

import (
	"math"

	"github.com/vovakirdan/danmaku/internal/core"
)

// Edge identifies one side of the playfield.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// AllEdges lists every edge in a fixed order.
var AllEdges = []Edge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

// emitter returns the midpoint of the edge moved inset units inward and the
// heading pointing into the playfield.
func (e Edge) emitter(area core.Bounds, inset float64) (core.Vec3, float64) {
	c := area.Center()
	switch e {
	case EdgeTop:
		return core.Vec3{X: c.X, Y: area.Min.Y + inset, Z: c.Z}, math.Pi / 2
	case EdgeBottom:
		return core.Vec3{X: c.X, Y: area.Max.Y - inset, Z: c.Z}, -math.Pi / 2
	case EdgeLeft:
		return core.Vec3{X: area.Min.X + inset, Y: c.Y, Z: c.Z}, 0
	default:
		return core.Vec3{X: area.Max.X - inset, Y: c.Y, Z: c.Z}, math.Pi
	}
}

// SafeZone is the region spawns avoid: the playfield margins the player is
// currently in, plus a disc around the player itself.
type SafeZone struct {
	Left, Right, Top, Bottom bool

	area   core.Bounds
	ratio  float64
	player core.Vec3
	radius float64
}

// NewSafeZone classifies the player's position against margins of ratio times
// the playfield width and height.
func NewSafeZone(player core.Vec3, area core.Bounds, ratio float64) SafeZone {
	size := area.Size()
	z := SafeZone{
		area:   area,
		ratio:  ratio,
		player: player,
		radius: ratio * math.Min(size.X, size.Y),
	}
	if size.X <= 0 || size.Y <= 0 {
		return z
	}
	rx := (player.X - area.Min.X) / size.X
	ry := (player.Y - area.Min.Y) / size.Y
	z.Left = rx < ratio
	z.Right = rx > 1-ratio
	z.Top = ry < ratio
	z.Bottom = ry > 1-ratio
	return z
}

// Contains reports whether a spawn at p would land in the safe zone.
func (z SafeZone) Contains(p core.Vec3) bool {
	size := z.area.Size()
	if size.X <= 0 || size.Y <= 0 {
		return false
	}
	rx := (p.X - z.area.Min.X) / size.X
	ry := (p.Y - z.area.Min.Y) / size.Y
	switch {
	case z.Left && rx < z.ratio,
		z.Right && rx > 1-z.ratio,
		z.Top && ry < z.ratio,
		z.Bottom && ry > 1-z.ratio:
		return true
	}
	return p.Sub(z.player).LenXY() < z.radius
}

// Safe reports whether the edge is part of the safe zone.
func (z SafeZone) Safe(e Edge) bool {
	switch e {
	case EdgeTop:
		return z.Top
	case EdgeBottom:
		return z.Bottom
	case EdgeLeft:
		return z.Left
	default:
		return z.Right
	}
}

// OpenEdges returns the edges outside the safe zone. When every edge is safe
// all of them are returned.
func (z SafeZone) OpenEdges() []Edge {
	out := make([]Edge, 0, len(AllEdges))
	for _, e := range AllEdges {
		if !z.Safe(e) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return append(out, AllEdges...)
	}
	return out
}

// PickOrigin draws candidates from sample until one falls outside the zone.
// After retries rejected draws the last candidate is accepted anyway.
func (z SafeZone) PickOrigin(sample func() core.Vec3, retries int) core.Vec3 {
	p := sample()
	for i := 0; i < retries && z.Contains(p); i++ {
		p = sample()
	}
	return p
}
