package main

import (
	"math"

	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/world"
)

// evader steers the ship away from nearby projectiles for headless runs.
type evader struct {
	Radius    float64 // Only projectiles closer than this are considered
	Lookahead float64 // Seconds projectiles are extrapolated
	WallRange float64 // Distance at which edges start to push back
	HomePull  float64 // Weight of the pull toward home
	Deadzone  float64 // Force below which an axis stays still
}

func newEvader() evader {
	return evader{
		Radius:    110,
		Lookahead: 0.15,
		WallRange: 40,
		HomePull:  0.002,
		Deadzone:  0.05,
	}
}

// Direction returns a key-like direction: every axis is -1, 0 or 1.
func (e evader) Direction(s world.Snapshot, home core.Vec3) core.Vec3 {
	pos := s.Player.Pos
	var force core.Vec3

	for _, p := range s.Projectiles {
		ahead := p.Pos
		if p.Moving {
			ahead = ahead.Add(p.Vel.Scale(e.Lookahead))
		}
		away := pos.Sub(ahead)
		away.Z = 0
		d := away.LenXY()
		if d >= e.Radius || d == 0 {
			continue
		}
		w := (e.Radius - d) / e.Radius
		force = force.Add(away.Scale(w * w / d))
	}

	b := s.Bounds
	force.X += e.wall(pos.X-b.Min.X) - e.wall(b.Max.X-pos.X)
	force.Y += e.wall(pos.Y-b.Min.Y) - e.wall(b.Max.Y-pos.Y)

	force = force.Add(home.Sub(pos).Scale(e.HomePull))

	return core.Vec3{X: e.axis(force.X), Y: e.axis(force.Y)}
}

// wall is the push away from an edge at distance d.
func (e evader) wall(d float64) float64 {
	if d >= e.WallRange {
		return 0
	}
	return (e.WallRange - math.Max(d, 0)) / e.WallRange
}

func (e evader) axis(f float64) float64 {
	switch {
	case f > e.Deadzone:
		return 1
	case f < -e.Deadzone:
		return -1
	}
	return 0
}
