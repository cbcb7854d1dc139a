package entity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/danmaku/internal/core"
)

const eps = 1e-9

func testRules() Rules {
	return Rules{
		AimTurnRate:     0.01,
		AimStopDistance: 5,
		HomingTurnRate:  0.03,
		BoundsMargin:    2,
	}
}

func TestPlayerDiagonalNormalization(t *testing.T) {
	tests := []struct {
		name     string
		dir      core.Vec3
		expected float64
	}{
		{"right", core.V2(1, 0), 300},
		{"up", core.V2(0, -1), 300},
		{"diagonal", core.V2(1, 1), 300},
		{"diagonal uneven", core.V2(-0.3, 0.9), 300},
		{"three axes", core.Vec3{X: 1, Y: 1, Z: 1}, 300},
		{"partial single axis", core.V2(0.5, 0), 150},
		{"none", core.Vec3{}, 0},
		{"not finite", core.V2(math.NaN(), 1), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer(core.V2(100, 100), 300, 6)
			p.SetVelocity(tc.dir)
			if speed := p.Vel.Len(); math.Abs(speed-tc.expected) > eps {
				t.Errorf("speed after SetVelocity(%v) = %v, expected %v", tc.dir, speed, tc.expected)
			}
		})
	}
}

func TestPlayerBoundaryClamp(t *testing.T) {
	area := core.NewBounds(480, 720, 0)
	p := NewPlayer(core.V2(240, 600), 300, 6)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		p.SetVelocity(core.V2(rng.Float64()*2-1, rng.Float64()*2-1))
		p.Update(0.05, area)
		if p.Pos.X < 0 || p.Pos.X > 480 || p.Pos.Y < 0 || p.Pos.Y > 720 || p.Pos.Z != 0 {
			t.Fatalf("tick %d: position %v outside bounds", i, p.Pos)
		}
	}

	// A hard push into a corner stops at the corner.
	p.SetVelocity(core.V2(-1, -1))
	for i := 0; i < 200; i++ {
		p.Update(0.05, area)
	}
	if p.Pos != (core.Vec3{}) {
		t.Errorf("position after pushing into corner = %v, expected origin", p.Pos)
	}
}

func TestPlayerInvincibilityTimer(t *testing.T) {
	area := core.NewBounds(100, 100, 0)
	p := NewPlayer(core.V2(50, 50), 100, 5)
	p.GrantInvincibility(0.1)

	p.Update(0.05, area)
	if !p.Invincible {
		t.Fatal("Invincible cleared too early")
	}
	p.Update(0.05, area)
	if p.Invincible {
		t.Errorf("Invincible = true after timer reached 0 (left %v)", p.InvincibleLeft)
	}
	if p.UsedInvincibility {
		t.Error("grace period should not mark UsedInvincibility")
	}
}

func TestPlayerTrail(t *testing.T) {
	p := NewPlayer(core.V2(50, 50), 100, 5)
	if p.TickTrail(1, 0.04) {
		t.Error("stationary player should not emit exhaust")
	}
	p.SetVelocity(core.V2(1, 0))
	if p.TickTrail(0.02, 0.04) {
		t.Error("exhaust emitted before interval elapsed")
	}
	if !p.TickTrail(0.02, 0.04) {
		t.Error("exhaust not emitted after interval elapsed")
	}
}

func TestProjectileLifetime(t *testing.T) {
	area := core.NewBounds(480, 720, 0)
	// Step length is exactly 2 units: 128 units/s * 1/64 s.
	p := NewProjectile(core.V2(240, 360), core.V2(128, 0), 5, core.ColorRed)

	// Retired once x > 480 + 2*5, i.e. after 126 steps and not before.
	for i := 1; i <= 125; i++ {
		p.Update(1.0/64, Target{}, testRules(), area)
		if !p.Active {
			t.Fatalf("projectile retired early at step %d (x=%v)", i, p.Pos.X)
		}
	}
	p.Update(1.0/64, Target{}, testRules(), area)
	if p.Active {
		t.Errorf("projectile still active at x=%v, expected retired", p.Pos.X)
	}
}

func TestProjectileRetiresInEveryDirection(t *testing.T) {
	area := core.NewBounds(200, 200, 0)
	for _, dir := range []core.Vec3{core.V2(1, 0), core.V2(-1, 0), core.V2(0, 1), core.V2(0, -1)} {
		p := NewProjectile(core.V2(100, 100), dir.Scale(100), 4, core.ColorRed)
		ticks := 0
		for p.Active && ticks < 1000 {
			p.Update(0.01, Target{}, testRules(), area)
			ticks++
		}
		// 108 units to travel at 1 unit per tick.
		if ticks < 108 || ticks > 110 {
			t.Errorf("direction %v retired after %d ticks, expected about 109", dir, ticks)
		}
	}
}

func TestInitialAimShortestArc(t *testing.T) {
	area := core.NewBounds(10000, 10000, 0)
	origin := core.V2(5000, 5000)

	tests := []struct {
		name     string
		aim      core.Vec3
		positive bool
	}{
		{"behind, slightly below", core.V2(4900, 5001), true},
		{"behind, slightly above", core.V2(4900, 4999), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProjectile(origin, core.V2(100, 0), 5, core.ColorRed)
			p.AimAt(tc.aim)
			p.Update(ReferenceTick, Target{}, testRules(), area)

			h := p.Vel.Heading()
			if tc.positive && h <= 0 {
				t.Errorf("heading = %v, expected a positive turn", h)
			}
			if !tc.positive && h >= 0 {
				t.Errorf("heading = %v, expected a negative turn", h)
			}
			// One step turns at most 1% of π.
			if math.Abs(h) > 0.01*math.Pi+eps {
				t.Errorf("heading = %v, turned more than one step", h)
			}
			if math.Abs(p.Vel.Len()-100) > 1e-9 {
				t.Errorf("speed = %v, expected 100", p.Vel.Len())
			}
		})
	}
}

func TestInitialAimWrapsAcrossPi(t *testing.T) {
	area := core.NewBounds(10000, 10000, 0)
	origin := core.V2(5000, 5000)

	// Heading just below +π, target just past -π: the short way crosses π.
	p := NewProjectile(origin, core.Polar(math.Pi-0.05, 100), 5, core.ColorRed)
	p.AimAt(origin.Add(core.Polar(-math.Pi+0.05, 3000)))

	for i := 0; i < 30; i++ {
		p.Update(ReferenceTick, Target{}, testRules(), area)
		h := p.Vel.Heading()
		// Must stay in the narrow wedge around π, never swing back through 0.
		if math.Abs(h) < math.Pi-0.05-eps {
			t.Fatalf("step %d: heading %v turned the long way", i, h)
		}
	}
}

func TestInitialAimStopsNearTarget(t *testing.T) {
	area := core.NewBounds(1000, 1000, 0)
	p := NewProjectile(core.V2(100, 100), core.V2(60, 0), 5, core.ColorRed)
	p.AimAt(core.V2(103, 100))
	p.Update(ReferenceTick, Target{}, testRules(), area)
	if p.Tracking != TrackNone {
		t.Errorf("Tracking = %v, expected none within stop distance", p.Tracking)
	}
}

func TestActiveHomingSteersTowardPlayer(t *testing.T) {
	area := core.NewBounds(1000, 1000, 0)
	p := NewProjectile(core.V2(100, 100), core.V2(100, 0), 5, core.ColorRed)
	p.Home(3)

	target := Target{Pos: core.V2(100, 500), Alive: true}
	for i := 0; i < 60; i++ {
		p.Update(ReferenceTick, target, testRules(), area)
	}
	if p.Vel.Y <= 0 {
		t.Errorf("velocity %v did not turn toward the player below", p.Vel)
	}
	if math.Abs(p.Vel.Len()-100) > 1e-9 {
		t.Errorf("speed = %v, expected 100", p.Vel.Len())
	}
	if math.Abs(p.TrackLeft-2) > 1e-9 {
		t.Errorf("TrackLeft = %v, expected 2", p.TrackLeft)
	}
}

func TestActiveHomingDegradesWhenTargetGone(t *testing.T) {
	area := core.NewBounds(1000, 1000, 0)
	p := NewProjectile(core.V2(100, 100), core.V2(100, 0), 5, core.ColorRed)
	p.Home(3)

	p.Update(ReferenceTick, Target{Pos: core.V2(100, 500), Alive: false}, testRules(), area)
	if p.Tracking != TrackNone {
		t.Errorf("Tracking = %v, expected none after target destroyed", p.Tracking)
	}
	if p.Vel != core.V2(100, 0) {
		t.Errorf("velocity = %v, expected straight flight", p.Vel)
	}
}

func TestActiveHomingExpires(t *testing.T) {
	area := core.NewBounds(10000, 10000, 0)
	p := NewProjectile(core.V2(100, 100), core.V2(10, 0), 5, core.ColorRed)
	p.Home(0.5)
	target := Target{Pos: core.V2(100, 5000), Alive: true}
	for i := 0; i < 40; i++ {
		p.Update(ReferenceTick, target, testRules(), area)
	}
	if p.Tracking != TrackNone {
		t.Errorf("Tracking = %v, expected none after duration", p.Tracking)
	}
	before := p.Vel
	p.Update(ReferenceTick, target, testRules(), area)
	if p.Vel != before {
		t.Errorf("velocity changed after homing expired: %v -> %v", before, p.Vel)
	}
}

func TestProjectileSpin(t *testing.T) {
	area := core.NewBounds(1000, 1000, 0)
	p := NewProjectile(core.V2(500, 500), core.V2(100, 0), 5, core.ColorRed)
	p.Spin = math.Pi / 2
	p.Update(1, Target{}, testRules(), area)
	if math.Abs(p.Vel.X) > 1e-9 || math.Abs(p.Vel.Y-100) > 1e-9 {
		t.Errorf("velocity after a quarter turn = %v, expected (0, 100)", p.Vel)
	}
}

func TestParticleLifetime(t *testing.T) {
	p := NewParticle(core.V2(0, 0), core.V2(10, 0), 4, 1, core.ColorOrange)

	p.Update(0.5)
	if !p.Active {
		t.Fatal("particle retired at half lifetime")
	}
	if math.Abs(p.Size-2) > eps {
		t.Errorf("Size at half lifetime = %v, expected 2", p.Size)
	}
	if math.Abs(p.Alpha()-0.5) > eps {
		t.Errorf("Alpha() at half lifetime = %v, expected 0.5", p.Alpha())
	}
	if p.Pos != core.V2(5, 0) {
		t.Errorf("Pos = %v, expected (5, 0)", p.Pos)
	}

	p.Update(0.5)
	if p.Active {
		t.Error("particle still active at age >= lifetime")
	}
	if p.Size != 0 {
		t.Errorf("Size after expiry = %v, expected 0", p.Size)
	}
}

func TestDebugInvincibleMarksUse(t *testing.T) {
	p := NewPlayer(core.V2(10, 10), 300, 6)
	p.GrantInvincibility(1)
	if p.UsedInvincibility {
		t.Fatal("grace period marked invincibility as used")
	}

	p.SetDebugInvincible(true)
	if !p.Invincible || p.InvincibleLeft != 0 || !p.UsedInvincibility {
		t.Errorf("after SetDebugInvincible(true): %+v", p)
	}
	p.Update(10, core.NewBounds(100, 100, 0))
	if !p.Invincible {
		t.Error("untimed invincibility expired")
	}

	p.SetDebugInvincible(false)
	if p.Invincible || !p.UsedInvincibility {
		t.Errorf("after SetDebugInvincible(false): invincible %v used %v", p.Invincible, p.UsedInvincibility)
	}
}
