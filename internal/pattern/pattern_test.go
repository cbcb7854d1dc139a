package pattern

import (
	"bytes"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/entity"
)

func newEmitter(seed int64) *Emitter {
	return NewEmitter(rand.New(rand.NewSource(seed)), core.BulletPalette, 1, 0.4)
}

func newLibrary(t *testing.T, cfg config.Config, seed int64, logger *log.Logger) *Library {
	t.Helper()
	l, err := NewLibrary(cfg, rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	return l
}

func playContext(cfg config.Config, player core.Vec3) Context {
	return Context{
		Difficulty: 1,
		Cap:        500,
		Player:     player,
		Area:       core.NewBounds(cfg.World.Width, cfg.World.Height, cfg.World.Depth),
	}
}

func TestRadialSpacing(t *testing.T) {
	origin := core.V2(100, 100)
	shots := newEmitter(1).Radial(origin, 8, 120, 5)
	if len(shots) != 8 {
		t.Fatalf("Radial() len = %d, expected 8", len(shots))
	}
	for i, s := range shots {
		want := core.WrapAngle(float64(i) * math.Pi / 4)
		if d := core.AngleDiff(s.Vel.Heading(), want); math.Abs(d) > 1e-9 {
			t.Errorf("shot %d heading = %v, expected %v", i, s.Vel.Heading(), want)
		}
		if math.Abs(s.Vel.Len()-120) > 1e-9 {
			t.Errorf("shot %d speed = %v, expected 120", i, s.Vel.Len())
		}
		if s.Pos != origin {
			t.Errorf("shot %d pos = %v, expected %v", i, s.Pos, origin)
		}
	}
}

func TestArcEndpoints(t *testing.T) {
	shots := newEmitter(1).Arc(core.V2(0, 0), 5, math.Pi/4, 3*math.Pi/4, 100, 5)
	first, last := shots[0].Vel.Heading(), shots[len(shots)-1].Vel.Heading()
	if math.Abs(first-math.Pi/4) > 1e-9 || math.Abs(last-3*math.Pi/4) > 1e-9 {
		t.Errorf("Arc() endpoints = %v..%v, expected π/4..3π/4", first, last)
	}

	single := newEmitter(1).Arc(core.V2(0, 0), 1, 1, 2, 100, 5)
	if len(single) != 1 || math.Abs(single[0].Vel.Heading()-1) > 1e-9 {
		t.Errorf("Arc(n=1) = %v, expected one shot at start angle", single)
	}
}

func TestSpiralAngles(t *testing.T) {
	origin := core.V2(200, 200)
	shots := newEmitter(1).Spiral(origin, 12, 2, 3, 100, 5)
	for i, s := range shots {
		want := core.WrapAngle(float64(i) * 2 * math.Pi * 2 / 12)
		if d := core.AngleDiff(s.Vel.Heading(), want); math.Abs(d) > 1e-9 {
			t.Errorf("shot %d heading = %v, expected %v", i, s.Vel.Heading(), want)
		}
		if dist := s.Pos.Sub(origin).Len(); math.Abs(dist-float64(i)*3) > 1e-9 {
			t.Errorf("shot %d offset = %v, expected %v", i, dist, float64(i)*3)
		}
	}
}

func TestHeartLaunchesOutward(t *testing.T) {
	origin := core.V2(240, 100)
	shots := newEmitter(1).Heart(origin, 15, 2, 60, 5)
	for i, s := range shots {
		out := s.Pos.Sub(origin)
		if out.IsZero() {
			continue
		}
		if dot := out.X*s.Vel.X + out.Y*s.Vel.Y; dot <= 0 {
			t.Errorf("shot %d velocity %v points inward from %v", i, s.Vel, out)
		}
	}
}

func TestStarInnerSlower(t *testing.T) {
	shots := newEmitter(1).Star(core.V2(0, 0), 20, 5, 40, 100, 5)
	var inner, outer int
	for _, s := range shots {
		switch r := s.Pos.Len(); {
		case math.Abs(r-16) < 1e-9:
			inner++
			if math.Abs(s.Vel.Len()-40) > 1e-9 {
				t.Errorf("inner speed = %v, expected 40", s.Vel.Len())
			}
		case math.Abs(r-40) < 1e-9:
			outer++
		default:
			t.Errorf("star point at radius %v", r)
		}
	}
	if inner == 0 || outer == 0 {
		t.Errorf("Star() inner=%d outer=%d, expected both", inner, outer)
	}
}

func TestMinRadiusClamp(t *testing.T) {
	e := NewEmitter(rand.New(rand.NewSource(1)), nil, 2, 0)
	for _, s := range e.Radial(core.V2(0, 0), 4, 10, 0.5) {
		if s.Radius != 2 {
			t.Errorf("Radius = %v, expected 2", s.Radius)
		}
	}
}

func TestSafeZone(t *testing.T) {
	area := core.NewBounds(480, 720, 0)

	tests := []struct {
		name                     string
		player                   core.Vec3
		left, right, top, bottom bool
	}{
		{"center", core.V2(240, 360), false, false, false, false},
		{"left", core.V2(20, 360), true, false, false, false},
		{"bottom right", core.V2(470, 700), false, true, false, true},
		{"top", core.V2(240, 30), false, false, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			z := NewSafeZone(tc.player, area, 0.25)
			if z.Left != tc.left || z.Right != tc.right || z.Top != tc.top || z.Bottom != tc.bottom {
				t.Errorf("NewSafeZone() = %+v, expected l=%v r=%v t=%v b=%v", z, tc.left, tc.right, tc.top, tc.bottom)
			}
		})
	}

	z := NewSafeZone(core.V2(20, 360), area, 0.25)
	if !z.Contains(core.V2(50, 50)) {
		t.Error("Contains() left margin = false, expected true")
	}
	if !z.Contains(core.V2(100, 360)) {
		t.Error("Contains() inside left band = false, expected true")
	}
	if center := NewSafeZone(core.V2(240, 360), area, 0.25); !center.Contains(core.V2(300, 360)) {
		t.Error("Contains() near player = false, expected true")
	}
	if z.Contains(core.V2(400, 50)) {
		t.Error("Contains() far corner = true, expected false")
	}
}

func TestPickOriginGivesUp(t *testing.T) {
	z := NewSafeZone(core.V2(20, 360), core.NewBounds(480, 720, 0), 0.25)
	calls := 0
	p := z.PickOrigin(func() core.Vec3 {
		calls++
		return core.V2(10, 10)
	}, 10)
	if calls != 11 {
		t.Errorf("sample calls = %d, expected 11", calls)
	}
	if p != core.V2(10, 10) {
		t.Errorf("PickOrigin() = %v, expected last candidate", p)
	}

	calls = 0
	z.PickOrigin(func() core.Vec3 {
		calls++
		if calls < 3 {
			return core.V2(10, 10)
		}
		return core.V2(400, 50)
	}, 10)
	if calls != 3 {
		t.Errorf("sample calls = %d, expected 3", calls)
	}
}

func TestOpenEdges(t *testing.T) {
	area := core.NewBounds(480, 720, 0)
	open := NewSafeZone(core.V2(10, 10), area, 0.25).OpenEdges()
	if !reflect.DeepEqual(open, []Edge{EdgeBottom, EdgeRight}) {
		t.Errorf("OpenEdges() = %v, expected [bottom right]", open)
	}
	all := SafeZone{Left: true, Right: true, Top: true, Bottom: true}
	if got := all.OpenEdges(); len(got) != 4 {
		t.Errorf("OpenEdges() all safe = %v, expected every edge", got)
	}
}

func TestReductionFactor(t *testing.T) {
	tests := []struct {
		live, cap int
		expected  float64
	}{
		{0, 500, 1},
		{350, 500, 1},
		{400, 500, 0.7},
		{500, 500, 0.1},
		{10, 0, 0.1},
	}

	for _, tc := range tests {
		if result := ReductionFactor(tc.live, tc.cap, 0.7, 3); math.Abs(result-tc.expected) > 1e-9 {
			t.Errorf("ReductionFactor(%d, %d) = %v, expected %v", tc.live, tc.cap, result, tc.expected)
		}
	}
}

func TestScaleCount(t *testing.T) {
	tests := []struct {
		n        int
		factor   float64
		floor    int
		expected int
	}{
		{10, 1, 3, 10},
		{10, 0.5, 1, 5},
		{10, 0.05, 3, 3},
		{1, 0.1, 0, 1},
	}

	for _, tc := range tests {
		if result := ScaleCount(tc.n, tc.factor, tc.floor); result != tc.expected {
			t.Errorf("ScaleCount(%d, %v, %d) = %d, expected %d", tc.n, tc.factor, tc.floor, result, tc.expected)
		}
	}
}

func TestGrowCount(t *testing.T) {
	if c := GrowCount(8, 5, 0); c != 8 {
		t.Errorf("GrowCount(d=0) = %d, expected 8", c)
	}
	if c := GrowCount(8, 5, 9); c != 19 {
		t.Errorf("GrowCount(d=9) = %d, expected 19", c)
	}
}

func TestDefaultLibrary(t *testing.T) {
	l := newLibrary(t, config.DefaultConfig(), 1, nil)
	expected := []string{"circular", "arc", "random", "spiral", "heart", "star", "multiSpiral", "homing", "multiDirection"}
	if names := l.Names(); !reflect.DeepEqual(names, expected) {
		t.Errorf("Names() = %v, expected %v", names, expected)
	}

	ctx := playContext(config.DefaultConfig(), core.V2(240, 600))
	for _, name := range expected {
		if name == "homing" {
			continue
		}
		if shots := l.Emit(name, ctx); len(shots) == 0 {
			t.Errorf("Emit(%q) returned no projectiles", name)
		}
	}
}

func TestCountScalesWithDifficultyAndPopulation(t *testing.T) {
	cfg := config.DefaultConfig()
	l := newLibrary(t, cfg, 1, nil)
	pc, _ := cfg.Pattern("circular")
	ctx := playContext(cfg, core.V2(240, 600))

	ctx.Difficulty = 0
	if n := l.Count(pc, ctx); n != 8 {
		t.Errorf("Count(d=0) = %d, expected 8", n)
	}
	ctx.Difficulty = 10
	grown := l.Count(pc, ctx)
	if grown <= 8 {
		t.Errorf("Count(d=10) = %d, expected more than 8", grown)
	}
	ctx.Live = 480
	if n := l.Count(pc, ctx); n >= grown || n < pc.MinCount {
		t.Errorf("Count() near cap = %d, expected in [%d, %d)", n, pc.MinCount, grown)
	}
}

func TestEmitUnknownPatternWarns(t *testing.T) {
	var buf bytes.Buffer
	l := newLibrary(t, config.DefaultConfig(), 1, log.New(&buf))
	if shots := l.Emit("lattice", playContext(config.DefaultConfig(), core.V2(240, 600))); shots != nil {
		t.Errorf("Emit(unknown) = %v, expected nil", shots)
	}
	if !strings.Contains(buf.String(), "unknown pattern") {
		t.Errorf("log = %q, expected unknown pattern warning", buf.String())
	}
}

func TestHomingRespectsLiveCap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tracking.MaxHoming = 3
	l := newLibrary(t, cfg, 1, nil)
	ctx := playContext(cfg, core.V2(240, 600))
	ctx.Difficulty = 20

	ctx.LiveHoming = 3
	if shots := l.Emit("homing", ctx); len(shots) != 0 {
		t.Errorf("Emit(homing) at cap = %d shots, expected 0", len(shots))
	}

	ctx.LiveHoming = 2
	shots := l.Emit("homing", ctx)
	if len(shots) != 1 {
		t.Fatalf("Emit(homing) with room 1 = %d shots, expected 1", len(shots))
	}
	if shots[0].Tracking != entity.TrackActiveHoming || shots[0].TrackLeft != cfg.Tracking.HomingDuration {
		t.Errorf("homing shot = %v/%v, expected ActiveHoming for %v s", shots[0].Tracking, shots[0].TrackLeft, cfg.Tracking.HomingDuration)
	}

	ctx.LiveHoming = 0
	if shots := l.Emit("homing", ctx); len(shots) > 3 {
		t.Errorf("Emit(homing) = %d shots, expected at most 3", len(shots))
	}
}

func TestMultiDirectionAvoidsSafeEdge(t *testing.T) {
	cfg := config.DefaultConfig()
	inset := cfg.Spawn.EdgeInset
	for seed := int64(0); seed < 20; seed++ {
		l := newLibrary(t, cfg, seed, nil)
		ctx := playContext(cfg, core.V2(10, 360))
		ctx.Difficulty = 10
		for _, s := range l.Emit("multiDirection", ctx) {
			if s.Pos.X == inset {
				t.Fatalf("seed %d: projectile spawned on the left edge next to the player", seed)
			}
		}
	}
}

func TestAimedBatch(t *testing.T) {
	cfg := config.DefaultConfig()
	for i := range cfg.Patterns {
		cfg.Patterns[i].AimChance = 1
		cfg.Patterns[i].AimMinDifficulty = 0
	}
	l := newLibrary(t, cfg, 1, nil)
	ctx := playContext(cfg, core.V2(240, 600))
	for _, s := range l.Emit("arc", ctx) {
		if s.Tracking != entity.TrackInitialAim || s.AimPoint != ctx.Player {
			t.Fatalf("shot = %v aiming at %v, expected InitialAim at player", s.Tracking, s.AimPoint)
		}
	}

	ctx.Difficulty = 0
	for _, s := range l.Emit("arc", ctx) {
		if s.Tracking != entity.TrackNone {
			t.Fatalf("shot tracking = %v at difficulty 0, expected none", s.Tracking)
		}
	}
}

func TestDepthJitter(t *testing.T) {
	cfg := config.DefaultConfig()
	config.ApplyVariant(&cfg, config.VariantDepth)
	l := newLibrary(t, cfg, 3, nil)
	ctx := playContext(cfg, core.Vec3{X: 240, Y: 600, Z: 100})

	lo := cfg.World.Depth/2 - cfg.Projectile.DepthJitter/2
	hi := cfg.World.Depth/2 + cfg.Projectile.DepthJitter/2
	for i := 0; i < 20; i++ {
		for _, s := range l.Emit("circular", ctx) {
			if s.Pos.Z < lo || s.Pos.Z > hi {
				t.Fatalf("Pos.Z = %v, expected within [%v, %v]", s.Pos.Z, lo, hi)
			}
		}
	}

	flat := newLibrary(t, config.DefaultConfig(), 3, nil)
	for _, s := range flat.Emit("circular", playContext(config.DefaultConfig(), core.V2(240, 600))) {
		if s.Pos.Z != 0 {
			t.Fatalf("flat Pos.Z = %v, expected 0", s.Pos.Z)
		}
	}
}

func TestDeterministicEmission(t *testing.T) {
	cfg := config.DefaultConfig()
	a := newLibrary(t, cfg, 42, nil)
	b := newLibrary(t, cfg, 42, nil)
	ctx := playContext(cfg, core.V2(240, 600))
	ctx.Difficulty = 6
	for _, name := range a.Names() {
		if !reflect.DeepEqual(a.Emit(name, ctx), b.Emit(name, ctx)) {
			t.Errorf("Emit(%q) differs between identically seeded libraries", name)
		}
	}
}

func TestRegisterErrors(t *testing.T) {
	l := newLibrary(t, config.DefaultConfig(), 1, nil)
	if err := l.Register(Pattern{Name: "circular", Build: func(Context) []entity.Projectile { return nil }}); err == nil {
		t.Error("Register(duplicate) expected error")
	}
	if err := l.Register(Pattern{Name: "empty"}); err == nil {
		t.Error("Register(nil Build) expected error")
	}

	cfg := config.DefaultConfig()
	cfg.Patterns = append(cfg.Patterns, config.PatternConfig{Name: "lattice", Weight: 1, Radius: 4, MinCount: 1})
	if _, err := NewLibrary(cfg, rand.New(rand.NewSource(1)), nil); err == nil {
		t.Error("NewLibrary(unknown shape) expected error")
	}
}
