package main

import (
	"testing"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/world"
)

func snapshotWith(player core.Vec3, projectiles ...world.ProjectileView) world.Snapshot {
	return world.Snapshot{
		Player:      world.PlayerView{Pos: player, Alive: true},
		Projectiles: projectiles,
		Bounds:      core.NewBounds(480, 720, 0),
	}
}

func TestEvaderDirection(t *testing.T) {
	e := newEvader()
	center := core.V2(240, 360)

	tests := []struct {
		name     string
		snap     world.Snapshot
		home     core.Vec3
		expected core.Vec3
	}{
		{"idle at home", snapshotWith(center), center, core.Vec3{}},
		{
			"dodge left of bullet",
			snapshotWith(center, world.ProjectileView{Pos: core.V2(260, 360), Radius: 5}),
			center, core.V2(-1, 0),
		},
		{
			"dodge incoming from above",
			snapshotWith(center, world.ProjectileView{Pos: core.V2(240, 300), Vel: core.V2(0, 200), Moving: true}),
			center, core.V2(0, 1),
		},
		{"ignore far bullet", snapshotWith(center, world.ProjectileView{Pos: core.V2(240, 100)}), center, core.Vec3{}},
		{"leave the wall", snapshotWith(core.V2(2, 360)), core.V2(2, 360), core.V2(1, 0)},
		{"return home", snapshotWith(core.V2(100, 360)), center, core.V2(1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if result := e.Direction(tc.snap, tc.home); result != tc.expected {
				t.Errorf("Direction() = %v, expected %v", result, tc.expected)
			}
		})
	}
}

func newSimWorld(t *testing.T, seed int64) *world.World {
	t.Helper()
	cfg, err := config.Resolve("", config.VariantFlat, config.DifficultyNormal)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	w, err := world.New(cfg, seed, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

func TestSimulateDeterministic(t *testing.T) {
	a := simulate(newSimWorld(t, 11), 1.0/60, 15, true, nil)
	b := simulate(newSimWorld(t, 11), 1.0/60, 15, true, nil)

	if a != b {
		t.Errorf("simulate() = %+v and %+v, expected identical runs", a, b)
	}
	if !a.Hit && a.Survival < 15 {
		t.Errorf("simulate() stopped at %.2fs without a hit", a.Survival)
	}
	if a.Ticks == 0 {
		t.Error("simulate() ran no ticks")
	}
}

func TestSimulateReportsProgress(t *testing.T) {
	var reports int
	res := simulate(newSimWorld(t, 3), 1.0/60, 25, true, func(world.Snapshot) { reports++ })

	expected := int(res.Survival / 10)
	if reports != expected {
		t.Errorf("progress called %d times, expected %d", reports, expected)
	}
}

func TestVariantOf(t *testing.T) {
	tests := []struct {
		args     []string
		expected config.Variant
		err      bool
	}{
		{nil, config.VariantFlat, false},
		{[]string{"danmaku"}, config.VariantFlat, false},
		{[]string{"danmaku3d"}, config.VariantDepth, false},
		{[]string{"tetris"}, "", true},
	}

	for _, tc := range tests {
		v, err := variantOf(tc.args)
		if (err != nil) != tc.err {
			t.Errorf("variantOf(%v) error = %v, expected error %v", tc.args, err, tc.err)
		}
		if v != tc.expected {
			t.Errorf("variantOf(%v) = %q, expected %q", tc.args, v, tc.expected)
		}
	}
}
