package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/danmaku/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(field string, v any) {
		errs = append(errs, fmt.Errorf("%w: %s = %v", ErrInvalid, field, v))
	}

	if c.World.Width <= 0 {
		bad("world.width", c.World.Width)
	}
	if c.World.Height <= 0 {
		bad("world.height", c.World.Height)
	}
	if c.World.Depth < 0 {
		bad("world.depth", c.World.Depth)
	}
	if c.World.MaxDelta <= 0 {
		bad("world.max_delta", c.World.MaxDelta)
	}

	if c.Player.Speed <= 0 {
		bad("player.speed", c.Player.Speed)
	}
	if c.Player.Radius <= 0 {
		bad("player.radius", c.Player.Radius)
	}
	if c.Player.SpawnX < 0 || c.Player.SpawnX > 1 {
		bad("player.spawn_x", c.Player.SpawnX)
	}
	if c.Player.SpawnY < 0 || c.Player.SpawnY > 1 {
		bad("player.spawn_y", c.Player.SpawnY)
	}

	if c.Projectile.Cap.Max < 1 || c.Projectile.Cap.Base < 1 {
		bad("projectile.cap", c.Projectile.Cap)
	}
	if c.Projectile.MinRadius <= 0 {
		bad("projectile.min_radius", c.Projectile.MinRadius)
	}

	if c.Tracking.MaxHoming < 0 {
		bad("tracking.max_homing", c.Tracking.MaxHoming)
	}
	for field, rate := range map[string]float64{
		"tracking.aim_turn_rate":    c.Tracking.AimTurnRate,
		"tracking.homing_turn_rate": c.Tracking.HomingTurnRate,
	} {
		if rate < 0 || rate > 1 {
			bad(field, rate)
		}
	}

	if _, err := core.ParseCollisionMode(c.Collision.Mode); err != nil {
		bad("collision.mode", c.Collision.Mode)
	}
	if c.Collision.HitboxScale <= 0 {
		bad("collision.hitbox_scale", c.Collision.HitboxScale)
	}

	if c.Spawn.MinInterval <= 0 {
		bad("spawn.min_interval", c.Spawn.MinInterval)
	}
	if c.Spawn.Cadence.MinFloor <= 0 || c.Spawn.Cadence.MaxFloor < c.Spawn.Cadence.MinFloor {
		bad("spawn.cadence", c.Spawn.Cadence)
	}
	if c.Spawn.SafeZone.Ratio < 0 || c.Spawn.SafeZone.Ratio >= 0.5 {
		bad("spawn.safe_zone.ratio", c.Spawn.SafeZone.Ratio)
	}
	if c.Spawn.Multi.MaxPerTick < 1 {
		bad("spawn.multi.max_per_tick", c.Spawn.Multi.MaxPerTick)
	}

	if c.Difficulty.Interval <= 0 {
		bad("difficulty.interval", c.Difficulty.Interval)
	}
	if c.Difficulty.Ceiling < c.Difficulty.Initial {
		bad("difficulty.ceiling", c.Difficulty.Ceiling)
	}
	switch c.Difficulty.Growth {
	case GrowthLog:
	case GrowthStepped:
		if len(c.Difficulty.Steps) == 0 {
			bad("difficulty.steps", "empty")
		}
	default:
		bad("difficulty.growth", c.Difficulty.Growth)
	}

	if c.Particles.MaxParticles < 0 {
		bad("particles.max_particles", c.Particles.MaxParticles)
	}
	if c.Governor.Enabled && c.Governor.HistorySize < 1 {
		bad("governor.history_size", c.Governor.HistorySize)
	}

	if len(c.Patterns) == 0 {
		bad("patterns", "empty")
	}
	seen := make(map[string]bool, len(c.Patterns))
	for i, p := range c.Patterns {
		field := fmt.Sprintf("patterns[%d]", i)
		if p.Name == "" || seen[p.Name] {
			bad(field+".name", p.Name)
		}
		seen[p.Name] = true
		if p.Weight < 0 {
			bad(field+".weight", p.Weight)
		}
		if p.Radius <= 0 {
			bad(field+".radius", p.Radius)
		}
		if p.MinCount < 1 {
			bad(field+".min_count", p.MinCount)
		}
	}

	return errors.Join(errs...)
}
