package config

import (
	_ "embed"
)

//go:embed defaults/danmaku.yaml
var defaultDanmakuYAML []byte

// DefaultConfig returns the built-in configuration of the flat variant.
// It mirrors defaults/danmaku.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:    480,
			Height:   720,
			Depth:    0,
			MaxDelta: 0.05,
		},
		Player: PlayerConfig{
			Speed:         300,
			Radius:        6,
			EdgeInset:     15,
			SpawnX:        0.5,
			SpawnY:        0.85,
			SpawnGrace:    0,
			TrailInterval: 0.04,
		},
		Projectile: ProjectileConfig{
			Cap: CapConfig{
				Base:          500,
				PerDifficulty: 0,
				Max:           500,
			},
			BoundsMargin:  2,
			MinRadius:     1,
			TrailChance:   0.4,
			TrailInterval: 0.03,
			DepthJitter:   0,
		},
		Tracking: TrackingConfig{
			AimTurnRate:     0.01,
			AimStopDistance: 5,
			HomingTurnRate:  0.03,
			HomingDuration:  3,
			MaxHoming:       3,
		},
		Collision: CollisionConfig{
			Mode:        "planar",
			XYThreshold: 1,
			ZThreshold:  0,
			HitboxScale: 1,
		},
		Spawn: SpawnConfig{
			InitialDelay: 2,
			MinInterval:  0.3,
			Cadence: CadenceConfig{
				MinStart:   2,
				MinSpan:    1.5,
				MinFloor:   0.5,
				MaxStart:   3,
				MaxSpan:    2,
				MaxFloor:   0.8,
				Saturation: 15,
			},
			Backoff:   ThresholdConfig{Threshold: 0.8, Slope: 5},
			Reduction: ThresholdConfig{Threshold: 0.7, Slope: 3},
			SafeZone:  SafeZoneConfig{Ratio: 0.25, Retries: 10},
			TopY:      50,
			CenterY:   100,
			EdgeInset: 10,
			Multi: MultiSpawnConfig{
				MinDifficulty:  4,
				ChancePerLevel: 0.1,
				MaxChance:      0.5,
				MaxPerTick:     2,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			Initial:      1,
			Ceiling:      25,
			Interval:     5,
			Growth:       GrowthLog,
			Scale:        1.5,
			MinIncrement: 0.2,
			Steps: []StepConfig{
				{Below: 5, Factor: 1},
				{Below: 10, Factor: 0.6},
				{Below: 15, Factor: 0.4},
				{Below: 20, Factor: 0.2},
				{Below: 25, Factor: 0.1},
			},
		},
		Particles: ParticleConfig{
			MaxParticles: 300,
			Explosion: ExplosionConfig{
				Count:       50,
				MinSpeed:    60,
				MaxSpeed:    240,
				MinSize:     2,
				MaxSize:     5,
				MinLifetime: 0.5,
				MaxLifetime: 1.5,
			},
			LevelUpBurst: 20,
		},
		Governor: GovernorConfig{
			Enabled:        true,
			HistorySize:    60,
			CheckInterval:  2,
			CriticalFPS:    30,
			LowFPS:         50,
			RecoverFPS:     59,
			LowBudgetRatio: 0.3,
		},
		Patterns: DefaultPatterns(),
	}
}

// DefaultPatterns returns the built-in pattern table.
func DefaultPatterns() []PatternConfig {
	return []PatternConfig{
		{Name: "circular", Weight: 1, MinDifficulty: 0, BaseCount: 8, CountGrowth: 5, MinCount: 3, Speed: 120, SpeedGrowth: 5, Radius: 5, AimChance: 0.1, AimMinDifficulty: 5},
		{Name: "arc", Weight: 1, MinDifficulty: 0, BaseCount: 6, CountGrowth: 4, MinCount: 3, Speed: 120, SpeedGrowth: 5, Radius: 6},
		{Name: "random", Weight: 0.8, MinDifficulty: 0.5, BaseCount: 10, CountGrowth: 6, MinCount: 5, Speed: 60, SpeedGrowth: 3, SpeedRange: 90, Radius: 4},
		{Name: "spiral", Weight: 0.7, MinDifficulty: 1.5, BaseCount: 12, CountGrowth: 5, MinCount: 6, Speed: 120, SpeedGrowth: 5, Radius: 5},
		{Name: "heart", Weight: 0.5, MinDifficulty: 2.5, Complex: true, BaseCount: 15, CountGrowth: 5, MinCount: 8, Speed: 60, SpeedGrowth: 3, Radius: 5},
		{Name: "star", Weight: 0.6, MinDifficulty: 2, Complex: true, BaseCount: 18, CountGrowth: 6, MinCount: 10, Speed: 90, SpeedGrowth: 3, Radius: 5},
		{Name: "multiSpiral", Weight: 0.6, MinDifficulty: 3, Complex: true, BaseCount: 4, CountGrowth: 3, MinCount: 3, Speed: 120, SpeedGrowth: 4, Radius: 5, Spin: 0.6},
		{Name: "homing", Weight: 0.3, MinDifficulty: 4, Complex: true, BaseCount: 1, CountGrowth: 0.5, MinCount: 1, Speed: 60, SpeedGrowth: 2.5, Radius: 6},
		{Name: "multiDirection", Weight: 0.7, MinDifficulty: 2.5, BaseCount: 3, CountGrowth: 3, MinCount: 2, Speed: 120, SpeedGrowth: 4, Radius: 5, AimChance: 0.08, AimMinDifficulty: 7},
	}
}
