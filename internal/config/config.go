// Package config provides YAML-based configuration loading for the danmaku
// engine: playfield, entities, spawn cadence, difficulty growth, particle
// budgets and the pattern table. Every tuning constant lives here as a named
// parameter.
package config

// Config contains all configuration for one engine instance.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Tracking   TrackingConfig   `yaml:"tracking"`
	Collision  CollisionConfig  `yaml:"collision"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Particles  ParticleConfig   `yaml:"particles"`
	Governor   GovernorConfig   `yaml:"governor"`
	Patterns   []PatternConfig  `yaml:"patterns"`
}

// WorldConfig defines the playfield. Depth 0 means a flat playfield.
type WorldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Depth    float64 `yaml:"depth"`
	MaxDelta float64 `yaml:"max_delta"` // Largest simulated step in seconds
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Speed         float64 `yaml:"speed"`          // Units per second
	Radius        float64 `yaml:"radius"`         // Hitbox radius
	EdgeInset     float64 `yaml:"edge_inset"`     // Distance kept from the playfield edge
	SpawnX        float64 `yaml:"spawn_x"`        // Fraction of width
	SpawnY        float64 `yaml:"spawn_y"`        // Fraction of height
	SpawnGrace    float64 `yaml:"spawn_grace"`    // Seconds of invincibility after spawning
	TrailInterval float64 `yaml:"trail_interval"` // Seconds between exhaust particles
}

// ProjectileConfig defines projectile population and lifetime rules.
type ProjectileConfig struct {
	Cap           CapConfig `yaml:"cap"`
	BoundsMargin  float64   `yaml:"bounds_margin"` // Multiple of radius allowed outside the playfield
	MinRadius     float64   `yaml:"min_radius"`
	TrailChance   float64   `yaml:"trail_chance"`   // Probability an untracked projectile leaves a trail
	TrailInterval float64   `yaml:"trail_interval"` // Seconds between trail particles
	DepthJitter   float64   `yaml:"depth_jitter"`   // Spawn Z spread around mid-depth
}

// CapConfig defines a population ceiling of min(Max, Base + PerDifficulty*d).
type CapConfig struct {
	Base          float64 `yaml:"base"`
	PerDifficulty float64 `yaml:"per_difficulty"`
	Max           float64 `yaml:"max"`
}

// TrackingConfig defines projectile steering.
// Turn rates are fractions of the angular error removed per 1/60 s.
type TrackingConfig struct {
	AimTurnRate     float64 `yaml:"aim_turn_rate"`
	AimStopDistance float64 `yaml:"aim_stop_distance"`
	HomingTurnRate  float64 `yaml:"homing_turn_rate"`
	HomingDuration  float64 `yaml:"homing_duration"` // Seconds
	MaxHoming       int     `yaml:"max_homing"`      // Live homing projectiles allowed at once
}

// CollisionConfig defines the overlap policy between player and projectiles.
type CollisionConfig struct {
	Mode        string  `yaml:"mode"` // "sphere", "planar" or "gated"
	XYThreshold float64 `yaml:"xy_threshold"`
	ZThreshold  float64 `yaml:"z_threshold"`
	HitboxScale float64 `yaml:"hitbox_scale"` // Applied to projectile radii
}

// SpawnConfig defines where and how often patterns appear.
type SpawnConfig struct {
	InitialDelay float64          `yaml:"initial_delay"` // Seconds before the first pattern
	MinInterval  float64          `yaml:"min_interval"`  // Absolute floor between patterns
	Cadence      CadenceConfig    `yaml:"cadence"`
	Backoff      ThresholdConfig  `yaml:"backoff"`   // Interval stretch near the cap
	Reduction    ThresholdConfig  `yaml:"reduction"` // Count reduction near the cap
	SafeZone     SafeZoneConfig   `yaml:"safe_zone"`
	TopY         float64          `yaml:"top_y"`      // Spawn line of top-origin patterns
	CenterY      float64          `yaml:"center_y"`   // Spawn line of shaped patterns
	EdgeInset    float64          `yaml:"edge_inset"` // Emitter distance inside an edge
	Multi        MultiSpawnConfig `yaml:"multi"`
}

// CadenceConfig defines the damped spawn interval range.
// With growth g, min = max(MinFloor, MinStart - MinSpan*g) and likewise for max.
type CadenceConfig struct {
	MinStart   float64 `yaml:"min_start"`
	MinSpan    float64 `yaml:"min_span"`
	MinFloor   float64 `yaml:"min_floor"`
	MaxStart   float64 `yaml:"max_start"`
	MaxSpan    float64 `yaml:"max_span"`
	MaxFloor   float64 `yaml:"max_floor"`
	Saturation float64 `yaml:"saturation"` // Difficulty after which growth stops
}

// ThresholdConfig describes a linear response above a population ratio.
type ThresholdConfig struct {
	Threshold float64 `yaml:"threshold"`
	Slope     float64 `yaml:"slope"`
}

// SafeZoneConfig defines the spawn exclusion margin around the player.
type SafeZoneConfig struct {
	Ratio   float64 `yaml:"ratio"`
	Retries int     `yaml:"retries"`
}

// MultiSpawnConfig defines the chance of more than one pattern per spawn.
type MultiSpawnConfig struct {
	MinDifficulty  float64 `yaml:"min_difficulty"`
	ChancePerLevel float64 `yaml:"chance_per_level"`
	MaxChance      float64 `yaml:"max_chance"`
	MaxPerTick     int     `yaml:"max_per_tick"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool         `yaml:"enabled"`
	Initial      float64      `yaml:"initial"`
	Ceiling      float64      `yaml:"ceiling"`
	Interval     float64      `yaml:"interval"` // Seconds between increments
	Growth       string       `yaml:"growth"`   // "log" or "stepped"
	Scale        float64      `yaml:"scale"`
	MinIncrement float64      `yaml:"min_increment"`
	Steps        []StepConfig `yaml:"steps"` // Used by "stepped" growth
}

// StepConfig applies Factor to the base increment while difficulty < Below.
type StepConfig struct {
	Below  float64 `yaml:"below"`
	Factor float64 `yaml:"factor"`
}

// ParticleConfig defines cosmetic particle budgets.
type ParticleConfig struct {
	MaxParticles int             `yaml:"max_particles"`
	Explosion    ExplosionConfig `yaml:"explosion"`
	LevelUpBurst int             `yaml:"level_up_burst"`
}

// ExplosionConfig defines the burst emitted when the player is hit.
type ExplosionConfig struct {
	Count       int     `yaml:"count"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MinSize     float64 `yaml:"min_size"`
	MaxSize     float64 `yaml:"max_size"`
	MinLifetime float64 `yaml:"min_lifetime"`
	MaxLifetime float64 `yaml:"max_lifetime"`
}

// GovernorConfig defines frame-rate driven effect throttling.
type GovernorConfig struct {
	Enabled        bool    `yaml:"enabled"`
	HistorySize    int     `yaml:"history_size"`
	CheckInterval  float64 `yaml:"check_interval"`
	CriticalFPS    float64 `yaml:"critical_fps"`
	LowFPS         float64 `yaml:"low_fps"`
	RecoverFPS     float64 `yaml:"recover_fps"`
	LowBudgetRatio float64 `yaml:"low_budget_ratio"`
}

// PatternConfig defines one entry of the pattern table.
// Counts are BaseCount + floor(ln(d+1)*CountGrowth), at least MinCount.
type PatternConfig struct {
	Name             string  `yaml:"name"`
	Weight           float64 `yaml:"weight"`
	MinDifficulty    float64 `yaml:"min_difficulty"`
	Complex          bool    `yaml:"complex"` // Weight halved in low-performance mode
	BaseCount        int     `yaml:"base_count"`
	CountGrowth      float64 `yaml:"count_growth"`
	MinCount         int     `yaml:"min_count"`
	Speed            float64 `yaml:"speed"`
	SpeedGrowth      float64 `yaml:"speed_growth"`
	SpeedRange       float64 `yaml:"speed_range"` // Width of the random speed band
	Radius           float64 `yaml:"radius"`
	Spin             float64 `yaml:"spin"` // Rotation rate in rad/s
	AimChance        float64 `yaml:"aim_chance"`
	AimMinDifficulty float64 `yaml:"aim_min_difficulty"`
}

// Variant selects one of the two engine flavours.
type Variant string

const (
	VariantFlat  Variant = "flat"
	VariantDepth Variant = "depth"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values map to normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}

// Pattern returns the table entry with the given name.
func (c Config) Pattern(name string) (PatternConfig, bool) {
	for _, p := range c.Patterns {
		if p.Name == name {
			return p, true
		}
	}
	return PatternConfig{}, false
}
