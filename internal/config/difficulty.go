package config

// Difficulty growth curves.
const (
	GrowthLog     = "log"     // Increment shrinks with 1/ln(d+e)
	GrowthStepped = "stepped" // Increment shrinks in steps by difficulty band
)

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the variant defaults.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = preset != DifficultyFixed

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Initial = 1
		cfg.Difficulty.Interval = 6
		cfg.Spawn.InitialDelay = 3
	case DifficultyHard:
		if cfg.Difficulty.Initial < 5 {
			cfg.Difficulty.Initial = 5
		}
		cfg.Difficulty.Interval = 4
		cfg.Spawn.InitialDelay = 1
	}
}

// ApplyVariant switches the flat defaults to the depth flavour: a playfield
// with depth, gated collision, stepped growth and a difficulty-scaled cap.
func ApplyVariant(cfg *Config, v Variant) {
	if v != VariantDepth {
		return
	}
	cfg.World.Depth = 200
	cfg.Player.SpawnGrace = 1.5
	cfg.Projectile.Cap = CapConfig{Base: 400, PerDifficulty: 25, Max: 800}
	cfg.Projectile.DepthJitter = 60
	cfg.Collision = CollisionConfig{
		Mode:        "gated",
		XYThreshold: 0.8,
		ZThreshold:  2,
		HitboxScale: 1,
	}
	cfg.Difficulty.Initial = 2
	cfg.Difficulty.Growth = GrowthStepped
}
