package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "danmaku.yaml"

// Load loads the engine configuration for a variant. The embedded defaults
// (or the hardcoded ones if the embed cannot be parsed) are adjusted for the
// variant and then overlaid with the first config file found, so a file only
// needs the values it changes.
// Search order: customPath -> ~/.danmaku/configs/danmaku.yaml -> ./configs/danmaku.yaml
func Load(customPath string, v Variant) (Config, error) {
	base, err := decode(defaultDanmakuYAML, DefaultConfig())
	if err != nil {
		base = DefaultConfig()
	}
	ApplyVariant(&base, v)

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data, base)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := decode(data, base); err == nil {
				return cfg, nil
			}
		}
	}

	return base, nil
}

// Parse decodes YAML on top of the flat defaults.
func Parse(data []byte) (Config, error) {
	return decode(data, DefaultConfig())
}

func decode(data []byte, base Config) (Config, error) {
	cfg := base
	// Slices are replaced, not merged, by the decoder; copy so base stays intact.
	cfg.Patterns = append([]PatternConfig(nil), base.Patterns...)
	cfg.Difficulty.Steps = append([]StepConfig(nil), base.Difficulty.Steps...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes a config as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Resolve loads the config for a variant, applies the difficulty preset and
// validates the result.
func Resolve(customPath string, v Variant, preset DifficultyPreset) (Config, error) {
	cfg, err := Load(customPath, v)
	if err != nil {
		return Config{}, err
	}
	ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".danmaku", "configs", filename)
}
