package pattern

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/entity"
)

// Context is the world state a pattern is built against.
type Context struct {
	Difficulty float64
	Live       int // Active projectiles
	Cap        int // Current projectile cap
	LiveHoming int // Active homing projectiles
	Player     core.Vec3
	Area       core.Bounds
}

// Pattern is a named, weighted projectile batch generator.
type Pattern struct {
	Name          string
	Weight        float64
	MinDifficulty float64
	Complex       bool // Weight is halved in low-performance mode
	Build         func(ctx Context) []entity.Projectile
}

// Library is the registry of named patterns.
type Library struct {
	emitter  *Emitter
	rng      *rand.Rand
	spawn    config.SpawnConfig
	tracking config.TrackingConfig
	jitter   float64
	logger   *log.Logger

	patterns map[string]Pattern
	names    []string
}

// NewLibrary builds the library described by cfg.Patterns. Every configured
// name must match a built-in shape.
func NewLibrary(cfg config.Config, rng *rand.Rand, logger *log.Logger) (*Library, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Library{
		emitter:  NewEmitter(rng, core.BulletPalette, cfg.Projectile.MinRadius, cfg.Projectile.TrailChance),
		rng:      rng,
		spawn:    cfg.Spawn,
		tracking: cfg.Tracking,
		jitter:   cfg.Projectile.DepthJitter,
		logger:   logger,
		patterns: make(map[string]Pattern),
	}

	builders := l.builders()
	for _, pc := range cfg.Patterns {
		b, ok := builders[pc.Name]
		if !ok {
			return nil, fmt.Errorf("pattern: no shape for %q", pc.Name)
		}
		err := l.Register(Pattern{
			Name:          pc.Name,
			Weight:        pc.Weight,
			MinDifficulty: pc.MinDifficulty,
			Complex:       pc.Complex,
			Build:         func(ctx Context) []entity.Projectile { return b(pc, ctx) },
		})
		if err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Register adds a pattern. Names must be unique.
func (l *Library) Register(p Pattern) error {
	if p.Name == "" || p.Build == nil {
		return fmt.Errorf("pattern: incomplete pattern %q", p.Name)
	}
	if _, exists := l.patterns[p.Name]; exists {
		return fmt.Errorf("pattern: %q already registered", p.Name)
	}
	l.patterns[p.Name] = p
	l.names = append(l.names, p.Name)
	return nil
}

// Lookup returns the pattern registered under name.
func (l *Library) Lookup(name string) (Pattern, bool) {
	p, ok := l.patterns[name]
	return p, ok
}

// Names returns pattern names in registration order.
func (l *Library) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Patterns returns every pattern in registration order.
func (l *Library) Patterns() []Pattern {
	out := make([]Pattern, 0, len(l.names))
	for _, n := range l.names {
		out = append(out, l.patterns[n])
	}
	return out
}

// Emit builds one batch of the named pattern. An unknown name is logged and
// produces no projectiles.
func (l *Library) Emit(name string, ctx Context) []entity.Projectile {
	p, ok := l.patterns[name]
	if !ok {
		l.logger.Warn("unknown pattern", "name", name)
		return nil
	}
	shots := p.Build(ctx)
	if ctx.Area.Size().Z > 0 {
		z := l.depth(ctx.Area)
		for i := range shots {
			shots[i].Pos.Z = z
		}
	}
	return shots
}

// depth picks the spawn plane of a batch within the jitter band around
// mid-depth.
func (l *Library) depth(area core.Bounds) float64 {
	c := area.Center().Z
	if l.jitter <= 0 {
		return c
	}
	return core.ClampF(c+(l.rng.Float64()-0.5)*l.jitter, area.Min.Z, area.Max.Z)
}
