package pattern

import (
	"math"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/entity"
)

// Homing is the name of the actively tracking pattern, which the world caps
// separately.
const Homing = "homing"

type builder func(pc config.PatternConfig, ctx Context) []entity.Projectile

func (l *Library) builders() map[string]builder {
	return map[string]builder{
		"circular":       l.circular,
		"arc":            l.arc,
		"random":         l.scatter,
		"spiral":         l.spiral,
		"heart":          l.heart,
		"star":           l.star,
		"multiSpiral":    l.multiSpiral,
		Homing:           l.homing,
		"multiDirection": l.multiDirection,
	}
}

// Count returns the batch size of pc at the context's difficulty and
// population.
func (l *Library) Count(pc config.PatternConfig, ctx Context) int {
	factor := ReductionFactor(ctx.Live, ctx.Cap, l.spawn.Reduction.Threshold, l.spawn.Reduction.Slope)
	return ScaleCount(GrowCount(pc.BaseCount, pc.CountGrowth, ctx.Difficulty), factor, pc.MinCount)
}

func speed(pc config.PatternConfig, d float64) float64 {
	return pc.Speed + d*pc.SpeedGrowth
}

// logLevel is floor(ln(d+1)), the step used for structural growth.
func logLevel(d float64) int {
	return int(math.Floor(math.Log(math.Max(d, 0) + 1)))
}

func (l *Library) zone(ctx Context) SafeZone {
	return NewSafeZone(ctx.Player, ctx.Area, l.spawn.SafeZone.Ratio)
}

func (l *Library) topOrigin(ctx Context) core.Vec3 {
	return l.zone(ctx).PickOrigin(func() core.Vec3 {
		w := ctx.Area.Size().X
		return core.V2(ctx.Area.Min.X+l.rng.Float64()*w, ctx.Area.Min.Y+l.spawn.TopY)
	}, l.spawn.SafeZone.Retries)
}

func (l *Library) centerOrigin(ctx Context) core.Vec3 {
	return l.zone(ctx).PickOrigin(func() core.Vec3 {
		w := ctx.Area.Size().X
		x := ctx.Area.Center().X + (l.rng.Float64()-0.5)*w*0.5
		return core.V2(x, ctx.Area.Min.Y+l.spawn.CenterY)
	}, l.spawn.SafeZone.Retries)
}

// aim switches a whole batch to InitialAim with the configured chance.
func (l *Library) aim(pc config.PatternConfig, ctx Context, shots []entity.Projectile) []entity.Projectile {
	if pc.AimChance <= 0 || ctx.Difficulty <= pc.AimMinDifficulty {
		return shots
	}
	if l.rng.Float64() >= pc.AimChance {
		return shots
	}
	for i := range shots {
		shots[i].AimAt(ctx.Player)
	}
	return shots
}

func (l *Library) circular(pc config.PatternConfig, ctx Context) []entity.Projectile {
	shots := l.emitter.Radial(l.topOrigin(ctx), l.Count(pc, ctx), speed(pc, ctx.Difficulty), pc.Radius)
	return l.aim(pc, ctx, shots)
}

func (l *Library) arc(pc config.PatternConfig, ctx Context) []entity.Projectile {
	shots := l.emitter.Arc(l.topOrigin(ctx), l.Count(pc, ctx), math.Pi/4, 3*math.Pi/4, speed(pc, ctx.Difficulty), pc.Radius)
	return l.aim(pc, ctx, shots)
}

func (l *Library) scatter(pc config.PatternConfig, ctx Context) []entity.Projectile {
	s := speed(pc, ctx.Difficulty)
	shots := l.emitter.Scatter(l.topOrigin(ctx), l.Count(pc, ctx), s, s+pc.SpeedRange, pc.Radius)
	return l.aim(pc, ctx, shots)
}

func (l *Library) spiral(pc config.PatternConfig, ctx Context) []entity.Projectile {
	rotations := float64(2 + min(3, logLevel(ctx.Difficulty)))
	shots := l.emitter.Spiral(l.topOrigin(ctx), l.Count(pc, ctx), rotations, pc.Radius*0.5, speed(pc, ctx.Difficulty), pc.Radius)
	return l.aim(pc, ctx, shots)
}

func (l *Library) heart(pc config.PatternConfig, ctx Context) []entity.Projectile {
	scale := math.Min(3, 1+0.1*ctx.Difficulty)
	shots := l.emitter.Heart(l.centerOrigin(ctx), l.Count(pc, ctx), scale, speed(pc, ctx.Difficulty), pc.Radius)
	return l.aim(pc, ctx, shots)
}

func (l *Library) star(pc config.PatternConfig, ctx Context) []entity.Projectile {
	points := 5 + l.rng.Intn(3)
	size := 30 + 2*math.Min(ctx.Difficulty, 10)
	shots := l.emitter.Star(l.centerOrigin(ctx), l.Count(pc, ctx), points, size, speed(pc, ctx.Difficulty), pc.Radius)
	return l.aim(pc, ctx, shots)
}

func (l *Library) multiSpiral(pc config.PatternConfig, ctx Context) []entity.Projectile {
	arms := min(5, 2+logLevel(ctx.Difficulty))
	shots := l.emitter.MultiSpiral(l.topOrigin(ctx), arms, l.Count(pc, ctx), 0.15, 10, speed(pc, ctx.Difficulty), pc.Radius)
	for i := range shots {
		shots[i].Spin = pc.Spin
	}
	return l.aim(pc, ctx, shots)
}

// homing never emits more than three projectiles, nor more than the live
// homing cap leaves room for.
func (l *Library) homing(pc config.PatternConfig, ctx Context) []entity.Projectile {
	n := min(3, l.Count(pc, ctx), l.tracking.MaxHoming-ctx.LiveHoming)
	if n <= 0 {
		return nil
	}
	zone := l.zone(ctx)
	size := ctx.Area.Size()
	inset := l.spawn.EdgeInset
	origins := make([]core.Vec3, 0, n)
	for i := 0; i < n; i++ {
		origins = append(origins, zone.PickOrigin(func() core.Vec3 {
			if l.rng.Float64() < 0.5 {
				return core.V2(ctx.Area.Min.X+l.rng.Float64()*size.X, ctx.Area.Min.Y+inset)
			}
			y := ctx.Area.Min.Y + l.rng.Float64()*size.Y*0.5
			if l.rng.Float64() < 0.5 {
				return core.V2(ctx.Area.Min.X+inset, y)
			}
			return core.V2(ctx.Area.Max.X-inset, y)
		}, l.spawn.SafeZone.Retries))
	}
	return l.emitter.Homing(origins, ctx.Player, speed(pc, ctx.Difficulty), pc.Radius, l.tracking.HomingDuration)
}

// multiDirection fires fans from several edges, never from an edge the
// player is hugging while another is available.
func (l *Library) multiDirection(pc config.PatternConfig, ctx Context) []entity.Projectile {
	open := l.zone(ctx).OpenEdges()
	factor := ReductionFactor(ctx.Live, ctx.Cap, l.spawn.Reduction.Threshold, l.spawn.Reduction.Slope)
	dirs := min(len(open), ScaleCount(min(4, 2+logLevel(ctx.Difficulty)), factor, 1))
	edges := make([]Edge, 0, dirs)
	for _, i := range l.rng.Perm(len(open))[:dirs] {
		edges = append(edges, open[i])
	}
	shots := l.emitter.EdgeBurst(ctx.Area, edges, l.Count(pc, ctx), math.Pi/6, l.spawn.EdgeInset, speed(pc, ctx.Difficulty), pc.Radius)
	return l.aim(pc, ctx, shots)
}
