package scheduler

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/pattern"
)

// Entry is one drawable pattern in the current pool.
type Entry struct {
	Name   string
	Weight float64 // Normalized; the pool sums to 1
}

// Load is the projectile population the scheduler reacts to.
type Load struct {
	Live int
	Cap  int
}

func (l Load) ratio() float64 {
	if l.Cap <= 0 {
		return 1
	}
	return float64(l.Live) / float64(l.Cap)
}

// Result is what happened during one Update.
type Result struct {
	Spawns     []string
	Increments []Increment
}

// Scheduler owns the difficulty timer, the spawn timer and the pattern pool.
// It is only advanced while a session is playing.
type Scheduler struct {
	spawn    config.SpawnConfig
	cfg      config.DifficultyConfig
	patterns []pattern.Pattern
	rng      *rand.Rand

	difficulty float64
	diffTimer  float64
	spawnTimer float64
	nextSpawn  float64
	lowPerf    bool
	pool       []Entry
}

// New creates a scheduler over the given patterns. Call Reset before use.
func New(spawn config.SpawnConfig, cfg config.DifficultyConfig, patterns []pattern.Pattern, rng *rand.Rand) *Scheduler {
	s := &Scheduler{
		spawn:    spawn,
		cfg:      cfg,
		patterns: patterns,
		rng:      rng,
	}
	s.Reset()
	return s
}

// Reset returns to the initial difficulty with the first spawn after the
// initial delay.
func (s *Scheduler) Reset() {
	s.difficulty = s.cfg.Initial
	s.diffTimer = 0
	s.spawnTimer = 0
	s.nextSpawn = s.spawn.InitialDelay
	s.rebuildPool()
}

// Difficulty returns the current difficulty scalar.
func (s *Scheduler) Difficulty() float64 {
	return s.difficulty
}

// DifficultyTimer returns seconds accumulated toward the next increment.
func (s *Scheduler) DifficultyTimer() float64 {
	return s.diffTimer
}

// NextSpawn returns the current spawn interval in seconds.
func (s *Scheduler) NextSpawn() float64 {
	return s.nextSpawn
}

// Pool returns a copy of the current weighted pool.
func (s *Scheduler) Pool() []Entry {
	out := make([]Entry, len(s.pool))
	copy(out, s.pool)
	return out
}

// SetLowPerformance halves the weight of complex patterns while on.
func (s *Scheduler) SetLowPerformance(on bool) {
	if s.lowPerf == on {
		return
	}
	s.lowPerf = on
	s.rebuildPool()
}

func (s *Scheduler) rebuildPool() {
	s.pool = s.pool[:0]
	var total float64
	for _, p := range s.patterns {
		if p.MinDifficulty > s.difficulty || p.Weight <= 0 {
			continue
		}
		w := p.Weight
		if s.lowPerf && p.Complex {
			w /= 2
		}
		s.pool = append(s.pool, Entry{Name: p.Name, Weight: w})
		total += w
	}
	for i := range s.pool {
		s.pool[i].Weight /= total
	}
}

// Update advances both timers by dt. allow filters the draw; patterns it
// rejects are excluded from this tick's pool.
func (s *Scheduler) Update(dt float64, load Load, allow func(name string) bool) Result {
	var res Result

	if s.cfg.Enabled {
		s.diffTimer += dt
		if core.Reached(s.diffTimer, s.cfg.Interval) {
			s.diffTimer = 0
			if s.difficulty < s.cfg.Ceiling {
				from := s.difficulty
				s.difficulty = NextDifficulty(s.cfg, s.difficulty)
				s.rebuildPool()
				res.Increments = append(res.Increments, Increment{From: from, To: s.difficulty})
			}
		}
	}

	s.spawnTimer += dt
	if !core.Reached(s.spawnTimer, s.nextSpawn) {
		return res
	}
	s.spawnTimer = 0
	s.nextSpawn = s.interval(load)

	if name, ok := s.Pick(allow); ok {
		res.Spawns = append(res.Spawns, name)
	}
	for len(res.Spawns) > 0 && len(res.Spawns) < s.spawn.Multi.MaxPerTick {
		if s.rng.Float64() >= s.MultiChance() {
			break
		}
		name, ok := s.Pick(allow)
		if !ok {
			break
		}
		res.Spawns = append(res.Spawns, name)
	}
	return res
}

// MultiChance is the probability of each extra pattern in one spawn tick.
func (s *Scheduler) MultiChance() float64 {
	m := s.spawn.Multi
	if s.difficulty <= m.MinDifficulty {
		return 0
	}
	return math.Min(m.MaxChance, (s.difficulty-m.MinDifficulty)*m.ChancePerLevel)
}

// interval draws the next spawn interval from the cadence range, stretched
// near the cap and never shorter than the absolute floor.
func (s *Scheduler) interval(load Load) float64 {
	lo, hi := Cadence(s.spawn.Cadence, s.difficulty)
	base := lo + s.rng.Float64()*(hi-lo)
	base *= Backoff(s.spawn.Backoff, load.ratio())
	return math.Max(s.spawn.MinInterval, base)
}

// Pick draws one pattern name by weight among the entries allow accepts.
func (s *Scheduler) Pick(allow func(name string) bool) (string, bool) {
	var total float64
	for _, e := range s.pool {
		if allow == nil || allow(e.Name) {
			total += e.Weight
		}
	}
	if total <= 0 {
		return "", false
	}
	r := s.rng.Float64() * total
	var last string
	for _, e := range s.pool {
		if allow != nil && !allow(e.Name) {
			continue
		}
		last = e.Name
		if r < e.Weight {
			return e.Name, true
		}
		r -= e.Weight
	}
	return last, true
}
