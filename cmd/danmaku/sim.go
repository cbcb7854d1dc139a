package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/games/danmaku"
	"github.com/vovakirdan/danmaku/internal/storage"
	"github.com/vovakirdan/danmaku/internal/world"
)

var (
	flagDuration float64
	flagStep     time.Duration
	flagIdle     bool
	flagRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a headless session driven by an evasive bot",
	Long: `Run the simulation without a terminal UI. A simple bot steers away from
nearby projectiles until it is hit or the duration runs out. Identical seeds
replay identically.

Examples:
  danmaku sim --seed 7
  danmaku sim danmaku3d --duration 300 --log-level debug
  danmaku sim --idle --step 10ms
  danmaku sim --record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagDuration, "duration", 120, "Simulated seconds before stopping")
	simCmd.Flags().DurationVar(&flagStep, "step", time.Second/60, "Simulated time per tick")
	simCmd.Flags().BoolVar(&flagIdle, "idle", false, "Keep the ship still instead of evading")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the run in the runs database")
}

// simResult summarizes a headless session.
type simResult struct {
	Survival   float64
	Difficulty float64
	Ticks      int
	PeakLive   int
	Hit        bool
	NewRecord  bool
}

func runSim(_ *cobra.Command, args []string) error {
	if flagStep <= 0 {
		return fmt.Errorf("--step must be positive, got %s", flagStep)
	}
	v, err := variantOf(args)
	if err != nil {
		return err
	}
	id := danmaku.IDFlat
	if v == config.VariantDepth {
		id = danmaku.IDDepth
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(flagConfig, v, config.ParsePreset(flagDifficulty))
	if err != nil {
		return err
	}

	var records world.Records
	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		records = storage.NewBestTimes(store, id)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, err := world.New(cfg, seed, records, logger)
	if err != nil {
		return err
	}
	if bt, ok := records.(*storage.BestTimes); ok {
		bt.Difficulty = w.Difficulty
	}

	logger.Info("sim start", "variant", id, "seed", seed, "duration", flagDuration, "step", flagStep)
	start := time.Now()
	res := simulate(w, flagStep.Seconds(), flagDuration, !flagIdle, func(s world.Snapshot) {
		logger.Info("sim progress",
			"time", fmt.Sprintf("%.0fs", s.SurvivalTime),
			"difficulty", fmt.Sprintf("%.2f", s.Difficulty),
			"projectiles", len(s.Projectiles),
			"cap", s.ProjectileCap,
		)
	})

	outcome := "timeout"
	if res.Hit {
		outcome = "hit"
	}
	fmt.Printf("%s seed=%d outcome=%s survived=%.2fs difficulty=%.2f ticks=%d peak=%d wall=%s\n",
		id, seed, outcome, res.Survival, res.Difficulty, res.Ticks, res.PeakLive, time.Since(start).Round(time.Millisecond))
	if res.NewRecord {
		fmt.Println("New record!")
	}
	return nil
}

// simulate runs w from StartGame until the ship is hit or duration seconds
// have been simulated. progress is called every ten simulated seconds.
func simulate(w *world.World, dt, duration float64, evade bool, progress func(world.Snapshot)) simResult {
	bot := newEvader()
	w.StartGame()
	snap := w.Snapshot()
	home := snap.Player.Pos

	var res simResult
	nextReport := 10.0
	for snap.State == core.StatePlaying && snap.SurvivalTime < duration {
		if evade {
			w.SetPlayerVelocity(bot.Direction(snap, home))
		}
		snap = w.Update(dt)
		res.Ticks++
		res.PeakLive = max(res.PeakLive, len(snap.Projectiles))

		if progress != nil && snap.SurvivalTime >= nextReport {
			progress(snap)
			nextReport += 10
		}
	}

	res.Survival = snap.SurvivalTime
	res.Difficulty = snap.Difficulty
	res.Hit = snap.State == core.StateGameOver
	res.NewRecord = snap.NewRecord
	return res
}
