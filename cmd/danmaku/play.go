package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/games/danmaku"
	"github.com/vovakirdan/danmaku/internal/platform/tui"
	"github.com/vovakirdan/danmaku/internal/registry"
	"github.com/vovakirdan/danmaku/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: danmaku).

Controls:
  Arrows/WASD - Move (diagonals allowed)
  Enter/Space - Start
  P/Esc       - Pause
  R           - Restart (after game over)
  F2          - Toggle debug mode
  I           - Toggle invincibility (debug mode only, run is not recorded)
  Ctrl+S      - Screenshot
  ?           - Full help
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower growth, lower ceiling
  normal - Default progression
  hard   - Starts higher, grows faster
  fixed  - No progression

Examples:
  danmaku play
  danmaku play danmaku3d
  danmaku play --difficulty hard
  danmaku play --config ./my-danmaku.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	id := danmaku.IDFlat
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q, run 'danmaku list' to see available variants", id)
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	danmaku.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
		danmaku.SetRecordStore(store)
	}

	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	logger.Info("session start", "variant", id, "seed", flagSeed, "difficulty", flagDifficulty)
	state, err := tui.Run(game, runtimeConfig())
	if err != nil {
		return fmt.Errorf("running %s: %w", id, err)
	}

	printSummary(game.Title(), state)
	return nil
}

// runtimeConfig builds the host configuration from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the runs database. Sessions still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func printSummary(title string, st core.GameState) {
	if st.SurvivalTime <= 0 {
		return
	}
	fmt.Printf("%s: survived %.1fs, difficulty %.2f, best %.1fs\n",
		title, st.SurvivalTime, st.Difficulty, st.BestTime)
	if st.NewRecord {
		fmt.Println("New record!")
	}
}
