// danmaku is a terminal bullet-hell survival game.
//
// Usage:
//
//	danmaku list                - List available variants
//	danmaku play [variant]      - Play a variant
//	danmaku menu                - Pick a variant interactively
//	danmaku sim [variant]       - Run a headless session with an evasive bot
//	danmaku records [variant]   - Show the longest runs
//	danmaku board               - Browse runs interactively
//	danmaku config [variant]    - Print the resolved configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible sessions
//	--db <path>           - Set database path (default: ~/.danmaku/danmaku.db)
//	--config <path>       - Custom YAML overlay
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/danmaku/internal/games/danmaku"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "danmaku",
	Short: "Danmaku - survive a storm of bullets in your terminal",
	Long: `Danmaku is a terminal bullet-hell. Steer the ship through ever denser
projectile patterns and survive as long as you can.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  sim      - Headless session driven by a bot
  records  - Show the longest runs
  board    - Interactive records board
  config   - Print the resolved configuration

Examples:
  danmaku play
  danmaku play danmaku3d --difficulty hard
  danmaku sim --seed 7 --duration 120
  danmaku records danmaku`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		danmaku.SetConfigPath(flagConfig)
		danmaku.SetDifficultyPreset(flagDifficulty)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.danmaku/danmaku.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.danmaku/danmaku.log", "Log file used while the TUI owns the terminal")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(configCmd)
}
