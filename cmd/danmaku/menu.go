package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/danmaku/internal/games/danmaku"
	"github.com/vovakirdan/danmaku/internal/platform/tui"
	"github.com/vovakirdan/danmaku/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the records board.
After a session ends you return to the menu.

Examples:
  danmaku menu
  danmaku menu --fps 30
  danmaku menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsRecords:
			goBack, err := tui.RunRecords(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case result.GameID != "":
			game, err := registry.Create(result.GameID)
			if err != nil {
				logger.Error("cannot create game", "variant", result.GameID, "error", err)
				continue
			}
			logger.Info("session start", "variant", result.GameID)
			if _, err := tui.Run(game, cfg); err != nil {
				logger.Error("session failed", "variant", result.GameID, "error", err)
			}
		}
	}
}
