package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start at the main menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game, pause or finish it and press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  t2048 menu
  t2048 menu --fps 30
  t2048 menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger("t2048")
	if err != nil {
		return err
	}

	store := openStore(cfg.Storage.DBPath, logger)
	if store != nil {
		defer store.Close()
	}

	rt := runtimeConfig(cfg)
	seeded := cmd.Flags().Changed("seed")

	// Menu loop
	for {
		result, err := tui.RunMenu(store, t2048.GameID, rt)
		if err != nil {
			return err
		}

		// Update config with any size changes
		rt = result.Config

		switch result.Choice {
		case tui.MenuChoiceScores:
			goBack, sbErr := tui.RunScoreboard(store, t2048.GameID, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}

		case tui.MenuChoicePlay:
			// A fixed --seed replays the same game every time
			if !seeded {
				rt.Seed = time.Now().UnixNano()
			}
			backToMenu, runErr := tui.Run(t2048.New(gameOptions(cfg)), store, rt, true)
			if runErr != nil {
				return fmt.Errorf("running game: %w", runErr)
			}
			if !backToMenu {
				return nil
			}

		default:
			return nil
		}
	}
}
