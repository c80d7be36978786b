package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallingsky/internal/platform/tui"
	"github.com/vovakirdan/fallingsky/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  fallingsky menu
  fallingsky menu --player ann
  fallingsky menu --fps 30 --db ./fallingsky.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyGameSettings(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()

	store := openStore(logger)
	start := loadProfile(store, logger)
	cfg := runtimeConfig(start)
	lastMode := ""

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoicePlay:
			game, err := registry.Create(menuResult.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				continue
			}
			lastMode = menuResult.GameID

			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			profile, err := tui.Run(game, store, cfg, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}
			cfg.Profile = profile
			continue

		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, lastMode, cfg.Profile.Name, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}

		case tui.ChoiceSettings:
			profile, goBack, err := tui.RunSettings(store, cfg.Profile, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			cfg.Profile = profile
			if goBack {
				continue
			}

		case tui.ChoiceProfile, tui.ChoiceControls:
			page := tui.PageProfile
			if menuResult.Choice == tui.ChoiceControls {
				page = tui.PageControls
			}
			goBack, err := tui.RunInfo(store, cfg.Profile, page, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
		}
		break
	}

	if store != nil {
		store.Close()
	}
	printSessionSummary(start, cfg.Profile)
}
