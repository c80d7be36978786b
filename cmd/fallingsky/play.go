package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallingsky/internal/config"
	"github.com/vovakirdan/fallingsky/internal/core"
	"github.com/vovakirdan/fallingsky/internal/games/fallingsky"
	"github.com/vovakirdan/fallingsky/internal/platform/tui"
	"github.com/vovakirdan/fallingsky/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing arcade (the default) or classic mode.

Arcade places bonus blocks on the board; clear them all to win and face one
more next round. Classic has no bonus blocks; pass the winning score to win.

Controls:
  Left/Right, A/D   - Move
  Down, S           - Soft drop
  Up, W, E          - Rotate clockwise
  Q, Z              - Rotate counter-clockwise
  X, C, H           - Hold
  Space             - Slam
  P                 - Pause
  R                 - Play again (after game over)
  Esc/Ctrl+C        - Quit

Difficulty options:
  easy   - Start at level 1
  normal - Start at level 5
  hard   - Start at level 10 with less time before a piece locks
  fixed  - Stay at the profile's starting level

Examples:
  fallingsky play
  fallingsky play classic
  fallingsky play --difficulty hard
  fallingsky play --config ./my-fallingsky.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameSettings hands --config and --difficulty to new games.
func applyGameSettings() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	fallingsky.SetConfigPath(flagConfig)
	fallingsky.SetDifficultyPreset(preset)
	return nil
}

func runPlay(_ *cobra.Command, args []string) {
	mode := string(fallingsky.ModeArcade)
	if len(args) > 0 {
		mode = args[0]
	}

	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'fallingsky list' to see available modes.")
		os.Exit(1)
	}
	if err := applyGameSettings(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	profile := loadProfile(store, logger)
	cfg := runtimeConfig(profile)

	final, runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	printSessionSummary(profile, final)
}

// printSessionSummary reports what changed on the profile this session.
func printSessionSummary(before, after core.Profile) {
	wins := after.Wins - before.Wins
	losses := after.Losses - before.Losses
	if wins+losses == 0 {
		return
	}
	fmt.Printf("%s: %d won, %d lost this session (career %d-%d, best %d)\n",
		after.Name, wins, losses, after.Wins, after.Losses, after.BestScore)
}
