// fallingsky is a falling-block puzzle for the terminal with bonus blocks
// that multiply your score.
//
// Usage:
//
//	fallingsky play [mode]         - Play arcade (default) or classic
//	fallingsky menu                - Start the main menu
//	fallingsky serve               - Start SSH server for remote play
//	fallingsky scores [mode]       - Show high scores
//	fallingsky profile [cmd]       - Show, reset or list player profiles
//	fallingsky list                - List available modes
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.fallingsky/fallingsky.db)
//	--player <name>    - Profile to play as (default: $USER)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fallingsky/internal/core"
	_ "github.com/vovakirdan/fallingsky/internal/games/fallingsky" // registers arcade and classic
	"github.com/vovakirdan/fallingsky/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagPlayer   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fallingsky",
	Short: "The Tragedy of the Falling Sky - a falling-block puzzle in your terminal",
	Long: `The Tragedy of the Falling Sky is a falling-block puzzle with bonus blocks.
Clear lines through bonus blocks to multiply your score; clear every bonus
block on the board to win the round and face more of them next time.

Available commands:
  play     - Play a mode directly
  menu     - Main menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  profile  - Show or reset your profile
  list     - Show all available modes

Examples:
  fallingsky play
  fallingsky play classic --difficulty hard
  fallingsky menu --player ann
  fallingsky serve --ssh :2222
  fallingsky scores arcade`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fallingsky/fallingsky.db", "Path to profiles and scores database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Profile to play as")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
}

// defaultPlayer names the profile after the login user.
func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return storage.DefaultPlayer
}

// newLogger returns the command's logger. Interactive commands own the
// terminal, so without --log-file they log to fallback.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, err
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "fallingsky",
		Level:           level,
	})
	return logger, closeFn, nil
}

// mustLogger is newLogger for commands that cannot continue without one.
func mustLogger(fallback io.Writer) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeFn
}

// openStore opens the database; play continues without it on failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	store.SetLogger(logger)
	return store
}

// loadProfile returns the player's saved profile, or defaults without a store.
func loadProfile(store *storage.Store, logger *log.Logger) core.Profile {
	if store == nil {
		return core.DefaultProfile(flagPlayer)
	}
	p, err := store.LoadProfile(flagPlayer)
	if err != nil {
		logger.Error("could not load profile", "player", flagPlayer, "err", err)
		return core.DefaultProfile(flagPlayer)
	}
	return p
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig(profile core.Profile) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Profile:  profile,
	}
}
