package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fallingsky/internal/storage"
)

var flagAllProfiles bool

var profileCmd = &cobra.Command{
	Use:   "profile [show|reset|list]",
	Short: "Show or reset a player profile",
	Long: `Show the player's profile (settings and career totals) as YAML,
reset it to defaults, or list every saved profile.

The profile to use is picked with the global --player flag.

Examples:
  fallingsky profile
  fallingsky profile show --player ann
  fallingsky profile reset
  fallingsky profile reset --all
  fallingsky profile list`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"show", "reset", "list"},
	Run:       runProfile,
}

func init() {
	profileCmd.Flags().BoolVar(&flagAllProfiles, "all", false, "With reset: delete every profile")
}

func runProfile(_ *cobra.Command, args []string) {
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch action {
	case "show":
		err = showProfile(store)
	case "reset":
		err = resetProfile(store)
	case "list":
		err = listProfiles(store)
	default:
		err = fmt.Errorf("unknown action %q (want show, reset or list)", action)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showProfile(store *storage.Store) error {
	p, err := store.LoadProfile(flagPlayer)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("cannot encode profile: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func resetProfile(store *storage.Store) error {
	if flagAllProfiles {
		if err := store.ResetProfiles(); err != nil {
			return err
		}
		fmt.Println("All profiles reset.")
		return nil
	}
	if err := store.ResetProfile(flagPlayer); err != nil {
		return err
	}
	fmt.Printf("Profile %q reset to defaults.\n", flagPlayer)
	return nil
}

func listProfiles(store *storage.Store) error {
	names, err := store.ListProfiles()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No profiles saved yet.")
		return nil
	}
	for _, name := range names {
		marker := " "
		if name == flagPlayer {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, name)
	}
	return nil
}
