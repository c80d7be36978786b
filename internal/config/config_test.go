package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := parse(defaultFallingSkyYAML)
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}

	def := DefaultFallingSkyConfig()
	if cfg.Timing != def.Timing {
		t.Errorf("timing = %+v, want %+v", cfg.Timing, def.Timing)
	}
	if cfg.Scoring != def.Scoring {
		t.Errorf("scoring = %+v, want %+v", cfg.Scoring, def.Scoring)
	}
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("difficulty = %+v, want %+v", cfg.Difficulty, def.Difficulty)
	}
	if len(cfg.Bonus.Tiers) != 3 || cfg.Bonus.Tiers["small"] != 21 {
		t.Errorf("tiers = %v", cfg.Bonus.Tiers)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallingsky.yaml")
	data := []byte("timing:\n  mercy_ticks: 3\nscoring:\n  win_score: 5000\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFallingSky(path)
	if err != nil {
		t.Fatalf("LoadFallingSky: %v", err)
	}
	if cfg.Timing.MercyTicks != 3 {
		t.Errorf("mercy_ticks = %d, want 3", cfg.Timing.MercyTicks)
	}
	if cfg.Scoring.WinScore != 5000 {
		t.Errorf("win_score = %d, want 5000", cfg.Scoring.WinScore)
	}
	if cfg.Timing.FallBaseMs != 1100 {
		t.Errorf("fall_base_ms = %d, want default 1100", cfg.Timing.FallBaseMs)
	}
	if len(cfg.Bonus.Tiers) != 3 {
		t.Errorf("tiers not defaulted: %v", cfg.Bonus.Tiers)
	}
}

func TestLoadReplacesTiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallingsky.yaml")
	data := []byte("bonus:\n  tiers:\n    only: 500\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFallingSky(path)
	if err != nil {
		t.Fatalf("LoadFallingSky: %v", err)
	}
	tiers := cfg.Bonus.SortedTiers()
	if len(tiers) != 1 || tiers[0].Name != "only" || tiers[0].Weight != 500 {
		t.Errorf("tiers = %+v, want only tier", tiers)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFallingSky(filepath.Join(dir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("timing: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFallingSky(bad)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("bad yaml error = %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("bonus:\n  min_level: 4\n  max_level: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFallingSky(invalid)
	if err == nil || !strings.Contains(err.Error(), "bonus: levels") {
		t.Errorf("invalid config error = %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultFallingSkyConfig()
	cfg.Timing.FallBaseMs = 0
	cfg.Scoring.Rounding = 0
	cfg.Bonus.Tiers = map[string]int{"huge": 2000}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"timing", "scoring", "huge"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}

	if err := DefaultFallingSkyConfig().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestSortedTiers(t *testing.T) {
	tiers := DefaultFallingSkyConfig().Bonus.SortedTiers()
	want := []string{"big", "mid", "small"}
	if len(tiers) != len(want) {
		t.Fatalf("got %d tiers", len(tiers))
	}
	for i, name := range want {
		if tiers[i].Name != name {
			t.Errorf("tier %d = %s, want %s", i, tiers[i].Name, name)
		}
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial int
		mercy   int
	}{
		{"", true, 0, 1},
		{DifficultyEasy, true, 1, 1},
		{DifficultyNormal, true, 5, 1},
		{DifficultyHard, true, 10, 0},
		{DifficultyFixed, false, 0, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultFallingSkyConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initial {
				t.Errorf("initial_level = %d, want %d", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if cfg.Timing.MercyTicks != tt.mercy {
				t.Errorf("mercy_ticks = %d, want %d", cfg.Timing.MercyTicks, tt.mercy)
			}
		})
	}

	if _, err := ParsePreset("impossible"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
}
