package config

import "testing"

func TestDifficultyStartLevel(t *testing.T) {
	def := DefaultFallingSkyConfig()

	d := NewDifficultyManager(def.Difficulty, def.Timing, 4)
	if d.Level() != 4 {
		t.Errorf("level = %d, want profile start 4", d.Level())
	}

	cfg := def.Difficulty
	cfg.InitialLevel = 10
	d = NewDifficultyManager(cfg, def.Timing, 4)
	if d.Level() != 10 {
		t.Errorf("level = %d, want preset start 10", d.Level())
	}

	d = NewDifficultyManager(def.Difficulty, def.Timing, 99)
	if d.Level() != def.Difficulty.MaxLevel {
		t.Errorf("level = %d, want clamped %d", d.Level(), def.Difficulty.MaxLevel)
	}
}

func TestDifficultyAddLines(t *testing.T) {
	def := DefaultFallingSkyConfig()
	d := NewDifficultyManager(def.Difficulty, def.Timing, 1)

	if d.AddLines(15) {
		t.Fatal("level up before 16 lines")
	}
	if d.LinesUntilNext() != 1 {
		t.Errorf("until next = %d, want 1", d.LinesUntilNext())
	}
	// Surplus lines are dropped on level up.
	if !d.AddLines(4) {
		t.Fatal("expected level up")
	}
	if d.Level() != 2 || d.LinesUntilNext() != 16 {
		t.Errorf("level %d until %d, want 2 and 16", d.Level(), d.LinesUntilNext())
	}

	d.Reset(1)
	if d.Level() != 1 || d.LinesUntilNext() != 16 {
		t.Errorf("after reset: level %d until %d", d.Level(), d.LinesUntilNext())
	}
}

func TestDifficultyCapsAtMax(t *testing.T) {
	def := DefaultFallingSkyConfig()
	d := NewDifficultyManager(def.Difficulty, def.Timing, def.Difficulty.MaxLevel)
	if d.AddLines(100) {
		t.Error("level up past max")
	}
	if d.Level() != def.Difficulty.MaxLevel {
		t.Errorf("level = %d", d.Level())
	}
	if d.LinesUntilNext() != 0 {
		t.Errorf("until next = %d at max level, want 0", d.LinesUntilNext())
	}
}

func TestDifficultyDisabled(t *testing.T) {
	def := DefaultFallingSkyConfig()
	cfg := def.Difficulty
	cfg.Enabled = false
	d := NewDifficultyManager(cfg, def.Timing, 3)

	if d.IsEnabled() {
		t.Error("expected disabled")
	}
	if d.AddLines(50) || d.Level() != 3 {
		t.Errorf("disabled manager changed level to %d", d.Level())
	}
	if d.LinesUntilNext() != 0 {
		t.Errorf("until next = %d while disabled, want 0", d.LinesUntilNext())
	}
}

func TestFallInterval(t *testing.T) {
	timing := DefaultFallingSkyConfig().Timing
	tests := []struct {
		level int
		want  int
	}{
		{0, 1100},
		{1, 1050},
		{10, 600},
		{21, 65},
	}
	for _, tt := range tests {
		if got := FallInterval(timing, tt.level); got != tt.want {
			t.Errorf("FallInterval(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}
