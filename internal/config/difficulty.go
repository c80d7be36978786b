package config

// DifficultyManager tracks the fall rate (level) and the lines left until the
// next level-up.
type DifficultyManager struct {
	cfg       DifficultyConfig
	timing    TimingConfig
	level     int
	untilNext int
}

// NewDifficultyManager creates a manager starting at startLevel. A positive
// InitialLevel in cfg overrides startLevel.
func NewDifficultyManager(cfg DifficultyConfig, timing TimingConfig, startLevel int) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg, timing: timing}
	d.Reset(startLevel)
	return d
}

// Reset restarts progression at startLevel.
func (d *DifficultyManager) Reset(startLevel int) {
	if d.cfg.InitialLevel > 0 {
		startLevel = d.cfg.InitialLevel
	}
	d.level = clamp(startLevel, 1, d.maxLevel())
	d.untilNext = d.cfg.LinesPerLevel
}

// IsEnabled returns whether level progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.LinesPerLevel > 0
}

// Level returns the current fall rate.
func (d *DifficultyManager) Level() int {
	return d.level
}

// LinesUntilNext returns the lines still needed for the next level, or 0
// once the level can no longer rise.
func (d *DifficultyManager) LinesUntilNext() int {
	if !d.IsEnabled() || d.level >= d.maxLevel() {
		return 0
	}
	return d.untilNext
}

// AddLines records cleared lines and reports whether the level went up.
// The counter resets on each level-up; surplus lines do not carry over.
func (d *DifficultyManager) AddLines(n int) bool {
	if !d.IsEnabled() || n <= 0 {
		return false
	}
	d.untilNext -= n
	if d.untilNext > 0 {
		return false
	}
	d.untilNext = d.cfg.LinesPerLevel
	if d.level >= d.maxLevel() {
		return false
	}
	d.level++
	return true
}

// FallInterval returns the milliseconds between gravity steps at the
// current level.
func (d *DifficultyManager) FallInterval() int {
	return FallInterval(d.timing, d.level)
}

// FallInterval returns the fall timer for a level:
// max(base - level*step, min).
func FallInterval(t TimingConfig, level int) int {
	ms := t.FallBaseMs - level*t.FallStepMs
	if ms < t.FallMinMs {
		ms = t.FallMinMs
	}
	return ms
}

func (d *DifficultyManager) maxLevel() int {
	if d.cfg.MaxLevel < 1 {
		return 1
	}
	return d.cfg.MaxLevel
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
