package core

import "fmt"

// Profile is the per-player settings record read at session start and
// written back at game over.
type Profile struct {
	Name               string `json:"name" yaml:"name"`
	Wins               int    `json:"wins" yaml:"wins"`
	Losses             int    `json:"losses" yaml:"losses"`
	Width              int    `json:"width" yaml:"width"`
	Height             int    `json:"height" yaml:"height"`
	TotalScore         int    `json:"total_score" yaml:"total_score"`
	BestScore          int    `json:"best_score" yaml:"best_score"`
	Nexts              int    `json:"nexts" yaml:"nexts"`
	BlockSize          int    `json:"blocksize" yaml:"blocksize"`
	FallRate           int    `json:"fallrate" yaml:"fallrate"`
	BonusBlockRate     int    `json:"bonus_block_rate" yaml:"bonus_block_rate"`
	ShowShapeSpawnRate bool   `json:"show_shape_spawn_rate" yaml:"show_shape_spawn_rate"`
}

// Limits applied by Normalize.
const (
	MinBoardWidth  = 4
	MinBoardHeight = 8
	MaxNexts       = 6
	MaxBlockSize   = 12
	MaxFallRate    = 21
)

// DefaultProfile returns a fresh profile for the named player.
func DefaultProfile(name string) Profile {
	return Profile{
		Name:      name,
		Width:     10,
		Height:    25,
		Nexts:     4,
		BlockSize: 4,
		FallRate:  1,
	}
}

// IsZero reports whether p is the zero value.
func (p Profile) IsZero() bool {
	return p == Profile{}
}

// Normalize clamps out-of-range fields back into their legal ranges.
func (p Profile) Normalize() Profile {
	def := DefaultProfile(p.Name)
	if p.Width < MinBoardWidth {
		p.Width = def.Width
	}
	if p.Height < MinBoardHeight {
		p.Height = def.Height
	}
	p.Nexts = Clamp(p.Nexts, 0, MaxNexts)
	if p.BlockSize < 1 {
		p.BlockSize = def.BlockSize
	}
	p.BlockSize = Min(p.BlockSize, MaxBlockSize)
	p.FallRate = Clamp(p.FallRate, 1, MaxFallRate)
	p.BonusBlockRate = Max(p.BonusBlockRate, 0)
	p.Wins = Max(p.Wins, 0)
	p.Losses = Max(p.Losses, 0)
	p.TotalScore = Max(p.TotalScore, 0)
	p.BestScore = Max(p.BestScore, 0)
	return p
}

// Validate reports the first field that is out of range.
func (p Profile) Validate() error {
	switch {
	case p.Width < MinBoardWidth:
		return fmt.Errorf("profile: width %d below minimum %d", p.Width, MinBoardWidth)
	case p.Height < MinBoardHeight:
		return fmt.Errorf("profile: height %d below minimum %d", p.Height, MinBoardHeight)
	case p.Nexts < 0 || p.Nexts > MaxNexts:
		return fmt.Errorf("profile: nexts %d out of range [0,%d]", p.Nexts, MaxNexts)
	case p.BlockSize < 1 || p.BlockSize > MaxBlockSize:
		return fmt.Errorf("profile: blocksize %d out of range [1,%d]", p.BlockSize, MaxBlockSize)
	case p.FallRate < 1 || p.FallRate > MaxFallRate:
		return fmt.Errorf("profile: fallrate %d out of range [1,%d]", p.FallRate, MaxFallRate)
	case p.BonusBlockRate < 0:
		return fmt.Errorf("profile: bonus_block_rate %d is negative", p.BonusBlockRate)
	}
	return nil
}
