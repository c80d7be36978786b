package fallingsky

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownBlockType is returned when a block type name is not recognised.
var ErrUnknownBlockType = errors.New("unknown block type")

// BlockType tags a cell: one of the seven shape letters, a wall, a shadow,
// or a bonus block of level 1 to 5.
type BlockType uint8

const (
	BlockNone BlockType = iota
	BlockI
	BlockJ
	BlockL
	BlockO
	BlockS
	BlockT
	BlockZ
	BlockWall
	BlockShadow
	BlockBonus1
	BlockBonus2
	BlockBonus3
	BlockBonus4
	BlockBonus5
)

// MaxBonusLevel is the highest bonus block level.
const MaxBonusLevel = 5

var blockNames = [...]string{
	BlockNone:   "",
	BlockI:      "i",
	BlockJ:      "j",
	BlockL:      "l",
	BlockO:      "o",
	BlockS:      "s",
	BlockT:      "t",
	BlockZ:      "z",
	BlockWall:   "wall",
	BlockShadow: "shadow",
	BlockBonus1: "bonus_1",
	BlockBonus2: "bonus_2",
	BlockBonus3: "bonus_3",
	BlockBonus4: "bonus_4",
	BlockBonus5: "bonus_5",
}

// String returns the type's name as used in configs and logs.
func (t BlockType) String() string {
	if int(t) < len(blockNames) {
		return blockNames[t]
	}
	return "block(" + strconv.Itoa(int(t)) + ")"
}

// ParseBlockType converts a name like "t", "wall" or "bonus_3" to a type.
func ParseBlockType(name string) (BlockType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range blockNames {
		if n != "" && n == name {
			return BlockType(i), nil
		}
	}
	return BlockNone, fmt.Errorf("fallingsky: %w %q", ErrUnknownBlockType, name)
}

// BonusBlockType returns the type for a bonus level in [1, MaxBonusLevel].
func BonusBlockType(level int) (BlockType, error) {
	if level < 1 || level > MaxBonusLevel {
		return BlockNone, fmt.Errorf("fallingsky: %w: bonus level %d", ErrUnknownBlockType, level)
	}
	return BlockBonus1 + BlockType(level-1), nil
}

// IsBonus reports whether t is one of the bonus types.
func (t BlockType) IsBonus() bool {
	return t >= BlockBonus1 && t <= BlockBonus5
}

// IsShape reports whether t is one of the seven piece types.
func (t BlockType) IsShape() bool {
	return t >= BlockI && t <= BlockZ
}

// Block is a settled cell on the board.
type Block struct {
	Loc     Coord
	Type    BlockType
	Bonus   int // Bonus level, 0 for ordinary blocks
	Visible bool
}

// NewBonusBlock creates a visible bonus block of the given level.
func NewBonusBlock(loc Coord, level int) (Block, error) {
	t, err := BonusBlockType(level)
	if err != nil {
		return Block{}, err
	}
	return Block{Loc: loc, Type: t, Bonus: level, Visible: true}, nil
}

// ExplodeKind says what is left after a block explodes.
type ExplodeKind int

const (
	// Removed means the cell is empty afterwards.
	Removed ExplodeKind = iota
	// Decayed means a bonus block of a lower level takes the cell.
	Decayed
)

// ExplodeResult is the outcome of Block.Explode.
type ExplodeResult struct {
	Kind ExplodeKind
	// Multiplier is added to the score's last increment. Zero for ordinary
	// blocks.
	Multiplier int
	// Level is the replacement's bonus level when Kind is Decayed.
	Level int
}

// Explode consumes the block. A bonus block multiplies the last score
// increment by its level and decays one level; at level 1 it is gone.
func (b Block) Explode() ExplodeResult {
	if b.Bonus <= 0 {
		return ExplodeResult{Kind: Removed}
	}
	next := b.Bonus - 1
	if next == 0 {
		return ExplodeResult{Kind: Removed, Multiplier: b.Bonus}
	}
	return ExplodeResult{Kind: Decayed, Multiplier: b.Bonus, Level: next}
}
