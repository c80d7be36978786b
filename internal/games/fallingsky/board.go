package fallingsky

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/fallingsky/internal/config"
)

// ErrPieceFalling is returned by Settle for a piece that has not locked.
var ErrPieceFalling = errors.New("fallingsky: cannot settle a falling piece")

// Board holds the settled blocks and walls of one session, plus the state
// that is reset with it: spawn history, bonus index and level progression.
type Board struct {
	geo Geometry
	cfg config.FallingSkyConfig
	rng *rand.Rand

	cells *intmap.Map[CoordKey, Block]
	walls *intmap.Map[CoordKey, struct{}]
	// bonus indexes the live bonus blocks in cells.
	bonus  *intmap.Map[CoordKey, struct{}]
	layout Walls

	history    History
	levels     *config.DifficultyManager
	startLevel int
	bonusRate  int
	lines      int
	active     bool

	events []Event
}

// NewBoard creates an empty board. Call Reset before play.
func NewBoard(geo Geometry, cfg config.FallingSkyConfig, rng *rand.Rand, startLevel, bonusRate int) *Board {
	size := geo.Width * geo.Height
	return &Board{
		geo:        geo,
		cfg:        cfg,
		rng:        rng,
		cells:      intmap.New[CoordKey, Block](size),
		walls:      intmap.New[CoordKey, struct{}](2*geo.BlocksHigh + geo.Width + 2),
		bonus:      intmap.New[CoordKey, struct{}](16),
		levels:     config.NewDifficultyManager(cfg.Difficulty, cfg.Timing, startLevel),
		startLevel: startLevel,
		bonusRate:  bonusRate,
	}
}

// Reset clears every block without bonus multipliers, lays the walls, zeroes
// the spawn history and level progression and places the bonus blocks.
func (b *Board) Reset() {
	b.cells.Clear()
	b.bonus.Clear()
	b.walls.Clear()

	b.layout = ArcadeWalls(b.geo.ResX, b.geo.ResY, b.geo.BlockSize, b.geo.Width, b.geo.Height)
	for _, c := range b.layout.All {
		b.walls.Put(c.Key(), struct{}{})
	}

	b.history.Reset()
	b.levels.Reset(b.startLevel)
	b.lines = 0
	b.active = true
	b.spawnBonusBlocks(b.bonusRate)
}

// Geometry returns the board layout.
func (b *Board) Geometry() Geometry { return b.geo }

// Active reports whether the round is still live. A piece that cannot spawn
// turns it off.
func (b *Board) Active() bool { return b.active }

// Deactivate ends the round.
func (b *Board) Deactivate() { b.active = false }

// Lines returns the lines cleared since the last reset.
func (b *Board) Lines() int { return b.lines }

// Level returns the current fall rate.
func (b *Board) Level() int { return b.levels.Level() }

// LinesUntilNextLevel returns how many lines remain before the next level,
// or 0 when the level is fixed or capped.
func (b *Board) LinesUntilNextLevel() int { return b.levels.LinesUntilNext() }

// FallInterval returns the gravity timer for new pieces.
func (b *Board) FallInterval() int { return b.levels.FallInterval() }

// History returns the shape spawn counts.
func (b *Board) History() History { return b.history }

// BonusRate returns the number of bonus blocks placed on reset.
func (b *Board) BonusRate() int { return b.bonusRate }

// SetBonusRate changes the bonus block count for the next reset.
func (b *Board) SetBonusRate(n int) {
	if n < 0 {
		n = 0
	}
	b.bonusRate = n
}

// Occupied reports whether a piece may not enter c.
func (b *Board) Occupied(c Coord) bool {
	k := c.Key()
	return b.walls.Has(k) || b.cells.Has(k)
}

// IsWall reports whether c is part of the wall.
func (b *Board) IsWall(c Coord) bool {
	return b.walls.Has(c.Key())
}

// BlockAt returns the settled block at c.
func (b *Board) BlockAt(c Coord) (Block, bool) {
	return b.cells.Get(c.Key())
}

// Walls returns the wall layout laid by the last reset.
func (b *Board) Walls() Walls { return b.layout }

// Blocks returns the settled blocks ordered top to bottom, left to right.
func (b *Board) Blocks() []Block {
	out := make([]Block, 0, b.cells.Len())
	b.cells.ForEach(func(_ CoordKey, blk Block) bool {
		out = append(out, blk)
		return true
	})
	sortBlocks(out)
	return out
}

// BonusCount returns the number of live bonus blocks.
func (b *Board) BonusCount() int { return b.bonus.Len() }

// BonusPoints returns the sum of the live bonus blocks' levels.
func (b *Board) BonusPoints() int {
	total := 0
	b.bonus.ForEach(func(k CoordKey, _ struct{}) bool {
		if blk, ok := b.cells.Get(k); ok {
			total += blk.Bonus
		}
		return true
	})
	return total
}

// RowCounts returns the number of settled blocks in each row, keyed by y.
// Walls are not counted.
func (b *Board) RowCounts() map[int]int {
	counts := make(map[int]int)
	b.cells.ForEach(func(k CoordKey, _ Block) bool {
		counts[k.Coord().Y]++
		return true
	})
	return counts
}

// Settle merges a locked piece into the board.
func (b *Board) Settle(p *Piece) error {
	if p.Falling() {
		return ErrPieceFalling
	}
	p.shadow = nil
	for _, c := range p.cells {
		b.cells.Put(c.Key(), Block{Loc: c, Type: p.shape.BlockType(), Visible: true})
	}
	return nil
}

// place puts a block on the board, indexing bonus blocks.
func (b *Board) place(blk Block) {
	k := blk.Loc.Key()
	b.cells.Put(k, blk)
	if blk.Bonus > 0 {
		b.bonus.Put(k, struct{}{})
	}
}

// linePoints scores n simultaneous lines:
// floor(n^exp * line_points * width / rounding) * rounding.
func (b *Board) linePoints(n int) int {
	s := b.cfg.Scoring
	raw := math.Pow(float64(n), s.Exponent) * float64(s.LinePoints*b.geo.Width)
	return int(math.Floor(raw/float64(s.Rounding))) * s.Rounding
}

// fullRows returns the y of every row with at least width blocks, top first.
func (b *Board) fullRows() []int {
	var full []int
	for y, n := range b.RowCounts() {
		if n >= b.geo.Width {
			full = append(full, y)
		}
	}
	sort.Ints(full)
	return full
}

// ClearFullLines removes full rows until none remain and returns how many
// were cleared. Points for each pass are credited before any block explodes
// so bonus multipliers apply to that pass's increment.
func (b *Board) ClearFullLines(k *Keeper) int {
	total := 0
	for pass := 0; pass <= 2*b.geo.Height; pass++ {
		rows := b.fullRows()
		if len(rows) == 0 {
			break
		}
		n := len(rows)
		points := b.linePoints(n)
		k.Game.Add(points)

		b.lines += n
		if b.levels.AddLines(n) {
			b.emit(Event{Kind: EventLevelUp, Level: b.levels.Level()})
		}

		b.explodeRows(rows, k)
		b.emit(Event{Kind: EventLinesCleared, Lines: n, Points: points, Score: k.Game.Value()})

		b.blocksFallDown(rows)
		total += n
	}
	return total
}

// explodeRows explodes every block in the given rows.
func (b *Board) explodeRows(rows []int, k *Keeper) {
	inRow := make(map[int]bool, len(rows))
	for _, y := range rows {
		inRow[y] = true
	}

	var doomed []Block
	b.cells.ForEach(func(_ CoordKey, blk Block) bool {
		if inRow[blk.Loc.Y] {
			doomed = append(doomed, blk)
		}
		return true
	})
	sortBlocks(doomed)

	for _, blk := range doomed {
		key := blk.Loc.Key()
		b.cells.Del(key)

		res := blk.Explode()
		if res.Multiplier > 0 {
			k.Game.MultiplyLast(res.Multiplier)
		}
		switch res.Kind {
		case Decayed:
			nb, err := NewBonusBlock(blk.Loc, res.Level)
			if err == nil {
				b.place(nb)
			}
			b.emit(Event{Kind: EventBonusDecayed, At: blk.Loc, Level: res.Level})
		case Removed:
			if blk.Bonus > 0 {
				b.bonus.Del(key)
				b.emit(Event{Kind: EventBonusCleared, At: blk.Loc})
			}
		}
	}
}

// blocksFallDown drops every ordinary block above each cleared row by one
// block. Rows are handled top to bottom and blocks bottom-up; a block whose
// destination is taken stays put, so a bonus block holds up its column.
func (b *Board) blocksFallDown(rows []int) {
	bs := b.geo.BlockSize
	for _, y := range rows {
		var above []Block
		b.cells.ForEach(func(_ CoordKey, blk Block) bool {
			if blk.Loc.Y < y && blk.Bonus == 0 {
				above = append(above, blk)
			}
			return true
		})
		sort.Slice(above, func(i, j int) bool {
			if above[i].Loc.Y != above[j].Loc.Y {
				return above[i].Loc.Y > above[j].Loc.Y
			}
			return above[i].Loc.X < above[j].Loc.X
		})

		for _, blk := range above {
			dst := blk.Loc.Add(0, bs)
			if b.Occupied(dst) {
				continue
			}
			b.cells.Del(blk.Loc.Key())
			blk.Loc = dst
			b.cells.Put(dst.Key(), blk)
		}
	}
}

func (b *Board) emit(e Event) {
	b.events = append(b.events, e)
}

// drainEvents returns and clears the pending events.
func (b *Board) drainEvents() []Event {
	out := b.events
	b.events = nil
	return out
}

func sortBlocks(blocks []Block) {
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Loc.Y != blocks[j].Loc.Y {
			return blocks[i].Loc.Y < blocks[j].Loc.Y
		}
		return blocks[i].Loc.X < blocks[j].Loc.X
	})
}
