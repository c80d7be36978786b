package fallingsky

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fallingsky/internal/config"
)

const testBS = 16

// testGeometry is a 10x25 well in a 30x28 block resolution. The playfield
// spans columns 10..19; the walls sit in columns 9 and 20 and the floor in
// row 26, so row 25 is the lowest resting row.
func testGeometry() Geometry {
	return NewGeometry(30*testBS, 28*testBS, testBS, 10, 25)
}

func newTestBoard(t *testing.T, bonusRate int) *Board {
	t.Helper()
	b := NewBoard(testGeometry(), config.DefaultFallingSkyConfig(), rand.New(rand.NewSource(1)), 1, bonusRate)
	b.Reset()
	return b
}

func at(col, row int) Coord {
	return C(col*testBS, row*testBS)
}

// fillRow fills a playfield row with ordinary blocks, skipping the given
// columns.
func fillRow(b *Board, row int, skip ...int) {
	for col := 10; col <= 19; col++ {
		skipped := false
		for _, s := range skip {
			if s == col {
				skipped = true
			}
		}
		if !skipped {
			b.place(Block{Loc: at(col, row), Type: BlockT, Visible: true})
		}
	}
}

func placeBonus(t *testing.T, b *Board, c Coord, level int) {
	t.Helper()
	blk, err := NewBonusBlock(c, level)
	require.NoError(t, err)
	b.place(blk)
}

func TestWallLayout(t *testing.T) {
	g := testGeometry()
	assert.Equal(t, 9, g.LeftWallCol())
	assert.Equal(t, 20, g.RightWallCol())
	assert.Equal(t, 26, g.FloorRow())
	assert.Equal(t, 15*testBS, g.CentrePx)
	assert.Equal(t, 3*testBS, g.VerticalOffset)
	assert.Equal(t, 25*testBS, g.BottomRowPx())

	w := g.Walls()
	assert.Len(t, w.All, 28*2+10)
	assert.Len(t, w.Visible, 23*2+10)
	assert.Contains(t, w.All, at(9, 0))
	assert.NotContains(t, w.Visible, at(9, 0))
	assert.Contains(t, w.Visible, at(15, 26))

	assert.Equal(t, w, ArcadeWalls(30*testBS, 28*testBS, testBS, 10, 25))
	b := newTestBoard(t, 0)
	assert.Equal(t, w, b.Walls())
	for _, c := range w.All {
		assert.True(t, b.IsWall(c), "wall at %v", c)
	}
}

func TestLinePoints(t *testing.T) {
	b := newTestBoard(t, 0)
	tests := []struct {
		lines int
		want  int
	}{
		{1, 1000},
		{2, 2500},
		{3, 5000},
		{4, 8000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.linePoints(tt.lines), "lines=%d", tt.lines)
	}
}

func TestClearSingleLine(t *testing.T) {
	b := newTestBoard(t, 0)
	fillRow(b, 25)
	b.place(Block{Loc: at(12, 24), Type: BlockJ, Visible: true})

	var k Keeper
	cleared := b.ClearFullLines(&k)

	assert.Equal(t, 1, cleared)
	assert.Equal(t, 1000, k.Game.Value())
	assert.Equal(t, 1, b.Lines())

	blk, ok := b.BlockAt(at(12, 25))
	require.True(t, ok, "block above the cleared row falls into it")
	assert.Equal(t, BlockJ, blk.Type)
	_, ok = b.BlockAt(at(12, 24))
	assert.False(t, ok)
}

func TestClearLeavesNoFullRow(t *testing.T) {
	b := newTestBoard(t, 0)
	fillRow(b, 22)
	fillRow(b, 23, 11)
	fillRow(b, 24)
	fillRow(b, 25)

	var k Keeper
	cleared := b.ClearFullLines(&k)

	assert.Equal(t, 3, cleared)
	assert.Empty(t, b.fullRows())
	for y, n := range b.RowCounts() {
		assert.Less(t, n, b.geo.Width, "row %d", y/testBS)
	}
	assert.Equal(t, 9, b.RowCounts()[25*testBS], "partial row drops to the bottom")
}

func TestClearEmitsEvents(t *testing.T) {
	b := newTestBoard(t, 0)
	fillRow(b, 25)

	var k Keeper
	b.ClearFullLines(&k)

	events := b.drainEvents()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventLinesCleared, last.Kind)
	assert.Equal(t, 1, last.Lines)
	assert.Equal(t, 1000, last.Points)
	assert.Empty(t, b.drainEvents())
}

func TestBonusBlockDecays(t *testing.T) {
	b := newTestBoard(t, 0)
	fillRow(b, 25, 12)
	placeBonus(t, b, at(12, 25), 3)

	var k Keeper
	cleared := b.ClearFullLines(&k)

	assert.Equal(t, 1, cleared)
	assert.Equal(t, 3000, k.Game.Value(), "points are multiplied by the bonus level")

	blk, ok := b.BlockAt(at(12, 25))
	require.True(t, ok, "decayed block keeps its cell")
	assert.Equal(t, 2, blk.Bonus)
	assert.Equal(t, BlockBonus2, blk.Type)
	assert.Equal(t, 1, b.BonusCount())
	assert.Equal(t, 2, b.BonusPoints())
}

func TestBonusBlockLevelOneRemoved(t *testing.T) {
	b := newTestBoard(t, 0)
	fillRow(b, 25, 12)
	placeBonus(t, b, at(12, 25), 1)

	var k Keeper
	b.ClearFullLines(&k)

	assert.Equal(t, 1000, k.Game.Value())
	assert.Equal(t, 0, b.BonusCount())
	_, ok := b.BlockAt(at(12, 25))
	assert.False(t, ok)
}

func TestBonusMultipliersAdd(t *testing.T) {
	b := newTestBoard(t, 0)
	fillRow(b, 25, 12, 15)
	placeBonus(t, b, at(12, 25), 2)
	placeBonus(t, b, at(15, 25), 3)

	var k Keeper
	b.ClearFullLines(&k)

	assert.Equal(t, 5000, k.Game.Value())
	assert.Equal(t, 2, b.BonusCount())
}

func TestBonusBlockHoldsUpColumn(t *testing.T) {
	b := newTestBoard(t, 0)
	fillRow(b, 25, 12)
	placeBonus(t, b, at(12, 25), 2)
	b.place(Block{Loc: at(12, 24), Type: BlockS, Visible: true})
	b.place(Block{Loc: at(13, 24), Type: BlockS, Visible: true})

	var k Keeper
	b.ClearFullLines(&k)

	_, ok := b.BlockAt(at(12, 24))
	assert.True(t, ok, "block resting on a bonus block stays put")
	_, ok = b.BlockAt(at(13, 25))
	assert.True(t, ok, "free column falls")
}

func TestSettleRejectsFallingPiece(t *testing.T) {
	b := newTestBoard(t, 0)
	p := NewPiece(b, ShapeT, 1)
	require.True(t, p.MakeActive(b))

	err := b.Settle(p)
	assert.ErrorIs(t, err, ErrPieceFalling)
	assert.Empty(t, b.Blocks())
}

func TestResetSpawnsBonusBlocks(t *testing.T) {
	b := newTestBoard(t, 5)
	cfg := config.DefaultFallingSkyConfig().Bonus

	assert.Equal(t, 5, b.BonusCount())
	for _, blk := range b.Blocks() {
		require.True(t, blk.Type.IsBonus())
		assert.GreaterOrEqual(t, blk.Bonus, cfg.MinLevel)
		assert.LessOrEqual(t, blk.Bonus, cfg.MaxLevel)
		assert.GreaterOrEqual(t, blk.Loc.X, 10*testBS)
		assert.LessOrEqual(t, blk.Loc.X, 19*testBS)
		assert.GreaterOrEqual(t, blk.Loc.Y, b.geo.VerticalOffset)
		assert.LessOrEqual(t, blk.Loc.Y, b.geo.BottomRowPx())
	}
}

func TestResetClearsBoard(t *testing.T) {
	b := newTestBoard(t, 2)
	fillRow(b, 20)
	b.history.Record(ShapeI)
	b.Deactivate()

	b.Reset()

	assert.True(t, b.Active())
	assert.Equal(t, 0, b.history.Total())
	assert.Equal(t, 0, b.Lines())
	assert.Equal(t, 2, b.BonusCount())
	assert.Len(t, b.Blocks(), 2)
}

func TestLevelUp(t *testing.T) {
	b := newTestBoard(t, 0)
	var k Keeper
	for i := 0; i < 16; i++ {
		fillRow(b, 25)
		b.ClearFullLines(&k)
	}
	assert.Equal(t, 16, b.Lines())
	assert.Equal(t, 2, b.Level())

	var levelUps int
	for _, e := range b.drainEvents() {
		if e.Kind == EventLevelUp {
			levelUps++
		}
	}
	assert.Equal(t, 1, levelUps)
}
