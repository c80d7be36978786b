package fallingsky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fallingsky/internal/core"
)

func activePiece(t *testing.T, b *Board, s Shape) *Piece {
	t.Helper()
	p := NewPiece(b, s, 1)
	require.True(t, p.MakeActive(b))
	return p
}

func minCol(cells [4]Coord) int {
	m := cells[0].X
	for _, c := range cells[1:] {
		m = core.Min(m, c.X)
	}
	return m / testBS
}

func TestPieceSpawnsAtCentre(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeT)

	assert.True(t, p.Falling())
	assert.Equal(t, PieceActive, p.State())
	assert.Equal(t, at(15, 5), p.Cells()[pivotIndex])
	assert.Len(t, p.Shadow(), 4)
}

func TestQueuedPieceSitsRightOfWell(t *testing.T) {
	b := newTestBoard(t, 0)
	p := NewPiece(b, ShapeT, 2)

	assert.Equal(t, PieceQueued, p.State())
	assert.False(t, p.Falling())
	assert.Equal(t, at(15+9, 5+3), p.Cells()[pivotIndex])

	p.MoveCloser(b)
	assert.Equal(t, 1, p.Position())
	assert.Equal(t, at(15+9, 5), p.Cells()[pivotIndex])
}

func TestRotateFourTimesRestores(t *testing.T) {
	b := newTestBoard(t, 0)
	for _, s := range []Shape{ShapeL, ShapeS, ShapeZ, ShapeI, ShapeJ, ShapeT} {
		p := activePiece(t, b, s)
		cells, offsets := p.Cells(), p.Offsets()
		for i := 0; i < 4; i++ {
			require.True(t, p.Rotate(b, true), "%s turn %d", s, i)
		}
		assert.Equal(t, cells, p.Cells(), s.String())
		assert.Equal(t, offsets, p.Offsets(), s.String())

		for i := 0; i < 4; i++ {
			require.True(t, p.Rotate(b, false), "%s ccw turn %d", s, i)
		}
		assert.Equal(t, cells, p.Cells(), s.String())
	}
}

func TestRotateCWThenCCWIsIdentity(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeJ)
	cells := p.Cells()

	require.True(t, p.Rotate(b, true))
	assert.NotEqual(t, cells, p.Cells())
	require.True(t, p.Rotate(b, false))
	assert.Equal(t, cells, p.Cells())
}

func TestOPieceDoesNotRotate(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeO)
	cells := p.Cells()

	assert.False(t, p.Rotate(b, true))
	assert.False(t, p.Rotate(b, false))
	assert.Equal(t, cells, p.Cells())
}

func TestWallKick(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeI)

	require.True(t, p.Rotate(b, true), "stand the I upright")
	for p.MoveLeft(b) {
	}
	require.Equal(t, 10, minCol(p.Cells()), "upright I against the left wall")

	require.True(t, p.Rotate(b, true), "turn is kicked off the wall")
	assert.Equal(t, 10, minCol(p.Cells()))
	for _, c := range p.Cells() {
		assert.False(t, b.Occupied(c))
	}
}

func TestWallKickFailsRestoresPiece(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeI)

	require.True(t, p.Rotate(b, true))
	for p.MoveLeft(b) {
	}
	// The turn hits the wall and the kick to the right is blocked.
	for row := 0; row <= 8; row++ {
		b.place(Block{Loc: at(11, row), Type: BlockZ, Visible: true})
	}
	cells := p.Cells()

	assert.False(t, p.Rotate(b, false))
	assert.Equal(t, cells, p.Cells())
	assert.True(t, p.Falling())
}

func TestMoveBlockedByWall(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeO)

	moves := 0
	for p.MoveRight(b) {
		moves++
	}
	assert.Equal(t, 4, moves)
	assert.True(t, p.Falling(), "sideways collision never locks")
}

func TestMercyBeforeLock(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeT)

	for p.MoveDown(b) {
	}
	assert.True(t, p.Falling(), "first ground contact spends mercy")
	assert.Empty(t, b.Blocks())

	assert.False(t, p.MoveDown(b))
	assert.False(t, p.Falling())
	assert.Equal(t, PieceLocked, p.State())
	assert.Len(t, b.Blocks(), 4)
}

func TestSlamLandsOnShadow(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeL)
	require.True(t, p.Rotate(b, true))

	shadow := append([]Coord(nil), p.Shadow()...)
	require.Len(t, shadow, 4)

	p.Slam(b)

	assert.False(t, p.Falling())
	cells := p.Cells()
	assert.Equal(t, shadow, cells[:])
	assert.Len(t, b.Blocks(), 4)
	for _, c := range shadow {
		_, ok := b.BlockAt(c)
		assert.True(t, ok)
	}
}

func TestSlamWhenBlockedLocksInPlace(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeO)
	for p.MoveDown(b) {
	}
	cells := p.Cells()

	p.Slam(b)

	assert.False(t, p.Falling())
	assert.Equal(t, cells, p.Cells())
}

func TestSpawnIntoOccupiedEndsRound(t *testing.T) {
	b := newTestBoard(t, 0)
	b.place(Block{Loc: at(15, 5), Type: BlockS, Visible: true})

	p := NewPiece(b, ShapeT, 1)
	assert.False(t, p.MakeActive(b))
	assert.False(t, p.Falling())
	assert.False(t, b.Active())
	assert.Len(t, b.Blocks(), 1, "the blocked piece is not settled")
}

func TestUpdateGravity(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeT)
	start := p.Cells()[pivotIndex]

	locked := p.Update(b, b.FallInterval()-1, core.NewInputFrame())
	assert.False(t, locked)
	assert.Equal(t, start, p.Cells()[pivotIndex])

	p.Update(b, 2, core.NewInputFrame())
	assert.Equal(t, start.Add(0, testBS), p.Cells()[pivotIndex])
}

func TestUpdateRepeatTimers(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeT)
	start := p.Cells()[pivotIndex]
	left := core.NewInputFrame(core.ActionLeft)

	p.Update(b, 50, left)
	assert.Equal(t, start, p.Cells()[pivotIndex], "move timer not yet expired")

	p.Update(b, 50, left)
	assert.Equal(t, start.Add(-testBS, 0), p.Cells()[pivotIndex])

	p.Update(b, 50, left)
	assert.Equal(t, start.Add(-testBS, 0), p.Cells()[pivotIndex], "timer restarted after the move")
}

func TestSoftDropResetsGravity(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeT)
	start := p.Cells()[pivotIndex]

	p.Update(b, 100, core.NewInputFrame(core.ActionSoftDrop))
	assert.Equal(t, start.Add(0, testBS), p.Cells()[pivotIndex])
	assert.Equal(t, p.fallRate, p.nextFall)
}

func TestBecomeHeldRestoresOrientation(t *testing.T) {
	b := newTestBoard(t, 0)
	p := activePiece(t, b, ShapeJ)
	require.True(t, p.Rotate(b, true))

	p.BecomeHeld(b)

	assert.Equal(t, PieceHeld, p.State())
	assert.False(t, p.Falling())
	assert.Equal(t, ShapeJ.Offsets(testBS), p.Offsets())
	assert.Equal(t, at(15-9, 5), p.Cells()[pivotIndex])
	assert.Nil(t, p.Shadow())
}
