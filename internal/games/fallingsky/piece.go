package fallingsky

import (
	"github.com/vovakirdan/fallingsky/internal/core"
)

// PieceState is where a piece is in its lifecycle.
type PieceState int

const (
	PieceQueued PieceState = iota
	PieceHeld
	PieceActive
	PieceLocked
)

func (s PieceState) String() string {
	switch s {
	case PieceQueued:
		return "queued"
	case PieceHeld:
		return "held"
	case PieceActive:
		return "active"
	case PieceLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Piece is a four-cell tetromino: queued in the next preview, held, falling,
// or locked into the board.
type Piece struct {
	shape    Shape
	state    PieceState
	position int // Queue slot, 0 once active

	offsets [4]Coord // Current orientation around the pivot
	initial [4]Coord // Spawn orientation
	cells   [4]Coord
	spawnY  int
	falling bool

	fallRate      int
	nextFall      int
	moveRate      int
	nextMove      int
	turnRate      int
	nextTurn      int
	downRate      int
	downAvailable int
	mercy         int

	shadow       []Coord
	shadowHidden [4]bool
}

// NewPiece creates a piece in queue slot position (1 is next). It does not
// touch the board; call MakeActive to bring it into play.
func NewPiece(b *Board, shape Shape, position int) *Piece {
	bs := b.geo.BlockSize
	t := b.cfg.Timing

	spawnRows := 1
	if shape != ShapeI {
		spawnRows = 2
	}

	p := &Piece{
		shape:    shape,
		state:    PieceQueued,
		position: position,
		offsets:  shape.Offsets(bs),
		spawnY:   b.geo.VerticalOffset + bs*spawnRows,
		fallRate: b.FallInterval(),
		moveRate: t.MoveRepeatMs,
		turnRate: t.TurnRepeatMs,
		downRate: t.DownRepeatMs,
		mercy:    t.MercyTicks,
	}
	p.initial = p.offsets
	p.nextFall = p.fallRate
	p.nextMove = p.moveRate
	p.nextTurn = p.turnRate
	p.downAvailable = p.downRate
	p.cells = p.queueCells(b)
	return p
}

// Shape returns the piece's shape.
func (p *Piece) Shape() Shape { return p.shape }

// State returns the lifecycle state.
func (p *Piece) State() PieceState { return p.state }

// Position returns the queue slot.
func (p *Piece) Position() int { return p.position }

// Falling reports whether the piece is in play.
func (p *Piece) Falling() bool { return p.falling }

// Cells returns the absolute cell coordinates.
func (p *Piece) Cells() [4]Coord { return p.cells }

// Offsets returns the current orientation.
func (p *Piece) Offsets() [4]Coord { return p.offsets }

// Shadow returns the hard drop landing cells, or nil when there is none.
func (p *Piece) Shadow() []Coord { return p.shadow }

// ShadowVisible reports whether shadow cell i should be drawn. Shadow cells
// under the piece itself are hidden.
func (p *Piece) ShadowVisible(i int) bool {
	return i < len(p.shadow) && !p.shadowHidden[i]
}

// rightShift is the horizontal distance from the spawn column to the queue
// and hold areas.
func rightShift(b *Board) int {
	return (b.geo.Width/2 + 4) * b.geo.BlockSize
}

func (p *Piece) queueCells(b *Board) [4]Coord {
	down := (p.position - 1) * 3 * b.geo.BlockSize
	var out [4]Coord
	for i, o := range p.offsets {
		out[i] = C(b.geo.CentrePx+o.X+rightShift(b), p.spawnY+o.Y+down)
	}
	return out
}

func (p *Piece) spawnCells(b *Board) [4]Coord {
	var out [4]Coord
	for i, o := range p.offsets {
		out[i] = C(b.geo.CentrePx+o.X, p.spawnY+o.Y)
	}
	return out
}

// MoveCloser advances the piece one slot in the next queue.
func (p *Piece) MoveCloser(b *Board) {
	if p.position > 1 {
		p.position--
	}
	p.cells = p.queueCells(b)
}

// CanActivate reports whether the spawn cells are free. When they are not,
// the board goes inactive and the piece stops falling.
func (p *Piece) CanActivate(b *Board) bool {
	for _, c := range p.spawnCells(b) {
		if b.Occupied(c) {
			b.Deactivate()
			p.falling = false
			return false
		}
	}
	return true
}

// MakeActive moves the piece to the spawn point and starts it falling.
func (p *Piece) MakeActive(b *Board) bool {
	if !p.CanActivate(b) {
		return false
	}
	p.cells = p.spawnCells(b)
	p.position = 0
	p.state = PieceActive
	p.falling = true
	p.fallRate = b.FallInterval()
	p.nextFall = p.fallRate
	p.updateShadow(b)
	return true
}

// BecomeHeld parks the piece in the hold area in its spawn orientation.
func (p *Piece) BecomeHeld(b *Board) {
	p.offsets = p.initial
	shift := rightShift(b)
	for i, o := range p.offsets {
		p.cells[i] = C(b.geo.CentrePx+o.X-shift, p.spawnY+o.Y)
	}
	p.shadow = nil
	p.falling = false
	p.state = PieceHeld
}

// Update advances the piece's timers by dt milliseconds and applies the
// frame's actions, each gated by its own repeat timer. It reports whether
// the piece locked.
func (p *Piece) Update(b *Board, dt int, in core.InputFrame) bool {
	if !p.falling {
		return false
	}

	p.nextFall -= dt
	p.nextMove -= dt
	p.nextTurn -= dt
	p.downAvailable -= dt

	if in.Has(core.ActionSoftDrop) && p.downAvailable <= 0 {
		p.MoveDown(b)
		p.downAvailable = p.downRate
		p.nextFall = p.fallRate
	}

	if p.falling && p.nextMove <= 0 {
		switch {
		case in.Has(core.ActionLeft):
			p.MoveLeft(b)
			p.nextMove = p.moveRate
		case in.Has(core.ActionRight):
			p.MoveRight(b)
			p.nextMove = p.moveRate
		}
	}

	if p.falling && p.nextTurn <= 0 {
		switch {
		case in.Has(core.ActionRotateCW):
			p.Rotate(b, true)
			p.nextTurn = p.turnRate
		case in.Has(core.ActionRotateCCW):
			p.Rotate(b, false)
			p.nextTurn = p.turnRate
		}
	}

	if p.falling && p.nextFall < 0 {
		p.MoveDown(b)
		p.nextFall = p.fallRate
	}

	p.refreshShadowVisibility()
	return !p.falling
}

// MoveLeft shifts the piece one block left if nothing is in the way.
func (p *Piece) MoveLeft(b *Board) bool {
	return p.move(b, -b.geo.BlockSize, 0)
}

// MoveRight shifts the piece one block right if nothing is in the way.
func (p *Piece) MoveRight(b *Board) bool {
	return p.move(b, b.geo.BlockSize, 0)
}

// MoveDown drops the piece one block. When blocked it spends a mercy tick
// if one is left, otherwise it locks.
func (p *Piece) MoveDown(b *Board) bool {
	return p.move(b, 0, b.geo.BlockSize)
}

func (p *Piece) move(b *Board, dx, dy int) bool {
	if !p.falling {
		return false
	}
	var next [4]Coord
	for i, c := range p.cells {
		next[i] = c.Add(dx, dy)
		if b.Occupied(next[i]) {
			if dy > 0 {
				if p.mercy > 0 {
					p.mercy--
					return false
				}
				p.lock(b)
			}
			return false
		}
	}
	p.cells = next
	p.updateShadow(b)
	return true
}

func (p *Piece) lock(b *Board) {
	p.falling = false
	p.state = PieceLocked
	p.shadow = nil
	_ = b.Settle(p)
}

// Rotate turns the piece 90 degrees about its pivot. A turn blocked by a
// wall shifts the piece one block toward the centre and tries again, up to
// the configured number of wall kicks; on failure the piece is restored.
func (p *Piece) Rotate(b *Board, clockwise bool) bool {
	if !p.falling {
		return false
	}
	return p.rotate(b, clockwise, 0)
}

func (p *Piece) rotate(b *Board, clockwise bool, retry int) bool {
	if !p.shape.Rotatable() {
		return false
	}

	pivot := p.cells[pivotIndex]
	var offsets, next [4]Coord
	for i, o := range p.offsets {
		offsets[i] = rotateOffset(o, clockwise)
		next[i] = pivot.AddCoord(offsets[i])
		if b.Occupied(next[i]) {
			if b.IsWall(next[i]) && retry < b.cfg.Rotation.WallKickRetries {
				return p.kick(b, clockwise, retry+1)
			}
			return false
		}
	}

	p.cells = next
	p.offsets = offsets
	p.updateShadow(b)
	return true
}

// kick shifts the piece away from the wall it hit and retries the turn.
func (p *Piece) kick(b *Board, clockwise bool, retry int) bool {
	start := p.cells

	var moved bool
	if start[0].X > b.geo.CentrePx {
		moved = p.MoveLeft(b)
	} else {
		moved = p.MoveRight(b)
	}

	if moved && p.rotate(b, clockwise, retry) {
		return true
	}

	p.cells = start
	p.updateShadow(b)
	return false
}

// shadowCells projects the piece straight down. It gives up after twice the
// board height, returning nil.
func (p *Piece) shadowCells(b *Board) []Coord {
	cur := p.cells
	for step := 0; step < 2*b.geo.Height; step++ {
		var next [4]Coord
		for i, c := range cur {
			next[i] = c.Add(0, b.geo.BlockSize)
			if b.Occupied(next[i]) {
				out := cur
				return out[:]
			}
		}
		cur = next
	}
	return nil
}

func (p *Piece) updateShadow(b *Board) {
	p.shadow = p.shadowCells(b)
	p.refreshShadowVisibility()
}

func (p *Piece) refreshShadowVisibility() {
	p.shadowHidden = [4]bool{}
	for i, s := range p.shadow {
		for _, c := range p.cells {
			if s == c {
				p.shadowHidden[i] = true
				break
			}
		}
	}
}

// Slam drops the piece to its shadow and locks it at once, skipping mercy.
// A piece that cannot move down at all locks where it is.
func (p *Piece) Slam(b *Board) {
	if !p.falling {
		return
	}

	blocked := false
	for _, c := range p.cells {
		if b.Occupied(c.Add(0, b.geo.BlockSize)) {
			blocked = true
			break
		}
	}
	if !blocked {
		if target := p.shadowCells(b); target != nil {
			copy(p.cells[:], target)
		}
	}
	p.lock(b)
}
