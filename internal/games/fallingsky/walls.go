package fallingsky

// Geometry describes how the board sits inside the virtual resolution.
// Width and Height are in blocks; everything else is in pixels unless the
// name says otherwise.
type Geometry struct {
	ResX, ResY int
	BlockSize  int
	Width      int
	Height     int

	BlocksWide int
	BlocksHigh int
	// CentrePx is the x of the spawn column.
	CentrePx int
	// VerticalOffset is the y of the first playfield row.
	VerticalOffset int
}

// NewGeometry derives the board layout for a resolution.
func NewGeometry(resX, resY, blockSize, width, height int) Geometry {
	g := Geometry{
		ResX:       resX,
		ResY:       resY,
		BlockSize:  blockSize,
		Width:      width,
		Height:     height,
		BlocksWide: resX / blockSize,
		BlocksHigh: resY / blockSize,
	}
	g.CentrePx = (g.BlocksWide / 2) * blockSize
	g.VerticalOffset = (g.BlocksHigh - height) * blockSize
	return g
}

// LeftWallCol is the left wall's column in block units.
func (g Geometry) LeftWallCol() int { return g.BlocksWide/2 - (g.Width/2 + 1) }

// RightWallCol is the right wall's column in block units.
func (g Geometry) RightWallCol() int { return g.BlocksWide/2 + (g.Width - g.Width/2) }

// FloorRow is the floor's row in block units.
func (g Geometry) FloorRow() int { return g.BlocksHigh - 2 }

// Walls is the wall layout of a board.
type Walls struct {
	// All holds every collidable wall coordinate, including the invisible
	// parts that stop pieces from climbing over the top.
	All []Coord
	// Visible is the subset drawn on screen.
	Visible []Coord
}

// ArcadeWalls builds a rectangular well: two side walls spanning the full
// height and a floor one row above the bottom. Only the part of the wall
// alongside the playfield is visible.
func ArcadeWalls(resX, resY, blockSize, width, height int) Walls {
	return NewGeometry(resX, resY, blockSize, width, height).Walls()
}

// Walls builds the wall layout for this geometry.
func (g Geometry) Walls() Walls {
	var w Walls
	left, right, floor := g.LeftWallCol(), g.RightWallCol(), g.FloorRow()

	for x := left; x <= right; x++ {
		for y := 0; y < g.BlocksHigh; y++ {
			if x != left && x != right && y != floor {
				continue
			}
			c := C(x*g.BlockSize, y*g.BlockSize)
			w.All = append(w.All, c)
			if g.BlocksHigh-g.Height < y && y < g.BlocksHigh-1 {
				w.Visible = append(w.Visible, c)
			}
		}
	}
	return w
}

// ColumnPx returns the x of a column offset from the spawn column.
func (g Geometry) ColumnPx(col int) int {
	return g.CentrePx + col*g.BlockSize
}

// RowPx returns the y of a playfield row counted up from the floor, row 0
// being the lowest row a block can rest on.
func (g Geometry) RowPx(row int) int {
	return g.VerticalOffset + (g.Height-row-3)*g.BlockSize
}

// BottomRowPx is the y of the lowest playfield row.
func (g Geometry) BottomRowPx() int {
	return g.RowPx(0)
}
