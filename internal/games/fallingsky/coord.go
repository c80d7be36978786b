package fallingsky

import "fmt"

// Coord is a board position in pixel units, always a multiple of the block
// size. X grows to the right and Y grows downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// AddCoord returns the sum of two coordinates.
func (c Coord) AddCoord(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Key packs the coordinate into a map key: X in the high 32 bits, Y in the
// low 32 bits.
func (c Coord) Key() CoordKey {
	return CoordKey(uint64(uint32(int32(c.X)))<<32 | uint64(uint32(int32(c.Y))))
}

// CoordKey is the packed form of a Coord used by the board's int maps.
type CoordKey uint64

// Coord unpacks the key.
func (k CoordKey) Coord() Coord {
	return Coord{X: int(int32(uint32(k >> 32))), Y: int(int32(uint32(k)))}
}
