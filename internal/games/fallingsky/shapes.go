package fallingsky

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShape is returned when a shape id or name is not recognised.
var ErrUnknownShape = errors.New("unknown shape")

// Shape is one of the seven tetromino types. The numeric ids are stable and
// index the spawn History.
type Shape uint8

const (
	ShapeL Shape = iota
	ShapeS
	ShapeZ
	ShapeI
	ShapeO
	ShapeJ
	ShapeT
)

// NumShapes is the number of shape types.
const NumShapes = 7

// pivotIndex is the cell every rotation turns around. Its offset is (0,0)
// for every shape except L, which drifts as it turns.
const pivotIndex = 2

var shapeInfo = [NumShapes]struct {
	name    string
	block   BlockType
	offsets [4]Coord // In block units
}{
	ShapeL: {"l", BlockL, [4]Coord{{-1, 0}, {0, 0}, {1, 0}, {1, -1}}},
	ShapeS: {"s", BlockS, [4]Coord{{1, -1}, {0, -1}, {0, 0}, {-1, 0}}},
	ShapeZ: {"z", BlockZ, [4]Coord{{-1, -1}, {0, -1}, {0, 0}, {1, 0}}},
	ShapeI: {"i", BlockI, [4]Coord{{-2, 0}, {-1, 0}, {0, 0}, {1, 0}}},
	ShapeO: {"o", BlockO, [4]Coord{{-1, -1}, {0, -1}, {0, 0}, {-1, 0}}},
	ShapeJ: {"j", BlockJ, [4]Coord{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}}},
	ShapeT: {"t", BlockT, [4]Coord{{0, -1}, {-1, 0}, {0, 0}, {1, 0}}},
}

// AllShapes lists the shapes in id order.
func AllShapes() []Shape {
	out := make([]Shape, NumShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// ShapeByID validates a numeric shape id.
func ShapeByID(id int) (Shape, error) {
	if id < 0 || id >= NumShapes {
		return 0, fmt.Errorf("fallingsky: %w: id %d", ErrUnknownShape, id)
	}
	return Shape(id), nil
}

// ParseShape converts a shape letter ("t", "I", ...) to a Shape.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, info := range shapeInfo {
		if info.name == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("fallingsky: %w %q", ErrUnknownShape, name)
}

// String returns the shape letter.
func (s Shape) String() string {
	if int(s) < NumShapes {
		return shapeInfo[s].name
	}
	return "?"
}

// Title returns the upper-case letter for display.
func (s Shape) Title() string {
	return strings.ToUpper(s.String())
}

// BlockType returns the block type used for this shape's cells.
func (s Shape) BlockType() BlockType {
	return shapeInfo[s].block
}

// Offsets returns the spawn orientation scaled to pixel units.
func (s Shape) Offsets(blockSize int) [4]Coord {
	var out [4]Coord
	for i, o := range shapeInfo[s].offsets {
		out[i] = C(o.X*blockSize, o.Y*blockSize)
	}
	return out
}

// Rotatable reports whether the shape turns at all. The O piece does not.
func (s Shape) Rotatable() bool {
	return s != ShapeO
}

// rotateOffset turns an offset 90 degrees about the pivot in screen
// coordinates.
func rotateOffset(o Coord, clockwise bool) Coord {
	if clockwise {
		return C(-o.Y, o.X)
	}
	return C(o.Y, -o.X)
}
