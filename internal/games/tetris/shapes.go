package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Kind identifies one of the seven canonical pieces.
type Kind int

const (
	KindO Kind = iota
	KindI
	KindS
	KindZ
	KindL
	KindJ
	KindT
)

// KindCount is the number of canonical pieces.
const KindCount = 7

// Shape is a rectangular 0/1 matrix of a piece's cells relative to its
// top-left corner. Shapes are treated as immutable.
type Shape [][]uint8

var shapeTable = [KindCount]Shape{
	KindO: {
		{1, 1},
		{1, 1},
	},
	KindI: {
		{1},
		{1},
		{1},
		{1},
	},
	KindS: {
		{0, 1, 1},
		{1, 1, 0},
	},
	KindZ: {
		{1, 1, 0},
		{0, 1, 1},
	},
	KindL: {
		{1, 0},
		{1, 0},
		{1, 1},
	},
	KindJ: {
		{0, 1},
		{0, 1},
		{1, 1},
	},
	KindT: {
		{1, 1, 1},
		{0, 1, 0},
	},
}

var kindColors = [KindCount]core.Color{
	KindO: core.ColorYellow,
	KindI: core.ColorCyan,
	KindS: core.ColorBrightRed,
	KindZ: core.ColorMagenta,
	KindL: core.ColorGreen,
	KindJ: core.ColorOrange,
	KindT: core.ColorRed,
}

var kindNames = [KindCount]string{"O", "I", "S", "Z", "L", "J", "T"}

// String returns the letter of the piece.
func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return "?"
	}
	return kindNames[k]
}

// ShapeOf returns the spawn orientation of a kind.
// The returned matrix is shared and must not be modified.
func ShapeOf(k Kind) Shape {
	return shapeTable[k]
}

// ColorOf returns the fixed color of a kind.
func ColorOf(k Kind) core.Color {
	return kindColors[k]
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Equal reports whether two shapes have the same dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// RotateClockwise returns a new matrix rotated 90 degrees clockwise:
// the transpose with every row reversed. An MxN shape becomes NxM.
func RotateClockwise(s Shape) Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for r := range w {
		out[r] = make([]uint8, h)
		for c := range h {
			out[r][c] = s[h-1-c][r]
		}
	}
	return out
}
