// Package tetris implements a falling-block puzzle game: a deterministic
// state machine over a 10x20 board plus the platform adapter that drives it.
package tetris

import "strings"

// Board dimensions. They never change.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Cell is the content of a single board position.
type Cell int8

const (
	CellShadow Cell = -1 // landing preview of the current piece
	CellEmpty  Cell = 0
	CellActive Cell = 1 // occupied by the falling piece
	CellLocked Cell = 2 // occupied by a piece that finished falling
)

// Occupied reports whether the cell holds a block (active or locked).
func (c Cell) Occupied() bool {
	return c == CellActive || c == CellLocked
}

// Board is the playfield, indexed Board[row][column] with row 0 at the top.
// It is an array, so assigning a Board copies it.
type Board [BoardHeight][BoardWidth]Cell

func inBounds(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight
}

// Collides reports whether shape placed with its top-left corner at (x, y)
// overlaps a locked cell or leaves the board. Active and shadow cells never
// collide.
func Collides(board Board, shape Shape, x, y int) bool {
	for r, row := range shape {
		for c, v := range row {
			if v == 0 {
				continue
			}
			bx, by := x+c, y+r
			if !inBounds(bx, by) || board[by][bx] == CellLocked {
				return true
			}
		}
	}
	return false
}

// paint writes v into every in-bounds cell covered by shape at (x, y).
// Locked cells are never overwritten.
func (b *Board) paint(shape Shape, x, y int, v Cell) {
	for r, row := range shape {
		for c, on := range row {
			if on == 0 {
				continue
			}
			bx, by := x+c, y+r
			if !inBounds(bx, by) || b[by][bx] == CellLocked {
				continue
			}
			b[by][bx] = v
		}
	}
}

// lock turns the footprint of shape at (x, y) into locked cells.
// Cells that are already locked stay locked.
func (b *Board) lock(shape Shape, x, y int) {
	for r, row := range shape {
		for c, on := range row {
			bx, by := x+c, y+r
			if on == 0 || !inBounds(bx, by) {
				continue
			}
			b[by][bx] = CellLocked
		}
	}
}

// Count returns how many cells hold the value c.
func (b Board) Count(c Cell) int {
	n := 0
	for y := range BoardHeight {
		for x := range BoardWidth {
			if b[y][x] == c {
				n++
			}
		}
	}
	return n
}

// IsEmpty reports whether every cell is empty.
func (b Board) IsEmpty() bool {
	return b.Count(CellEmpty) == BoardWidth*BoardHeight
}

// String renders the board as text, one line per row:
// '.' empty, '#' active, '=' locked, '+' shadow.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow((BoardWidth + 1) * BoardHeight)
	for y := range BoardHeight {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range BoardWidth {
			switch b[y][x] {
			case CellActive:
				sb.WriteByte('#')
			case CellLocked:
				sb.WriteByte('=')
			case CellShadow:
				sb.WriteByte('+')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
