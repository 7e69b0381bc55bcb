package tetris

func clearShadow(board Board) Board {
	for y := range BoardHeight {
		for x := range BoardWidth {
			if board[y][x] == CellShadow {
				board[y][x] = CellEmpty
			}
		}
	}
	return board
}

// ComputeShadow returns board with a preview of where piece would land if
// dropped straight down. Previous shadow cells are cleared first and only
// empty cells are marked. A nil piece only clears the shadow.
func ComputeShadow(board Board, piece *Piece) Board {
	board = clearShadow(board)
	if piece == nil {
		return board
	}
	y := piece.Y
	for !Collides(board, piece.Shape, piece.X, y+1) {
		y++
	}
	for r, row := range piece.Shape {
		for c, on := range row {
			bx, by := piece.X+c, y+r
			if on == 0 || !inBounds(bx, by) {
				continue
			}
			if board[by][bx] == CellEmpty {
				board[by][bx] = CellShadow
			}
		}
	}
	return board
}
