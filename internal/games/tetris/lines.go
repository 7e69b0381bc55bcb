package tetris

// Scoring constants.
const (
	PointsPerLine = 10
	// TetrisBonus is added for every fourth consecutive complete row seen
	// while scanning the board.
	TetrisBonus = 40
	tetrisRun   = 4
)

func rowComplete(row [BoardWidth]Cell) bool {
	for _, c := range row {
		if !c.Occupied() {
			return false
		}
	}
	return true
}

// ClearLines removes every complete row, shifts the rows above it down and
// returns the new board with the points earned. Rows are examined in a
// single pass from the top; an incomplete row resets the consecutive run.
func ClearLines(board Board) (Board, int) {
	out, points, _ := clearLines(board)
	return out, points
}

func clearLines(board Board) (Board, int, int) {
	var keep [BoardHeight]bool
	points, cleared, run := 0, 0, 0
	for y := range BoardHeight {
		if !rowComplete(board[y]) {
			keep[y] = true
			run = 0
			continue
		}
		cleared++
		run++
		points += PointsPerLine
		if run == tetrisRun {
			points += TetrisBonus
			run = 0
		}
	}
	if cleared == 0 {
		return board, 0, 0
	}

	var out Board
	dst := BoardHeight - 1
	for y := BoardHeight - 1; y >= 0; y-- {
		if keep[y] {
			out[dst] = board[y]
			dst--
		}
	}
	return out, points, cleared
}
