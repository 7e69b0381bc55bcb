package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellW    = 2 // terminal columns per board cell
	boardW   = BoardWidth*cellW + 2
	boardH   = BoardHeight + 2
	panelW   = 16
	panelGap = 2
)

type panelLine struct {
	text  string
	color core.Color
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW := boardW + panelGap + panelW
	boardX := (g.screenW - totalW) / 2
	boardY := 1

	dst.DrawTextCentered(0, g.Title())
	g.renderBoard(dst, boardX, boardY)
	g.renderPanel(dst, boardX+boardW+panelGap, boardY)
	g.renderOverlays(dst, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	dst.DrawBox(core.Rect{X: x0, Y: y0, W: boardW, H: boardH})

	pieceColor := core.ColorWhite
	if g.state.Piece != nil {
		pieceColor = g.state.Piece.Color
	}

	for y := range BoardHeight {
		for x := range BoardWidth {
			px := x0 + 1 + x*cellW
			py := y0 + 1 + y
			switch g.state.Board[y][x] {
			case CellActive:
				dst.DrawTextColored(px, py, "██", pieceColor)
			case CellLocked:
				dst.DrawTextColored(px, py, "██", core.ColorGray)
			case CellShadow:
				dst.DrawTextColored(px, py, "░░", core.ColorDarkGray)
			default:
				dst.SetColored(px, py, '·', core.ColorDarkGray)
			}
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	st := g.State()
	status := string(g.state.Status)
	if g.paused {
		status = "paused"
	}

	lines := []panelLine{
		{fmt.Sprintf("Score: %d", st.Score), core.ColorBrightWhite},
		{fmt.Sprintf("Lines: %d", g.state.Lines), core.ColorDefault},
		{"", core.ColorDefault},
		{"Status:", core.ColorDefault},
		{" " + status, core.ColorYellow},
		{"", core.ColorDefault},
		{"Variant:", core.ColorDefault},
		{" " + string(g.mode), core.ColorCyan},
	}
	if p := g.state.Piece; p != nil {
		lines = append(lines,
			panelLine{"", core.ColorDefault},
			panelLine{"Piece: " + p.Kind.String(), p.Color},
		)
	}
	for i, l := range lines {
		dst.DrawTextColored(x, y+i, l.text, l.color)
	}

	controls := []string{
		"←→   move",
		"↓    drop",
		"↑/x  rotate",
		"p    pause",
		"r    restart",
		"q    quit",
	}
	cy := y + boardH - len(controls) - 1
	for i, c := range controls {
		dst.DrawTextColored(x, cy+i, c, core.ColorGray)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "P to resume")
	case g.state.Status == StatusStopped:
		g.drawOverlay(dst, centerX, centerY, "TETRIS", "Enter to start")
	case g.state.Status == StatusGameOver:
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.state.FinalScore),
			"Enter: again",
			"R: restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.Rect{X: centerX - boxW/2, Y: centerY - boxH/2, W: boxW, H: boxH}

	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColored(x, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Up/X: Rotate | Enter: Start | P: Pause | R: Restart | Q: Quit"
}
