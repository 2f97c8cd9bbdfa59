package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Cell width including its left border
	cellHeight = 2 // Cell height including its top border
	hudHeight  = 3
	footerRows = 2
)

// minScreenSize returns the smallest terminal that fits a size×size board.
func minScreenSize(size int) (w, h int) {
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	return boardW + 4, hudHeight + 1 + boardH + footerRows
}

// tileColor picks a color for a tile value.
func tileColor(value int) core.Color {
	switch value {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorOrange
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorBrightRed
	case 128:
		return core.ColorBrightYellow
	case 256:
		return core.ColorGreen
	case 512:
		return core.ColorBrightGreen
	case 1024:
		return core.ColorCyan
	case 2048:
		return core.ColorMagenta
	default:
		return core.ColorBlue
	}
}

// Render draws the current view into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.view.snap.Size
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY, size)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)

	dst.DrawTextCentered(boardY+boardH+1, g.Controls(), core.ColorGray)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)

	minW, minH := minScreenSize(g.sess.Options().Size)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH), core.ColorGray)
}

// renderHUD draws the title, score, best score and max tile.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	snap := g.view.snap

	dst.DrawTextCentered(0, "2 0 4 8", core.ColorBrightYellow)

	scoreStr := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawText(boardX, 1, scoreStr)
	if g.view.deltaTicks > 0 {
		dst.DrawTextColor(boardX+len(scoreStr)+1, 1, fmt.Sprintf("+%d", g.view.scoreDelta), core.ColorBrightGreen)
	}

	best := max(g.bestScore, snap.Score)
	bestStr := fmt.Sprintf("Best: %d", best)
	dst.DrawText(boardX+boardW-len(bestStr), 1, bestStr)

	info := fmt.Sprintf("Max: %d  Target: %d", snap.MaxTile(), snap.WinValue)
	dst.DrawTextColor(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY, size int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetCell(px, py, corner, core.ColorGray)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetCell(px+i, py, '─', core.ColorGray)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetCell(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws tiles according to the animation phase.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	v := g.view

	switch v.phase {
	case PhaseSlide:
		for _, t := range v.snap.Tiles {
			if staticTile(t) {
				drawTile(dst, boardX, boardY, float64(t.X), float64(t.Y), t.Value, false)
			}
		}
		for _, a := range v.slides {
			fx, fy := a.interpolatePosition()
			drawTile(dst, boardX, boardY, fx, fy, a.Value, false)
		}
	case PhasePop:
		for _, t := range v.snap.Tiles {
			drawTile(dst, boardX, boardY, float64(t.X), float64(t.Y), t.Value, t.IsNew || t.MergedFrom != nil)
		}
	default:
		for _, t := range v.snap.Tiles {
			drawTile(dst, boardX, boardY, float64(t.X), float64(t.Y), t.Value, false)
		}
	}
}

// drawTile draws a value centered in the cell at fractional cell coordinates.
// Popping tiles are wrapped in brackets.
func drawTile(dst *core.Screen, boardX, boardY int, fx, fy float64, value int, pop bool) {
	inner := cellWidth - 1
	text := strconv.Itoa(value)
	if pop && len(text)+2 <= inner {
		text = "[" + text + "]"
	}

	cellX := boardX + int(math.Round(fx*cellWidth)) + 1
	cellY := boardY + int(math.Round(fy*cellHeight)) + 1
	pad := max((inner-len(text))/2, 0)

	dst.DrawTextColor(cellX+pad, cellY, text, tileColor(value))
}

// renderOverlays draws pause and terminal-state messages.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		drawOverlay(dst, centerX, centerY, core.ColorDefault, "PAUSED", "Press P to resume")
		return
	}

	if g.view.message == "" || g.view.Animating() {
		return
	}

	color := core.ColorRed
	if g.view.snap.Won {
		color = core.ColorBrightYellow
	}
	drawOverlay(dst, centerX, centerY, color,
		g.view.message,
		fmt.Sprintf("Score: %d", g.view.snap.Score),
		"R: new game  B: menu")
}

// drawOverlay draws a boxed, centered block of text.
func drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move  P: Pause  R/Space: Restart  Q: Quit"
}
