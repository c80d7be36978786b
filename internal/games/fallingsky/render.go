package fallingsky

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/fallingsky/internal/core"
)

var blockColors = map[BlockType]core.Color{
	BlockI:      core.ColorCyan,
	BlockJ:      core.ColorMagenta,
	BlockL:      core.ColorRed,
	BlockO:      core.ColorOrange,
	BlockS:      core.ColorGreen,
	BlockT:      core.ColorBrightMagenta,
	BlockZ:      core.ColorYellow,
	BlockWall:   core.ColorGray,
	BlockShadow: core.ColorGray,
	BlockBonus1: core.ColorBrightYellow,
	BlockBonus2: core.ColorBrightGreen,
	BlockBonus3: core.ColorOrange,
	BlockBonus4: core.ColorBrightBlue,
	BlockBonus5: core.ColorBrightMagenta,
}

// glyph returns the two terminal cells drawn for a block.
func glyph(t BlockType, bonus int) string {
	switch {
	case t == BlockWall:
		return "▓▓"
	case t == BlockShadow:
		return "░░"
	case t.IsBonus():
		return fmt.Sprintf("<%d", bonus)
	default:
		return "██"
	}
}

// Render draws the board, pieces, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	if g.board == nil {
		return
	}
	geo := g.board.Geometry()

	for _, c := range g.board.Walls().Visible {
		g.drawCell(dst, geo, c, BlockWall, 0)
	}
	for _, blk := range g.board.Blocks() {
		if blk.Visible {
			g.drawCell(dst, geo, blk.Loc, blk.Type, blk.Bonus)
		}
	}

	if g.current != nil && g.current.Falling() {
		for i, c := range g.current.Shadow() {
			if g.current.ShadowVisible(i) {
				g.drawCell(dst, geo, c, BlockShadow, 0)
			}
		}
	}
	if g.current != nil && (g.current.Falling() || !g.board.Active()) {
		g.drawPiece(dst, geo, g.current)
	}
	for _, p := range g.queue {
		g.drawPiece(dst, geo, p)
	}
	if g.held != nil {
		g.drawPiece(dst, geo, g.held)
	}

	g.renderLabels(dst, geo)
	g.renderHUD(dst)

	if g.paused {
		renderBanner(dst, []string{"PAUSED", "", "P to resume"})
	} else if g.gameOver {
		g.renderGameOver(dst)
	}
}

func (g *Game) drawCell(dst *core.Screen, geo Geometry, c Coord, t BlockType, bonus int) {
	col := (c.X / geo.BlockSize) * 2
	row := c.Y / geo.BlockSize
	var attr core.Attr
	if t.IsBonus() {
		attr = core.AttrBold | core.AttrReverse
	}
	dst.DrawTextStyled(col, row, glyph(t, bonus), blockColors[t], attr)
}

func (g *Game) drawPiece(dst *core.Screen, geo Geometry, p *Piece) {
	for _, c := range p.Cells() {
		g.drawCell(dst, geo, c, p.Shape().BlockType(), 0)
	}
}

func (g *Game) renderLabels(dst *core.Screen, geo Geometry) {
	shift := geo.Width/2 + 4
	centre := geo.CentrePx / geo.BlockSize
	row := geo.VerticalOffset/geo.BlockSize - 1

	if g.profile.Nexts > 0 {
		dst.DrawTextColored((centre+shift-2)*2, row, "NEXT", core.ColorGray)
	}
	dst.DrawTextColored((centre-shift-2)*2, row, "HOLD", core.ColorGray)
}

// hudLines returns the stats column, mirroring what a player needs at a
// glance.
func (g *Game) hudLines() []string {
	lines := []string{fmt.Sprintf("level: %d", g.board.Level())}
	if n := g.board.LinesUntilNextLevel(); n > 0 {
		lines = append(lines, fmt.Sprintf("next: %d", n))
	}
	lines = append(lines,
		fmt.Sprintf("lines: %s", humanize.Comma(int64(g.board.Lines()))),
		fmt.Sprintf("game: %s", humanize.Comma(int64(g.State().Score))),
	)

	if g.keeper.Total > 0 {
		lines = append(lines, fmt.Sprintf("total: %s", humanize.Comma(int64(g.keeper.Total))))
	}
	if g.keeper.Best != g.keeper.Total {
		lines = append(lines, fmt.Sprintf("best: %s", humanize.Comma(int64(g.keeper.Best))))
	}

	switch {
	case g.board.BonusCount() > 0:
		lines = append(lines, fmt.Sprintf("bonus: %s", humanize.Comma(int64(g.board.BonusPoints()))))
	case g.board.BonusRate() > 0:
		lines = append(lines, fmt.Sprintf("%d complete!", g.board.BonusRate()))
	case g.keeper.Game.Value() > g.cfg.Scoring.WinScore:
		lines = append(lines, "!")
	}

	if g.profile.ShowShapeSpawnRate {
		h := g.board.History()
		lines = append(lines, "")
		for _, s := range AllShapes() {
			lines = append(lines, fmt.Sprintf("%s: %5.2f%%", s.Title(), h.Rate(s)*100))
		}
	}
	return lines
}

func (g *Game) renderHUD(dst *core.Screen) {
	for i, line := range g.hudLines() {
		dst.DrawText(1, 1+i, line)
	}
	if g.profile.Name != "" {
		dst.DrawTextColored(1, dst.Height()-2, g.profile.Name, core.ColorGray)
	}
	dst.DrawTextColored(1, dst.Height()-1, "The Tragedy of the Falling Sky", core.ColorGray)
}

func (g *Game) renderGameOver(dst *core.Screen) {
	title := "GAME OVER"
	if g.won {
		title = "YOU WIN!"
	}
	renderBanner(dst, []string{
		title,
		"",
		"Score: " + humanize.Comma(int64(g.lastScore)),
		fmt.Sprintf("Wins: %d  Losses: %d", g.profile.Wins, g.profile.Losses),
		"",
		"R to play again, Esc to quit",
	})
}

// renderBanner draws a boxed, centred message.
func renderBanner(dst *core.Screen, lines []string) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2

	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	box := core.NewRect(x, y, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		lx := x + (w-len([]rune(l)))/2
		dst.DrawText(lx, y+1+i, l)
	}
}
