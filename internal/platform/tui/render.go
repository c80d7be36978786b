package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fallingsky/internal/core"
)

// palette maps core.Color to terminal colors. ColorDefault is absent and
// keeps the terminal's own foreground.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// cellLook is what a run of cells shares.
type cellLook struct {
	fg   core.Color
	attr core.Attr
}

// cellStyle builds the lipgloss style for a look. Bonus blocks use bold
// reverse video so their level digit sits on a solid tile of their color.
func cellStyle(l cellLook) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := palette[l.fg]; ok {
		st = st.Foreground(c)
	}
	if l.attr.Has(core.AttrBold) {
		st = st.Bold(true)
	}
	if l.attr.Has(core.AttrReverse) {
		st = st.Reverse(true)
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same look share one styled run.
func RenderScreen(s *core.Screen) string {
	styles := make(map[cellLook]lipgloss.Style)
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)
			look := cellLook{fg: first.Fg, attr: first.Attr}

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Fg != look.fg || cell.Attr != look.attr {
					break
				}
				run.WriteRune(cell.Ch)
			}

			if look == (cellLook{}) {
				sb.WriteString(run.String())
				continue
			}
			st, ok := styles[look]
			if !ok {
				st = cellStyle(look)
				styles[look] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}
