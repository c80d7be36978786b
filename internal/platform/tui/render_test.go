package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fallingsky/internal/core"
)

func TestCellStyle(t *testing.T) {
	st := cellStyle(cellLook{fg: core.ColorOrange, attr: core.AttrBold | core.AttrReverse})
	if !st.GetBold() || !st.GetReverse() {
		t.Errorf("bonus look: bold=%v reverse=%v, want both", st.GetBold(), st.GetReverse())
	}
	if st.GetForeground() != lipgloss.Color("208") {
		t.Errorf("foreground = %v, want 208", st.GetForeground())
	}

	st = cellStyle(cellLook{fg: core.ColorGray})
	if st.GetBold() || st.GetReverse() {
		t.Error("plain look should carry no attributes")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "level: 1")
	s.DrawTextColored(0, 1, "▓▓", core.ColorGray)
	s.DrawTextStyled(2, 1, "<4", core.ColorBrightBlue, core.AttrBold|core.AttrReverse)
	s.DrawTextColored(4, 1, "██", core.ColorCyan)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"level: 1", "▓▓", "<4", "██"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
