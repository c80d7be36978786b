// Package tui provides the Bubble Tea front end: the game loop, menus,
// scoreboard and profile screens, and the SSH server that serves them.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// game model that scheduled it, so a tick left over from a finished game is
// not delivered to the next one.
type TickMsg struct {
	At   time.Time
	Loop int64
}

var loopIDs atomic.Int64

// newLoopID returns a fresh tick loop identifier.
func newLoopID() int64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
