package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fallingsky/internal/core"
)

// GameKeyMap holds the in-game key bindings. The same bindings drive input
// mapping and the controls help screen.
type GameKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	SoftDrop key.Binding
	RotateCW key.Binding
	RotateCC key.Binding
	Hold     key.Binding
	HardDrop key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Quit     key.Binding
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "move right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "soft drop"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("up", "w", "e"),
			key.WithHelp("↑/w/e", "rotate clockwise"),
		),
		RotateCC: key.NewBinding(
			key.WithKeys("q", "z"),
			key.WithHelp("q/z", "rotate counter-clockwise"),
		),
		Hold: key.NewBinding(
			key.WithKeys("x", "c", "h"),
			key.WithHelp("x/c/h", "hold"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "slam"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "leave game"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.HardDrop, k.Hold, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateCW, k.RotateCC, k.Hold},
		{k.Pause, k.Restart, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys     GameKeyMap
	bindings []actionBinding
}

type actionBinding struct {
	binding *key.Binding
	action  core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{keys: DefaultGameKeyMap()}
	k := &km.keys
	km.bindings = []actionBinding{
		{&k.Left, core.ActionLeft},
		{&k.Right, core.ActionRight},
		{&k.SoftDrop, core.ActionSoftDrop},
		{&k.RotateCW, core.ActionRotateCW},
		{&k.RotateCC, core.ActionRotateCCW},
		{&k.Hold, core.ActionHold},
		{&k.HardDrop, core.ActionHardDrop},
		{&k.Pause, core.ActionPause},
		{&k.Restart, core.ActionRestart},
	}
	return km
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.keys.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.bindings {
		if key.Matches(msg, *b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}

// holdWindowMs is how long a movement key counts as held after its last key
// event. It is shorter than the piece's repeat timers, so a single tap moves
// once while terminal auto-repeat keeps a held key held.
const holdWindowMs = 90

// heldKeys turns discrete terminal key events into held actions. Terminals
// report a press and then auto-repeat, never a release.
type heldKeys struct {
	ttl   int
	ticks map[core.Action]int
	// pauseQuiet counts down the ticks in which another pause event is
	// auto-repeat and must not toggle again.
	pauseQuiet int
}

func newHeldKeys(tickRate int) *heldKeys {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &heldKeys{
		ttl:   core.Max(tickRate*holdWindowMs/1000, 1),
		ticks: make(map[core.Action]int),
	}
}

// repeatable reports whether an action is held rather than fired once.
func repeatable(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionSoftDrop, core.ActionRotateCW, core.ActionRotateCCW:
		return true
	}
	return false
}

// Press records a key event for a. Non-repeatable actions last one tick.
// Pause events closer together than the hold window are one held key.
func (h *heldKeys) Press(a core.Action) {
	if a == core.ActionPause {
		repeat := h.pauseQuiet > 0
		h.pauseQuiet = h.ttl
		if repeat {
			return
		}
	}
	if repeatable(a) {
		h.ticks[a] = h.ttl
		return
	}
	h.ticks[a] = 1
}

// Frame returns the actions held this tick and ages them.
func (h *heldKeys) Frame() core.InputFrame {
	if h.pauseQuiet > 0 {
		h.pauseQuiet--
	}
	frame := core.NewInputFrame()
	for a, n := range h.ticks {
		frame.Set(a)
		if n <= 1 {
			delete(h.ticks, a)
		} else {
			h.ticks[a] = n - 1
		}
	}
	return frame
}

// Release drops everything, e.g. when a round restarts.
func (h *heldKeys) Release() {
	clear(h.ticks)
	h.pauseQuiet = 0
}
