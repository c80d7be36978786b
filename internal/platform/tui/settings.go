package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fallingsky/internal/core"
	"github.com/vovakirdan/fallingsky/internal/storage"
)

// setting is one editable profile field.
type setting struct {
	label string
	get   func(p core.Profile) int
	set   func(p *core.Profile, v int)
	min   int
	max   int
	show  func(v int) string
}

const (
	maxBoardWidth  = 20
	maxBoardHeight = 40
)

var settings = []setting{
	{
		label: "Board width",
		get:   func(p core.Profile) int { return p.Width },
		set:   func(p *core.Profile, v int) { p.Width = v },
		min:   core.MinBoardWidth,
		max:   maxBoardWidth,
	},
	{
		label: "Board height",
		get:   func(p core.Profile) int { return p.Height },
		set:   func(p *core.Profile, v int) { p.Height = v },
		min:   core.MinBoardHeight,
		max:   maxBoardHeight,
	},
	{
		label: "Previews",
		get:   func(p core.Profile) int { return p.Nexts },
		set:   func(p *core.Profile, v int) { p.Nexts = v },
		min:   0,
		max:   core.MaxNexts,
	},
	{
		label: "Start level",
		get:   func(p core.Profile) int { return p.FallRate },
		set:   func(p *core.Profile, v int) { p.FallRate = v },
		min:   1,
		max:   core.MaxFallRate,
	},
	{
		label: "Spawn rates",
		get: func(p core.Profile) int {
			if p.ShowShapeSpawnRate {
				return 1
			}
			return 0
		},
		set:  func(p *core.Profile, v int) { p.ShowShapeSpawnRate = v == 1 },
		min:  0,
		max:  1,
		show: func(v int) string { return map[int]string{0: "hidden", 1: "shown"}[v] },
	},
}

// SettingsModel edits the player's board and speed settings.
type SettingsModel struct {
	store     *storage.Store
	profile   core.Profile
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	embedded  bool
	err       error
	saved     bool
	quitting  bool
	back      bool
}

// NewSettingsModel creates a settings editor for profile.
func NewSettingsModel(store *storage.Store, profile core.Profile, width, height int) SettingsModel {
	return SettingsModel{
		store:     store,
		profile:   profile.Normalize(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "a", "h", "-":
		m.adjust(-1)
		return m, nil
	case "right", "d", "l", "+":
		m.adjust(1)
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, m.exit()
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(settings)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if err := m.save(); err != nil {
			m.err = err
			return m, nil
		}
		m.saved = true
		m.back = true
		return m, m.exit()
	case MenuActionBack:
		m.back = true
		return m, m.exit()
	}
	return m, nil
}

func (m *SettingsModel) adjust(delta int) {
	s := settings[m.cursor]
	s.set(&m.profile, core.Clamp(s.get(m.profile)+delta, s.min, s.max))
	m.err = nil
}

func (m SettingsModel) save() error {
	if err := m.profile.Validate(); err != nil {
		return err
	}
	if m.store == nil {
		return nil
	}
	return m.store.SaveProfile(m.profile)
}

func (m SettingsModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View renders the settings.
func (m SettingsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S E T T I N G S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("Changes apply from the next game"), m.width))
	b.WriteString("\n\n")

	for i, s := range settings {
		v := s.get(m.profile)
		value := fmt.Sprintf("%d", v)
		if s.show != nil {
			value = s.show(v)
		}
		line := fmt.Sprintf("  %-14s < %6s >", s.label, value)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %-14s < %6s >", s.label, value))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(centerText(menuWarnStyle.Render(m.err.Error()), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(menuDimStyle.Render("Left/Right: Change  |  Enter: Save  |  Esc: Cancel"), m.width))

	return b.String()
}

// Profile returns the profile as edited.
func (m SettingsModel) Profile() core.Profile {
	return m.profile
}

// Saved reports whether the edits were saved.
func (m SettingsModel) Saved() bool {
	return m.saved
}

// IsGoingBack returns true if the user left the settings screen.
func (m SettingsModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

// RunSettings runs the settings editor and returns the profile to play
// with from now on. goBack is false when the user quit entirely.
func RunSettings(store *storage.Store, profile core.Profile, width, height int) (core.Profile, bool, error) {
	p := tea.NewProgram(
		NewSettingsModel(store, profile, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return profile, false, err
	}
	m, ok := final.(SettingsModel)
	if !ok {
		return profile, false, nil
	}
	if m.Saved() {
		profile = m.Profile()
	}
	return profile, m.IsGoingBack(), nil
}
