package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fallingsky/internal/core"
	"github.com/vovakirdan/fallingsky/internal/registry"
	"github.com/vovakirdan/fallingsky/internal/storage"
)

// MenuChoice is what the player picked from the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceProfile
	ChoiceSettings
	ChoiceControls
	ChoiceResetScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
	GameID string // Set for ChoicePlay
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
	menuDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	menuWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	embedded  bool // Selecting does not quit the program

	quitting     bool
	confirmReset bool
	status       string
	selected     *MenuItem
}

// modeLabel turns a mode ID into a menu label, e.g. "arcade" into
// "Arcade Mode".
func modeLabel(id string) string {
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:] + " Mode"
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+5)
	for _, g := range games {
		items = append(items, MenuItem{
			Title:  modeLabel(g.ID),
			Choice: ChoicePlay,
			GameID: g.ID,
		})
	}
	items = append(items,
		MenuItem{Title: "Scores", Choice: ChoiceScores},
		MenuItem{Title: "Profile", Choice: ChoiceProfile},
		MenuItem{Title: "Settings", Choice: ChoiceSettings},
		MenuItem{Title: "Controls", Choice: ChoiceControls},
		MenuItem{Title: "Reset Scores", Choice: ChoiceResetScores},
		MenuItem{Title: "Quit", Choice: ChoiceQuit},
	)

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, m.exit()

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
		m.confirmReset = false

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		m.confirmReset = false

	case MenuActionBack:
		m.confirmReset = false
		m.status = ""

	case MenuActionSelect:
		return m.choose(m.items[m.cursor])
	}

	return m, nil
}

func (m MenuModel) choose(item MenuItem) (tea.Model, tea.Cmd) {
	switch item.Choice {
	case ChoiceQuit:
		m.quitting = true
		return m, m.exit()

	case ChoiceResetScores:
		if !m.confirmReset {
			m.confirmReset = true
			m.status = "Press Enter again to delete every score and profile"
			return m, nil
		}
		m.confirmReset = false
		m.status = m.resetScores()
		return m, nil
	}

	m.selected = &item
	return m, m.exit()
}

// exit leaves a standalone menu program; an embedded menu is polled instead.
func (m MenuModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// resetScores clears the scores of every mode and every player's profile,
// then starts the current player over from defaults.
func (m *MenuModel) resetScores() string {
	if m.store == nil {
		return "No score database"
	}
	for _, g := range registry.List() {
		if err := m.store.ClearScores(g.ID); err != nil {
			return fmt.Sprintf("Could not reset scores: %v", err)
		}
	}
	if err := m.store.ResetProfiles(); err != nil {
		return fmt.Sprintf("Could not reset profiles: %v", err)
	}
	m.config.Profile = core.DefaultProfile(m.config.Profile.Name)
	return "Scores cleared"
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("T H E   F A L L I N G   S K Y"), m.width))
	b.WriteString("\n\n")

	player := m.config.Profile.Name
	if player == "" {
		player = storage.DefaultPlayer
	}
	b.WriteString(centerText(menuDimStyle.Render("Playing as "+player), m.width))
	b.WriteString("\n")
	if p := m.config.Profile; p.Wins > 0 || p.Losses > 0 {
		b.WriteString(centerText(menuDimStyle.Render(fmt.Sprintf("wins: %d losses: %d", p.Wins, p.Losses)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(menuWarnStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured by
// its printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	GameID string
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	if m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Choice: ChoiceQuit, Config: m.Config()}, nil
	}

	return MenuResult{
		Choice: m.Selected().Choice,
		GameID: m.Selected().GameID,
		Config: m.Config(),
	}, nil
}
