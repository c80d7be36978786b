package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/fallingsky/internal/core"
	"github.com/vovakirdan/fallingsky/internal/registry"
	"github.com/vovakirdan/fallingsky/internal/storage"
)

// InfoPage selects what the info screen shows.
type InfoPage int

const (
	PageProfile InfoPage = iota
	PageControls
)

// infoKeyMap holds the info screen's own bindings.
type infoKeyMap struct {
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k infoKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Back, k.Quit}
}

func (k infoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	infoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
	infoLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(16)
	infoValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))
)

// InfoModel shows the player's profile and career stats, or the controls.
type InfoModel struct {
	page      InfoPage
	profile   core.Profile
	stats     map[string]*storage.GameStats
	recent    []storage.ScoreEntry
	loadErr   error
	gameKeys  GameKeyMap
	keys      infoKeyMap
	help      help.Model
	width     int
	height    int
	embedded  bool
	quitting  bool
	goingBack bool
}

// NewInfoModel creates the info screen for a profile.
func NewInfoModel(store *storage.Store, profile core.Profile, page InfoPage, width, height int) InfoModel {
	h := help.New()
	h.ShowAll = true

	m := InfoModel{
		page:     page,
		profile:  profile,
		gameKeys: DefaultGameKeyMap(),
		keys: infoKeyMap{
			Switch: key.NewBinding(
				key.WithKeys("tab"),
				key.WithHelp("tab", "profile/controls"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc", "b"),
				key.WithHelp("esc/b", "back"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		help:   h,
		width:  width,
		height: height,
	}

	if store != nil {
		m.stats, m.loadErr = store.GetAllGamesStats()
		if m.loadErr == nil {
			m.recent, m.loadErr = store.PlayerScores(profile.Name, 5)
		}
	}
	return m
}

// Init initializes the info screen.
func (m InfoModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the info screen.
func (m InfoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, m.exit()
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, m.exit()
		case key.Matches(msg, m.keys.Switch):
			if m.page == PageProfile {
				m.page = PageControls
			} else {
				m.page = PageProfile
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m InfoModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View renders the current page.
func (m InfoModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var body, title string
	if m.page == PageControls {
		title = "CONTROLS"
		body = m.controlsView()
	} else {
		title = "PROFILE - " + m.profile.Name
		body = m.profileView()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	for _, line := range strings.Split(infoBoxStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}

func infoRow(label, value string) string {
	return infoLabelStyle.Render(label) + infoValueStyle.Render(value)
}

func (m InfoModel) profileView() string {
	p := m.profile
	rows := []string{
		infoRow("Wins", fmt.Sprintf("%d", p.Wins)),
		infoRow("Losses", fmt.Sprintf("%d", p.Losses)),
		infoRow("Best score", humanize.Comma(int64(p.BestScore))),
		infoRow("Total score", humanize.Comma(int64(p.TotalScore))),
		infoRow("Bonus blocks", fmt.Sprintf("%d", p.BonusBlockRate)),
		infoRow("Board", fmt.Sprintf("%dx%d", p.Width, p.Height)),
		infoRow("Previews", fmt.Sprintf("%d", p.Nexts)),
		infoRow("Start level", fmt.Sprintf("%d", p.FallRate)),
		"",
	}

	if m.loadErr != nil {
		rows = append(rows, menuWarnStyle.Render("Could not load stats: "+m.loadErr.Error()))
		return strings.Join(rows, "\n")
	}

	for _, g := range registry.List() {
		st, ok := m.stats[g.ID]
		if !ok {
			rows = append(rows, infoRow(modeLabel(g.ID), "not played"))
			continue
		}
		rows = append(rows, infoRow(modeLabel(g.ID), fmt.Sprintf("%d games, %d won, high %s, avg %s",
			st.GamesCount, st.Wins, humanize.Comma(int64(st.HighScore)), humanize.Comma(int64(st.AvgScore)))))
	}

	if len(m.recent) > 0 {
		rows = append(rows, "", menuDimStyle.Render("Recent games"))
		for _, e := range m.recent {
			result := "lost"
			if e.Won {
				result = "won"
			}
			rows = append(rows, infoRow(e.CreatedAt.Format("Jan 02 15:04"),
				fmt.Sprintf("%-8s %10s  %s", e.GameID, humanize.Comma(int64(e.Score)), result)))
		}
	}
	return strings.Join(rows, "\n")
}

func (m InfoModel) controlsView() string {
	h := m.help
	h.ShowAll = true
	rules := []string{
		"",
		menuDimStyle.Render("Clear lines to score; several at once score more."),
		menuDimStyle.Render("Arcade: clear every bonus block to win a round."),
		menuDimStyle.Render("Classic: pass the winning score."),
	}
	return h.FullHelpView(m.gameKeys.FullHelp()) + "\n" + strings.Join(rules, "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m InfoModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m InfoModel) IsQuitting() bool {
	return m.quitting
}

// RunInfo runs the info screen. Returns true if the user wants to go back
// to the menu.
func RunInfo(store *storage.Store, profile core.Profile, page InfoPage, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewInfoModel(store, profile, page, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(InfoModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
