package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fallingsky/internal/core"
	"github.com/vovakirdan/fallingsky/internal/games/fallingsky"
	"github.com/vovakirdan/fallingsky/internal/registry"
	"github.com/vovakirdan/fallingsky/internal/storage"
)

// eventSource is implemented by games that report simulation events.
type eventSource interface {
	Events() []fallingsky.Event
}

// GameModel runs one game session: it feeds held keys to the simulation each
// tick, logs its events and persists the score and profile when a round
// ends or the player leaves.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      *heldKeys
	keyMapper *KeyMapper
	gameState core.GameState
	loop      int64

	embedded   bool // Esc returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current round has been persisted
}

// NewGameModel creates a game model. The profile to play is taken from
// cfg.Profile.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger,
		config:    cfg,
		keys:      newHeldKeys(cfg.TickRate),
		keyMapper: NewKeyMapper(),
		loop:      newLoopID(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	if g, ok := m.game.(*fallingsky.Game); ok && g.ConfigError() != nil {
		m.logger.Warn("config not loaded, using defaults", "err", g.ConfigError())
	}
	m.logger.Info("game started", "mode", m.game.ID(), "player", m.config.Profile.Name, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board keeps the layout it was dealt; only the canvas changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.leave()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.keys.Press(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.keys.Frame())
	m.gameState = result.State
	m.logEvents()

	if wasOver && !m.gameState.GameOver {
		m.keys.Release()
		m.scoreSaved = false
		m.logger.Info("round restarted", "mode", m.game.ID())
	}
	if m.gameState.GameOver {
		m.persist()
	}

	return m, tickCmd(m.config.TickRate, m.loop)
}

func (m GameModel) logEvents() {
	src, ok := m.game.(eventSource)
	if !ok {
		return
	}
	for _, e := range src.Events() {
		switch e.Kind {
		case fallingsky.EventLinesCleared:
			m.logger.Debug("lines cleared", "lines", e.Lines, "points", e.Points, "score", e.Score)
		case fallingsky.EventLevelUp:
			m.logger.Info("level up", "level", e.Level)
		case fallingsky.EventBonusDecayed:
			m.logger.Debug("bonus block decayed", "at", e.At, "level", e.Level)
		case fallingsky.EventBonusCleared:
			m.logger.Debug("bonus block cleared", "at", e.At)
		case fallingsky.EventGameOver:
			m.logger.Info("round over", "score", e.Score, "lines", e.Lines, "won", e.Won)
		default:
			m.logger.Debug("event", "kind", e.Kind)
		}
	}
}

// leave settles a round the player abandons and persists it.
func (m *GameModel) leave() {
	if sess, ok := m.game.(registry.Session); ok && sess.Finish() {
		m.logEvents()
	}
	m.gameState = m.game.State()
	if m.gameState.GameOver {
		m.persist()
	}
}

// persist saves the finished round's score and the updated profile once.
func (m *GameModel) persist() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil {
		return
	}

	st := m.gameState
	player := m.config.Profile.Name
	if st.Score > 0 {
		id, err := m.store.SaveScore(storage.ScoreRecord{
			GameID: m.game.ID(),
			Player: player,
			Score:  st.Score,
			Lines:  st.Lines,
			Won:    st.Won,
		})
		if err != nil {
			m.logger.Error("could not save score", "err", err)
		} else {
			m.logger.Debug("score saved", "game", id, "score", st.Score)
		}
	}

	if sess, ok := m.game.(registry.Session); ok {
		if err := m.store.SaveProfile(sess.Profile()); err != nil {
			m.logger.Error("could not save profile", "player", player, "err", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".fallingsky", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Profile returns the session's profile with all finished rounds applied.
func (m GameModel) Profile() core.Profile {
	if sess, ok := m.game.(registry.Session); ok {
		return sess.Profile()
	}
	return m.config.Profile
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a game in the local terminal until the player quits and returns
// the updated profile.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (core.Profile, error) {
	model := NewGameModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(GameModel); ok {
		return m.Profile(), err
	}
	return cfg.Profile, err
}
