// Package fallingsky implements the falling-block puzzle with bonus blocks:
// piece movement and rotation, line clears and cascades, bonus block
// placement and decay, and round-over accounting against the player's
// profile. It is pure simulation driven by Step and drawn by Render.
package fallingsky

import (
	"math/rand"

	"github.com/vovakirdan/fallingsky/internal/config"
	"github.com/vovakirdan/fallingsky/internal/core"
	"github.com/vovakirdan/fallingsky/internal/registry"
)

// Mode selects the rule set.
type Mode string

const (
	// ModeArcade places bonus blocks and raises their number after each win.
	ModeArcade Mode = "arcade"
	// ModeClassic has no bonus blocks.
	ModeClassic Mode = "classic"
)

// Package-level settings applied on Reset, set by the CLI before play.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the YAML config file used by new games.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by new games.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game is one player's session: a board, the active, held and queued
// pieces, the score keeper and the profile being played.
type Game struct {
	mode Mode

	cfg       config.FallingSkyConfig
	cfgLoaded bool
	cfgErr    error

	profile core.Profile
	rng     *rand.Rand
	dt      int
	tick    uint64

	board   *Board
	keeper  Keeper
	current *Piece
	held    *Piece
	queue   []*Piece
	swapped bool

	slamAvailable int
	swapAvailable int

	paused    bool
	gameOver  bool
	won       bool
	settled   bool
	lastScore int

	events []Event
}

// New creates an arcade mode game.
func New() *Game {
	return &Game{mode: ModeArcade}
}

// NewClassic creates a game without bonus blocks.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// NewWithConfig creates a game that skips config file loading.
func NewWithConfig(mode Mode, cfg config.FallingSkyConfig) *Game {
	return &Game{mode: mode, cfg: cfg, cfgLoaded: true}
}

func init() {
	registry.Register(string(ModeArcade), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeClassic), func() registry.Game {
		return NewClassic()
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Falling Sky (Classic)"
	}
	return "Falling Sky"
}

// ConfigError returns the error from loading the config file, if any. The
// game falls back to the defaults in that case.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Reset starts a new session from the runtime config and its profile.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgLoaded {
		loaded, err := config.LoadFallingSky(configPath)
		if err != nil {
			g.cfgErr = err
			loaded = config.DefaultFallingSkyConfig()
		}
		config.ApplyPreset(&loaded, difficultyPreset)
		g.cfg = loaded
		g.cfgLoaded = true
	}

	profile := cfg.Profile
	if profile.IsZero() {
		profile = core.DefaultProfile("")
	}
	g.profile = profile.Normalize()

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.dt = core.Max(1000/tickRate, 1)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0

	bonusRate := g.profile.BonusBlockRate
	if g.mode == ModeClassic {
		bonusRate = 0
	}

	g.keeper = Keeper{}
	g.keeper.Resume(g.profile.TotalScore, g.profile.BestScore)
	g.board = NewBoard(g.layout(cfg), g.cfg, g.rng, g.profile.FallRate, bonusRate)
	g.newRound()
}

// layout fits the profile's board into the terminal. Each block is two
// columns wide and one row high; the virtual resolution is scaled by the
// block size so coordinates stay in pixel units.
func (g *Game) layout(cfg core.RuntimeConfig) Geometry {
	bs := core.Min(g.profile.BlockSize, core.MaxBlockSize) * 4

	blocksWide := core.Max(cfg.ScreenW/2, 1)
	blocksHigh := core.Max(cfg.ScreenH, 1)

	width := core.Max(core.Min(g.profile.Width, blocksWide-10), core.MinBoardWidth)
	height := core.Max(core.Min(g.profile.Height, blocksHigh-3), core.MinBoardHeight)

	// A terminal too small for the minimum board is clipped when drawn.
	blocksWide = core.Max(blocksWide, width+10)
	blocksHigh = core.Max(blocksHigh, height+3)

	return NewGeometry(blocksWide*bs, blocksHigh*bs, bs, width, height)
}

// newRound resets the board and deals fresh pieces.
func (g *Game) newRound() {
	g.board.Reset()

	g.held = nil
	g.swapped = false
	g.current = g.spawnPiece(1)
	g.current.MakeActive(g.board)

	g.queue = g.queue[:0]
	for i := 1; i <= g.profile.Nexts; i++ {
		g.queue = append(g.queue, g.spawnPiece(i))
	}

	g.slamAvailable = g.cfg.Timing.SlamDelayMs
	g.swapAvailable = g.cfg.Timing.SwapDelayMs
	g.paused = false
	g.gameOver = false
	g.won = false
	g.settled = false
}

// spawnPiece draws and records a new shape in queue slot position.
func (g *Game) spawnPiece(position int) *Piece {
	s := NextShape(g.rng, &g.board.history, g.cfg.Generator)
	g.board.history.Record(s)
	return NewPiece(g.board, s, position)
}

// nextPiece takes the head of the queue, shifts the rest forward and refills
// the tail.
func (g *Game) nextPiece() *Piece {
	if len(g.queue) == 0 {
		return g.spawnPiece(1)
	}

	p := g.queue[0]
	copy(g.queue, g.queue[1:])
	g.queue = g.queue[:len(g.queue)-1]
	for _, q := range g.queue {
		q.MoveCloser(g.board)
	}
	g.queue = append(g.queue, g.spawnPiece(g.profile.Nexts))
	return p
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult

	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.newRound()
		}
		res.State = g.State()
		return res
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		res.State = g.State()
		return res
	}

	g.tick++
	g.slamAvailable -= g.dt
	g.swapAvailable -= g.dt

	consumed := false
	if in.Has(core.ActionHold) && g.swapAvailable < 0 && !g.swapped && g.current.Falling() {
		g.hold()
		consumed = true
	}
	if in.Has(core.ActionHardDrop) && g.slamAvailable < 0 && g.board.Active() && g.current.Falling() {
		g.current.Slam(g.board)
		consumed = true
	}

	if g.board.Active() {
		frame := in
		if consumed {
			frame = core.NewInputFrame()
		}
		g.current.Update(g.board, g.dt, frame)
	}

	if g.board.Active() && !g.current.Falling() {
		res.Locked = true
		res.Cleared = g.board.ClearFullLines(&g.keeper)

		g.current = g.nextPiece()
		g.current.MakeActive(g.board)
		g.swapped = false
		g.slamAvailable = g.cfg.Timing.SlamDelayMs
		g.swapAvailable = g.cfg.Timing.SwapDelayMs
	}

	g.collectEvents()

	if !g.board.Active() {
		g.endRound()
	}

	res.State = g.State()
	return res
}

// hold parks the active piece. The first hold of a round pulls the next
// queued piece; later holds swap with the held piece and lock out further
// swaps until the next piece lands.
func (g *Game) hold() {
	g.swapAvailable = g.cfg.Timing.SwapDelayMs

	prev := g.current
	prev.BecomeHeld(g.board)

	if g.held == nil {
		g.current = g.nextPiece()
	} else {
		g.current = g.held
		g.swapped = true
	}
	g.held = prev
	g.events = append(g.events, Event{Kind: EventHold})

	g.current.MakeActive(g.board)
}

// endRound settles the round and shows the game over screen.
func (g *Game) endRound() {
	g.settleRound()
	g.gameOver = true
}

// settleRound applies the win or loss to the profile and folds the score
// into the session totals. It runs at most once per round.
func (g *Game) settleRound() {
	if g.settled {
		return
	}
	g.settled = true

	score := g.keeper.Game.Value()
	rate := g.board.BonusRate()
	s := g.cfg.Scoring
	g.won = (rate > 0 && g.board.BonusCount() == 0) ||
		(rate == 0 && score > s.ClassicWinScore) ||
		score > s.WinScore

	if g.won {
		g.profile.Wins++
		if g.mode == ModeArcade {
			g.profile.BonusBlockRate++
			g.board.SetBonusRate(rate + 1)
		}
	} else {
		g.profile.Losses++
	}
	g.profile.TotalScore += score
	g.profile.BestScore = core.Max(g.profile.BestScore, score)

	g.lastScore = score
	g.keeper.GameOver()
	g.events = append(g.events, Event{Kind: EventGameOver, Score: score, Won: g.won, Lines: g.board.Lines()})
}

// Finish settles a round abandoned mid-game. It reports whether there was a
// round to settle.
func (g *Game) Finish() bool {
	if g.board == nil || g.gameOver || g.settled {
		return false
	}
	g.settleRound()
	g.gameOver = true
	return true
}

func (g *Game) collectEvents() {
	g.events = append(g.events, g.board.drainEvents()...)
}

// Events returns and clears the events since the last call.
func (g *Game) Events() []Event {
	g.collectEvents()
	out := g.events
	g.events = nil
	return out
}

// Profile returns the session's profile with completed rounds applied.
func (g *Game) Profile() core.Profile {
	return g.profile
}

// Board exposes the board for inspection.
func (g *Game) Board() *Board {
	return g.board
}

// Current returns the active piece.
func (g *Game) Current() *Piece {
	return g.current
}

// Held returns the held piece, or nil.
func (g *Game) Held() *Piece {
	return g.held
}

// Queue returns the next pieces, nearest first.
func (g *Game) Queue() []*Piece {
	return g.queue
}

// Keeper returns the score keeper.
func (g *Game) Keeper() Keeper {
	return g.keeper
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.keeper.Game.Value()
	if g.gameOver {
		score = g.lastScore
	}
	st := core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Won:      g.gameOver && g.won,
	}
	if g.board != nil {
		st.Lines = g.board.Lines()
		st.Level = g.board.Level()
	}
	return st
}
