package fallingsky

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
	StateWin      GameStateType = "win"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick        uint64
	Mode        string
	Score       int
	Total       int
	Best        int
	Lines       int
	Level       int
	Current     string
	CurrentAt   [4]Coord
	Held        string
	Queue       []string
	Blocks      int
	BonusBlocks int
	BonusPoints int
	History     History
	State       GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver && g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:  g.tick,
		Mode:  string(g.mode),
		Score: g.State().Score,
		Total: g.keeper.Total,
		Best:  g.keeper.Best,
		State: state,
	}
	if g.board != nil {
		snap.Lines = g.board.Lines()
		snap.Level = g.board.Level()
		snap.Blocks = g.board.cells.Len()
		snap.BonusBlocks = g.board.BonusCount()
		snap.BonusPoints = g.board.BonusPoints()
		snap.History = g.board.History()
	}
	if g.current != nil {
		snap.Current = g.current.Shape().String()
		snap.CurrentAt = g.current.Cells()
	}
	if g.held != nil {
		snap.Held = g.held.Shape().String()
	}
	for _, p := range g.queue {
		snap.Queue = append(snap.Queue, p.Shape().String())
	}
	return snap
}
