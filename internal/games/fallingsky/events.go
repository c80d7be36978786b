package fallingsky

import "fmt"

// EventKind identifies a notable simulation event.
type EventKind int

const (
	EventLinesCleared EventKind = iota
	EventLevelUp
	EventBonusDecayed
	EventBonusCleared
	EventHold
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventLinesCleared:
		return "lines_cleared"
	case EventLevelUp:
		return "level_up"
	case EventBonusDecayed:
		return "bonus_decayed"
	case EventBonusCleared:
		return "bonus_cleared"
	case EventHold:
		return "hold"
	case EventGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted by the simulation for the platform to log or display.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Lines  int
	Points int
	Score  int
	Level  int
	At     Coord
	Won    bool
}
