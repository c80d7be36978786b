package fallingsky

// GameScore is the running score of one game. The last increment can be
// multiplied after the fact by bonus blocks exploding in the same clear.
type GameScore struct {
	base       int
	lastAdded  int
	multiplier int
}

// Value returns base + last increment times the multiplier (1 when no
// multiplier has been applied).
func (s GameScore) Value() int {
	m := s.multiplier
	if m == 0 {
		m = 1
	}
	return s.base + s.lastAdded*m
}

// Add bakes the current value and starts a new increment with no
// multiplier.
func (s *GameScore) Add(points int) {
	s.base = s.Value()
	s.lastAdded = points
	s.multiplier = 0
}

// MultiplyLast adds m to the multiplier of the last increment.
func (s *GameScore) MultiplyLast(m int) {
	s.multiplier += m
}

// LastAdded returns the most recent increment before multipliers.
func (s GameScore) LastAdded() int {
	return s.lastAdded
}

// Multiplier returns the accumulated multiplier, 0 when none was applied.
func (s GameScore) Multiplier() int {
	return s.multiplier
}

// Keeper tracks the current game plus the session total and best game.
type Keeper struct {
	Game  GameScore
	Total int
	Best  int
}

// GameOver folds the game score into total and best and starts a new game.
func (k *Keeper) GameOver() {
	v := k.Game.Value()
	k.Total += v
	if v > k.Best {
		k.Best = v
	}
	k.Game = GameScore{}
}

// Resume seeds total and best from a saved profile.
func (k *Keeper) Resume(total, best int) {
	k.Total = total
	k.Best = best
}
