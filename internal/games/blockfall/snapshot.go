package blockfall

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying GameStateType = "playing"
	StatePaused  GameStateType = "paused"
	StateDead    GameStateType = "dead"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Steps     int
	Pieces    int
	Score     uint
	X         int
	Y         int
	Piece     string
	Next      string
	Generator uint32
	Filled    int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.state.IsDead():
		state = StateDead
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		Steps:     len(g.inputs),
		Pieces:    g.pieces,
		Score:     g.state.Score,
		X:         g.state.Position.X,
		Y:         g.state.Position.Y,
		Piece:     g.state.Block.String(),
		Next:      g.state.Next().String(),
		Generator: g.state.Generator.Value(),
		Filled:    g.state.World.FilledCount(),
		State:     state,
	}
}
