package core

// World and layout dimensions.
const (
	WorldWidth      = 10
	WorldHeight     = 20
	DeathZoneHeight = 2  // Rows at the top of the playfield drawn as the danger band
	PanelWidth      = 10 // Columns right of the playfield used for the next-piece panel
)

// StandardDelay is the number of stalled gravity steps tolerated before a
// resting piece is placed automatically, when lock delay is enabled.
const StandardDelay = 1

// PlayerState is the life state of the player.
type PlayerState uint8

const (
	Alive PlayerState = iota
	Dead
)

// String returns a human-readable name for the player state.
func (ps PlayerState) String() string {
	switch ps {
	case Alive:
		return "Alive"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Input is the single discrete command consumed by one step.
type Input uint8

const (
	InputOther Input = iota // Gravity only
	InputLeft
	InputRight
	InputRRot // Rotate clockwise
	InputLRot // Rotate counter-clockwise
	InputUp   // Hard drop
)

// Inputs lists every input value.
var Inputs = []Input{InputOther, InputLeft, InputRight, InputRRot, InputLRot, InputUp}

// String returns a human-readable name for the input.
func (in Input) String() string {
	switch in {
	case InputOther:
		return "Other"
	case InputLeft:
		return "Left"
	case InputRight:
		return "Right"
	case InputRRot:
		return "RRot"
	case InputLRot:
		return "LRot"
	case InputUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// Rune returns the one-character script encoding of the input.
func (in Input) Rune() rune {
	switch in {
	case InputLeft:
		return 'L'
	case InputRight:
		return 'R'
	case InputRRot:
		return 'C'
	case InputLRot:
		return 'A'
	case InputUp:
		return 'U'
	default:
		return '.'
	}
}

// InputFromRune decodes a script character produced by Input.Rune.
func InputFromRune(r rune) (Input, bool) {
	for _, in := range Inputs {
		if in.Rune() == r {
			return in, true
		}
	}
	return InputOther, false
}

// Rules selects optional mechanics. The zero value is the classic ruleset:
// no death check on spawn, no automatic placement, no line clears.
type Rules struct {
	// DeathOnBlockedSpawn kills the player when a spawned piece collides.
	DeathOnBlockedSpawn bool
	// LockDelay places a resting piece after more than LockDelay stalled
	// gravity steps. Zero disables automatic placement.
	LockDelay int
	// ClearLines removes full rows after placement and scores them.
	ClearLines bool
}

// DefaultRules returns the classic ruleset.
func DefaultRules() Rules {
	return Rules{}
}

// ArcadeRules returns the ruleset with every optional mechanic enabled.
func ArcadeRules() Rules {
	return Rules{
		DeathOnBlockedSpawn: true,
		LockDelay:           StandardDelay,
		ClearLines:          true,
	}
}

// lineScores is the score awarded for clearing 0..4 rows at once.
var lineScores = [...]uint{0, 100, 300, 500, 800}

// State is a complete game state. It is an immutable value: Step returns a
// new State and older states remain valid for inspection or replay.
type State struct {
	Player    PlayerState
	Score     uint
	Delay     int // Consecutive stalled gravity steps, used by lock delay
	Position  Position
	Block     Piece
	World     Grid
	Generator Generator
	Rules     Rules
}

// InitialState returns the starting state under the classic rules.
func InitialState() State {
	return NewState(DefaultRules(), InitialSeed)
}

// NewState returns a starting state with an empty world and the first piece
// spawned from a generator seeded with seed.
func NewState(rules Rules, seed uint32) State {
	gen := NewGenerator(seed)
	s := State{
		Player:    Alive,
		Block:     gen.Current(),
		World:     EmptyGrid(WorldWidth, WorldHeight),
		Generator: gen,
		Rules:     rules,
	}
	return s.spawn()
}

// Next returns the piece that will spawn after the active one is placed.
func (s State) Next() Piece {
	return s.Generator.Next()
}

// IsDead reports whether the game has ended.
func (s State) IsDead() bool {
	return s.Player == Dead
}

// Colliding reports whether the active piece overlaps the world.
func (s State) Colliding() bool {
	return IsColliding(s.Position, s.Block.Cells(), s.World)
}

// Equal reports structural equality of two states.
func (s State) Equal(other State) bool {
	return s.Player == other.Player &&
		s.Score == other.Score &&
		s.Delay == other.Delay &&
		s.Position == other.Position &&
		s.Block == other.Block &&
		s.Generator == other.Generator &&
		s.Rules == other.Rules &&
		s.World.Equal(other.World)
}

// Step consumes one input and returns the following state.
//
// Up hard-drops and places the piece. Every other input first attempts its
// move or rotation, then gravity is applied once. Dead states never change.
func Step(input Input, s State) State {
	if s.Player == Dead {
		return s
	}
	if input == InputUp {
		return Place(HardDrop(s))
	}
	next, moved := Move(input, s)
	return applyGravity(next, moved)
}

// Move applies a translation or rotation to the active piece without
// gravity. A colliding result is rejected and s is returned unchanged.
func Move(input Input, s State) (State, bool) {
	next := s
	switch input {
	case InputLeft:
		next.Position = s.Position.Add(Left)
	case InputRight:
		next.Position = s.Position.Add(Right)
	case InputRRot:
		next.Block = s.Block.RotateCW()
	case InputLRot:
		next.Block = s.Block.RotateCCW()
	default:
		return s, false
	}
	if next.Colliding() {
		return s, false
	}
	return next, true
}

// fall moves the piece down one row if that does not collide.
func (s State) fall() (State, bool) {
	next := s
	next.Position = s.Position.Add(Down)
	if next.Colliding() {
		return s, false
	}
	return next, true
}

func applyGravity(s State, moved bool) State {
	if fallen, ok := s.fall(); ok {
		fallen.Delay = 0
		return fallen
	}
	if s.Rules.LockDelay <= 0 {
		return s
	}
	if moved {
		s.Delay = 0
		return s
	}
	s.Delay++
	if s.Delay > s.Rules.LockDelay {
		return Place(s)
	}
	return s
}

// HardDrop moves the piece down until one more row would collide.
// It does not place the piece.
func HardDrop(s State) State {
	for s.Position.Y <= s.World.Height() {
		next, ok := s.fall()
		if !ok {
			break
		}
		s = next
	}
	return s
}

// Place merges the active piece into the world at its current position,
// clears rows when enabled, and spawns the next piece.
func Place(s State) State {
	world := s.World.Draw(s.Position, s.Block.Cells())
	if s.Rules.ClearLines {
		var cleared int
		world, cleared = ClearFullRows(world)
		s.Score += lineScores[min(cleared, len(lineScores)-1)]
	}
	s.World = world
	return s.spawn()
}

// spawn advances the generator and places its piece at the spawn position.
func (s State) spawn() State {
	s.Generator = s.Generator.Advance()
	s.Block = s.Generator.Current()
	s.Position = SpawnPosition(s.World, s.Block)
	s.Delay = 0
	if s.Rules.DeathOnBlockedSpawn && s.Colliding() {
		s.Player = Dead
	}
	return s
}
