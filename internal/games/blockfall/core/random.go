package core

// InitialSeed seeds the block generator of a new game.
const InitialSeed uint32 = 12345

// Numerical Recipes LCG constants.
const (
	lcgMultiplier uint32 = 1664525
	lcgIncrement  uint32 = 1013904223
)

// Generator is a deterministic linear congruential stream of pieces.
//
// It is a plain value: Advance returns the following generator and never
// changes the receiver, so copies can be kept and replayed freely.
type Generator struct {
	state uint32
}

// NewGenerator creates a generator positioned at seed.
func NewGenerator(seed uint32) Generator {
	return Generator{state: seed}
}

// Value returns the raw value at the current position.
func (g Generator) Value() uint32 {
	return g.state
}

// Advance returns the generator one position further along the stream.
func (g Generator) Advance() Generator {
	return Generator{state: g.state*lcgMultiplier + lcgIncrement}
}

// Current maps the current value to a spawn piece.
// The high half is used since the low bits of an LCG have short periods.
func (g Generator) Current() Piece {
	return SpawnPieces[(g.state>>16)%uint32(len(SpawnPieces))]
}

// Next returns the piece one position ahead without advancing.
func (g Generator) Next() Piece {
	return g.Advance().Current()
}

// take returns the next n pieces starting at the current position.
func (g Generator) take(n int) []Piece {
	pieces := make([]Piece, 0, max(n, 0))
	for range n {
		pieces = append(pieces, g.Current())
		g = g.Advance()
	}
	return pieces
}
