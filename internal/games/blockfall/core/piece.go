package core

import (
	"fmt"

	platform "github.com/vovakirdan/blockfall/internal/core"
)

// Kind identifies one of the seven tetromino families.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	kindCount
)

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// Piece is one rotation state of a tetromino, identified by its catalog index.
type Piece uint8

type pieceDef struct {
	kind     Kind
	rotation int
	cells    Grid
	cw       Piece
	ccw      Piece
}

// pieceGlyph is the glyph used for every block of every piece.
const pieceGlyph = '#'

var baseShapes = [kindCount]struct {
	color platform.Color
	rows  []string
}{
	KindI: {platform.ColorCyan, []string{"####"}},
	KindO: {platform.ColorYellow, []string{"##", "##"}},
	KindT: {platform.ColorMagenta, []string{"###", ".#."}},
	KindS: {platform.ColorGreen, []string{".##", "##."}},
	KindZ: {platform.ColorRed, []string{"##.", ".##"}},
	KindJ: {platform.ColorBlue, []string{"#..", "###"}},
	KindL: {platform.ColorOrange, []string{"..#", "###"}},
}

var (
	catalog []pieceDef

	// SpawnPieces holds the initial rotation state of every kind, indexed by Kind.
	// The block generator draws from this set.
	SpawnPieces [kindCount]Piece
)

func init() {
	for k := range kindCount {
		SpawnPieces[k] = addKind(k)
	}
}

// addKind appends every distinct clockwise rotation of a base shape to the
// catalog and links them into a cycle. Returns the first (spawn) state.
func addKind(k Kind) Piece {
	base := baseShapes[k]
	shape := GridFromRows(pieceGlyph, base.color, base.rows...)

	var states []Grid
	for len(states) == 0 || !shape.Equal(states[0]) {
		states = append(states, shape)
		shape = shape.RotateCW()
	}

	first := Piece(len(catalog))
	n := len(states)
	for i, cells := range states {
		catalog = append(catalog, pieceDef{
			kind:     k,
			rotation: i,
			cells:    cells,
			cw:       first + Piece((i+1)%n),
			ccw:      first + Piece((i+n-1)%n),
		})
	}
	return first
}

// allPieces returns every piece in catalog order.
func allPieces() []Piece {
	pieces := make([]Piece, len(catalog))
	for i := range catalog {
		pieces[i] = Piece(i)
	}
	return pieces
}

// Cells returns the piece's shape within its tight bounding box.
func (p Piece) Cells() Grid {
	return catalog[p].cells
}

// Width returns the width of the piece's bounding box.
func (p Piece) Width() int {
	return catalog[p].cells.Width()
}

// Height returns the height of the piece's bounding box.
func (p Piece) Height() int {
	return catalog[p].cells.Height()
}

// RotateCW returns the piece turned a quarter clockwise.
func (p Piece) RotateCW() Piece {
	return catalog[p].cw
}

// RotateCCW returns the piece turned a quarter counter-clockwise.
func (p Piece) RotateCCW() Piece {
	return catalog[p].ccw
}

// Kind returns the tetromino family of the piece.
func (p Piece) Kind() Kind {
	return catalog[p].kind
}

// Name returns the name of the piece's kind.
func (p Piece) Name() string {
	return catalog[p].kind.String()
}

// String returns the kind and rotation index, e.g. "T/2".
func (p Piece) String() string {
	if int(p) >= len(catalog) {
		return fmt.Sprintf("Piece(%d)", uint8(p))
	}
	return fmt.Sprintf("%s/%d", catalog[p].kind, catalog[p].rotation)
}
