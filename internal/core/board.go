package core

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrNoKing signals a board with no king for the requested color. During a
// well-formed game this is an invariant violation (a bug in the applier or
// validator), not a recoverable user error.
var ErrNoKing = errors.New("no king on board")

// Board holds piece placement and the en-passant target square. It is a
// value that can be deep-copied cheaply so legality checks can simulate
// moves on a disposable copy.
type Board struct {
	pieces   map[Square]Piece
	epTarget *Square
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{pieces: make(map[Square]Piece, 32)}
}

// StandardSetup returns a board with the standard starting position.
func StandardSetup() *Board {
	b := NewBoard()
	back := [...]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range back {
		b.Place(Sq(file, 0), Piece{Kind: kind, Color: White})
		b.Place(Sq(file, 7), Piece{Kind: kind, Color: Black})
	}
	for file := 0; file < 8; file++ {
		b.Place(Sq(file, 1), Piece{Kind: Pawn, Color: White})
		b.Place(Sq(file, 6), Piece{Kind: Pawn, Color: Black})
	}
	return b
}

// Place puts a piece on a square, replacing any occupant.
func (b *Board) Place(sq Square, p Piece) {
	b.pieces[sq] = p
}

// Remove clears a square and returns the piece that occupied it.
func (b *Board) Remove(sq Square) (Piece, bool) {
	p, ok := b.pieces[sq]
	if ok {
		delete(b.pieces, sq)
	}
	return p, ok
}

// PieceAt returns the piece on a square, if any.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p, ok := b.pieces[sq]
	return p, ok
}

// IsEmpty reports whether a square has no piece.
func (b *Board) IsEmpty(sq Square) bool {
	_, ok := b.pieces[sq]
	return !ok
}

// IsColor reports whether a square holds a piece of the given color.
func (b *Board) IsColor(sq Square, c Color) bool {
	p, ok := b.pieces[sq]
	return ok && p.Color == c
}

// Each calls fn for every occupied square until fn returns false.
func (b *Board) Each(fn func(Square, Piece) bool) {
	for sq, p := range b.pieces {
		if !fn(sq, p) {
			return
		}
	}
}

// PieceCount returns the number of pieces on the board.
func (b *Board) PieceCount() int { return len(b.pieces) }

// KingSquare locates the king of the given color.
func (b *Board) KingSquare(c Color) (Square, error) {
	for sq, p := range b.pieces {
		if p.Kind == King && p.Color == c {
			return sq, nil
		}
	}
	return Square{}, errors.Wrapf(ErrNoKing, "color %s", c)
}

// EnPassantTarget returns the square a double-pushed pawn passed over, if
// an en-passant capture is currently possible.
func (b *Board) EnPassantTarget() (Square, bool) {
	if b.epTarget == nil {
		return Square{}, false
	}
	return *b.epTarget, true
}

// SetEnPassantTarget records the passed-over square after a double push.
func (b *Board) SetEnPassantTarget(sq Square) {
	t := sq
	b.epTarget = &t
}

// ClearEnPassantTarget removes the en-passant target.
func (b *Board) ClearEnPassantTarget() {
	b.epTarget = nil
}

// PathClear reports whether every square strictly between two collinear
// squares is empty. Used for sliding pieces and castling transit.
func (b *Board) PathClear(from, to Square) bool {
	df := sign(to.File - from.File)
	dr := sign(to.Rank - from.Rank)
	cur := from.Offset(df, dr)
	for cur != to {
		if !b.IsEmpty(cur) {
			return false
		}
		cur = cur.Offset(df, dr)
	}
	return true
}

// Copy returns a deep copy sharing no state with the original.
func (b *Board) Copy() *Board {
	c := &Board{pieces: make(map[Square]Piece, len(b.pieces))}
	for sq, p := range b.pieces {
		c.pieces[sq] = p
	}
	if b.epTarget != nil {
		t := *b.epTarget
		c.epTarget = &t
	}
	return c
}

// Equal reports whether two boards have identical occupants (including
// Moved flags) and the same en-passant target.
func (b *Board) Equal(o *Board) bool {
	if len(b.pieces) != len(o.pieces) {
		return false
	}
	for sq, p := range b.pieces {
		op, ok := o.pieces[sq]
		if !ok || op != p {
			return false
		}
	}
	bt, bok := b.EnPassantTarget()
	ot, ook := o.EnPassantTarget()
	return bok == ook && bt == ot
}

// String renders a text diagram, rank 8 at the top.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if p, ok := b.pieces[Sq(file, rank)]; ok {
				sb.WriteString(p.Symbol())
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
