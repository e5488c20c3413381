package core

import (
	"github.com/pkg/errors"
)

// Square addresses one cell of the 8x8 board. File 0 is the a-file,
// rank 0 is White's back rank (a1 = {0,0}).
type Square struct {
	File int
	Rank int
}

// Sq is shorthand for building a Square from file/rank indices.
func Sq(file, rank int) Square { return Square{File: file, Rank: rank} }

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// Offset returns the square shifted by the given file/rank deltas.
// The result may be off the board; callers check Valid.
func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// String renders algebraic notation ("e4"). Off-board squares render as "-".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File), byte('1' + s.Rank)})
}

// ParseSquare parses algebraic notation like "e4".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, errors.Errorf("invalid square notation %q", text)
	}
	sq := Square{File: int(text[0] - 'a'), Rank: int(text[1] - '1')}
	if !sq.Valid() {
		return Square{}, errors.Errorf("square %q out of range", text)
	}
	return sq, nil
}
