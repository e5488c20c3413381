package core

// Color identifies a chess side.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PawnDirection is the rank delta pawns of this color advance by.
func (c Color) PawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

// PawnStartRank is the rank from which pawns may double-push.
func (c Color) PawnStartRank() int {
	if c == White {
		return 1
	}
	return 6
}

// PromotionRank is the rank a pawn promotes on.
func (c Color) PromotionRank() int {
	if c == White {
		return 7
	}
	return 0
}

// PieceKind is the closed set of chess piece kinds.
type PieceKind int8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]string{"P", "N", "B", "R", "Q", "K"}
var kindNames = [...]string{"pawn", "knight", "bishop", "rook", "queen", "king"}
var kindValues = [...]int{1, 3, 3, 5, 9, 0}

// Letter is the uppercase algebraic letter for the kind.
func (k PieceKind) Letter() string { return kindLetters[k] }

func (k PieceKind) String() string { return kindNames[k] }

// Value is the conventional material value (king counts as zero).
func (k PieceKind) Value() int { return kindValues[k] }

// ParsePieceKind maps an algebraic letter ("q", "N") to a kind.
func ParsePieceKind(letter string) (PieceKind, bool) {
	for i, l := range kindLetters {
		if letter == l || (len(letter) == 1 && letter[0] == l[0]+'a'-'A') {
			return PieceKind(i), true
		}
	}
	return Pawn, false
}

// Piece is a piece on the board. Moved gates castling and the pawn
// double-push; it is restored exactly on undo.
type Piece struct {
	Kind  PieceKind
	Color Color
	Moved bool
}

// FENChar is the single-letter FEN encoding (uppercase White, lowercase Black).
func (p Piece) FENChar() byte {
	c := kindLetters[p.Kind][0]
	if p.Color == Black {
		c += 'a' - 'A'
	}
	return c
}

var whiteSymbols = [...]string{"♙", "♘", "♗", "♖", "♕", "♔"}
var blackSymbols = [...]string{"♟", "♞", "♝", "♜", "♛", "♚"}

// Symbol is the Unicode figurine for board diagrams.
func (p Piece) Symbol() string {
	if p.Color == White {
		return whiteSymbols[p.Kind]
	}
	return blackSymbols[p.Kind]
}

// PieceFromFEN decodes a FEN piece letter.
func PieceFromFEN(c byte) (Piece, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	for i, l := range kindLetters {
		if l[0] == c {
			return Piece{Kind: PieceKind(i), Color: color}, true
		}
	}
	return Piece{}, false
}
