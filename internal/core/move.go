package core

import (
	"strings"

	"github.com/pkg/errors"
)

// MoveKind tags the state transition a Move performs.
type MoveKind int8

const (
	Normal MoveKind = iota
	Capture
	CastleKingside
	CastleQueenside
	EnPassant
	DoublePawnPush
	Promotion
	PromotionCapture
)

var moveKindNames = [...]string{
	"normal", "capture", "castle_kingside", "castle_queenside",
	"en_passant", "double_pawn_push", "promotion", "promotion_capture",
}

func (k MoveKind) String() string { return moveKindNames[k] }

// Move is an immutable description of a state transition. Piece is a
// snapshot of the mover before the move; Captured, when set, is a snapshot
// of the piece removed (for en passant it sits behind To, not on it).
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  *Piece
	Kind      MoveKind
	Promotion PieceKind // meaningful only for promotion kinds
}

// Equal compares identity: two moves to the same square with different
// promotion choices are distinct.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Kind == o.Kind && m.Promotion == o.Promotion
}

func (m Move) IsCapture() bool {
	return m.Captured != nil || m.Kind == EnPassant
}

func (m Move) IsCastle() bool {
	return m.Kind == CastleKingside || m.Kind == CastleQueenside
}

func (m Move) IsPromotion() bool {
	return m.Kind == Promotion || m.Kind == PromotionCapture
}

// WithPromotion returns a copy with the promotion kind substituted. The
// validator defaults promotions to Queen; a caller-supplied choice is
// authoritative and applied through this before the move is executed.
func (m Move) WithPromotion(kind PieceKind) Move {
	if !m.IsPromotion() {
		return m
	}
	m.Promotion = kind
	return m
}

// SAN renders the move in algebraic notation: piece letter (omitted for
// pawns), origin file for pawn captures, 'x' for captures, destination,
// "=Q" style promotion suffix, "O-O"/"O-O-O" for castling.
func (m Move) SAN() string {
	switch m.Kind {
	case CastleKingside:
		return "O-O"
	case CastleQueenside:
		return "O-O-O"
	}
	var sb strings.Builder
	if m.Piece.Kind != Pawn {
		sb.WriteString(m.Piece.Kind.Letter())
	}
	if m.Piece.Kind == Pawn && m.IsCapture() {
		sb.WriteByte(byte('a' + m.From.File))
	}
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteString(m.Promotion.Letter())
	}
	return sb.String()
}

func (m Move) String() string { return m.SAN() }

// UCI renders coordinate notation ("e2e4", "e7e8q").
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += strings.ToLower(m.Promotion.Letter())
	}
	return s
}

// ParseUCI splits coordinate notation into origin, destination, and an
// optional promotion kind. Malformed text is a parse error, not a rules
// rejection.
func ParseUCI(text string) (from, to Square, promotion *PieceKind, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) != 4 && len(text) != 5 {
		return Square{}, Square{}, nil, errors.Errorf("invalid move notation %q", text)
	}
	if from, err = ParseSquare(text[:2]); err != nil {
		return Square{}, Square{}, nil, err
	}
	if to, err = ParseSquare(text[2:4]); err != nil {
		return Square{}, Square{}, nil, err
	}
	if len(text) == 5 {
		kind, ok := ParsePieceKind(text[4:])
		if !ok || kind == Pawn || kind == King {
			return Square{}, Square{}, nil, errors.Errorf("invalid promotion %q", text)
		}
		promotion = &kind
	}
	return from, to, promotion, nil
}
