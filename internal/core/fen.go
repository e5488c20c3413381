package core

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Position interchange in FEN: six space-separated fields — placement,
// side to move, castling rights, en-passant target, half-move clock,
// full-move number. Castling rights are derived from (and applied back to)
// the Moved flags of kings and rooks on their home squares.

// BoardToFEN encodes the position.
func BoardToFEN(b *Board, side Color, halfMoveClock, moveNumber int) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p, ok := b.PieceAt(Sq(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.FENChar())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(CastlingRights(b))

	sb.WriteByte(' ')
	if ep, ok := b.EnPassantTarget(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(moveNumber))
	return sb.String()
}

// ParseFEN decodes a FEN string into a board plus side to move, half-move
// clock, and full-move number. Malformed input is a parse error, distinct
// from a game-rules rejection; no partial state is returned.
func ParseFEN(fen string) (*Board, Color, int, int, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 2 {
		return nil, White, 0, 0, errors.Errorf("fen: expected at least placement and side, got %d fields", len(fields))
	}

	b, err := parsePlacement(fields[0])
	if err != nil {
		return nil, White, 0, 0, err
	}

	var side Color
	switch fields[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return nil, White, 0, 0, errors.Errorf("fen: invalid side to move %q", fields[1])
	}

	rights := "-"
	if len(fields) > 2 {
		rights = fields[2]
	}
	if err := applyCastlingRights(b, rights); err != nil {
		return nil, White, 0, 0, err
	}

	if len(fields) > 3 && fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			return nil, White, 0, 0, errors.Wrap(err, "fen: en-passant target")
		}
		b.SetEnPassantTarget(ep)
	}

	halfMove := 0
	if len(fields) > 4 {
		if halfMove, err = strconv.Atoi(fields[4]); err != nil || halfMove < 0 {
			return nil, White, 0, 0, errors.Errorf("fen: invalid half-move clock %q", fields[4])
		}
	}
	moveNumber := 1
	if len(fields) > 5 {
		if moveNumber, err = strconv.Atoi(fields[5]); err != nil || moveNumber < 1 {
			return nil, White, 0, 0, errors.Errorf("fen: invalid move number %q", fields[5])
		}
	}

	return b, side, halfMove, moveNumber, nil
}

func parsePlacement(placement string) (*Board, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, errors.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	b := NewBoard()
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, ok := PieceFromFEN(c)
			if !ok {
				return nil, errors.Errorf("fen: invalid piece char %q in rank %d", string(c), rank+1)
			}
			sq := Sq(file, rank)
			if !sq.Valid() {
				return nil, errors.Errorf("fen: rank %d overflows the board", rank+1)
			}
			b.Place(sq, p)
			file++
		}
		if file != 8 {
			return nil, errors.Errorf("fen: rank %d has %d files", rank+1, file)
		}
	}
	return b, nil
}

// CastlingRights derives the KQkq field from the Moved flags of the king
// and rooks on their home squares.
func CastlingRights(b *Board) string {
	var sb strings.Builder
	appendSide := func(rank int, kingChar, queenChar byte) {
		king, ok := b.PieceAt(Sq(4, rank))
		if !ok || king.Kind != King || king.Moved {
			return
		}
		if rook, ok := b.PieceAt(Sq(7, rank)); ok && rook.Kind == Rook && !rook.Moved {
			sb.WriteByte(kingChar)
		}
		if rook, ok := b.PieceAt(Sq(0, rank)); ok && rook.Kind == Rook && !rook.Moved {
			sb.WriteByte(queenChar)
		}
	}
	appendSide(0, 'K', 'Q')
	appendSide(7, 'k', 'q')
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// applyCastlingRights marks kings/rooks as moved when the corresponding
// right is absent, so a loaded position castles consistently.
func applyCastlingRights(b *Board, rights string) error {
	if rights != "-" {
		for i := 0; i < len(rights); i++ {
			switch rights[i] {
			case 'K', 'Q', 'k', 'q':
			default:
				return errors.Errorf("fen: invalid castling rights %q", rights)
			}
		}
	}
	has := func(c byte) bool { return strings.IndexByte(rights, c) >= 0 }

	markMoved := func(sq Square, kind PieceKind) {
		if p, ok := b.PieceAt(sq); ok && p.Kind == kind {
			p.Moved = true
			b.Place(sq, p)
		}
	}
	if !has('K') && !has('Q') {
		markMoved(Sq(4, 0), King)
	}
	if !has('K') {
		markMoved(Sq(7, 0), Rook)
	}
	if !has('Q') {
		markMoved(Sq(0, 0), Rook)
	}
	if !has('k') && !has('q') {
		markMoved(Sq(4, 7), King)
	}
	if !has('k') {
		markMoved(Sq(7, 7), Rook)
	}
	if !has('q') {
		markMoved(Sq(0, 7), Rook)
	}
	return nil
}
