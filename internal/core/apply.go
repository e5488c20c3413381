package core

// Record captures the pre-move state needed to exactly reverse a Move:
// the mover's flag, the captured piece with its true square and flag, the
// rook relocation for castling, and the prior en-passant target.
type Record struct {
	Move          Move
	MoverHadMoved bool
	Captured      *Piece
	CaptureSquare Square
	Rook          *Piece
	RookFrom      Square
	RookTo        Square
	PrevEPTarget  *Square
}

// Apply mutates the board for one move, including the side effects of
// castling, en passant, and promotion, and returns the Record needed to
// revert it. The move must have been produced by the Validator for this
// board state.
func Apply(b *Board, m Move) Record {
	rec := Record{Move: m}

	mover, _ := b.Remove(m.From)
	rec.MoverHadMoved = mover.Moved

	if prev, ok := b.EnPassantTarget(); ok {
		t := prev
		rec.PrevEPTarget = &t
	}

	// Capture square differs from To only for en passant: the victim sits
	// directly behind the destination, relative to the mover's direction.
	rec.CaptureSquare = m.To
	if m.Kind == EnPassant {
		rec.CaptureSquare = m.To.Offset(0, -mover.Color.PawnDirection())
	}
	if victim, ok := b.Remove(rec.CaptureSquare); ok {
		v := victim
		rec.Captured = &v
	}

	placed := mover
	if m.IsPromotion() {
		placed = Piece{Kind: m.Promotion, Color: mover.Color}
	}
	placed.Moved = true
	b.Place(m.To, placed)

	if m.IsCastle() {
		rec.RookFrom, rec.RookTo = castleRookSquares(m)
		if rook, ok := b.Remove(rec.RookFrom); ok {
			r := rook
			rec.Rook = &r
			rook.Moved = true
			b.Place(rec.RookTo, rook)
		}
	}

	if m.Kind == DoublePawnPush {
		b.SetEnPassantTarget(m.From.Offset(0, mover.Color.PawnDirection()))
	} else {
		b.ClearEnPassantTarget()
	}

	return rec
}

// Revert is the exact inverse of Apply: the mover returns to From with its
// pre-move flag (and original kind, undoing promotion), the captured piece
// returns to its true square, the rook returns home, and the prior
// en-passant target is restored.
func Revert(b *Board, rec Record) {
	b.Remove(rec.Move.To)

	mover := rec.Move.Piece
	mover.Moved = rec.MoverHadMoved
	b.Place(rec.Move.From, mover)

	if rec.Captured != nil {
		b.Place(rec.CaptureSquare, *rec.Captured)
	}

	if rec.Rook != nil {
		b.Remove(rec.RookTo)
		b.Place(rec.RookFrom, *rec.Rook)
	}

	if rec.PrevEPTarget != nil {
		b.SetEnPassantTarget(*rec.PrevEPTarget)
	} else {
		b.ClearEnPassantTarget()
	}
}

func castleRookSquares(m Move) (from, to Square) {
	rank := m.From.Rank
	if m.Kind == CastleKingside {
		return Sq(7, rank), Sq(5, rank)
	}
	return Sq(0, rank), Sq(3, rank)
}
