package core

// Validator computes legal moves: pseudo-legal candidates from the movement
// patterns, filtered by occupancy, blocking, and king safety.
type Validator struct{}

// LegalMoves returns every legal move for the piece on from. It is empty if
// the square is empty or the piece does not belong to side.
func (v Validator) LegalMoves(b *Board, from Square, side Color) []Move {
	piece, ok := b.PieceAt(from)
	if !ok || piece.Color != side {
		return nil
	}

	var moves []Move
	for _, to := range PotentialTargets(piece.Kind, piece.Color, from) {
		if m, ok := v.Validate(b, from, to, side); ok {
			moves = append(moves, m)
		}
	}

	if piece.Kind == King && !piece.Moved {
		moves = v.appendCastlingMoves(b, from, piece, side, moves)
	}
	return moves
}

// Validate checks a single from/to request and builds the canonical Move.
// It rejects moves that are geometrically impossible, blocked, land on a
// friendly piece, break the pawn rules, or leave the mover's own king
// attacked. Promotions default to Queen; callers substitute an explicit
// choice via Move.WithPromotion before applying.
func (v Validator) Validate(b *Board, from, to Square, side Color) (Move, bool) {
	piece, ok := b.PieceAt(from)
	if !ok || piece.Color != side || !to.Valid() {
		return Move{}, false
	}
	if b.IsColor(to, piece.Color) {
		return Move{}, false
	}
	if !v.targetReachable(b, piece, from, to) {
		return Move{}, false
	}
	if IsSliding(piece.Kind) && !b.PathClear(from, to) {
		return Move{}, false
	}

	move := v.buildMove(b, piece, from, to)
	if v.wouldLeaveKingInCheck(b, move, side) {
		return Move{}, false
	}
	return move, true
}

func (v Validator) targetReachable(b *Board, piece Piece, from, to Square) bool {
	if piece.Kind == Pawn {
		return v.pawnTargetLegal(b, piece, from, to)
	}
	for _, sq := range PotentialTargets(piece.Kind, piece.Color, from) {
		if sq == to {
			return true
		}
	}
	return false
}

// pawnTargetLegal enforces the four pawn rules: forward-one onto an empty
// square, forward-two onto two empty squares from the start rank, and
// diagonal-one onto an enemy piece or the recorded en-passant target.
func (v Validator) pawnTargetLegal(b *Board, pawn Piece, from, to Square) bool {
	dir := pawn.Color.PawnDirection()
	df := to.File - from.File
	dr := to.Rank - from.Rank

	if df == 0 {
		if dr == dir {
			return b.IsEmpty(to)
		}
		if dr == 2*dir && from.Rank == pawn.Color.PawnStartRank() {
			return b.IsEmpty(from.Offset(0, dir)) && b.IsEmpty(to)
		}
		return false
	}

	if (df == 1 || df == -1) && dr == dir {
		if b.IsColor(to, pawn.Color.Opposite()) {
			return true
		}
		if ep, ok := b.EnPassantTarget(); ok && ep == to {
			return true
		}
	}
	return false
}

func (v Validator) buildMove(b *Board, piece Piece, from, to Square) Move {
	move := Move{From: from, To: to, Piece: piece, Kind: Normal}

	if captured, ok := b.PieceAt(to); ok {
		c := captured
		move.Captured = &c
		move.Kind = Capture
	}

	if piece.Kind == Pawn {
		if ep, ok := b.EnPassantTarget(); ok && ep == to {
			move.Kind = EnPassant
			victimSq := to.Offset(0, -piece.Color.PawnDirection())
			if victim, ok := b.PieceAt(victimSq); ok {
				vp := victim
				move.Captured = &vp
			}
		} else if dr := to.Rank - from.Rank; dr == 2 || dr == -2 {
			move.Kind = DoublePawnPush
		}
		if to.Rank == piece.Color.PromotionRank() {
			if move.Captured != nil {
				move.Kind = PromotionCapture
			} else {
				move.Kind = Promotion
			}
			move.Promotion = Queen
		}
	}
	return move
}

// appendCastlingMoves adds legal castling for an unmoved king, each side
// checked independently. The king-safety gate applies uniformly, so the
// transit/destination attack checks below are on top of the final simulate.
func (v Validator) appendCastlingMoves(b *Board, kingSq Square, king Piece, side Color, moves []Move) []Move {
	rank := kingSq.Rank
	if v.canCastle(b, side, rank, true) {
		m := Move{From: kingSq, To: Sq(6, rank), Piece: king, Kind: CastleKingside}
		if !v.wouldLeaveKingInCheck(b, m, side) {
			moves = append(moves, m)
		}
	}
	if v.canCastle(b, side, rank, false) {
		m := Move{From: kingSq, To: Sq(2, rank), Piece: king, Kind: CastleQueenside}
		if !v.wouldLeaveKingInCheck(b, m, side) {
			moves = append(moves, m)
		}
	}
	return moves
}

func (v Validator) canCastle(b *Board, side Color, rank int, kingside bool) bool {
	rookFile := 0
	emptyFiles := []int{1, 2, 3}
	transitFiles := []int{4, 3, 2}
	if kingside {
		rookFile = 7
		emptyFiles = []int{5, 6}
		transitFiles = []int{4, 5, 6}
	}

	rook, ok := b.PieceAt(Sq(rookFile, rank))
	if !ok || rook.Kind != Rook || rook.Color != side || rook.Moved {
		return false
	}
	for _, f := range emptyFiles {
		if !b.IsEmpty(Sq(f, rank)) {
			return false
		}
	}
	// The king may not castle out of, through, or into check. Whether the
	// rook is attacked is irrelevant.
	for _, f := range transitFiles {
		if v.IsSquareAttacked(b, Sq(f, rank), side.Opposite()) {
			return false
		}
	}
	return true
}

// IsSquareAttacked reports whether any piece of byColor can reach sq.
// Pawns are special-cased to their two diagonal attacks; everything else
// reuses its potential-move set, with sliding pieces requiring a clear
// path. No king-safety filtering happens here (this routine is used by
// that filtering) and the board may legitimately lack a king mid-simulation.
func (v Validator) IsSquareAttacked(b *Board, sq Square, byColor Color) bool {
	attacked := false
	b.Each(func(from Square, p Piece) bool {
		if p.Color != byColor {
			return true
		}
		if p.Kind == Pawn {
			for _, a := range PawnAttacks(p.Color, from) {
				if a == sq {
					attacked = true
					return false
				}
			}
			return true
		}
		for _, t := range PotentialTargets(p.Kind, p.Color, from) {
			if t != sq {
				continue
			}
			if !IsSliding(p.Kind) || b.PathClear(from, sq) {
				attacked = true
				return false
			}
		}
		return true
	})
	return attacked
}

// InCheck reports whether the given side's king is attacked.
func (v Validator) InCheck(b *Board, side Color) bool {
	kingSq, err := b.KingSquare(side)
	if err != nil {
		return false
	}
	return v.IsSquareAttacked(b, kingSq, side.Opposite())
}

// wouldLeaveKingInCheck simulates the move on a disposable board copy.
func (v Validator) wouldLeaveKingInCheck(b *Board, m Move, side Color) bool {
	sim := b.Copy()
	Apply(sim, m)
	return v.InCheck(sim, side)
}

// HasLegalMoves reports whether the side has at least one legal move.
func (v Validator) HasLegalMoves(b *Board, side Color) bool {
	found := false
	b.Each(func(sq Square, p Piece) bool {
		if p.Color != side {
			return true
		}
		if len(v.LegalMoves(b, sq, side)) > 0 {
			found = true
			return false
		}
		return true
	})
	return found
}

// Status is the base classification for the side to move: Checkmate or
// Stalemate when no legal moves exist, otherwise Check or InProgress. The
// session layer widens this with clock- and history-based draws.
func (v Validator) Status(b *Board, side Color) GameState {
	inCheck := v.InCheck(b, side)
	if !v.HasLegalMoves(b, side) {
		if inCheck {
			return Checkmate
		}
		return Stalemate
	}
	if inCheck {
		return Check
	}
	return InProgress
}
