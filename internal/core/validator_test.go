package core

import "testing"

func legalMoveCount(b *Board, side Color) int {
	var v Validator
	count := 0
	b.Each(func(sq Square, p Piece) bool {
		if p.Color == side {
			count += len(v.LegalMoves(b, sq, side))
		}
		return true
	})
	return count
}

func TestOpeningPosition(t *testing.T) {
	b := StandardSetup()
	if got := legalMoveCount(b, White); got != 20 {
		t.Fatalf("white has %d legal moves in the opening, want 20", got)
	}
	if got := legalMoveCount(b, Black); got != 20 {
		t.Fatalf("black has %d legal moves in the opening, want 20", got)
	}

	var v Validator
	knight := v.LegalMoves(b, Sq(1, 0), White)
	targets := squareSet(nil)
	for _, m := range knight {
		targets[m.To] = true
	}
	if len(knight) != 2 || !targets[Sq(0, 2)] || !targets[Sq(2, 2)] {
		t.Fatalf("b1 knight moves %v, want a3 and c3", knight)
	}
}

func TestValidateRejectsFriendlyTarget(t *testing.T) {
	var v Validator
	b := StandardSetup()
	if _, ok := v.Validate(b, Sq(0, 0), Sq(0, 1), White); ok {
		t.Fatal("rook allowed to capture its own pawn")
	}
	if _, ok := v.Validate(b, Sq(0, 0), Sq(0, 3), White); ok {
		t.Fatal("rook allowed to jump over its own pawn")
	}
}

func TestValidateOutOfTurnPiece(t *testing.T) {
	var v Validator
	b := StandardSetup()
	if _, ok := v.Validate(b, Sq(4, 6), Sq(4, 4), White); ok {
		t.Fatal("white allowed to move a black pawn")
	}
	if moves := v.LegalMoves(b, Sq(4, 6), White); moves != nil {
		t.Fatalf("legal moves for an enemy piece: %v", moves)
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(4, 1), Piece{Kind: Bishop, Color: White})
	b.Place(Sq(4, 7), Piece{Kind: Rook, Color: Black})
	b.Place(Sq(0, 7), Piece{Kind: King, Color: Black})

	var v Validator
	if moves := v.LegalMoves(b, Sq(4, 1), White); len(moves) != 0 {
		t.Fatalf("pinned bishop has moves %v", moves)
	}
}

func TestEnPassantValidation(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(4, 7), Piece{Kind: King, Color: Black})
	b.Place(Sq(4, 4), Piece{Kind: Pawn, Color: White, Moved: true})
	b.Place(Sq(3, 4), Piece{Kind: Pawn, Color: Black, Moved: true})
	b.SetEnPassantTarget(Sq(3, 5))

	var v Validator
	m, ok := v.Validate(b, Sq(4, 4), Sq(3, 5), White)
	if !ok {
		t.Fatal("en passant capture rejected")
	}
	if m.Kind != EnPassant {
		t.Fatalf("move classified as %s, want en_passant", m.Kind)
	}
	if m.Captured == nil || m.Captured.Kind != Pawn || m.Captured.Color != Black {
		t.Fatalf("captured snapshot %+v", m.Captured)
	}
}

func TestEnPassantOnlyOntoTarget(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(4, 7), Piece{Kind: King, Color: Black})
	b.Place(Sq(4, 4), Piece{Kind: Pawn, Color: White, Moved: true})
	b.Place(Sq(3, 4), Piece{Kind: Pawn, Color: Black, Moved: true})
	// No en-passant target recorded: the diagonal is empty, so no capture.
	var v Validator
	if _, ok := v.Validate(b, Sq(4, 4), Sq(3, 5), White); ok {
		t.Fatal("diagonal onto an empty square accepted without en-passant target")
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(7, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(7, 7), Piece{Kind: King, Color: Black})
	b.Place(Sq(0, 6), Piece{Kind: Pawn, Color: White, Moved: true})

	var v Validator
	m, ok := v.Validate(b, Sq(0, 6), Sq(0, 7), White)
	if !ok {
		t.Fatal("promotion push rejected")
	}
	if m.Kind != Promotion || m.Promotion != Queen {
		t.Fatalf("got kind=%s promotion=%s, want promotion to queen", m.Kind, m.Promotion)
	}

	under := m.WithPromotion(Knight)
	if under.Promotion != Knight || under.Kind != Promotion {
		t.Fatalf("WithPromotion gave %+v", under)
	}
}

func TestCastlingBothSides(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(0, 0), Piece{Kind: Rook, Color: White})
	b.Place(Sq(7, 0), Piece{Kind: Rook, Color: White})
	b.Place(Sq(0, 7), Piece{Kind: King, Color: Black})

	var v Validator
	kingside, queenside := false, false
	for _, m := range v.LegalMoves(b, Sq(4, 0), White) {
		switch m.Kind {
		case CastleKingside:
			kingside = m.To == Sq(6, 0)
		case CastleQueenside:
			queenside = m.To == Sq(2, 0)
		}
	}
	if !kingside || !queenside {
		t.Fatalf("castling availability kingside=%v queenside=%v, want both", kingside, queenside)
	}
}

func TestCastlingBlockedByAttackedTransit(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(0, 0), Piece{Kind: Rook, Color: White})
	b.Place(Sq(7, 0), Piece{Kind: Rook, Color: White})
	b.Place(Sq(7, 7), Piece{Kind: King, Color: Black})
	// Black rook sweeps the d-file: the queenside transit square d1 is
	// attacked, the kingside path is untouched.
	b.Place(Sq(3, 7), Piece{Kind: Rook, Color: Black})

	var v Validator
	kingside, queenside := false, false
	for _, m := range v.LegalMoves(b, Sq(4, 0), White) {
		switch m.Kind {
		case CastleKingside:
			kingside = true
		case CastleQueenside:
			queenside = true
		}
	}
	if !kingside {
		t.Fatal("kingside castle should remain available")
	}
	if queenside {
		t.Fatal("queenside castle through an attacked square accepted")
	}
}

func TestCastlingRequiresUnmovedRook(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(7, 0), Piece{Kind: Rook, Color: White, Moved: true})
	b.Place(Sq(0, 7), Piece{Kind: King, Color: Black})

	var v Validator
	for _, m := range v.LegalMoves(b, Sq(4, 0), White) {
		if m.IsCastle() {
			t.Fatalf("castle with a moved rook: %v", m)
		}
	}
}

func TestIsSquareAttacked(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(3, 3), Piece{Kind: Pawn, Color: White, Moved: true})

	var v Validator
	// Pawns attack diagonally only.
	if !v.IsSquareAttacked(b, Sq(2, 4), White) || !v.IsSquareAttacked(b, Sq(4, 4), White) {
		t.Fatal("pawn diagonal attacks missing")
	}
	if v.IsSquareAttacked(b, Sq(3, 4), White) {
		t.Fatal("pawn push square reported attacked")
	}

	// A sliding attacker is stopped by a blocker.
	b.Place(Sq(3, 7), Piece{Kind: Rook, Color: Black})
	if !v.IsSquareAttacked(b, Sq(3, 4), Black) {
		t.Fatal("rook attack down the open file missing")
	}
	if v.IsSquareAttacked(b, Sq(3, 2), Black) {
		t.Fatal("rook attack through the pawn reported")
	}
}

func TestLegalMovesNeverExposeKing(t *testing.T) {
	var v Validator
	boards := []*Board{StandardSetup()}

	mid, _, _, _, err := ParseFEN("r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK1NR w KQkq - 4 4")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	boards = append(boards, mid)

	for _, b := range boards {
		for _, side := range []Color{White, Black} {
			b.Each(func(sq Square, p Piece) bool {
				if p.Color != side {
					return true
				}
				for _, m := range v.LegalMoves(b, sq, side) {
					sim := b.Copy()
					Apply(sim, m)
					if v.InCheck(sim, side) {
						t.Errorf("legal move %s leaves %s king attacked", m, side)
					}
				}
				return true
			})
		}
	}
}

func TestAttackSymmetry(t *testing.T) {
	// Mirroring the board across the rank axis and swapping colors must
	// preserve every attack relation.
	b, _, _, _, err := ParseFEN("r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK1NR w KQkq - 4 4")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	mirror := NewBoard()
	b.Each(func(sq Square, p Piece) bool {
		p.Color = p.Color.Opposite()
		mirror.Place(Sq(sq.File, 7-sq.Rank), p)
		return true
	})

	var v Validator
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			sq := Sq(file, rank)
			mirrored := Sq(file, 7-rank)
			for _, by := range []Color{White, Black} {
				if v.IsSquareAttacked(b, sq, by) != v.IsSquareAttacked(mirror, mirrored, by.Opposite()) {
					t.Fatalf("attack asymmetry at %s by %s", sq, by)
				}
			}
		}
	}
}

func TestStatusCheckmate(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(7, 7), Piece{Kind: King, Color: Black})
	b.Place(Sq(6, 6), Piece{Kind: Pawn, Color: Black, Moved: true})
	b.Place(Sq(7, 6), Piece{Kind: Pawn, Color: Black, Moved: true})
	b.Place(Sq(0, 7), Piece{Kind: Rook, Color: White, Moved: true})
	b.Place(Sq(0, 0), Piece{Kind: King, Color: White})

	var v Validator
	if st := v.Status(b, Black); st != Checkmate {
		t.Fatalf("back-rank position classified %s, want checkmate", st)
	}
}

func TestStatusStalemate(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(0, 7), Piece{Kind: King, Color: Black, Moved: true})
	b.Place(Sq(1, 5), Piece{Kind: King, Color: White, Moved: true})
	b.Place(Sq(2, 6), Piece{Kind: Queen, Color: White, Moved: true})

	var v Validator
	if v.InCheck(b, Black) {
		t.Fatal("stalemate position should not be check")
	}
	if st := v.Status(b, Black); st != Stalemate {
		t.Fatalf("classified %s, want stalemate", st)
	}
}

func TestStatusCheck(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(4, 7), Piece{Kind: Rook, Color: Black, Moved: true})
	b.Place(Sq(0, 7), Piece{Kind: King, Color: Black})

	var v Validator
	if st := v.Status(b, White); st != Check {
		t.Fatalf("classified %s, want check", st)
	}
}
