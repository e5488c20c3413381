package core

import "testing"

func mustValidate(t *testing.T, b *Board, from, to Square, side Color) Move {
	t.Helper()
	var v Validator
	m, ok := v.Validate(b, from, to, side)
	if !ok {
		t.Fatalf("validate %s%s rejected", from, to)
	}
	return m
}

func TestApplyRevertNormalMove(t *testing.T) {
	b := StandardSetup()
	before := b.Copy()

	m := mustValidate(t, b, Sq(6, 0), Sq(5, 2), White) // Nf3
	rec := Apply(b, m)

	if p, ok := b.PieceAt(Sq(5, 2)); !ok || p.Kind != Knight || !p.Moved {
		t.Fatalf("knight not on f3 with Moved set: %+v ok=%v", p, ok)
	}
	if !b.IsEmpty(Sq(6, 0)) {
		t.Fatal("origin square still occupied")
	}

	Revert(b, rec)
	if !b.Equal(before) {
		t.Fatalf("revert did not restore the position:\n%s", b)
	}
}

func TestApplyDoublePushSetsEnPassantTarget(t *testing.T) {
	b := StandardSetup()
	m := mustValidate(t, b, Sq(4, 1), Sq(4, 3), White) // e4
	if m.Kind != DoublePawnPush {
		t.Fatalf("e2e4 classified %s", m.Kind)
	}
	rec := Apply(b, m)
	if ep, ok := b.EnPassantTarget(); !ok || ep != Sq(4, 2) {
		t.Fatalf("en-passant target %v %v, want e3", ep, ok)
	}
	Revert(b, rec)
	if _, ok := b.EnPassantTarget(); ok {
		t.Fatal("en-passant target survived revert")
	}
}

func TestApplyRevertCapture(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(4, 7), Piece{Kind: King, Color: Black})
	b.Place(Sq(3, 3), Piece{Kind: Rook, Color: White, Moved: true})
	b.Place(Sq(3, 6), Piece{Kind: Knight, Color: Black, Moved: true})
	before := b.Copy()

	m := mustValidate(t, b, Sq(3, 3), Sq(3, 6), White)
	if m.Kind != Capture || m.Captured == nil || m.Captured.Kind != Knight {
		t.Fatalf("capture classification %+v", m)
	}
	rec := Apply(b, m)
	if b.PieceCount() != 3 {
		t.Fatalf("piece count %d after capture, want 3", b.PieceCount())
	}
	Revert(b, rec)
	if !b.Equal(before) {
		t.Fatal("revert did not restore the captured knight")
	}
}

func TestApplyRevertEnPassant(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(4, 7), Piece{Kind: King, Color: Black})
	b.Place(Sq(4, 4), Piece{Kind: Pawn, Color: White, Moved: true})
	b.Place(Sq(3, 4), Piece{Kind: Pawn, Color: Black, Moved: true})
	b.SetEnPassantTarget(Sq(3, 5))
	before := b.Copy()

	m := mustValidate(t, b, Sq(4, 4), Sq(3, 5), White)
	rec := Apply(b, m)

	if !b.IsEmpty(Sq(3, 4)) {
		t.Fatal("en-passant victim still on d5")
	}
	if p, ok := b.PieceAt(Sq(3, 5)); !ok || p.Kind != Pawn || p.Color != White {
		t.Fatalf("capturing pawn not on d6: %+v", p)
	}
	if rec.CaptureSquare != Sq(3, 4) {
		t.Fatalf("capture square recorded as %s, want d5", rec.CaptureSquare)
	}

	Revert(b, rec)
	if !b.Equal(before) {
		t.Fatal("revert did not restore the en-passant position")
	}
}

func TestApplyRevertCastling(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(4, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(7, 0), Piece{Kind: Rook, Color: White})
	b.Place(Sq(0, 7), Piece{Kind: King, Color: Black})
	before := b.Copy()

	var v Validator
	var castle *Move
	for _, m := range v.LegalMoves(b, Sq(4, 0), White) {
		if m.Kind == CastleKingside {
			c := m
			castle = &c
		}
	}
	if castle == nil {
		t.Fatal("kingside castle not generated")
	}

	rec := Apply(b, *castle)
	king, _ := b.PieceAt(Sq(6, 0))
	rook, _ := b.PieceAt(Sq(5, 0))
	if king.Kind != King || !king.Moved || rook.Kind != Rook || !rook.Moved {
		t.Fatalf("after O-O: g1=%+v f1=%+v", king, rook)
	}
	if !b.IsEmpty(Sq(4, 0)) || !b.IsEmpty(Sq(7, 0)) {
		t.Fatal("king or rook origin still occupied")
	}

	Revert(b, rec)
	if !b.Equal(before) {
		t.Fatal("revert did not restore king and rook")
	}
}

func TestApplyRevertPromotion(t *testing.T) {
	b := NewBoard()
	b.Place(Sq(7, 0), Piece{Kind: King, Color: White})
	b.Place(Sq(7, 7), Piece{Kind: King, Color: Black})
	b.Place(Sq(0, 6), Piece{Kind: Pawn, Color: White, Moved: true})
	before := b.Copy()

	m := mustValidate(t, b, Sq(0, 6), Sq(0, 7), White).WithPromotion(Knight)
	rec := Apply(b, m)

	if p, ok := b.PieceAt(Sq(0, 7)); !ok || p.Kind != Knight || p.Color != White {
		t.Fatalf("promoted piece %+v", p)
	}

	Revert(b, rec)
	if !b.Equal(before) {
		t.Fatal("revert did not restore the pawn")
	}
	if p, _ := b.PieceAt(Sq(0, 6)); p.Kind != Pawn || !p.Moved {
		t.Fatalf("pawn restored as %+v", p)
	}
}
