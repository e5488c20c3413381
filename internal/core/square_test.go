package core

import "testing"

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil {
		t.Fatalf("ParseSquare: %v", err)
	}
	if sq != Sq(4, 3) {
		t.Fatalf("e4 parsed as %+v", sq)
	}
	if sq.String() != "e4" {
		t.Fatalf("round trip gave %q", sq.String())
	}

	for _, bad := range []string{"", "e", "e44", "i4", "e9", "44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) accepted", bad)
		}
	}
}

func TestSquareOffsetAndValid(t *testing.T) {
	a1 := Sq(0, 0)
	if !a1.Valid() {
		t.Fatal("a1 invalid")
	}
	if off := a1.Offset(-1, 0); off.Valid() {
		t.Fatalf("off-board square %+v reported valid", off)
	}
	if got := a1.Offset(7, 7); got != Sq(7, 7) || !got.Valid() {
		t.Fatalf("offset to h8 gave %+v", got)
	}
	if s := Sq(-1, 3).String(); s != "-" {
		t.Fatalf("off-board String gave %q", s)
	}
}
