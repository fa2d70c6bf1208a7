package base

import "testing"

func TestPointIndexRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		p := ConvIndexToPoint(i)
		if got := ConvPointToIndex(p); got != i {
			t.Fatalf("index %d -> %+v -> %d", i, p, got)
		}
	}
}

func TestSquareFromAlgebraic(t *testing.T) {
	tests := []struct {
		in   string
		want Point
		ok   bool
	}{
		{"a1", Point{H: 0, W: 0}, true},
		{"e4", Point{H: 3, W: 4}, true},
		{"h8", Point{H: 7, W: 7}, true},
		{"i1", Point{}, false},
		{"a9", Point{}, false},
		{"e", Point{}, false},
		{"", Point{}, false},
	}
	for _, tc := range tests {
		got, err := SquareFromAlgebraic(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("%q: unexpected err %v", tc.in, err)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("%q: got %+v want %+v", tc.in, got, tc.want)
		}
		if tc.ok && AlgebraicFromPoint(got) != tc.in {
			t.Fatalf("%q did not round-trip", tc.in)
		}
	}
}

func TestPieceEncoding(t *testing.T) {
	for _, k := range []Kind{Pawn, Knight, Bishop, Rook, Queen, King} {
		w := MakePiece(k, true)
		b := MakePiece(k, false)
		if KindOf(w) != k || KindOf(b) != k {
			t.Fatalf("kind lost for %s", k)
		}
		if !PieceIsWhite(w) || PieceIsWhite(b) {
			t.Fatalf("color lost for %s", k)
		}
		if !PieceIsBlack(b) || PieceIsBlack(w) {
			t.Fatalf("black color lost for %s", k)
		}
	}
	if KindOf(EmptyPiece) != KindNone || KindOf(InvalidPiece) != KindNone {
		t.Fatal("sentinels must map to KindNone")
	}
	if SameColor(WPawn, EmptyPiece) || !SameColor(WPawn, WKing) || SameColor(WPawn, BPawn) {
		t.Fatal("SameColor misbehaves")
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	if !b.WhiteToMove {
		t.Fatal("white moves first")
	}
	if b.EnPassant != -1 {
		t.Fatal("no en passant target at start")
	}
	if GetPieceAt(&b.Mailbox, Point{H: 0, W: 4}) != WKing {
		t.Fatal("white king not on e1")
	}
	if GetPieceAt(&b.Mailbox, Point{H: 7, W: 4}) != BKing {
		t.Fatal("black king not on e8")
	}
	for w := uint8(0); w < 8; w++ {
		if GetPieceAt(&b.Mailbox, Point{H: 1, W: w}) != WPawn {
			t.Fatalf("white pawn missing on file %d", w)
		}
		if GetPieceAt(&b.Mailbox, Point{H: 6, W: w}) != BPawn {
			t.Fatalf("black pawn missing on file %d", w)
		}
	}
	whites, blacks := 0, 0
	for i := 0; i < 64; i++ {
		if PieceIsWhite(b.Mailbox[i]) {
			whites++
		}
		if PieceIsBlack(b.Mailbox[i]) {
			blacks++
		}
	}
	if whites != 16 || blacks != 16 {
		t.Fatalf("want 16 pieces per side, got %d/%d", whites, blacks)
	}
}

func TestKindFromRune(t *testing.T) {
	if KindFromRune('q') != Queen || KindFromRune('Q') != Queen {
		t.Fatal("queen letter")
	}
	if KindFromRune('x') != KindNone {
		t.Fatal("unknown letter must be KindNone")
	}
}
