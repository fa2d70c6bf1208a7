package rules

import (
	"testing"

	"voicechess/src/base"
)

func sq(t *testing.T, s string) base.Point {
	t.Helper()
	p, err := base.SquareFromAlgebraic(s)
	if err != nil {
		t.Fatalf("bad square %q: %v", s, err)
	}
	return p
}

func boardWith(t *testing.T, whiteToMove bool, pieces map[string]base.Piece) *base.Board {
	t.Helper()
	b := &base.Board{WhiteToMove: whiteToMove, EnPassant: -1}
	for s, p := range pieces {
		base.SetPieceAt(&b.Mailbox, sq(t, s), p)
	}
	return b
}

func TestGameStatusStart(t *testing.T) {
	if got := GameStatusOf(base.NewBoard()); got != base.Pass {
		t.Fatalf("start position: got %v", got)
	}
}

func TestGameStatusCheck(t *testing.T) {
	b := boardWith(t, true, map[string]base.Piece{
		"e1": base.WKing,
		"e8": base.BKing,
		"e5": base.BRook,
	})
	if !IsInCheck(b, true) {
		t.Fatal("rook on the file must check")
	}
	if got := GameStatusOf(b); got != base.Check {
		t.Fatalf("got %v want check", got)
	}
}

func TestGameStatusCheckmate(t *testing.T) {
	// back-rank mate: king boxed in by its own pawns
	b := boardWith(t, true, map[string]base.Piece{
		"g1": base.WKing,
		"f2": base.WPawn,
		"g2": base.WPawn,
		"h2": base.WPawn,
		"c1": base.BRook,
		"e8": base.BKing,
	})
	if got := GameStatusOf(b); got != base.Checkmate {
		t.Fatalf("got %v want checkmate", got)
	}
}

func TestGameStatusStalemate(t *testing.T) {
	// black king on a8, no moves, not in check
	b := boardWith(t, false, map[string]base.Piece{
		"a8": base.BKing,
		"b6": base.WKing,
		"c7": base.WQueen,
	})
	if got := GameStatusOf(b); got != base.Stalemate {
		t.Fatalf("got %v want stalemate", got)
	}
}

func TestCheckEscapesByBlockAndCapture(t *testing.T) {
	// checked king with a blocker available: not mate
	b := boardWith(t, true, map[string]base.Piece{
		"g1": base.WKing,
		"f2": base.WPawn,
		"g2": base.WPawn,
		"h2": base.WPawn,
		"c1": base.BRook,
		"e8": base.BKing,
		"d2": base.WBishop, // covers c1
	})
	if got := GameStatusOf(b); got != base.Check {
		t.Fatalf("bishop can capture the rook, got %v", got)
	}
	if !IsLegalMove(b, base.Move{From: sq(t, "d2"), To: sq(t, "c1"), Piece: base.WBishop}) {
		t.Fatal("capturing the checker must be legal")
	}
}

func TestIsLegalMoveRejectsSelfCheck(t *testing.T) {
	b := boardWith(t, true, map[string]base.Piece{
		"e1": base.WKing,
		"e2": base.WBishop,
		"e8": base.BRook,
		"a8": base.BKing,
	})
	if IsLegalMove(b, base.Move{From: sq(t, "e2"), To: sq(t, "d3"), Piece: base.WBishop}) {
		t.Fatal("pinned bishop must not step off the file")
	}
}

func TestHasAnyLegalMoveShortCircuit(t *testing.T) {
	if !HasAnyLegalMove(base.NewBoard()) {
		t.Fatal("start position has moves")
	}
	b := boardWith(t, false, map[string]base.Piece{
		"a8": base.BKing,
		"b6": base.WKing,
		"c7": base.WQueen,
	})
	if HasAnyLegalMove(b) {
		t.Fatal("stalemated side has no moves")
	}
}
