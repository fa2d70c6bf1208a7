package policy

import (
	"testing"

	"voicechess/src/base"
	"voicechess/src/logic/rules"
	"voicechess/src/logic/rules/moves"
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

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"easy", Easy, true},
		{"MEDIUM", Medium, true},
		{" hard ", Hard, true},
		{"2", Medium, true},
		{"grandmaster", Easy, false},
		{"", Easy, false},
	}
	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("%q: err=%v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("%q: got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestChooseIsAlwaysLegal(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		t.Run(d.String(), func(t *testing.T) {
			sel := NewSelector(1)
			b := base.NewBoard()
			// play a handful of automated moves for both sides
			for i := 0; i < 6; i++ {
				mv, ok := sel.Choose(b, d)
				if !ok {
					t.Fatalf("move %d: no choice in a live position", i)
				}
				if !rules.IsLegalMove(b, mv) {
					t.Fatalf("move %d: chose illegal %+v", i, mv)
				}
				if _, err := moves.ApplyMove(b, mv); err != nil {
					t.Fatalf("move %d: %v", i, err)
				}
			}
		})
	}
}

func TestChooseReportsNoMoves(t *testing.T) {
	b := boardWith(t, false, map[string]base.Piece{
		"a8": base.BKing,
		"b6": base.WKing,
		"c7": base.WQueen,
	})
	sel := NewSelector(1)
	if _, ok := sel.Choose(b, Medium); ok {
		t.Fatal("stalemate must yield no move")
	}
}

func TestMediumTakesMostValuableCapture(t *testing.T) {
	// pawn can win a queen, knight can only win a pawn
	b := boardWith(t, true, map[string]base.Piece{
		"e1": base.WKing,
		"e8": base.BKing,
		"c4": base.WPawn,
		"d5": base.BQueen,
		"f3": base.WKnight,
		"e5": base.BPawn,
	})
	sel := NewSelector(7)
	for i := 0; i < 20; i++ {
		mv, ok := sel.Choose(b, Medium)
		if !ok {
			t.Fatal("no move")
		}
		if mv.From != sq(t, "c4") || mv.To != sq(t, "d5") {
			t.Fatalf("iteration %d: expected queen capture, got %+v", i, mv)
		}
	}
}

func TestMediumFallsBackWithoutCaptures(t *testing.T) {
	b := base.NewBoard()
	sel := NewSelector(3)
	mv, ok := sel.Choose(b, Medium)
	if !ok {
		t.Fatal("no move")
	}
	if !rules.IsLegalMove(b, mv) {
		t.Fatalf("fallback chose illegal %+v", mv)
	}
}

func TestHardFindsMateInOne(t *testing.T) {
	b := boardWith(t, true, map[string]base.Piece{
		"a8": base.BKing,
		"b6": base.WKing,
		"h5": base.WQueen,
	})
	sel := NewSelector(42)
	mv, ok := sel.Choose(b, Hard)
	if !ok {
		t.Fatal("no move")
	}
	if _, err := moves.ApplyMove(b, mv); err != nil {
		t.Fatal(err)
	}
	if got := rules.GameStatusOf(b); got != base.Checkmate {
		t.Fatalf("hard tier missed the mate: picked %+v, status %v", mv, got)
	}
}

func TestHardAvoidsHangingMaterial(t *testing.T) {
	// the only captures lose the queen to a recapture; depth three sees it
	b := boardWith(t, true, map[string]base.Piece{
		"a1": base.WKing,
		"h8": base.BKing,
		"d1": base.WQueen,
		"d7": base.BPawn,
		"c8": base.BBishop, // guards d7
	})
	sel := NewSelector(11)
	mv, ok := sel.Choose(b, Hard)
	if !ok {
		t.Fatal("no move")
	}
	if mv.From == sq(t, "d1") && mv.To == sq(t, "d7") {
		t.Fatal("queen grabbed a guarded pawn")
	}
}

func TestAutomatedPromotionQueens(t *testing.T) {
	b := boardWith(t, true, map[string]base.Piece{
		"e1": base.WKing,
		"a8": base.BKing,
		"g7": base.WPawn,
	})
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		sel := NewSelector(5)
		cl := moves.CloneBoard(b)
		for i := 0; i < 10; i++ {
			mv, ok := sel.Choose(cl, d)
			if !ok {
				t.Fatal("no move")
			}
			if mv.From == sq(t, "g7") && mv.To == sq(t, "g8") {
				if base.KindOf(mv.Piece) != base.Queen {
					t.Fatalf("%v: automated promotion must queen, got %v", d, mv.Piece)
				}
				ap, err := moves.ApplyMove(moves.CloneBoard(cl), mv)
				if err != nil {
					t.Fatal(err)
				}
				if ap.PromotionPending {
					t.Fatalf("%v: automated promotion must not suspend", d)
				}
			}
		}
	}
}

func TestSeededSelectorIsDeterministic(t *testing.T) {
	a, b := NewSelector(99), NewSelector(99)
	board := base.NewBoard()
	for i := 0; i < 5; i++ {
		ma, _ := a.Choose(board, Easy)
		mb, _ := b.Choose(board, Easy)
		if ma != mb {
			t.Fatalf("move %d diverged: %+v vs %+v", i, ma, mb)
		}
		if _, err := moves.ApplyMove(board, ma); err != nil {
			t.Fatal(err)
		}
	}
}
