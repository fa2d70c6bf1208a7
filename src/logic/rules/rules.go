package rules

import (
	"voicechess/src/base"
	"voicechess/src/logic/rules/moves"
)

// IsLegalMove checks the move against the legal set of the current board.
func IsLegalMove(b *base.Board, mv base.Move) bool {
	for _, m := range moves.GenerateLegalMoves(b) {
		if m.From == mv.From && m.To == mv.To && m.Piece == mv.Piece {
			return true
		}
	}
	return false
}

func IsInCheck(b *base.Board, white bool) bool {
	kingIdx := moves.FindKing(&b.Mailbox, white)
	if kingIdx < 0 {
		// the engine never removes a king; treat an absent one as not in check
		return false
	}
	return moves.IsSquareAttacked(b, kingIdx, !white)
}

// GameStatusOf evaluates the side to move: Check, Checkmate, Stalemate or Pass.
func GameStatusOf(b *base.Board) base.GameStatus {
	if b == nil {
		return base.InvalidGame
	}
	inCheck := IsInCheck(b, b.WhiteToMove)
	if !HasAnyLegalMove(b) {
		if inCheck {
			return base.Checkmate
		}
		return base.Stalemate
	}
	if inCheck {
		return base.Check
	}
	return base.Pass
}

// HasAnyLegalMove short-circuits on the first piece with a nonempty legal set.
func HasAnyLegalMove(b *base.Board) bool {
	for i := 0; i < 64; i++ {
		p := b.Mailbox[i]
		if base.KindOf(p) == base.KindNone || base.PieceIsWhite(p) != b.WhiteToMove {
			continue
		}
		var pl []base.Move
		moves.PseudoLegalMovesFrom(b, i, &pl)
		for _, mv := range pl {
			cl := moves.CloneBoard(b)
			if _, err := moves.ApplyMove(cl, mv); err != nil {
				continue
			}
			kingIdx := moves.FindKing(&cl.Mailbox, b.WhiteToMove)
			if kingIdx >= 0 && !moves.IsSquareAttacked(cl, kingIdx, !b.WhiteToMove) {
				return true
			}
		}
	}
	return false
}
