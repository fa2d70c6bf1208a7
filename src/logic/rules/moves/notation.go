package moves

import (
	"fmt"

	"voicechess/src/base"
)

// ShortSAN renders the compact notation kept in the move history: piece letter
// plus destination, castles as O-O/O-O-O, promotions with a "=Q" suffix.
func ShortSAN(mv base.Move, ap Applied) string {
	if ap.Castled {
		if ap.Kingside {
			return "O-O"
		}
		return "O-O-O"
	}
	to := base.AlgebraicFromPoint(mv.To)
	kind := base.KindOf(mv.Piece)
	if ap.Promoted != base.EmptyPiece {
		return fmt.Sprintf("%s=%s", to, base.KindOf(ap.Promoted).Letter())
	}
	if kind == base.Pawn || ap.PromotionPending {
		return to
	}
	return kind.Letter() + to
}

// PromotionSuffix is appended to the last history entry when a suspended
// promotion is resolved.
func PromotionSuffix(k base.Kind) string {
	return "=" + k.Letter()
}

// Describe renders the narration line for an applied move, e.g.
// "white knight to f3" or "black pawn takes rook on e4".
func Describe(mv base.Move, ap Applied) string {
	color := "white"
	if base.PieceIsBlack(mv.Piece) {
		color = "black"
	}
	to := base.AlgebraicFromPoint(mv.To)

	if ap.Castled {
		side := "kingside"
		if !ap.Kingside {
			side = "queenside"
		}
		return fmt.Sprintf("%s castles %s", color, side)
	}

	mover := base.KindOf(mv.Piece)
	if ap.Promoted != base.EmptyPiece || ap.PromotionPending {
		mover = base.Pawn
	}

	var s string
	if base.KindOf(ap.Captured) != base.KindNone {
		s = fmt.Sprintf("%s %s takes %s on %s", color, mover, base.KindOf(ap.Captured), to)
		if ap.EnPassant {
			s += " en passant"
		}
	} else {
		s = fmt.Sprintf("%s %s to %s", color, mover, to)
	}
	if ap.Promoted != base.EmptyPiece {
		s += fmt.Sprintf(", promotes to %s", base.KindOf(ap.Promoted))
	}
	return s
}

// DescribePromotion is the narration line for a resolved suspended promotion.
func DescribePromotion(white bool, k base.Kind, at base.Point) string {
	color := "white"
	if !white {
		color = "black"
	}
	return fmt.Sprintf("%s pawn on %s promotes to %s", color, base.AlgebraicFromPoint(at), k)
}
