package moves

import (
	"errors"
	"fmt"

	"voicechess/src/base"
)

// Applied reports the side effects of a single move application.
type Applied struct {
	Captured  base.Piece // EmptyPiece when nothing was taken
	Castled   bool
	Kingside  bool // meaningful only when Castled
	EnPassant bool
	// PromotionPending is set when a pawn reached the last rank and the move
	// carried no replacement piece: the turn did not flip and the board holds
	// the pawn until ResolvePromotion substitutes it.
	PromotionPending bool
	Promoted         base.Piece // replacement piece placed, EmptyPiece otherwise
}

var errNilBoard = errors.New("nil board")

// ApplyMove applies a move that the caller already validated against the legal
// set. It updates capture state, castling flags, the en passant memory and the
// side to move, and reports what happened.
func ApplyMove(b *base.Board, mv base.Move) (Applied, error) {
	var ap Applied
	if b == nil {
		return ap, errNilBoard
	}
	if !base.IsValidPoint(mv.From) || !base.IsValidPoint(mv.To) {
		return ap, fmt.Errorf("move out of bounds: %+v", mv)
	}
	mb := &b.Mailbox
	pc := base.GetPieceAt(mb, mv.From)
	if base.KindOf(pc) == base.KindNone {
		return ap, fmt.Errorf("no piece at %s", base.AlgebraicFromPoint(mv.From))
	}
	white := base.PieceIsWhite(pc)
	if white != b.WhiteToMove {
		return ap, fmt.Errorf("%s is not the side to move", base.AlgebraicFromPoint(mv.From))
	}

	kind := base.KindOf(pc)
	toIdx := base.ConvPointToIndex(mv.To)

	// en passant capture: pawn steps diagonally onto the empty square behind
	// the pawn that just advanced two ranks
	if kind == base.Pawn && b.EnPassant >= 0 && mb[toIdx] == base.EmptyPiece {
		land := base.ConvIndexToPoint(b.EnPassant)
		skip := land
		if base.PieceIsWhite(mb[b.EnPassant]) {
			skip.H--
		} else {
			skip.H++
		}
		if mv.To == skip {
			ap.EnPassant = true
			ap.Captured = mb[b.EnPassant]
			base.SetPieceAt(mb, land, base.EmptyPiece)
		}
	}
	if !ap.EnPassant {
		ap.Captured = mb[toIdx]
	}

	// the target is valid for exactly one reply; clear before setting a fresh one
	b.EnPassant = -1
	if kind == base.Pawn {
		delta := int(mv.To.H) - int(mv.From.H)
		if delta == 2 || delta == -2 {
			b.EnPassant = toIdx
		}
	}

	// castle: king moves two files, the rook jumps to the square the king crossed
	if kind == base.King {
		dw := int(mv.To.W) - int(mv.From.W)
		if dw == 2 || dw == -2 {
			ap.Castled = true
			ap.Kingside = dw == 2
			rook := base.MakePiece(base.Rook, white)
			if ap.Kingside {
				base.SetPieceAt(mb, base.Point{H: mv.From.H, W: 5}, rook)
				base.SetPieceAt(mb, base.Point{H: mv.From.H, W: 7}, base.EmptyPiece)
			} else {
				base.SetPieceAt(mb, base.Point{H: mv.From.H, W: 3}, rook)
				base.SetPieceAt(mb, base.Point{H: mv.From.H, W: 0}, base.EmptyPiece)
			}
		}
	}

	// relocate the mover
	base.SetPieceAt(mb, mv.To, pc)
	base.SetPieceAt(mb, mv.From, base.EmptyPiece)

	// promotion: a replacement piece in the move resolves immediately; a bare
	// pawn move onto the last rank suspends the turn flip
	if kind == base.Pawn {
		lastRank := uint8(7)
		if !white {
			lastRank = 0
		}
		if mv.To.H == lastRank {
			if base.KindOf(mv.Piece) != base.Pawn && base.KindOf(mv.Piece) != base.KindNone {
				base.SetPieceAt(mb, mv.To, mv.Piece)
				ap.Promoted = mv.Piece
			} else {
				ap.PromotionPending = true
			}
		}
	}

	markCastlingFlags(b, pc, mv, ap.Captured)

	if !ap.PromotionPending {
		b.WhiteToMove = !b.WhiteToMove
	}
	return ap, nil
}

// markCastlingFlags records king/rook departures from their home squares, and
// rook home squares lost to capture. Flags only ever flip to true.
func markCastlingFlags(b *base.Board, pc base.Piece, mv base.Move, captured base.Piece) {
	switch base.KindOf(pc) {
	case base.King:
		if base.PieceIsWhite(pc) {
			b.Castling.WKingMoved = true
		} else {
			b.Castling.BKingMoved = true
		}
	case base.Rook:
		switch mv.From {
		case base.Point{H: 0, W: 0}:
			b.Castling.WRookAMoved = true
		case base.Point{H: 0, W: 7}:
			b.Castling.WRookHMoved = true
		case base.Point{H: 7, W: 0}:
			b.Castling.BRookAMoved = true
		case base.Point{H: 7, W: 7}:
			b.Castling.BRookHMoved = true
		}
	}
	if base.KindOf(captured) == base.Rook {
		switch mv.To {
		case base.Point{H: 0, W: 0}:
			b.Castling.WRookAMoved = true
		case base.Point{H: 0, W: 7}:
			b.Castling.WRookHMoved = true
		case base.Point{H: 7, W: 0}:
			b.Castling.BRookAMoved = true
		case base.Point{H: 7, W: 7}:
			b.Castling.BRookHMoved = true
		}
	}
}

func CloneBoard(b *base.Board) *base.Board {
	if b == nil {
		return nil
	}
	c := *b // Mailbox is a value type
	return &c
}

// GenerateLegalMoves filters the pseudo-legal set: each candidate is played out
// on a scratch copy and dropped if the mover's own king ends up attacked.
func GenerateLegalMoves(b *base.Board) []base.Move {
	pl := PseudoLegalMoves(b)
	legal := make([]base.Move, 0, len(pl))
	for _, mv := range pl {
		cl := CloneBoard(b)
		mover := base.GetPieceAt(&cl.Mailbox, mv.From)
		white := base.PieceIsWhite(mover)
		if _, err := ApplyMove(cl, mv); err != nil {
			continue
		}
		kingIdx := FindKing(&cl.Mailbox, white)
		if kingIdx < 0 || IsSquareAttacked(cl, kingIdx, !white) {
			continue
		}
		legal = append(legal, mv)
	}
	return legal
}
