package moves

import (
	"voicechess/src/base"
)

var knightOffsets = [8][2]int{{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}, {1, -2}, {2, -1}}

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// find king and return his index, -1 when absent
func FindKing(mb *base.Mailbox, white bool) int {
	target := base.MakePiece(base.King, white)
	for i := 0; i < 64; i++ {
		if mb[i] == target {
			return i
		}
	}
	return -1
}

// IsSquareAttacked checks whether the square at idx is attacked by the given color.
// Pawn attacks are the diagonals only; occupancy of the target square does not matter.
func IsSquareAttacked(b *base.Board, idx int, byWhite bool) bool {
	mb := &b.Mailbox
	sq := base.ConvIndexToPoint(idx)
	h := int(sq.H)
	w := int(sq.W)

	// pawns: a white pawn attacks from one rank below, a black one from above
	ph := h - 1
	if !byWhite {
		ph = h + 1
	}
	for _, dw := range []int{-1, 1} {
		wt := w + dw
		if ph >= 0 && ph < 8 && wt >= 0 && wt < 8 {
			p := mb[ph*8+wt]
			if base.KindOf(p) == base.Pawn && base.PieceIsWhite(p) == byWhite {
				return true
			}
		}
	}

	// knights
	for _, o := range knightOffsets {
		ht := h + o[0]
		wt := w + o[1]
		if ht >= 0 && ht < 8 && wt >= 0 && wt < 8 {
			p := mb[ht*8+wt]
			if base.KindOf(p) == base.Knight && base.PieceIsWhite(p) == byWhite {
				return true
			}
		}
	}

	// sliding rays: rooks/queens on straights, bishops/queens on diagonals
	ray := func(dirs [4][2]int, slider base.Kind) bool {
		for _, d := range dirs {
			for step := 1; ; step++ {
				ht := h + d[0]*step
				wt := w + d[1]*step
				if ht < 0 || ht >= 8 || wt < 0 || wt >= 8 {
					break
				}
				p := mb[ht*8+wt]
				if p == base.EmptyPiece {
					continue
				}
				k := base.KindOf(p)
				if base.PieceIsWhite(p) == byWhite && (k == slider || k == base.Queen) {
					return true
				}
				break
			}
		}
		return false
	}
	if ray(rookDirs, base.Rook) || ray(bishopDirs, base.Bishop) {
		return true
	}

	// adjacent enemy king
	for dh := -1; dh <= 1; dh++ {
		for dw := -1; dw <= 1; dw++ {
			if dh == 0 && dw == 0 {
				continue
			}
			ht := h + dh
			wt := w + dw
			if ht >= 0 && ht < 8 && wt >= 0 && wt < 8 {
				p := mb[ht*8+wt]
				if base.KindOf(p) == base.King && base.PieceIsWhite(p) == byWhite {
					return true
				}
			}
		}
	}

	return false
}

func pseudoPawnMoves(b *base.Board, index int, out *[]base.Move) {
	mb := &b.Mailbox
	from := base.ConvIndexToPoint(index)
	p := base.GetPieceAt(mb, from)
	white := base.PieceIsWhite(p)
	h := int(from.H)
	w := int(from.W)

	dir := 1
	startRank := 1
	promoRank := 7
	if !white {
		dir = -1
		startRank = 6
		promoRank = 0
	}

	// a pawn reaching the last rank yields the four replacement variants
	push := func(to base.Point) {
		if int(to.H) == promoRank {
			for _, k := range []base.Kind{base.Queen, base.Rook, base.Bishop, base.Knight} {
				*out = append(*out, base.Move{From: from, To: to, Piece: base.MakePiece(k, white)})
			}
			return
		}
		*out = append(*out, base.Move{From: from, To: to, Piece: p})
	}

	// single step onto an empty square
	fh := h + dir
	if fh >= 0 && fh < 8 {
		to := base.Point{H: uint8(fh), W: uint8(w)}
		if base.GetPieceAt(mb, to) == base.EmptyPiece {
			push(to)
		}
	}
	// double step from the starting rank, both squares empty
	if h == startRank {
		mid := base.Point{H: uint8(h + dir), W: uint8(w)}
		to := base.Point{H: uint8(h + dir*2), W: uint8(w)}
		if base.GetPieceAt(mb, mid) == base.EmptyPiece && base.GetPieceAt(mb, to) == base.EmptyPiece {
			*out = append(*out, base.Move{From: from, To: to, Piece: p})
		}
	}
	// diagonal captures
	for _, dw := range []int{-1, 1} {
		wt := w + dw
		if fh >= 0 && fh < 8 && wt >= 0 && wt < 8 {
			to := base.Point{H: uint8(fh), W: uint8(wt)}
			q := base.GetPieceAt(mb, to)
			if q != base.EmptyPiece && !base.SameColor(p, q) {
				push(to)
			}
		}
	}
	// en passant: enemy pawn landed beside us last move, capture onto the skipped square
	if b.EnPassant >= 0 {
		land := base.ConvIndexToPoint(b.EnPassant)
		victim := base.GetPieceAt(mb, land)
		if base.KindOf(victim) == base.Pawn && !base.SameColor(p, victim) &&
			int(land.H) == h && (int(land.W) == w-1 || int(land.W) == w+1) {
			to := base.Point{H: uint8(h + dir), W: land.W}
			*out = append(*out, base.Move{From: from, To: to, Piece: p})
		}
	}
}

func pseudoKnightMoves(b *base.Board, fromIdx int, out *[]base.Move) {
	mb := &b.Mailbox
	from := base.ConvIndexToPoint(fromIdx)
	p := base.GetPieceAt(mb, from)
	h := int(from.H)
	w := int(from.W)

	for _, o := range knightOffsets {
		ht := h + o[0]
		wt := w + o[1]
		if ht >= 0 && ht < 8 && wt >= 0 && wt < 8 {
			pt := base.Point{H: uint8(ht), W: uint8(wt)}
			q := base.GetPieceAt(mb, pt)
			if !base.SameColor(p, q) {
				*out = append(*out, base.Move{From: from, To: pt, Piece: p})
			}
		}
	}
}

func pseudoKingMoves(b *base.Board, fromIdx int, out *[]base.Move) {
	mb := &b.Mailbox
	from := base.ConvIndexToPoint(fromIdx)
	p := base.GetPieceAt(mb, from)
	white := base.PieceIsWhite(p)
	h := int(from.H)
	w := int(from.W)

	for dh := -1; dh <= 1; dh++ {
		for dw := -1; dw <= 1; dw++ {
			if dh == 0 && dw == 0 {
				continue
			}
			ht := h + dh
			wt := w + dw
			if ht >= 0 && ht < 8 && wt >= 0 && wt < 8 {
				pt := base.Point{H: uint8(ht), W: uint8(wt)}
				q := base.GetPieceAt(mb, pt)
				if !base.SameColor(p, q) {
					*out = append(*out, base.Move{From: from, To: pt, Piece: p})
				}
			}
		}
	}

	castlingMoves(b, from, white, out)
}

// castlingMoves appends the castle candidates for a king standing on its home square.
// Kingside: f/g empty, e/f/g not attacked. Queenside: b/c/d empty, e/d/c not attacked.
func castlingMoves(b *base.Board, from base.Point, white bool, out *[]base.Move) {
	var home uint8
	if !white {
		home = 7
	}
	if from.H != home || from.W != 4 {
		return
	}
	mb := &b.Mailbox
	p := base.GetPieceAt(mb, from)
	rook := base.MakePiece(base.Rook, white)

	kingMoved := b.Castling.WKingMoved
	rookHMoved := b.Castling.WRookHMoved
	rookAMoved := b.Castling.WRookAMoved
	if !white {
		kingMoved = b.Castling.BKingMoved
		rookHMoved = b.Castling.BRookHMoved
		rookAMoved = b.Castling.BRookAMoved
	}
	if kingMoved {
		return
	}

	empty := func(w uint8) bool {
		return base.GetPieceAt(mb, base.Point{H: home, W: w}) == base.EmptyPiece
	}
	safe := func(w uint8) bool {
		return !IsSquareAttacked(b, base.ConvPointToIndex(base.Point{H: home, W: w}), !white)
	}

	if !rookHMoved && base.GetPieceAt(mb, base.Point{H: home, W: 7}) == rook &&
		empty(5) && empty(6) && safe(4) && safe(5) && safe(6) {
		*out = append(*out, base.Move{From: from, To: base.Point{H: home, W: 6}, Piece: p})
	}
	if !rookAMoved && base.GetPieceAt(mb, base.Point{H: home, W: 0}) == rook &&
		empty(1) && empty(2) && empty(3) && safe(4) && safe(3) && safe(2) {
		*out = append(*out, base.Move{From: from, To: base.Point{H: home, W: 2}, Piece: p})
	}
}

// ray walk for bishops/rooks/queens
func genSliding(b *base.Board, fromIdx int, dirs [4][2]int, out *[]base.Move) {
	mb := &b.Mailbox
	from := base.ConvIndexToPoint(fromIdx)
	p := base.GetPieceAt(mb, from)
	h := int(from.H)
	w := int(from.W)

	for _, d := range dirs {
		for step := 1; ; step++ {
			ht := h + d[0]*step
			wt := w + d[1]*step
			if ht < 0 || ht >= 8 || wt < 0 || wt >= 8 {
				break
			}
			pt := base.Point{H: uint8(ht), W: uint8(wt)}
			q := base.GetPieceAt(mb, pt)
			if q == base.EmptyPiece {
				*out = append(*out, base.Move{From: from, To: pt, Piece: p})
				continue
			}
			if !base.SameColor(p, q) {
				*out = append(*out, base.Move{From: from, To: pt, Piece: p})
			}
			break
		}
	}
}

// PseudoLegalMovesFrom generates the movement-pattern moves of the piece at idx,
// ignoring check safety.
func PseudoLegalMovesFrom(b *base.Board, idx int, out *[]base.Move) {
	switch base.KindOf(b.Mailbox[idx]) {
	case base.Pawn:
		pseudoPawnMoves(b, idx, out)
	case base.Knight:
		pseudoKnightMoves(b, idx, out)
	case base.Bishop:
		genSliding(b, idx, bishopDirs, out)
	case base.Rook:
		genSliding(b, idx, rookDirs, out)
	case base.Queen:
		genSliding(b, idx, rookDirs, out)
		genSliding(b, idx, bishopDirs, out)
	case base.King:
		pseudoKingMoves(b, idx, out)
	}
}

// PseudoLegalMoves generates all movement-pattern moves for the side to move.
func PseudoLegalMoves(b *base.Board) []base.Move {
	out := make([]base.Move, 0, 64)
	for i := 0; i < 64; i++ {
		p := b.Mailbox[i]
		if base.KindOf(p) == base.KindNone {
			continue
		}
		if base.PieceIsWhite(p) != b.WhiteToMove {
			continue
		}
		PseudoLegalMovesFrom(b, i, &out)
	}
	return out
}
