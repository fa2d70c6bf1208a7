package history

import (
	"errors"

	"voicechess/src/base"
)

// History keeps one snapshot per applied move for undo/redo. Entry zero is the
// position before any move; entries past current are the redo tail and get
// truncated on the next push.
type History struct {
	entries []Entry
	current int
}

type Entry struct {
	Move     base.Move
	Notation string
	Captured base.Piece
	Board    base.Board // position after the move
}

var (
	ErrTopOfHistory = errors.New("no move to undo")
	ErrEndOfHistory = errors.New("no move to redo")
)

func NewHistory(initial base.Board) *History {
	return &History{entries: []Entry{{Board: initial}}}
}

// Len is the number of applied moves reachable by undo.
func (h *History) Len() int { return h.current }

// Push records an applied move, discarding any redo tail.
func (h *History) Push(after base.Board, mv base.Move, notation string, captured base.Piece) {
	h.entries = h.entries[:h.current+1]
	h.entries = append(h.entries, Entry{Move: mv, Notation: notation, Captured: captured, Board: after})
	h.current++
}

// AmendLast rewrites the most recent entry; used when a suspended promotion
// resolves and the stored position and notation must absorb the substitution.
func (h *History) AmendLast(after base.Board, notationSuffix string) {
	if h.current == 0 {
		return
	}
	h.entries[h.current].Board = after
	h.entries[h.current].Notation += notationSuffix
}

func (h *History) Undo(b *base.Board) error {
	if h.current == 0 {
		return ErrTopOfHistory
	}
	h.current--
	*b = h.entries[h.current].Board
	return nil
}

func (h *History) Redo(b *base.Board) error {
	if h.current+1 >= len(h.entries) {
		return ErrEndOfHistory
	}
	h.current++
	*b = h.entries[h.current].Board
	return nil
}

// LastMove returns the move that produced the current position, nil at the top.
func (h *History) LastMove() *base.Move {
	if h.current == 0 {
		return nil
	}
	mv := h.entries[h.current].Move
	return &mv
}

// Notations lists the notation of every move up to the current position.
func (h *History) Notations() []string {
	out := make([]string, 0, h.current)
	for i := 1; i <= h.current; i++ {
		out = append(out, h.entries[i].Notation)
	}
	return out
}

// CapturedBy lists the pieces the given side has taken, in capture order.
func (h *History) CapturedBy(white bool) []base.Piece {
	var out []base.Piece
	for i := 1; i <= h.current; i++ {
		e := h.entries[i]
		if base.KindOf(e.Captured) == base.KindNone {
			continue
		}
		// promotion moves carry the replacement piece; its color is the mover's
		if base.PieceIsWhite(e.Move.Piece) == white {
			out = append(out, e.Captured)
		}
	}
	return out
}
