package policy

import (
	"fmt"
	"math/rand"
	"strings"

	"voicechess/src/base"
	"voicechess/src/logic/rules"
	"voicechess/src/logic/rules/moves"
)

// Difficulty selects how the automated side picks its move.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "medium", "2":
		return Medium, nil
	case "hard", "3":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("unknown difficulty %q", s)
	}
}

// material values in centipawns
func pieceValue(k base.Kind) int {
	switch k {
	case base.Pawn:
		return 100
	case base.Knight:
		return 320
	case base.Bishop:
		return 330
	case base.Rook:
		return 500
	case base.Queen:
		return 900
	case base.King:
		return 100000 // sentinel, never actually capturable
	default:
		return 0
	}
}

const (
	mateScore = 1_000_000
	hardDepth = 3 // plies of negamax for the hardest tier
)

// Selector picks moves for the automated side. It only ever chooses from the
// legal set, and resolves its own promotions to queen without pausing.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Choose returns a legal move for the side to move, or false when none exists.
func (s *Selector) Choose(b *base.Board, d Difficulty) (base.Move, bool) {
	legal := queenPromotionsOnly(moves.GenerateLegalMoves(b))
	if len(legal) == 0 {
		return base.Move{}, false
	}
	switch d {
	case Medium:
		return s.chooseCapture(b, legal), true
	case Hard:
		return s.chooseSearched(b, legal), true
	default:
		return s.chooseRandom(legal), true
	}
}

// queenPromotionsOnly drops the rook/bishop/knight promotion variants so the
// automated side always queens.
func queenPromotionsOnly(legal []base.Move) []base.Move {
	out := legal[:0]
	for _, mv := range legal {
		k := base.KindOf(mv.Piece)
		if k == base.Rook || k == base.Bishop || k == base.Knight {
			if isPromotionVariant(legal, mv) {
				continue
			}
		}
		out = append(out, mv)
	}
	return out
}

// isPromotionVariant: the same from/to also appears with a queen piece, which
// only happens for promotion fans.
func isPromotionVariant(legal []base.Move, mv base.Move) bool {
	q := base.MakePiece(base.Queen, base.PieceIsWhite(mv.Piece))
	for _, m := range legal {
		if m.From == mv.From && m.To == mv.To && m.Piece == q {
			return true
		}
	}
	return false
}

// chooseRandom picks a piece uniformly among those with a legal move, then a
// destination uniformly among that piece's moves.
func (s *Selector) chooseRandom(legal []base.Move) base.Move {
	byFrom := make(map[base.Point][]base.Move)
	froms := make([]base.Point, 0, 16)
	for _, mv := range legal {
		if _, seen := byFrom[mv.From]; !seen {
			froms = append(froms, mv.From)
		}
		byFrom[mv.From] = append(byFrom[mv.From], mv)
	}
	group := byFrom[froms[s.rng.Intn(len(froms))]]
	return group[s.rng.Intn(len(group))]
}

// chooseCapture prefers the most valuable capture on the board; without a
// capture it falls back to the random tier.
func (s *Selector) chooseCapture(b *base.Board, legal []base.Move) base.Move {
	type scored struct {
		mv    base.Move
		value int
	}
	var captures []scored
	top := 0
	for _, mv := range legal {
		v := victimValue(b, mv)
		if v > 0 {
			captures = append(captures, scored{mv: mv, value: v})
			if v > top {
				top = v
			}
		}
	}
	if len(captures) == 0 {
		return s.chooseRandom(legal)
	}
	best := captures[:0]
	for _, c := range captures {
		if c.value == top {
			best = append(best, c)
		}
	}
	return best[s.rng.Intn(len(best))].mv
}

// victimValue is the material gained by the move, 0 for quiet moves. En
// passant destinations are empty, so the skipped-square geometry is rechecked.
func victimValue(b *base.Board, mv base.Move) int {
	target := base.GetPieceAt(&b.Mailbox, mv.To)
	if base.KindOf(target) != base.KindNone {
		return pieceValue(base.KindOf(target))
	}
	mover := base.GetPieceAt(&b.Mailbox, mv.From)
	if base.KindOf(mover) == base.Pawn && mv.From.W != mv.To.W {
		return pieceValue(base.Pawn)
	}
	return 0
}

// chooseSearched runs a fixed-depth negamax with alpha-beta over the root
// moves; ties are broken by the shuffled visit order.
func (s *Selector) chooseSearched(b *base.Board, legal []base.Move) base.Move {
	order := make([]base.Move, len(legal))
	copy(order, legal)
	s.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	best := order[0]
	bestScore := -mateScore * 2
	for _, mv := range order {
		nb := moves.CloneBoard(b)
		if _, err := moves.ApplyMove(nb, mv); err != nil {
			continue
		}
		score := -negamax(nb, hardDepth-1, -mateScore*2, mateScore*2)
		if score > bestScore {
			bestScore = score
			best = mv
		}
	}
	return best
}

// negamax returns the evaluation from the side-to-move point of view.
func negamax(b *base.Board, depth, alpha, beta int) int {
	if depth == 0 {
		return evaluateMaterial(b)
	}
	mvs := queenPromotionsOnly(moves.GenerateLegalMoves(b))
	if len(mvs) == 0 {
		if rules.IsInCheck(b, b.WhiteToMove) {
			return -mateScore - depth // prefer faster mates
		}
		return 0 // stalemate
	}
	best := -mateScore * 2
	for _, mv := range mvs {
		nb := moves.CloneBoard(b)
		if _, err := moves.ApplyMove(nb, mv); err != nil {
			continue
		}
		v := -negamax(nb, depth-1, -beta, -alpha)
		if v > best {
			best = v
		}
		if v > alpha {
			alpha = v
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evaluateMaterial sums piece values for the side to move minus the opponent.
func evaluateMaterial(b *base.Board) int {
	sum := 0
	for i := 0; i < 64; i++ {
		p := b.Mailbox[i]
		k := base.KindOf(p)
		if k == base.KindNone || k == base.King {
			continue
		}
		if base.PieceIsWhite(p) {
			sum += pieceValue(k)
		} else {
			sum -= pieceValue(k)
		}
	}
	if b.WhiteToMove {
		return sum
	}
	return -sum
}
