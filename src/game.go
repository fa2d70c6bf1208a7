package src

import (
	"errors"
	"time"

	"voicechess/src/base"
	"voicechess/src/logic/history"
	"voicechess/src/logic/rules"
	"voicechess/src/logic/rules/moves"
	"voicechess/src/logx"
	"voicechess/src/policy"

	"golang.org/x/exp/slices"
)

// Rejection reasons. The boundary methods translate these to a false return
// and leave the game state untouched.
var (
	ErrOutOfBounds        = errors.New("coordinate outside the board")
	ErrNoPieceAtOrigin    = errors.New("no piece at origin square")
	ErrNotPlayersTurn     = errors.New("piece does not belong to the side to move")
	ErrIllegalDestination = errors.New("destination not in the legal-move set")
	ErrAmbiguousTarget    = errors.New("more than one piece can reach the target")
	ErrNoPromotionPending = errors.New("no promotion outstanding")
	ErrPromotionPending   = errors.New("promotion must be resolved first")
	ErrGameOver           = errors.New("game reached a terminal state")
	ErrNotOpponentsTurn   = errors.New("it is not the automated side's turn")
)

// Event is a discrete signal for the audio/haptic layer. One event fires per
// applied move: the most significant of checkmate > check > capture > move.
type Event uint8

const (
	EventMove Event = iota
	EventCapture
	EventCheck
	EventCheckmate
)

func (e Event) String() string {
	switch e {
	case EventCapture:
		return "capture"
	case EventCheck:
		return "check"
	case EventCheckmate:
		return "checkmate"
	default:
		return "move"
	}
}

// PromotionPending marks the square and color of a pawn waiting for its
// replacement piece; turn advancement is suspended while it is set.
type PromotionPending struct {
	Pos   base.Point
	White bool
}

// EnPassantTarget names the landing square of the last double pawn advance.
type EnPassantTarget struct {
	Pos   base.Point
	White bool
}

// Snapshot is the read-only view published to the narration/UI layer.
type Snapshot struct {
	Board             base.Mailbox
	WhiteToMove       bool
	Check             bool
	Checkmate         bool
	Stalemate         bool
	AwaitingPromotion bool
	CapturedByWhite   []base.Piece
	CapturedByBlack   []base.Piece
	Notation          []string
	LastMove          *base.Move
	Description       string
	EnPassant         *EnPassantTarget
}

// Session owns the whole game state and is the only mutator of it. All
// methods run synchronously to completion; callers drive any pacing between a
// human move and the automated reply.
type Session struct {
	board      *base.Board
	history    *history.History
	status     base.GameStatus
	pending    *PromotionPending
	selector   *policy.Selector
	level      policy.Difficulty
	humanWhite bool
	lastDesc   string
	selected   *base.Point
	listener   func(Event)
	logger     logx.Logger
}

// NewSession starts a classic game: human plays white, medium difficulty.
func NewSession(logger logx.Logger) *Session {
	s := &Session{
		selector:   policy.NewSelector(time.Now().UnixNano()),
		humanWhite: true,
		logger:     logger,
	}
	s.Reset(policy.Medium)
	return s
}

// SetHumanWhite flips which side the policy plays; takes effect immediately.
func (s *Session) SetHumanWhite(white bool) { s.humanWhite = white }

// SetEventListener registers the audio/haptic callback. The listener must not
// mutate engine state.
func (s *Session) SetEventListener(fn func(Event)) { s.listener = fn }

func (s *Session) SetDifficulty(d policy.Difficulty) {
	s.logger.Debugf("difficulty set to %s", d)
	s.level = d
}

func (s *Session) Difficulty() policy.Difficulty { return s.level }

// Reset reinitializes to the starting position; the difficulty is handed to
// the opponent policy, not stored in board state.
func (s *Session) Reset(d policy.Difficulty) {
	s.logger.Infof("reset game, difficulty %s", d)
	s.board = base.NewBoard()
	s.history = history.NewHistory(*s.board)
	s.status = base.Pass
	s.pending = nil
	s.selected = nil
	s.lastDesc = ""
	s.level = d
}

func (s *Session) Status() base.GameStatus { return s.status }

func (s *Session) CurrentBoard() base.Mailbox { return s.board.Mailbox }

// SelectPiece validates the square and returns the piece's legal destinations
// for highlighting.
func (s *Session) SelectPiece(pos base.Point) ([]base.Point, bool) {
	dests, err := s.selectPiece(pos)
	if err != nil {
		s.logger.Debugf("select %s rejected: %v", base.AlgebraicFromPoint(pos), err)
		return nil, false
	}
	s.selected = &pos
	return dests, true
}

func (s *Session) selectPiece(pos base.Point) ([]base.Point, error) {
	if s.status.Terminal() {
		return nil, ErrGameOver
	}
	if s.pending != nil {
		return nil, ErrPromotionPending
	}
	if !base.IsValidPoint(pos) {
		return nil, ErrOutOfBounds
	}
	pc := base.GetPieceAt(&s.board.Mailbox, pos)
	if base.KindOf(pc) == base.KindNone {
		return nil, ErrNoPieceAtOrigin
	}
	if base.PieceIsWhite(pc) != s.board.WhiteToMove {
		return nil, ErrNotPlayersTurn
	}
	var dests []base.Point
	for _, mv := range moves.GenerateLegalMoves(s.board) {
		if mv.From == pos && !slices.Contains(dests, mv.To) {
			dests = append(dests, mv.To)
		}
	}
	return dests, nil
}

// MoveFrom applies a fully specified move for the side to move.
func (s *Session) MoveFrom(from, to base.Point) bool {
	if err := s.moveFrom(from, to); err != nil {
		s.logger.Warnf("move %s%s rejected: %v",
			base.AlgebraicFromPoint(from), base.AlgebraicFromPoint(to), err)
		return false
	}
	return true
}

func (s *Session) moveFrom(from, to base.Point) error {
	if s.status.Terminal() {
		return ErrGameOver
	}
	if s.pending != nil {
		return ErrPromotionPending
	}
	if !base.IsValidPoint(from) || !base.IsValidPoint(to) {
		return ErrOutOfBounds
	}
	pc := base.GetPieceAt(&s.board.Mailbox, from)
	if base.KindOf(pc) == base.KindNone {
		return ErrNoPieceAtOrigin
	}
	if base.PieceIsWhite(pc) != s.board.WhiteToMove {
		return ErrNotPlayersTurn
	}
	mv, ok := s.lookupLegal(from, to)
	if !ok {
		return ErrIllegalDestination
	}
	return s.commit(mv)
}

// lookupLegal matches on squares only; a promotion fan collapses to a single
// pawn move so the human side pauses at the substitution choice.
func (s *Session) lookupLegal(from, to base.Point) (base.Move, bool) {
	human := s.board.WhiteToMove == s.humanWhite
	for _, mv := range moves.GenerateLegalMoves(s.board) {
		if mv.From != from || mv.To != to {
			continue
		}
		mover := base.GetPieceAt(&s.board.Mailbox, from)
		if base.KindOf(mover) == base.Pawn && base.KindOf(mv.Piece) != base.Pawn {
			if human {
				// suspend: apply as a bare pawn move
				return base.Move{From: from, To: to, Piece: mover}, true
			}
			// automated side queens immediately
			return base.Move{From: from, To: to, Piece: base.MakePiece(base.Queen, base.PieceIsWhite(mover))}, true
		}
		return mv, true
	}
	return base.Move{}, false
}

// MoveToSquare resolves a destination-only request (voice style): it succeeds
// only when exactly one piece, optionally filtered by kind, can legally reach
// the target. A piece picked by SelectPiece takes precedence when it can.
func (s *Session) MoveToSquare(to base.Point, hint base.Kind) bool {
	if err := s.moveToSquare(to, hint); err != nil {
		s.logger.Warnf("move to %s rejected: %v", base.AlgebraicFromPoint(to), err)
		return false
	}
	return true
}

func (s *Session) moveToSquare(to base.Point, hint base.Kind) error {
	if s.status.Terminal() {
		return ErrGameOver
	}
	if s.pending != nil {
		return ErrPromotionPending
	}
	if !base.IsValidPoint(to) {
		return ErrOutOfBounds
	}
	// a prior selection wins disambiguation
	if s.selected != nil {
		from := *s.selected
		mover := base.GetPieceAt(&s.board.Mailbox, from)
		if hint == base.KindNone || base.KindOf(mover) == hint {
			if _, ok := s.lookupLegal(from, to); ok {
				return s.moveFrom(from, to)
			}
		}
	}
	var origins []base.Point
	for _, mv := range moves.GenerateLegalMoves(s.board) {
		if mv.To != to {
			continue
		}
		mover := base.GetPieceAt(&s.board.Mailbox, mv.From)
		if hint != base.KindNone && base.KindOf(mover) != hint {
			continue
		}
		if !slices.Contains(origins, mv.From) {
			origins = append(origins, mv.From)
		}
	}
	switch len(origins) {
	case 0:
		return ErrIllegalDestination
	case 1:
		return s.moveFrom(origins[0], to)
	default:
		return ErrAmbiguousTarget
	}
}

// CastleKingside performs the compound king-and-rook move for the side to move.
func (s *Session) CastleKingside() bool { return s.castle(true) }

// CastleQueenside mirrors CastleKingside over the long side.
func (s *Session) CastleQueenside() bool { return s.castle(false) }

func (s *Session) castle(kingside bool) bool {
	toW := uint8(2)
	if kingside {
		toW = 6
	}
	err := func() error {
		if s.status.Terminal() {
			return ErrGameOver
		}
		if s.pending != nil {
			return ErrPromotionPending
		}
		for _, mv := range moves.GenerateLegalMoves(s.board) {
			if base.KindOf(mv.Piece) == base.King && mv.From.W == 4 && mv.To.W == toW && mv.From.H == mv.To.H {
				return s.commit(mv)
			}
		}
		return ErrIllegalDestination
	}()
	if err != nil {
		s.logger.Warnf("castle rejected: %v", err)
		return false
	}
	return true
}

// ResolvePromotion substitutes the chosen piece for the waiting pawn, flips
// the turn and resumes terminal-state evaluation.
func (s *Session) ResolvePromotion(k base.Kind) bool {
	if err := s.resolvePromotion(k); err != nil {
		s.logger.Warnf("promotion rejected: %v", err)
		return false
	}
	return true
}

func (s *Session) resolvePromotion(k base.Kind) error {
	if s.pending == nil {
		return ErrNoPromotionPending
	}
	switch k {
	case base.Queen, base.Rook, base.Bishop, base.Knight:
	default:
		return ErrIllegalDestination
	}
	p := s.pending
	base.SetPieceAt(&s.board.Mailbox, p.Pos, base.MakePiece(k, p.White))
	s.board.WhiteToMove = !s.board.WhiteToMove
	s.pending = nil
	s.history.AmendLast(*s.board, moves.PromotionSuffix(k))
	s.lastDesc = moves.DescribePromotion(p.White, k, p.Pos)
	s.logger.Infof("promotion resolved: %s", s.lastDesc)
	s.settle(base.EmptyPiece)
	return nil
}

// OpponentMove asks the policy for the automated side's move and applies it.
// The caller owns any delay between the human move and this call.
func (s *Session) OpponentMove() bool {
	if err := s.opponentMove(); err != nil {
		s.logger.Debugf("opponent move skipped: %v", err)
		return false
	}
	return true
}

func (s *Session) opponentMove() error {
	if s.status.Terminal() {
		return ErrGameOver
	}
	if s.pending != nil {
		return ErrPromotionPending
	}
	if s.board.WhiteToMove == s.humanWhite {
		return ErrNotOpponentsTurn
	}
	mv, ok := s.selector.Choose(s.board, s.level)
	if !ok {
		return ErrIllegalDestination
	}
	s.logger.Infof("opponent (%s) plays %s%s", s.level,
		base.AlgebraicFromPoint(mv.From), base.AlgebraicFromPoint(mv.To))
	return s.commit(mv)
}

// Undo restores the position before the last applied move. A pending
// promotion can only be abandoned by Reset.
func (s *Session) Undo() bool {
	if s.pending != nil {
		s.logger.Warnf("undo rejected: %v", ErrPromotionPending)
		return false
	}
	if err := s.history.Undo(s.board); err != nil {
		s.logger.Debugf("undo rejected: %v", err)
		return false
	}
	s.afterHistoryJump()
	return true
}

// Redo reapplies a move undone by Undo.
func (s *Session) Redo() bool {
	if s.pending != nil {
		s.logger.Warnf("redo rejected: %v", ErrPromotionPending)
		return false
	}
	if err := s.history.Redo(s.board); err != nil {
		s.logger.Debugf("redo rejected: %v", err)
		return false
	}
	s.afterHistoryJump()
	return true
}

// no events fire for history navigation; flags are still recomputed
func (s *Session) afterHistoryJump() {
	s.selected = nil
	s.lastDesc = ""
	s.status = rules.GameStatusOf(s.board)
	s.logger.Debugf("history jump, %d moves applied", s.history.Len())
}

// Snapshot publishes the current read-only view.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Board:             s.board.Mailbox,
		WhiteToMove:       s.board.WhiteToMove,
		Check:             s.status == base.Check || s.status == base.Checkmate,
		Checkmate:         s.status == base.Checkmate,
		Stalemate:         s.status == base.Stalemate,
		AwaitingPromotion: s.pending != nil,
		CapturedByWhite:   s.history.CapturedBy(true),
		CapturedByBlack:   s.history.CapturedBy(false),
		Notation:          s.history.Notations(),
		LastMove:          s.history.LastMove(),
		Description:       s.lastDesc,
	}
	if s.board.EnPassant >= 0 {
		pos := base.ConvIndexToPoint(s.board.EnPassant)
		snap.EnPassant = &EnPassantTarget{
			Pos:   pos,
			White: base.PieceIsWhite(s.board.Mailbox[s.board.EnPassant]),
		}
	}
	return snap
}

// Pending exposes the outstanding promotion, nil when none.
func (s *Session) Pending() *PromotionPending {
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

// commit applies an already validated move, records it and settles state.
func (s *Session) commit(mv base.Move) error {
	ap, err := moves.ApplyMove(s.board, mv)
	if err != nil {
		return err
	}
	s.selected = nil
	s.lastDesc = moves.Describe(mv, ap)
	s.history.Push(*s.board, mv, moves.ShortSAN(mv, ap), ap.Captured)
	s.logger.Infof("applied: %s", s.lastDesc)

	if ap.PromotionPending {
		s.pending = &PromotionPending{Pos: mv.To, White: base.PieceIsWhite(mv.Piece)}
		// turn is suspended: no terminal evaluation until the pawn is replaced
		s.emit(EventMove)
		return nil
	}
	s.settle(ap.Captured)
	return nil
}

// settle recomputes check/terminal state for the new side to move and signals
// the audio/haptic layer.
func (s *Session) settle(captured base.Piece) {
	s.status = rules.GameStatusOf(s.board)
	switch {
	case s.status == base.Checkmate:
		s.emit(EventCheckmate)
	case s.status == base.Check:
		s.emit(EventCheck)
	case base.KindOf(captured) != base.KindNone:
		s.emit(EventCapture)
	default:
		s.emit(EventMove)
	}
}

func (s *Session) emit(e Event) {
	if s.listener != nil {
		s.listener(e)
	}
}
