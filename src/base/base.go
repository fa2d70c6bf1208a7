package base

import "fmt"

// Kind is a piece kind without color.
type Kind uint8

const (
	KindNone Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Letter returns the notation letter; pawns have none.
func (k Kind) Letter() string {
	switch k {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return ""
	}
}

type Piece uint8

const colorBit Piece = 8

const (
	EmptyPiece Piece = 0

	WPawn   Piece = Piece(Pawn)
	WKnight Piece = Piece(Knight)
	WBishop Piece = Piece(Bishop)
	WRook   Piece = Piece(Rook)
	WQueen  Piece = Piece(Queen)
	WKing   Piece = Piece(King)

	BPawn   Piece = Piece(Pawn) | colorBit
	BKnight Piece = Piece(Knight) | colorBit
	BBishop Piece = Piece(Bishop) | colorBit
	BRook   Piece = Piece(Rook) | colorBit
	BQueen  Piece = Piece(Queen) | colorBit
	BKing   Piece = Piece(King) | colorBit

	InvalidPiece Piece = 255
)

func KindOf(p Piece) Kind {
	if p == EmptyPiece || p == InvalidPiece {
		return KindNone
	}
	return Kind(p &^ colorBit)
}

func MakePiece(k Kind, white bool) Piece {
	if k == KindNone {
		return EmptyPiece
	}
	if white {
		return Piece(k)
	}
	return Piece(k) | colorBit
}

func PieceIsWhite(p Piece) bool {
	return p >= WPawn && p <= WKing
}

func PieceIsBlack(p Piece) bool {
	return p >= BPawn && p <= BKing
}

// SameColor reports whether both pieces exist and share a color.
func SameColor(a, b Piece) bool {
	if KindOf(a) == KindNone || KindOf(b) == KindNone {
		return false
	}
	return a&colorBit == b&colorBit
}

type GameStatus uint8

const (
	Pass GameStatus = iota
	Check
	Checkmate
	Stalemate
	InvalidGame
)

func (gs GameStatus) String() string {
	switch gs {
	case Pass:
		return "pass"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "invalid"
	}
}

func (gs GameStatus) Terminal() bool {
	return gs == Checkmate || gs == Stalemate
}

type Mailbox [64]Piece

// Point addresses a square: H is the rank row 0-7, W the file column 0-7.
type Point struct {
	H uint8
	W uint8
}

// Move carries the mover in Piece, or the replacement piece for promotions.
type Move struct {
	From  Point
	To    Point
	Piece Piece
}

// CastlingState flags flip from false to true once and never back.
type CastlingState struct {
	WKingMoved  bool
	BKingMoved  bool
	WRookAMoved bool // queenside rook, a-file
	WRookHMoved bool // kingside rook, h-file
	BRookAMoved bool
	BRookHMoved bool
}

type Board struct {
	Mailbox     Mailbox
	WhiteToMove bool
	Castling    CastlingState
	// EnPassant is the landing square of the last double pawn advance, -1 when unset.
	EnPassant int
}

// NewBoard returns the standard starting position, white to move.
func NewBoard() *Board {
	b := &Board{WhiteToMove: true, EnPassant: -1}
	back := [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for w := 0; w < 8; w++ {
		b.Mailbox[0*8+w] = MakePiece(back[w], true)
		b.Mailbox[1*8+w] = WPawn
		b.Mailbox[6*8+w] = BPawn
		b.Mailbox[7*8+w] = MakePiece(back[w], false)
	}
	return b
}

func ConvPointToIndex(p Point) int {
	return int(p.H)*8 + int(p.W)
}

func ConvIndexToPoint(i int) Point {
	return Point{H: uint8(i / 8), W: uint8(i % 8)}
}

func IsValidPoint(p Point) bool {
	return !(p.H > 7 || p.W > 7)
}

func GetPieceAt(mb *Mailbox, p Point) Piece {
	if !IsValidPoint(p) || mb == nil {
		return InvalidPiece
	}
	return mb[ConvPointToIndex(p)]
}

func SetPieceAt(mb *Mailbox, p Point, pc Piece) {
	if !IsValidPoint(p) || mb == nil {
		return
	}
	mb[ConvPointToIndex(p)] = pc
}

// SquareFromAlgebraic converts "e4" style input from the outer layers.
func SquareFromAlgebraic(pos string) (Point, error) {
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return Point{}, fmt.Errorf("invalid square %q", pos)
	}
	return Point{H: pos[1] - '1', W: pos[0] - 'a'}, nil
}

func AlgebraicFromPoint(p Point) string {
	if !IsValidPoint(p) {
		return "??"
	}
	return string([]rune{rune(p.W + 'a'), rune(p.H + '1')})
}

// KindFromRune maps a piece letter (either case) to a kind.
func KindFromRune(r rune) Kind {
	switch r {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return KindNone
	}
}
