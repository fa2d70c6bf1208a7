package cli

import (
	"fmt"

	"voicechess/src/base"
)

type DrawFunc func(mb base.Mailbox)

var unicodeGlyphs = map[base.Piece]string{
	base.WKing: "♔", base.WQueen: "♕", base.WRook: "♖",
	base.WBishop: "♗", base.WKnight: "♘", base.WPawn: "♙",
	base.BKing: "♚", base.BQueen: "♛", base.BRook: "♜",
	base.BBishop: "♝", base.BKnight: "♞", base.BPawn: "♟",
}

var asciiGlyphs = map[base.Piece]string{
	base.WKing: "K", base.WQueen: "Q", base.WRook: "R",
	base.WBishop: "B", base.WKnight: "N", base.WPawn: "P",
	base.BKing: "k", base.BQueen: "q", base.BRook: "r",
	base.BBishop: "b", base.BKnight: "n", base.BPawn: "p",
}

// NewPrinter returns an ANSI board renderer; theme "ascii" swaps the unicode
// figurines for letters.
func NewPrinter(theme string) DrawFunc {
	glyphs := unicodeGlyphs
	if theme == "ascii" {
		glyphs = asciiGlyphs
	}
	return func(m base.Mailbox) {
		printMailbox(m, glyphs)
	}
}

func printMailbox(m base.Mailbox, glyphs map[base.Piece]string) {
	const (
		reset   = "\033[0m"
		lightBg = "\033[47m"
		darkBg  = "\033[100m"
		whiteF  = "\033[97m"
		blackF  = "\033[30m"
		dimF    = "\033[90m"
	)

	fmt.Println()
	fmt.Println("   a  b  c  d  e  f  g  h")
	for rank := 7; rank >= 0; rank-- {
		fmt.Printf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			p := m[rank*8+file]
			g, ok := glyphs[p]
			if !ok {
				g = " "
			}

			lightSquare := (rank+file)%2 == 0

			var bg, fg string
			if lightSquare {
				bg = lightBg
				if g == " " {
					fg = dimF
				} else {
					fg = blackF
				}
			} else {
				bg = darkBg
				if base.PieceIsWhite(p) {
					fg = whiteF
				} else if base.PieceIsBlack(p) {
					fg = blackF
				} else {
					fg = dimF
				}
			}

			fmt.Printf("%s%s %s %s", bg, fg, g, reset)
		}
		fmt.Printf(" %d\n", rank+1)
	}
	fmt.Println("   a  b  c  d  e  f  g  h")
	fmt.Println()
}
