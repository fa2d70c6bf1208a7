package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"voicechess/src"
	"voicechess/src/base"
	"voicechess/src/policy"

	"golang.org/x/term"
)

// CLIProcessing is the interactive input layer: it translates algebraic
// squares into board coordinates before calling the engine, the same job the
// voice layer does in the spoken interface.
type CLIProcessing struct {
	session *src.Session
	draw    DrawFunc
	in      *os.File
	out     io.Writer
}

func NewCLI(s *src.Session, draw DrawFunc) *CLIProcessing {
	c := &CLIProcessing{session: s, draw: draw, in: os.Stdin, out: os.Stdout}
	s.SetEventListener(c.playEvent)
	return c
}

// playEvent is the stand-in audio/haptic layer: a terminal bell for checks and
// mates, a tag line for the rest.
func (c *CLIProcessing) playEvent(e src.Event) {
	switch e {
	case src.EventCheck, src.EventCheckmate:
		fmt.Fprintf(c.out, "\a[%s]\n", e)
	case src.EventCapture:
		fmt.Fprintf(c.out, "[%s]\n", e)
	}
}

// Run is the raw-terminal mode: type commands, left/right arrows for
// undo/redo. Falls back to line mode when the terminal cannot go raw.
func (c *CLIProcessing) Run() error {
	fd := int(c.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return c.RunLineMode()
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	r := bufio.NewReader(c.in)
	var inputBuf strings.Builder

	c.redraw()
	fmt.Fprint(c.out, "\nType a move and press Enter; left/right arrows undo/redo; 'h' for help; 'q' to quit.\n")

	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		if b == 3 { // Ctrl+C
			fmt.Fprintln(c.out, "\nInterrupted")
			return nil
		}
		if b == 0x1b { // escape sequence, possible arrow
			b1, err := r.ReadByte()
			if err != nil {
				continue
			}
			b2, err := r.ReadByte()
			if err != nil {
				continue
			}
			if b1 == '[' {
				switch b2 {
				case 'D': // left arrow
					c.session.Undo()
					c.redraw()
				case 'C': // right arrow
					c.session.Redo()
					c.redraw()
				}
			}
			continue
		}

		if b == '\r' || b == '\n' {
			line := strings.TrimSpace(inputBuf.String())
			inputBuf.Reset()
			fmt.Fprintln(c.out)
			if line == "" {
				continue
			}
			if quit := c.handle(line); quit {
				return nil
			}
			continue
		}

		if b >= 32 && b <= 126 {
			inputBuf.WriteByte(b)
			fmt.Fprintf(c.out, "%c", b) // echo
		}
	}
}

// RunLineMode drives the game over plain buffered lines.
func (c *CLIProcessing) RunLineMode() error {
	scanner := bufio.NewScanner(c.in)
	c.redraw()
	fmt.Fprintln(c.out, "Enter a move ('e2e4', 'e4', 'Ne4'), 'castle [queen]', 'h' for help.")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := c.handle(line); quit {
			return nil
		}
	}
	return scanner.Err()
}

// handle runs one command; returns true to quit.
func (c *CLIProcessing) handle(line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "q", "quit", "exit":
		fmt.Fprintln(c.out, "Quitting")
		return true
	case "h", "help":
		c.printHelp()
		return false
	case "undo":
		c.session.Undo()
		c.redraw()
		return false
	case "redo":
		c.session.Redo()
		c.redraw()
		return false
	case "reset":
		c.session.Reset(c.session.Difficulty())
		c.redraw()
		return false
	case "moves":
		fmt.Fprintln(c.out, strings.Join(c.session.Snapshot().Notation, " "))
		return false
	case "level":
		if len(fields) < 2 {
			fmt.Fprintf(c.out, "Level: %s\n", c.session.Difficulty())
			return false
		}
		d, err := policy.ParseDifficulty(fields[1])
		if err != nil {
			fmt.Fprintf(c.out, "Unknown level %q (easy, medium, hard)\n", fields[1])
			return false
		}
		c.session.SetDifficulty(d)
		fmt.Fprintf(c.out, "Level set to %s\n", d)
		return false
	case "castle", "o-o", "0-0", "o-o-o", "0-0-0":
		kingside := true
		if cmd == "o-o-o" || cmd == "0-0-0" {
			kingside = false
		}
		if len(fields) > 1 && strings.HasPrefix(strings.ToLower(fields[1]), "queen") {
			kingside = false
		}
		var ok bool
		if kingside {
			ok = c.session.CastleKingside()
		} else {
			ok = c.session.CastleQueenside()
		}
		if !ok {
			fmt.Fprintln(c.out, "Castling is not available")
			return false
		}
		c.afterHumanMove()
		return false
	case "promote":
		if len(fields) < 2 {
			fmt.Fprintln(c.out, "Usage: promote q|r|b|n")
			return false
		}
		k := base.KindFromRune(rune(fields[1][0]))
		if !c.session.ResolvePromotion(k) {
			fmt.Fprintln(c.out, "No promotion to resolve (or bad piece)")
			return false
		}
		c.afterHumanMove()
		return false
	}

	if ok := c.tryMove(line); !ok {
		fmt.Fprintf(c.out, "Invalid move: %s\n", line)
		return false
	}
	c.afterHumanMove()
	return false
}

// tryMove parses "e2e4", "e2 e4", "e4" and "Ne4" style input.
func (c *CLIProcessing) tryMove(line string) bool {
	s := strings.ReplaceAll(line, " ", "")

	if len(s) == 4 { // full from-to
		from, err1 := base.SquareFromAlgebraic(s[:2])
		to, err2 := base.SquareFromAlgebraic(s[2:])
		if err1 == nil && err2 == nil {
			return c.session.MoveFrom(from, to)
		}
	}
	// destination only, with an optional leading piece letter
	hint := base.KindNone
	if len(s) == 3 {
		hint = base.KindFromRune(rune(s[0]))
		if hint == base.KindNone {
			return false
		}
		s = s[1:]
	}
	if len(s) != 2 {
		return false
	}
	to, err := base.SquareFromAlgebraic(s)
	if err != nil {
		return false
	}
	return c.session.MoveToSquare(to, hint)
}

// afterHumanMove redraws, then requests the automated reply unless the game
// ended or a promotion is waiting.
func (c *CLIProcessing) afterHumanMove() {
	c.redraw()
	snap := c.session.Snapshot()
	if snap.AwaitingPromotion {
		fmt.Fprintln(c.out, "Pawn reached the last rank: 'promote q|r|b|n'")
		return
	}
	if snap.Checkmate || snap.Stalemate {
		return
	}
	if c.session.OpponentMove() {
		c.redraw()
	}
}

func (c *CLIProcessing) redraw() {
	snap := c.session.Snapshot()
	c.draw(snap.Board)
	if snap.Description != "" {
		fmt.Fprintf(c.out, "Last: %s\n", snap.Description)
	}
	if len(snap.Notation) > 0 {
		fmt.Fprintf(c.out, "Moves: %s\n", strings.Join(snap.Notation, " "))
	}
	fmt.Fprintf(c.out, "Status: %s\n", c.statusLine(snap))
}

func (c *CLIProcessing) statusLine(snap src.Snapshot) string {
	turn := "white to move"
	if !snap.WhiteToMove {
		turn = "black to move"
	}
	switch {
	case snap.Checkmate:
		return "checkmate, " + turn + " and lost"
	case snap.Stalemate:
		return "stalemate"
	case snap.AwaitingPromotion:
		return "awaiting promotion"
	case snap.Check:
		return "check, " + turn
	default:
		return turn
	}
}

func (c *CLIProcessing) printHelp() {
	fmt.Fprint(c.out, `Commands:
  e2e4          move from e2 to e4
  e4            move the only piece that can reach e4
  Ne4           move the only knight that can reach e4
  castle        castle kingside ('castle queen' for queenside)
  promote q     resolve a pending promotion (q, r, b, n)
  undo / redo   step through the game
  level NAME    easy, medium or hard
  reset         new game
  moves         show the move list
  q             quit
`)
}
