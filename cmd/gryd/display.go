package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/npillmayer/gryd"
)

// screen renders cell events with plain ANSI escape sequences. Cell
// coordinates are 0-based, rows past the grid are ignored. ANSI rows and
// columns are 1-based.
type screen struct {
	out  *bufio.Writer
	rows int
	cols int
}

func newScreen(out io.Writer, rows, cols int) *screen {
	s := &screen{out: bufio.NewWriter(out), rows: rows, cols: cols}
	fmt.Fprint(s.out, "\x1b[2J\x1b[?25l") // clear screen, hide cursor
	s.flush()
	return s
}

// close restores the terminal: default attributes, visible cursor, clean
// screen.
func (s *screen) close() {
	fmt.Fprint(s.out, "\x1b[0m\x1b[?25h\x1b[2J\x1b[H")
	s.flush()
}

func (s *screen) clear() {
	fmt.Fprint(s.out, "\x1b[2J")
}

func (s *screen) draw(e gryd.CellEvent) {
	if e.IsClear() {
		s.clear()
		return
	}
	if e.Row < 0 || e.Row >= s.rows || e.Col < 0 || e.Col >= s.cols {
		return
	}
	fmt.Fprintf(s.out, "\x1b[%d;%dH\x1b[%d;%dm%s",
		e.Row+1, e.Col+1, 30+int(e.Fg%8), 40+int(e.Bg%8), e.Text)
}

// statusLine owns grid row 0.
func (s *screen) statusLine(text string) {
	runes := []rune(text)
	if len(runes) > s.cols {
		runes = runes[:s.cols]
	}
	fmt.Fprintf(s.out, "\x1b[1;1H\x1b[0m\x1b[7m%-*s\x1b[0m", s.cols, string(runes))
}

func (s *screen) flush() {
	s.out.Flush()
}
