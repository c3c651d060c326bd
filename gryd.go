package gryd

import (
	"fmt"
	"math"
)

// --- Grid cells ------------------------------------------------------------

// Palette indices for cell colors. Index 0…7 select from a fixed 8-color
// palette; TransparentBg is a sentinel for backgrounds which are resolved
// against the memory layer of the grid.
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White

	TransparentBg uint8 = 8
)

// DefaultZ is the z-order of untouched grid cells. Rules carry a z-order
// byte; larger values win on overwrite.
const DefaultZ byte = 'a'

// Cell is the content of one grid position: a glyph together with its
// palette indices and a z-order byte. A space glyph denotes a blank cell.
type Cell struct {
	Glyph rune
	Fg    uint8
	Bg    uint8
	Z     byte
}

// Blank returns a blank cell with default colors and z-order.
func Blank() Cell {
	return Cell{Glyph: ' ', Fg: White, Bg: Black, Z: DefaultZ}
}

func (c Cell) String() string {
	return fmt.Sprintf("'%c'(%d/%d|%c)", c.Glyph, c.Fg, c.Bg, c.Z)
}

// --- Events ----------------------------------------------------------------

// CellEvent notifies a rendering layer of a single cell update. Row 0 is
// reserved for a status line owned by the driver; rule applications never
// emit events for it. Seed placement goes by the seed's row class alone and
// can put a seed on row 0 (row class 'X' on any grid, 'C' and 'L' on small
// grids).
type CellEvent struct {
	Row  int
	Col  int
	Text string
	Fg   uint8
	Bg   uint8
}

// ClearEvent returns the distinguished event instructing a renderer to
// reset the display.
func ClearEvent() CellEvent {
	return CellEvent{Row: math.MaxInt, Col: math.MaxInt, Text: " ", Fg: White, Bg: Black}
}

// IsClear tests for the display-reset sentinel.
func (e CellEvent) IsClear() bool {
	return e.Row == math.MaxInt && e.Col == math.MaxInt
}

// --- Step results ----------------------------------------------------------

// NoSound is the sound alias of steps which did not apply any rule.
const NoSound rune = ' '

// SwitchProgram is a distinguished sound alias: a rule carrying it asks the
// driver to load the grammar file named by the final whitespace-separated
// token of RuleID.
const SwitchProgram rune = '>'

// StepResult is the outcome of a single derivation step: the cell updates
// caused by the applied rule, plus bookkeeping deltas for the driver.
// A step which applied no rule returns the zero result with Sound = NoSound.
type StepResult struct {
	Events      []CellEvent
	ScoreDelta  int
	ErrorsDelta int
	RuleID      string // header of the applied rule, for debugging
	Sound       rune
}

// NoStep is the result of a step which applied no rule.
func NoStep() StepResult {
	return StepResult{Sound: NoSound}
}
