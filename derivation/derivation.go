/*
Package derivation performs stochastic 2D grammar derivation.

A Derivation owns a two-layer character grid: the visible layer and a
per-cell memory layer holding what lies beneath nonterminal marks. Each call
to Step picks one applicable rule by weighted random selection and applies
it, emitting cell-update events for a rendering layer.

Rule templates are matched and rewritten against the grid using the special
markers

   @   match the rule's LHS; rewrite as the rule's replacement character
   &   match the rule's context; rewrite as the context replacement
   !   match anything but the rule's context
   %   match the rule's context or its replacement
   ~   match a blank cell; rewrite to blank
   $   rewrite only: restore the cell from the memory layer
   #   match a cell outside the grid

and spaces, which skip a cell in both directions. Grid row 0 is reserved for
a driver-owned status line: the matcher treats it as outside the grid and
the rewriter never writes to it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package derivation

import (
	"math/rand"
	"time"

	"github.com/npillmayer/gryd"
	"github.com/npillmayer/gryd/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gryd.derive'.
func tracer() tracing.Trace {
	return tracing.Select("gryd.derive")
}

// Derivation is a single-threaded derivation engine for one grammar on one
// grid. Create and initialize one with derivation.New(…). A Derivation is
// owned by exactly one driver; Start and Step are the only mutators.
type Derivation struct {
	grammar *grammar.Grammar
	rows    int
	cols    int
	current [][]gryd.Cell // the visible layer
	memory  [][]gryd.Cell // what lies beneath nonterminal marks
	marks   markIndex     // positions currently holding nonterminals
	rnd     *rand.Rand
}

// Option configures a Derivation.
type Option func(*Derivation)

// WithRandom sets the random source used for seed placement and rule
// selection. The default is seeded from the clock; tests inject a fixed
// seed for reproducible derivations.
func WithRandom(rnd *rand.Rand) Option {
	return func(d *Derivation) {
		d.rnd = rnd
	}
}

// New creates a derivation for a grammar on a blank rows × cols grid.
func New(g *grammar.Grammar, rows, cols int, opts ...Option) *Derivation {
	d := &Derivation{
		grammar: g,
		rows:    rows,
		cols:    cols,
		current: blankLayer(rows, cols),
		memory:  blankLayer(rows, cols),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func blankLayer(rows, cols int) [][]gryd.Cell {
	layer := make([][]gryd.Cell, rows)
	for i := range layer {
		row := make([]gryd.Cell, cols)
		for j := range row {
			row[j] = gryd.Blank()
		}
		layer[i] = row
	}
	return layer
}

// Grammar returns the grammar this derivation rewrites with.
func (d *Derivation) Grammar() *grammar.Grammar {
	return d.grammar
}

// Size returns the grid dimensions.
func (d *Derivation) Size() (rows, cols int) {
	return d.rows, d.cols
}

// Cell returns the visible cell at (row, col).
func (d *Derivation) Cell(row, col int) gryd.Cell {
	return d.current[row][col]
}

// ActiveCount returns the number of grid positions holding nonterminals.
func (d *Derivation) ActiveCount() int {
	return d.marks.Size()
}

// EachActive calls f for every position holding a nonterminal, in
// (row, col) order.
func (d *Derivation) EachActive(f func(row, col int, sym rune)) {
	d.marks.Each(f)
}

// Start places every seed of the grammar and returns one cell event per
// seed, in seed order.
func (d *Derivation) Start() []gryd.CellEvent {
	events := make([]gryd.CellEvent, 0, len(d.grammar.Seeds))
	for _, seed := range d.grammar.Seeds {
		row, col := d.seedPosition(seed)
		d.marks.Set(row, col, seed.Glyph)
		d.current[row][col] = gryd.Cell{Glyph: seed.Glyph, Fg: gryd.White, Bg: gryd.Black, Z: gryd.DefaultZ}
		events = append(events, gryd.CellEvent{
			Row: row, Col: col, Text: string(seed.Glyph), Fg: gryd.White, Bg: gryd.Black,
		})
		tracer().Debugf("seed '%c' at (%d,%d)", seed.Glyph, row, col)
	}
	return events
}

// seedPosition resolves a seed's placement classes to a grid position.
// Unknown classes place at a random row in [1, rows) resp. a random column
// in [0, cols).
func (d *Derivation) seedPosition(seed grammar.Seed) (row, col int) {
	switch seed.LR {
	case 'l':
		col = 0
	case 'r':
		col = d.cols - 1
	case 'c':
		col = d.cols / 2
	case 'R':
		col = 2 * ((d.cols - 1) / 2)
	case 'C':
		col = 2 * ((d.cols / 2) / 2)
	case 'X':
		col = 2 * (d.rnd.Intn(d.cols) / 2)
	default:
		col = d.rnd.Intn(d.cols)
	}
	switch seed.UL {
	case 'u':
		row = 1
	case 'l':
		row = d.rows - 1
	case 'c':
		row = d.rows / 2
	case 'L':
		row = 2 * ((d.rows - 2) / 2)
	case 'C':
		row = 2 * ((d.rows/2 - 1) / 2)
	case 'X':
		row = 2 * (d.rnd.Intn(d.rows-1) / 2)
	default:
		row = d.rnd.Intn(d.rows-1) + 1
	}
	return row, col
}

type candidate struct {
	row  int
	col  int
	rule *grammar.Rule
}

// Step performs a single stochastic rewrite attempt: collect every
// (position, rule) pair applicable under the step key, choose one with
// probability proportional to the rule's weight, and apply it. Steps with
// no applicable pair return the no-op result; Step never fails.
func (d *Derivation) Step(key rune) gryd.StepResult {
	eligible := make(map[rune]bool)
	d.grammar.EachRule(func(r *grammar.Rule) {
		if r.AcceptsKey(key) {
			eligible[r.LHS] = true
		}
	})
	var candidates []candidate
	d.marks.Each(func(row, col int, sym rune) {
		if !eligible[sym] {
			return
		}
		rules := d.grammar.RulesFor(sym)
		if rules == nil {
			return
		}
		it := rules.Iterator()
		for it.Next() {
			rule := it.Value().(*grammar.Rule)
			if !rule.AcceptsKey(key) {
				continue
			}
			if rule.Quote.Row < 0 { // fewer than three anchors: degenerate, never matches
				continue
			}
			if d.applicable(row-rule.Origin.Row, col-rule.Origin.Col, rule) {
				candidates = append(candidates, candidate{row: row, col: col, rule: rule})
			}
		}
	})
	if len(candidates) == 0 {
		return gryd.NoStep()
	}
	total := 0.0
	for _, c := range candidates {
		total += float64(c.rule.Weight)
	}
	draw := d.rnd.Float64() * total
	cum := 0.0
	for _, c := range candidates {
		cum += float64(c.rule.Weight)
		if cum > draw {
			tracer().Debugf("step '%c': applying %v at (%d,%d)", key, c.rule, c.row, c.col)
			return gryd.StepResult{
				Events:     d.apply(c.row-c.rule.Quote.Row, c.col-c.rule.Quote.Col, c.rule),
				ScoreDelta: c.rule.Reward,
				RuleID:     c.rule.Header,
				Sound:      c.rule.Sound,
			}
		}
	}
	return gryd.NoStep()
}
