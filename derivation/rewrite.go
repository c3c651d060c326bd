package derivation

import (
	"github.com/npillmayer/gryd"
	"github.com/npillmayer/gryd/grammar"
)

// emptyMemory marks memory cells which never held content; restoring from
// them yields a blank.
const emptyMemory rune = 0xFF

// apply rewrites the grid with a rule whose template top-left is placed at
// grid coordinate (r0, c0), and returns the resulting cell events in
// template order.
//
// The skip boundary differs from matching: output starts strictly beyond
// the mid anchor (column-wise for horizontal rules, row-wise for vertical
// ones). Cells outside the grid and row 0 are skipped silently.
func (d *Derivation) apply(r0, c0 int, rule *grammar.Rule) []gryd.CellEvent {
	var events []gryd.CellEvent
	r, c := r0, c0
	horizontal := rule.Horizontal()
	for _, p := range rule.RHS {
		if p == '\n' {
			r++
			c = c0
			continue
		}
		if horizontal && c-c0 <= rule.Mid.Col {
			c++
			continue
		}
		if !horizontal && r-r0 <= rule.Mid.Row {
			c++
			continue
		}
		rep := p
		if rep == '@' {
			rep = rule.Rep
		}
		if rep == '&' {
			rep = rule.CtxRep
		}
		isNonterminal := d.grammar.IsNonterminal(rep)
		if rep != ' ' && r > 0 && r < d.rows && c >= 0 && c < d.cols {
			if rep == '~' {
				rep = ' '
			}
			bg := rule.Bg
			if rule.Bg > 7 { // transparent: background from memory
				bg = d.memory[r][c].Bg
			}
			cell := gryd.Cell{Glyph: rep, Fg: rule.Fg, Bg: bg, Z: rule.Z}
			if rep == '$' { // restore from memory
				cell = d.memory[r][c]
			}
			if cell.Glyph == emptyMemory {
				cell = gryd.Cell{Glyph: ' ', Fg: rule.Fg, Bg: bg, Z: gryd.DefaultZ}
			}
			if rule.Z >= d.memory[r][c].Z {
				events = append(events, gryd.CellEvent{
					Row: r, Col: c, Text: string(cell.Glyph), Fg: cell.Fg, Bg: cell.Bg,
				})
				saved := cell
				if isNonterminal {
					// keep the covered content, but adopt the new background
					saved = d.memory[r][c]
					saved.Bg = cell.Bg
				}
				d.current[r][c] = cell
				d.memory[r][c] = saved
				if isNonterminal {
					d.marks.Set(r, c, rep)
				} else {
					d.marks.Remove(r, c)
				}
			}
		}
		c++
	}
	return events
}
