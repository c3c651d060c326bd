package derivation

import "github.com/npillmayer/gryd/grammar"

// applicable tests whether a rule matches with its template top-left placed
// at grid coordinate (r0, c0).
//
// The template is walked character by character. For horizontal rules,
// cells at or beyond the mid anchor's column are output cells and are
// skipped per row; for vertical rules, reaching the mid anchor's row ends
// the match. Cells outside the grid (row 0 included) present the border
// context '#'.
func (d *Derivation) applicable(r0, c0 int, rule *grammar.Rule) bool {
	r, c := r0, c0
	horizontal := rule.Horizontal()
	for _, p := range rule.RHS {
		if p == '\n' {
			r++
			c = c0
			continue
		}
		if p == ' ' {
			c++
			continue
		}
		if horizontal {
			// @ LHS @ >>RHS<<
			if c-c0 >= rule.Mid.Col {
				c++
				continue
			}
		} else if r-r0 >= rule.Mid.Row {
			break
		}
		ctx := '#'
		if r > 0 && r < d.rows && c >= 0 && c < d.cols {
			ctx = d.current[r][c].Glyph
			if ctx == ' ' {
				ctx = '~'
			}
		}
		req := p
		if req == '@' {
			req = rule.LHS
		}
		if p == '&' {
			req = rule.Ctx
		}
		if req == ' ' {
			req = '~'
		}
		if (req != '!' && req != '%' && req != ctx) ||
			(req == '!' && ctx == rule.Ctx) ||
			(p == '%' && ctx != rule.CtxRep && ctx != rule.Ctx) {
			return false
		}
		c++
	}
	return true
}
