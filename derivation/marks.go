package derivation

// markIndex records every grid position currently holding a nonterminal
// symbol, so that stepping does not have to scan the whole grid. It must be
// kept in lock-step with the visible layer: positions are set when a
// rewrite places a nonterminal and removed when a terminal is written.
//
// This implementation uses the COO algorithm (a.k.a. triplet-encoding),
// with triplets kept sorted by (row, col). Iteration order is therefore
// deterministic, which keeps derivations reproducible under a seeded
// random source.
type markIndex struct {
	marks []mark
}

// Triplet values to store
type mark struct {
	row int
	col int
	sym rune
}

func (m mark) storedLeftOf(row, col int) bool {
	return m.row < row || (m.row == row && m.col < col)
}

func (m mark) storedAt(row, col int) bool {
	return m.row == row && m.col == col
}

// Set records sym at (row, col), overwriting any previous mark there.
func (x *markIndex) Set(row, col int, sym rune) {
	i := 0
	for ; i < len(x.marks); i++ {
		if x.marks[i].storedAt(row, col) {
			x.marks[i].sym = sym
			return
		}
		if !x.marks[i].storedLeftOf(row, col) { // have skipped all lesser indices
			break
		}
	}
	x.marks = append(x.marks, mark{})
	copy(x.marks[i+1:], x.marks[i:])
	x.marks[i] = mark{row: row, col: col, sym: sym}
}

// Remove drops the mark at (row, col). Removing an unmarked position is a
// no-op.
func (x *markIndex) Remove(row, col int) {
	for i := range x.marks {
		if x.marks[i].storedAt(row, col) {
			x.marks = append(x.marks[:i], x.marks[i+1:]...)
			return
		}
		if !x.marks[i].storedLeftOf(row, col) {
			return
		}
	}
}

// At returns the symbol marked at (row, col).
func (x *markIndex) At(row, col int) (rune, bool) {
	for _, m := range x.marks {
		if !m.storedLeftOf(row, col) { // have skipped all lesser indices
			if m.storedAt(row, col) {
				return m.sym, true
			}
			break
		}
	}
	return 0, false
}

// Size returns the number of marked positions.
func (x *markIndex) Size() int {
	return len(x.marks)
}

// Each calls f for every marked position, in (row, col) order. f must not
// mutate the index.
func (x *markIndex) Each(f func(row, col int, sym rune)) {
	for _, m := range x.marks {
		f(m.row, m.col, m.sym)
	}
}
