package derivation

import (
	"testing"

	"github.com/npillmayer/gryd"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRewriteTransparentBackground(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Acc
= AX78? aT
@@@
`)
	d.memory[2][2].Bg = 5
	result := d.Step('T')
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, have %d", len(result.Events))
	}
	if result.Events[0].Bg != 5 {
		t.Errorf("transparent background must come from memory, have %d", result.Events[0].Bg)
	}
}

func TestRewriteOpaqueBackground(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Acc
= AX73? aT
@@@
`)
	d.memory[2][2].Bg = 5
	result := d.Step('T')
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, have %d", len(result.Events))
	}
	if result.Events[0].Bg != 3 {
		t.Errorf("opaque background comes from the rule, have %d", result.Events[0].Bg)
	}
	if d.memory[2][2].Bg != 3 {
		t.Errorf("terminal write must be saved to memory, bg %d", d.memory[2][2].Bg)
	}
}

func TestRewriteRestoreFromMemory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Acc
= AB78? aT
@@@$
`)
	d.memory[2][3] = gryd.Cell{Glyph: 'Q', Fg: 3, Bg: 2, Z: 'a'}
	result := d.Step('T')
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 events, have %d", len(result.Events))
	}
	restored := result.Events[1]
	if restored.Text != "Q" || restored.Fg != 3 || restored.Bg != 2 {
		t.Errorf("'$' must replay the memory cell, have %q %d/%d",
			restored.Text, restored.Fg, restored.Bg)
	}
	if d.Cell(2, 3).Glyph != 'Q' {
		t.Errorf("restored glyph is '%c'", d.Cell(2, 3).Glyph)
	}
}

func TestRewriteRestoreEmptyMemory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Acc
= AB78? aT
@@@$
`)
	d.memory[2][3].Glyph = emptyMemory
	result := d.Step('T')
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 events, have %d", len(result.Events))
	}
	if result.Events[1].Text != " " {
		t.Errorf("empty memory restores to blank, have %q", result.Events[1].Text)
	}
}

func TestRewriteBlankOut(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Acc
= AB78? aT
@@@~
`)
	d.current[2][3].Glyph = 'Q'
	d.memory[2][3].Glyph = 'Q'
	result := d.Step('T')
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 events, have %d", len(result.Events))
	}
	if d.Cell(2, 3).Glyph != ' ' {
		t.Errorf("'~' must blank the cell, have '%c'", d.Cell(2, 3).Glyph)
	}
}

func TestRewriteZOrderRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Acc
= AX78? aT
@@@
`)
	d.memory[2][2].Z = 'b'
	result := d.Step('T')
	if len(result.Events) != 0 {
		t.Fatalf("lower z-order must not overwrite, have %d events", len(result.Events))
	}
	if d.Cell(2, 2).Glyph != 'A' {
		t.Errorf("rejected write must leave the cell, have '%c'", d.Cell(2, 2).Glyph)
	}
	if d.ActiveCount() != 1 {
		t.Errorf("rejected write must leave the active index, have %d", d.ActiveCount())
	}
}

func TestRewriteZOrderEqualWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Acc
= AX78? bT
@@@
`)
	d.memory[2][2].Z = 'b'
	result := d.Step('T')
	if len(result.Events) != 1 {
		t.Fatalf("equal z-order overwrites, have %d events", len(result.Events))
	}
	if d.Cell(2, 2).Glyph != 'X' {
		t.Errorf("expected 'X', have '%c'", d.Cell(2, 2).Glyph)
	}
}

func TestRewriteMultiRow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Acc
= AB78? aT
@@@P
   Q
`)
	result := d.Step('T')
	want := []gryd.CellEvent{
		{Row: 2, Col: 2, Text: "B", Fg: 7, Bg: 0},
		{Row: 2, Col: 3, Text: "P", Fg: 7, Bg: 0},
		{Row: 3, Col: 3, Text: "Q", Fg: 7, Bg: 0},
	}
	if len(result.Events) != len(want) {
		t.Fatalf("expected %d events, have %d", len(want), len(result.Events))
	}
	for i, e := range result.Events {
		if e != want[i] {
			t.Errorf("event %d: expected %v, have %v", i, want[i], e)
		}
	}
}

func TestRewriteNeverTouchesRowZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gryd.derive")
	defer teardown()
	d := makeDerivation(t, `^Auc
= AB78? aT
@
@
Y
@
`)
	result := d.Step('T')
	if result.RuleID == "" {
		t.Fatalf("rule should fire at row 1")
	}
	for _, e := range result.Events {
		if e.Row == 0 {
			t.Errorf("event targets row 0: %v", e)
		}
	}
	for col := 0; col < 4; col++ {
		if d.Cell(0, col).Glyph != ' ' {
			t.Errorf("row 0 mutated at col %d", col)
		}
	}
	if d.Cell(1, 2).Glyph != 'B' {
		t.Errorf("anchor cell should be 'B', have '%c'", d.Cell(1, 2).Glyph)
	}
}
