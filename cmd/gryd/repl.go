package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/gryd/derivation"
	"github.com/npillmayer/gryd/grammar"
	"github.com/pterm/pterm"
)

// runREPL starts the interactive grammar inspector, a sandbox for grammar
// development: it derives on a small in-memory grid and prints grid states
// instead of rendering to the terminal.
func runREPL(program string, g *grammar.Grammar, rows, cols int) {
	if rows == 0 {
		rows = 16
	}
	if cols == 0 {
		cols = 40
	}
	repl, err := readline.New("gryd> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	insp := &inspector{program: program, grammar: g, rows: rows, cols: cols}
	insp.reset()
	pterm.Info.Println("Inspecting " + program + " ('help' lists commands)")
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		args := strings.Split(line, " ")
		quit := insp.execute(args[0], args)
		if quit {
			break
		}
	}
	println("Good bye!")
}

type inspector struct {
	program string
	grammar *grammar.Grammar
	deriv   *derivation.Derivation
	rows    int
	cols    int
	score   int
	steps   int
	applied int
}

func (insp *inspector) reset() {
	insp.deriv = derivation.New(insp.grammar, insp.rows, insp.cols)
	insp.score, insp.steps, insp.applied = 0, 0, 0
	insp.deriv.Start()
}

func (insp *inspector) execute(cmd string, args []string) bool {
	switch cmd {
	case "quit", "q":
		return true
	case "help":
		insp.help()
	case "step", "s":
		key := keyFastTick
		if len(args) > 1 && len(args[1]) > 0 {
			key = []rune(args[1])[0]
		}
		insp.step(key)
	case "run", "r":
		n := 1
		if len(args) > 1 {
			if v, err := strconv.Atoi(args[1]); err == nil {
				n = v
			}
		}
		for i := 0; i < n; i++ {
			insp.step(keyFastTick)
		}
	case "grid", "g":
		insp.printGrid()
	case "rules":
		insp.printRules(args)
	case "seeds":
		for _, seed := range insp.grammar.Seeds {
			pterm.Println(fmt.Sprintf("^%c placed %c/%c", seed.Glyph, seed.UL, seed.LR))
		}
	case "marks":
		insp.deriv.EachActive(func(row, col int, sym rune) {
			pterm.Println(fmt.Sprintf("(%d,%d) '%c'", row, col, sym))
		})
	case "reset":
		insp.reset()
	default:
		pterm.Error.Println("unknown command: " + cmd)
	}
	return false
}

func (insp *inspector) help() {
	if insp.grammar.Help != "" {
		pterm.Info.Println(insp.grammar.Help)
	}
	pterm.Println(`step [key]   derive a single step (default key 'T')
run [n]      derive n fast-tick steps
grid         print the visible grid
rules [lhs]  list rules, optionally for one nonterminal
seeds        list the grammar's seeds
marks        list active nonterminal positions
reset        restart the derivation
quit         leave the inspector`)
}

func (insp *inspector) step(key rune) {
	result := insp.deriv.Step(key)
	insp.steps++
	insp.score += result.ScoreDelta
	if result.RuleID != "" {
		insp.applied++
		pterm.Println(fmt.Sprintf("step %d: =%s  (%d cells, score %+d)",
			insp.steps, result.RuleID, len(result.Events), result.ScoreDelta))
	} else {
		pterm.Println(fmt.Sprintf("step %d: no applicable rule", insp.steps))
	}
}

func (insp *inspector) printGrid() {
	var sb strings.Builder
	sb.WriteRune('+')
	sb.WriteString(strings.Repeat("-", insp.cols))
	sb.WriteRune('+')
	pterm.Println(sb.String())
	for row := 0; row < insp.rows; row++ {
		sb.Reset()
		sb.WriteRune('|')
		for col := 0; col < insp.cols; col++ {
			sb.WriteRune(insp.deriv.Cell(row, col).Glyph)
		}
		sb.WriteRune('|')
		pterm.Println(sb.String())
	}
	sb.Reset()
	sb.WriteRune('+')
	sb.WriteString(strings.Repeat("-", insp.cols))
	sb.WriteRune('+')
	pterm.Println(sb.String())
	pterm.Println(fmt.Sprintf("steps %d, applied %d, score %d, %d active",
		insp.steps, insp.applied, insp.score, insp.deriv.ActiveCount()))
}

func (insp *inspector) printRules(args []string) {
	if len(args) > 1 && len(args[1]) > 0 {
		lhs := []rune(args[1])[0]
		rules := insp.grammar.RulesFor(lhs)
		if rules == nil {
			pterm.Error.Println(fmt.Sprintf("'%c' is not a nonterminal", lhs))
			return
		}
		it := rules.Iterator()
		for it.Next() {
			printRule(it.Value().(*grammar.Rule))
		}
		return
	}
	insp.grammar.EachRule(printRule)
}

func printRule(r *grammar.Rule) {
	pterm.Println(r.String())
	for _, line := range strings.Split(r.RHS, "\n") {
		pterm.Println("    " + line)
	}
}
