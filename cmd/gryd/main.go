package main

import (
	"flag"
	"os"
	"time"

	"github.com/npillmayer/gryd/grammar"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// Step keys sent by the driver's tick scheduler. Grammars match them via
// the key column of their rule headers; the engine itself does not
// interpret them.
const (
	keyFastTick   = 'T'
	keySlowTick   = 'B'
	keyRepeatTick = 'M'
)

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	rows := flag.Int("rows", 0, "Grid rows (0 = terminal height)")
	cols := flag.Int("cols", 0, "Grid columns (0 = terminal width)")
	fast := flag.Duration("fast", 5*time.Millisecond, "Fast tick period")
	slow := flag.Duration("slow", 250*time.Millisecond, "Slow tick period")
	repl := flag.Bool("repl", false, "Inspect the grammar interactively instead of running it")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	if flag.NArg() < 1 {
		pterm.Error.Println("usage: gryd [options] <grammar file>")
		os.Exit(2)
	}
	program := flag.Arg(0)
	g, err := grammar.LoadFile(program)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	tracer().Infof("loaded %q, fingerprint %s", program, g.Fingerprint())
	if *repl {
		if g.Help != "" {
			pterm.Info.Println(g.Help)
		}
		runREPL(program, g, *rows, *cols)
		return
	}
	if err := runGame(program, g, options{
		rows: *rows,
		cols: *cols,
		fast: *fast,
		slow: *slow,
	}); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
