package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/npillmayer/gryd"
	"github.com/npillmayer/gryd/derivation"
	"github.com/npillmayer/gryd/grammar"
	"golang.org/x/term"
)

type options struct {
	rows int
	cols int
	fast time.Duration
	slow time.Duration
}

// runGame puts the terminal into raw mode and drives a derivation until the
// user quits or a program switch fails.
func runGame(program string, g *grammar.Grammar, opts options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("cannot switch terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	rows, cols := opts.rows, opts.cols
	if rows == 0 || cols == 0 {
		w, h, err := term.GetSize(fd)
		if err != nil {
			return fmt.Errorf("cannot determine terminal size: %w", err)
		}
		if cols == 0 {
			cols = w
		}
		if rows == 0 {
			rows = h
		}
	}

	scr := newScreen(os.Stdout, rows, cols)
	defer scr.close()

	keys := make(chan byte, 8)
	go readKeys(os.Stdin, keys)

	var watchEvents chan fsnotify.Event
	var watchErrors chan error
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer watcher.Close()
		if err := watcher.Add(program); err != nil {
			tracer().Errorf("cannot watch %q: %v", program, err)
		}
		watchEvents = watcher.Events
		watchErrors = watcher.Errors
	} else {
		tracer().Errorf("no file watcher, hot reload disabled: %v", err)
	}

	game := &game{
		scr:     scr,
		watcher: watcher,
		program: program,
		grammar: g,
		rows:    rows,
		cols:    cols,
	}
	game.restart()

	fastTick := time.NewTicker(opts.fast)
	slowTick := time.NewTicker(opts.slow)
	defer fastTick.Stop()
	defer slowTick.Stop()

	for {
		select {
		case b, ok := <-keys:
			if !ok {
				return nil
			}
			switch b {
			case 0x1b, 0x03: // <esc>, <ctrl>C
				return nil
			case 0x10: // <ctrl>P
				game.paused = !game.paused
				game.status()
				scr.flush()
			default:
				if b >= ' ' && b < 0x7f {
					if err := game.press(rune(b)); err != nil {
						return err
					}
				}
			}
		case <-fastTick.C:
			if err := game.tick(keyFastTick); err != nil {
				return err
			}
		case <-slowTick.C:
			if err := game.tick(keySlowTick); err != nil {
				return err
			}
		case ev := <-watchEvents:
			if ev.Has(fsnotify.Write) {
				game.reload()
			}
		case err := <-watchErrors:
			tracer().Errorf("watching %q: %v", game.program, err)
		}
	}
}

func readKeys(in io.Reader, keys chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil {
			close(keys)
			return
		}
		if n > 0 {
			keys <- buf[0]
		}
	}
}

// game is the driver-side state machine around one Derivation: pause state,
// score keeping, key repeat and program switching.
type game struct {
	scr         *screen
	watcher     *fsnotify.Watcher
	program     string
	grammar     *grammar.Grammar
	deriv       *derivation.Derivation
	rows, cols  int
	score       int
	errors      int
	lastRule    string
	paused      bool
	lastKey     rune
	repeatUntil time.Time
}

// repeatWindow is how long after a key press the key-repeat tick keeps
// firing.
const repeatWindow = 500 * time.Millisecond

func (g *game) restart() {
	g.deriv = derivation.New(g.grammar, g.rows, g.cols)
	g.score, g.errors = 0, 0
	g.lastRule = ""
	g.scr.clear()
	for _, e := range g.deriv.Start() {
		g.scr.draw(e)
	}
	g.status()
	g.scr.flush()
}

func (g *game) reload() {
	ng, err := grammar.LoadFile(g.program)
	if err != nil {
		tracer().Errorf("reload failed: %v", err)
		return
	}
	tracer().Infof("reloaded %q", g.program)
	g.grammar = ng
	g.restart()
}

func (g *game) press(key rune) error {
	g.lastKey = key
	g.repeatUntil = time.Now().Add(repeatWindow)
	return g.advance(key)
}

func (g *game) tick(key rune) error {
	if g.paused {
		return nil
	}
	if err := g.advance(key); err != nil {
		return err
	}
	if key == keySlowTick && g.lastKey != 0 && time.Now().Before(g.repeatUntil) {
		return g.advance(keyRepeatTick)
	}
	return nil
}

func (g *game) advance(key rune) error {
	result := g.deriv.Step(key)
	for _, e := range result.Events {
		g.scr.draw(e)
	}
	g.score += result.ScoreDelta
	g.errors += result.ErrorsDelta
	if result.RuleID != "" {
		g.lastRule = result.RuleID
	}
	switch result.Sound {
	case gryd.NoSound:
	case gryd.SwitchProgram:
		return g.switchProgram(result.RuleID)
	default:
		if file, ok := g.grammar.Sounds[result.Sound]; ok {
			tracer().Infof("sound '%c': %s", result.Sound, file)
		}
	}
	if len(result.Events) > 0 {
		g.status()
		g.scr.flush()
	}
	return nil
}

// switchProgram loads the grammar file named by the final whitespace-
// separated token of the applied rule's header and restarts on it. A
// missing file terminates the driver.
func (g *game) switchProgram(ruleID string) error {
	fields := strings.Fields(ruleID)
	if len(fields) == 0 {
		return fmt.Errorf("program switch rule names no file: %q", ruleID)
	}
	next := fields[len(fields)-1]
	if _, err := os.Stat(next); err != nil {
		next = filepath.Join(filepath.Dir(g.program), next)
	}
	ng, err := grammar.LoadFile(next)
	if err != nil {
		return fmt.Errorf("cannot switch program: %w", err)
	}
	tracer().Infof("switching program: %q", next)
	if g.watcher != nil {
		g.watcher.Remove(g.program)
		if err := g.watcher.Add(next); err != nil {
			tracer().Errorf("cannot watch %q: %v", next, err)
		}
	}
	g.program = next
	g.grammar = ng
	g.scr.draw(gryd.ClearEvent())
	g.restart()
	return nil
}

func (g *game) status() {
	state := ""
	if g.paused {
		state = "  [paused]"
	}
	g.scr.statusLine(fmt.Sprintf(" %s%s  score %d  errors %d  =%s",
		filepath.Base(g.program), state, g.score, g.errors, g.lastRule))
}
