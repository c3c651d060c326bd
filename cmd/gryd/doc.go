/*
Command gryd runs 2D rewrite grammars in a terminal.

gryd loads a grammar file and derives it on a character grid sized to the
terminal, driving the engine with periodic ticks and forwarding key presses
as step keys. Row 0 shows a status line with program name, score and the
last applied rule. <esc> quits, <ctrl>P pauses.

   gryd programs/intro.cfg
   gryd -trace Info -slow 100ms programs/sand.cfg
   gryd -repl programs/blink.cfg

With -repl, gryd opens an interactive inspector instead of running the
program: single steps, grid dumps and rule listings, intended as a sandbox
while developing a grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'gryd.cli'.
func tracer() tracing.Trace {
	return tracing.Select("gryd.cli")
}
