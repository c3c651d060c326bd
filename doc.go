/*
Package gryd is a 2D grammar derivation engine.

GRyD rewrites rectangular character grids by repeatedly applying rules of a
2-dimensional string-rewriting grammar. Grammars are small text files; rules
rewrite a nonterminal character together with its 2D neighbourhood, which is
enough to express cellular-automaton-style games and procedural animations.
Package structure is as follows:

■ grammar: Package grammar compiles grammar files into rule objects and seed
lists. Grammars are immutable after loading.

■ derivation: Package derivation maintains the character grid and performs
the stochastic rewriting, one rule application per step. It emits cell-update
events for a rendering layer to consume.

The base package contains data types which are used throughout all the other
packages: grid cells, cell-update events and step results. GRyD is
framework-agnostic: rendering, windowing, audio and scheduling are left to a
driver program (an interactive terminal driver lives in cmd/gryd).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gryd
