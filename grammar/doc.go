/*
Package grammar compiles 2D rewrite grammars from their textual form.

A grammar file is UTF-8 text, read line by line. The first character of a
line classifies it:

   #   comment; '#!' sets the grammar's help text, '#=as' maps sound
       alias 'a' to sound file 's'
   ^   seed: up to three characters naming the seed glyph and its
       vertical/horizontal placement class
   =   rule header; consecutive headers share the rule body that follows
   …   anything else (including empty lines) is part of the current
       rule body

A rule header is a fixed-column record (columns are code points, not
bytes):

   col 0     '='
   col 1     sound alias
   col 2     left-hand side: the nonterminal this rule rewrites
   col 3     replacement for '@' in the body
   col 4     foreground palette digit 0…7
   col 5     background palette digit 0…8, 8 = transparent
   col 6     context character, '?' = none
   col 7     context replacement, '*' = the LHS character
   col 8     z-order byte
   col 9     step key, '?' = wildcard
   col 10…   optional " <reward> <weight>"

The rule body is a multi-line template of glyphs and the special markers
documented in the derivation package. Three occurrences of '@' mark the
geometric anchors (origin, mid, quote) which align the template to the grid.
Every '*' in the body is replaced by the LHS character at compile time.

Example, a falling grain of sand:

   #!falling sand
   ^suc
   = s~78? a?
   @
   ~
   @
   @
   *

Grammars are immutable once loaded and may be shared between derivations.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gryd.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("gryd.grammar")
}
