package grammar

import (
	"strconv"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// NoContext is the sentinel for rules without a context character. Grammar
// authors write '?' in the context column to state it explicitly.
const NoContext rune = 0xFF

// KeyWildcard makes a rule eligible for every step key.
const KeyWildcard rune = '?'

// The anchor character. Its 1st, 2nd and 3rd occurrence in a rule body mark
// origin, mid and quote.
const anchorChar = '@'

// Anchor is a (row, col) offset into a rule template, relative to the
// template's top-left corner. Missing anchors are (-1, -1).
type Anchor struct {
	Row int
	Col int
}

// Rule is one compiled rewrite rule. All fields are fixed at load time.
type Rule struct {
	LHS    rune   // nonterminal this rule rewrites
	Header string // header line without the leading '='; doubles as debug tag
	RHS    string // multi-line template, '*' already substituted
	Origin Anchor // 1st '@': start of the LHS pattern
	Mid    Anchor // 2nd '@': boundary between LHS pattern and RHS output
	Quote  Anchor // 3rd '@': aligns the template to the current grid position
	Fg     uint8
	Bg     uint8 // >7 resolves against the memory layer
	Z      byte
	Reward int
	Weight int
	Key    rune // step key filter
	Ctx    rune
	CtxRep rune
	Rep    rune // written for '@' in the output part
	Sound  rune
}

// Horizontal reports the orientation of a rule, determined by its anchor
// geometry: the LHS pattern is skipped column-wise (horizontal) or row-wise
// (vertical) during rewriting.
func (r *Rule) Horizontal() bool {
	return r.Quote.Col > r.Origin.Col
}

// AcceptsKey tests whether the rule is eligible under a step key.
func (r *Rule) AcceptsKey(key rune) bool {
	return r.Key == key || r.Key == KeyWildcard
}

// Fingerprint returns a digest of the compiled rule.
func (r *Rule) Fingerprint() string {
	hash, err := structhash.Hash(r, 1)
	if err != nil { // no reason for this to happen, but API demands it
		panic(err)
	}
	return hash
}

func (r *Rule) String() string {
	return "=" + r.Header
}

// Seed places a starting nonterminal on the grid. UL selects the row
// class, LR the column class; unknown classes place randomly (see package
// derivation for the class tables).
type Seed struct {
	Glyph rune
	UL    rune
	LR    rune
}

// Grammar is a compiled 2D rewrite grammar: seeds plus rules, indexed by
// their LHS nonterminal. Immutable after loading.
type Grammar struct {
	Seeds        []Seed
	Help         string          // set by a '#!' line
	Sounds       map[rune]string // sound alias → sound file, set by '#=' lines
	rules        map[rune]*arraylist.List
	nonterminals *treeset.Set
}

func newGrammar() *Grammar {
	return &Grammar{
		Sounds:       make(map[rune]string),
		rules:        make(map[rune]*arraylist.List),
		nonterminals: treeset.NewWith(utils.RuneComparator),
	}
}

// AddRule compiles a header line together with its rule body and appends the
// result to the rules of the header's LHS. Headers shorter than 3 characters
// cannot name an LHS and are dropped with a trace message.
func (g *Grammar) AddRule(line, body string) {
	chars := []rune(line)
	if len(chars) < 3 {
		tracer().Errorf("rule header too short, ignored: %q", line)
		return
	}
	lhs := chars[2]
	ctx := at(chars, 6, NoContext)
	if ctx == '?' {
		ctx = NoContext
	}
	ctxRep := at(chars, 7, ' ')
	if ctxRep == '*' {
		ctxRep = lhs
	}
	reward, weight := rewardAndWeight(chars)
	rule := &Rule{
		LHS:    lhs,
		Header: string(chars[1:]),
		RHS:    strings.ReplaceAll(body, "*", string(lhs)),
		Origin: anchor(body, 0),
		Mid:    anchor(body, 1),
		Quote:  anchor(body, 2),
		Fg:     digit(at(chars, 4, '7'), 7),
		Bg:     digit(at(chars, 5, '8'), 0),
		Z:      byte(at(chars, 8, 'a')),
		Reward: reward,
		Weight: weight,
		Key:    at(chars, 9, KeyWildcard),
		Ctx:    ctx,
		CtxRep: ctxRep,
		Rep:    at(chars, 3, ' '),
		Sound:  at(chars, 1, ' '),
	}
	list, ok := g.rules[lhs]
	if !ok {
		list = arraylist.New()
		g.rules[lhs] = list
		g.nonterminals.Add(lhs)
	}
	list.Add(rule)
	tracer().Debugf("rule %v for '%c', anchors %v/%v/%v", rule, lhs, rule.Origin, rule.Mid, rule.Quote)
}

// RulesFor returns the rules rewriting a nonterminal, in the order the
// grammar file declares them. Returns nil for terminals.
func (g *Grammar) RulesFor(lhs rune) *arraylist.List {
	return g.rules[lhs]
}

// IsNonterminal tests whether a character is the LHS of at least one rule.
func (g *Grammar) IsNonterminal(c rune) bool {
	return g.nonterminals.Contains(c)
}

// Nonterminals returns all LHS characters in ascending order.
func (g *Grammar) Nonterminals() []rune {
	values := g.nonterminals.Values()
	nts := make([]rune, len(values))
	for i, v := range values {
		nts[i] = v.(rune)
	}
	return nts
}

// EachRule calls f for every rule, grouped by LHS in ascending order, rules
// of one LHS in declaration order.
func (g *Grammar) EachRule(f func(*Rule)) {
	for _, v := range g.nonterminals.Values() {
		it := g.rules[v.(rune)].Iterator()
		for it.Next() {
			f(it.Value().(*Rule))
		}
	}
}

// RuleCount returns the total number of rules.
func (g *Grammar) RuleCount() int {
	n := 0
	for _, list := range g.rules {
		n += list.Size()
	}
	return n
}

// Fingerprint returns a digest over the complete compiled grammar. Two
// loads of the same file produce identical fingerprints.
func (g *Grammar) Fingerprint() string {
	var rules strings.Builder
	g.EachRule(func(r *Rule) {
		rules.WriteString(r.Fingerprint())
	})
	hash, err := structhash.Hash(struct {
		Seeds  []Seed
		Help   string
		Sounds map[rune]string
		Rules  string
	}{g.Seeds, g.Help, g.Sounds, rules.String()}, 1)
	if err != nil {
		panic(err)
	}
	return hash
}

// Dump is a debugging helper, tracing the complete grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar: %d rules ---------------", g.RuleCount())
	for _, seed := range g.Seeds {
		tracer().Debugf("^%c placed %c/%c", seed.Glyph, seed.UL, seed.LR)
	}
	g.EachRule(func(r *Rule) {
		tracer().Debugf("%v ::= %q", r, r.RHS)
	})
	tracer().Debugf("-------------------------------------")
}

// --- Header parsing helpers ------------------------------------------------

// at returns the character at index i, or def beyond the line's end.
func at(chars []rune, i int, def rune) rune {
	if i < len(chars) {
		return chars[i]
	}
	return def
}

func digit(c rune, def uint8) uint8 {
	if c >= '0' && c <= '9' {
		return uint8(c - '0')
	}
	return def
}

// rewardAndWeight parses the optional numeric tail. Parse failures fall
// back to the defaults (0, 1).
func rewardAndWeight(chars []rune) (reward int, weight int) {
	reward, weight = 0, 1
	if len(chars) <= 10 {
		return
	}
	fields := strings.Fields(string(chars[10:]))
	if len(fields) > 0 {
		if v, err := strconv.Atoi(fields[0]); err == nil {
			reward = v
		}
	}
	if len(fields) > 1 {
		if v, err := strconv.Atoi(fields[1]); err == nil {
			weight = v
		}
	}
	return
}

// anchor scans a rule body for the ord-th occurrence of '@' and returns its
// offset. Newlines reset the column to -1 before the post-increment, so the
// first character of each row sits at column 0.
func anchor(body string, ord int) Anchor {
	row, col := 0, 0
	for _, p := range body {
		if p == '\n' {
			row++
			col = -1
		} else if p == anchorChar {
			if ord == 0 {
				return Anchor{Row: row, Col: col}
			}
			ord--
		}
		col++
	}
	return Anchor{Row: -1, Col: -1}
}
