package grammar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadFile reads and compiles a grammar file.
func LoadFile(filename string) (*Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read grammar file: %w", err)
	}
	defer f.Close()
	return Load(filename, f)
}

// Load compiles a grammar from a reader. name is used for tracing only.
//
// Rule headers and rule bodies are batched: consecutive '=' lines share the
// body that follows them, one compiled rule per header. The batch is flushed
// when the next header group starts, and once more at end of input. A
// grammar without any '^' line gets the default seed 'c', centered.
func Load(name string, input io.Reader) (*Grammar, error) {
	g := newGrammar()
	var headers []string
	var body []string
	flush := func() {
		if len(body) == 0 {
			return
		}
		template := strings.Join(body, "\n")
		for _, header := range headers {
			g.AddRule(header, template)
		}
		headers = headers[:0]
		body = body[:0]
	}
	lines := bufio.NewScanner(input)
	for lines.Scan() {
		line := lines.Text()
		chars := []rune(line)
		if len(chars) == 0 {
			body = append(body, line)
			continue
		}
		switch chars[0] {
		case '#':
			switch at(chars, 1, ' ') {
			case '!':
				g.Help = tail(chars, 2)
			case '=':
				g.Sounds[at(chars, 2, '=')] = tail(chars, 3)
			}
		case '^':
			g.Seeds = append(g.Seeds, Seed{
				Glyph: at(chars, 1, 's'),
				UL:    at(chars, 2, 'c'),
				LR:    at(chars, 3, 'c'),
			})
		case '=':
			flush()
			headers = append(headers, line)
		default:
			body = append(body, line)
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("cannot read grammar %q: %w", name, err)
	}
	flush()
	if len(g.Seeds) == 0 {
		g.Seeds = append(g.Seeds, Seed{Glyph: 'c', UL: 'c', LR: 'c'})
	}
	tracer().Infof("grammar %q: %d rules / %d nonterminals / %d seeds",
		name, g.RuleCount(), g.nonterminals.Size(), len(g.Seeds))
	return g, nil
}

func tail(chars []rune, from int) string {
	if from >= len(chars) {
		return ""
	}
	return string(chars[from:])
}
