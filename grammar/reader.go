package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/internal/util"
)

// ReadText parses the canonical textual grammar format:
//
//	A -> αβγ
//	A ->              # empty right-hand side == lambda
//
// Non-terminals are every left-hand-side symbol seen; the axiom is the
// left-hand side of the first rule; terminals are every other symbol
// appearing on a right-hand side. Whitespace around the arrow and within
// the right-hand side is ignored; anything from a '#' to the end of a line
// is a comment.
func ReadText(r io.Reader) (*Grammar, error) {
	scanner := bufio.NewScanner(r)

	var nonTerminalOrder []string
	seenNT := util.NewStringSet()
	productions := make(map[string][]string)
	axiom := ""

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		arrow := strings.Index(line, "->")
		if arrow < 0 {
			return nil, icterrors.InvalidConstruction("line %d: missing '->'", lineNo)
		}

		lhs := strings.TrimSpace(line[:arrow])
		rhs := strings.TrimSpace(line[arrow+2:])
		body := strings.Join(strings.Fields(rhs), "")

		if lhs == "" {
			return nil, icterrors.InvalidConstruction("line %d: empty left-hand side", lineNo)
		}
		if len([]rune(lhs)) != 1 {
			return nil, icterrors.InvalidConstruction("line %d: left-hand side %q must be a single symbol", lineNo, lhs)
		}

		if !seenNT.Has(lhs) {
			seenNT.Add(lhs)
			nonTerminalOrder = append(nonTerminalOrder, lhs)
			if axiom == "" {
				axiom = lhs
			}
		}
		productions[lhs] = append(productions[lhs], body)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(nonTerminalOrder) == 0 {
		return nil, icterrors.InvalidConstruction("grammar text has no rules")
	}

	terminalSet := util.NewStringSet()
	for _, bodies := range productions {
		for _, body := range bodies {
			for _, r := range body {
				sym := string(r)
				if !seenNT.Has(sym) {
					terminalSet.Add(sym)
				}
			}
		}
	}

	return New(terminalSet.Elements(), nonTerminalOrder, productions, axiom)
}

// WriteText writes g to w in the same canonical format ReadText parses, one
// line per production body, non-terminals in alphabetical order with the
// axiom's rules emitted first so the
// output can round-trip through ReadText and recover the same axiom.
func WriteText(w io.Writer, g *Grammar) error {
	write := func(nt string) error {
		for _, body := range g.Productions(nt) {
			if _, err := fmt.Fprintf(w, "%s -> %s\n", nt, body); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(g.axiom); err != nil {
		return err
	}
	for _, nt := range util.OrderedKeys(g.nonTerminals) {
		if nt == g.axiom {
			continue
		}
		if err := write(nt); err != nil {
			return err
		}
	}
	return nil
}
