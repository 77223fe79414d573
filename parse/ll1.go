package parse

import (
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/icterrors"
)

// Parser drives a stack-based LL(1) predictive parse over a grammar's
// table. A Parser is safe to reuse across calls to Parse; Parse keeps no
// state outside the call itself.
type Parser struct {
	g     *grammar.Grammar
	table *grammar.LL1Table
}

// New builds the LL(1) table for g and returns a Parser over it. Returns
// the NotLL1 error from grammar.BuildLL1Table if g is not LL(1).
func New(g *grammar.Grammar) (*Parser, error) {
	table, err := grammar.BuildLL1Table(g)
	if err != nil {
		return nil, err
	}
	return &Parser{g: g, table: table}, nil
}

type stackEntry struct {
	symbol string
	node   *ParseTree
}

// Parse drives the predictive parser over input, starting from the
// grammar's axiom. On success it returns the derivation's ParseTree. On
// failure it returns a SyntaxError: either the table has no cell for the
// current (non-terminal, lookahead) pair, a terminal doesn't match the
// current input symbol, or input remains once the stack has emptied.
func (p *Parser) Parse(input string) (*ParseTree, error) {
	runes := []rune(input)
	index := 0

	lookahead := func() string {
		if index >= len(runes) {
			return grammar.EndOfInput
		}
		return string(runes[index])
	}

	root := &ParseTree{Value: p.g.Axiom()}
	stack := []stackEntry{
		{symbol: grammar.EndOfInput},
		{symbol: p.g.Axiom(), node: root},
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case top.symbol == grammar.EndOfInput:
			if index != len(runes) {
				return nil, icterrors.SyntaxErrorf("expected end of input at position %d but %d symbols remain", index, len(runes)-index)
			}

		case p.g.IsTerminal(top.symbol):
			la := lookahead()
			if la != top.symbol {
				return nil, icterrors.SyntaxErrorf("expected %q but found %q at position %d", top.symbol, la, index)
			}
			index++

		default: // non-terminal
			la := lookahead()
			body, ok := p.table.Get(top.symbol, la)
			if !ok {
				return nil, icterrors.SyntaxErrorf("no rule for %q with lookahead %q at position %d", top.symbol, la, index)
			}

			if body == grammar.Lambda {
				top.node.Children = append(top.node.Children, &ParseTree{Terminal: true})
				continue
			}

			bodyRunes := []rune(body)
			children := make([]*ParseTree, len(bodyRunes))
			for i, r := range bodyRunes {
				sym := string(r)
				children[i] = &ParseTree{Value: sym, Terminal: p.g.IsTerminal(sym)}
			}
			top.node.Children = append(top.node.Children, children...)

			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, stackEntry{symbol: children[i].Value, node: children[i]})
			}
		}
	}

	if index != len(runes) {
		return nil, icterrors.SyntaxErrorf("residual input after stack emptied: %q", string(runes[index:]))
	}

	return root, nil
}
