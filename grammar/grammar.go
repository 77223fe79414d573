// Package grammar implements context-free grammars over single-character
// symbols: construction-time validation, fixed-point FIRST/FOLLOW
// computation, and LL(1) predictive-parse table construction.
package grammar

import (
	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/internal/util"
)

// Lambda is the marker for the empty production body (and, inside FIRST/
// FOLLOW sets, for "the derivation may vanish entirely").
const Lambda = ""

// EndOfInput is the end-of-input sentinel used as a FOLLOW-set member and
// as the rightmost column of an LL1Table. It may not appear as a grammar
// terminal.
const EndOfInput = "$"

// Grammar is an immutable context-free grammar: terminals, non-terminals,
// one or more production bodies per non-terminal, and an axiom. FIRST and
// FOLLOW sets for every non-terminal are computed once at construction and
// memoized.
type Grammar struct {
	terminals    util.StringSet
	nonTerminals util.StringSet
	productions  map[string][]string
	axiom        string

	firsts  map[string]util.StringSet
	follows map[string]util.StringSet
}

// New validates and constructs a Grammar. productions must have exactly one
// entry per non-terminal, each with at least one body; every symbol
// appearing in any body must be a terminal or non-terminal; the axiom must
// be a non-terminal; terminals and non-terminals must be disjoint and both
// non-empty.
func New(terminals, nonTerminals []string, productions map[string][]string, axiom string) (*Grammar, error) {
	termSet := util.StringSetOf(terminals)
	ntSet := util.StringSetOf(nonTerminals)

	if termSet.Empty() {
		return nil, icterrors.InvalidConstruction("grammar must have at least one terminal")
	}
	if ntSet.Empty() {
		return nil, icterrors.InvalidConstruction("grammar must have at least one non-terminal")
	}
	if !termSet.DisjointWith(ntSet) {
		return nil, icterrors.InvalidConstruction("terminals and non-terminals must be disjoint")
	}
	if termSet.Has(EndOfInput) {
		return nil, icterrors.InvalidConstruction("%q is reserved as the end-of-input marker and cannot be a terminal", EndOfInput)
	}
	if !ntSet.Has(axiom) {
		return nil, icterrors.InvalidConstruction("axiom %q must be a non-terminal", axiom)
	}

	prodKeys := util.NewStringSet()
	for nt := range productions {
		prodKeys.Add(nt)
	}
	if !prodKeys.Equal(ntSet) {
		return nil, icterrors.InvalidConstruction("production keys must exactly match the non-terminal set")
	}

	for nt, bodies := range productions {
		if len(bodies) == 0 {
			return nil, icterrors.InvalidConstruction("non-terminal %q has no productions", nt)
		}
		for _, body := range bodies {
			for _, r := range body {
				sym := string(r)
				if !termSet.Has(sym) && !ntSet.Has(sym) {
					return nil, icterrors.InvalidConstruction("production for %q references unknown symbol %q", nt, sym)
				}
			}
		}
	}

	g := &Grammar{
		terminals:    termSet,
		nonTerminals: ntSet,
		productions:  productions,
		axiom:        axiom,
	}
	g.firsts = g.computeFirsts()
	g.follows = g.computeFollows()
	return g, nil
}

// Axiom returns the grammar's start symbol.
func (g *Grammar) Axiom() string { return g.axiom }

// Terminals returns the grammar's terminal alphabet.
func (g *Grammar) Terminals() util.StringSet { return util.StringSetOf(g.terminals.Elements()) }

// NonTerminals returns the grammar's non-terminal alphabet.
func (g *Grammar) NonTerminals() util.StringSet { return util.StringSetOf(g.nonTerminals.Elements()) }

// IsTerminal reports whether sym is one of the grammar's terminals.
func (g *Grammar) IsTerminal(sym string) bool { return g.terminals.Has(sym) }

// IsNonTerminal reports whether sym is one of the grammar's non-terminals.
func (g *Grammar) IsNonTerminal(sym string) bool { return g.nonTerminals.Has(sym) }

// Productions returns the production bodies for nt, in the order given at
// construction.
func (g *Grammar) Productions(nt string) []string {
	bodies := g.productions[nt]
	out := make([]string, len(bodies))
	copy(out, bodies)
	return out
}

// First returns the memoized FIRST set of the non-terminal nt.
func (g *Grammar) First(nt string) util.StringSet {
	return util.StringSetOf(g.firsts[nt].Elements())
}

// Follow returns the memoized FOLLOW set of the non-terminal nt. Returns an
// UnknownSymbol error if nt is not one of the grammar's non-terminals.
func (g *Grammar) Follow(nt string) (util.StringSet, error) {
	if !g.nonTerminals.Has(nt) {
		return nil, icterrors.UnknownSymbol(nt)
	}
	return util.StringSetOf(g.follows[nt].Elements()), nil
}

// ComputeFirst computes FIRST(sentence) for an arbitrary sentential form
// over the grammar's alphabet, using the memoized per-non-terminal FIRST
// sets. The empty string maps to {λ}. Returns an UnknownSymbol error if
// sentence references a symbol outside the grammar.
func (g *Grammar) ComputeFirst(sentence string) (util.StringSet, error) {
	if sentence == Lambda {
		s := util.NewStringSet()
		s.Add(Lambda)
		return s, nil
	}

	firsts := util.NewStringSet()
	runes := []rune(sentence)

	for i := 0; i < len(runes); i++ {
		sym := string(runes[i])

		switch {
		case g.terminals.Has(sym):
			firsts.Add(sym)
			return firsts, nil
		case g.nonTerminals.Has(sym):
			nf := g.firsts[sym]
			hasLambda := nf.Has(Lambda)
			for _, s := range nf.Elements() {
				if s != Lambda {
					firsts.Add(s)
				}
			}
			if !hasLambda {
				return firsts, nil
			}
		default:
			return nil, icterrors.UnknownSymbol(sym)
		}
	}

	// every symbol was a nullable non-terminal
	firsts.Add(Lambda)
	return firsts, nil
}

// computeFirsts runs the fixed-point FIRST-set computation over every
// non-terminal simultaneously, reading each non-terminal's FIRST set from
// the previous pass (Jacobi-style update) until no set changes.
func (g *Grammar) computeFirsts() map[string]util.StringSet {
	names := g.nonTerminals.Elements()

	table := make(map[string]util.StringSet, len(names))
	for _, nt := range names {
		table[nt] = util.NewStringSet()
	}

	for {
		next := make(map[string]util.StringSet, len(names))
		for _, nt := range names {
			next[nt] = util.StringSetOf(table[nt].Elements())
		}

		for _, nt := range names {
			for _, p := range g.productions[nt] {
				if p == Lambda {
					next[nt].Add(Lambda)
					continue
				}

				runes := []rune(p)
				for i := 0; i < len(runes); i++ {
					sym := string(runes[i])

					if g.terminals.Has(sym) {
						next[nt].Add(sym)
						break
					}

					// non-terminal
					nf := table[sym]
					hasLambda := nf.Has(Lambda)
					for _, s := range nf.Elements() {
						if s != Lambda {
							next[nt].Add(s)
						}
					}
					if !hasLambda {
						break
					}
					if i+1 == len(runes) {
						next[nt].Add(Lambda)
					}
				}
			}
		}

		changed := false
		for _, nt := range names {
			if !table[nt].Equal(next[nt]) {
				changed = true
				break
			}
		}
		table = next
		if !changed {
			return table
		}
	}
}

// computeFollows runs the fixed-point FOLLOW-set computation. It reads
// FIRST sets from the already-stable g.firsts (computed before this runs)
// and iterates only the FOLLOW table itself to a fixed point.
func (g *Grammar) computeFollows() map[string]util.StringSet {
	names := g.nonTerminals.Elements()

	table := make(map[string]util.StringSet, len(names))
	for _, nt := range names {
		s := util.NewStringSet()
		if nt == g.axiom {
			s.Add(EndOfInput)
		}
		table[nt] = s
	}

	for {
		next := make(map[string]util.StringSet, len(names))
		for _, nt := range names {
			next[nt] = util.StringSetOf(table[nt].Elements())
		}

		for _, b := range names {
			for _, alpha := range g.productions[b] {
				runes := []rune(alpha)
				for k, r := range runes {
					c := string(r)
					if !g.nonTerminals.Has(c) {
						continue
					}

					beta := runes[k+1:]
					if len(beta) == 0 {
						next[c].AddAll(table[b])
						continue
					}

					nullableToEnd := true
					for i := 0; i < len(beta); i++ {
						sym := string(beta[i])
						if g.terminals.Has(sym) {
							next[c].Add(sym)
							nullableToEnd = false
							break
						}

						nf := g.firsts[sym]
						hasLambda := nf.Has(Lambda)
						for _, s := range nf.Elements() {
							if s != Lambda {
								next[c].Add(s)
							}
						}
						if !hasLambda {
							nullableToEnd = false
							break
						}
					}
					if nullableToEnd {
						next[c].AddAll(table[b])
					}
				}
			}
		}

		changed := false
		for _, nt := range names {
			if !table[nt].Equal(next[nt]) {
				changed = true
				break
			}
		}
		table = next
		if !changed {
			return table
		}
	}
}
