package grammar

import (
	"sort"

	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/internal/util"
)

// LL1Table is a two-dimensional mapping (non-terminal, terminal-or-$) to an
// optional production body. Every cell starts unassigned; addCell assigns
// it at most once.
type LL1Table struct {
	nonTerminals util.StringSet
	terminals    util.StringSet // includes EndOfInput
	cells        map[string]map[string]*string
}

func newLL1Table(nonTerminals, terminalsWithEnd util.StringSet) *LL1Table {
	t := &LL1Table{
		nonTerminals: nonTerminals,
		terminals:    terminalsWithEnd,
		cells:        make(map[string]map[string]*string, nonTerminals.Len()),
	}
	for _, nt := range nonTerminals.Elements() {
		row := make(map[string]*string, terminalsWithEnd.Len())
		for _, term := range terminalsWithEnd.Elements() {
			row[term] = nil
		}
		t.cells[nt] = row
	}
	return t
}

// addCell assigns the cell (nt, term) to body. Returns a RepeatedCell error
// if the cell is already filled.
func (t *LL1Table) addCell(nt, term, body string) error {
	row, ok := t.cells[nt]
	if !ok {
		return icterrors.InvalidConstruction("%q is not a non-terminal of this table", nt)
	}
	if _, ok := row[term]; !ok {
		return icterrors.InvalidConstruction("%q is not a terminal of this table", term)
	}
	if row[term] != nil {
		return icterrors.RepeatedCell(nt, term)
	}
	b := body
	row[term] = &b
	return nil
}

// Get returns the production body assigned to (nt, term), if any.
func (t *LL1Table) Get(nt, term string) (string, bool) {
	row, ok := t.cells[nt]
	if !ok {
		return "", false
	}
	b, ok := row[term]
	if !ok || b == nil {
		return "", false
	}
	return *b, true
}

// NonTerminals returns the table's row labels, alphabetically sorted.
func (t *LL1Table) NonTerminals() []string {
	names := t.nonTerminals.Elements()
	sort.Strings(names)
	return names
}

// Terminals returns the table's column labels (including EndOfInput),
// alphabetically sorted except EndOfInput is always last.
func (t *LL1Table) Terminals() []string {
	names := make([]string, 0, t.terminals.Len())
	for _, n := range t.terminals.Elements() {
		if n != EndOfInput {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return append(names, EndOfInput)
}

// BuildLL1Table constructs the LL(1) predictive-parse table for g. For each
// production A -> α: every terminal in FIRST(α) gets cell (A, t) = α; if λ
// is in FIRST(α), every terminal (including EndOfInput) in FOLLOW(A) also
// gets cell (A, t) = α. Non-terminals and their productions are visited in
// a fixed (alphabetical non-terminal, then given production-list) order so
// that which collision is reported first is deterministic. If any
// assignment collides with one already made, the grammar is not LL(1):
// BuildLL1Table returns a NotLL1 error wrapping the triggering collision.
func BuildLL1Table(g *Grammar) (*LL1Table, error) {
	termsWithEnd := util.StringSetOf(g.terminals.Elements())
	termsWithEnd.Add(EndOfInput)

	table := newLL1Table(g.nonTerminals, termsWithEnd)

	ntNames := g.nonTerminals.Elements()
	sort.Strings(ntNames)

	termNames := g.terminals.Elements()
	sort.Strings(termNames)

	for _, nt := range ntNames {
		for _, body := range g.productions[nt] {
			firstSet, err := g.ComputeFirst(body)
			if err != nil {
				return nil, err
			}

			for _, term := range termNames {
				if firstSet.Has(term) {
					if err := table.addCell(nt, term, body); err != nil {
						return nil, icterrors.NotLL1(err)
					}
				}
			}

			if firstSet.Has(Lambda) {
				follow := g.follows[nt]
				followNames := follow.Elements()
				sort.Strings(followNames)
				for _, term := range followNames {
					if err := table.addCell(nt, term, body); err != nil {
						return nil, icterrors.NotLL1(err)
					}
				}
			}
		}
	}

	return table, nil
}

// IsLL1 reports whether g has a conflict-free LL(1) table.
func IsLL1(g *Grammar) bool {
	_, err := BuildLL1Table(g)
	return err == nil
}
