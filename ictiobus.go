// Package ictiobus is the top-level facade over the regex compiler,
// automaton model, and grammar/parser packages: the small set of entry
// points a caller needs without reaching into the subpackages directly.
package ictiobus

import (
	"io"

	"github.com/dekarrin/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/parse"
	"github.com/dekarrin/ictiobus/regex"
)

// CompileRegex compiles a Kleene-syntax regular expression to its
// equivalent NFA via Thompson's construction. See the regex package for the
// accepted syntax.
func CompileRegex(re string) (*automaton.FiniteAutomaton, error) {
	return regex.Compile(re)
}

// ReadAutomaton parses the canonical automaton textual format from r.
func ReadAutomaton(r io.Reader) (*automaton.FiniteAutomaton, error) {
	return automaton.ReadText(r)
}

// ReadGrammar parses the canonical grammar textual format from r.
func ReadGrammar(r io.Reader) (*grammar.Grammar, error) {
	return grammar.ReadText(r)
}

// NewEvaluator returns an Evaluator positioned at fa's initial
// lambda-closure, ready to process input symbol by symbol.
func NewEvaluator(fa *automaton.FiniteAutomaton) *automaton.Evaluator {
	return automaton.NewEvaluator(fa)
}

// NewLL1Parser builds the LL(1) table for g and returns a predictive parser
// over it. Returns a NotLL1 error if g is not LL(1).
func NewLL1Parser(g *grammar.Grammar) (*parse.Parser, error) {
	return parse.New(g)
}

// Frontend bundles a compiled regex's full processing pipeline: the raw
// NFA, its determinized form, and the minimal DFA, so a caller that wants
// all three (as the CLI's "regex" command does) doesn't have to call
// Determinize/Minimize by hand.
type Frontend struct {
	NFA        *automaton.FiniteAutomaton
	DFA        *automaton.FiniteAutomaton
	MinimalDFA *automaton.FiniteAutomaton
}

// CompileFrontend compiles re and runs it through determinization and
// minimization, returning all three stages.
func CompileFrontend(re string) (*Frontend, error) {
	nfa, err := regex.Compile(re)
	if err != nil {
		return nil, err
	}
	dfa := automaton.Determinize(nfa)
	return &Frontend{
		NFA:        nfa,
		DFA:        dfa,
		MinimalDFA: automaton.Minimize(dfa),
	}, nil
}
