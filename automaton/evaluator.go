package automaton

import "github.com/dekarrin/ictiobus/internal/util"

// LambdaClosure returns the lambda-closure of seed: the smallest superset of
// seed closed under following lambda transitions. seed is not modified.
func (fa *FiniteAutomaton) LambdaClosure(seed util.StringSet) util.StringSet {
	closure := util.StringSetOf(seed.Elements())

	var work util.Stack[string]
	for _, name := range closure.Elements() {
		work.Push(name)
	}

	for !work.Empty() {
		cur := work.Pop()
		s, ok := fa.State(cur)
		if !ok {
			continue
		}
		for _, t := range s.Transitions {
			if t.IsLambda() && !closure.Has(t.Target) {
				closure.Add(t.Target)
				work.Push(t.Target)
			}
		}
	}

	return closure
}

// move returns the set of states reachable from any state in subset by
// following a single transition labeled symbol. It does not take a further
// lambda-closure over the result; callers that need that (every caller in
// this package) apply LambdaClosure themselves.
func (fa *FiniteAutomaton) move(subset util.StringSet, symbol string) util.StringSet {
	moved := util.NewStringSet()
	for _, name := range subset.Elements() {
		s, ok := fa.State(name)
		if !ok {
			continue
		}
		for _, t := range s.Transitions {
			if t.Symbol == symbol {
				moved.Add(t.Target)
			}
		}
	}
	return moved
}

// Evaluator tracks the current subset of active states of a (generally
// non-deterministic) FiniteAutomaton as input symbols are processed one at a
// time, maintaining the lambda-closure invariant: the tracked subset is
// always already closed under lambda transitions. An Evaluator is not
// safe for concurrent use from more than one goroutine.
type Evaluator struct {
	fa      *FiniteAutomaton
	current util.StringSet
}

// NewEvaluator returns an Evaluator positioned at the lambda-closure of fa's
// initial state.
func NewEvaluator(fa *FiniteAutomaton) *Evaluator {
	seed := util.NewStringSet()
	seed.Add(fa.Start())
	return &Evaluator{fa: fa, current: fa.LambdaClosure(seed)}
}

// Reset returns the Evaluator to its starting configuration.
func (e *Evaluator) Reset() {
	seed := util.NewStringSet()
	seed.Add(e.fa.Start())
	e.current = e.fa.LambdaClosure(seed)
}

// CurrentStates returns a copy of the set of states currently active.
func (e *Evaluator) CurrentStates() util.StringSet {
	return util.StringSetOf(e.current.Elements())
}

// ProcessSymbol advances the evaluator by one input symbol: it moves every
// currently active state along symbol-labeled transitions, then takes the
// lambda-closure of the result and makes that the new active set.
func (e *Evaluator) ProcessSymbol(symbol string) {
	moved := e.fa.move(e.current, symbol)
	e.current = e.fa.LambdaClosure(moved)
}

// ProcessString folds ProcessSymbol over each rune of w in order.
func (e *Evaluator) ProcessString(w string) {
	for _, r := range w {
		e.ProcessSymbol(string(r))
	}
}

// IsAccepting reports whether any currently active state is an accepting
// state.
func (e *Evaluator) IsAccepting() bool {
	for _, name := range e.current.Elements() {
		if e.fa.IsAccepting(name) {
			return true
		}
	}
	return false
}

// Accepts reports whether w is accepted by the automaton, continuing from
// the evaluator's current configuration (not from the initial state) and
// restoring that configuration afterward so repeated calls to Accepts don't
// affect one another or subsequent ProcessSymbol/ProcessString calls.
func (e *Evaluator) Accepts(w string) bool {
	saved := e.current
	defer func() { e.current = saved }()

	e.ProcessString(w)
	return e.IsAccepting()
}

// Accepts is a convenience wrapper that builds a fresh Evaluator for fa and
// reports whether w is accepted.
func Accepts(fa *FiniteAutomaton, w string) bool {
	return NewEvaluator(fa).Accepts(w)
}
