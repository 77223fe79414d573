// Package automaton implements the finite-automaton data model: states,
// transitions (including lambda transitions), and structural validation,
// along with evaluation (package-level Evaluator), determinization, and
// minimization.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/internal/util"
)

// Lambda is the distinguished symbol representing "no input consumed". A
// Transition whose Symbol equals Lambda is a lambda transition.
const Lambda = ""

// Transition is a pair (symbol-or-lambda, target-state-name).
type Transition struct {
	Symbol string
	Target string
}

// IsLambda returns whether this is a lambda transition.
func (t Transition) IsLambda() bool {
	return t.Symbol == Lambda
}

func (t Transition) String() string {
	sym := t.Symbol
	if sym == Lambda {
		sym = "λ"
	}
	return fmt.Sprintf("=(%s)=> %s", sym, t.Target)
}

// State is a single node of a FiniteAutomaton: a unique name, an accepting
// flag, and its (deduplicated) outgoing transitions.
type State struct {
	Name        string
	Accepting   bool
	Transitions []Transition
}

// addTransition appends t to the state's transition list unless an
// identical (symbol, target) pair is already present.
func (s *State) addTransition(t Transition) {
	for _, existing := range s.Transitions {
		if existing == t {
			return
		}
	}
	s.Transitions = append(s.Transitions, t)
}

func (s State) String() string {
	var parts []string
	for _, t := range s.Transitions {
		parts = append(parts, t.String())
	}
	sort.Strings(parts)

	str := fmt.Sprintf("(%s [%s])", s.Name, strings.Join(parts, ", "))
	if s.Accepting {
		str = "(" + str + ")"
	}
	return str
}

// FiniteAutomaton is an ordered sequence of states where the first element
// is the initial state, together with a name-to-index lookup and a derived
// alphabet. Automata are immutable after construction; transformations such
// as Determinize and Minimize return new automata rather than mutating the
// receiver.
type FiniteAutomaton struct {
	states        []State
	index         map[string]int
	alphabet      util.StringSet
	deterministic bool
}

// New constructs a FiniteAutomaton from states, whose first element becomes
// the initial state. Returns an InvalidConstruction error if state names are
// not unique or any transition targets a name not present in states.
func New(states []State) (*FiniteAutomaton, error) {
	if len(states) == 0 {
		return nil, icterrors.InvalidConstruction("automaton must have at least one state")
	}

	index := make(map[string]int, len(states))
	for i, s := range states {
		if _, dup := index[s.Name]; dup {
			return nil, icterrors.InvalidConstruction("duplicate state name %q", s.Name)
		}
		index[s.Name] = i
	}

	alphabet := util.NewStringSet()
	for _, s := range states {
		for _, t := range s.Transitions {
			if _, ok := index[t.Target]; !ok {
				return nil, icterrors.InvalidConstruction("state %q has a transition to undefined state %q", s.Name, t.Target)
			}
			if !t.IsLambda() {
				alphabet.Add(t.Symbol)
			}
		}
	}

	return &FiniteAutomaton{
		states:   states,
		index:    index,
		alphabet: alphabet,
	}, nil
}

// Start returns the name of the initial state.
func (fa *FiniteAutomaton) Start() string {
	return fa.states[0].Name
}

// StateNames returns the names of all states, in the order given at
// construction (or creation order, for automata produced by Determinize or
// Minimize).
func (fa *FiniteAutomaton) StateNames() []string {
	names := make([]string, len(fa.states))
	for i, s := range fa.states {
		names[i] = s.Name
	}
	return names
}

// State returns the state with the given name.
func (fa *FiniteAutomaton) State(name string) (State, bool) {
	i, ok := fa.index[name]
	if !ok {
		return State{}, false
	}
	return fa.states[i], true
}

// IsAccepting returns whether the named state is an accepting state. Returns
// false if the state does not exist.
func (fa *FiniteAutomaton) IsAccepting(name string) bool {
	s, ok := fa.State(name)
	return ok && s.Accepting
}

// Alphabet returns the set of non-lambda symbols appearing on any
// transition in the automaton.
func (fa *FiniteAutomaton) Alphabet() util.StringSet {
	return util.StringSetOf(fa.alphabet.Elements())
}

// IsDeterministic reports whether the automaton is already known to be
// deterministic (set by Determinize) or, failing that, checks the
// structural condition directly: no lambda transitions, and for every
// state, exactly one outgoing transition per alphabet symbol.
func (fa *FiniteAutomaton) IsDeterministic() bool {
	if fa.deterministic {
		return true
	}

	alphaLen := fa.alphabet.Len()
	for _, s := range fa.states {
		seen := util.NewStringSet()
		for _, t := range s.Transitions {
			if t.IsLambda() {
				return false
			}
			if seen.Has(t.Symbol) {
				return false
			}
			seen.Add(t.Symbol)
		}
		if seen.Len() != alphaLen {
			return false
		}
	}
	return true
}

// Validate re-checks the structural invariants New already enforces at
// construction time: unique state names and transitions that target only
// existing states. It exists as a standalone check for automata built
// incrementally via Builder.
func (fa *FiniteAutomaton) Validate() error {
	_, err := New(fa.states)
	return err
}

// String renders the automaton in the canonical textual format described
// for automaton descriptions: one state-declaration line per state (the
// first line is the initial state, "final" marks accepting states),
// followed by one transition line per transition.
func (fa *FiniteAutomaton) String() string {
	var sb strings.Builder
	sb.WriteString("Automaton:\n")
	for _, s := range fa.states {
		sb.WriteString("  ")
		sb.WriteString(s.Name)
		if s.Accepting {
			sb.WriteString(" final")
		}
		sb.WriteRune('\n')
	}
	for _, s := range fa.states {
		for _, t := range s.Transitions {
			sb.WriteString(fmt.Sprintf("  %s -%s-> %s\n", s.Name, t.Symbol, t.Target))
		}
	}
	return sb.String()
}
