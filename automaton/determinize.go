package automaton

import (
	"fmt"

	"github.com/dekarrin/ictiobus/internal/util"
)

// emptyStateName is the sink state added to make a determinized automaton
// total: the destination of any transition whose subset-construction move
// produces the empty set.
const emptyStateName = "empty"

// closureMove returns the lambda-closure of move(subset, symbol): the
// subset-construction step of turning an NFA into a DFA. It is a pure
// function of its three arguments, with no hidden state, so Determinize can
// be written as a plain worklist loop over it.
func closureMove(fa *FiniteAutomaton, subset util.StringSet, symbol string) util.StringSet {
	return fa.LambdaClosure(fa.move(subset, symbol))
}

func subsetHasAccepting(fa *FiniteAutomaton, subset util.StringSet) bool {
	for _, name := range subset.Elements() {
		if fa.IsAccepting(name) {
			return true
		}
	}
	return false
}

// Determinize performs subset construction on fa, producing an equivalent
// deterministic, total automaton. New state names are assigned in creation
// order as q1, q2, ... regardless of the source automaton's state names; a
// sink state named "empty" is added, with a self-loop on every alphabet
// symbol, the first time a move produces no destination states.
func Determinize(fa *FiniteAutomaton) *FiniteAutomaton {
	alphabet := fa.Alphabet().Elements()

	b := NewBuilder()
	subsetOf := make(map[string]util.StringSet) // subset key -> subset
	nameOf := make(map[string]string)           // subset key -> new state name
	counter := 0
	nextName := func() string {
		counter++
		return fmt.Sprintf("q%d", counter)
	}

	startSeed := util.NewStringSet()
	startSeed.Add(fa.Start())
	startSet := fa.LambdaClosure(startSeed)
	startKey := startSet.StringOrdered()

	startName := nextName()
	nameOf[startKey] = startName
	subsetOf[startKey] = startSet
	b.AddState(startName, subsetHasAccepting(fa, startSet))

	haveEmpty := false

	var work util.Stack[string]
	work.Push(startKey)

	for !work.Empty() {
		key := work.Pop()
		subset := subsetOf[key]
		name := nameOf[key]

		for _, sym := range alphabet {
			moved := closureMove(fa, subset, sym)

			var destName string
			if moved.Empty() {
				if !haveEmpty {
					haveEmpty = true
					b.AddState(emptyStateName, false)
					for _, s2 := range alphabet {
						_ = b.AddTransition(emptyStateName, s2, emptyStateName)
					}
				}
				destName = emptyStateName
			} else {
				mkey := moved.StringOrdered()
				existing, ok := nameOf[mkey]
				if !ok {
					existing = nextName()
					nameOf[mkey] = existing
					subsetOf[mkey] = moved
					b.AddState(existing, subsetHasAccepting(fa, moved))
					work.Push(mkey)
				}
				destName = existing
			}

			_ = b.AddTransition(name, sym, destName)
		}
	}

	result, err := b.Build(startName)
	if err != nil {
		// Builder invariants (every referenced state added before use) are
		// maintained by construction above; a failure here means this
		// function has a bug, not that the input was invalid.
		panic(err)
	}
	result.deterministic = true
	return result
}
