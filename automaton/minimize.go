package automaton

import (
	"fmt"

	"github.com/dekarrin/ictiobus/internal/util"
)

// reachableStates returns the names of states reachable from fa's initial
// state, in breadth-first visitation order (so the initial state is
// always first).
func reachableStates(fa *FiniteAutomaton) []string {
	visited := util.NewStringSet()
	var order, queue []string

	start := fa.Start()
	visited.Add(start)
	queue = append(queue, start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)

		s, _ := fa.State(cur)
		for _, t := range s.Transitions {
			if !visited.Has(t.Target) {
				visited.Add(t.Target)
				queue = append(queue, t.Target)
			}
		}
	}

	return order
}

func sameClassing(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Minimize returns the minimal DFA equivalent to fa. If fa is not already
// deterministic it is first run through Determinize. The returned automaton
// has had unreachable states pruned and equivalent states merged, with
// merged states named q0, q1, ... in order of first appearance among the
// pruned, reachable states (so the class containing the initial state is
// always q0, as the initial state is visited first).
func Minimize(fa *FiniteAutomaton) *FiniteAutomaton {
	det := fa
	if !fa.IsDeterministic() {
		det = Determinize(fa)
	}

	reached := reachableStates(det)
	n := len(reached)
	idx := make(map[string]int, n)
	for i, name := range reached {
		idx[name] = i
	}

	alphabet := det.Alphabet().Elements()

	// trans[i][symbol] = index (into reached) of the destination state;
	// cached once up front so equivalence refinement never has to rescan a
	// state's transition list.
	trans := make([]map[string]int, n)
	accepting := make([]bool, n)
	for i, name := range reached {
		s, _ := det.State(name)
		accepting[i] = s.Accepting
		trans[i] = make(map[string]int, len(alphabet))
		for _, t := range s.Transitions {
			if tgt, ok := idx[t.Target]; ok {
				trans[i][t.Symbol] = tgt
			}
		}
	}

	classes := make([]int, n)
	for i := range classes {
		if accepting[i] {
			classes[i] = 1
		}
	}

	for {
		sigOf := make([]string, n)
		for i := 0; i < n; i++ {
			sig := fmt.Sprintf("%d", classes[i])
			for _, sym := range alphabet {
				tgtClass := -1
				if tgt, ok := trans[i][sym]; ok {
					tgtClass = classes[tgt]
				}
				sig += fmt.Sprintf("|%s:%d", sym, tgtClass)
			}
			sigOf[i] = sig
		}

		seen := make(map[string]int)
		next := make([]int, n)
		nextID := 0
		for i := 0; i < n; i++ {
			id, ok := seen[sigOf[i]]
			if !ok {
				id = nextID
				seen[sigOf[i]] = id
				nextID++
			}
			next[i] = id
		}

		if sameClassing(classes, next) {
			break
		}
		classes = next
	}

	numClasses := 0
	for _, c := range classes {
		if c+1 > numClasses {
			numClasses = c + 1
		}
	}

	rep := make([]int, numClasses)
	repFound := make([]bool, numClasses)
	for i := 0; i < n; i++ {
		c := classes[i]
		if !repFound[c] {
			rep[c] = i
			repFound[c] = true
		}
	}

	name := func(c int) string { return fmt.Sprintf("q%d", c) }

	b := NewBuilder()
	for c := 0; c < numClasses; c++ {
		b.AddState(name(c), accepting[rep[c]])
	}
	for c := 0; c < numClasses; c++ {
		r := rep[c]
		for _, sym := range alphabet {
			if tgt, ok := trans[r][sym]; ok {
				_ = b.AddTransition(name(c), sym, name(classes[tgt]))
			}
		}
	}

	startClass := classes[idx[det.Start()]]
	result, err := b.Build(name(startClass))
	if err != nil {
		panic(err)
	}
	result.deterministic = true
	return result
}
