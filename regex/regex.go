// Package regex compiles regular expressions written in Kleene's syntax
// (literal characters, "." for concatenation, "+" for union, "*" for
// Kleene star, "λ" for the empty string, and parentheses for grouping)
// into NFA fragments via Thompson's construction.
package regex

import (
	"fmt"
	"strings"

	"github.com/dekarrin/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/icterrors"
)

// toRPN converts a Kleene-syntax regular expression from infix to reverse
// Polish notation via the shunting-yard algorithm. It assumes the input is
// syntactically well-formed; Compile discovers malformed input only
// indirectly, via a stack that doesn't end up with exactly one fragment.
func toRPN(re string) string {
	var stack []rune
	var out strings.Builder

	pop := func() {
		out.WriteRune(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}

	for _, x := range re {
		switch x {
		case '+':
			for len(stack) > 0 && stack[len(stack)-1] != '(' {
				pop()
			}
			stack = append(stack, x)
		case '.':
			for len(stack) > 0 && stack[len(stack)-1] == '.' {
				pop()
			}
			stack = append(stack, x)
		case '(':
			stack = append(stack, x)
		case ')':
			for len(stack) > 0 && stack[len(stack)-1] != '(' {
				pop()
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1] // discard the '('
			}
		default:
			out.WriteRune(x)
		}
	}

	for len(stack) > 0 {
		pop()
	}

	return out.String()
}

// fragment is an in-progress NFA under construction: an ordered slice of
// states where index 0 is always the fragment's sole initial state and
// index 1 is always its sole accepting state, following the invariant
// Thompson's construction maintains at every step.
type fragment struct {
	states []automaton.State
}

// builder hands out fresh, monotonically-numbered state name pairs and
// assembles fragments from them, mirroring the one state-counter-per-
// compilation discipline of the construction this is grounded on.
type builder struct {
	counter int
}

func (b *builder) terminalStates() (automaton.State, automaton.State) {
	initName := fmt.Sprintf("state%d", b.counter)
	b.counter++
	finalName := fmt.Sprintf("state%d", b.counter)
	b.counter++
	return automaton.State{Name: initName}, automaton.State{Name: finalName, Accepting: true}
}

func (b *builder) empty() fragment {
	init, final := b.terminalStates()
	return fragment{states: []automaton.State{init, final}}
}

func (b *builder) lambda() fragment {
	init, final := b.terminalStates()
	init.Transitions = append(init.Transitions, automaton.Transition{Symbol: automaton.Lambda, Target: final.Name})
	return fragment{states: []automaton.State{init, final}}
}

func (b *builder) symbol(sym string) fragment {
	init, final := b.terminalStates()
	init.Transitions = append(init.Transitions, automaton.Transition{Symbol: sym, Target: final.Name})
	return fragment{states: []automaton.State{init, final}}
}

func copyStates(states []automaton.State) []automaton.State {
	out := make([]automaton.State, len(states))
	copy(out, states)
	return out
}

func (b *builder) star(f fragment) fragment {
	init, final := b.terminalStates()

	init.Transitions = append(init.Transitions,
		automaton.Transition{Symbol: automaton.Lambda, Target: final.Name},
		automaton.Transition{Symbol: automaton.Lambda, Target: f.states[0].Name},
	)

	sub := copyStates(f.states)
	oldFinal := sub[1]
	oldFinal.Accepting = false
	oldFinal.Transitions = append(oldFinal.Transitions, automaton.Transition{Symbol: automaton.Lambda, Target: final.Name})
	sub[1] = oldFinal

	final.Transitions = append(final.Transitions, automaton.Transition{Symbol: automaton.Lambda, Target: init.Name})

	states := append([]automaton.State{init, final}, sub...)
	return fragment{states: states}
}

func (b *builder) union(f1, f2 fragment) fragment {
	init, final := b.terminalStates()

	init.Transitions = append(init.Transitions,
		automaton.Transition{Symbol: automaton.Lambda, Target: f1.states[0].Name},
		automaton.Transition{Symbol: automaton.Lambda, Target: f2.states[0].Name},
	)

	sub1 := copyStates(f1.states)
	old1 := sub1[1]
	old1.Accepting = false
	old1.Transitions = append(old1.Transitions, automaton.Transition{Symbol: automaton.Lambda, Target: final.Name})
	sub1[1] = old1

	sub2 := copyStates(f2.states)
	old2 := sub2[1]
	old2.Accepting = false
	old2.Transitions = append(old2.Transitions, automaton.Transition{Symbol: automaton.Lambda, Target: final.Name})
	sub2[1] = old2

	states := append([]automaton.State{init, final}, sub1...)
	states = append(states, sub2...)
	return fragment{states: states}
}

func (b *builder) concat(f1, f2 fragment) fragment {
	init, final := b.terminalStates()

	init.Transitions = append(init.Transitions, automaton.Transition{Symbol: automaton.Lambda, Target: f1.states[0].Name})

	sub1 := copyStates(f1.states)
	old1 := sub1[1]
	old1.Accepting = false
	old1.Transitions = append(old1.Transitions, automaton.Transition{Symbol: automaton.Lambda, Target: f2.states[0].Name})
	sub1[1] = old1

	sub2 := copyStates(f2.states)
	old2 := sub2[1]
	old2.Accepting = false
	old2.Transitions = append(old2.Transitions, automaton.Transition{Symbol: automaton.Lambda, Target: final.Name})
	sub2[1] = old2

	states := append([]automaton.State{init, final}, sub1...)
	states = append(states, sub2...)
	return fragment{states: states}
}

// Compile turns re into an equivalent NFA. An empty re string is
// special-cased to the automaton that accepts no strings at all (the empty
// language), per the construction's own special case for that input, rather
// than being run through RPN conversion as a degenerate zero-symbol
// expression.
func Compile(re string) (*automaton.FiniteAutomaton, error) {
	b := &builder{}

	if re == "" {
		f := b.empty()
		return automaton.New(f.states)
	}

	rpn := toRPN(re)

	var stack []fragment
	for _, x := range rpn {
		switch x {
		case '*':
			if len(stack) < 1 {
				return nil, icterrors.InvalidConstruction("malformed regular expression %q: '*' with no operand", re)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, b.star(top))
		case '+':
			if len(stack) < 2 {
				return nil, icterrors.InvalidConstruction("malformed regular expression %q: '+' needs two operands", re)
			}
			f2 := stack[len(stack)-1]
			f1 := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, b.union(f1, f2))
		case '.':
			if len(stack) < 2 {
				return nil, icterrors.InvalidConstruction("malformed regular expression %q: '.' needs two operands", re)
			}
			f2 := stack[len(stack)-1]
			f1 := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, b.concat(f1, f2))
		case 'λ':
			stack = append(stack, b.lambda())
		default:
			stack = append(stack, b.symbol(string(x)))
		}
	}

	if len(stack) != 1 {
		return nil, icterrors.InvalidConstruction("malformed regular expression %q", re)
	}

	return automaton.New(stack[0].states)
}
