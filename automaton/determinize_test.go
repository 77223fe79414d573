package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nfaAOrBStarA builds the NFA fragment equivalent to (a+b)*.a by hand,
// rather than going through the regex compiler, so the automaton package's
// tests don't depend on the regex package.
func nfaAOrBStarA(t *testing.T) *FiniteAutomaton {
	t.Helper()
	fa, err := New([]State{
		{Name: "s0", Transitions: []Transition{{Symbol: Lambda, Target: "s1"}, {Symbol: Lambda, Target: "s5"}}},
		{Name: "s1", Transitions: []Transition{{Symbol: Lambda, Target: "s2"}, {Symbol: Lambda, Target: "s3"}}},
		{Name: "s2", Transitions: []Transition{{Symbol: "a", Target: "s4"}}},
		{Name: "s3", Transitions: []Transition{{Symbol: "b", Target: "s4"}}},
		{Name: "s4", Transitions: []Transition{{Symbol: Lambda, Target: "s1"}, {Symbol: Lambda, Target: "s5"}}},
		{Name: "s5", Transitions: []Transition{{Symbol: "a", Target: "s6"}}},
		{Name: "s6", Accepting: true},
	})
	require.NoError(t, err)
	return fa
}

func TestDeterminize_ProducesTotalDeterministicAutomaton(t *testing.T) {
	nfa := nfaAOrBStarA(t)
	dfa := Determinize(nfa)

	assert.True(t, dfa.IsDeterministic())
	for _, name := range dfa.StateNames() {
		s, _ := dfa.State(name)
		assert.Len(t, s.Transitions, dfa.Alphabet().Len())
	}
}

func TestDeterminize_PreservesLanguage(t *testing.T) {
	nfa := nfaAOrBStarA(t)
	dfa := Determinize(nfa)

	testCases := []struct {
		input string
		want  bool
	}{
		{"a", true},
		{"aa", true},
		{"aba", true},
		{"abba", true},
		{"b", false},
		{"", false},
		{"ab", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Accepts(dfa, tc.input))
			assert.Equal(t, Accepts(nfa, tc.input), Accepts(dfa, tc.input))
		})
	}
}

func TestDeterminize_StateNamesAreCreationOrderedQNames(t *testing.T) {
	nfa := nfaAOrBStarA(t)
	dfa := Determinize(nfa)
	assert.Equal(t, "q1", dfa.Start())
}

func TestDeterminize_SinkStateOnlyAddedWhenNeeded(t *testing.T) {
	// Every subset reached from this NFA's start has both an "a" and a "b"
	// move, so no move ever produces the empty set and no "empty" sink state
	// is added. A symbol outside the alphabet is still rejected.
	nfa := nfaAOrBStarA(t)
	dfa := Determinize(nfa)
	_, hasSink := dfa.State(emptyStateName)
	assert.False(t, hasSink)
	assert.True(t, Accepts(dfa, "a"))
	assert.False(t, Accepts(dfa, "c"))
}
