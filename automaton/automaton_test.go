package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DuplicateStateName(t *testing.T) {
	_, err := New([]State{
		{Name: "q0"},
		{Name: "q0"},
	})
	assert.Error(t, err)
}

func TestNew_TransitionToUndefinedState(t *testing.T) {
	_, err := New([]State{
		{Name: "q0", Transitions: []Transition{{Symbol: "a", Target: "q1"}}},
	})
	assert.Error(t, err)
}

func TestNew_FirstStateIsInitial(t *testing.T) {
	fa, err := New([]State{
		{Name: "q0"},
		{Name: "q1", Accepting: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "q0", fa.Start())
}

func TestAlphabet_ExcludesLambda(t *testing.T) {
	fa, err := New([]State{
		{Name: "q0", Transitions: []Transition{
			{Symbol: "a", Target: "q1"},
			{Symbol: Lambda, Target: "q1"},
		}},
		{Name: "q1", Accepting: true},
	})
	require.NoError(t, err)

	alpha := fa.Alphabet()
	assert.True(t, alpha.Has("a"))
	assert.False(t, alpha.Has(Lambda))
	assert.Equal(t, 1, alpha.Len())
}

func TestIsDeterministic(t *testing.T) {
	testCases := []struct {
		name   string
		states []State
		want   bool
	}{
		{
			name: "deterministic total automaton",
			states: []State{
				{Name: "q0", Transitions: []Transition{{Symbol: "a", Target: "q1"}, {Symbol: "b", Target: "q0"}}},
				{Name: "q1", Accepting: true, Transitions: []Transition{{Symbol: "a", Target: "q1"}, {Symbol: "b", Target: "q0"}}},
			},
			want: true,
		},
		{
			name: "lambda transition present",
			states: []State{
				{Name: "q0", Transitions: []Transition{{Symbol: Lambda, Target: "q1"}}},
				{Name: "q1", Accepting: true},
			},
			want: false,
		},
		{
			name: "missing transition for a symbol",
			states: []State{
				{Name: "q0", Transitions: []Transition{{Symbol: "a", Target: "q1"}}},
				{Name: "q1", Accepting: true, Transitions: []Transition{{Symbol: "b", Target: "q0"}}},
			},
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fa, err := New(tc.states)
			require.NoError(t, err)
			assert.Equal(t, tc.want, fa.IsDeterministic())
		})
	}
}

func TestBuilder_RoundTrip(t *testing.T) {
	b := NewBuilder()
	b.AddState("q0", false)
	b.AddState("q1", true)
	require.NoError(t, b.AddTransition("q0", "a", "q1"))
	require.NoError(t, b.AddTransition("q1", "a", "q1"))

	fa, err := b.Build("q0")
	require.NoError(t, err)
	assert.Equal(t, "q0", fa.Start())
	assert.True(t, fa.IsAccepting("q1"))
	assert.False(t, fa.IsAccepting("q0"))
}

func TestBuilder_TransitionFromUndefinedState(t *testing.T) {
	b := NewBuilder()
	b.AddState("q0", false)
	err := b.AddTransition("q0", "a", "q1")
	assert.Error(t, err)
}
