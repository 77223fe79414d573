package regex

import (
	"testing"

	"github.com/dekarrin/ictiobus/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_EmptyStringIsEmptyLanguage(t *testing.T) {
	fa, err := Compile("")
	require.NoError(t, err)
	assert.False(t, automaton.Accepts(fa, ""))
	assert.False(t, automaton.Accepts(fa, "a"))
}

func TestCompile_Lambda(t *testing.T) {
	fa, err := Compile("λ")
	require.NoError(t, err)
	assert.True(t, automaton.Accepts(fa, ""))
	assert.False(t, automaton.Accepts(fa, "a"))
}

func TestCompile_SingleSymbol(t *testing.T) {
	fa, err := Compile("a")
	require.NoError(t, err)
	assert.True(t, automaton.Accepts(fa, "a"))
	assert.False(t, automaton.Accepts(fa, ""))
	assert.False(t, automaton.Accepts(fa, "b"))
}

func TestCompile_Concat(t *testing.T) {
	fa, err := Compile("a.b")
	require.NoError(t, err)
	assert.True(t, automaton.Accepts(fa, "ab"))
	assert.False(t, automaton.Accepts(fa, "a"))
	assert.False(t, automaton.Accepts(fa, "ba"))
}

func TestCompile_Union(t *testing.T) {
	fa, err := Compile("a+b")
	require.NoError(t, err)
	assert.True(t, automaton.Accepts(fa, "a"))
	assert.True(t, automaton.Accepts(fa, "b"))
	assert.False(t, automaton.Accepts(fa, "ab"))
	assert.False(t, automaton.Accepts(fa, ""))
}

func TestCompile_Star(t *testing.T) {
	fa, err := Compile("a*")
	require.NoError(t, err)
	for _, in := range []string{"", "a", "aa", "aaaaa"} {
		assert.True(t, automaton.Accepts(fa, in), "input=%q", in)
	}
	assert.False(t, automaton.Accepts(fa, "b"))
	assert.False(t, automaton.Accepts(fa, "ab"))
}

func TestCompile_AOrBStarConcatA(t *testing.T) {
	fa, err := Compile("(a+b)*.a")
	require.NoError(t, err)

	testCases := []struct {
		input string
		want  bool
	}{
		{"a", true},
		{"aa", true},
		{"ba", true},
		{"aba", true},
		{"abba", true},
		{"", false},
		{"b", false},
		{"ab", false},
		{"aab", false},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, automaton.Accepts(fa, tc.input))
		})
	}
}

func TestCompile_GroupingChangesMeaning(t *testing.T) {
	ungrouped, err := Compile("a.b+c")
	require.NoError(t, err)
	grouped, err := Compile("a.(b+c)")
	require.NoError(t, err)

	// a.b+c means (a.b)+c: accepts "ab" or "c".
	assert.True(t, automaton.Accepts(ungrouped, "ab"))
	assert.True(t, automaton.Accepts(ungrouped, "c"))
	assert.False(t, automaton.Accepts(ungrouped, "ac"))

	// a.(b+c) accepts "ab" or "ac", not "c" alone.
	assert.True(t, automaton.Accepts(grouped, "ab"))
	assert.True(t, automaton.Accepts(grouped, "ac"))
	assert.False(t, automaton.Accepts(grouped, "c"))
}

func TestCompile_DeterminizeAndMinimizeRoundTrip(t *testing.T) {
	fa, err := Compile("(a+b)*.a")
	require.NoError(t, err)

	min := automaton.Minimize(fa)
	require.True(t, min.IsDeterministic())

	for _, in := range []string{"a", "aa", "ba", "aba", "", "b", "ab"} {
		assert.Equal(t, automaton.Accepts(fa, in), automaton.Accepts(min, in), "input=%q", in)
	}
}

func TestCompile_MalformedRegexErrors(t *testing.T) {
	_, err := Compile("*")
	assert.Error(t, err)

	_, err = Compile("+a")
	assert.Error(t, err)
}
