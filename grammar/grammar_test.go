package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arithGrammar builds E->TX; X->+E|λ; T->iY|(E); Y->*T|λ, the LL(1) seed
// grammar, with terminals i + * ( ).
func arithGrammar(t *testing.T) *Grammar {
	t.Helper()
	terminals := []string{"i", "+", "*", "(", ")"}
	nonTerminals := []string{"E", "X", "T", "Y"}
	productions := map[string][]string{
		"E": {"TX"},
		"X": {"+E", Lambda},
		"T": {"iY", "(E)"},
		"Y": {"*T", Lambda},
	}
	g, err := New(terminals, nonTerminals, productions, "E")
	require.NoError(t, err)
	return g
}

// conflictingGrammar builds I->A*I|a|λ; A->aa*A|a|λ; X->I*AD; D->*|λ, the
// seed grammar that is not LL(1).
func conflictingGrammar(t *testing.T) *Grammar {
	t.Helper()
	terminals := []string{"a", "*"}
	nonTerminals := []string{"I", "A", "X", "D"}
	productions := map[string][]string{
		"I": {"A*I", "a", Lambda},
		"A": {"aa*A", "a", Lambda},
		"X": {"I*AD"},
		"D": {"*", Lambda},
	}
	g, err := New(terminals, nonTerminals, productions, "I")
	require.NoError(t, err)
	return g
}

func TestNew_RejectsOverlappingAlphabets(t *testing.T) {
	_, err := New([]string{"a"}, []string{"a"}, map[string][]string{"a": {"a"}}, "a")
	assert.Error(t, err)
}

func TestNew_RejectsAxiomNotNonTerminal(t *testing.T) {
	_, err := New([]string{"a"}, []string{"S"}, map[string][]string{"S": {"a"}}, "Z")
	assert.Error(t, err)
}

func TestNew_RejectsMismatchedProductionKeys(t *testing.T) {
	_, err := New([]string{"a"}, []string{"S", "T"}, map[string][]string{"S": {"a"}}, "S")
	assert.Error(t, err)
}

func TestNew_RejectsNonTerminalWithNoProductions(t *testing.T) {
	_, err := New([]string{"a"}, []string{"S"}, map[string][]string{"S": {}}, "S")
	assert.Error(t, err)
}

func TestNew_RejectsUnknownSymbolInBody(t *testing.T) {
	_, err := New([]string{"a"}, []string{"S"}, map[string][]string{"S": {"b"}}, "S")
	assert.Error(t, err)
}

func TestNew_RejectsEndOfInputAsTerminal(t *testing.T) {
	_, err := New([]string{"$"}, []string{"S"}, map[string][]string{"S": {"$"}}, "S")
	assert.Error(t, err)
}

func TestFirst_ArithGrammar(t *testing.T) {
	g := arithGrammar(t)

	testCases := []struct {
		nt   string
		want []string
	}{
		{"E", []string{"i", "("}},
		{"T", []string{"i", "("}},
		{"X", []string{"+", Lambda}},
		{"Y", []string{"*", Lambda}},
	}

	for _, tc := range testCases {
		t.Run(tc.nt, func(t *testing.T) {
			first := g.First(tc.nt)
			assert.Equal(t, len(tc.want), first.Len())
			for _, w := range tc.want {
				assert.True(t, first.Has(w), "expected FIRST(%s) to contain %q, got %v", tc.nt, w, first.Elements())
			}
		})
	}
}

func TestFollow_ArithGrammar(t *testing.T) {
	g := arithGrammar(t)

	testCases := []struct {
		nt   string
		want []string
	}{
		{"E", []string{"$", ")"}},
		{"X", []string{"$", ")"}},
		{"T", []string{"+", "$", ")"}},
		{"Y", []string{"+", "$", ")"}},
	}

	for _, tc := range testCases {
		t.Run(tc.nt, func(t *testing.T) {
			follow, err := g.Follow(tc.nt)
			require.NoError(t, err)
			assert.Equal(t, len(tc.want), follow.Len())
			for _, w := range tc.want {
				assert.True(t, follow.Has(w), "expected FOLLOW(%s) to contain %q, got %v", tc.nt, w, follow.Elements())
			}
		})
	}
}

func TestFollow_UnknownNonTerminal(t *testing.T) {
	g := arithGrammar(t)
	_, err := g.Follow("Q")
	assert.Error(t, err)
}

func TestComputeFirst_SententialForm(t *testing.T) {
	g := arithGrammar(t)
	first, err := g.ComputeFirst("TX")
	require.NoError(t, err)
	assert.True(t, first.Has("i"))
	assert.True(t, first.Has("("))
	assert.False(t, first.Has(Lambda))
}

func TestComputeFirst_EmptyStringIsLambda(t *testing.T) {
	g := arithGrammar(t)
	first, err := g.ComputeFirst("")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())
	assert.True(t, first.Has(Lambda))
}

func TestComputeFirst_UnknownSymbol(t *testing.T) {
	g := arithGrammar(t)
	_, err := g.ComputeFirst("z")
	assert.Error(t, err)
}
