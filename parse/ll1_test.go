package parse

import (
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arithGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	terminals := []string{"i", "+", "*", "(", ")"}
	nonTerminals := []string{"E", "X", "T", "Y"}
	productions := map[string][]string{
		"E": {"TX"},
		"X": {"+E", grammar.Lambda},
		"T": {"iY", "(E)"},
		"Y": {"*T", grammar.Lambda},
	}
	g, err := grammar.New(terminals, nonTerminals, productions, "E")
	require.NoError(t, err)
	return g
}

func TestParse_AcceptsArithmeticString(t *testing.T) {
	g := arithGrammar(t)
	p, err := New(g)
	require.NoError(t, err)

	tree, err := p.Parse("i+i*i")
	require.NoError(t, err)
	assert.Equal(t, "E", tree.Value)
	assert.False(t, tree.Terminal)
}

func TestParse_RejectsIncompleteString(t *testing.T) {
	g := arithGrammar(t)
	p, err := New(g)
	require.NoError(t, err)

	_, err = p.Parse("i+")
	assert.Error(t, err)
}

func TestParse_RejectsMismatchedTerminal(t *testing.T) {
	g := arithGrammar(t)
	p, err := New(g)
	require.NoError(t, err)

	_, err = p.Parse("i+*i")
	assert.Error(t, err)
}

func TestParse_SingleTerminal(t *testing.T) {
	g := arithGrammar(t)
	p, err := New(g)
	require.NoError(t, err)

	tree, err := p.Parse("i")
	require.NoError(t, err)

	// E -> T X, T -> i Y, Y -> λ, X -> λ : derivation has exactly this
	// shape, two levels down to the lambda leaves.
	require.Len(t, tree.Children, 2)
	tNode, xNode := tree.Children[0], tree.Children[1]
	assert.Equal(t, "T", tNode.Value)
	assert.Equal(t, "X", xNode.Value)
	require.Len(t, xNode.Children, 1)
	assert.True(t, xNode.Children[0].IsLambda())
}

func TestParse_DeterministicAcrossRuns(t *testing.T) {
	g := arithGrammar(t)
	p, err := New(g)
	require.NoError(t, err)

	t1, err := p.Parse("i+i*i")
	require.NoError(t, err)
	t2, err := p.Parse("i+i*i")
	require.NoError(t, err)
	assert.True(t, t1.Equal(t2))
}

func TestParse_NonLL1GrammarCannotBuildParser(t *testing.T) {
	terminals := []string{"a", "*"}
	nonTerminals := []string{"I", "A", "X", "D"}
	productions := map[string][]string{
		"I": {"A*I", "a", grammar.Lambda},
		"A": {"aa*A", "a", grammar.Lambda},
		"X": {"I*AD"},
		"D": {"*", grammar.Lambda},
	}
	g, err := grammar.New(terminals, nonTerminals, productions, "I")
	require.NoError(t, err)

	_, err = New(g)
	assert.Error(t, err)
}
