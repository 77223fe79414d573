package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText_ArithGrammar(t *testing.T) {
	text := `
E -> TX
X -> +E
X ->              # lambda
T -> iY
T -> (E)
Y -> *T
Y ->
`
	g, err := ReadText(strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal(t, "E", g.Axiom())
	assert.True(t, g.IsNonTerminal("E"))
	assert.True(t, g.IsTerminal("i"))
	assert.True(t, g.IsTerminal("+"))
	assert.False(t, g.IsTerminal("E"))
	assert.True(t, IsLL1(g))
}

func TestReadText_MissingArrowErrors(t *testing.T) {
	_, err := ReadText(strings.NewReader("E TX\n"))
	assert.Error(t, err)
}

func TestWriteText_RoundTrips(t *testing.T) {
	g := arithGrammar(t)

	var sb strings.Builder
	require.NoError(t, WriteText(&sb, g))

	again, err := ReadText(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, g.Axiom(), again.Axiom())
	assert.True(t, g.Terminals().Equal(again.Terminals()))
	assert.True(t, g.NonTerminals().Equal(again.NonTerminals()))
}
