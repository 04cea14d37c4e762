package tstp

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FOFForallImplies(t *testing.T) {
	g := BuildGrammar()
	e, err := Parse(g, "fof(c,conjecture,![X]:(p(X)=>q(X))).")
	require.NoError(t, err)

	assert.Equal(t, "fof", e.Kind)
	assert.Equal(t, "c", e.Name)
	assert.Equal(t, "conjecture", e.Role)

	want := ast.Forall("X", ast.Implies(
		ast.Predicate("p", ast.Variable("X")),
		ast.Predicate("q", ast.Variable("X"))))
	require.NotNil(t, e.Formula)
	assert.True(t, e.Formula.Equal(want), "got %s want %s", e.Formula, want)
}

func TestParse_CNFClauseRoundTrip(t *testing.T) {
	g := BuildGrammar()
	e, err := Parse(g, "cnf(ax1,axiom,p(X)|~q(X)).")
	require.NoError(t, err)
	assert.Equal(t, "cnf", e.Kind)

	want := ast.Or(ast.Predicate("p", ast.Variable("X")), ast.Not(ast.Predicate("q", ast.Variable("X"))))
	assert.True(t, e.Formula.Equal(want))
}

func TestParse_RejectsWhitespaceInsideIdentifier(t *testing.T) {
	g := BuildGrammar()
	_, err := Parse(g, "fo f(c,axiom,p(X)).")
	assert.Error(t, err)
}
