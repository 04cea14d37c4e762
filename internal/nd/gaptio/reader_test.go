package gaptio

import (
	"strings"
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Formula_ForallImplies(t *testing.T) {
	r := NewReader(strings.NewReader("forall var x imp unint p 1 var x unint q 1 var x"))
	f, err := r.Formula()
	require.NoError(t, err)

	want := ast.Forall("x", ast.Implies(
		ast.Predicate("p", ast.Variable("x")),
		ast.Predicate("q", ast.Variable("x"))))
	assert.True(t, f.Equal(want))
}

func TestReader_NDSequent_RejectsMultipleSuccedents(t *testing.T) {
	r := NewReader(strings.NewReader("0 2 true false"))
	_, err := r.NDSequent()
	assert.Error(t, err)
}

func TestReader_Rule_LogicalAxiomAndIntro(t *testing.T) {
	input := "2 unint A 0 unint B 0 1 unint A 0 and unint A 0 unint B 0 " +
		"AndIntro " +
		"1 unint A 0 1 unint A 0 LogicalAxiom unint A 0 " +
		"1 unint B 0 1 unint B 0 LogicalAxiom unint B 0"
	r := NewReader(strings.NewReader(input))
	rule, err := r.Rule()
	require.NoError(t, err)
	assert.True(t, rule.Check())
}

func TestWriter_RoundTripsFormula(t *testing.T) {
	f := ast.Forall("x", ast.Implies(
		ast.Predicate("p", ast.Variable("x")),
		ast.Predicate("q", ast.Variable("x"))))
	var sb strings.Builder
	w := NewWriter(&sb)
	w.Formula(f)
	require.NoError(t, w.Err())

	r := NewReader(strings.NewReader(sb.String()))
	got, err := r.Formula()
	require.NoError(t, err)
	assert.True(t, got.Equal(f))
}
