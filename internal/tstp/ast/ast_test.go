package ast

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForall_ReplaceSameVar_IsNoop(t *testing.T) {
	f := Forall("x", Predicate("p", Variable("x")))
	out, err := f.Replace("x", Functor("f", Variable("y")))
	require.NoError(t, err)
	assert.True(t, f.Equal(out))
}

func TestForall_ReplaceCapturingVar_Fails(t *testing.T) {
	f := Forall("y", Predicate("p", Variable("x")))
	_, err := f.Replace("x", Functor("f", Variable("y")))
	assert.ErrorIs(t, err, mmerrors.ErrVariableCapture)
}

func TestForall_ReplaceNonCapturingVar_Succeeds(t *testing.T) {
	f := Forall("y", Predicate("p", Variable("x")))
	out, err := f.Replace("x", Functor("f", Variable("z")))
	require.NoError(t, err)
	assert.True(t, out.HasFreeVar("z"))
	assert.False(t, out.HasFreeVar("x"))
}

func TestAndIntro_AntecedentMultisetEquality(t *testing.T) {
	a := Predicate("p")
	b := Predicate("q")
	left := []*Formula{a, b}
	right := []*Formula{b, a}
	SortFormulas(left)
	SortFormulas(right)
	require.Len(t, left, 2)
	assert.True(t, left[0].Equal(right[0]))
	assert.True(t, left[1].Equal(right[1]))
}

func TestForall_ReplaceNonCapturingVar_ProducesExactTree(t *testing.T) {
	f := Forall("y", Predicate("p", Variable("x")))
	out, err := f.Replace("x", Functor("f", Variable("z")))
	require.NoError(t, err)

	want := Forall("y", Predicate("p", Functor("f", Variable("z"))))
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Replace produced unexpected tree (-want +got):\n%s", diff)
	}
}

func TestSortFormulas_OrdersByCompare(t *testing.T) {
	a := Predicate("p")
	b := Predicate("q")
	fs := []*Formula{b, a}
	SortFormulas(fs)

	want := []*Formula{a, b}
	if diff := cmp.Diff(want, fs); diff != "" {
		t.Errorf("SortFormulas produced unexpected order (-want +got):\n%s", diff)
	}
}

func TestCompare_TotalOrderIsConsistent(t *testing.T) {
	a := Predicate("p", Variable("x"))
	b := Predicate("p", Variable("y"))
	c := Predicate("q", Variable("x"))
	assert.NotEqual(t, 0, a.Compare(b))
	assert.NotEqual(t, 0, a.Compare(c))
	assert.Equal(t, 0, a.Compare(a))
}
