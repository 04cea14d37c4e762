package search

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/subst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTree_HasSingleRootSentence(t *testing.T) {
	thesis := &ptree.Tree{Label: 1, Type: 2}
	tr := NewTree(thesis)

	require.Len(t, tr.Sentences, 1)
	assert.Equal(t, NodeIndex(0), tr.Root)
	assert.Equal(t, NoNode, tr.Sentences[tr.Root].Parent)
	assert.Same(t, thesis, tr.Sentences[tr.Root].Sentence)
}

func TestExpand_LinksStepUnderSentence(t *testing.T) {
	tr := NewTree(&ptree.Tree{Label: 1, Type: 2})

	step := tr.Expand(tr.Root, 5, subst.Map{}, subst.Map{})

	require.Len(t, tr.Sentences[tr.Root].Children, 1)
	assert.Equal(t, step, tr.Sentences[tr.Root].Children[0])
	assert.Equal(t, tr.Root, tr.Steps[step].Parent)
	assert.EqualValues(t, 5, tr.Steps[step].Label)
}

func TestExpandHypothesis_LinksSentenceUnderStep(t *testing.T) {
	tr := NewTree(&ptree.Tree{Label: 1, Type: 2})
	step := tr.Expand(tr.Root, 5, subst.Map{}, subst.Map{})

	hyp := &ptree.Tree{Label: 3, Type: 4}
	sent := tr.ExpandHypothesis(step, hyp)

	require.Len(t, tr.Steps[step].Children, 1)
	assert.Equal(t, sent, tr.Steps[step].Children[0])
	assert.Equal(t, step, tr.Sentences[sent].Parent)
	assert.Same(t, hyp, tr.Sentences[sent].Sentence)
}

func TestSelect_ReturnsDeadForExhaustedLeafWithNoChildren(t *testing.T) {
	tr := NewTree(&ptree.Tree{Label: 1, Type: 2})
	tr.Sentences[tr.Root].Exhausted = true

	next, result := tr.Select(tr.Root)
	assert.Equal(t, NoNode, next)
	assert.Equal(t, Dead, result)
}

func TestSelect_SkipsExhaustedStepChildren(t *testing.T) {
	tr := NewTree(&ptree.Tree{Label: 1, Type: 2})
	deadStep := tr.Expand(tr.Root, 1, subst.Map{}, subst.Map{})
	tr.Steps[deadStep].Exhausted = true
	liveStep := tr.Expand(tr.Root, 2, subst.Map{}, subst.Map{})

	next, result := tr.Select(tr.Root)
	assert.Equal(t, liveStep, next)
	assert.Equal(t, Continue, result)
}

func TestSelect_DeadWhenAllStepChildrenExhausted(t *testing.T) {
	tr := NewTree(&ptree.Tree{Label: 1, Type: 2})
	step := tr.Expand(tr.Root, 1, subst.Map{}, subst.Map{})
	tr.Steps[step].Exhausted = true

	next, result := tr.Select(tr.Root)
	assert.Equal(t, NoNode, next)
	assert.Equal(t, Dead, result)
}

func TestLiteral_Negate(t *testing.T) {
	lit := Literal{Positive: true, Var: 3}
	assert.Equal(t, Literal{Positive: false, Var: 3}, lit.Negate())
}
