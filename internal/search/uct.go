// Package search carries over provers/uct.h's UCT tree skeleton as an
// arena-indexed structure: the cyclic SentenceNode<->StepNode parent
// pointers of the original become plain int indices into two slices owned
// by Tree, per the "cyclic parent references -> arena + index" redesign
// note. No search heuristic is implemented; Select and Expand are stubs a
// future prover hangs its policy on.
package search

import (
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/subst"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// VisitResult mirrors the original's VisitResult enum: the outcome of
// visiting one node during a tree-search step.
type VisitResult int

const (
	Proved VisitResult = iota
	Continue
	Dead
)

func (r VisitResult) String() string {
	switch r {
	case Proved:
		return "Proved"
	case Continue:
		return "Continue"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// NodeIndex is an arena index into one of Tree's two node slices. NoNode
// stands in for the original's null weak_ptr.
type NodeIndex int

const NoNode NodeIndex = -1

// SentenceNode is a goal sentence to be proved, with zero or more attempted
// StepNode children, one per assertion tried against it. Parent indexes
// Tree.Steps, or is NoNode at the tree's root.
type SentenceNode struct {
	Parent NodeIndex
	Children []NodeIndex
	Sentence *ptree.Tree
	VisitNum uint32
	Exhausted bool
	Value float64
}

// StepNode is one candidate assertion applied to a SentenceNode's goal, with
// one SentenceNode child per hypothesis the assertion introduces. Parent
// indexes Tree.Sentences.
type StepNode struct {
	Parent NodeIndex
	Children []NodeIndex
	Label symtab.LabTok
	ConstSubstMap subst.Map
	UnconstSubstMap subst.Map
	Exhausted bool
}

// Tree is the UCT search tree over a single thesis sentence. Sentence and
// step layers alternate: Root is a SentenceNode index, its children are
// StepNode indices, their children are SentenceNode indices, and so on.
type Tree struct {
	Sentences []SentenceNode
	Steps []StepNode
	Root NodeIndex
}

// NewTree returns a Tree with a single root SentenceNode for thesis.
func NewTree(thesis *ptree.Tree) *Tree {
	t := &Tree{}
	t.Root = t.addSentence(SentenceNode{Parent: NoNode, Sentence: thesis})
	return t
}

func (t *Tree) addSentence(n SentenceNode) NodeIndex {
	idx := NodeIndex(len(t.Sentences))
	t.Sentences = append(t.Sentences, n)
	return idx
}

func (t *Tree) addStep(n StepNode) NodeIndex {
	idx := NodeIndex(len(t.Steps))
	t.Steps = append(t.Steps, n)
	return idx
}

// Expand appends a new StepNode child to the SentenceNode at parent, trying
// label with the given substitution maps, and returns the new step's
// index. It performs no bookkeeping beyond linking parent and child; policy
// (which label to try next, when a sentence is exhausted) is left to the
// caller, since no search heuristic is specified.
func (t *Tree) Expand(parent NodeIndex, label symtab.LabTok, constMap, unconstMap subst.Map) NodeIndex {
	step := t.addStep(StepNode{
		Parent: parent,
		Label: label,
		ConstSubstMap: constMap,
		UnconstSubstMap: unconstMap,
	})
	t.Sentences[parent].Children = append(t.Sentences[parent].Children, step)
	return step
}

// ExpandHypothesis appends a new SentenceNode child to the StepNode at
// parent for one of its assertion's hypotheses, and returns the new
// sentence's index.
func (t *Tree) ExpandHypothesis(parent NodeIndex, hyp *ptree.Tree) NodeIndex {
	sent := t.addSentence(SentenceNode{Parent: parent, Sentence: hyp})
	t.Steps[parent].Children = append(t.Steps[parent].Children, sent)
	return sent
}

// Select walks from a SentenceNode toward the child most worth visiting
// next. This stub reports Dead if the node itself is exhausted, otherwise
// descends to the first non-exhausted child; it reports Dead when the node
// has children and all are exhausted, and (NoNode, Continue) when it has
// none; a real policy would
// rank children by UCT score (visit count, accumulated value) as
// provers/uct.h's SentenceNode::visit does.
func (t *Tree) Select(node NodeIndex) (NodeIndex, VisitResult) {
	n := t.Sentences[node]
	if n.Exhausted {
		return NoNode, Dead
	}
	for _, c := range n.Children {
		if !t.Steps[c].Exhausted {
			return c, Continue
		}
	}
	if len(n.Children) > 0 {
		return NoNode, Dead
	}
	return NoNode, Continue
}
