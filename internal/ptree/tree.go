// Package ptree holds the two interchangeable parse-tree representations
// (C5): a nested recursive Tree, directly grounded on the prior toolbox's
// types.ParseTree (label/terminal/children shape, generalized here from
// string symbols to interned symtab tokens), and an arena-indexed FlatTree
// with a multi-iterator for one-pass traversal.
package ptree

import (
	"fmt"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// Tree is a parsing tree node. Label is the production (or variable) label
// that produced this node; a zero Label marks a failed parse. Type is the
// node's type symbol. Children is empty for leaves.
type Tree struct {
	Label symtab.LabTok
	Type symtab.SymTok
	Children []*Tree
}

// Failed reports whether t represents a failed parse (: "on
// failure, yields a tree with label=0").
func (t *Tree) Failed() bool {
	return t == nil || t.Label == 0
}

// Copy returns a deep copy of t.
func (t *Tree) Copy() *Tree {
	if t == nil {
		return nil
	}
	cp := &Tree{
		Label: t.Label,
		Type: t.Type,
		Children: make([]*Tree, len(t.Children)),
	}
	for i, c := range t.Children {
		cp.Children[i] = c.Copy()
	}
	return cp
}

// Equal reports whether t and o have identical structure: same label, same
// type, same children recursively.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Label != o.Label || t.Type != o.Type {
		return false
	}
	if len(t.Children) != len(o.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String returns a prettified, line-by-line representation suitable for
// use in test diffs. It mirrors the prior toolbox's types.ParseTree.String()
// layout.
func (t *Tree) String() string {
	return t.leveledStr("", "")
}

func (t *Tree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder
	sb.WriteString(firstPrefix)
	if len(t.Children) == 0 {
		sb.WriteString(fmt.Sprintf("(LEAF label=%d type=%d)", t.Label, t.Type))
	} else {
		sb.WriteString(fmt.Sprintf("(label=%d type=%d)", t.Label, t.Type))
	}

	for i := range t.Children {
		sb.WriteRune('\n')
		var fp, cp string
		if i+1 < len(t.Children) {
			fp = contPrefix + " |-- "
			cp = contPrefix + " | "
		} else {
			fp = contPrefix + ` \-- `
			cp = contPrefix + " "
		}
		sb.WriteString(t.Children[i].leveledStr(fp, cp))
	}

	return sb.String()
}
