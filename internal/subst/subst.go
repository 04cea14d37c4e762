// Package subst implements tree substitution, temporary-variable frames,
// and assertion refreshing (C6), grounded on original_source/provers/
// subst.cpp's substitute/refresh_assertion pair and on the prior toolbox's
// scoped-resource idiom for nested frames.
package subst

import (
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// Map is a variable-label-keyed substitution, the Go realization of the
// spec's SubstMap.
type Map map[symtab.LabTok]*ptree.Tree

// Substitute returns a fresh tree where every node whose Label satisfies
// isVar and has an entry in m is replaced by a deep copy of that entry;
// everything else is recursed into unchanged. A variable node missing from
// m is left unchanged rather than treated as an error.
func Substitute(t *ptree.Tree, isVar func(symtab.LabTok) bool, m Map) *ptree.Tree {
	if t == nil {
		return nil
	}
	if isVar(t.Label) {
		if repl, ok := m[t.Label]; ok {
			return repl.Copy()
		}
		return t.Copy()
	}

	out := &ptree.Tree{Label: t.Label, Type: t.Type}
	if len(t.Children) > 0 {
		out.Children = make([]*ptree.Tree, len(t.Children))
		for i, c := range t.Children {
			out.Children[i] = Substitute(c, isVar, m)
		}
	}
	return out
}
