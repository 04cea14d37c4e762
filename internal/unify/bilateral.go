// Package unify implements the bilateral and unilateral parsing-tree
// unifiers (C7), grounded on original_source/mm/unification.cpp's
// UnilateralUnificator and bilateral-unification routines.
package unify

import (
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/subst"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// Bilateral unifies two trees that may both contain variables, maintaining
// a union-find equivalence over variable labels with a substitution
// witness per equivalence class. A fresh Bilateral must be
// used per invocation; unification state never leaks across instances.
type Bilateral struct {
	store *library.Store
	parent map[symtab.LabTok]symtab.LabTok
	witness map[symtab.LabTok]*ptree.Tree
}

// NewBilateral returns a Bilateral unifier backed by store's variable
// declarations.
func NewBilateral(store *library.Store) *Bilateral {
	return &Bilateral{
		store: store,
		parent: map[symtab.LabTok]symtab.LabTok{},
		witness: map[symtab.LabTok]*ptree.Tree{},
	}
}

func (b *Bilateral) find(v symtab.LabTok) symtab.LabTok {
	p, ok := b.parent[v]
	if !ok {
		b.parent[v] = v
		return v
	}
	if p == v {
		return v
	}
	root := b.find(p)
	b.parent[v] = root
	return root
}

func (b *Bilateral) varLabel(t *ptree.Tree) (symtab.LabTok, bool) {
	if t == nil || !b.store.IsVariableLabel(t.Label) {
		return 0, false
	}
	return t.Label, true
}

// Unify attempts to unify t1 and t2, recording any new variable bindings.
// Returns false on a structural mismatch; the Bilateral is left in a
// partially-updated but still internally-consistent state, since callers
// that fail are expected to discard the instance rather than reuse it.
func (b *Bilateral) Unify(t1, t2 *ptree.Tree) bool {
	v1, isVar1 := b.varLabel(t1)
	v2, isVar2 := b.varLabel(t2)

	switch {
	case isVar1 && isVar2:
		return b.unifyVars(v1, v2)
	case isVar1:
		return b.bindVar(v1, t2)
	case isVar2:
		return b.bindVar(v2, t1)
	default:
		if t1.Label != t2.Label || t1.Type != t2.Type || len(t1.Children) != len(t2.Children) {
			return false
		}
		for i := range t1.Children {
			if !b.Unify(t1.Children[i], t2.Children[i]) {
				return false
			}
		}
		return true
	}
}

func (b *Bilateral) unifyVars(v1, v2 symtab.LabTok) bool {
	r1, r2 := b.find(v1), b.find(v2)
	if r1 == r2 {
		return true
	}
	w1, hasW1 := b.witness[r1]
	w2, hasW2 := b.witness[r2]

	b.parent[r1] = r2
	switch {
	case hasW1 && hasW2:
		delete(b.witness, r1)
		return b.Unify(w1, w2)
	case hasW1:
		b.witness[r2] = w1
		delete(b.witness, r1)
	}
	return true
}

func (b *Bilateral) bindVar(v symtab.LabTok, t *ptree.Tree) bool {
	r := b.find(v)
	if w, ok := b.witness[r]; ok {
		return b.Unify(w, t)
	}
	b.witness[r] = t
	return true
}

// Substitution returns the accumulated variable bindings as a subst.Map:
// every variable whose equivalence class has acquired a concrete witness
// maps to that witness (aliased variables share the same witness).
func (b *Bilateral) Substitution() subst.Map {
	m := subst.Map{}
	for v := range b.parent {
		r := b.find(v)
		if w, ok := b.witness[r]; ok {
			m[v] = w
		}
	}
	return m
}
