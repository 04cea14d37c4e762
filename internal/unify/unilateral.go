package unify

import (
	"fmt"

	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/subst"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// Unilateral unifies a template tree (may contain variables) against a
// concrete tree (must not), accumulating constraints across repeated
// AddParsingTrees calls (UnilateralUnificator). A later
// binding for a template variable already bound must be structurally
// equal to the earlier one, or the instance is marked unusable.
type Unilateral struct {
	store *library.Store
	bindings map[symtab.LabTok]*ptree.Tree
	failed bool
}

// NewUnilateral returns an empty Unilateral unifier backed by store's
// variable declarations.
func NewUnilateral(store *library.Store) *Unilateral {
	return &Unilateral{store: store, bindings: map[symtab.LabTok]*ptree.Tree{}}
}

// Clone returns an independent copy sharing no mutable state, used by the
// matcher's per-permutation search so one permutation's constraints never
// contaminate another's.
func (u *Unilateral) Clone() *Unilateral {
	cp := &Unilateral{store: u.store, bindings: make(map[symtab.LabTok]*ptree.Tree, len(u.bindings)), failed: u.failed}
	for k, v := range u.bindings {
		cp.bindings[k] = v
	}
	return cp
}

// AddParsingTrees adds the constraint template ≡ concrete. template may
// contain variables (by label); concrete must not. Returns an error
// wrapping mmerrors.ErrUnificationFailure on a structural mismatch or an
// inconsistent repeated binding; the instance remains usable for
// IsUnifiable/Unify afterward, both of which report the accumulated
// failure.
func (u *Unilateral) AddParsingTrees(template, concrete *ptree.Tree) error {
	if u.store.IsVariableLabel(template.Label) {
		if existing, ok := u.bindings[template.Label]; ok {
			if !existing.Equal(concrete) {
				u.failed = true
				return fmt.Errorf("%w: conflicting binding for variable label %d", mmerrors.ErrUnificationFailure, template.Label)
			}
			return nil
		}
		u.bindings[template.Label] = concrete.Copy()
		return nil
	}

	if template.Label != concrete.Label || template.Type != concrete.Type || len(template.Children) != len(concrete.Children) {
		u.failed = true
		return fmt.Errorf("%w: structural mismatch at label %d", mmerrors.ErrUnificationFailure, template.Label)
	}
	for i := range template.Children {
		if err := u.AddParsingTrees(template.Children[i], concrete.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// IsUnifiable reports whether every constraint added so far is consistent.
func (u *Unilateral) IsUnifiable() bool {
	return !u.failed
}

// Unify returns (false, nil) if any accumulated constraint was
// inconsistent, else (true, bindings) as a subst.Map.
func (u *Unilateral) Unify() (bool, subst.Map) {
	if u.failed {
		return false, nil
	}
	out := make(subst.Map, len(u.bindings))
	for k, v := range u.bindings {
		out[k] = v
	}
	return true, out
}
