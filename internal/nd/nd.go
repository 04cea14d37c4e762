// Package nd implements the natural-deduction sequent checker (C12),
// grounded on original_source/nd/proof.cpp's rule hierarchy, re-architected
// into one Rule sum type (tagged by Kind) whose Check method
// performs the rule's structural-equality validation under the ast
// package's total order, the same tagged-variant pattern used throughout
// this module for what the original expressed via virtual dispatch.
package nd

import (
	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
)

// Sequent is (antecedents, succedents); an ND-sequent restricts succedents
// to length 1.
type Sequent struct {
	Antecedents []*ast.Formula
	Succedents []*ast.Formula
}

// IsND reports whether s has exactly one succedent.
func (s Sequent) IsND() bool { return len(s.Succedents) == 1 }

func multisetEqual(a, b []*ast.Formula) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]*ast.Formula(nil), a...)
	bs := append([]*ast.Formula(nil), b...)
	ast.SortFormulas(as)
	ast.SortFormulas(bs)
	for i := range as {
		if !as[i].Equal(bs[i]) {
			return false
		}
	}
	return true
}

func multisetUnion(a, b []*ast.Formula) []*ast.Formula {
	out := make([]*ast.Formula, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func singleSucc(f *ast.Formula) Sequent {
	return Sequent{Succedents: []*ast.Formula{f}}
}

// Kind discriminates a Rule's variant.
type Kind int

const (
	KindLogicalAxiom Kind = iota
	KindWeakening
	KindContraction
	KindBottomElim
	KindExcludedMiddle
	KindImpIntro
	KindImpElim
	KindAndIntro
	KindAndElim1
	KindAndElim2
	KindNegElim
	KindForallIntro
	KindForallElim
	KindExistsIntro
	KindExistsElim
)

// Rule is one ND inference, tagged by Kind, storing its claimed thesis and
// whatever premise Rules/side data the variant needs. Fields not used by
// a given Kind are left zero.
type Rule struct {
	Kind Kind
	Thesis Sequent

	Form *ast.Formula // LogicalAxiom, Weakening, BottomElim
	Sub *Rule // Weakening, Contraction, BottomElim, ImpIntro, AndElim1/2

	I, J int // Contraction antecedent indices
	Left, Right *Rule

	AntIdx int // ImpIntro: index of the antecedent split off as the hypothesis

	Var, Eigenvar string // ForallIntro, ExistsElim
	Term *ast.Term // ForallElim, ExistsIntro: substituted term
	SubstForm *ast.Formula // ExistsIntro: the witnessed formula before substitution

	Idx int // ExistsElim: index of the existential antecedent being eliminated
}

// Check recursively validates premises, then performs the rule's
// structural equality checks under ast.Formula.Equal (fof_cmp).
func (r *Rule) Check() bool {
	if !r.Thesis.IsND() {
		return false
	}
	switch r.Kind {
	case KindLogicalAxiom:
		return r.Thesis.IsND() &&
			multisetEqual(r.Thesis.Antecedents, []*ast.Formula{r.Form}) &&
			r.Thesis.Succedents[0].Equal(r.Form)

	case KindWeakening:
		if !r.Sub.Check() {
			return false
		}
		return r.Thesis.IsND() &&
			r.Thesis.Succedents[0].Equal(r.Sub.Thesis.Succedents[0]) &&
			multisetEqual(r.Thesis.Antecedents, multisetUnion(r.Sub.Thesis.Antecedents, []*ast.Formula{r.Form}))

	case KindContraction:
		if !r.Sub.Check() {
			return false
		}
		if r.I < 0 || r.J < 0 || r.I == r.J || r.I >= len(r.Sub.Thesis.Antecedents) || r.J >= len(r.Sub.Thesis.Antecedents) {
			return false
		}
		if !r.Sub.Thesis.Antecedents[r.I].Equal(r.Sub.Thesis.Antecedents[r.J]) {
			return false
		}
		var reduced []*ast.Formula
		for i, f := range r.Sub.Thesis.Antecedents {
			if i == r.J {
				continue
			}
			reduced = append(reduced, f)
		}
		return r.Thesis.IsND() &&
			r.Thesis.Succedents[0].Equal(r.Sub.Thesis.Succedents[0]) &&
			multisetEqual(r.Thesis.Antecedents, reduced)

	case KindBottomElim:
		if !r.Sub.Check() {
			return false
		}
		if len(r.Sub.Thesis.Succedents) != 1 || r.Sub.Thesis.Succedents[0].Kind != ast.KindFalse {
			return false
		}
		return r.Thesis.IsND() && multisetEqual(r.Thesis.Antecedents, r.Sub.Thesis.Antecedents)

	case KindExcludedMiddle:
		if !r.Left.Check() || !r.Right.Check() {
			return false
		}
		if !r.Left.Thesis.Succedents[0].Equal(r.Thesis.Succedents[0]) || !r.Right.Thesis.Succedents[0].Equal(r.Thesis.Succedents[0]) {
			return false
		}
		lessLeft := withoutOne(r.Left.Thesis.Antecedents, r.Form)
		lessRight := withoutOne(r.Right.Thesis.Antecedents, ast.Not(r.Form))
		return r.Thesis.IsND() && multisetEqual(r.Thesis.Antecedents, multisetUnion(lessLeft, lessRight))

	case KindImpIntro:
		if !r.Sub.Check() {
			return false
		}
		if r.Thesis.Succedents[0].Kind != ast.KindImplies {
			return false
		}
		A, B := r.Thesis.Succedents[0].Left, r.Thesis.Succedents[0].Right
		if !r.Sub.Thesis.Succedents[0].Equal(B) {
			return false
		}
		if len(r.Sub.Thesis.Antecedents) == 0 || !r.Sub.Thesis.Antecedents[0].Equal(A) {
			return false
		}
		return multisetEqual(r.Sub.Thesis.Antecedents[1:], r.Thesis.Antecedents)

	case KindImpElim:
		if !r.Left.Check() || !r.Right.Check() {
			return false
		}
		if r.Left.Thesis.Succedents[0].Kind != ast.KindImplies {
			return false
		}
		if !r.Left.Thesis.Succedents[0].Left.Equal(r.Right.Thesis.Succedents[0]) {
			return false
		}
		if !r.Thesis.Succedents[0].Equal(r.Left.Thesis.Succedents[0].Right) {
			return false
		}
		return multisetEqual(r.Thesis.Antecedents, multisetUnion(r.Left.Thesis.Antecedents, r.Right.Thesis.Antecedents))

	case KindAndIntro:
		if !r.Left.Check() || !r.Right.Check() {
			return false
		}
		if r.Thesis.Succedents[0].Kind != ast.KindAnd {
			return false
		}
		if !r.Left.Thesis.Succedents[0].Equal(r.Thesis.Succedents[0].Left) || !r.Right.Thesis.Succedents[0].Equal(r.Thesis.Succedents[0].Right) {
			return false
		}
		return multisetEqual(r.Thesis.Antecedents, multisetUnion(r.Left.Thesis.Antecedents, r.Right.Thesis.Antecedents))

	case KindAndElim1, KindAndElim2:
		if !r.Sub.Check() {
			return false
		}
		sub := r.Sub.Thesis.Succedents[0]
		if sub.Kind != ast.KindAnd {
			return false
		}
		want := sub.Left
		if r.Kind == KindAndElim2 {
			want = sub.Right
		}
		return r.Thesis.Succedents[0].Equal(want) && multisetEqual(r.Thesis.Antecedents, r.Sub.Thesis.Antecedents)

	case KindNegElim:
		if !r.Left.Check() || !r.Right.Check() {
			return false
		}
		if r.Left.Thesis.Succedents[0].Kind != ast.KindNot {
			return false
		}
		if !r.Left.Thesis.Succedents[0].Sub.Equal(r.Right.Thesis.Succedents[0]) {
			return false
		}
		return r.Thesis.Succedents[0].Kind == ast.KindFalse &&
			multisetEqual(r.Thesis.Antecedents, multisetUnion(r.Left.Thesis.Antecedents, r.Right.Thesis.Antecedents))

	case KindForallIntro:
		if !r.Sub.Check() {
			return false
		}
		if r.Thesis.Succedents[0].Kind != ast.KindForall || r.Thesis.Succedents[0].Var != r.Var {
			return false
		}
		// Eigenvariable freshness (Open Question, decided): the
		// eigenvariable must not occur free in the thesis sequent.
		for _, f := range r.Thesis.Antecedents {
			if f.HasFreeVar(r.Eigenvar) {
				return false
			}
		}
		if r.Thesis.Succedents[0].HasFreeVar(r.Eigenvar) {
			return false
		}
		expected, err := r.Thesis.Succedents[0].Sub.Replace(r.Var, ast.Variable(r.Eigenvar))
		if err != nil {
			return false
		}
		return r.Sub.Thesis.Succedents[0].Equal(expected) && multisetEqual(r.Sub.Thesis.Antecedents, r.Thesis.Antecedents)

	case KindForallElim:
		if !r.Sub.Check() {
			return false
		}
		sub := r.Sub.Thesis.Succedents[0]
		if sub.Kind != ast.KindForall {
			return false
		}
		expected, err := sub.Sub.Replace(sub.Var, r.Term)
		if err != nil {
			return false
		}
		return r.Thesis.Succedents[0].Equal(expected) && multisetEqual(r.Thesis.Antecedents, r.Sub.Thesis.Antecedents)

	case KindExistsIntro:
		if !r.Sub.Check() {
			return false
		}
		if r.Thesis.Succedents[0].Kind != ast.KindExists || r.Thesis.Succedents[0].Var != r.Var {
			return false
		}
		witnessed, err := r.Thesis.Succedents[0].Sub.Replace(r.Var, r.Term)
		if err != nil {
			return false
		}
		return r.Sub.Thesis.Succedents[0].Equal(witnessed) && multisetEqual(r.Sub.Thesis.Antecedents, r.Thesis.Antecedents)

	case KindExistsElim:
		if !r.Left.Check() || !r.Right.Check() {
			return false
		}
		if r.Idx < 0 || r.Idx >= len(r.Left.Thesis.Antecedents) {
			return false
		}
		exForm := r.Left.Thesis.Antecedents[r.Idx]
		if exForm.Kind != ast.KindExists {
			return false
		}
		for _, f := range r.Thesis.Antecedents {
			if f.HasFreeVar(r.Eigenvar) {
				return false
			}
		}
		if r.Thesis.Succedents[0].HasFreeVar(r.Eigenvar) {
			return false
		}
		expectedAnt, err := exForm.Sub.Replace(exForm.Var, ast.Variable(r.Eigenvar))
		if err != nil {
			return false
		}
		if len(r.Right.Thesis.Antecedents) == 0 || !r.Right.Thesis.Antecedents[0].Equal(expectedAnt) {
			return false
		}
		if !r.Right.Thesis.Succedents[0].Equal(r.Thesis.Succedents[0]) {
			return false
		}
		leftRest := withoutOne(r.Left.Thesis.Antecedents, exForm)
		return multisetEqual(r.Thesis.Antecedents, multisetUnion(leftRest, r.Right.Thesis.Antecedents[1:]))
	}
	return false
}

func withoutOne(fs []*ast.Formula, target *ast.Formula) []*ast.Formula {
	out := make([]*ast.Formula, 0, len(fs))
	removed := false
	for _, f := range fs {
		if !removed && f.Equal(target) {
			removed = true
			continue
		}
		out = append(out, f)
	}
	return out
}

// CheckOrError reports a failed check as an NDCheckFailure carrying the
// node kind that rejected
// it, for callers wanting a diagnostic instead of a bare bool (:
// "check is total and boolean", so this is an optional companion, not a
// replacement, for callers that want to report what failed).
func (r *Rule) CheckOrError() error {
	if r.Check() {
		return nil
	}
	return mmerrors.NewNDCheckFailure(r.Kind.String(), "structural check failed")
}

func (k Kind) String() string {
	switch k {
	case KindLogicalAxiom:
		return "LogicalAxiom"
	case KindWeakening:
		return "Weakening"
	case KindContraction:
		return "Contraction"
	case KindBottomElim:
		return "BottomElim"
	case KindExcludedMiddle:
		return "ExcludedMiddle"
	case KindImpIntro:
		return "ImpIntro"
	case KindImpElim:
		return "ImpElim"
	case KindAndIntro:
		return "AndIntro"
	case KindAndElim1:
		return "AndElim1"
	case KindAndElim2:
		return "AndElim2"
	case KindNegElim:
		return "NegElim"
	case KindForallIntro:
		return "ForallIntro"
	case KindForallElim:
		return "ForallElim"
	case KindExistsIntro:
		return "ExistsIntro"
	case KindExistsElim:
		return "ExistsElim"
	}
	return "UnknownRuleKind"
}
