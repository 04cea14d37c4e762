// Package ast defines the typed first-order-formula AST TSTP parse trees
// are walked into (C11), grounded on original_source's FOT/FOF class
// hierarchy, re-architected from deep inheritance + virtual
// dispatch into a tagged-variant sum type with an exhaustive switch per
// operation, the same pattern used by internal/ptree for parse trees.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
)

// Kind discriminates a Term's or Formula's variant.
type Kind int

const (
	KindVariable Kind = iota
	KindFunctor
)

const (
	KindPredicate Kind = iota + 100
	KindTrue
	KindFalse
	KindEqual
	KindDistinct
	KindAnd
	KindOr
	KindIff
	KindNot
	KindXor
	KindImplies
	KindOeq
	KindForall
	KindExists
)

// Term is a first-order term: a variable or a functor applied to
// arguments (Functor with Args=nil is a constant).
type Term struct {
	Kind Kind
	Name string
	Args []*Term
}

// Variable constructs a term of kind KindVariable named name.
func Variable(name string) *Term { return &Term{Kind: KindVariable, Name: name} }

// Functor constructs a term of kind KindFunctor applying name to args.
func Functor(name string, args ...*Term) *Term {
	return &Term{Kind: KindFunctor, Name: name, Args: args}
}

func (t *Term) String() string {
	if t.Kind == KindVariable || len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "(" + strings.Join(parts, ",") + ")"
}

// HasFreeVar reports whether name occurs as a variable anywhere in t (all
// term occurrences are free; terms have no binders of their own).
func (t *Term) HasFreeVar(name string) bool {
	if t.Kind == KindVariable {
		return t.Name == name
	}
	for _, a := range t.Args {
		if a.HasFreeVar(name) {
			return true
		}
	}
	return false
}

// Replace substitutes every free occurrence of the variable name with
// term, within t.
func (t *Term) Replace(name string, term *Term) *Term {
	if t.Kind == KindVariable {
		if t.Name == name {
			return term
		}
		return t
	}
	newArgs := make([]*Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = a.Replace(name, term)
	}
	return &Term{Kind: KindFunctor, Name: t.Name, Args: newArgs}
}

// Compare provides a total order over terms: variables sort before
// functors; within a kind, name-lex then child-lex (// "Structural ordering").
func (t *Term) Compare(o *Term) int {
	if t.Kind != o.Kind {
		if t.Kind < o.Kind {
			return -1
		}
		return 1
	}
	if t.Name != o.Name {
		return strings.Compare(t.Name, o.Name)
	}
	for i := 0; i < len(t.Args) && i < len(o.Args); i++ {
		if c := t.Args[i].Compare(o.Args[i]); c != 0 {
			return c
		}
	}
	return len(t.Args) - len(o.Args)
}

// Formula is a first-order formula, tagged by Kind. Predicate/Equal/
// Distinct carry Args (Equal/Distinct always length 2); And/Or/Xor/Iff/
// Implies/Oeq carry Left/Right; Not carries Sub; Forall/Exists carry
// Var+Sub.
type Formula struct {
	Kind Kind
	Name string
	Args []*Term

	Left, Right *Formula
	Sub *Formula
	Var string
}

func predOrAtomic(kind Kind, name string, args ...*Term) *Formula {
	return &Formula{Kind: kind, Name: name, Args: args}
}

func Predicate(name string, args ...*Term) *Formula { return predOrAtomic(KindPredicate, name, args...) }
func True() *Formula { return &Formula{Kind: KindTrue} }
func False() *Formula { return &Formula{Kind: KindFalse} }
func Equal(l, r *Term) *Formula { return predOrAtomic(KindEqual, "=", l, r) }
func Distinct(l, r *Term) *Formula { return predOrAtomic(KindDistinct, "!=", l, r) }

func binary(kind Kind, l, r *Formula) *Formula { return &Formula{Kind: kind, Left: l, Right: r} }

func And(l, r *Formula) *Formula { return binary(KindAnd, l, r) }
func Or(l, r *Formula) *Formula { return binary(KindOr, l, r) }
func Iff(l, r *Formula) *Formula { return binary(KindIff, l, r) }
func Xor(l, r *Formula) *Formula { return binary(KindXor, l, r) }
func Implies(l, r *Formula) *Formula { return binary(KindImplies, l, r) }
func Oeq(l, r *Formula) *Formula { return binary(KindOeq, l, r) }
func Not(sub *Formula) *Formula { return &Formula{Kind: KindNot, Sub: sub} }
func Forall(v string, sub *Formula) *Formula { return &Formula{Kind: KindForall, Var: v, Sub: sub} }
func Exists(v string, sub *Formula) *Formula { return &Formula{Kind: KindExists, Var: v, Sub: sub} }

func (f *Formula) String() string {
	switch f.Kind {
	case KindTrue:
		return "$true"
	case KindFalse:
		return "$false"
	case KindPredicate:
		return Predicate(f.Name, f.Args...).argString()
	case KindEqual:
		return f.Args[0].String() + "=" + f.Args[1].String()
	case KindDistinct:
		return f.Args[0].String() + "!=" + f.Args[1].String()
	case KindAnd:
		return "(" + f.Left.String() + " & " + f.Right.String() + ")"
	case KindOr:
		return "(" + f.Left.String() + " | " + f.Right.String() + ")"
	case KindIff:
		return "(" + f.Left.String() + " <=> " + f.Right.String() + ")"
	case KindXor:
		return "(" + f.Left.String() + " <~> " + f.Right.String() + ")"
	case KindImplies:
		return "(" + f.Left.String() + " => " + f.Right.String() + ")"
	case KindOeq:
		return "(" + f.Left.String() + " <= " + f.Right.String() + ")"
	case KindNot:
		return "~" + f.Sub.String()
	case KindForall:
		return "![" + f.Var + "]: " + f.Sub.String()
	case KindExists:
		return "?[" + f.Var + "]: " + f.Sub.String()
	}
	return "<invalid formula>"
}

func (f *Formula) argString() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ",") + ")"
}

// HasFreeVar reports whether name occurs free in f.
func (f *Formula) HasFreeVar(name string) bool {
	switch f.Kind {
	case KindTrue, KindFalse:
		return false
	case KindPredicate, KindEqual, KindDistinct:
		for _, a := range f.Args {
			if a.HasFreeVar(name) {
				return true
			}
		}
		return false
	case KindAnd, KindOr, KindIff, KindXor, KindImplies, KindOeq:
		return f.Left.HasFreeVar(name) || f.Right.HasFreeVar(name)
	case KindNot:
		return f.Sub.HasFreeVar(name)
	case KindForall, KindExists:
		if f.Var == name {
			return false
		}
		return f.Sub.HasFreeVar(name)
	}
	return false
}

// Replace substitutes every free occurrence of the variable name with
// term, within f. Crossing a binder of the same name returns f unchanged
// (the occurrence is bound, not free). Crossing a binder of a different
// name fails with mmerrors.ErrVariableCapture if term mentions that bound
// name, capture-safety contract — the caller must
// α-rename the binder first.
func (f *Formula) Replace(name string, term *Term) (*Formula, error) {
	switch f.Kind {
	case KindTrue, KindFalse:
		return f, nil
	case KindPredicate, KindEqual, KindDistinct:
		newArgs := make([]*Term, len(f.Args))
		for i, a := range f.Args {
			newArgs[i] = a.Replace(name, term)
		}
		return &Formula{Kind: f.Kind, Name: f.Name, Args: newArgs}, nil
	case KindAnd, KindOr, KindIff, KindXor, KindImplies, KindOeq:
		l, err := f.Left.Replace(name, term)
		if err != nil {
			return nil, err
		}
		r, err := f.Right.Replace(name, term)
		if err != nil {
			return nil, err
		}
		return binary(f.Kind, l, r), nil
	case KindNot:
		sub, err := f.Sub.Replace(name, term)
		if err != nil {
			return nil, err
		}
		return Not(sub), nil
	case KindForall, KindExists:
		if f.Var == name {
			return f, nil
		}
		if term.HasFreeVar(f.Var) {
			return nil, fmt.Errorf("%w: substituting %s for %s would capture bound variable %s", mmerrors.ErrVariableCapture, term, name, f.Var)
		}
		sub, err := f.Sub.Replace(name, term)
		if err != nil {
			return nil, err
		}
		if f.Kind == KindForall {
			return Forall(f.Var, sub), nil
		}
		return Exists(f.Var, sub), nil
	}
	return nil, fmt.Errorf("%w: unknown formula kind %d", mmerrors.ErrVariableCapture, f.Kind)
}

// Compare is fof_cmp: a total order over formulas by (kind, name, then
// structural children in order), used as a stable key wherever the
// natural-deduction checker needs set/multiset equality up to syntactic
// identity.
func (f *Formula) Compare(o *Formula) int {
	if f.Kind != o.Kind {
		if f.Kind < o.Kind {
			return -1
		}
		return 1
	}
	switch f.Kind {
	case KindTrue, KindFalse:
		return 0
	case KindPredicate, KindEqual, KindDistinct:
		if f.Name != o.Name {
			return strings.Compare(f.Name, o.Name)
		}
		for i := 0; i < len(f.Args) && i < len(o.Args); i++ {
			if c := f.Args[i].Compare(o.Args[i]); c != 0 {
				return c
			}
		}
		return len(f.Args) - len(o.Args)
	case KindAnd, KindOr, KindIff, KindXor, KindImplies, KindOeq:
		if c := f.Left.Compare(o.Left); c != 0 {
			return c
		}
		return f.Right.Compare(o.Right)
	case KindNot:
		return f.Sub.Compare(o.Sub)
	case KindForall, KindExists:
		if f.Var != o.Var {
			return strings.Compare(f.Var, o.Var)
		}
		return f.Sub.Compare(o.Sub)
	}
	return 0
}

// Equal reports syntactic equality (f.Compare(o) == 0).
func (f *Formula) Equal(o *Formula) bool { return f.Compare(o) == 0 }

// SortFormulas orders fs by Compare, for presenting a deterministic
// multiset (e.g. an antecedent list) regardless of construction order.
func SortFormulas(fs []*Formula) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Compare(fs[j]) < 0 })
}
