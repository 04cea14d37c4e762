package grammar

import (
	"fmt"

	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// FromLibrary induces the CFG described in from store: every
// floating hypothesis becomes a T -> v production, and every
// hypothesis-free, non-theorem axiom whose mandatory distinct-variable set
// is empty and whose thesis does not begin with the turnstile contributes a
// T -> rhs production with each variable replaced by its declared type.
func FromLibrary(store *library.Store) (*Grammar, error) {
	g := New()

	for _, label := range store.VariableLabels() {
		varSym, _ := store.VarSymOf(label)
		typeSym, _ := store.TypeOfVarLabel(label)
		if err := g.AddRule(Derivation{
			Label: label,
			NonTerminal: typeSym,
			RHS: []Symbol{varSym},
			IsVariable: true,
			Var: varSym,
		}); err != nil {
			return nil, err
		}
	}

	for _, la := range store.ListAssertions() {
		a := la.Assertion
		if a.IsTheorem || len(a.EssHyps) != 0 || len(a.MandDV) != 0 {
			continue
		}
		thesis, ok := store.GetSentence(a.Thesis)
		if !ok || len(thesis) == 0 {
			continue
		}
		if thesis.Type() == store.Turnstile() {
			continue
		}

		rhs, err := rhsFromThesis(store, thesis.Tail())
		if err != nil {
			// a rule repeating the same variable is silently rejected
			// , not a fatal error for the rest of extraction.
			continue
		}

		if err := g.AddRule(Derivation{
			Label: la.Label,
			NonTerminal: thesis.Type(),
			RHS: rhs,
		}); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// rhsFromThesis replaces each variable token in tail with its declared
// type, leaving constants as-is, and rejects any thesis that repeats the
// same variable.
func rhsFromThesis(store *library.Store, tail library.Sentence) ([]Symbol, error) {
	rhs := make([]Symbol, len(tail))
	seenVars := map[symtab.SymTok]bool{}

	for i, sym := range tail {
		if store.IsConstant(sym) {
			rhs[i] = sym
			continue
		}
		if seenVars[sym] {
			return nil, mmerrors.InvalidName(fmt.Sprintf("thesis repeats variable %d", sym))
		}
		seenVars[sym] = true

		label, ok := store.VarLabelOf(sym)
		if !ok {
			return nil, mmerrors.UnknownIdentifier(fmt.Sprintf("variable symbol %d has no floating hypothesis", sym))
		}
		typeSym, _ := store.TypeOfVarLabel(label)
		rhs[i] = typeSym
	}

	return rhs, nil
}
