package lrtable

import (
	"fmt"

	"github.com/dekarrin/mmtoolbox/internal/automaton"
	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/util"
)

// Table is the interface lrtable.Parse drives. It is grounded on the
// prior toolbox's parse.LRParseTable interface.
type Table interface {
	Initial() string
	Action(state string, symbol grammar.Symbol) LRAction
	Goto(state string, symbol grammar.Symbol) (string, error)
	String() string
}

// BuildCanonicalLR1 constructs the canonical LR(1) table for g (dragon-book
// Algorithm 4.56), grounded on the prior toolbox's
// parse.constructCanonicalLR1ParseTable. Returns an error if g is not
// LR(1) (a shift/reduce or reduce/reduce conflict was found).
func BuildCanonicalLR1(g *grammar.Grammar) (*CanonicalLR1Table, error) {
	lr1Automaton := automaton.NewLR1ViablePrefixDFA(g)
	gPrime := g.Augmented()

	table := &CanonicalLR1Table{
		gPrime: gPrime,
		gStart: g.StartSymbol(),
		gTerms: g.Terminals(),
		gNonTerms: g.NonTerminals(),
		lr1: lr1Automaton,
		itemCache: map[string]grammar.LR1Item{},
	}

	for _, stateName := range lr1Automaton.States() {
		itemSet := lr1Automaton.GetValue(stateName)
		for k, item := range itemSet {
			table.itemCache[k] = item
		}
	}

	allTerms := append([]grammar.Symbol{}, gPrime.Terminals()...)
	allTerms = append(allTerms, grammar.EndMarker)

	for _, i := range lr1Automaton.States() {
		for _, a := range allTerms {
			if _, err := table.computeAction(i, a); err != nil {
				return nil, fmt.Errorf("grammar is not LR(1): %w", err)
			}
		}
	}

	return table, nil
}

// CanonicalLR1Table is a Table backed by the canonical collection of LR(1)
// item sets, grounded on the prior toolbox's parse.canonicalLR1Table.
type CanonicalLR1Table struct {
	gPrime *grammar.Grammar
	gStart grammar.Symbol
	lr1 automaton.DFA[util.SVSet[grammar.LR1Item]]
	itemCache map[string]grammar.LR1Item
	gTerms []grammar.Symbol
	gNonTerms []grammar.Symbol
}

func (t *CanonicalLR1Table) String() string {
	return t.lr1.String()
}

func (t *CanonicalLR1Table) Initial() string {
	return t.lr1.Start
}

// States lists every state name in the canonical collection, for callers
// that need to enumerate the table (e.g. internal/cache flattening it for
// persistent storage).
func (t *CanonicalLR1Table) States() []string {
	return t.lr1.States()
}

func (t *CanonicalLR1Table) Goto(state string, symbol grammar.Symbol) (string, error) {
	next := t.lr1.Next(state, symbol)
	if next == "" {
		return "", fmt.Errorf("GOTO[%q, %s] is an error entry", state, grammar.SymbolString(symbol))
	}
	return next, nil
}

// Action implements dragon-book Algorithm 4.56 step 2, grounded directly
// on the prior toolbox's canonicalLR1Table.Action. A conflict in an already-built
// table indicates a bug in table construction, since BuildCanonicalLR1
// rejects any grammar that would produce one; it panics rather than
// silently picking a winner.
func (t *CanonicalLR1Table) Action(state string, a grammar.Symbol) LRAction {
	act, err := t.computeAction(state, a)
	if err != nil {
		panic(err.Error())
	}
	return act
}

func (t *CanonicalLR1Table) computeAction(state string, a grammar.Symbol) (LRAction, error) {
	itemSet := t.lr1.GetValue(state)

	var alreadySet bool
	var act LRAction

	for itemStr := range itemSet {
		item := t.itemCache[itemStr]

		A := item.NonTerminal
		alpha := item.Left
		beta := item.Right
		b := item.Lookahead

		// (a) [A -> alpha . a beta, b] in Ii, GOTO(Ii, a) = Ij => shift j.
		if t.gPrime.IsTerminal(a) && len(beta) > 0 && beta[0] == a {
			if j, err := t.Goto(state, a); err == nil {
				newAct := LRAction{Type: LRShift, State: j}
				if alreadySet && !newAct.Equal(act) {
					return act, makeLRConflictError(act, newAct, a)
				}
				act, alreadySet = newAct, true
			}
		}

		// (b) [A -> alpha ., a] in Ii, A != S' => reduce A -> alpha.
		if len(beta) == 0 && A != t.gPrime.StartSymbol() && a == b {
			newAct := LRAction{Type: LRReduce, Symbol: A, Production: append([]grammar.Symbol{}, alpha...)}
			if alreadySet && !newAct.Equal(act) {
				return act, makeLRConflictError(act, newAct, a)
			}
			act, alreadySet = newAct, true
		}

		// (c) [S' -> S., $] in Ii => accept.
		if a == grammar.EndMarker && b == grammar.EndMarker && A == t.gPrime.StartSymbol() &&
			len(alpha) == 1 && alpha[0] == t.gStart && len(beta) == 0 {
			newAct := LRAction{Type: LRAccept}
			if alreadySet && !newAct.Equal(act) {
				return act, makeLRConflictError(act, newAct, a)
			}
			act, alreadySet = newAct, true
		}
	}

	if !alreadySet {
		act.Type = LRError
	}
	return act, nil
}
