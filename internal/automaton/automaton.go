// Package automaton builds the canonical collection of LR(1) item sets
// (C4a) used by lrtable to construct action/goto tables. It is grounded on
// the prior toolbox's internal/ictiobus/automaton package (DFA[E] generic state
// machine, NewLR1ViablePrefixDFA's closure/goto fixed-point loop), trimmed
// to the single canonical-LR(1) construction the design calls for — the
// teacher's LALR(1) state-merging path and its NFA/subset-construction
// machinery (needed only for SLR/LL(1), which this toolbox does not build)
// are not carried over.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/util"
)

// FATransition is one outgoing edge of a DFA state.
type FATransition struct {
	Input grammar.Symbol
	Next string
}

// DFA is a deterministic finite automaton over grammar symbols whose
// states carry an arbitrary payload E (here, the LR(1) item set that state
// represents).
type DFA[E any] struct {
	Start string
	states map[string]bool
	values map[string]E
	transitions map[string]map[grammar.Symbol]FATransition
}

// AddState adds state to the automaton if not already present.
func (d *DFA[E]) AddState(state string) {
	if d.states == nil {
		d.states = map[string]bool{}
	}
	d.states[state] = true
}

// SetValue attaches v as the payload of state.
func (d *DFA[E]) SetValue(state string, v E) {
	if d.values == nil {
		d.values = map[string]E{}
	}
	d.values[state] = v
}

// GetValue returns the payload attached to state.
func (d *DFA[E]) GetValue(state string) E {
	return d.values[state]
}

// AddTransition adds an edge from `from` to `to` on input symbol sym.
func (d *DFA[E]) AddTransition(from string, sym grammar.Symbol, to string) {
	if d.transitions == nil {
		d.transitions = map[string]map[grammar.Symbol]FATransition{}
	}
	if d.transitions[from] == nil {
		d.transitions[from] = map[grammar.Symbol]FATransition{}
	}
	d.transitions[from][sym] = FATransition{Input: sym, Next: to}
}

// Next returns the state reached from `from` on sym, or "" if there is no
// such transition.
func (d *DFA[E]) Next(from string, sym grammar.Symbol) string {
	byInput, ok := d.transitions[from]
	if !ok {
		return ""
	}
	return byInput[sym].Next
}

// States returns every state name in the automaton.
func (d *DFA[E]) States() []string {
	out := make([]string, 0, len(d.states))
	for s := range d.states {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// String renders the automaton's states and transitions for diagnostics.
func (d *DFA[E]) String() string {
	var sb strings.Builder
	states := d.States()
	for _, s := range states {
		marker := " "
		if s == d.Start {
			marker = "->"
		}
		fmt.Fprintf(&sb, "%s %s\n", marker, s)
		trans := d.transitions[s]
		syms := make([]grammar.Symbol, 0, len(trans))
		for sym := range trans {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			fmt.Fprintf(&sb, " on %s -> %s\n", grammar.SymbolString(sym), trans[sym].Next)
		}
	}
	return sb.String()
}

// NewLR1ViablePrefixDFA constructs the canonical collection of sets of
// LR(1) items for g (dragon-book Algorithm 4.56's first step), grounded
// directly on the prior toolbox's NewLR1ViablePrefixDFA fixed-point loop.
func NewLR1ViablePrefixDFA(g *grammar.Grammar) DFA[util.SVSet[grammar.LR1Item]] {
	oldStart := g.StartSymbol()
	gPrime := g.Augmented()

	initialItem := grammar.LR1Item{
		LR0Item: grammar.LR0Item{NonTerminal: gPrime.StartSymbol(), Right: []grammar.Symbol{oldStart}},
		Lookahead: grammar.EndMarker,
	}

	startSet := gPrime.LR1_CLOSURE(util.SVSet[grammar.LR1Item]{initialItem.String(): initialItem})

	stateSets := util.NewSVSet[util.SVSet[grammar.LR1Item]]()
	stateSets.Set(startSet.StringOrdered(), startSet)
	transitions := map[string]map[grammar.Symbol]FATransition{}

	updates := true
	for updates {
		updates = false

		for _, I := range stateSets {
			for _, item := range I {
				if len(item.Right) == 0 {
					continue
				}
				s := item.Right[0]

				Is := util.NewSVSet[grammar.LR1Item]()
				for _, checkItem := range I {
					if len(checkItem.Right) >= 1 && checkItem.Right[0] == s {
						newItem := checkItem.Copy()
						newItem.Left = append(newItem.Left, s)
						newItem.Right = append([]grammar.Symbol{}, checkItem.Right[1:]...)
						Is.Set(newItem.String(), newItem)
					}
				}

				newSet := gPrime.LR1_CLOSURE(Is)

				if !stateSets.Has(newSet.StringOrdered()) {
					updates = true
					stateSets.Set(newSet.StringOrdered(), newSet)
				}

				stateTransitions, ok := transitions[I.StringOrdered()]
				if !ok {
					stateTransitions = map[grammar.Symbol]FATransition{}
				}
				trans, ok := stateTransitions[s]
				if !ok || trans.Next != newSet.StringOrdered() {
					updates = true
					trans = FATransition{Input: s, Next: newSet.StringOrdered()}
					stateTransitions[s] = trans
					transitions[I.StringOrdered()] = stateTransitions
				}
			}
		}
	}

	dfa := DFA[util.SVSet[grammar.LR1Item]]{}
	for sName, state := range stateSets {
		dfa.AddState(sName)
		dfa.SetValue(sName, state)
	}
	for onState, stateTrans := range transitions {
		for _, t := range stateTrans {
			dfa.AddTransition(onState, t.Input, t.Next)
		}
	}
	dfa.Start = startSet.StringOrdered()

	return dfa
}
