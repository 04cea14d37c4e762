// Package cache implements the persistent parser-table cache named as an
// external collaborator by ("Parser cache store": pair of
// operations `{load -> Option<(digest, LRData)>, store(digest, LRData)}`
// backed by a file), grounded on the prior toolbox's server/dao/sqlite package
// for the sqlite wiring and on github.com/dekarrin/rezi (already used by
// the prior toolbox for binary-encoding a struct directly, per
// server/dao/sqlite/sqlite.go's convertToDB_GameStatePtr) for the on-disk
// encoding of the LR(1) table data.
package cache

import (
	"fmt"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/lrtable"
)

// ActionEntry is one flattened ACTION-table cell.
type ActionEntry struct {
	State string
	Symbol grammar.Symbol
	Type int
	NextState string
	RedSymbol grammar.Symbol
	Production []grammar.Symbol
}

// GotoEntry is one flattened GOTO-table cell.
type GotoEntry struct {
	State string
	Symbol grammar.Symbol
	Next string
}

// TableData is a flat, rezi-encodable snapshot of a built
// lrtable.CanonicalLR1Table, independent of the in-memory DFA/grammar
// structures the table is normally computed from.
type TableData struct {
	Initial string
	Actions []ActionEntry
	Gotos []GotoEntry
}

// BuildTableData flattens t's ACTION/GOTO tables over every state in its
// canonical collection and every symbol of g, for persisting to a
// cache.Store.
func BuildTableData(t *lrtable.CanonicalLR1Table, g *grammar.Grammar) *TableData {
	data := &TableData{Initial: t.Initial()}

	allTerms := append([]grammar.Symbol{}, g.Terminals()...)
	allTerms = append(allTerms, grammar.EndMarker)

	for _, state := range t.States() {
		for _, term := range allTerms {
			act := t.Action(state, term)
			if act.Type == lrtable.LRError {
				continue
			}
			data.Actions = append(data.Actions, ActionEntry{
				State: state,
				Symbol: term,
				Type: int(act.Type),
				NextState: act.State,
				RedSymbol: act.Symbol,
				Production: act.Production,
			})
		}
		for _, nt := range g.NonTerminals() {
			next, err := t.Goto(state, nt)
			if err != nil {
				continue
			}
			data.Gotos = append(data.Gotos, GotoEntry{State: state, Symbol: nt, Next: next})
		}
	}
	return data
}

// PrecomputedTable is an lrtable.Table backed by a flattened TableData, for
// serving a parser directly from a loaded cache entry without rebuilding
// the canonical LR(1) automaton.
type PrecomputedTable struct {
	initial string
	actions map[string]map[grammar.Symbol]lrtable.LRAction
	gotos map[string]map[grammar.Symbol]string
}

// NewPrecomputedTable rebuilds the lookup maps PrecomputedTable serves
// from, out of a TableData loaded from a cache.Store.
func NewPrecomputedTable(data *TableData) *PrecomputedTable {
	pt := &PrecomputedTable{
		initial: data.Initial,
		actions: map[string]map[grammar.Symbol]lrtable.LRAction{},
		gotos: map[string]map[grammar.Symbol]string{},
	}
	for _, e := range data.Actions {
		if pt.actions[e.State] == nil {
			pt.actions[e.State] = map[grammar.Symbol]lrtable.LRAction{}
		}
		pt.actions[e.State][e.Symbol] = lrtable.LRAction{
			Type: lrtable.LRActionType(e.Type),
			State: e.NextState,
			Symbol: e.RedSymbol,
			Production: e.Production,
		}
	}
	for _, e := range data.Gotos {
		if pt.gotos[e.State] == nil {
			pt.gotos[e.State] = map[grammar.Symbol]string{}
		}
		pt.gotos[e.State][e.Symbol] = e.Next
	}
	return pt
}

func (pt *PrecomputedTable) Initial() string { return pt.initial }

func (pt *PrecomputedTable) Action(state string, symbol grammar.Symbol) lrtable.LRAction {
	if m, ok := pt.actions[state]; ok {
		if act, ok := m[symbol]; ok {
			return act
		}
	}
	return lrtable.LRAction{Type: lrtable.LRError}
}

func (pt *PrecomputedTable) Goto(state string, symbol grammar.Symbol) (string, error) {
	if m, ok := pt.gotos[state]; ok {
		if next, ok := m[symbol]; ok {
			return next, nil
		}
	}
	return "", fmt.Errorf("GOTO[%q, %s] is an error entry", state, grammar.SymbolString(symbol))
}

func (pt *PrecomputedTable) String() string {
	states := map[string]bool{}
	for s := range pt.actions {
		states[s] = true
	}
	for s := range pt.gotos {
		states[s] = true
	}
	return fmt.Sprintf("PrecomputedTable{%d states}", len(states))
}
