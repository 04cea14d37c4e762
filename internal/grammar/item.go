package grammar

import (
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/util"
)

// EndMarker is the lookahead symbol representing end-of-input ("$" in the
// dragon-book notation), reusing the reserved SymTok 0 sentinel since a
// real symbol can never be 0.
const EndMarker Symbol = 0

// LR0Item is a dotted production: NonTerminal -> Left . Right.
type LR0Item struct {
	NonTerminal Symbol
	Left []Symbol
	Right []Symbol
}

// String renders the item as "lhs -> left . right", using raw SymTok
// decimal values (this is for item-set hashing, not human display; see
// library.Store.ResolveSymbol for display names).
func (i LR0Item) String() string {
	var sb strings.Builder
	sb.WriteString(SymbolString(i.NonTerminal))
	sb.WriteString(" -> ")
	for _, s := range i.Left {
		sb.WriteString(SymbolString(s))
		sb.WriteByte(' ')
	}
	sb.WriteByte('.')
	for _, s := range i.Right {
		sb.WriteByte(' ')
		sb.WriteString(SymbolString(s))
	}
	return sb.String()
}

// Equal reports whether i and o are the same dotted production.
func (i LR0Item) Equal(o LR0Item) bool {
	if i.NonTerminal != o.NonTerminal {
		return false
	}
	return symSliceEqual(i.Left, o.Left) && symSliceEqual(i.Right, o.Right)
}

func symSliceEqual(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of i.
func (i LR0Item) Copy() LR0Item {
	cp := LR0Item{NonTerminal: i.NonTerminal}
	cp.Left = append([]Symbol{}, i.Left...)
	cp.Right = append([]Symbol{}, i.Right...)
	return cp
}

// LR1Item is an LR0Item annotated with a single lookahead symbol.
type LR1Item struct {
	LR0Item
	Lookahead Symbol
}

// String renders the item as "lhs -> left . right, lookahead".
func (i LR1Item) String() string {
	return i.LR0Item.String() + ", " + SymbolString(i.Lookahead)
}

// Equal reports whether i and o are the same core item with the same
// lookahead.
func (i LR1Item) Equal(o LR1Item) bool {
	return i.LR0Item.Equal(o.LR0Item) && i.Lookahead == o.Lookahead
}

// Copy returns a deep copy of i.
func (i LR1Item) Copy() LR1Item {
	return LR1Item{LR0Item: i.LR0Item.Copy(), Lookahead: i.Lookahead}
}

// CoreSet projects a set of LR1Items down to their LR0 cores, used when
// comparing LALR state-merge candidates (unused by the canonical-LR(1)
// builder but kept for parity with the prior toolbox's grammar package, which
// supported LALR(1) merging).
func CoreSet(s util.SVSet[LR1Item]) util.SVSet[LR0Item] {
	cores := util.NewSVSet[LR0Item]()
	for _, lr1 := range s {
		cores.Set(lr1.LR0Item.String(), lr1.LR0Item)
	}
	return cores
}

// FIRST1 computes FIRST(beta, lookahead) for use by LR1_CLOSURE: the set of
// terminals (plus possibly the given lookahead, if beta can derive
// epsilon) that can begin a string derived from beta followed by
// lookahead. Every grammar production in this domain is non-epsilon, so
// the "can derive epsilon" case reduces to "beta is empty".
func (g *Grammar) FIRST1(beta []Symbol, lookahead Symbol) util.StringSet {
	result := util.NewStringSet()
	if len(beta) == 0 {
		result.Add(SymbolString(lookahead))
		return result
	}

	first := beta[0]
	if g.IsTerminal(first) {
		result.Add(SymbolString(first))
		return result
	}

	for _, rhs := range g.Rule(first) {
		if len(rhs) == 0 {
			result.Add(SymbolString(lookahead))
			continue
		}
		sub := g.FIRST1(rhs, lookahead)
		for _, elem := range sub.Elements() {
			result.Add(elem)
		}
	}
	return result
}

// LR1_CLOSURE computes the closure of a kernel set of LR(1) items
// (dragon-book "CLOSURE" for canonical-LR(1) item sets), grounded on the
// teacher's NewLR1ViablePrefixDFA closure loop.
func (g *Grammar) LR1_CLOSURE(kernel util.SVSet[LR1Item]) util.SVSet[LR1Item] {
	closure := util.NewSVSet[LR1Item]()
	for k, v := range kernel {
		closure.Set(k, v)
	}

	updates := true
	for updates {
		updates = false
		for _, item := range closure {
			if len(item.Right) == 0 {
				continue
			}
			B := item.Right[0]
			if g.IsTerminal(B) {
				continue
			}
			beta := item.Right[1:]

			lookaheads := g.FIRST1(beta, item.Lookahead)
			for _, laStr := range lookaheads.Elements() {
				la, err := ParseSymbol(laStr)
				if err != nil {
					continue
				}
				for _, rhs := range g.Rule(B) {
					newItem := LR1Item{
						LR0Item: LR0Item{NonTerminal: B, Right: append([]Symbol{}, rhs...)},
						Lookahead: la,
					}
					key := newItem.String()
					if !closure.Has(key) {
						closure.Set(key, newItem)
						updates = true
					}
				}
			}
		}
	}

	return closure
}
