// Package grammar derives and represents the context-free grammar induced
// by a loaded library (C3). It is grounded on the prior toolbox's
// internal/ictiobus/grammar package shape (Grammar.Terminals()/NonTerminals/
// Rule/Augmented/StartSymbol, reconstructed here from usage sites since
// the prior toolbox's own grammar.go was not retrievable) but keyed on interned
// symtab tokens instead of case-convention strings, since Metamath type
// symbols (wff, class, setvar) carry no lettercase signal distinguishing
// them from ordinary constants.
package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// Symbol is a grammar vocabulary element: a type symbol used as a
// nonterminal, or an ordinary constant used as a terminal. Symbols are
// represented as their decimal SymTok value so that item sets (keyed by
// string for canonical-state hashing, following the prior toolbox's approach)
// never collide across the single shared symbol alphabet.
type Symbol = symtab.SymTok

// SymbolString renders sym for use as a map key / item-set element.
func SymbolString(sym Symbol) string {
	return strconv.FormatUint(uint64(sym), 10)
}

// ParseSymbol is the inverse of SymbolString.
func ParseSymbol(s string) (Symbol, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return Symbol(n), nil
}

// Epsilon is the distinguished empty-production marker. No Metamath
// production is ever empty (every axiom production has a non-empty thesis
// tail, every floating-hypothesis production is exactly "T -> v"), but the
// automaton package's closure algorithm (grounded on the prior toolbox's
// generic LR(1) construction) still checks for it defensively.
var Epsilon = []Symbol{0}

// Derivation is one production, tagged with the label that produced it
// (ders_by_label's value side).
type Derivation struct {
	Label symtab.LabTok
	NonTerminal Symbol
	RHS []Symbol

	// IsVariable marks a floating-hypothesis production "T -> v"; Var is
	// the variable symbol v in that case.
	IsVariable bool
	Var Symbol
}

// Grammar is the CFG induced from a library (C3): one production per
// floating hypothesis and per qualifying hypothesis-free axiom.
type Grammar struct {
	start Symbol

	nonTerminalOrder []Symbol
	productions map[Symbol][][]Symbol

	// dersByLabel inverts productions for reconstruction.
	dersByLabel map[symtab.LabTok]Derivation

	// labelOf maps a (lhs, rhs) production pair back to its label, used by
	// lrtable's reduce action to stamp the correct ptree.Tree.Label.
	labelOf map[string]symtab.LabTok

	terminals map[Symbol]bool
}

func productionKey(lhs Symbol, rhs []Symbol) string {
	var sb strings.Builder
	sb.WriteString(SymbolString(lhs))
	sb.WriteString("->")
	for i, s := range rhs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(SymbolString(s))
	}
	return sb.String()
}

// New returns an empty Grammar. Use FromLibrary to build one from a library.
func New() *Grammar {
	return &Grammar{
		productions: map[Symbol][][]Symbol{},
		dersByLabel: map[symtab.LabTok]Derivation{},
		labelOf: map[string]symtab.LabTok{},
		terminals: map[Symbol]bool{},
	}
}

// AddRule adds der as a production of the grammar. Fails if a production
// with the identical (nonterminal, RHS) pair is already present under a
// different label, since that would make the reconstruction map
// ambiguous.
func (g *Grammar) AddRule(der Derivation) error {
	key := productionKey(der.NonTerminal, der.RHS)
	if existing, ok := g.labelOf[key]; ok && existing != der.Label {
		return mmerrors.DuplicateIdentifier(fmt.Sprintf("production %s", key))
	}

	if _, ok := g.productions[der.NonTerminal]; !ok {
		g.nonTerminalOrder = append(g.nonTerminalOrder, der.NonTerminal)
	}
	rhsCopy := make([]Symbol, len(der.RHS))
	copy(rhsCopy, der.RHS)
	der.RHS = rhsCopy

	g.productions[der.NonTerminal] = append(g.productions[der.NonTerminal], rhsCopy)
	g.dersByLabel[der.Label] = der
	g.labelOf[key] = der.Label
	return nil
}

// SetStartSymbol records the grammar's start type (the type a sentence's
// tail is parsed as, typically wff; the turnstile never heads a
// production).
func (g *Grammar) SetStartSymbol(s Symbol) { g.start = s }

// StartSymbol returns the (un-augmented) start type.
func (g *Grammar) StartSymbol() Symbol { return g.start }

// NonTerminals returns every type symbol with at least one production, in
// the order they were first added.
func (g *Grammar) NonTerminals() []Symbol {
	out := make([]Symbol, len(g.nonTerminalOrder))
	copy(out, g.nonTerminalOrder)
	return out
}

// IsTerminal reports whether sym never appears as the LHS of a production.
// This replaces the prior toolbox's lettercase convention
// (strings.ToUpper(X)==X) with an explicit membership test, since
// Metamath symbols carry no such signal.
func (g *Grammar) IsTerminal(sym Symbol) bool {
	_, ok := g.productions[sym]
	return !ok
}

// Terminals returns every symbol referenced in some production's RHS that
// is not itself a nonterminal, computed on demand and cached.
func (g *Grammar) Terminals() []Symbol {
	if g.terminals == nil {
		g.terminals = map[Symbol]bool{}
	}
	if len(g.terminals) == 0 {
		seen := map[Symbol]bool{}
		for _, rhss := range g.productions {
			for _, rhs := range rhss {
				for _, sym := range rhs {
					if g.IsTerminal(sym) {
						seen[sym] = true
					}
				}
			}
		}
		g.terminals = seen
	}
	out := make([]Symbol, 0, len(g.terminals))
	for s := range g.terminals {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Rule returns the productions for nonterminal nt.
func (g *Grammar) Rule(nt Symbol) [][]Symbol {
	return g.productions[nt]
}

// DerivationFor returns the Derivation that produced (lhs, rhs), and
// whether one exists. Used by lrtable's reduce action and by
// reconstruct_sentence.
func (g *Grammar) DerivationFor(lhs Symbol, rhs []Symbol) (Derivation, bool) {
	key := productionKey(lhs, rhs)
	lab, ok := g.labelOf[key]
	if !ok {
		return Derivation{}, false
	}
	return g.dersByLabel[lab], true
}

// DerivationByLabel looks up ders_by_label[label] directly.
func (g *Grammar) DerivationByLabel(label symtab.LabTok) (Derivation, bool) {
	d, ok := g.dersByLabel[label]
	return d, ok
}

// augmentedStart is the synthetic start nonterminal S' introduced by
// Augmented, distinguished from any real symbol by using SymTok 0 (the
// reserved/absent sentinel, which can never collide with a real symbol).
const augmentedStart Symbol = 0

// Augmented returns a copy of g with a synthetic production S' -> S added,
// where S is g's start symbol (dragon-book "augmented grammar" used by
// canonical-LR(1) table construction).
func (g *Grammar) Augmented() *Grammar {
	cp := g.Copy()
	cp.productions[augmentedStart] = [][]Symbol{{g.start}}
	cp.nonTerminalOrder = append([]Symbol{augmentedStart}, cp.nonTerminalOrder...)
	cp.start = augmentedStart
	cp.terminals = map[Symbol]bool{} // invalidate cache
	return cp
}

// Copy returns a deep copy of g.
func (g *Grammar) Copy() *Grammar {
	cp := New()
	cp.start = g.start
	cp.nonTerminalOrder = append([]Symbol{}, g.nonTerminalOrder...)
	for nt, rhss := range g.productions {
		cpRhss := make([][]Symbol, len(rhss))
		for i, rhs := range rhss {
			cpRhss[i] = append([]Symbol{}, rhs...)
		}
		cp.productions[nt] = cpRhss
	}
	for lab, der := range g.dersByLabel {
		cp.dersByLabel[lab] = der
	}
	for k, v := range g.labelOf {
		cp.labelOf[k] = v
	}
	return cp
}

// Validate checks that the start symbol has at least one production (the
// augmented start symbol is exempt). RHS symbols are not checked.
func (g *Grammar) Validate() error {
	if _, ok := g.productions[g.start]; !ok && g.start != augmentedStart {
		return mmerrors.InvalidName(fmt.Sprintf("grammar has no productions for start symbol %s", SymbolString(g.start)))
	}
	return nil
}
