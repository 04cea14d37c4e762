// Package lrtable builds and runs an LR(1) table over the grammar
// extracted by the grammar package (C4b), grounded on the prior toolbox's
// internal/ictiobus/parse package (LRParseTable interface, the Algorithm
// 4.44 shift/reduce loop). Parsing works over bare symtab.SymTok sequences
// rather than the prior toolbox's lexer-produced types.Token stream, since a
// Metamath math string is already fully tokenized by symbol.
package lrtable

import (
	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/mmlog"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/dekarrin/mmtoolbox/internal/util"
	"github.com/hashicorp/go-hclog"
)

// Options configures a Parser. The zero value is ready to use.
type Options struct {
	Logger hclog.Logger
}

// Parser runs the generic LR shift/reduce loop (dragon-book Algorithm
// 4.44) over a Table produced by BuildCanonicalLR1.
type Parser struct {
	Table Table
	Grammar *grammar.Grammar
	log hclog.Logger
}

// NewParser returns a Parser for g using its canonical-LR(1) table.
func NewParser(g *grammar.Grammar, opts Options) (*Parser, error) {
	table, err := BuildCanonicalLR1(g)
	if err != nil {
		return nil, err
	}
	return NewParserWithTable(table, g, opts), nil
}

// NewParserWithTable returns a Parser driven by an already-built table
// (e.g. one loaded from internal/cache instead of recomputed), skipping
// the canonical-LR(1) construction step NewParser otherwise performs.
func NewParserWithTable(table Table, g *grammar.Grammar, opts Options) *Parser {
	return &Parser{Table: table, Grammar: g, log: mmlog.OrNull(opts.Logger)}
}

// Parse runs symbols (already tail-stripped of the sentence's leading type
// constant) through the table, returning a typed ptree.Tree whose internal
// node labels come from grammar.Grammar.DerivationFor. On failure, per
// , it returns a tree with Label 0 and no error — callers that
// need fatal behavior (library build time) should check Tree.Failed().
func (p *Parser) Parse(symbols []symtab.SymTok) *ptree.Tree {
	stateStack := util.Stack[string]{Of: []string{p.Table.Initial()}}
	symBuffer := util.Stack[symtab.SymTok]{}
	subTreeRoots := util.Stack[*ptree.Tree]{}

	pos := 0
	next := func() grammar.Symbol {
		if pos >= len(symbols) {
			return grammar.EndMarker
		}
		s := symbols[pos]
		pos++
		return s
	}

	a := next()
	curSym := func() symtab.SymTok {
		if pos == 0 {
			return 0
		}
		return symbols[pos-1]
	}

	for {
		s := stateStack.Peek()
		ACTION := p.Table.Action(s, a)
		p.log.Trace("lr step", "state", s, "symbol", grammar.SymbolString(a), "action", ACTION.Type.String())

		switch ACTION.Type {
		case LRShift:
			symBuffer.Push(curSym())
			stateStack.Push(ACTION.State)
			a = next()

		case LRReduce:
			A := ACTION.Symbol
			beta := ACTION.Production

			der, _ := p.Grammar.DerivationFor(A, beta)
			node := &ptree.Tree{Label: der.Label, Type: A}

			for i := len(beta) - 1; i >= 0; i-- {
				sym := beta[i]
				var child *ptree.Tree
				if p.Grammar.IsTerminal(sym) {
					tok := symBuffer.Pop()
					child = &ptree.Tree{Label: 0, Type: tok}
				} else {
					child = subTreeRoots.Pop()
				}
				node.Children = append([]*ptree.Tree{child}, node.Children...)
			}
			subTreeRoots.Push(node)

			for i := 0; i < len(beta); i++ {
				stateStack.Pop()
			}

			t := stateStack.Peek()
			toPush, err := p.Table.Goto(t, A)
			if err != nil {
				return &ptree.Tree{Label: 0}
			}
			stateStack.Push(toPush)

		case LRAccept:
			return subTreeRoots.Pop()

		case LRError:
			return &ptree.Tree{Label: 0}
		}
	}
}
