package tstp

import (
	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// Nonterminal names, interned once into toks alongside the punctuation
// terminals, giving the TSTP grammar the same symtab.SymTok vocabulary
// the library's induced grammar uses (: "an LR grammar over
// the same machinery as C4").
const (
	ntLetter = "LETTER"
	ntID = "ID"
	ntTerm = "TERM"
	ntArglist = "ARGLIST"
	ntAtom = "ATOM"
	ntLiteral = "LITERAL"
	ntClause = "CLAUSE"
	ntVarlist = "VARLIST"
	ntUnitFOF = "UNIT_FOF"
	ntFOF = "FOF"
	ntFOFAnd = "FOF_AND"
	ntFOFOr = "FOF_OR"
	ntExprArglist = "EXPR_ARGLIST"
	ntExpr = "EXPR"
	ntLine = "LINE"
)

const punct = ",[]:!?&|~=<>-;."

// tokens is the process-wide interning table for the TSTP grammar's fixed
// vocabulary: one terminal per identifier character class member plus
// punctuation character, and one symbol per nonterminal name. Unlike
// library.Store's open-ended symbol space, this alphabet is bounded and
// known in full ahead of time, so it is built once at package init. Each
// character symbol is interned under a distinguishing prefix so a
// punctuation character can never collide with a same-named nonterminal.
var tokens = symtab.NewSymbols()

var charTerm = map[rune]symtab.SymTok{}
var ntSym = map[string]symtab.SymTok{}

func internChar(r rune) symtab.SymTok {
	if sym, ok := charTerm[r]; ok {
		return sym
	}
	sym := tokens.GetOrCreate("char:" + string(r))
	charTerm[r] = sym
	return sym
}

func internNT(name string) symtab.SymTok {
	if sym, ok := ntSym[name]; ok {
		return sym
	}
	sym := tokens.GetOrCreate("nt:" + name)
	ntSym[name] = sym
	return sym
}

func init() {
	const idChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_$'."
	for _, r := range idChars {
		internChar(r)
	}
	for _, r := range punct {
		internChar(r)
	}
	for _, nt := range []string{ntLetter, ntID, ntTerm, ntArglist, ntAtom, ntLiteral, ntClause, ntVarlist, ntUnitFOF, ntFOF, ntFOFAnd, ntFOFOr, ntExprArglist, ntExpr, ntLine} {
		internNT(nt)
	}
}

var ruleCounter uint32

func nextLabel() symtab.LabTok {
	ruleCounter++
	return symtab.LabTok(ruleCounter)
}

func rule(g *grammar.Grammar, lhs string, rhs ...interface{}) {
	sym := make([]grammar.Symbol, len(rhs))
	for i, r := range rhs {
		switch v := r.(type) {
		case rune:
			sym[i] = internChar(v)
		case string:
			sym[i] = internNT(v)
		}
	}
	_ = g.AddRule(grammar.Derivation{Label: nextLabel(), NonTerminal: internNT(lhs), RHS: sym})
}

// BuildGrammar constructs the LR(1) grammar for the CNF-clause and FOF-
// formula fragments of TSTP, rule set. Reconstruction
// out of the resulting parse tree is handled by toAST in parse.go; this
// function only shapes the vocabulary the parser accepts.
func BuildGrammar() *grammar.Grammar {
	g := grammar.New()
	g.SetStartSymbol(internNT(ntLine))

	for _, r := range "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_$'." {
		rule(g, ntLetter, r)
	}
	rule(g, ntID, ntLetter)
	rule(g, ntID, ntID, ntLetter)

	rule(g, ntTerm, ntID)
	rule(g, ntTerm, ntID, '(', ntArglist, ')')
	rule(g, ntArglist, ntTerm)
	rule(g, ntArglist, ntArglist, ',', ntTerm)

	rule(g, ntAtom, ntTerm)
	rule(g, ntAtom, ntTerm, '=', ntTerm)
	rule(g, ntAtom, ntTerm, '!', '=', ntTerm)

	rule(g, ntLiteral, ntAtom)
	rule(g, ntLiteral, '~', ntAtom)
	rule(g, ntClause, ntLiteral)
	rule(g, ntClause, ntClause, '|', ntLiteral)

	rule(g, ntVarlist, ntID)
	rule(g, ntVarlist, ntVarlist, ',', ntID)

	rule(g, ntUnitFOF, ntAtom)
	rule(g, ntUnitFOF, '(', ntFOF, ')')
	rule(g, ntUnitFOF, '~', ntUnitFOF)
	rule(g, ntUnitFOF, '!', '[', ntVarlist, ']', ':', ntUnitFOF)
	rule(g, ntUnitFOF, '?', '[', ntVarlist, ']', ':', ntUnitFOF)

	// FOF_AND/FOF_OR require at least two operands — a bare UNIT_FOF
	// reduces to FOF directly (below) so there is exactly one reduction
	// path for it, avoiding a reduce/reduce ambiguity between the two
	// chain nonterminals.
	rule(g, ntFOFAnd, ntUnitFOF, '&', ntUnitFOF)
	rule(g, ntFOFAnd, ntFOFAnd, '&', ntUnitFOF)
	rule(g, ntFOFOr, ntUnitFOF, '|', ntUnitFOF)
	rule(g, ntFOFOr, ntFOFOr, '|', ntUnitFOF)

	rule(g, ntFOF, ntUnitFOF)
	rule(g, ntFOF, ntFOFAnd)
	rule(g, ntFOF, ntFOFOr)
	rule(g, ntFOF, ntUnitFOF, '=', '>', ntUnitFOF)
	rule(g, ntFOF, ntUnitFOF, '<', '=', ntUnitFOF)
	rule(g, ntFOF, ntUnitFOF, '<', '=', '>', ntUnitFOF)
	rule(g, ntFOF, ntUnitFOF, '<', '~', '>', ntUnitFOF)
	rule(g, ntFOF, ntUnitFOF, '~', '&', ntUnitFOF)
	rule(g, ntFOF, ntUnitFOF, '~', '|', ntUnitFOF)

	rule(g, ntExpr, ntID)
	rule(g, ntExpr, ntID, '(', ntExprArglist, ')')
	rule(g, ntExpr, '[', ']')
	rule(g, ntExpr, '[', ntExprArglist, ']')
	rule(g, ntExprArglist, ntExpr)
	rule(g, ntExprArglist, ntExprArglist, ',', ntExpr)

	rule(g, ntLine, ntID, '(', ntID, ',', ntID, ',', ntClause, ')', '.')
	rule(g, ntLine, ntID, '(', ntID, ',', ntID, ',', ntFOF, ')', '.')
	rule(g, ntLine, ntID, '(', ntID, ',', ntID, ',', ntClause, ',', ntExpr, ')', '.')
	rule(g, ntLine, ntID, '(', ntID, ',', ntID, ',', ntFOF, ',', ntExpr, ')', '.')
	rule(g, ntLine, ntID, '(', ntID, ',', ntID, ',', ntClause, ',', ntExpr, ',', ntExpr, ')', '.')
	rule(g, ntLine, ntID, '(', ntID, ',', ntID, ',', ntFOF, ',', ntExpr, ',', ntExpr, ')', '.')

	return g
}
