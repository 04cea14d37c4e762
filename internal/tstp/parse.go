// Package tstp parses and reconstructs TSTP/TPTP cnf/fof lines (C11),
// wiring internal/tstp/lexer's character stream through the shared
// grammar/lrtable machinery from C4 and walking the resulting parse tree
// into internal/tstp/ast's typed formulas.
package tstp

import (
	"fmt"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/lrtable"
	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
	"github.com/dekarrin/mmtoolbox/internal/tstp/lexer"
)

// Entry is one reconstructed top-level TSTP line ("cnf(...)." or
// "fof(...).").
type Entry struct {
	Kind string // "cnf" or "fof"
	Name string
	Role string
	Formula *ast.Formula

	// Source and UsefulInfo hold the optional trailing annotation
	// expressions verbatim, unparsed — calls these "opaque" to
	// the core toolbox, so they are kept as raw text rather than walked
	// into a richer structure.
	Source string
	UsefulInfo string
}

var ntReverse = map[symtab.SymTok]string{}

func reverseNT(sym symtab.SymTok) (string, bool) {
	if len(ntReverse) == 0 {
		for name, s := range ntSym {
			ntReverse[s] = name
		}
	}
	name, ok := ntReverse[sym]
	return name, ok
}

func charOf(sym symtab.SymTok) (rune, bool) {
	name, ok := tokens.Resolve(sym)
	if !ok || !strings.HasPrefix(name, "char:") {
		return 0, false
	}
	return []rune(strings.TrimPrefix(name, "char:"))[0], true
}

// Parse tokenizes and parses one TSTP line into an Entry.
func Parse(g *grammar.Grammar, line string) (Entry, error) {
	toks, err := lexer.Lex(line)
	if err != nil {
		return Entry{}, err
	}
	syms := make([]symtab.SymTok, len(toks))
	for i, t := range toks {
		sym, ok := charTerm[t.Char]
		if !ok {
			return Entry{}, fmt.Errorf("tstp parse: unrecognized character %q at position %d", t.Char, t.Pos)
		}
		syms[i] = sym
	}

	p, err := lrtable.NewParser(g, lrtable.Options{})
	if err != nil {
		return Entry{}, err
	}
	tree := p.Parse(syms)
	if tree.Failed() {
		return Entry{}, mmerrors.NewParseFailure(len(syms))
	}
	return walkLine(g, tree)
}

func walkID(g *grammar.Grammar, node *ptree.Tree) string {
	name, _ := reverseNT(node.Type)
	switch name {
	case ntLetter:
		r, _ := charOf(node.Children[0].Type)
		return string(r)
	case ntID:
		if len(node.Children) == 1 {
			return walkID(g, node.Children[0])
		}
		return walkID(g, node.Children[0]) + walkID(g, node.Children[1])
	}
	return ""
}

func walkTerm(g *grammar.Grammar, node *ptree.Tree) *ast.Term {
	switch len(node.Children) {
	case 1:
		name := walkID(g, node.Children[0])
		return ast.Variable(name)
	default:
		name := walkID(g, node.Children[0])
		args := walkArglist(g, node.Children[2])
		return ast.Functor(name, args...)
	}
}

func walkArglist(g *grammar.Grammar, node *ptree.Tree) []*ast.Term {
	if len(node.Children) == 1 {
		return []*ast.Term{walkTerm(g, node.Children[0])}
	}
	return append(walkArglist(g, node.Children[0]), walkTerm(g, node.Children[2]))
}

func walkAtom(g *grammar.Grammar, node *ptree.Tree) *ast.Formula {
	switch len(node.Children) {
	case 1:
		t := walkTerm(g, node.Children[0])
		if len(t.Args) == 0 && t.Kind == ast.KindVariable {
			return ast.Predicate(t.Name)
		}
		return ast.Predicate(t.Name, t.Args...)
	case 3:
		l := walkTerm(g, node.Children[0])
		r := walkTerm(g, node.Children[2])
		return ast.Equal(l, r)
	default: // 4: TERM '!' '=' TERM
		l := walkTerm(g, node.Children[0])
		r := walkTerm(g, node.Children[3])
		return ast.Distinct(l, r)
	}
}

func walkLiteral(g *grammar.Grammar, node *ptree.Tree) *ast.Formula {
	if len(node.Children) == 1 {
		return walkAtom(g, node.Children[0])
	}
	return ast.Not(walkAtom(g, node.Children[1]))
}

func walkClause(g *grammar.Grammar, node *ptree.Tree) *ast.Formula {
	if len(node.Children) == 1 {
		return walkLiteral(g, node.Children[0])
	}
	return ast.Or(walkClause(g, node.Children[0]), walkLiteral(g, node.Children[2]))
}

func walkVarlist(g *grammar.Grammar, node *ptree.Tree) []string {
	if len(node.Children) == 1 {
		return []string{walkID(g, node.Children[0])}
	}
	return append(walkVarlist(g, node.Children[0]), walkID(g, node.Children[2]))
}

func wrapQuantified(kind rune, vars []string, body *ast.Formula) *ast.Formula {
	for i := len(vars) - 1; i >= 0; i-- {
		if kind == '!' {
			body = ast.Forall(vars[i], body)
		} else {
			body = ast.Exists(vars[i], body)
		}
	}
	return body
}

func walkUnitFOF(g *grammar.Grammar, node *ptree.Tree) *ast.Formula {
	switch len(node.Children) {
	case 1:
		return walkAtom(g, node.Children[0])
	case 2: // '~' UNIT_FOF
		return ast.Not(walkUnitFOF(g, node.Children[1]))
	case 3: // '(' FOF ')'
		return walkFOF(g, node.Children[1])
	default: // '!'/'?' '[' VARLIST ']' ':' UNIT_FOF
		kindChar, _ := charOf(node.Children[0].Type)
		vars := walkVarlist(g, node.Children[2])
		body := walkUnitFOF(g, node.Children[5])
		return wrapQuantified(kindChar, vars, body)
	}
}

// walkFOFAnd/walkFOFOr each handle both their base (two-operand) and
// chain (left-recursive) productions.
func walkFOFAnd(g *grammar.Grammar, node *ptree.Tree) *ast.Formula {
	left := node.Children[0]
	leftName, _ := reverseNT(left.Type)
	var l *ast.Formula
	if leftName == ntFOFAnd {
		l = walkFOFAnd(g, left)
	} else {
		l = walkUnitFOF(g, left)
	}
	return ast.And(l, walkUnitFOF(g, node.Children[2]))
}

func walkFOFOr(g *grammar.Grammar, node *ptree.Tree) *ast.Formula {
	left := node.Children[0]
	leftName, _ := reverseNT(left.Type)
	var l *ast.Formula
	if leftName == ntFOFOr {
		l = walkFOFOr(g, left)
	} else {
		l = walkUnitFOF(g, left)
	}
	return ast.Or(l, walkUnitFOF(g, node.Children[2]))
}

func walkFOF(g *grammar.Grammar, node *ptree.Tree) *ast.Formula {
	children := node.Children
	if len(children) == 1 {
		childName, _ := reverseNT(children[0].Type)
		switch childName {
		case ntFOFAnd:
			return walkFOFAnd(g, children[0])
		case ntFOFOr:
			return walkFOFOr(g, children[0])
		default:
			return walkUnitFOF(g, children[0])
		}
	}

	l := walkUnitFOF(g, children[0])
	r := walkUnitFOF(g, children[len(children)-1])
	switch len(children) {
	case 4:
		c1, _ := charOf(children[1].Type)
		c2, _ := charOf(children[2].Type)
		switch {
		case c1 == '=' && c2 == '>':
			return ast.Implies(l, r)
		case c1 == '<' && c2 == '=':
			return ast.Oeq(l, r)
		case c1 == '~' && c2 == '&':
			return ast.Not(ast.And(l, r))
		case c1 == '~' && c2 == '|':
			return ast.Not(ast.Or(l, r))
		}
	case 5:
		c1, _ := charOf(children[1].Type)
		if c1 == '<' {
			c2, _ := charOf(children[2].Type)
			if c2 == '=' {
				return ast.Iff(l, r)
			}
			return ast.Xor(l, r)
		}
	}
	return nil
}

func walkExpr(g *grammar.Grammar, node *ptree.Tree) string {
	var sb strings.Builder
	var render func(n *ptree.Tree)
	render = func(n *ptree.Tree) {
		if r, ok := charOf(n.Type); ok {
			sb.WriteRune(r)
			return
		}
		for _, c := range n.Children {
			render(c)
		}
	}
	render(node)
	return sb.String()
}

func walkLine(g *grammar.Grammar, tree *ptree.Tree) (Entry, error) {
	c := tree.Children
	kind := walkID(g, c[0])
	name := walkID(g, c[2])
	role := walkID(g, c[4])

	bodyName, _ := reverseNT(c[6].Type)
	var f *ast.Formula
	if bodyName == ntClause {
		f = walkClause(g, c[6])
	} else {
		f = walkFOF(g, c[6])
	}

	e := Entry{Kind: kind, Name: name, Role: role, Formula: f}
	// Base productions have 9 children (no annotations); a trailing
	// source expression adds 2 (',' EXPR) before the closing ')' '.',
	// and useful_info adds 2 more.
	if len(c) >= 11 {
		e.Source = walkExpr(g, c[8])
	}
	if len(c) >= 13 {
		e.UsefulInfo = walkExpr(g, c[10])
	}
	return e, nil
}
