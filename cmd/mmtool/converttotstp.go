package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/lrtable"
	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
	"github.com/hashicorp/go-hclog"
)

// convertToTSTPMain is the Go counterpart of original_source/apps/tstp.cpp's
// convert_to_tstp: read Metamath-style sentences and print their TSTP
// formula rendering. Where the original recognizes connectives by
// unifying against named model sentences ("wff A = B"), this walks the
// parse tree directly and dispatches on the production label's name
// ("wi" -> implication, "wn" -> negation), falling back to an uninterpreted
// predicate/functor for anything else the demo library doesn't name —
// sufficient for the two connectives buildDemoLibrary declares.
func convertToTSTPMain(args []string, log hclog.Logger) int {
	demo := buildDemoLibrary()

	g, err := grammar.FromLibrary(demo.store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmtool: convert-to-tstp: inducing grammar: %s\n", err)
		return ExitCommandError
	}
	g.SetStartSymbol(demo.wff)

	parser, err := lrtable.NewParser(g, lrtable.Options{Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmtool: convert-to-tstp: building parser: %s\n", err)
		return ExitCommandError
	}

	scanner := bufio.NewScanner(os.Stdin)
	status := ExitSuccess
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sent, err := tokenizeSentence(demo.store.Symbols, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mmtool: convert-to-tstp: %s\n", err)
			status = ExitCommandError
			continue
		}
		tree := parser.Parse(sent.Tail())
		if tree.Failed() {
			fmt.Fprintf(os.Stderr, "mmtool: convert-to-tstp: %s\n", mmerrors.NewParseFailure(len(sent.Tail())))
			status = ExitCommandError
			continue
		}
		formula := formulaOf(demo.store, tree)
		fmt.Printf("fof(conv, axiom, %s).\n", formula)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "mmtool: convert-to-tstp: reading stdin: %s\n", err)
		return ExitCommandError
	}
	return status
}

// structuralChildren returns node's non-terminal (Label != 0) children, the
// ones contributed by a nested production rather than literal notation
// tokens like "(" or "->".
func structuralChildren(node *ptree.Tree) []*ptree.Tree {
	var out []*ptree.Tree
	for _, c := range node.Children {
		if c.Label != 0 {
			out = append(out, c)
		}
	}
	return out
}

// variableNameOf returns the declared variable symbol's name for a
// floating-hypothesis leaf node, if node is one.
func variableNameOf(store *library.Store, node *ptree.Tree) (string, bool) {
	if !store.IsVariableLabel(node.Label) || len(node.Children) != 1 {
		return "", false
	}
	name, ok := store.ResolveSymbol(node.Children[0].Type)
	return name, ok
}

func formulaOf(store *library.Store, node *ptree.Tree) *ast.Formula {
	if name, ok := variableNameOf(store, node); ok {
		return ast.Predicate(name)
	}
	name, _ := store.ResolveLabel(node.Label)
	subs := structuralChildren(node)
	switch name {
	case "wi":
		return ast.Implies(formulaOf(store, subs[0]), formulaOf(store, subs[1]))
	case "wn":
		return ast.Not(formulaOf(store, subs[0]))
	default:
		args := make([]*ast.Term, len(subs))
		for i, s := range subs {
			args[i] = termOf(store, s)
		}
		return ast.Predicate(name, args...)
	}
}

func termOf(store *library.Store, node *ptree.Tree) *ast.Term {
	if name, ok := variableNameOf(store, node); ok {
		return ast.Variable(name)
	}
	name, _ := store.ResolveLabel(node.Label)
	subs := structuralChildren(node)
	args := make([]*ast.Term, len(subs))
	for i, s := range subs {
		args[i] = termOf(store, s)
	}
	return ast.Functor(name, args...)
}

