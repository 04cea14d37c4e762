package lrtable

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Round-trip scenario from the toolbox's testable properties: a grammar
//
//	wff -> (wff -> wff)
//	wff -> v
//	set -> x
//
// parsing "(v -> v)" under start symbol wff succeeds and reconstructing
// the parsed tree reproduces the original token sequence.
func buildArrowGrammar(t *testing.T) (*grammar.Grammar, map[string]symtab.SymTok, map[string]symtab.LabTok) {
	t.Helper()
	syms := map[string]symtab.SymTok{
		"wff": 1, "set": 2, "(": 3, ")": 4, "->": 5, "v": 6, "x": 7,
	}
	labs := map[string]symtab.LabTok{
		"wi": 1, "wph": 2, "vx": 3,
	}

	g := grammar.New()
	g.SetStartSymbol(syms["wff"])

	require.NoError(t, g.AddRule(grammar.Derivation{
		Label: labs["wi"],
		NonTerminal: syms["wff"],
		RHS: []grammar.Symbol{syms["("], syms["wff"], syms["->"], syms["wff"], syms[")"]},
	}))
	require.NoError(t, g.AddRule(grammar.Derivation{
		Label: labs["wph"],
		NonTerminal: syms["wff"],
		RHS: []grammar.Symbol{syms["v"]},
		IsVariable: true,
		Var: syms["v"],
	}))
	require.NoError(t, g.AddRule(grammar.Derivation{
		Label: labs["vx"],
		NonTerminal: syms["set"],
		RHS: []grammar.Symbol{syms["x"]},
		IsVariable: true,
		Var: syms["x"],
	}))

	return g, syms, labs
}

func Test_Parser_RoundTrip(t *testing.T) {
	g, syms, _ := buildArrowGrammar(t)

	p, err := NewParser(g, Options{})
	require.NoError(t, err)

	input := []symtab.SymTok{syms["("], syms["v"], syms["->"], syms["v"], syms[")"]}
	tree := p.Parse(input)
	require.False(t, tree.Failed(), "parse of a grammatical sentence must not fail")

	reconstructed := ptree.ReconstructSentence(tree, syms["wff"], g)
	want := append([]symtab.SymTok{syms["wff"]}, input...)
	assert.Equal(t, want, []symtab.SymTok(reconstructed))
}

func Test_Parser_FailsOnUngrammaticalInput(t *testing.T) {
	g, syms, _ := buildArrowGrammar(t)

	p, err := NewParser(g, Options{})
	require.NoError(t, err)

	input := []symtab.SymTok{syms["->"], syms["v"]}
	tree := p.Parse(input)
	assert.True(t, tree.Failed())
}
