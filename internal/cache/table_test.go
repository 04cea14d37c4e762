package cache

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/lrtable"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildArrowGrammar mirrors lrtable's own round-trip fixture: wff -> (wff
// -> wff) | v, set -> x.
func buildArrowGrammar(t *testing.T) (*grammar.Grammar, map[string]symtab.SymTok) {
	t.Helper()
	syms := map[string]symtab.SymTok{
		"wff": 1, "set": 2, "(": 3, ")": 4, "->": 5, "v": 6, "x": 7,
	}
	g := grammar.New()
	g.SetStartSymbol(syms["wff"])
	require.NoError(t, g.AddRule(grammar.Derivation{
		Label: 1, NonTerminal: syms["wff"],
		RHS: []grammar.Symbol{syms["("], syms["wff"], syms["->"], syms["wff"], syms[")"]},
	}))
	require.NoError(t, g.AddRule(grammar.Derivation{
		Label: 2, NonTerminal: syms["wff"], RHS: []grammar.Symbol{syms["v"]},
		IsVariable: true, Var: syms["v"],
	}))
	require.NoError(t, g.AddRule(grammar.Derivation{
		Label: 3, NonTerminal: syms["set"], RHS: []grammar.Symbol{syms["x"]},
		IsVariable: true, Var: syms["x"],
	}))
	return g, syms
}

func TestBuildTableData_PrecomputedTableParsesSameAsLive(t *testing.T) {
	g, syms := buildArrowGrammar(t)

	live, err := lrtable.BuildCanonicalLR1(g)
	require.NoError(t, err)

	data := BuildTableData(live, g)
	require.NotEmpty(t, data.Actions)

	pre := NewPrecomputedTable(data)

	input := []symtab.SymTok{syms["("], syms["v"], syms["->"], syms["v"], syms[")"]}

	liveParser := lrtable.NewParserWithTable(live, g, lrtable.Options{})
	preParser := lrtable.NewParserWithTable(pre, g, lrtable.Options{})

	liveTree := liveParser.Parse(input)
	preTree := preParser.Parse(input)

	require.False(t, liveTree.Failed())
	require.False(t, preTree.Failed())

	liveRecon := ptree.ReconstructSentence(liveTree, syms["wff"], g)
	preRecon := ptree.ReconstructSentence(preTree, syms["wff"], g)
	assert.Equal(t, []symtab.SymTok(liveRecon), []symtab.SymTok(preRecon))
}

func TestDigest_StableAndSensitiveToGrammar(t *testing.T) {
	g1, _ := buildArrowGrammar(t)
	g2, _ := buildArrowGrammar(t)
	assert.Equal(t, Digest(g1), Digest(g2))

	g3 := grammar.New()
	g3.SetStartSymbol(1)
	require.NoError(t, g3.AddRule(grammar.Derivation{Label: 1, NonTerminal: 1, RHS: []grammar.Symbol{2}}))
	assert.NotEqual(t, Digest(g1), Digest(g3))
}
