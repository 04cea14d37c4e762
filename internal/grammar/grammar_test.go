package grammar

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Grammar_AddRule_ConflictingLabel(t *testing.T) {
	g := New()
	require.NoError(t, g.AddRule(Derivation{Label: 1, NonTerminal: 10, RHS: []Symbol{20}}))
	err := g.AddRule(Derivation{Label: 2, NonTerminal: 10, RHS: []Symbol{20}})
	assert.ErrorIs(t, err, mmerrors.ErrDuplicateIdentifier)
}

func Test_Grammar_AddRule_SameLabelIdempotent(t *testing.T) {
	g := New()
	require.NoError(t, g.AddRule(Derivation{Label: 1, NonTerminal: 10, RHS: []Symbol{20}}))
	require.NoError(t, g.AddRule(Derivation{Label: 1, NonTerminal: 10, RHS: []Symbol{20}}))
}

func Test_Grammar_IsTerminal(t *testing.T) {
	g := New()
	require.NoError(t, g.AddRule(Derivation{Label: 1, NonTerminal: 10, RHS: []Symbol{11}}))
	assert.False(t, g.IsTerminal(10), "10 has a production, is a nonterminal")
	assert.True(t, g.IsTerminal(11), "11 has no production, is a terminal")
}

func Test_Grammar_Augmented(t *testing.T) {
	g := New()
	g.SetStartSymbol(10)
	require.NoError(t, g.AddRule(Derivation{Label: 1, NonTerminal: 10, RHS: []Symbol{11}}))

	aug := g.Augmented()
	assert.Equal(t, augmentedStart, aug.StartSymbol())
	assert.Equal(t, [][]Symbol{{10}}, aug.Rule(augmentedStart))
	// original is untouched
	assert.Equal(t, Symbol(10), g.StartSymbol())
}

func Test_Grammar_Copy_IsIndependent(t *testing.T) {
	g := New()
	require.NoError(t, g.AddRule(Derivation{Label: 1, NonTerminal: 10, RHS: []Symbol{11}}))
	cp := g.Copy()
	require.NoError(t, cp.AddRule(Derivation{Label: 2, NonTerminal: 10, RHS: []Symbol{12}}))
	assert.Len(t, g.Rule(10), 1)
	assert.Len(t, cp.Rule(10), 2)
}

func Test_Grammar_Validate_NoStartProductions(t *testing.T) {
	g := New()
	g.SetStartSymbol(99)
	err := g.Validate()
	assert.Error(t, err)
}
