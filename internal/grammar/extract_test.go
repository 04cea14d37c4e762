package grammar

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arrowFixture builds a tiny library equivalent to:
//
//	wff, set constants used as type symbols (nonterminals)
//	->, , |- ordinary constants
//	wph: wff ph (floating)
//	wps: wff ps (floating)
//	vx: set x (floating)
//	wi: wff (ph -> ps) (axiom, no hyps, no DV; induces a production)
type arrowFixture struct {
	store *library.Store
	wff, set symtab.SymTok
	arrow, lparen, rparen symtab.SymTok
	turnstile symtab.SymTok
	ph, ps, x symtab.SymTok
	wph, wps, vx symtab.LabTok
	wi symtab.LabTok
}

func buildArrowFixture(t *testing.T) *arrowFixture {
	t.Helper()
	s := library.NewStore()

	mustSym := func(name string) symtab.SymTok {
		sym, err := s.CreateSymbol(name)
		require.NoError(t, err)
		return sym
	}
	mustLab := func(name string) symtab.LabTok {
		lab, err := s.CreateLabel(name)
		require.NoError(t, err)
		return lab
	}

	f := &arrowFixture{store: s}
	f.wff = mustSym("wff")
	f.set = mustSym("set")
	f.arrow = mustSym("->")
	f.lparen = mustSym("(")
	f.rparen = mustSym(")")
	f.turnstile = mustSym("|-")
	f.ph = mustSym("ph")
	f.ps = mustSym("ps")
	f.x = mustSym("x")

	for _, c := range []symtab.SymTok{f.wff, f.set, f.arrow, f.lparen, f.rparen, f.turnstile} {
		require.NoError(t, s.SetConstant(c, true))
	}
	s.SetTurnstile(f.turnstile)

	f.wph = mustLab("wph")
	f.wps = mustLab("wps")
	f.vx = mustLab("vx")
	require.NoError(t, s.DeclareVariable(f.wph, f.wff, f.ph))
	require.NoError(t, s.DeclareVariable(f.wps, f.wff, f.ps))
	require.NoError(t, s.DeclareVariable(f.vx, f.set, f.x))

	f.wi = mustLab("wi")
	thesis := library.Sentence{f.wff, f.lparen, f.ph, f.arrow, f.ps, f.rparen}
	s.AddSentence(f.wi, thesis)
	s.AddAssertion(f.wi, &library.Assertion{Valid: true, Thesis: f.wi})

	return f
}

func Test_FromLibrary_FloatingHypsBecomeProductions(t *testing.T) {
	f := buildArrowFixture(t)
	g, err := FromLibrary(f.store)
	require.NoError(t, err)

	der, ok := g.DerivationByLabel(f.wph)
	require.True(t, ok)
	assert.True(t, der.IsVariable)
	assert.Equal(t, f.wff, der.NonTerminal)
	assert.Equal(t, []Symbol{f.ph}, der.RHS)
}

func Test_FromLibrary_AxiomBecomesProduction(t *testing.T) {
	f := buildArrowFixture(t)
	g, err := FromLibrary(f.store)
	require.NoError(t, err)

	der, ok := g.DerivationByLabel(f.wi)
	require.True(t, ok)
	assert.False(t, der.IsVariable)
	assert.Equal(t, f.wff, der.NonTerminal)
	assert.Equal(t, []Symbol{f.lparen, f.wff, f.arrow, f.wff, f.rparen}, der.RHS)
}

func Test_FromLibrary_TurnstileHeadedAxiomExcluded(t *testing.T) {
	f := buildArrowFixture(t)

	mp, err := f.store.CreateLabel("ax-mp-like")
	require.NoError(t, err)
	f.store.AddSentence(mp, library.Sentence{f.turnstile, f.ps})
	f.store.AddAssertion(mp, &library.Assertion{Valid: true, Thesis: mp})

	g, err := FromLibrary(f.store)
	require.NoError(t, err)

	_, ok := g.DerivationByLabel(mp)
	assert.False(t, ok, "turnstile-headed axiom must not become a production")
}

func Test_FromLibrary_RepeatedVariableRejected(t *testing.T) {
	f := buildArrowFixture(t)

	dup, err := f.store.CreateLabel("wdup")
	require.NoError(t, err)
	f.store.AddSentence(dup, library.Sentence{f.wff, f.lparen, f.ph, f.arrow, f.ph, f.rparen})
	f.store.AddAssertion(dup, &library.Assertion{Valid: true, Thesis: dup})

	g, err := FromLibrary(f.store)
	require.NoError(t, err)

	_, ok := g.DerivationByLabel(dup)
	assert.False(t, ok, "a thesis repeating the same variable must not become a production")
}
