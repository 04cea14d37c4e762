package registry

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/matcher"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T) (*library.Store, *matcher.Matcher, symtab.LabTok) {
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

	wff := mustSym("wff")
	turnstile := mustSym("|-")
	for _, c := range []symtab.SymTok{wff, turnstile} {
		require.NoError(t, s.SetConstant(c, true))
	}
	s.SetTurnstile(turnstile)

	ph := mustSym("ph")
	wph := mustLab("wph")
	require.NoError(t, s.DeclareVariable(wph, wff, ph))

	g := grammar.New()
	g.SetStartSymbol(wff)
	require.NoError(t, g.AddRule(grammar.Derivation{Label: wph, NonTerminal: wff, RHS: []grammar.Symbol{ph}, IsVariable: true, Var: ph}))

	idLab := mustLab("id")
	s.AddSentence(idLab, library.Sentence{turnstile, ph})
	s.AddAssertion(idLab, &library.Assertion{Valid: true, FloatHyps: []symtab.LabTok{wph}, Thesis: idLab})

	a := mustSym("A")
	wA := mustLab("wA")
	require.NoError(t, s.DeclareVariable(wA, wff, a))
	require.NoError(t, g.AddRule(grammar.Derivation{Label: wA, NonTerminal: wff, RHS: []grammar.Symbol{a}, IsVariable: true, Var: a}))

	m := matcher.New(s, g, matcher.Options{})
	return s, m, idLab
}

func TestRegisterProver_ResolveMatchesAssertion(t *testing.T) {
	s, m, idLab := buildFixture(t)
	h := RegisterProver(nil, "|- A")

	c := NewCache(s, m, HardError)
	r, err := c.Resolve(h)
	require.NoError(t, err)
	require.Equal(t, idLab, r.Label)
	require.Equal(t, []int{}, r.PermInv)
	require.False(t, r.NoOp)
}

func TestRegisterProver_ResolveCaches(t *testing.T) {
	s, m, _ := buildFixture(t)
	h := RegisterProver(nil, "|- A")

	c := NewCache(s, m, HardError)
	first, err := c.Resolve(h)
	require.NoError(t, err)
	second, err := c.Resolve(h)
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, ok := c.Resolved(h)
	require.True(t, ok)
}

func TestRegisterProver_NoOpPolicyOnNoMatch(t *testing.T) {
	s, m, _ := buildFixture(t)
	h := RegisterProver([]string{"|- A"}, "|- A")

	c := NewCache(s, m, NoOpProver)
	r, err := c.Resolve(h)
	require.NoError(t, err)
	require.True(t, r.NoOp)
}

func TestRegisterProver_HardErrorOnNoMatch(t *testing.T) {
	s, m, _ := buildFixture(t)
	h := RegisterProver([]string{"|- A"}, "|- A")

	c := NewCache(s, m, HardError)
	_, err := c.Resolve(h)
	require.Error(t, err)
}
