package matcher

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMpFixture builds a tiny library with one floating-only wff grammar
// and one axiom ax-mp: float_hyps={wff ph, wff ps}, ess_hyps={|- ph, |- (ph
// -> ps)}, thesis=|- ps — the scenario 2 fixture from the toolbox's
// testable properties.
func buildMpFixture(t *testing.T) (*library.Store, *grammar.Grammar, symtab.LabTok) {
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
	arrow := mustSym("->")
	lparen := mustSym("(")
	rparen := mustSym(")")
	for _, c := range []symtab.SymTok{wff, turnstile, arrow, lparen, rparen} {
		require.NoError(t, s.SetConstant(c, true))
	}
	s.SetTurnstile(turnstile)

	ph := mustSym("ph")
	ps := mustSym("ps")
	wph := mustLab("wph")
	wps := mustLab("wps")
	require.NoError(t, s.DeclareVariable(wph, wff, ph))
	require.NoError(t, s.DeclareVariable(wps, wff, ps))

	g := grammar.New()
	g.SetStartSymbol(wff)
	require.NoError(t, g.AddRule(grammar.Derivation{Label: wph, NonTerminal: wff, RHS: []grammar.Symbol{ph}, IsVariable: true, Var: ph}))
	require.NoError(t, g.AddRule(grammar.Derivation{Label: wps, NonTerminal: wff, RHS: []grammar.Symbol{ps}, IsVariable: true, Var: ps}))

	wi, err := s.CreateLabel("wi")
	require.NoError(t, err)
	require.NoError(t, g.AddRule(grammar.Derivation{
		Label: wi, NonTerminal: wff,
		RHS: []grammar.Symbol{lparen, wff, arrow, wff, rparen},
	}))
	s.AddSentence(wi, library.Sentence{wff, lparen, ph, arrow, ps, rparen})
	s.AddAssertion(wi, &library.Assertion{Valid: true, Thesis: wi})

	minMaj, err := s.CreateLabel("min")
	require.NoError(t, err)
	s.AddSentence(minMaj, library.Sentence{turnstile, ph})

	majLab, err := s.CreateLabel("maj")
	require.NoError(t, err)
	s.AddSentence(majLab, library.Sentence{turnstile, lparen, ph, arrow, ps, rparen})

	mpThesisLab, err := s.CreateLabel("mpthesis")
	require.NoError(t, err)
	s.AddSentence(mpThesisLab, library.Sentence{turnstile, ps})

	ampLab, err := s.CreateLabel("ax-mp")
	require.NoError(t, err)
	s.AddAssertion(ampLab, &library.Assertion{
		Valid: true,
		FloatHyps: []symtab.LabTok{wph, wps},
		EssHyps: []symtab.LabTok{minMaj, majLab},
		Thesis: mpThesisLab,
	})

	return s, g, ampLab
}

func Test_UnifyAssertion_MatchesAxMp(t *testing.T) {
	s, g, ampLab := buildMpFixture(t)
	m := New(s, g, Options{})

	wff, _ := s.Symbols.Lookup("wff")

	a, err := s.CreateSymbol("A")
	require.NoError(t, err)
	b, err := s.CreateSymbol("B")
	require.NoError(t, err)
	wA, err := s.CreateLabel("wA")
	require.NoError(t, err)
	wB, err := s.CreateLabel("wB")
	require.NoError(t, err)
	require.NoError(t, s.DeclareVariable(wA, wff, a))
	require.NoError(t, s.DeclareVariable(wB, wff, b))
	require.NoError(t, g.AddRule(grammar.Derivation{Label: wA, NonTerminal: wff, RHS: []grammar.Symbol{a}, IsVariable: true, Var: a}))
	require.NoError(t, g.AddRule(grammar.Derivation{Label: wB, NonTerminal: wff, RHS: []grammar.Symbol{b}, IsVariable: true, Var: b}))

	turnstile := s.Turnstile()
	lparen, _ := s.Symbols.Lookup("(")
	rparen, _ := s.Symbols.Lookup(")")
	arrow, _ := s.Symbols.Lookup("->")

	goalThesis := library.Sentence{turnstile, b}
	goalHyps := []library.Sentence{
		{turnstile, a},
		{turnstile, lparen, a, arrow, b, rparen},
	}

	matches, err := m.UnifyAssertion(goalHyps, goalThesis, true, true)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, ampLab, matches[0].Label)
	assert.Equal(t, []int{0, 1}, matches[0].Permutation)
}
