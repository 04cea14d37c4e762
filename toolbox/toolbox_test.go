package toolbox

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/cache"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/mmconfig"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMpFixture builds a tiny library with one floating-only wff grammar
// and one axiom ax-mp: float_hyps={wff ph, wff ps}, ess_hyps={|- ph, |- (ph
// -> ps)}, thesis=|- ps, mirroring internal/matcher's own fixture but
// without a pre-built grammar.Grammar, since Toolbox induces its own. Two
// extra variables A/B (with productions wA/wB) are declared so a goal
// distinct from the library's own ph/ps can be unified against it.
func buildMpFixture(t *testing.T) (store *library.Store, wff symtab.SymTok, ampLab symtab.LabTok, a, b symtab.SymTok) {
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

	wff = mustSym("wff")
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

	wi := mustLab("wi")
	s.AddSentence(wi, library.Sentence{wff, lparen, ph, arrow, ps, rparen})
	s.AddAssertion(wi, &library.Assertion{Valid: true, Thesis: wi})

	minMaj := mustLab("min")
	s.AddSentence(minMaj, library.Sentence{turnstile, ph})

	majLab := mustLab("maj")
	s.AddSentence(majLab, library.Sentence{turnstile, lparen, ph, arrow, ps, rparen})

	mpThesisLab := mustLab("mpthesis")
	s.AddSentence(mpThesisLab, library.Sentence{turnstile, ps})

	ampLab = mustLab("ax-mp")
	s.AddAssertion(ampLab, &library.Assertion{
		Valid: true,
		FloatHyps: []symtab.LabTok{wph, wps},
		EssHyps: []symtab.LabTok{minMaj, majLab},
		Thesis: mpThesisLab,
	})

	a = mustSym("A")
	b = mustSym("B")
	wA := mustLab("wA")
	wB := mustLab("wB")
	require.NoError(t, s.DeclareVariable(wA, wff, a))
	require.NoError(t, s.DeclareVariable(wB, wff, b))

	return s, wff, ampLab, a, b
}

func TestNew_InducesGrammarAndFindsMatch(t *testing.T) {
	s, wff, ampLab, a, b := buildMpFixture(t)

	tb, err := New(s, Options{StartSymbol: wff})
	require.NoError(t, err)

	turnstile := s.Turnstile()
	lparen, _ := s.Symbols.Lookup("(")
	rparen, _ := s.Symbols.Lookup(")")
	arrow, _ := s.Symbols.Lookup("->")

	goalThesis := library.Sentence{turnstile, b}
	goalHyps := []library.Sentence{
		{turnstile, a},
		{turnstile, lparen, a, arrow, b, rparen},
	}

	matches, err := tb.UnifyAssertion(goalHyps, goalThesis, true)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, ampLab, matches[0].Label)
}

func TestNew_RejectsUnknownMissingMatchPolicy(t *testing.T) {
	s, wff, _, _, _ := buildMpFixture(t)
	_, err := New(s, Options{StartSymbol: wff, Config: mmconfig.Config{MissingMatchPolicy: "bogus"}})
	assert.Error(t, err)
}

func TestNew_WithCache_ReusesStoredTableAcrossToolboxes(t *testing.T) {
	s, wff, _, _, _ := buildMpFixture(t)

	path := filepath.Join(t.TempDir(), "parser-cache.db")
	store, err := cache.OpenSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	tb1, err := New(s, Options{StartSymbol: wff, Cache: store})
	require.NoError(t, err)

	digest := cache.Digest(tb1.Grammar())
	_, ok, err := store.Load(context.Background(), digest)
	require.NoError(t, err)
	assert.True(t, ok, "constructing a Toolbox with a Cache should populate it for the induced grammar's digest")

	tb2, err := New(s, Options{StartSymbol: wff, Cache: store})
	require.NoError(t, err)
	assert.Equal(t, digest, cache.Digest(tb2.Grammar()))
}
