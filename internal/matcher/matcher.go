// Package matcher implements the assertion matcher (C8), grounded on
// original_source/mm/unification.cpp's unify_assertion and the prior toolbox's
// table-cache idiom (a memoizing wrapper keyed on a canonical digest of the
// inputs).
package matcher

import (
	"fmt"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/lrtable"
	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/mmlog"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/dekarrin/mmtoolbox/internal/unify"
	"github.com/hashicorp/go-hclog"
)

// Match is one assertion found to match a goal.
type Match struct {
	Label symtab.LabTok
	Permutation []int
	Subst map[symtab.SymTok]*ptree.Tree
}

// TableBuilder builds the LR(1) table a Matcher parses a type's sentences
// with. The zero Options value uses lrtable.BuildCanonicalLR1 directly;
// callers that want a persistent parser-table cache (internal/cache)
// fronting construction supply their own.
type TableBuilder func(g *grammar.Grammar) (lrtable.Table, error)

// Options configures a Matcher. The zero value is ready to use.
type Options struct {
	Logger hclog.Logger
	BuildTable TableBuilder
}

// Matcher runs unify_assertion against a finalized library, lazily
// building and caching one LR parser per type symbol it is asked to parse
// (the grammar's productions are shared; only the augmented start symbol
// differs per type, so each type gets its own table).
type Matcher struct {
	store *library.Store
	g *grammar.Grammar
	log hclog.Logger
	buildTable TableBuilder

	parsers map[symtab.SymTok]*lrtable.Parser
	cache map[string][]Match
}

// New returns a Matcher over store's assertions, parsing with g.
func New(store *library.Store, g *grammar.Grammar, opts Options) *Matcher {
	buildTable := opts.BuildTable
	if buildTable == nil {
		buildTable = func(g *grammar.Grammar) (lrtable.Table, error) {
			return lrtable.BuildCanonicalLR1(g)
		}
	}
	return &Matcher{
		store: store,
		g: g,
		log: mmlog.OrNull(opts.Logger),
		buildTable: buildTable,
		parsers: map[symtab.SymTok]*lrtable.Parser{},
		cache: map[string][]Match{},
	}
}

func (m *Matcher) parserFor(start symtab.SymTok) (*lrtable.Parser, error) {
	if p, ok := m.parsers[start]; ok {
		return p, nil
	}
	gt := m.g.Copy()
	gt.SetStartSymbol(start)
	table, err := m.buildTable(gt)
	if err != nil {
		return nil, err
	}
	p := lrtable.NewParserWithTable(table, gt, lrtable.Options{Logger: m.log})
	m.parsers[start] = p
	return p, nil
}

// startSymbolFor returns the nonterminal to parse a sentence's tail as. A
// turnstile-headed sentence ("|- ph") has no production of its own (the
// extractor never induces one) — its tail is, by
// Metamath convention, content of the grammar's own declared start type
// (e.g. wff), so that type is used instead of the literal turnstile token.
func (m *Matcher) startSymbolFor(sentType symtab.SymTok) symtab.SymTok {
	if sentType == m.store.Turnstile() {
		return m.g.StartSymbol()
	}
	return sentType
}

func (m *Matcher) parseSentence(s library.Sentence) (*ptree.Tree, error) {
	p, err := m.parserFor(m.startSymbolFor(s.Type()))
	if err != nil {
		return nil, err
	}
	tree := p.Parse(s.Tail())
	if tree.Failed() {
		return nil, mmerrors.NewParseFailure(len(s.Tail()))
	}
	return tree, nil
}

func cacheKey(hyps []library.Sentence, thesis library.Sentence) string {
	var sb strings.Builder
	sb.WriteString(thesis.String())
	for _, h := range hyps {
		sb.WriteString("|")
		sb.WriteString(h.String())
	}
	return sb.String()
}

// UnifyAssertion searches the library for assertions whose thesis and
// essential hypotheses unify with the given goal, If
// upToHypsPerms is false, only the identity permutation of hypSentences is
// tried. If justFirst, the search stops (and the result is cached) at the
// first match; the cache is not consulted or populated otherwise, since a
// full-results query is not idempotent with a prior first-hit-only query.
func (m *Matcher) UnifyAssertion(hypSentences []library.Sentence, thesisSentence library.Sentence, justFirst, upToHypsPerms bool) ([]Match, error) {
	key := cacheKey(hypSentences, thesisSentence)
	if justFirst {
		if cached, ok := m.cache[key]; ok {
			return cached, nil
		}
	}

	goalThesis, err := m.parseSentence(thesisSentence)
	if err != nil {
		return nil, fmt.Errorf("parsing goal thesis: %w", err)
	}
	goalHyps := make([]*ptree.Tree, len(hypSentences))
	for i, h := range hypSentences {
		t, err := m.parseSentence(h)
		if err != nil {
			return nil, fmt.Errorf("parsing goal hypothesis %d: %w", i, err)
		}
		goalHyps[i] = t
	}

	var results []Match

	for _, la := range m.store.ListAssertions() {
		a := la.Assertion
		if a.UsageDisc {
			continue
		}
		if len(a.EssHyps) != len(hypSentences) {
			continue
		}
		thesisSent, ok := m.store.GetSentence(a.Thesis)
		if !ok || thesisSent.Type() != thesisSentence.Type() {
			continue
		}

		templateThesis, err := m.parseSentence(thesisSent)
		if err != nil {
			continue
		}

		perms := [][]int{identityPerm(len(a.EssHyps))}
		if upToHypsPerms {
			perms = permutations(len(a.EssHyps))
		}

		for _, perm := range perms {
			u := unify.NewUnilateral(m.store)
			if err := u.AddParsingTrees(templateThesis, goalThesis); err != nil {
				continue
			}

			ok := true
			for i, essLabel := range a.EssHyps {
				essSent, has := m.store.GetSentence(essLabel)
				if !has || essSent.Type() != hypSentences[perm[i]].Type() {
					ok = false
					break
				}
				templateHyp, err := m.parseSentence(essSent)
				if err != nil {
					ok = false
					break
				}
				if err := u.AddParsingTrees(templateHyp, goalHyps[perm[i]]); err != nil {
					ok = false
					break
				}
			}
			if !ok || !u.IsUnifiable() {
				continue
			}

			unified, labelSubst := u.Unify()
			if !unified {
				continue
			}

			symSubst := make(map[symtab.SymTok]*ptree.Tree, len(labelSubst))
			for varLabel, t := range labelSubst {
				varSym, ok := m.store.VarSymOf(varLabel)
				if !ok {
					continue
				}
				symSubst[varSym] = t
			}

			match := Match{Label: la.Label, Permutation: perm, Subst: symSubst}
			results = append(results, match)
			if justFirst {
				m.cache[key] = results
				return results, nil
			}
		}
	}

	if justFirst {
		m.cache[key] = results
	}
	return results, nil
}

func identityPerm(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// permutations returns every permutation of {0, ..., n-1}.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}
	var out [][]int
	var rec func(prefix, rest []int)
	rec = func(prefix, rest []int) {
		if len(rest) == 0 {
			cp := make([]int, len(prefix))
			copy(cp, prefix)
			out = append(out, cp)
			return
		}
		for i, v := range rest {
			nextRest := make([]int, 0, len(rest)-1)
			nextRest = append(nextRest, rest[:i]...)
			nextRest = append(nextRest, rest[i+1:]...)
			rec(append(prefix, v), nextRest)
		}
	}
	rec(nil, base)
	return out
}
