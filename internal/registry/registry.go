// Package registry implements the process-wide, append-only registered-
// prover registry (C10), grounded on "global mutable state ->
// process-wide append-only registry" redesign note and on
// original_source/mm/toolbox.cpp's registered_provers static table.
package registry

import (
	"strings"
	"sync"

	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/matcher"
	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/google/uuid"
)

// Handle is an opaque reference to a registered prover template. Handles
// are only meaningful once resolved against a concrete library via a
// Cache; a handle minted by one process is never reused across processes
// since it is stamped with a random UUID, not a sequence number.
type Handle struct {
	id uuid.UUID
}

// String renders the handle's UUID, for trace logs.
func (h Handle) String() string { return h.id.String() }

// Template is the textual, library-independent shape of a registered
// prover: a sequence of hypothesis sentences and a thesis sentence, each
// written as whitespace-separated symbol names.
type Template struct {
	HypTemplates []string
	ThesisTemplate string
}

var (
	mu sync.Mutex
	templates = map[Handle]Template{}
)

// RegisterProver appends a new template to the process-wide registry and
// returns its handle. Registration is sound to call concurrently from
// multiple libraries' init paths, but every registration must complete
// before any Cache.Resolve call that might observe it.
func RegisterProver(hypTemplates []string, thesisTemplate string) Handle {
	h := Handle{id: uuid.New()}
	cp := make([]string, len(hypTemplates))
	copy(cp, hypTemplates)

	mu.Lock()
	templates[h] = Template{HypTemplates: cp, ThesisTemplate: thesisTemplate}
	mu.Unlock()
	return h
}

func lookup(h Handle) (Template, bool) {
	mu.Lock()
	defer mu.Unlock()
	t, ok := templates[h]
	return t, ok
}

func parseTemplateSentence(store *library.Store, text string) (library.Sentence, error) {
	fields := strings.Fields(text)
	sent := make(library.Sentence, 0, len(fields))
	for _, f := range fields {
		sym, ok := store.Symbols.Lookup(f)
		if !ok {
			return nil, mmerrors.UnknownIdentifier("symbol " + f + " in registered-prover template")
		}
		sent = append(sent, sym)
	}
	return sent, nil
}

// ErrorPolicy governs what Cache.Resolve does when a registered prover's
// templates do not match any assertion in the bound library.
type ErrorPolicy int

const (
	// HardError makes Resolve return mmerrors.ErrNoMatchingAssertion.
	HardError ErrorPolicy = iota
	// NoOpProver makes Resolve succeed with a Resolution whose NoOp field
	// is true, for callers that treat an absent prover as "do nothing".
	NoOpProver
)

// Resolution is the per-library instance data cached for a resolved
// handle: the matched assertion's label, the inverse of the essential-
// hypothesis permutation the matcher found, the symbol-level substitution
// map, and the label's display string.
type Resolution struct {
	Label symtab.LabTok
	PermInv []int
	AssMap map[symtab.SymTok]*ptree.Tree
	LabelStr string
	NoOp bool
}

func invertPerm(perm []int) []int {
	inv := make([]int, len(perm))
	for i, v := range perm {
		inv[v] = i
	}
	return inv
}

// Cache binds the registry to one library, resolving and memoizing
// handles against that library's matcher. A handle must be precomputed
// via Resolve on a mutable Store before a read-only View may use it — a
// registered prover is invalid on a const view until precomputed.
type Cache struct {
	store *library.Store
	m *matcher.Matcher
	policy ErrorPolicy
	resolved map[Handle]Resolution
}

// NewCache returns a Cache resolving handles against store via m.
func NewCache(store *library.Store, m *matcher.Matcher, policy ErrorPolicy) *Cache {
	return &Cache{store: store, m: m, policy: policy, resolved: map[Handle]Resolution{}}
}

// Resolve returns h's cached Resolution against this Cache's library,
// computing and caching it on first use. On a library with no matching
// assertion, the result depends on the Cache's ErrorPolicy.
func (c *Cache) Resolve(h Handle) (Resolution, error) {
	if r, ok := c.resolved[h]; ok {
		return r, nil
	}

	tmpl, ok := lookup(h)
	if !ok {
		return Resolution{}, mmerrors.UnknownIdentifier("registered prover handle " + h.String())
	}

	thesis, err := parseTemplateSentence(c.store, tmpl.ThesisTemplate)
	if err != nil {
		return Resolution{}, err
	}
	hyps := make([]library.Sentence, len(tmpl.HypTemplates))
	for i, s := range tmpl.HypTemplates {
		hyps[i], err = parseTemplateSentence(c.store, s)
		if err != nil {
			return Resolution{}, err
		}
	}

	matches, err := c.m.UnifyAssertion(hyps, thesis, true, true)
	if err != nil {
		return Resolution{}, err
	}

	if len(matches) == 0 {
		if c.policy == NoOpProver {
			r := Resolution{NoOp: true}
			c.resolved[h] = r
			return r, nil
		}
		return Resolution{}, mmerrors.ErrNoMatchingAssertion
	}

	match := matches[0]
	labelStr, _ := c.store.ResolveLabel(match.Label)
	r := Resolution{
		Label: match.Label,
		PermInv: invertPerm(match.Permutation),
		AssMap: match.Subst,
		LabelStr: labelStr,
	}
	c.resolved[h] = r
	return r, nil
}

// Resolved returns h's already-computed Resolution without triggering a
// match, for use from a read-only View bound to an already-finalized
// library.
func (c *Cache) Resolved(h Handle) (Resolution, bool) {
	r, ok := c.resolved[h]
	return r, ok
}
