// Package toolbox is the top-level orchestration package tying the
// library, grammar, parser-table, substitution, unification, matching,
// proof-engine, registry, and cache packages together, grounded on
// original_source/mm/toolbox.cpp's LibraryToolbox: the one object a caller
// actually constructs to work with a Metamath-style library. Where the
// original differentiated an owning, incrementally-extendable toolbox from
// a const, precomputed one, this module already carries that split as
// library.Store vs library.View; Toolbox wraps whichever of the two the
// caller hands it, plus everything compute_everything eagerly built
// alongside it.
package toolbox

import (
	"context"

	"github.com/dekarrin/mmtoolbox/internal/cache"
	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/lrtable"
	"github.com/dekarrin/mmtoolbox/internal/matcher"
	"github.com/dekarrin/mmtoolbox/internal/mmconfig"
	"github.com/dekarrin/mmtoolbox/internal/mmlog"
	"github.com/dekarrin/mmtoolbox/internal/proof"
	"github.com/dekarrin/mmtoolbox/internal/registry"
	"github.com/dekarrin/mmtoolbox/internal/subst"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/hashicorp/go-hclog"
)

// Options configures a Toolbox. The zero value is ready to use: no
// persistent parser cache, a zero mmconfig.Config passed through
// FillDefaults, and a null logger.
type Options struct {
	Logger hclog.Logger
	Config mmconfig.Config

	// StartSymbol is the grammar nonterminal a turnstile-headed sentence's
	// tail parses as (conventionally "wff"). grammar.FromLibrary induces
	// productions but never designates one as the start symbol, since
	// Metamath libraries don't universally agree on a single "the"
	// provable type; the caller names it.
	StartSymbol symtab.SymTok

	// Cache, if non-nil, fronts every induced per-type LR(1) table build
	// with a content-addressable load/store round trip (internal/cache),
	// matching persistent parser cache collaborator. A nil
	// Cache recomputes every table from scratch, same as matcher's own
	// zero-Options behavior.
	Cache cache.Store
}

// Toolbox bundles a finalized library with everything LibraryToolbox's
// compute_everything built eagerly: the induced grammar, a Matcher over
// it, a temp-variable Pool sharing the same grammar, and a registered-
// prover Cache bound to the Matcher.
type Toolbox struct {
	store *library.Store
	g *grammar.Grammar
	m *matcher.Matcher
	pool *subst.Pool
	regs *registry.Cache
	log hclog.Logger
	cfg mmconfig.Config
}

// New finalizes store (if not already), induces its grammar, and wires a
// Matcher/Pool/registry.Cache against it. This is the module's
// compute_everything call site: every collaborator below is built now,
// not lazily on first use, matching original_source/mm/toolbox.cpp's
// constructor calling compute_everything when compute=true.
func New(store *library.Store, opts Options) (*Toolbox, error) {
	store.Finalize()
	g, err := grammar.FromLibrary(store)
	if err != nil {
		return nil, err
	}
	g.SetStartSymbol(opts.StartSymbol)

	log := mmlog.OrNull(opts.Logger)
	cfg := opts.Config.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	buildTable := matcher.TableBuilder(func(g *grammar.Grammar) (lrtable.Table, error) {
		return lrtable.BuildCanonicalLR1(g)
	})
	if opts.Cache != nil {
		buildTable = cachedTableBuilder(opts.Cache, log)
	}
	if opts.StartSymbol != 0 {
		if _, err := buildTable(g); err != nil {
			return nil, err
		}
	}

	m := matcher.New(store, g, matcher.Options{Logger: log, BuildTable: buildTable})
	pool := subst.New(store, g, subst.Options{Logger: log})

	policy, err := cfg.MissingMatchPolicy.ToRegistryPolicy()
	if err != nil {
		return nil, err
	}
	regs := registry.NewCache(store, m, policy)

	return &Toolbox{store: store, g: g, m: m, pool: pool, regs: regs, log: log, cfg: cfg}, nil
}

// cachedTableBuilder returns a matcher.TableBuilder that consults store
// before building a table from scratch, and populates it afterward,
// keyed on cache.Digest(g).
func cachedTableBuilder(store cache.Store, log hclog.Logger) matcher.TableBuilder {
	return func(g *grammar.Grammar) (lrtable.Table, error) {
		ctx := context.Background()
		digest := cache.Digest(g)

		if data, ok, err := store.Load(ctx, digest); err != nil {
			log.Warn("parser cache load failed, rebuilding", "digest", digest, "error", err)
		} else if ok {
			log.Trace("parser cache hit", "digest", digest)
			return cache.NewPrecomputedTable(data), nil
		}

		table, err := lrtable.BuildCanonicalLR1(g)
		if err != nil {
			return nil, err
		}
		if err := store.Store(ctx, digest, cache.BuildTableData(table, g)); err != nil {
			log.Warn("parser cache store failed", "digest", digest, "error", err)
		}
		return table, nil
	}
}

// Store returns the underlying library.Store.
func (t *Toolbox) Store() *library.Store { return t.store }

// Grammar returns the grammar induced from the library at construction
// time. It is not re-induced if the store is mutated afterward; callers
// that add assertions to a Toolbox's store should construct a new Toolbox
// to pick up the change, mirroring the original's compute_everything being
// a one-shot, constructor-time pass.
func (t *Toolbox) Grammar() *grammar.Grammar { return t.g }

// Matcher returns the Toolbox's assertion matcher.
func (t *Toolbox) Matcher() *matcher.Matcher { return t.m }

// Pool returns the Toolbox's temporary-variable allocator.
func (t *Toolbox) Pool() *subst.Pool { return t.pool }

// Registry returns the Toolbox's registered-prover cache.
func (t *Toolbox) Registry() *registry.Cache { return t.regs }

// NewProofEngine returns a proof.Engine proving target against this
// Toolbox's library, sharing its logger.
func (t *Toolbox) NewProofEngine(target *library.Assertion) *proof.Engine {
	return proof.New(t.store, target, proof.Options{Logger: t.log})
}

// UnifyAssertion searches the library for assertions matching the given
// goal, using this Toolbox's configured up_to_hyps_perms default when
// upToHypsPerms is not overridden by the caller.
func (t *Toolbox) UnifyAssertion(hypSentences []library.Sentence, thesisSentence library.Sentence, justFirst bool) ([]matcher.Match, error) {
	return t.m.UnifyAssertion(hypSentences, thesisSentence, justFirst, t.cfg.UpToHypsPerms)
}
