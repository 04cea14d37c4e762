package subst

import (
	"fmt"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/mmlog"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/hashicorp/go-hclog"
)

// tempVar is one allocated temporary variable: its symbol, the floating
// hypothesis label that declares it, and its type.
type tempVar struct {
	sym symtab.SymTok
	label symtab.LabTok
	typ symtab.SymTok
}

// Options configures a Pool. The zero value is ready to use.
type Options struct {
	Logger hclog.Logger
}

// Pool allocates temporary (α-rename-only) variables in nested, LIFO-scoped
// frames, grounded on original_source/provers/subst.cpp's temp-var frame
// stack. Each allocation mints a fresh symbol/label via the
// store and registers a new "T -> sym" production in the grammar, exactly
// as a library-declared floating hypothesis would, so downstream parsing
// and substitution treat temp vars uniformly with real ones.
type Pool struct {
	store *library.Store
	g *grammar.Grammar
	log hclog.Logger

	highWater map[symtab.SymTok]int
	free map[symtab.SymTok][]tempVar
	frames [][]tempVar // stack of "vars touched since this frame was pushed"
}

// New returns a Pool minting fresh variables into store and g.
func New(store *library.Store, g *grammar.Grammar, opts Options) *Pool {
	return &Pool{
		store: store,
		g: g,
		log: mmlog.OrNull(opts.Logger),
		highWater: map[symtab.SymTok]int{},
		free: map[symtab.SymTok][]tempVar{},
	}
}

// PushFrame opens a new temp-var scope.
func (p *Pool) PushFrame() {
	p.frames = append(p.frames, nil)
}

// ReleaseFrame closes the most recently pushed scope, returning every
// variable touched since its push to the per-type free list so a later
// NewTempVar can reuse it. Panics if called with no open frame, matching
// the prior toolbox's "scoped resource acquisition" convention of trusting
// callers to balance push/release.
func (p *Pool) ReleaseFrame() {
	n := len(p.frames)
	if n == 0 {
		panic("subst: ReleaseFrame called with no open frame")
	}
	touched := p.frames[n-1]
	p.frames = p.frames[:n-1]

	seen := map[symtab.SymTok]bool{}
	for _, tv := range touched {
		if seen[tv.sym] {
			continue
		}
		seen[tv.sym] = true
		p.free[tv.typ] = append(p.free[tv.typ], tv)
	}
}

// NewTempVar allocates a temporary variable of type T, reusing one from the
// free list if available, otherwise minting a fresh symbol/label named
// "<T><n>" and registering it as a T -> sym production. Returns a
// ptree.Tree referencing it, in the same shape a floating hypothesis
// reduction produces: a node labeled with the variable's floating
// hypothesis label wrapping a single Label-0 leaf carrying the raw symbol.
func (p *Pool) NewTempVar(typ symtab.SymTok) *ptree.Tree {
	var tv tempVar

	if free := p.free[typ]; len(free) > 0 {
		tv = free[len(free)-1]
		p.free[typ] = free[:len(free)-1]
	} else {
		tv = p.mint(typ)
	}

	if n := len(p.frames); n > 0 {
		p.frames[n-1] = append(p.frames[n-1], tv)
	}

	return &ptree.Tree{
		Label: tv.label,
		Type: typ,
		Children: []*ptree.Tree{{Label: 0, Type: tv.sym}},
	}
}

func (p *Pool) mint(typ symtab.SymTok) tempVar {
	p.highWater[typ]++
	n := p.highWater[typ]

	typeName, _ := p.store.ResolveSymbol(typ)
	symName := fmt.Sprintf("%s%d", typeName, n)
	labName := fmt.Sprintf("%sT%d", typeName, n)

	sym, err := p.store.CreateSymbol(symName)
	if err != nil {
		panic(err) // names are derived from a monotonic counter; collisions are a bug
	}
	label, err := p.store.CreateLabel(labName)
	if err != nil {
		panic(err)
	}
	if err := p.store.DeclareVariable(label, typ, sym); err != nil {
		panic(err)
	}
	if err := p.g.AddRule(grammar.Derivation{
		Label: label,
		NonTerminal: typ,
		RHS: []grammar.Symbol{sym},
		IsVariable: true,
		Var: sym,
	}); err != nil {
		panic(err)
	}

	p.log.Trace("minted temp var", "type", typeName, "symbol", symName, "label", labName)
	return tempVar{sym: sym, label: label, typ: typ}
}

// BuildRefreshingSubstMap allocates one fresh temp var per entry of vars
// and returns the map from each original variable label to a leaf tree for
// its replacement.
func (p *Pool) BuildRefreshingSubstMap(vars []symtab.LabTok) Map {
	m := make(Map, len(vars))
	for _, v := range vars {
		typ, ok := p.store.TypeOfVarLabel(v)
		if !ok {
			continue
		}
		m[v] = p.NewTempVar(typ)
	}
	return m
}

// RefreshAssertion applies one refreshing substitution map, built from
// a's floating hypotheses, to hypTrees and thesisTree, guaranteeing the
// thesis and every hypothesis share the same renaming.
func RefreshAssertion(p *Pool, a *library.Assertion, hypTrees []*ptree.Tree, thesisTree *ptree.Tree) ([]*ptree.Tree, *ptree.Tree) {
	m := p.BuildRefreshingSubstMap(a.FloatHyps)
	isVar := p.store.IsVariableLabel

	freshHyps := make([]*ptree.Tree, len(hypTrees))
	for i, h := range hypTrees {
		freshHyps[i] = Substitute(h, isVar, m)
	}
	freshThesis := Substitute(thesisTree, isVar, m)
	return freshHyps, freshThesis
}
