// Package proof implements the stack-machine proof engine (C9), grounded
// on original_source/mm/proof.cpp's ProofEngine and on the prior toolbox's
// explicit checkpoint/commit/rollback-free style generalized here into a
// nested LIFO transaction stack, "exceptions for control
// flow -> result types" redesign note.
package proof

import (
	"fmt"

	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/mmlog"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/hashicorp/go-hclog"
)

// Options configures an Engine. The zero value is ready to use.
type Options struct {
	Logger hclog.Logger
}

type checkpoint struct {
	stack []library.Sentence
	logLen int
}

// substStringer renders a var-symbol-keyed substitution for inclusion in a
// ProofError, satisfying fmt.Stringer without introducing an import cycle
// between mmerrors and library.
type substStringer map[symtab.SymTok]library.Sentence

func (s substStringer) String() string {
	out := "{"
	first := true
	for sym, sent := range s {
		if !first {
			out += ", "
		}
		first = false
		out += fmt.Sprintf("%d:%s", sym, sent.String())
	}
	return out + "}"
}

// Engine is a stack machine that replays a sequence of process_label calls
// against a fixed target assertion.
type Engine struct {
	store *library.Store
	target *library.Assertion
	callerDV map[library.VarPair]bool
	visible map[symtab.LabTok]bool // target's mandatory hyp labels
	log hclog.Logger

	stack []library.Sentence
	processed []symtab.LabTok
	checkpoints []checkpoint
}

// New returns an Engine that proves target, whose mandatory hypotheses
// (float and essential) are the labels process_label may push directly,
// and whose distinct-variable sets bound the "caller's dv-set" checked on
// every reduction.
func New(store *library.Store, target *library.Assertion, opts Options) *Engine {
	visible := map[symtab.LabTok]bool{}
	for _, h := range target.MandHyps() {
		visible[h] = true
	}
	dv := map[library.VarPair]bool{}
	for _, p := range target.MandDV {
		dv[p] = true
	}
	for _, p := range target.OptDV {
		dv[p] = true
	}
	return &Engine{
		store: store,
		target: target,
		callerDV: dv,
		visible: visible,
		log: mmlog.OrNull(opts.Logger),
	}
}

// push places sent directly on the stack without logging a processed
// label, for seeding an Engine with hypothesis instances a caller has
// already resolved.
func (e *Engine) push(sent library.Sentence) error {
	e.stack = append(e.stack, sent)
	return nil
}

// Stack returns the current stack contents, top last.
func (e *Engine) Stack() []library.Sentence {
	out := make([]library.Sentence, len(e.stack))
	copy(out, e.stack)
	return out
}

// Checkpoint opens a nested transaction.
func (e *Engine) Checkpoint() {
	e.checkpoints = append(e.checkpoints, checkpoint{stack: e.Stack(), logLen: len(e.processed)})
}

// Commit closes the innermost open transaction, keeping its effects.
func (e *Engine) Commit() {
	n := len(e.checkpoints)
	if n == 0 {
		panic("proof: Commit called with no open checkpoint")
	}
	e.checkpoints = e.checkpoints[:n-1]
}

// Rollback undoes every effect since the innermost open transaction and
// closes it.
func (e *Engine) Rollback() {
	n := len(e.checkpoints)
	if n == 0 {
		panic("proof: Rollback called with no open checkpoint")
	}
	cp := e.checkpoints[n-1]
	e.checkpoints = e.checkpoints[:n-1]
	e.stack = cp.stack
	e.processed = e.processed[:cp.logLen]
}

// Done reports whether the stack holds exactly the target's thesis, the
// success condition at the end of a proof.
func (e *Engine) Done() bool {
	if len(e.stack) != 1 {
		return false
	}
	thesis, ok := e.store.GetSentence(e.target.Thesis)
	return ok && thesis.Equal(e.stack[0])
}

func varsOf(store *library.Store, s library.Sentence) map[symtab.SymTok]bool {
	out := map[symtab.SymTok]bool{}
	for _, tok := range s {
		if !store.IsConstant(tok) {
			out[tok] = true
		}
	}
	return out
}

func applySubst(s library.Sentence, m map[symtab.SymTok]library.Sentence) library.Sentence {
	out := make(library.Sentence, 0, len(s))
	for _, tok := range s {
		if repl, ok := m[tok]; ok {
			out = append(out, repl...)
		} else {
			out = append(out, tok)
		}
	}
	return out
}

// ProcessLabel replays one proof step. If label is one of
// the target's mandatory hypotheses, its sentence is pushed directly;
// otherwise label must name an assertion, whose floating hypotheses infer
// a substitution from the top of the stack, whose essential hypotheses are
// checked against that substitution, and whose mandatory distinct-variable
// constraints are checked against the caller's dv-set, before the
// substituted thesis is pushed in place of its arguments.
func (e *Engine) ProcessLabel(label symtab.LabTok) error {
	if e.visible[label] {
		sent, ok := e.store.GetSentence(label)
		if !ok {
			return mmerrors.UnknownIdentifier(fmt.Sprintf("hypothesis label %d", label))
		}
		e.stack = append(e.stack, sent)
		e.processed = append(e.processed, label)
		return nil
	}

	a, ok := e.store.GetAssertion(label)
	if !ok || !a.Valid {
		return mmerrors.UnknownIdentifier(fmt.Sprintf("assertion label %d", label))
	}

	m := a.Arity()
	if len(e.stack) < m {
		return mmerrors.NewProofError(uint32(label), mmerrors.StackUnderflow, nil, nil, nil)
	}
	frame := e.stack[len(e.stack)-m:]

	varSubst := map[symtab.SymTok]library.Sentence{}
	for i, floatLabel := range a.FloatHyps {
		sigma := frame[i]
		expectedType, _ := e.store.TypeOfVarLabel(floatLabel)
		if len(sigma) == 0 || sigma.Type() != expectedType {
			return mmerrors.NewProofError(uint32(label), mmerrors.FloatingTypeMismatch, sigma, nil, nil)
		}
		varSym, _ := e.store.VarSymOf(floatLabel)
		varSubst[varSym] = sigma.Tail()
	}

	for i, essLabel := range a.EssHyps {
		sigma := frame[len(a.FloatHyps)+i]
		essSent, ok := e.store.GetSentence(essLabel)
		if !ok {
			return mmerrors.UnknownIdentifier(fmt.Sprintf("essential hypothesis label %d", essLabel))
		}
		expected := applySubst(essSent, varSubst)
		if !expected.Equal(sigma) {
			return mmerrors.NewProofError(uint32(label), mmerrors.EssentialMismatch, sigma, expected, substStringer(varSubst))
		}
	}

	for _, pair := range a.MandDV {
		aSent, hasA := varSubst[mustVarSym(e.store, pair.A)]
		bSent, hasB := varSubst[mustVarSym(e.store, pair.B)]
		if !hasA || !hasB {
			continue
		}
		A := varsOf(e.store, aSent)
		B := varsOf(e.store, bSent)
		for av := range A {
			for bv := range B {
				if av == bv {
					return mmerrors.NewProofError(uint32(label), mmerrors.DistinctViolation, nil, nil, substStringer(varSubst))
				}
				labA, okA := e.store.VarLabelOf(av)
				labB, okB := e.store.VarLabelOf(bv)
				if !okA || !okB {
					continue
				}
				vp, err := library.NewVarPair(labA, labB)
				if err != nil {
					continue
				}
				if !e.callerDV[vp] {
					return mmerrors.NewProofError(uint32(label), mmerrors.DistinctViolation, nil, nil, substStringer(varSubst))
				}
			}
		}
	}

	thesisSent, ok := e.store.GetSentence(a.Thesis)
	if !ok {
		return mmerrors.UnknownIdentifier(fmt.Sprintf("thesis of assertion %d", label))
	}
	newSent := applySubst(thesisSent, varSubst)

	e.stack = e.stack[:len(e.stack)-m]
	e.stack = append(e.stack, newSent)
	e.processed = append(e.processed, label)

	e.log.Trace("processed label", "label", label, "stack depth", len(e.stack))
	return nil
}

func mustVarSym(store *library.Store, varLabel symtab.LabTok) symtab.SymTok {
	sym, _ := store.VarSymOf(varLabel)
	return sym
}
