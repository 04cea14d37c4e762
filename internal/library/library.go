// Package library is the store for a loaded formal-proof database (C2):
// interned symbols and labels, the constant/variable partition, the
// sentence table, the assertion table, and per-assertion metadata. It is
// deliberately ignorant of grammar extraction, parsing, and proving —
// those live in the grammar, automaton, lrtable, and proof packages, wired
// together by the toolbox package.
package library

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// Sentence is an ordered sequence of symbol tokens. Position 0 is a type
// constant.
type Sentence []symtab.SymTok

// Type returns the type constant at position 0. Panics on an empty
// sentence; callers own the invariant that every stored sentence is
// non-empty.
func (s Sentence) Type() symtab.SymTok { return s[0] }

// Tail returns the sentence with its leading type constant removed.
func (s Sentence) Tail() Sentence { return s[1:] }

// Equal reports whether s and o have identical tokens.
func (s Sentence) Equal(o Sentence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders s as its raw token ids, for diagnostics (e.g. inside a
// ProofError) where resolving names would require threading a Store
// through.
func (s Sentence) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, t := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(uint64(t), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// VarPair is an unordered, canonically-ordered (a<b) pair of variable
// labels forming a distinct-variable constraint.
type VarPair struct {
	A, B symtab.LabTok
}

// NewVarPair canonicalizes (a,b) so that A<B. Returns an error if a==b,
// since equal pairs are forbidden (invariant 5).
func NewVarPair(a, b symtab.LabTok) (VarPair, error) {
	if a == b {
		return VarPair{}, mmerrors.InvalidName("distinct-variable pair with equal endpoints")
	}
	if a > b {
		a, b = b, a
	}
	return VarPair{A: a, B: b}, nil
}

// Assertion is a library entry declaring either an axiom or a theorem.
type Assertion struct {
	Valid bool
	IsTheorem bool
	FloatHyps []symtab.LabTok // ordered, appearance order
	EssHyps []symtab.LabTok // ordered
	OptHyps map[symtab.LabTok]bool
	MandDV []VarPair
	OptDV []VarPair
	Thesis symtab.LabTok
	Number uint64 // monotonic sequence number
	Proof []symtab.LabTok
	Comment string
	ModifDisc bool // "(Proof modification is discouraged.)"
	UsageDisc bool // "(New usage is discouraged.)"
}

// MandHyps returns FloatHyps++EssHyps, preserving declaration order
// (invariant 6).
func (a *Assertion) MandHyps() []symtab.LabTok {
	out := make([]symtab.LabTok, 0, len(a.FloatHyps)+len(a.EssHyps))
	out = append(out, a.FloatHyps...)
	out = append(out, a.EssHyps...)
	return out
}

// Arity is the number of mandatory hypotheses, the number of stack entries
// process_label consumes for this assertion.
func (a *Assertion) Arity() int {
	return len(a.FloatHyps) + len(a.EssHyps)
}

// FloatDecl is one entry of a StackFrame: "variable v has type T".
type FloatDecl struct {
	Label symtab.LabTok
	Var symtab.SymTok
	Type symtab.SymTok
}

// StackFrame is the floating-hypothesis table active while a sentence,
// axiom, or theorem is being declared.
type StackFrame struct {
	Decls []FloatDecl
	Types map[symtab.SymTok]bool
}

// NewStackFrame returns an empty, ready-to-use StackFrame.
func NewStackFrame() *StackFrame {
	return &StackFrame{Types: map[symtab.SymTok]bool{}}
}

// Store is the mutable, incrementally-extendable library (the "owning"
// toolbox of original_source/mm/toolbox.cpp's LibraryToolbox). View wraps
// a Store to deny further mutation once the derived tables have been
// computed.
type Store struct {
	Symbols *symtab.Symbols
	Labels *symtab.Labels

	isConstant map[symtab.SymTok]bool

	sentences map[symtab.LabTok]Sentence
	assertions map[symtab.LabTok]*Assertion

	finalFrame *StackFrame
	addendum Addendum
	parsingAddendum ParsingAddendum
	nextNumber uint64

	varLabByVarSym map[symtab.SymTok]symtab.LabTok
	varSymByVarLab map[symtab.LabTok]symtab.SymTok
	typeByVarLab map[symtab.LabTok]symtab.SymTok

	turnstile symtab.SymTok

	finalized bool
}

// NewStore returns an empty Store with fresh symbol/label tables.
func NewStore() *Store {
	return &Store{
		Symbols: symtab.NewSymbols(),
		Labels: symtab.NewLabels(),
		isConstant: map[symtab.SymTok]bool{},
		sentences: map[symtab.LabTok]Sentence{},
		assertions: map[symtab.LabTok]*Assertion{},
		varLabByVarSym: map[symtab.SymTok]symtab.LabTok{},
		varSymByVarLab: map[symtab.LabTok]symtab.SymTok{},
		typeByVarLab: map[symtab.LabTok]symtab.SymTok{},
	}
}

// CreateSymbol interns name as a new symbol.
func (s *Store) CreateSymbol(name string) (symtab.SymTok, error) {
	return s.Symbols.Create(name)
}

// CreateLabel interns name as a new label.
func (s *Store) CreateLabel(name string) (symtab.LabTok, error) {
	return s.Labels.Create(name)
}

// SetConstant records whether sym is a constant (true) or a variable
// (false). Once set for a symbol the partition never changes (// invariant 2); SetConstant is idempotent for the same value but returns
// an error on an attempted flip.
func (s *Store) SetConstant(sym symtab.SymTok, isConst bool) error {
	if cur, ok := s.isConstant[sym]; ok && cur != isConst {
		return mmerrors.InvalidName("cannot change constant/variable partition after it is set")
	}
	s.isConstant[sym] = isConst
	return nil
}

// IsConstant reports whether sym was declared a constant. O(1) via an
// indexed boolean map mirroring this package's "indexed boolean vector".
func (s *Store) IsConstant(sym symtab.SymTok) bool {
	return s.isConstant[sym]
}

// DeclareVariable records label as a floating hypothesis "variable varSym
// has type typeSym", storing its two-token sentence [typeSym, varSym] and
// maintaining the bijective var_lab<->var_sym and var_lab/var_sym->type_sym
// maps required by invariant 3. Fails if varSym is already
// declared a constant, or if label or varSym already has a floating
// hypothesis.
func (s *Store) DeclareVariable(label symtab.LabTok, typeSym, varSym symtab.SymTok) error {
	if s.IsConstant(varSym) {
		return mmerrors.InvalidName("cannot declare a constant symbol as a floating variable")
	}
	if _, ok := s.varLabByVarSym[varSym]; ok {
		return mmerrors.DuplicateIdentifier("floating hypothesis for this variable symbol")
	}
	if _, ok := s.varSymByVarLab[label]; ok {
		return mmerrors.DuplicateIdentifier("floating hypothesis for this label")
	}
	_ = s.SetConstant(varSym, false)
	s.varLabByVarSym[varSym] = label
	s.varSymByVarLab[label] = varSym
	s.typeByVarLab[label] = typeSym
	s.AddSentence(label, Sentence{typeSym, varSym})
	return nil
}

// IsVariableLabel reports whether label was declared via DeclareVariable.
func (s *Store) IsVariableLabel(label symtab.LabTok) bool {
	_, ok := s.varSymByVarLab[label]
	return ok
}

// VariableLabels returns every label declared via DeclareVariable.
func (s *Store) VariableLabels() []symtab.LabTok {
	out := make([]symtab.LabTok, 0, len(s.varSymByVarLab))
	for lab := range s.varSymByVarLab {
		out = append(out, lab)
	}
	return out
}

// VarSymOf returns the variable symbol declared by the floating hypothesis
// label, and whether label is a floating hypothesis.
func (s *Store) VarSymOf(label symtab.LabTok) (symtab.SymTok, bool) {
	sym, ok := s.varSymByVarLab[label]
	return sym, ok
}

// VarLabelOf returns the floating-hypothesis label that declares varSym,
// and whether varSym has been declared.
func (s *Store) VarLabelOf(varSym symtab.SymTok) (symtab.LabTok, bool) {
	lab, ok := s.varLabByVarSym[varSym]
	return lab, ok
}

// TypeOfVarLabel returns the type symbol declared for the floating
// hypothesis label.
func (s *Store) TypeOfVarLabel(label symtab.LabTok) (symtab.SymTok, bool) {
	t, ok := s.typeByVarLab[label]
	return t, ok
}

// AddSentence stores tokens as the sentence for label, overwriting any
// prior sentence at that label (: "overwrite at vector index =
// label").
func (s *Store) AddSentence(label symtab.LabTok, tokens Sentence) {
	s.sentences[label] = tokens
}

// GetSentence returns the sentence stored for label, and whether one
// exists.
func (s *Store) GetSentence(label symtab.LabTok) (Sentence, bool) {
	sent, ok := s.sentences[label]
	return sent, ok
}

// AddAssertion stores a as the assertion for label, overwriting any prior
// assertion at that label, and stamps a.Number if unset.
func (s *Store) AddAssertion(label symtab.LabTok, a *Assertion) {
	if a.Number == 0 {
		s.nextNumber++
		a.Number = s.nextNumber
	}
	s.assertions[label] = a
}

// GetAssertion returns the assertion stored for label, and whether one
// exists.
func (s *Store) GetAssertion(label symtab.LabTok) (*Assertion, bool) {
	a, ok := s.assertions[label]
	return a, ok
}

// ResolveSymbol reverse-looks-up a symbol's name, distinguishing "absent"
// from "present empty" (empty names are rejected at creation, so any ok
// result is non-empty).
func (s *Store) ResolveSymbol(sym symtab.SymTok) (string, bool) {
	return s.Symbols.Resolve(sym)
}

// ResolveLabel reverse-looks-up a label's name.
func (s *Store) ResolveLabel(lab symtab.LabTok) (string, bool) {
	return s.Labels.Resolve(lab)
}

// SetTurnstile records the distinguished "this is a provable sequent"
// constant (conventionally "|-"), used by the grammar extractor to exclude
// turnstile-headed axioms from the induced CFG.
func (s *Store) SetTurnstile(sym symtab.SymTok) {
	s.turnstile = sym
}

// Turnstile returns the symbol set by SetTurnstile, or 0 if none was set.
func (s *Store) Turnstile() symtab.SymTok {
	return s.turnstile
}

// SetFinalStackFrame records the StackFrame active at end-of-load, used by
// readers (C6 "external interfaces") to hand off the floating-hypothesis
// context.
func (s *Store) SetFinalStackFrame(frame *StackFrame) {
	s.finalFrame = frame
}

// FinalStackFrame returns the StackFrame set by SetFinalStackFrame, or nil.
func (s *Store) FinalStackFrame() *StackFrame {
	return s.finalFrame
}

// ListAssertions returns the valid assertions, skipping invalid slots,
// ordered by Number (insertion order). The result is a slice built in full
// on every call, not a lazy sequence: all valid assertions are collected
// and sorted before it returns.
func (s *Store) ListAssertions() []LabeledAssertion {
	out := make([]LabeledAssertion, 0, len(s.assertions))
	for lab, a := range s.assertions {
		if !a.Valid {
			continue
		}
		out = append(out, LabeledAssertion{Label: lab, Assertion: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Assertion.Number < out[j].Assertion.Number })
	return out
}

// LabeledAssertion pairs an assertion with the label it is stored under.
type LabeledAssertion struct {
	Label symtab.LabTok
	Assertion *Assertion
}

// Finalize marks the store as having had its derived tables computed
// (compute_everything in original_source/mm/toolbox.cpp). Required before
// a View may be taken (: "invalid for use on a const/read-only
// view until precomputed").
func (s *Store) Finalize() {
	s.finalized = true
}

// View is a read-only facade over a finalized Store, matching
// original_source/mm/toolbox.cpp's distinction between an owning,
// incrementally-extendable toolbox and a const view used for proving. Its
// methods are the read-only subset of Store's.
type View struct {
	store *Store
}

// NewView wraps store as a read-only View. Panics if store has not been
// finalized, since an unfinalized store's derived tables (grammar,
// registered-prover bindings) are not yet safe to consume.
func NewView(store *Store) *View {
	if !store.finalized {
		panic("library: cannot create a View of a Store that has not been Finalized")
	}
	return &View{store: store}
}

func (v *View) GetSentence(label symtab.LabTok) (Sentence, bool) { return v.store.GetSentence(label) }
func (v *View) GetAssertion(label symtab.LabTok) (*Assertion, bool) { return v.store.GetAssertion(label) }
func (v *View) IsConstant(sym symtab.SymTok) bool { return v.store.IsConstant(sym) }
func (v *View) ResolveSymbol(sym symtab.SymTok) (string, bool) { return v.store.ResolveSymbol(sym) }
func (v *View) ResolveLabel(lab symtab.LabTok) (string, bool) { return v.store.ResolveLabel(lab) }
func (v *View) ListAssertions() []LabeledAssertion { return v.store.ListAssertions() }
func (v *View) FinalStackFrame() *StackFrame { return v.store.FinalStackFrame() }
func (v *View) Symbols() *symtab.Symbols { return v.store.Symbols }
func (v *View) Labels() *symtab.Labels { return v.store.Labels }
