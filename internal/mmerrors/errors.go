// Package mmerrors defines the error taxonomy shared by every package in
// the toolbox: sentinel kinds usable with errors.Is, and detail-carrying
// wrappers usable with errors.As.
package mmerrors

import "fmt"

// Sentinel kinds. Wrap these with fmt.Errorf("...: %w", Kind) or use the
// constructors below when a kind carries structured detail.
var (
	ErrDuplicateIdentifier = sentinel("duplicate identifier")
	ErrUnknownIdentifier = sentinel("unknown identifier")
	ErrInvalidName = sentinel("invalid name")
	ErrParseFailure = sentinel("parse failure")
	ErrUnificationFailure = sentinel("unification failure")
	ErrNoMatchingAssertion = sentinel("no matching assertion")
	ErrVariableCapture = sentinel("variable capture")
	ErrNDCheckFailure = sentinel("natural deduction check failure")
	ErrCacheStore = sentinel("parser cache store error")
)

type sentinelError string

func sentinel(msg string) error { return sentinelError(msg) }

func (e sentinelError) Error() string { return string(e) }

// identifierError wraps ErrDuplicateIdentifier/ErrUnknownIdentifier/
// ErrInvalidName with the offending name.
type identifierError struct {
	kind error
	name string
}

func (e *identifierError) Error() string {
	return fmt.Sprintf("%s: %q", e.kind.Error(), e.name)
}

func (e *identifierError) Unwrap() error { return e.kind }

// DuplicateIdentifier reports that name is already registered in a symbol
// or label table.
func DuplicateIdentifier(name string) error {
	return &identifierError{kind: ErrDuplicateIdentifier, name: name}
}

// UnknownIdentifier reports that name has no entry in a symbol or label
// table.
func UnknownIdentifier(name string) error {
	return &identifierError{kind: ErrUnknownIdentifier, name: name}
}

// InvalidName reports that name is not well-formed for its role.
func InvalidName(name string) error {
	return &identifierError{kind: ErrInvalidName, name: name}
}

// ParseFailure reports the stream position at which parsing stopped
// matching an LR action, for fatal (library-build-time) parse errors. Parse
// failures encountered while parsing ordinary input are reported as a tree
// with a zero label rather than as an error; this type is for cases the
// caller has decided to treat as fatal.
type ParseFailure struct {
	Position int
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse failure at token stream position %d", e.Position)
}

func (e *ParseFailure) Unwrap() error { return ErrParseFailure }

// NewParseFailure constructs a ParseFailure at the given stream position.
func NewParseFailure(position int) error {
	return &ParseFailure{Position: position}
}

// ProofErrorReason enumerates the ways process_label can fail.
type ProofErrorReason int

const (
	StackUnderflow ProofErrorReason = iota
	FloatingTypeMismatch
	EssentialMismatch
	DistinctViolation
)

func (r ProofErrorReason) String() string {
	switch r {
	case StackUnderflow:
		return "StackUnderflow"
	case FloatingTypeMismatch:
		return "FloatingTypeMismatch"
	case EssentialMismatch:
		return "EssentialMismatch"
	case DistinctViolation:
		return "DistinctViolation"
	default:
		return "UnknownProofErrorReason"
	}
}

// ProofError is raised by the proof engine (C9) when process_label cannot
// validate a step. OnStack and ToSubst are the conflicting sentences (as
// opaque fmt.Stringers, to avoid an import cycle with ptree/library); both
// may be nil depending on Reason. SubstMap is likewise opaque.
type ProofError struct {
	Label uint32
	Reason ProofErrorReason
	OnStack fmt.Stringer
	ToSubst fmt.Stringer
	SubstMap fmt.Stringer
}

func (e *ProofError) Error() string {
	return fmt.Sprintf("proof error on label %d: %s", e.Label, e.Reason)
}

// NewProofError constructs a ProofError. OnStack, ToSubst, and SubstMap may
// be nil.
func NewProofError(label uint32, reason ProofErrorReason, onStack, toSubst, substMap fmt.Stringer) error {
	return &ProofError{Label: label, Reason: reason, OnStack: onStack, ToSubst: toSubst, SubstMap: substMap}
}

// NDCheckFailure reports which rule node of a natural-deduction proof
// failed structural validation.
type NDCheckFailure struct {
	NodeKind string
	Detail string
}

func (e *NDCheckFailure) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("natural deduction check failed at %s", e.NodeKind)
	}
	return fmt.Sprintf("natural deduction check failed at %s: %s", e.NodeKind, e.Detail)
}

func (e *NDCheckFailure) Unwrap() error { return ErrNDCheckFailure }

// NewNDCheckFailure constructs an NDCheckFailure for the given rule node
// kind (e.g. "AndIntro").
func NewNDCheckFailure(nodeKind, detail string) error {
	return &NDCheckFailure{NodeKind: nodeKind, Detail: detail}
}

// VariableCapture reports that AST.Replace crossed a binder that would
// capture a free variable of the replacement term.
type VariableCapture struct {
	BoundName string
	TermRepr string
}

func (e *VariableCapture) Error() string {
	return fmt.Sprintf("replacing with %s would capture bound variable %q", e.TermRepr, e.BoundName)
}

func (e *VariableCapture) Unwrap() error { return ErrVariableCapture }

// NewVariableCapture constructs a VariableCapture error.
func NewVariableCapture(boundName, termRepr string) error {
	return &VariableCapture{BoundName: boundName, TermRepr: termRepr}
}
