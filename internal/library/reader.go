package library

// Reader is the external collaborator named in : it parses a
// database file and drives a Store through these calls. No concrete
// implementation lives in this module; readers are thin peripherals
// outside the core's scope.
type Reader interface {
	// Read parses the reader's own source and populates store via
	// CreateSymbol, CreateLabel,
	// AddSentence, AddAssertion, SetFinalStackFrame, SetAddendum, and
	// SetParsingAddendum, in whatever order the source format dictates.
	Read(store *Store) error
}

// Addendum carries the trailing $a-like Metamath addendum (notation table
// for the grammar's ambiguity-resolution hints). It is opaque to the core:
// readers populate it, the grammar extractor does not currently consume
// it (derives the grammar purely from floating hypotheses and
// hypothesis-free axioms), but it is retained so a Reader implementation
// has somewhere to put it.
type Addendum struct {
	Raw string
}

// ParsingAddendum carries reader-supplied parsing hints (e.g. explicit
// ambiguity-breaking rules) analogous to the original's $j parsing
// addendum comments. Opaque for the same reason as Addendum.
type ParsingAddendum struct {
	Raw string
}

// SetAddendum records a as the store's addendum.
func (s *Store) SetAddendum(a Addendum) { s.addendum = a }

// SetParsingAddendum records a as the store's parsing addendum.
func (s *Store) SetParsingAddendum(a ParsingAddendum) { s.parsingAddendum = a }
