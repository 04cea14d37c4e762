// Package symtab is the bidirectional string<->small-integer interner
// underlying every other component: symbols (SymTok) and labels (LabTok)
// are never compared or stored as strings once interned, the way the
// teacher's lexer/grammar packages intern token classes by ID.
package symtab

import "github.com/dekarrin/mmtoolbox/internal/mmerrors"

// SymTok is the interned identifier of a symbol. 0 is reserved and never
// returned by CreateSymbol.
type SymTok uint16

// LabTok is the interned identifier of a label. 0 is reserved and never
// returned by CreateLabel.
type LabTok uint32

// Symbols is a bidirectional, append-only symbol table. Construct one with
// NewSymbols; the zero value has no map and panics on Create.
type Symbols struct {
	names []string // index 0 unused (sentinel)
	ids map[string]SymTok
}

// NewSymbols returns a ready-to-use, empty Symbols table.
func NewSymbols() *Symbols {
	return &Symbols{names: []string{""}, ids: map[string]SymTok{}}
}

// Create appends name as a new symbol and returns its SymTok. Fails with
// mmerrors.ErrDuplicateIdentifier if name is already present.
func (s *Symbols) Create(name string) (SymTok, error) {
	if name == "" {
		return 0, mmerrors.InvalidName(name)
	}
	if _, ok := s.ids[name]; ok {
		return 0, mmerrors.DuplicateIdentifier(name)
	}
	id := SymTok(len(s.names))
	s.names = append(s.names, name)
	s.ids[name] = id
	return id, nil
}

// GetOrCreate returns the existing SymTok for name, creating one if absent.
func (s *Symbols) GetOrCreate(name string) SymTok {
	if id, ok := s.ids[name]; ok {
		return id
	}
	id, err := s.Create(name)
	if err != nil {
		panic("symtab: unreachable: " + err.Error())
	}
	return id
}

// Resolve returns the name for id. The bool is false if id is absent (0 or
// out of range), distinguishing "absent" from a present-but-empty name
// (which cannot occur since Create rejects empty names).
func (s *Symbols) Resolve(id SymTok) (string, bool) {
	if id == 0 || int(id) >= len(s.names) {
		return "", false
	}
	return s.names[id], true
}

// Lookup returns the SymTok for name, or (0, false) if name is unknown.
func (s *Symbols) Lookup(name string) (SymTok, bool) {
	id, ok := s.ids[name]
	return id, ok
}

// Len returns the number of interned symbols, not counting the sentinel.
func (s *Symbols) Len() int { return len(s.names) - 1 }

// Labels is a bidirectional, append-only label table, structurally
// identical to Symbols but keyed on the wider LabTok.
type Labels struct {
	names []string
	ids map[string]LabTok
}

// NewLabels returns a ready-to-use, empty Labels table.
func NewLabels() *Labels {
	return &Labels{names: []string{""}, ids: map[string]LabTok{}}
}

// Create appends name as a new label and returns its LabTok.
func (l *Labels) Create(name string) (LabTok, error) {
	if name == "" {
		return 0, mmerrors.InvalidName(name)
	}
	if _, ok := l.ids[name]; ok {
		return 0, mmerrors.DuplicateIdentifier(name)
	}
	id := LabTok(len(l.names))
	l.names = append(l.names, name)
	l.ids[name] = id
	return id, nil
}

// GetOrCreate returns the existing LabTok for name, creating one if absent.
func (l *Labels) GetOrCreate(name string) LabTok {
	if id, ok := l.ids[name]; ok {
		return id
	}
	id, err := l.Create(name)
	if err != nil {
		panic("symtab: unreachable: " + err.Error())
	}
	return id
}

// Resolve returns the name for id, and whether id is present.
func (l *Labels) Resolve(id LabTok) (string, bool) {
	if id == 0 || int(id) >= len(l.names) {
		return "", false
	}
	return l.names[id], true
}

// Lookup returns the LabTok for name, or (0, false) if name is unknown.
func (l *Labels) Lookup(name string) (LabTok, bool) {
	id, ok := l.ids[name]
	return id, ok
}

// Len returns the number of interned labels, not counting the sentinel.
func (l *Labels) Len() int { return len(l.names) - 1 }
