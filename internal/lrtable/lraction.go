package lrtable

import (
	"fmt"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
)

// LRActionType enumerates the actions an LR table entry can hold.
type LRActionType int

const (
	LRShift LRActionType = iota
	LRReduce
	LRAccept
	LRError
)

func (t LRActionType) String() string {
	switch t {
	case LRShift:
		return "shift"
	case LRReduce:
		return "reduce"
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}

// LRAction is one ACTION-table entry, grounded on the prior toolbox's
// parse/lraction.go LRAction.
type LRAction struct {
	Type LRActionType

	// Production and Symbol are populated when Type is LRReduce: Symbol is
	// the A of A -> beta, Production is beta.
	Production []grammar.Symbol
	Symbol grammar.Symbol

	// State is populated when Type is LRShift.
	State string
}

func (a LRAction) String() string {
	switch a.Type {
	case LRAccept:
		return "ACTION<accept>"
	case LRError:
		return "ACTION<error>"
	case LRReduce:
		return fmt.Sprintf("ACTION<reduce %s -> %v>", grammar.SymbolString(a.Symbol), a.Production)
	case LRShift:
		return fmt.Sprintf("ACTION<shift %s>", a.State)
	default:
		return "ACTION<unknown>"
	}
}

// Equal reports whether a and o are the same action.
func (a LRAction) Equal(o LRAction) bool {
	if a.Type != o.Type || a.Symbol != o.Symbol || a.State != o.State {
		return false
	}
	if len(a.Production) != len(o.Production) {
		return false
	}
	for i := range a.Production {
		if a.Production[i] != o.Production[i] {
			return false
		}
	}
	return true
}

func makeLRConflictError(act1, act2 LRAction, onInput grammar.Symbol) error {
	in := grammar.SymbolString(onInput)
	switch {
	case act1.Type == LRReduce && act2.Type == LRShift, act1.Type == LRShift && act2.Type == LRReduce:
		return fmt.Errorf("shift/reduce conflict detected on symbol %s", in)
	case act1.Type == LRReduce && act2.Type == LRReduce:
		return fmt.Errorf("reduce/reduce conflict detected on symbol %s", in)
	case act1.Type == LRAccept || act2.Type == LRAccept:
		return fmt.Errorf("accept conflict detected on symbol %s", in)
	default:
		return fmt.Errorf("LR action conflict on symbol %s (%s or %s)", in, act1.String(), act2.String())
	}
}
