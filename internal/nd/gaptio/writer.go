package gaptio

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
)

// Writer serializes terms, formulas, and sequents back into the GAPT wire
// format, the dual of Reader — used by convert-to-tstp-adjacent tooling
// and by round-trip tests, since original_source/provers/gapt.cpp's
// human-readable print_sequent/print_ndsequent (unicode turnstile) is a
// separate, display-only concern not reused here.
type Writer struct {
	w io.Writer
	err error
	started bool
}

// NewWriter wraps w, space-separating every token written.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (w *Writer) word(s string) {
	if w.err != nil {
		return
	}
	if w.started {
		_, w.err = io.WriteString(w.w, " ")
		if w.err != nil {
			return
		}
	}
	w.started = true
	_, w.err = io.WriteString(w.w, s)
}

// Err returns the first write error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Term writes one <term> production.
func (w *Writer) Term(t *ast.Term) {
	switch t.Kind {
	case ast.KindVariable:
		w.word("var")
		w.word(t.Name)
	case ast.KindFunctor:
		w.word("unint")
		w.word(t.Name)
		w.word(strconv.Itoa(len(t.Args)))
		for _, a := range t.Args {
			w.Term(a)
		}
	}
}

// Formula writes one <formula> production.
func (w *Writer) Formula(f *ast.Formula) {
	switch f.Kind {
	case ast.KindTrue:
		w.word("true")
	case ast.KindFalse:
		w.word("false")
	case ast.KindNot:
		w.word("not")
		w.Formula(f.Sub)
	case ast.KindForall:
		w.word("forall")
		w.word("var")
		w.word(f.Var)
		w.Formula(f.Sub)
	case ast.KindExists:
		w.word("exists")
		w.word("var")
		w.word(f.Var)
		w.Formula(f.Sub)
	case ast.KindAnd:
		w.word("and")
		w.Formula(f.Left)
		w.Formula(f.Right)
	case ast.KindOr:
		w.word("or")
		w.Formula(f.Left)
		w.Formula(f.Right)
	case ast.KindImplies:
		w.word("imp")
		w.Formula(f.Left)
		w.Formula(f.Right)
	case ast.KindPredicate:
		w.word("unint")
		w.word(f.Name)
		w.word(strconv.Itoa(len(f.Args)))
		for _, a := range f.Args {
			w.Term(a)
		}
	default:
		if w.err == nil {
			w.err = fmt.Errorf("gaptio: formula kind %d has no GAPT wire encoding", f.Kind)
		}
	}
}

// Sequent writes <n_ant> {<formula>}*n_ant <n_suc> {<formula>}*n_suc.
func (w *Writer) Sequent(ants, sucs []*ast.Formula) {
	w.word(strconv.Itoa(len(ants)))
	for _, f := range ants {
		w.Formula(f)
	}
	w.word(strconv.Itoa(len(sucs)))
	for _, f := range sucs {
		w.Formula(f)
	}
}
