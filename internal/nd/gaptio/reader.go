// Package gaptio reads and writes the GAPT natural-deduction proof wire
// format : a deterministic, whitespace-separated token stream
// describing a sequent followed recursively by a named rule and its
// arguments, grounded on original_source/provers/gapt.cpp's
// istream-based `parse_gapt_*` functions.
package gaptio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/dekarrin/mmtoolbox/internal/nd"
	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
)

// Reader tokenizes a GAPT wire stream one whitespace-separated word at a
// time, mirroring the original's `istream >> token` reads.
type Reader struct {
	sc *bufio.Scanner
}

// NewReader wraps r in word-at-a-time scanning.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Reader{sc: sc}
}

func (r *Reader) token() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("gaptio: %w", io.ErrUnexpectedEOF)
	}
	return r.sc.Text(), nil
}

func (r *Reader) int() (int, error) {
	tok, err := r.token()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("gaptio: expected integer, got %q: %w", tok, err)
	}
	return n, nil
}

// Term reads one <term> production.
func (r *Reader) Term() (*ast.Term, error) {
	typ, err := r.token()
	if err != nil {
		return nil, err
	}
	switch typ {
	case "var":
		name, err := r.token()
		if err != nil {
			return nil, err
		}
		return ast.Variable(name), nil
	case "unint":
		return r.functorArgs()
	default:
		return nil, fmt.Errorf("gaptio: invalid term type %q", typ)
	}
}

func (r *Reader) functorArgs() (*ast.Term, error) {
	name, err := r.token()
	if err != nil {
		return nil, err
	}
	n, err := r.int()
	if err != nil {
		return nil, err
	}
	args := make([]*ast.Term, n)
	for i := range args {
		if args[i], err = r.Term(); err != nil {
			return nil, err
		}
	}
	return ast.Functor(name, args...), nil
}

// Variable reads a <term> production and requires it to be a "var", for
// quantifier/eigenvariable slots (mirrors the original's
// dynamic_pointer_cast<Variable> checks, which raise invalid_argument on
// a non-variable term).
func (r *Reader) Variable() (string, error) {
	t, err := r.Term()
	if err != nil {
		return "", err
	}
	if t.Kind != ast.KindVariable {
		return "", fmt.Errorf("gaptio: expected variable term, got functor %q", t.Name)
	}
	return t.Name, nil
}

// Formula reads one <formula> production.
func (r *Reader) Formula() (*ast.Formula, error) {
	typ, err := r.token()
	if err != nil {
		return nil, err
	}
	switch typ {
	case "true":
		return ast.True(), nil
	case "false":
		return ast.False(), nil
	case "not":
		sub, err := r.Formula()
		if err != nil {
			return nil, err
		}
		return ast.Not(sub), nil
	case "forall", "exists":
		v, err := r.Variable()
		if err != nil {
			return nil, err
		}
		body, err := r.Formula()
		if err != nil {
			return nil, err
		}
		if typ == "forall" {
			return ast.Forall(v, body), nil
		}
		return ast.Exists(v, body), nil
	case "and", "or", "imp":
		l, err := r.Formula()
		if err != nil {
			return nil, err
		}
		rhs, err := r.Formula()
		if err != nil {
			return nil, err
		}
		switch typ {
		case "and":
			return ast.And(l, rhs), nil
		case "or":
			return ast.Or(l, rhs), nil
		default:
			return ast.Implies(l, rhs), nil
		}
	case "unint":
		name, err := r.token()
		if err != nil {
			return nil, err
		}
		n, err := r.int()
		if err != nil {
			return nil, err
		}
		args := make([]*ast.Term, n)
		for i := range args {
			if args[i], err = r.Term(); err != nil {
				return nil, err
			}
		}
		return ast.Predicate(name, args...), nil
	default:
		return nil, fmt.Errorf("gaptio: invalid formula type %q", typ)
	}
}

// Sequent reads <n_ant> {<formula>}*n_ant <n_suc> {<formula>}*n_suc.
func (r *Reader) Sequent() (ants, sucs []*ast.Formula, err error) {
	nAnt, err := r.int()
	if err != nil {
		return nil, nil, err
	}
	ants = make([]*ast.Formula, nAnt)
	for i := range ants {
		if ants[i], err = r.Formula(); err != nil {
			return nil, nil, err
		}
	}
	nSuc, err := r.int()
	if err != nil {
		return nil, nil, err
	}
	sucs = make([]*ast.Formula, nSuc)
	for i := range sucs {
		if sucs[i], err = r.Formula(); err != nil {
			return nil, nil, err
		}
	}
	return ants, sucs, nil
}

// NDSequent reads a Sequent and requires exactly one succedent, matching
// original_source/provers/gapt.cpp's parse_gapt_ndsequent.
func (r *Reader) NDSequent() (nd.Sequent, error) {
	ants, sucs, err := r.Sequent()
	if err != nil {
		return nd.Sequent{}, err
	}
	if len(sucs) != 1 {
		return nd.Sequent{}, fmt.Errorf("gaptio: sequent has %d succedents, want exactly 1", len(sucs))
	}
	return nd.Sequent{Antecedents: ants, Succedents: sucs}, nil
}

// Rule reads one `<sequent> <rule_name> <rule_args...>` proof node,
// recursing into its subproofs, per original_source's parse_gapt_proof.
// Wire-format antecedent indices (ExcludedMiddle, ExistsElim) are
// resolved into the referenced formulas/index fields nd.Rule expects
// once the relevant subproof has been parsed.
func (r *Reader) Rule() (*nd.Rule, error) {
	thesis, err := r.NDSequent()
	if err != nil {
		return nil, err
	}
	kind, err := r.token()
	if err != nil {
		return nil, err
	}
	switch kind {
	case "LogicalAxiom":
		form, err := r.Formula()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindLogicalAxiom, Thesis: thesis, Form: form}, nil

	case "Weakening":
		form, err := r.Formula()
		if err != nil {
			return nil, err
		}
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindWeakening, Thesis: thesis, Form: form, Sub: sub}, nil

	case "Contraction":
		i, err := r.int()
		if err != nil {
			return nil, err
		}
		j, err := r.int()
		if err != nil {
			return nil, err
		}
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindContraction, Thesis: thesis, I: i, J: j, Sub: sub}, nil

	case "BottomElim":
		form, err := r.Formula()
		if err != nil {
			return nil, err
		}
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindBottomElim, Thesis: thesis, Form: form, Sub: sub}, nil

	case "ExcludedMiddle":
		leftIdx, err := r.int()
		if err != nil {
			return nil, err
		}
		_, err = r.int() // right_idx: the excluded middle's negation is derived from Form, see below
		if err != nil {
			return nil, err
		}
		left, err := r.Rule()
		if err != nil {
			return nil, err
		}
		right, err := r.Rule()
		if err != nil {
			return nil, err
		}
		if leftIdx < 0 || leftIdx >= len(left.Thesis.Antecedents) {
			return nil, fmt.Errorf("gaptio: ExcludedMiddle left index %d out of range", leftIdx)
		}
		return &nd.Rule{
			Kind: nd.KindExcludedMiddle,
			Thesis: thesis,
			Form: left.Thesis.Antecedents[leftIdx],
			Left: left,
			Right: right,
		}, nil

	case "ImpIntro":
		antIdx, err := r.int()
		if err != nil {
			return nil, err
		}
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindImpIntro, Thesis: thesis, AntIdx: antIdx, Sub: sub}, nil

	case "ImpElim":
		left, err := r.Rule()
		if err != nil {
			return nil, err
		}
		right, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindImpElim, Thesis: thesis, Left: left, Right: right}, nil

	case "AndIntro":
		left, err := r.Rule()
		if err != nil {
			return nil, err
		}
		right, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindAndIntro, Thesis: thesis, Left: left, Right: right}, nil

	case "AndElim1":
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindAndElim1, Thesis: thesis, Sub: sub}, nil

	case "AndElim2":
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindAndElim2, Thesis: thesis, Sub: sub}, nil

	case "NegElim":
		left, err := r.Rule()
		if err != nil {
			return nil, err
		}
		right, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindNegElim, Thesis: thesis, Left: left, Right: right}, nil

	case "ForallIntro":
		v, err := r.Variable()
		if err != nil {
			return nil, err
		}
		eigen, err := r.Variable()
		if err != nil {
			return nil, err
		}
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindForallIntro, Thesis: thesis, Var: v, Eigenvar: eigen, Sub: sub}, nil

	case "ForallElim":
		term, err := r.Term()
		if err != nil {
			return nil, err
		}
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindForallElim, Thesis: thesis, Term: term, Sub: sub}, nil

	case "ExistsIntro":
		form, err := r.Formula()
		if err != nil {
			return nil, err
		}
		v, err := r.Variable()
		if err != nil {
			return nil, err
		}
		term, err := r.Term()
		if err != nil {
			return nil, err
		}
		sub, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindExistsIntro, Thesis: thesis, SubstForm: form, Var: v, Term: term, Sub: sub}, nil

	case "ExistsElim":
		idx, err := r.int()
		if err != nil {
			return nil, err
		}
		eigen, err := r.Variable()
		if err != nil {
			return nil, err
		}
		left, err := r.Rule()
		if err != nil {
			return nil, err
		}
		right, err := r.Rule()
		if err != nil {
			return nil, err
		}
		return &nd.Rule{Kind: nd.KindExistsElim, Thesis: thesis, Idx: idx, Eigenvar: eigen, Left: left, Right: right}, nil

	default:
		return nil, fmt.Errorf("gaptio: invalid proof type %q", kind)
	}
}
