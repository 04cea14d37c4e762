package nd

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
	"github.com/stretchr/testify/assert"
)

func TestAndIntro_ChecksMultisetUnion(t *testing.T) {
	a := ast.Predicate("A")
	b := ast.Predicate("B")

	left := &Rule{Kind: KindLogicalAxiom, Form: a, Thesis: singleSucc(a)}
	left.Thesis.Antecedents = []*ast.Formula{a}
	right := &Rule{Kind: KindLogicalAxiom, Form: b, Thesis: singleSucc(b)}
	right.Thesis.Antecedents = []*ast.Formula{b}

	r := &Rule{
		Kind: KindAndIntro,
		Left: left,
		Right: right,
		Thesis: Sequent{
			Antecedents: []*ast.Formula{a, b},
			Succedents: []*ast.Formula{ast.And(a, b)},
		},
	}
	assert.True(t, r.Check())
}

func TestAndIntro_MissingAntecedentFails(t *testing.T) {
	a := ast.Predicate("A")
	b := ast.Predicate("B")
	left := &Rule{Kind: KindLogicalAxiom, Form: a, Thesis: Sequent{Antecedents: []*ast.Formula{a}, Succedents: []*ast.Formula{a}}}
	right := &Rule{Kind: KindLogicalAxiom, Form: b, Thesis: Sequent{Antecedents: []*ast.Formula{b}, Succedents: []*ast.Formula{b}}}

	r := &Rule{
		Kind: KindAndIntro,
		Left: left,
		Right: right,
		Thesis: Sequent{
			Antecedents: []*ast.Formula{a}, // missing b
			Succedents: []*ast.Formula{ast.And(a, b)},
		},
	}
	assert.False(t, r.Check())
}

func TestImpIntro_DischargesHypothesis(t *testing.T) {
	a := ast.Predicate("A")
	sub := &Rule{Kind: KindLogicalAxiom, Form: a, Thesis: Sequent{Antecedents: []*ast.Formula{a}, Succedents: []*ast.Formula{a}}}
	r := &Rule{
		Kind: KindImpIntro,
		Sub: sub,
		Thesis: Sequent{
			Succedents: []*ast.Formula{ast.Implies(a, a)},
		},
	}
	assert.True(t, r.Check())
}

func TestForallElim_SubstitutesTerm(t *testing.T) {
	px := ast.Predicate("P", ast.Variable("x"))
	forall := ast.Forall("x", px)
	sub := &Rule{Kind: KindLogicalAxiom, Form: forall, Thesis: Sequent{Antecedents: []*ast.Formula{forall}, Succedents: []*ast.Formula{forall}}}
	r := &Rule{
		Kind: KindForallElim,
		Sub: sub,
		Term: ast.Functor("c"),
		Thesis: Sequent{
			Antecedents: []*ast.Formula{forall},
			Succedents: []*ast.Formula{ast.Predicate("P", ast.Functor("c"))},
		},
	}
	assert.True(t, r.Check())
}

func TestForallIntro_FreshEigenvarSucceeds(t *testing.T) {
	y := ast.Variable("y")
	px := ast.Predicate("P", ast.Variable("x"))
	py := ast.Predicate("P", y)
	bot := ast.False()

	axiom := &Rule{Kind: KindLogicalAxiom, Form: bot, Thesis: Sequent{Antecedents: []*ast.Formula{bot}, Succedents: []*ast.Formula{bot}}}
	sub := &Rule{Kind: KindBottomElim, Sub: axiom, Thesis: Sequent{Antecedents: []*ast.Formula{bot}, Succedents: []*ast.Formula{py}}}

	r := &Rule{
		Kind: KindForallIntro,
		Sub: sub,
		Var: "x",
		Eigenvar: "y",
		Thesis: Sequent{
			Antecedents: []*ast.Formula{bot},
			Succedents: []*ast.Formula{ast.Forall("x", px)},
		},
	}
	assert.True(t, r.Check())
}

func TestForallIntro_EigenvarFreeInContextFails(t *testing.T) {
	y := ast.Variable("y")
	px := ast.Predicate("P", ast.Variable("x"))
	py := ast.Predicate("P", y)
	qy := ast.Predicate("Q", y)
	bot := ast.False()

	axiom := &Rule{Kind: KindLogicalAxiom, Form: bot, Thesis: Sequent{Antecedents: []*ast.Formula{bot}, Succedents: []*ast.Formula{bot}}}
	bottomElim := &Rule{Kind: KindBottomElim, Sub: axiom, Thesis: Sequent{Antecedents: []*ast.Formula{bot}, Succedents: []*ast.Formula{py}}}
	weakened := &Rule{
		Kind: KindWeakening,
		Sub: bottomElim,
		Form: qy,
		Thesis: Sequent{
			Antecedents: []*ast.Formula{bot, qy},
			Succedents: []*ast.Formula{py},
		},
	}

	r := &Rule{
		Kind: KindForallIntro,
		Sub: weakened,
		Var: "x",
		Eigenvar: "y",
		Thesis: Sequent{
			// qy mentions the eigenvariable y, so it must not occur here.
			Antecedents: []*ast.Formula{bot, qy},
			Succedents: []*ast.Formula{ast.Forall("x", px)},
		},
	}
	assert.False(t, r.Check())
}
