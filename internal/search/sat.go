package search

// Literal is a single CNF literal: a variable index paired with its
// polarity (true = unnegated), mirroring provers/sat.cpp's
// std::pair<bool, uint32_t> Literal.
type Literal struct {
	Positive bool
	Var uint32
}

// Negate returns lit with its polarity flipped.
func (lit Literal) Negate() Literal {
	return Literal{Positive: !lit.Positive, Var: lit.Var}
}

// CNFProblem is a conjunctive-normal-form SAT instance: VarNum variables
// and a set of clauses, each a disjunction of Literals, mirroring
// provers/sat.cpp's CNFProblem (minus its minisat-specific feed/print
// methods, which have no role without a concrete solver wired in).
type CNFProblem struct {
	VarNum uint32
	Clauses [][]Literal
}

// SATSolver is the named external collaborator calls out as a
// thin peripheral: no SAT algorithm is implemented in this module, only
// the interface provers/sat.cpp's minisat wrapper would sit behind.
type SATSolver interface {
	// Solve returns a satisfying assignment (indexed by variable) and true
	// if problem is satisfiable, or a nil assignment and false otherwise.
	Solve(problem CNFProblem) (assignment []bool, sat bool, err error)
}
