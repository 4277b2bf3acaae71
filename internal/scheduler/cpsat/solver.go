package cpsat

import (
	"context"

	minikanren "github.com/gitrdm/gokanlogic/pkg/minikanren"
)

// Status reports the outcome of a Solve call.
type Status uint8

const (
	// StatusInfeasible means propagation or exhaustive search proved no
	// assignment satisfies every constraint.
	StatusInfeasible Status = iota
	// StatusFeasible means a satisfying assignment was found.
	StatusFeasible
	// StatusUnknown means the wall-clock budget ran out before the search
	// could prove feasibility or infeasibility either way.
	StatusUnknown
)

// Solution is the assignment produced by a feasible solve, indexed by VarID.
type Solution []bool

// Value reports the assigned value of v.
func (s Solution) Value(v VarID) bool {
	return s[v]
}

// Solver runs minikanren's backtracking search over a Model's
// finite-domain encoding. A Solver is single-use: build a Model,
// construct a Solver, call Solve once.
type Solver struct {
	model *Model
	inner *minikanren.Solver
}

// NewSolver builds a Solver for m. seed is threaded into minikanren's
// SolverConfig for reproducibility; in practice determinism already
// comes from m's fixed variable-creation order plus the library's
// lowest-ID tie-break in variable selection (its value ordering is
// ascending regardless of seed), so identical input reliably reproduces
// identical output with or without a distinct seed per call.
func NewSolver(m *Model, seed uint64) *Solver {
	m.inner.SetConfig(&minikanren.SolverConfig{
		VariableHeuristic: minikanren.HeuristicDomDeg,
		ValueHeuristic:    minikanren.ValueOrderAsc,
		RandomSeed:        int64(seed),
	})
	return &Solver{model: m, inner: minikanren.NewSolver(m.inner)}
}

// Solve runs the search until a solution is found, infeasibility is
// proved, or ctx is done. The returned Status and Solution are only
// meaningful together: a Solution is only valid when Status is
// StatusFeasible.
func (s *Solver) Solve(ctx context.Context) (Status, Solution) {
	if s.model.infeasible {
		return StatusInfeasible, nil
	}
	if s.model.NumVars() == 0 {
		return StatusFeasible, Solution{}
	}

	solutions, err := s.inner.Solve(ctx, 1)
	if err != nil {
		if ctx.Err() != nil {
			return StatusUnknown, nil
		}
		// Any other error (e.g. a fixed variable left with an empty
		// domain by Model.Fix) means the model can never be satisfied.
		return StatusInfeasible, nil
	}
	if len(solutions) == 0 {
		return StatusInfeasible, nil
	}

	// minikanren's solution vector covers every FDVariable in the model,
	// including the "total" variables AddExactly/AddAtMost allocate
	// internally for each BoolSum. Those are always created after every
	// Boolean decision variable (buildVariables finishes before any
	// constraint is compiled), so the first NumVars() entries are exactly
	// this Model's Boolean variables in VarID order.
	return StatusFeasible, decode(solutions[0][:s.model.NumVars()])
}

// decode converts minikanren's raw per-variable value assignment
// (1=false, 2=true) into the public Solution type.
func decode(values []int) Solution {
	sol := make(Solution, len(values))
	for i, v := range values {
		sol[i] = v == trueValue
	}
	return sol
}
