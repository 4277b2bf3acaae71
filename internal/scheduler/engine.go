// Package scheduler implements the constraint-model construction and
// solution extraction pipeline: it translates a generation payload into
// a sparse Boolean constraint-satisfaction problem, solves it with the
// cpsat engine, and projects the satisfying assignment back into a
// schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/shiftsync/timetable-api/internal/models"
	"github.com/shiftsync/timetable-api/internal/scheduler/cpsat"
)

// Outcome classifies what a Generate call produced.
type Outcome uint8

const (
	// OutcomeSuccess means the solver found a feasible assignment.
	OutcomeSuccess Outcome = iota
	// OutcomeInfeasible means the solver proved no assignment exists, or
	// the budget ran out without finding one — the spec treats both as
	// infeasible for the hard contract.
	OutcomeInfeasible
)

// DefaultBudget is the solver wall-clock budget when the caller does not
// override it.
const DefaultBudget = 10 * time.Second

// Result is the outcome of one Generate call.
type Result struct {
	Outcome  Outcome
	Schedule []models.ScheduleEntry
}

// Generate runs the full pipeline — variable builder, constraint
// compiler, solver, extractor — against an already-validated payload.
// Callers must run validate.Payload first; Generate does not repeat
// those checks. seed controls the solver's deterministic tie-breaking:
// identical payload and seed always produce an identical schedule.
func Generate(ctx context.Context, p models.GenerationPayload, seed uint64, budget time.Duration) Result {
	if budget <= 0 {
		budget = DefaultBudget
	}

	vs := buildVariables(p)
	compileConstraints(p, vs)

	solveCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	solver := cpsat.NewSolver(vs.model, seed)
	status, sol := solver.Solve(solveCtx)

	if status != cpsat.StatusFeasible {
		return Result{Outcome: OutcomeInfeasible}
	}

	return Result{
		Outcome:  OutcomeSuccess,
		Schedule: extractSchedule(p, vs, sol),
	}
}
