// Package cpsat is the scheduling engine's finite-domain constraint
// model: a flat set of Boolean start-time variables plus linear
// equality/inequality constraints over their sum, solved by the
// propagation-driven backtracking search in
// github.com/gitrdm/gokanlogic/pkg/minikanren. Every Boolean variable is
// modeled as a minikanren.FDVariable over the two-value domain {1,2}
// (1=false, 2=true, the convention minikanren's count/sum constraints
// use throughout), and every linear constraint this package needs —
// exact fulfillment (C2, FORCE_PIN) and upper-bound clash prevention
// (C3–C6) — reduces to one minikanren.BoolSum per constraint, built via
// minikanren.NewBoolSum against a "total" variable whose own domain
// encodes the bound.
package cpsat

import (
	minikanren "github.com/gitrdm/gokanlogic/pkg/minikanren"
)

// VarID identifies a single Boolean decision variable within a Model.
// It is also the variable's index into minikanren.Model's variable
// list, so it doubles as the FDVariable ID the solver sees.
type VarID int

const (
	falseValue = 1
	trueValue  = 2
)

// Model owns the minikanren constraint model and the Boolean variable
// handles built over it. A Model is built fresh per request; nothing
// here is shared across concurrent calls.
type Model struct {
	inner *minikanren.Model
	vars  []*minikanren.FDVariable

	// infeasible is set the moment a constraint is posted that can never
	// be satisfied regardless of search — AddExactly(nil, k) with k != 0,
	// where there is no candidate variable left to satisfy the count —
	// or when minikanren.NewBoolSum rejects a constraint it was asked to
	// build. minikanren has no direct way
	// to express "this constraint is simply false"; short-circuiting
	// here is cheaper and clearer than encoding it as a variable with a
	// deliberately empty domain.
	infeasible bool
}

// NewModel returns an empty model ready to accept variables.
func NewModel() *Model {
	return &Model{inner: minikanren.NewModel()}
}

// NewBoolVar allocates a fresh Boolean decision variable and returns its
// handle. name is retained only for diagnostics.
func (m *Model) NewBoolVar(name string) VarID {
	fv := m.inner.NewVariableWithName(minikanren.NewBitSetDomain(2), name)
	m.vars = append(m.vars, fv)
	return VarID(len(m.vars) - 1)
}

// NumVars reports how many Boolean variables have been created.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// AddExactly constrains Σ vars == k via a minikanren.BoolSum: a "total"
// variable fixed to the singleton {k+1} (minikanren encodes a bool-sum
// count as count+1, so it can share the same 1-indexed domain
// machinery as every other finite-domain variable).
func (m *Model) AddExactly(vars []VarID, k int) {
	n := len(vars)
	if n == 0 {
		if k != 0 {
			m.infeasible = true
		}
		return
	}

	total := m.inner.NewVariableWithName(
		minikanren.NewBitSetDomainFromValues(n+1, []int{k + 1}), "exactly-total")
	sum, err := minikanren.NewBoolSum(m.resolve(vars), total)
	if err != nil {
		m.infeasible = true
		return
	}
	m.inner.AddConstraint(sum)
}

// AddAtMost constrains Σ vars <= k. This is the shape every sliding
// window and clash-prevention rule in the spec reduces to. The total
// variable's domain is the range [1, min(k,n)+1], the bool-sum encoding
// of "count ranges from 0 up to k".
func (m *Model) AddAtMost(vars []VarID, k int) {
	n := len(vars)
	if n == 0 {
		return
	}

	upper := k
	if upper > n {
		upper = n
	}
	if upper < 0 {
		upper = 0
	}
	allowed := make([]int, upper+1)
	for i := range allowed {
		allowed[i] = i + 1
	}

	total := m.inner.NewVariableWithName(
		minikanren.NewBitSetDomainFromValues(n+1, allowed), "atmost-total")
	sum, err := minikanren.NewBoolSum(m.resolve(vars), total)
	if err != nil {
		m.infeasible = true
		return
	}
	m.inner.AddConstraint(sum)
}

// Fix forces a variable to a literal value before the search begins —
// used for the RESTRICT_TIME and FORCE_ROOM custom-rule pruning, which
// runs after the variables exist (the C1 boundary lock needs no Fix:
// buildVariables never creates a variable that violates it). It must
// only be called during model construction: FDVariable.SetDomain is
// documented as unsafe once solving has started.
func (m *Model) Fix(v VarID, value bool) {
	val := falseValue
	if value {
		val = trueValue
	}
	m.vars[v].SetDomain(minikanren.NewBitSetDomainFromValues(2, []int{val}))
}

// resolve maps a slice of VarID handles to the underlying FDVariable
// pointers minikanren's constraint constructors expect.
func (m *Model) resolve(vars []VarID) []*minikanren.FDVariable {
	out := make([]*minikanren.FDVariable, len(vars))
	for i, v := range vars {
		out[i] = m.vars[v]
	}
	return out
}
