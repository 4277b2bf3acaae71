package cpsat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_NoVariables(t *testing.T) {
	m := NewModel()
	s := NewSolver(m, 1)
	status, sol := s.Solve(context.Background())
	assert.Equal(t, StatusFeasible, status)
	assert.Empty(t, sol)
}

func TestSolve_SimpleExactlyOne(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	m.AddExactly([]VarID{a, b, c}, 1)

	s := NewSolver(m, 42)
	status, sol := s.Solve(context.Background())
	require.Equal(t, StatusFeasible, status)

	count := 0
	for _, v := range []VarID{a, b, c} {
		if sol.Value(v) {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSolve_AtMostOneClash(t *testing.T) {
	m := NewModel()
	vars := make([]VarID, 4)
	for i := range vars {
		vars[i] = m.NewBoolVar("slot")
	}
	m.AddAtMost(vars, 1)
	m.AddExactly(vars, 1) // force exactly one true so the result is checkable

	s := NewSolver(m, 7)
	status, sol := s.Solve(context.Background())
	require.Equal(t, StatusFeasible, status)

	trueCount := 0
	for _, v := range vars {
		if sol.Value(v) {
			trueCount++
		}
	}
	assert.Equal(t, 1, trueCount)
}

func TestSolve_Infeasible(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddExactly([]VarID{a, b}, 1)
	m.AddAtMost([]VarID{a, b}, 0) // contradicts the exactly-one above

	s := NewSolver(m, 3)
	status, sol := s.Solve(context.Background())
	assert.Equal(t, StatusInfeasible, status)
	assert.Nil(t, sol)
}

func TestSolve_FixedVariableRespected(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.Fix(a, false)
	m.AddExactly([]VarID{a, b}, 1)

	s := NewSolver(m, 11)
	status, sol := s.Solve(context.Background())
	require.Equal(t, StatusFeasible, status)
	assert.False(t, sol.Value(a))
	assert.True(t, sol.Value(b))
}

func TestSolve_DeterministicAcrossRuns(t *testing.T) {
	build := func() *Model {
		m := NewModel()
		vars := make([]VarID, 6)
		for i := range vars {
			vars[i] = m.NewBoolVar("v")
		}
		m.AddAtMost(vars, 2)
		m.AddExactly(vars, 2)
		return m
	}

	m1, m2 := build(), build()
	_, sol1 := NewSolver(m1, 99).Solve(context.Background())
	_, sol2 := NewSolver(m2, 99).Solve(context.Background())
	assert.Equal(t, sol1, sol2)
}

func TestSolve_RespectsDeadline(t *testing.T) {
	m := NewModel()
	// A moderately large, under-constrained model with no fast
	// propagation fixed point exercises the backtracking branches long
	// enough for an already-expired context to be observed.
	vars := make([]VarID, 30)
	for i := range vars {
		vars[i] = m.NewBoolVar("v")
	}
	m.AddAtMost(vars, 15)

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	time.Sleep(time.Millisecond)

	status, sol := NewSolver(m, 1).Solve(ctx)
	assert.Equal(t, StatusUnknown, status)
	assert.Nil(t, sol)
}
