package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveUnconstrainedQuadratic(t *testing.T) {
	// minimize (x-0.3)^2 + (y-0.7)^2 over the unit box.
	p := solverProblem{
		objective: func(x []float64) float64 {
			dx, dy := x[0]-0.3, x[1]-0.7
			return dx*dx + dy*dy
		},
		lower: 0,
		upper: 1,
	}
	res := solve(p, []float64{0.5, 0.5})
	require.True(t, res.converged)
	assert.InDelta(t, 0.3, res.x[0], 1e-3)
	assert.InDelta(t, 0.7, res.x[1], 1e-3)
	assert.InDelta(t, 0, res.objective, 1e-5)
}

func TestSolveRespectsBoxBounds(t *testing.T) {
	// The unconstrained minimum lies outside the box; the solver must
	// settle on the nearest boundary point.
	p := solverProblem{
		objective: func(x []float64) float64 {
			d := x[0] - 2
			return d * d
		},
		lower: 0,
		upper: 1,
	}
	res := solve(p, []float64{0.5})
	require.True(t, res.converged)
	assert.InDelta(t, 1, res.x[0], 1e-6)
}

func TestSolveInequalityBinds(t *testing.T) {
	// minimize x subject to x >= 0.4, expressed as g(x) = x - 0.4 >= 0.
	p := solverProblem{
		objective:    func(x []float64) float64 { return x[0] },
		inequalities: []constraintFunc{func(x []float64) float64 { return x[0] - 0.4 }},
		lower:        0,
		upper:        1,
	}
	res := solve(p, []float64{0.9})
	require.True(t, res.converged)
	assert.InDelta(t, 0.4, res.x[0], 1e-3)
	assert.LessOrEqual(t, res.maxViolation, FeasibilityTolerance)
}

func TestSolveProjectionHook(t *testing.T) {
	// maximize x+y with the second coordinate projected onto [0, 0.5].
	// Every iterate, including the start point, must satisfy the
	// projected set, so the solve settles on (1, 0.5).
	p := solverProblem{
		objective: func(x []float64) float64 { return -(x[0] + x[1]) },
		lower:     0,
		upper:     1,
		project: func(x []float64) {
			if x[1] > 0.5 {
				x[1] = 0.5
			}
		},
	}
	res := solve(p, []float64{0.1, 0.9})
	require.True(t, res.converged)
	assert.InDelta(t, 1, res.x[0], 1e-6)
	assert.InDelta(t, 0.5, res.x[1], 1e-6)
}

func TestSolveReportsInfeasible(t *testing.T) {
	// g1 requires x >= 0.8 while g2 requires x <= 0.2; no point in the
	// box satisfies both, so the solve must not claim convergence.
	p := solverProblem{
		objective: func(x []float64) float64 { return x[0] },
		inequalities: []constraintFunc{
			func(x []float64) float64 { return x[0] - 0.8 },
			func(x []float64) float64 { return 0.2 - x[0] },
		},
		lower: 0,
		upper: 1,
	}
	res := solve(p, []float64{0.5})
	assert.False(t, res.converged)
	assert.Greater(t, res.maxViolation, FeasibilityTolerance)
}

func TestSolveStaysWithinIterationBudget(t *testing.T) {
	p := solverProblem{
		objective: func(x []float64) float64 {
			total := 0.0
			for _, v := range x {
				total += (v - 0.5) * (v - 0.5)
			}
			return total
		},
		lower: 0,
		upper: 1,
	}
	res := solve(p, make([]float64, 6))
	assert.LessOrEqual(t, res.iterations, MaxIterations)
	assert.Positive(t, res.funcEvals)
}

func TestMaxViolation(t *testing.T) {
	constraints := []constraintFunc{
		func(x []float64) float64 { return 1 },    // satisfied
		func(x []float64) float64 { return -0.3 }, // violated by 0.3
		func(x []float64) float64 { return -0.1 }, // violated by 0.1
	}
	assert.InDelta(t, 0.3, maxViolation(constraints, nil), 1e-12)
	assert.Zero(t, maxViolation(nil, nil))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-1, 0, 1))
	assert.Equal(t, 1.0, clamp(2, 0, 1))
	assert.Equal(t, 0.5, clamp(0.5, 0, 1))

	v := []float64{-0.5, 0.5, 1.5}
	clampVector(v, 0, 1)
	assert.Equal(t, []float64{0, 0.5, 1}, v)
}
