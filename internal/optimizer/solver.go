package optimizer

import (
	"math"
)

// Solver tuning constants. The solve is a sequential penalty method:
// inequality violations are squared, weighted, and folded into the
// objective, with the weight escalating across outer rounds until the
// iterate is feasible or the iteration budget runs out.
const (
	// MaxIterations caps the total inner iterations across all rounds.
	MaxIterations = 1000

	// outerRounds is the number of penalty escalations.
	outerRounds = 8

	// innerIterations caps gradient steps per round.
	innerIterations = 120

	// initialPenalty is the starting constraint penalty weight.
	initialPenalty = 10.0

	// penaltyGrowth multiplies the penalty weight each round.
	penaltyGrowth = 10.0

	// gradientStep is the central-difference step for numeric gradients.
	gradientStep = 1e-6

	// stepTolerance stops an inner loop when the iterate stalls.
	stepTolerance = 1e-9

	// FeasibilityTolerance is the largest constraint violation still
	// considered satisfied.
	FeasibilityTolerance = 1e-4
)

// objectiveFunc evaluates the quantity being minimized.
type objectiveFunc func(x []float64) float64

// constraintFunc evaluates an inequality constraint; feasible when >= 0.
type constraintFunc func(x []float64) float64

// solverProblem is a box-bounded nonlinear program with inequality
// constraints, all variables confined to [lower, upper]. An optional
// project hook snaps an iterate onto a feasible set in place; when set,
// it is applied to the start point and to every line-search trial, so
// the constraints it encodes hold at every iterate by construction.
type solverProblem struct {
	objective    objectiveFunc
	inequalities []constraintFunc
	lower        float64
	upper        float64
	project      func(x []float64)
}

// solverResult reports the outcome of a solve.
type solverResult struct {
	x            []float64
	objective    float64
	iterations   int
	funcEvals    int
	maxViolation float64
	converged    bool
}

// solve minimizes the problem starting from x0 using projected gradient
// descent on a quadratic-penalty merit function. The merit objective is
// normalized by its magnitude at the start point so the penalty weight
// is commensurate with the objective from the first round. Fully
// deterministic: no randomness, bounded iterations.
func solve(p solverProblem, x0 []float64) solverResult {
	x := make([]float64, len(x0))
	copy(x, x0)
	clampVector(x, p.lower, p.upper)
	if p.project != nil {
		p.project(x)
	}

	res := solverResult{}
	res.funcEvals++
	objScale := math.Max(math.Abs(p.objective(x)), 1)
	penalty := initialPenalty

	for round := 0; round < outerRounds; round++ {
		merit := func(v []float64) float64 {
			res.funcEvals++
			m := p.objective(v) / objScale
			for _, g := range p.inequalities {
				if viol := g(v); viol < 0 {
					m += penalty * viol * viol
				}
			}
			return m
		}

		x = descend(merit, x, p.lower, p.upper, p.project, &res)
		res.maxViolation = maxViolation(p.inequalities, x)
		if res.maxViolation <= FeasibilityTolerance {
			break
		}
		penalty *= penaltyGrowth
	}

	res.x = x
	res.objective = p.objective(x)
	res.maxViolation = maxViolation(p.inequalities, x)
	res.converged = res.maxViolation <= FeasibilityTolerance
	return res
}

// descend runs projected gradient descent with backtracking line search
// until the step stalls or the iteration budget is spent. Every trial
// point is clamped to the box and passed through the project hook
// before evaluation.
func descend(merit objectiveFunc, start []float64, lower, upper float64, project func([]float64), res *solverResult) []float64 {
	x := make([]float64, len(start))
	copy(x, start)
	grad := make([]float64, len(x))
	trial := make([]float64, len(x))

	for iter := 0; iter < innerIterations && res.iterations < MaxIterations; iter++ {
		res.iterations++
		current := merit(x)
		numericGradient(merit, x, grad)

		// Backtracking line search along the projected negative gradient.
		step := 1.0
		improved := false
		for step > stepTolerance {
			for i := range x {
				trial[i] = clamp(x[i]-step*grad[i], lower, upper)
			}
			if project != nil {
				project(trial)
			}
			if merit(trial) < current {
				copy(x, trial)
				improved = true
				break
			}
			step /= 2
		}
		if !improved {
			break
		}
	}
	return x
}

// numericGradient fills grad with the central-difference gradient of f at x.
func numericGradient(f objectiveFunc, x, grad []float64) {
	for i := range x {
		orig := x[i]
		x[i] = orig + gradientStep
		hi := f(x)
		x[i] = orig - gradientStep
		lo := f(x)
		x[i] = orig
		grad[i] = (hi - lo) / (2 * gradientStep)
	}
}

// maxViolation returns the largest inequality violation at x (0 when feasible).
func maxViolation(constraints []constraintFunc, x []float64) float64 {
	worst := 0.0
	for _, g := range constraints {
		if v := g(x); v < 0 {
			worst = math.Max(worst, -v)
		}
	}
	return worst
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampVector(x []float64, lo, hi float64) {
	for i := range x {
		x[i] = clamp(x[i], lo, hi)
	}
}
