// Package optimizer formulates and solves the pathway adoption program:
// given analysis years, vehicle categories, and an emissions-reduction
// target, it finds the clean-technology adoption share per (year,
// category) cell that minimizes total lifecycle emissions while keeping
// year-over-year adoption change within the configured pace.
package optimizer

import (
	"fmt"
	"math"
	"sort"

	"github.com/pathwise/pathwise/internal/catalog"
)

// Input describes one optimization request. EmissionsFactors and
// UsagePatterns override the static catalog when present; AdoptionRates
// seed the initial state (defaulting to 10% adoption).
type Input struct {
	Years             []int
	VehicleTypes      []string
	TargetReduction   float64
	MaxAnnualChange   float64
	EmissionsFactors  map[string]map[string]catalog.Factor
	UsagePatterns     map[string]map[string]float64
	AdoptionRates     map[string]map[string]float64
	EnableConstraints bool
}

// Result is the structured outcome of a solve. The optimizer never
// panics: infeasible or non-converging problems surface here with
// Success=false and a diagnostic Message.
type Result struct {
	Success             bool         `json:"success"`
	Message             string       `json:"message"`
	Years               []int        `json:"years"`
	VehicleTypes        []string     `json:"vehicle_types"`
	OptimizedAdoption   [][]float64  `json:"optimized_adoption"`
	ObjectiveValue      float64      `json:"objective_value"`
	Iterations          int          `json:"iterations"`
	FunctionEvaluations int          `json:"function_evaluations"`
	RelaxedConstraints  bool         `json:"relaxed_constraints"`
	Details             *Details     `json:"details,omitempty"`
}

// Details carries the post-solve series used by reporting consumers.
type Details struct {
	EmissionsByYear        []YearEmissions             `json:"emissions_by_year"`
	EmissionsByVehicleType map[string][]TypeEmissions  `json:"emissions_by_vehicle_type"`
	AdoptionProgress       map[string][]AdoptionPoint  `json:"adoption_progress"`
	CostAnalysis           CostAnalysis                `json:"cost_analysis"`
	Summary                Summary                     `json:"summary"`
}

// YearEmissions is one entry of the per-year emissions series.
type YearEmissions struct {
	Year             int     `json:"year"`
	Emissions        float64 `json:"emissions"`
	ReductionPercent float64 `json:"reduction_percent"`
}

// TypeEmissions is one entry of a per-vehicle-type emissions series.
type TypeEmissions struct {
	Year         int     `json:"year"`
	Emissions    float64 `json:"emissions"`
	AdoptionRate float64 `json:"adoption_rate"`
}

// AdoptionPoint is one entry of the adoption-progress series, in percent.
type AdoptionPoint struct {
	Year            int     `json:"year"`
	AdoptionPercent float64 `json:"adoption_rate"`
}

// CostAnalysis is the simplified fleet cost-per-mile series.
type CostAnalysis struct {
	TotalCostByYear []YearCost `json:"total_cost_by_year"`
}

// YearCost is one entry of the cost series.
type YearCost struct {
	Year        int     `json:"year"`
	CostPerMile float64 `json:"cost_per_mile"`
}

// Summary condenses the solve outcome.
type Summary struct {
	InitialEmissions      float64 `json:"initial_emissions"`
	FinalEmissions        float64 `json:"final_emissions"`
	TotalReductionPercent float64 `json:"total_reduction_percent"`
	YearsAnalyzed         int     `json:"years_analyzed"`
	VehicleTypesAnalyzed  int     `json:"vehicle_types_analyzed"`
	TargetAchieved        bool    `json:"target_achieved"`
}

// DefaultSeedAdoption is the initial adoption share used when a scenario
// declares no adoption rates for a vehicle type.
const DefaultSeedAdoption = 0.1

// annualMilesGrowth is the year-over-year fleet mileage growth factor.
const annualMilesGrowth = 0.02

// cell holds the aggregated model coefficients for one (year, type) cell.
// Emissions are linear in adoption: miles * (incumbent - (incumbent-clean)*x).
type cell struct {
	miles     float64
	clean     float64
	incumbent float64
	seed      float64
}

// model is the assembled numerical problem data, indexed [year][type].
type model struct {
	years []int
	types []string
	cells [][]cell
}

// Optimize formulates and solves the adoption program. It retries once
// with rate constraints relaxed if the constrained solve fails, and
// reports failure structurally if the relaxed solve fails too.
func Optimize(in Input) Result {
	res := Result{
		Years:        in.Years,
		VehicleTypes: in.VehicleTypes,
	}

	if len(in.Years) < 2 {
		res.Message = "at least 2 years must be specified"
		return res
	}
	if len(in.VehicleTypes) == 0 {
		res.Message = "at least one vehicle type must be specified"
		return res
	}

	m := buildModel(in)
	x0 := m.seedVector()
	initial := m.totalEmissions(x0)
	target := initial * (1 - in.TargetReduction)

	objective := func(x []float64) float64 { return m.totalEmissions(x) }

	// The target constraint is normalized by the initial emissions so the
	// feasibility tolerance is scale free.
	scale := math.Max(initial, 1)
	targetConstraint := func(x []float64) float64 {
		return (target - m.totalEmissions(x)) / scale
	}

	constraints := []constraintFunc{targetConstraint}
	var project func([]float64)
	if in.EnableConstraints {
		constraints = append(constraints, m.rateConstraints(in.MaxAnnualChange)...)
		// Keeping every iterate on the pacing chain means the primary
		// solve only has to close the target gap; the rate inequalities
		// hold by construction instead of through penalty escalation.
		project = func(x []float64) { m.projectRateFeasible(x, in.MaxAnnualChange) }
	}

	sol := solve(solverProblem{
		objective:    objective,
		inequalities: constraints,
		lower:        0,
		upper:        1,
		project:      project,
	}, x0)

	relaxed := false
	if !sol.converged && in.EnableConstraints {
		// Graceful degradation: prefer a feasible schedule without pacing
		// limits over outright failure.
		relaxed = true
		sol2 := solve(solverProblem{
			objective:    objective,
			inequalities: []constraintFunc{targetConstraint},
			lower:        0,
			upper:        1,
		}, x0)
		sol2.iterations += sol.iterations
		sol2.funcEvals += sol.funcEvals
		sol = sol2
	}

	if in.EnableConstraints && !relaxed {
		// Snap the iterate onto the rate-feasible chain so the pacing
		// bound holds exactly, not just within solver tolerance.
		m.projectRateFeasible(sol.x, in.MaxAnnualChange)
		sol.maxViolation = maxViolation(constraints, sol.x)
		sol.converged = sol.maxViolation <= FeasibilityTolerance
		sol.objective = objective(sol.x)
	}

	res.OptimizedAdoption = m.reshape(sol.x)
	res.ObjectiveValue = sol.objective
	res.Iterations = sol.iterations
	res.FunctionEvaluations = sol.funcEvals
	res.RelaxedConstraints = relaxed
	res.Success = sol.converged

	switch {
	case sol.converged && relaxed:
		res.Message = "optimization succeeded with rate-of-change constraints relaxed"
	case sol.converged:
		res.Message = "optimization terminated successfully"
	default:
		res.Message = fmt.Sprintf(
			"optimization failed to satisfy constraints (worst violation %.6f)", sol.maxViolation)
	}

	res.Details = m.buildDetails(res.OptimizedAdoption, initial, in.TargetReduction)
	return res
}

// buildModel aggregates catalog/override data into per-cell coefficients.
func buildModel(in Input) *model {
	m := &model{years: in.Years, types: in.VehicleTypes}
	m.cells = make([][]cell, len(in.Years))

	for i, year := range in.Years {
		m.cells[i] = make([]cell, len(in.VehicleTypes))
		for j, vt := range in.VehicleTypes {
			factors := in.EmissionsFactors[vt]
			if factors == nil {
				factors = catalog.Factors(vt)
			}
			usage := in.UsagePatterns[vt]

			techs := make([]string, 0, len(factors))
			for tech := range factors {
				techs = append(techs, tech)
			}
			sort.Strings(techs)

			var cleanSum, cleanMiles, dirtySum, dirtyMiles float64
			for _, tech := range techs {
				f := factors[tech]
				miles, ok := usage[tech]
				if !ok {
					miles = catalog.AnnualMileage(vt, tech)
				}
				if f.Tailpipe == 0 {
					cleanSum += f.Lifecycle * miles
					cleanMiles += miles
				} else {
					dirtySum += f.Lifecycle * miles
					dirtyMiles += miles
				}
			}

			c := cell{seed: seedRate(in.AdoptionRates, vt)}
			if cleanMiles > 0 {
				c.clean = cleanSum / cleanMiles
			}
			if dirtyMiles > 0 {
				c.incumbent = dirtySum / dirtyMiles
			}
			growth := 1 + annualMilesGrowth*float64(year-in.Years[0])
			c.miles = (cleanMiles + dirtyMiles) * growth
			m.cells[i][j] = c
		}
	}
	return m
}

// seedRate returns the mean declared adoption rate for a vehicle type,
// or DefaultSeedAdoption when none is declared.
func seedRate(rates map[string]map[string]float64, vt string) float64 {
	declared := rates[vt]
	if len(declared) == 0 {
		return DefaultSeedAdoption
	}
	techs := make([]string, 0, len(declared))
	for tech := range declared {
		techs = append(techs, tech)
	}
	sort.Strings(techs)
	sum := 0.0
	for _, tech := range techs {
		sum += declared[tech]
	}
	return clamp(sum/float64(len(techs)), 0, 1)
}

// seedVector flattens the seed state into the decision vector layout.
func (m *model) seedVector() []float64 {
	x := make([]float64, len(m.years)*len(m.types))
	for i := range m.years {
		for j := range m.types {
			x[i*len(m.types)+j] = m.cells[i][j].seed
		}
	}
	return x
}

// cellEmissions evaluates one cell at adoption share x.
func (c cell) cellEmissions(x float64) float64 {
	return c.miles * (c.incumbent - (c.incumbent-c.clean)*x)
}

// totalEmissions evaluates the objective over the flattened vector.
func (m *model) totalEmissions(x []float64) float64 {
	total := 0.0
	for i := range m.years {
		for j := range m.types {
			total += m.cells[i][j].cellEmissions(x[i*len(m.types)+j])
		}
	}
	return total
}

// rateConstraints builds the pacing inequalities. Adoption may move by
// at most maxAnnualChange between adjacent analysis years regardless of
// the calendar gap between them, and the first year may depart from the
// seed state by at most the same step, since the present fleet mix
// cannot jump.
func (m *model) rateConstraints(maxAnnualChange float64) []constraintFunc {
	var constraints []constraintFunc
	nt := len(m.types)

	for j := 0; j < nt; j++ {
		j := j
		seed := m.cells[0][j].seed
		constraints = append(constraints,
			func(x []float64) float64 { return maxAnnualChange - (x[j] - seed) },
			func(x []float64) float64 { return maxAnnualChange - (seed - x[j]) },
		)
	}

	for i := 1; i < len(m.years); i++ {
		for j := 0; j < nt; j++ {
			hi, lo := i*nt+j, (i-1)*nt+j
			constraints = append(constraints,
				func(x []float64) float64 { return maxAnnualChange - (x[hi] - x[lo]) },
				func(x []float64) float64 { return maxAnnualChange - (x[lo] - x[hi]) },
			)
		}
	}
	return constraints
}

// projectRateFeasible clamps the vector onto the pacing chain in place.
func (m *model) projectRateFeasible(x []float64, maxAnnualChange float64) {
	nt := len(m.types)
	for j := 0; j < nt; j++ {
		seed := m.cells[0][j].seed
		x[j] = clamp(x[j], math.Max(0, seed-maxAnnualChange), math.Min(1, seed+maxAnnualChange))
		for i := 1; i < len(m.years); i++ {
			prev := x[(i-1)*nt+j]
			x[i*nt+j] = clamp(x[i*nt+j],
				math.Max(0, prev-maxAnnualChange), math.Min(1, prev+maxAnnualChange))
		}
	}
}

// reshape unflattens the decision vector into [year][type].
func (m *model) reshape(x []float64) [][]float64 {
	out := make([][]float64, len(m.years))
	nt := len(m.types)
	for i := range m.years {
		out[i] = make([]float64, nt)
		copy(out[i], x[i*nt:(i+1)*nt])
	}
	return out
}

// buildDetails computes the reporting series for a solved adoption matrix.
func (m *model) buildDetails(adoption [][]float64, initial, targetReduction float64) *Details {
	d := &Details{
		EmissionsByVehicleType: make(map[string][]TypeEmissions, len(m.types)),
		AdoptionProgress:       make(map[string][]AdoptionPoint, len(m.types)),
	}

	perYearInitial := initial / float64(len(m.years))
	for i, year := range m.years {
		yearTotal := 0.0
		for j := range m.types {
			yearTotal += m.cells[i][j].cellEmissions(adoption[i][j])
		}
		reduction := 0.0
		if perYearInitial > 0 {
			reduction = (perYearInitial - yearTotal) / perYearInitial * 100
		}
		d.EmissionsByYear = append(d.EmissionsByYear, YearEmissions{
			Year:             year,
			Emissions:        yearTotal,
			ReductionPercent: reduction,
		})
	}

	for j, vt := range m.types {
		for i, year := range m.years {
			d.EmissionsByVehicleType[vt] = append(d.EmissionsByVehicleType[vt], TypeEmissions{
				Year:         year,
				Emissions:    m.cells[i][j].cellEmissions(adoption[i][j]),
				AdoptionRate: adoption[i][j],
			})
			d.AdoptionProgress[vt] = append(d.AdoptionProgress[vt], AdoptionPoint{
				Year:            year,
				AdoptionPercent: adoption[i][j] * 100,
			})
		}
	}

	for i, year := range m.years {
		perMile := 0.0
		for j, vt := range m.types {
			costs := costFactors(vt)
			perMile += costs.fossil*(1-adoption[i][j]) + costs.electric*adoption[i][j]
		}
		d.CostAnalysis.TotalCostByYear = append(d.CostAnalysis.TotalCostByYear, YearCost{
			Year:        year,
			CostPerMile: perMile,
		})
	}

	final := d.EmissionsByYear[len(d.EmissionsByYear)-1].Emissions
	totalReduction := 0.0
	if perYearInitial > 0 {
		totalReduction = (perYearInitial - final) / perYearInitial * 100
	}
	d.Summary = Summary{
		InitialEmissions:      initial,
		FinalEmissions:        final,
		TotalReductionPercent: totalReduction,
		YearsAnalyzed:         len(m.years),
		VehicleTypesAnalyzed:  len(m.types),
		TargetAchieved:        totalReduction >= targetReduction*100,
	}
	return d
}
