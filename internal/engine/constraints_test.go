package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConstraintsWarnsOnUnknown(t *testing.T) {
	m := NewConstraintManager()

	warnings := m.ValidateConstraints(map[string]map[string]float64{
		ConstraintCost:    {"max_total_cost": 1e6},
		"emissions_quota": {"limit": 10},
	})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unknown constraint type: emissions_quota")

	assert.Empty(t, m.ValidateConstraints(nil))
}

func TestCheckVehicleConstraintsCompliantByDefault(t *testing.T) {
	m := NewConstraintManager()

	// Declared categories without limit keys carry no evidence, so the
	// cell stays compliant.
	limits := map[string]map[string]float64{
		ConstraintTechnologyReadiness: {},
		ConstraintCost:                {},
	}
	c := m.CheckVehicleConstraints("Buses", 2030, nil, nil, Calculations{}, limits)
	assert.True(t, c.Compliant)
	assert.Empty(t, c.Violations)
}

func TestCheckTechnologyReadiness(t *testing.T) {
	m := NewConstraintManager()
	roster := []Vehicle{
		{ID: "a", Technology: "Electric", ReadinessLevel: 6},
		{ID: "b", Technology: "Diesel", ReadinessLevel: 9},
	}
	adoption := map[string]float64{"a": 0.3, "b": 0.7}
	limits := map[string]map[string]float64{
		ConstraintTechnologyReadiness: {"min_level": 8},
	}

	c := m.CheckVehicleConstraints("Buses", 2030, roster, adoption, Calculations{}, limits)
	assert.False(t, c.Compliant)
	require.Len(t, c.Violations, 1)
	assert.Contains(t, c.Violations[0], "Electric")
	assert.Contains(t, c.Violations[0], "TRL 6")

	// A technology below the bar but at zero adoption is not a violation.
	adoption["a"] = 0
	c = m.CheckVehicleConstraints("Buses", 2030, roster, adoption, Calculations{}, limits)
	assert.True(t, c.Compliant)
}

func TestCheckMarketPenetration(t *testing.T) {
	m := NewConstraintManager()
	roster := []Vehicle{{ID: "a"}, {ID: "b"}}
	limits := map[string]map[string]float64{
		ConstraintMarketPenetration: {"max_rate": 0.5, "min_rate": 0.2},
	}

	c := m.CheckVehicleConstraints("Buses", 2030, roster,
		map[string]float64{"a": 0.8, "b": 0.6}, Calculations{}, limits)
	assert.False(t, c.Compliant)

	c = m.CheckVehicleConstraints("Buses", 2030, roster,
		map[string]float64{"a": 0.1, "b": 0.1}, Calculations{}, limits)
	assert.True(t, c.Compliant, "trailing the floor warns but does not violate")
	assert.NotEmpty(t, c.Warnings)
}

func TestCheckInfrastructureAndCostAndPolicy(t *testing.T) {
	m := NewConstraintManager()
	calcs := Calculations{
		Emissions:      EmissionsResult{Total: 5000},
		Cost:           CostResult{Total: 200000},
		Infrastructure: InfrastructureResult{ChargingPoints: 12, GridCapacityMW: 0.5},
	}
	limits := map[string]map[string]float64{
		ConstraintInfrastructureCapacity: {"max_charging_points": 10},
		ConstraintCost:                   {"max_total_cost": 150000},
		ConstraintPolicy:                 {"max_emissions": 4000},
	}

	c := m.CheckVehicleConstraints("Buses", 2030, nil, nil, calcs, limits)
	assert.False(t, c.Compliant)
	assert.Len(t, c.Violations, 3)
}

func TestAnalyzeConstraints(t *testing.T) {
	m := NewConstraintManager()
	perYear := []YearResult{
		{
			Year: 2030,
			VehicleCalculations: map[string]VehicleTypeResult{
				"Buses": {Compliance: Compliance{Compliant: true}},
				"Passenger Cars": {Compliance: Compliance{
					Compliant:  false,
					Violations: []string{ConstraintCost + ": over budget"},
				}},
			},
		},
		{
			Year: 2040,
			VehicleCalculations: map[string]VehicleTypeResult{
				"Buses": {Compliance: Compliance{
					Compliant:  false,
					Violations: []string{ConstraintPolicy + ": over regulatory cap"},
				}},
			},
		},
	}

	analysis := m.AnalyzeConstraints(perYear)
	assert.False(t, analysis.OverallCompliance)
	require.Len(t, analysis.Violations, 2)
	assert.Equal(t, 2030, analysis.Violations[0].Year)
	assert.Equal(t, "Passenger Cars", analysis.Violations[0].VehicleType)

	require.Len(t, analysis.CriticalViolations, 1,
		"only policy breaches escalate to critical")
	assert.Equal(t, 2040, analysis.CriticalViolations[0].Year)
}

func TestAnalyzeConstraintsAllCompliant(t *testing.T) {
	m := NewConstraintManager()
	perYear := []YearResult{
		{Year: 2030, VehicleCalculations: map[string]VehicleTypeResult{
			"Buses": {Compliance: Compliance{Compliant: true}},
		}},
	}
	analysis := m.AnalyzeConstraints(perYear)
	assert.True(t, analysis.OverallCompliance)
	assert.Empty(t, analysis.Violations)
	assert.Empty(t, analysis.CriticalViolations)
}
