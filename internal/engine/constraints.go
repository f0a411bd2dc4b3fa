package engine

import (
	"fmt"
	"sort"
)

// Recognized constraint category names.
const (
	ConstraintTechnologyReadiness    = "technology_readiness"
	ConstraintMarketPenetration      = "market_penetration"
	ConstraintInfrastructureCapacity = "infrastructure_capacity"
	ConstraintCost                   = "cost_constraints"
	ConstraintPolicy                 = "policy_constraints"
)

// constraintEvaluator checks one constraint category for one cell.
// Evaluators never fail: when the supplied limits carry no evidence
// either way, the cell is reported compliant.
type constraintEvaluator func(vehicleType string, year int, roster []Vehicle, adoption map[string]float64, calcs Calculations, limits map[string]float64) Compliance

// ConstraintManager evaluates the recognized constraint categories
// against per-cell calculations. Constraint definitions are extensible
// by name, so unknown categories warn rather than fail.
type ConstraintManager struct {
	evaluators map[string]constraintEvaluator
}

// NewConstraintManager returns a manager with all five category
// evaluators registered.
func NewConstraintManager() *ConstraintManager {
	return &ConstraintManager{
		evaluators: map[string]constraintEvaluator{
			ConstraintTechnologyReadiness:    checkTechnologyReadiness,
			ConstraintMarketPenetration:      checkMarketPenetration,
			ConstraintInfrastructureCapacity: checkInfrastructureCapacity,
			ConstraintCost:                   checkCostConstraints,
			ConstraintPolicy:                 checkPolicyConstraints,
		},
	}
}

// ValidateConstraints reports unrecognized constraint categories as
// warnings. No category definition is ever a hard error.
func (m *ConstraintManager) ValidateConstraints(limits map[string]map[string]float64) []string {
	names := make([]string, 0, len(limits))
	for name := range limits {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []string
	for _, name := range names {
		if _, ok := m.evaluators[name]; !ok {
			warnings = append(warnings, fmt.Sprintf("unknown constraint type: %s", name))
		}
	}
	return warnings
}

// CheckVehicleConstraints evaluates every supplied constraint category
// for one (year, vehicle type) cell.
func (m *ConstraintManager) CheckVehicleConstraints(vehicleType string, year int, roster []Vehicle, adoption map[string]float64, calcs Calculations, limits map[string]map[string]float64) Compliance {
	compliance := Compliance{Compliant: true}

	names := make([]string, 0, len(limits))
	for name := range limits {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		eval, ok := m.evaluators[name]
		if !ok {
			compliance.Warnings = append(compliance.Warnings,
				fmt.Sprintf("unknown constraint type: %s", name))
			continue
		}
		result := eval(vehicleType, year, roster, adoption, calcs, limits[name])
		if !result.Compliant {
			compliance.Compliant = false
			compliance.Violations = append(compliance.Violations, result.Violations...)
		}
		compliance.Warnings = append(compliance.Warnings, result.Warnings...)
	}
	return compliance
}

// AnalyzeConstraints walks every (year, vehicle type) cell of a
// completed calculation and rolls non-compliance up to scenario level.
// Policy violations are escalated to critical since they represent
// regulatory breaches rather than planning pressure.
func (m *ConstraintManager) AnalyzeConstraints(perYear []YearResult) ConstraintAnalysis {
	analysis := ConstraintAnalysis{OverallCompliance: true}

	for _, yr := range perYear {
		types := make([]string, 0, len(yr.VehicleCalculations))
		for vt := range yr.VehicleCalculations {
			types = append(types, vt)
		}
		sort.Strings(types)

		for _, vt := range types {
			cell := yr.VehicleCalculations[vt]
			if cell.Compliance.Compliant {
				continue
			}
			analysis.OverallCompliance = false
			violation := CellViolation{
				Year:        yr.Year,
				VehicleType: vt,
				Violations:  cell.Compliance.Violations,
			}
			analysis.Violations = append(analysis.Violations, violation)
			if containsPolicyViolation(cell.Compliance.Violations) {
				analysis.CriticalViolations = append(analysis.CriticalViolations, violation)
			}
		}
	}
	return analysis
}

func containsPolicyViolation(violations []string) bool {
	for _, v := range violations {
		if len(v) >= len(ConstraintPolicy) && v[:len(ConstraintPolicy)] == ConstraintPolicy {
			return true
		}
	}
	return false
}

// checkTechnologyReadiness flags adopted vehicles whose TRL falls
// below the configured minimum.
func checkTechnologyReadiness(vehicleType string, year int, roster []Vehicle, adoption map[string]float64, _ Calculations, limits map[string]float64) Compliance {
	c := Compliance{Compliant: true}
	minLevel, ok := limits["min_level"]
	if !ok {
		return c
	}
	for _, v := range roster {
		if adoption[v.ID] > 0 && float64(v.ReadinessLevel) < minLevel {
			c.Compliant = false
			c.Violations = append(c.Violations, fmt.Sprintf(
				"%s: %s %s at TRL %d below minimum %g in %d",
				ConstraintTechnologyReadiness, vehicleType, v.Technology, v.ReadinessLevel, minLevel, year))
		}
	}
	return c
}

// checkMarketPenetration compares the cell's mean adoption against the
// configured market ceiling, warning when it trails the floor.
func checkMarketPenetration(vehicleType string, year int, roster []Vehicle, adoption map[string]float64, _ Calculations, limits map[string]float64) Compliance {
	c := Compliance{Compliant: true}
	if len(roster) == 0 {
		return c
	}
	mean := 0.0
	for _, v := range roster {
		mean += adoption[v.ID]
	}
	mean /= float64(len(roster))

	if maxRate, ok := limits["max_rate"]; ok && mean > maxRate {
		c.Compliant = false
		c.Violations = append(c.Violations, fmt.Sprintf(
			"%s: %s mean adoption %.3f exceeds market ceiling %g in %d",
			ConstraintMarketPenetration, vehicleType, mean, maxRate, year))
	}
	if minRate, ok := limits["min_rate"]; ok && mean < minRate {
		c.Warnings = append(c.Warnings, fmt.Sprintf(
			"%s: %s mean adoption %.3f trails target floor %g in %d",
			ConstraintMarketPenetration, vehicleType, mean, minRate, year))
	}
	return c
}

// checkInfrastructureCapacity compares projected build-out against
// declared capacity ceilings.
func checkInfrastructureCapacity(vehicleType string, year int, _ []Vehicle, _ map[string]float64, calcs Calculations, limits map[string]float64) Compliance {
	c := Compliance{Compliant: true}
	infra := calcs.Infrastructure

	if maxPoints, ok := limits["max_charging_points"]; ok && infra.ChargingPoints > maxPoints {
		c.Compliant = false
		c.Violations = append(c.Violations, fmt.Sprintf(
			"%s: %s needs %.2f charging points, capacity %g in %d",
			ConstraintInfrastructureCapacity, vehicleType, infra.ChargingPoints, maxPoints, year))
	}
	if maxGrid, ok := limits["max_grid_capacity_mw"]; ok && infra.GridCapacityMW > maxGrid {
		c.Compliant = false
		c.Violations = append(c.Violations, fmt.Sprintf(
			"%s: %s needs %.3f MW grid capacity, available %g in %d",
			ConstraintInfrastructureCapacity, vehicleType, infra.GridCapacityMW, maxGrid, year))
	}
	return c
}

// checkCostConstraints compares the cell's total annual cost against
// the configured budget.
func checkCostConstraints(vehicleType string, year int, _ []Vehicle, _ map[string]float64, calcs Calculations, limits map[string]float64) Compliance {
	c := Compliance{Compliant: true}
	maxCost, ok := limits["max_total_cost"]
	if !ok {
		return c
	}
	if calcs.Cost.Total > maxCost {
		c.Compliant = false
		c.Violations = append(c.Violations, fmt.Sprintf(
			"%s: %s annual cost %.2f exceeds budget %g in %d",
			ConstraintCost, vehicleType, calcs.Cost.Total, maxCost, year))
	}
	return c
}

// checkPolicyConstraints compares the cell's lifecycle emissions
// against the configured regulatory cap.
func checkPolicyConstraints(vehicleType string, year int, _ []Vehicle, _ map[string]float64, calcs Calculations, limits map[string]float64) Compliance {
	c := Compliance{Compliant: true}
	maxEmissions, ok := limits["max_emissions"]
	if !ok {
		return c
	}
	if calcs.Emissions.Total > maxEmissions {
		c.Compliant = false
		c.Violations = append(c.Violations, fmt.Sprintf(
			"%s: %s emissions %.2f exceed regulatory cap %g in %d",
			ConstraintPolicy, vehicleType, calcs.Emissions.Total, maxEmissions, year))
	}
	return c
}
