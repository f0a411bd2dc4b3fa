package engine

import "sort"

// AggregateByYear sums emissions, cost, and energy across the vehicle
// types calculated for one year. Vehicle types named by the scenario
// but absent from the calculations contribute zero, so the rollup
// stays exactly additive. Accumulation walks sorted keys so the float
// totals never depend on map iteration order.
func AggregateByYear(year int, calcs map[string]VehicleTypeResult) YearAggregate {
	agg := YearAggregate{
		Year:                   year,
		EmissionsByVehicleType: make(map[string]float64, len(calcs)),
		CostsByVehicleType:     make(map[string]float64, len(calcs)),
		EnergyByVehicleType:    make(map[string]float64, len(calcs)),
	}

	types := make([]string, 0, len(calcs))
	for vt := range calcs {
		types = append(types, vt)
	}
	sort.Strings(types)

	for _, vt := range types {
		cell := calcs[vt]
		agg.TotalEmissions += cell.Calculations.Emissions.Total
		agg.EmissionsByVehicleType[vt] = cell.Calculations.Emissions.Total

		agg.TotalCost += cell.Calculations.Cost.Total
		agg.CostsByVehicleType[vt] = cell.Calculations.Cost.Total

		agg.TotalEnergy += cell.Calculations.Energy.Total
		agg.EnergyByVehicleType[vt] = cell.Calculations.Energy.Total
	}
	return agg
}

// Aggregate performs the comprehensive cross-level rollup: scenario
// summary, yearly totals, and per-vehicle-type totals. The scenario
// totals are computed from the yearly aggregates, so the additivity
// invariant holds by construction.
func Aggregate(perYear []YearResult, vehicleTypes []string) Aggregation {
	agg := Aggregation{
		YearlyTotals:      make(map[int]YearAggregate, len(perYear)),
		VehicleTypeTotals: make(map[string]TypeTotals, len(vehicleTypes)),
	}

	for _, yr := range perYear {
		agg.YearlyTotals[yr.Year] = yr.Aggregated
		agg.Summary.TotalEmissions += yr.Aggregated.TotalEmissions
		agg.Summary.TotalCost += yr.Aggregated.TotalCost
		agg.Summary.TotalEnergy += yr.Aggregated.TotalEnergy
	}
	agg.Summary.YearsAnalyzed = len(perYear)
	agg.Summary.VehicleTypesAnalyzed = len(vehicleTypes)

	for _, vt := range vehicleTypes {
		totals := TypeTotals{}
		for _, yr := range perYear {
			cell, ok := yr.VehicleCalculations[vt]
			if !ok {
				continue
			}
			totals.TotalEmissions += cell.Calculations.Emissions.Total
			totals.TotalCost += cell.Calculations.Cost.Total
			totals.TotalEnergy += cell.Calculations.Energy.Total
		}
		agg.VehicleTypeTotals[vt] = totals
	}
	return agg
}
