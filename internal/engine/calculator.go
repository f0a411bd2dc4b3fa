package engine

import (
	"github.com/rs/zerolog"
)

// Energy conversion factors to a common kWh-equivalent basis.
var energyFactors = map[string]float64{
	"Electric": 1.0,  // already kWh
	"Petrol":   9.5,  // kWh per liter
	"Diesel":   10.7, // kWh per liter
	"Hybrid":   5.0,  // average of electric and fossil
	"Hydrogen": 33.3, // kWh per kg
}

// Cost and impact coefficients.
const (
	// vehicleLifetimeYears amortizes purchase cost.
	vehicleLifetimeYears = 15

	// hydrogenStationsPerVehicle sizes hydrogen refuelling build-out.
	hydrogenStationsPerVehicle = 0.1

	// maintenanceFacilitiesPerVehicle sizes maintenance build-out.
	maintenanceFacilitiesPerVehicle = 0.01

	// gridMWPerElectricVehicle assumes a 7kW nominal charger draw.
	gridMWPerElectricVehicle = 0.007

	// healthSavingsPerKg prices avoided tailpipe emissions.
	healthSavingsPerKg = 50

	// livesSavedPerKg converts tailpipe emissions to mortality impact.
	livesSavedPerKg = 0.001

	// jobsPerInvestment is one job per this much investment.
	jobsPerInvestment = 50000

	// gdpMultiplier converts investment to GDP impact.
	gdpMultiplier = 0.02

	// operationalSavingsShare is the assumed operating-cost saving
	// fraction realized by the transition.
	operationalSavingsShare = 0.3
)

// calculator performs the per-cell computation. All category
// calculations are pure functions of the roster and adoption map, so
// a cell result is fully reproducible.
type calculator struct {
	fleet       FleetProvider
	curve       AdoptionCurve
	constraints *ConstraintManager
	log         zerolog.Logger
}

// calculateVehicleType computes one (year, vehicle type) cell.
func (c *calculator) calculateVehicleType(year int, vehicleType string, baseRates map[string]map[string]float64, limits map[string]map[string]float64) VehicleTypeResult {
	roster := c.fleet.Roster(vehicleType, year)
	adoption := c.adoptionRates(vehicleType, year, roster, baseRates)

	calcs := Calculations{
		Emissions:      calcEmissions(roster, adoption),
		Cost:           calcCosts(roster, adoption),
		Infrastructure: calcInfrastructure(roster, adoption),
		Health:         calcHealth(roster, adoption),
		Economic:       calcEconomic(roster, adoption),
	}
	calcs.Energy = calcEnergy(roster, adoption)
	for _, id := range calcs.Energy.ExcludedVehicles {
		c.log.Warn().
			Str("component", "engine").
			Str("vehicle_type", vehicleType).
			Int("year", year).
			Str("vehicle_id", id).
			Msg("vehicle has zero fuel efficiency, excluded from energy totals")
	}

	return VehicleTypeResult{
		VehicleType:   vehicleType,
		Year:          year,
		AdoptionRates: adoption,
		Calculations:  calcs,
		Compliance:    c.constraints.CheckVehicleConstraints(vehicleType, year, roster, adoption, calcs, limits),
	}
}

// adoptionRates projects the per-vehicle adoption map for one cell
// from the scenario's declared base rates.
func (c *calculator) adoptionRates(vehicleType string, year int, roster []Vehicle, baseRates map[string]map[string]float64) map[string]float64 {
	declared := baseRates[vehicleType]
	rates := make(map[string]float64, len(roster))
	for _, v := range roster {
		base, ok := declared[v.Technology]
		if !ok {
			base = defaultBaseRate
		}
		rates[v.ID] = c.curve.Rate(v.Technology, base, year)
	}
	return rates
}

// calcEmissions rolls up lifecycle emissions, the decarbonization
// accounting basis, by technology and by vehicle.
func calcEmissions(roster []Vehicle, adoption map[string]float64) EmissionsResult {
	out := EmissionsResult{
		ByTechnology: make(map[string]float64),
		PerVehicle:   make(map[string]float64, len(roster)),
	}
	for _, v := range roster {
		e := adoption[v.ID] * v.LifecycleFactor * v.AnnualMileage
		out.Total += e
		out.ByTechnology[v.Technology] += e
		out.PerVehicle[v.ID] = e
	}
	return out
}

// calcCosts combines amortized purchase cost with annual operating
// cost, both scaled by adoption.
func calcCosts(roster []Vehicle, adoption map[string]float64) CostResult {
	out := CostResult{
		ByTechnology: make(map[string]VehicleCost),
		PerVehicle:   make(map[string]VehicleCost, len(roster)),
	}
	for _, v := range roster {
		rate := adoption[v.ID]
		cost := VehicleCost{
			Purchase:  v.PurchaseCost / vehicleLifetimeYears * rate,
			Operating: v.OperatingCostMile * v.AnnualMileage * rate,
		}
		out.TotalPurchase += cost.Purchase
		out.TotalOperating += cost.Operating
		byTech := out.ByTechnology[v.Technology]
		byTech.Purchase += cost.Purchase
		byTech.Operating += cost.Operating
		out.ByTechnology[v.Technology] = byTech
		out.PerVehicle[v.ID] = cost
	}
	out.Total = out.TotalPurchase + out.TotalOperating
	return out
}

// calcEnergy converts fuel consumption to kWh equivalents. A vehicle
// with zero fuel efficiency cannot be converted; it is excluded from
// the totals and reported as a data-quality problem rather than
// aborting the calculation.
func calcEnergy(roster []Vehicle, adoption map[string]float64) EnergyResult {
	out := EnergyResult{
		ByFuelType: make(map[string]float64),
		PerVehicle: make(map[string]float64, len(roster)),
	}
	for _, v := range roster {
		if v.FuelEfficiency == 0 {
			out.ExcludedVehicles = append(out.ExcludedVehicles, v.ID)
			continue
		}
		factor, ok := energyFactors[v.FuelType]
		if !ok {
			factor = 1.0
		}
		e := adoption[v.ID] * (v.AnnualMileage / v.FuelEfficiency) * factor
		out.Total += e
		out.ByFuelType[v.FuelType] += e
		out.PerVehicle[v.ID] = e
	}
	return out
}

// calcInfrastructure sizes the physical build-out demanded by the
// adopted fleet.
func calcInfrastructure(roster []Vehicle, adoption map[string]float64) InfrastructureResult {
	var out InfrastructureResult
	for _, v := range roster {
		rate := adoption[v.ID]
		out.ChargingPoints += v.Infrastructure["charging_points"] * rate
		if v.FuelType == "Hydrogen" {
			out.HydrogenStations += rate * hydrogenStationsPerVehicle
		}
		out.MaintenanceFacilities += rate * maintenanceFacilitiesPerVehicle
		if v.FuelType == "Electric" {
			out.GridCapacityMW += rate * gridMWPerElectricVehicle
		}
	}
	return out
}

// calcHealth derives health impact from tailpipe emissions, since air
// quality responds to what leaves the exhaust, not the supply chain.
func calcHealth(roster []Vehicle, adoption map[string]float64) HealthResult {
	total := 0.0
	for _, v := range roster {
		total += v.TailpipeFactor * v.AnnualMileage * adoption[v.ID]
	}
	improvement := 100 - total*10
	if improvement < 0 {
		improvement = 0
	}
	return HealthResult{
		AirQualityImprovement: improvement,
		HealthCostSavings:     total * healthSavingsPerKg,
		LivesSaved:            int(total * livesSavedPerKg),
	}
}

// calcEconomic derives investment, savings, and employment impact.
func calcEconomic(roster []Vehicle, adoption map[string]float64) EconomicResult {
	var investment, savings float64
	for _, v := range roster {
		rate := adoption[v.ID]
		investment += v.PurchaseCost * rate
		savings += v.OperatingCostMile * v.AnnualMileage * rate * operationalSavingsShare
	}
	return EconomicResult{
		JobCreation:        int(investment / jobsPerInvestment),
		GDPImpact:          investment * gdpMultiplier,
		InvestmentRequired: investment,
		SavingsRealized:    savings,
	}
}
