package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator() *calculator {
	return &calculator{
		fleet:       NewDemoFleet(),
		curve:       DefaultAdoptionCurve(),
		constraints: NewConstraintManager(),
		log:         zerolog.Nop(),
	}
}

func TestCalculateVehicleTypeIdempotent(t *testing.T) {
	c := newTestCalculator()
	rates := map[string]map[string]float64{
		"Passenger Cars": {"Electric": 0.2},
	}
	first := c.calculateVehicleType(2030, "Passenger Cars", rates, nil)
	second := c.calculateVehicleType(2030, "Passenger Cars", rates, nil)
	assert.Equal(t, first, second, "same inputs must produce identical results")
}

func TestCalculateVehicleTypeCategories(t *testing.T) {
	c := newTestCalculator()
	res := c.calculateVehicleType(2030, "Passenger Cars", nil, nil)

	require.Len(t, res.AdoptionRates, 5)
	calc := res.Calculations

	assert.Positive(t, calc.Emissions.Total)
	assert.Len(t, calc.Emissions.PerVehicle, 5)
	sum := 0.0
	for _, e := range calc.Emissions.PerVehicle {
		sum += e
	}
	assert.InDelta(t, calc.Emissions.Total, sum, 1e-9,
		"per-vehicle emissions must sum to the total")

	assert.Positive(t, calc.Cost.TotalPurchase)
	assert.Positive(t, calc.Cost.TotalOperating)
	assert.InDelta(t, calc.Cost.Total, calc.Cost.TotalPurchase+calc.Cost.TotalOperating, 1e-9)

	assert.Positive(t, calc.Energy.Total)
	assert.Empty(t, calc.Energy.ExcludedVehicles)

	// Two of five demo cars are electric with one charging point each.
	assert.Positive(t, calc.Infrastructure.ChargingPoints)
	assert.Positive(t, calc.Infrastructure.GridCapacityMW)
	assert.Zero(t, calc.Infrastructure.HydrogenStations)

	assert.GreaterOrEqual(t, calc.Health.AirQualityImprovement, 0.0)
	assert.Positive(t, calc.Health.HealthCostSavings)

	assert.Positive(t, calc.Economic.InvestmentRequired)
	assert.Positive(t, calc.Economic.SavingsRealized)
	assert.InDelta(t, calc.Economic.InvestmentRequired*gdpMultiplier, calc.Economic.GDPImpact, 1e-9)
}

func TestCalcEnergyExcludesZeroEfficiency(t *testing.T) {
	roster := []Vehicle{
		{ID: "ok", FuelType: "Diesel", AnnualMileage: 10000, FuelEfficiency: 0.5},
		{ID: "broken", FuelType: "Diesel", AnnualMileage: 10000, FuelEfficiency: 0},
	}
	adoption := map[string]float64{"ok": 0.5, "broken": 0.5}

	res := calcEnergy(roster, adoption)
	assert.Equal(t, []string{"broken"}, res.ExcludedVehicles)
	assert.NotContains(t, res.PerVehicle, "broken")
	assert.InDelta(t, 0.5*(10000/0.5)*10.7, res.Total, 1e-9,
		"only the valid vehicle contributes")
}

func TestCalcHealthUsesTailpipeOnly(t *testing.T) {
	roster := []Vehicle{
		{ID: "ev", TailpipeFactor: 0, LifecycleFactor: 0.06, AnnualMileage: 10000},
	}
	res := calcHealth(roster, map[string]float64{"ev": 1})
	assert.Equal(t, 100.0, res.AirQualityImprovement)
	assert.Zero(t, res.HealthCostSavings)
	assert.Zero(t, res.LivesSaved)
}

func TestAdoptionCurveShapes(t *testing.T) {
	curve := DefaultAdoptionCurve()

	t.Run("ElectricRampsAndSaturates", func(t *testing.T) {
		early := curve.Rate("Electric", 0.1, 2025)
		late := curve.Rate("Electric", 0.1, 2045)
		assert.Greater(t, late, early)
		assert.LessOrEqual(t, curve.Rate("Electric", 0.9, 2050), curve.ElectricCap)
	})

	t.Run("FossilDeclinesToFloor", func(t *testing.T) {
		early := curve.Rate("Petrol", 0.8, 2025)
		late := curve.Rate("Petrol", 0.8, 2050)
		assert.Less(t, late, early)
		assert.GreaterOrEqual(t, curve.Rate("Petrol", 0.1, 2050), curve.FossilFloor)
	})

	t.Run("HybridPeaksMidHorizon", func(t *testing.T) {
		mid := curve.Rate("Hybrid", 0.4, 2042)
		late := curve.Rate("Hybrid", 0.4, 2050)
		assert.Greater(t, mid, late, "transitional technology declines late in the horizon")
		assert.LessOrEqual(t, curve.Rate("Hybrid", 0.9, 2040), curve.HybridCap)
	})

	t.Run("BaselineYearUnchanged", func(t *testing.T) {
		assert.InDelta(t, 0.1, curve.Rate("Electric", 0.1, baselineYear), 1e-9)
	})
}

func TestDemoFleetProgression(t *testing.T) {
	fleet := NewDemoFleet()

	now := fleet.Roster("Passenger Cars", 2020)
	later := fleet.Roster("Passenger Cars", 2050)
	require.Len(t, now, 5)
	require.Len(t, later, 5)

	for i := range now {
		assert.Less(t, later[i].PurchaseCost, now[i].PurchaseCost,
			"purchase cost decays over the horizon")
		assert.Less(t, later[i].OperatingCostMile, now[i].OperatingCostMile)
		assert.GreaterOrEqual(t, later[i].ReadinessLevel, now[i].ReadinessLevel)
		assert.LessOrEqual(t, later[i].ReadinessLevel, maxReadinessLevel)
	}
}

func TestDemoFleetGenericCategory(t *testing.T) {
	fleet := NewDemoFleet()
	roster := fleet.Roster("Heavy Goods Vehicles (HGVs)", 2030)
	require.Len(t, roster, 2)

	assert.Zero(t, roster[0].TailpipeFactor, "entrant is zero tailpipe")
	assert.Positive(t, roster[1].TailpipeFactor, "incumbent is combustion")
	assert.NotEqual(t, roster[0].ID, roster[1].ID)
}

func TestDemoFleetDeterministic(t *testing.T) {
	fleet := NewDemoFleet()
	assert.Equal(t, fleet.Roster("Buses", 2035), fleet.Roster("Buses", 2035))
}
