package engine

import (
	"time"
)

// Vehicle is one fleet-roster entry. Rosters are regenerated per
// (vehicle type, year) pair and adjusted for technology progression;
// they are derived snapshots, not persisted entities.
type Vehicle struct {
	ID                string             `json:"vehicle_id"`
	VehicleType       string             `json:"vehicle_type"`
	Category          string             `json:"category"`
	Technology        string             `json:"technology"`
	FuelType          string             `json:"fuel_type"`
	TailpipeFactor    float64            `json:"emissions_factor_tailpipe"`
	LifecycleFactor   float64            `json:"emissions_factor_lifecycle"`
	AnnualMileage     float64            `json:"annual_mileage"`
	FuelEfficiency    float64            `json:"fuel_efficiency"`
	PurchaseCost      float64            `json:"purchase_cost"`
	OperatingCostMile float64            `json:"operating_cost_per_mile"`
	Infrastructure    map[string]float64 `json:"infrastructure_requirements"`
	ReadinessLevel    int                `json:"technology_readiness_level"`
	MarketPenetration float64            `json:"market_penetration_rate"`
	RegulatoryStatus  string             `json:"regulatory_status"`
}

// EmissionsResult holds the lifecycle-emissions rollup for one
// (year, vehicle type) cell, in kg CO2e.
type EmissionsResult struct {
	Total        float64            `json:"total_emissions"`
	ByTechnology map[string]float64 `json:"emissions_by_technology"`
	PerVehicle   map[string]float64 `json:"emissions_per_vehicle"`
}

// VehicleCost splits one vehicle's annual cost into its components.
type VehicleCost struct {
	Purchase  float64 `json:"purchase"`
	Operating float64 `json:"operating"`
}

// CostResult holds the cost rollup for one cell.
type CostResult struct {
	TotalPurchase  float64                `json:"total_purchase_cost"`
	TotalOperating float64                `json:"total_operating_cost"`
	Total          float64                `json:"total_cost"`
	ByTechnology   map[string]VehicleCost `json:"costs_by_technology"`
	PerVehicle     map[string]VehicleCost `json:"cost_per_vehicle"`
}

// EnergyResult holds the kWh-equivalent energy rollup for one cell.
// Vehicles with an unusable fuel efficiency are excluded and named in
// ExcludedVehicles.
type EnergyResult struct {
	Total            float64            `json:"total_energy_consumption"`
	ByFuelType       map[string]float64 `json:"energy_by_fuel_type"`
	PerVehicle       map[string]float64 `json:"energy_per_vehicle"`
	ExcludedVehicles []string           `json:"excluded_vehicles,omitempty"`
}

// InfrastructureResult holds the physical build-out demanded by the
// adopted fleet in one cell.
type InfrastructureResult struct {
	ChargingPoints        float64 `json:"charging_points"`
	HydrogenStations      float64 `json:"hydrogen_stations"`
	MaintenanceFacilities float64 `json:"maintenance_facilities"`
	GridCapacityMW        float64 `json:"grid_capacity_mw"`
}

// HealthResult holds the tailpipe-driven health impact for one cell.
type HealthResult struct {
	AirQualityImprovement float64 `json:"air_quality_improvement"`
	HealthCostSavings     float64 `json:"health_cost_savings"`
	LivesSaved            int     `json:"lives_saved"`
}

// EconomicResult holds the investment and employment impact for one cell.
type EconomicResult struct {
	JobCreation        int     `json:"job_creation"`
	GDPImpact          float64 `json:"gdp_impact"`
	InvestmentRequired float64 `json:"investment_required"`
	SavingsRealized    float64 `json:"savings_realized"`
}

// Calculations bundles the six calculation categories for one cell.
type Calculations struct {
	Emissions      EmissionsResult      `json:"emissions"`
	Cost           CostResult           `json:"cost"`
	Energy         EnergyResult         `json:"energy"`
	Infrastructure InfrastructureResult `json:"infrastructure"`
	Health         HealthResult         `json:"health_impact"`
	Economic       EconomicResult       `json:"economic_impact"`
}

// Compliance reports constraint evaluation for one cell.
type Compliance struct {
	Compliant  bool     `json:"compliant"`
	Violations []string `json:"violations"`
	Warnings   []string `json:"warnings"`
}

// VehicleTypeResult holds everything computed for one (year, vehicle
// type) cell. Immutable after construction.
type VehicleTypeResult struct {
	VehicleType   string             `json:"vehicle_type"`
	Year          int                `json:"year"`
	AdoptionRates map[string]float64 `json:"adoption_rates"`
	Calculations  Calculations       `json:"calculations"`
	Compliance    Compliance         `json:"constraint_compliance"`
}

// YearAggregate sums emissions, cost, and energy across the vehicle
// types of one year.
type YearAggregate struct {
	Year                   int                `json:"year"`
	TotalEmissions         float64            `json:"total_emissions"`
	TotalCost              float64            `json:"total_cost"`
	TotalEnergy            float64            `json:"total_energy"`
	EmissionsByVehicleType map[string]float64 `json:"emissions_by_vehicle_type"`
	CostsByVehicleType     map[string]float64 `json:"costs_by_vehicle_type"`
	EnergyByVehicleType    map[string]float64 `json:"energy_by_vehicle_type"`
}

// YearResult holds all per-vehicle-type results for one analysis year.
type YearResult struct {
	Year                int                          `json:"year"`
	VehicleCalculations map[string]VehicleTypeResult `json:"vehicle_calculations"`
	Aggregated          YearAggregate                `json:"aggregated_metrics"`
}

// TypeTotals is the cross-year rollup for one vehicle type.
type TypeTotals struct {
	TotalEmissions float64 `json:"total_emissions"`
	TotalCost      float64 `json:"total_cost"`
	TotalEnergy    float64 `json:"total_energy"`
}

// ScenarioSummary condenses the whole-scenario totals.
type ScenarioSummary struct {
	TotalEmissions       float64 `json:"total_emissions"`
	TotalCost            float64 `json:"total_cost"`
	TotalEnergy          float64 `json:"total_energy"`
	YearsAnalyzed        int     `json:"years_analyzed"`
	VehicleTypesAnalyzed int     `json:"vehicle_types_analyzed"`
}

// Aggregation is the comprehensive cross-level rollup.
type Aggregation struct {
	Summary           ScenarioSummary       `json:"scenario_summary"`
	YearlyTotals      map[int]YearAggregate `json:"yearly_totals"`
	VehicleTypeTotals map[string]TypeTotals `json:"vehicle_type_totals"`
}

// CellViolation names one non-compliant (year, vehicle type) cell with
// enough context for downstream recommendation and risk scoring.
type CellViolation struct {
	Year        int      `json:"year"`
	VehicleType string   `json:"vehicle_type"`
	Violations  []string `json:"violations"`
}

// ConstraintAnalysis is the scenario-level constraint rollup.
type ConstraintAnalysis struct {
	OverallCompliance  bool            `json:"overall_compliance"`
	Violations         []CellViolation `json:"constraint_violations"`
	CriticalViolations []CellViolation `json:"critical_violations"`
}

// PerformanceMetrics records how the calculation itself behaved.
type PerformanceMetrics struct {
	CalculationTime       time.Duration `json:"calculation_time"`
	VehicleTypesProcessed int           `json:"total_vehicle_types_processed"`
	YearsProcessed        int           `json:"total_years_processed"`
	ConstraintViolations  int           `json:"constraint_violations"`
	Workers               int           `json:"workers"`
}

// ScenarioResult is the top-level calculation outcome. Created once
// per invocation and never mutated afterwards.
type ScenarioResult struct {
	ScenarioID           string             `json:"scenario_id"`
	CalculationTimestamp time.Time          `json:"calculation_timestamp"`
	PerYearResults       []YearResult       `json:"per_year_results"`
	Aggregated           Aggregation        `json:"aggregated_results"`
	ConstraintAnalysis   ConstraintAnalysis `json:"constraint_analysis"`
	Performance          PerformanceMetrics `json:"performance_metrics"`
}
