package engine

import (
	"fmt"

	"github.com/pathwise/pathwise/internal/catalog"
)

// FleetProvider supplies the vehicle roster for one (vehicle type,
// year) pair. Implementations must be deterministic for a given input
// so repeated calculations produce identical results.
type FleetProvider interface {
	Roster(vehicleType string, year int) []Vehicle
}

// Technology progression over the analysis horizon.
const (
	// baselineYear anchors the maturation timeline.
	baselineYear = 2020

	// horizonYears is the maturation window length.
	horizonYears = 30

	// maxReadinessLevel caps the TRL scale.
	maxReadinessLevel = 9

	// purchaseCostDecay is the fractional purchase-cost reduction over
	// the full horizon.
	purchaseCostDecay = 0.3

	// operatingCostDecay is the fractional operating-cost reduction over
	// the full horizon.
	operatingCostDecay = 0.2
)

// DemoFleet generates deterministic fixture rosters, assigning
// technologies round-robin per roster slot. It stands in for a real
// fleet data source during development and demos.
type DemoFleet struct{}

// NewDemoFleet returns the fixture fleet provider.
func NewDemoFleet() *DemoFleet {
	return &DemoFleet{}
}

// Roster builds the roster for a vehicle type and applies the
// year-progression adjustment: readiness rises and costs decay as the
// analysis year moves away from the baseline.
func (DemoFleet) Roster(vehicleType string, year int) []Vehicle {
	var vehicles []Vehicle
	switch vehicleType {
	case "Passenger Cars":
		vehicles = demoCars()
	case "Buses":
		vehicles = demoBuses()
	default:
		vehicles = demoGeneric(vehicleType)
	}
	progressFleet(vehicles, year)
	return vehicles
}

// demoCars builds a five-car roster cycling Electric, Hybrid, Petrol.
func demoCars() []Vehicle {
	vehicles := make([]Vehicle, 0, 5)
	for i := 0; i < 5; i++ {
		v := Vehicle{
			ID:               fmt.Sprintf("car_%d", i),
			VehicleType:      "Passenger Cars",
			Category:         "Small",
			AnnualMileage:    8000 + float64(i)*500,
			RegulatoryStatus: "Approved",
		}
		switch i % 3 {
		case 0:
			v.Technology, v.FuelType = "Electric", "Electric"
			v.TailpipeFactor, v.LifecycleFactor = 0, 0.06
			v.FuelEfficiency = 0.85
			v.PurchaseCost, v.OperatingCostMile = 35000, 0.08
			v.Infrastructure = map[string]float64{"charging_points": 1}
			v.ReadinessLevel, v.MarketPenetration = 9, 0.3
		case 1:
			v.Technology, v.FuelType = "Hybrid", "Hybrid"
			v.TailpipeFactor, v.LifecycleFactor = 0.13, 0.17
			v.FuelEfficiency = 0.75
			v.PurchaseCost, v.OperatingCostMile = 28000, 0.12
			v.Infrastructure = map[string]float64{}
			v.ReadinessLevel, v.MarketPenetration = 8, 0.4
		default:
			v.Technology, v.FuelType = "Petrol", "Petrol"
			v.TailpipeFactor, v.LifecycleFactor = 0.18, 0.21
			v.FuelEfficiency = 0.65
			v.PurchaseCost, v.OperatingCostMile = 25000, 0.15
			v.Infrastructure = map[string]float64{}
			v.ReadinessLevel, v.MarketPenetration = 9, 0.8
		}
		vehicles = append(vehicles, v)
	}
	return vehicles
}

// demoBuses builds a three-bus roster alternating Electric and Diesel.
func demoBuses() []Vehicle {
	vehicles := make([]Vehicle, 0, 3)
	for i := 0; i < 3; i++ {
		v := Vehicle{
			ID:               fmt.Sprintf("bus_%d", i),
			VehicleType:      "Buses",
			Category:         "Single Deck",
			AnnualMileage:    25000 + float64(i)*2000,
			RegulatoryStatus: "Approved",
		}
		if i%2 == 0 {
			v.Technology, v.FuelType = "Electric", "Electric"
			v.TailpipeFactor, v.LifecycleFactor = 0, 0.25
			v.FuelEfficiency = 0.80
			v.PurchaseCost, v.OperatingCostMile = 350000, 0.18
			v.Infrastructure = map[string]float64{"charging_points": 2}
			v.ReadinessLevel, v.MarketPenetration = 8, 0.2
		} else {
			v.Technology, v.FuelType = "Diesel", "Diesel"
			v.TailpipeFactor, v.LifecycleFactor = 0.85, 0.95
			v.FuelEfficiency = 0.70
			v.PurchaseCost, v.OperatingCostMile = 250000, 0.25
			v.Infrastructure = map[string]float64{}
			v.ReadinessLevel, v.MarketPenetration = 9, 0.8
		}
		vehicles = append(vehicles, v)
	}
	return vehicles
}

// demoGeneric builds a two-vehicle roster for categories without a
// curated fixture, pairing the first zero-tailpipe catalog entry
// against the first combustion entry so factors stay realistic for
// the category.
func demoGeneric(vehicleType string) []Vehicle {
	entrantTech, incumbentTech := "Electric", "Diesel"
	entrant := catalog.Factor{Tailpipe: 0, Lifecycle: 0.1}
	incumbent := catalog.Factor{Tailpipe: 0.2, Lifecycle: 0.3}
	foundEntrant, foundIncumbent := false, false
	for _, tech := range catalog.Technologies(vehicleType) {
		f := catalog.Get(vehicleType, tech)
		if f.Tailpipe == 0 && !foundEntrant {
			entrantTech, entrant, foundEntrant = tech, f, true
		}
		if f.Tailpipe > 0 && !foundIncumbent {
			incumbentTech, incumbent, foundIncumbent = tech, f, true
		}
	}

	return []Vehicle{
		{
			ID:                fmt.Sprintf("%s_0", slug(vehicleType)),
			VehicleType:       vehicleType,
			Category:          "Medium",
			Technology:        entrantTech,
			FuelType:          "Electric",
			TailpipeFactor:    entrant.Tailpipe,
			LifecycleFactor:   entrant.Lifecycle,
			AnnualMileage:     catalog.AnnualMileage(vehicleType, entrantTech),
			FuelEfficiency:    0.8,
			PurchaseCost:      60000,
			OperatingCostMile: 0.1,
			Infrastructure:    map[string]float64{"charging_points": 1},
			ReadinessLevel:    8,
			MarketPenetration: 0.2,
			RegulatoryStatus:  "Approved",
		},
		{
			ID:                fmt.Sprintf("%s_1", slug(vehicleType)),
			VehicleType:       vehicleType,
			Category:          "Medium",
			Technology:        incumbentTech,
			FuelType:          "Diesel",
			TailpipeFactor:    incumbent.Tailpipe,
			LifecycleFactor:   incumbent.Lifecycle,
			AnnualMileage:     catalog.AnnualMileage(vehicleType, incumbentTech),
			FuelEfficiency:    0.7,
			PurchaseCost:      45000,
			OperatingCostMile: 0.2,
			Infrastructure:    map[string]float64{},
			ReadinessLevel:    9,
			MarketPenetration: 0.8,
			RegulatoryStatus:  "Approved",
		},
	}
}

// progressFleet applies the year-progression adjustment in place.
// Readiness and cost changes are monotone in the year and never push
// values negative or past TRL 9.
func progressFleet(vehicles []Vehicle, year int) {
	f := yearFactor(year)
	for i := range vehicles {
		v := &vehicles[i]
		trl := v.ReadinessLevel + int(f*2)
		if trl > maxReadinessLevel {
			trl = maxReadinessLevel
		}
		v.ReadinessLevel = trl
		v.PurchaseCost *= 1 - f*purchaseCostDecay
		v.OperatingCostMile *= 1 - f*operatingCostDecay
	}
}

// yearFactor is the normalized position of a year on the maturation
// timeline, clamped to [0,1].
func yearFactor(year int) float64 {
	f := float64(year-baselineYear) / horizonYears
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// slug lowercases nothing but replaces spaces so demo vehicle IDs stay
// filesystem and URL safe.
func slug(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			out[i] = '_'
		} else {
			out[i] = s[i]
		}
	}
	return string(out)
}
