package engine

import "strings"

// AdoptionCurve holds the S-curve coefficients used to project
// technology adoption over the analysis horizon. The shipped defaults
// are heuristic rather than a cited diffusion model, so every
// coefficient is tunable through configuration.
type AdoptionCurve struct {
	// ElectricCap saturates battery-electric adoption.
	ElectricCap float64 `yaml:"electric_cap"`

	// ElectricGrowth scales the accelerating electric ramp.
	ElectricGrowth float64 `yaml:"electric_growth"`

	// HybridCap saturates hybrid adoption.
	HybridCap float64 `yaml:"hybrid_cap"`

	// HybridGrowth scales the hybrid ramp before its decline.
	HybridGrowth float64 `yaml:"hybrid_growth"`

	// HybridDecay scales the mid-horizon hybrid decline.
	HybridDecay float64 `yaml:"hybrid_decay"`

	// FossilFloor keeps a residual combustion fleet above zero.
	FossilFloor float64 `yaml:"fossil_floor"`

	// FossilDecline scales the combustion phase-out.
	FossilDecline float64 `yaml:"fossil_decline"`
}

// DefaultAdoptionCurve returns the standard coefficient set: a fast
// accelerating electric ramp capped near saturation, a transitional
// hybrid curve peaking mid-horizon, and a floored fossil decline.
func DefaultAdoptionCurve() AdoptionCurve {
	return AdoptionCurve{
		ElectricCap:    0.95,
		ElectricGrowth: 3,
		HybridCap:      0.8,
		HybridGrowth:   2,
		HybridDecay:    0.5,
		FossilFloor:    0.05,
		FossilDecline:  2,
	}
}

// defaultBaseRate seeds adoption for technologies the scenario does
// not mention.
const defaultBaseRate = 0.1

// Rate projects the adoption fraction for one technology at one
// analysis year from its scenario base rate.
func (c AdoptionCurve) Rate(technology string, baseRate float64, year int) float64 {
	f := yearFactor(year)
	switch {
	case isElectric(technology):
		return min(c.ElectricCap, baseRate*(1+c.ElectricGrowth*f))
	case isHybrid(technology):
		return min(c.HybridCap, baseRate*(1+c.HybridGrowth*f)*(1-c.HybridDecay*f))
	default:
		return max(c.FossilFloor, baseRate*(1-c.FossilDecline*f))
	}
}

func isElectric(technology string) bool {
	return strings.Contains(technology, "Electric")
}

func isHybrid(technology string) bool {
	return strings.Contains(technology, "Hybrid") || strings.Contains(technology, "PHEV")
}
