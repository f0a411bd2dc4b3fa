// Package catalog holds the static vehicle emissions and usage reference
// data. Factors are DEFRA-derived kgCO2e per km figures; usage defaults are
// DfT annual-mileage estimates. The catalog is read-only at runtime.
package catalog

import "sort"

// Factor is an immutable emissions factor for one vehicle technology.
// Lifecycle covers cradle-to-grave emissions and is always >= Tailpipe.
type Factor struct {
	// Tailpipe is the exhaust-only emissions factor in kgCO2e per km.
	Tailpipe float64 `json:"tailpipe"`

	// Lifecycle is the cradle-to-grave emissions factor in kgCO2e per km.
	Lifecycle float64 `json:"lifecycle"`
}

// DefaultFactor is returned for technologies the catalog does not know.
// Scenario data may reference arbitrary technology labels, so lookups must
// always produce a usable value instead of an error.
var DefaultFactor = Factor{Tailpipe: 0, Lifecycle: 0}

// DefaultAnnualMileage is the fallback annual mileage (miles per year)
// for unknown technologies.
const DefaultAnnualMileage = 10000.0

// Categories returns the recognized vehicle category names in sorted order.
func Categories() []string {
	names := make([]string, 0, len(vehicleEmissions))
	for name := range vehicleEmissions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsCategory reports whether name is a recognized vehicle category.
func IsCategory(name string) bool {
	_, ok := vehicleEmissions[name]
	return ok
}

// Get returns the emissions factor for a technology within a category.
// Unknown categories or technologies yield DefaultFactor.
func Get(category, technology string) Factor {
	techs, ok := vehicleEmissions[category]
	if !ok {
		return DefaultFactor
	}
	f, ok := techs[technology]
	if !ok {
		return DefaultFactor
	}
	return f
}

// Factors returns a copy of the factor table for a category.
// The copy keeps callers from mutating catalog data.
func Factors(category string) map[string]Factor {
	techs, ok := vehicleEmissions[category]
	if !ok {
		return nil
	}
	out := make(map[string]Factor, len(techs))
	for name, f := range techs {
		out[name] = f
	}
	return out
}

// AnnualMileage returns the default annual mileage for a technology within
// a category, or DefaultAnnualMileage when unknown.
func AnnualMileage(category, technology string) float64 {
	usages, ok := vehicleUsage[category]
	if !ok {
		return DefaultAnnualMileage
	}
	miles, ok := usages[technology]
	if !ok {
		return DefaultAnnualMileage
	}
	return miles
}

// UsagePatterns returns a copy of the usage table for a category.
func UsagePatterns(category string) map[string]float64 {
	usages, ok := vehicleUsage[category]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(usages))
	for name, miles := range usages {
		out[name] = miles
	}
	return out
}

// Technologies returns the technology names within a category, sorted.
func Technologies(category string) []string {
	techs, ok := vehicleEmissions[category]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(techs))
	for name := range techs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
