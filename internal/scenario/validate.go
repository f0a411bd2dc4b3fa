package scenario

import (
	"fmt"
	"sort"

	"github.com/pathwise/pathwise/internal/catalog"
)

// Validation bounds for scenario parameters.
const (
	// MinYears is the minimum number of analysis years.
	MinYears = 2

	// MaxYears is the maximum number of analysis years.
	MaxYears = 10

	// MaxYearGap is the largest adjacent-year gap that passes without a warning.
	MaxYearGap = 10

	// MinAnnualChange is the lowest permitted max_annual_change.
	MinAnnualChange = 0.05

	// MaxAnnualChange is the highest permitted max_annual_change.
	MaxAnnualChange = 0.3

	// MaxVehicleTypes caps the number of categories per scenario.
	MaxVehicleTypes = 10

	// earliestRealisticYear marks the point before which technology data is stale.
	earliestRealisticYear = 2020

	// latestRealisticYear marks the point after which projections get speculative.
	latestRealisticYear = 2060

	// highTargetWarning and lowTargetWarning bound the comfortable target range.
	highTargetWarning = 0.8
	lowTargetWarning  = 0.1

	// highChangeWarning and lowChangeWarning bound the comfortable change range.
	highChangeWarning = 0.2
	lowChangeWarning  = 0.08

	// highLifecycleFactor flags implausibly dirty emissions data (kgCO2e/km).
	highLifecycleFactor = 2.0

	// highAnnualMileage flags implausibly heavy usage data (miles/year).
	highAnnualMileage = 100000.0
)

// Validation is the outcome of a parameter check. Errors make the
// scenario unusable; warnings and suggestions are advisory.
type Validation struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Validate checks scenario parameters against the domain rules.
// It is a pure function: identical input always yields identical output,
// and no computation should start while Valid is false.
func Validate(p Parameters) Validation {
	v := Validation{
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}

	validateYears(p.Years, &v)
	validateTarget(p.TargetReduction, &v)
	validateMaxChange(p.MaxAnnualChange, &v)
	validateVehicleTypes(p.VehicleTypes, &v)
	validateEmissionsFactors(p.EmissionsFactors, &v)
	validateUsagePatterns(p.UsagePatterns, &v)

	// Cross-field heuristics are suggestions only, never errors.
	if len(v.Errors) == 0 && len(v.Warnings) == 0 {
		v.Suggestions = append(v.Suggestions, "Scenario parameters look good!")
	}
	if p.TargetReduction > 0.5 && p.MaxAnnualChange < 0.15 {
		v.Suggestions = append(v.Suggestions,
			"Consider increasing max annual change to meet high reduction target")
	}
	if len(p.Years) > 5 && p.MaxAnnualChange > 0.15 {
		v.Suggestions = append(v.Suggestions,
			"High change rate over many years - consider intermediate targets")
	}

	v.Valid = len(v.Errors) == 0
	return v
}

func validateYears(years []int, v *Validation) {
	switch {
	case len(years) < MinYears:
		v.Errors = append(v.Errors, "at least 2 years must be specified")
		return
	case len(years) > MaxYears:
		v.Errors = append(v.Errors, "maximum 10 years allowed")
		return
	}

	for i := 1; i < len(years); i++ {
		gap := years[i] - years[i-1]
		switch {
		case gap <= 0:
			v.Errors = append(v.Errors, "years must be ascending with at least 1 year gap")
		case gap > MaxYearGap:
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				"large gap between %d and %d - consider intermediate years", years[i-1], years[i]))
		}
	}

	if years[0] < earliestRealisticYear {
		v.Warnings = append(v.Warnings,
			"starting year before 2020 may not reflect current technology")
	}
	if years[len(years)-1] > latestRealisticYear {
		v.Warnings = append(v.Warnings,
			"end year after 2060 may have high uncertainty")
	}
}

func validateTarget(target float64, v *Validation) {
	switch {
	case target < 0 || target > 1:
		v.Errors = append(v.Errors, "target reduction must be between 0 and 1")
	case target > highTargetWarning:
		v.Warnings = append(v.Warnings, "very high reduction target - ensure this is realistic")
		v.Suggestions = append(v.Suggestions, "Consider breaking down into intermediate targets")
	case target < lowTargetWarning:
		v.Warnings = append(v.Warnings, "low reduction target - may not achieve significant decarbonization")
	}
}

func validateMaxChange(maxChange float64, v *Validation) {
	switch {
	case maxChange < MinAnnualChange || maxChange > MaxAnnualChange:
		v.Errors = append(v.Errors, "maximum annual change must be between 0.05 and 0.3")
	case maxChange > highChangeWarning:
		v.Warnings = append(v.Warnings, "high annual change rate - may be challenging to achieve")
		v.Suggestions = append(v.Suggestions, "Consider a more gradual transition")
	case maxChange < lowChangeWarning:
		v.Warnings = append(v.Warnings, "low annual change rate - may not meet targets")
	}
}

func validateVehicleTypes(types []string, v *Validation) {
	if len(types) == 0 {
		v.Errors = append(v.Errors, "at least one vehicle type must be specified")
		return
	}
	if len(types) > MaxVehicleTypes {
		v.Errors = append(v.Errors, "maximum 10 vehicle types allowed")
		return
	}
	for _, vt := range types {
		if !catalog.IsCategory(vt) {
			v.Errors = append(v.Errors, fmt.Sprintf("unknown vehicle type: %s", vt))
		}
	}
}

// Warning order must not depend on map iteration, so both nested-map
// checks walk sorted keys.
func validateEmissionsFactors(factors map[string]map[string]catalog.Factor, v *Validation) {
	for _, category := range sortedKeys(factors) {
		techs := factors[category]
		if len(techs) == 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf("empty emissions data for %s", category))
			continue
		}
		for _, tech := range sortedKeys(techs) {
			f := techs[tech]
			switch {
			case f.Tailpipe < 0 || f.Lifecycle < 0:
				v.Warnings = append(v.Warnings, fmt.Sprintf("negative emissions values for %s", tech))
			case f.Lifecycle < f.Tailpipe:
				v.Warnings = append(v.Warnings, fmt.Sprintf(
					"lifecycle emissions should be >= tailpipe for %s", tech))
			case f.Lifecycle > highLifecycleFactor:
				v.Warnings = append(v.Warnings, fmt.Sprintf(
					"very high lifecycle emissions for %s: %.3f", tech, f.Lifecycle))
			}
		}
	}
}

// sortedKeys returns the map keys in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validateUsagePatterns(patterns map[string]map[string]float64, v *Validation) {
	for _, category := range sortedKeys(patterns) {
		techs := patterns[category]
		if len(techs) == 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf("empty usage data for %s", category))
			continue
		}
		for _, tech := range sortedKeys(techs) {
			usage := techs[tech]
			switch {
			case usage < 0:
				v.Warnings = append(v.Warnings, fmt.Sprintf("negative usage value for %s", tech))
			case usage > highAnnualMileage:
				v.Warnings = append(v.Warnings, fmt.Sprintf(
					"very high usage value for %s: %.0f", tech, usage))
			}
		}
	}
}
