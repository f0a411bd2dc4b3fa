// Package scenario defines the scenario data model and parameter
// validation rules for pathway calculations.
package scenario

import (
	"time"

	"github.com/pathwise/pathwise/internal/catalog"
)

// Scenario is a persisted description of a decarbonization pathway study.
// Parameters are replaced wholesale on update, never patched field by field.
type Scenario struct {
	// ID uniquely identifies the scenario.
	ID string `json:"id" yaml:"id"`

	// Name is a short human label.
	Name string `json:"name" yaml:"name"`

	// Description is free-form text.
	Description string `json:"description" yaml:"description"`

	// Parameters holds the analysis inputs.
	Parameters Parameters `json:"parameters" yaml:"parameters"`

	// CreatedAt is when the scenario was first stored.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the scenario was last replaced.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Parameters is the structured input bag for a scenario.
type Parameters struct {
	// Years are the analysis years, ascending, between 2 and 10 entries.
	Years []int `json:"years" yaml:"years"`

	// TargetReduction is the emissions-reduction goal in [0,1].
	TargetReduction float64 `json:"target_reduction" yaml:"target_reduction"`

	// MaxAnnualChange bounds the adoption change between adjacent
	// analysis years, [0.05,0.3].
	MaxAnnualChange float64 `json:"max_annual_change" yaml:"max_annual_change"`

	// VehicleTypes are the catalog categories under analysis.
	VehicleTypes []string `json:"vehicle_types" yaml:"vehicle_types"`

	// EmissionsFactors optionally overrides the static catalog,
	// keyed category -> technology.
	EmissionsFactors map[string]map[string]catalog.Factor `json:"emissions_factors,omitempty" yaml:"emissions_factors,omitempty"`

	// UsagePatterns optionally overrides annual mileage defaults,
	// keyed category -> technology -> miles per year.
	UsagePatterns map[string]map[string]float64 `json:"usage_patterns,omitempty" yaml:"usage_patterns,omitempty"`

	// AdoptionRates seeds the adoption model, keyed
	// category -> technology -> base rate.
	AdoptionRates map[string]map[string]float64 `json:"adoption_rates,omitempty" yaml:"adoption_rates,omitempty"`

	// Constraints holds constraint definitions keyed by constraint
	// category name; values are numeric limits for that category.
	Constraints map[string]map[string]float64 `json:"constraints,omitempty" yaml:"constraints,omitempty"`

	// EnableConstraints toggles rate-of-change constraints during
	// optimization. Defaults to true at the API boundary.
	EnableConstraints bool `json:"enable_constraints" yaml:"enable_constraints"`
}

// Summary is the condensed scenario view served by list endpoints.
type Summary struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Description           string     `json:"description"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	TargetReductionPct    float64    `json:"target_reduction_percent"`
	MaxAnnualChangePct    float64    `json:"max_annual_change_percent"`
	AnalysisYears         int        `json:"analysis_years"`
	VehicleCategories     []string   `json:"vehicle_categories"`
	TotalVehicleTypes     int        `json:"total_vehicle_types"`
	IncludeUsagePatterns  bool       `json:"include_usage_patterns"`
	EnableConstraints     bool       `json:"enable_constraints"`
	Validation            Validation `json:"validation"`
}

// Summarize builds the condensed view of a scenario, including a fresh
// validation pass so stale stored parameters surface their issues.
func Summarize(s Scenario) Summary {
	totalTypes := 0
	for _, vt := range s.Parameters.VehicleTypes {
		if techs, ok := s.Parameters.EmissionsFactors[vt]; ok {
			totalTypes += len(techs)
		} else {
			totalTypes += len(catalog.Technologies(vt))
		}
	}

	return Summary{
		ID:                   s.ID,
		Name:                 s.Name,
		Description:          s.Description,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
		TargetReductionPct:   s.Parameters.TargetReduction * 100,
		MaxAnnualChangePct:   s.Parameters.MaxAnnualChange * 100,
		AnalysisYears:        len(s.Parameters.Years),
		VehicleCategories:    s.Parameters.VehicleTypes,
		TotalVehicleTypes:    totalTypes,
		IncludeUsagePatterns: len(s.Parameters.UsagePatterns) > 0,
		EnableConstraints:    s.Parameters.EnableConstraints,
		Validation:           Validate(s.Parameters),
	}
}
