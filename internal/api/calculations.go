package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/pathwise/pathwise/internal/catalog"
	"github.com/pathwise/pathwise/internal/engine"
	"github.com/pathwise/pathwise/internal/optimizer"
	"github.com/pathwise/pathwise/internal/scenario"
	"github.com/pathwise/pathwise/internal/store"
)

func (h *Handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.loadValidScenario(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := optimizer.Optimize(optimizer.Input{
		Years:             sc.Parameters.Years,
		VehicleTypes:      sc.Parameters.VehicleTypes,
		TargetReduction:   sc.Parameters.TargetReduction,
		MaxAnnualChange:   sc.Parameters.MaxAnnualChange,
		EmissionsFactors:  sc.Parameters.EmissionsFactors,
		UsagePatterns:     sc.Parameters.UsagePatterns,
		AdoptionRates:     sc.Parameters.AdoptionRates,
		EnableConstraints: sc.Parameters.EnableConstraints,
	})

	h.log.Info().
		Str("scenario_id", sc.ID).
		Str("operation", "optimize").
		Bool("success", result.Success).
		Bool("relaxed", result.RelaxedConstraints).
		Dur("elapsed", time.Since(start)).
		Msg("optimization finished")
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.loadValidScenario(w, r)
	if !ok {
		return
	}

	result, err := h.engine.CalculateScenario(r.Context(), sc)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidScenario):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, engine.ErrCalculationTimeout):
			writeError(w, http.StatusGatewayTimeout, err.Error())
		default:
			h.log.Error().Err(err).Str("scenario_id", sc.ID).Msg("calculate scenario")
			writeError(w, http.StatusInternalServerError, "calculation failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.CachedResult(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, engine.ErrResultNotFound) {
			writeError(w, http.StatusNotFound, "no cached result for scenario")
			return
		}
		h.log.Error().Err(err).Msg("load cached result")
		writeError(w, http.StatusInternalServerError, "failed to load result")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": catalog.Categories(),
	})
}

func (h *Handler) handleCatalogCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !catalog.IsCategory(category) {
		writeError(w, http.StatusNotFound, "unknown vehicle category")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category":       category,
		"technologies":   catalog.Technologies(category),
		"factors":        catalog.Factors(category),
		"usage_patterns": catalog.UsagePatterns(category),
	})
}

// loadValidScenario fetches the path's scenario and re-validates its
// stored parameters. Analysis endpoints refuse to run on parameters
// that no longer pass validation.
func (h *Handler) loadValidScenario(w http.ResponseWriter, r *http.Request) (scenario.Scenario, bool) {
	sc, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrScenarioNotFound) {
			writeError(w, http.StatusNotFound, "scenario not found")
		} else {
			h.log.Error().Err(err).Msg("load scenario")
			writeError(w, http.StatusInternalServerError, "failed to load scenario")
		}
		return scenario.Scenario{}, false
	}

	if v := scenario.Validate(sc.Parameters); !v.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, validationFailure{
			Error:      "stored scenario parameters failed validation",
			Validation: v,
		})
		return scenario.Scenario{}, false
	}
	return sc, true
}
